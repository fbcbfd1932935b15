package insights

import "time"

type FreshnessStatus string

const (
	FreshnessLive   FreshnessStatus = "live"
	FreshnessRecent FreshnessStatus = "recent"
	FreshnessStale  FreshnessStatus = "stale"
	FreshnessDemo   FreshnessStatus = "demo"
)

type Freshness struct {
	Status    FreshnessStatus `json:"status"`
	Message   string          `json:"message"`
	UpdatedAt *time.Time      `json:"updated_at,omitempty"`
	Age       string          `json:"age,omitempty"`
}

// CheckFreshness grades the latest update time of the table. A zero time
// means the table carries no update timestamps.
func CheckFreshness(latest, now time.Time) Freshness {
	if latest.IsZero() {
		return Freshness{Status: FreshnessDemo, Message: "Demo mode: data has no update timestamps"}
	}

	age := now.Sub(latest)
	if age < 0 {
		age = 0
	}

	f := Freshness{UpdatedAt: &latest, Age: age.Round(time.Second).String()}
	switch {
	case age < time.Hour:
		f.Status, f.Message = FreshnessLive, "Live data: updated less than 1 hour ago"
	case age < 24*time.Hour:
		f.Status, f.Message = FreshnessRecent, "Recent data: updated less than 24 hours ago"
	default:
		f.Status, f.Message = FreshnessStale, "Data needs refresh: updated more than 24 hours ago"
	}
	return f
}
