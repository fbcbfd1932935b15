package insights

import (
	"fmt"
	"strings"

	"github.com/jstittsworth/contrarian-dfs/internal/models"
)

// FieldSize is the tournament entry-count bucket.
type FieldSize string

const (
	FieldLarge       FieldSize = "large"
	FieldMid         FieldSize = "mid"
	FieldSmall       FieldSize = "small"
	FieldSingleEntry FieldSize = "single_entry"
)

const recommendationCount = 8

// ParseFieldSize accepts the bucket names and the dashboard labels.
func ParseFieldSize(s string) (FieldSize, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case v == "large" || strings.Contains(v, "large field"):
		return FieldLarge, nil
	case v == "mid" || strings.Contains(v, "mid-field") || strings.Contains(v, "mid field"):
		return FieldMid, nil
	case v == "small" || strings.Contains(v, "small field"):
		return FieldSmall, nil
	case v == "single_entry" || v == "single" || strings.Contains(v, "single entry"):
		return FieldSingleEntry, nil
	}
	return "", fmt.Errorf("unknown field size %q", s)
}

// Recommendation is a field-size specific player list.
type Recommendation struct {
	Field    FieldSize             `json:"field"`
	Guidance string                `json:"guidance"`
	Players  []models.PlayerRecord `json:"players"`
}

// RecommendForField picks players for a field size: large fields take
// SMASH and LEVERAGE plays, mid fields mix four CHALK with four SMASH, and
// small or single-entry fields take CHALK and LEVERAGE plays.
func RecommendForField(table []models.PlayerRecord, field FieldSize) Recommendation {
	rec := Recommendation{Field: field}

	switch field {
	case FieldLarge:
		rec.Guidance = "Go full contrarian: large fields need maximum differentiation."
		rec.Players = head(byPlayType(table, models.PlaySmash, models.PlayLeverage), recommendationCount)
	case FieldMid:
		rec.Guidance = "Balanced approach: mix safe plays with contrarian spots."
		half := recommendationCount / 2
		rec.Players = append(
			head(byPlayType(table, models.PlayChalk), half),
			head(byPlayType(table, models.PlaySmash), half)...,
		)
	default:
		rec.Guidance = "Safer approach: use chalk with one or two contrarian spots."
		rec.Players = head(byPlayType(table, models.PlayChalk, models.PlayLeverage), recommendationCount)
	}

	if rec.Players == nil {
		rec.Players = []models.PlayerRecord{}
	}
	return rec
}

func head(players []models.PlayerRecord, n int) []models.PlayerRecord {
	if len(players) > n {
		return players[:n]
	}
	return players
}
