package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Defaults applied when a source row omits or garbles a numeric field.
const (
	DefaultRank            = 999
	DefaultOwnershipPct    = 15.0
	DefaultProjectedPoints = 10.0
	DefaultSalary          = 5000
	DefaultContrarianScore = 50.0
)

type Position string

const (
	PositionQB   Position = "QB"
	PositionRB   Position = "RB"
	PositionWR   Position = "WR"
	PositionTE   Position = "TE"
	PositionFLEX Position = "FLEX"
)

// ParsePosition maps a source value onto a Position. Anything unrecognised
// becomes FLEX, the ingestion default.
func ParsePosition(s string) Position {
	switch Position(strings.ToUpper(strings.TrimSpace(s))) {
	case PositionQB:
		return PositionQB
	case PositionRB:
		return PositionRB
	case PositionWR:
		return PositionWR
	case PositionTE:
		return PositionTE
	default:
		return PositionFLEX
	}
}

// IsFlexEligible reports whether a player at this position may fill the FLEX slot.
func (p Position) IsFlexEligible() bool {
	return p == PositionRB || p == PositionWR || p == PositionTE
}

type PlayType string

const (
	PlaySmash    PlayType = "SMASH_PLAY"
	PlayLeverage PlayType = "LEVERAGE_PLAY"
	PlayChalk    PlayType = "CHALK_PLAY"
	PlayNeutral  PlayType = "NEUTRAL"
	// PlayAvoid is accepted from sources but never produced by the classifier.
	PlayAvoid PlayType = "AVOID"
)

func (t PlayType) Valid() bool {
	switch t {
	case PlaySmash, PlayLeverage, PlayChalk, PlayNeutral, PlayAvoid:
		return true
	}
	return false
}

// PlayerRecord is one row per player per evaluation period.
type PlayerRecord struct {
	ID              uint              `gorm:"primaryKey" json:"id"`
	Name            string            `gorm:"uniqueIndex;not null" json:"name"`
	Position        Position          `gorm:"not null;index" json:"position"`
	Team            string            `json:"team,omitempty"`
	Rank            int               `gorm:"not null" json:"rank"`
	OwnershipPct    float64           `gorm:"not null" json:"ownership_pct"`
	ProjectedPoints float64           `gorm:"not null" json:"projected_points"`
	Salary          int               `gorm:"not null" json:"salary"`
	ContrarianScore float64           `gorm:"not null" json:"contrarian_score"`
	ScoreSupplied   bool              `gorm:"default:false" json:"score_supplied"`
	PlayType        PlayType          `gorm:"-" json:"play_type"`
	MatchupRating   *float64          `json:"matchup_rating,omitempty"`
	InjuryStatus    string            `json:"injury_status,omitempty"`
	Extra           datatypes.JSONMap `json:"extra,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (PlayerRecord) TableName() string {
	return "players"
}

// PointsPerDollar is projected points per $1000 of salary.
func (p PlayerRecord) PointsPerDollar() float64 {
	if p.Salary <= 0 {
		return 0
	}
	return p.ProjectedPoints / (float64(p.Salary) / 1000)
}
