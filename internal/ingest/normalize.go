// Package ingest turns loosely typed source rows into PlayerRecords,
// coercing missing or non-numeric fields to the documented defaults.
package ingest

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jstittsworth/contrarian-dfs/internal/models"
	"gorm.io/datatypes"
)

// ErrInvalidRecord marks a row that is unusable even after default filling.
var ErrInvalidRecord = errors.New("invalid record")

// maxCount bounds rank and salary so the int conversion stays defined.
const maxCount = math.MaxInt32

// RawPlayer is a source row. Numeric fields are untyped so that strings such
// as "12.5", "12%" or "N/A" can be coerced instead of failing the decode.
type RawPlayer struct {
	Name            string                 `json:"name"`
	PlayerName      string                 `json:"player_name"`
	Position        string                 `json:"position"`
	Team            string                 `json:"team"`
	Rank            any                    `json:"rank"`
	PlayerRank      any                    `json:"player_rank"`
	OwnershipPct    any                    `json:"ownership_pct"`
	ProjectedPoints any                    `json:"projected_points"`
	Salary          any                    `json:"salary"`
	EstimatedSalary any                    `json:"estimated_salary"`
	ContrarianScore any                    `json:"contrarian_score"`
	PlayType        string                 `json:"play_type"`
	MatchupRating   any                    `json:"matchup_rating"`
	InjuryStatus    string                 `json:"injury_status"`
	Extra           map[string]interface{} `json:"extra,omitempty"`
}

// Normalize applies the default policy to a single row. The play type is not
// derived here; the classifier owns that.
func Normalize(raw RawPlayer) (models.PlayerRecord, error) {
	name := strings.TrimSpace(raw.Name)
	if name == "" {
		name = strings.TrimSpace(raw.PlayerName)
	}
	if name == "" {
		return models.PlayerRecord{}, fmt.Errorf("%w: missing player name", ErrInvalidRecord)
	}

	rec := models.PlayerRecord{
		Name:         name,
		Position:     models.ParsePosition(raw.Position),
		Team:         strings.ToUpper(strings.TrimSpace(raw.Team)),
		InjuryStatus: strings.TrimSpace(raw.InjuryStatus),
		PlayType:     models.PlayNeutral,
	}

	rank, ok := toFloat(firstPresent(raw.Rank, raw.PlayerRank))
	if !ok || rank < 1 || rank > maxCount {
		rec.Rank = models.DefaultRank
	} else {
		rec.Rank = int(math.Round(rank))
	}

	if own, ok := toFloat(raw.OwnershipPct); ok {
		rec.OwnershipPct = clamp(own, 0, 100)
	} else {
		rec.OwnershipPct = models.DefaultOwnershipPct
	}

	if pts, ok := toFloat(raw.ProjectedPoints); ok && pts >= 0 {
		rec.ProjectedPoints = pts
	} else {
		rec.ProjectedPoints = models.DefaultProjectedPoints
	}

	if salary, ok := toFloat(firstPresent(raw.Salary, raw.EstimatedSalary)); ok && salary >= 0 && salary <= maxCount {
		rec.Salary = int(math.Round(salary))
	} else {
		rec.Salary = models.DefaultSalary
	}

	if score, ok := toFloat(raw.ContrarianScore); ok {
		rec.ContrarianScore = clamp(score, 0, 100)
		rec.ScoreSupplied = true
	} else {
		rec.ContrarianScore = models.DefaultContrarianScore
	}

	if matchup, ok := toFloat(raw.MatchupRating); ok {
		rec.MatchupRating = &matchup
	}

	if pt := models.PlayType(strings.ToUpper(strings.TrimSpace(raw.PlayType))); pt.Valid() {
		rec.PlayType = pt
	}

	if len(raw.Extra) > 0 {
		rec.Extra = datatypes.JSONMap(raw.Extra)
	}

	return rec, nil
}

// NormalizeAll normalizes every row, dropping invalid ones. It returns the
// usable records in source order and the number of dropped rows.
func NormalizeAll(raws []RawPlayer) ([]models.PlayerRecord, int) {
	records := make([]models.PlayerRecord, 0, len(raws))
	dropped := 0
	for _, raw := range raws {
		rec, err := Normalize(raw)
		if err != nil {
			dropped++
			continue
		}
		records = append(records, rec)
	}
	return records, dropped
}

func firstPresent(values ...any) any {
	for _, v := range values {
		if v == nil {
			continue
		}
		if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
			continue
		}
		return v
	}
	return nil
}

// toFloat coerces a decoded JSON value to a finite float.
func toFloat(v any) (float64, bool) {
	var f float64
	switch val := v.(type) {
	case nil:
		return 0, false
	case float64:
		f = val
	case float32:
		f = float64(val)
	case int:
		f = float64(val)
	case int64:
		f = float64(val)
	case json.Number:
		parsed, err := val.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		s := strings.TrimSpace(val)
		s = strings.TrimSuffix(s, "%")
		s = strings.TrimPrefix(s, "$")
		s = strings.ReplaceAll(s, ",", "")
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
