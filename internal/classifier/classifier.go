// Package classifier labels players by play type and scores how contrarian
// they are from rank and projected ownership.
package classifier

import (
	"fmt"
	"math"

	"github.com/jstittsworth/contrarian-dfs/internal/models"
)

// Play type thresholds. Lower bounds are inclusive, upper bounds exclusive.
const (
	SmashMaxRank         = 3
	SmashMaxOwnership    = 15.0
	LeverageMaxRank      = 5
	LeverageMinOwnership = 15.0
	LeverageMaxOwnership = 20.0
	ChalkMinOwnership    = 25.0
)

// Weights tune the contrarian score. Rank and Ownership are relative weights;
// ranks at or beyond RankCeiling earn nothing for rank.
type Weights struct {
	Rank        float64 `json:"rank"`
	Ownership   float64 `json:"ownership"`
	RankCeiling int     `json:"rank_ceiling"`
}

func DefaultWeights() Weights {
	return Weights{Rank: 0.5, Ownership: 0.5, RankCeiling: 50}
}

type Classifier struct {
	weights Weights
}

// New returns a classifier. Negative weights are treated as zero and a rank
// ceiling below 2 is raised to 2 so the score stays monotone.
func New(w Weights) *Classifier {
	w.Rank = math.Max(0, w.Rank)
	w.Ownership = math.Max(0, w.Ownership)
	if w.RankCeiling < 2 {
		w.RankCeiling = 2
	}
	return &Classifier{weights: w}
}

func (c *Classifier) Weights() Weights {
	return c.weights
}

// Fingerprint identifies the weights in cache keys so that tables scored
// under other settings are never reused.
func (w Weights) Fingerprint() string {
	return fmt.Sprintf("%g-%g-%d", w.Rank, w.Ownership, w.RankCeiling)
}

// Classify maps (rank, ownership) to a play type and a computed contrarian
// score. Rules are evaluated in order and the first match wins.
func (c *Classifier) Classify(rank int, ownershipPct float64) (models.PlayType, float64) {
	return PlayType(rank, ownershipPct), c.Score(rank, ownershipPct)
}

// PlayType applies the fixed rule precedence.
func PlayType(rank int, ownershipPct float64) models.PlayType {
	switch {
	case rank <= SmashMaxRank && ownershipPct < SmashMaxOwnership:
		return models.PlaySmash
	case rank <= LeverageMaxRank && ownershipPct >= LeverageMinOwnership && ownershipPct < LeverageMaxOwnership:
		return models.PlayLeverage
	case ownershipPct >= ChalkMinOwnership:
		return models.PlayChalk
	default:
		return models.PlayNeutral
	}
}

// Score returns a value in [0,100]. It never decreases when rank improves or
// ownership drops.
func (c *Classifier) Score(rank int, ownershipPct float64) float64 {
	total := c.weights.Rank + c.weights.Ownership
	if total == 0 {
		return models.DefaultContrarianScore
	}

	ceiling := c.weights.RankCeiling
	r := rank
	if r < 1 {
		r = 1
	}
	if r > ceiling {
		r = ceiling
	}
	rankComponent := 100 * float64(ceiling-r) / float64(ceiling-1)

	own := math.Max(0, math.Min(100, ownershipPct))
	ownershipComponent := 100 - own

	score := (c.weights.Rank*rankComponent + c.weights.Ownership*ownershipComponent) / total
	return math.Round(score*10) / 10
}

// ClassifyRecord returns a copy of rec with play type and contrarian score
// attached. A score supplied by the data source is kept as is.
func (c *Classifier) ClassifyRecord(rec models.PlayerRecord) models.PlayerRecord {
	playType, score := c.Classify(rec.Rank, rec.OwnershipPct)
	rec.PlayType = playType
	if !rec.ScoreSupplied {
		rec.ContrarianScore = score
	}
	return rec
}

// ClassifyAll classifies every record into a new slice, preserving order.
func (c *Classifier) ClassifyAll(records []models.PlayerRecord) []models.PlayerRecord {
	out := make([]models.PlayerRecord, len(records))
	for i, rec := range records {
		out[i] = c.ClassifyRecord(rec)
	}
	return out
}
