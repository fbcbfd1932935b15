package optimizer

import (
	"github.com/jstittsworth/contrarian-dfs/internal/models"
)

// Strategy weights for the ranking key.
const (
	tournamentPointsWeight     = 0.4
	tournamentContrarianWeight = 0.6
	cashPointsWeight           = 0.7
	cashValueWeight            = 0.3
)

// StrategyScore computes the selection-order key for a player under a strategy.
// It orders candidates; it never filters them.
func StrategyScore(strategy models.Strategy, p models.PlayerRecord) float64 {
	switch strategy {
	case models.StrategyTournament:
		return tournamentPointsWeight*p.ProjectedPoints + tournamentContrarianWeight*p.ContrarianScore
	case models.StrategyCash:
		return cashPointsWeight*p.ProjectedPoints + cashValueWeight*p.PointsPerDollar()
	case models.StrategyUltraContrarian:
		return p.ContrarianScore
	default:
		return 0
	}
}

func validStrategy(s models.Strategy) bool {
	switch s {
	case models.StrategyTournament, models.StrategyCash, models.StrategyUltraContrarian:
		return true
	}
	return false
}
