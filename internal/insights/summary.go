package insights

import (
	"sort"

	"github.com/jstittsworth/contrarian-dfs/internal/models"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const topValueCount = 5

// Distribution describes one numeric column of the table.
type Distribution struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// ValuePlay is a player ranked by projected points per $1000.
type ValuePlay struct {
	Name            string          `json:"name"`
	Position        models.Position `json:"position"`
	Salary          int             `json:"salary"`
	PointsPerDollar float64         `json:"points_per_dollar"`
}

// Summary backs the analytics dashboard.
type Summary struct {
	Players             int                         `json:"players"`
	PlayTypeCounts      map[models.PlayType]int     `json:"play_type_counts"`
	PositionCounts      map[models.Position]int     `json:"position_counts"`
	Ownership           Distribution                `json:"ownership"`
	ProjectedPoints     Distribution                `json:"projected_points"`
	OwnershipByPosition map[models.Position]float64 `json:"ownership_by_position"`
	TopValues           []ValuePlay                 `json:"top_values"`
}

// Summarize computes counts and distributions over a classified table.
func Summarize(table []models.PlayerRecord) Summary {
	s := Summary{
		Players:             len(table),
		PlayTypeCounts:      make(map[models.PlayType]int),
		PositionCounts:      make(map[models.Position]int),
		OwnershipByPosition: make(map[models.Position]float64),
		TopValues:           []ValuePlay{},
	}
	if len(table) == 0 {
		return s
	}

	ownership := make([]float64, len(table))
	points := make([]float64, len(table))
	byPosition := make(map[models.Position][]float64)
	values := make([]ValuePlay, 0, len(table))

	for i, p := range table {
		s.PlayTypeCounts[p.PlayType]++
		s.PositionCounts[p.Position]++
		ownership[i] = p.OwnershipPct
		points[i] = p.ProjectedPoints
		byPosition[p.Position] = append(byPosition[p.Position], p.OwnershipPct)
		if p.Salary > 0 {
			values = append(values, ValuePlay{
				Name:            p.Name,
				Position:        p.Position,
				Salary:          p.Salary,
				PointsPerDollar: p.PointsPerDollar(),
			})
		}
	}

	s.Ownership = describe(ownership)
	s.ProjectedPoints = describe(points)
	for pos, own := range byPosition {
		s.OwnershipByPosition[pos] = stat.Mean(own, nil)
	}

	sort.SliceStable(values, func(i, j int) bool {
		if values[i].PointsPerDollar != values[j].PointsPerDollar {
			return values[i].PointsPerDollar > values[j].PointsPerDollar
		}
		return values[i].Name < values[j].Name
	})
	if len(values) > topValueCount {
		values = values[:topValueCount]
	}
	s.TopValues = values

	return s
}

func describe(x []float64) Distribution {
	sorted := append([]float64(nil), x...)
	sort.Float64s(sorted)

	d := Distribution{
		Mean:   stat.Mean(sorted, nil),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Min:    floats.Min(sorted),
		Max:    floats.Max(sorted),
	}
	// Sample deviation is undefined for a single value.
	if len(sorted) > 1 {
		d.StdDev = stat.StdDev(sorted, nil)
	}
	return d
}
