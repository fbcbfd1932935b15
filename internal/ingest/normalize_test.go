package ingest

import (
	"encoding/json"
	"testing"

	"github.com/jstittsworth/contrarian-dfs/internal/classifier"
	"github.com/jstittsworth/contrarian-dfs/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_Defaults(t *testing.T) {
	rec, err := Normalize(RawPlayer{Name: "Josh Allen"})
	require.NoError(t, err)

	assert.Equal(t, "Josh Allen", rec.Name)
	assert.Equal(t, models.PositionFLEX, rec.Position)
	assert.Equal(t, models.DefaultRank, rec.Rank)
	assert.Equal(t, models.DefaultOwnershipPct, rec.OwnershipPct)
	assert.Equal(t, models.DefaultProjectedPoints, rec.ProjectedPoints)
	assert.Equal(t, models.DefaultSalary, rec.Salary)
	assert.Equal(t, models.DefaultContrarianScore, rec.ContrarianScore)
	assert.False(t, rec.ScoreSupplied)
	assert.Equal(t, models.PlayNeutral, rec.PlayType)
	assert.Nil(t, rec.MatchupRating)
}

func TestNormalize_Coercion(t *testing.T) {
	tests := []struct {
		name   string
		raw    RawPlayer
		verify func(t *testing.T, rec models.PlayerRecord)
	}{
		{
			name: "numeric strings",
			raw:  RawPlayer{Name: "A", Rank: "3", OwnershipPct: "12.5%", ProjectedPoints: "18.4", Salary: "$7,800"},
			verify: func(t *testing.T, rec models.PlayerRecord) {
				assert.Equal(t, 3, rec.Rank)
				assert.Equal(t, 12.5, rec.OwnershipPct)
				assert.Equal(t, 18.4, rec.ProjectedPoints)
				assert.Equal(t, 7800, rec.Salary)
			},
		},
		{
			name: "garbage falls back to defaults",
			raw:  RawPlayer{Name: "A", Rank: "N/A", OwnershipPct: "unknown", ProjectedPoints: true, Salary: "", ContrarianScore: "n/a"},
			verify: func(t *testing.T, rec models.PlayerRecord) {
				assert.Equal(t, models.DefaultRank, rec.Rank)
				assert.Equal(t, models.DefaultOwnershipPct, rec.OwnershipPct)
				assert.Equal(t, models.DefaultProjectedPoints, rec.ProjectedPoints)
				assert.Equal(t, models.DefaultSalary, rec.Salary)
				assert.Equal(t, models.DefaultContrarianScore, rec.ContrarianScore)
			},
		},
		{
			name: "ownership clamped",
			raw:  RawPlayer{Name: "A", OwnershipPct: 140.0},
			verify: func(t *testing.T, rec models.PlayerRecord) {
				assert.Equal(t, 100.0, rec.OwnershipPct)
			},
		},
		{
			name: "non-positive rank is unranked",
			raw:  RawPlayer{Name: "A", Rank: 0.0},
			verify: func(t *testing.T, rec models.PlayerRecord) {
				assert.Equal(t, models.DefaultRank, rec.Rank)
			},
		},
		{
			name: "out of range numbers fall back to defaults",
			raw:  RawPlayer{Name: "A", Rank: "1e20", OwnershipPct: 5.0, ProjectedPoints: -3.0, Salary: 1e20},
			verify: func(t *testing.T, rec models.PlayerRecord) {
				assert.Equal(t, models.DefaultRank, rec.Rank)
				assert.Equal(t, models.DefaultProjectedPoints, rec.ProjectedPoints)
				assert.Equal(t, models.DefaultSalary, rec.Salary)
				assert.Equal(t, models.PlayNeutral, classifier.PlayType(rec.Rank, rec.OwnershipPct))
			},
		},
		{
			name: "negative salary and rank",
			raw:  RawPlayer{Name: "A", Rank: -3, Salary: -500, ProjectedPoints: "0"},
			verify: func(t *testing.T, rec models.PlayerRecord) {
				assert.Equal(t, models.DefaultRank, rec.Rank)
				assert.Equal(t, models.DefaultSalary, rec.Salary)
				assert.Equal(t, 0.0, rec.ProjectedPoints)
			},
		},
		{
			name: "legacy column names",
			raw:  RawPlayer{PlayerName: " Lamar Jackson ", PlayerRank: 2.0, EstimatedSalary: 8200.0, Position: "qb"},
			verify: func(t *testing.T, rec models.PlayerRecord) {
				assert.Equal(t, "Lamar Jackson", rec.Name)
				assert.Equal(t, 2, rec.Rank)
				assert.Equal(t, 8200, rec.Salary)
				assert.Equal(t, models.PositionQB, rec.Position)
			},
		},
		{
			name: "supplied contrarian score and play type",
			raw:  RawPlayer{Name: "A", ContrarianScore: 88.4, PlayType: "smash_play", MatchupRating: "7"},
			verify: func(t *testing.T, rec models.PlayerRecord) {
				assert.Equal(t, 88.4, rec.ContrarianScore)
				assert.True(t, rec.ScoreSupplied)
				assert.Equal(t, models.PlaySmash, rec.PlayType)
				require.NotNil(t, rec.MatchupRating)
				assert.Equal(t, 7.0, *rec.MatchupRating)
			},
		},
		{
			name: "unknown play type ignored",
			raw:  RawPlayer{Name: "A", PlayType: "BOOM"},
			verify: func(t *testing.T, rec models.PlayerRecord) {
				assert.Equal(t, models.PlayNeutral, rec.PlayType)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := Normalize(tt.raw)
			require.NoError(t, err)
			tt.verify(t, rec)
		})
	}
}

func TestNormalize_MissingName(t *testing.T) {
	_, err := Normalize(RawPlayer{Name: "   ", Position: "QB"})
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestNormalizeAll_DropsInvalidRows(t *testing.T) {
	var raws []RawPlayer
	payload := `[
		{"player_name": "Josh Allen", "position": "QB", "player_rank": 1, "ownership_pct": "35.2"},
		{"position": "RB"},
		{"name": "Derrick Henry", "position": "RB", "estimated_salary": 7800}
	]`
	require.NoError(t, json.Unmarshal([]byte(payload), &raws))

	records, dropped := NormalizeAll(raws)

	assert.Equal(t, 1, dropped)
	require.Len(t, records, 2)
	assert.Equal(t, "Josh Allen", records[0].Name)
	assert.Equal(t, 35.2, records[0].OwnershipPct)
	assert.Equal(t, "Derrick Henry", records[1].Name)
	assert.Equal(t, 7800, records[1].Salary)
}

func TestSamplePlayers(t *testing.T) {
	records, dropped := NormalizeAll(SamplePlayers())

	assert.Zero(t, dropped)
	require.Len(t, records, 8)
	assert.Equal(t, "Josh Allen", records[0].Name)
	assert.Equal(t, 8500, records[0].Salary)
	assert.True(t, records[0].ScoreSupplied)
	assert.Equal(t, 65.2, records[0].ContrarianScore)
}
