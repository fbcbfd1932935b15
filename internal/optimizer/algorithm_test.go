package optimizer

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/jstittsworth/contrarian-dfs/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func examplePlayers() []models.PlayerRecord {
	return []models.PlayerRecord{
		{Name: "Josh Allen", Position: models.PositionQB, Rank: 1, Salary: 8000, ProjectedPoints: 24.8, OwnershipPct: 35.2, ContrarianScore: 65.2},
		{Name: "Derrick Henry", Position: models.PositionRB, Rank: 1, Salary: 7000, ProjectedPoints: 18.5, OwnershipPct: 28.5, ContrarianScore: 72.1},
		{Name: "Christian McCaffrey", Position: models.PositionRB, Rank: 2, Salary: 6000, ProjectedPoints: 17.8, OwnershipPct: 8.1, ContrarianScore: 91.5},
		{Name: "Cooper Kupp", Position: models.PositionWR, Rank: 1, Salary: 7500, ProjectedPoints: 16.2, OwnershipPct: 42.1, ContrarianScore: 58.3},
		{Name: "Davante Adams", Position: models.PositionWR, Rank: 2, Salary: 6500, ProjectedPoints: 15.8, OwnershipPct: 15.3, ContrarianScore: 79.8},
		{Name: "Tyreek Hill", Position: models.PositionWR, Rank: 3, Salary: 5000, ProjectedPoints: 14.1, OwnershipPct: 11.0, ContrarianScore: 84.0},
		{Name: "Travis Kelce", Position: models.PositionTE, Rank: 1, Salary: 6000, ProjectedPoints: 13.5, OwnershipPct: 31.7, ContrarianScore: 68.9},
		{Name: "Josh Jacobs", Position: models.PositionRB, Rank: 3, Salary: 4000, ProjectedPoints: 12.2, OwnershipPct: 9.5, ContrarianScore: 86.0},
	}
}

func assertRosterInvariants(t *testing.T, lineup *models.Lineup, salaryCap int) {
	t.Helper()

	require.NotNil(t, lineup)
	assert.Len(t, lineup.Slots, 8, "lineup should have 8 players")
	assert.LessOrEqual(t, lineup.TotalSalary, salaryCap)

	counts := make(map[string]int)
	seen := make(map[string]bool)
	total := 0
	for _, s := range lineup.Slots {
		counts[s.Slot]++
		assert.False(t, seen[s.Player.Name], "player %s appears twice", s.Player.Name)
		seen[s.Player.Name] = true
		total += s.Player.Salary

		if s.Slot == models.SlotFlex {
			assert.True(t, s.Player.Position.IsFlexEligible(), "FLEX filled by %s", s.Player.Position)
		} else {
			assert.Equal(t, s.Slot, string(s.Player.Position))
		}
	}

	assert.Equal(t, 1, counts["QB"])
	assert.Equal(t, 2, counts["RB"])
	assert.Equal(t, 3, counts["WR"])
	assert.Equal(t, 1, counts["TE"])
	assert.Equal(t, 1, counts["FLEX"])
	assert.Equal(t, total, lineup.TotalSalary)
	assert.Equal(t, salaryCap-total, lineup.SalaryRemaining)
}

func requireNoValidLineup(t *testing.T, err error, kind FailureKind) *NoValidLineupError {
	t.Helper()

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoValidLineup))

	var nvl *NoValidLineupError
	require.True(t, errors.As(err, &nvl), "expected *NoValidLineupError, got %T", err)
	assert.Equal(t, kind, nvl.Kind)
	assert.NotEmpty(t, nvl.Reason)
	return nvl
}

func TestBuildLineup_CashExample(t *testing.T) {
	lineup, err := BuildLineup(examplePlayers(), BuildRequest{
		Strategy:  models.StrategyCash,
		SalaryCap: 50000,
	})
	require.NoError(t, err)

	assertRosterInvariants(t, lineup, 50000)
	assert.Equal(t, models.StrategyCash, lineup.Strategy)
	assert.Equal(t, 50000, lineup.TotalSalary)
}

func TestBuildLineup_AllStrategiesSatisfyInvariants(t *testing.T) {
	strategies := []models.Strategy{models.StrategyTournament, models.StrategyCash, models.StrategyUltraContrarian}

	for _, strategy := range strategies {
		t.Run(string(strategy), func(t *testing.T) {
			lineup, err := BuildLineup(examplePlayers(), BuildRequest{Strategy: strategy, SalaryCap: 50000})
			require.NoError(t, err)
			assertRosterInvariants(t, lineup, 50000)
		})
	}
}

func TestBuildLineup_Deterministic(t *testing.T) {
	players := examplePlayers()
	players = append(players,
		models.PlayerRecord{Name: "Mark Andrews", Position: models.PositionTE, Rank: 2, Salary: 5200, ProjectedPoints: 12.1, OwnershipPct: 11.2, ContrarianScore: 82.7},
		models.PlayerRecord{Name: "Lamar Jackson", Position: models.PositionQB, Rank: 2, Salary: 8200, ProjectedPoints: 23.2, OwnershipPct: 12.8, ContrarianScore: 88.4},
		models.PlayerRecord{Name: "Stefon Diggs", Position: models.PositionWR, Rank: 4, Salary: 6000, ProjectedPoints: 14.9, OwnershipPct: 18.0, ContrarianScore: 79.8},
	)
	req := BuildRequest{Strategy: models.StrategyTournament, SalaryCap: 50000}

	first, err := BuildLineup(players, req)
	require.NoError(t, err)
	second, err := BuildLineup(players, req)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := append([]models.PlayerRecord(nil), players...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got, err := BuildLineup(shuffled, req)
		require.NoError(t, err)
		assert.Equal(t, first.Names(), got.Names(), "selection must not depend on table order")
	}
}

func TestBuildLineup_DoesNotMutateInput(t *testing.T) {
	players := examplePlayers()
	players[0].Name = "  Josh Allen  "
	snapshot := append([]models.PlayerRecord(nil), players...)

	_, err := BuildLineup(players, BuildRequest{Strategy: models.StrategyCash, SalaryCap: 50000, Exclude: []string{"Nobody"}})
	require.NoError(t, err)

	assert.Equal(t, snapshot, players)
}

func TestBuildLineup_MustIncludeOverCap(t *testing.T) {
	players := append(examplePlayers(), models.PlayerRecord{
		Name: "Patrick Mahomes", Position: models.PositionQB, Rank: 3, Salary: 60000, ProjectedPoints: 25, ContrarianScore: 40,
	})

	_, err := BuildLineup(players, BuildRequest{
		Strategy:    models.StrategyTournament,
		SalaryCap:   50000,
		MustInclude: []string{"Patrick Mahomes"},
	})

	nvl := requireNoValidLineup(t, err, FailureInsufficientBudget)
	assert.Contains(t, nvl.Reason, "insufficient budget")
}

func TestBuildLineup_ExcludeEveryWR(t *testing.T) {
	_, err := BuildLineup(examplePlayers(), BuildRequest{
		Strategy:  models.StrategyCash,
		SalaryCap: 50000,
		Exclude:   []string{"Cooper Kupp", "Davante Adams", "Tyreek Hill"},
	})

	nvl := requireNoValidLineup(t, err, FailurePositionScarcity)
	assert.Equal(t, "WR", nvl.Position)
	assert.Contains(t, nvl.Reason, "WR")
}

func TestBuildLineup_PositionScarcity(t *testing.T) {
	tests := []struct {
		name     string
		exclude  []string
		position string
	}{
		{name: "only two WRs", exclude: []string{"Tyreek Hill"}, position: "WR"},
		{name: "no QB", exclude: []string{"Josh Allen"}, position: "QB"},
		{name: "no spare for FLEX", exclude: []string{"Josh Jacobs"}, position: "FLEX"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildLineup(examplePlayers(), BuildRequest{Strategy: models.StrategyCash, SalaryCap: 50000, Exclude: tt.exclude})
			nvl := requireNoValidLineup(t, err, FailurePositionScarcity)
			assert.Equal(t, tt.position, nvl.Position)
		})
	}
}

func TestBuildLineup_EmptyPool(t *testing.T) {
	players := []models.PlayerRecord{
		{Name: "Zero Salary", Position: models.PositionQB, Salary: 0, ProjectedPoints: 20},
		{Name: "Zero Points", Position: models.PositionRB, Salary: 5000, ProjectedPoints: 0},
		{Name: "", Position: models.PositionWR, Salary: 5000, ProjectedPoints: 10},
		{Name: "Slot Only", Position: models.PositionFLEX, Salary: 5000, ProjectedPoints: 10},
	}

	_, err := BuildLineup(players, BuildRequest{Strategy: models.StrategyCash, SalaryCap: 50000})
	requireNoValidLineup(t, err, FailureEmptyPool)

	_, err = BuildLineup(nil, BuildRequest{Strategy: models.StrategyCash, SalaryCap: 50000})
	requireNoValidLineup(t, err, FailureEmptyPool)
}

func TestBuildLineup_InsufficientBudget(t *testing.T) {
	_, err := BuildLineup(examplePlayers(), BuildRequest{Strategy: models.StrategyCash, SalaryCap: 45000})

	nvl := requireNoValidLineup(t, err, FailureInsufficientBudget)
	assert.NotEmpty(t, nvl.Position)
	assert.Contains(t, nvl.Reason, "does not backtrack")
}

func TestBuildLineup_SkipsCandidatesThatDoNotFit(t *testing.T) {
	players := []models.PlayerRecord{
		{Name: "QB1", Position: models.PositionQB, Salary: 5000, ProjectedPoints: 20, ContrarianScore: 90},
		{Name: "RB1", Position: models.PositionRB, Salary: 5000, ProjectedPoints: 15, ContrarianScore: 90},
		{Name: "RB2", Position: models.PositionRB, Salary: 5000, ProjectedPoints: 15, ContrarianScore: 85},
		{Name: "RB3", Position: models.PositionRB, Salary: 3000, ProjectedPoints: 10, ContrarianScore: 40},
		{Name: "WR1", Position: models.PositionWR, Salary: 5000, ProjectedPoints: 15, ContrarianScore: 90},
		{Name: "WR2", Position: models.PositionWR, Salary: 5000, ProjectedPoints: 15, ContrarianScore: 85},
		{Name: "WR3", Position: models.PositionWR, Salary: 5000, ProjectedPoints: 15, ContrarianScore: 80},
		{Name: "TE Star", Position: models.PositionTE, Salary: 9000, ProjectedPoints: 18, ContrarianScore: 95},
		{Name: "TE Value", Position: models.PositionTE, Salary: 3000, ProjectedPoints: 8, ContrarianScore: 60},
	}

	lineup, err := BuildLineup(players, BuildRequest{Strategy: models.StrategyUltraContrarian, SalaryCap: 36000})
	require.NoError(t, err)

	assertRosterInvariants(t, lineup, 36000)
	assert.Contains(t, lineup.Names(), "TE Value")
	assert.NotContains(t, lineup.Names(), "TE Star")
	assert.Equal(t, 36000, lineup.TotalSalary)
	assert.Equal(t, "RB3", lineup.Slots[7].Player.Name)
}

func TestBuildLineup_MustInclude(t *testing.T) {
	t.Run("forced into own slot", func(t *testing.T) {
		players := append(examplePlayers(), models.PlayerRecord{
			Name: "Backup QB", Position: models.PositionQB, Salary: 4000, ProjectedPoints: 11, ContrarianScore: 10,
		})

		lineup, err := BuildLineup(players, BuildRequest{
			Strategy:    models.StrategyCash,
			SalaryCap:   50000,
			MustInclude: []string{"Backup QB"},
		})
		require.NoError(t, err)

		assertRosterInvariants(t, lineup, 50000)
		assert.Equal(t, "Backup QB", lineup.Slots[0].Player.Name)
		assert.NotContains(t, lineup.Names(), "Josh Allen")
	})

	t.Run("overflow goes to FLEX", func(t *testing.T) {
		lineup, err := BuildLineup(examplePlayers(), BuildRequest{
			Strategy:    models.StrategyCash,
			SalaryCap:   50000,
			MustInclude: []string{"Derrick Henry", "Christian McCaffrey", "Josh Jacobs"},
		})
		require.NoError(t, err)

		assertRosterInvariants(t, lineup, 50000)
		flex := lineup.Slots[7]
		assert.Equal(t, models.SlotFlex, flex.Slot)
		assert.Equal(t, models.PositionRB, flex.Player.Position)
	})

	t.Run("too many at one position", func(t *testing.T) {
		players := append(examplePlayers(), models.PlayerRecord{
			Name: "Backup QB", Position: models.PositionQB, Salary: 4000, ProjectedPoints: 11,
		})

		_, err := BuildLineup(players, BuildRequest{
			Strategy:    models.StrategyCash,
			SalaryCap:   50000,
			MustInclude: []string{"Josh Allen", "Backup QB"},
		})
		nvl := requireNoValidLineup(t, err, FailureConstraintConflict)
		assert.Equal(t, "QB", nvl.Position)
	})

	t.Run("unknown player", func(t *testing.T) {
		_, err := BuildLineup(examplePlayers(), BuildRequest{
			Strategy:    models.StrategyCash,
			SalaryCap:   50000,
			MustInclude: []string{"Tom Brady"},
		})
		nvl := requireNoValidLineup(t, err, FailureConstraintConflict)
		assert.Contains(t, nvl.Reason, "Tom Brady")
	})

	t.Run("included and excluded", func(t *testing.T) {
		_, err := BuildLineup(examplePlayers(), BuildRequest{
			Strategy:    models.StrategyCash,
			SalaryCap:   50000,
			MustInclude: []string{"Travis Kelce"},
			Exclude:     []string{"Travis Kelce"},
		})
		requireNoValidLineup(t, err, FailureConstraintConflict)
	})
}

func TestBuildLineup_InvalidRequest(t *testing.T) {
	_, err := BuildLineup(examplePlayers(), BuildRequest{Strategy: "SHOWDOWN", SalaryCap: 50000})
	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.False(t, errors.Is(err, ErrNoValidLineup))

	_, err = BuildLineup(examplePlayers(), BuildRequest{Strategy: models.StrategyCash, SalaryCap: 0})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestBuildLineup_DuplicateNamesCollapsed(t *testing.T) {
	players := append(examplePlayers(), models.PlayerRecord{
		Name: "Josh Allen", Position: models.PositionQB, Rank: 1, Salary: 8000, ProjectedPoints: 5, ContrarianScore: 1,
	})

	lineup, err := BuildLineup(players, BuildRequest{Strategy: models.StrategyCash, SalaryCap: 50000})
	require.NoError(t, err)

	assertRosterInvariants(t, lineup, 50000)
	assert.Equal(t, 24.8, lineup.Slots[0].Player.ProjectedPoints)
}

func TestBuildLineup_TieBreaks(t *testing.T) {
	players := examplePlayers()
	players = append(players,
		models.PlayerRecord{Name: "Tie Expensive", Position: models.PositionQB, Salary: 7000, ProjectedPoints: 10, ContrarianScore: 99},
		models.PlayerRecord{Name: "Tie Cheap B", Position: models.PositionQB, Salary: 6000, ProjectedPoints: 10, ContrarianScore: 99},
		models.PlayerRecord{Name: "Tie Cheap A", Position: models.PositionQB, Salary: 6000, ProjectedPoints: 10, ContrarianScore: 99},
	)

	lineup, err := BuildLineup(players, BuildRequest{Strategy: models.StrategyUltraContrarian, SalaryCap: 60000})
	require.NoError(t, err)

	assert.Equal(t, "Tie Cheap A", lineup.Slots[0].Player.Name)
}

func TestStrategyScore(t *testing.T) {
	p := models.PlayerRecord{ProjectedPoints: 20, Salary: 5000, ContrarianScore: 80}

	assert.InDelta(t, 0.4*20+0.6*80, StrategyScore(models.StrategyTournament, p), 1e-9)
	assert.InDelta(t, 0.7*20+0.3*4, StrategyScore(models.StrategyCash, p), 1e-9)
	assert.InDelta(t, 80, StrategyScore(models.StrategyUltraContrarian, p), 1e-9)
	assert.Zero(t, StrategyScore("UNKNOWN", p))
}

func TestNoValidLineupError(t *testing.T) {
	err := noValidLineup(FailurePositionScarcity, "WR", "no %s candidates", "WR")

	assert.Equal(t, "no valid lineup: no WR candidates", err.Error())
	assert.ErrorIs(t, err, ErrNoValidLineup)
	assert.NotErrorIs(t, err, ErrInvalidRequest)
}
