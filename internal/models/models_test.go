package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePosition(t *testing.T) {
	tests := []struct {
		in       string
		expected Position
	}{
		{"QB", PositionQB},
		{" rb ", PositionRB},
		{"wr", PositionWR},
		{"Te", PositionTE},
		{"FLEX", PositionFLEX},
		{"K", PositionFLEX},
		{"", PositionFLEX},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParsePosition(tt.in))
		})
	}
}

func TestPosition_IsFlexEligible(t *testing.T) {
	assert.False(t, PositionQB.IsFlexEligible())
	assert.True(t, PositionRB.IsFlexEligible())
	assert.True(t, PositionWR.IsFlexEligible())
	assert.True(t, PositionTE.IsFlexEligible())
	assert.False(t, PositionFLEX.IsFlexEligible())
}

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		in       string
		expected Strategy
		wantErr  bool
	}{
		{in: "Tournament (GPP)", expected: StrategyTournament},
		{in: "gpp", expected: StrategyTournament},
		{in: "TOURNAMENT", expected: StrategyTournament},
		{in: "Cash Game", expected: StrategyCash},
		{in: "cash", expected: StrategyCash},
		{in: "Ultra Contrarian", expected: StrategyUltraContrarian},
		{in: "ULTRA_CONTRARIAN", expected: StrategyUltraContrarian},
		{in: "ultra-contrarian", expected: StrategyUltraContrarian},
		{in: "showdown", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStrategy(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestPlayerRecord_PointsPerDollar(t *testing.T) {
	p := PlayerRecord{ProjectedPoints: 20, Salary: 8000}
	assert.InDelta(t, 2.5, p.PointsPerDollar(), 1e-9)

	assert.Zero(t, PlayerRecord{ProjectedPoints: 20}.PointsPerDollar())
}

func TestLineup_Validate(t *testing.T) {
	valid := func() Lineup {
		l := Lineup{
			SalaryCap: 50000,
			Slots: []LineupSlot{
				{Slot: "QB", Player: PlayerRecord{Name: "Allen", Position: PositionQB, Salary: 8000}},
				{Slot: "RB", Player: PlayerRecord{Name: "Henry", Position: PositionRB, Salary: 7000}},
				{Slot: "RB", Player: PlayerRecord{Name: "McCaffrey", Position: PositionRB, Salary: 6000}},
				{Slot: "WR", Player: PlayerRecord{Name: "Kupp", Position: PositionWR, Salary: 7500}},
				{Slot: "WR", Player: PlayerRecord{Name: "Adams", Position: PositionWR, Salary: 6500}},
				{Slot: "WR", Player: PlayerRecord{Name: "Hill", Position: PositionWR, Salary: 5000}},
				{Slot: "TE", Player: PlayerRecord{Name: "Kelce", Position: PositionTE, Salary: 6000}},
				{Slot: "FLEX", Player: PlayerRecord{Name: "Jacobs", Position: PositionRB, Salary: 4000}},
			},
		}
		l.Recalculate()
		return l
	}

	t.Run("valid lineup", func(t *testing.T) {
		l := valid()
		assert.NoError(t, l.Validate(DefaultRosterRequirements()))
		assert.Equal(t, 50000, l.TotalSalary)
		assert.Equal(t, 0, l.SalaryRemaining)
	})

	t.Run("duplicate player", func(t *testing.T) {
		l := valid()
		l.Slots[7].Player = l.Slots[1].Player
		assert.ErrorContains(t, l.Validate(DefaultRosterRequirements()), "more than one slot")
	})

	t.Run("QB in flex", func(t *testing.T) {
		l := valid()
		l.Slots[7].Player = PlayerRecord{Name: "Jackson", Position: PositionQB}
		assert.ErrorContains(t, l.Validate(DefaultRosterRequirements()), "cannot fill FLEX")
	})

	t.Run("over the cap", func(t *testing.T) {
		l := valid()
		l.SalaryCap = 49999
		assert.ErrorContains(t, l.Validate(DefaultRosterRequirements()), "exceeds salary cap")
	})

	t.Run("missing slot", func(t *testing.T) {
		l := valid()
		l.Slots = l.Slots[:7]
		assert.ErrorContains(t, l.Validate(DefaultRosterRequirements()), "FLEX")
	})
}

func TestRosterRequirements_Total(t *testing.T) {
	assert.Equal(t, 8, DefaultRosterRequirements().Total())
}
