package models

import (
	"fmt"
)

// SlotFlex is the roster slot fillable by RB, WR or TE.
const SlotFlex = "FLEX"

// CorePositions is the fixed fill order for the non-flex slots.
var CorePositions = []Position{PositionQB, PositionRB, PositionWR, PositionTE}

// RosterRequirements defines how many players each slot needs.
type RosterRequirements map[string]int

// DefaultRosterRequirements returns the standard QB/2RB/3WR/TE/FLEX roster.
func DefaultRosterRequirements() RosterRequirements {
	return RosterRequirements{
		string(PositionQB): 1,
		string(PositionRB): 2,
		string(PositionWR): 3,
		string(PositionTE): 1,
		SlotFlex:           1,
	}
}

// Total returns the number of players a complete roster holds.
func (r RosterRequirements) Total() int {
	total := 0
	for _, n := range r {
		total += n
	}
	return total
}

type Strategy string

const (
	StrategyTournament      Strategy = "TOURNAMENT"
	StrategyCash            Strategy = "CASH"
	StrategyUltraContrarian Strategy = "ULTRA_CONTRARIAN"
)

// LineupSlot is one filled roster slot.
type LineupSlot struct {
	Slot   string       `json:"slot"`
	Player PlayerRecord `json:"player"`
	Score  float64      `json:"score"`
}

// Lineup is constructed fresh per build and never persisted.
type Lineup struct {
	Strategy         Strategy     `json:"strategy"`
	SalaryCap        int          `json:"salary_cap"`
	Slots            []LineupSlot `json:"slots"`
	TotalSalary      int          `json:"total_salary"`
	SalaryRemaining  int          `json:"salary_remaining"`
	ProjectedPoints  float64      `json:"projected_points"`
	AverageOwnership float64      `json:"average_ownership"`
}

// Recalculate refreshes the salary, points and ownership totals from the slots.
func (l *Lineup) Recalculate() {
	l.TotalSalary = 0
	l.ProjectedPoints = 0
	ownership := 0.0
	for _, s := range l.Slots {
		l.TotalSalary += s.Player.Salary
		l.ProjectedPoints += s.Player.ProjectedPoints
		ownership += s.Player.OwnershipPct
	}
	l.SalaryRemaining = l.SalaryCap - l.TotalSalary
	l.AverageOwnership = 0
	if len(l.Slots) > 0 {
		l.AverageOwnership = ownership / float64(len(l.Slots))
	}
}

// Names returns the selected player names in slot order.
func (l *Lineup) Names() []string {
	names := make([]string, 0, len(l.Slots))
	for _, s := range l.Slots {
		names = append(names, s.Player.Name)
	}
	return names
}

// Validate checks slot counts, flex eligibility, player uniqueness and the salary cap.
func (l *Lineup) Validate(requirements RosterRequirements) error {
	counts := make(map[string]int)
	seen := make(map[string]bool)
	total := 0

	for _, s := range l.Slots {
		if seen[s.Player.Name] {
			return fmt.Errorf("player %s occupies more than one slot", s.Player.Name)
		}
		seen[s.Player.Name] = true

		if s.Slot == SlotFlex {
			if !s.Player.Position.IsFlexEligible() {
				return fmt.Errorf("player %s (%s) cannot fill FLEX", s.Player.Name, s.Player.Position)
			}
		} else if string(s.Player.Position) != s.Slot {
			return fmt.Errorf("player %s (%s) cannot fill %s", s.Player.Name, s.Player.Position, s.Slot)
		}

		counts[s.Slot]++
		total += s.Player.Salary
	}

	for slot, required := range requirements {
		if counts[slot] != required {
			return fmt.Errorf("slot %s requires %d players, got %d", slot, required, counts[slot])
		}
	}

	if total > l.SalaryCap {
		return fmt.Errorf("lineup exceeds salary cap: %d > %d", total, l.SalaryCap)
	}

	return nil
}
