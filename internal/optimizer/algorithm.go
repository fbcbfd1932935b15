// Package optimizer builds a single lineup by greedy, strategy-ordered
// position filling under a salary cap.
//
// The fill is one pass with no backtracking: if cheap early picks would have
// left room for a later position the builder does not revisit them, it fails
// with an insufficient_budget NoValidLineupError instead.
package optimizer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jstittsworth/contrarian-dfs/internal/models"
	"github.com/jstittsworth/contrarian-dfs/pkg/logger"
	"github.com/sirupsen/logrus"
)

type BuildRequest struct {
	Strategy    models.Strategy `json:"strategy"`
	SalaryCap   int             `json:"salary_cap"`
	MustInclude []string        `json:"must_include"`
	Exclude     []string        `json:"exclude"`
}

type candidate struct {
	player models.PlayerRecord
	score  float64
}

type lineupState struct {
	requirements models.RosterRequirements
	filled       map[string][]candidate
	used         map[string]bool
	remaining    int
}

// BuildLineup selects one player per required roster slot. The input slice
// is never modified. Any roster that cannot be completed is reported as a
// *NoValidLineupError; a partial lineup is never returned.
func BuildLineup(players []models.PlayerRecord, req BuildRequest) (*models.Lineup, error) {
	if !validStrategy(req.Strategy) {
		return nil, fmt.Errorf("%w: unknown strategy %q", ErrInvalidRequest, req.Strategy)
	}
	if req.SalaryCap <= 0 {
		return nil, fmt.Errorf("%w: salary cap must be positive, got %d", ErrInvalidRequest, req.SalaryCap)
	}

	log := logger.WithComponent("lineup_builder").WithField("strategy", req.Strategy)

	pool := preparePool(players, req.Strategy)
	if len(pool) == 0 {
		return nil, noValidLineup(FailureEmptyPool, "", "no valid player data after cleaning")
	}

	include := nameSet(req.MustInclude)
	exclude := nameSet(req.Exclude)

	for _, name := range sortedNames(include) {
		if exclude[name] {
			return nil, noValidLineup(FailureConstraintConflict, "", "player %s is both must-include and excluded", name)
		}
		if _, ok := pool[name]; !ok {
			return nil, noValidLineup(FailureConstraintConflict, "", "must-include player %s is not in the valid player pool", name)
		}
	}

	eligible := make([]candidate, 0, len(pool))
	for name, c := range pool {
		if !exclude[name] {
			eligible = append(eligible, c)
		}
	}
	sortCandidates(eligible)

	requirements := models.DefaultRosterRequirements()
	if err := checkScarcity(eligible, requirements); err != nil {
		return nil, err
	}

	state := &lineupState{
		requirements: requirements,
		filled:       make(map[string][]candidate),
		used:         make(map[string]bool),
		remaining:    req.SalaryCap,
	}

	if err := state.placeRequired(eligible, include, req.SalaryCap); err != nil {
		return nil, err
	}

	for _, pos := range models.CorePositions {
		if err := state.fill(slotName(pos), eligible, func(p models.PlayerRecord) bool { return p.Position == pos }); err != nil {
			return nil, err
		}
	}
	if err := state.fill(models.SlotFlex, eligible, func(p models.PlayerRecord) bool { return p.Position.IsFlexEligible() }); err != nil {
		return nil, err
	}

	lineup := state.lineup(req)
	if err := lineup.Validate(requirements); err != nil {
		return nil, fmt.Errorf("lineup builder produced an invalid roster: %w", err)
	}

	log.WithFields(logrus.Fields{
		"total_salary":     lineup.TotalSalary,
		"projected_points": lineup.ProjectedPoints,
	}).Debug("Lineup built")

	return lineup, nil
}

// preparePool drops unusable rows, scores the rest and collapses duplicate
// names to the best-ordered row so the result does not depend on input order.
func preparePool(players []models.PlayerRecord, strategy models.Strategy) map[string]candidate {
	pool := make(map[string]candidate, len(players))
	for _, p := range players {
		p.Name = strings.TrimSpace(p.Name)
		if p.Name == "" || p.Salary <= 0 || p.ProjectedPoints <= 0 {
			continue
		}
		// FLEX is a slot, not a position a player can be rostered at directly.
		if p.Position != models.PositionQB && !p.Position.IsFlexEligible() {
			continue
		}

		c := candidate{player: p, score: StrategyScore(strategy, p)}
		if existing, ok := pool[p.Name]; ok && !better(c, existing) {
			continue
		}
		pool[p.Name] = c
	}
	return pool
}

func checkScarcity(eligible []candidate, requirements models.RosterRequirements) error {
	counts := make(map[models.Position]int)
	flexEligible := 0
	for _, c := range eligible {
		counts[c.player.Position]++
		if c.player.Position.IsFlexEligible() {
			flexEligible++
		}
	}

	flexNeeded := requirements[models.SlotFlex]
	for _, pos := range models.CorePositions {
		required := requirements[slotName(pos)]
		switch have := counts[pos]; {
		case have == 0:
			return noValidLineup(FailurePositionScarcity, slotName(pos), "no %s candidates available after exclusions", pos)
		case have < required:
			return noValidLineup(FailurePositionScarcity, slotName(pos), "only %d %s candidates for %d %s slots", have, pos, required, pos)
		}
		if pos.IsFlexEligible() {
			flexNeeded += required
		}
	}

	if flexEligible < flexNeeded {
		return noValidLineup(FailurePositionScarcity, models.SlotFlex, "not enough RB/WR/TE candidates to fill FLEX: need %d, have %d", flexNeeded, flexEligible)
	}
	return nil
}

// placeRequired seats must-include players before the generic fill, taking
// their own position slot first and FLEX when that is full.
func (s *lineupState) placeRequired(eligible []candidate, include map[string]bool, salaryCap int) error {
	if len(include) == 0 {
		return nil
	}

	required := make([]candidate, 0, len(include))
	total := 0
	for _, c := range eligible {
		if include[c.player.Name] {
			required = append(required, c)
			total += c.player.Salary
		}
	}

	if total > salaryCap {
		return noValidLineup(FailureInsufficientBudget, "", "insufficient budget: must-include players cost $%d, exceeding the $%d salary cap", total, salaryCap)
	}

	for _, c := range required {
		slot := slotName(c.player.Position)
		switch {
		case len(s.filled[slot]) < s.requirements[slot]:
		case c.player.Position.IsFlexEligible() && len(s.filled[models.SlotFlex]) < s.requirements[models.SlotFlex]:
			slot = models.SlotFlex
		default:
			return noValidLineup(FailureConstraintConflict, slot, "too many must-include %s players for the roster", c.player.Position)
		}
		s.take(slot, c)
	}
	return nil
}

// fill takes the best remaining candidates that fit the remaining cap until
// the slot is full, skipping any that do not fit.
func (s *lineupState) fill(slot string, eligible []candidate, accepts func(models.PlayerRecord) bool) error {
	for _, c := range eligible {
		if len(s.filled[slot]) >= s.requirements[slot] {
			return nil
		}
		if s.used[c.player.Name] || !accepts(c.player) {
			continue
		}
		if c.player.Salary > s.remaining {
			continue
		}
		s.take(slot, c)
	}

	if len(s.filled[slot]) < s.requirements[slot] {
		return noValidLineup(FailureInsufficientBudget, slot,
			"insufficient budget: no remaining %s candidate fits the $%d left under the salary cap (greedy fill does not backtrack)",
			slot, s.remaining)
	}
	return nil
}

func (s *lineupState) take(slot string, c candidate) {
	s.filled[slot] = append(s.filled[slot], c)
	s.used[c.player.Name] = true
	s.remaining -= c.player.Salary
}

func (s *lineupState) lineup(req BuildRequest) *models.Lineup {
	lineup := &models.Lineup{
		Strategy:  req.Strategy,
		SalaryCap: req.SalaryCap,
		Slots:     make([]models.LineupSlot, 0, s.requirements.Total()),
	}

	order := make([]string, 0, len(models.CorePositions)+1)
	for _, pos := range models.CorePositions {
		order = append(order, slotName(pos))
	}
	order = append(order, models.SlotFlex)

	for _, slot := range order {
		picks := append([]candidate(nil), s.filled[slot]...)
		sortCandidates(picks)
		for _, c := range picks {
			lineup.Slots = append(lineup.Slots, models.LineupSlot{Slot: slot, Player: c.player, Score: c.score})
		}
	}

	lineup.Recalculate()
	return lineup
}

// better orders by strategy score descending, then lower salary, then name.
func better(a, b candidate) bool {
	if a.score != b.score {
		return a.score > b.score
	}
	if a.player.Salary != b.player.Salary {
		return a.player.Salary < b.player.Salary
	}
	return a.player.Name < b.player.Name
}

func sortCandidates(cs []candidate) {
	sort.SliceStable(cs, func(i, j int) bool {
		return better(cs[i], cs[j])
	})
}

func nameSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n != "" {
			set[n] = true
		}
	}
	return set
}

func sortedNames(set map[string]bool) []string {
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
