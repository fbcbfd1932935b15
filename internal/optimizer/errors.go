package optimizer

import (
	"errors"
	"fmt"

	"github.com/jstittsworth/contrarian-dfs/internal/models"
)

var (
	// ErrNoValidLineup matches every NoValidLineupError via errors.Is.
	ErrNoValidLineup = errors.New("no valid lineup")
	// ErrInvalidRequest is returned for a malformed build request.
	ErrInvalidRequest = errors.New("invalid build request")
)

// FailureKind classifies why no lineup could be built.
type FailureKind string

const (
	FailureEmptyPool          FailureKind = "empty_pool"
	FailurePositionScarcity   FailureKind = "position_scarcity"
	FailureInsufficientBudget FailureKind = "insufficient_budget"
	FailureConstraintConflict FailureKind = "constraint_conflict"
)

// NoValidLineupError reports that no feasible roster exists under the
// current constraints. Position names the blocking slot when there is one.
type NoValidLineupError struct {
	Kind     FailureKind `json:"kind"`
	Position string      `json:"position,omitempty"`
	Reason   string      `json:"reason"`
}

func (e *NoValidLineupError) Error() string {
	return fmt.Sprintf("no valid lineup: %s", e.Reason)
}

func (e *NoValidLineupError) Is(target error) bool {
	return target == ErrNoValidLineup
}

func noValidLineup(kind FailureKind, position string, format string, args ...interface{}) *NoValidLineupError {
	return &NoValidLineupError{
		Kind:     kind,
		Position: position,
		Reason:   fmt.Sprintf(format, args...),
	}
}

func slotName(p models.Position) string {
	return string(p)
}
