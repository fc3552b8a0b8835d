package engine

import "errors"

var (
	// ErrOutOfBounds rejects a movement whose target lies outside the
	// space dimensions.
	ErrOutOfBounds = errors.New("target position out of bounds")

	// ErrInvalidStep rejects a movement that is not exactly one unit
	// along exactly one axis. Diagonal, multi-step, and no-op moves all
	// fall here.
	ErrInvalidStep = errors.New("movement must be a single step")
)

// ValidateMove decides whether a session may move from its current
// position to the requested target. It returns nil to accept, or one of
// the sentinel reject errors. Bounds are checked before step size so a
// wild target always reports out-of-bounds.
//
// The decision is pure: no state is read beyond the arguments and the
// caller needs no locking.
func ValidateMove(snap *SpaceSnapshot, from, to Position) error {
	if !snap.InBounds(to) {
		return ErrOutOfBounds
	}
	if abs(to.X-from.X)+abs(to.Y-from.Y) != 1 {
		return ErrInvalidStep
	}
	return nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
