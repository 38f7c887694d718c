package agent

import "github.com/pkg/errors"

var (
	// ErrInvalidAction is returned when an action index lies outside
	// of an agent's action space
	ErrInvalidAction = errors.New("invalid action")

	// ErrLengthMismatch is returned when per-step or per-agent inputs
	// have differing lengths
	ErrLengthMismatch = errors.New("length mismatch")
)

// CheckAction returns an error wrapping ErrInvalidAction if action is
// not in [0, n)
func CheckAction(action, n int) error {
	if action < 0 || action >= n {
		return errors.Wrapf(ErrInvalidAction, "action %d not in [0, %d)",
			action, n)
	}
	return nil
}

// CheckLengths returns an error wrapping ErrLengthMismatch if the
// lengths are not all equal to want
func CheckLengths(want int, lengths ...int) error {
	for _, l := range lengths {
		if l != want {
			return errors.Wrapf(ErrLengthMismatch, "want length %d, got %v",
				want, lengths)
		}
	}
	return nil
}
