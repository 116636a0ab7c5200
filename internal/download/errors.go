package download

import (
	"errors"
	"fmt"
)

// ErrInterrupted is returned when the run context is cancelled
var ErrInterrupted = errors.New("download interrupted")

// ItemError describes a failed playlist entry
type ItemError struct {
	Index int
	Path  string
	Err   error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("video %d (%s): %v", e.Index, e.Path, e.Err)
}

func (e *ItemError) Unwrap() error {
	return e.Err
}

// interrupted wraps the context error so both ErrInterrupted and the
// underlying cause match errors.Is
func interrupted(cause error) error {
	return fmt.Errorf("%w: %w", ErrInterrupted, cause)
}
