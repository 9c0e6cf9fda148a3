package engine

import (
	"errors"
	"fmt"
)

// ErrUnstable indicates the global signal or a strate contribution went
// NaN or Inf during a run.
var ErrUnstable = errors.New("engine: signal diverged (NaN or Inf detected)")

// StepError wraps an error with the step it occurred on. The partial
// trace up to that step survives in the Result.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
