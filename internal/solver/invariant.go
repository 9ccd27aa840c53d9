package solver

import "fmt"

// InvariantError is raised with panic when the engine reaches a state that
// cannot exist. It is never returned as an error value.
type InvariantError struct {
	Invariant string
	State     string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("solver: invariant %q violated: %s", e.Invariant, e.State)
}

func invariantf(invariant, format string, args ...any) *InvariantError {
	return &InvariantError{Invariant: invariant, State: fmt.Sprintf(format, args...)}
}
