package outputs

import "fmt"

// IOError indicates a file move or read failure while collecting or archiving
// artifacts. It carries the offending filename for user-facing reporting.
type IOError struct {
	Path  string
	Op    string
	Cause error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Cause)
}

func (e *IOError) Unwrap() error {
	return e.Cause
}
