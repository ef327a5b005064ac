package runner

import "fmt"

// ValidationError reports a rejected run request before any side effects.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid request: %s", e.Message)
	}
	return fmt.Sprintf("invalid request: field %q %s", e.Field, e.Message)
}
