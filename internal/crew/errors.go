package crew

import "fmt"

// PipelineError reports the failure of one pipeline stage. It is terminal for
// the run: collection, archiving, and rendering are not attempted, and the
// message is reported to the user verbatim.
type PipelineError struct {
	Stage string
	Cause error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("pipeline stage %s failed: %v", e.Stage, e.Cause)
}

func (e *PipelineError) Unwrap() error {
	return e.Cause
}
