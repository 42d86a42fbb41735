package imaging

import "fmt"

// RenderError reports a failed render of one prompt. It never fails a request.
type RenderError struct {
	Prompt  string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render failed for %q: %s: %v", e.Prompt, e.Message, e.Cause)
	}
	return fmt.Sprintf("render failed for %q: %s", e.Prompt, e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
