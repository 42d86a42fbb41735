package spellcheck

import "fmt"

// CorrectionError reports a failed correction call for one task of the stage.
type CorrectionError struct {
	Task    string
	Message string
	Cause   error
}

func (e *CorrectionError) Error() string {
	prefix := "spellcheck failed"
	if e.Task != "" {
		prefix = fmt.Sprintf("spellcheck of %s failed", e.Task)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func (e *CorrectionError) Unwrap() error {
	return e.Cause
}
