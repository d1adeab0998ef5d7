package rewriting

import "fmt"

// APICallError wraps a failure to call the assisted rewrite backend.
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}
