package app

import "fmt"

// ValidationError indicates malformed or missing input. The caller can
// recover by correcting the request.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
}
