package layout

import "fmt"

// MissingFieldError reports a frame definition lacking a required field.
type MissingFieldError struct {
	Frame int
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("frame %d missing required field %q", e.Frame, e.Field)
}

// InvalidFieldError reports a frame definition with an invalid value.
type InvalidFieldError struct {
	Frame  int
	Detail string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("frame %d has invalid value: %s", e.Frame, e.Detail)
}
