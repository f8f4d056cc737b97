package i18n

import (
	"errors"
	"fmt"
)

// ErrMissingValue is wrapped by FormatError when a template references a value
// the caller did not supply.
var ErrMissingValue = errors.New("i18n: missing value")

// FormatError reports a template that could not be compiled or formatted.
type FormatError struct {
	Template string
	Offset   int
	Reason   string
	Err      error
}

func (e *FormatError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Offset >= 0 {
		return fmt.Sprintf("i18n: %s at offset %d in %q", e.Reason, e.Offset, e.Template)
	}
	return fmt.Sprintf("i18n: %s in %q", e.Reason, e.Template)
}

func (e *FormatError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
