package resolver

import (
	"errors"
	"fmt"
)

// ErrFormat is the sentinel behind every FormatError.
var ErrFormat = errors.New("invalid file format")

// FormatError reports a located file whose contents are not structured data.
type FormatError struct {
	Path string
	Err  error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("cannot parse %s: %v", e.Path, e.Err)
}

func (e *FormatError) Unwrap() []error {
	return []error{ErrFormat, e.Err}
}
