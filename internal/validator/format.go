package validator

import (
	"errors"
	"fmt"
)

// FormatError renders err as a single human-readable line.
func FormatError(err error) string {
	var (
		missingField *MissingFieldError
		mismatch     *TypeMismatchError
	)
	switch {
	case errors.As(err, &missingField):
		msg := fmt.Sprintf("%s: required but not set, expected %s", missingField.Field, missingField.Expected)
		if missingField.Description != "" {
			msg += " (" + missingField.Description + ")"
		}
		return msg
	case errors.As(err, &mismatch):
		return fmt.Sprintf("%s: expected %s, found %s", mismatch.Field, mismatch.Expected, mismatch.Found)
	default:
		return err.Error()
	}
}

// FormatCI renders err as a GitHub Actions error annotation on file.
func FormatCI(err error, file string) string {
	if file == "" {
		return fmt.Sprintf("::error::%s", FormatError(err))
	}
	return fmt.Sprintf("::error file=%s::%s", file, FormatError(err))
}
