package confcheck

import (
	"confcheck/internal/resolver"
	"confcheck/internal/validator"
)

// Sentinels for errors.Is. Every error LoadConfig returns is fatal.
var (
	ErrStructure     = validator.ErrStructure
	ErrMissingConfig = validator.ErrMissingConfig
	ErrMissingField  = validator.ErrMissingField
	ErrTypeMismatch  = validator.ErrTypeMismatch
	ErrFormat        = resolver.ErrFormat
)

// Typed errors, for errors.As.
type (
	StructureError     = validator.StructureError
	MissingConfigError = validator.MissingConfigError
	MissingFieldError  = validator.MissingFieldError
	TypeMismatchError  = validator.TypeMismatchError
	FormatError        = resolver.FormatError
)
