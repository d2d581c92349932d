package validator

import (
	"errors"
	"fmt"
	"strings"

	"confcheck/internal/schema"
)

// Sentinels behind the typed errors, for use with errors.Is.
var (
	ErrStructure     = errors.New("invalid schema")
	ErrMissingConfig = errors.New("missing configuration")
	ErrMissingField  = errors.New("missing required field")
	ErrTypeMismatch  = errors.New("type mismatch")
)

// Section names a block of a schema document.
type Section string

const (
	SectionRequired Section = "required"
	SectionOptional Section = "optional"
)

// StructureError reports a malformed schema document.
type StructureError struct {
	Schema  string  // schema file path, or name when read from memory
	Section Section // empty for document-level problems
	Field   string
	Reason  string
}

func (e *StructureError) Error() string {
	var b strings.Builder
	b.WriteString("invalid schema")
	if e.Schema != "" {
		fmt.Fprintf(&b, " %s", e.Schema)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, ": %s field %q", e.Section, e.Field)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	return b.String()
}

func (e *StructureError) Unwrap() error { return ErrStructure }

// MissingConfigError reports that a schema requires fields but no
// configuration file exists.
type MissingConfigError struct {
	Schema  string
	Package string
	File    string // configuration file name that was searched for
	Fields  []string
}

func (e *MissingConfigError) Error() string {
	pkg := e.Package
	if pkg == "" {
		pkg = "this package"
	}
	file := e.File
	if file == "" {
		file = "configuration file"
	}
	return fmt.Sprintf("%s requires a %s for %q but none was found (required fields: %s)",
		pkg, file, e.Schema, strings.Join(e.Fields, ", "))
}

func (e *MissingConfigError) Unwrap() error { return ErrMissingConfig }

// MissingFieldError reports a required field absent from the configuration.
type MissingFieldError struct {
	Field       string
	Expected    schema.Kind
	Description string
}

func (e *MissingFieldError) Error() string {
	msg := fmt.Sprintf("missing required field %q (%s)", e.Field, e.Expected)
	if e.Description != "" {
		msg += ": " + e.Description
	}
	return msg
}

func (e *MissingFieldError) Unwrap() error { return ErrMissingField }

// TypeMismatchError reports a configured value of the wrong kind.
type TypeMismatchError struct {
	Field    string
	Section  Section
	Expected schema.Kind
	Found    schema.Kind
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s field %q has type %s, expected %s", e.Section, e.Field, e.Found, e.Expected)
}

func (e *TypeMismatchError) Unwrap() error { return ErrTypeMismatch }
