package validator

import (
	"fmt"
	"strings"

	"confcheck/internal/schema"
)

// ValidateSchema checks the structure of a raw schema document and returns
// its validated form. A nil document means no schema exists and yields nil.
// Fields are checked in file order, required before optional, and the first
// violation is returned.
func ValidateSchema(raw *schema.RawDocument) (*schema.Document, error) {
	if raw == nil {
		return nil, nil
	}

	if !raw.Name.Present || raw.Name.Value == nil || raw.Name.Value == "" {
		return nil, &StructureError{Schema: raw.Path, Reason: `missing required property "name"`}
	}
	name, ok := raw.Name.Value.(string)
	if !ok {
		return nil, &StructureError{Schema: raw.Path, Reason: fmt.Sprintf(`"name" must be a string, got %s`, schema.KindOf(raw.Name.Value))}
	}

	label := raw.Path
	if label == "" {
		label = name
	}

	doc := &schema.Document{Name: name, Path: raw.Path}
	var err error
	if doc.Required, err = validateSection(label, SectionRequired, raw.Required); err != nil {
		return nil, err
	}
	if doc.Optional, err = validateSection(label, SectionOptional, raw.Optional); err != nil {
		return nil, err
	}
	return doc, nil
}

func validateSection(label string, section Section, raw schema.RawSection) (schema.Fields, error) {
	if raw.NotMapping {
		return nil, &StructureError{Schema: label, Reason: fmt.Sprintf("%q must be a mapping of field names to specs", section)}
	}

	fields := make(schema.Fields, 0, len(raw.Fields))
	for _, f := range raw.Fields {
		spec, err := validateField(label, section, f)
		if err != nil {
			return nil, err
		}
		fields = append(fields, spec)
	}
	return fields, nil
}

func validateField(label string, section Section, f schema.RawField) (schema.FieldSpec, error) {
	fail := func(format string, args ...any) error {
		return &StructureError{Schema: label, Section: section, Field: f.Name, Reason: fmt.Sprintf(format, args...)}
	}

	if f.NotMapping {
		return schema.FieldSpec{}, fail("spec must be a mapping")
	}
	if !f.Type.Present || f.Type.Value == nil {
		return schema.FieldSpec{}, fail(`missing required property "type"`)
	}

	typeName, _ := f.Type.Value.(string)
	kind, ok := schema.ParseKind(typeName)
	if !ok {
		return schema.FieldSpec{}, fail("invalid type %s, must be one of: %s",
			quoteValue(f.Type.Value), strings.Join(schema.KindNames(), ", "))
	}

	spec := schema.FieldSpec{Name: f.Name, Kind: kind}

	if f.Description.Present {
		desc, ok := f.Description.Value.(string)
		if !ok {
			return schema.FieldSpec{}, fail("description must be a string, got %s", schema.KindOf(f.Description.Value))
		}
		spec.Description = desc
	}

	// a default on a required field can never apply and is ignored
	if f.Default.Present && section == SectionOptional {
		if found := schema.KindOf(f.Default.Value); found != kind {
			return schema.FieldSpec{}, fail("default has type %s, expected %s", found, kind)
		}
		spec.Default = f.Default.Value
		spec.HasDefault = true
	}

	return spec, nil
}

func quoteValue(v any) string {
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%v", v)
}
