package schema

// Config is a consumer-supplied configuration document.
// A nil Config means no configuration file exists; a non-nil empty Config
// is an empty document.
type Config map[string]any

// Has reports whether key is present. A key holding Undefined is absent.
func (c Config) Has(key string) bool {
	v, ok := c[key]
	return ok && !IsUndefined(v)
}

// Attr is one attribute of a raw field entry as it appeared in the file.
type Attr struct {
	Value   any
	Present bool
}

// RawField is a field entry exactly as read from the schema file.
type RawField struct {
	Name        string
	Type        Attr
	Description Attr
	Default     Attr

	// NotMapping is set when the entry is not a mapping at all.
	NotMapping bool
}

// RawSection is the required or optional block of a schema file.
type RawSection struct {
	Fields  []RawField
	Present bool

	// NotMapping is set when the block exists but is not a mapping.
	NotMapping bool
}

// RawDocument is a schema document before structural validation.
type RawDocument struct {
	Path     string
	Name     Attr
	Required RawSection
	Optional RawSection
}

// FieldSpec is the validated contract of one declared field.
type FieldSpec struct {
	Name        string
	Kind        Kind
	Description string
	Default     any
	HasDefault  bool
}

// Fields is an ordered set of field specs, kept in file order.
type Fields []FieldSpec

// Names returns the declared field names in order.
func (f Fields) Names() []string {
	names := make([]string, len(f))
	for i, spec := range f {
		names[i] = spec.Name
	}
	return names
}

// Document is a structurally valid schema document.
type Document struct {
	Name     string
	Required Fields
	Optional Fields
	Path     string
}

// HasDefault reports whether any optional field declares a default.
// It is derived on every call and never cached.
func (d *Document) HasDefault() bool {
	if d == nil {
		return false
	}
	for _, spec := range d.Optional {
		if spec.HasDefault {
			return true
		}
	}
	return false
}

// Defaults returns the declared default of every optional field that has one.
func (d *Document) Defaults() map[string]any {
	defaults := make(map[string]any)
	if d == nil {
		return defaults
	}
	for _, spec := range d.Optional {
		if spec.HasDefault {
			defaults[spec.Name] = spec.Default
		}
	}
	return defaults
}
