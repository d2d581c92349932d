package validator

import (
	"confcheck/internal/schema"
)

// ValidateConfig checks cfg against doc and merges declared defaults.
//
// A nil doc imposes no constraints and cfg is returned as is. A nil cfg means
// no configuration file exists: that is an error when doc requires fields,
// an empty document with defaults when doc declares any, and nil otherwise.
// The first violation aborts validation.
func ValidateConfig(cfg schema.Config, doc *schema.Document) (schema.Config, error) {
	if doc == nil {
		return cfg, nil
	}

	if cfg == nil {
		switch {
		case len(doc.Required) > 0:
			return nil, &MissingConfigError{Schema: doc.Name, Fields: doc.Required.Names()}
		case doc.HasDefault():
			return ApplyDefaults(schema.Config{}, doc), nil
		default:
			return nil, nil
		}
	}

	for _, spec := range doc.Required {
		if !cfg.Has(spec.Name) {
			return nil, &MissingFieldError{Field: spec.Name, Expected: spec.Kind, Description: spec.Description}
		}
		if found := schema.KindOf(cfg[spec.Name]); found != spec.Kind {
			return nil, &TypeMismatchError{Field: spec.Name, Section: SectionRequired, Expected: spec.Kind, Found: found}
		}
	}

	for _, spec := range doc.Optional {
		if !cfg.Has(spec.Name) {
			continue
		}
		if found := schema.KindOf(cfg[spec.Name]); found != spec.Kind {
			return nil, &TypeMismatchError{Field: spec.Name, Section: SectionOptional, Expected: spec.Kind, Found: found}
		}
	}

	if doc.HasDefault() {
		cfg = ApplyDefaults(cfg, doc)
	}
	return cfg, nil
}
