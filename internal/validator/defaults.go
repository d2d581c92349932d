package validator

import "confcheck/internal/schema"

// ApplyDefaults writes the default of every optional field that declares
// one into cfg, replacing whatever value cfg already holds for that field.
// cfg is modified in place and returned.
//
// TODO: apply a default only when the field is absent; overwriting a value
// the consumer supplied looks unintended.
func ApplyDefaults(cfg schema.Config, doc *schema.Document) schema.Config {
	for _, spec := range doc.Optional {
		if spec.HasDefault {
			cfg[spec.Name] = spec.Default
		}
	}
	return cfg
}
