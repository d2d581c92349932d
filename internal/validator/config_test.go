package validator

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"confcheck/internal/schema"
)

func TestValidateConfig_NoConfigRequiredFields(t *testing.T) {
	doc := mustSchema(t, "name: x\nrequired: {port: {type: number}}")

	cfg, err := ValidateConfig(nil, doc)

	var missing *MissingConfigError
	require.ErrorAs(t, err, &missing)
	assert.ErrorIs(t, err, ErrMissingConfig)
	assert.Nil(t, cfg)
	assert.Equal(t, "x", missing.Schema)
	assert.Equal(t, []string{"port"}, missing.Fields)
	assert.Contains(t, err.Error(), `"x"`)
}

func TestValidateConfig_NoConfigDefaults(t *testing.T) {
	doc := mustSchema(t, "name: x\noptional: {port: {type: number, default: 8080}}")

	cfg, err := ValidateConfig(nil, doc)

	require.NoError(t, err)
	assert.Equal(t, schema.Config{"port": 8080}, cfg)
}

func TestValidateConfig_NoConfigNothingToDo(t *testing.T) {
	doc := mustSchema(t, "name: x\noptional: {port: {type: number}}")

	cfg, err := ValidateConfig(nil, doc)

	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestValidateConfig_ValidUnchanged(t *testing.T) {
	doc := mustSchema(t, "name: x\nrequired: {host: {type: string}}")
	in := schema.Config{"host": "a.com"}

	cfg, err := ValidateConfig(in, doc)

	require.NoError(t, err)
	assert.Equal(t, schema.Config{"host": "a.com"}, cfg)
}

func TestValidateConfig_MissingRequiredField(t *testing.T) {
	doc := mustSchema(t, "name: x\nrequired: {host: {type: string, description: upstream host}}")

	_, err := ValidateConfig(schema.Config{}, doc)

	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.ErrorIs(t, err, ErrMissingField)
	assert.Equal(t, "host", missing.Field)
	assert.Equal(t, schema.KindString, missing.Expected)
	assert.Equal(t, "upstream host", missing.Description)
}

func TestValidateConfig_UndefinedCountsAsAbsent(t *testing.T) {
	doc := mustSchema(t, "name: x\nrequired: {host: {type: string}}")

	_, err := ValidateConfig(schema.Config{"host": schema.Undefined}, doc)

	assert.ErrorIs(t, err, ErrMissingField)
}

func TestValidateConfig_TypeMismatch(t *testing.T) {
	doc := mustSchema(t, "name: x\nrequired: {port: {type: number}}")

	_, err := ValidateConfig(schema.Config{"port": "80"}, doc)

	var mismatch *TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.ErrorIs(t, err, ErrTypeMismatch)
	assert.Equal(t, "port", mismatch.Field)
	assert.Equal(t, SectionRequired, mismatch.Section)
	assert.Equal(t, schema.KindNumber, mismatch.Expected)
	assert.Equal(t, schema.KindString, mismatch.Found)
}

func TestValidateConfig_OptionalChecks(t *testing.T) {
	doc := mustSchema(t, `
name: x
optional:
  debug: {type: boolean}
  opts: {type: object}
`)

	t.Run("absent optional is fine", func(t *testing.T) {
		cfg, err := ValidateConfig(schema.Config{"extra": 1}, doc)
		require.NoError(t, err)
		assert.Equal(t, schema.Config{"extra": 1}, cfg)
	})

	t.Run("null classifies as object", func(t *testing.T) {
		_, err := ValidateConfig(schema.Config{"opts": nil}, doc)
		assert.NoError(t, err)
	})

	t.Run("wrong optional kind", func(t *testing.T) {
		_, err := ValidateConfig(schema.Config{"debug": "yes"}, doc)

		var mismatch *TypeMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, SectionOptional, mismatch.Section)
		assert.Equal(t, schema.KindBoolean, mismatch.Expected)
	})
}

func TestValidateConfig_RequiredCheckedBeforeOptional(t *testing.T) {
	doc := mustSchema(t, `
name: x
required:
  a: {type: string}
  b: {type: string}
optional:
  c: {type: number}
`)

	_, err := ValidateConfig(schema.Config{"a": 1, "c": "z"}, doc)

	var mismatch *TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "a", mismatch.Field)
}

func TestValidateConfig_DefaultOverwritesSuppliedValue(t *testing.T) {
	doc := mustSchema(t, "name: x\noptional: {retries: {type: number, default: 3}}")

	cfg, err := ValidateConfig(schema.Config{"retries": 10}, doc)

	require.NoError(t, err)
	assert.Equal(t, schema.Config{"retries": 3}, cfg)
}

func genConfig() gopter.Gen {
	return gopter.CombineGens(
		gen.MapOf(gen.Identifier(), gen.Int()),
		gen.MapOf(gen.Identifier(), gen.AlphaString()),
		gen.MapOf(gen.Identifier(), gen.Bool()),
	).Map(func(parts []any) schema.Config {
		cfg := schema.Config{}
		for k, v := range parts[0].(map[string]int) {
			cfg["opt_n_"+k] = v
		}
		for k, v := range parts[1].(map[string]string) {
			cfg["opt_s_"+k] = v
		}
		for k, v := range parts[2].(map[string]bool) {
			cfg["opt_b_"+k] = v
		}
		return cfg
	})
}

func genScalarDocument() gopter.Gen {
	return gen.SliceOf(gopter.CombineGens(gen.Identifier(), gen.IntRange(0, 2))).Map(func(pairs [][]any) *schema.Document {
		defaults := []any{7, "dflt", false}
		doc := &schema.Document{Name: "x"}
		seen := make(map[string]bool)
		for _, p := range pairs {
			name := "opt_" + p[0].(string)
			if seen[name] {
				continue
			}
			seen[name] = true
			value := defaults[p[1].(int)]
			doc.Optional = append(doc.Optional, schema.FieldSpec{
				Name: name, Kind: schema.KindOf(value), Default: value, HasDefault: true,
			})
		}
		return doc
	})
}

// Feature: confcheck, Property: Absence Laws
// Without a schema the configuration SHALL pass through untouched; without a
// configuration the outcome SHALL depend only on required fields and defaults.
func TestValidateConfig_Absence_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("nil schema returns config unchanged", prop.ForAll(
		func(cfg schema.Config) bool {
			out, err := ValidateConfig(cfg, nil)
			return err == nil && assert.ObjectsAreEqual(cfg, out)
		},
		genConfig(),
	))

	properties.Property("nil config with defaults returns exactly the defaults", prop.ForAll(
		func(doc *schema.Document) bool {
			out, err := ValidateConfig(nil, doc)
			if err != nil {
				return false
			}
			if !doc.HasDefault() {
				return out == nil
			}
			return assert.ObjectsAreEqual(schema.Config(doc.Defaults()), out)
		},
		genScalarDocument(),
	))

	properties.Property("nil config with required fields fails", prop.ForAll(
		func(name string) bool {
			doc := &schema.Document{Name: "x", Required: schema.Fields{{Name: name, Kind: schema.KindString}}}
			_, err := ValidateConfig(nil, doc)
			return assert.ObjectsAreEqual([]string{name}, missingFields(err))
		},
		gen.Identifier(),
	))

	properties.TestingRun(t)
}

func missingFields(err error) []string {
	missing, ok := err.(*MissingConfigError)
	if !ok {
		return nil
	}
	return missing.Fields
}

// Feature: confcheck, Property: Validation Is Idempotent
// Validating an already defaulted configuration again with the same schema
// SHALL yield the same document.
func TestValidateConfig_Idempotent_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("second pass changes nothing", prop.ForAll(
		func(cfg schema.Config, doc *schema.Document) bool {
			once, err := ValidateConfig(cfg, doc)
			if err != nil {
				// generated values may not match the declared kinds
				return true
			}
			snapshot := make(schema.Config, len(once))
			for k, v := range once {
				snapshot[k] = v
			}
			twice, err := ValidateConfig(once, doc)
			return err == nil && assert.ObjectsAreEqual(snapshot, twice)
		},
		genConfig(),
		genScalarDocument(),
	))

	properties.TestingRun(t)
}
