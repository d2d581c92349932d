// Package settings holds the runtime settings of the confcheck command,
// layered from built-in defaults, environment variables and flags.
package settings

import (
	"errors"
	"fmt"
	"strings"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"

	"confcheck"
	"confcheck/internal/logger"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatText = "text"
)

// Validation errors returned by [Settings.Validate].
var (
	ErrInvalidFormat   = errors.New("invalid output format")
	ErrInvalidLogLevel = errors.New("invalid log level")
)

// Settings configures one confcheck invocation.
//
// Struct tags:
//   - env: environment variable name (caarlos0/env), after the CONFCHECK_
//     prefix unless noted.
type Settings struct {
	// Dir is where upward searches start. Empty means the working directory.
	Dir string `env:"DIR"`

	// SchemaFile is the reserved schema file name.
	SchemaFile string `env:"SCHEMA_FILE"`

	// PackageFile names the package metadata file used in error messages.
	PackageFile string `env:"PACKAGE_FILE"`

	// LogLevel is a zerolog level name.
	LogLevel string `env:"LOG_LEVEL"`

	// Format selects the output of load and check: json, yaml or text.
	Format string `env:"FORMAT"`

	// CI renders errors as GitHub Actions annotations. Also set by the
	// unprefixed CI variable.
	CI bool `env:"CI"`
}

// Defaults returns the built-in settings.
func Defaults() *Settings {
	return &Settings{
		SchemaFile:  confcheck.DefaultSchemaFile,
		PackageFile: confcheck.DefaultPackageFile,
		LogLevel:    "warn",
		Format:      FormatJSON,
	}
}

// FromEnv reads settings from an environment map, see ParseEnviron.
func FromEnv(environ map[string]string) (*Settings, error) {
	s := &Settings{}
	if err := env.ParseWithOptions(s, env.Options{Environment: environ, Prefix: "CONFCHECK_"}); err != nil {
		return nil, fmt.Errorf("error getting env settings: %w", err)
	}

	// CI is a well-known variable set by CI providers, read without prefix.
	var ci struct {
		CI bool `env:"CI"`
	}
	if err := env.ParseWithOptions(&ci, env.Options{Environment: environ}); err == nil && ci.CI {
		s.CI = true
	}
	return s, nil
}

// Merge layers the given settings on top of each other; later layers win for
// every field they set.
func Merge(layers ...*Settings) (*Settings, error) {
	merged := new(Settings)
	for _, layer := range layers {
		if layer == nil {
			continue
		}
		if err := mergo.Merge(merged, layer, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging settings: %w", err)
		}
	}
	return merged, merged.Validate()
}

// Validate checks that the merged settings are usable.
func (s *Settings) Validate() error {
	switch s.Format {
	case FormatJSON, FormatYAML, FormatText:
	default:
		return fmt.Errorf("%w: %q (use json, yaml or text)", ErrInvalidFormat, s.Format)
	}
	if _, err := logger.ParseLevel(s.LogLevel); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, s.LogLevel)
	}
	return nil
}

// ParseEnviron converts an environ slice (["KEY=VALUE", ...]) into a map.
// Values may contain "="; entries without one are skipped.
func ParseEnviron(environ []string) map[string]string {
	result := make(map[string]string, len(environ))
	for _, entry := range environ {
		key, value, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		result[key] = value
	}
	return result
}
