// Package confcheck loads a package-local configuration file and checks it
// against the schema the package declares.
//
// Both files are found by walking up from a starting directory. The schema
// (".confschema" by default) lists required and optional fields with their
// primitive kinds; LoadConfig rejects configurations that do not satisfy it
// and fills in declared defaults.
package confcheck

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"confcheck/internal/logger"
	"confcheck/internal/resolver"
	"confcheck/internal/schema"
	"confcheck/internal/validator"
)

type (
	// Config is a configuration document. nil means no file was found.
	Config = schema.Config
	// Schema is a validated schema document.
	Schema = schema.Document
)

// Loader resolves and validates configuration files. It holds no state
// between calls and is safe for concurrent use.
type Loader struct {
	dir         string
	schemaFile  string
	packageFile string
	fs          resolver.FileSystem
	log         *logger.Logger
}

// New builds a Loader. Without WithDir the current working directory is used.
func New(opts ...Option) (*Loader, error) {
	l := &Loader{
		schemaFile:  DefaultSchemaFile,
		packageFile: DefaultPackageFile,
		fs:          resolver.OS{},
		log:         logger.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}

	if l.dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve working directory: %w", err)
		}
		l.dir = wd
	}
	dir, err := filepath.Abs(l.dir)
	if err != nil {
		return nil, fmt.Errorf("resolve directory %s: %w", l.dir, err)
	}
	l.dir = dir

	return l, nil
}

// LoadConfig finds filename and the schema above the working directory and
// returns the validated configuration with defaults applied. It returns nil
// when no configuration exists and none is required.
func LoadConfig(filename string) (Config, error) {
	l, err := New()
	if err != nil {
		return nil, err
	}
	return l.Load(filename)
}

// Load resolves the schema, validates it, resolves filename, validates the
// configuration against the schema and merges defaults. Without a schema the
// located configuration is returned untouched.
func (l *Loader) Load(filename string) (Config, error) {
	doc, err := l.Schema()
	if err != nil {
		return nil, err
	}

	cfg, err := l.resolveConfig(filename)
	if err != nil {
		return nil, err
	}

	if doc == nil {
		l.log.Debug().Str("file", filename).Msg("no schema found, configuration accepted as is")
		return cfg, nil
	}

	final, err := validator.ValidateConfig(cfg, doc)
	if err != nil {
		var missing *validator.MissingConfigError
		if errors.As(err, &missing) {
			missing.Package = resolver.PackageName(l.fs, l.dir, l.packageFile)
			missing.File = filename
		}
		return nil, err
	}

	if doc.HasDefault() {
		l.log.Debug().Str("schema", doc.Name).Interface("defaults", doc.Defaults()).Msg("defaults applied")
	}
	return final, nil
}

// Locate reports the path filename resolves to by upward search, without
// reading it.
func (l *Loader) Locate(filename string) (string, bool, error) {
	dir, found, err := resolver.FindUp(l.fs, l.dir, filename)
	if err != nil || !found {
		return "", false, err
	}
	return filepath.Join(dir, filename), true, nil
}

// Schema resolves and validates the schema. It returns nil when no schema
// file exists.
func (l *Loader) Schema() (*Schema, error) {
	raw, err := l.ResolveSchema()
	if err != nil {
		return nil, err
	}
	return validator.ValidateSchema(raw)
}

// ResolveSchema locates and parses the schema file without validating its
// structure. It returns nil when no schema file exists.
func (l *Loader) ResolveSchema() (*schema.RawDocument, error) {
	res := resolver.Load(l.fs, l.dir, l.schemaFile)
	switch res.Outcome {
	case resolver.NotFound:
		l.log.Debug().Str("dir", l.dir).Str("file", l.schemaFile).Msg("schema not found")
		return nil, nil
	case resolver.Loaded:
		l.log.Debug().Str("path", res.Path).Msg("schema found")
	default:
		return nil, res.Err
	}

	raw, err := schema.FromNode(res.Node, res.Path)
	if err != nil {
		return nil, &resolver.FormatError{Path: res.Path, Err: err}
	}
	return raw, nil
}

func (l *Loader) resolveConfig(filename string) (Config, error) {
	res := resolver.Load(l.fs, l.dir, filename)
	switch res.Outcome {
	case resolver.NotFound:
		l.log.Debug().Str("dir", l.dir).Str("file", filename).Msg("configuration not found")
		return nil, nil
	case resolver.Loaded:
		l.log.Debug().Str("path", res.Path).Msg("configuration found")
	default:
		return nil, res.Err
	}

	cfg, err := schema.DecodeConfig(res.Node)
	if err != nil {
		return nil, &resolver.FormatError{Path: res.Path, Err: err}
	}
	return cfg, nil
}
