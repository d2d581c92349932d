package confcheck

import (
	"confcheck/internal/logger"
	"confcheck/internal/resolver"
)

const (
	// DefaultSchemaFile is the reserved name of the schema file.
	DefaultSchemaFile = ".confschema"
	// DefaultPackageFile names the package metadata file consulted for the
	// package name in error messages.
	DefaultPackageFile = "package.json"
)

// Option configures a Loader.
type Option func(*Loader)

// WithDir sets the directory the upward searches start from. Defaults to
// the working directory at the time New is called.
func WithDir(dir string) Option {
	return func(l *Loader) { l.dir = dir }
}

// WithSchemaFile overrides the schema file name.
func WithSchemaFile(name string) Option {
	return func(l *Loader) { l.schemaFile = name }
}

// WithPackageFile overrides the package metadata file name.
func WithPackageFile(name string) Option {
	return func(l *Loader) { l.packageFile = name }
}

// WithFileSystem replaces the host filesystem.
func WithFileSystem(fsys resolver.FileSystem) Option {
	return func(l *Loader) { l.fs = fsys }
}

// WithLogger sets the logger used for debug traces. Defaults to a no-op logger.
func WithLogger(log *logger.Logger) Option {
	return func(l *Loader) { l.log = log }
}
