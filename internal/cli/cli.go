// Package cli builds the confcheck command tree.
package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"confcheck"
	"confcheck/internal/logger"
	"confcheck/internal/resolver"
	"confcheck/internal/settings"
	"confcheck/internal/validator"
)

// Exit codes.
const (
	ExitOK     = 0
	ExitConfig = 1 // configuration missing, incomplete or mistyped
	ExitUsage  = 2
	ExitSchema = 3 // schema file unreadable or malformed
)

// ExitError carries the exit code a failed command should end with. The
// command has already reported Err by the time it is returned.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }

func (e *ExitError) Unwrap() error { return e.Err }

// app is the state shared by every command of one invocation.
type app struct {
	stdout, stderr io.Writer
	environ        map[string]string
	flags          settings.Settings
	settings       *settings.Settings
	log            *logger.Logger
}

// NewRootCommand returns the confcheck command. environ is the process
// environment in "KEY=VALUE" form.
func NewRootCommand(stdout, stderr io.Writer, environ []string) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr, environ: settings.ParseEnviron(environ)}

	root := &cobra.Command{
		Use:   "confcheck",
		Short: "Validate package configuration against its schema",
		Long: "confcheck finds a configuration file and the package schema by walking up from the\n" +
			"working directory, checks the configuration and prints it with defaults applied.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return a.init() },
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.Dir, "dir", "", "Directory the upward search starts from (default: working directory)")
	pf.StringVar(&a.flags.SchemaFile, "schema-file", "", "Schema file name (default .confschema)")
	pf.StringVar(&a.flags.PackageFile, "package-file", "", "Package metadata file name (default package.json)")
	pf.StringVar(&a.flags.LogLevel, "log-level", "", "Log level: debug|info|warn|error")
	pf.StringVarP(&a.flags.Format, "format", "o", "", "Output format: json|yaml|text")
	pf.BoolVar(&a.flags.CI, "ci", false, "Report errors as CI annotations")

	root.AddCommand(a.loadCommand(), a.checkCommand(), a.schemaCommand())
	return root
}

func (a *app) init() error {
	envLayer, err := settings.FromEnv(a.environ)
	if err != nil {
		return a.usage(err)
	}
	s, err := settings.Merge(settings.Defaults(), envLayer, &a.flags)
	if err != nil {
		return a.usage(err)
	}
	a.settings = s

	// Merge has validated the level
	level, _ := logger.ParseLevel(s.LogLevel)
	a.log = logger.NewConsoleLogger("cli", level, a.stderr)
	return nil
}

func (a *app) usage(err error) error {
	fmt.Fprintln(a.stderr, "Error:", err)
	return &ExitError{Code: ExitUsage, Err: err}
}

func (a *app) loader() (*confcheck.Loader, error) {
	l, err := confcheck.New(
		confcheck.WithDir(a.settings.Dir),
		confcheck.WithSchemaFile(a.settings.SchemaFile),
		confcheck.WithPackageFile(a.settings.PackageFile),
		confcheck.WithLogger(a.log.GetChildLogger("loader")),
	)
	if err != nil {
		return nil, a.usage(err)
	}
	return l, nil
}

// fail reports err on stderr and wraps it with its exit code.
func (a *app) fail(err error, file string) error {
	code := a.exitCode(err)

	var (
		formatErr    *resolver.FormatError
		structureErr *validator.StructureError
	)
	switch {
	case errors.As(err, &formatErr):
		file = formatErr.Path
	case errors.As(err, &structureErr):
		file = structureErr.Schema
	}
	if a.settings.CI {
		fmt.Fprintln(a.stderr, validator.FormatCI(err, file))
	} else {
		fmt.Fprintln(a.stderr, "Error:", validator.FormatError(err))
	}

	a.log.Debug().Err(err).Int("exit_code", code).Msg("command failed")
	return &ExitError{Code: code, Err: err}
}

func (a *app) exitCode(err error) int {
	var formatErr *resolver.FormatError
	switch {
	case errors.Is(err, validator.ErrStructure):
		return ExitSchema
	case errors.As(err, &formatErr) && filepath.Base(formatErr.Path) == a.settings.SchemaFile:
		return ExitSchema
	default:
		return ExitConfig
	}
}
