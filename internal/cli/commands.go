package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"confcheck/internal/artifact"
	"confcheck/internal/drift"
	"confcheck/internal/settings"
)

func (a *app) loadCommand() *cobra.Command {
	var artifactFile string

	cmd := &cobra.Command{
		Use:   "load <file>",
		Short: "Print the validated configuration with defaults applied",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.loader()
			if err != nil {
				return err
			}
			cfg, err := l.Load(args[0])
			if err != nil {
				return a.fail(err, args[0])
			}

			if artifactFile != "" {
				art, err := artifact.Generate(cfg)
				if err != nil {
					return a.fail(err, args[0])
				}
				if err := art.WriteToFile(artifactFile); err != nil {
					return a.fail(err, artifactFile)
				}
				a.log.Info().Str("path", artifactFile).Str("config_version", art.ConfigVersion).Msg("artifact written")
			}

			return a.printConfig(cfg)
		},
	}
	cmd.Flags().StringVar(&artifactFile, "artifact-file", "", "Also write a versioned artifact of the configuration to this path")
	return cmd
}

func (a *app) checkCommand() *cobra.Command {
	var against string

	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Validate the configuration without printing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.loader()
			if err != nil {
				return err
			}

			cfg, err := l.Load(args[0])
			if err != nil {
				if printErr := a.printCheck(checkResult{File: args[0], Error: err.Error()}); printErr != nil {
					a.log.Warn().Err(printErr).Msg("cannot report check verdict")
				}
				return a.fail(err, args[0])
			}

			art, err := artifact.Generate(cfg)
			if err != nil {
				return a.fail(err, args[0])
			}
			_, found, err := l.Locate(args[0])
			if err != nil {
				return a.fail(err, args[0])
			}
			if err := a.printCheck(checkResult{
				Valid:         true,
				File:          args[0],
				Found:         &found,
				ConfigVersion: art.ConfigVersion,
			}); err != nil {
				return a.fail(err, args[0])
			}

			if against != "" {
				a.reportDrift(against, art, args[0])
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&against, "against", "", "Warn about changes since the artifact at this path (written by load --artifact-file)")
	return cmd
}

// reportDrift compares the current artifact with a recorded one. Drift is a
// warning and never fails the command.
func (a *app) reportDrift(path string, current artifact.ConfigArtifact, file string) {
	previous, err := artifact.ReadFromFile(path)
	if err != nil {
		a.log.Warn().Err(err).Str("path", path).Msg("cannot read previous artifact, drift not checked")
		return
	}

	report := drift.Detect(previous, current, path)
	if !report.HasDrift {
		return
	}
	switch {
	case a.settings.CI:
		fmt.Fprint(a.stderr, drift.FormatCI(report, file))
	case a.settings.Format == settings.FormatJSON:
		out, err := drift.FormatJSON(report)
		if err != nil {
			a.log.Warn().Err(err).Msg("cannot render drift report")
			return
		}
		fmt.Fprintln(a.stderr, out)
	default:
		fmt.Fprint(a.stderr, drift.FormatCLI(report))
	}
}

func (a *app) schemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the validated package schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.loader()
			if err != nil {
				return err
			}
			doc, err := l.Schema()
			if err != nil {
				return a.fail(err, a.settings.SchemaFile)
			}
			return a.printSchema(doc)
		},
	}
}
