package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"confcheck"
	"confcheck/internal/schema"
	"confcheck/internal/settings"
)

// checkResult is the machine-readable verdict of the check command. Found is
// only known, and only reported, when the configuration loaded.
type checkResult struct {
	Valid         bool   `json:"valid" yaml:"valid"`
	File          string `json:"file" yaml:"file"`
	Found         *bool  `json:"found,omitempty" yaml:"found,omitempty"`
	ConfigVersion string `json:"configVersion,omitempty" yaml:"configVersion,omitempty"`
	Error         string `json:"error,omitempty" yaml:"error,omitempty"`
}

func (a *app) printConfig(cfg confcheck.Config) error {
	var (
		out []byte
		err error
	)
	switch a.settings.Format {
	case settings.FormatYAML:
		if cfg == nil {
			out = []byte("null\n")
		} else {
			out, err = yaml.Marshal(cfg)
		}
	case settings.FormatText:
		if cfg == nil {
			fmt.Fprintln(a.stdout, "(no configuration)")
			return nil
		}
		keys := make([]string, 0, len(cfg))
		for k := range cfg {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(a.stdout, "%s = %v\n", k, cfg[k])
		}
		return nil
	default:
		out, err = json.MarshalIndent(cfg, "", "  ")
		out = append(out, '\n')
	}
	if err != nil {
		return a.fail(fmt.Errorf("cannot serialize configuration: %w", err), "")
	}
	_, err = a.stdout.Write(out)
	return err
}

func (a *app) printCheck(res checkResult) error {
	var (
		out []byte
		err error
	)
	switch a.settings.Format {
	case settings.FormatText:
		if !res.Valid {
			return nil
		}
		out = []byte("✓ Config valid\n")
	case settings.FormatYAML:
		out, err = yaml.Marshal(res)
	default:
		out, err = json.Marshal(res)
		out = append(out, '\n')
	}
	if err != nil {
		return fmt.Errorf("cannot serialize check result: %w", err)
	}
	if _, err := a.stdout.Write(out); err != nil {
		return fmt.Errorf("write check result: %w", err)
	}
	return nil
}

func (a *app) printSchema(doc *confcheck.Schema) error {
	if doc == nil {
		if a.settings.Format == settings.FormatText {
			fmt.Fprintln(a.stdout, "no schema found")
		} else {
			fmt.Fprintln(a.stdout, "null")
		}
		return nil
	}

	var (
		out []byte
		err error
	)
	switch a.settings.Format {
	case settings.FormatYAML:
		out, err = doc.ToYAML()
	case settings.FormatText:
		a.printSchemaText(doc)
		return nil
	default:
		out, err = doc.ToJSON()
		out = append(out, '\n')
	}
	if err != nil {
		return a.fail(fmt.Errorf("cannot serialize schema: %w", err), doc.Path)
	}
	_, err = a.stdout.Write(out)
	return err
}

func (a *app) printSchemaText(doc *confcheck.Schema) {
	fmt.Fprintf(a.stdout, "schema %s", doc.Name)
	if doc.Path != "" {
		fmt.Fprintf(a.stdout, " (%s)", doc.Path)
	}
	fmt.Fprintln(a.stdout)

	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	for _, section := range []struct {
		title  string
		fields schema.Fields
	}{{"required", doc.Required}, {"optional", doc.Optional}} {
		if len(section.fields) == 0 {
			continue
		}
		fmt.Fprintf(tw, "%s:\n", section.title)
		for _, spec := range section.fields {
			def := "-"
			if spec.HasDefault {
				def = fmt.Sprintf("default=%v", spec.Default)
			}
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", spec.Name, spec.Kind, def, spec.Description)
		}
	}
	tw.Flush()
}
