package drift

import (
	"encoding/json"
	"fmt"
	"strings"
)

// line renders a change for a terminal: marker, key and the value transition.
func (c KeyDrift) line() string {
	switch c.Type {
	case DriftAdded:
		return fmt.Sprintf("+ %s: (new) → %s", c.Key, c.CurrentValue)
	case DriftRemoved:
		return fmt.Sprintf("- %s: %s → (removed)", c.Key, c.PreviousValue)
	default:
		return fmt.Sprintf("~ %s: %s → %s", c.Key, c.PreviousValue, c.CurrentValue)
	}
}

// sentence renders a change as prose, for annotations.
func (c KeyDrift) sentence() string {
	switch c.Type {
	case DriftAdded:
		return fmt.Sprintf("%s added (value: %s)", c.Key, c.CurrentValue)
	case DriftRemoved:
		return fmt.Sprintf("%s removed (was: %s)", c.Key, c.PreviousValue)
	default:
		return fmt.Sprintf("%s changed from %s to %s", c.Key, c.PreviousValue, c.CurrentValue)
	}
}

// FormatCLI renders the report for a terminal. It is empty without drift.
func FormatCLI(report DriftReport) string {
	if !report.HasDrift {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "⚠️  Configuration drift detected since %s:\n", report.Source)
	for _, change := range report.Changes {
		fmt.Fprintf(&sb, "  %s\n", change.line())
	}
	return sb.String()
}

// FormatCI renders one GitHub Actions warning per change, attributed to file,
// followed by a summary line.
func FormatCI(report DriftReport, file string) string {
	if !report.HasDrift {
		return ""
	}

	var sb strings.Builder
	for _, change := range report.Changes {
		fmt.Fprintf(&sb, "::warning file=%s::Config drift: %s\n", file, change.sentence())
	}
	fmt.Fprintf(&sb, "\n⚠️  Configuration drift detected: %d change(s) since %s\n", len(report.Changes), report.Source)
	return sb.String()
}

// FormatJSON renders the whole report, including an empty one.
func FormatJSON(report DriftReport) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode drift report: %w", err)
	}
	return string(data), nil
}
