package drift

import (
	"encoding/json"
	"sort"

	"confcheck/internal/artifact"
)

// DriftType represents the type of configuration change.
type DriftType string

const (
	DriftAdded   DriftType = "added"   // Key in current but not previous
	DriftRemoved DriftType = "removed" // Key in previous but not current
	DriftChanged DriftType = "changed" // Key in both with different values
)

// KeyDrift represents a single key's drift. Values are rendered as JSON.
type KeyDrift struct {
	Key           string    `json:"key"`
	Type          DriftType `json:"type"`
	PreviousValue string    `json:"previousValue,omitempty"`
	CurrentValue  string    `json:"currentValue,omitempty"`
}

// DriftReport contains the full drift analysis.
type DriftReport struct {
	HasDrift     bool       `json:"hasDrift"`
	Source       string     `json:"source"`
	PreviousHash string     `json:"previousHash"`
	CurrentHash  string     `json:"currentHash"`
	Changes      []KeyDrift `json:"changes"`
}

// Detect compares the current configuration artifact against a previously
// recorded one. source names where the previous artifact came from.
func Detect(previous, current artifact.ConfigArtifact, source string) DriftReport {
	report := DriftReport{
		Source:       source,
		PreviousHash: previous.ConfigVersion,
		CurrentHash:  current.ConfigVersion,
		Changes:      []KeyDrift{},
	}

	// Quick check: if hashes match, no drift
	if previous.ConfigVersion == current.ConfigVersion {
		return report
	}

	allKeys := make(map[string]bool)
	for k := range previous.Values {
		allKeys[k] = true
	}
	for k := range current.Values {
		allKeys[k] = true
	}

	keys := make([]string, 0, len(allKeys))
	for k := range allKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		prevVal, inPrevious := previous.Values[key]
		currVal, inCurrent := current.Values[key]
		prev, curr := render(prevVal), render(currVal)

		switch {
		case inPrevious && !inCurrent:
			report.Changes = append(report.Changes, KeyDrift{Key: key, Type: DriftRemoved, PreviousValue: prev})
		case !inPrevious && inCurrent:
			report.Changes = append(report.Changes, KeyDrift{Key: key, Type: DriftAdded, CurrentValue: curr})
		case prev != curr:
			report.Changes = append(report.Changes, KeyDrift{Key: key, Type: DriftChanged, PreviousValue: prev, CurrentValue: curr})
		}
	}

	report.HasDrift = len(report.Changes) > 0
	return report
}

// render gives values that went through a JSON file and values that did not
// the same form, so 8080 and 8080.0 compare equal.
func render(v any) string {
	raw, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	var normalized any
	if err := json.Unmarshal(raw, &normalized); err != nil {
		return string(raw)
	}
	out, _ := json.Marshal(normalized)
	return string(out)
}
