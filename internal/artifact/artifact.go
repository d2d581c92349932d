package artifact

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"confcheck/internal/schema"
)

// ConfigArtifact is the immutable record of a final configuration.
type ConfigArtifact struct {
	ConfigVersion string        `json:"configVersion"` // sha256:hex
	Values        schema.Config `json:"values"`
}

// Generate creates an artifact from a validated configuration. Keys holding
// Undefined are left out; a nil configuration yields empty values.
func Generate(cfg schema.Config) (ConfigArtifact, error) {
	values := schema.Config{}
	for k, v := range cfg {
		if !schema.IsUndefined(v) {
			values[k] = v
		}
	}

	version, err := ComputeConfigVersion(values)
	if err != nil {
		return ConfigArtifact{}, err
	}
	return ConfigArtifact{ConfigVersion: version, Values: values}, nil
}

// ComputeConfigVersion hashes the canonical form of values.
func ComputeConfigVersion(values schema.Config) (string, error) {
	canonical, err := CanonicalJSON(values)
	if err != nil {
		return "", err
	}
	return hashBytes(canonical), nil
}

// CanonicalJSON renders values with sorted keys at every level, no
// whitespace and no HTML escaping.
func CanonicalJSON(values schema.Config) ([]byte, error) {
	if len(values) == 0 {
		return []byte("{}"), nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(map[string]any(values)); err != nil {
		return nil, fmt.Errorf("canonical form: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// ToJSON serializes the artifact to pretty-printed JSON for human readability.
func (a ConfigArtifact) ToJSON() ([]byte, error) {
	return json.MarshalIndent(a, "", "  ")
}

func hashBytes(data []byte) string {
	hash := sha256.Sum256(data)
	return "sha256:" + hex.EncodeToString(hash[:])
}
