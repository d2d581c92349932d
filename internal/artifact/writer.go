package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// WriteToFile stores the artifact at path, creating parent directories. The
// file is replaced atomically so a concurrent reader never sees half of it.
func (a ConfigArtifact) WriteToFile(path string) error {
	data, err := a.ToJSON()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create artifact directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create artifact: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}

// ReadFromFile loads an artifact written by WriteToFile.
func ReadFromFile(path string) (ConfigArtifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ConfigArtifact{}, err
	}

	var a ConfigArtifact
	if err := json.Unmarshal(data, &a); err != nil {
		return ConfigArtifact{}, fmt.Errorf("invalid artifact %s: %w", path, err)
	}
	if a.ConfigVersion == "" {
		return ConfigArtifact{}, fmt.Errorf("invalid artifact %s: no configVersion", path)
	}
	return a, nil
}
