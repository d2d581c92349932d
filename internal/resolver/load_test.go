package resolver

import (
	"errors"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func decodeMap(t *testing.T, res Result) map[string]any {
	t.Helper()
	require.Equal(t, Loaded, res.Outcome, "err: %v", res.Err)
	var m map[string]any
	require.NoError(t, res.Node.Decode(&m))
	return m
}

func TestLoad_JSONText(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ".confschema", "{\n\t\"name\": \"svc\",\n\t\"port\": 8080,\n\t\"ratio\": 0.5,\n\t\"tags\": [\"a\", null, true]\n}")

	res := Load(OS{}, dir, ".confschema")

	assert.Equal(t, path, res.Path)
	assert.Equal(t, dir, res.Dir)
	assert.Equal(t, map[string]any{
		"name":  "svc",
		"port":  8080,
		"ratio": 0.5,
		"tags":  []any{"a", nil, true},
	}, decodeMap(t, res))
}

func TestLoad_JSONKeepsKeyOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.json", `{"zeta": 1, "alpha": 2, "mid": {"y": 1, "x": 2}}`)

	res := Load(OS{}, dir, "config.json")
	require.Equal(t, Loaded, res.Outcome)

	root := res.Node.Content[0]
	var keys []string
	for i := 0; i < len(root.Content); i += 2 {
		keys = append(keys, root.Content[i].Value)
	}
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, keys)
}

func TestLoad_JSONRepeatedKeysKeepLastValue(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	writeFile(t, dir, "config.json", `{"a": "s", "b": true, "a": 1, "o": {"k": 1, "k": 2}}`)

	// Act
	res := Load(OS{}, dir, "config.json")

	// Assert
	assert.Equal(t, map[string]any{
		"a": 1,
		"b": true,
		"o": map[string]any{"k": 2},
	}, decodeMap(t, res))

	root := res.Node.Content[0]
	require.Len(t, root.Content, 6)
	assert.Equal(t, "a", root.Content[0].Value, "a repeated key keeps its first position")
}

func TestLoad_JSONNumbers(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.json", `{"big": 1e400, "neg": -1e400, "tiny": 1e-400, "exp": 1e6, "wide": 18446744073709551616}`)

	m := decodeMap(t, Load(OS{}, dir, "config.json"))

	assert.True(t, math.IsInf(m["big"].(float64), 1))
	assert.True(t, math.IsInf(m["neg"].(float64), -1))
	assert.Equal(t, float64(0), m["tiny"])
	assert.Equal(t, float64(1e6), m["exp"])
	assert.Equal(t, float64(18446744073709551616), m["wide"])
}

func TestLoad_JSONNodesCarryLines(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.json", "{\n  \"a\": 1,\n  \"b\": [\n    true\n  ]\n}\n")

	res := Load(OS{}, dir, "config.json")
	require.Equal(t, Loaded, res.Outcome)

	root := res.Node.Content[0]
	assert.Equal(t, 2, root.Content[0].Line)
	assert.Equal(t, 3, root.Content[2].Line)
	assert.Equal(t, 4, root.Content[3].Content[0].Line)
}

func TestLoad_YAMLModule(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.yaml", "host: a.com\nport: 80\n")

	res := Load(OS{}, dir, "config.yaml")

	assert.Equal(t, map[string]any{"host": "a.com", "port": 80}, decodeMap(t, res))
}

func TestLoad_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	fsys := NewMockFileSystem(ctrl)
	fsys.EXPECT().Stat(gomock.Any()).Return(nil, fs.ErrNotExist).AnyTimes()

	res := Load(fsys, p("/srv/app"), "config.json")

	assert.Equal(t, NotFound, res.Outcome)
	assert.Nil(t, res.Node)
	assert.NoError(t, res.Err)
}

func TestLoad_ParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{name: "yaml is not json", file: ".confschema", content: "name: svc\n"},
		{name: "truncated", file: "config.json", content: `{"name": "svc"`},
		{name: "trailing data", file: "config.json", content: `{} {}`},
		{name: "empty", file: "config.json", content: ""},
		{name: "bad yaml", file: "config.yml", content: "a: [unclosed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeFile(t, dir, tt.file, tt.content)

			res := Load(OS{}, dir, tt.file)

			assert.Equal(t, ParseError, res.Outcome)
			assert.ErrorIs(t, res.Err, ErrFormat)

			var formatErr *FormatError
			require.True(t, errors.As(res.Err, &formatErr))
			assert.Equal(t, path, formatErr.Path)
			assert.Contains(t, res.Err.Error(), path)
		})
	}
}

func TestLoad_ReadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	fsys := NewMockFileSystem(ctrl)

	fsys.EXPECT().Stat(p("/srv/config.json")).Return(fileInfo{name: "config.json"}, nil)
	fsys.EXPECT().ReadFile(p("/srv/config.json")).Return(nil, fs.ErrPermission)

	res := Load(fsys, p("/srv"), "config.json")

	assert.Equal(t, ReadError, res.Outcome)
	assert.ErrorIs(t, res.Err, fs.ErrPermission)
	assert.NotErrorIs(t, res.Err, ErrFormat)
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "loaded", Loaded.String())
	assert.Equal(t, "not found", NotFound.String())
	assert.Equal(t, "parse error", ParseError.String())
	assert.Equal(t, "read error", ReadError.String())
	assert.Equal(t, "outcome(9)", Outcome(9).String())
}
