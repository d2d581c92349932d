package resolver

import (
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Outcome tags the result of resolving a file.
type Outcome int

const (
	NotFound Outcome = iota
	Loaded
	ParseError
	ReadError
)

func (o Outcome) String() string {
	switch o {
	case NotFound:
		return "not found"
	case Loaded:
		return "loaded"
	case ParseError:
		return "parse error"
	case ReadError:
		return "read error"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Result is what Load found. Node is set only for Loaded, Err only for
// ParseError and ReadError.
type Result struct {
	Outcome Outcome
	Dir     string
	Path    string
	Node    *yaml.Node
	Err     error
}

// Load locates filename by upward search from start and decodes it.
// Files with a YAML extension are structured modules decoded as YAML;
// every other file is read as text and must hold JSON.
func Load(fsys FileSystem, start, filename string) Result {
	dir, found, err := FindUp(fsys, start, filename)
	if err != nil {
		return Result{Outcome: ReadError, Err: err}
	}
	if !found {
		return Result{Outcome: NotFound}
	}

	path := filepath.Join(dir, filename)
	res := Result{Dir: dir, Path: path}

	content, err := fsys.ReadFile(path)
	if err != nil {
		res.Outcome = ReadError
		res.Err = fmt.Errorf("read %s: %w", path, err)
		return res
	}

	node, err := decode(path, content)
	if err != nil {
		res.Outcome = ParseError
		res.Err = &FormatError{Path: path, Err: err}
		return res
	}

	res.Outcome = Loaded
	res.Node = node
	return res
}

func decode(path string, content []byte) (*yaml.Node, error) {
	if isModule(path) {
		var node yaml.Node
		if err := yaml.Unmarshal(content, &node); err != nil {
			return nil, err
		}
		return &node, nil
	}
	return jsonNode(content)
}

func isModule(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}
