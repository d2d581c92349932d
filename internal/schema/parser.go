package schema

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrNotMapping is returned when a document's top level is not a mapping.
var ErrNotMapping = errors.New("top level is not a mapping")

const (
	keyName        = "name"
	keyRequired    = "required"
	keyOptional    = "optional"
	keyType        = "type"
	keyDescription = "description"
	keyDefault     = "default"
)

// Parse reads schema content (YAML or JSON) into a RawDocument.
func Parse(content []byte, path string) (*RawDocument, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(content, &node); err != nil {
		return nil, fmt.Errorf("invalid schema syntax: %w", err)
	}
	return FromNode(&node, path)
}

// FromNode builds a RawDocument from a decoded YAML node, keeping the order
// in which fields appear.
func FromNode(node *yaml.Node, path string) (*RawDocument, error) {
	root, err := mappingRoot(node)
	if err != nil {
		return nil, err
	}

	doc := &RawDocument{Path: path}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i].Value, root.Content[i+1]
		switch key {
		case keyName:
			doc.Name, err = decodeAttr(value)
		case keyRequired:
			doc.Required, err = parseSection(value)
		case keyOptional:
			doc.Optional, err = parseSection(value)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
	}
	return doc, nil
}

// DecodeConfig decodes a configuration document from a YAML node.
func DecodeConfig(node *yaml.Node) (Config, error) {
	root, err := mappingRoot(node)
	if err != nil {
		return nil, err
	}
	cfg := Config{}
	if err := root.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

func mappingRoot(node *yaml.Node) (*yaml.Node, error) {
	if node == nil {
		return nil, ErrNotMapping
	}
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil, ErrNotMapping
		}
		node = node.Content[0]
	}
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	if node == nil || node.Kind != yaml.MappingNode {
		return nil, ErrNotMapping
	}
	return node, nil
}

func parseSection(node *yaml.Node) (RawSection, error) {
	section := RawSection{Present: true}
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		// "required: null" declares nothing
		return section, nil
	}
	if node.Kind != yaml.MappingNode {
		section.NotMapping = true
		return section, nil
	}

	index := make(map[string]int)
	for i := 0; i+1 < len(node.Content); i += 2 {
		field, err := parseField(node.Content[i].Value, node.Content[i+1])
		if err != nil {
			return RawSection{}, err
		}
		// a repeated key replaces the earlier entry in place
		if at, ok := index[field.Name]; ok {
			section.Fields[at] = field
			continue
		}
		index[field.Name] = len(section.Fields)
		section.Fields = append(section.Fields, field)
	}
	return section, nil
}

func parseField(name string, node *yaml.Node) (RawField, error) {
	field := RawField{Name: name}
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	if node.Kind != yaml.MappingNode {
		field.NotMapping = true
		return field, nil
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		attr, err := decodeAttr(node.Content[i+1])
		if err != nil {
			return RawField{}, fmt.Errorf("field %q: %w", name, err)
		}
		switch node.Content[i].Value {
		case keyType:
			field.Type = attr
		case keyDescription:
			field.Description = attr
		case keyDefault:
			field.Default = attr
		}
	}
	return field, nil
}

func decodeAttr(node *yaml.Node) (Attr, error) {
	var v any
	if err := node.Decode(&v); err != nil {
		return Attr{}, err
	}
	return Attr{Value: v, Present: true}, nil
}
