package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ToYAML serializes a Document back to YAML, keeping field order and
// including the derived hasDefault flag.
func (d *Document) ToYAML() ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	appendPair(root, keyName, scalar(d.Name))
	appendPair(root, "hasDefault", scalar(d.HasDefault()))

	for _, section := range []struct {
		key    string
		fields Fields
	}{{keyRequired, d.Required}, {keyOptional, d.Optional}} {
		if len(section.fields) == 0 {
			continue
		}
		block := &yaml.Node{Kind: yaml.MappingNode}
		for _, spec := range section.fields {
			entry := &yaml.Node{Kind: yaml.MappingNode}
			appendPair(entry, keyType, scalar(spec.Kind.String()))
			if spec.Description != "" {
				appendPair(entry, keyDescription, scalar(spec.Description))
			}
			if spec.HasDefault {
				value := &yaml.Node{}
				if err := value.Encode(spec.Default); err != nil {
					return nil, fmt.Errorf("encode default of %q: %w", spec.Name, err)
				}
				appendPair(entry, keyDefault, value)
			}
			appendPair(block, spec.Name, entry)
		}
		appendPair(root, section.key, block)
	}

	return yaml.Marshal(root)
}

// ToJSON serializes a Document to indented JSON, keeping field order.
func (d *Document) ToJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"name":`)
	writeJSON(&buf, d.Name)
	buf.WriteString(`,"hasDefault":`)
	writeJSON(&buf, d.HasDefault())

	for _, section := range []struct {
		key    string
		fields Fields
	}{{keyRequired, d.Required}, {keyOptional, d.Optional}} {
		if len(section.fields) == 0 {
			continue
		}
		fmt.Fprintf(&buf, `,%q:{`, section.key)
		for i, spec := range section.fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeJSON(&buf, spec.Name)
			buf.WriteString(`:{"type":`)
			writeJSON(&buf, spec.Kind.String())
			if spec.Description != "" {
				buf.WriteString(`,"description":`)
				writeJSON(&buf, spec.Description)
			}
			if spec.HasDefault {
				buf.WriteString(`,"default":`)
				raw, err := json.Marshal(spec.Default)
				if err != nil {
					return nil, fmt.Errorf("encode default of %q: %w", spec.Name, err)
				}
				buf.Write(raw)
			}
			buf.WriteByte('}')
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v any) {
	// strings and bools always marshal
	raw, _ := json.Marshal(v)
	buf.Write(raw)
}

func scalar(v any) *yaml.Node {
	n := &yaml.Node{}
	_ = n.Encode(v)
	return n
}

func appendPair(mapping *yaml.Node, key string, value *yaml.Node) {
	mapping.Content = append(mapping.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		value,
	)
}
