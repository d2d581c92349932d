package resolver

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// jsonReader turns a JSON token stream into YAML nodes that carry the line
// each value starts on.
type jsonReader struct {
	dec     *json.Decoder
	content []byte
}

// jsonNode parses JSON text into a YAML node tree. Object keys keep the
// order in which they first appear; a repeated key keeps its first position
// and its last value, as JSON.parse does.
func jsonNode(content []byte) (*yaml.Node, error) {
	r := &jsonReader{dec: json.NewDecoder(bytes.NewReader(content)), content: content}
	r.dec.UseNumber()

	root, err := r.readValue()
	if err != nil {
		return nil, err
	}
	if _, err := r.dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("line %d: unexpected data after top-level value", r.line())
	}
	return &yaml.Node{Kind: yaml.DocumentNode, Line: 1, Column: 1, Content: []*yaml.Node{root}}, nil
}

// line reports the line of the token the decoder has just returned.
func (r *jsonReader) line() int {
	offset := int(r.dec.InputOffset())
	if offset > len(r.content) {
		offset = len(r.content)
	}
	return bytes.Count(r.content[:offset], []byte("\n")) + 1
}

func (r *jsonReader) scalar(tag, value string, style yaml.Style) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value, Style: style, Line: r.line()}
}

func (r *jsonReader) readValue() (*yaml.Node, error) {
	tok, err := r.dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return r.readObject()
		case '[':
			return r.readArray()
		default:
			return nil, fmt.Errorf("line %d: unexpected %q", r.line(), rune(t))
		}
	case string:
		return r.scalar("!!str", t, yaml.DoubleQuotedStyle), nil
	case json.Number:
		return r.number(t), nil
	case bool:
		return r.scalar("!!bool", strconv.FormatBool(t), 0), nil
	case nil:
		return r.scalar("!!null", "null", 0), nil
	default:
		return nil, fmt.Errorf("line %d: unexpected token %v", r.line(), tok)
	}
}

// number tags integers that fit int64 as !!int and everything else as
// !!float. Floats are rewritten in a form yaml.v3 accepts; magnitudes beyond
// float64 become infinities, like JSON.parse gives.
func (r *jsonReader) number(n json.Number) *yaml.Node {
	if _, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
		return r.scalar("!!int", n.String(), 0)
	}

	// the decoder only yields well-formed numbers, so only ErrRange is possible
	f, _ := strconv.ParseFloat(n.String(), 64)
	var value string
	switch {
	case math.IsInf(f, 1):
		value = ".inf"
	case math.IsInf(f, -1):
		value = "-.inf"
	default:
		value = strconv.FormatFloat(f, 'g', -1, 64)
	}
	return r.scalar("!!float", value, 0)
}

func (r *jsonReader) readObject() (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Style: yaml.FlowStyle, Line: r.line()}
	index := make(map[string]int)
	for r.dec.More() {
		tok, err := r.dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("line %d: object key %v is not a string", r.line(), tok)
		}
		keyNode := r.scalar("!!str", key, yaml.DoubleQuotedStyle)
		value, err := r.readValue()
		if err != nil {
			return nil, err
		}

		// a repeated key replaces the earlier value in place
		if at, ok := index[key]; ok {
			node.Content[at+1] = value
			continue
		}
		index[key] = len(node.Content)
		node.Content = append(node.Content, keyNode, value)
	}
	if _, err := r.dec.Token(); err != nil {
		return nil, err
	}
	return node, nil
}

func (r *jsonReader) readArray() (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: yaml.FlowStyle, Line: r.line()}
	for r.dec.More() {
		value, err := r.readValue()
		if err != nil {
			return nil, err
		}
		node.Content = append(node.Content, value)
	}
	if _, err := r.dec.Token(); err != nil {
		return nil, err
	}
	return node, nil
}
