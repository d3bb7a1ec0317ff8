package jsonvalue

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"
)

// Marshal encodes v as compact JSON, keeping object member order.
// HTML characters are not escaped.
func Marshal(v Value) ([]byte, error) {
	e := newEncoder()
	if err := e.encode(v); err != nil {
		return nil, err
	}
	return e.buf.Bytes(), nil
}

// MarshalIndent is like Marshal but applies json.Indent to the output.
func MarshalIndent(v Value, prefix, indent string) ([]byte, error) {
	data, err := Marshal(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, prefix, indent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalYAML encodes v as a YAML document, keeping object member order.
func MarshalYAML(v Value) ([]byte, error) {
	return yaml.Marshal(v.ToNode())
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	return Marshal(v)
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := ParseJSON(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (o *Object) MarshalJSON() ([]byte, error) {
	return Marshal(ObjectValue(o))
}

type encoder struct {
	buf     bytes.Buffer
	scratch bytes.Buffer
	str     *json.Encoder
}

func newEncoder() *encoder {
	e := &encoder{}
	e.str = json.NewEncoder(&e.scratch)
	e.str.SetEscapeHTML(false)
	return e
}

func (e *encoder) encode(v Value) error {
	switch v.kind {
	case KindNull:
		e.buf.WriteString("null")
	case KindBool:
		e.buf.WriteString(strconv.FormatBool(v.b))
	case KindNumber:
		e.buf.WriteString(v.s)
	case KindString:
		return e.encodeString(v.s)
	case KindArray:
		e.buf.WriteByte('[')
		for i, item := range v.arr {
			if i > 0 {
				e.buf.WriteByte(',')
			}
			if err := e.encode(item); err != nil {
				return err
			}
		}
		e.buf.WriteByte(']')
	case KindObject:
		e.buf.WriteByte('{')
		first := true
		for key, val := range v.obj.All() {
			if !first {
				e.buf.WriteByte(',')
			}
			first = false
			if err := e.encodeString(key); err != nil {
				return err
			}
			e.buf.WriteByte(':')
			if err := e.encode(val); err != nil {
				return err
			}
		}
		e.buf.WriteByte('}')
	}
	return nil
}

func (e *encoder) encodeString(s string) error {
	e.scratch.Reset()
	if err := e.str.Encode(s); err != nil {
		return err
	}
	// json.Encoder terminates every value with a newline.
	e.buf.Write(bytes.TrimSuffix(e.scratch.Bytes(), []byte{'\n'}))
	return nil
}

// ToNode converts v into a yaml.Node tree suitable for yaml.Marshal.
func (v Value) ToNode() *yaml.Node {
	switch v.kind {
	case KindBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.b)}
	case KindNumber:
		tag := "!!int"
		if strings.ContainsAny(v.s, ".eE") {
			tag = "!!float"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v.s}
	case KindString:
		n := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.s}
		if strings.Contains(v.s, "\n") {
			n.Style = yaml.LiteralStyle
		}
		return n
	case KindArray:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: make([]*yaml.Node, 0, len(v.arr))}
		for _, item := range v.arr {
			seq.Content = append(seq.Content, item.ToNode())
		}
		return seq
	case KindObject:
		m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Content: make([]*yaml.Node, 0, 2*v.obj.Len())}
		for key, val := range v.obj.All() {
			m.Content = append(m.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
				val.ToNode(),
			)
		}
		return m
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}
