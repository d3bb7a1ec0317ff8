package jsonvalue

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"go.yaml.in/yaml/v4"
)

const (
	// maxDepth bounds nesting while decoding. OpenAPI documents rarely exceed
	// a few dozen levels; anything deeper is treated as hostile input.
	maxDepth = 1000

	// maxAliasValues bounds the number of values materialized by expanding
	// YAML aliases, which guards against exponential alias expansion.
	maxAliasValues = 1_000_000

	mergeTag = "!!merge"
)

var (
	// ErrEmpty is returned when the input holds no document.
	ErrEmpty = errors.New("jsonvalue: empty document")
	// ErrTooDeep is returned when nesting exceeds the decoder's depth limit.
	ErrTooDeep = errors.New("jsonvalue: maximum nesting depth exceeded")
	// ErrAliasExpansion is returned when YAML aliases expand to too many values.
	ErrAliasExpansion = errors.New("jsonvalue: YAML alias expansion limit exceeded")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Parse decodes a JSON or YAML document.
//
// Input that looks like JSON is decoded with encoding/json first; if that
// fails (for example a YAML flow mapping) it is decoded as YAML.
func Parse(data []byte) (Value, error) {
	trimmed := bytes.TrimLeft(bytes.TrimPrefix(data, utf8BOM), " \t\r\n")
	if len(trimmed) == 0 {
		return Value{}, ErrEmpty
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		if v, err := ParseJSON(trimmed); err == nil {
			return v, nil
		}
	}
	return ParseYAML(data)
}

// ParseJSON decodes a single JSON value. Numbers keep their literal text.
func ParseJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeJSON(dec, 0)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Value{}, ErrEmpty
		}
		return Value{}, fmt.Errorf("jsonvalue: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Value{}, errors.New("jsonvalue: unexpected data after top-level value")
	}
	return v, nil
}

func decodeJSON(dec *json.Decoder, depth int) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return Number(t.String()), nil
	case string:
		return String(t), nil
	case json.Delim:
		if depth >= maxDepth {
			return Value{}, ErrTooDeep
		}
		if t == '[' {
			return decodeJSONArray(dec, depth)
		}
		if t == '{' {
			return decodeJSONObject(dec, depth)
		}
	}
	return Value{}, fmt.Errorf("unexpected token %v", tok)
}

func decodeJSONArray(dec *json.Decoder, depth int) (Value, error) {
	items := []Value{}
	for dec.More() {
		item, err := decodeJSON(dec, depth+1)
		if err != nil {
			return Value{}, err
		}
		items = append(items, item)
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return Array(items...), nil
}

func decodeJSONObject(dec *json.Decoder, depth int) (Value, error) {
	obj := NewObject()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return Value{}, fmt.Errorf("object key is %T, not string", tok)
		}
		val, err := decodeJSON(dec, depth+1)
		if err != nil {
			return Value{}, err
		}
		obj.Set(key, val)
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return ObjectValue(obj), nil
}

// ParseYAML decodes a YAML document (YAML 1.2 is a superset of JSON).
// Anchors, aliases and merge keys are resolved.
func ParseYAML(data []byte) (Value, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return Value{}, fmt.Errorf("jsonvalue: %w", err)
	}
	if root.Kind == 0 || (root.Kind == yaml.DocumentNode && len(root.Content) == 0) {
		return Value{}, ErrEmpty
	}
	return FromNode(&root)
}

// FromNode converts a decoded yaml.Node tree into a Value.
func FromNode(n *yaml.Node) (Value, error) {
	if n == nil {
		return Null(), nil
	}
	var d nodeDecoder
	return d.decode(n, 0)
}

type nodeDecoder struct {
	inAlias     int
	aliasValues int
}

func (d *nodeDecoder) decode(n *yaml.Node, depth int) (Value, error) {
	if depth > maxDepth {
		return Value{}, ErrTooDeep
	}
	if d.inAlias > 0 {
		d.aliasValues++
		if d.aliasValues > maxAliasValues {
			return Value{}, ErrAliasExpansion
		}
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null(), nil
		}
		return d.decode(n.Content[0], depth)

	case yaml.AliasNode:
		if n.Alias == nil {
			return Null(), nil
		}
		d.inAlias++
		v, err := d.decode(n.Alias, depth+1)
		d.inAlias--
		return v, err

	case yaml.SequenceNode:
		items := make([]Value, 0, len(n.Content))
		for _, child := range n.Content {
			item, err := d.decode(child, depth+1)
			if err != nil {
				return Value{}, err
			}
			items = append(items, item)
		}
		return Array(items...), nil

	case yaml.MappingNode:
		return d.decodeMapping(n, depth)

	case yaml.ScalarNode:
		return decodeScalar(n), nil
	}
	return Value{}, fmt.Errorf("jsonvalue: line %d: unsupported YAML node kind %d", n.Line, n.Kind)
}

func (d *nodeDecoder) decodeMapping(n *yaml.Node, depth int) (Value, error) {
	obj := NewObjectCap(len(n.Content) / 2)
	var merges []*yaml.Node

	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode, valNode := n.Content[i], n.Content[i+1]
		if keyNode.Kind == yaml.ScalarNode && keyNode.ShortTag() == mergeTag {
			merges = append(merges, valNode)
			continue
		}
		key, err := mappingKey(keyNode)
		if err != nil {
			return Value{}, err
		}
		val, err := d.decode(valNode, depth+1)
		if err != nil {
			return Value{}, err
		}
		obj.Set(key, val)
	}

	// Explicit keys win over merged ones, and earlier merge sources win over
	// later ones.
	for _, m := range merges {
		src, err := d.decode(m, depth+1)
		if err != nil {
			return Value{}, err
		}
		sources := []Value{src}
		if items, ok := src.AsArray(); ok {
			sources = items
		}
		for _, s := range sources {
			so, ok := s.AsObject()
			if !ok {
				return Value{}, fmt.Errorf("jsonvalue: line %d: merge value must be a mapping", m.Line)
			}
			for k, v := range so.All() {
				if !obj.Has(k) {
					obj.Set(k, v)
				}
			}
		}
	}
	return ObjectValue(obj), nil
}

func mappingKey(n *yaml.Node) (string, error) {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	if n.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("jsonvalue: line %d: mapping keys must be scalars", n.Line)
	}
	return n.Value, nil
}

func decodeScalar(n *yaml.Node) Value {
	switch n.ShortTag() {
	case "!!null":
		return Null()
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err == nil {
			return Bool(b)
		}
	case "!!int", "!!float":
		if isJSONNumber(n.Value) {
			return Number(n.Value)
		}
		var x any
		if err := n.Decode(&x); err == nil {
			switch t := x.(type) {
			case int:
				return Int(int64(t))
			case int64:
				return Int(t)
			case uint64:
				return Number(strconv.FormatUint(t, 10))
			case float64:
				// JSON has no Inf or NaN; keep the YAML spelling as text.
				if !math.IsInf(t, 0) && !math.IsNaN(t) {
					return Float(t)
				}
			}
		}
	}
	return String(n.Value)
}
