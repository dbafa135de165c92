package types

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// maxSchemaDepth bounds type nesting when parsing schema documents. Schema
// text is the one untrusted-input surface; decoded type trees are acyclic by
// construction, so this is the only depth guard the package needs.
const maxSchemaDepth = 100

var primitivesByName = map[string]Type{
	"boolean":     Boolean,
	"int":         Integer,
	"long":        Long,
	"float":       Float,
	"double":      Double,
	"string":      String,
	"uuid":        UUID,
	"date":        Date,
	"time":        Time,
	"timestamp":   Timestamp,
	"timestamptz": Timestamptz,
	"binary":      Binary,
}

// ParseType parses the compact text form of a type: a primitive name,
// "decimal(p, s)", "fixed[n]", "list<element>" or "map<key, value>".
// Structs carry field ids and names and only exist in the document form
// (ParseSchema).
func ParseType(s string) (Type, error) {
	s = strings.TrimSpace(s)
	if t, ok := primitivesByName[s]; ok {
		return t, nil
	}
	if inner, ok := delimited(s, "list<", ">"); ok {
		et, err := ParseType(inner)
		if err != nil {
			return nil, err
		}
		return ListType{Element: et}, nil
	}
	if inner, ok := delimited(s, "map<", ">"); ok {
		keyText, valueText, ok := splitTopLevel(inner)
		if !ok {
			return nil, fmt.Errorf("types: malformed map type: %q", s)
		}
		kt, err := ParseType(keyText)
		if err != nil {
			return nil, err
		}
		vt, err := ParseType(valueText)
		if err != nil {
			return nil, err
		}
		return MapType{Key: kt, Value: vt}, nil
	}
	if inner, ok := delimited(s, "decimal(", ")"); ok {
		parts := strings.SplitN(inner, ",", 2)
		if len(parts) == 2 {
			p, perr := strconv.Atoi(strings.TrimSpace(parts[0]))
			sc, serr := strconv.Atoi(strings.TrimSpace(parts[1]))
			if perr == nil && serr == nil && p > 0 && sc >= 0 && sc <= p {
				return DecimalType{Precision: p, Scale: sc}, nil
			}
		}
		return nil, fmt.Errorf("types: malformed decimal type: %q", s)
	}
	if inner, ok := delimited(s, "fixed[", "]"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(inner))
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("types: malformed fixed type: %q", s)
		}
		return FixedType{Len: n}, nil
	}
	return nil, fmt.Errorf("types: unknown type: %q", s)
}

// splitTopLevel splits "key, value" at the first comma that is not nested
// inside <>, () or [].
func splitTopLevel(s string) (string, string, bool) {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<', '(', '[':
			depth++
		case '>', ')', ']':
			depth--
		case ',':
			if depth == 0 {
				return s[:i], s[i+1:], true
			}
		}
	}
	return "", "", false
}

func delimited(s, prefix, suffix string) (string, bool) {
	if strings.HasPrefix(s, prefix) && strings.HasSuffix(s, suffix) {
		return s[len(prefix) : len(s)-len(suffix)], true
	}
	return "", false
}

// ParseSchema parses a JSON schema document into a type tree. Primitives
// appear as compact type strings; composites as objects:
//
//	{"type": "struct", "fields": [{"id": 1, "name": "n", "required": true,
//	                               "type": "string", "default": "x"}, ...]}
//	{"type": "list", "element": ...}
//	{"type": "map", "key": ..., "value": ...}
//
// Field defaults are kept in wire form on NestedField.Default; validating
// them against the field type is the codec's job, not this package's.
func ParseSchema(data []byte) (Type, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var node any
	if err := dec.Decode(&node); err != nil {
		return nil, fmt.Errorf("types: malformed schema document: %w", err)
	}
	return typeFromTree(node, 0)
}

// ParseSchemaYAML parses the YAML form of the same schema document.
func ParseSchemaYAML(data []byte) (Type, error) {
	var node any
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("types: malformed schema document: %w", err)
	}
	return typeFromTree(node, 0)
}

func typeFromTree(node any, depth int) (Type, error) {
	if depth > maxSchemaDepth {
		return nil, errors.New("types: schema nesting exceeds maximum depth")
	}
	switch n := node.(type) {
	case string:
		return ParseType(n)
	case map[string]any:
		kind, _ := n["type"].(string)
		switch kind {
		case "struct":
			return structFromTree(n, depth)
		case "list":
			elem, ok := n["element"]
			if !ok {
				return nil, errors.New("types: list type missing element")
			}
			et, err := typeFromTree(elem, depth+1)
			if err != nil {
				return nil, err
			}
			return ListType{Element: et}, nil
		case "map":
			key, kok := n["key"]
			value, vok := n["value"]
			if !kok || !vok {
				return nil, errors.New("types: map type missing key or value")
			}
			kt, err := typeFromTree(key, depth+1)
			if err != nil {
				return nil, err
			}
			vt, err := typeFromTree(value, depth+1)
			if err != nil {
				return nil, err
			}
			return MapType{Key: kt, Value: vt}, nil
		default:
			return nil, fmt.Errorf("types: unknown composite type: %q", kind)
		}
	default:
		return nil, fmt.Errorf("types: cannot parse type from %T node", node)
	}
}

func structFromTree(n map[string]any, depth int) (Type, error) {
	rawFields, ok := n["fields"].([]any)
	if !ok {
		return nil, errors.New("types: struct type missing fields array")
	}
	fields := make([]NestedField, 0, len(rawFields))
	seen := make(map[int]bool, len(rawFields))
	for i, rf := range rawFields {
		fm, ok := rf.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("types: struct field %d is not an object", i)
		}
		id, ok := intField(fm, "id")
		if !ok {
			return nil, fmt.Errorf("types: struct field %d missing id", i)
		}
		if seen[id] {
			return nil, fmt.Errorf("types: duplicate field id %d", id)
		}
		seen[id] = true
		name, _ := fm["name"].(string)
		if name == "" {
			return nil, fmt.Errorf("types: struct field %d missing name", id)
		}
		ft, ok := fm["type"]
		if !ok {
			return nil, fmt.Errorf("types: field %q missing type", name)
		}
		typ, err := typeFromTree(ft, depth+1)
		if err != nil {
			return nil, fmt.Errorf("types: field %q: %w", name, err)
		}
		required, _ := fm["required"].(bool)
		fields = append(fields, NestedField{
			ID:       id,
			Name:     name,
			Type:     typ,
			Required: required,
			Default:  fm["default"],
		})
	}
	return NewStruct(fields...), nil
}

// intField reads an integer member that may arrive as json.Number (JSON
// path) or int (YAML path).
func intField(m map[string]any, key string) (int, bool) {
	switch v := m[key].(type) {
	case json.Number:
		n, err := strconv.Atoi(v.String())
		return n, err == nil
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v == float64(int(v)) {
			return int(v), true
		}
	}
	return 0, false
}
