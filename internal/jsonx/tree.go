// Package jsonx provides the JSON tree this module decodes into and the
// node-kind predicates and checked numeric extraction the codec dispatches
// on. A tree node is one of: nil, bool, json.Number, string, []any,
// map[string]any. Hand-built trees may also carry int, int64 or float64
// where a number is expected.
package jsonx

import (
	"bytes"
	"errors"
	"io"
	"strconv"

	json "github.com/goccy/go-json"
)

var (
	// ErrNotNumber reports a node that is not numeric at all.
	ErrNotNumber = errors.New("not a number")
	// ErrNotIntegral reports a numeric node with a fraction or exponent.
	ErrNotIntegral = errors.New("not an integral number")
	// ErrRange reports a numeric literal outside the target width.
	ErrRange = errors.New("value out of range")
)

// DecodeTree parses data into a tree. Numeric literals are kept as
// json.Number so their exact text (and therefore decimal scale) survives.
func DecodeTree(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	// A JSON document is a single value; anything after it is garbage.
	if err := dec.Decode(new(any)); err != io.EOF {
		return nil, errors.New("trailing data after JSON value")
	}
	return v, nil
}

func IsNull(v any) bool { return v == nil }

func IsBool(v any) bool { _, ok := v.(bool); return ok }

func IsString(v any) bool { _, ok := v.(string); return ok }

func IsArray(v any) bool { _, ok := v.([]any); return ok }

func IsObject(v any) bool { _, ok := v.(map[string]any); return ok }

func IsNumber(v any) bool {
	_, ok := NumberText(v)
	return ok
}

// IsIntegral reports whether v is a number whose literal has neither a
// fraction nor an exponent. "1.0" and "1e2" are not integral.
func IsIntegral(v any) bool {
	s, ok := NumberText(v)
	if !ok {
		return false
	}
	if len(s) > 0 && (s[0] == '-' || s[0] == '+') {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// NumberText returns the literal text of a numeric node.
func NumberText(v any) (string, bool) {
	switch n := v.(type) {
	case json.Number:
		return n.String(), true
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64), true
	case int:
		return strconv.Itoa(n), true
	case int64:
		return strconv.FormatInt(n, 10), true
	}
	return "", false
}

// Int extracts an integral value that fits in the given bit width.
func Int(v any, bits int) (int64, error) {
	s, ok := NumberText(v)
	if !ok {
		return 0, ErrNotNumber
	}
	if !IsIntegral(v) {
		return 0, ErrNotIntegral
	}
	n, err := strconv.ParseInt(s, 10, bits)
	if err != nil {
		return 0, ErrRange
	}
	return n, nil
}

// Float extracts a numeric value representable at the given bit width.
// Magnitudes beyond the width report ErrRange rather than rounding to Inf.
func Float(v any, bits int) (float64, error) {
	s, ok := NumberText(v)
	if !ok {
		return 0, ErrNotNumber
	}
	f, err := strconv.ParseFloat(s, bits)
	if err != nil {
		return 0, ErrRange
	}
	return f, nil
}

// Fragment renders a compact snippet of a node for error messages.
func Fragment(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "<unrenderable>"
	}
	const max = 80
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}
