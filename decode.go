package defaultjson

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tablekit/defaultjson/internal/jsonx"
	"github.com/tablekit/defaultjson/types"
)

const (
	mapKeysField   = "keys"
	mapValuesField = "values"
)

// Decode converts a default value in wire form (a JSON tree as produced by
// jsonx: nil, bool, json.Number, string, []any, map[string]any) into its
// native representation for t. A JSON null or missing node decodes to nil,
// meaning "no default declared". Any mismatch at any depth aborts the whole
// decode with an Issues error naming the type and the offending fragment;
// the codec never substitutes a best-effort value.
func Decode(t types.Type, node any) (any, error) {
	return decodeValue(t, node, "/", true)
}

// DecodeBytes parses data as JSON first, then decodes it against t.
func DecodeBytes(t types.Type, data []byte) (any, error) {
	node, err := jsonx.DecodeTree(data)
	if err != nil {
		return nil, Issues{{
			Path:    "/",
			Code:    CodeParseError,
			Type:    t.String(),
			Message: "malformed JSON",
			Cause:   err,
		}}
	}
	return Decode(t, node)
}

// decodeValue is the single recursion behind Decode and IsValid. With
// materialize unset it performs every check but allocates no native value,
// which is what guarantees decoder and validator always agree.
func decodeValue(t types.Type, node any, path string, materialize bool) (any, error) {
	if jsonx.IsNull(node) {
		return nil, nil
	}

	switch t.ID() {
	case types.BooleanID:
		b, ok := node.(bool)
		if !ok {
			return nil, decodeIssue(CodeInvalidType, t, node, path, "expected a boolean literal")
		}
		return b, nil

	case types.IntegerID:
		n, err := jsonx.Int(node, 32)
		if err != nil {
			return nil, numericIssue(t, node, path, err)
		}
		return int32(n), nil

	case types.LongID:
		n, err := jsonx.Int(node, 64)
		if err != nil {
			return nil, numericIssue(t, node, path, err)
		}
		return n, nil

	case types.FloatID:
		f, err := jsonx.Float(node, 32)
		if err != nil {
			return nil, numericIssue(t, node, path, err)
		}
		return float32(f), nil

	case types.DoubleID:
		f, err := jsonx.Float(node, 64)
		if err != nil {
			return nil, numericIssue(t, node, path, err)
		}
		return f, nil

	case types.DecimalID:
		return decodeDecimal(t.(types.DecimalType), node, path)

	case types.StringID:
		s, ok := node.(string)
		if !ok {
			return nil, decodeIssue(CodeInvalidType, t, node, path, "expected a string literal")
		}
		return s, nil

	case types.UUIDID:
		s, ok := node.(string)
		if !ok {
			return nil, decodeIssue(CodeInvalidType, t, node, path, "expected a string literal")
		}
		u, err := parseCanonicalUUID(s)
		if err != nil {
			return nil, decodeIssue(CodeInvalidFormat, t, node, path, "expected a canonical hyphenated UUID")
		}
		return u, nil

	case types.DateID:
		s, ok := node.(string)
		if !ok {
			return nil, decodeIssue(CodeInvalidType, t, node, path, "expected a string literal")
		}
		days, err := isoDateToDays(s)
		if err != nil {
			return nil, decodeIssue(CodeInvalidFormat, t, node, path, "expected an ISO-8601 date (YYYY-MM-DD)")
		}
		return days, nil

	case types.TimeID:
		s, ok := node.(string)
		if !ok {
			return nil, decodeIssue(CodeInvalidType, t, node, path, "expected a string literal")
		}
		us, err := isoTimeToMicros(s)
		if err != nil {
			return nil, decodeIssue(CodeInvalidFormat, t, node, path, "expected an ISO-8601 time (HH:MM:SS[.ffffff])")
		}
		return us, nil

	case types.TimestampID:
		return decodeTimestamp(t.(types.TimestampType), node, path)

	case types.FixedID:
		return decodeFixed(t.(types.FixedType), node, path)

	case types.BinaryID:
		s, ok := node.(string)
		if !ok {
			return nil, decodeIssue(CodeInvalidType, t, node, path, "expected a hex string literal")
		}
		b, err := hex.DecodeString(s)
		if err != nil {
			return nil, decodeIssue(CodeInvalidFormat, t, node, path, "expected hex text")
		}
		if !materialize {
			return nil, nil
		}
		return b, nil

	case types.ListID:
		return decodeList(t.(types.ListType), node, path, materialize)

	case types.MapID:
		return decodeMap(t.(types.MapType), node, path, materialize)

	case types.StructID:
		return decodeStruct(t.(*types.StructType), node, path, materialize)
	}

	return nil, decodeIssue(CodeUnsupportedType, t, node, path, "type is not supported")
}

func decodeDecimal(t types.DecimalType, node any, path string) (any, error) {
	text, ok := jsonx.NumberText(node)
	if !ok {
		return nil, decodeIssue(CodeInvalidType, t, node, path, "expected a number literal")
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return nil, decodeIssue(CodeInvalidFormat, t, node, path, "expected a decimal number")
	}
	if scale := int(-d.Exponent()); scale != t.Scale {
		return nil, decodeIssue(CodeScaleMismatch, t, node, path,
			fmt.Sprintf("scale %d does not match declared scale %d", scale, t.Scale))
	}
	return d, nil
}

func decodeTimestamp(t types.TimestampType, node any, path string) (any, error) {
	s, ok := node.(string)
	if !ok {
		return nil, decodeIssue(CodeInvalidType, t, node, path, "expected a string literal")
	}
	us, err := isoTimestampToMicros(s, t.AdjustToUTC)
	if err != nil {
		grammar := "YYYY-MM-DDTHH:MM:SS[.ffffff]"
		if t.AdjustToUTC {
			grammar += "±HH:MM"
		}
		return nil, decodeIssue(CodeInvalidFormat, t, node, path, "expected an ISO-8601 timestamp ("+grammar+")")
	}
	if us < 0 {
		return nil, decodeIssue(CodeInvalidFormat, t, node, path, "timestamp is before the epoch")
	}
	return us, nil
}

func decodeFixed(t types.FixedType, node any, path string) (any, error) {
	s, ok := node.(string)
	if !ok {
		return nil, decodeIssue(CodeInvalidType, t, node, path, "expected a hex string literal")
	}
	if len(s) != 2*t.Len {
		return nil, decodeIssue(CodeLengthMismatch, t, node, path,
			fmt.Sprintf("hex text of length %d cannot fill exactly %d bytes", len(s), t.Len))
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, decodeIssue(CodeInvalidFormat, t, node, path, "expected hex text")
	}
	return b, nil
}

func decodeList(t types.ListType, node any, path string, materialize bool) (any, error) {
	arr, ok := node.([]any)
	if !ok {
		return nil, decodeIssue(CodeInvalidType, t, node, path, "expected a JSON array")
	}
	var out []any
	if materialize {
		out = make([]any, 0, len(arr))
	}
	for i, elem := range arr {
		v, err := decodeValue(t.Element, elem, childPath(path, strconv.Itoa(i)), materialize)
		if err != nil {
			return nil, err
		}
		if materialize {
			out = append(out, v)
		}
	}
	if !materialize {
		return nil, nil
	}
	return out, nil
}

func decodeMap(t types.MapType, node any, path string, materialize bool) (any, error) {
	obj, ok := node.(map[string]any)
	if !ok {
		return nil, decodeIssue(CodeInvalidType, t, node, path, "expected a JSON object with keys and values arrays")
	}
	keys, kok := obj[mapKeysField].([]any)
	values, vok := obj[mapValuesField].([]any)
	if !kok || !vok || len(obj) != 2 {
		return nil, decodeIssue(CodeShapeMismatch, t, node, path,
			`expected exactly two array members, "keys" and "values"`)
	}
	if len(keys) != len(values) {
		return nil, decodeIssue(CodeShapeMismatch, t, node, path,
			fmt.Sprintf("%d keys but %d values", len(keys), len(values)))
	}
	var pairs Pairs
	if materialize {
		pairs = make(Pairs, 0, len(keys))
	}
	for i := range keys {
		idx := strconv.Itoa(i)
		k, err := decodeValue(t.Key, keys[i], childPath(childPath(path, mapKeysField), idx), materialize)
		if err != nil {
			return nil, err
		}
		v, err := decodeValue(t.Value, values[i], childPath(childPath(path, mapValuesField), idx), materialize)
		if err != nil {
			return nil, err
		}
		if materialize {
			pairs = append(pairs, Pair{Key: k, Value: v})
		}
	}
	if !materialize {
		return nil, nil
	}
	return pairs, nil
}

func decodeStruct(t *types.StructType, node any, path string, materialize bool) (any, error) {
	obj, ok := node.(map[string]any)
	if !ok {
		return nil, decodeIssue(CodeInvalidType, t, node, path, "expected a JSON object keyed by field id")
	}
	var rec *Record
	if materialize {
		rec = NewRecord(t)
	}
	for pos, f := range t.Fields() {
		idStr := strconv.Itoa(f.ID)
		child, present := obj[idStr]
		if !present {
			continue
		}
		v, err := decodeValue(f.Type, child, childPath(path, idStr), materialize)
		if err != nil {
			return nil, err
		}
		if materialize {
			rec.Set(pos, v)
		}
	}
	if !materialize {
		return nil, nil
	}
	return rec, nil
}

// parseCanonicalUUID accepts only the 8-4-4-4-12 hyphenated form; the looser
// inputs uuid.Parse tolerates (braces, urn prefix, bare hex) are rejected.
func parseCanonicalUUID(s string) (uuid.UUID, error) {
	if len(s) != 36 || s[8] != '-' || s[13] != '-' || s[18] != '-' || s[23] != '-' {
		return uuid.UUID{}, fmt.Errorf("not a canonical UUID: %q", s)
	}
	return uuid.Parse(s)
}

func numericIssue(t types.Type, node any, path string, err error) Issues {
	switch err {
	case jsonx.ErrRange:
		return decodeIssue(CodeOverflow, t, node, path, "number does not fit the target width")
	case jsonx.ErrNotIntegral:
		return decodeIssue(CodeInvalidType, t, node, path, "expected an integral number literal")
	default:
		return decodeIssue(CodeInvalidType, t, node, path, "expected a number literal")
	}
}

func decodeIssue(code string, t types.Type, node any, path, msg string) Issues {
	return Issues{{
		Path:          path,
		Code:          code,
		Type:          t.String(),
		Message:       msg,
		InputFragment: jsonx.Fragment(node),
	}}
}

func childPath(parent, token string) string {
	if parent == "/" {
		return "/" + token
	}
	return parent + "/" + token
}
