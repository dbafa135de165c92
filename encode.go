package defaultjson

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tablekit/defaultjson/internal/jsonw"
	"github.com/tablekit/defaultjson/types"
)

// Encode renders a native default value to its JSON text form. A nil value
// renders as the single token "null" regardless of the type. Values are
// shape-checked against t before writing because they may come from a path
// other than Decode.
func Encode(t types.Type, v any, pretty bool) (string, error) {
	var sb strings.Builder
	if err := EncodeTo(t, v, &sb, pretty); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// EncodeTo is the streaming variant of Encode: it writes the JSON document
// directly to w.
func EncodeTo(t types.Type, v any, w io.Writer, pretty bool) error {
	jw := jsonw.New(w, pretty)
	if err := encodeValue(t, v, jw, "/"); err != nil {
		return err
	}
	return jw.Close()
}

func encodeValue(t types.Type, v any, jw *jsonw.Writer, path string) error {
	// "No default" writes a null token and nothing else. This early return
	// must cover containers too, or a null would be followed by content.
	if v == nil {
		jw.Null()
		return nil
	}

	switch t.ID() {
	case types.BooleanID:
		b, ok := v.(bool)
		if !ok {
			return encodeIssue(t, v, path, "expected a bool")
		}
		jw.Bool(b)
		return nil

	case types.IntegerID:
		n, ok := v.(int32)
		if !ok {
			return encodeIssue(t, v, path, "expected an int32")
		}
		jw.Number(strconv.FormatInt(int64(n), 10))
		return nil

	case types.LongID:
		n, ok := v.(int64)
		if !ok {
			return encodeIssue(t, v, path, "expected an int64")
		}
		jw.Number(strconv.FormatInt(n, 10))
		return nil

	case types.FloatID:
		f, ok := v.(float32)
		if !ok {
			return encodeIssue(t, v, path, "expected a float32")
		}
		return writeNumberToken(jw, f)

	case types.DoubleID:
		f, ok := v.(float64)
		if !ok {
			return encodeIssue(t, v, path, "expected a float64")
		}
		return writeNumberToken(jw, f)

	case types.DecimalID:
		d, ok := v.(decimal.Decimal)
		if !ok {
			return encodeIssue(t, v, path, "expected a decimal.Decimal")
		}
		dt := t.(types.DecimalType)
		if scale := int(-d.Exponent()); scale != dt.Scale {
			return Issues{{
				Path:          path,
				Code:          CodeScaleMismatch,
				Type:          t.String(),
				Message:       fmt.Sprintf("scale %d does not match declared scale %d", scale, dt.Scale),
				InputFragment: d.String(),
			}}
		}
		jw.Number(d.String())
		return nil

	case types.StringID:
		s, ok := v.(string)
		if !ok {
			return encodeIssue(t, v, path, "expected a string")
		}
		jw.String(s)
		return nil

	case types.UUIDID:
		u, ok := v.(uuid.UUID)
		if !ok {
			return encodeIssue(t, v, path, "expected a uuid.UUID")
		}
		jw.String(u.String())
		return nil

	case types.DateID:
		days, ok := v.(int32)
		if !ok {
			return encodeIssue(t, v, path, "expected int32 days from the epoch")
		}
		jw.String(daysToISODate(days))
		return nil

	case types.TimeID:
		us, ok := v.(int64)
		if !ok || us < 0 {
			return encodeIssue(t, v, path, "expected non-negative int64 microseconds since midnight")
		}
		jw.String(microsToISOTime(us))
		return nil

	case types.TimestampID:
		us, ok := v.(int64)
		if !ok || us < 0 {
			return encodeIssue(t, v, path, "expected non-negative int64 microseconds since the epoch")
		}
		jw.String(microsToISOTimestamp(us, t.(types.TimestampType).AdjustToUTC))
		return nil

	case types.FixedID:
		b, ok := v.([]byte)
		if !ok {
			return encodeIssue(t, v, path, "expected a byte slice")
		}
		ft := t.(types.FixedType)
		if len(b) != ft.Len {
			return Issues{{
				Path:          path,
				Code:          CodeLengthMismatch,
				Type:          t.String(),
				Message:       fmt.Sprintf("%d bytes do not fit declared length %d", len(b), ft.Len),
				InputFragment: hexUpper(b),
			}}
		}
		jw.String(hexUpper(b))
		return nil

	case types.BinaryID:
		b, ok := v.([]byte)
		if !ok {
			return encodeIssue(t, v, path, "expected a byte slice")
		}
		jw.String(hexUpper(b))
		return nil

	case types.ListID:
		elems, ok := v.([]any)
		if !ok {
			return encodeIssue(t, v, path, "expected a []any list value")
		}
		lt := t.(types.ListType)
		jw.BeginArray()
		for i, elem := range elems {
			if err := encodeValue(lt.Element, elem, jw, childPath(path, strconv.Itoa(i))); err != nil {
				return err
			}
		}
		jw.EndArray()
		return nil

	case types.MapID:
		pairs, ok := v.(Pairs)
		if !ok {
			return encodeIssue(t, v, path, "expected a Pairs map value")
		}
		mt := t.(types.MapType)
		jw.BeginObject()
		jw.Name(mapKeysField)
		jw.BeginArray()
		for i, p := range pairs {
			if err := encodeValue(mt.Key, p.Key, jw, childPath(childPath(path, mapKeysField), strconv.Itoa(i))); err != nil {
				return err
			}
		}
		jw.EndArray()
		jw.Name(mapValuesField)
		jw.BeginArray()
		for i, p := range pairs {
			if err := encodeValue(mt.Value, p.Value, jw, childPath(childPath(path, mapValuesField), strconv.Itoa(i))); err != nil {
				return err
			}
		}
		jw.EndArray()
		jw.EndObject()
		return nil

	case types.StructID:
		rec, ok := v.(*Record)
		if !ok {
			return encodeIssue(t, v, path, "expected a *Record struct value")
		}
		st := t.(*types.StructType)
		if rec.Size() != st.Len() {
			return Issues{{
				Path:    path,
				Code:    CodeShapeMismatch,
				Type:    t.String(),
				Message: fmt.Sprintf("record has %d slots for %d fields", rec.Size(), st.Len()),
			}}
		}
		jw.BeginObject()
		for pos, f := range st.Fields() {
			fv := rec.Get(pos)
			if fv == nil {
				// Unset fields are omitted entirely, never written as null.
				continue
			}
			idStr := strconv.Itoa(f.ID)
			jw.Name(idStr)
			if err := encodeValue(f.Type, fv, jw, childPath(path, idStr)); err != nil {
				return err
			}
		}
		jw.EndObject()
		return nil
	}

	return Issues{{
		Path:    path,
		Code:    CodeUnsupportedType,
		Type:    t.String(),
		Message: "type is not supported",
	}}
}

// writeNumberToken renders a float through the JSON substrate so the literal
// matches what the substrate itself would emit.
func writeNumberToken(jw *jsonw.Writer, f any) error {
	b, err := json.Marshal(f)
	if err != nil {
		return err
	}
	jw.Number(string(b))
	return nil
}

func hexUpper(b []byte) string {
	return strings.ToUpper(hex.EncodeToString(b))
}

func encodeIssue(t types.Type, v any, path, msg string) Issues {
	return Issues{{
		Path:          path,
		Code:          CodeInvalidType,
		Type:          t.String(),
		Message:       msg,
		InputFragment: fmt.Sprintf("%v (%T)", v, v),
	}}
}
