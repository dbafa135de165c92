package defaultjson_test

import (
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	defaultjson "github.com/tablekit/defaultjson"
	"github.com/tablekit/defaultjson/types"
)

func decodeTree(t *testing.T, text string) any {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		t.Fatalf("parse %s: %v", text, err)
	}
	return v
}

// Validate-only and construct-and-validate must agree on every input.
func TestValidatorAgreement(t *testing.T) {
	st := types.NewStruct(
		types.NestedField{ID: 1, Name: "name", Type: types.String},
		types.NestedField{ID: 2, Name: "count", Type: types.Integer},
	)
	cases := []struct {
		typ  types.Type
		text string
	}{
		{types.Boolean, "true"},
		{types.Boolean, `"true"`},
		{types.Integer, "34"},
		{types.Integer, "3000000000"},
		{types.Integer, "1.5"},
		{types.Long, "-1"},
		{types.Float, "0.5"},
		{types.Float, "3.5e38"},
		{types.Double, "3.5e38"},
		{types.DecimalType{Precision: 9, Scale: 2}, "1.50"},
		{types.DecimalType{Precision: 9, Scale: 2}, "1.5"},
		{types.UUID, `"f47ac10b-58cc-4372-a567-0e02b2c3d479"`},
		{types.UUID, `"not-a-uuid"`},
		{types.Date, `"2022-02-25"`},
		{types.Date, `"02/25/2022"`},
		{types.Time, `"22:31:08"`},
		{types.Timestamp, `"2017-11-16T14:31:08"`},
		{types.Timestamptz, `"2017-11-16T14:31:08-08:00"`},
		{types.Timestamp, `"2017-11-16T14:31:08-08:00"`},
		{types.FixedType{Len: 2}, `"6F7A"`},
		{types.FixedType{Len: 2}, `"6F7A00"`},
		{types.Binary, `"0000ff"`},
		{types.Binary, `"xyz"`},
		{types.ListType{Element: types.Integer}, "[1,2]"},
		{types.ListType{Element: types.Integer}, `[1,"x"]`},
		{types.MapType{Key: types.Integer, Value: types.String}, `{"keys":[1],"values":["a"]}`},
		{types.MapType{Key: types.Integer, Value: types.String}, `{"keys":[1],"values":[]}`},
		{st, `{"1":"x"}`},
		{st, `{"2":"x"}`},
		{st, "null"},
		{types.ListType{Element: st}, `[{"1":"x"},null,{"2":7}]`},
	}
	for _, tc := range cases {
		node := decodeTree(t, tc.text)
		_, decodeErr := defaultjson.Decode(tc.typ, node)
		valid := defaultjson.IsValid(tc.typ, node)
		if valid != (decodeErr == nil) {
			t.Fatalf("disagreement for %s as %s: IsValid=%v decode err=%v",
				tc.text, tc.typ, valid, decodeErr)
		}
	}
}

func TestIsValidNeverMaterializes(t *testing.T) {
	// Large input, validate-only path; simply must accept and reject
	// correctly without panicking.
	lt := types.ListType{Element: types.Long}
	var sb strings.Builder
	sb.WriteString("[")
	for i := 0; i < 10_000; i++ {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString("1")
	}
	sb.WriteString("]")
	node := decodeTree(t, sb.String())
	if !defaultjson.IsValid(lt, node) {
		t.Fatalf("expected valid")
	}
}

func TestValidateOrReject(t *testing.T) {
	node := decodeTree(t, `"f47ac10b-58cc-4372-a567-0e02b2c3d479"`)
	got, err := defaultjson.ValidateOrReject("device_id", types.UUID, node)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	// The node comes back unchanged on success.
	if got != node {
		t.Fatalf("node not passed through: %v", got)
	}

	bad := decodeTree(t, `"not-a-uuid"`)
	_, err = defaultjson.ValidateOrReject("device_id", types.UUID, bad)
	if err == nil {
		t.Fatalf("expected rejection")
	}
	iss, _ := defaultjson.AsIssues(err)
	if len(iss) != 1 {
		t.Fatalf("issues = %v", iss)
	}
	if !strings.Contains(iss[0].Message, `"device_id"`) {
		t.Fatalf("message should name the field: %s", iss[0].Message)
	}
	if iss[0].Type != "uuid" {
		t.Fatalf("issue type = %s", iss[0].Type)
	}
	if iss[0].InputFragment == "" {
		t.Fatalf("issue should carry the offending fragment")
	}
}
