package jsonx_test

import (
	"testing"

	json "github.com/goccy/go-json"

	"github.com/tablekit/defaultjson/internal/jsonx"
)

func TestDecodeTreeKeepsNumberText(t *testing.T) {
	v, err := jsonx.DecodeTree([]byte(`{"d": 1.230}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	obj := v.(map[string]any)
	n, ok := obj["d"].(json.Number)
	if !ok {
		t.Fatalf("number type = %T", obj["d"])
	}
	if n.String() != "1.230" {
		t.Fatalf("literal = %s", n)
	}
}

func TestDecodeTreeRejectsTrailing(t *testing.T) {
	if _, err := jsonx.DecodeTree([]byte(`1 2`)); err == nil {
		t.Fatalf("expected trailing-data error")
	}
	if _, err := jsonx.DecodeTree([]byte(`{`)); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestIntegralPredicate(t *testing.T) {
	cases := map[string]bool{
		"1":    true,
		"-42":  true,
		"1.0":  false,
		"1e2":  false,
		"-1.5": false,
	}
	for lit, want := range cases {
		if got := jsonx.IsIntegral(json.Number(lit)); got != want {
			t.Fatalf("IsIntegral(%s) = %v", lit, got)
		}
	}
	if jsonx.IsIntegral("7") {
		t.Fatalf("strings are not numbers")
	}
	if !jsonx.IsIntegral(7) || !jsonx.IsIntegral(int64(7)) {
		t.Fatalf("native ints are integral")
	}
	if !jsonx.IsIntegral(float64(7)) {
		t.Fatalf("whole float64 is integral")
	}
	if jsonx.IsIntegral(7.5) {
		t.Fatalf("fractional float64 is not integral")
	}
}

func TestIntExtraction(t *testing.T) {
	if n, err := jsonx.Int(json.Number("2147483647"), 32); err != nil || n != 2147483647 {
		t.Fatalf("Int = %d, %v", n, err)
	}
	if _, err := jsonx.Int(json.Number("2147483648"), 32); err != jsonx.ErrRange {
		t.Fatalf("err = %v", err)
	}
	if _, err := jsonx.Int(json.Number("1.5"), 32); err != jsonx.ErrNotIntegral {
		t.Fatalf("err = %v", err)
	}
	if _, err := jsonx.Int(true, 32); err != jsonx.ErrNotNumber {
		t.Fatalf("err = %v", err)
	}
	// Numbers too big even for int64 report range, not a bogus kind error.
	if _, err := jsonx.Int(json.Number("123456789012345678901234567890"), 64); err != jsonx.ErrRange {
		t.Fatalf("err = %v", err)
	}
}

func TestFloatExtraction(t *testing.T) {
	if f, err := jsonx.Float(json.Number("0.5"), 32); err != nil || f != 0.5 {
		t.Fatalf("Float = %v, %v", f, err)
	}
	if _, err := jsonx.Float(json.Number("3.5e38"), 32); err != jsonx.ErrRange {
		t.Fatalf("err = %v", err)
	}
	if f, err := jsonx.Float(json.Number("3.5e38"), 64); err != nil || f != 3.5e38 {
		t.Fatalf("Float 64 = %v, %v", f, err)
	}
	if _, err := jsonx.Float("0.5", 32); err != jsonx.ErrNotNumber {
		t.Fatalf("err = %v", err)
	}
}

func TestFragmentTruncates(t *testing.T) {
	long := make([]any, 100)
	for i := range long {
		long[i] = 7
	}
	frag := jsonx.Fragment(long)
	if len(frag) > 90 {
		t.Fatalf("fragment too long: %d", len(frag))
	}
	if jsonx.Fragment(map[string]any{"a": 1}) != `{"a":1}` {
		t.Fatalf("fragment = %s", jsonx.Fragment(map[string]any{"a": 1}))
	}
}
