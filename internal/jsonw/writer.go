// Package jsonw implements a small token-ordered JSON writer. Unlike
// marshalling a map, tokens are emitted in exactly the order the caller
// supplies them, which the codec relies on for deterministic object member
// order. Scalar rendering delegates to go-json.
package jsonw

import (
	"errors"
	"io"
	"strings"

	json "github.com/goccy/go-json"
)

const indentUnit = "  "

// Writer emits one JSON document to an io.Writer. The first write error is
// recorded and every later call becomes a no-op; check Err (or Close) once
// at the end.
type Writer struct {
	w        io.Writer
	pretty   bool
	err      error
	kinds    []byte // 'o' for object frames, 'a' for array frames
	counts   []int
	afterKey bool
}

// New returns a Writer targeting w. When pretty is set, output is indented
// with two spaces per level.
func New(w io.Writer, pretty bool) *Writer {
	return &Writer{w: w, pretty: pretty}
}

// Err returns the first error encountered while writing.
func (jw *Writer) Err() error { return jw.err }

// Close verifies the document is complete and returns any deferred error.
func (jw *Writer) Close() error {
	if jw.err != nil {
		return jw.err
	}
	if len(jw.kinds) != 0 {
		return errors.New("jsonw: unclosed array or object")
	}
	return nil
}

func (jw *Writer) Null() { jw.beforeValue(); jw.raw("null") }

func (jw *Writer) Bool(b bool) { jw.beforeValue(); jw.raw(boolText(b)) }

// Number writes a pre-rendered numeric literal verbatim.
func (jw *Writer) Number(text string) { jw.beforeValue(); jw.raw(text) }

func (jw *Writer) String(s string) {
	jw.beforeValue()
	jw.quoted(s)
}

func (jw *Writer) BeginArray() {
	jw.beforeValue()
	jw.raw("[")
	jw.push('a')
}

func (jw *Writer) EndArray() { jw.end(']') }

func (jw *Writer) BeginObject() {
	jw.beforeValue()
	jw.raw("{")
	jw.push('o')
}

func (jw *Writer) EndObject() { jw.end('}') }

// Name writes an object member key; the next value call writes its value.
func (jw *Writer) Name(key string) {
	if jw.err != nil {
		return
	}
	top := len(jw.kinds) - 1
	if top < 0 || jw.kinds[top] != 'o' {
		jw.err = errors.New("jsonw: Name outside object")
		return
	}
	if jw.counts[top] > 0 {
		jw.raw(",")
	}
	if jw.pretty {
		jw.newline(len(jw.kinds))
	}
	jw.quoted(key)
	if jw.pretty {
		jw.raw(": ")
	} else {
		jw.raw(":")
	}
	jw.counts[top]++
	jw.afterKey = true
}

func (jw *Writer) beforeValue() {
	if jw.err != nil {
		return
	}
	if jw.afterKey {
		jw.afterKey = false
		return
	}
	top := len(jw.kinds) - 1
	if top < 0 {
		return
	}
	if jw.kinds[top] != 'a' {
		jw.err = errors.New("jsonw: value without Name inside object")
		return
	}
	if jw.counts[top] > 0 {
		jw.raw(",")
	}
	if jw.pretty {
		jw.newline(len(jw.kinds))
	}
	jw.counts[top]++
}

func (jw *Writer) push(kind byte) {
	jw.kinds = append(jw.kinds, kind)
	jw.counts = append(jw.counts, 0)
}

func (jw *Writer) end(close byte) {
	if jw.err != nil {
		return
	}
	top := len(jw.kinds) - 1
	if top < 0 {
		jw.err = errors.New("jsonw: unbalanced end")
		return
	}
	hadMembers := jw.counts[top] > 0
	jw.kinds = jw.kinds[:top]
	jw.counts = jw.counts[:top]
	if jw.pretty && hadMembers {
		jw.newline(len(jw.kinds))
	}
	jw.raw(string(close))
}

func (jw *Writer) newline(depth int) {
	jw.raw("\n" + strings.Repeat(indentUnit, depth))
}

func (jw *Writer) quoted(s string) {
	b, err := json.Marshal(s)
	if err != nil {
		jw.err = err
		return
	}
	jw.rawBytes(b)
}

func (jw *Writer) raw(s string) {
	if jw.err != nil {
		return
	}
	_, jw.err = io.WriteString(jw.w, s)
}

func (jw *Writer) rawBytes(b []byte) {
	if jw.err != nil {
		return
	}
	_, jw.err = jw.w.Write(b)
}

func boolText(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
