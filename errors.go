package defaultjson

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType     = "invalid_type"     // JSON node kind wrong for the type
	CodeOverflow        = "overflow"         // numeric literal exceeds target width
	CodeInvalidFormat   = "invalid_format"   // text fails date/time/uuid/hex grammar
	CodeScaleMismatch   = "scale_mismatch"   // decimal scale != declared scale
	CodeLengthMismatch  = "length_mismatch"  // fixed byte length != declared length
	CodeShapeMismatch   = "shape_mismatch"   // map/struct wire shape malformed
	CodeUnsupportedType = "unsupported_type" // type variant outside the closed set
	CodeDuplicateKey    = "duplicate_key"    // repeated key in a map default
	CodeParseError      = "parse_error"      // input is not valid JSON at all
)

// Issue represents a single codec failure.
type Issue struct {
	Path    string // JSON Pointer into the default value (for example: /keys/2).
	Code    string // One of the codes listed above.
	Type    string // Text form of the schema type being decoded or encoded.
	Message string
	Cause   error // Optional: underlying error.
	// InputFragment is a compact snippet of the offending JSON node.
	InputFragment string
}

// Issues is a collection of codec failures that implements error. Decode and
// encode fail fast, so an Issues from those carries a single entry; lint
// surfaces such as CheckMapKeys may accumulate several.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
		if it.Message != "" {
			fmt.Fprintf(b, ": %s", it.Message)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}
