package defaultjson

import (
	"strconv"

	"github.com/tablekit/defaultjson/types"
)

// IsValid reports whether node is a well-formed default value for t without
// materializing the native value. It never returns an error, which makes it
// safe for high-frequency pre-checks; the verdict always agrees with whether
// Decode would succeed because both run the same recursion.
func IsValid(t types.Type, node any) bool {
	_, err := decodeValue(t, node, "/", false)
	return err == nil
}

// ValidateOrReject checks node against t and returns it unchanged on
// success, for use at schema-construction call sites. On rejection the
// error names the field, the type and the offending value.
func ValidateOrReject(fieldName string, t types.Type, node any) (any, error) {
	if _, err := decodeValue(t, node, "/", false); err != nil {
		iss, _ := AsIssues(err)
		out := make(Issues, len(iss))
		for i, it := range iss {
			it.Message = "invalid default for field " + strconv.Quote(fieldName) + ": " + it.Message
			out[i] = it
		}
		return nil, out
	}
	return node, nil
}
