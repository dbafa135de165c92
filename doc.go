package defaultjson

// Package defaultjson provides:
//
// - Type-directed conversion between the JSON wire form of a column default
//   value and its native in-memory representation (Decode/Encode)
// - Validate-only checking without materialization (IsValid), guaranteed to
//   agree with Decode, plus the ValidateOrReject gate for schema builders
// - A stable error model via Issues (JSON Pointer, code, type, fragment)
// - Schema document loading with default gate-checking (LoadSchema)
//
// Design policy:
// - Keep only public APIs in the root package; put the JSON substrate under
//   internal/ and the type system under types/.
// - The codec is a pure function of its inputs: no globals, no retained
//   state, safe for concurrent use over shared immutable type trees.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	t, err := defaultjson.LoadSchema(schemaDoc)
//	v, err := defaultjson.DecodeBytes(fieldType, []byte(`{"keys":[1],"values":["a"]}`))
//	ok := defaultjson.IsValid(fieldType, node)
//	text, err := defaultjson.Encode(fieldType, v, false)
