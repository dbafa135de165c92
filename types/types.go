// Package types defines the closed set of schema types a table column may
// carry: primitives, decimal/fixed/timestamp with their parameters, and the
// nested list/map/struct composites. Type trees are built once at schema
// definition time, are immutable afterwards, and are safe to share across
// goroutines.
package types

import (
	"fmt"
	"strings"
	"sync"
)

// TypeID tags the variant of a Type. The set is closed; codecs dispatch on
// it exhaustively.
type TypeID int

const (
	BooleanID TypeID = iota
	IntegerID
	LongID
	FloatID
	DoubleID
	DecimalID
	StringID
	UUIDID
	DateID
	TimeID
	TimestampID
	FixedID
	BinaryID
	ListID
	MapID
	StructID
)

// Type is one node of a schema type tree.
type Type interface {
	ID() TypeID
	String() string
}

// primitive covers the variants that carry no parameters.
type primitive struct {
	id   TypeID
	name string
}

func (p primitive) ID() TypeID     { return p.id }
func (p primitive) String() string { return p.name }

var (
	Boolean Type = primitive{BooleanID, "boolean"}
	Integer Type = primitive{IntegerID, "int"}
	Long    Type = primitive{LongID, "long"}
	Float   Type = primitive{FloatID, "float"}
	Double  Type = primitive{DoubleID, "double"}
	String  Type = primitive{StringID, "string"}
	UUID    Type = primitive{UUIDID, "uuid"}
	Date    Type = primitive{DateID, "date"}
	Time    Type = primitive{TimeID, "time"}
	Binary  Type = primitive{BinaryID, "binary"}
)

// DecimalType is an exact numeric with a fixed number of fractional digits.
type DecimalType struct {
	Precision int
	Scale     int
}

func (t DecimalType) ID() TypeID { return DecimalID }
func (t DecimalType) String() string {
	return fmt.Sprintf("decimal(%d, %d)", t.Precision, t.Scale)
}

// FixedType is a byte sequence of exactly Len bytes.
type FixedType struct {
	Len int
}

func (t FixedType) ID() TypeID     { return FixedID }
func (t FixedType) String() string { return fmt.Sprintf("fixed[%d]", t.Len) }

// TimestampType is microseconds since the epoch. When AdjustToUTC is set the
// text form carries a zone offset and values are normalized to UTC.
type TimestampType struct {
	AdjustToUTC bool
}

func (t TimestampType) ID() TypeID { return TimestampID }
func (t TimestampType) String() string {
	if t.AdjustToUTC {
		return "timestamptz"
	}
	return "timestamp"
}

var (
	Timestamp   Type = TimestampType{AdjustToUTC: false}
	Timestamptz Type = TimestampType{AdjustToUTC: true}
)

// ListType is an ordered sequence of Element values.
type ListType struct {
	Element Type
}

func (t ListType) ID() TypeID     { return ListID }
func (t ListType) String() string { return fmt.Sprintf("list<%s>", t.Element) }

// MapType is a sequence of key/value pairs.
type MapType struct {
	Key   Type
	Value Type
}

func (t MapType) ID() TypeID     { return MapID }
func (t MapType) String() string { return fmt.Sprintf("map<%s, %s>", t.Key, t.Value) }

// NestedField is one field of a StructType. ID is the stable identity used
// on the wire; names may change across schema evolution, ids may not.
type NestedField struct {
	ID       int
	Name     string
	Type     Type
	Required bool
	// Default holds the field's default value in wire form (a JSON tree),
	// exactly as read from the schema document. Nil means no default.
	Default any
}

// StructType is an ordered collection of fields addressed by position.
// Construct with NewStruct; the zero value has no fields.
type StructType struct {
	fields []NestedField

	once    sync.Once
	idIndex map[int]int
}

// NewStruct builds a struct type from fields in declaration order.
func NewStruct(fields ...NestedField) *StructType {
	st := &StructType{fields: make([]NestedField, len(fields))}
	copy(st.fields, fields)
	return st
}

func (t *StructType) ID() TypeID { return StructID }

// Fields returns the declared fields in order. Callers must not mutate the
// returned slice.
func (t *StructType) Fields() []NestedField { return t.fields }

// Len returns the number of declared fields.
func (t *StructType) Len() int { return len(t.fields) }

// Field returns the field at position pos.
func (t *StructType) Field(pos int) NestedField { return t.fields[pos] }

// FieldIndex maps a field id to its position. The index is built once on
// first use and reused for the lifetime of the type.
func (t *StructType) FieldIndex(id int) (int, bool) {
	t.once.Do(func() {
		t.idIndex = make(map[int]int, len(t.fields))
		for pos, f := range t.fields {
			t.idIndex[f.ID] = pos
		}
	})
	pos, ok := t.idIndex[id]
	return pos, ok
}

func (t *StructType) String() string {
	var sb strings.Builder
	sb.WriteString("struct<")
	for i, f := range t.fields {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%d: %s: ", f.ID, f.Name)
		if f.Required {
			sb.WriteString("required ")
		} else {
			sb.WriteString("optional ")
		}
		sb.WriteString(f.Type.String())
	}
	sb.WriteString(">")
	return sb.String()
}
