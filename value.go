package defaultjson

import (
	"github.com/tablekit/defaultjson/types"
)

// Native value mapping, one Go representation per type variant:
//
//	boolean          bool
//	int, date        int32 (date counts days from the epoch, may be negative)
//	long, time,
//	timestamp(tz)    int64 (time/timestamp count microseconds, never negative)
//	float            float32
//	double           float64
//	decimal(p, s)    decimal.Decimal at exactly scale s
//	string           string
//	uuid             uuid.UUID
//	fixed[n], binary []byte
//	list<e>          []any
//	map<k, v>        Pairs
//	struct<...>      *Record
//
// A nil value stands for "no default declared" and is distinct from every
// real default.

// Pair is one key/value entry of a decoded map default.
type Pair struct {
	Key   any
	Value any
}

// Pairs is the decoded form of a map default: entries in wire order. The
// codec never materializes an associative container because map keys may be
// byte slices and because wire order is part of the value. Duplicate keys
// are preserved as-is; consumers that want last-wins semantics get them by
// iterating in order and overwriting (see CheckMapKeys to detect duplicates).
type Pairs []Pair

// Record is the positional carrier for a decoded struct default. A nil slot
// means the field has no default (unset); unset fields are omitted entirely
// when encoding, never written as null.
type Record struct {
	typ    *types.StructType
	values []any
}

// NewRecord returns an empty record for the given struct type.
func NewRecord(st *types.StructType) *Record {
	return &Record{typ: st, values: make([]any, st.Len())}
}

// StructType returns the type this record was built for.
func (r *Record) StructType() *types.StructType { return r.typ }

// Size returns the number of field slots.
func (r *Record) Size() int { return len(r.values) }

// Get returns the value at a field position, or nil when unset.
func (r *Record) Get(pos int) any { return r.values[pos] }

// Set stores a value at a field position. Setting nil clears the slot.
func (r *Record) Set(pos int, v any) { r.values[pos] = v }

// GetByID looks a field up by its stable id.
func (r *Record) GetByID(id int) (any, bool) {
	pos, ok := r.typ.FieldIndex(id)
	if !ok {
		return nil, false
	}
	return r.values[pos], true
}

// SetByID stores a value under a field id and reports whether the id exists.
func (r *Record) SetByID(id int, v any) bool {
	pos, ok := r.typ.FieldIndex(id)
	if !ok {
		return false
	}
	r.values[pos] = v
	return true
}
