package cursor

import "github.com/runtimeverification/ethdebug-go/data"

// FieldKind distinguishes the three states a resolved region's
// slot/offset/length can be in. Only FieldAbsent and FieldValue ever
// appear on a region once it has left package resolve's fixed-point
// loop; FieldPending is the resolver's cycle-detection hook (§4.3) and
// is only ever observed on the $this slot mid-resolution.
type FieldKind int

const (
	FieldAbsent FieldKind = iota
	FieldPending
	FieldValue
)

// Field is one slot/offset/length property of a region.
type Field struct {
	Kind  FieldKind
	Value data.Data
}

// Absent represents a property the schema never populated.
func Absent() Field { return Field{Kind: FieldAbsent} }

// Pending represents a property still awaiting resolution: an
// expression that has not yet reduced to Data this iteration.
func Pending() Field { return Field{Kind: FieldPending} }

// Resolved wraps a concrete value.
func Resolved(v data.Data) Field { return Field{Kind: FieldValue, Value: v} }

// IsResolved reports whether the field holds a usable Data value.
func (f Field) IsResolved() bool { return f.Kind == FieldValue }

// SameShape reports whether two fields are in the same state (both
// absent, both pending, or both resolved) without comparing values.
// This is the fixed-point resolver's termination test (§4.3 step 4).
func (f Field) SameShape(other Field) bool {
	return f.Kind == other.Kind
}
