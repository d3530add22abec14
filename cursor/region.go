// Package cursor implements the regions index (§3, §4.6): resolved
// regions, their fields, and the by-name/$this lookup table. The
// reusable re-dereferencing Cursor (§4.7) is package dereference's.
package cursor

import "github.com/runtimeverification/ethdebug-go/pointer"

// Region is a resolved — or, only while held as the $this slot during
// package resolve's fixed-point loop, partially resolved — region: a
// location plus slot/offset/length fields. A region is fully resolved
// once every field is FieldAbsent or FieldValue.
type Region struct {
	Name     *string
	Location pointer.Location
	Slot     Field
	Offset   Field
	Length   Field
}

// FullyResolved reports whether every field has reached a terminal
// state (absent or a concrete value), i.e. none is still FieldPending.
func (r Region) FullyResolved() bool {
	return r.Slot.Kind != FieldPending &&
		r.Offset.Kind != FieldPending &&
		r.Length.Kind != FieldPending
}

// SameShape reports whether two regions are resolved to the same
// degree, field by field, ignoring values. Used by the fixed-point
// resolver to detect a non-terminal fixed point (a cycle).
func (r Region) SameShape(other Region) bool {
	return r.Slot.SameShape(other.Slot) &&
		r.Offset.SameShape(other.Offset) &&
		r.Length.SameShape(other.Length)
}

// Property returns the field named by prop.
func (r Region) Property(prop pointer.LookupProperty) Field {
	switch prop {
	case pointer.PropertySlot:
		return r.Slot
	case pointer.PropertyOffset:
		return r.Offset
	case pointer.PropertyLength:
		return r.Length
	default:
		return Absent()
	}
}

// Named returns the region's name, or "" if unnamed.
func (r Region) Named() string {
	if r.Name == nil {
		return ""
	}
	return *r.Name
}
