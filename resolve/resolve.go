// Package resolve implements the fixed-point region resolver (§4.3):
// it reduces a raw pointer.Region's slot/offset/length expressions to
// Data, installing a partial snapshot of the region under the regions
// index's $this slot so self-referential expressions (the common case:
// a dynamic array's length computed from its own slot) can see their
// own in-progress state.
package resolve

import (
	"errors"

	"github.com/runtimeverification/ethdebug-go/cursor"
	"github.com/runtimeverification/ethdebug-go/evaluate"
	"github.com/runtimeverification/ethdebug-go/pointer"
	"github.com/runtimeverification/ethdebug-go/ptrerr"
)

// Resolve evaluates all expression-valued properties of region against
// opts, iterating to a fixed point over $this-dependent sub-expressions.
//
// Each iteration re-snapshots $this before every field evaluation — not
// once per iteration — so a field resolved earlier in the same pass is
// already visible to a later field's expression in that same pass (this
// mirrors the reference Python resolver's per-field options.set_this
// call, not a per-iteration one; see original_source/region.py).
func Resolve(region pointer.Region, opts evaluate.Options) (cursor.Region, error) {
	slotInitial := initialField(region.Slot)
	if !region.Location.HasSlot() {
		slotInitial = cursor.Absent()
	}
	working := cursor.Region{
		Location: region.Location,
		Slot:     slotInitial,
		Offset:   initialField(region.Offset),
		Length:   initialField(region.Length),
	}

	for {
		before := working

		var err error
		if working.Offset.Kind == cursor.FieldPending {
			if working.Offset, err = tryResolveField(region.Offset, opts.WithThis(working)); err != nil {
				return cursor.Region{}, err
			}
		}
		if working.Length.Kind == cursor.FieldPending {
			if working.Length, err = tryResolveField(region.Length, opts.WithThis(working)); err != nil {
				return cursor.Region{}, err
			}
		}
		if working.Slot.Kind == cursor.FieldPending {
			if working.Slot, err = tryResolveField(region.Slot, opts.WithThis(working)); err != nil {
				return cursor.Region{}, err
			}
		}

		if working.FullyResolved() {
			break
		}
		if working.SameShape(before) {
			return cursor.Region{}, ptrerr.NewCircularReferenceError(regionName(region))
		}
	}

	working.Name = region.Name
	return working, nil
}

func initialField(expr pointer.Expression) cursor.Field {
	if expr == nil {
		return cursor.Absent()
	}
	return cursor.Pending()
}

// tryResolveField evaluates expr and reports a resolved field, or
// leaves it Pending (without error) if evaluation failed only because
// it looked up a $this property that is itself still unresolved — the
// resolver's cycle-detection hook. Every other error propagates.
func tryResolveField(expr pointer.Expression, opts evaluate.Options) (cursor.Field, error) {
	v, err := evaluate.Evaluate(expr, opts)
	if err != nil {
		var propertyAbsent *ptrerr.PropertyAbsentError
		if errors.As(err, &propertyAbsent) {
			return cursor.Pending(), nil
		}
		return cursor.Field{}, err
	}
	return cursor.Resolved(v), nil
}

func regionName(region pointer.Region) string {
	if region.Name == nil {
		return ""
	}
	return *region.Name
}
