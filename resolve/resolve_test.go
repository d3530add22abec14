package resolve

import (
	"testing"

	"github.com/runtimeverification/ethdebug-go/cursor"
	"github.com/runtimeverification/ethdebug-go/data"
	"github.com/runtimeverification/ethdebug-go/evaluate"
	"github.com/runtimeverification/ethdebug-go/pointer"
)

func opts() evaluate.Options {
	return evaluate.Options{Regions: cursor.Empty(), Variables: map[string]data.Data{}}
}

func TestResolveSimpleRegion(t *testing.T) {
	region := pointer.Region{
		Location: pointer.LocationStack,
		Slot:     pointer.NewIntLiteral(0),
	}
	resolved, err := Resolve(region, opts())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resolved.FullyResolved() {
		t.Fatalf("expected resolved region, got %#v", resolved)
	}
	if resolved.Slot.Value.AsUint().Int64() != 0 {
		t.Fatalf("got slot %s, want 0", resolved.Slot.Value)
	}
}

func TestResolveAbsentFieldsStayAbsent(t *testing.T) {
	region := pointer.Region{Location: pointer.LocationMemory, Offset: pointer.NewIntLiteral(0)}
	resolved, err := Resolve(region, opts())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.Length.Kind != cursor.FieldAbsent {
		t.Fatalf("expected Length to remain absent, got %#v", resolved.Length)
	}
}

func TestResolveSelfReferentialThisLookup(t *testing.T) {
	// length := .offset of $this, offset := a literal — resolving offset
	// first lets length's $this lookup see it in the same pass.
	region := pointer.Region{
		Location: pointer.LocationMemory,
		Offset:   pointer.NewIntLiteral(64),
		Length: pointer.Lookup{
			Property:  pointer.PropertyOffset,
			Reference: pointer.This(),
		},
	}
	resolved, err := Resolve(region, opts())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resolved.FullyResolved() {
		t.Fatalf("expected region to fully resolve, got %#v", resolved)
	}
	if resolved.Length.Value.AsUint().Int64() != 64 {
		t.Fatalf("got length %s, want 64 (copied from offset via $this)", resolved.Length.Value)
	}
}

func TestResolveCircularReferenceErrors(t *testing.T) {
	// offset depends on $this.length and length depends on $this.offset:
	// neither ever resolves, so the fixed point never terminates.
	region := pointer.Region{
		Location: pointer.LocationMemory,
		Offset:   pointer.Lookup{Property: pointer.PropertyLength, Reference: pointer.This()},
		Length:   pointer.Lookup{Property: pointer.PropertyOffset, Reference: pointer.This()},
	}
	if _, err := Resolve(region, opts()); err == nil {
		t.Fatalf("expected circular reference error")
	}
}

func TestResolveForcesSlotAbsentWhereLocationHasNoSlot(t *testing.T) {
	// memory does not carry a slot (§3); a Slot expression present on such
	// a region must never be evaluated, let alone surfaced as resolved.
	region := pointer.Region{
		Location: pointer.LocationMemory,
		Slot:     pointer.Lookup{Property: pointer.PropertyLength, Reference: pointer.This()},
		Offset:   pointer.NewIntLiteral(0),
	}
	resolved, err := Resolve(region, opts())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.Slot.Kind != cursor.FieldAbsent {
		t.Fatalf("expected Slot to be forced absent, got %#v", resolved.Slot)
	}
}

func TestResolveSetsRegionName(t *testing.T) {
	name := "len"
	region := pointer.Region{Location: pointer.LocationStack, Name: &name, Slot: pointer.NewIntLiteral(0)}
	resolved, err := Resolve(region, opts())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.Named() != "len" {
		t.Fatalf("got name %q, want len", resolved.Named())
	}
}
