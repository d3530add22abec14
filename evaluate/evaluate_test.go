package evaluate

import (
	"testing"

	"github.com/runtimeverification/ethdebug-go/cursor"
	"github.com/runtimeverification/ethdebug-go/data"
	"github.com/runtimeverification/ethdebug-go/pointer"
)

func emptyOptions() Options {
	return Options{Regions: cursor.Empty(), Variables: map[string]data.Data{}}
}

func mustEvaluate(t *testing.T, expr pointer.Expression, opts Options) data.Data {
	t.Helper()
	v, err := Evaluate(expr, opts)
	if err != nil {
		t.Fatalf("unexpected error evaluating %#v: %v", expr, err)
	}
	return v
}

func TestEvaluateLiteral(t *testing.T) {
	v := mustEvaluate(t, pointer.NewIntLiteral(5), emptyOptions())
	if v.AsUint().Int64() != 5 {
		t.Fatalf("got %s, want 5", v)
	}
}

func TestEvaluateWordSize(t *testing.T) {
	v := mustEvaluate(t, pointer.WordSize, emptyOptions())
	if v.AsUint().Int64() != 32 {
		t.Fatalf("got %s, want 32", v)
	}
}

func TestEvaluateVariableMissing(t *testing.T) {
	_, err := Evaluate(pointer.Variable{Identifier: "missing"}, emptyOptions())
	if err == nil {
		t.Fatalf("expected error for unbound variable")
	}
}

func TestEvaluateSum(t *testing.T) {
	expr := pointer.Arithmetic{
		Op:       pointer.OpSum,
		Operands: pointer.Operands{pointer.NewIntLiteral(2), pointer.NewIntLiteral(3), pointer.NewIntLiteral(4)},
	}
	v := mustEvaluate(t, expr, emptyOptions())
	if v.AsUint().Int64() != 9 {
		t.Fatalf("got %s, want 9", v)
	}
}

func TestEvaluateSumEmptyOperandsIsZero(t *testing.T) {
	v := mustEvaluate(t, pointer.Arithmetic{Op: pointer.OpSum}, emptyOptions())
	if len(v) != 0 {
		t.Fatalf("got %s, want empty Data", v)
	}
}

func TestEvaluateProductEmptyOperandsIsOne(t *testing.T) {
	v := mustEvaluate(t, pointer.Arithmetic{Op: pointer.OpProduct}, emptyOptions())
	if v.AsUint().Int64() != 1 {
		t.Fatalf("got %s, want 1", v)
	}
}

func TestEvaluateDifferenceClampsAtZero(t *testing.T) {
	expr := pointer.Arithmetic{
		Op:       pointer.OpDifference,
		Operands: pointer.Operands{pointer.NewIntLiteral(3), pointer.NewIntLiteral(10)},
	}
	v := mustEvaluate(t, expr, emptyOptions())
	if v.AsUint().Sign() != 0 {
		t.Fatalf("got %s, want 0", v)
	}
}

func TestEvaluateDifferenceWrongArity(t *testing.T) {
	expr := pointer.Arithmetic{Op: pointer.OpDifference, Operands: pointer.Operands{pointer.NewIntLiteral(1)}}
	if _, err := Evaluate(expr, emptyOptions()); err == nil {
		t.Fatalf("expected arity error")
	}
}

func TestEvaluateQuotientByZero(t *testing.T) {
	expr := pointer.Arithmetic{
		Op:       pointer.OpQuotient,
		Operands: pointer.Operands{pointer.NewIntLiteral(10), pointer.NewIntLiteral(0)},
	}
	if _, err := Evaluate(expr, emptyOptions()); err == nil {
		t.Fatalf("expected division-by-zero error")
	}
}

func TestEvaluateRemainder(t *testing.T) {
	expr := pointer.Arithmetic{
		Op:       pointer.OpRemainder,
		Operands: pointer.Operands{pointer.NewIntLiteral(10), pointer.NewIntLiteral(3)},
	}
	v := mustEvaluate(t, expr, emptyOptions())
	if v.AsUint().Int64() != 1 {
		t.Fatalf("got %s, want 1", v)
	}
}

func TestEvaluateResizeSized(t *testing.T) {
	expr := pointer.Resize{Kind: pointer.ResizeSized, Size: 4, Operand: pointer.NewIntLiteral(1)}
	v := mustEvaluate(t, expr, emptyOptions())
	if len(v) != 4 {
		t.Fatalf("got length %d, want 4", len(v))
	}
}

func TestEvaluateResizeRejectsNonPositiveSize(t *testing.T) {
	expr := pointer.Resize{Kind: pointer.ResizeSized, Size: 0, Operand: pointer.NewIntLiteral(1)}
	if _, err := Evaluate(expr, emptyOptions()); err == nil {
		t.Fatalf("expected error for non-positive resize")
	}
}

func TestEvaluateKeccak256IsDeterministicAndThirtyTwoBytes(t *testing.T) {
	expr := pointer.Keccak256{Operands: pointer.Operands{pointer.NewIntLiteral(42)}}
	a := mustEvaluate(t, expr, emptyOptions())
	b := mustEvaluate(t, expr, emptyOptions())
	if len(a) != 32 {
		t.Fatalf("got digest length %d, want 32", len(a))
	}
	if !a.Equal(b) {
		t.Fatalf("expected repeated evaluation to produce the same digest")
	}
}

func TestEvaluateKeccak256ConcatenatesOperandsUnpadded(t *testing.T) {
	combined := pointer.Keccak256{Operands: pointer.Operands{pointer.NewHexLiteral("0x0102")}}
	split := pointer.Keccak256{Operands: pointer.Operands{pointer.NewHexLiteral("0x01"), pointer.NewHexLiteral("0x02")}}
	a := mustEvaluate(t, combined, emptyOptions())
	b := mustEvaluate(t, split, emptyOptions())
	if !a.Equal(b) {
		t.Fatalf("expected concatenated-operand hash to equal single-operand hash of the same bytes")
	}
}

func TestEvaluateLookupUnresolvedPropertyErrors(t *testing.T) {
	regions := cursor.Empty().Append(cursor.Region{
		Name:   strPtr("len"),
		Offset: cursor.Absent(),
	})
	opts := Options{Regions: regions, Variables: map[string]data.Data{}}
	expr := pointer.Lookup{Property: pointer.PropertyOffset, Reference: pointer.NewRef("len")}
	if _, err := Evaluate(expr, opts); err == nil {
		t.Fatalf("expected PropertyAbsentError")
	}
}

func TestEvaluateLookupResolvedProperty(t *testing.T) {
	regions := cursor.Empty().Append(cursor.Region{
		Name: strPtr("len"),
		Slot: cursor.Resolved(data.FromUint64(7)),
	})
	opts := Options{Regions: regions, Variables: map[string]data.Data{}}
	expr := pointer.Lookup{Property: pointer.PropertySlot, Reference: pointer.NewRef("len")}
	v := mustEvaluate(t, expr, opts)
	if v.AsUint().Int64() != 7 {
		t.Fatalf("got %s, want 7", v)
	}
}

func TestEvaluateLookupUnknownRegion(t *testing.T) {
	expr := pointer.Lookup{Property: pointer.PropertySlot, Reference: pointer.NewRef("nope")}
	if _, err := Evaluate(expr, emptyOptions()); err == nil {
		t.Fatalf("expected RegionNotFoundError")
	}
}

func strPtr(s string) *string { return &s }
