package dereference

import (
	"github.com/runtimeverification/ethdebug-go/cursor"
	"github.com/runtimeverification/ethdebug-go/data"
	"github.com/runtimeverification/ethdebug-go/pointer"
)

// item is the unit of work the driver's stack holds. It extends the
// three-variant Memo union of §4.6 (DereferencePointer, SaveRegions,
// SaveVariables) with a fourth, regionEmit, that carries a region ready
// to be handed to the consumer — the Go analogue of the Design Notes'
// "expansion functions return a bounded list of (EmitRegion|Memo)
// items" recommendation, collapsed into one list type instead of two.
type item interface {
	isItem()
}

type regionEmit struct {
	region cursor.Region
}

func (regionEmit) isItem() {}

type dereferencePointer struct {
	pointer pointer.Pointer
}

func (dereferencePointer) isItem() {}

type saveRegions struct {
	regions []cursor.Region
}

func (saveRegions) isItem() {}

type saveVariables struct {
	variables map[string]data.Data
}

func (saveVariables) isItem() {}

// pushReversed pushes items onto stack so that items[0] ends up on top
// (popped first): the work stack is a LIFO, so the list must be
// appended in reverse order for a preorder, left-to-right traversal.
func pushReversed(stack []item, items []item) []item {
	for i := len(items) - 1; i >= 0; i-- {
		stack = append(stack, items[i])
	}
	return stack
}
