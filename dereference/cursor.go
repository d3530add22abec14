package dereference

import (
	"log/slog"

	"github.com/runtimeverification/ethdebug-go/cursor"
	"github.com/runtimeverification/ethdebug-go/data"
	"github.com/runtimeverification/ethdebug-go/machine"
	"github.com/runtimeverification/ethdebug-go/pointer"
)

// Cursor is a reusable dereference plan (§4.7): a root pointer and its
// template dictionary, bound once and then replayed against any number
// of machine-state snapshots as execution proceeds. Constructing a
// Cursor does no evaluation; evaluation happens per-call in Dereference.
type Cursor struct {
	root               pointer.Pointer
	templates          map[string]pointer.Template
	initialStackLength int
	log                *slog.Logger
}

// New binds root and templates into a Cursor. initialStackLength is the
// EVM stack depth at the point the pointer was defined (its "reference
// step", §4.4) — later Dereference calls compare it against the current
// stack depth to compensate stack-relative regions for intervening
// pushes and pops.
func New(root pointer.Pointer, templates map[string]pointer.Template, initialStackLength int) Cursor {
	if templates == nil {
		templates = map[string]pointer.Template{}
	}
	return Cursor{
		root:               root,
		templates:          templates,
		initialStackLength: initialStackLength,
		log:                slog.Default().With("component", "dereference"),
	}
}

// Dereference walks the cursor's pointer against state, returning an
// Iterator over the regions it denotes at this particular step.
func (c Cursor) Dereference(state machine.State) (*Iterator, error) {
	currentStackLength, err := state.Stack().Length()
	if err != nil {
		return nil, err
	}

	it := &Iterator{
		stack:             []item{dereferencePointer{pointer: c.root}},
		regions:           cursor.Empty(),
		variables:         map[string]data.Data{},
		templates:         c.templates,
		state:             state,
		stackLengthChange: currentStackLength - c.initialStackLength,
		log:               c.log,
	}
	return it, nil
}

// Dereference is a convenience wrapper for one-shot use: it builds a
// Cursor from root and templates and immediately dereferences it
// against state.
func Dereference(root pointer.Pointer, templates map[string]pointer.Template, initialStackLength int, state machine.State) (*Iterator, error) {
	return New(root, templates, initialStackLength).Dereference(state)
}
