// Package dereference implements the work-stack dereference driver
// (§4.6): it walks a pointer's collection tree, maintaining a variable
// environment and a regions index, and exposes the resolved regions it
// visits as a pull-based stream (package cursor's Region, not to be
// confused with this package's own internal driver "cursor" of work —
// the public re-dereferencing entry point is the Cursor type in this
// package, wrapping §4.7's "cursor" concept).
package dereference

import (
	"log/slog"

	"github.com/runtimeverification/ethdebug-go/cursor"
	"github.com/runtimeverification/ethdebug-go/data"
	"github.com/runtimeverification/ethdebug-go/evaluate"
	"github.com/runtimeverification/ethdebug-go/machine"
	"github.com/runtimeverification/ethdebug-go/pointer"
	"github.com/runtimeverification/ethdebug-go/ptrerr"
	"github.com/runtimeverification/ethdebug-go/resolve"

	mapset "github.com/deckarep/golang-set/v2"
)

// Iterator is a lazy, finite, not-restartable producer of resolved
// regions (§4.7): obtain one from Cursor.Dereference, call Next until
// it returns false, and read each region with Region. Dropping an
// Iterator before exhausting it is a valid cancellation — the driver
// holds no resources that need releasing.
type Iterator struct {
	stack              []item
	regions            cursor.Regions
	variables          map[string]data.Data
	templates          map[string]pointer.Template
	state              machine.State
	stackLengthChange  int
	current            cursor.Region
	err                error
	log                *slog.Logger
}

// Next advances the iterator to the next resolved region, returning
// false when the pointer tree is exhausted or an error occurred. Check
// Err after Next returns false to distinguish the two.
func (it *Iterator) Next() bool {
	if it.err != nil {
		return false
	}
	for len(it.stack) > 0 {
		next := it.stack[len(it.stack)-1]
		it.stack = it.stack[:len(it.stack)-1]

		switch m := next.(type) {
		case regionEmit:
			it.current = m.region
			return true
		case dereferencePointer:
			items, err := it.expand(m.pointer)
			if err != nil {
				it.err = err
				return false
			}
			it.stack = pushReversed(it.stack, items)
		case saveRegions:
			for _, r := range m.regions {
				it.regions = it.regions.Append(r)
			}
		case saveVariables:
			for k, v := range m.variables {
				it.variables[k] = v
			}
		}
	}
	return false
}

// Region returns the region produced by the most recent successful
// call to Next.
func (it *Iterator) Region() cursor.Region {
	return it.current
}

// Err returns the error that stopped iteration, if any.
func (it *Iterator) Err() error {
	return it.err
}

func (it *Iterator) evalOptions() evaluate.Options {
	return evaluate.Options{State: it.state, Regions: it.regions, Variables: it.variables}
}

// expand performs one step of pointer-tree expansion, per the rules of
// §4.6: a Region resolves and emits; a Group/List/Conditional/Scope/
// TemplateReference produces further work-stack items.
func (it *Iterator) expand(p pointer.Pointer) ([]item, error) {
	switch v := p.(type) {
	case pointer.Region:
		return it.expandRegion(v)
	case pointer.Group:
		items := make([]item, 0, len(v.Items))
		for _, child := range v.Items {
			items = append(items, dereferencePointer{pointer: child})
		}
		return items, nil
	case pointer.List:
		return it.expandList(v)
	case pointer.Conditional:
		return it.expandConditional(v)
	case pointer.Scope:
		return it.expandScope(v)
	case pointer.TemplateReference:
		return it.expandTemplateReference(v)
	default:
		return nil, ptrerr.NewInvalidPointerError("pointer")
	}
}

func (it *Iterator) expandRegion(region pointer.Region) ([]item, error) {
	adjusted := adjustStackLength(region, it.stackLengthChange)

	resolved, err := resolve.Resolve(adjusted, it.evalOptions())
	if err != nil {
		it.log.Warn("region resolution failed", "location", string(region.Location), "error", err)
		return nil, err
	}

	items := []item{regionEmit{region: resolved}}
	if region.Name != nil {
		items = append(items, saveRegions{regions: []cursor.Region{resolved}})
	}
	return items, nil
}

func (it *Iterator) expandList(list pointer.List) ([]item, error) {
	countData, err := evaluate.Evaluate(list.Count, it.evalOptions())
	if err != nil {
		return nil, err
	}
	count := countData.AsUint().Int64()
	it.log.Debug("expanding list", "each", list.Each, "count", count)

	items := make([]item, 0, count*2)
	for i := int64(0); i < count; i++ {
		items = append(items,
			saveVariables{variables: map[string]data.Data{list.Each: data.FromUint64(uint64(i))}},
			dereferencePointer{pointer: list.Is},
		)
	}
	return items, nil
}

func (it *Iterator) expandConditional(cond pointer.Conditional) ([]item, error) {
	condData, err := evaluate.Evaluate(cond.If, it.evalOptions())
	if err != nil {
		return nil, err
	}
	if condData.AsUint().Sign() != 0 {
		return []item{dereferencePointer{pointer: cond.Then}}, nil
	}
	if cond.Else != nil {
		return []item{dereferencePointer{pointer: cond.Else}}, nil
	}
	return nil, nil
}

func (it *Iterator) expandScope(scope pointer.Scope) ([]item, error) {
	local := make(map[string]data.Data, len(it.variables)+len(scope.Define))
	for k, v := range it.variables {
		local[k] = v
	}
	newVars := make(map[string]data.Data, len(scope.Define))

	for _, binding := range scope.Define {
		opts := evaluate.Options{State: it.state, Regions: it.regions, Variables: local}
		v, err := evaluate.Evaluate(binding.Expression, opts)
		if err != nil {
			return nil, err
		}
		local[binding.Identifier] = v
		newVars[binding.Identifier] = v
	}

	return []item{
		saveVariables{variables: newVars},
		dereferencePointer{pointer: scope.In},
	}, nil
}

func (it *Iterator) expandTemplateReference(ref pointer.TemplateReference) ([]item, error) {
	tmpl, ok := it.templates[ref.Template]
	if !ok {
		return nil, ptrerr.NewUnknownTemplateError(ref.Template)
	}

	bound := mapset.NewSet[string]()
	for name := range it.variables {
		bound.Add(name)
	}
	var missing []string
	for _, expected := range tmpl.Expect {
		if !bound.Contains(expected) {
			missing = append(missing, expected)
		}
	}
	if len(missing) > 0 {
		return nil, ptrerr.NewMissingTemplateVariablesError(ref.Template, missing)
	}

	it.log.Debug("expanding template", "template", ref.Template)
	return []item{dereferencePointer{pointer: tmpl.For}}, nil
}
