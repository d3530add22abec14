// Package pointer defines the pointer and expression AST: the
// tagged-variant tree §3 describes, with JSON field names as variant
// discriminators. Types here are produced by an external schema
// compiler (out of scope, spec.md §1) or, for convenience, decoded
// directly from the ethdebug pointer wire format via Unmarshal.
package pointer

import (
	"encoding/json"

	"github.com/runtimeverification/ethdebug-go/ptrerr"
)

// Pointer is the sum type of §3's "Pointer (collection)": Region,
// Group, List, Conditional, Scope, or TemplateReference.
type Pointer interface {
	pointerNode()
}

// Group expands to each child pointer in order.
type Group struct {
	Items []Pointer
}

func (Group) pointerNode() {}

// List expands Is once per index in [0, Count), binding Each to the
// current index (as Data) before each iteration. The binding is not
// removed afterwards: it stays visible, holding the last index, once
// the list has been expanded.
type List struct {
	Count Expression
	Each  string
	Is    Pointer
}

func (List) pointerNode() {}

// Conditional expands Then if If is nonzero, else Else (if present).
type Conditional struct {
	If   Expression
	Then Pointer
	Else Pointer // nil if absent
}

func (Conditional) pointerNode() {}

// ScopeBinding is one `identifier: expression` entry of a Scope's
// define block. Scope keeps these as an ordered slice, not a map,
// because later definitions may reference earlier ones (§4.6).
type ScopeBinding struct {
	Identifier string
	Expression Expression
}

// Scope evaluates Define's bindings in order, each seeing the ones
// before it, then expands In with all of them bound.
type Scope struct {
	Define []ScopeBinding
	In     Pointer
}

func (Scope) pointerNode() {}

// TemplateReference expands a named, parameterised Template (§3's
// Pointer.Reference variant — named TemplateReference here to avoid
// colliding with the unrelated expression-level Ref).
type TemplateReference struct {
	Template string
}

func (TemplateReference) pointerNode() {}

// Template is a named parameterised sub-pointer: a set of variables it
// expects to already be bound, and the pointer to expand once they are.
type Template struct {
	Expect []string
	For    Pointer
}

// Unmarshal decodes one JSON-encoded pointer collection node.
func Unmarshal(raw json.RawMessage) (Pointer, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}

	if _, ok := fields["location"]; ok {
		return unmarshalRegion(raw)
	}
	if v, ok := fields["group"]; ok {
		var items []json.RawMessage
		if err := json.Unmarshal(v, &items); err != nil {
			return nil, err
		}
		group := Group{Items: make([]Pointer, 0, len(items))}
		for _, item := range items {
			p, err := Unmarshal(item)
			if err != nil {
				return nil, err
			}
			group.Items = append(group.Items, p)
		}
		return group, nil
	}
	if v, ok := fields["list"]; ok {
		return unmarshalList(v)
	}
	if _, ok := fields["if"]; ok {
		return unmarshalConditional(fields)
	}
	if _, ok := fields["define"]; ok {
		return unmarshalScope(fields)
	}
	if v, ok := fields["template"]; ok {
		var name string
		if err := json.Unmarshal(v, &name); err != nil {
			return nil, err
		}
		return TemplateReference{Template: name}, nil
	}

	return nil, ptrerr.NewInvalidPointerError("pointer")
}

type listWire struct {
	Count json.RawMessage `json:"count"`
	Each  string          `json:"each"`
	Is    json.RawMessage `json:"is"`
}

func unmarshalList(raw json.RawMessage) (Pointer, error) {
	var wire listWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, err
	}
	count, err := UnmarshalExpression(wire.Count)
	if err != nil {
		return nil, err
	}
	is, err := Unmarshal(wire.Is)
	if err != nil {
		return nil, err
	}
	return List{Count: count, Each: wire.Each, Is: is}, nil
}

func unmarshalConditional(fields map[string]json.RawMessage) (Pointer, error) {
	cond, err := UnmarshalExpression(fields["if"])
	if err != nil {
		return nil, err
	}
	then, err := Unmarshal(fields["then"])
	if err != nil {
		return nil, err
	}
	c := Conditional{If: cond, Then: then}
	if v, ok := fields["else"]; ok {
		elseP, err := Unmarshal(v)
		if err != nil {
			return nil, err
		}
		c.Else = elseP
	}
	return c, nil
}

func unmarshalScope(fields map[string]json.RawMessage) (Pointer, error) {
	var defineRaw map[string]json.RawMessage
	if err := json.Unmarshal(fields["define"], &defineRaw); err != nil {
		return nil, err
	}
	// JSON object keys carry no guaranteed order; Scope.Define's
	// left-to-right semantics (§4.6) must be set up by constructing
	// Scope values directly rather than by decoding this wire form
	// when definition order matters.
	scope := Scope{}
	for id, raw := range defineRaw {
		expr, err := UnmarshalExpression(raw)
		if err != nil {
			return nil, err
		}
		scope.Define = append(scope.Define, ScopeBinding{Identifier: id, Expression: expr})
	}
	in, err := Unmarshal(fields["in"])
	if err != nil {
		return nil, err
	}
	scope.In = in
	return scope, nil
}

type templateWire struct {
	Expect []string        `json:"expect"`
	For    json.RawMessage `json:"for"`
}

// UnmarshalTemplate decodes one JSON-encoded template definition.
func UnmarshalTemplate(raw json.RawMessage) (Template, error) {
	var wire templateWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return Template{}, err
	}
	forPointer, err := Unmarshal(wire.For)
	if err != nil {
		return Template{}, err
	}
	return Template{Expect: wire.Expect, For: forPointer}, nil
}
