package pointer

import (
	"encoding/json"

	"github.com/runtimeverification/ethdebug-go/ptrerr"
)

// Region is a raw pointer-region AST leaf: a location plus optional
// name, slot, offset and length expressions. A Region is also a
// Pointer (its own collection variant — the leaf case).
type Region struct {
	Location Location
	Name     *string
	Slot     Expression
	Offset   Expression
	Length   Expression
}

func (Region) pointerNode() {}

type regionWire struct {
	Location string          `json:"location"`
	Name     *string         `json:"name,omitempty"`
	Slot     json.RawMessage `json:"slot,omitempty"`
	Offset   json.RawMessage `json:"offset,omitempty"`
	Length   json.RawMessage `json:"length,omitempty"`
}

func unmarshalRegion(raw json.RawMessage) (Region, error) {
	var wire regionWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return Region{}, err
	}
	r := Region{Location: Location(wire.Location), Name: wire.Name}
	if !r.Location.Valid() {
		return Region{}, ptrerr.NewInvalidRegionError(wire.Location)
	}
	var err error
	if len(wire.Slot) > 0 {
		if r.Slot, err = UnmarshalExpression(wire.Slot); err != nil {
			return Region{}, err
		}
	}
	if len(wire.Offset) > 0 {
		if r.Offset, err = UnmarshalExpression(wire.Offset); err != nil {
			return Region{}, err
		}
	}
	if len(wire.Length) > 0 {
		if r.Length, err = UnmarshalExpression(wire.Length); err != nil {
			return Region{}, err
		}
	}
	return r, nil
}
