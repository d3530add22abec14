// Package read implements the location-agnostic reader (§4.5): it
// projects a fully resolved region onto the matching machine-state
// segment read.
package read

import (
	"math/big"

	"github.com/runtimeverification/ethdebug-go/cursor"
	"github.com/runtimeverification/ethdebug-go/data"
	"github.com/runtimeverification/ethdebug-go/machine"
	"github.com/runtimeverification/ethdebug-go/pointer"
	"github.com/runtimeverification/ethdebug-go/ptrerr"
)

const (
	defaultOffset = 0
	defaultLength = 32
)

// Read returns the bytes a fully resolved region denotes, reading from
// whichever of state's seven segments region.Location names. Slot
// defaults to 0, offset to 0, length to 32 when absent.
func Read(region cursor.Region, state machine.State) (data.Data, error) {
	slot := bigField(region.Slot)
	offset := intField(region.Offset)
	if region.Offset.Kind == cursor.FieldAbsent {
		offset = defaultOffset
	}
	length := defaultLength
	if region.Length.Kind == cursor.FieldValue {
		length = intField(region.Length)
	}

	switch region.Location {
	case pointer.LocationStack:
		return state.Stack().Read(slot, offset, length)
	case pointer.LocationMemory:
		return state.Memory().Read(offset, length)
	case pointer.LocationStorage:
		return state.Storage().Read(slot, offset, length)
	case pointer.LocationCalldata:
		return state.Calldata().Read(offset, length)
	case pointer.LocationReturndata:
		return state.Returndata().Read(offset, length)
	case pointer.LocationTransient:
		return state.Transient().Read(slot, offset, length)
	case pointer.LocationCode:
		return state.Code().Read(offset, length)
	default:
		return nil, ptrerr.NewInvalidRegionError(string(region.Location))
	}
}

func intField(f cursor.Field) int {
	if f.Kind != cursor.FieldValue {
		return 0
	}
	return int(f.Value.AsUint().Int64())
}

// bigField reads a field at full precision, for slots: unlike offset
// and length (small byte counts), a slot can be the result of
// $keccak256 and routinely exceeds int64 range (§4.1).
func bigField(f cursor.Field) *big.Int {
	if f.Kind != cursor.FieldValue {
		return big.NewInt(0)
	}
	return f.Value.AsUint()
}
