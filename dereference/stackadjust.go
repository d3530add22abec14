package dereference

import "github.com/runtimeverification/ethdebug-go/pointer"

// adjustStackLength rewrites a stack region's slot expression to
// compensate for the stack having grown or shrunk by delta slots
// between the pointer's reference step and the current step (§4.4).
// Non-stack regions pass through unchanged.
func adjustStackLength(region pointer.Region, delta int) pointer.Region {
	if region.Location != pointer.LocationStack || delta == 0 {
		return region
	}
	adjusted := region
	if delta > 0 {
		adjusted.Slot = pointer.Arithmetic{
			Op:       pointer.OpSum,
			Operands: pointer.Operands{region.Slot, pointer.NewIntLiteral(int64(delta))},
		}
	} else {
		adjusted.Slot = pointer.Arithmetic{
			Op:       pointer.OpDifference,
			Operands: pointer.Operands{region.Slot, pointer.NewIntLiteral(int64(-delta))},
		}
	}
	return adjusted
}
