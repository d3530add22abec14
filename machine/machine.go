// Package machine defines the abstract read access to one EVM
// execution step that the engine requires of an external machine
// implementation. The concrete EVM itself — the thing that produces
// these snapshots from a running trace — is out of scope (spec.md §1,
// §6): this package only states the interface boundary.
package machine

import (
	"math/big"

	"github.com/runtimeverification/ethdebug-go/data"
)

// Stack is the EVM operand stack of one execution step. slot is a full
// 256-bit value, not a small Go int: a stack pointer's slot can itself
// be the product of arithmetic (§4.1), so implementations must not
// assume it fits in a machine word.
type Stack interface {
	Length() (int, error)
	Read(slot *big.Int, offset, length int) (data.Data, error)
}

// Memory is the EVM linear memory of one execution step.
type Memory interface {
	Length() (int, error)
	Read(offset, length int) (data.Data, error)
}

// Storage is persistent contract storage, keyed by 256-bit slot. slot
// is a *big.Int, not an int: Solidity's mapping/dynamic-array slot
// derivation computes slots via $keccak256 (§4.1), which routinely
// produces values far outside int64 range.
type Storage interface {
	Read(slot *big.Int, offset, length int) (data.Data, error)
}

// Calldata is the input data of the current call frame.
type Calldata interface {
	Length() (int, error)
	Read(offset, length int) (data.Data, error)
}

// Returndata is the output data of the most recently returned call.
type Returndata interface {
	Length() (int, error)
	Read(offset, length int) (data.Data, error)
}

// TransientStorage is EIP-1153 transient storage, keyed like Storage.
type TransientStorage interface {
	Read(slot *big.Int, offset, length int) (data.Data, error)
}

// Code is the contract bytecode of the current call frame.
type Code interface {
	Length() (int, error)
	Read(offset, length int) (data.Data, error)
}

// State is a snapshot of one execution step: scalar accessors plus
// access to the seven readable segments.
type State interface {
	TraceIndex() (int, error)
	ProgramCounter() (int, error)
	Opcode() (string, error)

	Stack() Stack
	Memory() Memory
	Storage() Storage
	Calldata() Calldata
	Returndata() Returndata
	Transient() TransientStorage
	Code() Code
}
