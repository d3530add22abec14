// Package machinetest provides an in-memory machine.State suitable for
// exercising the pointer evaluation engine in tests, without needing a
// live EVM trace. It represents 256-bit words with uint256.Int, the
// same word type go-ethereum's own interpreter loop uses for the stack.
package machinetest

import (
	"math/big"

	"github.com/holiman/uint256"

	"github.com/runtimeverification/ethdebug-go/data"
	"github.com/runtimeverification/ethdebug-go/machine"
)

// State is a fixed, hand-assembled execution step.
type State struct {
	traceIndex     int
	programCounter int
	opcode         string

	stack       stack
	memory      segment
	storage     storage
	calldata    segment
	returndata  segment
	transient   storage
	code        segment
}

// New returns an empty State at trace index 0, pc 0, with no opcode.
func New() *State {
	return &State{
		storage:   storage{},
		transient: storage{},
	}
}

func (s *State) WithTraceIndex(i int) *State        { s.traceIndex = i; return s }
func (s *State) WithProgramCounter(pc int) *State    { s.programCounter = pc; return s }
func (s *State) WithOpcode(op string) *State         { s.opcode = op; return s }

// WithStack sets the operand stack, top of stack first (index 0).
func (s *State) WithStack(words ...*uint256.Int) *State {
	s.stack = stack{words: words}
	return s
}

// PushStack pushes a word so that it becomes the new top of stack.
func (s *State) PushStack(word *uint256.Int) *State {
	s.stack.words = append([]*uint256.Int{word}, s.stack.words...)
	return s
}

func (s *State) WithMemory(bytes []byte) *State     { s.memory = segment{bytes: bytes}; return s }
func (s *State) WithCalldata(bytes []byte) *State   { s.calldata = segment{bytes: bytes}; return s }
func (s *State) WithReturndata(bytes []byte) *State { s.returndata = segment{bytes: bytes}; return s }
func (s *State) WithCode(bytes []byte) *State       { s.code = segment{bytes: bytes}; return s }

// SetStorage sets the 32-byte word at the given slot.
func (s *State) SetStorage(slot *uint256.Int, word *uint256.Int) *State {
	s.storage[slotKey(slot.ToBig())] = word
	return s
}

// SetTransient sets the 32-byte word at the given transient-storage slot.
func (s *State) SetTransient(slot *uint256.Int, word *uint256.Int) *State {
	s.transient[slotKey(slot.ToBig())] = word
	return s
}

func (s *State) TraceIndex() (int, error)     { return s.traceIndex, nil }
func (s *State) ProgramCounter() (int, error) { return s.programCounter, nil }
func (s *State) Opcode() (string, error)      { return s.opcode, nil }

func (s *State) Stack() machine.Stack             { return s.stack }
func (s *State) Memory() machine.Memory           { return s.memory }
func (s *State) Storage() machine.Storage         { return s.storage }
func (s *State) Calldata() machine.Calldata        { return s.calldata }
func (s *State) Returndata() machine.Returndata    { return s.returndata }
func (s *State) Transient() machine.TransientStorage { return s.transient }
func (s *State) Code() machine.Code               { return s.code }

// stack holds operand-stack words, top of stack at index 0.
type stack struct {
	words []*uint256.Int
}

func (st stack) Length() (int, error) {
	return len(st.words), nil
}

func (st stack) Read(slot *big.Int, offset, length int) (data.Data, error) {
	if !slot.IsInt64() {
		return data.Zero().PadUntilAtLeast(length), nil
	}
	index := slot.Int64()
	if index < 0 || index >= int64(len(st.words)) {
		return data.Zero().PadUntilAtLeast(length), nil
	}
	word := data.FromBytes(st.words[index].Bytes32()[:])
	return sliceWithZeroPad(word, offset, length), nil
}

// segment is a flat byte region (memory, calldata, returndata, code).
type segment struct {
	bytes []byte
}

func (sg segment) Length() (int, error) {
	return len(sg.bytes), nil
}

func (sg segment) Read(offset, length int) (data.Data, error) {
	return sliceWithZeroPad(data.FromBytes(sg.bytes), offset, length), nil
}

// storage maps hex-encoded, arbitrary-precision slot keys to 32-byte
// words. Unset slots read as all zero, matching EVM storage semantics.
// Keys are kept as *big.Int-derived strings, not uint256.Int, so a slot
// computed by $keccak256 (§4.1) is looked up at full precision rather
// than truncated.
type storage map[string]*uint256.Int

func (st storage) Read(slot *big.Int, offset, length int) (data.Data, error) {
	word, ok := st[slotKey(slot)]
	if !ok {
		return data.Zero().PadUntilAtLeast(length), nil
	}
	return sliceWithZeroPad(data.FromBytes(word.Bytes32()[:]), offset, length), nil
}

// slotKey normalizes a slot to the map key storage/transient use,
// independent of whether it arrived as a uint256.Int-derived value (via
// SetStorage/SetTransient) or a *big.Int read off a resolved region.
func slotKey(slot *big.Int) string {
	return slot.Text(16)
}

// sliceWithZeroPad returns src[offset:offset+length], treating any
// portion of the requested range outside src's bounds as zero bytes —
// the EVM's own behavior for out-of-bounds memory/calldata reads.
func sliceWithZeroPad(src data.Data, offset, length int) data.Data {
	out := make(data.Data, length)
	for i := 0; i < length; i++ {
		srcIdx := offset + i
		if srcIdx >= 0 && srcIdx < len(src) {
			out[i] = src[srcIdx]
		}
	}
	return out
}
