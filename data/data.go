// Package data implements Data, the variable-length big-endian unsigned
// byte string that is the engine's only computed value type. Every
// expression in package evaluate reduces, eventually, to a Data.
package data

import (
	"encoding/hex"
	"math/big"
	"strings"

	"github.com/runtimeverification/ethdebug-go/ptrerr"
)

// Data is an ordered byte sequence interpreted big-endian as an
// unsigned integer. Leading-zero bytes are not canonicalized: two Data
// values that differ only in leading zeros are unequal by Equal, even
// though they are arithmetically equivalent under AsUint.
type Data []byte

// Zero returns the empty Data, the canonical representation of 0.
func Zero() Data {
	return Data{}
}

// FromInt returns the minimum-length big-endian encoding of a
// non-negative integer. FromInt(0) is the empty slice.
func FromInt(value *big.Int) Data {
	if value.Sign() == 0 {
		return Zero()
	}
	return Data(value.Bytes())
}

// FromUint64 is a convenience wrapper over FromInt for small constants
// such as loop indices and the $wordsize constant.
func FromUint64(value uint64) Data {
	return FromInt(new(big.Int).SetUint64(value))
}

// FromHex parses a "0x"-prefixed hex string. The prefix is mandatory;
// its absence is an InvalidHexError, not a silently-accepted bare hex
// string, matching the teacher's own hexutil convention of rejecting
// ambiguous unprefixed input.
func FromHex(s string) (Data, error) {
	if !strings.HasPrefix(s, "0x") {
		return nil, ptrerr.NewInvalidHexError(s)
	}
	raw := s[2:]
	if len(raw)%2 != 0 {
		raw = "0" + raw
	}
	decoded, err := hex.DecodeString(raw)
	if err != nil {
		return nil, ptrerr.NewInvalidHexError(s)
	}
	return Data(decoded), nil
}

// FromBytes wraps a raw byte slice as Data without reinterpretation,
// used for hash digests and other byte strings already in final form.
func FromBytes(b []byte) Data {
	out := make(Data, len(b))
	copy(out, b)
	return out
}

// AsUint interprets the receiver big-endian as an unsigned integer.
func (d Data) AsUint() *big.Int {
	return new(big.Int).SetBytes(d)
}

// ToHex renders the receiver as a "0x"-prefixed lowercase hex string.
func (d Data) ToHex() string {
	return "0x" + hex.EncodeToString(d)
}

// PadUntilAtLeast left-pads the receiver with zero bytes until it is at
// least length bytes long. If the receiver is already that long or
// longer, it is returned unchanged (no truncation).
func (d Data) PadUntilAtLeast(length int) Data {
	if len(d) >= length {
		return d
	}
	padded := make(Data, length)
	copy(padded[length-len(d):], d)
	return padded
}

// ResizeTo returns a Data of exactly length bytes: left-padded with
// zeros if the receiver is shorter, left-truncated if longer.
func (d Data) ResizeTo(length int) Data {
	if len(d) == length {
		return d
	}
	if len(d) < length {
		return d.PadUntilAtLeast(length)
	}
	out := make(Data, length)
	copy(out, d[len(d)-length:])
	return out
}

// Concat appends others to the receiver in order, without padding any
// operand — this is exactly the semantics $keccak256 preimage assembly
// needs (§4.1: hash inputs must not be silently widened).
func (d Data) Concat(others ...Data) Data {
	total := len(d)
	for _, o := range others {
		total += len(o)
	}
	out := make(Data, 0, total)
	out = append(out, d...)
	for _, o := range others {
		out = append(out, o...)
	}
	return out
}

// Equal compares byte-for-byte; it does not canonicalize leading zeros.
func (d Data) Equal(other Data) bool {
	if len(d) != len(other) {
		return false
	}
	for i := range d {
		if d[i] != other[i] {
			return false
		}
	}
	return true
}

func (d Data) String() string {
	return "Data[" + d.ToHex() + "]"
}
