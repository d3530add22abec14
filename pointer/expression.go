package pointer

import (
	"encoding/json"
	"math/big"
	"strconv"
	"strings"

	"github.com/runtimeverification/ethdebug-go/ptrerr"
)

// Expression is the sum type of §4.2: Literal, Constant, Variable,
// Arithmetic, Resize, Keccak256, Lookup and Read. Evaluation dispatches
// on the concrete type (package evaluate does a Go type switch, the
// idiomatic analogue of the teacher's singledispatch-over-AST pattern).
type Expression interface {
	expressionNode()
}

// Operands is an ordered sequence of expressions, evaluated left to
// right by every arithmetic and hashing operator.
type Operands []Expression

// Literal wraps a schema-constrained unsigned integer, spelled either
// as a JSON integer or as a "0x"-prefixed hex string.
type Literal struct {
	Int *big.Int
	Hex string
}

func (Literal) expressionNode() {}

// NewIntLiteral builds a Literal from an integer value.
func NewIntLiteral(v int64) Literal {
	return Literal{Int: big.NewInt(v)}
}

// NewHexLiteral builds a Literal from a "0x"-prefixed hex string.
func NewHexLiteral(hex string) Literal {
	return Literal{Hex: hex}
}

// Constant is a named built-in value. Only $wordsize is defined.
type Constant struct {
	Name string
}

func (Constant) expressionNode() {}

// WordSize is the $wordsize constant, evaluating to 32.
var WordSize = Constant{Name: "$wordsize"}

// Variable looks up an identifier in the current variable environment.
type Variable struct {
	Identifier string
}

func (Variable) expressionNode() {}

// ArithmeticOp names one of the five arithmetic operators.
type ArithmeticOp string

const (
	OpSum        ArithmeticOp = "$sum"
	OpDifference ArithmeticOp = "$difference"
	OpProduct    ArithmeticOp = "$product"
	OpQuotient   ArithmeticOp = "$quotient"
	OpRemainder  ArithmeticOp = "$remainder"
)

// Arithmetic dispatches on exactly one populated operator field.
type Arithmetic struct {
	Op       ArithmeticOp
	Operands Operands
}

func (Arithmetic) expressionNode() {}

// ResizeKind distinguishes $wordsized from $sized<N>.
type ResizeKind int

const (
	ResizeWordSized ResizeKind = iota
	ResizeSized
)

// Resize re-pads or truncates its operand to an exact byte length:
// $wordsized means 32, $sized<N> means N (N must be positive).
type Resize struct {
	Kind    ResizeKind
	Size    int
	Operand Expression
}

func (Resize) expressionNode() {}

// Keccak256 concatenates its operands' results, unpadded, and hashes
// the result with Keccak-256.
type Keccak256 struct {
	Operands Operands
}

func (Keccak256) expressionNode() {}

// LookupProperty names which field of a region a Lookup reads.
type LookupProperty string

const (
	PropertySlot   LookupProperty = ".slot"
	PropertyOffset LookupProperty = ".offset"
	PropertyLength LookupProperty = ".length"
)

// Lookup reads a single resolved field off a named region (or $this).
type Lookup struct {
	Property  LookupProperty
	Reference Ref
}

func (Lookup) expressionNode() {}

// Read reads the bytes denoted by a fully resolved named region.
type Read struct {
	Reference Ref
}

func (Read) expressionNode() {}

// UnmarshalExpression decodes one JSON-encoded expression node,
// dispatching on whichever discriminator key is present. This is the
// boundary at which the engine accepts the ethdebug pointer wire
// format; the schema compiler that produces these blobs in the first
// place remains out of scope (spec.md §1).
func UnmarshalExpression(raw json.RawMessage) (Expression, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}

	if v, ok := fields["literal"]; ok {
		return unmarshalLiteral(v)
	}
	if _, ok := fields["$wordsize"]; ok {
		return WordSize, nil
	}
	if v, ok := fields["variable"]; ok {
		var id string
		if err := json.Unmarshal(v, &id); err != nil {
			return nil, err
		}
		return Variable{Identifier: id}, nil
	}
	for op := range map[ArithmeticOp]struct{}{
		OpSum: {}, OpDifference: {}, OpProduct: {}, OpQuotient: {}, OpRemainder: {},
	} {
		if v, ok := fields[string(op)]; ok {
			operands, err := unmarshalOperands(v)
			if err != nil {
				return nil, err
			}
			return Arithmetic{Op: op, Operands: operands}, nil
		}
	}
	if v, ok := fields["$wordsized"]; ok {
		operand, err := UnmarshalExpression(v)
		if err != nil {
			return nil, err
		}
		return Resize{Kind: ResizeWordSized, Size: 32, Operand: operand}, nil
	}
	for key, v := range fields {
		if strings.HasPrefix(key, "$sized") {
			n, err := strconv.Atoi(strings.TrimPrefix(key, "$sized"))
			if err != nil {
				return nil, ptrerr.NewInvalidResizeError(0)
			}
			if n <= 0 {
				return nil, ptrerr.NewInvalidResizeError(n)
			}
			operand, err := UnmarshalExpression(v)
			if err != nil {
				return nil, err
			}
			return Resize{Kind: ResizeSized, Size: n, Operand: operand}, nil
		}
	}
	if v, ok := fields["$keccak256"]; ok {
		operands, err := unmarshalOperands(v)
		if err != nil {
			return nil, err
		}
		return Keccak256{Operands: operands}, nil
	}
	for _, prop := range []LookupProperty{PropertySlot, PropertyOffset, PropertyLength} {
		if v, ok := fields[string(prop)]; ok {
			var ref Ref
			if err := json.Unmarshal(v, &ref); err != nil {
				return nil, err
			}
			return Lookup{Property: prop, Reference: ref}, nil
		}
	}
	if v, ok := fields["$read"]; ok {
		var ref Ref
		if err := json.Unmarshal(v, &ref); err != nil {
			return nil, err
		}
		return Read{Reference: ref}, nil
	}

	return nil, ptrerr.NewInvalidPointerError("expression")
}

func unmarshalLiteral(raw json.RawMessage) (Expression, error) {
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return NewHexLiteral(asString), nil
	}
	var asInt big.Int
	if err := json.Unmarshal(raw, &asInt); err != nil {
		return nil, err
	}
	return Literal{Int: &asInt}, nil
}

func unmarshalOperands(raw json.RawMessage) (Operands, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	out := make(Operands, 0, len(items))
	for _, item := range items {
		expr, err := UnmarshalExpression(item)
		if err != nil {
			return nil, err
		}
		out = append(out, expr)
	}
	return out, nil
}
