// Package evaluate implements the recursive interpreter over the
// expression AST (§4.2): it reduces Literal, Constant, Variable,
// Arithmetic, Resize, Keccak256, Lookup and Read expressions to Data.
package evaluate

import (
	"fmt"
	"math/big"

	"golang.org/x/crypto/sha3"

	"github.com/runtimeverification/ethdebug-go/cursor"
	"github.com/runtimeverification/ethdebug-go/data"
	"github.com/runtimeverification/ethdebug-go/machine"
	"github.com/runtimeverification/ethdebug-go/pointer"
	"github.com/runtimeverification/ethdebug-go/ptrerr"
	"github.com/runtimeverification/ethdebug-go/read"
)

// wordSize is the constant $wordsize evaluates to: 32 bytes per EVM word.
const wordSize = 32

// Options bundles the environment an expression is evaluated against:
// the regions index (for Lookup/Read), the variable bindings (for
// Variable), and the machine-state snapshot (for Read).
type Options struct {
	State     machine.State
	Regions   cursor.Regions
	Variables map[string]data.Data
}

// WithThis returns a copy of opts with the regions index's $this slot
// set to region. Used by package resolve's fixed-point loop.
func (o Options) WithThis(region cursor.Region) Options {
	o.Regions = o.Regions.WithThis(region)
	return o
}

// Evaluate reduces expr to Data against opts. Child expressions are
// always evaluated before their parent composes a result (§4.2
// ordering guarantee).
func Evaluate(expr pointer.Expression, opts Options) (data.Data, error) {
	switch e := expr.(type) {
	case pointer.Literal:
		return evaluateLiteral(e)
	case pointer.Constant:
		return evaluateConstant(e)
	case pointer.Variable:
		return evaluateVariable(e, opts)
	case pointer.Arithmetic:
		return evaluateArithmetic(e, opts)
	case pointer.Resize:
		return evaluateResize(e, opts)
	case pointer.Keccak256:
		return evaluateKeccak256(e, opts)
	case pointer.Lookup:
		return evaluateLookup(e, opts)
	case pointer.Read:
		return evaluateRead(e, opts)
	default:
		return nil, ptrerr.NewInvalidPointerError(fmt.Sprintf("%T", expr))
	}
}

func evaluateLiteral(lit pointer.Literal) (data.Data, error) {
	if lit.Int != nil {
		return data.FromInt(lit.Int), nil
	}
	return data.FromHex(lit.Hex)
}

func evaluateConstant(c pointer.Constant) (data.Data, error) {
	if c == pointer.WordSize {
		return data.FromUint64(wordSize), nil
	}
	return nil, fmt.Errorf("unsupported constant: %s", c.Name)
}

func evaluateVariable(v pointer.Variable, opts Options) (data.Data, error) {
	val, ok := opts.Variables[v.Identifier]
	if !ok {
		return nil, ptrerr.NewUnknownVariableError(v.Identifier)
	}
	return val, nil
}

func evaluateArithmetic(a pointer.Arithmetic, opts Options) (data.Data, error) {
	switch a.Op {
	case pointer.OpSum:
		return evaluateSum(a.Operands, opts)
	case pointer.OpProduct:
		return evaluateProduct(a.Operands, opts)
	case pointer.OpDifference:
		return evaluatePair(a.Operands, opts, "$difference", func(x, y *big.Int) *big.Int {
			if x.Cmp(y) < 0 {
				return big.NewInt(0)
			}
			return new(big.Int).Sub(x, y)
		}, false)
	case pointer.OpQuotient:
		return evaluatePair(a.Operands, opts, "$quotient", func(x, y *big.Int) *big.Int {
			return new(big.Int).Quo(x, y)
		}, true)
	case pointer.OpRemainder:
		return evaluatePair(a.Operands, opts, "$remainder", func(x, y *big.Int) *big.Int {
			return new(big.Int).Rem(x, y)
		}, true)
	default:
		return nil, fmt.Errorf("unsupported arithmetic operator: %s", a.Op)
	}
}

// evaluateSum evaluates operands left to right; the identity for zero
// operands is 0. The result is padded to the widest operand.
func evaluateSum(operands pointer.Operands, opts Options) (data.Data, error) {
	sum := big.NewInt(0)
	maxLen := 0
	for _, expr := range operands {
		v, err := Evaluate(expr, opts)
		if err != nil {
			return nil, err
		}
		sum.Add(sum, v.AsUint())
		if len(v) > maxLen {
			maxLen = len(v)
		}
	}
	return data.FromInt(sum).PadUntilAtLeast(maxLen), nil
}

// evaluateProduct evaluates operands left to right; the identity for
// zero operands is 1.
func evaluateProduct(operands pointer.Operands, opts Options) (data.Data, error) {
	product := big.NewInt(1)
	maxLen := 0
	for _, expr := range operands {
		v, err := Evaluate(expr, opts)
		if err != nil {
			return nil, err
		}
		product.Mul(product, v.AsUint())
		if len(v) > maxLen {
			maxLen = len(v)
		}
	}
	return data.FromInt(product).PadUntilAtLeast(maxLen), nil
}

// evaluatePair handles the three binary operators: exactly two
// operands, evaluated left to right, result padded to the wider of the
// two, with an optional division-by-zero check on the second operand.
func evaluatePair(
	operands pointer.Operands,
	opts Options,
	opName string,
	apply func(a, b *big.Int) *big.Int,
	rejectZeroDivisor bool,
) (data.Data, error) {
	if len(operands) != 2 {
		return nil, ptrerr.NewInvalidArithmeticError(opName, len(operands))
	}
	a, err := Evaluate(operands[0], opts)
	if err != nil {
		return nil, err
	}
	b, err := Evaluate(operands[1], opts)
	if err != nil {
		return nil, err
	}
	aInt, bInt := a.AsUint(), b.AsUint()
	if rejectZeroDivisor && bInt.Sign() == 0 {
		return nil, ptrerr.NewDivisionByZeroError(opName)
	}
	result := apply(aInt, bInt)
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	return data.FromInt(result).PadUntilAtLeast(maxLen), nil
}

func evaluateResize(r pointer.Resize, opts Options) (data.Data, error) {
	size := r.Size
	if r.Kind == pointer.ResizeWordSized {
		size = wordSize
	} else if size <= 0 {
		return nil, ptrerr.NewInvalidResizeError(size)
	}
	v, err := Evaluate(r.Operand, opts)
	if err != nil {
		return nil, err
	}
	return v.ResizeTo(size), nil
}

func evaluateKeccak256(k pointer.Keccak256, opts Options) (data.Data, error) {
	preimage := data.Zero()
	for _, expr := range k.Operands {
		v, err := Evaluate(expr, opts)
		if err != nil {
			return nil, err
		}
		preimage = preimage.Concat(v)
	}
	h := sha3.NewLegacyKeccak256()
	h.Write(preimage)
	return data.FromBytes(h.Sum(nil)), nil
}

func evaluateLookup(l pointer.Lookup, opts Options) (data.Data, error) {
	region, ok := opts.Regions.Lookup(l.Reference)
	if !ok {
		return nil, ptrerr.NewRegionNotFoundError(l.Reference.Identifier())
	}
	field := region.Property(l.Property)
	if !field.IsResolved() {
		return nil, ptrerr.NewPropertyAbsentError(l.Reference.Identifier(), string(l.Property))
	}
	return field.Value, nil
}

func evaluateRead(r pointer.Read, opts Options) (data.Data, error) {
	region, ok := opts.Regions.Lookup(r.Reference)
	if !ok {
		return nil, ptrerr.NewRegionNotFoundError(r.Reference.Identifier())
	}
	return read.Read(region, opts.State)
}
