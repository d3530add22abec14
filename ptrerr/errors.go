// Package ptrerr defines the typed error taxonomy raised by the pointer
// evaluation engine (package evaluate, resolve and dereference). Every
// error carries enough context — the offending identifier, expression
// variant, or region name — to be diagnosable without re-running the
// dereference, per the engine's error handling policy: no retries, no
// silent recovery except the resolver's internal property-absent catch.
package ptrerr

import "fmt"

// InvalidPointerError reports an AST node with no registered dispatch,
// typically a forward-incompatible schema addition.
type InvalidPointerError struct {
	Variant string
}

func NewInvalidPointerError(variant string) *InvalidPointerError {
	return &InvalidPointerError{Variant: variant}
}

func (e *InvalidPointerError) Error() string {
	return fmt.Sprintf("invalid pointer: unsupported variant %q", e.Variant)
}

// UnknownVariableError reports a Variable expression referencing an
// identifier absent from the current variable environment.
type UnknownVariableError struct {
	Identifier string
}

func NewUnknownVariableError(identifier string) *UnknownVariableError {
	return &UnknownVariableError{Identifier: identifier}
}

func (e *UnknownVariableError) Error() string {
	return fmt.Sprintf("unknown variable: %s", e.Identifier)
}

// UnknownTemplateError reports a Reference pointer naming a template
// absent from the templates map passed into Dereference.
type UnknownTemplateError struct {
	Name string
}

func NewUnknownTemplateError(name string) *UnknownTemplateError {
	return &UnknownTemplateError{Name: name}
}

func (e *UnknownTemplateError) Error() string {
	return fmt.Sprintf("unknown pointer template named %s", e.Name)
}

// MissingTemplateVariablesError reports a Reference expansion whose
// template expects variables not yet bound in the current scope.
type MissingTemplateVariablesError struct {
	Template string
	Missing  []string
}

func NewMissingTemplateVariablesError(template string, missing []string) *MissingTemplateVariablesError {
	return &MissingTemplateVariablesError{Template: template, Missing: missing}
}

func (e *MissingTemplateVariablesError) Error() string {
	return fmt.Sprintf(
		"invalid reference to template named %s; missing expected variables with identifiers: %s. "+
			"please ensure these variables are defined prior to this reference",
		e.Template, joinComma(e.Missing),
	)
}

// RegionNotFoundError reports a Lookup or Read expression referencing a
// name absent from the regions index.
type RegionNotFoundError struct {
	Name string
}

func NewRegionNotFoundError(name string) *RegionNotFoundError {
	return &RegionNotFoundError{Name: name}
}

func (e *RegionNotFoundError) Error() string {
	return fmt.Sprintf("region not found: %s", e.Name)
}

// PropertyAbsentError reports a Lookup referencing a region property
// that is absent from the schema or not yet resolved to Data. Raised
// during normal evaluation; caught internally by package resolve's
// fixed-point loop as the cycle-detection hook, and surfaced to the
// caller only when it escapes that loop.
type PropertyAbsentError struct {
	Region   string
	Property string
}

func NewPropertyAbsentError(region, property string) *PropertyAbsentError {
	return &PropertyAbsentError{Region: region, Property: property}
}

func (e *PropertyAbsentError) Error() string {
	return fmt.Sprintf("region named %s does not have %s needed by lookup", e.Region, e.Property)
}

// CircularReferenceError reports a region resolver that reached a
// non-terminal fixed point: the $this-dependent fields stopped
// changing shape before every field resolved to Data.
type CircularReferenceError struct {
	Region string
}

func NewCircularReferenceError(region string) *CircularReferenceError {
	return &CircularReferenceError{Region: region}
}

func (e *CircularReferenceError) Error() string {
	name := e.Region
	if name == "" {
		name = "<unnamed>"
	}
	return fmt.Sprintf("region %s could not be fully evaluated", name)
}

// InvalidArithmeticError reports a $difference/$quotient/$remainder
// expression with an operand count other than two.
type InvalidArithmeticError struct {
	Operator string
	Count    int
}

func NewInvalidArithmeticError(operator string, count int) *InvalidArithmeticError {
	return &InvalidArithmeticError{Operator: operator, Count: count}
}

func (e *InvalidArithmeticError) Error() string {
	return fmt.Sprintf("%s operation requires exactly 2 operands, got %d", e.Operator, e.Count)
}

// DivisionByZeroError reports a $quotient or $remainder whose second
// operand evaluated to zero.
type DivisionByZeroError struct {
	Operator string
}

func NewDivisionByZeroError(operator string) *DivisionByZeroError {
	return &DivisionByZeroError{Operator: operator}
}

func (e *DivisionByZeroError) Error() string {
	return fmt.Sprintf("division by zero in %s operation", e.Operator)
}

// InvalidResizeError reports a $sized<N> resize with N<=0.
type InvalidResizeError struct {
	Size int
}

func NewInvalidResizeError(size int) *InvalidResizeError {
	return &InvalidResizeError{Size: size}
}

func (e *InvalidResizeError) Error() string {
	return fmt.Sprintf("invalid resize size: %d", e.Size)
}

// InvalidHexError reports a Data.FromHex input missing the "0x" prefix
// or whose remaining characters do not decode as hex.
type InvalidHexError struct {
	Input string
}

func NewInvalidHexError(input string) *InvalidHexError {
	return &InvalidHexError{Input: input}
}

func (e *InvalidHexError) Error() string {
	return fmt.Sprintf("invalid hex string format %q: expected \"0x\" followed by hex digits", e.Input)
}

// InvalidRegionError reports a region whose location is not one of the
// seven recognized machine-state segments.
type InvalidRegionError struct {
	Location string
}

func NewInvalidRegionError(location string) *InvalidRegionError {
	return &InvalidRegionError{Location: location}
}

func (e *InvalidRegionError) Error() string {
	return fmt.Sprintf("invalid region location: %q", e.Location)
}

func joinComma(items []string) string {
	out := ""
	for i, s := range items {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}
