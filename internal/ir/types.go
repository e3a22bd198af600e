package ir

import (
	"fmt"
	"math"
)

// ResultArg is the distinguished pseudo-argument name. An argument named
// "result" denotes an output operand identifier allocated by the generated
// encoder rather than supplied by the caller. At most one argument per op
// may use it.
const ResultArg = "result"

// DefaultCostEstimate is assigned to ops whose schema record omits
// cost_estimate. Unscored ops sort after every scored op.
const DefaultCostEstimate = uint32(math.MaxUint32)

// Arg is a single named, typed argument of an op. Order of Arg values
// within OpDef.Args is load-bearing: it is the wire layout.
type Arg struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// OpDef represents one instruction definition from the schema.
type OpDef struct {
	// Name uniquely identifies the op across the schema (UpperCamelCase).
	Name string `json:"name"`

	// Args is the ordered argument list. Never reordered after parse.
	Args []Arg `json:"args"`

	// Shared marks the decode handler as reusable verbatim by every
	// consumer; unshared ops need a consumer-specific implementation.
	Shared bool `json:"shared"`

	// Transpile marks the op as supported by the fast-path transpiler
	// backend. Transpile ops appear in the transpile method block and in
	// the transpile op list.
	Transpile bool `json:"transpile"`

	// CostEstimate orders ops by expected execution cost. Defaults to
	// DefaultCostEstimate when the schema omits it.
	CostEstimate uint32 `json:"cost_estimate"`

	// CustomWriter makes the generated encoder method unexported. A
	// hand-written exported wrapper in the consuming package performs
	// pre/post-processing the schema cannot express.
	CustomWriter bool `json:"custom_writer"`

	// Line is the op record's line in the expanded schema source, kept
	// for diagnostics.
	Line int `json:"line,omitempty"`
}

// HasResult reports whether the op declares the result pseudo-argument.
func (op *OpDef) HasResult() bool {
	for _, a := range op.Args {
		if a.Name == ResultArg {
			return true
		}
	}
	return false
}

// WireLength returns the Go expression for the op's encoded argument
// length in bytes: the " + "-joined widths of its arguments in declaration
// order, or "0" for a zero-argument op. The same expression is recorded in
// the generated op table and asserted by the generated encoder.
func (r *Registry) WireLength(op *OpDef) (string, error) {
	if len(op.Args) == 0 {
		return "0", nil
	}
	expr := ""
	for i, a := range op.Args {
		t, ok := r.Lookup(a.Type)
		if !ok {
			return "", fmt.Errorf("op %s: unknown argument type %q", op.Name, a.Type)
		}
		if i > 0 {
			expr += " + "
		}
		expr += t.WidthString()
	}
	return expr, nil
}
