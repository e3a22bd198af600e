package schema

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kestrelvm/opgen/internal/ir"
)

// Load parses preprocessed schema text into the ordered op list. The
// yaml.v3 node API is used instead of plain unmarshaling because both the
// op sequence and each op's argument mapping must preserve declaration
// order; a map-typed decode would destroy the wire layout.
//
// Every record is checked against the embedded CUE definition, every
// referenced argument type against the registry, and op names for
// uniqueness. The first error aborts the load.
func Load(src string, reg *ir.Registry) ([]ir.OpDef, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(src), &doc); err != nil {
		return nil, &SchemaError{
			Code:    ErrMalformedSchema,
			Field:   "schema",
			Message: fmt.Sprintf("parsing YAML: %v", err),
		}
	}
	if len(doc.Content) == 0 {
		return nil, &SchemaError{
			Code:    ErrMalformedSchema,
			Field:   "schema",
			Message: "schema defines no ops",
		}
	}

	root := doc.Content[0]
	if root.Kind != yaml.SequenceNode {
		return nil, &SchemaError{
			Code:    ErrMalformedSchema,
			Field:   "schema",
			Message: "schema document must be a sequence of op records",
			Line:    root.Line,
		}
	}
	// An empty sequence would generate an op table with no ops, which is
	// not valid Go.
	if len(root.Content) == 0 {
		return nil, &SchemaError{
			Code:    ErrMalformedSchema,
			Field:   "schema",
			Message: "schema defines no ops",
			Line:    root.Line,
		}
	}

	rv, err := newRecordValidator()
	if err != nil {
		return nil, err
	}

	ops := make([]ir.OpDef, 0, len(root.Content))
	for _, item := range root.Content {
		op, err := parseRecord(item, rv, reg)
		if err != nil {
			return nil, err
		}
		ops = append(ops, *op)
	}

	// Uniqueness is a second pass over the full parse so the error can
	// reference both occurrences.
	byName := make(map[string]*ir.OpDef, len(ops))
	for i := range ops {
		op := &ops[i]
		if prev, ok := byName[op.Name]; ok {
			return nil, &SchemaError{
				Code:  ErrDuplicateOp,
				Field: "name",
				Message: fmt.Sprintf("duplicate op name %q, first declared at line %d",
					op.Name, prev.Line),
				Line: op.Line,
			}
		}
		byName[op.Name] = op
	}

	return ops, nil
}

// parseRecord builds one OpDef from a mapping node. Field keys are
// strict: a key outside the op schema is an error, not ignored, so typos
// cannot silently drop a flag.
func parseRecord(node *yaml.Node, rv *recordValidator, reg *ir.Registry) (*ir.OpDef, error) {
	if node.Kind != yaml.MappingNode {
		return nil, &SchemaError{
			Code:    ErrMalformedSchema,
			Field:   "schema",
			Message: "op record must be a mapping",
			Line:    node.Line,
		}
	}

	op := &ir.OpDef{
		CostEstimate: ir.DefaultCostEstimate,
		Line:         node.Line,
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		switch key.Value {
		case "name":
			op.Name = val.Value
		case "shared":
			if err := val.Decode(&op.Shared); err != nil {
				return nil, decodeError("shared", val, err)
			}
		case "transpile":
			if err := val.Decode(&op.Transpile); err != nil {
				return nil, decodeError("transpile", val, err)
			}
		case "cost_estimate":
			if err := val.Decode(&op.CostEstimate); err != nil {
				return nil, decodeError("cost_estimate", val, err)
			}
		case "custom_writer":
			if err := val.Decode(&op.CustomWriter); err != nil {
				return nil, decodeError("custom_writer", val, err)
			}
		case "args":
			if val.Tag == "!!null" {
				continue
			}
			if val.Kind != yaml.MappingNode {
				return nil, &SchemaError{
					Code:    ErrInvalidField,
					Field:   "args",
					Message: "args must be a mapping of argument name to type, or null",
					Line:    val.Line,
				}
			}
			for j := 0; j+1 < len(val.Content); j += 2 {
				op.Args = append(op.Args, ir.Arg{
					Name: val.Content[j].Value,
					Type: val.Content[j+1].Value,
				})
			}
		default:
			return nil, &SchemaError{
				Code:    ErrUnknownField,
				Field:   key.Value,
				Message: fmt.Sprintf("unknown field %q in op record", key.Value),
				Line:    key.Line,
			}
		}
	}

	// Structural shape per the CUE definition: required fields present,
	// types correct, name well formed, cost in range.
	var record map[string]any
	if err := node.Decode(&record); err != nil {
		return nil, decodeError("record", node, err)
	}
	if err := rv.validate(record); err != nil {
		code := ErrInvalidField
		if strings.Contains(err.Error(), "incomplete") {
			code = ErrMissingField
		}
		return nil, &SchemaError{
			Code:    code,
			Field:   op.Name,
			Message: err.Error(),
			Line:    node.Line,
		}
	}

	// Semantic checks the CUE shape cannot express: registry membership
	// and result pseudo-argument discipline.
	results := 0
	for _, a := range op.Args {
		t, ok := reg.Lookup(a.Type)
		if !ok {
			return nil, &UnknownArgTypeError{
				Op:   op.Name,
				Arg:  a.Name,
				Type: a.Type,
				Line: op.Line,
			}
		}
		if a.Name == ir.ResultArg {
			results++
			if !t.OperandID {
				return nil, &SchemaError{
					Code:    ErrInvalidResult,
					Field:   "args.result",
					Message: fmt.Sprintf("op %s: result argument must be an operand-id type, got %q", op.Name, a.Type),
					Line:    op.Line,
				}
			}
		}
	}
	if results > 1 {
		return nil, &SchemaError{
			Code:    ErrInvalidResult,
			Field:   "args.result",
			Message: fmt.Sprintf("op %s: at most one result argument is allowed", op.Name),
			Line:    op.Line,
		}
	}

	return op, nil
}

// decodeError wraps a yaml decode failure into a SchemaError.
func decodeError(field string, node *yaml.Node, err error) *SchemaError {
	return &SchemaError{
		Code:    ErrInvalidField,
		Field:   field,
		Message: fmt.Sprintf("decoding %s: %v", field, err),
		Line:    node.Line,
	}
}
