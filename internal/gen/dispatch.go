package gen

import (
	"fmt"
	"strings"

	"github.com/kestrelvm/opgen/internal/ir"
)

// dispatchMethod emits the handler signature and decoding trampoline for
// one op. The signature is an interface method taking the op's arguments
// as natively typed decoded values; the trampoline reads each argument
// from the byte cursor in declaration order and forwards:
//
//	EmitGuardShape(objID ObjOperandID, shapeOffset uint32) error
//
//	func dispatchGuardShape(r *OpReader, e SharedOpEmitter) error {
//		objID := r.ObjOperandID()
//		shapeOffset := r.StubOffset()
//		return e.EmitGuardShape(objID, shapeOffset)
//	}
//
// A result pseudo-argument appears as an ordinary handler parameter: by
// dispatch time the writer has already materialized the id in the stream.
// funcPrefix distinguishes the plain dispatch trampolines from the
// transpile-only set, which forward to a different emitter interface.
func dispatchMethod(reg *ir.Registry, op *ir.OpDef, iface, funcPrefix string) (DispatchFragment, error) {
	var params []string
	var vars []string
	var body strings.Builder

	for _, arg := range op.Args {
		t, ok := reg.Lookup(arg.Type)
		if !ok {
			return DispatchFragment{}, fmt.Errorf("op %s: unknown argument type %q", op.Name, arg.Type)
		}
		v := argVar(arg.Name, t.VarSuffix)
		vars = append(vars, v)
		params = append(params, v+" "+t.ReadType)
		fmt.Fprintf(&body, "\t%s := %s\n", v, t.ReadExpr)
	}

	sig := fmt.Sprintf("Emit%s(%s) error", op.Name, strings.Join(params, ", "))

	var code strings.Builder
	fmt.Fprintf(&code, "func %s%s(r *OpReader, e %s) error {\n", funcPrefix, op.Name, iface)
	code.WriteString(body.String())
	fmt.Fprintf(&code, "\treturn e.Emit%s(%s)\n", op.Name, strings.Join(vars, ", "))
	code.WriteString("}\n")

	return DispatchFragment{Op: op.Name, Signature: sig, Code: code.String()}, nil
}
