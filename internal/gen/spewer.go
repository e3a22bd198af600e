package gen

import (
	"fmt"
	"strings"

	"github.com/kestrelvm/opgen/internal/ir"
)

// spewerMethod emits the diagnostic printer for one op. It decodes each
// argument with the same expressions, in the same order, as the dispatch
// trampoline and prints name/value pairs. The spewer must consume exactly
// as many bytes as the dispatcher or the cursor desynchronizes.
//
//	func (s *OpSpewer) spewGuardShape(r *OpReader) {
//		s.beginOp(OpGuardShape)
//		s.spewOperandID("objID", r.ObjOperandID())
//		s.argSeparator()
//		s.spewField("shapeOffset", r.StubOffset())
//		s.endOp()
//	}
func spewerMethod(reg *ir.Registry, op *ir.OpDef) (Fragment, error) {
	var code strings.Builder
	fmt.Fprintf(&code, "func (s *OpSpewer) spew%s(r *OpReader) {\n", op.Name)
	fmt.Fprintf(&code, "\ts.beginOp(Op%s)\n", op.Name)

	for i, arg := range op.Args {
		t, ok := reg.Lookup(arg.Type)
		if !ok {
			return Fragment{}, fmt.Errorf("op %s: unknown argument type %q", op.Name, arg.Type)
		}
		if i > 0 {
			code.WriteString("\ts.argSeparator()\n")
		}
		fmt.Fprintf(&code, "\ts.%s(%q, %s)\n", t.SpewMethod, argVar(arg.Name, t.VarSuffix), t.ReadExpr)
	}

	code.WriteString("\ts.endOp()\n")
	code.WriteString("}\n")

	return Fragment{Op: op.Name, Code: code.String()}, nil
}
