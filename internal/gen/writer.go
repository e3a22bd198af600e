package gen

import (
	"fmt"
	"strings"

	"github.com/kestrelvm/opgen/internal/ir"
)

// writerMethod emits the encoder method for one op. The method writes the
// op tag, then each argument in declaration order, then asserts that the
// bytes written match the op table's wire length:
//
//	func (w *OpWriter) GuardShape(obj ObjOperandID, shape *Shape) {
//		w.writeOp(OpGuardShape)
//		w.writeOperandID(obj)
//		w.writeShapeField(shape)
//		w.assertLengthMatches(OpGuardShape)
//	}
//
// A result pseudo-argument is not a parameter: the method allocates a
// fresh operand id, writes it, and returns it. A custom-writer op gets an
// unexported method; the exported wrapper is hand-written in the
// consuming package.
func writerMethod(reg *ir.Registry, op *ir.OpDef) (Fragment, error) {
	method := op.Name
	if op.CustomWriter {
		method = lowerFirst(method)
	}

	var params []string
	var body strings.Builder
	retType := ""

	for _, arg := range op.Args {
		t, ok := reg.Lookup(arg.Type)
		if !ok {
			return Fragment{}, fmt.Errorf("op %s: unknown argument type %q", op.Name, arg.Type)
		}
		if arg.Name == ir.ResultArg {
			retType = t.NativeType
			fmt.Fprintf(&body, "\tresult := %s(w.newOperandID())\n", t.NativeType)
			body.WriteString("\tw.writeOperandID(result)\n")
			continue
		}
		v := camel(arg.Name)
		params = append(params, v+" "+t.NativeType)
		fmt.Fprintf(&body, "\tw.%s(%s)\n", t.WriteMethod, v)
	}

	var code strings.Builder
	ret := ""
	if retType != "" {
		ret = " " + retType
	}
	fmt.Fprintf(&code, "func (w *OpWriter) %s(%s)%s {\n", method, strings.Join(params, ", "), ret)
	fmt.Fprintf(&code, "\tw.writeOp(Op%s)\n", op.Name)
	code.WriteString(body.String())
	fmt.Fprintf(&code, "\tw.assertLengthMatches(Op%s)\n", op.Name)
	if retType != "" {
		code.WriteString("\treturn result\n")
	}
	code.WriteString("}\n")

	return Fragment{Op: op.Name, Code: code.String()}, nil
}
