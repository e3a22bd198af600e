package gen

import (
	"fmt"
	"strings"

	"github.com/kestrelvm/opgen/internal/ir"
)

// cloneMethod emits the routine that decodes one encoded op from a source
// stream and re-encodes an equivalent op into a destination stream:
//
//	func (c *OpCloner) cloneGuardShape(r *OpReader, w *OpWriter) {
//		w.writeOp(OpGuardShape)
//		objID := r.ObjOperandID()
//		w.writeOperandID(objID)
//		shapeOffset := r.StubOffset()
//		shape := c.getShapeField(shapeOffset)
//		w.writeShapeField(shape)
//		w.assertLengthMatches(OpGuardShape)
//	}
//
// Two rewrites happen during the copy: a RawID argument is normalized to
// ValID in the destination stream, and stub-field arguments are resolved
// against live backing data so the clone carries the concrete value
// rather than the source stub's offset. A result argument advances the
// destination writer's operand allocator before the id is copied, keeping
// the two allocators in step.
func cloneMethod(reg *ir.Registry, op *ir.OpDef) (Fragment, error) {
	var body strings.Builder

	for _, arg := range op.Args {
		tag := arg.Type
		if tag == "RawID" {
			tag = "ValID"
		}
		t, ok := reg.Lookup(tag)
		if !ok {
			return Fragment{}, fmt.Errorf("op %s: unknown argument type %q", op.Name, tag)
		}

		readVar := argVar(arg.Name, t.VarSuffix)
		fmt.Fprintf(&body, "\t%s := %s\n", readVar, t.ReadExpr)

		if arg.Name == ir.ResultArg {
			body.WriteString("\tw.newOperandID()\n")
		}

		writeVar := readVar
		if t.IsField() {
			writeVar = camel(arg.Name)
			fmt.Fprintf(&body, "\t%s := c.%s(%s)\n", writeVar, t.FieldGetter, readVar)
		} else if t.ReadType != t.NativeType {
			// ByteImm decodes as uint8 but its writer method takes uint32.
			writeVar = fmt.Sprintf("%s(%s)", t.NativeType, readVar)
		}
		fmt.Fprintf(&body, "\tw.%s(%s)\n", t.WriteMethod, writeVar)
	}

	var code strings.Builder
	fmt.Fprintf(&code, "func (c *OpCloner) clone%s(r *OpReader, w *OpWriter) {\n", op.Name)
	fmt.Fprintf(&code, "\tw.writeOp(Op%s)\n", op.Name)
	code.WriteString(body.String())
	fmt.Fprintf(&code, "\tw.assertLengthMatches(Op%s)\n", op.Name)
	code.WriteString("}\n")

	return Fragment{Op: op.Name, Code: code.String()}, nil
}
