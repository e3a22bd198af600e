package gen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelvm/opgen/internal/ir"
)

func TestCloneMethodBasic(t *testing.T) {
	reg := ir.NewRegistry()
	op := &ir.OpDef{Name: "GuardShape", Args: []ir.Arg{
		{Name: "obj", Type: "ObjID"},
		{Name: "shape", Type: "ShapeField"},
	}}

	frag, err := cloneMethod(reg, op)
	require.NoError(t, err)

	assert.Contains(t, frag.Code, "func (c *OpCloner) cloneGuardShape(r *OpReader, w *OpWriter) {")
	assert.Contains(t, frag.Code, "w.writeOp(OpGuardShape)")
	assert.Contains(t, frag.Code, "objID := r.ObjOperandID()")
	assert.Contains(t, frag.Code, "w.writeOperandID(objID)")
	assert.Contains(t, frag.Code, "w.assertLengthMatches(OpGuardShape)")
}

func TestCloneMethodResolvesFields(t *testing.T) {
	// Stub fields are copied by value: the source offset is decoded,
	// resolved against live backing data, then re-encoded.
	reg := ir.NewRegistry()
	op := &ir.OpDef{Name: "GuardShape", Args: []ir.Arg{
		{Name: "shape", Type: "ShapeField"},
	}}

	frag, err := cloneMethod(reg, op)
	require.NoError(t, err)

	assert.Contains(t, frag.Code, "shapeOffset := r.StubOffset()")
	assert.Contains(t, frag.Code, "shape := c.getShapeField(shapeOffset)")
	assert.Contains(t, frag.Code, "w.writeShapeField(shape)")

	// Resolution happens between decode and re-encode.
	decode := strings.Index(frag.Code, "r.StubOffset()")
	resolve := strings.Index(frag.Code, "c.getShapeField")
	write := strings.Index(frag.Code, "w.writeShapeField")
	assert.Less(t, decode, resolve)
	assert.Less(t, resolve, write)
}

func TestCloneMethodNormalizesRawID(t *testing.T) {
	// A raw operand id in the source stream becomes a concrete value
	// operand in the clone.
	reg := ir.NewRegistry()
	op := &ir.OpDef{Name: "DupOperand", Args: []ir.Arg{
		{Name: "input", Type: "RawID"},
	}}

	frag, err := cloneMethod(reg, op)
	require.NoError(t, err)

	assert.Contains(t, frag.Code, "inputID := r.ValOperandID()")
	assert.NotContains(t, frag.Code, "RawOperandID")
	assert.Contains(t, frag.Code, "w.writeOperandID(inputID)")
}

func TestCloneMethodResultAdvancesAllocator(t *testing.T) {
	// Cloning a result op must advance the destination allocator so ids
	// allocated later stay in step with the source stream.
	reg := ir.NewRegistry()
	op := &ir.OpDef{Name: "LoadInt32Constant", Args: []ir.Arg{
		{Name: "result", Type: "Int32ID"},
		{Name: "imm", Type: "Int32Imm"},
	}}

	frag, err := cloneMethod(reg, op)
	require.NoError(t, err)

	assert.Contains(t, frag.Code, "resultID := r.Int32OperandID()")
	assert.Contains(t, frag.Code, "w.newOperandID()")
	assert.Contains(t, frag.Code, "w.writeOperandID(resultID)")

	alloc := strings.Index(frag.Code, "w.newOperandID()")
	write := strings.Index(frag.Code, "w.writeOperandID(resultID)")
	assert.Less(t, alloc, write)
}

func TestCloneMethodConvertsNarrowDecode(t *testing.T) {
	// ByteImm decodes as uint8 while the destination writer method takes
	// uint32; the copy must convert explicitly or it does not compile.
	reg := ir.NewRegistry()
	op := &ir.OpDef{Name: "GuardTagByte", Args: []ir.Arg{
		{Name: "tag", Type: "ByteImm"},
	}}

	frag, err := cloneMethod(reg, op)
	require.NoError(t, err)

	assert.Contains(t, frag.Code, "tag := r.Byte()")
	assert.Contains(t, frag.Code, "w.writeByteImm(uint32(tag))")
}

func TestCloneMethodZeroArgs(t *testing.T) {
	reg := ir.NewRegistry()
	op := &ir.OpDef{Name: "ReturnFromIC"}

	frag, err := cloneMethod(reg, op)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(frag.Code, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[1], "w.writeOp(OpReturnFromIC)")
	assert.Contains(t, lines[2], "w.assertLengthMatches(OpReturnFromIC)")
}
