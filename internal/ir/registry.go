package ir

import (
	"sort"
	"strconv"
)

// PtrWidthExpr is the symbolic wire width used by pointer-sized immediates.
// The generated artifact expects the target package to define the ptrWidth
// constant; the op table records the expression verbatim.
const PtrWidthExpr = "ptrWidth"

// ArgType describes everything the generators need to know about one
// semantic argument type: its wire width, how the generated writer encodes
// it, how the generated reader decodes it, and how the spewer prints it.
// Centralizing this in one entry keeps the five generated consumers from
// silently diverging; adding a new argument type is a single entry here.
type ArgType struct {
	// Width is the encoded size in bytes. -1 means the width is the
	// symbolic expression in WidthExpr.
	Width int

	// WidthExpr is the symbolic width expression, e.g. PtrWidthExpr.
	// Empty for fixed-width types.
	WidthExpr string

	// NativeType is the argument's type in generated writer method
	// signatures (and clone intermediates for stub fields).
	NativeType string

	// WriteMethod is the OpWriter method the generated encoder calls.
	WriteMethod string

	// ReadType is the decoded value's type in dispatch, spewer, and clone
	// fragments. For stub fields this is the raw uint32 offset, not the
	// resolved value.
	ReadType string

	// ReadExpr is the OpReader expression that decodes one value of this
	// type from the instruction stream.
	ReadExpr string

	// VarSuffix is appended to argument names in decoded contexts:
	// "ID" for operand ids, "Offset" for stub fields, "" for immediates.
	VarSuffix string

	// SpewMethod is the OpSpewer method that prints a decoded value.
	SpewMethod string

	// OperandID marks general value-operand identifier types. The writer
	// allocates fresh ids for result arguments of these types, and the
	// cloner keeps the destination allocator in sync.
	OperandID bool

	// FieldGetter names the cloner accessor that resolves a stub-field
	// offset against live backing data. Empty for non-field types.
	FieldGetter string
}

// IsField reports whether the type is a stub-field reference, decoded as
// an offset and resolved by value during cloning.
func (t ArgType) IsField() bool {
	return t.FieldGetter != ""
}

// WidthString returns the width as a Go expression fragment.
func (t ArgType) WidthString() string {
	if t.WidthExpr != "" {
		return t.WidthExpr
	}
	return strconv.Itoa(t.Width)
}

// Registry is the immutable argument-type table. It is constructed once
// per generation run by NewRegistry and shared read-only by all
// generators.
type Registry struct {
	types map[string]ArgType
	names []string
}

// Lookup returns the entry for an argument-type tag.
func (r *Registry) Lookup(tag string) (ArgType, bool) {
	t, ok := r.types[tag]
	return t, ok
}

// Names returns all registered type tags in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// NewTestRegistry builds a registry from explicit entries. Intended for
// tests that need a reduced or synthetic type table.
func NewTestRegistry(entries map[string]ArgType) *Registry {
	names := make([]string, 0, len(entries))
	for tag := range entries {
		names = append(names, tag)
	}
	sort.Strings(names)
	types := make(map[string]ArgType, len(entries))
	for tag, t := range entries {
		types[tag] = t
	}
	return &Registry{types: types, names: names}
}

// namedType pairs a tag with its entry so registration order is explicit.
type namedType struct {
	tag string
	typ ArgType
}

func operandID(tag, native, readExpr string) namedType {
	return namedType{tag, ArgType{
		Width:       1,
		NativeType:  native,
		WriteMethod: "writeOperandID",
		ReadType:    native,
		ReadExpr:    readExpr,
		VarSuffix:   "ID",
		SpewMethod:  "spewOperandID",
		OperandID:   true,
	}}
}

func stubField(tag, native, writeMethod, getter string) namedType {
	return namedType{tag, ArgType{
		Width:       1,
		NativeType:  native,
		WriteMethod: writeMethod,
		ReadType:    "uint32",
		ReadExpr:    "r.StubOffset()",
		VarSuffix:   "Offset",
		SpewMethod:  "spewField",
		FieldGetter: getter,
	}}
}

func immediate(tag string, width int, native, writeMethod, readExpr, spewMethod string) namedType {
	return namedType{tag, ArgType{
		Width:       width,
		NativeType:  native,
		WriteMethod: writeMethod,
		ReadType:    native,
		ReadExpr:    readExpr,
		SpewMethod:  spewMethod,
	}}
}

// NewRegistry builds the Kestrel argument-type table. The table is static
// data; nothing is computed at registration time.
func NewRegistry() *Registry {
	entries := []namedType{
		// Operand identifiers: one byte each, allocated monotonically by
		// the encoder.
		operandID("ValID", "ValOperandID", "r.ValOperandID()"),
		operandID("ObjID", "ObjOperandID", "r.ObjOperandID()"),
		operandID("StrID", "StrOperandID", "r.StrOperandID()"),
		operandID("SymID", "SymOperandID", "r.SymOperandID()"),
		operandID("BoolID", "BoolOperandID", "r.BoolOperandID()"),
		operandID("Int32ID", "Int32OperandID", "r.Int32OperandID()"),
		operandID("NumID", "NumOperandID", "r.NumOperandID()"),
		operandID("BigIntID", "BigIntOperandID", "r.BigIntOperandID()"),
		operandID("TagID", "TagOperandID", "r.TagOperandID()"),
		operandID("IntPtrID", "IntPtrOperandID", "r.IntPtrOperandID()"),

		// RawID is an untyped operand id. The cloner normalizes it to
		// ValID when rewriting a stream.
		{"RawID", ArgType{
			Width:       1,
			NativeType:  "OperandID",
			WriteMethod: "writeOperandID",
			ReadType:    "OperandID",
			ReadExpr:    "r.RawOperandID()",
			VarSuffix:   "ID",
			SpewMethod:  "spewRawOperandID",
			OperandID:   true,
		}},

		// Stub fields: encoded as a one-byte offset into the stub's data,
		// resolved against live backing data during cloning.
		stubField("ShapeField", "*Shape", "writeShapeField", "getShapeField"),
		stubField("GetterSetterField", "*GetterSetter", "writeGetterSetterField", "getGetterSetterField"),
		stubField("ObjectField", "*Object", "writeObjectField", "getObjectField"),
		stubField("StringField", "*Str", "writeStringField", "getStringField"),
		stubField("AtomField", "*Atom", "writeAtomField", "getAtomField"),
		stubField("NameField", "*PropName", "writeNameField", "getNameField"),
		stubField("SymbolField", "*Sym", "writeSymbolField", "getSymbolField"),
		stubField("ScriptField", "*Script", "writeScriptField", "getScriptField"),
		stubField("RawInt32Field", "uint32", "writeRawInt32Field", "getRawInt32Field"),
		stubField("RawPointerField", "unsafe.Pointer", "writeRawPointerField", "getRawPointerField"),
		stubField("KeyField", "Key", "writeKeyField", "getKeyField"),
		stubField("ValueField", "Value", "writeValueField", "getValueField"),
		stubField("RawInt64Field", "uint64", "writeRawInt64Field", "getRawInt64Field"),

		// Immediates: encoded inline by value.
		immediate("OpcodeImm", 1, "Opcode", "writeOpcodeImm", "r.Opcode()", "spewOpcodeImm"),
		immediate("BoolImm", 1, "bool", "writeBoolImm", "r.Bool()", "spewBoolImm"),
		immediate("ClassKindImm", 1, "ClassKind", "writeClassKindImm", "r.ClassKind()", "spewClassKindImm"),
		immediate("ValueTypeImm", 1, "ValueType", "writeValueTypeImm", "r.ValueType()", "spewValueTypeImm"),
		immediate("MagicImm", 1, "WhyMagic", "writeMagicImm", "r.WhyMagic()", "spewMagicImm"),
		immediate("CallFlagsImm", 1, "CallFlags", "writeCallFlagsImm", "r.CallFlags()", "spewCallFlagsImm"),
		immediate("ScalarTypeImm", 1, "ScalarType", "writeScalarTypeImm", "r.ScalarType()", "spewScalarTypeImm"),
		immediate("MathFuncImm", 1, "UnaryMathFunc", "writeMathFuncImm", "r.UnaryMathFunc()", "spewMathFuncImm"),
		immediate("WasmValTypeImm", 1, "WasmValType", "writeWasmValTypeImm", "r.WasmValType()", "spewWasmValTypeImm"),
		immediate("AllocKindImm", 1, "AllocKind", "writeAllocKindImm", "r.AllocKind()", "spewAllocKindImm"),
		immediate("Int32Imm", 4, "int32", "writeInt32Imm", "r.Int32Imm()", "spewInt32Imm"),
		immediate("UInt32Imm", 4, "uint32", "writeUInt32Imm", "r.UInt32Imm()", "spewUInt32Imm"),

		// ByteImm takes uint32 in the writer to enable fits-in-byte
		// asserts, but decodes as uint8.
		{"ByteImm", ArgType{
			Width:       1,
			NativeType:  "uint32",
			WriteMethod: "writeByteImm",
			ReadType:    "uint8",
			ReadExpr:    "r.Byte()",
			SpewMethod:  "spewByteImm",
		}},

		// Pointer-sized immediates use the symbolic ptrWidth expression.
		{"NativeImm", ArgType{
			Width:       -1,
			WidthExpr:   PtrWidthExpr,
			NativeType:  "NativeFunc",
			WriteMethod: "writeNativeImm",
			ReadType:    "NativeFunc",
			ReadExpr:    "NativeFunc(r.Pointer())",
			SpewMethod:  "spewNativeImm",
		}},
		{"StaticStringImm", ArgType{
			Width:       -1,
			WidthExpr:   PtrWidthExpr,
			NativeType:  "string",
			WriteMethod: "writeStaticStringImm",
			ReadType:    "string",
			ReadExpr:    "r.StaticString()",
			SpewMethod:  "spewStaticStringImm",
		}},
	}

	types := make(map[string]ArgType, len(entries))
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		types[e.tag] = e.typ
		names = append(names, e.tag)
	}
	return &Registry{types: types, names: names}
}
