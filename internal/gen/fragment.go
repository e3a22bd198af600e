package gen

// Fragment is one generator's output for a single op: a self-contained
// piece of Go source. Fragments keep their op name so tests and the
// assembler can address them without parsing generated text.
type Fragment struct {
	Op   string
	Code string
}

// DispatchFragment pairs the abstract handler signature with the
// trampoline that decodes arguments and forwards to it. The signature
// lines are collected into an interface block; the trampolines are
// emitted as standalone functions.
type DispatchFragment struct {
	Op        string
	Signature string // interface method declaration
	Code      string // trampoline function
}

// TableEntry is one row of the generated op table: the op's name, the
// wire-length expression for its arguments, whether the transpiler
// supports it, and its cost estimate.
type TableEntry struct {
	Op         string
	LengthExpr string
	Transpile  bool
	Cost       uint32
}

// Artifact collects every generator's fragments in schema declaration
// order. It is the structured intermediate between generation and
// rendering; Render serializes it into the final document.
type Artifact struct {
	Package string

	Table            []TableEntry
	Writer           []Fragment
	SharedDispatch   []DispatchFragment
	UnsharedDispatch []DispatchFragment
	Transpile        []DispatchFragment
	TranspileOps     []string
	Spewer           []Fragment
	Clone            []Fragment

	// NeedsUnsafe is set when any fragment references unsafe.Pointer, so
	// the rendered document imports "unsafe" only when required.
	NeedsUnsafe bool
}
