package gen

import (
	"fmt"
	"strings"
)

// Render serializes an Artifact into the single generated source
// document: banner, package clause, then the eight named blocks in fixed
// order: op table, writer, shared dispatch, unshared dispatch,
// transpile, transpile op list, spewer, clone. Rendering is pure
// concatenation of already-generated fragments; all per-op decisions were
// made by the generators.
func Render(a *Artifact) []byte {
	var b strings.Builder

	b.WriteString("// Code generated by opgen. DO NOT EDIT.\n")
	b.WriteString("//\n")
	b.WriteString("// Instruction codec blocks for the Kestrel inline-cache IR: op table,\n")
	b.WriteString("// encoder methods, decode dispatchers, transpiler forwarding, spewer,\n")
	b.WriteString("// and cloner. Every block is a projection of the same instruction\n")
	b.WriteString("// schema; regenerate with opgen instead of editing this file.\n\n")
	fmt.Fprintf(&b, "package %s\n", a.Package)
	if a.NeedsUnsafe {
		b.WriteString("\nimport \"unsafe\"\n")
	}

	section := func(title string) {
		fmt.Fprintf(&b, "\n// ---- %s ----\n\n", title)
	}

	section("Op table")
	b.WriteString("const (\n")
	for i, e := range a.Table {
		if i == 0 {
			fmt.Fprintf(&b, "\tOp%s OpCode = iota\n", e.Op)
		} else {
			fmt.Fprintf(&b, "\tOp%s\n", e.Op)
		}
	}
	b.WriteString("\n\tnumOps\n")
	b.WriteString(")\n\n")
	b.WriteString("// opInfo records each op's argument wire length, transpiler support,\n")
	b.WriteString("// and cost estimate, indexed by OpCode.\n")
	b.WriteString("var opInfo = [numOps]OpInfo{\n")
	for _, e := range a.Table {
		fmt.Fprintf(&b, "\t{Name: %q, ArgLength: %s, Transpile: %t, Cost: %d},\n",
			e.Op, e.LengthExpr, e.Transpile, e.Cost)
	}
	b.WriteString("}\n")

	section("Writer")
	writeFragments(&b, a.Writer)

	section("Shared dispatch")
	writeDispatchBlock(&b, sharedIface, a.SharedDispatch)

	section("Unshared dispatch")
	writeDispatchBlock(&b, unsharedIface, a.UnsharedDispatch)

	section("Transpile")
	writeDispatchBlock(&b, transpileIface, a.Transpile)

	section("Transpile op list")
	b.WriteString("// transpileOps lists the ops supported by the fast-path transpiler\n")
	b.WriteString("// backend.\n")
	b.WriteString("var transpileOps = []OpCode{\n")
	for _, name := range a.TranspileOps {
		fmt.Fprintf(&b, "\tOp%s,\n", name)
	}
	b.WriteString("}\n")

	section("Spewer")
	writeFragments(&b, a.Spewer)

	section("Clone")
	writeFragments(&b, a.Clone)

	return []byte(b.String())
}

// writeFragments joins per-op fragments with one blank line between them.
func writeFragments(b *strings.Builder, frags []Fragment) {
	for i, f := range frags {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(f.Code)
	}
}

// writeDispatchBlock renders the emitter interface followed by the
// trampoline functions.
func writeDispatchBlock(b *strings.Builder, iface string, frags []DispatchFragment) {
	fmt.Fprintf(b, "type %s interface {\n", iface)
	for _, f := range frags {
		fmt.Fprintf(b, "\t%s\n", f.Signature)
	}
	b.WriteString("}\n")
	for _, f := range frags {
		b.WriteString("\n")
		b.WriteString(f.Code)
	}
}
