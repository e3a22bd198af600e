// Package gen turns an ordered op list into the generated instruction
// codec artifact for the Kestrel VM.
//
// Five independent per-op generators (writer, dispatch, transpile
// forwarding, spewer, clone) fan out over the op list, each consuming only the
// op definition and the shared read-only type registry. Their outputs are
// structured fragments collected into an Artifact, and a final rendering
// step serializes the artifact into one Go source document with a
// generated-code banner. Tests assert on the structured fragments, not on
// rendered text layout.
//
// Cross-generator invariant: for every op, the argument decode order in
// dispatch, spewer, and clone fragments is identical, argument for
// argument, to the writer's encode order. That byte alignment is what
// keeps all generated consumers mutually compatible.
package gen
