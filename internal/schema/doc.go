// Package schema loads the instruction schema into ordered op definitions.
//
// Loading is a three-stage pipeline, each stage testable on its own:
//
//  1. Preprocess: textual conditional expansion. Configuration flags gate
//     inclusion of schema fragments (#ifdef/#ifndef/#else/#endif) and
//     @NAME@ substitutions are resolved. Purely line-oriented; knows
//     nothing about YAML.
//  2. Parse: the expanded text is decoded with the yaml.v3 Node API so
//     that op declaration order and argument order survive. Structural
//     shape of each record is checked against an embedded CUE definition.
//  3. Validate: every referenced argument type must exist in the type
//     registry, at most one argument may be the result pseudo-argument,
//     and op names must be unique (checked as a second pass so the error
//     can name both occurrences).
//
// Any failure aborts the run before generation; there is no partial
// emission mode.
package schema
