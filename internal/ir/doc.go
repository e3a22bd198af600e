// Package ir provides the foundational types for the opgen pipeline: the
// op definitions parsed from the instruction schema and the immutable
// argument-type registry consumed by every generator.
//
// This package contains type definitions and static registry data only.
// All other internal packages import ir; ir imports nothing internal. This
// ensures IR remains the foundational layer with no circular dependencies.
//
// Key design constraints:
//   - OpDef.Args is an ordered slice, never a map. Argument order fixes both
//     the byte layout of the encoded instruction and the parameter order of
//     every generated method, so it is a hard correctness invariant shared
//     by all five generators.
//   - The registry is built once and never mutated. Generators receive it
//     explicitly as a parameter so tests can substitute a reduced registry.
package ir
