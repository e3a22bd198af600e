package gen

import (
	"strings"

	"github.com/kestrelvm/opgen/internal/ir"
)

// Emitter interface names in the generated artifact. Shared handlers are
// reusable verbatim by every consumer; unshared handlers need a
// consumer-specific implementation; the transpile set is the fast-path
// backend's subset.
const (
	sharedIface    = "SharedOpEmitter"
	unsharedIface  = "UnsharedOpEmitter"
	transpileIface = "TranspileOpEmitter"
)

// Generate fans the op list out over the five per-op generators and
// collects their fragments into an Artifact. Fragment order within each
// block tracks schema declaration order, so output is reproducible and
// diffs are stable. Any failure returns before an artifact exists; there
// is no partial result.
func Generate(reg *ir.Registry, ops []ir.OpDef, pkg string) (*Artifact, error) {
	a := &Artifact{Package: pkg}

	for i := range ops {
		op := &ops[i]

		length, err := reg.WireLength(op)
		if err != nil {
			return nil, err
		}
		a.Table = append(a.Table, TableEntry{
			Op:         op.Name,
			LengthExpr: length,
			Transpile:  op.Transpile,
			Cost:       op.CostEstimate,
		})

		w, err := writerMethod(reg, op)
		if err != nil {
			return nil, err
		}
		a.Writer = append(a.Writer, w)

		iface := unsharedIface
		if op.Shared {
			iface = sharedIface
		}
		d, err := dispatchMethod(reg, op, iface, "dispatch")
		if err != nil {
			return nil, err
		}
		if op.Shared {
			a.SharedDispatch = append(a.SharedDispatch, d)
		} else {
			a.UnsharedDispatch = append(a.UnsharedDispatch, d)
		}

		if op.Transpile {
			t, err := dispatchMethod(reg, op, transpileIface, "transpile")
			if err != nil {
				return nil, err
			}
			a.Transpile = append(a.Transpile, t)
			a.TranspileOps = append(a.TranspileOps, op.Name)
		}

		s, err := spewerMethod(reg, op)
		if err != nil {
			return nil, err
		}
		a.Spewer = append(a.Spewer, s)

		c, err := cloneMethod(reg, op)
		if err != nil {
			return nil, err
		}
		a.Clone = append(a.Clone, c)

		for _, arg := range op.Args {
			if t, ok := reg.Lookup(arg.Type); ok && strings.HasPrefix(t.NativeType, "unsafe.") {
				a.NeedsUnsafe = true
			}
		}
	}

	return a, nil
}
