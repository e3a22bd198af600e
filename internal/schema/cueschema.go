package schema

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

// opSchema is the structural contract for one op record. The loader
// unifies every parsed record with #Op before building an OpDef, so shape
// errors (missing fields, wrong types, bad names) surface with CUE's
// constraint messages instead of ad hoc checks scattered through the
// loader.
const opSchema = `
#Op: {
	name:           string & =~"^[A-Z][A-Za-z0-9]*$"
	shared:         bool
	transpile:      bool
	cost_estimate?: int & >=0 & <=4294967295
	custom_writer?: bool
	args:           null | {[string]: string}
}
`

// recordValidator validates parsed records against the embedded #Op
// definition. Built once per load; the compiled CUE value is reused for
// every record.
type recordValidator struct {
	ctx *cue.Context
	def cue.Value
}

func newRecordValidator() (*recordValidator, error) {
	ctx := cuecontext.New()
	v := ctx.CompileString(opSchema)
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("compiling op schema: %w", err)
	}
	def := v.LookupPath(cue.ParsePath("#Op"))
	if err := def.Err(); err != nil {
		return nil, fmt.Errorf("resolving #Op definition: %w", err)
	}
	return &recordValidator{ctx: ctx, def: def}, nil
}

// validate unifies one record with #Op and reports the first constraint
// violation. The record is a plain map; argument order is irrelevant here
// and is preserved separately by the node walk in the loader.
func (rv *recordValidator) validate(record map[string]any) error {
	val := rv.ctx.Encode(record)
	if err := val.Err(); err != nil {
		return formatCUEError(err)
	}
	unified := rv.def.Unify(val)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return formatCUEError(err)
	}
	return nil
}

// formatCUEError flattens a CUE error list into its first message.
func formatCUEError(err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	return fmt.Errorf("%s", errs[0].Error())
}
