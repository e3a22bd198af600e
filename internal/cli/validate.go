package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kestrelvm/opgen/internal/ir"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	Defines   []string
	FlagsFile string
}

// OpSummary is one validated op in the JSON payload.
type OpSummary struct {
	Name       string `json:"name"`
	Args       int    `json:"args"`
	WireLength string `json:"wire_length"`
	Shared     bool   `json:"shared"`
	Transpile  bool   `json:"transpile"`
}

// ValidationReport is the validate command's success payload.
type ValidationReport struct {
	Ops       []OpSummary `json:"ops"`
	Count     int         `json:"count"`
	Transpile int         `json:"transpile"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <schema.yaml>",
		Short: "Validate an op schema without generating output",
		Long: `Validate an op schema without generating output.

Runs the same preprocessing and loading pipeline as generate - conditional
expansion, structural checks, registry membership, duplicate detection -
and reports the resulting op list.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.Defines, "define", "D", nil, "configuration flag NAME[=VALUE] (repeatable)")
	cmd.Flags().StringVar(&opts.FlagsFile, "flags-file", "", "YAML file of configuration flags")

	return cmd
}

func runValidate(opts *ValidateOptions, schemaPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
		TraceID:   NewTraceID(),
	}

	flags, err := CollectFlags(opts.FlagsFile, opts.Defines)
	if err != nil {
		return outputSchemaError(formatter, err)
	}

	reg := ir.NewRegistry()
	ops, err := LoadOps(schemaPath, flags, reg)
	if err != nil {
		return outputSchemaError(formatter, err)
	}

	report := ValidationReport{Count: len(ops)}
	for i := range ops {
		op := &ops[i]
		length, err := reg.WireLength(op)
		if err != nil {
			return outputSchemaError(formatter, err)
		}
		if op.Transpile {
			report.Transpile++
		}
		report.Ops = append(report.Ops, OpSummary{
			Name:       op.Name,
			Args:       len(op.Args),
			WireLength: length,
			Shared:     op.Shared,
			Transpile:  op.Transpile,
		})
	}

	return outputValidateSuccess(formatter, report)
}

// outputValidateSuccess outputs the validation report.
func outputValidateSuccess(formatter *OutputFormatter, report ValidationReport) error {
	if formatter.Format == "json" {
		return formatter.Success(report)
	}

	fmt.Fprintf(formatter.Writer, "✓ Schema valid: %d op(s), %d transpile-eligible\n",
		report.Count, report.Transpile)

	if formatter.Verbose {
		fmt.Fprintln(formatter.Writer)
		for _, op := range report.Ops {
			kind := "unshared"
			if op.Shared {
				kind = "shared"
			}
			fmt.Fprintf(formatter.Writer, "  %s: %d arg(s), length %s, %s\n",
				op.Name, op.Args, op.WireLength, kind)
		}
	}
	return nil
}
