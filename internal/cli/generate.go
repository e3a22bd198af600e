package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kestrelvm/opgen/internal/gen"
	"github.com/kestrelvm/opgen/internal/ir"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	Output    string   // output file path; stdout when empty
	Package   string   // package clause of the generated artifact
	Defines   []string // NAME[=VALUE] configuration flags
	FlagsFile string   // YAML string map of configuration flags
}

// GenerationStats holds summary statistics for a generation run.
type GenerationStats struct {
	Ops       int    `json:"ops"`
	Shared    int    `json:"shared"`
	Unshared  int    `json:"unshared"`
	Transpile int    `json:"transpile"`
	Bytes     int    `json:"bytes"`
	Output    string `json:"output,omitempty"`
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate <schema.yaml>",
		Short: "Generate the instruction codec artifact from an op schema",
		Long: `Generate the instruction codec artifact from a declarative op schema.

The schema is preprocessed against the active configuration flags, parsed
into ordered op definitions, and projected into the op table, encoder,
dispatchers, transpiler stubs, spewer, and cloner blocks of one generated
source file. Validation failures abort before anything is written.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path (stdout if omitted)")
	cmd.Flags().StringVar(&opts.Package, "pkg", "vmops", "package name for the generated artifact")
	cmd.Flags().StringArrayVarP(&opts.Defines, "define", "D", nil, "configuration flag NAME[=VALUE] (repeatable)")
	cmd.Flags().StringVar(&opts.FlagsFile, "flags-file", "", "YAML file of configuration flags")

	return cmd
}

func runGenerate(opts *GenerateOptions, schemaPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
		TraceID:   NewTraceID(),
	}
	// When the artifact itself goes to stdout, the summary moves to
	// stderr so the generated source stays clean.
	if opts.Output == "" {
		formatter.Writer = cmd.ErrOrStderr()
	}

	formatter.VerboseLog("trace %s: generating from %s", formatter.TraceID, schemaPath)

	flags, err := CollectFlags(opts.FlagsFile, opts.Defines)
	if err != nil {
		return outputSchemaError(formatter, err)
	}

	reg := ir.NewRegistry()
	ops, err := LoadOps(schemaPath, flags, reg)
	if err != nil {
		return outputSchemaError(formatter, err)
	}
	formatter.VerboseLog("loaded %d op(s) from %s", len(ops), schemaPath)

	artifact, err := gen.Generate(reg, ops, opts.Package)
	if err != nil {
		return outputSchemaError(formatter, err)
	}
	rendered := gen.Render(artifact)

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, rendered, 0644); err != nil {
			wrapped := WrapExitError(ExitCommandError, fmt.Sprintf("%s: writing output", ErrCodeWriteFailed), err)
			_ = formatter.Error(ErrCodeWriteFailed, wrapped.Error(), nil)
			return wrapped
		}
	} else {
		if _, err := cmd.OutOrStdout().Write(rendered); err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("%s: writing output", ErrCodeWriteFailed), err)
		}
	}

	stats := GenerationStats{
		Ops:       len(ops),
		Shared:    len(artifact.SharedDispatch),
		Unshared:  len(artifact.UnsharedDispatch),
		Transpile: len(artifact.Transpile),
		Bytes:     len(rendered),
		Output:    opts.Output,
	}
	return outputGenerateSuccess(formatter, stats)
}

// outputGenerateSuccess outputs generation results.
func outputGenerateSuccess(formatter *OutputFormatter, stats GenerationStats) error {
	if formatter.Format == "json" {
		return formatter.Success(stats)
	}

	dest := stats.Output
	if dest == "" {
		dest = "stdout"
	}
	fmt.Fprintf(formatter.Writer, "✓ Generated %d op(s) (%d shared, %d unshared, %d transpile) → %s\n",
		stats.Ops, stats.Shared, stats.Unshared, stats.Transpile, dest)
	return nil
}
