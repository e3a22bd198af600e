package cli

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/kestrelvm/opgen/internal/ir"
	"github.com/kestrelvm/opgen/internal/schema"
)

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeReadFailed  = "E002" // Schema file unreadable
	ErrCodeWriteFailed = "E003" // Output file unwritable
	ErrCodeFlagsFile   = "E004" // Flags file unreadable or malformed
	ErrCodeDefine      = "E005" // Malformed --define

	// Schema failures
	ErrCodeSchema      = "E101" // Malformed record, duplicate op, preprocessor failure
	ErrCodeUnknownType = "E102" // Argument type absent from the registry
)

// CollectFlags merges the configuration flag set from an optional flags
// file (a YAML string map) and repeated --define NAME[=VALUE] options.
// Defines win over file entries.
func CollectFlags(flagsFile string, defines []string) (schema.Flags, error) {
	flags := schema.Flags{}

	if flagsFile != "" {
		data, err := os.ReadFile(flagsFile)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, fmt.Sprintf("%s: reading flags file", ErrCodeFlagsFile), err)
		}
		var fromFile map[string]string
		if err := yaml.Unmarshal(data, &fromFile); err != nil {
			return nil, WrapExitError(ExitCommandError, fmt.Sprintf("%s: parsing flags file", ErrCodeFlagsFile), err)
		}
		for name, val := range fromFile {
			flags[name] = val
		}
	}

	for _, def := range defines {
		name, val, err := schema.ParseDefine(def)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, fmt.Sprintf("%s: %v", ErrCodeDefine, err), nil)
		}
		flags[name] = val
	}

	return flags, nil
}

// LoadOps runs the schema pipeline: read, preprocess against the flag
// set, and load into ordered op definitions validated against the
// registry.
func LoadOps(path string, flags schema.Flags, reg *ir.Registry) ([]ir.OpDef, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, fmt.Sprintf("%s: reading schema", ErrCodeReadFailed), err)
	}

	expanded, err := schema.Preprocess(string(src), flags)
	if err != nil {
		return nil, err
	}

	return schema.Load(expanded, reg)
}

// errorCodePattern extracts the "ENNN" prefix that command-layer errors
// carry in their message, so the formatter can report the specific code
// instead of nesting it inside a generic one.
var errorCodePattern = regexp.MustCompile(`^(E\d{3}): (.+)`)

// MapSchemaError converts a pipeline error into a CLI error code and
// message.
func MapSchemaError(err error) (code, message string) {
	var se *schema.SchemaError
	if errors.As(err, &se) {
		return ErrCodeSchema, se.Error()
	}
	var ue *schema.UnknownArgTypeError
	if errors.As(err, &ue) {
		return ErrCodeUnknownType, ue.Error()
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		if m := errorCodePattern.FindStringSubmatch(ee.Error()); m != nil {
			return m[1], m[2]
		}
		return ErrCodeGeneric, ee.Error()
	}
	return ErrCodeGeneric, err.Error()
}

// outputSchemaError reports a pipeline failure and returns the ExitError
// carrying the right exit code: schema failures exit 1, command errors
// keep their own code.
func outputSchemaError(formatter *OutputFormatter, err error) error {
	var ee *ExitError
	if errors.As(err, &ee) {
		code, message := MapSchemaError(err)
		_ = formatter.Error(code, message, nil)
		return ee
	}
	code, message := MapSchemaError(err)
	_ = formatter.Error(code, message, nil)
	return WrapExitError(ExitFailure, fmt.Sprintf("%s: %s", code, message), err)
}
