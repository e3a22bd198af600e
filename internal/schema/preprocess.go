package schema

import (
	"fmt"
	"regexp"
	"strings"
)

// Flags is the set of active configuration flags consumed by the
// preprocessor. A flag's presence satisfies #ifdef; its value replaces
// @NAME@ substitutions.
type Flags map[string]string

// directivePattern matches conditional directives. Only these exact
// directive words are treated as directives; every other #-prefixed line
// is an ordinary YAML comment and passes through untouched.
var directivePattern = regexp.MustCompile(`^\s*#\s*(ifdef|ifndef|else|endif)(?:\s+(\S+))?\s*$`)

// substPattern matches @NAME@ substitution references.
var substPattern = regexp.MustCompile(`@([A-Za-z_][A-Za-z0-9_]*)@`)

// condFrame tracks one open #ifdef/#ifndef region.
type condFrame struct {
	line     int  // line of the opening directive, for diagnostics
	taken    bool // condition held on the opener
	seenElse bool
}

// Preprocess expands conditional-compilation directives in the schema text
// against the active flag set. Directive lines and lines inside inactive
// regions are replaced with empty lines rather than removed, so line
// numbers reported by the structural parser still refer to the original
// schema source.
func Preprocess(src string, flags Flags) (string, error) {
	lines := strings.Split(src, "\n")
	out := make([]string, len(lines))

	var stack []condFrame

	active := func() bool {
		for _, f := range stack {
			if !f.taken {
				return false
			}
		}
		return true
	}

	for i, line := range lines {
		lineno := i + 1

		if m := directivePattern.FindStringSubmatch(line); m != nil {
			word, name := m[1], m[2]
			switch word {
			case "ifdef", "ifndef":
				if name == "" {
					return "", &SchemaError{
						Code:    ErrPreprocessor,
						Field:   "preprocessor",
						Message: fmt.Sprintf("#%s requires a flag name", word),
						Line:    lineno,
					}
				}
				_, defined := flags[name]
				taken := defined
				if word == "ifndef" {
					taken = !defined
				}
				stack = append(stack, condFrame{line: lineno, taken: taken})
			case "else":
				if name != "" {
					return "", &SchemaError{
						Code:    ErrPreprocessor,
						Field:   "preprocessor",
						Message: "#else takes no argument",
						Line:    lineno,
					}
				}
				if len(stack) == 0 {
					return "", &SchemaError{
						Code:    ErrPreprocessor,
						Field:   "preprocessor",
						Message: "#else without matching #ifdef",
						Line:    lineno,
					}
				}
				top := &stack[len(stack)-1]
				if top.seenElse {
					return "", &SchemaError{
						Code:    ErrPreprocessor,
						Field:   "preprocessor",
						Message: "duplicate #else in conditional",
						Line:    lineno,
					}
				}
				top.seenElse = true
				top.taken = !top.taken
			case "endif":
				if len(stack) == 0 {
					return "", &SchemaError{
						Code:    ErrPreprocessor,
						Field:   "preprocessor",
						Message: "#endif without matching #ifdef",
						Line:    lineno,
					}
				}
				stack = stack[:len(stack)-1]
			}
			out[i] = ""
			continue
		}

		if !active() {
			out[i] = ""
			continue
		}

		expanded, err := substitute(line, lineno, flags)
		if err != nil {
			return "", err
		}
		out[i] = expanded
	}

	if len(stack) > 0 {
		open := stack[len(stack)-1]
		return "", &SchemaError{
			Code:    ErrPreprocessor,
			Field:   "preprocessor",
			Message: "unterminated conditional, missing #endif",
			Line:    open.line,
		}
	}

	return strings.Join(out, "\n"), nil
}

// substitute resolves @NAME@ references against the flag set. An
// undefined reference is an error rather than silently passing through:
// a schema fragment that depends on a missing flag value would otherwise
// produce a corrupt record far from the actual mistake.
func substitute(line string, lineno int, flags Flags) (string, error) {
	var substErr *SchemaError
	expanded := substPattern.ReplaceAllStringFunc(line, func(ref string) string {
		name := ref[1 : len(ref)-1]
		val, ok := flags[name]
		if !ok && substErr == nil {
			substErr = &SchemaError{
				Code:    ErrUndefinedVar,
				Field:   "preprocessor",
				Message: fmt.Sprintf("substitution @%s@ has no flag value", name),
				Line:    lineno,
			}
		}
		return val
	})
	if substErr != nil {
		return "", substErr
	}
	return expanded, nil
}

// ParseDefine splits a NAME or NAME=VALUE flag definition as supplied on
// the command line.
func ParseDefine(def string) (name, value string, err error) {
	name, value, _ = strings.Cut(def, "=")
	name = strings.TrimSpace(name)
	if name == "" {
		return "", "", fmt.Errorf("empty flag name in define %q", def)
	}
	return name, value, nil
}
