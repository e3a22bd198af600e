package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreprocessNoDirectives(t *testing.T) {
	src := "- name: GuardShape\n  shared: true\n"
	out, err := Preprocess(src, Flags{})
	require.NoError(t, err)
	assert.Equal(t, src, out)
}

func TestPreprocessIfdefIncluded(t *testing.T) {
	src := strings.Join([]string{
		"- name: AlwaysOp",
		"#ifdef SIMULATOR",
		"- name: SimOp",
		"#endif",
	}, "\n")

	out, err := Preprocess(src, Flags{"SIMULATOR": ""})
	require.NoError(t, err)
	assert.Contains(t, out, "SimOp")
	assert.NotContains(t, out, "#ifdef")
}

func TestPreprocessIfdefExcluded(t *testing.T) {
	src := strings.Join([]string{
		"- name: AlwaysOp",
		"#ifdef SIMULATOR",
		"- name: SimOp",
		"#endif",
	}, "\n")

	out, err := Preprocess(src, Flags{})
	require.NoError(t, err)
	assert.Contains(t, out, "AlwaysOp")
	assert.NotContains(t, out, "SimOp")
}

func TestPreprocessIfndef(t *testing.T) {
	src := strings.Join([]string{
		"#ifndef SIMULATOR",
		"- name: HardwareOp",
		"#endif",
	}, "\n")

	out, err := Preprocess(src, Flags{})
	require.NoError(t, err)
	assert.Contains(t, out, "HardwareOp")

	out, err = Preprocess(src, Flags{"SIMULATOR": ""})
	require.NoError(t, err)
	assert.NotContains(t, out, "HardwareOp")
}

func TestPreprocessElse(t *testing.T) {
	src := strings.Join([]string{
		"#ifdef FAST_PATH",
		"- name: FastOp",
		"#else",
		"- name: SlowOp",
		"#endif",
	}, "\n")

	out, err := Preprocess(src, Flags{"FAST_PATH": ""})
	require.NoError(t, err)
	assert.Contains(t, out, "FastOp")
	assert.NotContains(t, out, "SlowOp")

	out, err = Preprocess(src, Flags{})
	require.NoError(t, err)
	assert.NotContains(t, out, "FastOp")
	assert.Contains(t, out, "SlowOp")
}

func TestPreprocessNested(t *testing.T) {
	src := strings.Join([]string{
		"#ifdef OUTER",
		"#ifdef INNER",
		"- name: BothOp",
		"#endif",
		"- name: OuterOp",
		"#endif",
	}, "\n")

	out, err := Preprocess(src, Flags{"OUTER": ""})
	require.NoError(t, err)
	assert.NotContains(t, out, "BothOp")
	assert.Contains(t, out, "OuterOp")

	out, err = Preprocess(src, Flags{"OUTER": "", "INNER": ""})
	require.NoError(t, err)
	assert.Contains(t, out, "BothOp")

	// Inner region alone must not leak through.
	out, err = Preprocess(src, Flags{"INNER": ""})
	require.NoError(t, err)
	assert.NotContains(t, out, "BothOp")
	assert.NotContains(t, out, "OuterOp")
}

func TestPreprocessPreservesLineNumbers(t *testing.T) {
	// Directive and inactive lines become empty lines, not deletions, so
	// parser diagnostics still point at the original schema source.
	src := strings.Join([]string{
		"#ifdef MISSING",
		"- name: GoneOp",
		"#endif",
		"- name: KeptOp",
	}, "\n")

	out, err := Preprocess(src, Flags{})
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "", lines[0])
	assert.Equal(t, "", lines[1])
	assert.Equal(t, "", lines[2])
	assert.Equal(t, "- name: KeptOp", lines[3])
}

func TestPreprocessYAMLCommentsPassThrough(t *testing.T) {
	src := "# Guard ops below.\n- name: GuardShape\n"
	out, err := Preprocess(src, Flags{})
	require.NoError(t, err)
	assert.Equal(t, src, out)
}

func TestPreprocessSubstitution(t *testing.T) {
	src := "- name: CallScripted\n  cost_estimate: @CALL_COST@\n"
	out, err := Preprocess(src, Flags{"CALL_COST": "7"})
	require.NoError(t, err)
	assert.Contains(t, out, "cost_estimate: 7")
}

func TestPreprocessSubstitutionUndefined(t *testing.T) {
	src := "- name: CallScripted\n  cost_estimate: @CALL_COST@\n"
	_, err := Preprocess(src, Flags{})
	require.Error(t, err)

	var se *SchemaError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, ErrUndefinedVar, se.Code)
	assert.Equal(t, 2, se.Line)
}

func TestPreprocessSubstitutionInInactiveRegion(t *testing.T) {
	// Undefined references inside excluded regions must not error; the
	// region is gone before substitution applies.
	src := strings.Join([]string{
		"#ifdef MISSING",
		"- cost_estimate: @UNDEFINED@",
		"#endif",
		"- name: KeptOp",
	}, "\n")

	out, err := Preprocess(src, Flags{})
	require.NoError(t, err)
	assert.Contains(t, out, "KeptOp")
}

func TestPreprocessErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code string
	}{
		{"unterminated ifdef", "#ifdef A\n- name: X", ErrPreprocessor},
		{"endif without ifdef", "- name: X\n#endif", ErrPreprocessor},
		{"else without ifdef", "#else", ErrPreprocessor},
		{"duplicate else", "#ifdef A\n#else\n#else\n#endif", ErrPreprocessor},
		{"ifdef without name", "#ifdef\n#endif", ErrPreprocessor},
		{"else with argument", "#ifdef A\n#else B\n#endif", ErrPreprocessor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Preprocess(tt.src, Flags{"A": ""})
			require.Error(t, err)

			var se *SchemaError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.code, se.Code)
			assert.Positive(t, se.Line)
		})
	}
}

func TestParseDefine(t *testing.T) {
	name, val, err := ParseDefine("SIMULATOR")
	require.NoError(t, err)
	assert.Equal(t, "SIMULATOR", name)
	assert.Equal(t, "", val)

	name, val, err = ParseDefine("CALL_COST=7")
	require.NoError(t, err)
	assert.Equal(t, "CALL_COST", name)
	assert.Equal(t, "7", val)

	_, _, err = ParseDefine("=7")
	require.Error(t, err)
}
