package gen

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelvm/opgen/internal/ir"
)

func TestRenderGolden(t *testing.T) {
	a, err := Generate(ir.NewRegistry(), fixtureOps(), "vmops")
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "artifact", Render(a))
}

func TestRenderBlockOrder(t *testing.T) {
	a, err := Generate(ir.NewRegistry(), fixtureOps(), "vmops")
	require.NoError(t, err)
	out := string(Render(a))

	sections := []string{
		"// ---- Op table ----",
		"// ---- Writer ----",
		"// ---- Shared dispatch ----",
		"// ---- Unshared dispatch ----",
		"// ---- Transpile ----",
		"// ---- Transpile op list ----",
		"// ---- Spewer ----",
		"// ---- Clone ----",
	}

	last := -1
	for _, s := range sections {
		i := strings.Index(out, s)
		require.GreaterOrEqual(t, i, 0, "missing section %q", s)
		assert.Greater(t, i, last, "section %q out of order", s)
		last = i
	}
}

func TestRenderHeader(t *testing.T) {
	a, err := Generate(ir.NewRegistry(), fixtureOps(), "vmops")
	require.NoError(t, err)
	out := string(Render(a))

	assert.True(t, strings.HasPrefix(out, "// Code generated by opgen. DO NOT EDIT.\n"))
	assert.Contains(t, out, "package vmops\n")
	assert.NotContains(t, out, `import "unsafe"`)
}

func TestRenderUnsafeImport(t *testing.T) {
	ops := []ir.OpDef{{
		Name:   "LoadHookData",
		Args:   []ir.Arg{{Name: "data", Type: "RawPointerField"}},
		Shared: true,
	}}

	a, err := Generate(ir.NewRegistry(), ops, "vmops")
	require.NoError(t, err)
	assert.Contains(t, string(Render(a)), "\nimport \"unsafe\"\n")
}

func TestRenderEmptyBlocksStillPresent(t *testing.T) {
	// An op set with no transpile or unshared ops still renders every
	// block: consumers compile against the interfaces unconditionally.
	ops := []ir.OpDef{{Name: "ReturnFromIC", Shared: true}}

	a, err := Generate(ir.NewRegistry(), ops, "vmops")
	require.NoError(t, err)
	out := string(Render(a))

	assert.Contains(t, out, "type UnsharedOpEmitter interface {\n}")
	assert.Contains(t, out, "type TranspileOpEmitter interface {\n}")
	assert.Contains(t, out, "var transpileOps = []OpCode{\n}")
}

func TestRenderDeterministic(t *testing.T) {
	reg := ir.NewRegistry()
	a1, err := Generate(reg, fixtureOps(), "vmops")
	require.NoError(t, err)
	a2, err := Generate(reg, fixtureOps(), "vmops")
	require.NoError(t, err)

	assert.Equal(t, Render(a1), Render(a2))
}
