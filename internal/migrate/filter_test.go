package migrate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/triptych/internal/cat"
	"github.com/roach88/triptych/internal/fiber"
	"github.com/roach88/triptych/internal/testutil"
)

func TestFilterVetoLaw(t *testing.T) {
	// One member below the threshold must fail the whole group, no
	// matter how the rest score.
	src := testutil.Discrete(t, "a", "b", "c")
	dst := testutil.Discrete(t, "gate")
	f := testutil.CollapseAll(t, src, dst, "gate")

	inst := testutil.ScalarInstance(t, src, map[cat.Obj]fiber.Value{
		"a": fiber.VFloat(0.95),
		"b": fiber.VFloat(0.92),
		"c": fiber.VFloat(0.88),
	})

	res, err := Filter(f, inst, AtLeast(0.90))
	require.NoError(t, err)

	v, ok := res.Verdict("gate")
	require.True(t, ok)
	assert.False(t, v.Passed)
	assert.False(t, v.Vacuous)
	require.Len(t, v.Vetoes, 1)
	assert.Equal(t, cat.Obj("c"), v.Vetoes[0].Source)
	assert.Equal(t, fiber.VFloat(0.88), v.Vetoes[0].Element)

	got, err := res.Instance.Get("gate")
	require.NoError(t, err)
	assert.Equal(t, []fiber.Value{fiber.VBool(false)}, got.Elems())
}

func TestFilterAllPass(t *testing.T) {
	src := testutil.Discrete(t, "a", "b")
	dst := testutil.Discrete(t, "gate")
	f := testutil.CollapseAll(t, src, dst, "gate")

	inst := testutil.ScalarInstance(t, src, map[cat.Obj]fiber.Value{
		"a": fiber.VFloat(0.95),
		"b": fiber.VFloat(0.90),
	})

	res, err := Filter(f, inst, AtLeast(0.90))
	require.NoError(t, err)

	v, ok := res.Verdict("gate")
	require.True(t, ok)
	assert.True(t, v.Passed)
	assert.Empty(t, v.Vetoes)

	d, ok := res.Derivation("gate")
	require.True(t, ok)
	assert.Equal(t, OpFilter, d.Op)
	assert.Equal(t, "at-least-0.9", d.Rule)
}

func TestFilterRecordsAllVetoes(t *testing.T) {
	src := testutil.Discrete(t, "a", "b")
	dst := testutil.Discrete(t, "gate")
	f := testutil.CollapseAll(t, src, dst, "gate")

	inst := testutil.Instance(t, src, map[cat.Obj]fiber.Fiber{
		"a": fiber.New("a", fiber.VFloat(0.1), fiber.VFloat(0.2)),
		"b": fiber.New("b", fiber.VFloat(0.95), fiber.VFloat(0.3)),
	})

	res, err := Filter(f, inst, AtLeast(0.90))
	require.NoError(t, err)

	v, ok := res.Verdict("gate")
	require.True(t, ok)
	assert.False(t, v.Passed)
	assert.Len(t, v.Vetoes, 3)
}

func TestFilterVacuousPass(t *testing.T) {
	src := testutil.Discrete(t, "a")
	dst := testutil.Discrete(t, "a", "unreached")
	f := testutil.Embed(t, src, dst)

	inst := testutil.ScalarInstance(t, src, map[cat.Obj]fiber.Value{
		"a": fiber.VFloat(0.5),
	})

	res, err := Filter(f, inst, AtLeast(0.90))
	require.NoError(t, err)

	v, ok := res.Verdict("unreached")
	require.True(t, ok)
	assert.True(t, v.Passed)
	assert.True(t, v.Vacuous)
	assert.Empty(t, v.Vetoes)
}

func TestFilterBooleanPredicates(t *testing.T) {
	src := testutil.Discrete(t, "a", "b")
	dst := testutil.Discrete(t, "gate")
	f := testutil.CollapseAll(t, src, dst, "gate")

	inst := testutil.ScalarInstance(t, src, map[cat.Obj]fiber.Value{
		"a": fiber.VBool(true),
		"b": fiber.VBool(true),
	})

	res, err := Filter(f, inst, IsTrue)
	require.NoError(t, err)
	v, ok := res.Verdict("gate")
	require.True(t, ok)
	assert.True(t, v.Passed)

	res, err = Filter(f, inst, IsFalse)
	require.NoError(t, err)
	v, ok = res.Verdict("gate")
	require.True(t, ok)
	assert.False(t, v.Passed)
	assert.Len(t, v.Vetoes, 2)
}

func TestFilterNonNumericFailsAtLeast(t *testing.T) {
	src := testutil.Discrete(t, "a")
	dst := testutil.Discrete(t, "gate")
	f := testutil.CollapseAll(t, src, dst, "gate")

	inst := testutil.ScalarInstance(t, src, map[cat.Obj]fiber.Value{
		"a": fiber.VString("not a score"),
	})

	res, err := Filter(f, inst, AtLeast(0.0))
	require.NoError(t, err)
	v, ok := res.Verdict("gate")
	require.True(t, ok)
	assert.False(t, v.Passed)
}
