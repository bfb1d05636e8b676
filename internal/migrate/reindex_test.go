package migrate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/triptych/internal/cat"
	"github.com/roach88/triptych/internal/fiber"
	"github.com/roach88/triptych/internal/testutil"
)

func TestReindexIdentityLaw(t *testing.T) {
	c := testutil.Discrete(t, "x", "y", "z")
	inst := testutil.Instance(t, c, map[cat.Obj]fiber.Fiber{
		"x": fiber.New("x", fiber.VInt(1)),
		"y": fiber.New("y", fiber.VString("s")),
		"z": fiber.New("z"),
	})

	res, err := Reindex(cat.Identity(c), inst)
	require.NoError(t, err)

	for _, o := range c.Objects() {
		want, err := inst.Get(o)
		require.NoError(t, err)
		got, err := res.Instance.Get(o)
		require.NoError(t, err)
		assert.Equal(t, want, got, "reindex along identity must be the identity on %q", o)
	}
}

func TestReindexPullsBackward(t *testing.T) {
	// Specialized schema {loc} pulls data from general schema {loc, other}.
	src := testutil.Discrete(t, "loc")
	dst := testutil.Discrete(t, "loc", "other")
	f := testutil.Embed(t, src, dst)

	general := testutil.Instance(t, dst, map[cat.Obj]fiber.Fiber{
		"loc":   fiber.New("loc", fiber.VString("us-east"), fiber.VString("eu-west")),
		"other": fiber.New("other", fiber.VInt(9)),
	})

	res, err := Reindex(f, general)
	require.NoError(t, err)

	got, err := res.Instance.Get("loc")
	require.NoError(t, err)
	want, err := general.Get("loc")
	require.NoError(t, err)
	// Same data, not a transformed copy.
	assert.Equal(t, want, got)

	// Provenance names where the fiber was pulled from.
	d, ok := res.Derivation("loc")
	require.True(t, ok)
	assert.Equal(t, OpReindex, d.Op)
	assert.Equal(t, []cat.Obj{"loc"}, d.Sources)
	assert.Equal(t, "pullback", d.Rule)
	assert.NotEmpty(t, d.ID)
}

func TestReindexMorphismActions(t *testing.T) {
	// Reindexed instance runs the target's action for the image morphism.
	src, err := cat.New(
		[]cat.Obj{"A", "B"},
		[]cat.Morphism{{Name: "f", Src: "A", Dst: "B"}},
		nil, nil,
	)
	require.NoError(t, err)
	dst, err := cat.New(
		[]cat.Obj{"X", "Y"},
		[]cat.Morphism{{Name: "u", Src: "X", Dst: "Y"}},
		nil, nil,
	)
	require.NoError(t, err)

	f, err := cat.NewFunctor(src, dst,
		map[cat.Obj]cat.Obj{"A": "X", "B": "Y"},
		map[string]string{"f": "u", "id:A": "id:X", "id:B": "id:Y"},
	)
	require.NoError(t, err)

	target, err := fiber.NewInstance(dst,
		map[cat.Obj]fiber.Fiber{
			"X": fiber.New("x", fiber.VInt(1)),
			"Y": fiber.New("y", fiber.VInt(10)),
		},
		map[string]fiber.Action{
			"u": func(v fiber.Value) fiber.Value {
				return fiber.VInt(int64(v.(fiber.VInt)) * 10)
			},
		},
	)
	require.NoError(t, err)

	res, err := Reindex(f, target)
	require.NoError(t, err)

	got, err := res.Instance.Act("f", fiber.VInt(1))
	require.NoError(t, err)
	assert.Equal(t, fiber.VInt(10), got)
}

func TestReindexMissingFiberIsNotFound(t *testing.T) {
	// The target instance is over a category missing the image object,
	// so the pullback lookup must surface NOT_FOUND, never a default.
	src := testutil.Discrete(t, "p")
	dst := testutil.Discrete(t, "p", "q")

	// Functor sending p to q, but the supplied instance only has a
	// fiber for p, so the pullback lookup of q misses.
	g, err := cat.NewFunctor(src, dst,
		map[cat.Obj]cat.Obj{"p": "q"},
		map[string]string{"id:p": "id:q"},
	)
	require.NoError(t, err)

	other := testutil.Discrete(t, "p")
	inst := testutil.Instance(t, other, map[cat.Obj]fiber.Fiber{
		"p": fiber.New("p"),
	})

	_, err = Reindex(g, inst)
	require.Error(t, err)
	assert.True(t, cat.IsNotFound(err))
}

func TestReindexDoesNotMutateInput(t *testing.T) {
	c := testutil.Discrete(t, "x")
	inst := testutil.Instance(t, c, map[cat.Obj]fiber.Fiber{
		"x": fiber.New("x", fiber.VInt(1)),
	})

	before, err := fiber.InstanceID(inst)
	require.NoError(t, err)

	_, err = Reindex(cat.Identity(c), inst)
	require.NoError(t, err)

	after, err := fiber.InstanceID(inst)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
