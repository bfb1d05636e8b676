// Package testutil provides deterministic helpers shared by the
// migration tests: a fixed call-token generator and builders for the
// small categories, functors, and instances the tests migrate over.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/triptych/internal/cat"
	"github.com/roach88/triptych/internal/fiber"
)

// MustCategory builds a verified category or fails the test.
func MustCategory(t *testing.T, objects []cat.Obj, morphisms []cat.Morphism, rows []cat.Composition) *cat.Category {
	t.Helper()
	c, err := cat.New(objects, morphisms, rows, nil)
	require.NoError(t, err)
	return c
}

// Discrete builds a category with the given objects and no morphisms
// beyond identities.
func Discrete(t *testing.T, objects ...cat.Obj) *cat.Category {
	t.Helper()
	return MustCategory(t, objects, nil, nil)
}

// CollapseAll builds the functor sending every object of src onto the
// single object point of dst, and every morphism onto its identity.
func CollapseAll(t *testing.T, src, dst *cat.Category, point cat.Obj) *cat.Functor {
	t.Helper()
	id, err := dst.Identity(point)
	require.NoError(t, err)

	objMap := make(map[cat.Obj]cat.Obj)
	for _, o := range src.Objects() {
		objMap[o] = point
	}
	morMap := make(map[string]string)
	for _, m := range src.Morphisms() {
		morMap[m.Name] = id.Name
	}

	f, err := cat.NewFunctor(src, dst, objMap, morMap)
	require.NoError(t, err)
	return f
}

// Embed builds a functor from a discrete src into dst mapping each
// object to itself; dst must contain every src object. Useful as a
// non-surjective functor whose missing preimages exercise empty fiber
// groups.
func Embed(t *testing.T, src, dst *cat.Category) *cat.Functor {
	t.Helper()
	objMap := make(map[cat.Obj]cat.Obj)
	for _, o := range src.Objects() {
		objMap[o] = o
	}
	morMap := make(map[string]string)
	for _, o := range src.Objects() {
		srcID, err := src.Identity(o)
		require.NoError(t, err)
		dstID, err := dst.Identity(o)
		require.NoError(t, err)
		morMap[srcID.Name] = dstID.Name
	}

	f, err := cat.NewFunctor(src, dst, objMap, morMap)
	require.NoError(t, err)
	return f
}

// ScalarInstance builds an instance over a discrete category assigning
// each object a singleton fiber holding one value.
func ScalarInstance(t *testing.T, c *cat.Category, values map[cat.Obj]fiber.Value) *fiber.Instance {
	t.Helper()
	fibers := make(map[cat.Obj]fiber.Fiber, len(values))
	for o, v := range values {
		fibers[o] = fiber.New(string(o), v)
	}
	inst, err := fiber.NewInstance(c, fibers, nil)
	require.NoError(t, err)
	return inst
}

// Instance builds an instance over a discrete category from explicit
// fibers.
func Instance(t *testing.T, c *cat.Category, fibers map[cat.Obj]fiber.Fiber) *fiber.Instance {
	t.Helper()
	inst, err := fiber.NewInstance(c, fibers, nil)
	require.NoError(t, err)
	return inst
}
