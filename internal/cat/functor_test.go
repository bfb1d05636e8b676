package cat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pointCategory is the terminal-shaped category with one object.
func pointCategory(t *testing.T, name Obj) *Category {
	t.Helper()
	c, err := New([]Obj{name}, nil, nil, nil)
	require.NoError(t, err)
	return c
}

// collapseFunctor maps every chain object and morphism onto the single
// object of the point category.
func collapseFunctor(t *testing.T, src *Category, dst *Category, point Obj) *Functor {
	t.Helper()
	id, err := dst.Identity(point)
	require.NoError(t, err)

	objMap := make(map[Obj]Obj)
	for _, o := range src.Objects() {
		objMap[o] = point
	}
	morMap := make(map[string]string)
	for _, m := range src.Morphisms() {
		morMap[m.Name] = id.Name
	}

	f, err := NewFunctor(src, dst, objMap, morMap)
	require.NoError(t, err)
	return f
}

func TestIdentityFunctorLaws(t *testing.T) {
	c := chainCategory(t)
	f := Identity(c)

	// F(id_A) == id_{F(A)} and F(f;g) == F(f);F(g).
	for _, o := range c.Objects() {
		img, err := f.Obj(o)
		require.NoError(t, err)
		assert.Equal(t, o, img)
	}
	for _, m := range c.Morphisms() {
		img, err := f.Mor(m.Name)
		require.NoError(t, err)
		assert.Equal(t, m, img)
	}
}

func TestCollapseFunctorVerifies(t *testing.T) {
	src := chainCategory(t)
	dst := pointCategory(t, "pt")
	f := collapseFunctor(t, src, dst, "pt")

	img, err := f.Obj("A")
	require.NoError(t, err)
	assert.Equal(t, Obj("pt"), img)

	m, err := f.Mor("gf")
	require.NoError(t, err)
	assert.Equal(t, Obj("pt"), m.Src)
	assert.Equal(t, Obj("pt"), m.Dst)
}

func TestNewFunctorLawViolations(t *testing.T) {
	src := chainCategory(t)
	dst := chainCategory(t)

	identityMaps := func() (map[Obj]Obj, map[string]string) {
		objMap := make(map[Obj]Obj)
		for _, o := range src.Objects() {
			objMap[o] = o
		}
		morMap := make(map[string]string)
		for _, m := range src.Morphisms() {
			morMap[m.Name] = m.Name
		}
		return objMap, morMap
	}

	tests := []struct {
		name     string
		mutate   func(objMap map[Obj]Obj, morMap map[string]string)
		wantCode LawCode
	}{
		{
			name:     "object_map_incomplete",
			mutate:   func(o map[Obj]Obj, m map[string]string) { delete(o, "A") },
			wantCode: ErrCodeMapIncomplete,
		},
		{
			name:     "morphism_map_incomplete",
			mutate:   func(o map[Obj]Obj, m map[string]string) { delete(m, "f") },
			wantCode: ErrCodeMapIncomplete,
		},
		{
			name:     "object_image_unknown",
			mutate:   func(o map[Obj]Obj, m map[string]string) { o["A"] = "Z" },
			wantCode: ErrCodeObjectUnknown,
		},
		{
			name:     "endpoint_mismatch",
			mutate:   func(o map[Obj]Obj, m map[string]string) { m["f"] = "g" },
			wantCode: ErrCodeEndpointMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			objMap, morMap := identityMaps()
			tt.mutate(objMap, morMap)
			_, err := NewFunctor(src, dst, objMap, morMap)
			require.Error(t, err)
			var lv *LawViolation
			require.ErrorAs(t, err, &lv)
			assert.Equal(t, tt.wantCode, lv.Code)
		})
	}
}

func TestIdentityPreservationViolation(t *testing.T) {
	// A non-identity endomorphism in the target lets a morphism map
	// preserve endpoints while breaking identity preservation.
	src := pointCategory(t, "A")
	dst, err := New(
		[]Obj{"A"},
		[]Morphism{{Name: "e", Src: "A", Dst: "A"}},
		[]Composition{{First: "e", Then: "e", Is: "e"}},
		nil,
	)
	require.NoError(t, err)

	_, err = NewFunctor(src, dst,
		map[Obj]Obj{"A": "A"},
		map[string]string{"id:A": "e"},
	)
	require.Error(t, err)
	var lv *LawViolation
	require.ErrorAs(t, err, &lv)
	assert.Equal(t, ErrCodeIdentityPreservation, lv.Code)
}

func TestCompositionPreservationViolation(t *testing.T) {
	// Two parallel composites in the target let a functor preserve
	// endpoints while breaking composition.
	src, err := New(
		[]Obj{"A", "B", "C"},
		[]Morphism{
			{Name: "f", Src: "A", Dst: "B"},
			{Name: "g", Src: "B", Dst: "C"},
			{Name: "gf", Src: "A", Dst: "C"},
		},
		[]Composition{{First: "f", Then: "g", Is: "gf"}},
		nil,
	)
	require.NoError(t, err)

	dst, err := New(
		[]Obj{"A", "B", "C"},
		[]Morphism{
			{Name: "f", Src: "A", Dst: "B"},
			{Name: "g", Src: "B", Dst: "C"},
			{Name: "gf", Src: "A", Dst: "C"},
			{Name: "other", Src: "A", Dst: "C"},
		},
		[]Composition{{First: "f", Then: "g", Is: "gf"}},
		nil,
	)
	require.NoError(t, err)

	objMap := map[Obj]Obj{"A": "A", "B": "B", "C": "C"}
	morMap := map[string]string{
		"f": "f", "g": "g", "gf": "other",
		"id:A": "id:A", "id:B": "id:B", "id:C": "id:C",
	}

	_, err = NewFunctor(src, dst, objMap, morMap)
	require.Error(t, err)
	var lv *LawViolation
	require.ErrorAs(t, err, &lv)
	assert.Equal(t, ErrCodeCompositionPreservation, lv.Code)
}

func TestPreimageDeterministic(t *testing.T) {
	src := chainCategory(t)
	dst := pointCategory(t, "pt")
	f := collapseFunctor(t, src, dst, "pt")

	pre := f.Preimage("pt")
	assert.Equal(t, []Obj{"A", "B", "C", "D"}, pre)

	assert.Empty(t, f.Preimage("missing"))
}

func TestFunctorLookupsReturnNotFound(t *testing.T) {
	c := chainCategory(t)
	f := Identity(c)

	_, err := f.Obj("Z")
	assert.True(t, IsNotFound(err))

	_, err = f.Mor("nope")
	assert.True(t, IsNotFound(err))
}
