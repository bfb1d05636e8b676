package compiler

import (
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileCategoryBasic(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`
		category: Chain: {
			objects: ["A", "B", "C"]
			morphisms: [
				{ name: "f", src: "A", dst: "B" },
				{ name: "g", src: "B", dst: "C" },
				{ name: "gf", src: "A", dst: "C" },
			]
			compositions: [
				{ first: "f", then: "g", is: "gf" },
			]
		}
	`)

	require.NoError(t, v.Err())
	catVal := v.LookupPath(cue.ParsePath("category.Chain"))

	d, err := CompileCategory(catVal)
	require.NoError(t, err)

	assert.Equal(t, "Chain", d.Name)
	assert.Equal(t, []string{"A", "B", "C"}, d.Objects)
	require.Len(t, d.Morphisms, 3)
	assert.Equal(t, MorphismDecl{Name: "f", Src: "A", Dst: "B"}, d.Morphisms[0])
	require.Len(t, d.Compositions, 1)
	assert.Equal(t, CompositionDecl{First: "f", Then: "g", Is: "gf"}, d.Compositions[0])
	assert.Empty(t, d.Identities)
}

func TestCompileCategoryDiscrete(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`
		category: Quality: {
			objects: ["clarity", "completeness", "correctness", "efficiency"]
		}
	`)

	require.NoError(t, v.Err())
	d, err := CompileCategory(v.LookupPath(cue.ParsePath("category.Quality")))
	require.NoError(t, err)

	assert.Equal(t, "Quality", d.Name)
	assert.Len(t, d.Objects, 4)
	assert.Empty(t, d.Morphisms)
}

func TestCompileCategoryDeclaredIdentities(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`
		category: Point: {
			objects: ["p"]
			morphisms: [{ name: "loop", src: "p", dst: "p" }]
			compositions: [{ first: "loop", then: "loop", is: "loop" }]
			identities: { p: "loop" }
		}
	`)

	require.NoError(t, v.Err())
	d, err := CompileCategory(v.LookupPath(cue.ParsePath("category.Point")))
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"p": "loop"}, d.Identities)
}

func TestCompileCategoryMissingObjects(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`
		category: Bad: {
			morphisms: [{ name: "f", src: "A", dst: "B" }]
		}
	`)

	require.NoError(t, v.Err())
	_, err := CompileCategory(v.LookupPath(cue.ParsePath("category.Bad")))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "objects")
	assert.Contains(t, err.Error(), "required")
}

func TestCompileCategoryMorphismMissingField(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`
		category: Bad: {
			objects: ["A", "B"]
			morphisms: [{ name: "f", src: "A" }]
		}
	`)

	require.NoError(t, v.Err())
	_, err := CompileCategory(v.LookupPath(cue.ParsePath("category.Bad")))

	require.Error(t, err)
	var cerr *CompileError
	require.ErrorAs(t, err, &cerr)
	assert.Contains(t, cerr.Field, "dst")
}

func TestCompileFunctorBasic(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`
		functor: Collapse: {
			source: "Quality"
			target: "QualityScore"
			objects: {
				clarity:      "overall"
				completeness: "overall"
				correctness:  "overall"
				efficiency:   "overall"
			}
		}
	`)

	require.NoError(t, v.Err())
	d, err := CompileFunctor(v.LookupPath(cue.ParsePath("functor.Collapse")))
	require.NoError(t, err)

	assert.Equal(t, "Collapse", d.Name)
	assert.Equal(t, "Quality", d.Source)
	assert.Equal(t, "QualityScore", d.Target)
	assert.Equal(t, "overall", d.Objects["correctness"])
	assert.Len(t, d.Objects, 4)
	assert.Empty(t, d.Morphisms)
}

func TestCompileFunctorMissingSource(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`
		functor: Bad: {
			target: "QualityScore"
			objects: { a: "overall" }
		}
	`)

	require.NoError(t, v.Err())
	_, err := CompileFunctor(v.LookupPath(cue.ParsePath("functor.Bad")))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "source")
	assert.Contains(t, err.Error(), "required")
}

func TestCompileUnit(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`
		category: Quality: {
			objects: ["clarity", "completeness", "correctness", "efficiency"]
		}
		category: QualityScore: {
			objects: ["overall"]
		}
		functor: Collapse: {
			source: "Quality"
			target: "QualityScore"
			objects: {
				clarity:      "overall"
				completeness: "overall"
				correctness:  "overall"
				efficiency:   "overall"
			}
		}
	`)

	require.NoError(t, v.Err())
	decls, err := Compile(v)
	require.NoError(t, err)

	require.Len(t, decls.Categories, 2)
	assert.Equal(t, "Quality", decls.Categories[0].Name)
	assert.Equal(t, "QualityScore", decls.Categories[1].Name)
	require.Len(t, decls.Functors, 1)
	assert.Equal(t, "Collapse", decls.Functors[0].Name)
}

func TestCompileTypeMismatchHasPosition(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`
		category: Bad: {
			objects: [1, 2]
		}
	`)

	require.NoError(t, v.Err())
	_, err := CompileCategory(v.LookupPath(cue.ParsePath("category.Bad")))

	require.Error(t, err)
}

func TestCompileErrorFormatsWithoutPosition(t *testing.T) {
	err := &CompileError{Field: "objects", Message: "objects list is required"}
	assert.Equal(t, "objects: objects list is required", err.Error())
}
