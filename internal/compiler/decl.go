// Package compiler parses CUE schema declarations into category and
// functor declarations, validates them with coded errors, and builds
// verified cat structures from them.
//
// Parsing uses the CUE SDK's Go API directly (not a CLI subprocess).
// Validation collects every structural error in a declaration before
// anything is built; the categorical laws themselves are checked by
// the cat constructors.
package compiler

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// CategoryDecl is the parsed form of one category declaration.
type CategoryDecl struct {
	Name         string
	Objects      []string
	Morphisms    []MorphismDecl
	Compositions []CompositionDecl
	Identities   map[string]string
}

// MorphismDecl declares one generating morphism.
type MorphismDecl struct {
	Name string
	Src  string
	Dst  string
}

// CompositionDecl declares one row of the composition table in
// diagrammatic order: First followed by Then is Is.
type CompositionDecl struct {
	First string
	Then  string
	Is    string
}

// FunctorDecl is the parsed form of one functor declaration. Source
// and Target name category declarations in the same unit.
type FunctorDecl struct {
	Name      string
	Source    string
	Target    string
	Objects   map[string]string
	Morphisms map[string]string
}

// Decls holds every declaration compiled from one CUE unit, in
// declaration order.
type Decls struct {
	Categories []CategoryDecl
	Functors   []FunctorDecl
}

// Compile parses a CUE value holding category and functor
// declarations, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`category: Quality: { objects: [...] }`)
//	decls, err := compiler.Compile(v)
func Compile(v cue.Value) (*Decls, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	decls := &Decls{}

	catVal := v.LookupPath(cue.ParsePath("category"))
	if catVal.Exists() {
		iter, err := catVal.Fields()
		if err != nil {
			return nil, formatCUEError(err)
		}
		for iter.Next() {
			d, err := CompileCategory(iter.Value())
			if err != nil {
				return nil, err
			}
			d.Name = iter.Label()
			decls.Categories = append(decls.Categories, *d)
		}
	}

	funVal := v.LookupPath(cue.ParsePath("functor"))
	if funVal.Exists() {
		iter, err := funVal.Fields()
		if err != nil {
			return nil, formatCUEError(err)
		}
		for iter.Next() {
			d, err := CompileFunctor(iter.Value())
			if err != nil {
				return nil, err
			}
			d.Name = iter.Label()
			decls.Functors = append(decls.Functors, *d)
		}
	}

	return decls, nil
}

// CompileCategory parses a single category declaration struct. The
// Name is taken from the struct label when one is present.
func CompileCategory(v cue.Value) (*CategoryDecl, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	d := &CategoryDecl{}
	if labels := v.Path().Selectors(); len(labels) > 0 {
		d.Name = labels[len(labels)-1].String()
	}

	objVal := v.LookupPath(cue.ParsePath("objects"))
	if !objVal.Exists() {
		return nil, &CompileError{
			Field:   "objects",
			Message: "objects list is required",
			Pos:     v.Pos(),
		}
	}
	objs, err := stringList(objVal)
	if err != nil {
		return nil, err
	}
	d.Objects = objs

	morVal := v.LookupPath(cue.ParsePath("morphisms"))
	if morVal.Exists() {
		iter, err := morVal.List()
		if err != nil {
			return nil, formatCUEError(err)
		}
		for iter.Next() {
			m, err := compileMorphism(iter.Value())
			if err != nil {
				return nil, err
			}
			d.Morphisms = append(d.Morphisms, m)
		}
	}

	compVal := v.LookupPath(cue.ParsePath("compositions"))
	if compVal.Exists() {
		iter, err := compVal.List()
		if err != nil {
			return nil, formatCUEError(err)
		}
		for iter.Next() {
			c, err := compileComposition(iter.Value())
			if err != nil {
				return nil, err
			}
			d.Compositions = append(d.Compositions, c)
		}
	}

	idVal := v.LookupPath(cue.ParsePath("identities"))
	if idVal.Exists() {
		ids, err := stringMap(idVal)
		if err != nil {
			return nil, err
		}
		d.Identities = ids
	}

	return d, nil
}

// CompileFunctor parses a single functor declaration struct.
func CompileFunctor(v cue.Value) (*FunctorDecl, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	d := &FunctorDecl{}
	if labels := v.Path().Selectors(); len(labels) > 0 {
		d.Name = labels[len(labels)-1].String()
	}

	for _, field := range []struct {
		name string
		into *string
	}{
		{"source", &d.Source},
		{"target", &d.Target},
	} {
		fv := v.LookupPath(cue.ParsePath(field.name))
		if !fv.Exists() {
			return nil, &CompileError{
				Field:   field.name,
				Message: field.name + " category name is required",
				Pos:     v.Pos(),
			}
		}
		s, err := fv.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		*field.into = s
	}

	objVal := v.LookupPath(cue.ParsePath("objects"))
	if !objVal.Exists() {
		return nil, &CompileError{
			Field:   "objects",
			Message: "object map is required",
			Pos:     v.Pos(),
		}
	}
	objs, err := stringMap(objVal)
	if err != nil {
		return nil, err
	}
	d.Objects = objs

	morVal := v.LookupPath(cue.ParsePath("morphisms"))
	if morVal.Exists() {
		mors, err := stringMap(morVal)
		if err != nil {
			return nil, err
		}
		d.Morphisms = mors
	}

	return d, nil
}

func compileMorphism(v cue.Value) (MorphismDecl, error) {
	var m MorphismDecl
	for _, field := range []struct {
		name string
		into *string
	}{
		{"name", &m.Name},
		{"src", &m.Src},
		{"dst", &m.Dst},
	} {
		fv := v.LookupPath(cue.ParsePath(field.name))
		if !fv.Exists() {
			return m, &CompileError{
				Field:   "morphisms." + field.name,
				Message: field.name + " is required",
				Pos:     v.Pos(),
			}
		}
		s, err := fv.String()
		if err != nil {
			return m, formatCUEError(err)
		}
		*field.into = s
	}
	return m, nil
}

func compileComposition(v cue.Value) (CompositionDecl, error) {
	var c CompositionDecl
	for _, field := range []struct {
		name string
		into *string
	}{
		{"first", &c.First},
		{"then", &c.Then},
		{"is", &c.Is},
	} {
		fv := v.LookupPath(cue.ParsePath(field.name))
		if !fv.Exists() {
			return c, &CompileError{
				Field:   "compositions." + field.name,
				Message: field.name + " is required",
				Pos:     v.Pos(),
			}
		}
		s, err := fv.String()
		if err != nil {
			return c, formatCUEError(err)
		}
		*field.into = s
	}
	return c, nil
}

func stringList(v cue.Value) ([]string, error) {
	iter, err := v.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	var out []string
	for iter.Next() {
		s, err := iter.Value().String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		out = append(out, s)
	}
	return out, nil
}

func stringMap(v cue.Value) (map[string]string, error) {
	iter, err := v.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}
	out := make(map[string]string)
	for iter.Next() {
		s, err := iter.Value().String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		out[iter.Label()] = s
	}
	return out, nil
}

// CompileError is a declaration parse error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	firstErr := errs[0]
	if positions := errors.Positions(firstErr); len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}

	return err
}
