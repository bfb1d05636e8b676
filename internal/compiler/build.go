package compiler

import (
	"errors"
	"fmt"

	"github.com/roach88/triptych/internal/cat"
)

// Built holds the verified structures constructed from one unit of
// declarations, keyed by declaration name.
type Built struct {
	Categories map[string]*cat.Category
	Functors   map[string]*cat.Functor
}

// Build validates the declarations and constructs verified categories
// and functors from them. Structural validation errors are joined and
// returned before anything is built; law violations surface from the
// cat constructors with the offending declaration named.
func Build(d *Decls) (*Built, error) {
	if errs := Validate(d); len(errs) > 0 {
		joined := make([]error, len(errs))
		for i, e := range errs {
			joined[i] = e
		}
		return nil, errors.Join(joined...)
	}

	built := &Built{
		Categories: make(map[string]*cat.Category, len(d.Categories)),
		Functors:   make(map[string]*cat.Functor, len(d.Functors)),
	}

	for _, cd := range d.Categories {
		c, err := BuildCategory(&cd)
		if err != nil {
			return nil, fmt.Errorf("category %q: %w", cd.Name, err)
		}
		built.Categories[cd.Name] = c
	}

	for _, fd := range d.Functors {
		f, err := BuildFunctor(&fd, built.Categories[fd.Source], built.Categories[fd.Target])
		if err != nil {
			return nil, fmt.Errorf("functor %q: %w", fd.Name, err)
		}
		built.Functors[fd.Name] = f
	}

	return built, nil
}

// BuildCategory constructs a verified category from a declaration.
func BuildCategory(d *CategoryDecl) (*cat.Category, error) {
	objects := make([]cat.Obj, len(d.Objects))
	for i, o := range d.Objects {
		objects[i] = cat.Obj(o)
	}

	morphisms := make([]cat.Morphism, len(d.Morphisms))
	for i, m := range d.Morphisms {
		morphisms[i] = cat.Morphism{Name: m.Name, Src: cat.Obj(m.Src), Dst: cat.Obj(m.Dst)}
	}

	compositions := make([]cat.Composition, len(d.Compositions))
	for i, c := range d.Compositions {
		compositions[i] = cat.Composition{First: c.First, Then: c.Then, Is: c.Is}
	}

	var identities map[cat.Obj]string
	if len(d.Identities) > 0 {
		identities = make(map[cat.Obj]string, len(d.Identities))
		for o, name := range d.Identities {
			identities[cat.Obj(o)] = name
		}
	}

	return cat.New(objects, morphisms, compositions, identities)
}

// BuildFunctor constructs a verified functor from a declaration and
// its already built source and target categories. Identity morphisms
// left out of the morphism map default to the identity of the mapped
// object, so declarations over discrete categories stay terse.
func BuildFunctor(d *FunctorDecl, src, dst *cat.Category) (*cat.Functor, error) {
	if src == nil || dst == nil {
		return nil, fmt.Errorf("functor %q: source and target categories must be built first", d.Name)
	}

	objMap := make(map[cat.Obj]cat.Obj, len(d.Objects))
	for from, to := range d.Objects {
		objMap[cat.Obj(from)] = cat.Obj(to)
	}

	morMap := make(map[string]string, len(d.Morphisms))
	for from, to := range d.Morphisms {
		morMap[from] = to
	}

	// Default unmapped identities to the target identity of the mapped
	// object.
	for _, o := range src.Objects() {
		id, err := src.Identity(o)
		if err != nil {
			return nil, err
		}
		if _, declared := morMap[id.Name]; declared {
			continue
		}
		target, ok := objMap[o]
		if !ok {
			continue
		}
		dstID, err := dst.Identity(target)
		if err != nil {
			return nil, err
		}
		morMap[id.Name] = dstID.Name
	}

	return cat.NewFunctor(src, dst, objMap, morMap)
}
