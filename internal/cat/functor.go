package cat

import (
	"fmt"
	"slices"
)

// Functor is a verified structure-preserving map between two categories.
// It references its source and target categories without owning them;
// both may be shared freely.
//
// Like Category, a Functor is immutable after construction and safe for
// concurrent use.
type Functor struct {
	src    *Category
	dst    *Category
	objMap map[Obj]Obj
	morMap map[string]string
}

// NewFunctor constructs and verifies a functor from src to dst.
//
// objMap must send every source object to an object of dst. morMap must
// send every source morphism to a dst morphism whose endpoints are the
// images of the source endpoints, preserve identities, and preserve
// composition. Verification runs here and the first violation is
// returned as a *LawViolation; a Functor that fails verification is
// never returned.
func NewFunctor(src, dst *Category, objMap map[Obj]Obj, morMap map[string]string) (*Functor, error) {
	f := &Functor{
		src:    src,
		dst:    dst,
		objMap: make(map[Obj]Obj, len(objMap)),
		morMap: make(map[string]string, len(morMap)),
	}
	for k, v := range objMap {
		f.objMap[k] = v
	}
	for k, v := range morMap {
		f.morMap[k] = v
	}
	if err := f.verify(); err != nil {
		return nil, err
	}
	return f, nil
}

// Identity returns the identity functor on c. Reindexing along it is the
// identity on instances.
func Identity(c *Category) *Functor {
	f := &Functor{
		src:    c,
		dst:    c,
		objMap: make(map[Obj]Obj, len(c.objects)),
		morMap: make(map[string]string, len(c.morphs)),
	}
	for _, o := range c.objects {
		f.objMap[o] = o
	}
	for _, name := range c.morphs {
		f.morMap[name] = name
	}
	return f
}

// Src returns the source category.
func (f *Functor) Src() *Category { return f.src }

// Dst returns the target category.
func (f *Functor) Dst() *Category { return f.dst }

// Obj applies the object map.
func (f *Functor) Obj(o Obj) (Obj, error) {
	img, ok := f.objMap[o]
	if !ok {
		return "", &NotFoundError{Kind: "object", Name: string(o)}
	}
	return img, nil
}

// Mor applies the morphism map, returning the image morphism of the
// target category.
func (f *Functor) Mor(name string) (Morphism, error) {
	img, ok := f.morMap[name]
	if !ok {
		return Morphism{}, &NotFoundError{Kind: "morphism", Name: name}
	}
	return f.dst.Morphism(img)
}

// Preimage returns the source objects mapping to d, sorted by identifier
// for deterministic grouping. The result may be empty.
func (f *Functor) Preimage(d Obj) []Obj {
	var pre []Obj
	for _, o := range f.src.objects {
		if f.objMap[o] == d {
			pre = append(pre, o)
		}
	}
	slices.Sort(pre)
	return pre
}

// verify checks totality, endpoint preservation, identity preservation,
// and composition preservation. Fails fast on the first offending object
// or pair.
func (f *Functor) verify() error {
	for _, o := range f.src.objects {
		img, ok := f.objMap[o]
		if !ok {
			return &LawViolation{
				Code:      ErrCodeMapIncomplete,
				Message:   fmt.Sprintf("object map does not cover source object %q", o),
				Offenders: []string{string(o)},
			}
		}
		if !f.dst.objectSet[img] {
			return &LawViolation{
				Code:      ErrCodeObjectUnknown,
				Message:   fmt.Sprintf("object map sends %q to %q, which is not in the target category", o, img),
				Offenders: []string{string(o), string(img)},
			}
		}
	}

	// Endpoint preservation: F(f): F(A)→F(B) for every f: A→B.
	for _, name := range f.src.morphs {
		m := f.src.morphisms[name]
		imgName, ok := f.morMap[name]
		if !ok {
			return &LawViolation{
				Code:      ErrCodeMapIncomplete,
				Message:   fmt.Sprintf("morphism map does not cover source morphism %q", name),
				Offenders: []string{name},
			}
		}
		img, ok := f.dst.morphisms[imgName]
		if !ok {
			return &LawViolation{
				Code:      ErrCodeMorphismUnknown,
				Message:   fmt.Sprintf("morphism map sends %q to %q, which is not in the target category", name, imgName),
				Offenders: []string{name, imgName},
			}
		}
		if img.Src != f.objMap[m.Src] || img.Dst != f.objMap[m.Dst] {
			return &LawViolation{
				Code:      ErrCodeEndpointMismatch,
				Message:   fmt.Sprintf("image of %q is %q with endpoints %q→%q, want %q→%q", name, imgName, img.Src, img.Dst, f.objMap[m.Src], f.objMap[m.Dst]),
				Offenders: []string{name, imgName},
			}
		}
	}

	// Identity preservation: F(id_A) = id_{F(A)}.
	for _, o := range f.src.objects {
		srcID := f.src.identity[o]
		wantID := f.dst.identity[f.objMap[o]]
		if f.morMap[srcID] != wantID {
			return &LawViolation{
				Code:      ErrCodeIdentityPreservation,
				Message:   fmt.Sprintf("identity of %q maps to %q, want identity %q of %q", o, f.morMap[srcID], wantID, f.objMap[o]),
				Offenders: []string{string(o), srcID},
			}
		}
	}

	// Composition preservation: F(f;g) = F(f);F(g) for every composable pair.
	for _, p := range f.src.composablePairs() {
		fm, gm := p[0], p[1]
		srcComposite := f.src.compose[composeKey{fm.Name, gm.Name}]
		want, err := f.dst.Compose(f.morMap[fm.Name], f.morMap[gm.Name])
		if err != nil {
			return &LawViolation{
				Code:      ErrCodeCompositionPreservation,
				Message:   fmt.Sprintf("images of (%q, %q) are not composable in the target category", fm.Name, gm.Name),
				Offenders: []string{fm.Name, gm.Name},
			}
		}
		if f.morMap[srcComposite] != want.Name {
			return &LawViolation{
				Code:      ErrCodeCompositionPreservation,
				Message:   fmt.Sprintf("F(%s;%s) = %q but F(%s);F(%s) = %q", fm.Name, gm.Name, f.morMap[srcComposite], fm.Name, gm.Name, want.Name),
				Offenders: []string{fm.Name, gm.Name},
			}
		}
	}

	return nil
}
