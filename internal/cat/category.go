package cat

import (
	"fmt"
	"slices"
)

// Obj is an opaque object identifier, unique within one category and
// compared by value.
type Obj string

// Morphism is a named, directed edge between two objects. Morphisms are
// compared by name within their owning category.
type Morphism struct {
	Name string `json:"name"`
	Src  Obj    `json:"src"`
	Dst  Obj    `json:"dst"`
}

// Composition declares one row of a composition table: First; Then = Is,
// where First: A→B, Then: B→C, and Is: A→C. Identity rows are synthesized
// by the constructor and must not be declared.
type Composition struct {
	First string `json:"first"`
	Then  string `json:"then"`
	Is    string `json:"is"`
}

// composeKey indexes the composition table by (first, then) names.
type composeKey struct {
	first string
	then  string
}

// Category is a finite category: objects, morphisms, a total composition
// table over composable pairs, and an identity morphism per object.
//
// A Category is constructed once from a static declaration, verified at
// construction, and never mutated afterward. It may be shared freely
// across goroutines without synchronization.
type Category struct {
	objects   []Obj
	objectSet map[Obj]bool
	morphisms map[string]Morphism
	morphs    []string // declaration order, identities appended last
	compose   map[composeKey]string
	identity  map[Obj]string
}

// New constructs and verifies a Category from a static declaration.
//
// Objects and morphisms are the declared sets; compositions is the
// composition table for non-identity composable pairs; identities
// optionally names a declared morphism as the identity of an object.
// Objects without a declared identity get a synthesized "id:<object>"
// morphism, and unit-law rows (id;f = f, f;id = f) are synthesized for
// every morphism.
//
// Verification runs here, not lazily: the identity law and the
// associativity law are checked over every composable pair and triple,
// and the first violation is returned as a *LawViolation. A Category
// that fails verification is never returned.
func New(objects []Obj, morphisms []Morphism, compositions []Composition, identities map[Obj]string) (*Category, error) {
	c := &Category{
		objectSet: make(map[Obj]bool, len(objects)),
		morphisms: make(map[string]Morphism, len(morphisms)),
		compose:   make(map[composeKey]string),
		identity:  make(map[Obj]string, len(objects)),
	}

	for _, o := range objects {
		if c.objectSet[o] {
			return nil, &LawViolation{
				Code:      ErrCodeDuplicate,
				Message:   fmt.Sprintf("duplicate object %q", o),
				Offenders: []string{string(o)},
			}
		}
		c.objectSet[o] = true
		c.objects = append(c.objects, o)
	}

	for _, m := range morphisms {
		if _, dup := c.morphisms[m.Name]; dup {
			return nil, &LawViolation{
				Code:      ErrCodeDuplicate,
				Message:   fmt.Sprintf("duplicate morphism %q", m.Name),
				Offenders: []string{m.Name},
			}
		}
		if !c.objectSet[m.Src] {
			return nil, &LawViolation{
				Code:      ErrCodeObjectUnknown,
				Message:   fmt.Sprintf("morphism %q has unknown source object %q", m.Name, m.Src),
				Offenders: []string{m.Name, string(m.Src)},
			}
		}
		if !c.objectSet[m.Dst] {
			return nil, &LawViolation{
				Code:      ErrCodeObjectUnknown,
				Message:   fmt.Sprintf("morphism %q has unknown target object %q", m.Name, m.Dst),
				Offenders: []string{m.Name, string(m.Dst)},
			}
		}
		c.morphisms[m.Name] = m
		c.morphs = append(c.morphs, m.Name)
	}

	if err := c.bindIdentities(identities); err != nil {
		return nil, err
	}

	// Declared composition rows for non-identity pairs.
	for _, row := range compositions {
		if err := c.addComposition(row); err != nil {
			return nil, err
		}
	}

	// Synthesized unit rows. Added after declared rows so a declared
	// row that contradicts a unit law is caught by verify below.
	for _, name := range c.morphs {
		m := c.morphisms[name]
		c.defaultRow(composeKey{c.identity[m.Src], name}, name)
		c.defaultRow(composeKey{name, c.identity[m.Dst]}, name)
	}

	if err := c.verify(); err != nil {
		return nil, err
	}
	return c, nil
}

// bindIdentities records declared identities and synthesizes the rest.
func (c *Category) bindIdentities(identities map[Obj]string) error {
	for o, name := range identities {
		if !c.objectSet[o] {
			return &LawViolation{
				Code:      ErrCodeObjectUnknown,
				Message:   fmt.Sprintf("identity table references unknown object %q", o),
				Offenders: []string{string(o)},
			}
		}
		m, ok := c.morphisms[name]
		if !ok {
			return &LawViolation{
				Code:      ErrCodeMorphismUnknown,
				Message:   fmt.Sprintf("identity table references unknown morphism %q", name),
				Offenders: []string{string(o), name},
			}
		}
		if m.Src != o || m.Dst != o {
			return &LawViolation{
				Code:      ErrCodeIdentityMissing,
				Message:   fmt.Sprintf("declared identity %q for object %q is not an endomorphism of it", name, o),
				Offenders: []string{string(o), name},
			}
		}
		c.identity[o] = name
	}

	for _, o := range c.objects {
		if _, ok := c.identity[o]; ok {
			continue
		}
		name := "id:" + string(o)
		if _, taken := c.morphisms[name]; taken {
			return &LawViolation{
				Code:      ErrCodeDuplicate,
				Message:   fmt.Sprintf("morphism name %q collides with synthesized identity", name),
				Offenders: []string{name},
			}
		}
		c.morphisms[name] = Morphism{Name: name, Src: o, Dst: o}
		c.morphs = append(c.morphs, name)
		c.identity[o] = name
	}
	return nil
}

// addComposition validates and records one declared composition row.
func (c *Category) addComposition(row Composition) error {
	f, ok := c.morphisms[row.First]
	if !ok {
		return &LawViolation{
			Code:      ErrCodeMorphismUnknown,
			Message:   fmt.Sprintf("composition row references unknown morphism %q", row.First),
			Offenders: []string{row.First, row.Then, row.Is},
		}
	}
	g, ok := c.morphisms[row.Then]
	if !ok {
		return &LawViolation{
			Code:      ErrCodeMorphismUnknown,
			Message:   fmt.Sprintf("composition row references unknown morphism %q", row.Then),
			Offenders: []string{row.First, row.Then, row.Is},
		}
	}
	h, ok := c.morphisms[row.Is]
	if !ok {
		return &LawViolation{
			Code:      ErrCodeMorphismUnknown,
			Message:   fmt.Sprintf("composition row references unknown morphism %q", row.Is),
			Offenders: []string{row.First, row.Then, row.Is},
		}
	}
	if f.Dst != g.Src {
		return &LawViolation{
			Code:      ErrCodeCompositionEndpoints,
			Message:   fmt.Sprintf("factors %q and %q do not meet: %q ends at %q, %q starts at %q", f.Name, g.Name, f.Name, f.Dst, g.Name, g.Src),
			Offenders: []string{f.Name, g.Name},
		}
	}
	if h.Src != f.Src || h.Dst != g.Dst {
		return &LawViolation{
			Code:      ErrCodeCompositionEndpoints,
			Message:   fmt.Sprintf("composite %q has endpoints %q→%q, want %q→%q", h.Name, h.Src, h.Dst, f.Src, g.Dst),
			Offenders: []string{f.Name, g.Name, h.Name},
		}
	}
	key := composeKey{f.Name, g.Name}
	if prev, dup := c.compose[key]; dup && prev != h.Name {
		return &LawViolation{
			Code:      ErrCodeDuplicate,
			Message:   fmt.Sprintf("conflicting composition rows for (%q, %q): %q and %q", f.Name, g.Name, prev, h.Name),
			Offenders: []string{f.Name, g.Name},
		}
	}
	c.compose[key] = h.Name
	return nil
}

// defaultRow records a synthesized row unless a declared row exists.
func (c *Category) defaultRow(key composeKey, is string) {
	if _, ok := c.compose[key]; !ok {
		c.compose[key] = is
	}
}

// Objects returns the object identifiers in declaration order.
// The returned slice is a copy.
func (c *Category) Objects() []Obj {
	return slices.Clone(c.objects)
}

// Morphisms returns all morphisms, declared first and synthesized
// identities last. The returned slice is a copy.
func (c *Category) Morphisms() []Morphism {
	out := make([]Morphism, 0, len(c.morphs))
	for _, name := range c.morphs {
		out = append(out, c.morphisms[name])
	}
	return out
}

// HasObject reports whether the object is in the category.
func (c *Category) HasObject(o Obj) bool {
	return c.objectSet[o]
}

// Morphism looks up a morphism by name.
func (c *Category) Morphism(name string) (Morphism, error) {
	m, ok := c.morphisms[name]
	if !ok {
		return Morphism{}, &NotFoundError{Kind: "morphism", Name: name}
	}
	return m, nil
}

// Identity returns the identity morphism of an object.
func (c *Category) Identity(o Obj) (Morphism, error) {
	name, ok := c.identity[o]
	if !ok {
		return Morphism{}, &NotFoundError{Kind: "object", Name: string(o)}
	}
	return c.morphisms[name], nil
}

// Compose returns the declared composite of f then g (diagrammatic
// order: f: A→B, g: B→C, result A→C). Because the table is verified
// total at construction, Compose fails only for unknown or
// non-composable names.
func (c *Category) Compose(first, then string) (Morphism, error) {
	if _, ok := c.morphisms[first]; !ok {
		return Morphism{}, &NotFoundError{Kind: "morphism", Name: first}
	}
	if _, ok := c.morphisms[then]; !ok {
		return Morphism{}, &NotFoundError{Kind: "morphism", Name: then}
	}
	name, ok := c.compose[composeKey{first, then}]
	if !ok {
		return Morphism{}, &NotFoundError{Kind: "morphism", Name: first + ";" + then}
	}
	return c.morphisms[name], nil
}

// ComposablePairs returns every (f, g) with f.Dst == g.Src, in
// deterministic declaration order. Used by functor verification and by
// instance functoriality spot checks.
func (c *Category) ComposablePairs() [][2]Morphism {
	return c.composablePairs()
}

// composablePairs returns every (f, g) with f.Dst == g.Src, in
// deterministic declaration order.
func (c *Category) composablePairs() [][2]Morphism {
	var pairs [][2]Morphism
	for _, fn := range c.morphs {
		f := c.morphisms[fn]
		for _, gn := range c.morphs {
			g := c.morphisms[gn]
			if f.Dst == g.Src {
				pairs = append(pairs, [2]Morphism{f, g})
			}
		}
	}
	return pairs
}

// verify checks totality of the composition table, the unit laws, and
// associativity over every composable triple. It fails fast, naming the
// first offender, per the construction contract.
func (c *Category) verify() error {
	for _, o := range c.objects {
		if _, ok := c.identity[o]; !ok {
			return &LawViolation{
				Code:      ErrCodeIdentityMissing,
				Message:   fmt.Sprintf("object %q has no identity morphism", o),
				Offenders: []string{string(o)},
			}
		}
	}

	pairs := c.composablePairs()

	// Totality: every composable pair has a row with correct endpoints.
	for _, p := range pairs {
		f, g := p[0], p[1]
		name, ok := c.compose[composeKey{f.Name, g.Name}]
		if !ok {
			return &LawViolation{
				Code:      ErrCodeCompositionIncomplete,
				Message:   fmt.Sprintf("no composition row for composable pair (%q, %q)", f.Name, g.Name),
				Offenders: []string{f.Name, g.Name},
			}
		}
		h := c.morphisms[name]
		if h.Src != f.Src || h.Dst != g.Dst {
			return &LawViolation{
				Code:      ErrCodeCompositionEndpoints,
				Message:   fmt.Sprintf("composite of (%q, %q) is %q with endpoints %q→%q, want %q→%q", f.Name, g.Name, h.Name, h.Src, h.Dst, f.Src, g.Dst),
				Offenders: []string{f.Name, g.Name, h.Name},
			}
		}
	}

	// Unit laws: id;f = f and f;id = f for every morphism.
	for _, name := range c.morphs {
		m := c.morphisms[name]
		left := c.compose[composeKey{c.identity[m.Src], name}]
		if left != name {
			return &LawViolation{
				Code:      ErrCodeIdentityLaw,
				Message:   fmt.Sprintf("identity of %q is not a left unit for %q: got %q", m.Src, name, left),
				Offenders: []string{string(m.Src), name},
			}
		}
		right := c.compose[composeKey{name, c.identity[m.Dst]}]
		if right != name {
			return &LawViolation{
				Code:      ErrCodeIdentityLaw,
				Message:   fmt.Sprintf("identity of %q is not a right unit for %q: got %q", m.Dst, name, right),
				Offenders: []string{string(m.Dst), name},
			}
		}
	}

	// Associativity over every composable triple (f, g, h).
	for _, p := range pairs {
		f, g := p[0], p[1]
		fg := c.morphisms[c.compose[composeKey{f.Name, g.Name}]]
		for _, hn := range c.morphs {
			h := c.morphisms[hn]
			if g.Dst != h.Src {
				continue
			}
			gh := c.morphisms[c.compose[composeKey{g.Name, h.Name}]]
			leftName, ok := c.compose[composeKey{fg.Name, h.Name}]
			if !ok {
				return &LawViolation{
					Code:      ErrCodeCompositionIncomplete,
					Message:   fmt.Sprintf("no composition row for composable pair (%q, %q)", fg.Name, h.Name),
					Offenders: []string{fg.Name, h.Name},
				}
			}
			rightName, ok := c.compose[composeKey{f.Name, gh.Name}]
			if !ok {
				return &LawViolation{
					Code:      ErrCodeCompositionIncomplete,
					Message:   fmt.Sprintf("no composition row for composable pair (%q, %q)", f.Name, gh.Name),
					Offenders: []string{f.Name, gh.Name},
				}
			}
			if leftName != rightName {
				return &LawViolation{
					Code:      ErrCodeAssociativity,
					Message:   fmt.Sprintf("(%s;%s);%s = %q but %s;(%s;%s) = %q", f.Name, g.Name, h.Name, leftName, f.Name, g.Name, h.Name, rightName),
					Offenders: []string{f.Name, g.Name, h.Name},
				}
			}
		}
	}

	return nil
}
