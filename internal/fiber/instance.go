package fiber

import (
	"fmt"

	"github.com/roach88/triptych/internal/cat"
)

// Action is the total element function an instance assigns to one
// morphism, mapping elements of the source fiber into the target fiber.
type Action func(Value) Value

// Instance assigns a fiber to every object of its category and an
// Action to every morphism, consistently with composition.
//
// An Instance is immutable after construction. Migration operators only
// read their inputs and allocate fresh outputs, so a shared Instance is
// safe for concurrent use without locking.
type Instance struct {
	category *cat.Category
	fibers   map[cat.Obj]Fiber
	actions  map[string]Action
}

// NewInstance constructs an instance over c.
//
// fibers must assign a fiber to every object of c; actions must assign
// an Action to every declared non-identity morphism. Identity morphisms
// default to the identity function unless explicitly supplied. A fiber
// or action keyed by an unknown object or morphism, and a missing fiber
// or action, are construction errors, never silently defaulted.
//
// Construction checks structure only. Functoriality is spot-checked
// separately by Verify, which takes an explicit pair limit.
func NewInstance(c *cat.Category, fibers map[cat.Obj]Fiber, actions map[string]Action) (*Instance, error) {
	inst := &Instance{
		category: c,
		fibers:   make(map[cat.Obj]Fiber, len(fibers)),
		actions:  make(map[string]Action),
	}

	for o, f := range fibers {
		if !c.HasObject(o) {
			return nil, fmt.Errorf("fiber for unknown object: %w", &cat.NotFoundError{Kind: "object", Name: string(o)})
		}
		inst.fibers[o] = f
	}
	for _, o := range c.Objects() {
		if _, ok := inst.fibers[o]; !ok {
			return nil, &cat.NotFoundError{Kind: "fiber", Name: string(o)}
		}
	}

	for name, a := range actions {
		if _, err := c.Morphism(name); err != nil {
			return nil, fmt.Errorf("action for unknown morphism: %w", err)
		}
		inst.actions[name] = a
	}
	for _, m := range c.Morphisms() {
		if _, ok := inst.actions[m.Name]; ok {
			continue
		}
		id, err := c.Identity(m.Src)
		if err == nil && id.Name == m.Name {
			inst.actions[m.Name] = func(v Value) Value { return v }
			continue
		}
		return nil, &cat.NotFoundError{Kind: "morphism", Name: m.Name}
	}

	return inst, nil
}

// Category returns the category the instance is indexed over.
func (i *Instance) Category() *cat.Category { return i.category }

// Get returns the fiber assigned to an object. Fibers are immutable, so
// the returned value is safe to share.
func (i *Instance) Get(o cat.Obj) (Fiber, error) {
	f, ok := i.fibers[o]
	if !ok {
		return Fiber{}, &cat.NotFoundError{Kind: "fiber", Name: string(o)}
	}
	return f, nil
}

// Act applies the Action assigned to a morphism to one element.
func (i *Instance) Act(morphism string, v Value) (Value, error) {
	a, ok := i.actions[morphism]
	if !ok {
		return nil, &cat.NotFoundError{Kind: "morphism", Name: morphism}
	}
	return a(v), nil
}

// Action returns the element function assigned to a morphism.
func (i *Instance) Action(morphism string) (Action, error) {
	a, ok := i.actions[morphism]
	if !ok {
		return nil, &cat.NotFoundError{Kind: "morphism", Name: morphism}
	}
	return a, nil
}

// VerifyReport says how much of the functoriality check Verify actually
// ran, so callers can see when the result is a sampling approximation.
type VerifyReport struct {
	// PairsTotal is the number of composable pairs in the category.
	PairsTotal int

	// PairsChecked is how many pairs were checked under the limit.
	PairsChecked int

	// ElementsChecked is the total number of element comparisons run.
	ElementsChecked int

	// Sampled is true when PairsChecked < PairsTotal.
	Sampled bool
}

// Verify spot-checks functoriality: for a composable pair (f, g) with
// declared composite h, Act(h, x) must equal Act(g, Act(f, x)) for every
// element x of f's source fiber.
//
// maxPairs bounds how many composable pairs are checked; pairs are taken
// in the category's deterministic declaration order, so repeated runs
// check the same sample. maxPairs <= 0 checks every pair. For large
// schemas this is an explicit sampling approximation; the report states
// what was covered, it is never a silent skip.
func (i *Instance) Verify(maxPairs int) (VerifyReport, error) {
	pairs := i.category.ComposablePairs()
	report := VerifyReport{PairsTotal: len(pairs)}

	limit := len(pairs)
	if maxPairs > 0 && maxPairs < limit {
		limit = maxPairs
	}

	for _, p := range pairs[:limit] {
		f, g := p[0], p[1]
		h, err := i.category.Compose(f.Name, g.Name)
		if err != nil {
			return report, err
		}
		src, err := i.Get(f.Src)
		if err != nil {
			return report, err
		}
		for _, x := range src.Elems() {
			viaF, err := i.Act(f.Name, x)
			if err != nil {
				return report, err
			}
			stepwise, err := i.Act(g.Name, viaF)
			if err != nil {
				return report, err
			}
			direct, err := i.Act(h.Name, x)
			if err != nil {
				return report, err
			}
			report.ElementsChecked++
			if direct != stepwise {
				return report, &cat.LawViolation{
					Code: cat.ErrCodeFunctoriality,
					Message: fmt.Sprintf("action of %q on %s gives %s, but %q then %q gives %s",
						h.Name, formatValue(x), formatValue(direct), f.Name, g.Name, formatValue(stepwise)),
					Offenders: []string{f.Name, g.Name, h.Name},
				}
			}
		}
		report.PairsChecked++
	}

	report.Sampled = report.PairsChecked < report.PairsTotal
	return report, nil
}

// Snapshot returns a canonical-marshalable view of every fiber, keyed by
// object identifier. Actions are not part of the snapshot; they are
// functions.
func (i *Instance) Snapshot() map[string]any {
	out := make(map[string]any, len(i.fibers))
	for o, f := range i.fibers {
		out[string(o)] = f.Snapshot()
	}
	return out
}
