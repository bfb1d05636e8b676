package migrate

import (
	"fmt"

	"github.com/roach88/triptych/internal/cat"
	"github.com/roach88/triptych/internal/fiber"
)

// Predicate is a named element test for Filter. The name appears in
// provenance records.
type Predicate struct {
	Name string
	Test func(fiber.Value) bool
}

// AtLeast returns a predicate satisfied by numeric elements greater
// than or equal to min. Non-numeric elements fail it.
func AtLeast(min float64) Predicate {
	return Predicate{
		Name: fmt.Sprintf("at-least-%v", min),
		Test: func(v fiber.Value) bool {
			x, ok := fiber.Numeric(v)
			return ok && x >= min
		},
	}
}

// IsTrue is satisfied only by the boolean element true.
var IsTrue = Predicate{
	Name: "is-true",
	Test: func(v fiber.Value) bool {
		b, ok := v.(fiber.VBool)
		return ok && bool(b)
	},
}

// IsFalse is satisfied only by the boolean element false.
var IsFalse = Predicate{
	Name: "is-false",
	Test: func(v fiber.Value) bool {
		b, ok := v.(fiber.VBool)
		return ok && !bool(b)
	},
}

// Filter migrates a source instance forward along the functor as an
// all-must-satisfy intersection (Π): the verdict for a target object
// passes only if every element of every member fiber in its group
// satisfies the predicate. A single failing element vetoes the whole
// group; every veto is recorded, not just the first.
//
// Empty-group policy: an empty group passes vacuously and the verdict
// carries Vacuous=true so callers can warn. This is a deliberate,
// documented choice (the limit over an empty diagram is terminal), not
// an inherited default.
//
// The result fiber for each target object holds the single boolean
// verdict; the detailed outcome is in Result.Verdicts.
func Filter(f *cat.Functor, source *fiber.Instance, pred Predicate, opts ...Option) (*Result, error) {
	o := buildOptions(opts)
	dst := f.Dst()

	groups, err := groupsFor(f, source)
	if err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}

	fibers := make(map[cat.Obj]fiber.Fiber, len(groups))
	derivations := make([]Derivation, 0, len(groups))
	verdicts := make([]Verdict, 0, len(groups))
	for _, g := range groups {
		verdict := Verdict{Target: g.Target, Passed: true, Vacuous: len(g.Members) == 0}
		for _, m := range g.Members {
			for _, e := range m.Fiber.Elems() {
				if !pred.Test(e) {
					verdict.Passed = false
					verdict.Vetoes = append(verdict.Vetoes, Veto{Source: m.Obj, Element: e})
				}
			}
		}
		verdicts = append(verdicts, verdict)

		out := fiber.New(string(g.Target), fiber.VBool(verdict.Passed))
		fibers[g.Target] = out

		d, err := derive(Derivation{
			Op:      OpFilter,
			Target:  g.Target,
			Sources: sourcesOf(g),
			Members: fibersOf(g),
			Rule:    pred.Name,
			Output:  out,
		})
		if err != nil {
			return nil, err
		}
		derivations = append(derivations, d)
	}

	inst, err := fiber.NewInstance(dst, fibers, passthroughActions(dst))
	if err != nil {
		return nil, err
	}

	return &Result{
		Token:       o.tokens.Generate(),
		Op:          OpFilter,
		Instance:    inst,
		Derivations: derivations,
		Verdicts:    verdicts,
	}, nil
}
