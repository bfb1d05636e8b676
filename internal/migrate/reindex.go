package migrate

import (
	"fmt"

	"github.com/roach88/triptych/internal/cat"
	"github.com/roach88/triptych/internal/fiber"
)

// Reindex pulls an instance on the functor's target category backward
// along the functor (Δ): the result assigns to every source object c
// the fiber of F(c) and to every source morphism f the element function
// of F(f). No data is duplicated or transformed.
//
// Reindex is pure and total over the verified structures. A fiber or
// action missing from the target instance surfaces as a
// cat.NotFoundError for this call, never as a silent default. Along the
// identity functor, Reindex is the identity on instances.
func Reindex(f *cat.Functor, target *fiber.Instance, opts ...Option) (*Result, error) {
	o := buildOptions(opts)
	src := f.Src()

	fibers := make(map[cat.Obj]fiber.Fiber, len(src.Objects()))
	derivations := make([]Derivation, 0, len(src.Objects()))
	for _, c := range src.Objects() {
		img, err := f.Obj(c)
		if err != nil {
			return nil, fmt.Errorf("reindex object %q: %w", c, err)
		}
		fib, err := target.Get(img)
		if err != nil {
			return nil, fmt.Errorf("reindex object %q: %w", c, err)
		}
		fibers[c] = fib

		d, err := derive(Derivation{
			Op:      OpReindex,
			Target:  c,
			Sources: []cat.Obj{img},
			Members: []fiber.Fiber{fib},
			Rule:    "pullback",
			Output:  fib,
		})
		if err != nil {
			return nil, err
		}
		derivations = append(derivations, d)
	}

	actions := make(map[string]fiber.Action)
	for _, m := range src.Morphisms() {
		img, err := f.Mor(m.Name)
		if err != nil {
			return nil, fmt.Errorf("reindex morphism %q: %w", m.Name, err)
		}
		a, err := target.Action(img.Name)
		if err != nil {
			return nil, fmt.Errorf("reindex morphism %q: %w", m.Name, err)
		}
		actions[m.Name] = a
	}

	inst, err := fiber.NewInstance(src, fibers, actions)
	if err != nil {
		return nil, err
	}

	return &Result{
		Token:       o.tokens.Generate(),
		Op:          OpReindex,
		Instance:    inst,
		Derivations: derivations,
	}, nil
}
