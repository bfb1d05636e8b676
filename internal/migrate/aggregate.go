package migrate

import (
	"fmt"

	"github.com/roach88/triptych/internal/cat"
	"github.com/roach88/triptych/internal/fiber"
)

// Aggregate combines a source instance forward along the functor (Σ):
// for every target object d, the source objects mapping to d form a
// fiber group whose member fibers are folded by the combiner.
//
// Group laws:
//   - empty group: the result fiber is empty;
//   - singleton group: the member fiber is returned unchanged;
//     aggregation never distorts a single input;
//   - larger groups: the caller-supplied combiner folds the members in
//     deterministic sorted-source order.
//
// Combiner configuration errors (InvalidWeightsError) and missing
// fibers (cat.NotFoundError) are scoped to this call and never replaced
// by defaults.
func Aggregate(f *cat.Functor, source *fiber.Instance, comb Combiner, opts ...Option) (*Result, error) {
	o := buildOptions(opts)
	dst := f.Dst()

	groups, err := groupsFor(f, source)
	if err != nil {
		return nil, fmt.Errorf("aggregate: %w", err)
	}

	fibers := make(map[cat.Obj]fiber.Fiber, len(groups))
	derivations := make([]Derivation, 0, len(groups))
	for _, g := range groups {
		var out fiber.Fiber
		switch len(g.Members) {
		case 0:
			out = fiber.New(string(g.Target))
		case 1:
			out = g.Members[0].Fiber
		default:
			out, err = comb.Combine(g.Target, g.Members)
			if err != nil {
				return nil, fmt.Errorf("aggregate %q: %w", g.Target, err)
			}
		}
		fibers[g.Target] = out

		d := Derivation{
			Op:      OpAggregate,
			Target:  g.Target,
			Sources: sourcesOf(g),
			Members: fibersOf(g),
			Rule:    comb.Name(),
			Output:  out,
		}
		if wm, ok := comb.(*WeightedMeanCombiner); ok {
			d.Weights = wm.Weights()
		}
		d, err = derive(d)
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
		Op:          OpAggregate,
		Instance:    inst,
		Derivations: derivations,
	}, nil
}
