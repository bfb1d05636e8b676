package migrate

import (
	"github.com/roach88/triptych/internal/cat"
	"github.com/roach88/triptych/internal/fiber"
)

// Group is the transient fiber group for one target object: the source
// objects sharing that image under the functor, with their fibers. A
// Group is scoped to a single Aggregate or Filter call and discarded
// afterward.
type Group struct {
	Target  cat.Obj
	Members []Member
}

// groupsFor partitions the source instance's fibers by image object, in
// target-object declaration order with members in sorted source-object
// order. Deterministic grouping keeps combiner folds and provenance
// bit-identical across calls.
func groupsFor(f *cat.Functor, source *fiber.Instance) ([]Group, error) {
	targets := f.Dst().Objects()
	groups := make([]Group, 0, len(targets))
	for _, d := range targets {
		g := Group{Target: d}
		for _, c := range f.Preimage(d) {
			fib, err := source.Get(c)
			if err != nil {
				return nil, err
			}
			g.Members = append(g.Members, Member{Obj: c, Fiber: fib})
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// sourcesOf lists the member objects of a group.
func sourcesOf(g Group) []cat.Obj {
	out := make([]cat.Obj, len(g.Members))
	for i, m := range g.Members {
		out[i] = m.Obj
	}
	return out
}

// fibersOf lists the member fibers of a group.
func fibersOf(g Group) []fiber.Fiber {
	out := make([]fiber.Fiber, len(g.Members))
	for i, m := range g.Members {
		out[i] = m.Fiber
	}
	return out
}

// passthroughActions assigns the identity element function to every
// non-identity morphism of c. Aggregate and Filter results use this;
// their targets are typically discrete and the functor does not
// determine induced maps for anything richer.
func passthroughActions(c *cat.Category) map[string]fiber.Action {
	actions := make(map[string]fiber.Action)
	for _, m := range c.Morphisms() {
		id, err := c.Identity(m.Src)
		if err == nil && id.Name == m.Name {
			continue // identity actions default in NewInstance
		}
		actions[m.Name] = func(v fiber.Value) fiber.Value { return v }
	}
	return actions
}
