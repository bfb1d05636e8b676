package migrate

import (
	"fmt"
	"math"

	"github.com/roach88/triptych/internal/cat"
	"github.com/roach88/triptych/internal/fiber"
)

// WeightTolerance is the floating tolerance the weighted-mean combiner
// accepts when checking that weights sum to exactly 1.0.
const WeightTolerance = 1e-9

// Member is one entry of a fiber group: a source object together with
// its fiber, grouped under a shared image object for the duration of a
// single Aggregate or Filter call.
type Member struct {
	Obj   cat.Obj
	Fiber fiber.Fiber
}

// Combiner folds the member fibers of a non-empty, non-singleton fiber
// group into one result fiber for the target object. Combiners must be
// associative; Aggregate never calls a combiner for groups of size zero
// or one (see the singleton law on Aggregate).
type Combiner interface {
	// Name identifies the combiner in provenance records.
	Name() string

	// Combine folds the member fibers into the fiber for target.
	Combine(target cat.Obj, members []Member) (fiber.Fiber, error)
}

// UnionCombiner is the default combiner: the deduplicated union of the
// member fibers, in canonical element order. This is the general
// colimit-style combination.
type UnionCombiner struct{}

// Name implements Combiner.
func (UnionCombiner) Name() string { return "union" }

// Combine implements Combiner.
func (UnionCombiner) Combine(target cat.Obj, members []Member) (fiber.Fiber, error) {
	seen := make(map[fiber.Value]bool)
	var elems []fiber.Value
	for _, m := range members {
		for _, e := range m.Fiber.Elems() {
			if !seen[e] {
				seen[e] = true
				elems = append(elems, e)
			}
		}
	}
	return fiber.New(string(target), elems...), nil
}

// WeightedMeanCombiner combines singleton numeric fibers into one scalar
// via a fixed per-object weight vector. It is a named domain-specific
// extension of Aggregate used for multi-dimension scoring, not an
// instance of the universal colimit.
type WeightedMeanCombiner struct {
	weights map[cat.Obj]float64
}

// NewWeightedMean constructs a weighted-mean combiner.
//
// Weights must be non-empty, finite, non-negative, and sum to exactly
// 1.0 within WeightTolerance. A malformed vector is rejected here with
// *InvalidWeightsError, before any aggregation executes. It is never
// silently renormalized.
func NewWeightedMean(weights map[cat.Obj]float64) (*WeightedMeanCombiner, error) {
	if len(weights) == 0 {
		return nil, &InvalidWeightsError{Message: "weight vector is empty"}
	}
	sum := 0.0
	for o, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, &InvalidWeightsError{
				Message: fmt.Sprintf("weight %v is not finite", w),
				Object:  string(o),
			}
		}
		if w < 0 {
			return nil, &InvalidWeightsError{
				Message: fmt.Sprintf("weight %v is negative", w),
				Object:  string(o),
			}
		}
		sum += w
	}
	if math.Abs(sum-1.0) > WeightTolerance {
		return nil, &InvalidWeightsError{
			Message: fmt.Sprintf("weights sum to %v, want 1.0", sum),
			Sum:     sum,
		}
	}

	c := &WeightedMeanCombiner{weights: make(map[cat.Obj]float64, len(weights))}
	for o, w := range weights {
		c.weights[o] = w
	}
	return c, nil
}

// Name implements Combiner.
func (*WeightedMeanCombiner) Name() string { return "weighted-mean" }

// Weights returns a copy of the weight vector, for provenance records.
func (c *WeightedMeanCombiner) Weights() map[cat.Obj]float64 {
	out := make(map[cat.Obj]float64, len(c.weights))
	for o, w := range c.weights {
		out[o] = w
	}
	return out
}

// Combine implements Combiner. Every member must carry exactly one
// numeric element and have a weight entry; anything else is an
// *InvalidWeightsError for this call.
func (c *WeightedMeanCombiner) Combine(target cat.Obj, members []Member) (fiber.Fiber, error) {
	total := 0.0
	for _, m := range members {
		w, ok := c.weights[m.Obj]
		if !ok {
			return fiber.Fiber{}, &InvalidWeightsError{
				Message: "group member has no weight entry",
				Object:  string(m.Obj),
			}
		}
		if m.Fiber.Len() != 1 {
			return fiber.Fiber{}, &InvalidWeightsError{
				Message: fmt.Sprintf("weighted mean needs exactly one element per member fiber, got %d", m.Fiber.Len()),
				Object:  string(m.Obj),
			}
		}
		x, ok := fiber.Numeric(m.Fiber.Elems()[0])
		if !ok {
			return fiber.Fiber{}, &InvalidWeightsError{
				Message: "weighted mean needs numeric elements",
				Object:  string(m.Obj),
			}
		}
		total += w * x
	}
	return fiber.New(string(target), fiber.VFloat(total)), nil
}
