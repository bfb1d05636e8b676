package harness

import (
	"fmt"

	"github.com/google/go-cmp/cmp"

	"github.com/roach88/triptych/internal/cat"
	"github.com/roach88/triptych/internal/fiber"
	"github.com/roach88/triptych/internal/migrate"
)

// Warning reports one adjunction correspondence that failed to hold on
// the sampled data. Warnings never fail a run; they flag schemas and
// data whose migration semantics deserve a second look at design time.
type Warning struct {
	// Adjunction names the round trip that mismatched:
	// "sigma-dashv-delta" or "delta-dashv-pi".
	Adjunction string

	// Object is where the mismatch was observed.
	Object cat.Obj

	// Message describes the mismatch, including a diff where one helps.
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s at %q: %s", w.Adjunction, w.Object, w.Message)
}

// CheckAdjunction verifies the natural correspondences between the
// migration operators on a finite sample: one functor, one instance
// over its source category, one combiner, and one filter predicate.
//
// Three round trips are checked, up to the element-wise fiber equality
// the operators compute under:
//
//  1. Σ⊣Δ unit: every element of a source fiber survives into the
//     pullback of its aggregate.
//  2. Σ⊣Δ counit: aggregating the pullback of an aggregate reproduces
//     the aggregate.
//  3. Δ⊣Π: the pulled-back filter verdict at a source object agrees
//     with evaluating the predicate directly over the object's group.
//
// Mismatches are reported as warnings, never as failures. The union
// combiner satisfies all three; the weighted mean deliberately trades
// the unit away for a scalar summary, and a schema designer needs to
// see where.
func CheckAdjunction(f *cat.Functor, source *fiber.Instance, comb migrate.Combiner, pred migrate.Predicate) ([]Warning, error) {
	var warnings []Warning

	agg, err := migrate.Aggregate(f, source, comb)
	if err != nil {
		return nil, fmt.Errorf("adjunction check: aggregate: %w", err)
	}
	pulled, err := migrate.Reindex(f, agg.Instance)
	if err != nil {
		return nil, fmt.Errorf("adjunction check: reindex of aggregate: %w", err)
	}

	// Unit: source fiber elements must be contained in Δ(Σ source).
	for _, c := range f.Src().Objects() {
		orig, err := source.Get(c)
		if err != nil {
			return nil, err
		}
		back, err := pulled.Instance.Get(c)
		if err != nil {
			return nil, err
		}
		for _, e := range orig.Elems() {
			if !back.Contains(e) {
				warnings = append(warnings, Warning{
					Adjunction: "sigma-dashv-delta",
					Object:     c,
					Message:    fmt.Sprintf("element %v of the source fiber is missing from the aggregate pullback", e),
				})
			}
		}
	}

	// Counit: Σ(Δ of the aggregate) must reproduce the aggregate.
	roundTrip, err := migrate.Aggregate(f, pulled.Instance, comb)
	if err != nil {
		return nil, fmt.Errorf("adjunction check: aggregate of pullback: %w", err)
	}
	for _, d := range f.Dst().Objects() {
		want, err := agg.Instance.Get(d)
		if err != nil {
			return nil, err
		}
		got, err := roundTrip.Instance.Get(d)
		if err != nil {
			return nil, err
		}
		if !want.Equal(got) {
			warnings = append(warnings, Warning{
				Adjunction: "sigma-dashv-delta",
				Object:     d,
				Message:    fmt.Sprintf("aggregate round trip diverged (-want +got):\n%s", cmp.Diff(want.Elems(), got.Elems())),
			})
		}
	}

	// Δ⊣Π: the pulled-back verdict must agree with evaluating the
	// predicate directly over each source object's group.
	flt, err := migrate.Filter(f, source, pred)
	if err != nil {
		return nil, fmt.Errorf("adjunction check: filter: %w", err)
	}
	verdicts, err := migrate.Reindex(f, flt.Instance)
	if err != nil {
		return nil, fmt.Errorf("adjunction check: reindex of filter: %w", err)
	}
	for _, c := range f.Src().Objects() {
		d, err := f.Obj(c)
		if err != nil {
			return nil, err
		}
		direct := true
		for _, sibling := range f.Preimage(d) {
			member, err := source.Get(sibling)
			if err != nil {
				return nil, err
			}
			for _, e := range member.Elems() {
				if !pred.Test(e) {
					direct = false
				}
			}
		}

		back, err := verdicts.Instance.Get(c)
		if err != nil {
			return nil, err
		}
		if !back.Equal(fiber.New("", fiber.VBool(direct))) {
			warnings = append(warnings, Warning{
				Adjunction: "delta-dashv-pi",
				Object:     c,
				Message: fmt.Sprintf("pulled-back verdict %v disagrees with direct evaluation %v under predicate %q",
					back.Elems(), direct, pred.Name),
			})
		}
	}

	return warnings, nil
}
