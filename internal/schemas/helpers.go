package schemas

import (
	"fmt"

	"github.com/roach88/triptych/internal/cat"
	"github.com/roach88/triptych/internal/fiber"
	"github.com/roach88/triptych/internal/migrate"
)

// QualityWeights is the fixed weight vector applied when collapsing the
// four quality dimensions into one scalar. The weights sum to exactly
// 1.0 and are never renormalized.
var QualityWeights = map[cat.Obj]float64{
	"correctness":  0.40,
	"clarity":      0.25,
	"completeness": 0.20,
	"efficiency":   0.15,
}

// ScoreQuality aggregates the four dimension scores into one weighted
// scalar along the Collapse functor. scores must assign a value to
// every Quality dimension and nothing else. The returned derivation
// records the member fibers and weights that explain the scalar.
//
// Mapping the scalar to a tier label is the caller's concern.
func ScoreQuality(scores map[string]float64) (float64, migrate.Derivation, error) {
	built, err := Quality()
	if err != nil {
		return 0, migrate.Derivation{}, err
	}
	src := built.Categories["Quality"]
	collapse := built.Functors["Collapse"]

	fibers := make(map[cat.Obj]fiber.Fiber, len(scores))
	for dim, score := range scores {
		fibers[cat.Obj(dim)] = fiber.New(dim, fiber.VFloat(score))
	}
	inst, err := fiber.NewInstance(src, fibers, nil)
	if err != nil {
		return 0, migrate.Derivation{}, fmt.Errorf("quality scores: %w", err)
	}

	comb, err := migrate.NewWeightedMean(QualityWeights)
	if err != nil {
		return 0, migrate.Derivation{}, err
	}

	res, err := migrate.Aggregate(collapse, inst, comb)
	if err != nil {
		return 0, migrate.Derivation{}, err
	}

	out, err := res.Instance.Get("overall")
	if err != nil {
		return 0, migrate.Derivation{}, err
	}
	scalar, ok := fiber.Numeric(out.Elems()[0])
	if !ok {
		return 0, migrate.Derivation{}, fmt.Errorf("quality aggregate produced non-numeric fiber %q", out.Name())
	}
	d, _ := res.Derivation("overall")
	return scalar, d, nil
}

// GateComplexity filters the ten boolean indicators along the Gate
// functor. indicators must assign a value to every Complexity indicator
// and nothing else. The verdict passes only when every indicator is
// false; a single true indicator vetoes it, and every veto is listed.
func GateComplexity(indicators map[string]bool) (migrate.Verdict, error) {
	built, err := Complexity()
	if err != nil {
		return migrate.Verdict{}, err
	}
	src := built.Categories["Complexity"]
	gate := built.Functors["Gate"]

	fibers := make(map[cat.Obj]fiber.Fiber, len(indicators))
	for name, flagged := range indicators {
		fibers[cat.Obj(name)] = fiber.New(name, fiber.VBool(flagged))
	}
	inst, err := fiber.NewInstance(src, fibers, nil)
	if err != nil {
		return migrate.Verdict{}, fmt.Errorf("complexity indicators: %w", err)
	}

	res, err := migrate.Filter(gate, inst, migrate.IsFalse)
	if err != nil {
		return migrate.Verdict{}, err
	}
	v, ok := res.Verdict("simple")
	if !ok {
		return migrate.Verdict{}, &cat.NotFoundError{Kind: "verdict", Name: "simple"}
	}
	return v, nil
}
