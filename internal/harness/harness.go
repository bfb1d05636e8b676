package harness

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/triptych/internal/cat"
	"github.com/roach88/triptych/internal/compiler"
	"github.com/roach88/triptych/internal/fiber"
	"github.com/roach88/triptych/internal/migrate"
	"github.com/roach88/triptych/internal/schemas"
	"github.com/roach88/triptych/internal/testutil"
)

// Harness executes conformance scenarios. Each run uses a fixed call
// token so repeated executions of the same scenario are byte-identical.
type Harness struct {
	logger *slog.Logger
}

// New creates a harness. A nil logger suppresses output.
func New(logger *slog.Logger) *Harness {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Harness{logger: logger}
}

// Result is the outcome of one scenario run.
type Result struct {
	// Scenario is the scenario name.
	Scenario string

	// Migration is the raw operator result, including provenance.
	Migration *migrate.Result

	// Passed reports whether every expectation held.
	Passed bool

	// Failures lists each expectation that did not hold.
	Failures []string
}

// Run executes a scenario with the default harness.
func Run(scenario *Scenario) (*Result, error) {
	return New(nil).Run(scenario)
}

// Run executes a scenario and evaluates its expectations.
//
// Execution flow:
//  1. Load and law-check the named domain schema
//  2. Build the input instance from the scenario fibers
//  3. Run the migration operator with a fixed call token
//  4. Evaluate the expect clause against the result
func (h *Harness) Run(scenario *Scenario) (*Result, error) {
	h.logger.Info("running scenario",
		"name", scenario.Name,
		"schema", scenario.Schema,
		"operation", scenario.Operation)

	built, err := loadSchema(scenario.Schema)
	if err != nil {
		return nil, fmt.Errorf("schema %q: %w", scenario.Schema, err)
	}
	f, ok := built.Functors[scenario.Functor]
	if !ok {
		return nil, &cat.NotFoundError{Kind: "functor", Name: scenario.Functor}
	}

	// Reindex pulls an instance over the target back along the functor;
	// the other operators push an instance over the source forward.
	instCategory := f.Src()
	if scenario.Operation == "reindex" {
		instCategory = f.Dst()
	}
	inst, err := buildInstance(instCategory, scenario.Fibers)
	if err != nil {
		return nil, fmt.Errorf("scenario fibers: %w", err)
	}

	tokens := testutil.NewFixedTokenGenerator(scenario.CallToken)
	opts := []migrate.Option{migrate.WithTokenGenerator(tokens)}

	var res *migrate.Result
	switch scenario.Operation {
	case "reindex":
		res, err = migrate.Reindex(f, inst, opts...)
	case "aggregate":
		var comb migrate.Combiner
		comb, err = combinerFor(scenario)
		if err != nil {
			return nil, err
		}
		res, err = migrate.Aggregate(f, inst, comb, opts...)
	case "filter":
		res, err = migrate.Filter(f, inst, predicateFor(scenario.Predicate), opts...)
	default:
		return nil, fmt.Errorf("unknown operation %q", scenario.Operation)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", scenario.Operation, err)
	}

	result := &Result{Scenario: scenario.Name, Migration: res}
	result.Failures = evaluateExpect(scenario.Expect, res)
	result.Passed = len(result.Failures) == 0

	h.logger.Info("scenario finished",
		"name", scenario.Name,
		"passed", result.Passed,
		"failures", len(result.Failures))
	return result, nil
}

func loadSchema(name string) (*compiler.Built, error) {
	switch name {
	case "quality":
		return schemas.Quality()
	case "complexity":
		return schemas.Complexity()
	case "prompt":
		return schemas.Prompt()
	default:
		return nil, &cat.NotFoundError{Kind: "schema", Name: name}
	}
}

func buildInstance(c *cat.Category, declared map[string][]any) (*fiber.Instance, error) {
	fibers := make(map[cat.Obj]fiber.Fiber, len(declared))
	for obj, raw := range declared {
		elems, err := toValues(raw)
		if err != nil {
			return nil, fmt.Errorf("fiber %q: %w", obj, err)
		}
		fibers[cat.Obj(obj)] = fiber.New(obj, elems...)
	}
	return fiber.NewInstance(c, fibers, nil)
}

func combinerFor(scenario *Scenario) (migrate.Combiner, error) {
	switch scenario.Combiner {
	case "", "union":
		return migrate.UnionCombiner{}, nil
	case "weighted-mean":
		weights := make(map[cat.Obj]float64, len(scenario.Weights))
		for obj, w := range scenario.Weights {
			weights[cat.Obj(obj)] = w
		}
		return migrate.NewWeightedMean(weights)
	default:
		return nil, fmt.Errorf("unknown combiner %q", scenario.Combiner)
	}
}

func predicateFor(spec *PredicateSpec) migrate.Predicate {
	switch spec.Kind {
	case PredicateAtLeast:
		return migrate.AtLeast(spec.Threshold)
	case PredicateIsTrue:
		return migrate.IsTrue
	default:
		return migrate.IsFalse
	}
}

// toValues converts scenario YAML elements to fiber values.
func toValues(raw []any) ([]fiber.Value, error) {
	out := make([]fiber.Value, len(raw))
	for i, e := range raw {
		v, err := toValue(e)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

func toValue(e any) (fiber.Value, error) {
	switch val := e.(type) {
	case bool:
		return fiber.VBool(val), nil
	case int:
		return fiber.VInt(int64(val)), nil
	case int64:
		return fiber.VInt(val), nil
	case float64:
		return fiber.VFloat(val), nil
	case string:
		return fiber.VString(val), nil
	default:
		return nil, fmt.Errorf("unsupported element type %T", e)
	}
}
