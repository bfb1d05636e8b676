package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario: one migration call over
// a declared domain schema, with expectations on the result.
type Scenario struct {
	// Name uniquely identifies this scenario. It is also the golden
	// file name.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Schema names the embedded domain schema to load:
	// "quality", "complexity", or "prompt".
	Schema string `yaml:"schema"`

	// Operation is the migration operator to run:
	// "reindex", "aggregate", or "filter".
	Operation string `yaml:"operation"`

	// Functor names the functor within the schema to migrate along.
	Functor string `yaml:"functor"`

	// CallToken is an optional fixed call token for deterministic runs.
	// If empty, defaults to "test-call-default" for golden comparison.
	CallToken string `yaml:"call_token,omitempty"`

	// Combiner selects the aggregate policy: "union" (default) or
	// "weighted-mean". Ignored by reindex and filter.
	Combiner string `yaml:"combiner,omitempty"`

	// Weights is the weight vector for the weighted-mean combiner,
	// keyed by source object.
	Weights map[string]float64 `yaml:"weights,omitempty"`

	// Predicate configures the filter predicate. Required for filter,
	// ignored otherwise.
	Predicate *PredicateSpec `yaml:"predicate,omitempty"`

	// Fibers is the input instance, keyed by object id. For reindex the
	// objects belong to the functor's target category; for aggregate
	// and filter, to the source.
	Fibers map[string][]any `yaml:"fibers"`

	// Expect validates the result. Subset match: only the named fibers
	// and verdicts are checked.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// PredicateSpec selects a filter predicate.
type PredicateSpec struct {
	// Kind is "at_least", "is_true", or "is_false".
	Kind string `yaml:"kind"`

	// Threshold is the minimum value for "at_least".
	Threshold float64 `yaml:"threshold,omitempty"`
}

// ExpectClause specifies expected result values.
type ExpectClause struct {
	// Fibers maps target objects to their expected elements, in
	// canonical element order.
	Fibers map[string][]any `yaml:"fibers,omitempty"`

	// Verdicts lists expected filter verdicts.
	Verdicts []ExpectVerdict `yaml:"verdicts,omitempty"`
}

// ExpectVerdict specifies one expected filter verdict.
type ExpectVerdict struct {
	Target  string `yaml:"target"`
	Passed  bool   `yaml:"passed"`
	Vacuous bool   `yaml:"vacuous,omitempty"`

	// Vetoes is the expected number of vetoes. A negative value skips
	// the check; zero asserts there are none.
	Vetoes int `yaml:"vetoes"`
}

// Predicate kind constants.
const (
	PredicateAtLeast = "at_least"
	PredicateIsTrue  = "is_true"
	PredicateIsFalse = "is_false"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "expects:" vs "expect:".
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	switch s.Schema {
	case "quality", "complexity", "prompt":
	case "":
		return fmt.Errorf("schema is required")
	default:
		return fmt.Errorf("unknown schema %q", s.Schema)
	}

	switch s.Operation {
	case "reindex", "aggregate", "filter":
	case "":
		return fmt.Errorf("operation is required")
	default:
		return fmt.Errorf("unknown operation %q", s.Operation)
	}

	if s.Functor == "" {
		return fmt.Errorf("functor is required")
	}

	if len(s.Fibers) == 0 {
		return fmt.Errorf("fibers map is required and must be non-empty")
	}

	switch s.Operation {
	case "aggregate":
		switch s.Combiner {
		case "", "union":
			if len(s.Weights) > 0 {
				return fmt.Errorf("weights are only valid with the weighted-mean combiner")
			}
		case "weighted-mean":
			if len(s.Weights) == 0 {
				return fmt.Errorf("weighted-mean combiner requires a weights map")
			}
		default:
			return fmt.Errorf("unknown combiner %q", s.Combiner)
		}
	case "filter":
		if s.Predicate == nil {
			return fmt.Errorf("filter requires a predicate")
		}
		switch s.Predicate.Kind {
		case PredicateAtLeast, PredicateIsTrue, PredicateIsFalse:
		case "":
			return fmt.Errorf("predicate.kind is required")
		default:
			return fmt.Errorf("unknown predicate kind %q", s.Predicate.Kind)
		}
	}

	if s.Expect != nil {
		if len(s.Expect.Fibers) == 0 && len(s.Expect.Verdicts) == 0 {
			return fmt.Errorf("expect clause must name fibers or verdicts")
		}
		for i, v := range s.Expect.Verdicts {
			if v.Target == "" {
				return fmt.Errorf("expect.verdicts[%d]: target is required", i)
			}
		}
	}

	return nil
}
