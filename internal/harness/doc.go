// Package harness provides conformance testing for the migration
// operators.
//
// The harness loads a declared domain schema, builds an instance from
// scenario fibers, runs one migration operator, and validates the
// result against the scenario's expectations and a golden snapshot.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	schema: quality            # quality | complexity | prompt
//	operation: aggregate       # reindex | aggregate | filter
//	functor: Collapse          # functor name within the schema
//	call_token: fixed-token-1  # fixed call token for determinism
//	combiner: weighted-mean    # aggregate only: union | weighted-mean
//	weights:                   # weighted-mean only
//	  correctness: 0.25
//	fibers:                    # input instance, keyed by object
//	  correctness: [0.5]
//	expect:
//	  fibers:                  # subset match on output fibers
//	    overall: [0.625]
//	  verdicts:                # subset match on filter verdicts
//	    - target: simple
//	      passed: false
//
// For reindex the fibers key the functor's target category (the
// instance being pulled back); for aggregate and filter they key the
// source.
//
// # Deterministic Testing
//
// Scenarios run with a fixed call token (scenario.call_token, default
// "test-call-default"), so the same scenario produces a byte-identical
// canonical snapshot across runs for golden file comparison.
//
// # Usage
//
// Load and run a scenario:
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/quality_mean.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Passed {
//	    for _, f := range result.Failures {
//	        log.Println(f)
//	    }
//	}
//
// Or compare against the golden snapshot in one step:
//
//	harness.RunWithGolden(t, scenario)
package harness
