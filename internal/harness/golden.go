package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/triptych/internal/fiber"
)

// RunWithGolden executes a scenario and compares the canonical JSON of
// the full result snapshot against a golden file stored in
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// The snapshot covers the migrated instance, every derivation, and
// every verdict. Dyadic inputs (ints, bools, strings, and floats with
// exact binary representations) keep the snapshot byte-stable.
//
// Returns an error if scenario execution fails or an expectation does
// not hold; golden mismatch fails t via goldie.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}
	for _, f := range result.Failures {
		t.Errorf("scenario %s: %s", scenario.Name, f)
	}

	return AssertGolden(t, scenario.Name, result)
}

// AssertGolden compares an already obtained result against the golden
// file for scenarioName.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	snap := map[string]any{
		"scenario_name": scenarioName,
		"result":        result.Migration.Snapshot(),
	}
	data, err := fiber.MarshalCanonical(snap)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)

	return nil
}
