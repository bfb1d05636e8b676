package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Golden snapshots pin the full canonical result of each scenario:
// instance fibers, derivations, verdicts, and the call token.
func TestScenarioGoldenSnapshots(t *testing.T) {
	scenarios := []string{
		"prompt_union",
		"quality_mean",
		"quality_reindex",
		"complexity_gate",
	}

	for _, name := range scenarios {
		t.Run(name, func(t *testing.T) {
			scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", name+".yaml"))
			require.NoError(t, err)
			require.NoError(t, RunWithGolden(t, scenario))
		})
	}
}
