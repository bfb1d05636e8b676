package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadScenarioValid(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/quality_mean.yaml")
	require.NoError(t, err)

	assert.Equal(t, "quality_mean", s.Name)
	assert.Equal(t, "quality", s.Schema)
	assert.Equal(t, "aggregate", s.Operation)
	assert.Equal(t, "Collapse", s.Functor)
	assert.Equal(t, "weighted-mean", s.Combiner)
	assert.Len(t, s.Weights, 4)
	assert.Len(t, s.Fibers, 4)
	require.NotNil(t, s.Expect)
	assert.Equal(t, []any{0.625}, s.Expect.Fibers["overall"])
}

func TestLoadScenarioMissingFile(t *testing.T) {
	_, err := LoadScenario("testdata/scenarios/does_not_exist.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}

func TestLoadScenarioUnknownField(t *testing.T) {
	path := writeScenario(t, `
name: typo
description: "has a typo"
schema: quality
operation: aggregate
functor: Collapse
fibres:
  clarity: [0.5]
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadScenarioValidation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name: "missing_name",
			body: `
description: "d"
schema: quality
operation: aggregate
functor: Collapse
fibers: { clarity: [0.5] }
`,
			wantErr: "name is required",
		},
		{
			name: "unknown_schema",
			body: `
name: s
description: "d"
schema: nope
operation: aggregate
functor: Collapse
fibers: { clarity: [0.5] }
`,
			wantErr: `unknown schema "nope"`,
		},
		{
			name: "unknown_operation",
			body: `
name: s
description: "d"
schema: quality
operation: transmogrify
functor: Collapse
fibers: { clarity: [0.5] }
`,
			wantErr: `unknown operation "transmogrify"`,
		},
		{
			name: "missing_fibers",
			body: `
name: s
description: "d"
schema: quality
operation: aggregate
functor: Collapse
`,
			wantErr: "fibers map is required",
		},
		{
			name: "weights_without_weighted_mean",
			body: `
name: s
description: "d"
schema: quality
operation: aggregate
functor: Collapse
weights: { clarity: 1.0 }
fibers: { clarity: [0.5] }
`,
			wantErr: "only valid with the weighted-mean combiner",
		},
		{
			name: "weighted_mean_without_weights",
			body: `
name: s
description: "d"
schema: quality
operation: aggregate
functor: Collapse
combiner: weighted-mean
fibers: { clarity: [0.5] }
`,
			wantErr: "requires a weights map",
		},
		{
			name: "filter_without_predicate",
			body: `
name: s
description: "d"
schema: complexity
operation: filter
functor: Gate
fibers: { multi_step: [false] }
`,
			wantErr: "filter requires a predicate",
		},
		{
			name: "unknown_predicate_kind",
			body: `
name: s
description: "d"
schema: complexity
operation: filter
functor: Gate
predicate: { kind: is_maybe }
fibers: { multi_step: [false] }
`,
			wantErr: `unknown predicate kind "is_maybe"`,
		},
		{
			name: "empty_expect",
			body: `
name: s
description: "d"
schema: quality
operation: aggregate
functor: Collapse
fibers: { clarity: [0.5] }
expect: {}
`,
			wantErr: "expect clause must name fibers or verdicts",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
