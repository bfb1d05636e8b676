package harness

import (
	"fmt"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/roach88/triptych/internal/cat"
	"github.com/roach88/triptych/internal/migrate"
)

// evaluateExpect checks the expect clause against a migration result
// and returns one failure message per expectation that did not hold.
// A nil clause passes vacuously; expectations are a subset match, so
// unnamed fibers and verdicts are not checked.
func evaluateExpect(expect *ExpectClause, res *migrate.Result) []string {
	if expect == nil {
		return nil
	}

	var failures []string
	for obj, raw := range expect.Fibers {
		want, err := toValues(raw)
		if err != nil {
			failures = append(failures, fmt.Sprintf("expect.fibers.%s: %v", obj, err))
			continue
		}
		got, err := res.Instance.Get(cat.Obj(obj))
		if err != nil {
			failures = append(failures, fmt.Sprintf("expect.fibers.%s: %v", obj, err))
			continue
		}
		if diff := cmp.Diff(want, got.Elems(), cmpopts.EquateEmpty()); diff != "" {
			failures = append(failures, fmt.Sprintf("expect.fibers.%s mismatch (-want +got):\n%s", obj, diff))
		}
	}

	for i, want := range expect.Verdicts {
		got, ok := res.Verdict(cat.Obj(want.Target))
		if !ok {
			failures = append(failures, fmt.Sprintf("expect.verdicts[%d]: no verdict for %q", i, want.Target))
			continue
		}
		if got.Passed != want.Passed {
			failures = append(failures, fmt.Sprintf("expect.verdicts[%d]: %q passed=%v, want %v",
				i, want.Target, got.Passed, want.Passed))
		}
		if got.Vacuous != want.Vacuous {
			failures = append(failures, fmt.Sprintf("expect.verdicts[%d]: %q vacuous=%v, want %v",
				i, want.Target, got.Vacuous, want.Vacuous))
		}
		if want.Vetoes >= 0 && len(got.Vetoes) != want.Vetoes {
			failures = append(failures, fmt.Sprintf("expect.verdicts[%d]: %q has %d vetoes, want %d",
				i, want.Target, len(got.Vetoes), want.Vetoes))
		}
	}

	return failures
}
