package migrate

import (
	"github.com/google/uuid"

	"github.com/roach88/triptych/internal/cat"
	"github.com/roach88/triptych/internal/fiber"
)

// Op identifies a migration operator in results and provenance.
type Op string

const (
	OpReindex   Op = "reindex"
	OpAggregate Op = "aggregate"
	OpFilter    Op = "filter"
)

// TokenGenerator generates call tokens for provenance correlation.
// Implemented by UUIDv7Generator (production) and a fixed generator in
// testutil (deterministic tests and golden snapshots).
type TokenGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-ordered RFC 4122 UUIDv7 call tokens.
type UUIDv7Generator struct{}

// Generate implements TokenGenerator.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Derivation explains how the output fiber for one target object was
// produced: which source objects contributed, their fibers, the rule
// applied, and the weights used (weighted mean only). The ID is
// content-addressed over the canonical snapshot, so identical inputs
// derive identical IDs.
type Derivation struct {
	ID      string
	Op      Op
	Target  cat.Obj
	Sources []cat.Obj
	Members []fiber.Fiber
	Rule    string
	Weights map[cat.Obj]float64
	Output  fiber.Fiber
}

// Snapshot returns a canonical-marshalable view of the derivation,
// excluding the ID itself.
func (d Derivation) Snapshot() map[string]any {
	sources := make([]any, len(d.Sources))
	for i, s := range d.Sources {
		sources[i] = string(s)
	}
	members := make([]any, len(d.Members))
	for i, m := range d.Members {
		members[i] = m.Snapshot()
	}
	snap := map[string]any{
		"op":      string(d.Op),
		"target":  string(d.Target),
		"sources": sources,
		"members": members,
		"rule":    d.Rule,
		"output":  d.Output.Snapshot(),
	}
	if len(d.Weights) > 0 {
		weights := make(map[string]any, len(d.Weights))
		for o, w := range d.Weights {
			weights[string(o)] = w
		}
		snap["weights"] = weights
	}
	return snap
}

// Veto records one element that failed a filter predicate and thereby
// vetoed its whole group.
type Veto struct {
	Source  cat.Obj
	Element fiber.Value
}

// Verdict is the filter outcome for one target object.
//
// Vacuous marks a verdict whose fiber group was empty. Policy decision:
// an empty group passes (the limit over an empty diagram is terminal),
// and the flag is surfaced so callers can warn instead of inheriting a
// silent always-pass.
type Verdict struct {
	Target  cat.Obj
	Passed  bool
	Vacuous bool
	Vetoes  []Veto
}

// Snapshot returns a canonical-marshalable view of the verdict.
func (v Verdict) Snapshot() map[string]any {
	vetoes := make([]any, len(v.Vetoes))
	for i, veto := range v.Vetoes {
		vetoes[i] = map[string]any{
			"source":  string(veto.Source),
			"element": veto.Element,
		}
	}
	return map[string]any{
		"target":  string(v.Target),
		"passed":  v.Passed,
		"vacuous": v.Vacuous,
		"vetoes":  vetoes,
	}
}

// Result is the outcome of one migration call: the fresh migrated
// instance plus enough provenance to explain it. Inputs are never
// mutated; a Result shares no mutable state with its inputs.
type Result struct {
	// Token correlates this call's provenance. UUIDv7 in production.
	Token string

	// Op is the operator that produced this result.
	Op Op

	// Instance is the migrated instance, queryable by object id.
	Instance *fiber.Instance

	// Derivations explain each output fiber, in target-object
	// declaration order.
	Derivations []Derivation

	// Verdicts carry filter outcomes, in target-object declaration
	// order. Empty for reindex and aggregate.
	Verdicts []Verdict
}

// Derivation returns the derivation for one object of the result
// instance.
func (r *Result) Derivation(o cat.Obj) (Derivation, bool) {
	for _, d := range r.Derivations {
		if d.Target == o {
			return d, true
		}
	}
	return Derivation{}, false
}

// Verdict returns the filter verdict for one object of the result
// instance.
func (r *Result) Verdict(o cat.Obj) (Verdict, bool) {
	for _, v := range r.Verdicts {
		if v.Target == o {
			return v, true
		}
	}
	return Verdict{}, false
}

// Snapshot returns a canonical-marshalable view of the whole result,
// used by golden tests. The token is included; deterministic tests
// supply a fixed generator.
func (r *Result) Snapshot() map[string]any {
	derivations := make([]any, len(r.Derivations))
	for i, d := range r.Derivations {
		derivations[i] = d.Snapshot()
	}
	snap := map[string]any{
		"token":       r.Token,
		"op":          string(r.Op),
		"instance":    r.Instance.Snapshot(),
		"derivations": derivations,
	}
	if len(r.Verdicts) > 0 {
		verdicts := make([]any, len(r.Verdicts))
		for i, v := range r.Verdicts {
			verdicts[i] = v.Snapshot()
		}
		snap["verdicts"] = verdicts
	}
	return snap
}

// options carries per-call configuration.
type options struct {
	tokens TokenGenerator
}

// Option configures a migration call.
type Option func(*options)

// WithTokenGenerator overrides the call-token generator. Tests use a
// fixed generator for deterministic golden snapshots.
func WithTokenGenerator(g TokenGenerator) Option {
	return func(o *options) {
		o.tokens = g
	}
}

func buildOptions(opts []Option) options {
	o := options{tokens: UUIDv7Generator{}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// derive fills in the content-addressed ID of a derivation.
func derive(d Derivation) (Derivation, error) {
	id, err := fiber.ContentID(fiber.DomainDerivation, d.Snapshot())
	if err != nil {
		return Derivation{}, err
	}
	d.ID = id
	return d, nil
}
