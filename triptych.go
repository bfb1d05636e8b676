package triptych

import (
	"github.com/roach88/triptych/internal/cat"
	"github.com/roach88/triptych/internal/fiber"
	"github.com/roach88/triptych/internal/harness"
	"github.com/roach88/triptych/internal/migrate"
	"github.com/roach88/triptych/internal/schemas"
)

// Structure primitives.
type (
	// Obj identifies an object of a category by value.
	Obj = cat.Obj

	// Morphism is a named, directed arrow between two objects.
	Morphism = cat.Morphism

	// Composition declares one row of a composition table in
	// diagrammatic order.
	Composition = cat.Composition

	// Category is a verified finite category.
	Category = cat.Category

	// Functor is a verified structure-preserving map between categories.
	Functor = cat.Functor
)

// Data instances.
type (
	// Value is a fiber element: VString, VInt, VFloat, or VBool.
	Value = fiber.Value

	VString = fiber.VString
	VInt    = fiber.VInt
	VFloat  = fiber.VFloat
	VBool   = fiber.VBool

	// Fiber is the immutable element collection attached to one object.
	Fiber = fiber.Fiber

	// Action is the element function an instance assigns to a morphism.
	Action = fiber.Action

	// Instance assigns fibers and actions over a category.
	Instance = fiber.Instance

	// VerifyReport states how much of a functoriality check ran.
	VerifyReport = fiber.VerifyReport
)

// Migration operators and provenance.
type (
	// Result is the outcome of one migration call.
	Result = migrate.Result

	// Derivation explains one output fiber.
	Derivation = migrate.Derivation

	// Verdict is the filter outcome for one target object.
	Verdict = migrate.Verdict

	// Veto is one element that failed a filter predicate.
	Veto = migrate.Veto

	// Combiner folds fiber groups for Aggregate.
	Combiner = migrate.Combiner

	// UnionCombiner is the default deduplicating combiner.
	UnionCombiner = migrate.UnionCombiner

	// Predicate is a named element test for Filter.
	Predicate = migrate.Predicate

	// Option configures a migration call.
	Option = migrate.Option

	// TokenGenerator generates call tokens for provenance correlation.
	TokenGenerator = migrate.TokenGenerator
)

// Errors.
type (
	// LawViolation is a fatal construction-time law failure.
	LawViolation = cat.LawViolation

	// NotFoundError is a lookup of a missing object, morphism, or fiber.
	NotFoundError = cat.NotFoundError

	// InvalidWeightsError is a rejected weighted-mean weight vector.
	InvalidWeightsError = migrate.InvalidWeightsError
)

// Constructors and operators.
var (
	// NewCategory builds a category and verifies the identity,
	// totality, and associativity laws, failing fast on violation.
	NewCategory = cat.New

	// NewFunctor builds a functor and verifies structure preservation.
	NewFunctor = cat.NewFunctor

	// IdentityFunctor is the identity functor on a category.
	IdentityFunctor = cat.Identity

	// NewFiber builds an immutable fiber in canonical element order.
	NewFiber = fiber.New

	// NewInstance builds an instance, requiring total fibers and
	// actions.
	NewInstance = fiber.NewInstance

	// Reindex pulls an instance backward along a functor (Δ).
	Reindex = migrate.Reindex

	// Aggregate combines an instance forward along a functor (Σ).
	Aggregate = migrate.Aggregate

	// Filter computes all-must-satisfy verdicts along a functor (Π).
	Filter = migrate.Filter

	// NewWeightedMean builds the weighted-mean combiner, validating
	// that weights are non-negative and sum to 1.0.
	NewWeightedMean = migrate.NewWeightedMean

	// AtLeast is a numeric threshold predicate.
	AtLeast = migrate.AtLeast

	// WithTokenGenerator overrides the provenance call-token generator.
	WithTokenGenerator = migrate.WithTokenGenerator

	// IsLawViolation, IsNotFound, and IsInvalidWeights classify errors
	// from any engine operation.
	IsLawViolation   = cat.IsLawViolation
	IsNotFound       = cat.IsNotFound
	IsInvalidWeights = migrate.IsInvalidWeights
)

// IsTrue and IsFalse are the boolean filter predicates.
var (
	IsTrue  = migrate.IsTrue
	IsFalse = migrate.IsFalse
)

// Domain schema wiring.
var (
	// QualityWeights is the fixed quality weight vector.
	QualityWeights = schemas.QualityWeights

	// ScoreQuality collapses four dimension scores into one weighted
	// scalar with provenance.
	ScoreQuality = schemas.ScoreQuality

	// GateComplexity filters the ten boolean complexity indicators into
	// a simple/complex verdict.
	GateComplexity = schemas.GateComplexity
)

// AdjunctionWarning reports one adjunction correspondence that failed
// to hold on sampled data.
type AdjunctionWarning = harness.Warning

// CheckAdjunction verifies the natural correspondences between the
// migration operators on a finite sample, reporting mismatches as
// warnings rather than failures.
var CheckAdjunction = harness.CheckAdjunction
