// Package migrate implements the three canonical data-migration
// operators over verified categories, functors, and instances:
//
//   - Reindex (Δ, pullback): pull an instance on the target category
//     backward along a functor, without duplicating data.
//   - Aggregate (Σ): combine source fibers forward along a functor,
//     grouped by shared image object, using a caller-supplied combiner.
//   - Filter (Π, limit): require every element of every grouped fiber
//     to satisfy a predicate; one failing element vetoes the group.
//
// Every operator is pure: inputs are never mutated and each call
// allocates a fresh instance, so concurrent calls on shared inputs need
// no locking. Each call carries a UUIDv7 token and returns per-object
// derivations, enough provenance to explain how any output fiber was
// produced.
//
// Two combiners are provided. UnionCombiner is the general colimit-style
// set union. WeightedMeanCombiner is a named domain-specific extension
// for multi-dimension scoring; it is not a universal colimit and the
// documentation deliberately does not claim it is.
//
// Aggregate and Filter give non-identity morphisms of the target
// category passthrough element functions. Migration targets are
// typically discrete (identities only), as all the domain schemas are,
// and the passthrough keeps result instances total without inventing
// induced maps the functor does not determine.
//
// Call-time failures are typed and scoped to the call: a missing object,
// morphism, or fiber is reported as cat.NotFoundError and a malformed
// weighted-mean configuration as InvalidWeightsError. Neither is ever
// replaced by a default value.
package migrate
