// Package cat provides the finite, law-checked category and functor
// primitives that the migration operators are defined over.
//
// A Category owns its object set, morphism set, composition table, and
// identity table. A Functor maps one verified Category into another. Both
// are immutable value structures: construction runs the full law check
// (unit laws, associativity, structure preservation) and returns a
// *LawViolation on the first offending object, pair, or triple. A value
// that fails verification is never returned, so an unverified Category or
// Functor cannot exist in the process.
//
// Identity is by value everywhere: objects are compared by identifier and
// morphisms by name, never by pointer. Two independently constructed but
// logically equal declarations verify and compare identically.
//
// Composition uses diagrammatic order: Compose(f, g) for f: A→B and
// g: B→C yields the declared composite A→C ("f then g").
package cat
