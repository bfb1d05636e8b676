// Package triptych is a law-checked categorical data-migration engine:
// finite categories and functors verified at construction, indexed
// data instances over them, and three migration operators with
// provenance on every call: Reindex (Δ, pullback), Aggregate
// (Σ, colimit-style combination), and Filter (Π, all-must-satisfy
// intersection).
//
// The engine is an in-process, purely functional library: no wire
// protocol, no CLI, no persisted state. Schemas are declared once (in
// Go or in CUE via the embedded domain schemas), instances are supplied
// per call, and every operator returns a fresh Result while never
// mutating its inputs.
package triptych
