// Package fiber provides the indexed-data-instance layer: the typed
// element values, the per-object fibers, and the Instance structure that
// assigns a fiber to every object of a category and an element function
// to every morphism.
//
// Instances are built once per request from application data, verified
// structurally at construction, and never mutated afterward. Every
// migration operator allocates a fresh Instance; inputs are read-only.
//
// Functoriality (the function of a composed morphism equals the
// composition of its factors' functions) is spot-checked by Verify on a
// bounded sample of composed pairs. The bound is an explicit parameter
// and the returned report says how much was checked, so the sampling
// approximation is always visible, never a silent skip.
//
// Canonical serialization follows RFC 8785 (NFC strings, UTF-16 key
// order, no HTML escaping) and is the only serialization used for
// content-addressed IDs and golden snapshots.
package fiber
