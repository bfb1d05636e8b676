package cat

import (
	"errors"
	"fmt"
)

// LawCode categorizes construction-time law violations.
type LawCode string

const (
	// ErrCodeObjectUnknown indicates a morphism or map references an
	// object that is not in the category's object set.
	ErrCodeObjectUnknown LawCode = "OBJECT_UNKNOWN"

	// ErrCodeMorphismUnknown indicates a table row references a morphism
	// that is not in the category's morphism set.
	ErrCodeMorphismUnknown LawCode = "MORPHISM_UNKNOWN"

	// ErrCodeDuplicate indicates a duplicate object or morphism name.
	ErrCodeDuplicate LawCode = "DUPLICATE_NAME"

	// ErrCodeIdentityMissing indicates an object has no identity morphism.
	ErrCodeIdentityMissing LawCode = "IDENTITY_MISSING"

	// ErrCodeIdentityLaw indicates an identity failed as a left or right
	// unit for composition.
	ErrCodeIdentityLaw LawCode = "IDENTITY_LAW"

	// ErrCodeCompositionIncomplete indicates a composable pair has no row
	// in the composition table.
	ErrCodeCompositionIncomplete LawCode = "COMPOSITION_INCOMPLETE"

	// ErrCodeCompositionEndpoints indicates a composition row whose
	// composite has the wrong endpoints, or whose factors do not meet.
	ErrCodeCompositionEndpoints LawCode = "COMPOSITION_ENDPOINTS"

	// ErrCodeAssociativity indicates a composable triple for which
	// (f;g);h differs from f;(g;h).
	ErrCodeAssociativity LawCode = "ASSOCIATIVITY"

	// ErrCodeMapIncomplete indicates a functor's object or morphism map
	// does not cover the whole source category.
	ErrCodeMapIncomplete LawCode = "MAP_INCOMPLETE"

	// ErrCodeEndpointMismatch indicates a functor sends f: A→B to a
	// morphism whose endpoints differ from the images of A and B.
	ErrCodeEndpointMismatch LawCode = "ENDPOINT_MISMATCH"

	// ErrCodeIdentityPreservation indicates a functor sends identity(A)
	// to something other than identity(F(A)).
	ErrCodeIdentityPreservation LawCode = "IDENTITY_PRESERVATION"

	// ErrCodeCompositionPreservation indicates F(f;g) != F(f);F(g) for a
	// composable pair.
	ErrCodeCompositionPreservation LawCode = "COMPOSITION_PRESERVATION"

	// ErrCodeFunctoriality indicates an instance whose function for a
	// composed morphism disagrees with the composition of its factors'
	// functions on some element.
	ErrCodeFunctoriality LawCode = "FUNCTORIALITY"
)

// LawViolation reports the first law failure found during construction of
// a Category or Functor. It is fatal: the offending structure is never
// returned to the caller, so a LawViolation can only surface at
// construction, never at call time.
type LawViolation struct {
	// Code identifies the violated law.
	Code LawCode

	// Message is a human-readable description.
	Message string

	// Offenders names the object, morphism pair, or triple that first
	// violated the law, in the order the law quantifies over them.
	Offenders []string
}

// Error implements the error interface.
func (e *LawViolation) Error() string {
	if len(e.Offenders) > 0 {
		return fmt.Sprintf("%s: %s (offenders=%v)", e.Code, e.Message, e.Offenders)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsLawViolation returns true if the error is a construction-time law
// violation. Uses errors.As to handle wrapped errors.
func IsLawViolation(err error) bool {
	var lv *LawViolation
	return errors.As(err, &lv)
}

// NotFoundError reports a lookup of an object, morphism, or fiber that
// does not exist. It is recoverable and scoped to the single call; it is
// never replaced by a default value.
type NotFoundError struct {
	// Kind is what was looked up: "object", "morphism", or "fiber".
	Kind string

	// Name is the identifier that was requested.
	Name string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("NOT_FOUND: %s %q does not exist", e.Kind, e.Name)
}

// IsNotFound returns true if the error is a missing object, morphism, or
// fiber lookup. Uses errors.As to handle wrapped errors.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
