package migrate

import (
	"errors"
	"fmt"
)

// InvalidWeightsError reports a malformed weighted-mean combiner
// configuration. It is fatal for the call that supplied the weights and
// is raised at combiner construction, before any aggregation executes.
// Weights are never silently renormalized.
type InvalidWeightsError struct {
	// Message describes what is wrong with the configuration.
	Message string

	// Object names the offending weight entry, when one exists.
	Object string

	// Sum is the weight total, for sum violations.
	Sum float64
}

// Error implements the error interface.
func (e *InvalidWeightsError) Error() string {
	if e.Object != "" {
		return fmt.Sprintf("INVALID_WEIGHTS: %s (object=%s)", e.Message, e.Object)
	}
	return fmt.Sprintf("INVALID_WEIGHTS: %s", e.Message)
}

// IsInvalidWeights returns true if the error is a malformed weight
// configuration. Uses errors.As to handle wrapped errors.
func IsInvalidWeights(err error) bool {
	var iw *InvalidWeightsError
	return errors.As(err, &iw)
}
