package errors

import "errors"

var (
	// ErrMissingPriceID indicates that the selected plan has no billing price id
	// in the catalog; checkout fails before any network call is made
	ErrMissingPriceID = errors.New("plan has no billing price id")

	// ErrInvalidPlanConfiguration indicates that the selected plan does not
	// exist in the catalog
	ErrInvalidPlanConfiguration = errors.New("invalid plan configuration")
)
