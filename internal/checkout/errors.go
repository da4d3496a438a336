package checkout

import "errors"

// Validation failures. The caller fixes its input and tries again; none of
// these leave any trace in the store.
var (
	ErrUnauthenticated = errors.New("no authenticated customer, log in again")
	ErrInvalidTotal    = errors.New("order total must be present and non-negative")
	ErrInvalidMode     = errors.New("fulfillment mode must be DELIVERY or PICKUP")
	ErrEmptyCart       = errors.New("cart is empty, nothing to check out")
)
