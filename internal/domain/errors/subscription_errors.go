package errors

import "errors"

var (
	// ErrNoCustomerMapping indicates that the user has no associated Stripe customer
	ErrNoCustomerMapping = errors.New("no customer mapping found for user")

	// ErrNoActiveSubscription indicates that the customer has no active subscription
	ErrNoActiveSubscription = errors.New("no active subscription found")

	// ErrSubscriptionNotFound indicates that the specified subscription was not found
	ErrSubscriptionNotFound = errors.New("subscription not found")

	// ErrStaleEvent indicates that an inbound webhook event is older than the
	// data already stored for the subscription and must not be applied
	ErrStaleEvent = errors.New("webhook event is older than stored subscription data")
)
