package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrConfigMissing indicates that the auth platform URL/key pair is not
	// configured. Non-fatal: callers fall back to demo mode.
	ErrConfigMissing = errors.New("auth platform is not configured")

	// ErrInvalidCredentials indicates a rejected email/password pair
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailNotConfirmed indicates the account exists but the confirmation
	// email has not been acted on yet
	ErrEmailNotConfirmed = errors.New("email address not confirmed")
)

// RateLimitedError carries the countdown parsed from the provider's error
// text so the sign-in form can show "wait N seconds".
type RateLimitedError struct {
	RetryAfterSeconds int
}

func (e *RateLimitedError) Error() string {
	if e.RetryAfterSeconds > 0 {
		return fmt.Sprintf("too many attempts, retry after %d seconds", e.RetryAfterSeconds)
	}
	return "too many attempts, retry later"
}

// IsRateLimited reports whether err is a rate-limit rejection and returns the
// countdown when one was parsed.
func IsRateLimited(err error) (int, bool) {
	var rl *RateLimitedError
	if errors.As(err, &rl) {
		return rl.RetryAfterSeconds, true
	}
	return 0, false
}
