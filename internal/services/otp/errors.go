// File: internal/services/otp/errors.go
package otp

import "errors"

var (
	// ErrStoreUnavailable means the code store could not be read or written.
	// No partial state is observable; the caller should retry later.
	ErrStoreUnavailable = errors.New("code store unavailable")

	// ErrNotifierUnavailable means the code was persisted but delivery
	// failed. The caller should request a fresh code rather than wait;
	// re-issuing invalidates the undelivered one.
	ErrNotifierUnavailable = errors.New("code delivery failed")

	// ErrNotFoundOrMismatch covers both "no live code for this identity" and
	// "presented value does not match". The two are deliberately not
	// distinguished, so probing learns nothing.
	ErrNotFoundOrMismatch = errors.New("no matching one-time code")

	// ErrExpired means the code matched but its validity window elapsed. The
	// stale row is consumed as part of this rejection.
	ErrExpired = errors.New("one-time code expired")
)
