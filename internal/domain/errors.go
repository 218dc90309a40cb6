package domain

import "errors"

// Sentinel errors for the domain layer.
var (
	// ErrForbidden means the caller lacks the admin capability. It is
	// redirect-worthy, never retryable.
	ErrForbidden = errors.New("domain: forbidden")

	ErrNotFound = errors.New("domain: not found")

	// ErrUnavailable covers network failures and 5xx responses. Pages
	// recover by keeping last-good data and offering a manual retry.
	ErrUnavailable = errors.New("domain: backend unavailable")
)
