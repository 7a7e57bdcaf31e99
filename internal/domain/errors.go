package domain

import "errors"

// Sentinel errors for cross-provider error classification. Providers wrap
// these so commands can handle error categories uniformly without knowing
// which external tool produced them.
//
//	return fmt.Errorf("failed to start instance: %w", domain.ErrNotFound)
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrCLIUnavailable indicates the provider's command-line tool is not
	// installed or not on PATH.
	ErrCLIUnavailable = errors.New("provider CLI not available")

	// ErrUnauthorized indicates missing or expired credentials.
	ErrUnauthorized = errors.New("unauthorized")
)
