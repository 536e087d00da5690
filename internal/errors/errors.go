// Package errors holds the sentinel errors shared by the credential and
// command packages. Callers test for them with errors.Is.
package errors

import "errors"

// Capture errors are returned while acquiring a secret from the user.
var (
	// ErrPromptFailed indicates the secret source failed (closed input,
	// missing terminal). It aborts the capture instead of retrying.
	ErrPromptFailed = errors.New("failed to read secret")

	// ErrEmptyPassphrase indicates an empty secret was supplied where one
	// is required.
	ErrEmptyPassphrase = errors.New("passphrase cannot be empty")

	// ErrPassphraseMismatch indicates the confirmation did not match.
	ErrPassphraseMismatch = errors.New("passphrases do not match")
)

// Verification errors.
var (
	// ErrVerifyFailed indicates a candidate secret did not reproduce the
	// stored digest.
	ErrVerifyFailed = errors.New("password verification failed")
)
