package cmd

import (
	"fmt"

	cerrors "github.com/jsf0/credcrypt/internal/errors"

	"github.com/jsf0/credcrypt/internal/prompt"
	"github.com/jsf0/credcrypt/internal/secret"
)

// readPassphrase reads a cipher passphrase, asking a second time when
// confirm is set. Unlike password hashing there is no retry: a mismatch is
// an error.
func readPassphrase(r prompt.Reader, confirm bool) (*secret.Buffer, error) {
	raw, err := r.ReadSecret("Enter passphrase")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cerrors.ErrPromptFailed, err)
	}
	pass := secret.Wrap(raw)

	if pass.Empty() {
		pass.Destroy()
		return nil, cerrors.ErrEmptyPassphrase
	}
	if !confirm {
		return pass, nil
	}

	raw, err = r.ReadSecret("Confirm passphrase")
	if err != nil {
		pass.Destroy()
		return nil, fmt.Errorf("%w: %w", cerrors.ErrPromptFailed, err)
	}
	again := secret.Wrap(raw)
	defer again.Destroy()

	if !pass.Equal(again) {
		pass.Destroy()
		return nil, cerrors.ErrPassphraseMismatch
	}
	return pass, nil
}
