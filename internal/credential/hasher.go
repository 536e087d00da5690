// Package credential captures a password from the user and turns it into
// the digest that is stored for later verification.
package credential

import (
	"errors"
	"fmt"

	cerrors "github.com/jsf0/credcrypt/internal/errors"

	"github.com/jsf0/credcrypt/internal/digest"
	"github.com/jsf0/credcrypt/internal/prompt"
	"github.com/jsf0/credcrypt/internal/salt"
	"github.com/jsf0/credcrypt/internal/secret"
)

const (
	// PromptEnter asks for the password.
	PromptEnter = "Enter Password"
	// PromptConfirm asks for the password a second time.
	PromptConfirm = "Confirm Password"

	// MsgMismatch is reported when the two entries differ.
	MsgMismatch = "The supplied passwords did not match"
	// MsgEmpty is reported when both entries are empty.
	MsgEmpty = "You can not use an empty password"
)

// Reporter receives the messages for rejected attempts.
type Reporter interface {
	Error(msg string)
}

// Hasher asks for a password twice and hashes it once both entries agree.
// Rejected attempts are reported and retried without limit; only a failure
// of the secret source ends the loop early.
type Hasher struct {
	reader   prompt.Reader
	reporter Reporter
	newSalt  func() (salt.Salt, error)
}

// NewHasher returns a Hasher reading from r and reporting to rep.
func NewHasher(r prompt.Reader, rep Reporter) *Hasher {
	return &Hasher{reader: r, reporter: rep, newSalt: salt.Generate}
}

// CaptureHash returns the digest of a confirmed, non-empty password.
func (h *Hasher) CaptureHash() (digest.Digest, error) {
	var d digest.Digest
	err := h.capture(func(pass *secret.Buffer) {
		d = digest.Sum(pass.Bytes())
	})
	return d, err
}

// CaptureSaltedHash returns the digest of password || salt together with
// the salt, which must be persisted alongside the digest. The salt is
// generated once and reused across retries.
func (h *Hasher) CaptureSaltedHash() (digest.Digest, salt.Salt, error) {
	s, err := h.newSalt()
	if err != nil {
		return digest.Digest{}, salt.Salt{}, err
	}

	var d digest.Digest
	err = h.capture(func(pass *secret.Buffer) {
		salted := secret.Concat(pass.Bytes(), s.Bytes())
		defer salted.Destroy()
		d = digest.Sum(salted.Bytes())
	})
	if err != nil {
		return digest.Digest{}, salt.Salt{}, err
	}
	return d, s, nil
}

// CaptureVerify asks for the password once and checks it against want. An
// empty salt verifies a plain hash.
func (h *Hasher) CaptureVerify(want digest.Digest, s []byte) error {
	raw, err := h.reader.ReadSecret(PromptEnter)
	if err != nil {
		return fmt.Errorf("%w: %w", cerrors.ErrPromptFailed, err)
	}
	pass := secret.Wrap(raw)
	defer pass.Destroy()

	if !Verify(pass.Bytes(), s, want) {
		return cerrors.ErrVerifyFailed
	}
	return nil
}

func (h *Hasher) capture(accept func(pass *secret.Buffer)) error {
	for {
		err := h.attempt(accept)
		if err == nil {
			return nil
		}
		if errors.Is(err, cerrors.ErrPromptFailed) {
			return err
		}
		h.reporter.Error(message(err))
	}
}

// attempt runs one enter/confirm round. Both secrets are destroyed before it
// returns, whatever the outcome.
func (h *Hasher) attempt(accept func(pass *secret.Buffer)) error {
	first, err := h.read(PromptEnter)
	if err != nil {
		return err
	}
	defer first.Destroy()

	second, err := h.read(PromptConfirm)
	if err != nil {
		return err
	}
	defer second.Destroy()

	if !first.Equal(second) {
		return cerrors.ErrPassphraseMismatch
	}
	if first.Empty() {
		return cerrors.ErrEmptyPassphrase
	}

	accept(first)
	return nil
}

func (h *Hasher) read(p string) (*secret.Buffer, error) {
	raw, err := h.reader.ReadSecret(p)
	if err != nil {
		secret.Zero(raw)
		return nil, fmt.Errorf("%w: %w", cerrors.ErrPromptFailed, err)
	}
	return secret.Wrap(raw), nil
}

func message(err error) string {
	switch {
	case errors.Is(err, cerrors.ErrPassphraseMismatch):
		return MsgMismatch
	case errors.Is(err, cerrors.ErrEmptyPassphrase):
		return MsgEmpty
	default:
		return err.Error()
	}
}
