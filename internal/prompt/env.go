package prompt

import "os"

const (
	// PassphraseEnvVar supplies the secret non-interactively.
	PassphraseEnvVar = "CREDCRYPT_PASSPHRASE"

	// IVEnvVar supplies the stream cipher IV when --iv is not given.
	IVEnvVar = "CREDCRYPT_IV"
)

// Env answers every prompt with the value of an environment variable when it
// is set and non-empty, and defers to Next otherwise.
type Env struct {
	Name string
	Next Reader
}

// NewEnv wraps next with a lookup of PassphraseEnvVar.
func NewEnv(next Reader) *Env {
	return &Env{Name: PassphraseEnvVar, Next: next}
}

func (e *Env) ReadSecret(prompt string) ([]byte, error) {
	if v := os.Getenv(e.Name); v != "" {
		return []byte(v), nil
	}
	return e.Next.ReadSecret(prompt)
}
