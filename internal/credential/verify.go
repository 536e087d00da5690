package credential

import (
	"github.com/jsf0/credcrypt/internal/digest"
	"github.com/jsf0/credcrypt/internal/secret"
)

// Verify reports whether candidate || s hashes to want. Pass a nil salt for
// hashes produced by CaptureHash.
func Verify(candidate, s []byte, want digest.Digest) bool {
	salted := secret.Concat(candidate, s)
	defer salted.Destroy()

	return digest.Sum(salted.Bytes()).Equal(want)
}
