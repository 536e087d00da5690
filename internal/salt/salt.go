// Package salt generates the per-credential salt mixed into stored
// password hashes.
package salt

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
)

// Size is the length of a salt in bytes.
const Size = 20

// alphabet keeps salts printable so they can be stored next to the hash in
// a text config file.
const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!?.,:;/*-+_()"

// ErrInvalidSalt is returned by Parse for a salt of the wrong length.
var ErrInvalidSalt = errors.New("invalid salt")

// Salt is a non-secret randomizer appended to a secret before hashing.
type Salt [Size]byte

// Generate returns a fresh salt drawn from crypto/rand.
func Generate() (Salt, error) {
	return generate(rand.Reader)
}

func generate(r io.Reader) (Salt, error) {
	var s Salt

	// Reject bytes past the largest multiple of len(alphabet) so every
	// character is equally likely.
	limit := byte(256 - 256%len(alphabet))
	buf := make([]byte, Size)

	n := 0
	for n < Size {
		if _, err := io.ReadFull(r, buf); err != nil {
			return Salt{}, fmt.Errorf("failed to generate salt: %w", err)
		}
		for _, b := range buf {
			if b >= limit {
				continue
			}
			s[n] = alphabet[int(b)%len(alphabet)]
			n++
			if n == Size {
				break
			}
		}
	}

	return s, nil
}

// Parse accepts a persisted salt.
func Parse(s string) (Salt, error) {
	var out Salt
	if len(s) != Size {
		return out, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidSalt, Size, len(s))
	}
	copy(out[:], s)
	return out, nil
}

// Bytes returns the salt as a slice backed by s.
func (s *Salt) Bytes() []byte {
	return s[:]
}

func (s Salt) String() string {
	return string(s[:])
}
