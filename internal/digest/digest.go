// Package digest computes the fixed-size one-way hash used to store
// credentials. The raw form is 16 bytes; the text form is 32 lowercase hex
// characters.
package digest

import (
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
)

// Size is the length of a digest in bytes.
const Size = md5.Size

// ErrInvalidDigest is returned by Parse for malformed hex input.
var ErrInvalidDigest = errors.New("invalid digest")

// Digest is the MD5 hash of a credential.
type Digest [Size]byte

// Sum hashes b.
func Sum(b []byte) Digest {
	return Digest(md5.Sum(b))
}

// SumHex hashes b and returns the lowercase hex form.
func SumHex(b []byte) string {
	return Sum(b).Hex()
}

// Hex renders d as 32 lowercase hex characters, high nibble first.
func (d Digest) Hex() string {
	return hex.EncodeToString(d[:])
}

func (d Digest) String() string {
	return d.Hex()
}

// Bytes returns a copy of the raw digest.
func (d Digest) Bytes() []byte {
	b := make([]byte, Size)
	copy(b, d[:])
	return b
}

// Equal compares two digests in constant time.
func (d Digest) Equal(other Digest) bool {
	return subtle.ConstantTimeCompare(d[:], other[:]) == 1
}

// Parse reads the hex form produced by Hex. Upper-case digits are accepted.
func Parse(s string) (Digest, error) {
	var d Digest
	if len(s) != hex.EncodedLen(Size) {
		return d, fmt.Errorf("%w: expected %d hex characters, got %d", ErrInvalidDigest, hex.EncodedLen(Size), len(s))
	}
	if _, err := hex.Decode(d[:], []byte(s)); err != nil {
		return Digest{}, fmt.Errorf("%w: %v", ErrInvalidDigest, err)
	}
	return d, nil
}
