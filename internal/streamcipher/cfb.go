// Package streamcipher implements Blowfish in 64-bit cipher feedback mode as
// a stateful byte stream.
//
// A Context carries its feedback register and sub-block position from one
// call to the next, so a sequence of Transform calls behaves like a single
// call over the concatenated input. The two sides of a stream may chunk
// their input differently, but they must see the same bytes in the same
// order: a dropped or repeated byte desynchronizes the rest of the stream.
//
// There is no padding, framing or authentication. Callers that need
// integrity should use the seal package or add a MAC themselves.
package streamcipher

import (
	"crypto/cipher"
	"errors"

	"golang.org/x/crypto/blowfish"

	"github.com/jsf0/credcrypt/internal/secret"
)

// IVSize is the size of the feedback register.
const IVSize = blowfish.BlockSize

var (
	// ErrEmptyKey is returned for an empty passphrase.
	ErrEmptyKey = errors.New("streamcipher: empty passphrase")

	// ErrShortIV is returned by New with WithStrictIV when the IV is
	// shorter than IVSize.
	ErrShortIV = errors.New("streamcipher: IV shorter than 8 bytes")
)

// Direction selects encryption or decryption. It is fixed for the lifetime
// of a Context.
type Direction int

const (
	// Encrypt produces ciphertext and feeds it back into the register.
	Encrypt Direction = iota
	// Decrypt consumes ciphertext and feeds the input back.
	Decrypt
)

func (d Direction) String() string {
	switch d {
	case Encrypt:
		return "encrypt"
	case Decrypt:
		return "decrypt"
	default:
		return "unknown"
	}
}

// zeroSalt turns NewSaltedCipher into the plain Blowfish key schedule for
// keys of any length. NewCipher alone rejects keys over 56 bytes.
var zeroSalt [8]byte

type options struct {
	strictIV bool
}

// Option configures New.
type Option func(*options)

// WithStrictIV makes New reject an IV shorter than IVSize instead of
// starting from an all-zero register.
func WithStrictIV() Option {
	return func(o *options) { o.strictIV = true }
}

// Context is one end of a CFB-64 stream. It is not safe for concurrent use;
// independent streams need independent contexts.
type Context struct {
	block  *blowfish.Cipher
	ivec   [IVSize]byte
	num    int
	dir    Direction
	closed bool
}

var _ cipher.Stream = (*Context)(nil)

// New derives a Blowfish key schedule from passphrase and seeds the feedback
// register from the first IVSize bytes of iv.
//
// If iv is shorter than IVSize the register starts as all zeros, and every
// stream under the same passphrase then shares one keystream. Always pass a
// full IV, or use WithStrictIV to turn the fallback into an error.
func New(passphrase []byte, dir Direction, iv []byte, opts ...Option) (*Context, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if len(passphrase) == 0 {
		return nil, ErrEmptyKey
	}
	if len(iv) < IVSize && o.strictIV {
		return nil, ErrShortIV
	}

	block, err := blowfish.NewSaltedCipher(passphrase, zeroSalt[:])
	if err != nil {
		return nil, err
	}

	c := &Context{block: block, dir: dir}
	if len(iv) >= IVSize {
		copy(c.ivec[:], iv[:IVSize])
	}
	return c, nil
}

// Direction reports whether c encrypts or decrypts.
func (c *Context) Direction() Direction {
	return c.dir
}

// Transform returns the next len(in) bytes of the stream. It accepts any
// length, including zero.
func (c *Context) Transform(in []byte) []byte {
	out := make([]byte, len(in))
	c.XORKeyStream(out, in)
	return out
}

// XORKeyStream implements cipher.Stream. dst and src may overlap entirely.
func (c *Context) XORKeyStream(dst, src []byte) {
	if c.closed {
		panic("streamcipher: use of closed Context")
	}
	if len(dst) < len(src) {
		panic("streamcipher: output smaller than input")
	}

	for i, in := range src {
		if c.num == 0 {
			c.block.Encrypt(c.ivec[:], c.ivec[:])
		}
		if c.dir == Encrypt {
			out := in ^ c.ivec[c.num]
			c.ivec[c.num] = out
			dst[i] = out
		} else {
			dst[i] = in ^ c.ivec[c.num]
			c.ivec[c.num] = in
		}
		c.num = (c.num + 1) & (IVSize - 1)
	}
}

// Close scrubs the feedback register and key schedule. The Context must
// not be used afterwards.
func (c *Context) Close() error {
	if c.closed {
		return nil
	}
	secret.Zero(c.ivec[:])
	c.num = 0
	*c.block = blowfish.Cipher{}
	c.closed = true
	return nil
}
