// Package seal writes passphrase-protected, authenticated envelopes.
//
// The raw stream cipher carries no integrity protection; seal is the layer
// to use when tampering must be detected. An envelope is a JSON header
// line followed by Tink AES256-GCM-HKDF streaming ciphertext, either raw or
// base64 encoded. The key is derived from the passphrase with Argon2id.
package seal

import (
	"bufio"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/jsf0/credcrypt/internal/secret"
)

var (
	ErrInvalidHeader = errors.New("seal: invalid header")
	ErrEmptyKey      = errors.New("seal: empty passphrase")
	ErrKDFCost       = errors.New("seal: KDF cost exceeds limit")
)

// Options control key derivation and output encoding for Seal. Zero
// Memory and Iterations select 1 GiB and 3 iterations. Values above
// MaxMemory or MaxIterations are rejected, since Open would refuse them.
type Options struct {
	Base64     bool
	Memory     uint32 // Argon2 memory in KiB
	Iterations uint32
}

// Seal encrypts everything read from src and writes the envelope to dst.
func Seal(dst io.Writer, src io.Reader, passphrase []byte, opts Options) error {
	if len(passphrase) == 0 {
		return ErrEmptyKey
	}
	if opts.Iterations == 0 {
		opts.Iterations = defaultTime
	}
	if opts.Memory == 0 {
		opts.Memory = defaultMemKB
	}
	if opts.Memory > MaxMemory || opts.Iterations > MaxIterations {
		return ErrKDFCost
	}

	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}

	format := FormatBinary
	if opts.Base64 {
		format = FormatBase64
	}

	header := Header{
		Version:   Version,
		Algorithm: Algorithm,
		Format:    format,
		KDF: KDFParams{
			Algorithm: KDFName,
			Salt:      base64.StdEncoding.EncodeToString(salt),
			Time:      opts.Iterations,
			Memory:    opts.Memory,
			Threads:   threads,
			KeyLen:    keyLen,
		},
	}

	key := deriveKey(passphrase, salt, header.KDF)
	defer secret.Zero(key)

	primitive, err := newPrimitive(key)
	if err != nil {
		return err
	}

	line, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}

	out := bufio.NewWriterSize(dst, segmentSize)
	if _, err := out.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	var body io.WriteCloser = nopCloser{out}
	if opts.Base64 {
		body = base64.NewEncoder(base64.StdEncoding, out)
	}

	enc, err := primitive.NewEncryptingWriter(body, nil)
	if err != nil {
		return fmt.Errorf("failed to create encrypting writer: %w", err)
	}

	if _, err := io.Copy(enc, src); err != nil {
		return fmt.Errorf("encryption failed: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finalize encryption: %w", err)
	}
	if err := body.Close(); err != nil {
		return fmt.Errorf("failed to finalize output: %w", err)
	}
	if opts.Base64 {
		if err := out.WriteByte('\n'); err != nil {
			return fmt.Errorf("failed to write final newline: %w", err)
		}
	}

	if err := out.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error {
	return nil
}
