package seal

import (
	"bufio"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/jsf0/credcrypt/internal/secret"
)

// Open reads an envelope from src and writes the plaintext to dst. A wrong
// passphrase or modified ciphertext is reported as an error; dst may
// already hold a prefix of the plaintext by then.
func Open(dst io.Writer, src io.Reader, passphrase []byte) error {
	if len(passphrase) == 0 {
		return ErrEmptyKey
	}

	in := bufio.NewReader(src)
	line, err := in.ReadBytes('\n')
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidHeader, err)
	}

	header, salt, err := parseHeader(line)
	if err != nil {
		return err
	}

	key := deriveKey(passphrase, salt, header.KDF)
	defer secret.Zero(key)

	primitive, err := newPrimitive(key)
	if err != nil {
		return err
	}

	var body io.Reader = in
	if header.Format == FormatBase64 {
		body = base64.NewDecoder(base64.StdEncoding, in)
	}

	dec, err := primitive.NewDecryptingReader(body, nil)
	if err != nil {
		return fmt.Errorf("failed to create decrypting reader: %w", err)
	}

	out := bufio.NewWriterSize(dst, segmentSize)
	if _, err := io.Copy(out, dec); err != nil {
		return fmt.Errorf("decryption failed (wrong passphrase or corrupted data?): %w", err)
	}
	if err := out.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}
