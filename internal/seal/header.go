package seal

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

const (
	Version   = "1.0.0"
	Algorithm = "AES256-GCM-HKDF-1MB"
	KDFName   = "argon2id"

	FormatBinary = "binary"
	FormatBase64 = "base64"
)

// Header is the JSON line that precedes the ciphertext. It records
// everything except the passphrase needed to open the envelope.
type Header struct {
	Version   string    `json:"version"`
	Algorithm string    `json:"algorithm"`
	Format    string    `json:"format"`
	KDF       KDFParams `json:"kdf"`
}

// KDFParams holds the Argon2id parameters used to derive the key.
type KDFParams struct {
	Algorithm string `json:"algorithm"`
	Salt      string `json:"salt"`
	Time      uint32 `json:"time"`
	Memory    uint32 `json:"memory"` // KiB
	Threads   uint8  `json:"threads"`
	KeyLen    uint32 `json:"keylen"`
}

func parseHeader(line []byte) (*Header, []byte, error) {
	var h Header
	if err := json.Unmarshal(line, &h); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidHeader, err)
	}

	if h.Version == "" {
		return nil, nil, fmt.Errorf("%w: missing version", ErrInvalidHeader)
	}
	if h.Algorithm != Algorithm {
		return nil, nil, fmt.Errorf("%w: unsupported algorithm %q", ErrInvalidHeader, h.Algorithm)
	}
	if h.KDF.Algorithm != KDFName {
		return nil, nil, fmt.Errorf("%w: unsupported KDF %q", ErrInvalidHeader, h.KDF.Algorithm)
	}

	// Envelopes written before the format field existed are base64.
	if h.Format == "" {
		h.Format = FormatBase64
	}
	if h.Format != FormatBinary && h.Format != FormatBase64 {
		return nil, nil, fmt.Errorf("%w: unsupported format %q", ErrInvalidHeader, h.Format)
	}
	if h.KDF.KeyLen != keyLen || h.KDF.Time == 0 || h.KDF.Threads == 0 || h.KDF.Memory == 0 {
		return nil, nil, fmt.Errorf("%w: bad KDF parameters", ErrInvalidHeader)
	}
	if h.KDF.Memory > MaxMemory || h.KDF.Time > MaxIterations {
		return nil, nil, fmt.Errorf("%w: KDF cost memory=%dKiB time=%d exceeds limit", ErrInvalidHeader, h.KDF.Memory, h.KDF.Time)
	}

	salt, err := base64.StdEncoding.DecodeString(h.KDF.Salt)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: salt: %v", ErrInvalidHeader, err)
	}

	return &h, salt, nil
}
