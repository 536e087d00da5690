package seal

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/tink-crypto/tink-go/v2/insecurecleartextkeyset"
	"github.com/tink-crypto/tink-go/v2/keyset"
	"github.com/tink-crypto/tink-go/v2/streamingaead"
	"github.com/tink-crypto/tink-go/v2/tink"
	"golang.org/x/crypto/argon2"
)

const (
	keyLen       = 32 // AES-256
	saltLen      = 16
	segmentSize  = 1 << 20
	hkdfSHA256   = 3
	defaultTime  = 3
	defaultMemKB = 1024 * 1024
	threads      = 4
)

// Upper bounds on the Argon2id cost accepted from a header or from Options.
// A hostile header must not be able to make Open allocate terabytes or spin
// for hours before the passphrase is even checked.
const (
	MaxMemory     = 16 * 1024 * 1024 // KiB, 16 GiB
	MaxIterations = 64
)

func deriveKey(passphrase, salt []byte, p KDFParams) []byte {
	return argon2.IDKey(passphrase, salt, p.Time, p.Memory, p.Threads, p.KeyLen)
}

// newPrimitive wraps a raw key in a single-key Tink keyset and returns its
// streaming AEAD.
func newPrimitive(key []byte) (tink.StreamingAEAD, error) {
	value := base64.StdEncoding.EncodeToString(streamingKeyProto(key))

	ks := fmt.Sprintf(`{
		"primaryKeyId": 1,
		"key": [{
			"keyData": {
				"typeUrl": "type.googleapis.com/google.crypto.tink.AesGcmHkdfStreamingKey",
				"keyMaterialType": "SYMMETRIC",
				"value": %q
			},
			"outputPrefixType": "RAW",
			"keyId": 1,
			"status": "ENABLED"
		}]
	}`, value)

	handle, err := insecurecleartextkeyset.Read(keyset.NewJSONReader(strings.NewReader(ks)))
	if err != nil {
		return nil, fmt.Errorf("failed to load keyset: %w", err)
	}

	primitive, err := streamingaead.New(handle)
	if err != nil {
		return nil, fmt.Errorf("failed to create streaming AEAD: %w", err)
	}
	return primitive, nil
}

// streamingKeyProto hand-encodes an AesGcmHkdfStreamingKey message:
//
//	version   (1) = 0
//	params    (2) = { ciphertext_segment_size (1), derived_key_size (2), hkdf_hash_type (3) }
//	key_value (3) = key
func streamingKeyProto(key []byte) []byte {
	var params []byte
	params = appendField(params, 1, segmentSize)
	params = appendField(params, 2, keyLen)
	params = appendField(params, 3, hkdfSHA256)

	var msg []byte
	msg = appendField(msg, 1, 0)
	msg = appendBytes(msg, 2, params)
	msg = appendBytes(msg, 3, key)
	return msg
}

func appendField(b []byte, field int, v uint32) []byte {
	b = append(b, byte(field<<3))
	return appendVarint(b, v)
}

func appendBytes(b []byte, field int, v []byte) []byte {
	b = append(b, byte(field<<3|2))
	b = appendVarint(b, uint32(len(v)))
	return append(b, v...)
}

func appendVarint(b []byte, v uint32) []byte {
	for v >= 0x80 {
		b = append(b, byte(v)|0x80)
		v >>= 7
	}
	return append(b, byte(v))
}
