package seal

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Small Argon2 parameters keep the tests fast.
var testOpts = Options{Memory: 64, Iterations: 1}

func sealBytes(t *testing.T, msg, pass []byte, opts Options) []byte {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, Seal(&out, bytes.NewReader(msg), pass, opts))
	return out.Bytes()
}

func TestSealOpenRoundTrip(t *testing.T) {
	msg := bytes.Repeat([]byte("sealed payload "), 1000)

	for _, b64 := range []bool{false, true} {
		opts := testOpts
		opts.Base64 = b64

		env := sealBytes(t, msg, []byte("hunter2"), opts)

		var out bytes.Buffer
		require.NoError(t, Open(&out, bytes.NewReader(env), []byte("hunter2")), "base64=%v", b64)
		assert.Equal(t, msg, out.Bytes())
	}
}

func TestSealEmptyInput(t *testing.T) {
	env := sealBytes(t, nil, []byte("hunter2"), testOpts)

	var out bytes.Buffer
	require.NoError(t, Open(&out, bytes.NewReader(env), []byte("hunter2")))
	assert.Empty(t, out.Bytes())
}

func TestSealHeader(t *testing.T) {
	env := sealBytes(t, []byte("x"), []byte("hunter2"), testOpts)

	line, _, ok := bytes.Cut(env, []byte("\n"))
	require.True(t, ok)

	var h Header
	require.NoError(t, json.Unmarshal(line, &h))
	assert.Equal(t, Version, h.Version)
	assert.Equal(t, Algorithm, h.Algorithm)
	assert.Equal(t, FormatBinary, h.Format)
	assert.Equal(t, KDFName, h.KDF.Algorithm)
	assert.Equal(t, uint32(64), h.KDF.Memory)
	assert.Equal(t, uint32(1), h.KDF.Time)
	assert.EqualValues(t, keyLen, h.KDF.KeyLen)
}

func TestOpenWrongPassphrase(t *testing.T) {
	env := sealBytes(t, []byte("secret data"), []byte("hunter2"), testOpts)

	var out bytes.Buffer
	assert.Error(t, Open(&out, bytes.NewReader(env), []byte("hunter3")))
}

func TestOpenDetectsTampering(t *testing.T) {
	env := sealBytes(t, []byte("secret data that must not change"), []byte("hunter2"), testOpts)
	env[len(env)-1] ^= 0x01

	var out bytes.Buffer
	assert.Error(t, Open(&out, bytes.NewReader(env), []byte("hunter2")))
}

func TestOpenRejectsBadHeader(t *testing.T) {
	tests := map[string]string{
		"not json":      "garbage\n",
		"no version":    `{"algorithm":"AES256-GCM-HKDF-1MB","kdf":{"algorithm":"argon2id"}}` + "\n",
		"bad algorithm": `{"version":"1.0.0","algorithm":"rot13","kdf":{"algorithm":"argon2id"}}` + "\n",
		"bad kdf":       `{"version":"1.0.0","algorithm":"AES256-GCM-HKDF-1MB","kdf":{"algorithm":"md5"}}` + "\n",
		"bad format":    `{"version":"1.0.0","algorithm":"AES256-GCM-HKDF-1MB","format":"hex","kdf":{"algorithm":"argon2id","time":1,"threads":4,"keylen":32}}` + "\n",
		"no newline":    "",
		"zero memory":   `{"version":"1.0.0","algorithm":"AES256-GCM-HKDF-1MB","format":"binary","kdf":{"algorithm":"argon2id","salt":"","time":1,"memory":0,"threads":4,"keylen":32}}` + "\n",
		"huge memory":   `{"version":"1.0.0","algorithm":"AES256-GCM-HKDF-1MB","format":"binary","kdf":{"algorithm":"argon2id","salt":"","time":1,"memory":4294967295,"threads":4,"keylen":32}}` + "\n",
		"huge time":     `{"version":"1.0.0","algorithm":"AES256-GCM-HKDF-1MB","format":"binary","kdf":{"algorithm":"argon2id","salt":"","time":4294967295,"memory":64,"threads":4,"keylen":32}}` + "\n",
	}

	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			err := Open(&out, bytes.NewReader([]byte(in)), []byte("hunter2"))
			assert.ErrorIs(t, err, ErrInvalidHeader)
		})
	}
}

func TestSealRejectsExcessiveCost(t *testing.T) {
	var out bytes.Buffer
	err := Seal(&out, bytes.NewReader(nil), []byte("hunter2"), Options{Memory: MaxMemory + 1, Iterations: 1})
	assert.ErrorIs(t, err, ErrKDFCost)

	err = Seal(&out, bytes.NewReader(nil), []byte("hunter2"), Options{Memory: 64, Iterations: MaxIterations + 1})
	assert.ErrorIs(t, err, ErrKDFCost)
	assert.Zero(t, out.Len())
}

func TestEmptyPassphrase(t *testing.T) {
	var out bytes.Buffer
	assert.ErrorIs(t, Seal(&out, bytes.NewReader(nil), nil, testOpts), ErrEmptyKey)
	assert.ErrorIs(t, Open(&out, bytes.NewReader(nil), nil), ErrEmptyKey)
}

func TestStreamingKeyProto(t *testing.T) {
	key := bytes.Repeat([]byte{0xaa}, keyLen)
	got := streamingKeyProto(key)

	want := []byte{
		0x08, 0x00,
		0x12, 0x08,
		0x08, 0x80, 0x80, 0x40,
		0x10, 0x20,
		0x18, 0x03,
		0x1a, 0x20,
	}
	want = append(want, key...)
	assert.Equal(t, want, got)
}
