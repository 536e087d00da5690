// Package secret holds transient secret material and scrubs it on release.
//
// A Buffer is acquired as soon as a secret enters the process and released
// with a deferred Destroy, so the bytes are overwritten on every exit path:
//
//	buf := secret.Wrap(pass)
//	defer buf.Destroy()
package secret

import (
	"crypto/subtle"
	"runtime"
)

// Buffer owns secret bytes until Destroy is called.
type Buffer struct {
	data      []byte
	destroyed bool
}

// Wrap takes ownership of b without copying it. The caller must not keep
// using b except through the returned Buffer.
func Wrap(b []byte) *Buffer {
	return &Buffer{data: b}
}

// Concat returns a Buffer holding the concatenation of parts.
func Concat(parts ...[]byte) *Buffer {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	data := make([]byte, 0, n)
	for _, p := range parts {
		data = append(data, p...)
	}
	return &Buffer{data: data}
}

// Bytes returns the secret. The slice is only valid until Destroy.
func (b *Buffer) Bytes() []byte {
	if b == nil || b.destroyed {
		return nil
	}
	return b.data
}

// Len returns the secret's length, 0 after Destroy.
func (b *Buffer) Len() int {
	return len(b.Bytes())
}

// Empty reports whether the secret has no bytes.
func (b *Buffer) Empty() bool {
	return b.Len() == 0
}

// Equal compares two secrets in constant time.
func (b *Buffer) Equal(other *Buffer) bool {
	return subtle.ConstantTimeCompare(b.Bytes(), other.Bytes()) == 1
}

// Destroy overwrites the secret with zeros. It is safe to call more than
// once and on a nil Buffer.
func (b *Buffer) Destroy() {
	if b == nil || b.destroyed {
		return
	}
	Zero(b.data)
	b.data = nil
	b.destroyed = true
}

// Zero overwrites b with zeros.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}
