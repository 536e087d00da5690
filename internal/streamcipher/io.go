package streamcipher

import (
	"crypto/cipher"
	"io"
)

// NewReader returns a reader that transforms everything read from r.
func NewReader(r io.Reader, c *Context) io.Reader {
	return cipher.StreamReader{S: c, R: r}
}

// NewWriter returns a writer that transforms everything written to it
// before passing it to w. Closing the writer closes w if w is an io.Closer;
// it does not close c.
func NewWriter(w io.Writer, c *Context) io.WriteCloser {
	return cipher.StreamWriter{S: c, W: w}
}
