package prompt

import (
	"fmt"
	"io"

	"github.com/jsf0/credcrypt/internal/secret"
)

// Lines reads one secret per line from r. It serves scripted input where no
// terminal is present. Running out of input is an error, so a caller that
// keeps re-prompting cannot spin forever on a closed stream.
//
// Input is consumed one byte at a time and nothing past the newline is
// buffered, so the only copy of a secret Lines holds is the slice it
// returns.
type Lines struct {
	r       io.Reader
	Printer *Printer
}

// NewLines returns a Lines reader over r. p may be nil to suppress prompts.
func NewLines(r io.Reader, p *Printer) *Lines {
	return &Lines{r: r, Printer: p}
}

func (l *Lines) ReadSecret(prompt string) ([]byte, error) {
	if l.Printer != nil {
		l.Printer.Prompt(prompt)
	}

	line, err := l.readLine()
	if err != nil {
		return nil, fmt.Errorf("failed to read secret from input: %w", err)
	}

	if l.Printer != nil {
		l.Printer.Newline()
	}
	return line, nil
}

// readLine returns the bytes up to the next newline with any trailing CR
// removed. A final line without a newline is returned as is; EOF before
// any byte is io.ErrUnexpectedEOF.
func (l *Lines) readLine() ([]byte, error) {
	var one [1]byte
	defer secret.Zero(one[:])

	var line []byte
	for {
		n, err := l.r.Read(one[:])
		if n == 1 {
			if one[0] == '\n' {
				break
			}
			line = appendScrubbed(line, one[0])
			continue
		}
		if err == io.EOF {
			if line == nil {
				return nil, io.ErrUnexpectedEOF
			}
			break
		}
		if err != nil {
			secret.Zero(line)
			return nil, err
		}
	}

	if n := len(line); n > 0 && line[n-1] == '\r' {
		line[n-1] = 0
		line = line[:n-1]
	}
	if line == nil {
		line = []byte{}
	}
	return line, nil
}

// appendScrubbed appends c to b and zeroes the old backing array whenever
// the slice has to grow.
func appendScrubbed(b []byte, c byte) []byte {
	if len(b) < cap(b) {
		return append(b, c)
	}
	grown := make([]byte, len(b), 2*cap(b)+16)
	copy(grown, b)
	secret.Zero(b)
	return append(grown, c)
}
