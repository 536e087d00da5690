package prompt

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Printer writes prompt and status lines in the bracketed style used by the
// interactive commands:
//
//	[ ?? ] Enter Password:
//	[ ** ] The supplied passwords did not match
type Printer struct {
	W io.Writer

	// Plain disables color regardless of the terminal.
	Plain bool
}

// NewPrinter returns a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{W: w}
}

// Prompt writes "[ ?? ] msg: " without a trailing newline.
func (p *Printer) Prompt(msg string) {
	fmt.Fprintf(p.W, "%s %s: ", p.tag(" ?? ", color.FgYellow), msg)
}

// Error writes "[ ** ] msg" with a red tag.
func (p *Printer) Error(msg string) {
	fmt.Fprintf(p.W, "%s %s\n", p.tag(" ** ", color.FgRed), msg)
}

// Message writes "[ ** ] msg" with a yellow tag.
func (p *Printer) Message(msg string) {
	fmt.Fprintf(p.W, "%s %s\n", p.tag(" ** ", color.FgYellow), msg)
}

// Newline terminates a prompt line after hidden input.
func (p *Printer) Newline() {
	fmt.Fprintln(p.W)
}

func (p *Printer) tag(label string, fg color.Attribute) string {
	bracket := color.New(color.Bold, color.FgBlue)
	inner := color.New(color.Bold, fg)
	if p.Plain {
		bracket.DisableColor()
		inner.DisableColor()
	}
	return bracket.Sprint("[") + inner.Sprint(label) + bracket.Sprint("]")
}
