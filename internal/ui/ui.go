// Package ui provides the verbosity-gated colored output the CLI uses to
// narrate pipeline progress.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Printer writes leveled messages. OK needs -v, Info -vv, Debug -vvv;
// warnings always print.
type Printer struct {
	Verbose int
	Out     io.Writer
}

// New returns a Printer at the given verbosity writing to stdout.
func New(verbose int) *Printer {
	return &Printer{Verbose: verbose, Out: os.Stdout}
}

func (p *Printer) OK(format string, a ...any) {
	if p.Verbose >= 1 {
		fmt.Fprintf(p.Out, "%s %s\n", color.GreenString("✔"), fmt.Sprintf(format, a...))
	}
}

func (p *Printer) Info(format string, a ...any) {
	if p.Verbose >= 2 {
		fmt.Fprintf(p.Out, "%s %s\n", color.CyanString("i"), fmt.Sprintf(format, a...))
	}
}

func (p *Printer) Debug(format string, a ...any) {
	if p.Verbose >= 3 {
		fmt.Fprintf(p.Out, "%s %s\n", color.MagentaString("»"), fmt.Sprintf(format, a...))
	}
}

func (p *Printer) Warn(format string, a ...any) {
	fmt.Fprintf(p.Out, "%s %s\n", color.YellowString("!"), fmt.Sprintf(format, a...))
}
