package report

import (
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"cqlconf/internal/compare"
)

// styles maps report elements to render functions. The plain variant is
// used for persisted summary.txt files; the colored variant only when
// writing to a terminal.
type styles struct {
	success func(string) string
	header  func(string) string
}

func plainStyles() styles {
	ident := func(s string) string { return s }
	return styles{success: ident, header: ident}
}

func colorStyles() styles {
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	return styles{
		success: func(s string) string { return green(s) },
		header:  func(s string) string { return yellow(s) },
	}
}

// Printer writes comparison summaries to a stream, colorizing when the
// stream is a terminal.
type Printer struct {
	w     io.Writer
	color bool
}

// NewPrinter builds a printer for w. Color is enabled only when w is a
// terminal file descriptor.
func NewPrinter(w io.Writer) *Printer {
	p := &Printer{w: w}
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		p.color = true
	}
	return p
}

// Print writes the summary for one comparison result.
func (p *Printer) Print(res *compare.Result) {
	st := plainStyles()
	if p.color {
		st = colorStyles()
	}
	var sb strings.Builder
	writeSummary(&sb, res, st)
	io.WriteString(p.w, sb.String())
}
