package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"jsfront/internal/diag"
	"jsfront/internal/source"
)

type styles struct {
	err, warn, info *color.Color
	path, gutter    *color.Color
	caret, note     *color.Color
}

func newStyles(enabled bool) styles {
	st := styles{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		path:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
		note:   color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{st.err, st.warn, st.info, st.path, st.gutter, st.caret, st.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return st
}

func (st styles) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return st.err
	case diag.SevWarning:
		return st.warn
	}
	return st.info
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем строку исходника с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	st := newStyles(opts.Color)
	items := bag.Items()
	n := len(items)
	if opts.Max > 0 && opts.Max < n {
		n = opts.Max
	}
	for i := range n {
		prettyOne(w, &items[i], fs, st, opts)
	}
	if n < len(items) {
		fmt.Fprintf(w, "... and %d more diagnostics\n", len(items)-n)
	}
}

func codeLabel(d *diag.Diagnostic) string {
	if d.Rule != "" {
		return d.Code.ID() + "/" + d.Rule
	}
	return d.Code.ID()
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, st styles, opts PrettyOpts) {
	sev := st.severity(d.Severity).Sprint(d.Severity.String())
	if !located(d, fs) {
		fmt.Fprintf(w, "%s %s: %s\n", sev, codeLabel(d), d.Message)
		return
	}

	file := fs.Get(d.Primary.File)
	start, end := file.Resolve(d.Primary)
	loc := fmt.Sprintf("%s:%d:%d", formatPath(file, fs, opts.PathMode), start.Line, start.Col)
	fmt.Fprintf(w, "%s: %s %s: %s\n", st.path.Sprint(loc), sev, codeLabel(d), d.Message)
	writeSnippet(w, file, start, end, int(opts.Context), st)

	if opts.ShowNotes {
		for _, note := range d.Notes {
			label := st.note.Sprint("note")
			if fs.Has(note.Span.File) && note.Span != (source.Span{}) {
				nf := fs.Get(note.Span.File)
				ns, _ := nf.Resolve(note.Span)
				fmt.Fprintf(w, "  %s: %s:%d:%d: %s\n", label, formatPath(nf, fs, opts.PathMode), ns.Line, ns.Col, note.Msg)
				continue
			}
			fmt.Fprintf(w, "  %s: %s\n", label, note.Msg)
		}
	}
}

// writeSnippet prints the primary line with context lines around it and a
// caret underline below the primary one.
func writeSnippet(w io.Writer, file *source.File, start, end source.LineCol, context int, st styles) {
	if context < 0 {
		context = 0
	}
	total := uint32(len(file.LineIdx) + 1) //nolint:gosec // line count fits uint32
	first := start.Line
	last := start.Line
	for i := 0; i < context && first > 1; i++ {
		first--
	}
	for i := 0; i < context && last < total; i++ {
		last++
	}
	gutterWidth := len(fmt.Sprint(last))

	for ln := first; ln <= last; ln++ {
		text := file.GetLine(ln)
		fmt.Fprintf(w, "%s %s\n", st.gutter.Sprintf("%*d |", gutterWidth, ln), text)
		if ln != start.Line {
			continue
		}
		pad, width := underline(text, start, end)
		fmt.Fprintf(w, "%s %s%s\n",
			st.gutter.Sprintf("%*s |", gutterWidth, ""),
			pad,
			st.caret.Sprint("^"+strings.Repeat("~", width-1)))
	}
}

// underline computes the padding before the caret and the caret width in
// terminal cells; tabs in the padding are kept so the caret stays aligned.
func underline(line string, start, end source.LineCol) (string, int) {
	from := min(int(start.Col)-1, len(line))
	to := len(line)
	if end.Line == start.Line {
		to = min(int(end.Col)-1, len(line))
	}
	if to < from {
		to = from
	}

	var pad strings.Builder
	for _, r := range line[:from] {
		if r == '\t' {
			pad.WriteByte('\t')
			continue
		}
		pad.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return pad.String(), max(runewidth.StringWidth(line[from:to]), 1)
}
