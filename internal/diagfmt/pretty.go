package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"strata/internal/diag"
	"strata/internal/source"
)

type palette struct {
	err, warn, info, code, path, gutter, caret, note *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan, color.Bold),
		code:   mk(color.Faint),
		path:   mk(color.Bold),
		gutter: mk(color.FgBlue),
		caret:  mk(color.FgRed, color.Bold),
		note:   mk(color.FgCyan),
	}
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty writes ds in a human-readable form:
//
//	main.src:3:9: ERROR SEM3005: message
//	  3 | var x = 1 + 'a'
//	    |         ^~~~~~~
func Pretty(w io.Writer, ds []diag.Diagnostic, files Files, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	for _, d := range ds {
		f := files.File(d.Primary.File)
		if f == nil {
			if _, err := fmt.Fprintf(w, "%s %s: %s\n", p.severity(d.Severity).Sprint(d.Severity), p.code.Sprint(d.Code.ID()), d.Message); err != nil {
				return err
			}
			continue
		}
		start := f.Position(d.Primary.Start)
		_, err := fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
			p.path.Sprint(displayPath(f, opts.PathMode, opts.BaseDir)), start.Line, start.Col,
			p.severity(d.Severity).Sprint(d.Severity), p.code.Sprint(d.Code.ID()), d.Message)
		if err != nil {
			return err
		}
		if err := writeSnippet(w, f, d.Primary, opts.Context, p); err != nil {
			return err
		}
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			loc := ""
			if nf := files.File(n.Span.File); nf != nil {
				pos := nf.Position(n.Span.Start)
				loc = fmt.Sprintf(" (%s:%d:%d)", displayPath(nf, opts.PathMode, opts.BaseDir), pos.Line, pos.Col)
			}
			if _, err := fmt.Fprintf(w, "  %s %s%s\n", p.note.Sprint("note:"), n.Msg, loc); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeSnippet(w io.Writer, f *source.File, span source.Span, context uint8, p palette) error {
	start, end := f.Resolve(span)
	first := start.Line
	if uint32(context) < first {
		first -= uint32(context)
	} else {
		first = 1
	}
	width := len(fmt.Sprint(start.Line))
	for line := first; line <= start.Line; line++ {
		text := expandTabs(f.GetLine(line))
		if _, err := fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf(" %*d |", width, line), text); err != nil {
			return err
		}
	}

	lineText := f.GetLine(start.Line)
	prefix := columnPrefix(lineText, start.Col)
	caretLen := 1
	if end.Line == start.Line && end.Col > start.Col {
		caretLen = max(1, runewidth.StringWidth(expandTabs(columnPrefix(lineText, end.Col)))-runewidth.StringWidth(expandTabs(prefix)))
	}
	marker := "^" + strings.Repeat("~", caretLen-1)
	_, err := fmt.Fprintf(w, "%s %s%s\n", p.gutter.Sprintf(" %*s |", width, ""), strings.Repeat(" ", runewidth.StringWidth(expandTabs(prefix))), p.caret.Sprint(marker))
	return err
}

// columnPrefix returns the bytes of line before the 1-based byte column col.
func columnPrefix(line string, col uint32) string {
	n := int(col) - 1
	if n < 0 {
		return ""
	}
	if n > len(line) {
		return line
	}
	return line[:n]
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}

// Short writes one line per diagnostic: path:line:col: SEVERITY CODE: message.
func Short(w io.Writer, ds []diag.Diagnostic, files Files, mode PathMode, baseDir string) error {
	for _, d := range ds {
		loc := "<unknown>"
		if f := files.File(d.Primary.File); f != nil {
			pos := f.Position(d.Primary.Start)
			loc = fmt.Sprintf("%s:%d:%d", displayPath(f, mode, baseDir), pos.Line, pos.Col)
		}
		if _, err := fmt.Fprintf(w, "%s: %s %s: %s\n", loc, d.Severity, d.Code.ID(), d.Message); err != nil {
			return err
		}
	}
	return nil
}
