package diagfmt

import (
	"encoding/json"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"strata/internal/diag"
	"strata/internal/source"
)

// Location is a span in serialized output.
type Location struct {
	File      string `json:"file" msgpack:"file"`
	StartByte uint32 `json:"start_byte" msgpack:"start_byte"`
	EndByte   uint32 `json:"end_byte" msgpack:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty" msgpack:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty" msgpack:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty" msgpack:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty" msgpack:"end_col,omitempty"`
}

type NoteOutput struct {
	Message  string   `json:"message" msgpack:"message"`
	Location Location `json:"location" msgpack:"location"`
}

type DiagnosticOutput struct {
	Severity string       `json:"severity" msgpack:"severity"`
	Code     string       `json:"code" msgpack:"code"`
	Title    string       `json:"title" msgpack:"title"`
	Message  string       `json:"message" msgpack:"message"`
	Location Location     `json:"location" msgpack:"location"`
	Notes    []NoteOutput `json:"notes,omitempty" msgpack:"notes,omitempty"`
}

// Output is the root of JSON and msgpack output.
type Output struct {
	Entry       string             `json:"entry,omitempty" msgpack:"entry,omitempty"`
	Diagnostics []DiagnosticOutput `json:"diagnostics" msgpack:"diagnostics"`
	Count       int                `json:"count" msgpack:"count"`
	Errors      int                `json:"errors" msgpack:"errors"`
}

func makeLocation(span source.Span, files Files, opts JSONOpts) Location {
	loc := Location{StartByte: span.Start, EndByte: span.End}
	f := files.File(span.File)
	if f == nil {
		return loc
	}
	loc.File = displayPath(f, opts.PathMode, opts.BaseDir)
	if opts.IncludePositions {
		start, end := f.Resolve(span)
		loc.StartLine, loc.StartCol = start.Line, start.Col
		loc.EndLine, loc.EndCol = end.Line, end.Col
	}
	return loc
}

// BuildOutput converts ds without serializing them.
func BuildOutput(ds []diag.Diagnostic, files Files, opts JSONOpts) Output {
	n := len(ds)
	if opts.Max > 0 && opts.Max < n {
		n = opts.Max
	}
	out := Output{Entry: opts.Entry, Diagnostics: make([]DiagnosticOutput, 0, n)}
	for _, d := range ds[:n] {
		item := DiagnosticOutput{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Title:    d.Code.Title(),
			Message:  d.Message,
			Location: makeLocation(d.Primary, files, opts),
		}
		if opts.IncludeNotes {
			for _, note := range d.Notes {
				item.Notes = append(item.Notes, NoteOutput{Message: note.Msg, Location: makeLocation(note.Span, files, opts)})
			}
		}
		if d.IsError() {
			out.Errors++
		}
		out.Diagnostics = append(out.Diagnostics, item)
	}
	out.Count = len(out.Diagnostics)
	return out
}

// JSON writes ds as indented JSON.
func JSON(w io.Writer, ds []diag.Diagnostic, files Files, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildOutput(ds, files, opts))
}

// Msgpack writes ds in the same shape as JSON, msgpack encoded.
func Msgpack(w io.Writer, ds []diag.Diagnostic, files Files, opts JSONOpts) error {
	return msgpack.NewEncoder(w).Encode(BuildOutput(ds, files, opts))
}
