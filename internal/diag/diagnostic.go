package diag

import (
	"strata/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

// IsError reports whether the diagnostic fails a check.
func (d Diagnostic) IsError() bool {
	return d.Severity >= SevError
}

// identity is what makes two diagnostics the same finding.
type identity struct {
	code    Code
	sev     Severity
	primary source.Span
	msg     string
}

func (d Diagnostic) identity() identity {
	return identity{code: d.Code, sev: d.Severity, primary: d.Primary, msg: d.Message}
}
