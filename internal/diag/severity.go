package diag

// Severity ranks a diagnostic. Only SevError fails a check.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

var severityNames = [...]string{
	SevInfo:    "INFO",
	SevWarning: "WARNING",
	SevError:   "ERROR",
}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "UNKNOWN"
}

// Promote returns the severity a check reports: warnings become errors
// under warnings-as-errors, everything else is kept.
func (s Severity) Promote(warningsAsErrors bool) Severity {
	if warningsAsErrors && s == SevWarning {
		return SevError
	}
	return s
}
