// Package diag defines the diagnostic model shared by every analysis phase.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with a stable string ID.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary – the source.Span the finding is attributed to. The span's File
//     is the id of the compilation the diagnostic belongs to.
//   - Notes – optional secondary spans/messages.
//
// # Emitting diagnostics
//
// Producers either build values directly (New, NewError, WithNote) or emit
// through a Reporter. BagReporter aggregates into a Bag, which supports
// sorting, deduplication and filtering. Package diag does no formatting or IO;
// rendering lives in internal/diagfmt.
package diag
