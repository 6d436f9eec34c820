package diag

import "aegis/internal/source"

// Diagnostic is one user-facing finding: what went wrong, where, and —
// when derivable — how to fix it.
type Diagnostic struct {
	Severity   Severity
	Code       Code
	Message    string
	Suggestion string
	Pos        source.Pos
}
