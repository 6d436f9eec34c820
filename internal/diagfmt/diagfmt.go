// Package diagfmt renders diagnostics for terminal output.
package diagfmt

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"aegis/internal/diag"
)

var (
	errorLabel = color.New(color.FgRed, color.Bold)
	warnLabel  = color.New(color.FgYellow, color.Bold)
	infoLabel  = color.New(color.FgCyan, color.Bold)
	posStyle   = color.New(color.Faint)
	hintStyle  = color.New(color.FgGreen)
)

// Fprint writes one diagnostic as a single line plus an optional hint
// line. Colors are suppressed unless colorize is set.
func Fprint(w io.Writer, d diag.Diagnostic, colorize bool) {
	label := infoLabel
	switch d.Severity {
	case diag.SevError:
		label = errorLabel
	case diag.SevWarning:
		label = warnLabel
	}

	write := func(c *color.Color, format string, args ...any) {
		if colorize {
			c.Fprintf(w, format, args...)
			return
		}
		fmt.Fprintf(w, format, args...)
	}

	if !d.Pos.IsZero() {
		write(posStyle, "%s: ", d.Pos)
	}
	write(label, "%s[%s]", d.Severity, d.Code)
	fmt.Fprintf(w, ": %s\n", d.Message)
	if d.Suggestion != "" {
		write(hintStyle, "  hint: %s\n", d.Suggestion)
	}
}

// FprintBag writes every diagnostic in the bag in its current order.
func FprintBag(w io.Writer, bag *diag.Bag, colorize bool) {
	for _, d := range bag.Items() {
		Fprint(w, d, colorize)
	}
}
