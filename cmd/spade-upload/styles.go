package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Color palette.
var (
	successColor = lipgloss.Color("#10B981") // Green
	warningColor = lipgloss.Color("#F59E0B") // Amber
	errorColor   = lipgloss.Color("#EF4444") // Red
	mutedColor   = lipgloss.Color("#6B7280") // Gray
)

// printer writes command results, colored when w is a terminal.
type printer struct {
	w       io.Writer
	success lipgloss.Style
	warning lipgloss.Style
	failure lipgloss.Style
	muted   lipgloss.Style
}

func newPrinter(w io.Writer, noColor bool) *printer {
	p := &printer{w: w}
	if noColor {
		return p
	}

	r := lipgloss.NewRenderer(w)
	p.success = r.NewStyle().Bold(true).Foreground(successColor)
	p.warning = r.NewStyle().Bold(true).Foreground(warningColor)
	p.failure = r.NewStyle().Bold(true).Foreground(errorColor)
	p.muted = r.NewStyle().Foreground(mutedColor)
	return p
}

// verdict prints "<name>: <result> (<n> bytes)".
func (p *printer) verdict(name string, accepted bool, result string, size int) {
	style := p.failure
	if accepted {
		style = p.success
	}
	fmt.Fprintf(p.w, "%s: %s %s\n", name, style.Render(result), p.muted.Render(fmt.Sprintf("(%d bytes)", size)))
}

func (p *printer) probe(legacy bool) {
	if legacy {
		fmt.Fprintln(p.w, p.warning.Render("legacy"))
		return
	}
	fmt.Fprintln(p.w, p.success.Render("current"))
}
