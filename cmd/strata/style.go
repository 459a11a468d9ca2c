package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"strata/internal/driver"
)

var (
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	pathStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Faint(true)
	cycleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

func render(style lipgloss.Style, colored bool, s string) string {
	if !colored {
		return s
	}
	return style.Render(s)
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// summaryLine is the closing line for one entry, e.g.
// "main.src: 2 errors, 1 warning in 3 files".
func summaryLine(r *driver.Result, colored bool) string {
	files := 0
	if r.Collection != nil {
		files = len(r.Collection.Compilations())
	}
	status := render(okStyle, colored, "ok")
	if r.Failed {
		status = render(failStyle, colored, "failed")
	}
	return fmt.Sprintf("%s: %s (%s, %s in %s)",
		render(pathStyle, colored, r.Entry), status,
		plural(r.Errors, "error"), plural(r.Warnings, "warning"), plural(files, "file"))
}
