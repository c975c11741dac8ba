package main

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	faultStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func supportsUnicode(writer any) bool {
	if file, ok := writer.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}

// heading renders title styled on a terminal and plain otherwise.
func heading(w io.Writer, title string) string {
	if supportsUnicode(w) {
		return headingStyle.Render(title)
	}
	return title
}

func formatOK(useUnicode bool) string {
	if useUnicode {
		return "✔"
	}
	return "[OK]"
}

func formatFault(useUnicode bool) string {
	if useUnicode {
		return faultStyle.Render("✖")
	}
	return "[XX]"
}
