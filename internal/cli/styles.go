// Package cli holds the terminal styling shared by the command-line tools.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	primaryColor = lipgloss.Color("#D97706") // Amber
	accentColor  = lipgloss.Color("#0EA5E9") // Sky
	mutedColor   = lipgloss.Color("#888888") // Gray
	textColor    = lipgloss.Color("#FFFFFF") // White
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#DC2626"))

	KeyStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor)
)

// PrintVersion prints version information.
func PrintVersion(version string) {
	fmt.Println(TitleStyle.Render("algo-osc"))
	fmt.Printf("%s %s\n", KeyStyle.Render("Version:"), ValueStyle.Render(version))
	fmt.Println()
}

// PrintError prints an error message.
func PrintError(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", ErrorStyle.Render("Error:"), message)
}

// PrintSection writes a section heading.
func PrintSection(w io.Writer, title string) {
	fmt.Fprintln(w, SectionStyle.Render(title))
}

// FormatKV renders a padded key and a highlighted value.
func FormatKV(key string, value any) string {
	return fmt.Sprintf("  %s %s", KeyStyle.Render(fmt.Sprintf("%-14s", key+":")), ValueStyle.Render(fmt.Sprint(value)))
}

// PrintKV writes one key-value line.
func PrintKV(w io.Writer, key string, value any) {
	fmt.Fprintln(w, FormatKV(key, value))
}
