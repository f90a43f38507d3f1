package cli

import (
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
)

// Custom help styles
var (
	helpDescStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Italic(true).
			MarginBottom(1)

	helpCmdStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	helpFlagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#16A34A")).
			Bold(true)

	helpArgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0891B2")).
			Bold(true)

	helpDefaultStyle = lipgloss.NewStyle().
				Foreground(mutedColor).
				Italic(true)
)

// StyledHelpPrinter creates a help printer with Lipgloss styling. It
// describes the selected command, or the application when none is selected.
func StyledHelpPrinter(title, description string) kong.HelpPrinter {
	return func(options kong.HelpOptions, ctx *kong.Context) error {
		var sb strings.Builder

		node := ctx.Selected()
		if node == nil {
			node = ctx.Model.Node
		}

		sb.WriteString(TitleStyle.Render(title))
		sb.WriteString("\n")
		desc := description
		if node != ctx.Model.Node && node.Help != "" {
			desc = node.Help
		}
		sb.WriteString(helpDescStyle.Render(desc))
		sb.WriteString("\n")

		sb.WriteString(SectionStyle.Render("Usage:"))
		sb.WriteString("\n  ")
		sb.WriteString(node.Summary())
		sb.WriteString("\n")

		if cmds := commands(node); len(cmds) > 0 {
			writeSection(&sb, "Commands:", cmds, helpCmdStyle)
		}
		if args := arguments(node); len(args) > 0 {
			writeSection(&sb, "Arguments:", args, helpArgStyle)
		}
		if flags := flagEntries(node); len(flags) > 0 {
			writeSection(&sb, "Flags:", flags, helpFlagStyle)
		}

		sb.WriteString("\n")
		fmt.Fprint(ctx.Stdout, sb.String())
		return nil
	}
}

type entry struct {
	name       string
	help       string
	defaultVal string
}

func writeSection(sb *strings.Builder, title string, entries []entry, style lipgloss.Style) {
	sb.WriteString("\n")
	sb.WriteString(SectionStyle.Render(title))
	sb.WriteString("\n")
	for _, e := range entries {
		sb.WriteString("  ")
		sb.WriteString(style.Render(e.name))
		if e.help != "" {
			sb.WriteString("  ")
			sb.WriteString(e.help)
		}
		if e.defaultVal != "" {
			sb.WriteString(" ")
			sb.WriteString(helpDefaultStyle.Render("(default: " + e.defaultVal + ")"))
		}
		sb.WriteString("\n")
	}
}

func commands(node *kong.Node) []entry {
	var out []entry
	for _, child := range node.Children {
		if child.Hidden || child.Type != kong.CommandNode {
			continue
		}
		out = append(out, entry{name: child.Name, help: child.Help})
	}
	return out
}

func arguments(node *kong.Node) []entry {
	var out []entry
	for _, arg := range node.Positional {
		out = append(out, entry{name: arg.Summary(), help: arg.Help})
	}
	return out
}

func flagEntries(node *kong.Node) []entry {
	out := []entry{{name: "-h, --help", help: "Show context-sensitive help."}}

	for _, group := range node.AllFlags(true) {
		for _, f := range group {
			if f.Name == "help" {
				continue
			}

			name := fmt.Sprintf("--%s", f.Name)
			if f.Short != 0 {
				name = fmt.Sprintf("-%c, --%s", f.Short, f.Name)
			}
			if !f.IsBool() && f.PlaceHolder != "" {
				name += "=" + strings.ToUpper(f.PlaceHolder)
			}

			out = append(out, entry{name: name, help: f.Help, defaultVal: f.Default})
		}
	}

	return out
}
