package diagnose

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles colors the parts of a rendered diagnosis.
type Styles struct {
	Error   lipgloss.Style
	Context lipgloss.Style
	Added   lipgloss.Style
	Notice  lipgloss.Style
}

// NewStyles returns the palette for the "dark" or "light" theme.
func NewStyles(theme string) Styles {
	if theme == "light" {
		return Styles{
			Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Bold(true),
			Context: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Added:   lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
			Notice:  lipgloss.NewStyle().Foreground(lipgloss.Color("28")).Italic(true),
		}
	}
	return Styles{
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		Context: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Added:   lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		Notice:  lipgloss.NewStyle().Foreground(lipgloss.Color("114")).Italic(true),
	}
}

// PlainStyles renders without any escape sequences.
func PlainStyles() Styles {
	return Styles{
		Error:   lipgloss.NewStyle(),
		Context: lipgloss.NewStyle(),
		Added:   lipgloss.NewStyle(),
		Notice:  lipgloss.NewStyle(),
	}
}

// Render writes the error report followed by the fix suggestion, if any.
func Render(w io.Writer, diag *Diagnosis, styles Styles) error {
	_, err := io.WriteString(w, String(diag, styles))
	return err
}

// String renders the diagnosis as text.
func String(diag *Diagnosis, styles Styles) string {
	var b strings.Builder
	b.WriteString(styles.Error.Render(fmt.Sprintf("✗ %s: %s", diag.Title, diag.Message)))
	b.WriteString("\n")

	if diag.HasContext() {
		b.WriteString("\n")
		for _, line := range diag.Context {
			if line.Error {
				b.WriteString(styles.Error.Render(fmt.Sprintf("%4d │ → %s", line.Number, line.Text)))
				b.WriteString("\n")
				pointer := fmt.Sprintf("%s^ line %d, column %d", strings.Repeat(" ", diag.CaretIndent), diag.Line, diag.Column)
				b.WriteString(styles.Error.Render(pointer))
			} else {
				b.WriteString(styles.Context.Render(fmt.Sprintf("%4d │   %s", line.Number, line.Text)))
			}
			b.WriteString("\n")
		}
	}

	if diag.HasFix() {
		b.WriteString("\n")
		b.WriteString(styles.Notice.Render("Suggested fix: " + diag.Fix.Description))
		b.WriteString("\n")
		b.WriteString(RenderDiff(diag, styles))
	}
	return b.String()
}

// RenderDiff renders the fixed document with added lines marked "+".
func RenderDiff(diag *Diagnosis, styles Styles) string {
	var b strings.Builder
	for _, line := range diag.Diff {
		if line.Added {
			b.WriteString(styles.Added.Render("+ " + line.Text))
		} else {
			b.WriteString(styles.Context.Render("  " + line.Text))
		}
		b.WriteString("\n")
	}
	if diag.DiffTruncated {
		b.WriteString(styles.Context.Render(fmt.Sprintf("  ... %d lines total ...", diag.DiffTotal)))
		b.WriteString("\n")
	}
	return b.String()
}
