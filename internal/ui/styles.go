package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/mcncl/jxview/internal/diagnose"
	"github.com/mcncl/jxview/internal/prefs"
	"github.com/mcncl/jxview/internal/session"
)

// Styles is the explorer palette for one theme.
type Styles struct {
	Title       lipgloss.Style
	Pane        lipgloss.Style
	FocusedPane lipgloss.Style
	Tab         lipgloss.Style
	ActiveTab   lipgloss.Style
	Placeholder lipgloss.Style
	Status      lipgloss.Style

	Key       lipgloss.Style
	Badge     lipgloss.Style
	String    lipgloss.Style
	Number    lipgloss.Style
	Literal   lipgloss.Style
	Match     lipgloss.Style
	Active    lipgloss.Style
	Cursor    lipgloss.Style
	Toggle    lipgloss.Style
	ErrorPane lipgloss.Style

	Toasts    map[session.Level]lipgloss.Style
	Diagnosis diagnose.Styles
}

type palette struct {
	fg, muted, accent, border, key, str, num, lit, match, active, cursor lipgloss.Color
	success, info, warning, failure                                      lipgloss.Color
}

var (
	darkPalette = palette{
		fg: "252", muted: "244", accent: "39", border: "238",
		key: "81", str: "114", num: "215", lit: "176",
		match: "58", active: "136", cursor: "237",
		success: "35", info: "33", warning: "178", failure: "160",
	}
	lightPalette = palette{
		fg: "235", muted: "245", accent: "27", border: "250",
		key: "25", str: "28", num: "130", lit: "90",
		match: "229", active: "221", cursor: "254",
		success: "28", info: "25", warning: "136", failure: "160",
	}
)

// NewStyles returns the styles for the "dark" or "light" theme.
func NewStyles(theme string) Styles {
	p := darkPalette
	if theme == prefs.ThemeLight {
		p = lightPalette
	}

	pane := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.border)
	toast := lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("231")).Bold(true)

	return Styles{
		Title:       lipgloss.NewStyle().Foreground(p.accent).Bold(true),
		Pane:        pane,
		FocusedPane: pane.BorderForeground(p.accent),
		Tab:         lipgloss.NewStyle().Foreground(p.muted).Padding(0, 1),
		ActiveTab:   lipgloss.NewStyle().Foreground(p.accent).Bold(true).Underline(true).Padding(0, 1),
		Placeholder: lipgloss.NewStyle().Foreground(p.muted).Italic(true),
		Status:      lipgloss.NewStyle().Foreground(p.muted),

		Key:       lipgloss.NewStyle().Foreground(p.key),
		Badge:     lipgloss.NewStyle().Foreground(p.muted),
		String:    lipgloss.NewStyle().Foreground(p.str),
		Number:    lipgloss.NewStyle().Foreground(p.num),
		Literal:   lipgloss.NewStyle().Foreground(p.lit),
		Match:     lipgloss.NewStyle().Background(p.match),
		Active:    lipgloss.NewStyle().Background(p.active).Bold(true),
		Cursor:    lipgloss.NewStyle().Background(p.cursor).Foreground(p.fg),
		Toggle:    lipgloss.NewStyle().Foreground(p.muted),
		ErrorPane: pane.BorderForeground(p.failure),

		Toasts: map[session.Level]lipgloss.Style{
			session.LevelSuccess: toast.Background(p.success),
			session.LevelInfo:    toast.Background(p.info),
			session.LevelWarning: toast.Background(p.warning),
			session.LevelError:   toast.Background(p.failure),
		},
		Diagnosis: diagnose.NewStyles(theme),
	}
}
