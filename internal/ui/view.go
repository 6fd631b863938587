package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/mcncl/jxview/internal/diagnose"
	"github.com/mcncl/jxview/internal/session"
	"github.com/mcncl/jxview/internal/tree"
)

const (
	minPaneHeight = 3
	title         = "jxview"
	fixHint       = "ctrl+a apply fix · esc dismiss"
)

// layout sizes the editor and the output viewport to the window.
func (m *Model) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	m.help.Width = m.width

	reserved := 3 + lipgloss.Height(m.help.View(m.keys))
	if panel := m.diagnosisPanel(); panel != "" {
		reserved += lipgloss.Height(panel)
	}
	paneHeight := max(m.height-reserved, minPaneHeight)

	inputWidth := m.width / 2
	outputWidth := m.width - inputWidth

	m.input.SetWidth(max(inputWidth-2, 1))
	m.input.SetHeight(max(paneHeight-2, 1))
	m.output.Width = max(outputWidth-2, 1)
	m.output.Height = max(paneHeight-2, 1)
}

func (m Model) styles() Styles {
	return NewStyles(m.ctrl.State().Theme)
}

// View renders the explorer.
func (m Model) View() string {
	s := m.styles()

	inputPane, outputPane := s.Pane, s.Pane
	switch m.focus {
	case focusInput:
		inputPane = s.FocusedPane
	case focusTree:
		outputPane = s.FocusedPane
	}

	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		inputPane.Render(m.input.View()),
		outputPane.Render(m.output.View()),
	)

	parts := []string{m.headerView(s), panes}
	if panel := m.diagnosisPanel(); panel != "" {
		parts = append(parts, panel)
	}
	parts = append(parts, m.search.View(), m.statusView(s), m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) headerView(s Styles) string {
	state := m.ctrl.State()
	tabs := []string{s.Title.Render(title)}
	for _, tab := range []session.Tab{session.TabFormatted, session.TabTree} {
		style := s.Tab
		if state.Tab == tab {
			style = s.ActiveTab
		}
		tabs = append(tabs, style.Render(tabName(tab)))
	}
	return strings.Join(tabs, " ")
}

func tabName(tab session.Tab) string {
	if tab == session.TabTree {
		return "Tree"
	}
	return "Formatted"
}

func (m Model) statusView(s Styles) string {
	state := m.ctrl.State()
	stats := m.ctrl.Stats()

	fields := []string{
		state.Document.Type.Label(),
		fmt.Sprintf("%d chars", stats.Chars),
		fmt.Sprintf("%d lines", stats.Lines),
		state.Theme,
	}
	if state.Search != nil && state.SearchKeyword != "" {
		fields = append(fields, "matches "+state.Search.Counter())
	}
	left := s.Status.Render(strings.Join(fields, " · "))

	if m.toast == nil {
		return left
	}
	toast := s.Toasts[m.toast.Level].Render(m.toast.Message)
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(toast), 1)
	return left + strings.Repeat(" ", gap) + toast
}

// diagnosisPanel renders the error report, capped to half the window.
func (m Model) diagnosisPanel() string {
	state := m.ctrl.State()
	if state.Diagnosis == nil {
		return ""
	}
	s := m.styles()

	body := strings.TrimRight(diagnose.String(state.Diagnosis, s.Diagnosis), "\n")
	if state.Diagnosis.HasFix() {
		body += "\n" + s.Placeholder.Render(fixHint)
	}

	if m.height > 0 {
		limit := max(m.height/2-2, 3)
		lines := strings.Split(body, "\n")
		if len(lines) > limit {
			body = strings.Join(lines[:limit], "\n")
		}
	}

	style := s.ErrorPane
	if m.width > 2 {
		style = style.Width(m.width - 2)
	}
	return style.Render(body)
}

// renderOutput renders the active tab.
func (m Model) renderOutput() string {
	state := m.ctrl.State()
	s := m.styles()

	if state.Tab == session.TabFormatted {
		if state.Formatted == "" {
			return s.Placeholder.Render("Formatted output appears here")
		}
		return m.highlighter(state.Theme).Highlight(state.Formatted, state.FormattedType)
	}

	if state.TreeNotice != "" {
		return s.Placeholder.Render(state.TreeNotice)
	}
	if state.Tree == nil {
		return s.Placeholder.Render("The tree appears once the input is valid JSON")
	}

	nodes := state.Tree.Visible()
	lines := make([]string, len(nodes))
	for i, node := range nodes {
		lines[i] = m.renderNode(s, node, i == m.cursor && m.focus == focusTree)
	}
	return strings.Join(lines, "\n")
}

// renderNode renders one tree row, truncating the value to the viewport width.
func (m Model) renderNode(s Styles, node *tree.Node, selected bool) string {
	cursor := "  "
	if selected {
		cursor = s.Title.Render("› ")
	}
	indent := strings.Repeat("  ", node.Depth)

	marker := "  "
	if node.IsContainer() {
		marker = "▾ "
		if node.Collapsed {
			marker = "▸ "
		}
	}

	value, valueStyle := node.Display, s.Literal
	switch node.Kind {
	case tree.KindObject, tree.KindArray:
		value, valueStyle = node.Badge, s.Badge
	case tree.KindString:
		valueStyle = s.String
	case tree.KindNumber:
		valueStyle = s.Number
	}

	keyStyle := s.Key
	switch {
	case node.Active:
		keyStyle = s.Active.Inherit(s.Key)
	case node.Highlighted:
		keyStyle = s.Match.Inherit(s.Key)
	}
	if selected {
		valueStyle = s.Cursor.Inherit(valueStyle)
	}

	used := runewidth.StringWidth("  " + indent + marker + node.Label)
	value = runewidth.Truncate(value, max(m.output.Width-used, 1), "…")

	return cursor + indent + s.Toggle.Render(marker) + keyStyle.Render(node.Label) + valueStyle.Render(value)
}
