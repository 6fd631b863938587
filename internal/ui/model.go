// Package ui is the interactive explorer: an input editor next to a
// formatted or tree view of the document, driven by a session.Controller.
package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"

	"github.com/mcncl/jxview/internal/formatter"
	"github.com/mcncl/jxview/internal/session"
	"github.com/mcncl/jxview/internal/tree"
)

const (
	DefaultDebounce      = 300 * time.Millisecond
	DefaultToastDuration = 2 * time.Second
)

type focus int

const (
	focusInput focus = iota
	focusTree
	focusSearch
)

type (
	// debounceMsg fires after typing pauses; only the latest generation is processed.
	debounceMsg     struct{ generation int }
	noticeMsg       session.Notice
	toastExpiredMsg struct{ seq int }
)

// NoticeQueue is a session.Notifier that hands notices to the event loop.
// Notify never blocks; notices are dropped when the queue is full.
type NoticeQueue chan session.Notice

func NewNoticeQueue() NoticeQueue {
	return make(NoticeQueue, 32)
}

func (q NoticeQueue) Notify(n session.Notice) {
	select {
	case q <- n:
	default:
	}
}

// Options tunes the explorer.
type Options struct {
	Debounce      time.Duration
	ToastDuration time.Duration
	// HighlightStyles maps a theme to a chroma style name.
	HighlightStyles map[string]string
	Logger          logr.Logger
}

// Model is the bubbletea model of the explorer.
type Model struct {
	ctrl    *session.Controller
	notices NoticeQueue
	opts    Options
	keys    KeyMap
	log     logr.Logger

	help   help.Model
	input  textarea.Model
	output viewport.Model
	search textinput.Model

	focus      focus
	prevFocus  focus
	generation int
	cursor     int

	toast    *session.Notice
	toastSeq int

	highlighters map[string]*formatter.Highlighter
	width        int
	height       int
}

// New creates the explorer over ctrl. The controller must notify into notices.
func New(ctrl *session.Controller, notices NoticeQueue, opts Options) Model {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.ToastDuration <= 0 {
		opts.ToastDuration = DefaultToastDuration
	}
	if opts.Logger.GetSink() == nil {
		opts.Logger = logr.Discard()
	}

	input := textarea.New()
	input.Placeholder = "Paste JSON or XML here"
	input.ShowLineNumbers = true
	input.CharLimit = 0
	input.MaxHeight = 0
	input.SetValue(ctrl.State().Document.Text)
	input.Focus()

	search := textinput.New()
	search.Prompt = "search: "
	search.Placeholder = "key name"
	search.CharLimit = 256

	m := Model{
		ctrl:         ctrl,
		notices:      notices,
		opts:         opts,
		keys:         DefaultKeyMap(),
		log:          opts.Logger,
		help:         help.New(),
		input:        input,
		output:       viewport.New(80, 20),
		search:       search,
		highlighters: make(map[string]*formatter.Highlighter),
	}
	m.refresh()
	return m
}

// Init starts the cursor blink and the notice listener.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.waitForNotice())
}

func (m Model) waitForNotice() tea.Cmd {
	if m.notices == nil {
		return nil
	}
	notices := m.notices
	return func() tea.Msg {
		n, ok := <-notices
		if !ok {
			return nil
		}
		return noticeMsg(n)
	}
}

// Update handles one message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = max(msg.Width, 0)
		m.height = max(msg.Height, 0)
		m.refresh()
		return m, nil

	case debounceMsg:
		if msg.generation != m.generation {
			return m, nil
		}
		m.process()
		return m, nil

	case noticeMsg:
		notice := session.Notice(msg)
		m.toast = &notice
		m.toastSeq++
		seq := m.toastSeq
		expire := tea.Tick(m.opts.ToastDuration, func(time.Time) tea.Msg {
			return toastExpiredMsg{seq: seq}
		})
		return m, tea.Batch(expire, m.waitForNotice())

	case toastExpiredMsg:
		if msg.seq == m.toastSeq {
			m.toast = nil
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusInput:
		m.input, cmd = m.input.Update(msg)
	case focusSearch:
		m.search, cmd = m.search.Update(msg)
	default:
		m.output, cmd = m.output.Update(msg)
	}
	return m, cmd
}

// process hands the editor text to the controller.
func (m *Model) process() {
	m.ctrl.SetInput(m.input.Value())
	m.log.V(1).Info("input processed", "type", m.ctrl.State().Document.Type, "generation", m.generation)
	m.refresh()
}

// flush processes edits still waiting for their debounce tick.
func (m *Model) flush() {
	if m.input.Value() != m.ctrl.State().Document.Text {
		m.generation++
		m.process()
	}
}

func (m *Model) scheduleProcess() tea.Cmd {
	m.generation++
	generation := m.generation
	return tea.Tick(m.opts.Debounce, func(time.Time) tea.Msg {
		return debounceMsg{generation: generation}
	})
}

// syncInput copies a rewritten document back into the editor.
func (m *Model) syncInput() {
	m.generation++
	m.input.SetValue(m.ctrl.State().Document.Text)
	m.refresh()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Format):
		m.flush()
		m.ctrl.Format()
		m.syncInput()
		return m, nil
	case key.Matches(msg, m.keys.Minify):
		m.flush()
		m.ctrl.Minify()
		m.syncInput()
		return m, nil
	case key.Matches(msg, m.keys.SortKeys):
		m.flush()
		m.ctrl.SortKeys()
		m.syncInput()
		return m, nil
	case key.Matches(msg, m.keys.ApplyFix):
		m.flush()
		m.ctrl.ApplyFix()
		m.syncInput()
		return m, nil
	case key.Matches(msg, m.keys.Clear):
		m.ctrl.Clear()
		m.search.SetValue("")
		m.ctrl.ClearSearch()
		m.syncInput()
		return m, nil
	case key.Matches(msg, m.keys.Sample):
		m.ctrl.LoadSample()
		m.syncInput()
		return m, nil

	case key.Matches(msg, m.keys.ExpandAll):
		m.flush()
		m.ctrl.ExpandAll()
		m.refresh()
		return m, nil
	case key.Matches(msg, m.keys.CollapseAll):
		m.flush()
		m.ctrl.CollapseAll()
		m.refresh()
		return m, nil
	case key.Matches(msg, m.keys.Copy):
		m.flush()
		m.ctrl.CopyAll()
		return m, nil
	case key.Matches(msg, m.keys.Theme):
		m.ctrl.ToggleTheme()
		m.refresh()
		return m, nil
	case key.Matches(msg, m.keys.SwitchTab):
		m.flush()
		m.ctrl.NextTab()
		m.refresh()
		return m, nil
	case key.Matches(msg, m.keys.Search):
		m.flush()
		return m, m.enterSearch()
	case key.Matches(msg, m.keys.Focus):
		return m, m.cycleFocus()
	}

	switch m.focus {
	case focusSearch:
		return m.handleSearchKey(msg)
	case focusTree:
		return m.handleTreeKey(msg)
	}
	return m.handleInputKey(msg)
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Indent) {
		m.input.InsertString("  ")
		return m, m.scheduleProcess()
	}
	if key.Matches(msg, m.keys.Escape) {
		m.escape()
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		return m, tea.Batch(cmd, m.scheduleProcess())
	}
	return m, cmd
}

func (m Model) handleTreeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.TreeQuit) {
		return m, tea.Quit
	}
	if key.Matches(msg, m.keys.Escape) {
		m.escape()
		return m, nil
	}
	if key.Matches(msg, m.keys.ToggleHelp) {
		m.help.ShowAll = !m.help.ShowAll
		m.refresh()
		return m, nil
	}

	nodes := m.visibleNodes()
	if m.ctrl.State().Tab != session.TabTree || len(nodes) == 0 {
		var cmd tea.Cmd
		m.output, cmd = m.output.Update(msg)
		return m, cmd
	}
	m.cursor = min(max(m.cursor, 0), len(nodes)-1)

	switch {
	case key.Matches(msg, m.keys.Up):
		m.cursor--
	case key.Matches(msg, m.keys.Down):
		m.cursor++
	case key.Matches(msg, m.keys.PageUp):
		m.cursor -= max(m.output.Height, 1)
	case key.Matches(msg, m.keys.PageDown):
		m.cursor += max(m.output.Height, 1)
	case key.Matches(msg, m.keys.Toggle):
		m.ctrl.ToggleTreeNode(nodes[m.cursor])
	case key.Matches(msg, m.keys.CopyNode):
		m.ctrl.CopyTreeNode(nodes[m.cursor])
		return m, nil
	default:
		return m, nil
	}
	m.refresh()
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.leaveSearch()
		return m, nil
	case key.Matches(msg, m.keys.NextMatch):
		m.ctrl.SearchNext()
		m.followMatch()
		return m, nil
	case key.Matches(msg, m.keys.PrevMatch):
		m.ctrl.SearchPrev()
		m.followMatch()
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.ctrl.Search(m.search.Value())
		m.followMatch()
	}
	return m, cmd
}

func (m *Model) enterSearch() tea.Cmd {
	if m.focus != focusSearch {
		m.prevFocus = m.focus
	}
	m.focus = focusSearch
	m.input.Blur()
	m.refresh()
	return m.search.Focus()
}

func (m *Model) leaveSearch() {
	m.search.Blur()
	m.focus = m.prevFocus
	if m.focus == focusInput {
		m.input.Focus()
	}
	m.refresh()
}

func (m *Model) cycleFocus() tea.Cmd {
	m.search.Blur()
	if m.focus == focusInput {
		m.focus = focusTree
		m.input.Blur()
		m.refresh()
		return nil
	}
	m.focus = focusInput
	m.refresh()
	return m.input.Focus()
}

// escape clears the search first, then dismisses the error panel.
func (m *Model) escape() {
	state := m.ctrl.State()
	switch {
	case state.SearchKeyword != "":
		m.ctrl.ClearSearch()
		m.search.SetValue("")
	case state.Diagnosis != nil:
		m.ctrl.DismissDiagnosis()
	}
	m.refresh()
}

// followMatch shows the tree and moves the cursor to the active match.
func (m *Model) followMatch() {
	state := m.ctrl.State()
	if state.Search == nil || state.Search.Active() == nil {
		m.refresh()
		return
	}
	active := state.Search.Active()
	m.ctrl.SwitchTab(session.TabTree)
	for i, node := range m.visibleNodes() {
		if node == active {
			m.cursor = i
			break
		}
	}
	m.refresh()
}

func (m Model) visibleNodes() []*tree.Node {
	root := m.ctrl.State().Tree
	if root == nil {
		return nil
	}
	return root.Visible()
}

// refresh recomputes the layout and the output content.
func (m *Model) refresh() {
	nodes := m.visibleNodes()
	m.cursor = min(max(m.cursor, 0), max(len(nodes)-1, 0))
	m.layout()
	m.output.SetContent(m.renderOutput())
	m.scrollToCursor()
}

func (m *Model) scrollToCursor() {
	if m.ctrl.State().Tab != session.TabTree || m.output.Height <= 0 {
		return
	}
	switch {
	case m.cursor < m.output.YOffset:
		m.output.SetYOffset(m.cursor)
	case m.cursor >= m.output.YOffset+m.output.Height:
		m.output.SetYOffset(m.cursor - m.output.Height + 1)
	}
}

func (m Model) highlighter(theme string) *formatter.Highlighter {
	if h, ok := m.highlighters[theme]; ok {
		return h
	}
	h := formatter.NewHighlighter(m.opts.HighlightStyles[theme])
	m.highlighters[theme] = h
	return h
}

// Run starts the explorer on the alternate screen and blocks until it quits.
func Run(ctx context.Context, m Model, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}
