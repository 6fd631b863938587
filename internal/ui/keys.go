package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the explorer's bindings.
type KeyMap struct {
	Format      key.Binding
	Minify      key.Binding
	SortKeys    key.Binding
	ExpandAll   key.Binding
	CollapseAll key.Binding
	Copy        key.Binding
	Clear       key.Binding
	Sample      key.Binding
	Theme       key.Binding
	ApplyFix    key.Binding
	SwitchTab   key.Binding
	Search      key.Binding
	Focus       key.Binding
	Escape      key.Binding
	NextMatch   key.Binding
	PrevMatch   key.Binding
	Indent      key.Binding
	Quit        key.Binding

	// Tree focus only.
	Up         key.Binding
	Down       key.Binding
	Toggle     key.Binding
	CopyNode   key.Binding
	TreeQuit   key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	ToggleHelp key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Format:      key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "format")),
		Minify:      key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "minify")),
		SortKeys:    key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "sort keys")),
		ExpandAll:   key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "expand all")),
		CollapseAll: key.NewBinding(key.WithKeys("ctrl+w"), key.WithHelp("ctrl+w", "collapse all")),
		Copy:        key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy")),
		Clear:       key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear")),
		Sample:      key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "sample")),
		Theme:       key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "theme")),
		ApplyFix:    key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "apply fix")),
		SwitchTab:   key.NewBinding(key.WithKeys("f2"), key.WithHelp("f2", "formatted/tree")),
		Search:      key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("ctrl+k", "search")),
		Focus:       key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "input/tree")),
		Escape:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		NextMatch:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next match")),
		PrevMatch:   key.NewBinding(key.WithKeys("shift+enter", "ctrl+p"), key.WithHelp("ctrl+p", "previous match")),
		Indent:      key.NewBinding(key.WithKeys("tab")),
		Quit:        key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),

		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:     key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "toggle")),
		CopyNode:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy node")),
		TreeQuit:   key.NewBinding(key.WithKeys("q")),
		PageUp:     key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:   key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdown", "page down")),
		ToggleHelp: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Format, k.Minify, k.SwitchTab, k.Search, k.Focus, k.ApplyFix, k.ToggleHelp, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Format, k.Minify, k.SortKeys, k.Copy},
		{k.ExpandAll, k.CollapseAll, k.SwitchTab, k.Focus},
		{k.Search, k.NextMatch, k.PrevMatch, k.Escape},
		{k.Up, k.Down, k.Toggle, k.CopyNode},
		{k.Clear, k.Sample, k.Theme, k.ApplyFix, k.Quit},
	}
}
