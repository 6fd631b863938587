// Package session holds the explorer's state and the handlers that change it.
// The UI and the CLI drive a Controller; neither touches parsing, fixing or
// formatting directly.
package session

import (
	"strings"
	"unicode/utf8"

	"github.com/go-logr/logr"

	"github.com/mcncl/jxview/internal/detector"
	"github.com/mcncl/jxview/internal/diagnose"
	"github.com/mcncl/jxview/internal/fixer"
	"github.com/mcncl/jxview/internal/formatter"
	"github.com/mcncl/jxview/internal/models"
	"github.com/mcncl/jxview/internal/parser"
	"github.com/mcncl/jxview/internal/prefs"
	"github.com/mcncl/jxview/internal/search"
	"github.com/mcncl/jxview/internal/tree"
)

// Tab is an output view.
type Tab string

const (
	TabFormatted Tab = "formatted"
	TabTree      Tab = "tree"
)

// TreeJSONOnly is shown in the tree tab for XML documents.
const TreeJSONOnly = "Tree view is only available for JSON"

// State is everything the views render.
type State struct {
	Document models.Document
	Parsed   models.Parsed
	// HasValue is true only while Document parses as JSON.
	HasValue bool

	// Formatted is the last successful render; it survives parse failures.
	Formatted     string
	FormattedType models.DocType
	Tree          *tree.Node
	Search        *search.Engine
	SearchKeyword string
	TreeNotice    string

	Diagnosis  *diagnose.Diagnosis
	PendingFix *fixer.Result

	Tab   Tab
	Theme string
}

// Stats counts the characters and lines of the input.
type Stats struct {
	Chars int
	Lines int
}

// Copier writes text to the clipboard in the background.
type Copier interface {
	Copy(text string, done func(error)) error
}

// Controller owns a State. It is not safe for concurrent use; drive it from
// one event loop.
type Controller struct {
	state State

	formatter *formatter.Formatter
	diagnoser *diagnose.Diagnoser
	copier    Copier
	store     prefs.Store
	notifier  Notifier
	log       logr.Logger
}

// Option configures a Controller.
type Option func(*Controller)

func WithFormatter(f *formatter.Formatter) Option {
	return func(c *Controller) { c.formatter = f }
}

func WithDiagnoser(d *diagnose.Diagnoser) Option {
	return func(c *Controller) { c.diagnoser = d }
}

func WithCopier(cp Copier) Option {
	return func(c *Controller) { c.copier = cp }
}

// WithStore sets where the theme preference is kept.
func WithStore(s prefs.Store) Option {
	return func(c *Controller) { c.store = s }
}

func WithNotifier(n Notifier) Option {
	return func(c *Controller) { c.notifier = n }
}

func WithLogger(log logr.Logger) Option {
	return func(c *Controller) { c.log = log }
}

// WithTheme sets the theme used when the store holds none.
func WithTheme(theme string) Option {
	return func(c *Controller) { c.state.Theme = theme }
}

// New creates a Controller with an empty document. The theme is restored
// from the store.
func New(opts ...Option) *Controller {
	c := &Controller{
		state:    State{Tab: TabFormatted, Theme: prefs.ThemeDark},
		notifier: NotifierFunc(func(Notice) {}),
		log:      logr.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.formatter == nil {
		c.formatter = formatter.NewFormatter()
	}
	if c.diagnoser == nil {
		c.diagnoser = diagnose.New(fixer.New(fixer.WithLogger(c.log)))
	}
	if c.store == nil {
		c.store = prefs.NewMemoryStore()
	}
	c.state.Theme = prefs.Theme(c.store, c.state.Theme)
	return c
}

// State returns the current state. Tree nodes and the search engine are shared.
func (c *Controller) State() State {
	return c.state
}

// Stats returns the character and line counts of the input.
func (c *Controller) Stats() Stats {
	text := c.state.Document.Text
	return Stats{
		Chars: utf8.RuneCountInString(text),
		Lines: strings.Count(text, "\n") + 1,
	}
}

func (c *Controller) notify(level Level, message string) {
	c.notifier.Notify(Notice{Level: level, Message: message})
}

// SetInput replaces the document text and processes it.
func (c *Controller) SetInput(text string) {
	c.state.Document.Text = text
	c.process()
}

func (c *Controller) process() {
	raw := strings.TrimSpace(c.state.Document.Text)
	if raw == "" {
		c.clearOutput()
		return
	}

	docType := detector.Detect(raw)
	c.state.Document.Type = docType
	c.log.V(1).Info("processing document", "type", docType, "chars", len(raw))

	if docType == models.DocXML {
		c.processXML(raw)
		return
	}
	c.processJSON(raw)
}

func (c *Controller) processJSON(raw string) {
	c.state.Diagnosis = nil
	c.state.PendingFix = nil

	parsed, err := parser.ParseString(raw)
	if err != nil {
		c.state.Parsed = models.Parsed{}
		c.state.HasValue = false
		c.state.Diagnosis = c.diagnoser.Diagnose(raw, err)
		c.state.PendingFix = c.state.Diagnosis.Fix
		c.log.V(1).Info("JSON parse failed", "error", err.Error(), "fixable", c.state.PendingFix != nil)
		return
	}

	c.state.Parsed = parsed
	c.state.HasValue = true
	c.state.Formatted = c.formatter.FormatJSON(parsed.Root)
	c.state.FormattedType = models.DocJSON
	c.state.TreeNotice = ""
	c.rebuildTree()
	c.state.Tab = TabTree
}

func (c *Controller) processXML(raw string) {
	c.state.Diagnosis = nil
	c.state.PendingFix = nil
	c.state.Parsed = models.Parsed{}
	c.state.HasValue = false

	if err := parser.CheckXML(raw); err != nil {
		c.state.Diagnosis = c.diagnoser.XML(err)
		c.log.V(1).Info("XML parse failed", "error", err.Error())
		return
	}

	c.state.Formatted = c.formatter.FormatXML(raw)
	c.state.FormattedType = models.DocXML
	c.state.Tree = nil
	c.state.Search = nil
	c.state.TreeNotice = TreeJSONOnly
}

func (c *Controller) rebuildTree() {
	c.state.Tree = tree.Build(c.state.Parsed.Root)
	c.state.Search = search.New(c.state.Tree)
	if c.state.SearchKeyword != "" {
		c.state.Search.Search(c.state.SearchKeyword)
	}
}

func (c *Controller) clearOutput() {
	c.state.Document.Type = ""
	c.state.Parsed = models.Parsed{}
	c.state.HasValue = false
	c.state.Formatted = ""
	c.state.FormattedType = ""
	c.state.Tree = nil
	c.state.Search = nil
	c.state.TreeNotice = ""
	c.state.Diagnosis = nil
	c.state.PendingFix = nil
}

// rewrite replaces the input with a transformed document when the current
// one is valid; otherwise it re-runs processing so the diagnosis shows.
func (c *Controller) rewrite(jsonFn func(models.JSONValue) string, xmlFn func(string) string, jsonMsg, xmlMsg string) {
	raw := strings.TrimSpace(c.state.Document.Text)
	if raw == "" {
		return
	}

	switch detector.Detect(raw) {
	case models.DocXML:
		c.SetInput(xmlFn(raw))
		c.notify(LevelSuccess, xmlMsg)
	default:
		parsed, err := parser.ParseString(raw)
		if err != nil {
			c.process()
			return
		}
		c.SetInput(jsonFn(parsed.Root))
		c.notify(LevelSuccess, jsonMsg)
	}
}

// Format pretty-prints the input in place.
func (c *Controller) Format() {
	c.rewrite(c.formatter.FormatJSON, c.formatter.FormatXML, "JSON formatted", "XML formatted")
}

// Minify compacts the input in place.
func (c *Controller) Minify() {
	c.rewrite(c.formatter.MinifyJSON, c.formatter.MinifyXML, "JSON minified", "XML minified")
}

// SortKeys sorts object keys recursively and pretty-prints the result.
func (c *Controller) SortKeys() {
	if !c.state.HasValue || c.state.Document.Type != models.DocJSON {
		c.notify(LevelWarning, "Enter valid JSON first")
		return
	}
	c.SetInput(c.formatter.FormatJSON(formatter.SortKeys(c.state.Parsed.Root)))
	c.notify(LevelSuccess, "Keys sorted alphabetically")
}

// CollapseAll collapses every tree node and shows the tree.
func (c *Controller) CollapseAll() {
	c.state.Tab = TabTree
	if c.state.Tree != nil {
		c.state.Tree.CollapseAll()
	}
	c.notify(LevelSuccess, "All nodes collapsed")
}

// ExpandAll expands every tree node and shows the tree.
func (c *Controller) ExpandAll() {
	c.state.Tab = TabTree
	if c.state.Tree != nil {
		c.state.Tree.ExpandAll()
	}
	c.notify(LevelSuccess, "All nodes expanded")
}

// CopyAll copies the formatted output.
func (c *Controller) CopyAll() {
	c.copy(c.state.Formatted)
}

// CopyNode copies the value of the tree node at path.
func (c *Controller) CopyNode(path string) {
	c.CopyTreeNode(c.find(path))
}

// CopyTreeNode copies the value of node. Paths collide when keys contain
// dots, so callers holding the node should prefer this over CopyNode.
func (c *Controller) CopyTreeNode(node *tree.Node) {
	if node == nil {
		c.notify(LevelWarning, "Nothing to copy")
		return
	}
	c.copy(node.CopyText())
}

func (c *Controller) find(path string) *tree.Node {
	if c.state.Tree == nil {
		return nil
	}
	return c.state.Tree.Find(path)
}

func (c *Controller) copy(text string) {
	if text == "" || c.copier == nil {
		c.notify(LevelWarning, "Nothing to copy")
		return
	}
	notifier := c.notifier
	err := c.copier.Copy(text, func(err error) {
		if err != nil {
			notifier.Notify(Notice{Level: LevelError, Message: err.Error()})
			return
		}
		notifier.Notify(Notice{Level: LevelSuccess, Message: "Copied to clipboard"})
	})
	if err != nil {
		c.notify(LevelWarning, "Nothing to copy")
	}
}

// Clear empties the input and every output.
func (c *Controller) Clear() {
	c.state.Document.Text = ""
	c.clearOutput()
	c.notify(LevelSuccess, "Cleared")
}

// LoadSample replaces the input with a sample JSON document.
func (c *Controller) LoadSample() {
	parsed, err := parser.ParseString(sampleDocument)
	if err != nil {
		c.notify(LevelError, err.Error())
		return
	}
	c.SetInput(c.formatter.FormatJSON(parsed.Root))
	c.notify(LevelSuccess, "Sample loaded")
}

// ToggleTheme switches between the light and dark themes and persists the choice.
func (c *Controller) ToggleTheme() {
	c.state.Theme = prefs.Toggle(c.state.Theme)
	if err := prefs.SetTheme(c.store, c.state.Theme); err != nil {
		c.log.Error(err, "failed to save theme")
		c.notify(LevelError, err.Error())
		return
	}
	c.notify(LevelSuccess, "Switched to "+c.state.Theme+" mode")
}

// ApplyFix replaces the input with the pending auto-fix.
func (c *Controller) ApplyFix() {
	if c.state.PendingFix == nil {
		c.notify(LevelWarning, "No automatic fix available")
		return
	}
	c.SetInput(c.state.PendingFix.Output)
	c.notify(LevelSuccess, "Auto-fix applied")
}

// DismissDiagnosis hides the error panel.
func (c *Controller) DismissDiagnosis() {
	c.state.Diagnosis = nil
}

// SwitchTab selects an output view.
func (c *Controller) SwitchTab(tab Tab) {
	c.state.Tab = tab
}

// NextTab toggles between the formatted and tree views.
func (c *Controller) NextTab() {
	if c.state.Tab == TabTree {
		c.state.Tab = TabFormatted
		return
	}
	c.state.Tab = TabTree
}

// Search highlights the tree keys containing keyword and returns the match count.
func (c *Controller) Search(keyword string) int {
	c.state.SearchKeyword = strings.TrimSpace(keyword)
	if c.state.Search == nil {
		return 0
	}
	return c.state.Search.Search(keyword)
}

// SearchNext moves to the next match and returns its path.
func (c *Controller) SearchNext() string {
	if c.state.Search == nil {
		return ""
	}
	c.state.Search.Next()
	return c.state.Search.Path()
}

// SearchPrev moves to the previous match and returns its path.
func (c *Controller) SearchPrev() string {
	if c.state.Search == nil {
		return ""
	}
	c.state.Search.Prev()
	return c.state.Search.Path()
}

// ClearSearch drops the keyword and the highlights.
func (c *Controller) ClearSearch() {
	c.state.SearchKeyword = ""
	if c.state.Search != nil {
		c.state.Search.Clear()
	}
}

// ToggleNode flips the collapse state of the node at path. It reports
// whether such a container exists.
func (c *Controller) ToggleNode(path string) bool {
	return c.ToggleTreeNode(c.find(path))
}

// ToggleTreeNode flips the collapse state of node when it is a container.
func (c *Controller) ToggleTreeNode(node *tree.Node) bool {
	if node == nil || !node.IsContainer() {
		return false
	}
	node.Toggle()
	return true
}
