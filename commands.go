package main

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mcncl/jxview/internal/clipboard"
	"github.com/mcncl/jxview/internal/config"
	"github.com/mcncl/jxview/internal/detector"
	"github.com/mcncl/jxview/internal/diagnose"
	"github.com/mcncl/jxview/internal/errors"
	"github.com/mcncl/jxview/internal/formatter"
	"github.com/mcncl/jxview/internal/models"
	"github.com/mcncl/jxview/internal/parser"
	"github.com/mcncl/jxview/internal/prefs"
	"github.com/mcncl/jxview/internal/search"
	"github.com/mcncl/jxview/internal/session"
	"github.com/mcncl/jxview/internal/tree"
	"github.com/mcncl/jxview/internal/ui"
)

// ExploreCmd opens the interactive explorer
type ExploreCmd struct {
	File string `arg:"" optional:"" help:"Document to open. Piped stdin is used when omitted." type:"path"`
}

func (c *ExploreCmd) Run(ctx *Context) error {
	var text string
	switch {
	case c.File != "":
		data, err := parser.ReadFile(c.File)
		if err != nil {
			return err
		}
		text = data
	case !isTerminal(ctx.Stdin):
		data, err := io.ReadAll(ctx.Stdin)
		if err != nil {
			return errors.NewInputError("failed to read from stdin", err)
		}
		text = string(data)
	}

	log := ctx.Logger()
	cfg := ctx.Config
	if clipboard.Unsupported() {
		log.Info("no clipboard utility found, copy actions will fail")
	}

	queue := ui.NewNoticeQueue()
	ctrl := session.New(
		session.WithFormatter(ctx.formatter()),
		session.WithDiagnoser(ctx.diagnoser()),
		session.WithCopier(clipboard.New()),
		session.WithStore(ctx.preferences()),
		session.WithNotifier(queue),
		session.WithLogger(log.WithName("session")),
		session.WithTheme(cfg.Theme.Default),
	)
	if text != "" {
		ctrl.SetInput(text)
	}

	model := ui.New(ctrl, queue, ui.Options{
		Debounce:      cfg.Debounce(),
		ToastDuration: cfg.ToastDuration(),
		HighlightStyles: map[string]string{
			config.ThemeDark:  cfg.Theme.DarkStyle,
			config.ThemeLight: cfg.Theme.LightStyle,
		},
		Logger: log.WithName("ui"),
	})

	var opts []tea.ProgramOption
	if !isTerminal(ctx.Stdin) {
		opts = append(opts, tea.WithInputTTY())
	}
	log.V(1).Info("starting explorer", "chars", len(text))
	return ui.Run(ctx.ctx, model, opts...)
}

// preferences opens the theme store, falling back to memory when the
// config directory is unusable. An explicit --theme is saved.
func (c *Context) preferences() prefs.Store {
	log := c.Logger()

	var store prefs.Store
	fileStore, err := prefs.OpenFileStore(c.Config.Storage.Dir)
	if err != nil {
		log.Error(err, "preferences unavailable, keeping them in memory")
		store = prefs.NewMemoryStore()
	} else {
		log.V(1).Info("preferences opened", "path", fileStore.Path())
		store = fileStore
	}

	if c.Theme != "" {
		if err := prefs.SetTheme(store, c.Theme); err != nil {
			log.Error(err, "failed to save theme", "theme", c.Theme)
		}
	}
	return store
}

// FormatCmd pretty-prints a document
type FormatCmd struct {
	File  string `arg:"" optional:"" help:"Input file. Reads stdin when omitted." type:"path"`
	Color bool   `help:"Highlight the output when stdout is a terminal."`
}

func (c *FormatCmd) Run(ctx *Context) error {
	f := ctx.formatter()
	return rewrite(ctx, c.File, c.Color, f.FormatJSON, f.FormatXML)
}

// MinifyCmd compacts a document
type MinifyCmd struct {
	File  string `arg:"" optional:"" help:"Input file. Reads stdin when omitted." type:"path"`
	Color bool   `help:"Highlight the output when stdout is a terminal."`
}

func (c *MinifyCmd) Run(ctx *Context) error {
	f := ctx.formatter()
	return rewrite(ctx, c.File, c.Color, f.MinifyJSON, f.MinifyXML)
}

// rewrite reads a document, checks it and prints it transformed by the
// function for its type.
func rewrite(ctx *Context, file string, color bool, jsonFn func(models.JSONValue) string, xmlFn func(string) string) error {
	text, err := ctx.readInput(file)
	if err != nil {
		return err
	}
	raw := strings.TrimSpace(text)

	if detector.Detect(raw) == models.DocXML {
		if err := parser.CheckXML(raw); err != nil {
			return err
		}
		return ctx.write(xmlFn(raw), models.DocXML, color)
	}

	parsed, err := parser.ParseString(raw)
	if err != nil {
		return err
	}
	return ctx.write(jsonFn(parsed.Root), models.DocJSON, color)
}

// SortKeysCmd sorts object keys and pretty-prints
type SortKeysCmd struct {
	File  string `arg:"" optional:"" help:"Input file. Reads stdin when omitted." type:"path"`
	Color bool   `help:"Highlight the output when stdout is a terminal."`
}

func (c *SortKeysCmd) Run(ctx *Context) error {
	parsed, err := readJSON(ctx, c.File)
	if err != nil {
		return err
	}
	return ctx.write(ctx.formatter().FormatJSON(formatter.SortKeys(parsed.Root)), models.DocJSON, c.Color)
}

// readJSON reads a document that must be JSON.
func readJSON(ctx *Context, file string) (models.Parsed, error) {
	text, err := ctx.readInput(file)
	if err != nil {
		return models.Parsed{}, err
	}
	raw := strings.TrimSpace(text)
	if detector.Detect(raw) == models.DocXML {
		return models.Parsed{}, errors.NewFormatError("this command only supports JSON documents", errors.ErrInvalidJSON)
	}
	return parser.ParseString(raw)
}

// CheckCmd validates a document and reports where it fails
type CheckCmd struct {
	File  string `arg:"" optional:"" help:"Input file. Reads stdin when omitted." type:"path"`
	Fix   bool   `help:"Print the repaired document when an automatic fix exists."`
	Color bool   `help:"Color the report when stderr is a terminal."`
}

func (c *CheckCmd) Run(ctx *Context) error {
	text, err := ctx.readInput(c.File)
	if err != nil {
		return err
	}
	raw := strings.TrimSpace(text)

	styles := diagnose.PlainStyles()
	if c.Color && isTerminal(ctx.Stderr) {
		styles = diagnose.NewStyles(ctx.Config.Theme.Default)
	}
	d := ctx.diagnoser()

	docType := detector.Detect(raw)
	if docType == models.DocXML {
		if err := parser.CheckXML(raw); err != nil {
			if err := diagnose.Render(ctx.Stderr, d.XML(err), styles); err != nil {
				return errors.NewOutputError("failed to write the report", err)
			}
			return errInvalidDocument
		}
		fmt.Fprintln(ctx.Stdout, "✓ Valid XML")
		return nil
	}

	_, parseErr := parser.ParseString(raw)
	if parseErr == nil {
		fmt.Fprintln(ctx.Stdout, "✓ Valid JSON")
		return nil
	}

	diag := d.Diagnose(raw, parseErr)
	if c.Fix && diag.HasFix() {
		fmt.Fprintf(ctx.Stderr, "Applied: %s\n", diag.Fix.Description)
		return ctx.write(diag.Fix.Output, models.DocJSON, false)
	}

	if err := diagnose.Render(ctx.Stderr, diag, styles); err != nil {
		return errors.NewOutputError("failed to write the report", err)
	}
	switch {
	case diag.HasFix():
		fmt.Fprintln(ctx.Stderr, "\nRun with --fix to print the repaired document.")
	case c.Fix:
		return errors.NewFixError("no rule repairs this document", errors.ErrNoFix)
	}
	return errInvalidDocument
}

// TreeCmd prints the tree view of a JSON document
type TreeCmd struct {
	File          string `arg:"" optional:"" help:"Input file. Reads stdin when omitted." type:"path"`
	CollapseDepth int    `help:"Hide the children of containers at this depth and deeper." default:"-1"`
}

func (c *TreeCmd) Run(ctx *Context) error {
	parsed, err := readJSON(ctx, c.File)
	if err != nil {
		return err
	}

	root := tree.Build(parsed.Root)
	if c.CollapseDepth >= 0 {
		root.CollapseBelow(c.CollapseDepth)
	}
	if _, err := fmt.Fprintln(ctx.Stdout, tree.Text(root)); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// SearchCmd lists the keys matching a keyword
type SearchCmd struct {
	Keyword string `arg:"" help:"Case-insensitive text to look for in key names."`
	File    string `arg:"" optional:"" help:"Input file. Reads stdin when omitted." type:"path"`
}

func (c *SearchCmd) Run(ctx *Context) error {
	parsed, err := readJSON(ctx, c.File)
	if err != nil {
		return err
	}

	engine := search.New(tree.Build(parsed.Root))
	total := engine.Search(c.Keyword)
	if total == 0 {
		fmt.Fprintln(ctx.Stderr, search.NoMatches)
		return nil
	}
	for i, node := range engine.Matches() {
		fmt.Fprintf(ctx.Stdout, "%d/%d %s\n", i+1, total, node.Path)
	}
	return nil
}

// DetectCmd prints the document type
type DetectCmd struct {
	File string `arg:"" optional:"" help:"Input file. Reads stdin when omitted." type:"path"`
}

func (c *DetectCmd) Run(ctx *Context) error {
	text, err := ctx.readInput(c.File)
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.Stdout, detector.Detect(strings.TrimSpace(text)).Label())
	return nil
}
