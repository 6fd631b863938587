package main

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/go-logr/logr"
	"golang.org/x/term"

	"github.com/mcncl/jxview/internal/config"
	"github.com/mcncl/jxview/internal/diagnose"
	"github.com/mcncl/jxview/internal/errors"
	"github.com/mcncl/jxview/internal/fixer"
	"github.com/mcncl/jxview/internal/formatter"
	"github.com/mcncl/jxview/internal/logger"
	"github.com/mcncl/jxview/internal/models"
	"github.com/mcncl/jxview/internal/parser"
)

// CLI defines the command-line interface
type CLI struct {
	Config  string `help:"Path to a config file (.yml, .yaml or .toml). Searched for when omitted." short:"c" type:"path"`
	Debug   bool   `help:"Enable debug logging." short:"d"`
	Version bool   `help:"Show version information." short:"v"`
	Indent  int    `help:"Indentation width for formatted JSON. Overrides the config file." default:"-1"`
	Theme   string `help:"Color theme, dark or light. Overrides the saved preference."`

	Explore  ExploreCmd  `cmd:"" default:"withargs" help:"Open the interactive explorer (default)."`
	Format   FormatCmd   `cmd:"" help:"Pretty-print a JSON or XML document."`
	Minify   MinifyCmd   `cmd:"" help:"Compact a JSON or XML document."`
	SortKeys SortKeysCmd `cmd:"" name:"sort-keys" help:"Sort JSON object keys recursively and pretty-print."`
	Check    CheckCmd    `cmd:"" help:"Validate a document and suggest an automatic fix."`
	Tree     TreeCmd     `cmd:"" help:"Print a JSON document as a tree."`
	Search   SearchCmd   `cmd:"" help:"List the tree paths whose key contains a keyword."`
	Detect   DetectCmd   `cmd:"" help:"Print the detected document type."`
}

// Context holds the runtime context shared by every command
type Context struct {
	ctx    context.Context
	Config *config.Config
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// Theme is the --theme flag; empty when not given.
	Theme string
}

// Version information
const (
	Version = "0.1.0"
)

// errInvalidDocument is returned by commands that already reported the problem.
var errInvalidDocument = stderrors.New("document is invalid")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := execute(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// execute parses args, runs the selected command and returns the exit status.
func execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var cli CLI
	app, err := kong.New(&cli,
		kong.Name("jxview"),
		kong.Description("Format, validate, repair and explore JSON and XML documents"),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
	)
	if err != nil {
		fmt.Fprintf(stderr, "%s\n", err)
		return 1
	}

	kctx, err := app.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "jxview: %s\n", err)
		fmt.Fprintf(stderr, "\nFor help, run: jxview --help\n")
		return 1
	}

	// Show version and exit if requested
	if cli.Version {
		fmt.Fprintf(stdout, "jxview version %s\n", Version)
		return 0
	}

	cfg, err := loadConfig(&cli)
	if err != nil {
		fmt.Fprintf(stderr, "%s\n", errors.UserFriendlyError(err))
		return 1
	}

	log, closeLog := newLogger(kctx.Command(), cfg, stderr)
	defer closeLog()
	log.V(1).Info("configuration loaded", "command", kctx.Command(), "indent", cfg.Format.Indent, "theme", cfg.Theme.Default)

	runCtx := &Context{
		ctx:    logger.WithLogger(ctx, &log),
		Config: cfg,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
		Theme:  cli.Theme,
	}
	if err := kctx.Run(runCtx); err != nil {
		if stderrors.Is(err, errInvalidDocument) {
			return 1
		}
		// Use our custom error handling to provide user-friendly error messages
		fmt.Fprintf(stderr, "%s\n", errors.UserFriendlyError(err))
		return 1
	}
	return 0
}

// loadConfig reads the config file, if any, and applies the global flags.
func loadConfig(cli *CLI) (*config.Config, error) {
	path := cli.Config
	if path == "" {
		path = config.FindConfigFile()
	}

	overrides := config.Overrides{Theme: cli.Theme, Debug: cli.Debug}
	if cli.Indent >= 0 {
		indent := cli.Indent
		overrides.Indent = &indent
	}
	return config.LoadConfigWithCLI(path, overrides)
}

// newLogger writes to stderr for the batch commands. The explorer owns the
// terminal, so it logs to a file with --debug and discards logs otherwise.
func newLogger(command string, cfg *config.Config, stderr io.Writer) (logr.Logger, func()) {
	level := logger.ErrorLevel
	if cfg.Dev.Debug {
		level = logger.DebugLevel
	}

	if !strings.HasPrefix(command, "explore") {
		return *logger.Setup(level, stderr), logger.Sync
	}
	if !cfg.Dev.Debug {
		return *logger.Discard(), func() {}
	}

	path := cfg.Dev.LogFile
	if path == "" {
		path = filepath.Join(os.TempDir(), "jxview.log")
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(stderr, "cannot open log file %s: %v\n", path, err)
		return *logger.Discard(), func() {}
	}
	return *logger.Setup(level, file), func() {
		logger.Sync()
		_ = file.Close()
	}
}

// Logger returns the logger carried by the command context.
func (c *Context) Logger() logr.Logger {
	return *logger.FromContext(c.ctx)
}

func (c *Context) formatter() *formatter.Formatter {
	return formatter.NewFormatter(
		formatter.WithIndent(c.Config.Format.Indent),
		formatter.WithXMLEngine(c.Config.Format.XMLEngine),
	)
}

func (c *Context) diagnoser() *diagnose.Diagnoser {
	f := fixer.New(
		fixer.WithDisabled(c.Config.Fixer.Disabled...),
		fixer.WithLogger(c.Logger().WithName("fixer")),
	)
	return diagnose.New(f,
		diagnose.WithContextLines(c.Config.Diagnose.ContextLines),
		diagnose.WithMaxDiffLines(c.Config.Diagnose.MaxDiffLines),
	)
}

// readInput reads a document from file, from piped stdin, or interactively
// when stdin is a terminal.
func (c *Context) readInput(file string) (string, error) {
	if file != "" {
		return parser.ReadFile(file)
	}

	if isTerminal(c.Stdin) {
		return readInteractiveInput(c.Stdin, c.Stderr)
	}

	data, err := io.ReadAll(c.Stdin)
	if err != nil {
		return "", errors.NewInputError("failed to read from stdin", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}
	return string(data), nil
}

// write prints a document, highlighted when asked to and stdout is a terminal.
func (c *Context) write(text string, docType models.DocType, color bool) error {
	if color && isTerminal(c.Stdout) {
		text = formatter.NewHighlighter(c.Config.HighlightStyle(c.Config.Theme.Default)).Highlight(text, docType)
	}
	if _, err := fmt.Fprintln(c.Stdout, strings.TrimRight(text, "\n")); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// isTerminal reports whether v is a file attached to a terminal.
func isTerminal(v any) bool {
	f, ok := v.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

// readInteractiveInput lets users paste a document and signal completion
// with Ctrl+D (EOF)
func readInteractiveInput(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprintln(out, "jxview Interactive Mode")
	fmt.Fprintln(out, "Paste your JSON or XML below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	reader := bufio.NewReader(in)
	var builder strings.Builder

	for {
		line, err := reader.ReadString('\n')
		builder.WriteString(line)
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", errors.NewInputError("error reading input", err)
		}
	}

	text := builder.String()
	if strings.TrimSpace(text) == "" {
		return "", errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}

	fmt.Fprintln(out, "\nProcessing...")
	return text, nil
}
