package fixer

import (
	"slices"
	"strings"

	"github.com/go-logr/logr"
	"github.com/iancoleman/strcase"

	"github.com/mcncl/jxview/internal/formatter"
	"github.com/mcncl/jxview/internal/parser"
)

// CombinedPrefix starts the description of a fix that needed several rules.
const CombinedPrefix = "Combined fix: "

// Result is a successful repair.
type Result struct {
	// Output is the repaired document, re-serialized with 2-space indentation.
	Output      string
	Description string
	// Applied lists the IDs of the rules that contributed.
	Applied  []string
	Combined bool
}

// Fixer attempts heuristic repairs of malformed JSON.
type Fixer struct {
	rules     []Rule
	formatter *formatter.Formatter
	log       logr.Logger
}

// Option configures a Fixer.
type Option func(*Fixer)

// WithRules replaces the rule set.
func WithRules(rules []Rule) Option {
	return func(f *Fixer) {
		f.rules = rules
	}
}

// WithDisabled removes the rules with the given IDs. IDs are compared in
// kebab-case, so "TrailingCommas" and "trailing_commas" both disable
// "trailing-commas".
func WithDisabled(ids ...string) Option {
	return func(f *Fixer) {
		disabled := make([]string, 0, len(ids))
		for _, id := range ids {
			disabled = append(disabled, NormalizeID(id))
		}
		f.rules = slices.DeleteFunc(slices.Clone(f.rules), func(r Rule) bool {
			return slices.Contains(disabled, r.ID)
		})
	}
}

// WithLogger sets the logger used for attempt tracing.
func WithLogger(log logr.Logger) Option {
	return func(f *Fixer) {
		f.log = log
	}
}

// NormalizeID converts a rule identifier to its canonical kebab-case form.
func NormalizeID(id string) string {
	return strcase.ToKebab(strings.TrimSpace(id))
}

// New creates a Fixer with the default rules.
func New(opts ...Option) *Fixer {
	f := &Fixer{
		rules:     DefaultRules(),
		formatter: formatter.NewFormatter(formatter.WithIndent(formatter.DefaultIndent)),
		log:       logr.Discard(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Rules returns the active rules in priority order.
func (f *Fixer) Rules() []Rule {
	return slices.Clone(f.rules)
}

// Fix tries each rule on its own, then all rules together. It reports false
// when nothing produced parseable JSON; that is a normal outcome.
func (f *Fixer) Fix(text string) (Result, bool) {
	for _, rule := range f.rules {
		out, changed := rule.Apply(text)
		if !changed {
			continue
		}
		if result, ok := f.accept(out); ok {
			f.log.V(1).Info("fix rule succeeded", "rule", rule.ID)
			result.Description = rule.Description
			result.Applied = []string{rule.ID}
			return result, true
		}
		f.log.V(1).Info("fix rule did not produce valid JSON", "rule", rule.ID)
	}

	current := text
	var applied, descriptions []string
	for _, rule := range f.rules {
		out, changed := rule.Apply(current)
		if !changed {
			continue
		}
		current = out
		applied = append(applied, rule.ID)
		descriptions = append(descriptions, rule.Description)
	}
	if current == text {
		f.log.V(1).Info("no fix rule applies")
		return Result{}, false
	}

	result, ok := f.accept(current)
	if !ok {
		f.log.V(1).Info("combined fix did not produce valid JSON", "rules", applied)
		return Result{}, false
	}
	f.log.V(1).Info("combined fix succeeded", "rules", applied)
	result.Description = CombinedPrefix + strings.Join(descriptions, "; ")
	result.Applied = applied
	result.Combined = true
	return result, true
}

func (f *Fixer) accept(candidate string) (Result, bool) {
	parsed, err := parser.ParseString(candidate)
	if err != nil {
		return Result{}, false
	}
	return Result{Output: f.formatter.FormatJSON(parsed.Root)}, true
}
