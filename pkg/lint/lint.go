// Package lint runs the whole pipeline over one document: parse, validate,
// analyze, then merge the findings.
package lint

import (
	"context"

	"github.com/rs/zerolog"
	"go.uber.org/multierr"

	"github.com/walteh/gabcls/pkg/ast"
	"github.com/walteh/gabcls/pkg/config"
	"github.com/walteh/gabcls/pkg/diagnostic"
	"github.com/walteh/gabcls/pkg/parser"
	"github.com/walteh/gabcls/pkg/semantics"
	"github.com/walteh/gabcls/pkg/validation"
)

type Options struct {
	// Config defaults to config.Default().
	Config *config.Config
	// Registry defaults to validation.DefaultRegistry().
	Registry *validation.Registry
}

type Result struct {
	Document    *ast.Document
	Diagnostics []diagnostic.Diagnostic
	// Err aggregates rule and check failures. The diagnostics are still
	// complete for everything that did not fail.
	Err error
}

// Failed reports whether the result holds a diagnostic at or above the
// configured failure threshold.
func (r *Result) Failed(cfg *config.Config) bool {
	if cfg == nil {
		cfg = config.Default()
	}
	threshold, ok := cfg.FailThreshold()
	if !ok {
		return false
	}
	return diagnostic.AtLeast(r.Diagnostics, threshold)
}

// Check parses and lints text. The output is deterministic: deduplicated,
// filtered and overridden by the configuration, and stable sorted by
// severity.
func Check(ctx context.Context, text string, opts Options) *Result {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	reg := opts.Registry
	if reg == nil {
		reg = validation.DefaultRegistry()
	}

	doc := parser.Parse(ctx, text)

	validated, verr := reg.ValidateWithErrors(ctx, doc, reg.All().Without(cfg.Disable...))
	analyzed, aerr := semantics.AnalyzeWithErrors(ctx, doc)

	merged := make([]diagnostic.Diagnostic, 0, len(validated)+len(analyzed))
	merged = append(merged, validated...)
	merged = append(merged, analyzed...)

	diags := Apply(cfg, diagnostic.Dedup(merged))
	diagnostic.SortBySeverity(diags)

	zerolog.Ctx(ctx).Debug().
		Int("validated", len(validated)).
		Int("analyzed", len(analyzed)).
		Int("reported", len(diags)).
		Msg("linted document")

	return &Result{
		Document:    doc,
		Diagnostics: diags,
		Err:         multierr.Combine(verr, aerr),
	}
}

// Apply drops disabled and ignored codes and applies severity overrides. It
// returns a new slice.
func Apply(cfg *config.Config, diags []diagnostic.Diagnostic) []diagnostic.Diagnostic {
	disabled := make(map[string]struct{}, len(cfg.Disable))
	for _, name := range cfg.Disable {
		disabled[name] = struct{}{}
	}

	out := make([]diagnostic.Diagnostic, 0, len(diags))
	for _, d := range diags {
		if _, ok := disabled[d.Code]; ok {
			continue
		}
		if cfg.Ignored(d.Code) {
			continue
		}
		if sev, ok := cfg.SeverityFor(d.Code); ok {
			d.Severity = sev
		}
		out = append(out, d)
	}
	return out
}
