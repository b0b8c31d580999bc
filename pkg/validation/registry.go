// Package validation runs independent rules over a parsed document.
package validation

import (
	"context"
	"sort"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"go.uber.org/multierr"

	"github.com/walteh/gabcls/pkg/ast"
	"github.com/walteh/gabcls/pkg/diagnostic"
)

// Rule is one independent check. Check must not mutate the document.
type Rule struct {
	Name        string
	Severity    diagnostic.Severity
	Description string
	Check       func(doc *ast.Document) []diagnostic.Diagnostic
}

// Registry is an ordered, immutable set of rules.
type Registry struct {
	rules  []Rule
	byName map[string]int
}

func NewRegistry(rules ...Rule) (*Registry, error) {
	r := &Registry{byName: make(map[string]int, len(rules))}
	for _, rule := range rules {
		if rule.Name == "" || rule.Check == nil {
			return nil, errors.Errorf("rule %q is incomplete", rule.Name)
		}
		if _, ok := r.byName[rule.Name]; ok {
			return nil, errors.Errorf("rule %q registered twice", rule.Name)
		}
		r.byName[rule.Name] = len(r.rules)
		r.rules = append(r.rules, rule)
	}
	return r, nil
}

// Rules returns the rules in registration order.
func (r *Registry) Rules() []Rule {
	return append([]Rule(nil), r.rules...)
}

func (r *Registry) Lookup(name string) (Rule, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Rule{}, false
	}
	return r.rules[i], true
}

// All selects every registered rule.
func (r *Registry) All() Selection {
	names := make([]string, 0, len(r.rules))
	for _, rule := range r.rules {
		names = append(names, rule.Name)
	}
	return NewSelection(names...)
}

// Selection is the set of enabled rule names.
type Selection struct {
	enabled map[string]struct{}
}

func NewSelection(names ...string) Selection {
	s := Selection{enabled: make(map[string]struct{}, len(names))}
	for _, n := range names {
		s.enabled[n] = struct{}{}
	}
	return s
}

func (s Selection) Has(name string) bool {
	_, ok := s.enabled[name]
	return ok
}

// Without returns a copy of s with the given names disabled.
func (s Selection) Without(names ...string) Selection {
	out := Selection{enabled: make(map[string]struct{}, len(s.enabled))}
	for n := range s.enabled {
		out.enabled[n] = struct{}{}
	}
	for _, n := range names {
		delete(out.enabled, n)
	}
	return out
}

// Names returns the enabled names sorted.
func (s Selection) Names() []string {
	out := make([]string, 0, len(s.enabled))
	for n := range s.enabled {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Validate returns the document's parse errors followed by the output of
// every selected rule, in registration order.
func (r *Registry) Validate(ctx context.Context, doc *ast.Document, sel Selection) []diagnostic.Diagnostic {
	diags, _ := r.ValidateWithErrors(ctx, doc, sel)
	return diags
}

// ValidateWithErrors is Validate that also reports the rules that failed.
// A failing rule is skipped; the others still run.
func (r *Registry) ValidateWithErrors(ctx context.Context, doc *ast.Document, sel Selection) ([]diagnostic.Diagnostic, error) {
	out := make([]diagnostic.Diagnostic, 0, len(doc.Errors))
	out = append(out, doc.Errors...)

	var errs error
	for _, rule := range r.rules {
		if !sel.Has(rule.Name) {
			continue
		}
		diags, err := run(rule, doc)
		if err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Str("rule", rule.Name).Msg("validation rule failed")
			errs = multierr.Append(errs, err)
			continue
		}
		out = append(out, diags...)
	}

	return out, errs
}

func run(rule Rule, doc *ast.Document) (diags []diagnostic.Diagnostic, err error) {
	defer func() {
		if r := recover(); r != nil {
			diags = nil
			err = errors.Errorf("rule %s panicked: %v", rule.Name, r)
		}
	}()
	return rule.Check(doc), nil
}
