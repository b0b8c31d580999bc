package diagnostic

import (
	"fmt"
	"sort"

	"github.com/walteh/gabcls/pkg/position"
)

// Severity represents the severity level of a diagnostic
type Severity string

const (
	Error   Severity = "error"
	Warning Severity = "warning"
	Info    Severity = "info"
)

// Rank orders severities from most to least severe. Unknown severities sort last.
func (s Severity) Rank() int {
	switch s {
	case Error:
		return 0
	case Warning:
		return 1
	case Info:
		return 2
	default:
		return 3
	}
}

// LSP returns the numeric severity used by the language server protocol.
func (s Severity) LSP() int {
	switch s {
	case Error:
		return 1
	case Warning:
		return 2
	default:
		return 3
	}
}

func (s Severity) Valid() bool {
	return s == Error || s == Warning || s == Info
}

// ParseSeverity accepts the names used in configuration files.
func ParseSeverity(s string) (Severity, bool) {
	switch s {
	case "error":
		return Error, true
	case "warning", "warn":
		return Warning, true
	case "info", "information", "hint":
		return Info, true
	}
	return "", false
}

// RelatedInformation points at a secondary range that explains a diagnostic.
type RelatedInformation struct {
	Message string         `json:"message"`
	Range   position.Range `json:"range"`
}

// Diagnostic is a single finding produced by parsing, validation or semantic
// analysis. Diagnostics are values and are never mutated after creation.
type Diagnostic struct {
	Severity Severity             `json:"severity"`
	Message  string               `json:"message"`
	Range    position.Range       `json:"range"`
	Code     string               `json:"code,omitempty"`
	Related  []RelatedInformation `json:"relatedInfo,omitempty"`
}

func New(sev Severity, code string, rng position.Range, format string, args ...any) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Range:    rng,
		Message:  fmt.Sprintf(format, args...),
	}
}

func Errorf(code string, rng position.Range, format string, args ...any) Diagnostic {
	return New(Error, code, rng, format, args...)
}

func Warningf(code string, rng position.Range, format string, args ...any) Diagnostic {
	return New(Warning, code, rng, format, args...)
}

func Infof(code string, rng position.Range, format string, args ...any) Diagnostic {
	return New(Info, code, rng, format, args...)
}

// WithRelated returns a copy of d with the related entry appended.
func (d Diagnostic) WithRelated(msg string, rng position.Range) Diagnostic {
	related := make([]RelatedInformation, 0, len(d.Related)+1)
	related = append(related, d.Related...)
	d.Related = append(related, RelatedInformation{Message: msg, Range: rng})
	return d
}

func (d Diagnostic) String() string {
	if d.Code == "" {
		return fmt.Sprintf("[%s] %d:%d: %s", d.Severity, d.Range.Start.Line+1, d.Range.Start.Character+1, d.Message)
	}
	return fmt.Sprintf("[%s] %d:%d: %s (%s)", d.Severity, d.Range.Start.Line+1, d.Range.Start.Character+1, d.Message, d.Code)
}

// SortBySeverity stable-sorts diagnostics from most to least severe, keeping
// the original order inside a severity.
func SortBySeverity(diags []Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		return diags[i].Severity.Rank() < diags[j].Severity.Rank()
	})
}

type dedupKey struct {
	code    string
	message string
	rng     position.Range
}

// Dedup drops diagnostics that repeat an earlier one with the same code,
// message and range. The first occurrence wins.
func Dedup(diags []Diagnostic) []Diagnostic {
	seen := make(map[dedupKey]struct{}, len(diags))
	out := make([]Diagnostic, 0, len(diags))
	for _, d := range diags {
		k := dedupKey{code: d.Code, message: d.Message, rng: d.Range}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, d)
	}
	return out
}

// Count returns how many diagnostics have the given code.
func Count(diags []Diagnostic, code string) int {
	n := 0
	for _, d := range diags {
		if d.Code == code {
			n++
		}
	}
	return n
}

// AtLeast reports whether any diagnostic is at least as severe as sev.
func AtLeast(diags []Diagnostic, sev Severity) bool {
	for _, d := range diags {
		if d.Severity.Rank() <= sev.Rank() {
			return true
		}
	}
	return false
}
