// Package report renders lint results for people and tools.
package report

import (
	"io"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/gabcls/pkg/diagnostic"
)

// File is one linted source and its findings.
type File struct {
	Path        string
	Source      string
	Diagnostics []diagnostic.Diagnostic
}

// Formatter writes the results of a lint run.
type Formatter interface {
	Format(w io.Writer, files []File) error
}

const (
	FormatText   = "text"
	FormatJSON   = "json"
	FormatVSCode = "vscode"
)

// Formats lists the accepted format names.
func Formats() []string {
	return []string{FormatText, FormatJSON, FormatVSCode}
}

// New returns the formatter for name. Text output is colored only when
// colorize is set.
func New(name string, colorize bool) (Formatter, error) {
	switch name {
	case FormatText, "":
		return &TextFormatter{Color: colorize, TabWidth: EditorConfigTabWidth}, nil
	case FormatJSON:
		return NewJSONFormatter(), nil
	case FormatVSCode:
		return &VSCodeFormatter{}, nil
	}
	return nil, errors.Errorf("unknown format %q", name)
}

// Summary counts diagnostics per severity.
type Summary struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Infos    int `json:"infos"`
}

func Summarize(files []File) Summary {
	var s Summary
	for _, f := range files {
		for _, d := range f.Diagnostics {
			switch d.Severity {
			case diagnostic.Error:
				s.Errors++
			case diagnostic.Warning:
				s.Warnings++
			default:
				s.Infos++
			}
		}
	}
	return s
}

func (s Summary) Total() int {
	return s.Errors + s.Warnings + s.Infos
}
