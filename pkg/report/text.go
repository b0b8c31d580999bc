package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/apparentlymart/go-textseg/v13/textseg"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/gabcls/pkg/diagnostic"
	"github.com/walteh/gabcls/pkg/position"
)

// TextFormatter prints each diagnostic followed by the offending source line
// and a caret marker under the range.
type TextFormatter struct {
	Color bool
	// TabWidth returns the tab stop width for a file; nil means
	// DefaultTabWidth.
	TabWidth func(path string) int
}

type palette struct {
	severity map[diagnostic.Severity]*color.Color
	location *color.Color
	gutter   *color.Color
	caret    *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		severity: map[diagnostic.Severity]*color.Color{
			diagnostic.Error:   color.New(color.FgRed, color.Bold),
			diagnostic.Warning: color.New(color.FgYellow, color.Bold),
			diagnostic.Info:    color.New(color.FgCyan),
		},
		location: color.New(color.Bold),
		gutter:   color.New(color.Faint),
		caret:    color.New(color.FgGreen, color.Bold),
	}
	for _, c := range []*color.Color{p.location, p.gutter, p.caret} {
		toggle(c, enabled)
	}
	for _, c := range p.severity {
		toggle(c, enabled)
	}
	return p
}

func toggle(c *color.Color, enabled bool) {
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
}

func (f *TextFormatter) Format(w io.Writer, files []File) error {
	p := newPalette(f.Color)
	var b strings.Builder

	for _, file := range files {
		tab := DefaultTabWidth
		if f.TabWidth != nil {
			tab = f.TabWidth(file.Path)
		}
		idx := position.NewIndex(file.Source)
		for _, d := range file.Diagnostics {
			f.writeOne(&b, p, file.Path, idx, tab, d)
		}
	}

	if s := Summarize(files); s.Total() > 0 {
		fmt.Fprintf(&b, "%s, %s, %s\n", plural(s.Errors, "error"), plural(s.Warnings, "warning"), plural(s.Infos, "info"))
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return errors.Errorf("writing report: %w", err)
	}
	return nil
}

func (f *TextFormatter) writeOne(b *strings.Builder, p palette, path string, idx *position.Index, tab int, d diagnostic.Diagnostic) {
	start := d.Range.Start
	loc := fmt.Sprintf("%s:%d:%d", path, start.Line+1, start.Character+1)
	sev := p.severity[d.Severity]
	if sev == nil {
		sev = p.severity[diagnostic.Info]
	}

	fmt.Fprintf(b, "%s: %s: %s", p.location.Sprint(loc), sev.Sprint(string(d.Severity)), d.Message)
	if d.Code != "" {
		fmt.Fprintf(b, " (%s)", d.Code)
	}
	b.WriteString("\n")

	if start.Line >= idx.LineCount() {
		return
	}

	line := strings.TrimRight(idx.Line(start.Line), "\r\n")
	lineStart := idx.LineStart(start.Line)
	from := clamp(idx.Offset(start)-lineStart, len(line))
	to := len(line)
	if d.Range.End.Line == start.Line {
		to = clamp(idx.Offset(d.Range.End)-lineStart, len(line))
	}

	num := strconv.Itoa(start.Line + 1)
	pad := strings.Repeat(" ", len(num))
	lead := displayWidth(line[:from], 0, tab)
	width := max(displayWidth(line[from:to], lead, tab), 1)

	fmt.Fprintf(b, " %s %s %s\n", p.gutter.Sprint(num), p.gutter.Sprint("|"), expandTabs(line, tab))
	fmt.Fprintf(b, " %s %s %s%s\n", pad, p.gutter.Sprint("|"), strings.Repeat(" ", lead), p.caret.Sprint(strings.Repeat("^", width)))
}

func clamp(n, limit int) int {
	return min(max(n, 0), limit)
}

// displayWidth returns the number of terminal cells s occupies when it
// starts at column col, counting grapheme clusters rather than runes.
func displayWidth(s string, col, tab int) int {
	end := col
	for _, cluster := range graphemes(s) {
		if cluster == "\t" {
			end += tab - end%tab
			continue
		}
		end += runewidth.StringWidth(cluster)
	}
	return end - col
}

func expandTabs(s string, tab int) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var b strings.Builder
	col := 0
	for _, cluster := range graphemes(s) {
		if cluster == "\t" {
			n := tab - col%tab
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteString(cluster)
		col += runewidth.StringWidth(cluster)
	}
	return b.String()
}

func graphemes(s string) []string {
	tokens, err := textseg.AllTokens([]byte(s), textseg.ScanGraphemeClusters)
	if err != nil {
		return strings.Split(s, "")
	}
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = string(t)
	}
	return out
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
