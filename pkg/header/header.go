// Package header parses the `name: value;` declarations of the header region.
package header

import (
	"regexp"
	"strings"

	"github.com/walteh/gabcls/pkg/ast"
	"github.com/walteh/gabcls/pkg/position"
	"github.com/walteh/gabcls/pkg/scanner"
)

var declaration = regexp.MustCompile(`^([A-Za-z0-9-]+)\s*:\s*`)

type Result struct {
	Headers      *ast.Headers
	Unrecognized []ast.TextSpan
}

// Parse reads the header lines produced by the scanner. Lines that are not
// declarations, and are not the continuation of a multi-line value, end up
// in Result.Unrecognized.
func Parse(idx *position.Index, lines []scanner.Fragment) *Result {
	res := &Result{Headers: ast.NewHeaders()}

	for i := 0; i < len(lines); i++ {
		line := lines[i].Raw
		m := declaration.FindStringSubmatchIndex(line.Text)
		if m == nil {
			res.Unrecognized = append(res.Unrecognized, ast.TextSpan{
				Text:  line.Text,
				Range: idx.RangeOf(line),
			})
			continue
		}

		name := line.Text[m[2]:m[3]]
		valueStart := line.Offset + m[1]
		value := line.Text[m[1]:]
		end := line.End()
		valueEnd := valueStart + len(trimValue(value))

		if !strings.HasSuffix(value, ";") {
			if last, ok := continuation(lines, i); ok {
				parts := []string{value}
				for _, l := range lines[i+1 : last+1] {
					parts = append(parts, l.Raw.Text)
				}
				value = strings.Join(parts, "\n")
				end = lines[last].Raw.End()
				valueEnd = lines[last].Raw.Offset + len(trimValue(lines[last].Raw.Text))
				i = last
			}
		}

		trimmed := trimValue(value)

		res.Headers.Add(ast.Header{
			Name:       name,
			Value:      trimmed,
			Range:      idx.Range(line.Offset, end),
			NameRange:  idx.Range(line.Offset+m[2], line.Offset+m[3]),
			ValueRange: idx.Range(valueStart, valueEnd),
		})
	}

	return res
}

// continuation finds the line closing a multi-line value opened at lines[i]:
// the first following line ending in `;;`, provided no declaration comes
// before it.
func continuation(lines []scanner.Fragment, i int) (int, bool) {
	for j := i + 1; j < len(lines); j++ {
		text := lines[j].Raw.Text
		if declaration.MatchString(text) {
			return 0, false
		}
		if strings.HasSuffix(text, ";;") {
			return j, true
		}
	}
	return 0, false
}

// trimValue drops the `;` or `;;` terminator and trailing blanks.
func trimValue(v string) string {
	v = strings.TrimSuffix(v, ";;")
	v = strings.TrimSuffix(v, ";")
	return strings.TrimRight(v, " \t")
}
