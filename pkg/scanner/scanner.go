// Package scanner splits GABC source into positioned fragments: header
// lines, the `%%` separator, comments, lyric text, whitespace and
// parenthesized note groups.
package scanner

import (
	"regexp"
	"strings"

	"github.com/walteh/gabcls/pkg/diagnostic"
	"github.com/walteh/gabcls/pkg/position"
)

type FragmentKind uint8

const (
	FragmentHeaderLine FragmentKind = iota
	FragmentSeparator
	FragmentComment
	FragmentText
	FragmentSpace
	FragmentGroup
)

func (k FragmentKind) String() string {
	switch k {
	case FragmentHeaderLine:
		return "header-line"
	case FragmentSeparator:
		return "separator"
	case FragmentComment:
		return "comment"
	case FragmentText:
		return "text"
	case FragmentSpace:
		return "space"
	case FragmentGroup:
		return "group"
	default:
		return "unknown"
	}
}

// Fragment is one lexical piece of the document. For groups Raw includes the
// parentheses and Content is what lies between them.
type Fragment struct {
	Kind       FragmentKind
	Raw        position.RawPosition
	Content    position.RawPosition
	Terminated bool
}

type Result struct {
	Header    []Fragment
	Separator *Fragment
	Notation  []Fragment
	Errors    []diagnostic.Diagnostic
}

// HeaderLines returns the header region fragments that are not comments.
func (r *Result) HeaderLines() []Fragment {
	var out []Fragment
	for _, f := range r.Header {
		if f.Kind == FragmentHeaderLine {
			out = append(out, f)
		}
	}
	return out
}

// Comments returns every comment fragment of both regions in source order.
func (r *Result) Comments() []Fragment {
	var out []Fragment
	for _, f := range r.Header {
		if f.Kind == FragmentComment {
			out = append(out, f)
		}
	}
	for _, f := range r.Notation {
		if f.Kind == FragmentComment {
			out = append(out, f)
		}
	}
	return out
}

var headerShape = regexp.MustCompile(`^[A-Za-z0-9-]+\s*:`)

// LooksLikeHeader reports whether a line starts like a `name:` declaration.
func LooksLikeHeader(line string) bool {
	return headerShape.MatchString(line)
}

type line struct {
	text   string
	offset int
}

func splitLines(text string) []line {
	var out []line
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			out = append(out, line{text: strings.TrimSuffix(text[start:i], "\r"), offset: start})
			start = i + 1
		}
	}
	if start < len(text) {
		out = append(out, line{text: strings.TrimSuffix(text[start:], "\r"), offset: start})
	}
	return out
}

func isSeparator(l string) bool {
	return strings.TrimRight(l, " \t") == "%%"
}

// Scan splits the indexed text into fragments. It never fails; malformed
// constructs are reported in Result.Errors and scanning continues.
func Scan(idx *position.Index) *Result {
	text := idx.Text()
	res := &Result{}
	lines := splitLines(text)

	sep := -1
	for i, l := range lines {
		if isSeparator(l.text) {
			sep = i
			break
		}
	}

	notationStart := 0
	if sep >= 0 {
		for _, l := range lines[:sep] {
			res.Header = appendHeaderLine(res.Header, l)
		}
		l := lines[sep]
		frag := Fragment{
			Kind: FragmentSeparator,
			Raw:  position.NewBasicPosition(l.text, l.offset),
		}
		res.Separator = &frag
		notationStart = l.offset + len(l.text)
		if notationStart < len(text) && text[notationStart] == '\r' {
			notationStart++
		}
		if notationStart < len(text) && text[notationStart] == '\n' {
			notationStart++
		}
	} else {
		res.Errors = append(res.Errors, diagnostic.Errorf(diagnostic.CodeMissingSeparator,
			idx.Range(0, 0), "missing %%%% line separating headers from notation"))
		notationStart = len(text)
		for _, l := range lines {
			trimmed := strings.TrimSpace(l.text)
			if trimmed != "" && !strings.HasPrefix(trimmed, "%") && !LooksLikeHeader(trimmed) {
				notationStart = l.offset
				break
			}
			res.Header = appendHeaderLine(res.Header, l)
		}
	}

	scanNotation(idx, res, notationStart)
	return res
}

func appendHeaderLine(frags []Fragment, l line) []Fragment {
	trimmed := strings.TrimSpace(l.text)
	if trimmed == "" {
		return frags
	}
	lead := len(l.text) - len(strings.TrimLeft(l.text, " \t"))
	raw := position.NewBasicPosition(strings.TrimRight(l.text[lead:], " \t"), l.offset+lead)
	if strings.HasPrefix(trimmed, "%") {
		return append(frags, Fragment{Kind: FragmentComment, Raw: raw, Content: raw})
	}
	return append(frags, Fragment{Kind: FragmentHeaderLine, Raw: raw, Content: raw})
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func scanNotation(idx *position.Index, res *Result, start int) {
	text := idx.Text()
	i := start
	for i < len(text) {
		c := text[i]
		switch {
		case isSpace(c):
			j := i
			for j < len(text) && isSpace(text[j]) {
				j++
			}
			res.Notation = append(res.Notation, Fragment{
				Kind: FragmentSpace,
				Raw:  position.NewBasicPosition(text[i:j], i),
			})
			i = j

		case c == '%':
			j := i
			for j < len(text) && text[j] != '\n' && text[j] != '\r' {
				j++
			}
			raw := position.NewBasicPosition(text[i:j], i)
			res.Notation = append(res.Notation, Fragment{Kind: FragmentComment, Raw: raw, Content: raw})
			i = j

		case c == '(':
			j := i + 1
			for j < len(text) && text[j] != ')' && text[j] != '\n' && text[j] != '\r' {
				j++
			}
			frag := Fragment{
				Kind:    FragmentGroup,
				Content: position.NewBasicPosition(text[i+1:j], i+1),
			}
			if j < len(text) && text[j] == ')' {
				frag.Terminated = true
				frag.Raw = position.NewBasicPosition(text[i:j+1], i)
				i = j + 1
			} else {
				frag.Raw = position.NewBasicPosition(text[i:j], i)
				res.Errors = append(res.Errors, diagnostic.Errorf(diagnostic.CodeUnterminatedGroup,
					idx.Range(i, i+1), "unterminated note group: missing ')'"))
				i = j
			}
			res.Notation = append(res.Notation, frag)

		case c == ')':
			res.Errors = append(res.Errors, diagnostic.Errorf(diagnostic.CodeUnmatchedParen,
				idx.Range(i, i+1), "unmatched ')'"))
			i++

		default:
			j := i
			for j < len(text) && !isSpace(text[j]) && text[j] != '(' && text[j] != ')' && text[j] != '%' {
				j++
			}
			raw := position.NewBasicPosition(text[i:j], i)
			res.Notation = append(res.Notation, Fragment{Kind: FragmentText, Raw: raw, Content: raw})
			i = j
		}
	}
}
