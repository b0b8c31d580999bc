// Package nabc parses the neume descriptors written after the `|` of a note
// group.
package nabc

import (
	"strconv"
	"strings"

	"github.com/walteh/gabcls/pkg/ast"
	"github.com/walteh/gabcls/pkg/diagnostic"
	"github.com/walteh/gabcls/pkg/position"
)

// Span is a piece of group content and its byte offset inside the content.
type Span struct {
	Text   string
	Offset int
}

// Split separates group content at every unescaped `|`. The first span is
// the GABC part; the rest are NABC segments. `\|` does not split.
func Split(content string) (gabc Span, segments []Span) {
	start := 0
	first := true
	for i := 0; i < len(content); i++ {
		switch content[i] {
		case '\\':
			i++
		case '|':
			s := Span{Text: content[start:i], Offset: start}
			if first {
				gabc = s
				first = false
			} else {
				segments = append(segments, s)
			}
			start = i + 1
		}
	}
	last := Span{Text: content[start:], Offset: start}
	if first {
		return last, nil
	}
	return gabc, append(segments, last)
}

func isSpacing(c byte) bool {
	return c == '/' || c == '`' || c == ' ' || c == '\t'
}

type parser struct {
	idx  *position.Index
	base int
	seg  *ast.NABCSegment
	errs []diagnostic.Diagnostic
}

// ParseSegment parses one NABC segment that starts at byte offset base of
// the indexed document.
func ParseSegment(idx *position.Index, raw string, base int) (*ast.NABCSegment, []diagnostic.Diagnostic) {
	p := &parser{
		idx:  idx,
		base: base,
		seg: &ast.NABCSegment{
			Raw:   raw,
			Range: idx.Range(base, base+len(raw)),
		},
	}

	i := 0
	for i < len(raw) {
		if isSpacing(raw[i]) {
			i++
			continue
		}
		j := i
		for j < len(raw) && !isSpacing(raw[j]) {
			j++
		}
		p.chain(raw[i:j], i)
		i = j
	}

	return p.seg, p.errs
}

func (p *parser) rangeOf(start, end int) position.Range {
	return p.idx.Range(p.base+start, p.base+end)
}

// chain parses `!` separated descriptors and links them left to right.
func (p *parser) chain(text string, off int) {
	prev := ast.NoNext
	start := 0
	for i := 0; i <= len(text); i++ {
		if i < len(text) && text[i] != '!' {
			continue
		}
		if i > start {
			head := p.descriptor(text[start:i], off+start)
			if prev == ast.NoNext {
				p.seg.Chains = append(p.seg.Chains, head)
			} else {
				p.seg.Descriptors[prev].Next = head
			}
			prev = head
		}
		start = i + 1
	}
}

func (p *parser) add(d ast.Descriptor) int {
	d.Next = ast.NoNext
	p.seg.Descriptors = append(p.seg.Descriptors, d)
	return len(p.seg.Descriptors) - 1
}

func hasSubForm(s string) bool {
	return strings.HasPrefix(s, "ls") || strings.HasPrefix(s, "lt") ||
		strings.HasPrefix(s, "su") || strings.HasPrefix(s, "pp")
}

// barePitch reports whether text opens with a pitch descriptor rather than a
// glyph code. No glyph code starts with `h`.
func barePitch(text string) bool {
	if text[0] != 'h' {
		return false
	}
	_, known := Glyphs[text[:2]]
	return !known
}

func isLower(c byte) bool {
	return c >= 'a' && c <= 'z'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// descriptor parses one substring and returns the index of its primary
// descriptor.
func (p *parser) descriptor(text string, off int) int {
	if hasSubForm(text) {
		d, n := p.subForm(text, off)
		head := p.add(d)
		p.attach(head, text[n:], off+n)
		return head
	}

	d := ast.Descriptor{
		Kind:  ast.DescriptorGlyph,
		Raw:   text,
		Range: p.rangeOf(off, off+len(text)),
	}
	i := 0
	if len(text) >= 2 && isLower(text[0]) && isLower(text[1]) && !barePitch(text) {
		d.Code = text[:2]
		d.CodeRange = p.rangeOf(off, off+2)
		_, d.Known = Glyphs[d.Code]
		if !d.Known {
			p.errs = append(p.errs, diagnostic.Warningf(diagnostic.CodeNABCUnknownGlyph,
				d.CodeRange, "unknown NABC glyph %q", d.Code))
		}
		i = 2
	}

	for i < len(text) {
		c := text[i]
		switch {
		case Modifiers[c] != "":
			m := ast.GlyphModifier{Char: c}
			s := i
			i++
			if i < len(text) && isDigit(text[i]) {
				m.Variant = int(text[i] - '0')
				m.HasVariant = true
				i++
			}
			m.Range = p.rangeOf(off+s, off+i)
			d.Modifiers = append(d.Modifiers, m)

		case c == 'h' && i+1 < len(text) && isLower(text[i+1]):
			d.Pitch = &ast.PitchDescriptor{Letter: text[i+1], Range: p.rangeOf(off+i, off+i+2)}
			i += 2

		case hasSubForm(text[i:]):
			head := p.add(d)
			p.attach(head, text[i:], off+i)
			return head

		default:
			p.unexpected(text, off, i)
			i++
		}
	}

	return p.add(d)
}

// attach parses consecutive sub-forms and records them on the descriptor at head.
func (p *parser) attach(head int, text string, off int) {
	i := 0
	for i < len(text) {
		if !hasSubForm(text[i:]) {
			p.unexpected(text, off, i)
			i++
			continue
		}
		d, n := p.subForm(text[i:], off+i)
		idx := p.add(d)
		p.seg.Descriptors[head].Attached = append(p.seg.Descriptors[head].Attached, idx)
		i += n
	}
}

func (p *parser) unexpected(text string, off, i int) {
	p.errs = append(p.errs, diagnostic.Warningf(diagnostic.CodeNABCUnexpectedSymbol,
		p.rangeOf(off+i, off+i+1), "unexpected character %q in NABC descriptor", text[i:i+1]))
}

// subForm parses a significant letter or punctis form at the start of text
// and returns it with the number of bytes consumed.
func (p *parser) subForm(text string, off int) (ast.Descriptor, int) {
	prefix := text[:2]
	i := 2
	d := ast.Descriptor{}

	switch prefix {
	case "ls", "lt":
		for i < len(text) && isLower(text[i]) && !hasSubForm(text[i:]) {
			i++
		}
		letter := &ast.SignificantLetter{Prefix: prefix, Shorthand: text[2:i]}
		if i < len(text) && text[i] >= '1' && text[i] <= '9' {
			letter.Position = int(text[i] - '0')
			i++
		}
		letter.Range = p.rangeOf(off, off+i)
		d.Kind = ast.DescriptorSignificantLetter
		d.Letter = letter

	default:
		punctis := &ast.Punctis{Prefix: prefix}
		if i < len(text) && (text[i] == 't' || text[i] == 'n') {
			punctis.Modifier = text[i]
			i++
		}
		s := i
		for i < len(text) && isDigit(text[i]) {
			i++
		}
		if i > s {
			n, err := strconv.Atoi(text[s:i])
			if err != nil {
				p.errs = append(p.errs, diagnostic.Warningf(diagnostic.CodeNABCUnexpectedSymbol,
					p.rangeOf(off+s, off+i), "punctis count %q is out of range", text[s:i]))
			} else {
				punctis.Count = n
				punctis.HasCount = true
			}
		}
		punctis.Range = p.rangeOf(off, off+i)
		d.Kind = ast.DescriptorSubpunctis
		if prefix == "pp" {
			d.Kind = ast.DescriptorPrepunctis
		}
		d.Punctis = punctis
	}

	d.Raw = text[:i]
	d.Range = p.rangeOf(off, off+i)
	return d, i
}
