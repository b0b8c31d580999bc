// Package notes tokenizes the GABC part of a note group into notes,
// modifiers, alterations and the non-note tokens that may appear between
// them. Every token keeps its exact source length.
package notes

import (
	"strings"
	"unicode/utf8"

	"github.com/walteh/gabcls/pkg/ast"
	"github.com/walteh/gabcls/pkg/diagnostic"
	"github.com/walteh/gabcls/pkg/position"
)

// Result is everything read from one GABC fragment.
type Result struct {
	Tokens     []ast.Token
	Notes      []*ast.Note
	Clefs      []*ast.Clef
	Bars       []*ast.Bar
	LineBreaks []ast.Token
	Custos     *ast.Custos
	Attributes []ast.Attribute
	Errors     []diagnostic.Diagnostic
}

// OnlyClef reports whether the fragment holds exactly one clef and nothing
// but spacing besides it.
func (r *Result) OnlyClef() bool {
	return len(r.Clefs) == 1 && r.onlyKinds(ast.TokenClef)
}

// OnlyBar reports whether the fragment holds exactly one bar and nothing but
// spacing besides it.
func (r *Result) OnlyBar() bool {
	return len(r.Bars) == 1 && r.onlyKinds(ast.TokenBar)
}

func (r *Result) onlyKinds(kind ast.TokenKind) bool {
	for _, t := range r.Tokens {
		if t.Kind != kind && t.Kind != ast.TokenSpace {
			return false
		}
	}
	return len(r.Errors) == 0
}

var bars = []string{"::", ":?", ":'", ":", ";1", ";2", ";3", ";4", ";5", ";6", ";7", ";8", ";", ",0", ",_", ",", "`0", "`"}

type tokenizer struct {
	idx  *position.Index
	src  string
	base int
	pos  int
	res  *Result

	fusionBlock   bool
	fusionOpen    position.Range
	pendingFusion *position.Range
}

// Tokenize reads src, the GABC part of a group that starts at byte offset
// base of the indexed document. It never fails: unexpected input becomes an
// unknown token plus a warning and scanning continues.
func Tokenize(idx *position.Index, src string, base int) *Result {
	t := &tokenizer{idx: idx, src: src, base: base, res: &Result{}}
	t.run()
	return t.res
}

func (t *tokenizer) rangeOf(start, end int) position.Range {
	return t.idx.Range(t.base+start, t.base+end)
}

func (t *tokenizer) emit(kind ast.TokenKind, start, end int) ast.Token {
	tok := ast.Token{
		Kind:  kind,
		Raw:   position.NewBasicPosition(t.src[start:end], t.base+start),
		Range: t.rangeOf(start, end),
	}
	t.res.Tokens = append(t.res.Tokens, tok)
	return tok
}

func (t *tokenizer) peek(off int) byte {
	if t.pos+off < len(t.src) {
		return t.src[t.pos+off]
	}
	return 0
}

func (t *tokenizer) run() {
	for t.pos < len(t.src) {
		c := t.src[t.pos]
		start := t.pos

		switch {
		case c == ' ' || c == '\t':
			for t.pos < len(t.src) && (t.src[t.pos] == ' ' || t.src[t.pos] == '\t') {
				t.pos++
			}
			t.emit(ast.TokenSpace, start, t.pos)

		case c == '/':
			t.pos++
			switch t.peek(0) {
			case '/', '0', '!':
				t.pos++
			case '[':
				if end := strings.IndexByte(t.src[t.pos:], ']'); end >= 0 {
					t.pos += end + 1
				}
			}
			t.emit(ast.TokenSpace, start, t.pos)

		case c == '!':
			t.pos++
			t.emit(ast.TokenSpace, start, t.pos)

		case c == '@':
			t.pos++
			if t.peek(0) == '[' {
				t.pos++
				t.fusionBlock = true
				t.fusionOpen = t.emit(ast.TokenFusion, start, t.pos).Range
			} else {
				rng := t.emit(ast.TokenFusion, start, t.pos).Range
				t.pendingFusion = &rng
			}

		case c == ']' && t.fusionBlock:
			t.pos++
			t.emit(ast.TokenFusion, start, t.pos)
			t.fusionBlock = false

		case c == '[':
			t.attribute()

		case c == 'z' || c == 'Z':
			t.lineBreak()

		case t.clef():

		case t.bar():

		case ast.IsPitch(c):
			if t.peek(1) == '+' {
				t.pos += 2
				tok := t.emit(ast.TokenCustos, start, t.pos)
				t.res.Custos = &ast.Custos{Pitch: lower(c), Range: tok.Range}
				continue
			}
			t.note()

		default:
			_, size := utf8.DecodeRuneInString(t.src[t.pos:])
			t.pos += size
			tok := t.emit(ast.TokenUnknown, start, t.pos)
			t.res.Errors = append(t.res.Errors, diagnostic.Warningf(diagnostic.CodeUnexpectedCharacter,
				tok.Range, "unexpected character %q in note group", tok.Text()))
		}
	}
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func (t *tokenizer) attribute() {
	start := t.pos
	end := strings.IndexByte(t.src[t.pos:], ']')
	if end < 0 {
		t.pos = len(t.src)
		tok := t.emit(ast.TokenAttribute, start, t.pos)
		t.res.Errors = append(t.res.Errors, diagnostic.Errorf(diagnostic.CodeUnterminatedAttr,
			tok.Range, "unterminated attribute: missing ']'"))
		return
	}
	t.pos += end + 1
	tok := t.emit(ast.TokenAttribute, start, t.pos)
	body := t.src[start+1 : t.pos-1]
	key, value, _ := strings.Cut(body, ":")
	t.res.Attributes = append(t.res.Attributes, ast.Attribute{Key: key, Value: value, Range: tok.Range})
}

func (t *tokenizer) lineBreak() {
	start := t.pos
	t.pos++
	switch t.peek(0) {
	case '0':
		if t.src[start] == 'z' {
			t.pos++
			tok := t.emit(ast.TokenCustos, start, t.pos)
			t.res.Custos = &ast.Custos{Auto: true, Range: tok.Range}
			return
		}
	case '+', '-':
		t.pos++
	}
	t.res.LineBreaks = append(t.res.LineBreaks, t.emit(ast.TokenLineBreak, start, t.pos))
}

// clef consumes `[cf]b?[1-5]`.
func (t *tokenizer) clef() bool {
	c := t.src[t.pos]
	if c != 'c' && c != 'f' {
		return false
	}
	flat := t.peek(1) == 'b'
	digit := t.peek(1)
	n := 2
	if flat {
		digit = t.peek(2)
		n = 3
	}
	if digit < '1' || digit > '5' {
		return false
	}
	start := t.pos
	t.pos += n
	tok := t.emit(ast.TokenClef, start, t.pos)
	t.res.Clefs = append(t.res.Clefs, &ast.Clef{
		Letter: c,
		Line:   int(digit - '0'),
		Flat:   flat,
		Text:   tok.Text(),
		Range:  tok.Range,
	})
	return true
}

func (t *tokenizer) bar() bool {
	for _, b := range bars {
		if strings.HasPrefix(t.src[t.pos:], b) {
			start := t.pos
			t.pos += len(b)
			tok := t.emit(ast.TokenBar, start, t.pos)
			t.res.Bars = append(t.res.Bars, &ast.Bar{Symbol: b, Range: tok.Range})
			return true
		}
	}
	return false
}

func (t *tokenizer) note() {
	start := t.pos
	raw := t.src[t.pos]
	n := &ast.Note{Pitch: lower(raw), RawPitch: raw, Shape: ast.ShapePunctum}
	if raw >= 'A' && raw <= 'Z' {
		n.Shape = ast.ShapePunctumInclinatum
	}
	t.pos++
	t.emit(ast.TokenPitch, start, t.pos)

	shaped := false
	for t.pos < len(t.src) {
		sc, ok := ast.LookupShapeChar(t.src[t.pos])
		if !ok {
			break
		}
		s := t.pos
		t.pos++
		tok := t.emit(ast.TokenShape, s, t.pos)
		if sc.IsModifier() {
			n.Modifiers = append(n.Modifiers, ast.Modifier{Kind: sc.Modifier, Range: tok.Range})
		} else {
			n.Shapes = append(n.Shapes, sc.Shape)
			if !shaped {
				n.Shape = sc.Shape
				shaped = true
			}
		}
		if sc.Oriscus && (t.peek(0) == '0' || t.peek(0) == '1') {
			s := t.pos
			t.pos++
			tok := t.emit(ast.TokenOrientation, s, t.pos)
			n.Modifiers = append(n.Modifiers, ast.Modifier{
				Kind:     ast.ModifierOrientation,
				Param:    int(t.src[s] - '0'),
				HasParam: true,
				Range:    tok.Range,
			})
		}
	}

	if alt := t.alteration(); alt != nil {
		n.Alteration = alt
		if !shaped {
			n.Shape = alt.Shape()
		}
	}

	t.indicators(n)

	if t.fusionBlock {
		n.Modifiers = append(n.Modifiers, ast.Modifier{Kind: ast.ModifierFusion, Range: t.fusionOpen})
	} else if t.pendingFusion != nil {
		n.Modifiers = append(n.Modifiers, ast.Modifier{Kind: ast.ModifierFusion, Range: *t.pendingFusion})
		t.pendingFusion = nil
	}

	n.Text = t.src[start:t.pos]
	n.Range = t.rangeOf(start, t.pos)
	t.res.Notes = append(t.res.Notes, n)
}

// alteration reads x, y, X, Y (length 1) or # (length 1, ## length 2), each
// extended by one for a trailing `?`.
func (t *tokenizer) alteration() *ast.Alteration {
	c := t.peek(0)
	length := 0
	double := false
	switch c {
	case 'x', 'y', 'X', 'Y':
		length = 1
	case '#':
		length = 1
		if t.peek(1) == '#' {
			length = 2
			double = true
		}
	default:
		return nil
	}
	cautionary := t.peek(length) == '?'
	if cautionary {
		length++
	}
	start := t.pos
	t.pos += length
	tok := t.emit(ast.TokenAlteration, start, t.pos)
	return &ast.Alteration{
		Char:       c,
		Length:     length,
		Double:     double,
		Cautionary: cautionary,
		Range:      tok.Range,
	}
}

// indicators reads ictus, episema, mora and fusion marks in any order.
func (t *tokenizer) indicators(n *ast.Note) {
	for t.pos < len(t.src) {
		start := t.pos
		var kind ast.ModifierKind
		var tokKind ast.TokenKind
		switch t.src[t.pos] {
		case '\'':
			kind, tokKind = ast.ModifierIctus, ast.TokenIctus
		case '_':
			kind, tokKind = ast.ModifierEpisema, ast.TokenEpisema
		case '.':
			kind, tokKind = ast.ModifierMora, ast.TokenMora
		case '@':
			if t.peek(1) == '[' {
				return
			}
			kind, tokKind = ast.ModifierFusion, ast.TokenFusion
		default:
			return
		}
		t.pos++

		m := ast.Modifier{Kind: kind}
		switch kind {
		case ast.ModifierIctus, ast.ModifierEpisema:
			if isDigit(t.peek(0)) {
				m.Param = int(t.src[t.pos] - '0')
				m.HasParam = true
				t.pos++
			}
		case ast.ModifierMora:
			m.Param = 1
			if t.peek(0) == '.' {
				m.Param = 2
				t.pos++
			}
			m.HasParam = true
		}
		m.Range = t.emit(tokKind, start, t.pos).Range
		n.Modifiers = append(n.Modifiers, m)
	}
}
