package semtok

import (
	"github.com/walteh/gabcls/pkg/ast"
	"github.com/walteh/gabcls/pkg/position"
)

// tokenVisitor collects tokens while walking a document.
type tokenVisitor struct {
	doc    *ast.Document
	tokens []Token
	seen   map[position.Range]struct{}
}

var tokenKinds = map[ast.TokenKind]TokenType{
	ast.TokenPitch:         TokenVariable,
	ast.TokenShape:         TokenFunction,
	ast.TokenOrientation:   TokenNumber,
	ast.TokenAlteration:    TokenOperator,
	ast.TokenIctus:         TokenDecorator,
	ast.TokenEpisema:       TokenDecorator,
	ast.TokenMora:          TokenDecorator,
	ast.TokenFusion:        TokenOperator,
	ast.TokenClef:          TokenKeyword,
	ast.TokenBar:           TokenOperator,
	ast.TokenLineBreak:     TokenKeyword,
	ast.TokenCustos:        TokenVariable,
	ast.TokenAttribute:     TokenMacro,
	ast.TokenNABCSeparator: TokenOperator,
}

func (v *tokenVisitor) add(typ TokenType, mod TokenModifier, rng position.Range) {
	if !rng.SingleLine() || rng.Empty() {
		return
	}
	if _, ok := v.seen[rng]; ok {
		return
	}
	if v.seen == nil {
		v.seen = make(map[position.Range]struct{})
	}
	v.seen[rng] = struct{}{}
	idx := v.doc.Index
	start, end := idx.Offset(rng.Start), idx.Offset(rng.End)
	v.tokens = append(v.tokens, Token{
		Type:     typ,
		Modifier: mod,
		Raw:      position.NewBasicPosition(idx.Text()[start:end], start),
		Range:    rng,
	})
}

func (v *tokenVisitor) visitDocument() {
	for _, h := range v.doc.Headers.All() {
		v.add(TokenProperty, ModifierNone, h.NameRange)
		if h.ValueRange.SingleLine() {
			v.add(TokenString, ModifierNone, h.ValueRange)
		}
	}
	for _, c := range v.doc.Comments {
		v.add(TokenComment, ModifierNone, c.Range)
	}
	for _, s := range v.doc.Syllables {
		v.visitSyllable(s)
	}
	for _, t := range v.doc.Superseded {
		switch t.Kind {
		case ast.TokenClef:
			v.add(TokenKeyword, ModifierDeprecated, t.Range)
		case ast.TokenBar:
			v.add(TokenOperator, ModifierDeprecated, t.Range)
		}
	}
}

func (v *tokenVisitor) visitSyllable(s *ast.Syllable) {
	if s.Text != "" {
		v.add(TokenString, ModifierNone, s.TextRange)
	}
	if s.Clef != nil {
		mod := ModifierDeclaration
		if s.Clef.Provenance == ast.ClefChange {
			mod = ModifierModification
		}
		v.add(TokenKeyword, mod, s.Clef.Range)
	}
	if s.Bar != nil {
		v.add(TokenOperator, ModifierNone, s.Bar.Range)
	}
	for _, g := range s.Groups {
		v.visitGroup(g)
	}
}

func (v *tokenVisitor) visitGroup(g *ast.NoteGroup) {
	for _, t := range g.Tokens {
		switch t.Kind {
		case ast.TokenSpace:
			continue
		case ast.TokenUnknown:
			v.add(TokenOperator, ModifierDeprecated, t.Range)
			continue
		case ast.TokenClef, ast.TokenBar:
			// the syllable's own clef and bar are already emitted; any other
			// one in the group was rejected
			v.add(tokenKinds[t.Kind], ModifierDeprecated, t.Range)
			continue
		}
		if typ, ok := tokenKinds[t.Kind]; ok {
			v.add(typ, ModifierNone, t.Range)
		}
	}
	for _, seg := range g.NABC {
		v.visitSegment(seg)
	}
}

func (v *tokenVisitor) visitSegment(seg *ast.NABCSegment) {
	for i := range seg.Descriptors {
		d := &seg.Descriptors[i]
		switch d.Kind {
		case ast.DescriptorGlyph:
			if d.Code != "" {
				mod := ModifierNone
				if !d.Known {
					mod = ModifierDeprecated
				}
				v.add(TokenGlyph, mod, d.CodeRange)
			}
			for _, m := range d.Modifiers {
				v.add(TokenDecorator, ModifierNone, m.Range)
			}
			if d.Pitch != nil {
				v.add(TokenVariable, ModifierNone, d.Pitch.Range)
			}
		default:
			v.add(TokenParameter, ModifierNone, d.Range)
		}
	}
}
