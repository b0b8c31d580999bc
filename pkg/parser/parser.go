// Package parser turns GABC source text into an ast.Document.
package parser

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/walteh/gabcls/pkg/ast"
	"github.com/walteh/gabcls/pkg/header"
	"github.com/walteh/gabcls/pkg/nabc"
	"github.com/walteh/gabcls/pkg/notes"
	"github.com/walteh/gabcls/pkg/position"
	"github.com/walteh/gabcls/pkg/scanner"
)

// Parse reads a whole document. It never fails: malformed input is recorded
// in Document.Errors and parsing continues with what can be recovered.
func Parse(ctx context.Context, text string) *ast.Document {
	idx := position.NewIndex(text)
	scan := scanner.Scan(idx)
	hdr := header.Parse(idx, scan.HeaderLines())

	doc := &ast.Document{
		Headers:             hdr.Headers,
		UnrecognizedHeaders: hdr.Unrecognized,
		Index:               idx,
	}
	doc.Errors = append(doc.Errors, scan.Errors...)

	if scan.Separator != nil {
		rng := idx.RangeOf(scan.Separator.Raw)
		doc.Separator = &rng
	}
	for _, c := range scan.Comments() {
		doc.Comments = append(doc.Comments, ast.Comment{Text: c.Raw.Text, Range: idx.RangeOf(c.Raw)})
	}

	b := &builder{idx: idx, doc: doc}
	for _, frag := range scan.Notation {
		switch frag.Kind {
		case scanner.FragmentSpace, scanner.FragmentComment:
			b.finish()
		case scanner.FragmentText:
			b.finish()
			b.start(frag.Raw)
		case scanner.FragmentGroup:
			b.group(frag)
		}
	}
	b.finish()
	b.flushClef()

	zerolog.Ctx(ctx).Debug().
		Int("headers", doc.Headers.Len()).
		Int("syllables", len(doc.Syllables)).
		Int("comments", len(doc.Comments)).
		Int("errors", len(doc.Errors)).
		Msg("parsed gabc document")

	return doc
}

type builder struct {
	idx *position.Index
	doc *ast.Document

	current   *ast.Syllable
	pending   *ast.Clef
	clefCount int
}

// start opens a syllable with lyric text and hands it any clef waiting for
// a home.
func (b *builder) start(text position.RawPosition) {
	rng := b.idx.RangeOf(text)
	b.current = &ast.Syllable{Text: text.Text, TextRange: rng, Range: rng}
	b.takePending()
}

func (b *builder) startEmpty(at int) {
	rng := b.idx.Range(at, at)
	b.current = &ast.Syllable{TextRange: rng, Range: rng}
	b.takePending()
}

func (b *builder) takePending() {
	if b.pending != nil {
		b.current.Clef = b.pending
		b.current.Range.Start = earliest(b.pending.Range.Start, b.current.Range.Start)
		b.pending = nil
	}
}

func (b *builder) finish() {
	if b.current == nil {
		return
	}
	b.doc.Syllables = append(b.doc.Syllables, b.current)
	b.current = nil
}

// flushClef gives a clef written after the last syllable a syllable of its own.
func (b *builder) flushClef() {
	if b.pending == nil {
		return
	}
	clef := b.pending
	b.pending = nil
	b.doc.Syllables = append(b.doc.Syllables, &ast.Syllable{
		Clef:      clef,
		TextRange: position.Range{Start: clef.Range.Start, End: clef.Range.Start},
		Range:     clef.Range,
	})
}

func earliest(a, b position.Place) position.Place {
	if b.Before(a) {
		return b
	}
	return a
}

func (b *builder) provenance() ast.ClefProvenance {
	b.clefCount++
	if b.clefCount == 1 {
		return ast.ClefInitial
	}
	return ast.ClefChange
}

func (b *builder) group(frag scanner.Fragment) {
	content := frag.Content
	gabc, segments := nabc.Split(content.Text)
	res := notes.Tokenize(b.idx, gabc.Text, content.Offset+gabc.Offset)
	b.doc.Errors = append(b.doc.Errors, res.Errors...)
	groupRange := b.idx.RangeOf(frag.Raw)

	if len(segments) == 0 && res.OnlyClef() {
		clef := res.Clefs[0]
		clef.Provenance = b.provenance()
		if b.current == nil {
			// A lone clef ahead of a syllable belongs to that syllable.
			if b.pending != nil {
				b.supersede(ast.TokenClef, b.pending.Text, b.pending.Range)
			}
			b.pending = clef
			return
		}
		b.setClef(clef)
		b.extend(groupRange)
		return
	}

	if b.current == nil {
		b.startEmpty(frag.Raw.Offset)
	}
	b.extend(groupRange)

	if len(segments) == 0 && res.OnlyBar() {
		b.setBar(res.Bars[0])
		return
	}

	g := &ast.NoteGroup{
		Raw:          content.Text,
		GABC:         gabc.Text,
		Notes:        res.Notes,
		Tokens:       res.Tokens,
		Attributes:   res.Attributes,
		Custos:       res.Custos,
		Range:        groupRange,
		ContentRange: b.idx.RangeOf(content),
	}

	for _, clef := range res.Clefs {
		clef.Provenance = b.provenance()
		b.setClef(clef)
	}
	for _, bar := range res.Bars {
		b.setBar(bar)
	}
	for _, lb := range res.LineBreaks {
		if !b.current.LineBreak {
			b.current.LineBreak = true
			b.current.LineBreakRange = lb.Range
		}
	}

	for _, seg := range segments {
		off := content.Offset + seg.Offset
		g.Tokens = append(g.Tokens, separatorToken(b.idx, content.Text, off-content.Offset-1, content.Offset))
		g.NABCSegments = append(g.NABCSegments, seg.Text)
		parsed, errs := nabc.ParseSegment(b.idx, seg.Text, off)
		g.NABC = append(g.NABC, parsed)
		b.doc.Errors = append(b.doc.Errors, errs...)
	}

	b.current.Groups = append(b.current.Groups, g)
}

func separatorToken(idx *position.Index, content string, at, base int) ast.Token {
	raw := position.NewBasicPosition(content[at:at+1], base+at)
	return ast.Token{Kind: ast.TokenNABCSeparator, Raw: raw, Range: idx.RangeOf(raw)}
}

func (b *builder) extend(rng position.Range) {
	if b.current.Range.End.Before(rng.End) {
		b.current.Range.End = rng.End
	}
}

func (b *builder) setClef(clef *ast.Clef) {
	if b.current.Clef != nil {
		b.doc.Errors = append(b.doc.Errors, multipleClefs(clef, b.current.Clef))
		b.supersede(ast.TokenClef, clef.Text, clef.Range)
		return
	}
	b.current.Clef = clef
}

func (b *builder) setBar(bar *ast.Bar) {
	if b.current.Bar != nil {
		b.doc.Errors = append(b.doc.Errors, multipleBars(bar, b.current.Bar))
		b.supersede(ast.TokenBar, bar.Symbol, bar.Range)
		return
	}
	b.current.Bar = bar
}

func (b *builder) supersede(kind ast.TokenKind, text string, rng position.Range) {
	b.doc.Superseded = append(b.doc.Superseded, ast.Token{
		Kind:  kind,
		Raw:   position.NewBasicPosition(text, b.idx.Offset(rng.Start)),
		Range: rng,
	})
}
