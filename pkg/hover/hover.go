// Package hover provides functionality for generating hover information.
package hover

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/gabcls/pkg/ast"
	"github.com/walteh/gabcls/pkg/nabc"
	"github.com/walteh/gabcls/pkg/position"
)

// HoverInfo represents the information to be displayed in a hover tooltip
type HoverInfo struct {
	// Content is the markdown content to display, one paragraph per entry
	Content []string
	// Range is the range in the document that this hover applies to
	Range position.Range
}

// Markdown joins the content paragraphs.
func (h *HoverInfo) Markdown() string {
	return strings.Join(h.Content, "\n\n")
}

var headerDocs = map[string]string{
	ast.HeaderName:       "Title of the piece. Required.",
	ast.HeaderNABCLines:  "Number of NABC segments written after the GABC part of each note group.",
	ast.HeaderStaffLines: "Number of staff lines, from 2 to 5.",
	"mode":               "Mode of the piece.",
	"office-part":        "Liturgical use, such as Introitus or Antiphona.",
	"annotation":         "Text printed above the initial.",
	"commentary":         "Text printed above the top right of the score.",
	"initial-style":      "0 for no initial, 1 for a one-line initial, 2 for a two-line initial.",
	"centering-scheme":   "How lyrics are centered under their notes: latin or english.",
	"language":           "Language of the lyrics, used for hyphenation and centering.",
	"author":             "Composer of the piece.",
	"transcriber":        "Person who transcribed the score.",
}

// Describe returns hover information for the place at, or nil when there is
// nothing to describe there.
func Describe(ctx context.Context, doc *ast.Document, at position.Place) (*HoverInfo, error) {
	if doc == nil {
		return nil, errors.New("document cannot be nil")
	}

	info := describe(doc, at)
	zerolog.Ctx(ctx).Debug().Str("at", at.String()).Bool("found", info != nil).Msg("hover")
	return info, nil
}

func within(rng position.Range, p position.Place) bool {
	return !p.Before(rng.Start) && p.Before(rng.End)
}

func describe(doc *ast.Document, at position.Place) *HoverInfo {
	for _, h := range doc.Headers.All() {
		if within(h.Range, at) {
			return headerInfo(h)
		}
	}

	for _, s := range doc.Syllables {
		if s.Clef != nil && within(s.Clef.Range, at) {
			return clefInfo(s.Clef)
		}
		if s.Bar != nil && within(s.Bar.Range, at) {
			return &HoverInfo{Content: []string{fmt.Sprintf("**bar** `%s`", s.Bar.Symbol)}, Range: s.Bar.Range}
		}
		for _, g := range s.Groups {
			if !within(g.Range, at) {
				continue
			}
			for _, n := range g.Notes {
				if within(n.Range, at) {
					return noteInfo(n)
				}
			}
			for _, seg := range g.NABC {
				for i := range seg.Descriptors {
					if d := &seg.Descriptors[i]; within(d.Range, at) && !covered(seg, d, at) {
						return descriptorInfo(d)
					}
				}
			}
			if g.Custos != nil && within(g.Custos.Range, at) {
				return custosInfo(g.Custos)
			}
		}
	}
	return nil
}

// covered reports whether an attached sub-form of d is under at; the
// sub-form is then the better answer.
func covered(seg *ast.NABCSegment, d *ast.Descriptor, at position.Place) bool {
	for _, i := range d.Attached {
		if within(seg.Descriptors[i].Range, at) {
			return true
		}
	}
	return false
}

func headerInfo(h ast.Header) *HoverInfo {
	content := []string{fmt.Sprintf("**header** `%s`", h.Name)}
	if doc, ok := headerDocs[h.Name]; ok {
		content = append(content, doc)
	}
	return &HoverInfo{Content: content, Range: h.Range}
}

func clefInfo(c *ast.Clef) *HoverInfo {
	letter := "do"
	if c.Letter == 'f' {
		letter = "fa"
	}
	text := fmt.Sprintf("**%s clef** on line %d", letter, c.Line)
	if c.Flat {
		text += " with a flat"
	}
	return &HoverInfo{
		Content: []string{text, fmt.Sprintf("%s clef `%s`", c.Provenance, c)},
		Range:   c.Range,
	}
}

func noteInfo(n *ast.Note) *HoverInfo {
	content := []string{fmt.Sprintf("**%s** on `%c`", n.Shape, n.Pitch)}

	if len(n.Shapes) > 1 {
		names := make([]string, 0, len(n.Shapes))
		for _, s := range n.Shapes {
			names = append(names, s.String())
		}
		content = append(content, "shapes: "+strings.Join(names, ", "))
	}

	if len(n.Modifiers) > 0 {
		var lines []string
		for _, m := range n.Modifiers {
			if m.HasParam {
				lines = append(lines, fmt.Sprintf("- %s (%d)", m.Kind, m.Param))
			} else {
				lines = append(lines, "- "+m.Kind.String())
			}
		}
		content = append(content, strings.Join(lines, "\n"))
	}

	if a := n.Alteration; a != nil {
		text := a.Shape().String()
		if a.Double {
			text = "double " + text
		}
		if a.Cautionary {
			text += " (cautionary)"
		}
		content = append(content, "alteration: "+text)
	}

	return &HoverInfo{Content: content, Range: n.Range}
}

func custosInfo(c *ast.Custos) *HoverInfo {
	if c.Auto {
		return &HoverInfo{Content: []string{"**custos**, pitch taken from the next note"}, Range: c.Range}
	}
	return &HoverInfo{Content: []string{fmt.Sprintf("**custos** on `%c`", c.Pitch)}, Range: c.Range}
}

func descriptorInfo(d *ast.Descriptor) *HoverInfo {
	switch d.Kind {
	case ast.DescriptorSignificantLetter:
		l := d.Letter
		text := fmt.Sprintf("**significant letter** `%s`", l.Shorthand)
		if l.Prefix == "lt" {
			text = fmt.Sprintf("**tironian note** `%s`", l.Shorthand)
		}
		if l.Position > 0 {
			text += fmt.Sprintf(" at position %d", l.Position)
		}
		return &HoverInfo{Content: []string{text}, Range: d.Range}

	case ast.DescriptorSubpunctis, ast.DescriptorPrepunctis:
		p := d.Punctis
		text := fmt.Sprintf("**%s**", d.Kind)
		if p.HasCount {
			text += fmt.Sprintf(" × %d", p.Count)
		}
		return &HoverInfo{Content: []string{text}, Range: d.Range}
	}

	if d.Code == "" && d.Pitch != nil {
		return &HoverInfo{Content: []string{fmt.Sprintf("**pitch** `%c`", d.Pitch.Letter)}, Range: d.Range}
	}

	name, ok := nabc.GlyphName(d.Code)
	if !ok {
		name = "unknown glyph"
	}
	content := []string{fmt.Sprintf("**%s** `%s`", name, d.Code)}
	for _, m := range d.Modifiers {
		content = append(content, fmt.Sprintf("- %s `%c`", nabc.Modifiers[m.Char], m.Char))
	}
	if d.Pitch != nil {
		content = append(content, fmt.Sprintf("pitch `%c`", d.Pitch.Letter))
	}
	if d.Next != ast.NoNext {
		content = append(content, "fused with the next glyph")
	}
	return &HoverInfo{Content: content, Range: d.Range}
}
