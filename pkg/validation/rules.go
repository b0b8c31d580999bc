package validation

import (
	"strings"

	"github.com/walteh/gabcls/pkg/ast"
	"github.com/walteh/gabcls/pkg/diagnostic"
)

// DefaultRules returns the built-in rules in registration order.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:        diagnostic.CodeMissingNameHeader,
			Severity:    diagnostic.Warning,
			Description: "the name header identifies the piece and is required by the engraving tools",
			Check:       checkMissingName,
		},
		{
			Name:        diagnostic.CodeDuplicateHeader,
			Severity:    diagnostic.Warning,
			Description: "a header declared more than once keeps only its last value",
			Check:       checkDuplicateHeaders,
		},
		{
			Name:        diagnostic.CodeUnrecognizedHeader,
			Severity:    diagnostic.Info,
			Description: "a line in the header region that is not a name: value; declaration",
			Check:       checkUnrecognizedHeaders,
		},
		{
			Name:        diagnostic.CodeLineBreakFirstSyllable,
			Severity:    diagnostic.Error,
			Description: "the first syllable cannot break the line",
			Check:       checkLineBreakFirstSyllable,
		},
		{
			Name:        diagnostic.CodeClefChangeFirstSyllable,
			Severity:    diagnostic.Error,
			Description: "the first syllable cannot change the clef",
			Check:       checkClefChangeFirstSyllable,
		},
		{
			Name:        diagnostic.CodeNABCWithoutLinesHeader,
			Severity:    diagnostic.Error,
			Description: "NABC content requires a nabc-lines header",
			Check:       checkNABCWithoutLines,
		},
		{
			Name:        diagnostic.CodeInvalidNABCLines,
			Severity:    diagnostic.Error,
			Description: "nabc-lines must be a positive integer",
			Check:       checkInvalidNABCLines,
		},
		{
			Name:        diagnostic.CodeNABCAlternationMismatch,
			Severity:    diagnostic.Error,
			Description: "each note group with NABC must carry exactly nabc-lines segments",
			Check:       checkNABCAlternation,
		},
		{
			Name:        diagnostic.CodeQuilismaDescending,
			Severity:    diagnostic.Warning,
			Description: "a quilisma should be followed by a higher note",
			Check:       checkQuilismaDescending,
		},
		{
			Name:        diagnostic.CodeQuilismaPesBoundary,
			Severity:    diagnostic.Warning,
			Description: "a quilisma pes opening a syllable should follow a lower note",
			Check:       checkQuilismaPesBoundary,
		},
		{
			Name:        diagnostic.CodeVirgaStrataAscending,
			Severity:    diagnostic.Warning,
			Description: "a virga strata should be followed by a lower note",
			Check:       checkVirgaStrata,
		},
		{
			Name:        diagnostic.CodeInvalidStaffLines,
			Severity:    diagnostic.Error,
			Description: "staff-lines must be an integer from 2 to 5",
			Check:       checkStaffLines,
		},
		{
			Name:        diagnostic.CodeNABCFusionPitchBalance,
			Severity:    diagnostic.Warning,
			Description: "fused NABC glyphs carry pitch descriptors on all glyphs or on none",
			Check:       checkFusionPitchBalance,
		},
		{
			Name:        diagnostic.CodeNABCFusionModifierPlace,
			Severity:    diagnostic.Warning,
			Description: "glyph modifiers in a fusion chain belong on its last glyph",
			Check:       checkFusionModifierPlacement,
		},
		{
			Name:        diagnostic.CodeQuilismaFusionSuggestion,
			Severity:    diagnostic.Info,
			Description: "quilismatic runs of three or more notes usually want a fusion connector",
			Check:       checkQuilismaFusion,
		},
	}
}

// DefaultRegistry returns a registry holding DefaultRules.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(DefaultRules()...)
	if err != nil {
		panic(err)
	}
	return r
}

func checkMissingName(doc *ast.Document) []diagnostic.Diagnostic {
	if v, ok := doc.Headers.Get(ast.HeaderName); ok && strings.TrimSpace(v) != "" {
		return nil
	}
	return []diagnostic.Diagnostic{
		diagnostic.Warningf(diagnostic.CodeMissingNameHeader, documentStart(), "missing %q header", ast.HeaderName),
	}
}

func checkDuplicateHeaders(doc *ast.Document) []diagnostic.Diagnostic {
	var out []diagnostic.Diagnostic
	for _, name := range doc.Headers.Duplicates() {
		out = append(out, DuplicateHeader(doc.Headers.Occurrences(name)))
	}
	return out
}

func checkUnrecognizedHeaders(doc *ast.Document) []diagnostic.Diagnostic {
	var out []diagnostic.Diagnostic
	for _, span := range doc.UnrecognizedHeaders {
		out = append(out, diagnostic.Infof(diagnostic.CodeUnrecognizedHeader, span.Range,
			"line is not a header declaration; expected name: value;"))
	}
	return out
}

func checkLineBreakFirstSyllable(doc *ast.Document) []diagnostic.Diagnostic {
	if len(doc.Syllables) == 0 || !doc.Syllables[0].LineBreak {
		return nil
	}
	return []diagnostic.Diagnostic{LineBreakFirstSyllable(doc.Syllables[0])}
}

func checkClefChangeFirstSyllable(doc *ast.Document) []diagnostic.Diagnostic {
	if len(doc.Syllables) == 0 {
		return nil
	}
	clef := doc.Syllables[0].Clef
	if clef == nil || clef.Provenance != ast.ClefChange {
		return nil
	}
	return []diagnostic.Diagnostic{ClefChangeFirstSyllable(clef)}
}

func checkNABCWithoutLines(doc *ast.Document) []diagnostic.Diagnostic {
	if _, ok := doc.Headers.Get(ast.HeaderNABCLines); ok {
		return nil
	}
	var out []diagnostic.Diagnostic
	for _, g := range doc.Groups() {
		if g.HasNABC() {
			out = append(out, diagnostic.Errorf(diagnostic.CodeNABCWithoutLinesHeader, g.Range,
				"NABC content without a %q header", ast.HeaderNABCLines))
		}
	}
	return out
}

func checkInvalidNABCLines(doc *ast.Document) []diagnostic.Diagnostic {
	h, ok := doc.Headers.Lookup(ast.HeaderNABCLines)
	if !ok {
		return nil
	}
	if _, valid := doc.NABCLines(); valid {
		return nil
	}
	return []diagnostic.Diagnostic{
		diagnostic.Errorf(diagnostic.CodeInvalidNABCLines, h.ValueRange,
			"%s must be a positive integer, got %q", ast.HeaderNABCLines, h.Value),
	}
}

func checkNABCAlternation(doc *ast.Document) []diagnostic.Diagnostic {
	lines, ok := doc.NABCLines()
	if !ok {
		return nil
	}
	var out []diagnostic.Diagnostic
	for _, g := range doc.Groups() {
		if !g.HasNABC() || len(g.NABCSegments) == lines {
			continue
		}
		out = append(out, diagnostic.Errorf(diagnostic.CodeNABCAlternationMismatch, g.Range,
			"note group has %d NABC segments but %s is %d", len(g.NABCSegments), ast.HeaderNABCLines, lines))
	}
	return out
}

func checkQuilismaDescending(doc *ast.Document) []diagnostic.Diagnostic {
	var out []diagnostic.Diagnostic
	for _, g := range doc.Groups() {
		notes := g.SoundingNotes()
		for i := 0; i+1 < len(notes); i++ {
			q, next := notes[i], notes[i+1]
			if !q.IsQuilisma() || ast.ComparePitch(next.Pitch, q.Pitch) > 0 {
				continue
			}
			out = append(out, diagnostic.Warningf(diagnostic.CodeQuilismaDescending, q.Range,
				"quilisma on %c is followed by %c, which is not higher", q.Pitch, next.Pitch).
				WithRelated("following note", next.Range))
		}
	}
	return out
}

func checkQuilismaPesBoundary(doc *ast.Document) []diagnostic.Diagnostic {
	var out []diagnostic.Diagnostic
	for i := 1; i < len(doc.Syllables); i++ {
		q, ok := StartsWithQuilismaPes(doc.Syllables[i])
		if !ok {
			continue
		}
		prev := doc.Syllables[i-1].LastNote()
		if prev == nil || ast.ComparePitch(prev.Pitch, q.Pitch) < 0 {
			continue
		}
		out = append(out, QuilismaPesBoundary(prev, q))
	}
	return out
}

func checkVirgaStrata(doc *ast.Document) []diagnostic.Diagnostic {
	var out []diagnostic.Diagnostic
	for _, g := range doc.Groups() {
		notes := g.SoundingNotes()
		for i := 0; i+1 < len(notes); i++ {
			v, next := notes[i], notes[i+1]
			if !v.Has(ast.ShapeVirga) || !v.HasModifier(ast.ModifierStrata) {
				continue
			}
			if ast.ComparePitch(next.Pitch, v.Pitch) < 0 {
				continue
			}
			out = append(out, diagnostic.Warningf(diagnostic.CodeVirgaStrataAscending, v.Range,
				"virga strata on %c is followed by %c, which is not lower", v.Pitch, next.Pitch).
				WithRelated("following note", next.Range))
		}
	}
	return out
}

func checkStaffLines(doc *ast.Document) []diagnostic.Diagnostic {
	n, declared, err := doc.IntHeader(ast.HeaderStaffLines)
	if !declared || (err == nil && n >= 2 && n <= 5) {
		return nil
	}
	h, _ := doc.Headers.Lookup(ast.HeaderStaffLines)
	return []diagnostic.Diagnostic{
		diagnostic.Errorf(diagnostic.CodeInvalidStaffLines, h.ValueRange,
			"%s must be an integer from 2 to 5, got %q", ast.HeaderStaffLines, h.Value),
	}
}

func eachChain(doc *ast.Document, fn func(chain []*ast.Descriptor)) {
	for _, g := range doc.Groups() {
		for _, seg := range g.NABC {
			for _, chain := range seg.AllChains() {
				fn(chain)
			}
		}
	}
}

func checkFusionPitchBalance(doc *ast.Document) []diagnostic.Diagnostic {
	var out []diagnostic.Diagnostic
	eachChain(doc, func(chain []*ast.Descriptor) {
		glyphs, pitched := 0, 0
		for _, d := range chain {
			if d.Kind != ast.DescriptorGlyph {
				continue
			}
			glyphs++
			if d.Pitch != nil {
				pitched++
			}
		}
		if glyphs < 2 || pitched == 0 || pitched == glyphs {
			return
		}
		rng := chain[0].Range
		rng.End = chain[len(chain)-1].Range.End
		out = append(out, diagnostic.Warningf(diagnostic.CodeNABCFusionPitchBalance, rng,
			"%d of %d fused glyphs carry a pitch descriptor; use one on every glyph or on none", pitched, glyphs))
	})
	return out
}

func checkFusionModifierPlacement(doc *ast.Document) []diagnostic.Diagnostic {
	var out []diagnostic.Diagnostic
	eachChain(doc, func(chain []*ast.Descriptor) {
		for _, d := range chain[:len(chain)-1] {
			if len(d.Modifiers) == 0 {
				continue
			}
			out = append(out, diagnostic.Warningf(diagnostic.CodeNABCFusionModifierPlace, d.Modifiers[0].Range,
				"glyph modifier %q on %q is not on the last glyph of the fusion", d.Modifiers[0].Char, d.Raw))
		}
	})
	return out
}

func checkQuilismaFusion(doc *ast.Document) []diagnostic.Diagnostic {
	var out []diagnostic.Diagnostic
	for _, g := range doc.Groups() {
		notes := g.SoundingNotes()
		if len(notes) < 3 {
			continue
		}
		quilisma, fused := false, false
		for _, n := range notes {
			quilisma = quilisma || n.IsQuilisma()
			fused = fused || n.HasModifier(ast.ModifierFusion)
		}
		if !quilisma || fused {
			continue
		}
		out = append(out, diagnostic.Infof(diagnostic.CodeQuilismaFusionSuggestion, g.Range,
			"quilismatic run of %d notes has no fusion connector; consider @", len(notes)))
	}
	return out
}
