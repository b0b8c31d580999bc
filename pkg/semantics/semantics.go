// Package semantics is the stateful second pass over a parsed document. It
// walks notes with their neighbours, across syllable boundaries, and
// recurses through NABC fusion chains.
package semantics

import (
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"go.uber.org/multierr"

	"github.com/walteh/gabcls/pkg/ast"
	"github.com/walteh/gabcls/pkg/diagnostic"
	"github.com/walteh/gabcls/pkg/validation"
)

type analyzer struct {
	doc   *ast.Document
	diags []diagnostic.Diagnostic
}

type check struct {
	name string
	run  func(a *analyzer)
}

var checks = []check{
	{name: "headers", run: (*analyzer).headers},
	{name: "first-syllable", run: (*analyzer).firstSyllable},
	{name: "notes", run: (*analyzer).notes},
	{name: "nabc", run: (*analyzer).nabc},
}

// Analyze returns the findings of every check. A check that fails is
// skipped and logged.
func Analyze(ctx context.Context, doc *ast.Document) []diagnostic.Diagnostic {
	diags, _ := AnalyzeWithErrors(ctx, doc)
	return diags
}

// AnalyzeWithErrors is Analyze that also reports the checks that failed.
func AnalyzeWithErrors(ctx context.Context, doc *ast.Document) ([]diagnostic.Diagnostic, error) {
	var out []diagnostic.Diagnostic
	var errs error
	for _, c := range checks {
		diags, err := runCheck(c, doc)
		if err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Str("check", c.name).Msg("semantic check failed")
			errs = multierr.Append(errs, err)
			continue
		}
		out = append(out, diags...)
	}
	return out, errs
}

func runCheck(c check, doc *ast.Document) (diags []diagnostic.Diagnostic, err error) {
	defer func() {
		if r := recover(); r != nil {
			diags = nil
			err = errors.Errorf("semantic check %s panicked: %v", c.name, r)
		}
	}()
	a := &analyzer{doc: doc}
	c.run(a)
	return a.diags, nil
}

func (a *analyzer) add(d diagnostic.Diagnostic) {
	a.diags = append(a.diags, d)
}

func (a *analyzer) headers() {
	for _, name := range a.doc.Headers.Names() {
		if occ := a.doc.Headers.Occurrences(name); len(occ) > 1 {
			a.add(validation.DuplicateHeader(occ))
		}
	}
}

func (a *analyzer) firstSyllable() {
	if len(a.doc.Syllables) == 0 {
		return
	}
	first := a.doc.Syllables[0]
	if first.LineBreak {
		a.add(validation.LineBreakFirstSyllable(first))
	}
	if first.Clef != nil && first.Clef.Provenance == ast.ClefChange {
		a.add(validation.ClefChangeFirstSyllable(first.Clef))
	}
}

func (a *analyzer) notes() {
	for i, s := range a.doc.Syllables {
		if i > 0 {
			if q, ok := validation.StartsWithQuilismaPes(s); ok {
				prev := a.doc.Syllables[i-1].LastNote()
				if prev != nil && ast.ComparePitch(prev.Pitch, q.Pitch) >= 0 {
					a.add(validation.QuilismaPesBoundary(prev, q))
				}
			}
		}
		for _, g := range s.Groups {
			a.ornaments(g.SoundingNotes())
		}
	}
}

// ornaments checks the notes that need a neighbour inside their group to be
// drawn. A fusion modifier on the note itself or on a neighbour joins it to
// the next group and protects it.
func (a *analyzer) ornaments(notes []*ast.Note) {
	for i, n := range notes {
		var prev, next *ast.Note
		if i > 0 {
			prev = notes[i-1]
		}
		if i+1 < len(notes) {
			next = notes[i+1]
		}
		if fused(n) || fused(prev) {
			continue
		}

		switch {
		case n.HasModifier(ast.ModifierQuadratum) && next == nil:
			a.add(diagnostic.Warningf(diagnostic.CodePesQuadratumIsolated, n.Range,
				"pes quadratum on %c has no following note", n.Pitch))
		case n.IsQuilisma() && next == nil:
			a.add(diagnostic.Warningf(diagnostic.CodeQuilismaIsolated, n.Range,
				"quilisma on %c has no following note", n.Pitch))
		case n.Has(ast.ShapeOriscusScapus) && prev == nil && next == nil:
			a.add(diagnostic.Warningf(diagnostic.CodeOriscusScapusIsolated, n.Range,
				"oriscus scapus on %c stands alone", n.Pitch))
		}
	}
}

func fused(n *ast.Note) bool {
	return n != nil && n.HasModifier(ast.ModifierFusion)
}

func (a *analyzer) nabc() {
	for _, g := range a.doc.Groups() {
		for _, seg := range g.NABC {
			for _, head := range seg.Chains {
				a.descriptor(seg, head)
			}
		}
	}
}

// descriptor checks one descriptor, the sub-forms attached to it and the
// rest of its fusion chain.
func (a *analyzer) descriptor(seg *ast.NABCSegment, i int) {
	if i == ast.NoNext {
		return
	}
	d := &seg.Descriptors[i]

	if d.HasModifier('>') && d.HasModifier('~') {
		a.add(diagnostic.Warningf(diagnostic.CodeNABCLiquescenceConflict, d.Range,
			"%q marks both augmentive (>) and diminutive (~) liquescence", d.Raw))
	}
	if d.Pitch != nil && !d.Pitch.Valid() {
		a.add(diagnostic.Errorf(diagnostic.CodeNABCPitchOutOfRange, d.Pitch.Range,
			"NABC pitch %q is outside a-n and p", d.Pitch.Letter))
	}

	for _, sub := range d.Attached {
		a.descriptor(seg, sub)
	}
	a.descriptor(seg, d.Next)
}
