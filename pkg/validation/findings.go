package validation

import (
	"github.com/walteh/gabcls/pkg/ast"
	"github.com/walteh/gabcls/pkg/diagnostic"
	"github.com/walteh/gabcls/pkg/position"
)

// The constructors below are shared with the semantic analyzer, which
// re-derives some of these findings; identical output lets the merge step
// drop the repeats.

// DuplicateHeader reports a header declared more than once. It points at the
// occurrence whose value is used and relates the earlier ones.
func DuplicateHeader(occurrences []ast.Header) diagnostic.Diagnostic {
	last := occurrences[len(occurrences)-1]
	d := diagnostic.Warningf(diagnostic.CodeDuplicateHeader, last.NameRange,
		"header %q is declared %d times; the last value is used", last.Name, len(occurrences))
	for _, h := range occurrences[:len(occurrences)-1] {
		d = d.WithRelated("earlier declaration", h.NameRange)
	}
	return d
}

func LineBreakFirstSyllable(s *ast.Syllable) diagnostic.Diagnostic {
	return diagnostic.Errorf(diagnostic.CodeLineBreakFirstSyllable, s.LineBreakRange,
		"line break on the first syllable")
}

func ClefChangeFirstSyllable(clef *ast.Clef) diagnostic.Diagnostic {
	return diagnostic.Errorf(diagnostic.CodeClefChangeFirstSyllable, clef.Range,
		"clef change %s on the first syllable", clef)
}

// QuilismaPesBoundary reports a quilisma opening a syllable whose previous
// syllable ends on an equal or higher pitch.
func QuilismaPesBoundary(prev, quilisma *ast.Note) diagnostic.Diagnostic {
	return diagnostic.Warningf(diagnostic.CodeQuilismaPesBoundary, quilisma.Range,
		"quilisma pes on %c is preceded by %c, which is not lower", quilisma.Pitch, prev.Pitch).
		WithRelated("preceding note", prev.Range)
}

// StartsWithQuilismaPes reports the quilisma note when the syllable opens with
// a quilisma rising to a higher note.
func StartsWithQuilismaPes(s *ast.Syllable) (*ast.Note, bool) {
	if len(s.Groups) == 0 {
		return nil, false
	}
	notes := s.Groups[0].SoundingNotes()
	if len(notes) < 2 || !notes[0].IsQuilisma() {
		return nil, false
	}
	if ast.ComparePitch(notes[1].Pitch, notes[0].Pitch) <= 0 {
		return nil, false
	}
	return notes[0], true
}

func documentStart() position.Range {
	return position.Range{}
}
