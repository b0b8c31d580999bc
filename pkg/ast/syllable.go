package ast

import (
	"fmt"

	"github.com/walteh/gabcls/pkg/position"
)

// ClefProvenance tells whether a clef opens the score or changes it.
type ClefProvenance uint8

const (
	ClefInitial ClefProvenance = iota
	ClefChange
)

func (p ClefProvenance) String() string {
	if p == ClefChange {
		return "change"
	}
	return "initial"
}

type Clef struct {
	Letter     byte
	Line       int
	Flat       bool
	Provenance ClefProvenance
	Text       string
	Range      position.Range
}

func (c *Clef) String() string {
	if c.Flat {
		return fmt.Sprintf("%cb%d", c.Letter, c.Line)
	}
	return fmt.Sprintf("%c%d", c.Letter, c.Line)
}

type Bar struct {
	Symbol string
	Range  position.Range
}

// Custos is a guide note at the end of a line. Auto custos (`z0`) have no
// pitch of their own.
type Custos struct {
	Pitch byte
	Auto  bool
	Range position.Range
}

// Attribute is a bracketed `[key:value]` or `[key]` note group attribute.
type Attribute struct {
	Key   string
	Value string
	Range position.Range
}

type Syllable struct {
	Text      string
	TextRange position.Range

	Clef   *Clef
	Groups []*NoteGroup
	Bar    *Bar

	LineBreak      bool
	LineBreakRange position.Range

	Range position.Range
}

// Notes returns the notes of every group of the syllable in order.
func (s *Syllable) Notes() []*Note {
	var out []*Note
	for _, g := range s.Groups {
		out = append(out, g.Notes...)
	}
	return out
}

// LastNote returns the last sounding note of the syllable, skipping
// accidentals.
func (s *Syllable) LastNote() *Note {
	for gi := len(s.Groups) - 1; gi >= 0; gi-- {
		notes := s.Groups[gi].Notes
		for ni := len(notes) - 1; ni >= 0; ni-- {
			if !notes[ni].IsAccidental() {
				return notes[ni]
			}
		}
	}
	return nil
}

// HasNABC reports whether any group of the syllable carries NABC content.
func (s *Syllable) HasNABC() bool {
	for _, g := range s.Groups {
		if g.HasNABC() {
			return true
		}
	}
	return false
}

// NoteGroup is one parenthesized unit of a syllable.
type NoteGroup struct {
	// Raw is the whole text between the parentheses.
	Raw string
	// GABC is the part of Raw before the first unescaped `|`.
	GABC string

	Notes  []*Note
	Tokens []Token

	// NABCSegments are the raw `|` separated sections after the GABC part.
	NABCSegments []string
	NABC         []*NABCSegment

	Attributes []Attribute
	Custos     *Custos

	Range        position.Range
	ContentRange position.Range
}

func (g *NoteGroup) HasNABC() bool {
	return len(g.NABCSegments) > 0
}

// SoundingNotes returns the notes that are not accidental signs.
func (g *NoteGroup) SoundingNotes() []*Note {
	out := make([]*Note, 0, len(g.Notes))
	for _, n := range g.Notes {
		if !n.IsAccidental() {
			out = append(out, n)
		}
	}
	return out
}

// Attribute returns the value of the first attribute named key.
func (g *NoteGroup) Attribute(key string) (string, bool) {
	for _, a := range g.Attributes {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}
