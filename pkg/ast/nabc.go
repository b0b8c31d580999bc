package ast

import (
	"github.com/walteh/gabcls/pkg/position"
)

// DescriptorKind distinguishes the forms an NABC descriptor can take.
type DescriptorKind uint8

const (
	DescriptorGlyph DescriptorKind = iota
	DescriptorSignificantLetter
	DescriptorSubpunctis
	DescriptorPrepunctis
)

func (k DescriptorKind) String() string {
	switch k {
	case DescriptorSignificantLetter:
		return "significant-letter"
	case DescriptorSubpunctis:
		return "subpunctis"
	case DescriptorPrepunctis:
		return "prepunctis"
	default:
		return "glyph"
	}
}

// NoNext terminates a fusion chain.
const NoNext = -1

// NABCSegment is one `|` separated section of a note group. Descriptors is
// an arena; Chains holds the index of the first descriptor of each fusion
// chain and Descriptor.Next links the rest, strictly left to right.
type NABCSegment struct {
	Raw         string
	Range       position.Range
	Descriptors []Descriptor
	Chains      []int
}

// Chain returns the descriptors of the chain starting at head, in order.
func (s *NABCSegment) Chain(head int) []*Descriptor {
	var out []*Descriptor
	for i := head; i >= 0 && i < len(s.Descriptors); i = s.Descriptors[i].Next {
		out = append(out, &s.Descriptors[i])
	}
	return out
}

// AllChains returns every fusion chain of the segment.
func (s *NABCSegment) AllChains() [][]*Descriptor {
	out := make([][]*Descriptor, 0, len(s.Chains))
	for _, head := range s.Chains {
		out = append(out, s.Chain(head))
	}
	return out
}

type Descriptor struct {
	Kind  DescriptorKind
	Raw   string
	Range position.Range

	// Code is the two letter glyph code of glyph descriptors.
	Code      string
	CodeRange position.Range
	Known     bool

	Pitch     *PitchDescriptor
	Modifiers []GlyphModifier

	Letter  *SignificantLetter
	Punctis *Punctis

	// Attached indexes sub-form descriptors written after a glyph in the
	// same substring.
	Attached []int

	Next int
}

func (d *Descriptor) HasModifier(c byte) bool {
	for _, m := range d.Modifiers {
		if m.Char == c {
			return true
		}
	}
	return false
}

// PitchDescriptor is `h` followed by a pitch letter.
type PitchDescriptor struct {
	Letter byte
	Range  position.Range
}

// Valid reports whether the letter is inside the NABC pitch range a-n, p.
func (p PitchDescriptor) Valid() bool {
	return (p.Letter >= 'a' && p.Letter <= 'n') || p.Letter == 'p'
}

// GlyphModifier is one of S G M - > ~ with an optional variant digit.
type GlyphModifier struct {
	Char       byte
	Variant    int
	HasVariant bool
	Range      position.Range
}

// SignificantLetter is the `ls`/`lt` sub-form.
type SignificantLetter struct {
	Prefix    string
	Shorthand string
	Position  int
	Range     position.Range
}

// Punctis is the `su`/`pp` sub-form.
type Punctis struct {
	Prefix   string
	Modifier byte
	Count    int
	HasCount bool
	Range    position.Range
}
