package position

import (
	"fmt"
)

// Place is a zero-based line and character offset. Character counts UTF-16
// code units, which is what editor protocols expect.
type Place struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

func (p Place) Before(o Place) bool {
	if p.Line != o.Line {
		return p.Line < o.Line
	}
	return p.Character < o.Character
}

func (p Place) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Character)
}

type Range struct {
	Start Place `json:"start"`
	End   Place `json:"end"`
}

// Contains reports whether the place falls inside the range. The end is
// inclusive so that a cursor placed right after a token still hits it.
func (r Range) Contains(p Place) bool {
	if p.Before(r.Start) {
		return false
	}
	return !r.End.Before(p)
}

// Empty reports whether the range covers no characters.
func (r Range) Empty() bool {
	return r.Start == r.End
}

// SingleLine reports whether start and end are on the same line.
func (r Range) SingleLine() bool {
	return r.Start.Line == r.End.Line
}

func (r Range) String() string {
	return fmt.Sprintf("%s-%s", r.Start, r.End)
}

// RawPosition represents a position in the source text
type RawPosition struct {
	// Offset is the byte offset in the source text
	Offset int
	// Text is the actual text at this position
	Text string
}

func NewBasicPosition(text string, offset int) RawPosition {
	return RawPosition{Text: text, Offset: offset}
}

// Length returns the byte length of the text at this position
func (p RawPosition) Length() int {
	return len(p.Text)
}

// End returns the byte offset just past the text.
func (p RawPosition) End() int {
	return p.Offset + p.Length()
}

func (p RawPosition) HasRangeOverlapWith(other RawPosition) bool {
	startOffset := other.Offset
	endOffset := other.End()

	posOffset := p.Offset
	posEndOffset := p.End()

	// a zero-length position overlaps if it falls within the other range
	if p.Length() == 0 {
		return posOffset >= startOffset && posOffset <= endOffset
	}
	if other.Length() == 0 {
		return startOffset >= posOffset && startOffset <= posEndOffset
	}

	return startOffset < posEndOffset && endOffset > posOffset
}

func (p RawPosition) String() string {
	return fmt.Sprintf("%s@%d", p.Text, p.Offset)
}
