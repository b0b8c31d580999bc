package position

import (
	"sort"
	"unicode/utf16"
	"unicode/utf8"
)

// Index maps byte offsets of one source text to line/character places.
// It is built once per parse and is safe for concurrent reads.
type Index struct {
	text       string
	lineStarts []int
}

func NewIndex(text string) *Index {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Index{text: text, lineStarts: starts}
}

// Text returns the indexed source.
func (x *Index) Text() string {
	return x.text
}

// LineCount returns the number of lines, counting a trailing empty line.
func (x *Index) LineCount() int {
	return len(x.lineStarts)
}

// LineStart returns the byte offset where the line begins. Out of range
// lines are clamped.
func (x *Index) LineStart(line int) int {
	if line < 0 {
		return 0
	}
	if line >= len(x.lineStarts) {
		return len(x.text)
	}
	return x.lineStarts[line]
}

// Line returns the text of the given line without its terminator.
func (x *Index) Line(line int) string {
	if line < 0 || line >= len(x.lineStarts) {
		return ""
	}
	start := x.lineStarts[line]
	end := len(x.text)
	if line+1 < len(x.lineStarts) {
		end = x.lineStarts[line+1] - 1
	}
	if end > start && x.text[end-1] == '\r' {
		end--
	}
	return x.text[start:end]
}

// Place converts a byte offset into a line and UTF-16 character offset.
func (x *Index) Place(offset int) Place {
	if offset < 0 {
		offset = 0
	}
	if offset > len(x.text) {
		offset = len(x.text)
	}
	line := sort.Search(len(x.lineStarts), func(i int) bool {
		return x.lineStarts[i] > offset
	}) - 1

	char := 0
	for i := x.lineStarts[line]; i < offset; {
		r, size := utf8.DecodeRuneInString(x.text[i:])
		if i+size > offset {
			break
		}
		char += utf16Len(r)
		i += size
	}
	return Place{Line: line, Character: char}
}

// Offset converts a place back into a byte offset, clamping to the line.
func (x *Index) Offset(p Place) int {
	if p.Line < 0 {
		return 0
	}
	if p.Line >= len(x.lineStarts) {
		return len(x.text)
	}
	i := x.lineStarts[p.Line]
	end := len(x.text)
	if p.Line+1 < len(x.lineStarts) {
		end = x.lineStarts[p.Line+1] - 1
	}
	for units := 0; i < end && units < p.Character; {
		r, size := utf8.DecodeRuneInString(x.text[i:])
		units += utf16Len(r)
		i += size
	}
	return i
}

// Range converts a half-open byte span into a range.
func (x *Index) Range(start, end int) Range {
	return Range{Start: x.Place(start), End: x.Place(end)}
}

// RangeOf converts a raw position into a range.
func (x *Index) RangeOf(p RawPosition) Range {
	return x.Range(p.Offset, p.End())
}

func utf16Len(r rune) int {
	if n := utf16.RuneLen(r); n > 0 {
		return n
	}
	return 1
}
