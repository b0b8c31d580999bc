// Package ast holds the document model produced by parsing GABC source.
//
// A Document is built once per parse and is never mutated afterwards; every
// entity carries the range it was read from so that diagnostics and
// highlighting can map back to the source.
package ast

import (
	"strconv"
	"strings"

	"github.com/walteh/gabcls/pkg/diagnostic"
	"github.com/walteh/gabcls/pkg/position"
)

// Well known header names.
const (
	HeaderName       = "name"
	HeaderNABCLines  = "nabc-lines"
	HeaderStaffLines = "staff-lines"
)

type Document struct {
	Headers   *Headers
	Comments  []Comment
	Syllables []*Syllable
	Errors    []diagnostic.Diagnostic

	// UnrecognizedHeaders are lines in the header region that are not
	// `name: value;` declarations.
	UnrecognizedHeaders []TextSpan

	// Superseded are clef and bar tokens that took no effect: their syllable
	// already had one, or a later clef replaced them before any syllable.
	Superseded []Token

	// Separator is the range of the `%%` line, nil when it is missing.
	Separator *position.Range

	// Index maps byte offsets of the parsed text to places.
	Index *position.Index
}

// TextSpan is a piece of raw source text and where it came from.
type TextSpan struct {
	Text  string
	Range position.Range
}

// Comment is a `%` comment running to the end of its line.
type Comment struct {
	Text  string
	Range position.Range
}

// Groups returns every note group in document order.
func (d *Document) Groups() []*NoteGroup {
	var out []*NoteGroup
	for _, s := range d.Syllables {
		out = append(out, s.Groups...)
	}
	return out
}

// Clefs returns every clef in document order.
func (d *Document) Clefs() []*Clef {
	var out []*Clef
	for _, s := range d.Syllables {
		if s.Clef != nil {
			out = append(out, s.Clef)
		}
	}
	return out
}

// HasNABC reports whether any note group carries NABC content.
func (d *Document) HasNABC() bool {
	for _, g := range d.Groups() {
		if g.HasNABC() {
			return true
		}
	}
	return false
}

// IntHeader reads a header as an integer. declared is false when the header
// is absent; err is set when it is present but not an integer.
func (d *Document) IntHeader(name string) (value int, declared bool, err error) {
	raw, ok := d.Headers.Get(name)
	if !ok {
		return 0, false, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, true, err
	}
	return n, true, nil
}

// NABCLines returns the declared `nabc-lines` value. ok is false when the
// header is missing or not a positive integer.
func (d *Document) NABCLines() (lines int, ok bool) {
	n, declared, err := d.IntHeader(HeaderNABCLines)
	if !declared || err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
