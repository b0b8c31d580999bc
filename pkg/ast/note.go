package ast

import (
	"github.com/walteh/gabcls/pkg/position"
)

// Shape is the drawn form of a note.
type Shape uint8

const (
	ShapePunctum Shape = iota
	ShapePunctumInclinatum
	ShapeVirga
	ShapeVirgaReversa
	ShapeQuilisma
	ShapeOriscus
	ShapeOriscusScapus
	ShapeStropha
	ShapeLiquescent
	ShapeCavum
	ShapeFlat
	ShapeSharp
	ShapeNatural
)

var shapeNames = [...]string{
	ShapePunctum:           "punctum",
	ShapePunctumInclinatum: "punctum inclinatum",
	ShapeVirga:             "virga",
	ShapeVirgaReversa:      "virga reversa",
	ShapeQuilisma:          "quilisma",
	ShapeOriscus:           "oriscus",
	ShapeOriscusScapus:     "oriscus scapus",
	ShapeStropha:           "stropha",
	ShapeLiquescent:        "liquescent",
	ShapeCavum:             "cavum",
	ShapeFlat:              "flat",
	ShapeSharp:             "sharp",
	ShapeNatural:           "natural",
}

func (s Shape) String() string {
	if int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return "unknown"
}

// ModifierKind tags a note modifier.
type ModifierKind uint8

const (
	ModifierNone ModifierKind = iota
	ModifierOrientation
	ModifierQuadratum
	ModifierStrata
	ModifierIctus
	ModifierEpisema
	ModifierMora
	ModifierFusion
)

var modifierNames = [...]string{
	ModifierNone:        "none",
	ModifierOrientation: "orientation",
	ModifierQuadratum:   "quadratum",
	ModifierStrata:      "strata",
	ModifierIctus:       "ictus",
	ModifierEpisema:     "episema",
	ModifierMora:        "mora",
	ModifierFusion:      "fusion",
}

func (k ModifierKind) String() string {
	if int(k) < len(modifierNames) {
		return modifierNames[k]
	}
	return "unknown"
}

// Modifier is a note modifier with an optional numeric parameter, such as
// an oriscus orientation or an episema placement digit.
type Modifier struct {
	Kind     ModifierKind
	Param    int
	HasParam bool
	Range    position.Range
}

// Alteration is an accidental written after a pitch. Length is the exact
// number of source characters, `?` included.
type Alteration struct {
	Char       byte
	Length     int
	Double     bool
	Cautionary bool
	Range      position.Range
}

// Shape returns the accidental shape the alteration character draws.
func (a Alteration) Shape() Shape {
	switch a.Char {
	case '#':
		return ShapeSharp
	case 'y', 'Y':
		return ShapeNatural
	default:
		return ShapeFlat
	}
}

type Note struct {
	// Pitch is the lower-cased pitch letter.
	Pitch byte
	// RawPitch keeps the case as written; upper case draws an inclinatum.
	RawPitch byte

	// Shape is the primary shape; Shapes lists every shape character in order.
	Shape  Shape
	Shapes []Shape

	Modifiers  []Modifier
	Alteration *Alteration

	Text  string
	Range position.Range
}

func (n *Note) Has(s Shape) bool {
	if n.Shape == s {
		return true
	}
	for _, x := range n.Shapes {
		if x == s {
			return true
		}
	}
	return false
}

func (n *Note) HasModifier(k ModifierKind) bool {
	_, ok := n.Modifier(k)
	return ok
}

// Modifier returns the first modifier of kind k.
func (n *Note) Modifier(k ModifierKind) (Modifier, bool) {
	for _, m := range n.Modifiers {
		if m.Kind == k {
			return m, true
		}
	}
	return Modifier{}, false
}

// IsAccidental reports whether the note only draws an alteration sign.
func (n *Note) IsAccidental() bool {
	return n.Shape == ShapeFlat || n.Shape == ShapeSharp || n.Shape == ShapeNatural
}

func (n *Note) IsQuilisma() bool {
	return n.Has(ShapeQuilisma)
}

// ShapeChar is the entry of the shape character table. A character either
// selects a shape or adds a modifier.
type ShapeChar struct {
	Char     byte
	Shape    Shape
	Modifier ModifierKind
	// Oriscus marks characters that may be followed by an orientation digit.
	Oriscus bool
}

// IsModifier reports whether the character adds a modifier rather than a shape.
func (c ShapeChar) IsModifier() bool {
	return c.Modifier != ModifierNone
}

var shapeChars = map[byte]ShapeChar{
	'w': {Char: 'w', Shape: ShapeQuilisma},
	'W': {Char: 'W', Shape: ShapeQuilisma},
	'v': {Char: 'v', Shape: ShapeVirga},
	'V': {Char: 'V', Shape: ShapeVirgaReversa},
	'o': {Char: 'o', Shape: ShapeOriscus, Oriscus: true},
	'O': {Char: 'O', Shape: ShapeOriscusScapus, Oriscus: true},
	's': {Char: 's', Shape: ShapeStropha},
	'r': {Char: 'r', Shape: ShapeCavum},
	'R': {Char: 'R', Shape: ShapeCavum},
	'<': {Char: '<', Shape: ShapeLiquescent},
	'>': {Char: '>', Shape: ShapeLiquescent},
	'~': {Char: '~', Shape: ShapeLiquescent},
	'q': {Char: 'q', Modifier: ModifierQuadratum},
	'G': {Char: 'G', Modifier: ModifierStrata},
}

// LookupShapeChar returns the table entry for a shape character.
func LookupShapeChar(c byte) (ShapeChar, bool) {
	sc, ok := shapeChars[c]
	return sc, ok
}

// Pitches is the ordered pitch scale, lowest first.
const Pitches = "abcdefghijklmnp"

// IsPitch reports whether c is a pitch letter in either case.
func IsPitch(c byte) bool {
	return PitchIndex(c) >= 0
}

// PitchIndex returns the ordinal of c in the scale, case-insensitive, or -1.
func PitchIndex(c byte) int {
	if c >= 'A' && c <= 'Z' {
		c += 'a' - 'A'
	}
	switch {
	case c >= 'a' && c <= 'n':
		return int(c - 'a')
	case c == 'p':
		return len(Pitches) - 1
	}
	return -1
}

// ComparePitch returns -1, 0 or 1 as a is lower, equal or higher than b.
// Unknown letters compare equal so that ambiguous input never blocks
// analysis.
func ComparePitch(a, b byte) int {
	ia, ib := PitchIndex(a), PitchIndex(b)
	if ia < 0 || ib < 0 {
		return 0
	}
	switch {
	case ia < ib:
		return -1
	case ia > ib:
		return 1
	}
	return 0
}
