package semtok

import (
	"github.com/walteh/gabcls/pkg/position"
)

// TokenType is an index into Legend.
type TokenType uint32

const (
	TokenProperty TokenType = iota
	TokenString
	TokenComment
	TokenKeyword
	TokenVariable
	TokenFunction
	TokenOperator
	TokenDecorator
	TokenMacro
	TokenGlyph
	TokenParameter
	TokenNumber
)

// Legend is the token type legend announced to LSP clients.
var Legend = []string{
	TokenProperty:  "property",
	TokenString:    "string",
	TokenComment:   "comment",
	TokenKeyword:   "keyword",
	TokenVariable:  "variable",
	TokenFunction:  "function",
	TokenOperator:  "operator",
	TokenDecorator: "decorator",
	TokenMacro:     "macro",
	TokenGlyph:     "type",
	TokenParameter: "parameter",
	TokenNumber:    "number",
}

func (t TokenType) String() string {
	if int(t) < len(Legend) {
		return Legend[t]
	}
	return "unknown"
}

// TokenModifier is a bit set; bit i is ModifierLegend[i].
type TokenModifier uint32

const (
	ModifierNone        TokenModifier = 0
	ModifierDeclaration TokenModifier = 1 << (iota - 1)
	ModifierModification
	ModifierDeprecated
	ModifierReadonly
)

// ModifierLegend is the token modifier legend announced to LSP clients.
var ModifierLegend = []string{"declaration", "modification", "deprecated", "readonly"}

func (m TokenModifier) String() string {
	switch m {
	case ModifierNone:
		return "none"
	case ModifierDeclaration:
		return "declaration"
	case ModifierModification:
		return "modification"
	case ModifierDeprecated:
		return "deprecated"
	case ModifierReadonly:
		return "readonly"
	default:
		return "mixed"
	}
}

// Token is one highlighted span. Raw keeps the byte offset and text; Range
// is what the encoder uses.
type Token struct {
	Type     TokenType
	Modifier TokenModifier
	Raw      position.RawPosition
	Range    position.Range
}
