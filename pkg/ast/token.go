package ast

import (
	"github.com/walteh/gabcls/pkg/position"
)

// TokenKind classifies a lexical piece of a note group.
type TokenKind uint8

const (
	TokenUnknown TokenKind = iota
	TokenPitch
	TokenShape
	TokenOrientation
	TokenAlteration
	TokenIctus
	TokenEpisema
	TokenMora
	TokenFusion
	TokenClef
	TokenBar
	TokenLineBreak
	TokenCustos
	TokenSpace
	TokenAttribute
	TokenNABCSeparator
)

var tokenKindNames = [...]string{
	TokenUnknown:       "unknown",
	TokenPitch:         "pitch",
	TokenShape:         "shape",
	TokenOrientation:   "orientation",
	TokenAlteration:    "alteration",
	TokenIctus:         "ictus",
	TokenEpisema:       "episema",
	TokenMora:          "mora",
	TokenFusion:        "fusion",
	TokenClef:          "clef",
	TokenBar:           "bar",
	TokenLineBreak:     "line-break",
	TokenCustos:        "custos",
	TokenSpace:         "space",
	TokenAttribute:     "attribute",
	TokenNABCSeparator: "nabc-separator",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return "unknown"
}

// Token is one positioned lexical piece. Raw keeps the byte offset and the
// exact text, so len(Raw.Text) is the token length highlighting relies on.
type Token struct {
	Kind  TokenKind
	Raw   position.RawPosition
	Range position.Range
}

func (t Token) Text() string {
	return t.Raw.Text
}

func (t Token) Len() int {
	return t.Raw.Length()
}
