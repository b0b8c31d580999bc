package notes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/gabcls/pkg/ast"
	"github.com/walteh/gabcls/pkg/diagnostic"
	"github.com/walteh/gabcls/pkg/notes"
	"github.com/walteh/gabcls/pkg/position"
)

func tokenize(src string) *notes.Result {
	return notes.Tokenize(position.NewIndex(src), src, 0)
}

func tokensOf(res *notes.Result, kind ast.TokenKind) []ast.Token {
	var out []ast.Token
	for _, t := range res.Tokens {
		if t.Kind == kind {
			out = append(out, t)
		}
	}
	return out
}

func TestAlterationLengths(t *testing.T) {
	tests := []struct {
		src        string
		length     int
		cautionary bool
		shape      ast.Shape
	}{
		{src: "gx", length: 1, shape: ast.ShapeFlat},
		{src: "gy", length: 1, shape: ast.ShapeNatural},
		{src: "gX", length: 1, shape: ast.ShapeFlat},
		{src: "gY", length: 1, shape: ast.ShapeNatural},
		{src: "gx?", length: 2, cautionary: true, shape: ast.ShapeFlat},
		{src: "g#", length: 1, shape: ast.ShapeSharp},
		{src: "g##", length: 2, shape: ast.ShapeSharp},
		{src: "g#?", length: 2, cautionary: true, shape: ast.ShapeSharp},
		{src: "g##?", length: 3, cautionary: true, shape: ast.ShapeSharp},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			res := tokenize(tt.src)
			require.Empty(t, res.Errors)
			require.Len(t, res.Notes, 1)

			n := res.Notes[0]
			require.NotNil(t, n.Alteration)
			assert.Equal(t, tt.length, n.Alteration.Length)
			assert.Equal(t, tt.cautionary, n.Alteration.Cautionary)
			assert.Equal(t, tt.shape, n.Shape)
			assert.True(t, n.IsAccidental())

			alts := tokensOf(res, ast.TokenAlteration)
			require.Len(t, alts, 1)
			assert.Equal(t, tt.length, alts[0].Len())
			assert.Equal(t, tt.length, alts[0].Range.End.Character-alts[0].Range.Start.Character)
		})
	}
}

func TestOriscusOrientation(t *testing.T) {
	tests := []struct {
		src         string
		shape       ast.Shape
		orientation int
		hasParam    bool
		unknown     int
	}{
		{src: "go0", shape: ast.ShapeOriscus, orientation: 0, hasParam: true},
		{src: "go1", shape: ast.ShapeOriscus, orientation: 1, hasParam: true},
		{src: "gO0", shape: ast.ShapeOriscusScapus, orientation: 0, hasParam: true},
		{src: "gO1", shape: ast.ShapeOriscusScapus, orientation: 1, hasParam: true},
		{src: "go", shape: ast.ShapeOriscus},
		{src: "go2", shape: ast.ShapeOriscus, unknown: 1},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			res := tokenize(tt.src)
			require.Len(t, res.Notes, 1)
			n := res.Notes[0]
			assert.Equal(t, tt.shape, n.Shape)

			m, ok := n.Modifier(ast.ModifierOrientation)
			assert.Equal(t, tt.hasParam, ok)
			if ok {
				assert.Equal(t, tt.orientation, m.Param)
			}

			orient := tokensOf(res, ast.TokenOrientation)
			if tt.hasParam {
				require.Len(t, orient, 1)
				assert.Equal(t, 1, orient[0].Len())
			} else {
				assert.Empty(t, orient)
			}

			assert.Len(t, tokensOf(res, ast.TokenUnknown), tt.unknown)
			assert.Equal(t, tt.unknown, diagnostic.Count(res.Errors, diagnostic.CodeUnexpectedCharacter))
		})
	}
}

func TestNoteShapesAndModifiers(t *testing.T) {
	res := tokenize("Fgwhqi'1_jvk.l..m@n")
	require.Empty(t, res.Errors)
	require.Len(t, res.Notes, 9)

	assert.Equal(t, ast.ShapePunctumInclinatum, res.Notes[0].Shape)
	assert.Equal(t, byte('f'), res.Notes[0].Pitch)
	assert.Equal(t, byte('F'), res.Notes[0].RawPitch)

	assert.Equal(t, ast.ShapeQuilisma, res.Notes[1].Shape)
	assert.True(t, res.Notes[2].HasModifier(ast.ModifierQuadratum))
	assert.Equal(t, ast.ShapePunctum, res.Notes[2].Shape)

	ictus, ok := res.Notes[3].Modifier(ast.ModifierIctus)
	require.True(t, ok)
	assert.Equal(t, 1, ictus.Param)
	assert.True(t, res.Notes[3].HasModifier(ast.ModifierEpisema))

	assert.Equal(t, ast.ShapeVirga, res.Notes[4].Shape)

	mora, _ := res.Notes[5].Modifier(ast.ModifierMora)
	assert.Equal(t, 1, mora.Param)
	mora, _ = res.Notes[6].Modifier(ast.ModifierMora)
	assert.Equal(t, 2, mora.Param)

	assert.True(t, res.Notes[7].HasModifier(ast.ModifierFusion))
	assert.False(t, res.Notes[8].HasModifier(ast.ModifierFusion))
}

func TestFusionBlock(t *testing.T) {
	res := tokenize("@[fgh]i")
	require.Empty(t, res.Errors)
	require.Len(t, res.Notes, 4)
	for _, n := range res.Notes[:3] {
		assert.True(t, n.HasModifier(ast.ModifierFusion), n.Text)
	}
	assert.False(t, res.Notes[3].HasModifier(ast.ModifierFusion))
	assert.Len(t, tokensOf(res, ast.TokenFusion), 2)
}

func TestNonNoteTokens(t *testing.T) {
	tests := []struct {
		src  string
		kind ast.TokenKind
		text string
	}{
		{src: "c4", kind: ast.TokenClef, text: "c4"},
		{src: "cb3", kind: ast.TokenClef, text: "cb3"},
		{src: "f2", kind: ast.TokenClef, text: "f2"},
		{src: "::", kind: ast.TokenBar, text: "::"},
		{src: ";3", kind: ast.TokenBar, text: ";3"},
		{src: ",_", kind: ast.TokenBar, text: ",_"},
		{src: "`0", kind: ast.TokenBar, text: "`0"},
		{src: "z", kind: ast.TokenLineBreak, text: "z"},
		{src: "Z-", kind: ast.TokenLineBreak, text: "Z-"},
		{src: "z0", kind: ast.TokenCustos, text: "z0"},
		{src: "g+", kind: ast.TokenCustos, text: "g+"},
		{src: "//", kind: ast.TokenSpace, text: "//"},
		{src: "/0", kind: ast.TokenSpace, text: "/0"},
		{src: "!", kind: ast.TokenSpace, text: "!"},
		{src: "[shape:stroke]", kind: ast.TokenAttribute, text: "[shape:stroke]"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			res := tokenize(tt.src)
			require.Empty(t, res.Errors)
			require.Len(t, res.Tokens, 1)
			assert.Equal(t, tt.kind, res.Tokens[0].Kind)
			assert.Equal(t, tt.text, res.Tokens[0].Text())
			assert.Empty(t, res.Notes)
		})
	}
}

func TestClefAndBarGroups(t *testing.T) {
	assert.True(t, tokenize("c4").OnlyClef())
	assert.False(t, tokenize("c4e").OnlyClef())
	assert.True(t, tokenize(" :: ").OnlyBar())
	assert.False(t, tokenize("g::").OnlyBar())

	clef := tokenize("cb3").Clefs[0]
	assert.Equal(t, byte('c'), clef.Letter)
	assert.Equal(t, 3, clef.Line)
	assert.True(t, clef.Flat)
}

func TestAttributes(t *testing.T) {
	res := tokenize("g[alt:Kyrie]h[nv]")
	require.Empty(t, res.Errors)
	require.Len(t, res.Attributes, 2)
	assert.Equal(t, ast.Attribute{Key: "alt", Value: "Kyrie", Range: res.Attributes[0].Range}, res.Attributes[0])
	assert.Equal(t, "nv", res.Attributes[1].Key)

	res = tokenize("g[alt")
	require.Len(t, res.Errors, 1)
	assert.Equal(t, diagnostic.CodeUnterminatedAttr, res.Errors[0].Code)
}

func TestTokenOffsetsFollowBase(t *testing.T) {
	text := "%%\nlú(gh)"
	idx := position.NewIndex(text)
	res := notes.Tokenize(idx, "gh", 7)

	require.Len(t, res.Notes, 2)
	assert.Equal(t, position.Place{Line: 1, Character: 3}, res.Notes[0].Range.Start)
	assert.Equal(t, position.Place{Line: 1, Character: 4}, res.Notes[1].Range.Start)
	assert.Equal(t, 7, res.Tokens[0].Raw.Offset)
}
