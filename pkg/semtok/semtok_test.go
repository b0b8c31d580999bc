package semtok_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/gabcls/pkg/position"
	"github.com/walteh/gabcls/pkg/semtok"
)

type simpleToken struct {
	Type semtok.TokenType
	Mod  semtok.TokenModifier
	Text string
}

func simplify(tokens []semtok.Token) []simpleToken {
	out := make([]simpleToken, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, simpleToken{Type: t.Type, Mod: t.Modifier, Text: t.Raw.Text})
	}
	return out
}

func TestTokensForText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []simpleToken
	}{
		{
			name:  "header and clef",
			input: "name: Test;\n%%\n(c4) Al(e)",
			expected: []simpleToken{
				{Type: semtok.TokenProperty, Text: "name"},
				{Type: semtok.TokenString, Text: "Test"},
				{Type: semtok.TokenKeyword, Mod: semtok.ModifierDeclaration, Text: "c4"},
				{Type: semtok.TokenString, Text: "Al"},
				{Type: semtok.TokenVariable, Text: "e"},
			},
		},
		{
			name:  "note parts",
			input: "%%\n(gwx?_1)",
			expected: []simpleToken{
				{Type: semtok.TokenVariable, Text: "g"},
				{Type: semtok.TokenFunction, Text: "w"},
				{Type: semtok.TokenOperator, Text: "x?"},
				{Type: semtok.TokenDecorator, Text: "_1"},
			},
		},
		{
			name:  "clef change and bar",
			input: "%%\n(c4) Al(e) (::) (f3) le(f)",
			expected: []simpleToken{
				{Type: semtok.TokenKeyword, Mod: semtok.ModifierDeclaration, Text: "c4"},
				{Type: semtok.TokenString, Text: "Al"},
				{Type: semtok.TokenVariable, Text: "e"},
				{Type: semtok.TokenOperator, Text: "::"},
				{Type: semtok.TokenKeyword, Mod: semtok.ModifierModification, Text: "f3"},
				{Type: semtok.TokenString, Text: "le"},
				{Type: semtok.TokenVariable, Text: "f"},
			},
		},
		{
			name:  "nabc",
			input: "%%\n(e|vihk!xx>su2)",
			expected: []simpleToken{
				{Type: semtok.TokenVariable, Text: "e"},
				{Type: semtok.TokenOperator, Text: "|"},
				{Type: semtok.TokenGlyph, Text: "vi"},
				{Type: semtok.TokenVariable, Text: "hk"},
				{Type: semtok.TokenGlyph, Mod: semtok.ModifierDeprecated, Text: "xx"},
				{Type: semtok.TokenDecorator, Text: ">"},
				{Type: semtok.TokenParameter, Text: "su2"},
			},
		},
		{
			name:  "bar group after a note group",
			input: "%%\n(c4) A(g)(::)",
			expected: []simpleToken{
				{Type: semtok.TokenKeyword, Mod: semtok.ModifierDeclaration, Text: "c4"},
				{Type: semtok.TokenString, Text: "A"},
				{Type: semtok.TokenVariable, Text: "g"},
				{Type: semtok.TokenOperator, Text: "::"},
			},
		},
		{
			name:  "bar inside a note group",
			input: "%%\nla(f;3)",
			expected: []simpleToken{
				{Type: semtok.TokenString, Text: "la"},
				{Type: semtok.TokenVariable, Text: "f"},
				{Type: semtok.TokenOperator, Text: ";3"},
			},
		},
		{
			name:  "rejected clef and bar",
			input: "%%\nA(g)(c4)(c3)(::)(,)",
			expected: []simpleToken{
				{Type: semtok.TokenString, Text: "A"},
				{Type: semtok.TokenVariable, Text: "g"},
				{Type: semtok.TokenKeyword, Mod: semtok.ModifierDeclaration, Text: "c4"},
				{Type: semtok.TokenKeyword, Mod: semtok.ModifierDeprecated, Text: "c3"},
				{Type: semtok.TokenOperator, Text: "::"},
				{Type: semtok.TokenOperator, Mod: semtok.ModifierDeprecated, Text: ","},
			},
		},
		{
			name:  "replaced waiting clef",
			input: "%%\n(c4) (f3) A(g)",
			expected: []simpleToken{
				{Type: semtok.TokenKeyword, Mod: semtok.ModifierDeprecated, Text: "c4"},
				{Type: semtok.TokenKeyword, Mod: semtok.ModifierModification, Text: "f3"},
				{Type: semtok.TokenString, Text: "A"},
				{Type: semtok.TokenVariable, Text: "g"},
			},
		},
		{
			name:  "comment and unknown",
			input: "%%\n% note\n(e$)",
			expected: []simpleToken{
				{Type: semtok.TokenComment, Text: "% note"},
				{Type: semtok.TokenVariable, Text: "e"},
				{Type: semtok.TokenOperator, Mod: semtok.ModifierDeprecated, Text: "$"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := semtok.GetTokensForText(context.Background(), []byte(tt.input))
			assert.Equal(t, tt.expected, simplify(got))
		})
	}
}

func TestTokensForRange(t *testing.T) {
	content := []byte("name: Test;\n%%\nAl(e)\nle(f)")
	got := semtok.GetTokensForRange(context.Background(), content, position.Range{
		Start: position.Place{Line: 3, Character: 0},
		End:   position.Place{Line: 3, Character: 5},
	})
	assert.Equal(t, []simpleToken{
		{Type: semtok.TokenString, Text: "le"},
		{Type: semtok.TokenVariable, Text: "f"},
	}, simplify(got))
}

func TestEncode(t *testing.T) {
	tokens := semtok.GetTokensForText(context.Background(), []byte("name: Test;\n%%\nlú(g)"))
	data, err := semtok.Encode(tokens)
	require.NoError(t, err)

	assert.Equal(t, []uint32{
		0, 0, 4, uint32(semtok.TokenProperty), 0,
		0, 6, 4, uint32(semtok.TokenString), 0,
		2, 0, 2, uint32(semtok.TokenString), 0,
		0, 3, 1, uint32(semtok.TokenVariable), 0,
	}, data)
}

func TestEncodeRejectsUnsortedTokens(t *testing.T) {
	tokens := []semtok.Token{
		{Range: position.Range{Start: position.Place{Line: 2, Character: 0}, End: position.Place{Line: 2, Character: 1}}},
		{Range: position.Range{Start: position.Place{Line: 1, Character: 0}, End: position.Place{Line: 1, Character: 1}}},
	}
	_, err := semtok.Encode(tokens)
	assert.Error(t, err)
}

func TestLegends(t *testing.T) {
	assert.Equal(t, "type", semtok.TokenGlyph.String())
	assert.Equal(t, semtok.TokenModifier(1), semtok.ModifierDeclaration)
	assert.Equal(t, "modification", semtok.ModifierLegend[2>>1])
	assert.Equal(t, "deprecated", semtok.ModifierDeprecated.String())
}
