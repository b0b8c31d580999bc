package semtok

import (
	"context"
	"sort"

	"fortio.org/safecast"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/gabcls/pkg/ast"
	"github.com/walteh/gabcls/pkg/parser"
	"github.com/walteh/gabcls/pkg/position"
)

// GetTokensForText parses content and returns its tokens in source order.
func GetTokensForText(ctx context.Context, content []byte) []Token {
	return GetTokensForDocument(parser.Parse(ctx, string(content)))
}

// GetTokensForDocument returns the tokens of an already parsed document in
// source order.
func GetTokensForDocument(doc *ast.Document) []Token {
	v := &tokenVisitor{doc: doc}
	v.visitDocument()
	sortTokens(v.tokens)
	return v.tokens
}

// GetTokensForRange returns the tokens that overlap rng.
func GetTokensForRange(ctx context.Context, content []byte, rng position.Range) []Token {
	var out []Token
	for _, t := range GetTokensForText(ctx, content) {
		if t.Range.End.Before(rng.Start) || rng.End.Before(t.Range.Start) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func sortTokens(tokens []Token) {
	sort.SliceStable(tokens, func(i, j int) bool {
		return tokens[i].Range.Start.Before(tokens[j].Range.Start)
	})
}

// Encode produces the LSP relative encoding: five integers per token
// (delta line, delta start, length, type, modifier bits). Tokens must be in
// source order.
func Encode(tokens []Token) ([]uint32, error) {
	data := make([]uint32, 0, len(tokens)*5)
	prevLine, prevStart := 0, 0

	for _, t := range tokens {
		line, start := t.Range.Start.Line, t.Range.Start.Character
		length := t.Range.End.Character - start

		deltaStart := start
		if line == prevLine {
			deltaStart = start - prevStart
		}

		values := [3]int{line - prevLine, deltaStart, length}
		var enc [3]uint32
		for i, x := range values {
			u, err := safecast.Conv[uint32](x)
			if err != nil {
				return nil, errors.Errorf("encoding token at %s: %w", t.Range.Start, err)
			}
			enc[i] = u
		}

		data = append(data, enc[0], enc[1], enc[2], uint32(t.Type), uint32(t.Modifier))
		prevLine, prevStart = line, start
	}

	return data, nil
}
