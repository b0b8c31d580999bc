package scanner_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/gabcls/pkg/diagnostic"
	"github.com/walteh/gabcls/pkg/position"
	"github.com/walteh/gabcls/pkg/scanner"
)

func kinds(frags []scanner.Fragment) []scanner.FragmentKind {
	out := make([]scanner.FragmentKind, 0, len(frags))
	for _, f := range frags {
		out = append(out, f.Kind)
	}
	return out
}

func TestScanRegions(t *testing.T) {
	res := scanner.Scan(position.NewIndex("name: Test;\n% a note\nmode: 8;\n%%\n(c4) Al(e)"))

	require.NotNil(t, res.Separator)
	assert.Empty(t, res.Errors)
	assert.Equal(t, []scanner.FragmentKind{
		scanner.FragmentHeaderLine,
		scanner.FragmentComment,
		scanner.FragmentHeaderLine,
	}, kinds(res.Header))
	assert.Len(t, res.HeaderLines(), 2)

	assert.Equal(t, []scanner.FragmentKind{
		scanner.FragmentGroup,
		scanner.FragmentSpace,
		scanner.FragmentText,
		scanner.FragmentGroup,
	}, kinds(res.Notation))

	group := res.Notation[3]
	assert.True(t, group.Terminated)
	assert.Equal(t, "(e)", group.Raw.Text)
	assert.Equal(t, "e", group.Content.Text)
}

func TestScanSeparatorToleratesTrailingSpace(t *testing.T) {
	res := scanner.Scan(position.NewIndex("name: a;\r\n%%  \r\n(g)"))

	require.NotNil(t, res.Separator)
	require.Len(t, res.Notation, 1)
	assert.Equal(t, "g", res.Notation[0].Content.Text)
}

func TestScanMissingSeparator(t *testing.T) {
	res := scanner.Scan(position.NewIndex("name: a;\nAl(g)"))

	assert.Nil(t, res.Separator)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, diagnostic.CodeMissingSeparator, res.Errors[0].Code)
	assert.Len(t, res.HeaderLines(), 1)
	assert.Equal(t, []scanner.FragmentKind{scanner.FragmentText, scanner.FragmentGroup}, kinds(res.Notation))
}

func TestScanMissingSeparatorHeadersOnly(t *testing.T) {
	for _, src := range []string{"name: a;\nmode: 1;", "name: a;\nmode: 1;\n", "name: a;"} {
		t.Run(src, func(t *testing.T) {
			res := scanner.Scan(position.NewIndex(src))

			require.Len(t, res.Errors, 1)
			assert.Equal(t, diagnostic.CodeMissingSeparator, res.Errors[0].Code)
			assert.Len(t, res.HeaderLines(), strings.Count(src, ";"))
			assert.Empty(t, res.Notation)
		})
	}
}

func TestScanUnterminatedGroup(t *testing.T) {
	idx := position.NewIndex("%%\nAl(ef\nle(g)")
	res := scanner.Scan(idx)

	require.Len(t, res.Errors, 1)
	d := res.Errors[0]
	assert.Equal(t, diagnostic.CodeUnterminatedGroup, d.Code)
	assert.Equal(t, diagnostic.Error, d.Severity)
	assert.Equal(t, position.Place{Line: 1, Character: 2}, d.Range.Start)

	var groups []scanner.Fragment
	for _, f := range res.Notation {
		if f.Kind == scanner.FragmentGroup {
			groups = append(groups, f)
		}
	}
	require.Len(t, groups, 2)
	assert.False(t, groups[0].Terminated)
	assert.Equal(t, "ef", groups[0].Content.Text)
	assert.True(t, groups[1].Terminated)
}

func TestScanNotationComment(t *testing.T) {
	res := scanner.Scan(position.NewIndex("%%\nAl(g) % trailing\nle(h)"))

	comments := res.Comments()
	require.Len(t, comments, 1)
	assert.Equal(t, "% trailing", comments[0].Raw.Text)
}

func TestScanStrayParen(t *testing.T) {
	res := scanner.Scan(position.NewIndex("%%\nAl)(g)"))

	require.Len(t, res.Errors, 1)
	assert.Equal(t, diagnostic.CodeUnmatchedParen, res.Errors[0].Code)
}
