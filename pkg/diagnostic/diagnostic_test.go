package diagnostic_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/gabcls/pkg/diagnostic"
	"github.com/walteh/gabcls/pkg/position"
)

func rng(line, start, end int) position.Range {
	return position.Range{
		Start: position.Place{Line: line, Character: start},
		End:   position.Place{Line: line, Character: end},
	}
}

func TestSortBySeverityIsStable(t *testing.T) {
	diags := []diagnostic.Diagnostic{
		diagnostic.Infof("c", rng(0, 0, 1), "info one"),
		diagnostic.Warningf("b", rng(0, 0, 1), "warning one"),
		diagnostic.Errorf("a", rng(3, 0, 1), "error one"),
		diagnostic.Warningf("b", rng(1, 0, 1), "warning two"),
		diagnostic.Errorf("a", rng(2, 0, 1), "error two"),
	}

	diagnostic.SortBySeverity(diags)

	var got []string
	for _, d := range diags {
		got = append(got, d.Message)
	}
	assert.Equal(t, []string{"error one", "error two", "warning one", "warning two", "info one"}, got)
}

func TestDedup(t *testing.T) {
	a := diagnostic.Warningf(diagnostic.CodeDuplicateHeader, rng(1, 0, 4), "header %q is defined 2 times", "name")
	b := diagnostic.Warningf(diagnostic.CodeDuplicateHeader, rng(2, 0, 4), "header %q is defined 2 times", "name")

	got := diagnostic.Dedup([]diagnostic.Diagnostic{a, b, a})
	require.Len(t, got, 2)
	assert.Equal(t, a, got[0])
	assert.Equal(t, b, got[1])
}

func TestWithRelatedDoesNotShareBacking(t *testing.T) {
	base := diagnostic.Warningf("x", rng(0, 0, 1), "base")
	one := base.WithRelated("first", rng(1, 0, 1))
	two := base.WithRelated("second", rng(2, 0, 1))

	assert.Empty(t, base.Related)
	require.Len(t, one.Related, 1)
	require.Len(t, two.Related, 1)
	assert.Equal(t, "first", one.Related[0].Message)
	assert.Equal(t, "second", two.Related[0].Message)
}

func TestParseSeverity(t *testing.T) {
	for in, want := range map[string]diagnostic.Severity{
		"error":   diagnostic.Error,
		"warn":    diagnostic.Warning,
		"warning": diagnostic.Warning,
		"info":    diagnostic.Info,
		"hint":    diagnostic.Info,
	} {
		got, ok := diagnostic.ParseSeverity(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := diagnostic.ParseSeverity("fatal")
	assert.False(t, ok)
}

func TestVSCodeFormatter(t *testing.T) {
	diags := []diagnostic.Diagnostic{
		diagnostic.Errorf(diagnostic.CodeLineBreakFirstSyllable, rng(2, 3, 4), "line break on first syllable").
			WithRelated("syllable starts here", rng(2, 0, 2)),
		diagnostic.Warningf(diagnostic.CodeMissingNameHeader, rng(0, 0, 0), "missing name header"),
	}

	out, err := diagnostic.NewVSCodeFormatter().Format(diags)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Len(t, decoded, 2)

	assert.Equal(t, float64(1), decoded[0]["severity"])
	assert.Equal(t, diagnostic.CodeLineBreakFirstSyllable, decoded[0]["code"])
	assert.Equal(t, "gabc", decoded[0]["source"])
	assert.Len(t, decoded[0]["relatedInformation"], 1)
	assert.Equal(t, float64(2), decoded[1]["severity"])
	assert.NotContains(t, decoded[1], "relatedInformation")

	_, err = diagnostic.NewVSCodeFormatter().Format(nil)
	assert.Error(t, err)
}
