package lint_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/gabcls/pkg/config"
	"github.com/walteh/gabcls/pkg/diagnostic"
	"github.com/walteh/gabcls/pkg/lint"
)

func TestCheckEndToEnd(t *testing.T) {
	res := lint.Check(context.Background(), "name: Test;\n%%\n(c4) Al(e)le(f)lú(g)ia()", lint.Options{})

	require.NoError(t, res.Err)
	assert.Empty(t, res.Diagnostics)
	assert.Len(t, res.Document.Syllables, 4)
	assert.Len(t, res.Document.Clefs(), 1)
	assert.False(t, res.Failed(nil))
}

func TestCheckDeduplicatesRederivedFindings(t *testing.T) {
	res := lint.Check(context.Background(), "name: a;\nname: b;\n%%\nAl(ez) le(f)", lint.Options{})

	assert.Equal(t, 1, diagnostic.Count(res.Diagnostics, diagnostic.CodeLineBreakFirstSyllable))
	assert.Equal(t, 1, diagnostic.Count(res.Diagnostics, diagnostic.CodeDuplicateHeader))
}

func TestCheckSortsBySeverity(t *testing.T) {
	res := lint.Check(context.Background(), "stray line\n%%\nAl(ez|vi) le(gwf)", lint.Options{})

	require.NotEmpty(t, res.Diagnostics)
	for i := 1; i < len(res.Diagnostics); i++ {
		assert.LessOrEqual(t, res.Diagnostics[i-1].Severity.Rank(), res.Diagnostics[i].Severity.Rank())
	}
	assert.Equal(t, diagnostic.Error, res.Diagnostics[0].Severity)
	assert.Equal(t, diagnostic.Info, res.Diagnostics[len(res.Diagnostics)-1].Severity)
	assert.True(t, res.Failed(nil))
}

func TestCheckIsIdempotent(t *testing.T) {
	const src = "mode: 1;\nmode: 2;\nnabc-lines: 2;\n%%\n(c4)(c3) Al(ez|vihk!ta) le(gwf)"
	a := lint.Check(context.Background(), src, lint.Options{})
	b := lint.Check(context.Background(), src, lint.Options{})
	assert.Equal(t, a.Diagnostics, b.Diagnostics)
}

func TestCheckAppliesConfig(t *testing.T) {
	const src = "mode: 1;\nmode: 2;\n%%\nAl(gwf)"

	cfg := config.Default()
	cfg.Disable = []string{diagnostic.CodeMissingNameHeader}
	cfg.Ignore = []string{"quilisma-*"}
	cfg.Severity = map[string]string{diagnostic.CodeDuplicateHeader: "info"}
	require.NoError(t, cfg.Validate())

	res := lint.Check(context.Background(), src, lint.Options{Config: cfg})

	assert.Zero(t, diagnostic.Count(res.Diagnostics, diagnostic.CodeMissingNameHeader))
	assert.Zero(t, diagnostic.Count(res.Diagnostics, diagnostic.CodeQuilismaDescending))
	assert.Zero(t, diagnostic.Count(res.Diagnostics, diagnostic.CodeQuilismaIsolated))
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, diagnostic.CodeDuplicateHeader, res.Diagnostics[0].Code)
	assert.Equal(t, diagnostic.Info, res.Diagnostics[0].Severity)
	assert.False(t, res.Failed(cfg))

	cfg.FailOn = "info"
	assert.True(t, res.Failed(cfg))
}
