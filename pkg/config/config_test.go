package config_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/gabcls/pkg/config"
	"github.com/walteh/gabcls/pkg/diagnostic"
)

const hclConfig = `
disable    = ["missing-name-header"]
ignore     = ["quilisma-*"]
fail_on    = "warning"
extensions = [".gabc", ".gab"]
severity = {
  "duplicate-header" = "error"
}
`

const yamlConfig = `
disable: [missing-name-header]
ignore: ["quilisma-*"]
fail_on: warning
extensions: [.gabc, .gab]
severity:
  duplicate-header: error
`

const tomlConfig = `
disable = ["missing-name-header"]
ignore = ["quilisma-*"]
fail_on = "warning"
extensions = [".gabc", ".gab"]

[severity]
duplicate-header = "error"
`

func TestLoadFormats(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		content string
	}{
		{name: "hcl", path: "/p/.gabclint.hcl", content: hclConfig},
		{name: "yaml", path: "/p/.gabclint.yaml", content: yamlConfig},
		{name: "toml", path: "/p/.gabclint.toml", content: tomlConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, tt.path, []byte(tt.content), 0o644))

			cfg, err := config.Load(fs, tt.path)
			require.NoError(t, err)

			assert.Equal(t, []string{"missing-name-header"}, cfg.Disable)
			assert.Equal(t, []string{".gabc", ".gab"}, cfg.Extensions)

			sev, ok := cfg.SeverityFor(diagnostic.CodeDuplicateHeader)
			require.True(t, ok)
			assert.Equal(t, diagnostic.Error, sev)

			threshold, ok := cfg.FailThreshold()
			require.True(t, ok)
			assert.Equal(t, diagnostic.Warning, threshold)

			assert.True(t, cfg.Ignored(diagnostic.CodeQuilismaDescending))
			assert.False(t, cfg.Ignored(diagnostic.CodeDuplicateHeader))
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/c.yaml", []byte("disable: []\n"), 0o644))

	cfg, err := config.Load(fs, "/c.yaml")
	require.NoError(t, err)
	assert.Equal(t, config.Default().FailOn, cfg.FailOn)
	assert.Equal(t, []string{".gabc"}, cfg.Extensions)
	assert.True(t, cfg.Matches("dir/Kyrie.GABC"))
	assert.False(t, cfg.Matches("dir/readme.md"))
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		content string
	}{
		{name: "unknown yaml field", path: "/c.yaml", content: "colour: red\n"},
		{name: "unknown toml field", path: "/c.toml", content: "colour = \"red\"\n"},
		{name: "bad hcl", path: "/c.hcl", content: "disable = [\n"},
		{name: "bad severity", path: "/c.yaml", content: "severity:\n  duplicate-header: loud\n"},
		{name: "bad fail_on", path: "/c.toml", content: "fail_on = \"sometimes\"\n"},
		{name: "bad pattern", path: "/c.yaml", content: "ignore: [\"[\"]\n"},
		{name: "unsupported format", path: "/c.json", content: "{}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, tt.path, []byte(tt.content), 0o644))
			_, err := config.Load(fs, tt.path)
			assert.Error(t, err)
		})
	}

	_, err := config.Load(afero.NewMemMapFs(), "/missing.hcl")
	assert.Error(t, err)
}

func TestFind(t *testing.T) {
	fs := afero.NewMemMapFs()
	_, ok := config.Find(fs, "/repo")
	assert.False(t, ok)

	require.NoError(t, afero.WriteFile(fs, "/repo/.gabclint.toml", []byte(""), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/repo/.gabclint.yaml", []byte(""), 0o644))

	path, ok := config.Find(fs, "/repo")
	require.True(t, ok)
	assert.Equal(t, "/repo/.gabclint.yaml", path)
}

func TestFailNever(t *testing.T) {
	cfg := config.Default()
	cfg.FailOn = config.FailNever
	require.NoError(t, cfg.Validate())
	_, ok := cfg.FailThreshold()
	assert.False(t, ok)
}
