package debug_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/gabcls/pkg/debug"
)

func TestSplitFuncName(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		pkg      string
		function string
	}{
		{name: "module function", in: "github.com/walteh/gabcls/pkg/lint.Check", pkg: "pkg/lint", function: "Check"},
		{name: "method", in: "github.com/walteh/gabcls/pkg/validation.(*Registry).Validate", pkg: "pkg/validation", function: "(*Registry).Validate"},
		{name: "foreign", in: "github.com/spf13/cobra.(*Command).Execute", pkg: "github.com/spf13/cobra", function: "(*Command).Execute"},
		{name: "closure", in: "main.main.func1", pkg: "main", function: "main.func1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkg, fn := debug.SplitFuncName(tt.in)
			assert.Equal(t, tt.pkg, pkg)
			assert.Equal(t, tt.function, fn)
		})
	}
}

func TestFormatCaller(t *testing.T) {
	assert.Equal(t, "pkg/lint:lint.go:12", debug.FormatCaller("pkg/lint", "/src/gabcls/pkg/lint/lint.go", 12, false))
	assert.Equal(t, "lint.go", debug.FileNameOfPath("lint.go"))
}

func TestHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Hook(debug.CustomTimeHook{}).Hook(debug.CustomCallerHook{})
	logger.Info().Msg("hello")

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "hello", got["message"])
	assert.NotEmpty(t, got["time"])
	assert.Contains(t, got["caller"], ".go:")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := debug.NewLogger(&buf, zerolog.InfoLevel, false)

	logger.Debug().Msg("hidden")
	logger.Info().Str("file", "a.gabc").Msg("checked")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "checked")
	assert.Contains(t, out, "file=a.gabc")
}
