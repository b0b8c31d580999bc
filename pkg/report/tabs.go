package report

import (
	"io"

	"github.com/editorconfig/editorconfig-core-go/v2"
)

const DefaultTabWidth = 8

// EditorConfigTabWidth resolves the tab width for path from the
// .editorconfig files above it.
func EditorConfigTabWidth(path string) int {
	def, err := editorconfig.GetDefinitionForFilename(path)
	if err != nil {
		return DefaultTabWidth
	}
	return tabWidthOf(def)
}

// TabWidthFrom resolves the tab width for path from a single editorconfig
// document.
func TabWidthFrom(r io.Reader, path string) int {
	ec, err := editorconfig.Parse(r)
	if err != nil {
		return DefaultTabWidth
	}
	def, err := ec.GetDefinitionForFilename(path)
	if err != nil {
		return DefaultTabWidth
	}
	return tabWidthOf(def)
}

func tabWidthOf(def *editorconfig.Definition) int {
	if def == nil || def.TabWidth <= 0 {
		return DefaultTabWidth
	}
	return def.TabWidth
}
