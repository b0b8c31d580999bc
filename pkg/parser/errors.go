package parser

import (
	"github.com/walteh/gabcls/pkg/ast"
	"github.com/walteh/gabcls/pkg/diagnostic"
)

func multipleClefs(clef, first *ast.Clef) diagnostic.Diagnostic {
	return diagnostic.Errorf(diagnostic.CodeMultipleClefs, clef.Range,
		"syllable already has clef %s", first).
		WithRelated("first clef of the syllable", first.Range)
}

func multipleBars(bar, first *ast.Bar) diagnostic.Diagnostic {
	return diagnostic.Errorf(diagnostic.CodeMultipleBars, bar.Range,
		"syllable already has bar %q", first.Symbol).
		WithRelated("first bar of the syllable", first.Range)
}
