package diagnostic

// Diagnostic codes. Rules are registered under the same name as their code.

// Parse codes.
const (
	CodeMissingSeparator     = "missing-separator"
	CodeUnterminatedGroup    = "unterminated-group"
	CodeUnmatchedParen       = "unmatched-paren"
	CodeUnexpectedCharacter  = "unexpected-character"
	CodeUnterminatedAttr     = "unterminated-attribute"
	CodeMultipleClefs        = "multiple-clefs"
	CodeMultipleBars         = "multiple-bars"
	CodeNABCUnknownGlyph     = "nabc-unknown-glyph"
	CodeNABCUnexpectedSymbol = "nabc-unexpected-character"
)

// Validation codes.
const (
	CodeMissingNameHeader        = "missing-name-header"
	CodeDuplicateHeader          = "duplicate-header"
	CodeUnrecognizedHeader       = "unrecognized-header"
	CodeLineBreakFirstSyllable   = "line-break-first-syllable"
	CodeClefChangeFirstSyllable  = "clef-change-first-syllable"
	CodeNABCWithoutLinesHeader   = "nabc-without-lines-header"
	CodeInvalidNABCLines         = "invalid-nabc-lines"
	CodeNABCAlternationMismatch  = "nabc-alternation-mismatch"
	CodeQuilismaDescending       = "quilisma-descending"
	CodeQuilismaPesBoundary      = "quilisma-pes-boundary"
	CodeVirgaStrataAscending     = "virga-strata-ascending"
	CodeInvalidStaffLines        = "invalid-staff-lines"
	CodeNABCFusionPitchBalance   = "nabc-fusion-pitch-balance"
	CodeNABCFusionModifierPlace  = "nabc-fusion-modifier-placement"
	CodeQuilismaFusionSuggestion = "quilisma-fusion-suggestion"
)

// Semantic analysis codes.
const (
	CodePesQuadratumIsolated    = "pes-quadratum-isolated"
	CodeQuilismaIsolated        = "quilisma-isolated"
	CodeOriscusScapusIsolated   = "oriscus-scapus-isolated"
	CodeNABCLiquescenceConflict = "nabc-liquescence-conflict"
	CodeNABCPitchOutOfRange     = "nabc-pitch-out-of-range"
)

// CodeInfo describes a known code and the phase that emits it.
type CodeInfo struct {
	Code  string
	Phase string
}

// AllCodes returns every known diagnostic code grouped by phase.
func AllCodes() []CodeInfo {
	return []CodeInfo{
		{Code: CodeMissingSeparator, Phase: "parser"},
		{Code: CodeUnterminatedGroup, Phase: "parser"},
		{Code: CodeUnmatchedParen, Phase: "parser"},
		{Code: CodeUnexpectedCharacter, Phase: "parser"},
		{Code: CodeUnterminatedAttr, Phase: "parser"},
		{Code: CodeMultipleClefs, Phase: "parser"},
		{Code: CodeMultipleBars, Phase: "parser"},
		{Code: CodeNABCUnknownGlyph, Phase: "parser"},
		{Code: CodeNABCUnexpectedSymbol, Phase: "parser"},

		{Code: CodeMissingNameHeader, Phase: "validation"},
		{Code: CodeDuplicateHeader, Phase: "validation"},
		{Code: CodeUnrecognizedHeader, Phase: "validation"},
		{Code: CodeLineBreakFirstSyllable, Phase: "validation"},
		{Code: CodeClefChangeFirstSyllable, Phase: "validation"},
		{Code: CodeNABCWithoutLinesHeader, Phase: "validation"},
		{Code: CodeInvalidNABCLines, Phase: "validation"},
		{Code: CodeNABCAlternationMismatch, Phase: "validation"},
		{Code: CodeQuilismaDescending, Phase: "validation"},
		{Code: CodeQuilismaPesBoundary, Phase: "validation"},
		{Code: CodeVirgaStrataAscending, Phase: "validation"},
		{Code: CodeInvalidStaffLines, Phase: "validation"},
		{Code: CodeNABCFusionPitchBalance, Phase: "validation"},
		{Code: CodeNABCFusionModifierPlace, Phase: "validation"},
		{Code: CodeQuilismaFusionSuggestion, Phase: "validation"},

		{Code: CodePesQuadratumIsolated, Phase: "semantics"},
		{Code: CodeQuilismaIsolated, Phase: "semantics"},
		{Code: CodeOriscusScapusIsolated, Phase: "semantics"},
		{Code: CodeNABCLiquescenceConflict, Phase: "semantics"},
		{Code: CodeNABCPitchOutOfRange, Phase: "semantics"},
	}
}
