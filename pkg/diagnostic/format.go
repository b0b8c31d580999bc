package diagnostic

import (
	"encoding/json"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/gabcls/pkg/position"
)

// Formatter formats diagnostics into different output formats
type Formatter interface {
	// Format formats diagnostics into a specific output format
	Format(diagnostics []Diagnostic) ([]byte, error)
}

// VSCodeFormatter formats diagnostics into VSCode-compatible format
type VSCodeFormatter struct{}

// NewVSCodeFormatter creates a new VSCodeFormatter
func NewVSCodeFormatter() *VSCodeFormatter {
	return &VSCodeFormatter{}
}

type vscodeRelated struct {
	Message string         `json:"message"`
	Range   position.Range `json:"range"`
}

type vscodeDiagnostic struct {
	Severity           int             `json:"severity"`
	Message            string          `json:"message"`
	Range              position.Range  `json:"range"`
	Code               string          `json:"code,omitempty"`
	Source             string          `json:"source"`
	RelatedInformation []vscodeRelated `json:"relatedInformation,omitempty"`
}

// Format implements Formatter. Ranges are already zero-based so they pass
// through unchanged.
func (f *VSCodeFormatter) Format(diagnostics []Diagnostic) ([]byte, error) {
	if diagnostics == nil {
		return nil, errors.Errorf("diagnostics is nil")
	}

	result := make([]vscodeDiagnostic, 0, len(diagnostics))
	for _, d := range diagnostics {
		vd := vscodeDiagnostic{
			Severity: d.Severity.LSP(),
			Message:  d.Message,
			Range:    d.Range,
			Code:     d.Code,
			Source:   "gabc",
		}
		for _, r := range d.Related {
			vd.RelatedInformation = append(vd.RelatedInformation, vscodeRelated(r))
		}
		result = append(result, vd)
	}

	out, err := json.Marshal(result)
	if err != nil {
		return nil, errors.Errorf("marshalling diagnostics: %w", err)
	}
	return out, nil
}
