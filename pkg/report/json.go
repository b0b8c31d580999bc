package report

import (
	"encoding/json"
	"io"

	"github.com/google/uuid"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/gabcls/pkg/diagnostic"
)

// JSONFormatter writes one JSON object per run. RunID lets consumers
// correlate output from repeated runs.
type JSONFormatter struct {
	RunID string
}

func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{RunID: uuid.NewString()}
}

type jsonFile struct {
	Path        string                  `json:"path"`
	Diagnostics []diagnostic.Diagnostic `json:"diagnostics"`
}

type jsonReport struct {
	RunID   string     `json:"runId"`
	Files   []jsonFile `json:"files"`
	Summary Summary    `json:"summary"`
}

func (f *JSONFormatter) Format(w io.Writer, files []File) error {
	out := jsonReport{RunID: f.RunID, Files: make([]jsonFile, 0, len(files)), Summary: Summarize(files)}
	for _, file := range files {
		diags := file.Diagnostics
		if diags == nil {
			diags = []diagnostic.Diagnostic{}
		}
		out.Files = append(out.Files, jsonFile{Path: file.Path, Diagnostics: diags})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return errors.Errorf("encoding report: %w", err)
	}
	return nil
}
