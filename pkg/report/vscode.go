package report

import (
	"io"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/gabcls/pkg/diagnostic"
)

// VSCodeFormatter writes one editor diagnostic array per file, each on its
// own line.
type VSCodeFormatter struct{}

func (f *VSCodeFormatter) Format(w io.Writer, files []File) error {
	inner := diagnostic.NewVSCodeFormatter()
	for _, file := range files {
		diags := file.Diagnostics
		if diags == nil {
			diags = []diagnostic.Diagnostic{}
		}
		out, err := inner.Format(diags)
		if err != nil {
			return errors.Errorf("formatting %s: %w", file.Path, err)
		}
		if _, err := w.Write(append(out, '\n')); err != nil {
			return errors.Errorf("writing %s: %w", file.Path, err)
		}
	}
	return nil
}
