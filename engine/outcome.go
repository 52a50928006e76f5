package engine

import "github.com/corey/fmtkit/pipeline"

// Outcome is the per-file result of one engine run. Path is empty for
// unnamed buffers. Diff is a unified diff from the original to the final
// source, empty when the file is unchanged.
type Outcome struct {
	Path        string
	Changed     bool
	Diagnostics []pipeline.Diagnostic
	Diff        string
}

// Errors returns the error-severity diagnostics collected for this file.
func (o *Outcome) Errors() []pipeline.Diagnostic {
	var errs []pipeline.Diagnostic
	for _, d := range o.Diagnostics {
		if d.Severity == pipeline.SeverityError {
			errs = append(errs, d)
		}
	}
	return errs
}
