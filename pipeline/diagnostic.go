package pipeline

// Severity classifies a diagnostic. Info and Warning are advisory; Error
// from inside a pass is advisory too; only the engine's own conflict
// detection changes what gets applied.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Diagnostic is a message emitted while formatting one file. Range is nil
// for file-level diagnostics. Source identifies the origin; the engine fills
// it with a pass identifier when the pass left it empty.
type Diagnostic struct {
	Range    *Span
	Message  string
	Severity Severity
	Source   string
}
