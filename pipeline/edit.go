package pipeline

import "fmt"

// Span is a half-open byte interval [Start, End) into the current source.
type Span struct {
	Start uint
	End   uint
}

// Len returns the width of the span in bytes.
func (s Span) Len() uint {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("[%d, %d)", s.Start, s.End)
}

// Edit replaces the bytes in Range with Content. Passes may emit edits in
// any order; sorting and conflict detection are the engine's job.
type Edit struct {
	Range   Span
	Content string
}

// EditTarget is the intermediate form used by structured passes: a resolved
// range paired with the items extracted from it, before Build renders the
// replacement text.
type EditTarget[T any] struct {
	Range Span
	Items []T
}
