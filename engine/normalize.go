package engine

import (
	"fmt"
	"sort"

	"github.com/corey/fmtkit/pipeline"
)

// editConflict describes two edits from one pass whose ranges overlap.
type editConflict struct {
	a, b pipeline.Span
}

func (c *editConflict) Error() string {
	return fmt.Sprintf("conflicting edits: %s overlaps %s", c.a, c.b)
}

// normalize sorts one pass's edits ascending by start offset and rejects
// overlapping ranges. Each pass sees a single fixed snapshot of the source,
// so overlap within one pass is almost certainly a bug in the pass.
//
// Zero-width edits (pure insertions) never conflict with a neighbor at the
// same offset: their end is not greater than the next start. The sort is
// stable, so insertions at one offset keep their emission order.
func normalize(edits []pipeline.Edit) ([]pipeline.Edit, *editConflict) {
	sorted := make([]pipeline.Edit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Range.Start < sorted[j].Range.Start
	})

	for i := 0; i+1 < len(sorted); i++ {
		if sorted[i].Range.End > sorted[i+1].Range.Start {
			return nil, &editConflict{a: sorted[i].Range, b: sorted[i+1].Range}
		}
	}
	return sorted, nil
}
