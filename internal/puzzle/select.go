package puzzle

import (
	"time"

	"github.com/TVLuke/kennzeichen-buch/internal/daily"
)

// Select returns n records chosen deterministically for date. The same
// salt and date always give the same puzzles in the same order. n larger
// than len(records) returns all records in shuffled order.
func Select(records []Record, n int, salt string, date time.Time) []Record {
	idx := daily.Pick(n, len(records), salt, date)
	out := make([]Record, len(idx))
	for i, j := range idx {
		out[i] = records[j]
	}
	return out
}
