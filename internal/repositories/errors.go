package repositories

import "errors"

// ErrNotFound is returned by any repository when the requested record
// does not exist in the store.
var ErrNotFound = errors.New("record not found")

// pageBounds clamps a skip/limit window to the collection size. Negative
// values are treated as zero and the window is truncated at the end, which
// is the total-function equivalent of forgiving slice semantics.
func pageBounds(skip, limit, total int) (lo, hi int) {
	if skip < 0 {
		skip = 0
	}
	if limit < 0 {
		limit = 0
	}
	if skip > total {
		skip = total
	}
	if limit > total-skip {
		limit = total - skip
	}
	return skip, skip + limit
}
