package attendance

import "time"

// Overlaps reports whether the stored range [rFrom, rTo] intersects the query
// range [qFrom, qTo]. Both bounds are inclusive at day granularity. The SQL
// filter in the request repositories expresses the same four clauses; keep the
// two in sync.
func Overlaps(qFrom, qTo, rFrom, rTo time.Time) bool {
	within := func(t, lo, hi time.Time) bool {
		return !t.Before(lo) && !t.After(hi)
	}

	return within(rFrom, qFrom, qTo) ||
		within(rTo, qFrom, qTo) ||
		(qFrom.After(rFrom) && qTo.Before(rTo)) ||
		(qFrom.Before(rFrom) && qTo.After(rTo))
}
