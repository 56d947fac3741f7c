package sched

// Range is an iteration range [Start, End) in the step direction: if
// Incr > 0, Start <= End; if Incr < 0, Start >= End.
type Range struct {
	Start int64
	End   int64
}

// Len returns the number of iterations covered by r for the given incr.
func (r Range) Len(incr int64) int64 {
	if incr == 0 {
		return 0
	}
	return (r.End - r.Start) / incr
}

// Empty reports whether r covers no iterations.
func (r Range) Empty() bool {
	return r.Start == r.End
}

// ceilDiv computes ceil(a/b) for b > 0 and a possibly negative, matching
// the signed ceiling division spec.md §4.5 calls out as a shared utility
// ("used consistently across static and guided"). It mirrors the C
// idiom `s = incr + (incr > 0 ? -1 : 1); n = (end - next + s) / incr`
// generalized to an arbitrary dividend/divisor pair with the same sign
// as incr.
func ceilDiv(a, b int64) int64 {
	if b == 0 {
		panic("sched: division by zero")
	}
	if a == 0 {
		return 0
	}
	if (a > 0) == (b > 0) {
		return (a + b - sign(b)) / b
	}
	return a / b
}

func sign(x int64) int64 {
	if x > 0 {
		return 1
	}
	return -1
}

// pastEnd reports whether cursor has advanced at or beyond end in the
// direction incr points, making "past-the-end" tests direction-agnostic
// the way spec.md §4.5 asks for.
func pastEnd(cursor, end, incr int64) bool {
	if incr > 0 {
		return cursor >= end
	}
	return cursor <= end
}

// clampToEnd clamps a tentative cursor so it never overshoots end in the
// step direction.
func clampToEnd(cursor, end, incr int64) int64 {
	if incr > 0 {
		if cursor > end {
			return end
		}
		return cursor
	}
	if cursor < end {
		return end
	}
	return cursor
}

// remaining returns the number of whole iterations between start and end
// stepping by incr; always >= 0.
func remaining(start, end, incr int64) int64 {
	n := ceilDiv(end-start, incr)
	if n < 0 {
		return 0
	}
	return n
}

// TotalIterations is remaining exported for the loop-entry collaborator
// (internal/team), which needs the total count before any WorkShare
// exists to compute the adaptive equal split and seed NbIterationsLeft.
func TotalIterations(start, end, incr int64) int64 {
	return remaining(start, end, incr)
}
