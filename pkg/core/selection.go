package core

// SelectNth partially reorders items so that items[k] is the element that would
// be there after a full sort by key, everything before it has a key <= its key
// and everything after has a key >= its key. Expected linear time, including
// on long runs of equal keys.
func SelectNth[T any](items []T, k int, key func(T) float64) {
	lo, hi := 0, len(items)-1
	for lo < hi {
		lt, gt := partition(items, lo, hi, key)
		switch {
		case k < lt:
			hi = lt - 1
		case k > gt:
			lo = gt + 1
		default:
			return
		}
	}
}

// partition is a three-way partition around the median of three. On return
// items[lo:lt] < pivot, items[lt:gt+1] == pivot and items[gt+1:hi+1] > pivot.
func partition[T any](items []T, lo, hi int, key func(T) float64) (lt, gt int) {
	mid := lo + (hi-lo)/2
	a, b, c := key(items[lo]), key(items[mid]), key(items[hi])
	pivot := c
	switch {
	case (a <= b) == (b <= c):
		pivot = b
	case (b <= a) == (a <= c):
		pivot = a
	}

	lt, gt = lo, hi
	for i := lo; i <= gt; {
		v := key(items[i])
		switch {
		case v < pivot:
			items[i], items[lt] = items[lt], items[i]
			lt++
			i++
		case v > pivot:
			items[i], items[gt] = items[gt], items[i]
			gt--
		default:
			i++
		}
	}
	return lt, gt
}
