package justify

// Partition returns the index of the first item of every row when items are
// filled greedily from left to right into rows at most maxWidth wide.
//
// A row's width is the sum of its item widths plus marginX between adjacent
// items. An item that would push the row past maxWidth starts the next row,
// unless it is KeepWithPrev, in which case it stays and the row overflows.
// An item that alone exceeds maxWidth gets a row to itself.
//
// The result is nil for no items and [0] when everything fits on one row.
func Partition(items []Item, maxWidth, marginX float64) []int {
	if len(items) == 0 {
		return nil
	}

	starts := []int{0}
	var rowWidth float64
	lone := false // current row holds a single item wider than maxWidth

	for i, it := range items {
		if i > 0 && !it.KeepWithPrev && (lone || rowWidth+it.Width > maxWidth) {
			starts = append(starts, i)
			rowWidth = 0
			lone = false
		}
		if i == starts[len(starts)-1] && it.Width > maxWidth {
			lone = true
		}
		rowWidth += it.Width + marginX
	}
	return starts
}

// Rows expands a partition over n items into half-open [start, end) ranges,
// one per row.
func Rows(partition []int, n int) [][2]int {
	rows := make([][2]int, len(partition))
	for r, start := range partition {
		end := n
		if r+1 < len(partition) {
			end = partition[r+1]
		}
		rows[r] = [2]int{start, end}
	}
	return rows
}

// Valid reports whether partition is a well-formed partition of items:
// it starts at 0, strictly increases, stays in range and never starts a
// row with a KeepWithPrev item other than the first.
func Valid(partition []int, items []Item) bool {
	if len(items) == 0 {
		return len(partition) == 0
	}
	if len(partition) == 0 || partition[0] != 0 {
		return false
	}
	for r := 1; r < len(partition); r++ {
		i := partition[r]
		if i <= partition[r-1] || i >= len(items) {
			return false
		}
		if items[i].KeepWithPrev {
			return false
		}
	}
	return true
}
