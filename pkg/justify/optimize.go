package justify

// Optimize searches for a virtual row width no larger than maxWidth that
// yields the same number of rows as [Partition] at maxWidth, and returns the
// partition at the smallest such width found.
//
// Greedy filling at the real width crams the early rows and leaves the last
// one sparse. Squeezing the width redistributes items more evenly while the
// row count stays minimal; [Build] later stretches every row back to the
// real width.
//
// The search halves its step accuracy times, so the width found is within
// maxWidth/2^accuracy of the smallest one. With accuracy <= 0 the reference
// partition at maxWidth is returned unchanged.
func Optimize(items []Item, maxWidth, marginX float64, accuracy int) []int {
	best := Partition(items, maxWidth, marginX)
	bestWidth := maxWidth

	width, step := maxWidth, maxWidth
	current := best
	for range max(accuracy, 0) {
		step /= 2
		if len(current) > len(best) {
			width += step
		} else {
			if width < bestWidth {
				best, bestWidth = current, width
			}
			width -= step
		}
		current = Partition(items, width, marginX)
	}
	return best
}
