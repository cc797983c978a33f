package justify

// Item is a rectangle to be placed in the grid.
type Item struct {
	Width  float64
	Height float64

	// KeepWithPrev forbids the item from starting a new row. It is the
	// inverse of the original breakBefore flag, so the zero value allows
	// a break.
	KeepWithPrev bool
}

// Settings controls spacing and the optimizer's search depth.
type Settings struct {
	MarginX float64 // gap between items in a row before stretching
	MarginY float64 // gap between rows

	MarginTop    float64
	MarginBottom float64
	MarginLeft   float64
	MarginRight  float64

	// Accuracy is the number of binary search steps in [Optimize].
	Accuracy int

	// Snap floors every left offset to a whole unit.
	Snap bool
}

// Default setting values.
const (
	DefaultMarginX  = 20.0
	DefaultMarginY  = 20.0
	DefaultAccuracy = 10
)

// DefaultSettings returns the settings used when the caller does not
// override anything: 20 units between items and rows, no outer padding,
// ten refinement steps.
func DefaultSettings() Settings {
	return Settings{
		MarginX:  DefaultMarginX,
		MarginY:  DefaultMarginY,
		Accuracy: DefaultAccuracy,
	}
}

// Position is the top-left corner of an item relative to the container.
type Position struct {
	Top  float64
	Left float64
}

// Lineup is the result of [Build].
type Lineup struct {
	// Positions holds one entry per input item, in input order.
	Positions []Position

	// Height is the total content height including outer margins.
	Height float64

	// Rows is the partition the positions were derived from.
	Rows []int

	// Width is the available width the rows were stretched to.
	Width float64
}

// RowCount returns the number of rows in the lineup.
func (l Lineup) RowCount() int { return len(l.Rows) }
