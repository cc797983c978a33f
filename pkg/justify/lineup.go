package justify

import "math"

// Build lays out items inside a container of the given width.
//
// The available width is containerWidth minus the left and right margins.
// Rows come from [Optimize]; each row with more than one item is stretched
// so that its items and gaps span the available width exactly. A row with a
// single item is not stretched and sits at the left margin. Items are
// centered vertically within their row.
//
// The returned height covers all rows, the gaps between them and the top
// and bottom margins. For no items it is just the top and bottom margins.
func Build(items []Item, containerWidth float64, s Settings) Lineup {
	available := containerWidth - s.MarginLeft - s.MarginRight
	rows := Optimize(items, available, s.MarginX, s.Accuracy)

	positions := make([]Position, len(items))
	var y float64

	for _, r := range Rows(rows, len(items)) {
		row := items[r[0]:r[1]]

		var rowHeight, natural float64
		for _, it := range row {
			rowHeight = max(rowHeight, it.Height)
			natural += it.Width
		}

		var gap float64
		if n := len(row); n > 1 {
			gap = (available - natural) / float64(n-1)
		}

		left := s.MarginLeft
		for k, it := range row {
			x := left
			if s.Snap {
				x = math.Floor(x)
			}
			positions[r[0]+k] = Position{
				Top:  s.MarginTop + y + math.Floor((rowHeight-it.Height)/2),
				Left: x,
			}
			left += it.Width + gap
		}

		y += rowHeight + s.MarginY
	}

	if len(rows) > 0 {
		y -= s.MarginY
	}

	return Lineup{
		Positions: positions,
		Height:    y + s.MarginTop + s.MarginBottom,
		Rows:      rows,
		Width:     available,
	}
}
