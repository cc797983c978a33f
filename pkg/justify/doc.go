// Package justify computes justified grid layouts.
//
// # Overview
//
// Given an ordered sequence of fixed-size items and a container width, the
// package partitions the items into rows and assigns every item an absolute
// (top, left) position so that each row, together with elastic horizontal
// gaps, spans the available width edge to edge. This is the layout used by
// justified text and photo galleries.
//
// The computation happens in three layers:
//
//   - [Partition]: greedy left-to-right row breaking at a given maximum width.
//   - [Optimize]: a binary search for a smaller "virtual" width that keeps the
//     minimal row count but spreads items more evenly across rows.
//   - [Build]: turns the optimized partition into pixel positions and the
//     total content height.
//
// # Grouped Items
//
// An [Item] with KeepWithPrev set never starts a row; it always stays on the
// row of the item before it, even when that overflows the row. The first
// item always starts row 0.
//
// # Oversized Items
//
// An item wider than the available width is placed alone on its own row and
// overflows the container. This is accepted, not corrected.
//
// # Usage
//
//	items := []justify.Item{
//	    {Width: 120, Height: 80},
//	    {Width: 90, Height: 60},
//	    {Width: 140, Height: 100},
//	}
//	l := justify.Build(items, 400, justify.DefaultSettings())
//	for i, p := range l.Positions {
//	    fmt.Println(i, p.Top, p.Left)
//	}
//	fmt.Println("height:", l.Height)
//
// Every function in this package is pure: inputs are never mutated and no
// state is kept between calls, so concurrent use needs no synchronization.
package justify
