// Package io provides JSON import and export for layout documents.
//
// # Input Format
//
// A document lists the items in display order, optionally with a container
// width and layout settings:
//
//	{
//	  "width": 960,
//	  "settings": {"margin_x": 12, "margin_y": 12, "accuracy": 10},
//	  "items": [
//	    {"id": "sunset.jpg", "width": 320, "height": 214},
//	    {"id": "caption", "width": 120, "height": 40, "break_before": false}
//	  ]
//	}
//
// Item fields:
//   - id: optional label, carried through to the output and renderers
//   - width, height: intrinsic size, must be positive
//   - break_before: defaults to true; false glues the item to its predecessor
//
// Settings fields not present keep their defaults (margin_x 20, margin_y 20,
// outer margins 0, accuracy 10, snap false).
//
// # Output Format
//
// [WriteLineup] writes the computed positions alongside the item sizes:
//
//	{
//	  "width": 960,
//	  "available": 960,
//	  "height": 254,
//	  "rows": [0],
//	  "items": [
//	    {"id": "sunset.jpg", "row": 0, "top": 0, "left": 0, "width": 320, "height": 214},
//	    ...
//	  ]
//	}
package io
