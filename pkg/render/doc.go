// Package render draws computed lineups.
//
// Renderers take a [jio.LineupDoc], the serialized form of a lineup, so that
// a layout loaded from the cache or from disk renders exactly like a fresh
// one. Three formats are supported:
//
//   - SVG ([RenderSVG]): one <rect> per item, grouped per row
//   - PNG ([RenderPNG]): rasterized with github.com/fogleman/gg
//   - JSON ([RenderJSON]): the lineup document itself
//
// Two styles are available: [StyleOutline] draws item frames only,
// [StyleSolid] fills items with a per-row color.
//
//	svg := render.RenderSVG(doc, render.WithStyle(render.StyleSolid), render.WithLabels())
//	png, err := render.RenderPNG(doc, render.WithScale(2))
package render
