package render

import (
	"bytes"
	"encoding/xml"
	"fmt"

	jio "github.com/matzehuels/justify/pkg/io"
)

// RenderSVG draws the lineup as an SVG document sized to the container.
func RenderSVG(d jio.LineupDoc, opts ...Option) []byte {
	o := newOptions(opts...)
	w, h := canvasSize(d)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
	fmt.Fprintf(&buf, `  <rect class="container" x="0" y="0" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
		w, h, backgroundColor)

	row := -1
	for _, it := range d.Items {
		if it.Row != row {
			if row >= 0 {
				buf.WriteString("  </g>\n")
			}
			row = it.Row
			fmt.Fprintf(&buf, `  <g class="row" data-row="%d">`+"\n", row)
		}
		renderItem(&buf, o, it)
	}
	if row >= 0 {
		buf.WriteString("  </g>\n")
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderItem(buf *bytes.Buffer, o options, it jio.PlacedItem) {
	fmt.Fprintf(buf, `    <rect id="item-%s" class="item" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" stroke="%s" stroke-width="%.1f"/>`+"\n",
		escapeXML(it.ID), it.Left, it.Top, it.Width, it.Height, o.fill(it.Row), strokeColor, strokeWidth)

	if !o.labels {
		return
	}
	fmt.Fprintf(buf, `    <text class="label" x="%.2f" y="%.2f" font-family="sans-serif" font-size="%.1f" fill="%s" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
		it.Left+it.Width/2, it.Top+it.Height/2, fontSize(it), textColor, escapeXML(truncateLabel(it)))
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
