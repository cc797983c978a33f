package render

import (
	"bytes"
	"fmt"
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/justify/pkg/errors"
	jio "github.com/matzehuels/justify/pkg/io"
)

// Raster limits. A canvas past either one is rejected before allocation.
const (
	MaxCanvasSide   = 16384
	MaxCanvasPixels = 32 << 20
)

// RenderPNG rasterizes the lineup. The image is the container size times
// the scale set with [WithScale]. Canvases beyond [MaxCanvasSide] or
// [MaxCanvasPixels] fail with INVALID_INPUT.
func RenderPNG(d jio.LineupDoc, opts ...Option) ([]byte, error) {
	o := newOptions(opts...)
	w, h := canvasSize(d)

	fw, fh := math.Ceil(w*o.scale), math.Ceil(h*o.scale)
	if !(fw >= 1 && fh >= 1) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "empty png canvas %gx%g", fw, fh)
	}
	if fw > MaxCanvasSide || fh > MaxCanvasSide || fw*fh > MaxCanvasPixels {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"png canvas %gx%g too large (max %d per side, %d pixels); lower the width or scale", fw, fh, MaxCanvasSide, MaxCanvasPixels)
	}

	dc := gg.NewContext(int(fw), int(fh))
	dc.Scale(o.scale, o.scale)
	dc.SetHexColor(backgroundColor)
	dc.Clear()

	for _, it := range d.Items {
		dc.DrawRectangle(it.Left, it.Top, it.Width, it.Height)
		if fill := o.fill(it.Row); fill != "none" {
			dc.SetHexColor(fill)
			dc.FillPreserve()
		}
		dc.SetHexColor(strokeColor)
		dc.SetLineWidth(strokeWidth)
		dc.Stroke()

		if o.labels {
			dc.SetHexColor(textColor)
			dc.DrawStringAnchored(truncateLabel(it), it.Left+it.Width/2, it.Top+it.Height/2, 0.5, 0.5)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
