package render

import (
	"fmt"
	"unicode/utf8"

	jio "github.com/matzehuels/justify/pkg/io"
)

// Style names.
const (
	StyleOutline = "outline"
	StyleSolid   = "solid"
)

// ValidStyles is the set of supported styles.
var ValidStyles = map[string]bool{
	StyleOutline: true,
	StyleSolid:   true,
}

// rowPalette cycles per row in the solid style.
var rowPalette = []string{"#8ecae6", "#ffb703", "#90be6d", "#f28482", "#cdb4db", "#b7b7a4"}

const (
	backgroundColor = "#ffffff"
	strokeColor     = "#1d3557"
	textColor       = "#1d3557"
	strokeWidth     = 1.0
)

// Option configures a renderer.
type Option func(*options)

type options struct {
	style  string
	labels bool
	scale  float64
}

// WithStyle selects the drawing style. Unknown names fall back to outline.
func WithStyle(s string) Option { return func(o *options) { o.style = s } }

// WithLabels draws item ids centered in each item.
func WithLabels() Option { return func(o *options) { o.labels = true } }

// WithScale sets the PNG scale factor (default 1).
func WithScale(s float64) Option { return func(o *options) { o.scale = s } }

func newOptions(opts ...Option) options {
	o := options{style: StyleOutline, scale: 1}
	for _, opt := range opts {
		opt(&o)
	}
	if !ValidStyles[o.style] {
		o.style = StyleOutline
	}
	if o.scale <= 0 {
		o.scale = 1
	}
	return o
}

// fill returns the fill color of an item in the given row.
func (o options) fill(row int) string {
	if o.style == StyleSolid {
		return rowPalette[row%len(rowPalette)]
	}
	return "none"
}

// canvasSize returns the drawing size: the container width, widened when an
// oversized item overflows it.
func canvasSize(d jio.LineupDoc) (w, h float64) {
	w, h = d.Width, d.Height
	for _, it := range d.Items {
		w = max(w, it.Left+it.Width)
		h = max(h, it.Top+it.Height)
	}
	return w, h
}

const (
	fontHeightRatio = 0.5
	fontWidthRatio  = 0.85
	fontCharWidth   = 0.55
	fontSizeMin     = 6.0
	fontSizeMax     = 18.0
)

// fontSize picks a label size that fits inside the item box.
func fontSize(it jio.PlacedItem) float64 {
	n := max(1, utf8.RuneCountInString(it.ID))
	byHeight := it.Height * fontHeightRatio
	byWidth := (it.Width * fontWidthRatio) / (float64(n) * fontCharWidth)
	return max(fontSizeMin, min(fontSizeMax, min(byHeight, byWidth)))
}

// truncateLabel shortens a label that does not fit its item.
func truncateLabel(it jio.PlacedItem) string {
	charWidth := fontSize(it) * fontCharWidth
	maxChars := max(3, int(it.Width*fontWidthRatio/charWidth))
	r := []rune(it.ID)
	if len(r) <= maxChars {
		return it.ID
	}
	return string(r[:maxChars-2]) + ".."
}

// Render dispatches to the renderer for format.
func Render(format string, d jio.LineupDoc, opts ...Option) ([]byte, error) {
	switch format {
	case FormatSVG:
		return RenderSVG(d, opts...), nil
	case FormatPNG:
		return RenderPNG(d, opts...)
	case FormatJSON:
		return RenderJSON(d)
	}
	return nil, fmt.Errorf("unsupported format: %q", format)
}

// Format names.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
}
