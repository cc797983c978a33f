package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/justify/pkg/justify"
)

// PlacedItem is one item in the exported lineup.
type PlacedItem struct {
	ID     string  `json:"id"`
	Row    int     `json:"row"`
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// LineupDoc is the JSON form of a computed lineup.
type LineupDoc struct {
	Width     float64      `json:"width"`
	Available float64      `json:"available"`
	Height    float64      `json:"height"`
	Rows      []int        `json:"rows"`
	Items     []PlacedItem `json:"items"`
}

// NewLineupDoc pairs the document's items with the lineup positions.
// containerWidth is the width the lineup was built for.
func NewLineupDoc(doc *Document, l justify.Lineup, containerWidth float64) LineupDoc {
	out := LineupDoc{
		Width:     containerWidth,
		Available: l.Width,
		Height:    l.Height,
		Rows:      l.Rows,
		Items:     make([]PlacedItem, len(l.Positions)),
	}
	if out.Rows == nil {
		out.Rows = []int{}
	}

	ids := doc.IDs()
	for r, span := range justify.Rows(l.Rows, len(l.Positions)) {
		for i := span[0]; i < span[1]; i++ {
			p := l.Positions[i]
			out.Items[i] = PlacedItem{
				ID:     ids[i],
				Row:    r,
				Top:    p.Top,
				Left:   p.Left,
				Width:  doc.Items[i].Width,
				Height: doc.Items[i].Height,
			}
		}
	}
	return out
}

// Lineup converts the document back to a [justify.Lineup].
func (d LineupDoc) Lineup() justify.Lineup {
	l := justify.Lineup{
		Positions: make([]justify.Position, len(d.Items)),
		Height:    d.Height,
		Rows:      d.Rows,
		Width:     d.Available,
	}
	for i, it := range d.Items {
		l.Positions[i] = justify.Position{Top: it.Top, Left: it.Left}
	}
	return l
}

// MarshalLineup encodes a lineup document as indented JSON.
func MarshalLineup(d LineupDoc) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteLineup(&buf, d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalLineup decodes a lineup document.
func UnmarshalLineup(data []byte) (LineupDoc, error) {
	var d LineupDoc
	if err := json.Unmarshal(data, &d); err != nil {
		return LineupDoc{}, fmt.Errorf("decode lineup: %w", err)
	}
	return d, nil
}

// WriteLineup encodes a lineup document as JSON to w.
func WriteLineup(w io.Writer, d LineupDoc) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportLineup writes a lineup document to a JSON file at path.
func ExportLineup(d LineupDoc, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteLineup(f, d)
}
