package render

import (
	jio "github.com/matzehuels/justify/pkg/io"
)

// RenderJSON encodes the lineup document as indented JSON.
func RenderJSON(d jio.LineupDoc) ([]byte, error) {
	return jio.MarshalLineup(d)
}
