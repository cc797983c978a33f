package pipeline

import (
	"fmt"

	jio "github.com/matzehuels/justify/pkg/io"
	"github.com/matzehuels/justify/pkg/render"
)

// RenderFromLineup generates output artifacts in the requested formats.
func RenderFromLineup(l jio.LineupDoc, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	renderOpts := opts.RenderOptions()
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := render.Render(format, l, renderOpts...)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
