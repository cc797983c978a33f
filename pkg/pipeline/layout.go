package pipeline

import (
	"github.com/matzehuels/justify/pkg/errors"
	jio "github.com/matzehuels/justify/pkg/io"
	"github.com/matzehuels/justify/pkg/justify"
)

// ComputeLayout validates doc and builds its lineup. It does not touch the
// cache; see [Runner.LayoutWithCacheInfo].
func ComputeLayout(doc *jio.Document, opts Options) (jio.LineupDoc, error) {
	if doc == nil {
		return jio.LineupDoc{}, errors.New(errors.ErrCodeInvalidInput, "document is required")
	}
	width := opts.ResolveWidth(doc)
	settings := opts.ResolveSettings(doc)
	items := doc.LayoutItems()

	if err := errors.ValidateLayout(items, width, settings); err != nil {
		return jio.LineupDoc{}, err
	}

	l := justify.Build(items, width, settings)
	if !justify.Valid(l.Rows, items) {
		// Build only emits partitions that pass Valid; reaching this is a bug.
		return jio.LineupDoc{}, errors.New(errors.ErrCodeInternal, "invalid row partition %v", l.Rows)
	}

	opts.Logger.Debug("built lineup",
		"items", len(items),
		"width", width,
		"available", l.Width,
		"rows", len(l.Rows),
		"height", l.Height)

	return jio.NewLineupDoc(doc, l, width), nil
}
