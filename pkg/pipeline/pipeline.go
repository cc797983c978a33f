// Package pipeline runs the layout → render pipeline for justify.
//
// The CLI and the HTTP server both go through a [Runner], so both get the
// same validation, caching and logging. Each stage can be run on its own:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//
//	// Layout only
//	lineup, err := runner.Layout(ctx, doc, pipeline.Options{Width: 960})
//
//	// Render an existing lineup
//	artifacts, err := runner.Render(ctx, lineup, pipeline.Options{Formats: []string{"svg"}})
//
//	// Both
//	result, err := runner.Execute(ctx, doc, opts)
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/justify/pkg/cache"
	"github.com/matzehuels/justify/pkg/errors"
	jio "github.com/matzehuels/justify/pkg/io"
	"github.com/matzehuels/justify/pkg/justify"
	"github.com/matzehuels/justify/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the container width used when neither the options nor
	// the document name one.
	DefaultWidth = 960.0

	// DefaultStyle is the default render style.
	DefaultStyle = render.StyleOutline

	// DefaultScale is the default PNG scale factor.
	DefaultScale = 1.0
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Width         float64           `json:"width,omitempty"`
	FallbackWidth float64           `json:"-"`
	Settings      justify.Settings  `json:"-"`
	Overrides     *jio.SettingsSpec `json:"settings,omitempty"`
	Refresh       bool              `json:"refresh,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Style   string   `json:"style,omitempty"`
	Labels  bool     `json:"labels,omitempty"`
	Scale   float64  `json:"scale,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// settingsSet tracks whether Settings was filled in by the caller or by
	// SetLayoutDefaults.
	settingsSet bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Lineup is the computed layout.
	Lineup jio.LineupDoc

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ItemCount  int
	RowCount   int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the lineup came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !render.ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !render.ValidStyles[style] {
		return errors.New(errors.ErrCodeInvalidStyle, "invalid style: %q (must be one of: outline, solid)", style)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// WithSettings returns a copy of o using s as the base settings.
func (o Options) WithSettings(s justify.Settings) Options {
	o.Settings = s
	o.settingsSet = true
	return o
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if !o.settingsSet {
		o.Settings = justify.DefaultSettings()
		o.settingsSet = true
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{render.FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}
	if o.Scale < 0 || o.Scale > 8 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be between 0 and 8, got %v", o.Scale)
	}
	return nil
}

// ResolveWidth returns the container width for doc: the options width, then
// the document width, then FallbackWidth, then DefaultWidth.
func (o *Options) ResolveWidth(doc *jio.Document) float64 {
	switch {
	case o.Width != 0:
		return o.Width
	case doc != nil && doc.Width != 0:
		return doc.Width
	case o.FallbackWidth != 0:
		return o.FallbackWidth
	}
	return DefaultWidth
}

// ResolveSettings layers the base settings, the document settings and the
// overrides, in that order.
func (o *Options) ResolveSettings(doc *jio.Document) justify.Settings {
	o.SetLayoutDefaults()
	s := o.Settings
	if doc != nil {
		s = doc.ResolveSettings(s)
	}
	return o.Overrides.Apply(s)
}

// LayoutKeyOpts returns cache key options for a layout at width with s.
func LayoutKeyOpts(width float64, s justify.Settings) cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Width:        width,
		MarginX:      s.MarginX,
		MarginY:      s.MarginY,
		MarginTop:    s.MarginTop,
		MarginBottom: s.MarginBottom,
		MarginLeft:   s.MarginLeft,
		MarginRight:  s.MarginRight,
		Accuracy:     s.Accuracy,
		Snap:         s.Snap,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
		Style:  o.Style,
		Labels: o.Labels,
		Scale:  o.Scale,
	}
}

// RenderOptions converts the options for the render package.
func (o *Options) RenderOptions() []render.Option {
	opts := []render.Option{render.WithStyle(o.Style), render.WithScale(o.Scale)}
	if o.Labels {
		opts = append(opts, render.WithLabels())
	}
	return opts
}
