package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/justify/pkg/cache"
	jio "github.com/matzehuels/justify/pkg/io"
	"github.com/matzehuels/justify/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides cache.TTLLayout and cache.TTLArtifact when non-zero.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs layout then render with caching.
func (r *Runner) Execute(ctx context.Context, doc *jio.Document, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	layoutStart := time.Now()
	lineup, layoutHit, err := r.LayoutWithCacheInfo(ctx, doc, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Lineup = lineup
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.ItemCount = len(lineup.Items)
	result.Stats.RowCount = len(lineup.Rows)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"items", result.Stats.ItemCount,
		"rows", result.Stats.RowCount,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, lineup, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo computes the lineup of doc with caching and returns
// cache hit info. Cache errors are logged and treated as misses.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, doc *jio.Document, opts Options) (lineup jio.LineupDoc, hit bool, err error) {
	r.applyLogger(&opts)
	if doc == nil {
		lineup, err = ComputeLayout(doc, opts)
		return lineup, false, err
	}

	hooks := observability.Layout()
	start := time.Now()
	hooks.OnLayoutStart(ctx, len(doc.Items), opts.ResolveWidth(doc))
	defer func() {
		hooks.OnLayoutComplete(ctx, len(lineup.Rows), time.Since(start), err)
	}()

	itemsHash, hashErr := cache.HashJSON(doc.Items)
	if hashErr != nil {
		lineup, err = ComputeLayout(doc, opts)
		return lineup, false, err
	}
	cacheKey := r.Keyer.LayoutKey(itemsHash, LayoutKeyOpts(opts.ResolveWidth(doc), opts.ResolveSettings(doc)))

	if !opts.Refresh {
		if cached, ok := r.getLineup(ctx, cacheKey); ok {
			return cached, true, nil
		}
	}

	lineup, err = ComputeLayout(doc, opts)
	if err != nil {
		return jio.LineupDoc{}, false, err
	}

	if data, mErr := jio.MarshalLineup(lineup); mErr == nil {
		r.set(ctx, "layout", cacheKey, data, r.ttl(cache.TTLLayout))
	}
	return lineup, false, nil
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, doc *jio.Document, opts Options) (jio.LineupDoc, error) {
	lineup, _, err := r.LayoutWithCacheInfo(ctx, doc, opts)
	return lineup, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit
// info. The artifacts are keyed by a hash of the lineup itself, so a lineup
// loaded from disk hits the same entries as a fresh one.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, lineup jio.LineupDoc, opts Options) (artifacts map[string][]byte, hit bool, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	hooks := observability.Layout()
	start := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)
	defer func() {
		hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	}()

	lineupData, err := jio.MarshalLineup(lineup)
	if err != nil {
		return nil, false, fmt.Errorf("serialize lineup for cache key: %w", err)
	}
	lineupHash := cache.Hash(lineupData)

	artifacts = make(map[string][]byte, len(opts.Formats))
	if !opts.Refresh {
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(lineupHash, opts.ArtifactKeyOpts(format))
			data, ok := r.get(ctx, "artifact", key)
			if !ok {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	rendered, err := RenderFromLineup(lineup, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(lineupHash, opts.ArtifactKeyOpts(format))
		r.set(ctx, "artifact", key, data, r.ttl(cache.TTLArtifact))
	}
	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Render(ctx context.Context, lineup jio.LineupDoc, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, lineup, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) getLineup(ctx context.Context, key string) (jio.LineupDoc, bool) {
	data, ok := r.get(ctx, "layout", key)
	if !ok {
		return jio.LineupDoc{}, false
	}
	lineup, err := jio.UnmarshalLineup(data)
	if err != nil {
		r.Logger.Warn("discarding corrupt cache entry", "key", key, "error", err)
		return jio.LineupDoc{}, false
	}
	return lineup, true
}

func (r *Runner) get(ctx context.Context, keyType, key string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key", key, "error", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return data, true
}

func (r *Runner) set(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
