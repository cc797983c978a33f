package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/justify/internal/config"
	"github.com/matzehuels/justify/pkg/buildinfo"
	"github.com/matzehuels/justify/pkg/cache"
	jio "github.com/matzehuels/justify/pkg/io"
	"github.com/matzehuels/justify/pkg/pipeline"
	"github.com/matzehuels/justify/pkg/render"
	"github.com/matzehuels/justify/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "justify"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger     *log.Logger
	Config     config.Config
	ConfigPath string
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(cc, versionKeyer(), c.Logger)
	runner.TTL = c.Config.Cache.TTL.Duration
	return runner, nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.Config.Cache.Backend {
	case config.CacheNone:
		return cache.NewNullCache(), nil
	case config.CacheRedis:
		rc := c.Config.Cache.Redis
		prefix := rc.Prefix
		if prefix != "" && !strings.HasSuffix(prefix, ":") {
			prefix += ":"
		}
		rcache, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     rc.Addr,
			Password: rc.Password,
			DB:       rc.DB,
			Prefix:   prefix,
		})
		if err != nil {
			return nil, err
		}
		return rcache, nil
	}

	dir := c.Config.Cache.Dir
	if dir == "" {
		d, err := cacheDir()
		if err != nil {
			c.Logger.Warn("no cache directory, caching disabled", "error", err)
			return cache.NewNullCache(), nil
		}
		dir = d
	}
	return cache.NewFileCache(dir)
}

// versionKeyer scopes cache keys to the running version so entries written by
// another release are never reused.
func versionKeyer() cache.Keyer {
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.Version+":")
}

// newStore opens the configured gallery store.
func (c *CLI) newStore(ctx context.Context) (store.Store, error) {
	if c.Config.Store.Backend == config.StoreMongo {
		m := c.Config.Store.Mongo
		c.Logger.Debug("connecting to mongo", "database", m.Database)
		ms, err := store.NewMongoStore(ctx, store.MongoConfig{
			URI:        m.URI,
			Database:   m.Database,
			Collection: m.Collection,
		})
		if err != nil {
			return nil, err
		}
		return ms, nil
	}
	return store.NewMemoryStore(), nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/justify/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// outputPath derives an output file name from the input: items.json with
// suffix ".lineup.json" becomes items.lineup.json.
func outputPath(input, suffix string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + suffix
}

// =============================================================================
// Options Helpers
// =============================================================================

// layoutFlags binds the layout settings to command flags. Only flags the
// user actually set override the document and config values.
type layoutFlags struct {
	width   float64
	marginX float64
	marginY float64
	top     float64
	bottom  float64
	left    float64
	right   float64
	accur   int
	snap    bool
	refresh bool
	noCache bool
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.Float64VarP(&f.width, "width", "w", 0, "container width (default: document, config, then 960)")
	fs.Float64Var(&f.marginX, "margin-x", 0, "horizontal gap between items")
	fs.Float64Var(&f.marginY, "margin-y", 0, "vertical gap between rows")
	fs.Float64Var(&f.top, "margin-top", 0, "space above the first row")
	fs.Float64Var(&f.bottom, "margin-bottom", 0, "space below the last row")
	fs.Float64Var(&f.left, "margin-left", 0, "space left of each row")
	fs.Float64Var(&f.right, "margin-right", 0, "space right of each row")
	fs.IntVar(&f.accur, "accuracy", 0, "binary search steps for row balancing (0 disables)")
	fs.BoolVar(&f.snap, "snap", false, "round item positions down to whole pixels")
	fs.BoolVar(&f.refresh, "refresh", false, "recompute even if cached")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable caching")
}

// options builds pipeline options from config and changed flags. The config
// width only applies to documents without a width of their own.
func (f *layoutFlags) options(cmd *cobra.Command, cfg config.Config) pipeline.Options {
	opts := pipeline.Options{Refresh: f.refresh}.WithSettings(cfg.Settings())

	opts.FallbackWidth = cfg.Layout.Width

	fs := cmd.Flags()
	if fs.Changed("width") {
		opts.Width = f.width
	}

	overrides := &jio.SettingsSpec{}
	for name, dst := range map[string]**float64{
		"margin-x":      &overrides.MarginX,
		"margin-y":      &overrides.MarginY,
		"margin-top":    &overrides.MarginTop,
		"margin-bottom": &overrides.MarginBottom,
		"margin-left":   &overrides.MarginLeft,
		"margin-right":  &overrides.MarginRight,
	} {
		if fs.Changed(name) {
			v, _ := fs.GetFloat64(name)
			*dst = &v
		}
	}
	if fs.Changed("accuracy") {
		overrides.Accuracy = &f.accur
	}
	if fs.Changed("snap") {
		overrides.Snap = &f.snap
	}
	opts.Overrides = overrides
	return opts
}

// renderFlags binds the render options to command flags.
type renderFlags struct {
	formats string
	style   string
	labels  bool
	scale   float64
}

func (f *renderFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, json (comma-separated)")
	fs.StringVar(&f.style, "style", pipeline.DefaultStyle, "visual style: outline (default), solid")
	fs.BoolVar(&f.labels, "labels", false, "draw item ids")
	fs.Float64Var(&f.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
}

// apply copies the render flags onto opts and validates them.
func (f *renderFlags) apply(opts *pipeline.Options) error {
	opts.Formats = parseFormats(f.formats)
	opts.Style = f.style
	opts.Labels = f.labels
	opts.Scale = f.scale
	return opts.ValidateForRender()
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{render.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
