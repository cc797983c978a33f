package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/justify/internal/server"
	"github.com/matzehuels/justify/pkg/pipeline"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout HTTP API",
		Long: `Serve the layout HTTP API.

Stateless endpoints lay out and render documents posted to them; galleries
store item sets that can later be laid out at any width. The cache and
gallery backends are chosen in the [cache] and [store] sections of
justify.toml.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			st, err := c.newStore(ctx)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close()

			sc := c.Config.Server
			if cmd.Flags().Changed("addr") {
				sc.Addr = addr
			}
			defaults := pipeline.Options{FallbackWidth: c.Config.Layout.Width}.WithSettings(c.Config.Settings())

			logger.Info("starting server",
				"cache", c.Config.Cache.Backend,
				"store", c.Config.Store.Backend)

			srv := server.New(server.Config{
				Addr:         sc.Addr,
				ReadTimeout:  sc.ReadTimeout.Duration,
				WriteTimeout: sc.WriteTimeout.Duration,
				Defaults:     defaults,
			}, runner, st, logger)
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: [server] addr, then :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
