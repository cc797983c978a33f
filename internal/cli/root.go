package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/justify/internal/config"
	"github.com/matzehuels/justify/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
// The config file is loaded before any subcommand runs.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Justify lays out items in rows of equal width",
		Long: `Justify lays out a sequence of items of known size in horizontal rows
that all span the container width, like words in justified text.

Rows are chosen to use as few rows as possible while keeping them as balanced
as possible, and the gaps within each row are stretched so every row is
exactly as wide as the container.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.ConfigPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "config file (default: $JUSTIFY_CONFIG or <config dir>/justify/justify.toml)")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}
