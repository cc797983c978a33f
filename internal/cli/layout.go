package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	jio "github.com/matzehuels/justify/pkg/io"
	"github.com/matzehuels/justify/pkg/pipeline"
)

// layoutCommand creates the layout command for computing lineups.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		flags  layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [items.json]",
		Short: "Compute a justified lineup from an items document",
		Long: `Compute a justified lineup from an items document.

The input is either a JSON array of items ({"id", "width", "height",
"break_before"}) or a document object with "items" and optional "width" and
"settings". The output is a lineup.json file with the position of every item,
which the 'visualize' command can render.

Settings are layered: library defaults, the [layout] section of justify.toml,
the document's settings, then any flags given on the command line.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := jio.ImportDocument(args[0])
			if err != nil {
				return err
			}
			opts := flags.options(cmd, c.Config)
			return c.runLayout(cmd.Context(), args[0], doc, opts, output, flags.noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.lineup.json)")
	flags.register(cmd)

	return cmd
}

// runLayout computes the lineup and writes it.
func (c *CLI) runLayout(ctx context.Context, input string, doc *jio.Document, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	prog := newProgress(c.Logger)

	lineup, cacheHit, err := runner.LayoutWithCacheInfo(ctx, doc, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}
	prog.done("Computed lineup")

	if output == "" {
		output = outputPath(input, ".lineup.json")
	}
	if err := jio.ExportLineup(lineup, output); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Layout complete")
	printFile(output)
	printStats(len(lineup.Items), len(lineup.Rows), lineup.Height, cacheHit)
	printNewline()
	printNextStep("Render", appName+" visualize "+output)

	return nil
}
