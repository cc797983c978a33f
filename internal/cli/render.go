package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	jio "github.com/matzehuels/justify/pkg/io"
	"github.com/matzehuels/justify/pkg/pipeline"
)

// renderCommand creates the render command: layout and draw in one step.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output string
		lf     layoutFlags
		rf     renderFlags
	)

	cmd := &cobra.Command{
		Use:   "render [items.json]",
		Short: "Lay out an items document and draw it",
		Long: `Lay out an items document and draw it as SVG, PNG or JSON.

This is 'layout' followed by 'visualize'. With a single format, -o names the
output file; with several, -o is the base path and each format adds its own
extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := jio.ImportDocument(args[0])
			if err != nil {
				return err
			}
			opts := lf.options(cmd, c.Config)
			if err := rf.apply(&opts); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], doc, opts, output, lf.noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	lf.register(cmd)
	rf.register(cmd)

	return cmd
}

// runRender runs the full pipeline and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, input string, doc *jio.Document, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Rendering lineup...")
	spinner.Start()

	result, err := runner.Execute(ctx, doc, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		lineup:    result.Lineup,
		cacheHit:  result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit,
	})
}

// artifactWriteParams describes rendered artifacts to write to disk.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	lineup    jio.LineupDoc
	cacheHit  bool
}

// writeArtifacts writes one file per format and prints a summary.
func writeArtifacts(p artifactWriteParams) error {
	paths := make([]string, 0, len(p.formats))
	for _, format := range p.formats {
		path := artifactPath(p.input, p.output, format, len(p.formats))
		if err := os.WriteFile(path, p.artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}

	printSuccess("Render complete")
	for _, path := range paths {
		printFile(path)
	}
	printStats(len(p.lineup.Items), len(p.lineup.Rows), p.lineup.Height, p.cacheHit)
	return nil
}

// artifactPath returns the output path for one format. A single format
// writes to output verbatim; several formats share output as a base name.
func artifactPath(input, output, format string, count int) string {
	switch {
	case output == "":
		return outputPath(input, "."+format)
	case count == 1:
		return output
	}
	return outputPath(output, "."+format)
}
