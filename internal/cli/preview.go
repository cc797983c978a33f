package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	jio "github.com/matzehuels/justify/pkg/io"
)

// previewCommand creates the preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		flags    layoutFlags
		pxPerCol float64
	)

	cmd := &cobra.Command{
		Use:   "preview [items.json]",
		Short: "Preview a lineup live in the terminal",
		Long: `Preview a lineup live in the terminal.

The terminal width stands for the container width: each column is
--px-per-col pixels. Resizing the terminal re-lays out the items; redraws
that keep the same width reuse the current lineup. Press + and - to zoom.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := jio.ImportDocument(args[0])
			if err != nil {
				return err
			}
			// No logger: log lines would tear the alternate screen.
			opts := flags.options(cmd, c.Config)

			p := tea.NewProgram(NewPreviewModel(doc, opts, pxPerCol),
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()))
			final, err := p.Run()
			if err != nil {
				return err
			}
			if m, ok := final.(PreviewModel); ok {
				c.Logger.Debug("preview closed", "relayouts", m.Relayouts)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().Float64Var(&pxPerCol, "px-per-col", 8, "pixels per terminal column")
	// The terminal sets the width here.
	_ = cmd.Flags().MarkHidden("width")

	return cmd
}
