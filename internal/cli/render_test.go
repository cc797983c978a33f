package cli

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	"github.com/matzehuels/justify/internal/config"
	jio "github.com/matzehuels/justify/pkg/io"
	"github.com/matzehuels/justify/pkg/justify"
	"github.com/matzehuels/justify/pkg/pipeline"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "png", []string{"png"}},
		{"multiple formats", "svg,png,json", []string{"svg", "png", "json"}},
		{"spaces trimmed", "svg, png", []string{"svg", "png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, parseFormats(tt.input)); diff != "" {
				t.Errorf("parseFormats(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestArtifactPath(t *testing.T) {
	tests := []struct {
		input, output, format string
		count                 int
		want                  string
	}{
		{"items.json", "", "svg", 1, "items.svg"},
		{"items.json", "", "png", 2, "items.png"},
		{"items.json", "out/grid.svg", "svg", 1, "out/grid.svg"},
		{"items.json", "out/grid", "png", 2, "out/grid.png"},
		{"items.json", "out/grid.svg", "png", 2, "out/grid.png"},
	}
	for _, tt := range tests {
		if got := artifactPath(tt.input, tt.output, tt.format, tt.count); got != tt.want {
			t.Errorf("artifactPath(%q, %q, %q, %d) = %q, want %q",
				tt.input, tt.output, tt.format, tt.count, got, tt.want)
		}
	}
}

func newFlagCommand(args ...string) (*cobra.Command, *layoutFlags) {
	var f layoutFlags
	cmd := &cobra.Command{Use: "test"}
	f.register(cmd)
	_ = cmd.Flags().Parse(args)
	return cmd, &f
}

func TestLayoutFlagsOnlyChangedOverride(t *testing.T) {
	docMargin := 5.0
	doc := &jio.Document{Settings: &jio.SettingsSpec{MarginX: &docMargin}}

	cmd, f := newFlagCommand("--margin-y", "3", "--snap")
	opts := f.options(cmd, config.Default())
	s := opts.ResolveSettings(doc)

	if s.MarginX != 5 {
		t.Errorf("MarginX = %v, want document value 5", s.MarginX)
	}
	if s.MarginY != 3 {
		t.Errorf("MarginY = %v, want flag value 3", s.MarginY)
	}
	if !s.Snap {
		t.Error("Snap should be set by flag")
	}
	if s.Accuracy != justify.DefaultAccuracy {
		t.Errorf("Accuracy = %v, want default %v", s.Accuracy, justify.DefaultAccuracy)
	}
}

func TestLayoutFlagsWidthPrecedence(t *testing.T) {
	cfg := config.Default()
	cfg.Layout.Width = 700

	tests := []struct {
		name string
		args []string
		doc  *jio.Document
		want float64
	}{
		{"flag wins", []string{"--width", "300"}, &jio.Document{Width: 500}, 300},
		{"document before config", nil, &jio.Document{Width: 500}, 500},
		{"config before default", nil, &jio.Document{}, 700},
	}
	for _, tt := range tests {
		cmd, f := newFlagCommand(tt.args...)
		opts := f.options(cmd, cfg)
		if got := opts.ResolveWidth(tt.doc); got != tt.want {
			t.Errorf("%s: width = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestRenderFlagsApply(t *testing.T) {
	f := renderFlags{formats: "svg,png", style: "solid", labels: true, scale: 2}
	var opts pipeline.Options
	if err := f.apply(&opts); err != nil {
		t.Fatalf("apply() error: %v", err)
	}
	if opts.Style != "solid" || !opts.Labels || opts.Scale != 2 || len(opts.Formats) != 2 {
		t.Errorf("apply() = %+v", opts)
	}

	bad := renderFlags{formats: "svg", style: "handdrawn", scale: 1}
	if err := bad.apply(&opts); err == nil {
		t.Error("apply() with an unknown style should fail")
	}
}
