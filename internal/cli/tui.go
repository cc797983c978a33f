package cli

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	jio "github.com/matzehuels/justify/pkg/io"
	"github.com/matzehuels/justify/pkg/pipeline"
)

// Preview styles
var (
	previewStatusStyle = lipgloss.NewStyle().Foreground(colorDim)
	previewErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
	previewItemStyles  = []lipgloss.Style{
		lipgloss.NewStyle().Background(lipgloss.Color("24")).Foreground(colorWhite),
		lipgloss.NewStyle().Background(lipgloss.Color("30")).Foreground(colorWhite),
		lipgloss.NewStyle().Background(lipgloss.Color("94")).Foreground(colorWhite),
		lipgloss.NewStyle().Background(lipgloss.Color("60")).Foreground(colorWhite),
	}
)

const (
	minPxPerCol = 1.0
	maxPxPerCol = 64.0
)

// =============================================================================
// PreviewModel - live lineup preview
// =============================================================================

// PreviewModel is the bubbletea model for the live preview. Each terminal
// column stands for PxPerCol pixels; the lineup is rebuilt only when the
// resulting container width changes.
type PreviewModel struct {
	Doc      *jio.Document
	Opts     pipeline.Options
	PxPerCol float64

	Cols      int
	Lineup    jio.LineupDoc
	Err       error
	Relayouts int

	lastWidth float64
}

// NewPreviewModel creates a preview for doc.
func NewPreviewModel(doc *jio.Document, opts pipeline.Options, pxPerCol float64) PreviewModel {
	return PreviewModel{
		Doc:      doc,
		Opts:     opts,
		PxPerCol: min(max(pxPerCol, minPxPerCol), maxPxPerCol),
	}
}

func (m PreviewModel) Init() tea.Cmd {
	return nil
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "+", "=":
			m.PxPerCol = min(m.PxPerCol*2, maxPxPerCol)
		case "-", "_":
			m.PxPerCol = max(m.PxPerCol/2, minPxPerCol)
		}
	case tea.WindowSizeMsg:
		m.Cols = msg.Width
	}
	return m.relayout(), nil
}

// ContainerWidth is the pixel width the current terminal stands for.
func (m PreviewModel) ContainerWidth() float64 {
	return float64(m.Cols) * m.PxPerCol
}

// relayout rebuilds the lineup when the container width changed.
func (m PreviewModel) relayout() PreviewModel {
	width := m.ContainerWidth()
	if width <= 0 || width == m.lastWidth {
		return m
	}
	m.lastWidth = width

	opts := m.Opts
	opts.Width = width
	m.Lineup, m.Err = pipeline.ComputeLayout(m.Doc, opts)
	m.Relayouts++
	return m
}

func (m PreviewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Lineup preview"))
	b.WriteString("\n")
	b.WriteString(previewStatusStyle.Render(fmt.Sprintf(
		"width %gpx · %gpx/col · %d items · %d rows · %gpx tall · +/- zoom  q quit",
		m.ContainerWidth(), m.PxPerCol, len(m.Lineup.Items), len(m.Lineup.Rows), m.Lineup.Height)))
	b.WriteString("\n\n")

	if m.Err != nil {
		b.WriteString(previewErrorStyle.Render(m.Err.Error()))
		b.WriteString("\n")
		return b.String()
	}

	for _, line := range m.rowLines() {
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// rowLines draws one text line per row, each item as a colored block that
// covers its columns.
func (m PreviewModel) rowLines() []string {
	var lines []string
	var line strings.Builder
	cursor, row := 0, -1

	for i, it := range m.Lineup.Items {
		if it.Row != row {
			if row >= 0 {
				lines = append(lines, line.String())
				line.Reset()
			}
			row, cursor = it.Row, 0
		}

		start := int(math.Floor(it.Left / m.PxPerCol))
		end := max(int(math.Floor((it.Left+it.Width)/m.PxPerCol)), start+1)
		if m.Cols > 0 {
			end = min(end, m.Cols)
		}
		if start < cursor {
			start = cursor
		}
		if end <= start {
			continue
		}

		line.WriteString(strings.Repeat(" ", start-cursor))
		style := previewItemStyles[i%len(previewItemStyles)]
		line.WriteString(style.Render(fitLabel(it.ID, end-start)))
		cursor = end
	}
	if row >= 0 {
		lines = append(lines, line.String())
	}
	return lines
}

// fitLabel pads or truncates label to exactly n columns.
func fitLabel(label string, n int) string {
	r := []rune(label)
	if len(r) > n {
		r = r[:n]
	}
	return string(r) + strings.Repeat(" ", n-len(r))
}
