package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	jio "github.com/matzehuels/justify/pkg/io"
	"github.com/matzehuels/justify/pkg/pipeline"
)

func previewDoc() *jio.Document {
	return &jio.Document{Items: []jio.ItemSpec{
		{ID: "a", Width: 100, Height: 40},
		{ID: "b", Width: 100, Height: 60},
		{ID: "c", Width: 100, Height: 50},
		{ID: "d", Width: 50, Height: 50},
	}}
}

func update(t *testing.T, m PreviewModel, msg tea.Msg) PreviewModel {
	t.Helper()
	next, _ := m.Update(msg)
	pm, ok := next.(PreviewModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return pm
}

func TestPreviewRelayoutsOnlyOnWidthChange(t *testing.T) {
	m := NewPreviewModel(previewDoc(), pipeline.Options{}, 8)

	m = update(t, m, tea.WindowSizeMsg{Width: 50, Height: 20})
	if m.Relayouts != 1 {
		t.Fatalf("Relayouts = %d, want 1", m.Relayouts)
	}
	if m.ContainerWidth() != 400 {
		t.Errorf("ContainerWidth() = %v, want 400", m.ContainerWidth())
	}
	if len(m.Lineup.Rows) != 2 {
		t.Errorf("Rows = %v, want 2 rows", m.Lineup.Rows)
	}

	m = update(t, m, tea.WindowSizeMsg{Width: 50, Height: 40})
	if m.Relayouts != 1 {
		t.Errorf("height-only resize relayouted: Relayouts = %d", m.Relayouts)
	}

	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if m.Relayouts != 2 {
		t.Errorf("Relayouts = %d, want 2 after width change", m.Relayouts)
	}
	if len(m.Lineup.Rows) != 1 {
		t.Errorf("Rows = %v, want everything in one row at 800px", m.Lineup.Rows)
	}
}

func TestPreviewZoom(t *testing.T) {
	m := NewPreviewModel(previewDoc(), pipeline.Options{}, 8)
	m = update(t, m, tea.WindowSizeMsg{Width: 50})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'-'}})

	if m.PxPerCol != 4 {
		t.Errorf("PxPerCol = %v, want 4", m.PxPerCol)
	}
	if m.Relayouts != 2 {
		t.Errorf("Relayouts = %d, want 2 after zoom", m.Relayouts)
	}
}

func TestPreviewView(t *testing.T) {
	m := NewPreviewModel(previewDoc(), pipeline.Options{}, 8)
	m = update(t, m, tea.WindowSizeMsg{Width: 50})

	lines := m.rowLines()
	if len(lines) != 2 {
		t.Fatalf("rowLines() = %d lines, want 2", len(lines))
	}
	view := m.View()
	for _, id := range []string{"a", "b", "c", "d"} {
		if !strings.Contains(view, id) {
			t.Errorf("View() missing item %q", id)
		}
	}
}

func TestPreviewShowsErrors(t *testing.T) {
	doc := &jio.Document{Items: []jio.ItemSpec{{ID: "bad", Width: -1, Height: 1}}}
	m := NewPreviewModel(doc, pipeline.Options{}, 8)
	m = update(t, m, tea.WindowSizeMsg{Width: 50})

	if m.Err == nil {
		t.Fatal("Err should be set for an invalid item")
	}
	if !strings.Contains(m.View(), "must be a positive number") {
		t.Errorf("View() should show the error, got %q", m.View())
	}
}

func TestFitLabel(t *testing.T) {
	if got := fitLabel("abcdef", 3); got != "abc" {
		t.Errorf("fitLabel() = %q, want %q", got, "abc")
	}
	if got := fitLabel("ab", 4); got != "ab  " {
		t.Errorf("fitLabel() = %q, want %q", got, "ab  ")
	}
}
