package justify

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func widths(ws ...float64) []Item {
	items := make([]Item, len(ws))
	for i, w := range ws {
		items[i] = Item{Width: w, Height: 10}
	}
	return items
}

func TestPartition(t *testing.T) {
	tests := []struct {
		name     string
		items    []Item
		maxWidth float64
		marginX  float64
		want     []int
	}{
		{
			name:     "empty",
			items:    nil,
			maxWidth: 300,
			marginX:  20,
			want:     nil,
		},
		{
			name:     "single row",
			items:    widths(50, 50, 50),
			maxWidth: 300,
			marginX:  20,
			want:     []int{0},
		},
		{
			name:     "two rows of two",
			items:    widths(100, 100, 100, 100),
			maxWidth: 300,
			marginX:  20,
			want:     []int{0, 2},
		},
		{
			name:     "exact fit does not break",
			items:    widths(140, 140),
			maxWidth: 300,
			marginX:  20,
			want:     []int{0},
		},
		{
			name:     "one item per row",
			items:    widths(200, 200, 200),
			maxWidth: 300,
			marginX:  20,
			want:     []int{0, 1, 2},
		},
		{
			name:     "oversized first item stands alone",
			items:    widths(250, 10, 10, 10),
			maxWidth: 200,
			marginX:  20,
			want:     []int{0, 1},
		},
		{
			name:     "oversized middle item stands alone",
			items:    widths(10, 250, 10),
			maxWidth: 200,
			marginX:  20,
			want:     []int{0, 1, 2},
		},
		{
			name:     "consecutive oversized items",
			items:    widths(250, 250),
			maxWidth: 200,
			marginX:  0,
			want:     []int{0, 1},
		},
		{
			name:     "zero margin",
			items:    widths(100, 100, 100, 100),
			maxWidth: 300,
			marginX:  0,
			want:     []int{0, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Partition(tt.items, tt.maxWidth, tt.marginX)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Partition() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPartitionKeepWithPrev(t *testing.T) {
	items := widths(100, 100, 100, 100)
	items[2].KeepWithPrev = true

	// Greedy filling alone would break before index 2.
	got := Partition(items, 300, 20)
	if diff := cmp.Diff([]int{0, 3}, got); diff != "" {
		t.Errorf("Partition() mismatch (-want +got):\n%s", diff)
	}
}

func TestPartitionKeepWithPrevChain(t *testing.T) {
	items := widths(100, 100, 100, 100, 100)
	for i := 1; i < len(items); i++ {
		items[i].KeepWithPrev = true
	}
	assert.Equal(t, []int{0}, Partition(items, 150, 20), "a fully glued sequence is one row")
}

func TestPartitionKeepWithPrevOnOversizedNeighbour(t *testing.T) {
	items := widths(250, 10, 10)
	items[1].KeepWithPrev = true
	assert.Equal(t, []int{0, 2}, Partition(items, 200, 20))
}

func TestPartitionFirstItemIgnoresKeepWithPrev(t *testing.T) {
	items := widths(100, 100)
	items[0].KeepWithPrev = true
	assert.Equal(t, []int{0}, Partition(items, 300, 20))
}

func TestPartitionDoesNotMutateItems(t *testing.T) {
	items := widths(100, 100, 100, 100)
	items[3].KeepWithPrev = true
	before := append([]Item(nil), items...)
	_ = Partition(items, 150, 20)
	assert.Equal(t, before, items)
}

func TestRows(t *testing.T) {
	got := Rows([]int{0, 2, 5}, 6)
	want := [][2]int{{0, 2}, {2, 5}, {5, 6}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Rows() mismatch (-want +got):\n%s", diff)
	}

	assert.Empty(t, Rows(nil, 0))
}

func TestValid(t *testing.T) {
	items := widths(10, 10, 10, 10)
	items[2].KeepWithPrev = true

	tests := []struct {
		name      string
		items     []Item
		partition []int
		want      bool
	}{
		{"empty both", nil, nil, true},
		{"empty items with rows", nil, []int{0}, false},
		{"missing rows", items, nil, false},
		{"single row", items, []int{0}, true},
		{"does not start at zero", items, []int{1}, false},
		{"not increasing", items, []int{0, 3, 1}, false},
		{"duplicate start", items, []int{0, 1, 1}, false},
		{"out of range", items, []int{0, 4}, false},
		{"starts on grouped item", items, []int{0, 2}, false},
		{"valid", items, []int{0, 1, 3}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Valid(tt.partition, tt.items); got != tt.want {
				t.Errorf("Valid(%v) = %v, want %v", tt.partition, got, tt.want)
			}
		})
	}
}
