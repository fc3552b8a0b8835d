package engine

import "testing"

func TestFindSpawn_FirstFreeCell(t *testing.T) {
	tests := []struct {
		name     string
		elements []StaticElement
		taken    []Position
		want     Position
	}{
		{
			name: "empty space spawns at origin",
			want: Position{X: 0, Y: 0},
		},
		{
			name:  "member at origin pushes spawn right",
			taken: []Position{{X: 0, Y: 0}},
			want:  Position{X: 1, Y: 0},
		},
		{
			name:     "static element blocks spawn",
			elements: []StaticElement{{ElementID: "el-1", X: 0, Y: 0}},
			want:     Position{X: 1, Y: 0},
		},
		{
			name:     "full first row wraps to next row",
			elements: []StaticElement{{ElementID: "el-1", X: 0, Y: 0}, {ElementID: "el-2", X: 1, Y: 0}},
			taken:    []Position{{X: 2, Y: 0}},
			want:     Position{X: 0, Y: 1},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			snap := NewSpaceSnapshot("space-1", 3, 3, test.elements)
			taken := make(map[Position]bool)
			for _, p := range test.taken {
				taken[p] = true
			}
			got := FindSpawn(snap, taken)
			if got != test.want {
				t.Errorf("FindSpawn: got %v, want %v", got, test.want)
			}
		})
	}
}

func TestFindSpawn_FullOccupancyFallsBackToOrigin(t *testing.T) {
	snap := NewSpaceSnapshot("space-1", 2, 2, nil)
	taken := map[Position]bool{
		{X: 0, Y: 0}: true,
		{X: 1, Y: 0}: true,
		{X: 0, Y: 1}: true,
		{X: 1, Y: 1}: true,
	}
	got := FindSpawn(snap, taken)
	if !snap.InBounds(got) {
		t.Errorf("FindSpawn under full occupancy returned out-of-bounds %v", got)
	}
	if (got != Position{X: 0, Y: 0}) {
		t.Errorf("FindSpawn under full occupancy: got %v, want origin", got)
	}
}

func TestParseDimensions(t *testing.T) {
	tests := []struct {
		name    string
		dims    string
		width   int
		height  int
		wantErr bool
	}{
		{"standard", "100x200", 100, 200, false},
		{"square", "50x50", 50, 50, false},
		{"missing separator", "100", 0, 0, true},
		{"too many parts", "1x2x3", 0, 0, true},
		{"non-numeric", "axb", 0, 0, true},
		{"zero width", "0x200", 0, 0, true},
		{"negative height", "100x-5", 0, 0, true},
		{"empty", "", 0, 0, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			w, h, err := ParseDimensions(test.dims)
			if test.wantErr {
				if err == nil {
					t.Errorf("ParseDimensions(%q): expected error", test.dims)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDimensions(%q): %v", test.dims, err)
			}
			if w != test.width || h != test.height {
				t.Errorf("ParseDimensions(%q): got %dx%d, want %dx%d", test.dims, w, h, test.width, test.height)
			}
		})
	}
}
