package viz

import (
	"strings"
	"testing"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(-1, 0)
	c.Set(4, 0)
	c.Set(0, 4)

	if got := c.Grid[0][0]; got != 0x2801 {
		t.Errorf("cell 0 = %U, want U+2801", got)
	}
	if got := c.Grid[0][1]; got != 0x2880 {
		t.Errorf("cell 1 = %U, want U+2880", got)
	}
	if c.Count() != 2 {
		t.Errorf("expected 2 dots, got %d", c.Count())
	}

	c.Clear()
	if c.Count() != 0 {
		t.Errorf("expected empty canvas after Clear, got %d dots", c.Count())
	}
}

func TestCanvasPlotCorners(t *testing.T) {
	tests := []struct {
		name     string
		x, y     float64
		row, col int
	}{
		{"bottom left", 0, 0, 3, 0},
		{"top left", 0, 600, 0, 0},
		{"bottom right", 800, 0, 3, 9},
		{"top right", 800, 600, 0, 9},
		{"center", 400, 300, 1, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas(10, 4)
			c.Plot(tt.x, tt.y, 800, 600)
			if c.Count() != 1 {
				t.Fatalf("expected 1 dot, got %d", c.Count())
			}
			if c.Grid[tt.row][tt.col] == brailleBlank {
				t.Errorf("expected dot in cell (%d,%d)", tt.row, tt.col)
			}
		})
	}
}

func TestCanvasPlotDegenerateWorld(t *testing.T) {
	c := NewCanvas(4, 4)
	c.Plot(1, 1, 0, 600)
	if c.Count() != 0 {
		t.Error("expected no dot for zero-width world")
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(3, 2)
	lines := strings.Split(c.String(), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if len([]rune(lines[0])) != 3 {
		t.Errorf("expected 3 cells per line, got %d", len([]rune(lines[0])))
	}
}

func TestNextTheme(t *testing.T) {
	defer SetTheme(CurrentTheme.Name)

	SetTheme("cyberpunk")
	seen := map[string]bool{}
	for range Themes {
		seen[CurrentTheme.Name] = true
		NextTheme()
	}
	if len(seen) != len(Themes) {
		t.Errorf("expected to visit %d themes, visited %d", len(Themes), len(seen))
	}
	if CurrentTheme.Name != "cyberpunk" {
		t.Errorf("expected to wrap back to cyberpunk, got %s", CurrentTheme.Name)
	}
	if GetTheme("missing").Name != "cyberpunk" {
		t.Error("expected fallback theme for unknown name")
	}
}
