package match3_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/gemfall/internal/match3"
)

func TestNewGridFillsEveryCell(t *testing.T) {
	calls := 0
	g, err := match3.NewGrid(4, 3, func(c match3.Cell) match3.GemType {
		calls++
		return match3.GemType(c.X + 1)
	})
	if err != nil {
		t.Fatalf("NewGrid() failed: %v", err)
	}

	if calls != 12 {
		t.Errorf("fill called %d times, expected 12", calls)
	}
	if g.Width() != 4 || g.Height() != 3 {
		t.Errorf("expected 4x3 grid, got %dx%d", g.Width(), g.Height())
	}
	if !g.Full() {
		t.Error("grid should be full")
	}

	got, err := g.Get(match3.C(3, 2))
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if got != 4 {
		t.Errorf("Get(3,2) = %d, expected 4", got)
	}
}

func TestNewGridRejectsBadSize(t *testing.T) {
	for _, size := range [][2]int{{0, 3}, {3, 0}, {-1, 5}} {
		if _, err := match3.NewGrid(size[0], size[1], nil); !errors.Is(err, match3.ErrInvalidConfig) {
			t.Errorf("NewGrid(%d, %d) error = %v, expected ErrInvalidConfig", size[0], size[1], err)
		}
	}
}

func TestGridOutOfRange(t *testing.T) {
	g, _ := match3.NewGrid(3, 3, nil)

	testCases := []match3.Cell{
		match3.C(-1, 0),
		match3.C(0, -1),
		match3.C(3, 0),
		match3.C(0, 3),
	}

	for _, c := range testCases {
		if _, err := g.Get(c); !errors.Is(err, match3.ErrOutOfRange) {
			t.Errorf("Get(%v) error = %v, expected ErrOutOfRange", c, err)
		}
		if err := g.Set(c, 1); !errors.Is(err, match3.ErrOutOfRange) {
			t.Errorf("Set(%v) error = %v, expected ErrOutOfRange", c, err)
		}
		if _, err := g.Neighbors4(c); !errors.Is(err, match3.ErrOutOfRange) {
			t.Errorf("Neighbors4(%v) error = %v, expected ErrOutOfRange", c, err)
		}
	}
}

func TestGridNeighbors4(t *testing.T) {
	g, _ := match3.NewGrid(3, 3, nil)

	tests := []struct {
		name  string
		cell  match3.Cell
		count int
	}{
		{"corner", match3.C(0, 0), 2},
		{"edge", match3.C(1, 0), 3},
		{"center", match3.C(1, 1), 4},
		{"far corner", match3.C(2, 2), 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ns, err := g.Neighbors4(tc.cell)
			if err != nil {
				t.Fatalf("Neighbors4() failed: %v", err)
			}
			if len(ns) != tc.count {
				t.Errorf("Neighbors4(%v) returned %d cells, expected %d", tc.cell, len(ns), tc.count)
			}
			for _, n := range ns {
				if !n.Adjacent(tc.cell) {
					t.Errorf("%v is not adjacent to %v", n, tc.cell)
				}
			}
		})
	}
}

func TestParseGridOrientation(t *testing.T) {
	g := match3.MustParseGrid(
		"AB",
		"C.",
	)

	tests := []struct {
		cell match3.Cell
		want match3.GemType
	}{
		{match3.C(0, 1), 1},
		{match3.C(1, 1), 2},
		{match3.C(0, 0), 3},
		{match3.C(1, 0), match3.None},
	}
	for _, tc := range tests {
		got, _ := g.Get(tc.cell)
		if got != tc.want {
			t.Errorf("Get(%v) = %d, expected %d", tc.cell, got, tc.want)
		}
	}

	if g.String() != "AB\nC." {
		t.Errorf("String() = %q, expected %q", g.String(), "AB\nC.")
	}
	if g.EmptyCount() != 1 {
		t.Errorf("EmptyCount() = %d, expected 1", g.EmptyCount())
	}
}

func TestParseGridErrors(t *testing.T) {
	if _, err := match3.ParseGrid(); err == nil {
		t.Error("expected error for empty literal")
	}
	if _, err := match3.ParseGrid("AB", "A"); err == nil {
		t.Error("expected error for ragged rows")
	}
	if _, err := match3.ParseGrid("A1"); err == nil {
		t.Error("expected error for bad cell")
	}
}

func TestGridCloneIsIndependent(t *testing.T) {
	g := match3.MustParseGrid("AB")
	clone := g.Clone()

	if err := clone.Swap(match3.C(0, 0), match3.C(1, 0)); err != nil {
		t.Fatalf("Swap() failed: %v", err)
	}

	if g.String() != "AB" {
		t.Errorf("original changed to %q", g.String())
	}
	if clone.String() != "BA" {
		t.Errorf("clone = %q, expected BA", clone.String())
	}
	if g.Equal(clone) {
		t.Error("grids should differ after swap")
	}
}

func TestGridTypes(t *testing.T) {
	g := match3.MustParseGrid(
		"CA.",
		"ACA",
	)

	types := g.Types()
	if len(types) != 2 || types[0] != 1 || types[1] != 3 {
		t.Errorf("Types() = %v, expected [1 3]", types)
	}

	counts := g.CountByType()
	if counts[1] != 3 || counts[3] != 2 {
		t.Errorf("CountByType() = %v", counts)
	}
}
