package match3

import (
	"fmt"
	"strings"
)

// Generator produces the gem placed into a cell during fill or refill.
type Generator func(c Cell) GemType

// Grid is a fixed-size board of gem types.
// Cells are stored in row-major order: index = y*w + x, row 0 at the bottom.
type Grid struct {
	w     int
	h     int
	cells []GemType
}

// NewGrid creates a width x height grid and fills every cell from fill.
// A nil fill leaves every cell None.
func NewGrid(width, height int, fill Generator) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: grid size %dx%d", ErrInvalidConfig, width, height)
	}
	g := &Grid{
		w:     width,
		h:     height,
		cells: make([]GemType, width*height),
	}
	if fill != nil {
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				g.cells[y*width+x] = fill(C(x, y))
			}
		}
	}
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.w
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.h
}

// InBounds returns true if the cell is within the grid boundaries.
func (g *Grid) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < g.w && c.Y >= 0 && c.Y < g.h
}

func (g *Grid) checkBounds(c Cell) error {
	if !g.InBounds(c) {
		return fmt.Errorf("%w: %v on %dx%d grid", ErrOutOfRange, c, g.w, g.h)
	}
	return nil
}

// Get returns the gem at c.
func (g *Grid) Get(c Cell) (GemType, error) {
	if err := g.checkBounds(c); err != nil {
		return None, err
	}
	return g.cells[c.Y*g.w+c.X], nil
}

// Set stores a gem (or None) at c.
func (g *Grid) Set(c Cell, t GemType) error {
	if err := g.checkBounds(c); err != nil {
		return err
	}
	g.cells[c.Y*g.w+c.X] = t
	return nil
}

// at and put skip bounds checks; callers iterate within [0,w)x[0,h).
func (g *Grid) at(x, y int) GemType {
	return g.cells[y*g.w+x]
}

func (g *Grid) put(x, y int, t GemType) {
	g.cells[y*g.w+x] = t
}

// Swap exchanges the gems at a and b.
func (g *Grid) Swap(a, b Cell) error {
	if err := g.checkBounds(a); err != nil {
		return err
	}
	if err := g.checkBounds(b); err != nil {
		return err
	}
	g.swap(a, b)
	return nil
}

func (g *Grid) swap(a, b Cell) {
	ia, ib := a.Y*g.w+a.X, b.Y*g.w+b.X
	g.cells[ia], g.cells[ib] = g.cells[ib], g.cells[ia]
}

// Neighbors4 returns the up to four edge-adjacent cells of c, clipped to bounds.
// Order is left, right, down, up.
func (g *Grid) Neighbors4(c Cell) ([]Cell, error) {
	if err := g.checkBounds(c); err != nil {
		return nil, err
	}
	out := make([]Cell, 0, 4)
	for _, n := range []Cell{c.Add(-1, 0), c.Add(1, 0), c.Add(0, -1), c.Add(0, 1)} {
		if g.InBounds(n) {
			out = append(out, n)
		}
	}
	return out, nil
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]GemType, len(g.cells))
	copy(cells, g.cells)
	return &Grid{w: g.w, h: g.h, cells: cells}
}

// Equal returns true if two grids have the same dimensions and contents.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.w != other.w || g.h != other.h {
		return false
	}
	for i, t := range g.cells {
		if t != other.cells[i] {
			return false
		}
	}
	return true
}

// Full reports whether every cell is occupied.
func (g *Grid) Full() bool {
	for _, t := range g.cells {
		if t == None {
			return false
		}
	}
	return true
}

// EmptyCount returns the number of None cells.
func (g *Grid) EmptyCount() int {
	n := 0
	for _, t := range g.cells {
		if t == None {
			n++
		}
	}
	return n
}

// Types returns the distinct gem types present, in ascending order.
func (g *Grid) Types() []GemType {
	var seen [256]bool
	for _, t := range g.cells {
		if t != None {
			seen[t] = true
		}
	}
	var out []GemType
	for i := 1; i < len(seen); i++ {
		if seen[i] {
			out = append(out, GemType(i))
		}
	}
	return out
}

// CountByType returns how many cells hold each gem type.
func (g *Grid) CountByType() map[GemType]int {
	counts := make(map[GemType]int)
	for _, t := range g.cells {
		if t != None {
			counts[t]++
		}
	}
	return counts
}

// ParseGrid builds a grid from literal rows given top row first, as the board
// is drawn. Letters A..Z map to gem types 1..26 and '.' to None.
func ParseGrid(rows ...string) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty grid literal", ErrInvalidConfig)
	}
	w, h := len(rows[0]), len(rows)
	g, err := NewGrid(w, h, nil)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) != w {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidConfig, i, len(row), w)
		}
		y := h - 1 - i
		for x, ch := range []byte(row) {
			switch {
			case ch == '.':
				g.put(x, y, None)
			case ch >= 'A' && ch <= 'Z':
				g.put(x, y, GemType(ch-'A'+1))
			default:
				return nil, fmt.Errorf("%w: bad cell %q at row %d", ErrInvalidConfig, ch, i)
			}
		}
	}
	return g, nil
}

// MustParseGrid is like ParseGrid but panics on error.
func MustParseGrid(rows ...string) *Grid {
	g, err := ParseGrid(rows...)
	if err != nil {
		panic(err)
	}
	return g
}

// Rows renders the grid in the ParseGrid notation, top row first.
// Types above 26 are shown as '#'.
func (g *Grid) Rows() []string {
	rows := make([]string, 0, g.h)
	for y := g.h - 1; y >= 0; y-- {
		var sb strings.Builder
		for x := 0; x < g.w; x++ {
			sb.WriteByte(glyph(g.at(x, y)))
		}
		rows = append(rows, sb.String())
	}
	return rows
}

// String returns the rows joined by newlines.
func (g *Grid) String() string {
	return strings.Join(g.Rows(), "\n")
}

func glyph(t GemType) byte {
	switch {
	case t == None:
		return '.'
	case t <= 26:
		return 'A' + byte(t) - 1
	default:
		return '#'
	}
}
