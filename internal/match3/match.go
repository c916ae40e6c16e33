package match3

import "sort"

// MinRun is the shortest row or column run that counts as a match.
const MinRun = 3

// MatchSet is the set of cells taking part in at least one match.
// A cell matching both horizontally and vertically appears once.
type MatchSet map[Cell]struct{}

// Len returns the number of matched cells.
func (m MatchSet) Len() int {
	return len(m)
}

// Empty reports whether no cell matched.
func (m MatchSet) Empty() bool {
	return len(m) == 0
}

// Has reports whether c is part of a match.
func (m MatchSet) Has(c Cell) bool {
	_, ok := m[c]
	return ok
}

// Cells returns the matched cells ordered bottom row first, then left to right.
func (m MatchSet) Cells() []Cell {
	out := make([]Cell, 0, len(m))
	for c := range m {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].less(out[j])
	})
	return out
}

// FindMatches returns every cell that belongs to a horizontal or vertical run
// of at least MinRun equal, non-empty gems. It never mutates g.
func FindMatches(g *Grid) MatchSet {
	m := make(MatchSet)

	for y := 0; y < g.h; y++ {
		scanLine(g.w, func(i int) GemType { return g.at(i, y) }, func(from, to int) {
			for x := from; x < to; x++ {
				m[C(x, y)] = struct{}{}
			}
		})
	}

	for x := 0; x < g.w; x++ {
		scanLine(g.h, func(i int) GemType { return g.at(x, i) }, func(from, to int) {
			for y := from; y < to; y++ {
				m[C(x, y)] = struct{}{}
			}
		})
	}

	return m
}

// scanLine walks one row or column and reports each maximal run [from, to)
// of length >= MinRun.
func scanLine(n int, get func(int) GemType, emit func(from, to int)) {
	start := 0
	for i := 1; i <= n; i++ {
		if i < n && get(i) == get(start) {
			continue
		}
		if get(start) != None && i-start >= MinRun {
			emit(start, i)
		}
		start = i
	}
}
