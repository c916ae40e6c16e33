package match3

import "math/rand"

// FallEvent describes one gem moving to its settled cell during a gravity
// pass. Spawned gems start from a virtual cell above the board:
// (x, height+k) where k is the gem's order among the column's new gems.
type FallEvent struct {
	Type    GemType
	From    Cell
	To      Cell
	Spawned bool
}

// Resolve compacts every column toward row 0 and fills the freed top slots
// from gen. The input grid is not modified. Gems keep their relative order
// within a column; gems that do not move produce no event.
func Resolve(g *Grid, gen Generator) (*Grid, []FallEvent) {
	out := g.Clone()
	events := make([]FallEvent, 0)

	for x := 0; x < g.w; x++ {
		write := 0
		for y := 0; y < g.h; y++ {
			t := g.at(x, y)
			if t == None {
				continue
			}
			if y != write {
				out.put(x, write, t)
				events = append(events, FallEvent{Type: t, From: C(x, y), To: C(x, write)})
			}
			write++
		}

		for y := write; y < g.h; y++ {
			t := None
			if gen != nil {
				t = gen(C(x, y))
			}
			out.put(x, y, t)
			if t != None {
				events = append(events, FallEvent{
					Type:    t,
					From:    C(x, g.h+(y-write)),
					To:      C(x, y),
					Spawned: true,
				})
			}
		}
	}

	return out, events
}

// Rand is the randomness the engine needs. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

var _ Rand = (*rand.Rand)(nil)

// RandomGenerator picks uniformly from types for every cell.
func RandomGenerator(rng Rand, types []GemType) Generator {
	return func(Cell) GemType {
		return types[rng.Intn(len(types))]
	}
}

// clearCells sets every matched cell to None.
func clearCells(g *Grid, m MatchSet) {
	for c := range m {
		g.put(c.X, c.Y, None)
	}
}
