package match3

import "fmt"

// DefaultShuffleAttempts bounds Shuffle when no limit is given.
const DefaultShuffleAttempts = 1000

// Shuffle redistributes the gem types of the occupied cells over the same
// cells until the layout has no match and at least one possible move.
// Empty cells stay empty. The input grid is not modified. It returns the new
// layout and the number of permutations tried.
func Shuffle(g *Grid, rng Rand, maxAttempts int) (*Grid, int, error) {
	if maxAttempts <= 0 {
		maxAttempts = DefaultShuffleAttempts
	}

	if n := len(g.Types()); n < 2 {
		return nil, 0, fmt.Errorf("%w: %d distinct gem type(s) on the board", ErrShuffleExhausted, n)
	}

	positions := make([]int, 0, len(g.cells))
	values := make([]GemType, 0, len(g.cells))
	for i, t := range g.cells {
		if t != None {
			positions = append(positions, i)
			values = append(values, t)
		}
	}

	out := g.Clone()
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		// Fisher-Yates
		for i := len(values) - 1; i > 0; i-- {
			j := rng.Intn(i + 1)
			values[i], values[j] = values[j], values[i]
		}
		for k, idx := range positions {
			out.cells[idx] = values[k]
		}
		if FindMatches(out).Empty() && HasPossibleMove(out) {
			return out, attempt, nil
		}
	}

	return nil, maxAttempts, fmt.Errorf("%w: no playable layout after %d attempts", ErrShuffleExhausted, maxAttempts)
}
