package match3

// FindMove returns the first swap that would produce a match, scanning
// bottom row first and trying each cell's right then upper neighbor.
// The search runs on a private copy; g is never touched.
func FindMove(g *Grid) (Move, bool) {
	var found Move
	ok := false
	eachMove(g, func(m Move) bool {
		found, ok = m, true
		return false
	})
	return found, ok
}

// HasPossibleMove reports whether at least one single swap produces a match.
func HasPossibleMove(g *Grid) bool {
	_, ok := FindMove(g)
	return ok
}

// Moves returns every swap that produces a match, in FindMove order.
func Moves(g *Grid) []Move {
	var out []Move
	eachMove(g, func(m Move) bool {
		out = append(out, m)
		return true
	})
	return out
}

// eachMove calls yield for every matching swap until yield returns false.
func eachMove(g *Grid, yield func(Move) bool) {
	work := g.Clone()
	for y := 0; y < work.h; y++ {
		for x := 0; x < work.w; x++ {
			a := C(x, y)
			if work.at(x, y) == None {
				continue
			}
			for _, b := range []Cell{a.Add(1, 0), a.Add(0, 1)} {
				if !work.InBounds(b) || work.at(b.X, b.Y) == None {
					continue
				}
				work.swap(a, b)
				matched := !FindMatches(work).Empty()
				work.swap(a, b)
				if matched && !yield(Move{A: a, B: b}) {
					return
				}
			}
		}
	}
}
