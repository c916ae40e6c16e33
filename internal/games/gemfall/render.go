package gemfall

import (
	"fmt"
	"math"

	"github.com/vovakirdan/gemfall/internal/core"
	"github.com/vovakirdan/gemfall/internal/match3"
)

const (
	cellWidth = 3 // Columns per gem: marker, glyph, marker
	hudHeight = 3
	footerH   = 2
)

// layoutSize returns the smallest screen that fits the board and HUD.
func (g *Game) layoutSize() (int, int) {
	boardW := g.cfg.Board.Width*cellWidth + 2
	boardH := g.cfg.Board.Height + 2
	return core.Max(boardW, 30), hudHeight + boardH + footerH
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.err != nil {
		g.renderError(dst)
		return
	}
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boardW := g.cfg.Board.Width*cellWidth + 2
	boardH := g.cfg.Board.Height + 2
	frame := core.Rect{X: (g.screenW - boardW) / 2, Y: hudHeight, W: boardW, H: boardH}

	g.renderHUD(dst, frame)
	g.renderBoard(dst, frame)
	g.renderFooter(dst, frame)
	g.renderOverlays(dst, frame)
}

func (g *Game) renderError(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCenteredWithColor(y-1, "Gemfall cannot start", core.ColorBrightRed)
	dst.DrawTextCentered(y+1, g.err.Error())
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	minW, minH := g.layoutSize()
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", minW, minH))
}

// renderHUD draws the title, score, clock and move count.
func (g *Game) renderHUD(dst *core.Screen, frame core.Rect) {
	dst.DrawTextCenteredWithColor(0, g.Title(), core.ColorBrightCyan)

	st := g.State()
	dst.DrawText(frame.X, 1, fmt.Sprintf("Score: %d", g.shown))

	var right string
	if st.TimeLeft >= 0 {
		right = fmt.Sprintf("Time: %d:%02d", st.TimeLeft/60, st.TimeLeft%60)
	} else {
		right = fmt.Sprintf("Moves: %d", st.Moves)
	}
	rx := core.Max(frame.X, frame.Right()-len(right))
	color := core.ColorDefault
	if st.TimeLeft >= 0 && st.TimeLeft <= 10 {
		color = core.ColorBrightRed
	}
	dst.DrawTextWithColor(rx, 1, right, color)

	if g.timeline != nil {
		if chain := g.timeline.Chain(); chain > 1 {
			dst.DrawTextCenteredWithColor(2, fmt.Sprintf("Chain x%d", chain), core.ColorBrightYellow)
		}
	}
}

// renderBoard draws the frame, the resting gems and any gems in flight.
// Row 0 of the board is drawn at the bottom of the frame.
func (g *Game) renderBoard(dst *core.Screen, frame core.Rect) {
	dst.DrawBoxWithColor(frame, core.ColorGray)

	board := g.display
	if board == nil {
		return
	}

	var sprites []Sprite
	var vacated map[match3.Cell]bool
	marked := make(map[match3.Cell]bool)
	if g.timeline != nil {
		sprites, vacated = g.timeline.Sprites()
		for _, c := range g.timeline.Highlight() {
			marked[c] = true
		}
		if g.timeline.SwapShown() {
			board = board.Clone()
			hl := g.timeline.Highlight()
			board.Swap(hl[0], hl[1]) //nolint:errcheck // cells come from the engine
		}
	}

	h := board.Height()
	for y := range h {
		for x := range board.Width() {
			c := match3.C(x, y)
			sx, sy := g.cellOrigin(frame, c)

			t, _ := board.Get(c)
			if vacated[c] {
				t = match3.None
			}
			g.drawGem(dst, sx+1, sy, t, marked[c])
			g.drawMarkers(dst, sx, sy, c)
		}
	}

	for _, s := range sprites {
		row := int(math.Round(s.Y))
		if row < 0 || row >= h {
			continue // still above the board
		}
		sx, sy := g.cellOrigin(frame, match3.C(s.X, row))
		g.drawGem(dst, sx+1, sy, s.Type, false)
	}
}

// cellOrigin returns the screen position of the left marker column of c.
func (g *Game) cellOrigin(frame core.Rect, c match3.Cell) (int, int) {
	h := g.cfg.Board.Height
	return frame.X + 1 + c.X*cellWidth, frame.Y + 1 + (h - 1 - c.Y)
}

func (g *Game) drawGem(dst *core.Screen, x, y int, t match3.GemType, marked bool) {
	if t.IsNone() {
		dst.SetWithColor(x, y, '·', core.ColorGray)
		return
	}
	style, ok := g.palette[t]
	if !ok {
		dst.Set(x, y, '?')
		return
	}
	color := style.Color
	if marked {
		color = core.ColorBrightWhite
	}
	dst.SetWithColor(x, y, style.Glyph, color)
}

// drawMarkers brackets the selected gem, the cursor and the hinted pair.
func (g *Game) drawMarkers(dst *core.Screen, x, y int, c match3.Cell) {
	var left, right rune
	var color core.Color
	switch {
	case g.hasSelect && c == g.selected:
		left, right, color = '<', '>', core.ColorBrightYellow
	case c == g.cursor && !g.gameOver:
		left, right, color = '[', ']', core.ColorBrightWhite
	case g.hintTicks > 0 && (c == g.hint.A || c == g.hint.B):
		left, right, color = '(', ')', core.ColorBrightCyan
	default:
		return
	}
	dst.SetWithColor(x, y, left, color)
	dst.SetWithColor(x+2, y, right, color)
}

func (g *Game) renderFooter(dst *core.Screen, frame core.Rect) {
	y := frame.Bottom()
	if g.message != "" {
		dst.DrawTextCenteredWithColor(y, g.message, core.ColorBrightYellow)
	}
	dst.DrawTextCenteredWithColor(y+1, g.Controls(), core.ColorGray)
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, frame core.Rect) {
	cx, cy := frame.Center()

	switch {
	case g.paused:
		g.drawOverlay(dst, cx, cy, "PAUSED", "Press P to resume")
	case g.gameOver && g.deadlock:
		g.drawOverlay(dst, cx, cy, "NO MOVES LEFT", fmt.Sprintf("Score: %d", g.shown), "Press R to restart")
	case g.gameOver:
		g.drawOverlay(dst, cx, cy, "TIME UP", fmt.Sprintf("Score: %d", g.shown), "Press R to restart")
	}
}

// drawOverlay draws a centered boxed message.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = core.Max(maxLen, len(line))
	}

	box := core.Rect{W: maxLen + 4, H: len(lines) + 2}
	box.X = centerX - box.W/2
	box.Y = centerY - box.H/2

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	for i, line := range lines {
		dst.DrawText(centerX-len(line)/2, box.Y+1+i, line)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows: Move | Space: Select | H: Hint | P: Pause | R: Restart"
}
