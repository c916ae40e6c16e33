package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gemfall/internal/core"
)

// ansiCodes holds the terminal color of each palette entry, by core.Color.
var ansiCodes = [...]string{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
}

var paletteStyles = func() []lipgloss.Style {
	styles := make([]lipgloss.Style, len(ansiCodes))
	for i, code := range ansiCodes {
		styles[i] = lipgloss.NewStyle()
		if code != "" {
			styles[i] = styles[i].Foreground(lipgloss.Color(code))
		}
	}
	return styles
}()

// styled reports the style for c; default and unknown colors are unstyled.
func styled(c core.Color) (lipgloss.Style, bool) {
	if c == core.ColorDefault || int(c) >= len(paletteStyles) {
		return lipgloss.Style{}, false
	}
	return paletteStyles[c], true
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Each row is split into runs of one color; uncolored runs are written as
// is and trailing blanks are dropped.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}

		end := s.Width()
		for end > 0 {
			if c := s.GetCell(end-1, y); c.Rune != ' ' || c.Color != core.ColorDefault {
				break
			}
			end--
		}

		for x := 0; x < end; {
			color := s.GetCell(x, y).Color
			run.Reset()
			for ; x < end && s.GetCell(x, y).Color == color; x++ {
				run.WriteRune(s.GetCell(x, y).Rune)
			}
			if style, ok := styled(color); ok {
				sb.WriteString(style.Render(run.String()))
			} else {
				sb.WriteString(run.String())
			}
		}
	}
	return sb.String()
}
