package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/gemfall/internal/core"
)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(10, 3)
	s.DrawText(0, 0, "Score 30")
	s.DrawTextWithColor(2, 1, "AB", core.ColorRed)
	s.SetWithColor(5, 1, 'C', core.ColorGray)
	s.SetWithColor(9, 2, '*', core.Color(200))

	lines := strings.Split(RenderScreen(s), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, expected 3", len(lines))
	}
	if lines[0] != "Score 30" {
		t.Errorf("line 0 = %q, expected trailing blanks dropped", lines[0])
	}
	if !strings.Contains(lines[1], "AB") || !strings.Contains(lines[1], "C") {
		t.Errorf("line 1 = %q, expected the colored runs", lines[1])
	}
	if !strings.HasSuffix(lines[2], "*") || !strings.HasPrefix(lines[2], "         ") {
		t.Errorf("line 2 = %q, expected an unknown color rendered plain", lines[2])
	}
}

func TestRenderScreenBlankRows(t *testing.T) {
	s := core.NewScreen(4, 2)
	if got := RenderScreen(s); got != "\n" {
		t.Errorf("RenderScreen(blank) = %q, expected two empty rows", got)
	}
}

func TestTickInterval(t *testing.T) {
	tests := []struct {
		rate int
		want time.Duration
	}{
		{30, time.Second / 30},
		{60, time.Second / 60},
		{0, time.Second / 30},
		{-5, time.Second / 30},
	}
	for _, tc := range tests {
		if got := tickInterval(tc.rate); got != tc.want {
			t.Errorf("tickInterval(%d) = %v, expected %v", tc.rate, got, tc.want)
		}
	}
}
