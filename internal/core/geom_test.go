package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(2, 3, 4, 2)

	tests := []struct {
		x, y int
		want bool
	}{
		{2, 3, true},
		{5, 4, true},
		{6, 4, false}, // right edge is exclusive
		{5, 5, false}, // bottom edge is exclusive
		{1, 3, false},
	}

	for _, tc := range tests {
		if got := r.Contains(tc.x, tc.y); got != tc.want {
			t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}

	cx, cy := r.Center()
	if cx != 15 || cy != 17 {
		t.Errorf("Center() = (%d, %d), expected (15, 17)", cx, cy)
	}
}

func TestRectCentered(t *testing.T) {
	outer := NewRect(0, 0, 80, 24)

	got := outer.Centered(20, 10)
	if got != NewRect(30, 7, 20, 10) {
		t.Errorf("Centered() = %+v", got)
	}

	// Larger than the outer rect sticks to the top-left corner
	got = outer.Centered(100, 30)
	if got.X != 0 || got.Y != 0 {
		t.Errorf("oversized Centered() = %+v", got)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		val, n, expected int
	}{
		{3, 8, 3},
		{8, 8, 0},
		{-1, 8, 7},
		{-9, 8, 7},
		{5, 0, 0},
	}

	for _, tc := range tests {
		if got := Wrap(tc.val, tc.n); got != tc.expected {
			t.Errorf("Wrap(%d, %d) = %d, expected %d", tc.val, tc.n, got, tc.expected)
		}
	}
}

func TestMinMaxAbs(t *testing.T) {
	if Min(5, 10) != 5 || Min(10, 5) != 5 {
		t.Error("Min should return the smaller value")
	}
	if Max(5, 10) != 10 || Max(10, 5) != 10 {
		t.Error("Max should return the larger value")
	}
	if Abs(-5) != 5 || Abs(5) != 5 || Abs(0) != 0 {
		t.Error("Abs returned a wrong value")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		name string
		want Color
		ok   bool
	}{
		{"red", ColorRed, true},
		{" Bright_Blue ", ColorBrightBlue, true},
		{"grey", ColorGray, true},
		{"chartreuse", ColorDefault, false},
	}

	for _, tc := range tests {
		got, ok := ParseColor(tc.name)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseColor(%q) = %v, %v; expected %v, %v", tc.name, got, ok, tc.want, tc.ok)
		}
	}

	if ColorOrange.String() != "orange" {
		t.Errorf("ColorOrange.String() = %q", ColorOrange.String())
	}
}

func TestInputFrame(t *testing.T) {
	f := FrameOf(ActionLeft, ActionSelect)
	if !f.Has(ActionLeft) || !f.Has(ActionSelect) || f.Has(ActionHint) {
		t.Errorf("FrameOf() = %v", f.Actions)
	}

	clone := f.Clone()
	f.Clear()
	if !f.Empty() {
		t.Error("frame should be empty after Clear")
	}
	if clone.Empty() {
		t.Error("clone should keep its actions")
	}

	var zero InputFrame
	if zero.Has(ActionUp) || !zero.Empty() {
		t.Error("zero frame should be empty")
	}
	zero.Set(ActionUp)
	if !zero.Has(ActionUp) {
		t.Error("Set on zero frame should work")
	}
}
