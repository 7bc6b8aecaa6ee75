// Package geom provides the rectangle arithmetic shared by the layout
// engine, the floating-position DSL, and the core window-management state
// machine.
package geom

// Rect is a screen-space rectangle in pixels. Unlike xgbutil/xrect.Rect it
// is a value type, so layouts can be written as pure functions.
type Rect struct {
	X, Y int
	W, H int
}

func (r Rect) Right() int  { return r.X + r.W }
func (r Rect) Bottom() int { return r.Y + r.H }

func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Contains reports whether the point (x, y) falls within r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Shrink insets r by the given amounts on each edge. Negative gaps grow r.
func (r Rect) Shrink(left, top, right, bottom int) Rect {
	r.X += left
	r.Y += top
	r.W -= left + right
	r.H -= top + bottom
	return r
}

// Clamp moves and shrinks r so that it fits entirely within bound,
// preserving size where possible.
func (r Rect) Clamp(bound Rect) Rect {
	if r.W > bound.W {
		r.W = bound.W
	}
	if r.H > bound.H {
		r.H = bound.H
	}
	if r.X < bound.X {
		r.X = bound.X
	}
	if r.Y < bound.Y {
		r.Y = bound.Y
	}
	if r.Right() > bound.Right() {
		r.X = bound.Right() - r.W
	}
	if r.Bottom() > bound.Bottom() {
		r.Y = bound.Bottom() - r.H
	}
	return r
}

func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func Abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
