package layout

import "github.com/tagwm/tagwm/internal/geom"

// fibonacci recursively halves the remaining work area, alternating
// between a horizontal and a vertical split, assigning one client to each
// split in attach order and the last client the final remainder. When spiral is true the taken half rotates through all four
// quadrants every four splits, producing the spiral layout's pinwheel
// shape; when false the taken half always leans toward the top-left,
// leaving the remainder to dwindle into the bottom-right corner.
func fibonacci(n int, p Params, spiral bool) []Frame {
	if n == 0 {
		return nil
	}
	area := p.workWithOuterGaps(n)
	g := p.gaps(n)
	frames := make([]Frame, n)
	rect := area

	for i := 0; i < n-1; i++ {
		var taken, rest geom.Rect
		if i%2 == 0 {
			w := (rect.W - g.InnerH) / 2
			taken = geom.Rect{X: rect.X, Y: rect.Y, W: clampDim(w), H: rect.H}
			rest = geom.Rect{X: rect.X + w + g.InnerH, Y: rect.Y, W: clampDim(rect.W - w - g.InnerH), H: rect.H}
		} else {
			h := (rect.H - g.InnerV) / 2
			taken = geom.Rect{X: rect.X, Y: rect.Y, W: rect.W, H: clampDim(h)}
			rest = geom.Rect{X: rect.X, Y: rect.Y + h + g.InnerV, W: rect.W, H: clampDim(rect.H - h - g.InnerV)}
		}
		if spiral && i%4 >= 2 {
			frames[i] = Frame{rest}
			rect = taken
		} else {
			frames[i] = Frame{taken}
			rect = rest
		}
	}
	frames[n-1] = Frame{rect}
	return frames
}

// Spiral arranges clients in a pinwheel: each new client takes a
// successively smaller quadrant rotating clockwise around the previous
// ones.
func Spiral(n int, p Params) []Frame { return fibonacci(n, p, true) }

// Dwindle is Spiral without the rotation: every split leans the same way,
// so the stack dwindles toward one corner instead of spiraling around the
// screen.
func Dwindle(n int, p Params) []Frame { return fibonacci(n, p, false) }
