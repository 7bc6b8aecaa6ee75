package layout

import "github.com/tagwm/tagwm/internal/geom"

// Bstack places the master row on top occupying p.MFact of the work
// height; stack clients run across the bottom horizontally.
func Bstack(n int, p Params) []Frame {
	if n == 0 {
		return nil
	}
	area := p.workWithOuterGaps(n)
	g := p.gaps(n)

	nmaster := p.NMaster
	if nmaster > n {
		nmaster = n
	}
	nstack := n - nmaster

	frames := make([]Frame, n)
	masterH := area.H
	if nmaster > 0 && nstack > 0 {
		masterH = int(float64(area.H) * p.MFact)
	}
	if nmaster > 0 {
		rowStackH(frames[:nmaster], geom.Rect{X: area.X, Y: area.Y, W: area.W, H: masterH}, g.InnerH)
	}
	if nstack > 0 {
		stackY := area.Y
		stackH := area.H
		if nmaster > 0 {
			stackY = area.Y + masterH + g.InnerV
			stackH = area.H - masterH - g.InnerV
		}
		rowStackH(frames[nmaster:], geom.Rect{X: area.X, Y: stackY, W: area.W, H: stackH}, g.InnerH)
	}
	return frames
}

// BstackHoriz is Bstack except the stack is arranged as horizontal rows
// rather than side-by-side columns.
func BstackHoriz(n int, p Params) []Frame {
	if n == 0 {
		return nil
	}
	area := p.workWithOuterGaps(n)
	g := p.gaps(n)

	nmaster := p.NMaster
	if nmaster > n {
		nmaster = n
	}
	nstack := n - nmaster

	frames := make([]Frame, n)
	masterH := area.H
	if nmaster > 0 && nstack > 0 {
		masterH = int(float64(area.H) * p.MFact)
	}
	if nmaster > 0 {
		rowStackH(frames[:nmaster], geom.Rect{X: area.X, Y: area.Y, W: area.W, H: masterH}, g.InnerH)
	}
	if nstack > 0 {
		stackY := area.Y
		stackH := area.H
		if nmaster > 0 {
			stackY = area.Y + masterH + g.InnerV
			stackH = area.H - masterH - g.InnerV
		}
		colStackV(frames[nmaster:], geom.Rect{X: area.X, Y: stackY, W: area.W, H: stackH}, g.InnerV)
	}
	return frames
}
