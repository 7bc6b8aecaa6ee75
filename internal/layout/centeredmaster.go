package layout

import "github.com/tagwm/tagwm/internal/geom"

// CenteredMaster places the master column in the center of the work area
// and splits the stack evenly between the left and right columns, the
// right column taking the extra client when the stack count is odd.
func CenteredMaster(n int, p Params) []Frame {
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

	if nstack == 0 {
		colStackV(frames, area, g.InnerV)
		return frames
	}

	masterW := area.W
	if nmaster > 0 {
		masterW = int(float64(area.W) * p.MFact)
	}
	remaining := area.W - masterW - 2*g.InnerH

	leftN := nstack / 2
	rightN := nstack - leftN

	leftW, rightW := 0, 0
	switch {
	case leftN == 0:
		rightW = remaining
	case rightN == 0:
		leftW = remaining
	default:
		leftW = remaining / 2
		rightW = remaining - leftW
	}

	masterX := area.X + clampDim(leftW)
	if leftN == 0 {
		masterX = area.X
	}

	if nmaster > 0 {
		colStackV(frames[:nmaster], geom.Rect{X: masterX, Y: area.Y, W: masterW, H: area.H}, g.InnerV)
	}
	idx := nmaster
	if leftN > 0 {
		colStackV(frames[idx:idx+leftN], geom.Rect{X: area.X, Y: area.Y, W: clampDim(leftW), H: area.H}, g.InnerV)
		idx += leftN
	}
	if rightN > 0 {
		rightX := masterX + masterW + g.InnerH
		colStackV(frames[idx:idx+rightN], geom.Rect{X: rightX, Y: area.Y, W: clampDim(rightW), H: area.H}, g.InnerV)
	}
	return frames
}

// CenteredFloatingMaster renders the master client(s) at a smaller,
// centered floating-style size over the middle of the screen while the
// stack tiles normally across the full work area behind them. The master size follows the same mfact-of-work-area scaling as
// the other layouts, centered on both axes.
func CenteredFloatingMaster(n int, p Params) []Frame {
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

	if nstack > 0 {
		rowStackH(frames[nmaster:], area, g.InnerH)
	}

	if nmaster > 0 {
		mw := int(float64(area.W) * p.MFact)
		mh := area.H
		if nstack > 0 {
			mh = int(float64(area.H) * p.MFact)
		}
		mw = clampDim(mw)
		mh = clampDim(mh)
		mx := area.X + (area.W-mw)/2
		my := area.Y + (area.H-mh)/2
		master := geom.Rect{X: mx, Y: my, W: mw, H: mh}
		for i := 0; i < nmaster; i++ {
			off := i * g.InnerV
			frames[i] = Frame{geom.Rect{X: master.X + off, Y: master.Y + off, W: master.W, H: master.H}}
		}
	}
	return frames
}
