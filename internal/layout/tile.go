package layout

import "github.com/tagwm/tagwm/internal/geom"

// Tile places the first p.NMaster clients in a master column on the left
// occupying p.MFact of the work width; remaining clients stack vertically
// in the right column. If there is no stack (or NMaster==0), the occupied
// side takes the full width.
func Tile(n int, p Params) []Frame {
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

	masterW := area.W
	if nmaster > 0 && nstack > 0 {
		masterW = int(float64(area.W) * p.MFact)
	}

	if nmaster > 0 {
		colStackV(frames[:nmaster], geom.Rect{X: area.X, Y: area.Y, W: masterW, H: area.H}, g.InnerV)
	}
	if nstack > 0 {
		stackX := area.X
		stackW := area.W
		if nmaster > 0 {
			stackX = area.X + masterW + g.InnerH
			stackW = area.W - masterW - g.InnerH
		}
		colStackV(frames[nmaster:], geom.Rect{X: stackX, Y: area.Y, W: stackW, H: area.H}, g.InnerV)
	}
	return frames
}

// colStackV lays out len(out) clients stacked vertically within col,
// separated by gap pixels, the remainder going to the last client.
func colStackV(out []Frame, col geom.Rect, gap int) {
	n := len(out)
	if n == 0 {
		return
	}
	totalGap := gap * (n - 1)
	h := (col.H - totalGap) / n
	h = clampDim(h)
	y := col.Y
	for i := 0; i < n; i++ {
		height := h
		if i == n-1 {
			height = clampDim(col.H - (y - col.Y))
		}
		out[i] = Frame{geom.Rect{X: col.X, Y: y, W: clampDim(col.W), H: height}}
		y += height + gap
	}
}

// rowStackH is colStackV's horizontal counterpart: clients side by side.
func rowStackH(out []Frame, row geom.Rect, gap int) {
	n := len(out)
	if n == 0 {
		return
	}
	totalGap := gap * (n - 1)
	w := (row.W - totalGap) / n
	w = clampDim(w)
	x := row.X
	for i := 0; i < n; i++ {
		width := w
		if i == n-1 {
			width = clampDim(row.W - (x - row.X))
		}
		out[i] = Frame{geom.Rect{X: x, Y: row.Y, W: width, H: clampDim(row.H)}}
		x += width + gap
	}
}
