package layout

import (
	"strconv"

	"github.com/tagwm/tagwm/internal/geom"
)

// Monocle fills the work area with every visible client, stacked in
// z-order; only the top one is visible to the user.
func Monocle(n int, p Params) []Frame {
	if n == 0 {
		return nil
	}
	area := p.workWithOuterGaps(n)
	frames := make([]Frame, n)
	for i := range frames {
		frames[i] = Frame{area}
	}
	return frames
}

// MonocleSymbol renders the "[n]" bar symbol override for monocle layout.
func MonocleSymbol(n int) string {
	return bracket("[", n, "]")
}

func bracket(open string, n int, close string) string {
	return open + strconv.Itoa(n) + close
}

// Deck behaves like Tile but the stack clients occupy the same rectangle
// stacked atop one another; only the topmost is visible.
func Deck(n int, p Params) []Frame {
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
		stackArea := geom.Rect{X: stackX, Y: area.Y, W: clampDim(stackW), H: clampDim(area.H)}
		for i := nmaster; i < n; i++ {
			frames[i] = Frame{stackArea}
		}
	}
	return frames
}

// DeckSymbol renders the "D[n]" bar symbol override.
func DeckSymbol(n int) string {
	return "D" + bracket("[", n, "]")
}
