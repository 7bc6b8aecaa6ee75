// Package floatpos implements the compact positioning language used to
// place and size floating clients relative to a monitor's work area.
// Each axis takes a position token and an optional size token; the
// token's trailing character selects absolute, relative, percentage,
// grid, anchored, or pointer-driven interpretation.
package floatpos

import (
	"fmt"

	"github.com/tagwm/tagwm/internal/geom"
)

// Grid is the per-axis cell count used by the 'G' position code.
type Grid struct {
	X, Y int
}

// DefaultGrid is the grid used when no per-axis override is configured.
var DefaultGrid = Grid{X: 5, Y: 5}

// Resolve parses spec and computes the new geometry for a client whose
// current geometry is cur, border width bw, sitting on a monitor whose
// work area is work. It returns ok=false only for a malformed spec.
// pointerX/pointerY are read only when the spec uses the 'm'/'M'
// pointer codes; Resolve cannot tell whether the caller supplied a real
// pointer position.
func Resolve(spec string, work, cur geom.Rect, bw int, grid Grid, pointerX, pointerY int) (geom.Rect, bool) {
	var x, y, w, h int
	var xCh, yCh, wCh, hCh byte

	n, err := fmt.Sscanf(spec, "%d%c %d%c %d%c %d%c", &x, &xCh, &y, &yCh, &w, &wCh, &h, &hCh)
	switch {
	case err == nil && n == 8:
		if xCh == 'm' || xCh == 'M' {
			x, y = pointerX, pointerY
		}
	default:
		// Try the 4-token form explicitly: Sscanf above partially
		// consumes input on a short match, so re-scan from scratch.
		n2, err2 := fmt.Sscanf(spec, "%d%c %d%c", &x, &xCh, &y, &yCh)
		if err2 != nil || n2 != 4 {
			return geom.Rect{}, false
		}
		switch xCh {
		case 'w', 'W':
			w, wCh = x, xCh
			h, hCh = y, yCh
			x, xCh = -1, 'C'
			y, yCh = -1, 'C'
		case 'p', 'P':
			w, wCh = x, xCh
			h, hCh = y, yCh
			x, xCh = 0, 'G'
			y, yCh = 0, 'G'
		case 'm', 'M':
			x, y = pointerX, pointerY
			w, wCh = 0, 0
			h, hCh = 0, 0
		default:
			w, wCh = 0, 0
			h, hCh = 0, 0
		}
	}

	out := cur
	out.X, out.W = getFloatPos(x, xCh, w, wCh, work.X, work.W, cur.X, cur.W, bw, grid.X)
	out.Y, out.H = getFloatPos(y, yCh, h, hCh, work.Y, work.H, cur.Y, cur.H, bw, grid.Y)
	return out, true
}

// getFloatPos resolves one axis of a parsed spec. pos/pCh and
// size/sCh are the position and size tokens for one axis; minP/maxS are
// the work-area origin and extent on that axis; cp/cs are the client's
// current position and size (border-exclusive); cbw is the border width;
// defGrid is the grid cell count used by the 'G' position code when pos<=0.
func getFloatPos(pos int, pCh byte, size int, sCh byte, minP, maxS, cp, cs, cbw, defGrid int) (int, int) {
	absP := pCh == 'A' || pCh == 'a'
	absS := sCh == 'A' || sCh == 'a'

	cs += 2 * cbw

	switch pCh {
	case 'A':
		cp = pos
	case 'a':
		cp += pos
	case 'x', 'y':
		cp = geom.Min(cp+pos, minP+maxS)
	case 'X', 'Y':
		cp = minP + geom.Min(pos, maxS)
	case 'S', 'C', 'Z':
		if pos != -1 {
			pos = geom.Max(geom.Min(pos, maxS), 0)
			switch pCh {
			case 'Z':
				cs = geom.Abs((cp + cs) - (minP + pos))
			case 'C':
				cs = geom.Abs((cp + cs/2) - (minP + pos))
			default:
				cs = geom.Abs(cp - (minP + pos))
			}
			cp = minP + pos
			sCh = 0
		}
	case 'G':
		if pos <= 0 {
			pos = defGrid
		}
		if size != 0 && pos >= 2 && (sCh == 'p' || sCh == 'P') {
			delta := (maxS - cs) / (pos - 1)
			rest := maxS - cs - delta*(pos-1)
			if sCh == 'P' {
				if size >= 1 && size <= pos {
					cp = minP + delta*(size-1)
				}
			} else {
				i := 0
				for i < pos && cp >= minP+delta*i+extra(i, pos, rest) {
					i++
				}
				idx := geom.Max(geom.Min(i+size, pos), 1) - 1
				cp = minP + delta*idx + extra(i, pos, rest)
			}
		}
	}

	switch sCh {
	case 'A':
		cs = size
	case 'a':
		cs = geom.Max(1, cs+size)
	case '%':
		if size > 0 {
			size = maxS * geom.Min(size, 100) / 100
			newSize := applyNormalSize(pCh, cp, size, minP, maxS)
			cp = adjustPosForSize(pCh, cp, cs, newSize, minP, maxS)
			cs = newSize
		}
	case 'h', 'w':
		if size != 0 {
			size += cs
			newSize := applyNormalSize(pCh, cp, size, minP, maxS)
			cp = adjustPosForSize(pCh, cp, cs, newSize, minP, maxS)
			cs = newSize
		}
	case 'H', 'W':
		newSize := applyNormalSize(pCh, cp, size, minP, maxS)
		cp = adjustPosForSize(pCh, cp, cs, newSize, minP, maxS)
		cs = newSize
	}

	if pCh == '%' {
		cp = minP + maxS*geom.Max(geom.Min(pos, 100), 0)/100 - cs/2
	}
	if pCh == 'm' || pCh == 'M' {
		cp = pos - cs/2
	}

	if !absP && cp < minP {
		cp = minP
	}
	if cp+cs > minP+maxS && !(absP && absS) {
		if absP || cp == minP {
			cs = minP + maxS - cp
		} else {
			cp = minP + maxS - cs
		}
	}

	return cp, geom.Max(cs-2*cbw, 1)
}

// extra reproduces the "(i > pos-rest ? i+rest-pos+1 : 0)" ternary from the
// original grid placement arithmetic.
func extra(i, pos, rest int) int {
	if i > pos-rest {
		return i + rest - pos + 1
	}
	return 0
}

// applyNormalSize reproduces the W/H ("normal size, position takes
// precedence") fallthrough shared by '%', 'w'/'h', and 'W'/'H'.
func applyNormalSize(pCh byte, cp, size, minP, maxS int) int {
	if pCh == 'S' && cp+size > minP+maxS {
		return minP + maxS - cp
	}
	if size > maxS {
		return maxS
	}
	return size
}

// adjustPosForSize reproduces the position adjustment that accompanies a
// size change under the 'C' (fixed center) and 'Z' (fixed right edge)
// position codes.
func adjustPosForSize(pCh byte, cp, oldSize, newSize, minP, maxS int) int {
	switch pCh {
	case 'C':
		delta := newSize - oldSize
		switch {
		case delta < 0 || cp-delta/2+newSize <= minP+maxS:
			return cp - delta/2
		case cp-delta/2 < minP:
			return minP
		case delta != 0:
			return minP + maxS
		}
		return cp
	case 'Z':
		return cp - (newSize - oldSize)
	default:
		return cp
	}
}
