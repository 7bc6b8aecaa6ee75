package layout

import "github.com/tagwm/tagwm/internal/geom"

// sqrtCeil returns ceil(sqrt(n)) for n >= 0 without floating point, to
// keep the grid layouts' column counts exactly reproducible.
func sqrtCeil(n int) int {
	if n <= 0 {
		return 0
	}
	c := 1
	for c*c < n {
		c++
	}
	return c
}

func ceilDiv(a, b int) int {
	if b == 0 {
		return 0
	}
	return (a + b - 1) / b
}

// Grid arranges n clients into a ⌈√n⌉ × ⌈n/⌈√n⌉⌉ grid; the
// remainder beyond an even division is distributed to the leftmost
// columns, which get one extra row each.
func Grid(n int, p Params) []Frame {
	if n == 0 {
		return nil
	}
	area := p.workWithOuterGaps(n)
	g := p.gaps(n)

	cols := sqrtCeil(n)
	rows := ceilDiv(n, cols)
	base := n / cols
	extra := n % cols

	frames := make([]Frame, n)
	colW := (area.W - g.InnerH*(cols-1)) / cols
	colW = clampDim(colW)

	idx := 0
	x := area.X
	for c := 0; c < cols; c++ {
		nRows := base
		if c < extra {
			nRows++
		}
		if nRows == 0 {
			continue
		}
		width := colW
		if c == cols-1 {
			width = clampDim(area.Right() - x)
		}
		col := geom.Rect{X: x, Y: area.Y, W: width, H: area.H}
		colStackV(frames[idx:idx+nRows], col, g.InnerV)
		idx += nRows
		x += width + g.InnerH
	}
	_ = rows
	return frames
}

// GaplessGrid is Grid's variant that never leaves a dangling empty cell:
// every column after the first absorbs the previous column's deficit so
// row counts differ by at most one and no rectangle is left unassigned.
func GaplessGrid(n int, p Params) []Frame {
	if n == 0 {
		return nil
	}
	area := p.workWithOuterGaps(n)
	g := p.gaps(n)

	cols := sqrtCeil(n)
	frames := make([]Frame, n)
	colW := (area.W - g.InnerH*(cols-1)) / cols
	colW = clampDim(colW)

	remaining := n
	x := area.X
	idx := 0
	for c := 0; c < cols; c++ {
		colsLeft := cols - c
		nRows := ceilDiv(remaining, colsLeft)
		if nRows > remaining {
			nRows = remaining
		}
		width := colW
		if c == cols-1 {
			width = clampDim(area.Right() - x)
		}
		col := geom.Rect{X: x, Y: area.Y, W: width, H: area.H}
		colStackV(frames[idx:idx+nRows], col, g.InnerV)
		idx += nRows
		remaining -= nRows
		x += width + g.InnerH
	}
	return frames
}

// HorizGrid stacks n clients in equal-height horizontal bands spanning the
// full work width, the remainder going to the last band.
func HorizGrid(n int, p Params) []Frame {
	if n == 0 {
		return nil
	}
	area := p.workWithOuterGaps(n)
	g := p.gaps(n)
	frames := make([]Frame, n)
	colStackV(frames, area, g.InnerV)
	return frames
}

// NRowGrid arranges clients row-first into p.Rows rows (falling back to
// ⌈√n⌉ rows when p.Rows<=0), each row split evenly into columns
// left-to-right. Exactly two clients always collapse to a single row and
// sit side by side, regardless of the configured row count.
func NRowGrid(n int, p Params) []Frame {
	if n == 0 {
		return nil
	}
	area := p.workWithOuterGaps(n)
	g := p.gaps(n)

	rows := p.Rows
	if n == 2 {
		rows = 1
	} else if rows <= 0 {
		rows = sqrtCeil(n)
	}
	if rows > n {
		rows = n
	}

	base := n / rows
	extra := n % rows

	frames := make([]Frame, n)
	rowH := (area.H - g.InnerV*(rows-1)) / rows
	rowH = clampDim(rowH)

	idx := 0
	y := area.Y
	for r := 0; r < rows; r++ {
		nCols := base
		if r < extra {
			nCols++
		}
		if nCols == 0 {
			continue
		}
		height := rowH
		if r == rows-1 {
			height = clampDim(area.Bottom() - y)
		}
		row := geom.Rect{X: area.X, Y: y, W: area.W, H: height}
		rowStackH(frames[idx:idx+nCols], row, g.InnerH)
		idx += nCols
		y += height + g.InnerV
	}
	return frames
}
