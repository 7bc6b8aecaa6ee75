// Package bar composes and draws the per-monitor status bar out of an
// ordered list of modules, each a (width, draw, click) triple placed by
// alignment. The composer itself knows nothing about window management;
// modules capture whatever state they need as closures.
package bar

import (
	"github.com/tagwm/tagwm/internal/drawable"
	"github.com/tagwm/tagwm/internal/geom"
)

// Alignment positions a module within the bar's growing left/right
// ranges.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
	AlignCenter
	AlignNone
	// AlignLeftOfLeft and AlignRightOfRight are placed exactly like
	// AlignLeft and AlignRight: every left/right module already chains
	// immediately after the previous one on its side.
	AlignLeftOfLeft
	AlignRightOfRight
)

// Context is everything a module's Width/Draw/Click functions need: the
// drawable surface to paint into and which monitor this bar belongs to.
// internal/wm supplies the concrete monitor/client data via closures
// captured when the module table is built, so Context stays package-
// agnostic (bar never imports wm, avoiding an import cycle).
type Context struct {
	Draw    drawable.Drawable
	MonNum  int
	Height  int
}

// Module is one (width, draw, click) triple participating in bar
// composition.
type Module struct {
	Name  string
	Align Alignment
	// MonFilter, when non-nil, restricts this module to monitors it
	// returns true for. nil matches every monitor.
	MonFilter func(monNum int) bool
	Width     func(ctx Context) int
	DrawFn    func(ctx Context, x, w int)
	// ClickFn receives localX relative to the module's own left edge
	// (0 <= localX < w), so a module never needs its screen-space
	// placement to resolve which part of itself was clicked.
	ClickFn func(ctx Context, localX, w int, button uint8)
}

// Bar is one monitor's horizontal strip of composed modules.
type Bar struct {
	Draw    drawable.Drawable
	Modules []Module
	Geom    geom.Rect
}

// placement is one module's resolved bar-relative span, computed during
// Compose and consulted again by Click.
type placement struct {
	mod  Module
	x, w int
}

// Compose lays the bar out with two growing ranges starting at the bar's
// full width, shrunk from each edge as left/right modules claim space,
// with center modules splitting whatever remains.
func (b *Bar) Compose(monNum int) []placement {
	full := b.Geom.W
	lx, lw := 0, full
	rx, rw := 0, full

	var lefts, rights, centers []Module
	for _, m := range b.Modules {
		if m.MonFilter != nil && !m.MonFilter(monNum) {
			continue
		}
		switch m.Align {
		case AlignLeft, AlignLeftOfLeft:
			lefts = append(lefts, m)
		case AlignRight, AlignRightOfRight:
			rights = append(rights, m)
		case AlignCenter:
			centers = append(centers, m)
		}
	}

	ctx := Context{Draw: b.Draw, MonNum: monNum, Height: b.Geom.H}
	var placements []placement

	cursor := lx
	for _, m := range lefts {
		w := clamp(m.Width(ctx), lw)
		placements = append(placements, placement{m, cursor, w})
		cursor += w
		lw -= w
	}
	lx = cursor

	cursor = rx + rw
	for i := len(rights) - 1; i >= 0; i-- {
		m := rights[i]
		w := clamp(m.Width(ctx), rw)
		cursor -= w
		placements = append(placements, placement{m, cursor, w})
		rw -= w
	}
	rx = cursor

	if len(centers) > 0 {
		avail := rx - lx
		cursor := lx
		total := 0
		widths := make([]int, len(centers))
		for i, m := range centers {
			widths[i] = clamp(m.Width(ctx), avail-total)
			total += widths[i]
		}
		cursor += (avail - total) / 2
		for i, m := range centers {
			placements = append(placements, placement{m, cursor, widths[i]})
			cursor += widths[i]
		}
	}

	for _, m := range b.Modules {
		if m.Align != AlignNone {
			continue
		}
		if m.MonFilter != nil && !m.MonFilter(monNum) {
			continue
		}
		placements = append(placements, placement{m, 0, full})
	}

	for _, p := range placements {
		p.mod.DrawFn(ctx, p.x, p.w)
	}
	return placements
}

// Click dispatches a button press at bar-relative x to whichever module's
// placement from the last Compose contains it.
func (b *Bar) Click(placements []placement, monNum int, x int, button uint8) {
	ctx := Context{Draw: b.Draw, MonNum: monNum, Height: b.Geom.H}
	for _, p := range placements {
		if x >= p.x && x < p.x+p.w && p.mod.ClickFn != nil {
			p.mod.ClickFn(ctx, x-p.x, p.w, button)
			return
		}
	}
}

func clamp(w, max int) int {
	if max < 0 {
		return 0
	}
	if w > max {
		return max
	}
	if w < 0 {
		return 0
	}
	return w
}
