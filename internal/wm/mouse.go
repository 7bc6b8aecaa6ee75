package wm

import "github.com/tagwm/tagwm/internal/geom"

// dragSession tracks a live mouse-driven move or resize. The main event
// loop's MotionNotify and ButtonRelease handlers advance it, so no nested
// event loop runs during a drag. Snapping is applied by StepMove; a drag
// ends only on ButtonRelease, and a client dropped over another monitor
// stays attached to its original monitor.
type dragSession struct {
	client   *Client
	resizing bool

	startGeom geom.Rect
	startRootX, startRootY int
}

// BeginMove starts a floating move drag for c at the pointer location
// (rootX, rootY). Non-floating clients are floated first; a tiled client
// can't be drag-moved without detaching it from the layout.
func (w *World) BeginMove(c *Client, rootX, rootY int) {
	if c == nil || c.IsFullscreen {
		return
	}
	if !c.IsFloating {
		c.IsFloating = true
		c.FloatGeom = c.Geom
		w.Arrange(c.Mon)
	}
	w.drag = &dragSession{client: c, startGeom: c.Geom, startRootX: rootX, startRootY: rootY}
	_ = w.Disp.Raise(c.Win)
}

// StepMove applies the pointer's current position to the dragged client,
// snapping to the work area's edges within SnapPx.
func (w *World) StepMove(rootX, rootY int) {
	d := w.drag
	if d == nil || d.resizing {
		return
	}
	c := d.client
	r := d.startGeom
	r.X = d.startGeom.X + (rootX - d.startRootX)
	r.Y = d.startGeom.Y + (rootY - d.startRootY)

	area := c.Mon.WArea()
	r.X += snapDelta(r.X, r.X+r.W+c.BorderW*2, area.X, area.Right(), w.Cfg.SnapPx)
	r.Y += snapDelta(r.Y, r.Y+r.H+c.BorderW*2, area.Y, area.Bottom(), w.Cfg.SnapPx)

	c.Geom = r
	c.FloatGeom = r
	_ = w.Disp.MoveResize(c.Win, r)
}

// EndMove finishes the drag, leaving the client's geometry as last applied.
func (w *World) EndMove() { w.drag = nil }

// BeginResize starts a floating resize drag for c; the bottom-right
// corner tracks the pointer for the duration.
func (w *World) BeginResize(c *Client, rootX, rootY int) {
	if c == nil || c.IsFullscreen {
		return
	}
	if !c.IsFloating {
		c.IsFloating = true
		c.FloatGeom = c.Geom
		w.Arrange(c.Mon)
	}
	w.drag = &dragSession{client: c, resizing: true, startGeom: c.Geom, startRootX: rootX, startRootY: rootY}
	_ = w.Disp.Raise(c.Win)
}

// StepResize grows or shrinks the dragged client's bottom-right corner to
// track the pointer, clamped to its size hints.
func (w *World) StepResize(rootX, rootY int) {
	d := w.drag
	if d == nil || !d.resizing {
		return
	}
	c := d.client
	r := d.startGeom
	r.W = clampPositive(d.startGeom.W + (rootX - d.startRootX))
	r.H = clampPositive(d.startGeom.H + (rootY - d.startRootY))
	r = c.ApplySizeHints(r, true, false)

	c.Geom = r
	c.FloatGeom = r
}

// EndResize finishes a resize drag and applies the final geometry.
func (w *World) EndResize() {
	if w.drag != nil {
		c := w.drag.client
		_ = w.Disp.MoveResize(c.Win, c.Geom)
	}
	w.drag = nil
}

func clampPositive(v int) int {
	if v < 1 {
		return 1
	}
	return v
}

// snapDelta returns the offset needed to snap [lo, hi) to the nearest edge
// of [boundLo, boundHi) within snap pixels, or 0 if nothing is close
// enough.
func snapDelta(lo, hi, boundLo, boundHi, snap int) int {
	if snap <= 0 {
		return 0
	}
	if d := boundLo - lo; d != 0 && abs(d) <= snap {
		return d
	}
	if d := boundHi - hi; d != 0 && abs(d) <= snap {
		return d
	}
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
