package wm

import (
	"github.com/tagwm/tagwm/internal/display"
	"github.com/tagwm/tagwm/internal/geom"
	"github.com/tagwm/tagwm/internal/layout"
)

// Arrange recomputes and applies geometry for every client on m: floating
// and fullscreen clients keep (or are restored to) their saved geometry,
// tileable clients get the frames the current layout function computes.
// Passing m == nil arranges every monitor.
func (w *World) Arrange(m *Monitor) {
	if m == nil {
		for mon := w.Mons; mon != nil; mon = mon.Next {
			w.Arrange(mon)
		}
		return
	}
	w.showHideClients(m)
	entry := m.Layout()
	m.LtSymbol = entry.Symbol

	tileable := m.Tileable()
	if entry.Arrange != nil && len(tileable) > 0 {
		params := layout.Params{
			Work:      m.WArea(),
			NMaster:   m.NMaster,
			MFact:     m.MFact,
			Gaps:      m.Gaps,
			Smartgaps: w.Cfg.Smartgaps,
		}
		frames := entry.Arrange(len(tileable), params)
		switch entry.Symbol {
		case "[M]":
			m.LtSymbol = "[" + itoaSmall(len(tileable)) + "]"
		case "D[]":
			m.LtSymbol = "D[" + itoaSmall(len(tileable)) + "]"
		}
		for i, c := range tileable {
			if i >= len(frames) {
				break
			}
			w.resizeClient(c, frames[i].Rect, false)
		}
	}
	w.restack(m)
}

func itoaSmall(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [8]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// showHideClients brings every visible client's window back on-screen
// and parks every hidden one far off the left edge. Hidden windows stay
// mapped: unmapping them would come back as an UnmapNotify the unmap
// handler cannot tell apart from the client withdrawing itself.
func (w *World) showHideClients(m *Monitor) {
	for _, c := range m.Clients() {
		if c.IsVisible() {
			_ = w.Disp.MoveResize(c.Win, c.Geom)
			if c.IsFloating && !c.IsFullscreen {
				w.resizeClient(c, c.FloatGeom, false)
			}
			_ = w.Disp.Map(c.Win)
		} else {
			hidden := c.Geom
			hidden.X = -2 * (c.Geom.W + 2*c.BorderW)
			_ = w.Disp.MoveResize(c.Win, hidden)
		}
	}
}

// resizeClient moves/resizes c to r after clamping to its size hints,
// then tells the display.
func (w *World) resizeClient(c *Client, r geom.Rect, interact bool) {
	r = c.ApplySizeHints(r, interact, w.Cfg.ResizeHints)
	w.applyGeom(c, r)
}

// applyGeom pushes r to the display verbatim, bypassing size hints —
// fullscreen and snapshot restores must land bit-for-bit. A window that
// vanished mid-call produces an ignorable error; the client stays valid
// in the model until its DestroyNotify arrives.
func (w *World) applyGeom(c *Client, r geom.Rect) {
	c.Geom = r
	if err := w.Disp.Configure(c.Win, r, c.BorderW); err != nil {
		if display.Classify(err) == display.ErrorSevere {
			w.Log.Warn("configure failed", "win", c.Win, "err", err)
		} else {
			w.Log.Debug("configure ignored", "win", c.Win, "err", err)
		}
		return
	}
	_ = w.Disp.MoveResize(c.Win, r)
}

// restack raises the selected client (or the whole fullscreen window) and
// orders the rest of the stack beneath it, then updates the stacking
// EWMH property.
func (w *World) restack(m *Monitor) {
	if m.Sel == nil {
		return
	}
	if m.Sel.IsFloating || m.Layout().Arrange == nil {
		_ = w.Disp.Raise(m.Sel.Win)
	}
	if m.Layout().Arrange != nil {
		stack := m.Stack()
		var prev display.Window
		for i := len(stack) - 1; i >= 0; i-- {
			c := stack[i]
			if !c.IsVisible() {
				continue
			}
			if prev != 0 {
				_ = w.Disp.StackAbove(c.Win, prev)
			}
			prev = c.Win
		}
	}
	w.publishStacking()
}
