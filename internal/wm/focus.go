package wm

// Focus-stack argument encoding: small non-negative values address an
// absolute position in the visible client order, FocusRelative+delta
// steps relative to the current selection, and FocusPrev jumps to the
// most recently used visible client other than the current one.
const (
	FocusRelative = 2000
	FocusPrev     = 3000
)

// Focus gives input focus to c, or to the topmost visible client on the
// stack of the selected monitor when c is nil. Unfocusing the previously
// focused client happens first so a client's EnterNotify handler never
// sees two clients focused at once.
func (w *World) Focus(c *Client) {
	if c == nil || !c.IsVisible() {
		c = nil
		for s := w.SelMon.stack; s != nil; s = s.snext {
			if s.IsVisible() {
				c = s
				break
			}
		}
	}
	if w.SelMon.Sel != nil && w.SelMon.Sel != c {
		w.unfocus(w.SelMon.Sel, false)
	}
	if c != nil {
		if c.Mon != w.SelMon {
			w.SelMon = c.Mon
		}
		if c.IsUrgent {
			w.SetUrgent(c, false)
		}
		w.SelMon.DetachStack(c)
		w.SelMon.AttachStack(c)
		_ = w.Disp.SetBorderPixel(c.Win, w.sel().Border)
		w.setFocus(c)
	} else {
		_ = w.Disp.SetInputFocus(w.Disp.Root())
	}
	w.SelMon.Sel = c
	w.publishActiveWindow()
}

func (w *World) unfocus(c *Client, setFocus bool) {
	if c == nil {
		return
	}
	_ = w.Disp.SetBorderPixel(c.Win, w.norm().Border)
	if setFocus {
		_ = w.Disp.SetInputFocus(w.Disp.Root())
	}
}

// setFocus gives c input focus and, when it advertises WM_TAKE_FOCUS,
// also sends that ICCCM message.
func (w *World) setFocus(c *Client) {
	if !c.NeverFocus {
		_ = w.Disp.SetInputFocus(c.Win)
	}
	atoms := w.Disp.Atoms()
	if ok, _ := w.Disp.SupportsProtocol(c.Win, atoms.WMTakeFocus); ok {
		_ = w.Disp.SendTakeFocus(c.Win)
	}
}

func (w *World) sel() colorPixels  { return w.SelBorder }
func (w *World) norm() colorPixels { return w.NormBorder }

// colorPixels is populated by cmd/tagwm once the drawable color schemes
// are allocated; wm only needs the border pixel out of it.
type colorPixels struct {
	Border uint32
}

// SetBorderColors hands the allocated border pixels to the focus manager
// once the drawable color schemes are ready.
func (w *World) SetBorderColors(sel, norm uint32) {
	w.SelBorder.Border = sel
	w.NormBorder.Border = norm
}

// FocusStack moves focus through the visible clients on the selected
// monitor. arg uses the encoding above: FocusRelative±n steps and wraps,
// FocusPrev picks the previous selection, and a bare index focuses that
// position in the visible order. Navigation is blocked while the
// selected client is fullscreen and the lock-fullscreen option is on.
func (w *World) FocusStack(arg int) {
	m := w.SelMon
	if m.Sel == nil {
		return
	}
	if w.Cfg.LockFullscreen && m.Sel.IsFullscreen {
		return
	}

	if arg == FocusPrev {
		for s := m.stack; s != nil; s = s.snext {
			if s != m.Sel && s.IsVisible() {
				w.Focus(s)
				w.restack(m)
				return
			}
		}
		return
	}

	var visible []*Client
	for _, c := range m.Clients() {
		if c.IsVisible() {
			visible = append(visible, c)
		}
	}
	n := len(visible)
	if n == 0 {
		return
	}

	if arg >= 0 && arg < FocusRelative-1000 {
		idx := arg
		if idx >= n {
			idx = n - 1
		}
		w.Focus(visible[idx])
		w.restack(m)
		return
	}

	dir := arg - FocusRelative
	idx := -1
	for i, c := range visible {
		if c == m.Sel {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	next := ((idx+dir)%n + n) % n
	w.Focus(visible[next])
	w.restack(m)
}

// PushStack moves the selected client by dir within the attach order,
// swapping it with the nearest visible neighbor in that direction. The
// focus stack is untouched; only the tiling order changes.
func (w *World) PushStack(dir int) {
	m := w.SelMon
	sel := m.Sel
	if sel == nil || sel.IsFloating {
		return
	}
	clients := m.Clients()
	idx := -1
	for i, c := range clients {
		if c == sel {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	step := 1
	if dir < 0 {
		step = -1
	}
	for j := idx + step; j >= 0 && j < len(clients); j += step {
		if !clients[j].IsVisible() || clients[j].IsFloating {
			continue
		}
		clients[idx], clients[j] = clients[j], clients[idx]
		m.rebuildClientList(clients)
		w.Arrange(m)
		return
	}
}

// SetUrgent toggles c's urgency hint; the bar's tag indicators mirror it.
func (w *World) SetUrgent(c *Client, urgent bool) {
	c.IsUrgent = urgent
}

// warpToSel moves the pointer to the selected client's center (or the
// selected monitor's center when nothing is focused), unless the pointer
// is already inside that client or hovering over a bar strip.
func (w *World) warpToSel() {
	px, py, _, err := w.Disp.QueryPointer()
	if err != nil {
		return
	}
	c := w.SelMon.Sel
	if c != nil && c.Geom.Contains(px, py) {
		return
	}
	for m := w.Mons; m != nil; m = m.Next {
		if m.MGeom.Contains(px, py) && !m.WGeom.Contains(px, py) {
			return
		}
	}
	var x, y int
	if c != nil {
		x, y = c.Geom.Center()
	} else {
		x, y = w.SelMon.WArea().Center()
	}
	_ = w.Disp.WarpPointer(w.Disp.Root(), x, y)
}

// AttachClients reassigns every client on src to dst, preserving attach
// order — used when a monitor is unplugged.
func (w *World) AttachClients(src, dst *Monitor) {
	for _, c := range src.Clients() {
		src.Detach(c)
		src.DetachStack(c)
		dst.Attach(c)
		dst.AttachStack(c)
		c.Mon = dst
	}
}
