package wm

// SetFullscreen toggles c's fullscreen state. Entering fullscreen saves
// the client's geometry, floating state, and border width so leaving
// restores all three exactly.
func (w *World) SetFullscreen(c *Client, fullscreen bool) {
	if fullscreen == c.IsFullscreen {
		return
	}
	atoms := w.Disp.Atoms()
	if fullscreen {
		_ = w.Disp.SetWMState(c.Win, []uint32{atoms.NetWMStateFullscreen})
		c.IsFullscreen = true
		c.OldState = c.IsFloating
		c.OldBorderW = c.BorderW
		c.OldGeom = c.Geom
		c.BorderW = 0
		c.IsFloating = true
		w.applyGeom(c, c.Mon.MGeom)
		_ = w.Disp.Raise(c.Win)
	} else {
		_ = w.Disp.SetWMState(c.Win, nil)
		c.IsFullscreen = false
		c.IsFloating = c.OldState
		c.BorderW = c.OldBorderW
		w.applyGeom(c, c.OldGeom)
		w.Arrange(c.Mon)
	}
}

// ToggleFullscreen flips c's fullscreen state.
func (w *World) ToggleFullscreen(c *Client) {
	if c == nil {
		return
	}
	if w.Cfg.LockFullscreen && c.Mon.Sel != nil && c.Mon.Sel.IsFullscreen && c != c.Mon.Sel {
		return
	}
	w.SetFullscreen(c, !c.IsFullscreen)
}

// ToggleFloating flips c's floating bit, restoring/saving geometry across
// the transition. Fixed-size and fullscreen clients are left alone: a
// fixed client is floating by definition and a fullscreen one already
// overrides the layout.
func (w *World) ToggleFloating(c *Client) {
	if c == nil || c.IsFullscreen || c.IsFixed {
		return
	}
	c.IsFloating = !c.IsFloating
	if c.IsFloating {
		w.resizeClient(c, c.FloatGeom, false)
	} else {
		c.FloatGeom = c.Geom
	}
	w.Arrange(c.Mon)
}

// clearDoubleFullscreen resolves the ambiguity a tag switch can create:
// if the new view surfaces two or more fullscreen clients at once, all of
// them drop fullscreen; a single one keeps it.
func (w *World) clearDoubleFullscreen(m *Monitor) {
	var full []*Client
	for _, c := range m.Clients() {
		if c.IsVisible() && c.IsFullscreen {
			full = append(full, c)
		}
	}
	if len(full) < 2 {
		return
	}
	for _, c := range full {
		w.SetFullscreen(c, false)
	}
}
