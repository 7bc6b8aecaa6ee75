package wm

import "github.com/tagwm/tagwm/internal/display"

// Run drains display events and dispatches each to its handler until
// Quit is called or the event channel closes. The dispatch table is a
// switch over a dense, small enum; events with no handler are dropped.
func (w *World) Run() {
	w.Running = true
	for w.Running {
		ev, ok := <-w.Disp.Events()
		if !ok {
			return
		}
		w.dispatch(ev)
	}
}

// Quit stops Run after its current iteration.
func (w *World) Quit() { w.Running = false }

// Dispatch routes one event through the same handler table Run uses.
// Exported so a caller that needs to intercept events for windows
// outside the managed-client tree (the bar, the systray host) can drive
// its own loop over Disp.Events() instead of calling Run.
func (w *World) Dispatch(ev display.Event) {
	w.dispatch(ev)
}

func (w *World) dispatch(ev display.Event) {
	switch ev.Kind {
	case display.EventMapRequest:
		w.onMapRequest(ev)
	case display.EventConfigureRequest:
		w.onConfigureRequest(ev)
	case display.EventUnmapNotify:
		w.onUnmapNotify(ev)
	case display.EventDestroyNotify:
		w.onDestroyNotify(ev)
	case display.EventEnterNotify:
		w.onEnterNotify(ev)
	case display.EventPropertyNotify:
		w.onPropertyNotify(ev)
	case display.EventClientMessage:
		w.onClientMessage(ev)
	case display.EventKeyPress:
		w.onKeyPress(ev)
	case display.EventButtonPress:
		w.onButtonPress(ev)
	case display.EventMotionNotify:
		w.onMotionNotify(ev)
	case display.EventButtonRelease:
		w.onButtonRelease(ev)
	case display.EventConfigureNotify:
		w.onConfigureNotify(ev)
	case display.EventFocusIn:
		w.onFocusIn(ev)
	}
}

// onFocusIn re-asserts the selected client's focus when some client set
// the X input focus on itself without going through the focus manager.
func (w *World) onFocusIn(ev display.Event) {
	sel := w.SelMon.Sel
	if sel != nil && ev.Window != sel.Win {
		w.setFocus(sel)
	}
}

func (w *World) onButtonRelease(ev display.Event) {
	if w.drag == nil {
		return
	}
	if w.drag.resizing {
		w.EndResize()
	} else {
		w.EndMove()
	}
}

// onConfigureNotify reacts to the root window's geometry changing, which
// is how monitor hotplug and resolution switches announce themselves.
func (w *World) onConfigureNotify(ev display.Event) {
	if ev.Window != w.Disp.Root() {
		return
	}
	if err := w.AttachMonitors(); err != nil {
		w.Log.Warn("monitor rescan failed", "err", err)
		return
	}
	w.Focus(nil)
	w.Arrange(nil)
}

func (w *World) onKeyPress(ev display.Event) {
	if w.Binder != nil {
		w.Binder.DispatchKey(ev.Mods, ev.Detail)
	}
}

func (w *World) onButtonPress(ev display.Event) {
	c := w.ClientOf(ev.Window)
	if c != nil {
		if mon := w.MonitorAt(ev.RootX, ev.RootY); mon != nil {
			w.SelMon = mon
		}
		w.Focus(c)
	}
	if w.Binder != nil {
		w.Binder.DispatchButton(ev.Mods, ev.Detail, c, ev.RootX, ev.RootY)
	}
}

func (w *World) onMotionNotify(ev display.Event) {
	if w.drag == nil {
		return
	}
	if w.drag.resizing {
		w.StepResize(ev.X, ev.Y)
	} else {
		w.StepMove(ev.X, ev.Y)
	}
}

func (w *World) onMapRequest(ev display.Event) {
	if c := w.ClientOf(ev.Window); c != nil {
		_ = w.Disp.Map(c.Win)
		return // already managed; a MapRequest for a withdrawn client re-maps it, not a re-adopt
	}
	if or, err := w.Disp.IsOverrideRedirect(ev.Window); err == nil && or {
		return
	}
	c := w.manage(ev.Window)
	if c == nil {
		return
	}
	_ = w.Disp.Map(c.Win)
	w.Arrange(c.Mon)
	w.Focus(c)
}

// manage adopts a newly seen top-level window: reads its hints, applies
// rules, tries swallowing, and attaches it to its target monitor's
// client and stack lists.
func (w *World) manage(win display.Window) *Client {
	r, err := w.Disp.GetGeometry(win)
	if err != nil {
		return nil
	}
	class, instance, _ := w.Disp.WMClass(win)
	name, _ := w.Disp.WMName(win)
	pid, _, _ := w.Disp.ProcessID(win)

	c := &Client{
		Win:      win,
		Name:     name,
		Class:    class,
		Instance: instance,
		Geom:     r,
		FloatGeom: r,
		BorderW:  w.Cfg.BorderPx,
		PID:      pid,
		Mon:      w.SelMon,
	}
	if keep, err := w.Disp.MotifBorder(win); err == nil && !keep {
		c.BorderW = 0
	}
	if hints, err := w.Disp.SizeHints(win); err == nil {
		applyDisplaySizeHints(c, hints)
	}
	if wh, err := w.Disp.WMHints(win); err == nil {
		c.NeverFocus = wh.HasInput && !wh.Input
		c.IsUrgent = wh.Urgent
	}
	if types, err := w.Disp.WindowTypeAtoms(win); err == nil {
		atoms := w.Disp.Atoms()
		for _, t := range types {
			switch t {
			case atoms.NetWMWindowTypeDialog:
				c.WindowType, c.IsFloating = "DIALOG", true
			case atoms.NetWMWindowTypeUtility:
				c.WindowType, c.IsFloating = "UTILITY", true
			case atoms.NetWMWindowTypeToolbar:
				c.WindowType, c.IsFloating = "TOOLBAR", true
			case atoms.NetWMWindowTypeSplash:
				c.WindowType, c.IsFloating = "SPLASH", true
			default:
				continue
			}
			break
		}
	}
	transient := false
	if t, ok, _ := w.Disp.TransientFor(win); ok {
		if tc := w.ClientOf(t); tc != nil {
			c.Mon = tc.Mon
			c.Tags = tc.Tags
			c.IsFloating = true
			transient = true
		}
	}

	// A transient window inherits its parent's monitor and tags outright;
	// the rule table is only consulted otherwise.
	if !transient {
		w.ApplyRules(c)
	}
	if c.Mon == nil {
		c.Mon = w.SelMon
	}
	c.Geom = c.Geom.Clamp(c.Mon.MGeom)
	if c.Geom.Y < c.Mon.WGeom.Y && c.Geom.Y+c.Geom.H > c.Mon.WGeom.Y {
		// Keep a fresh window from covering a top bar unless it already
		// straddled it when we found it.
		if r.Y >= c.Mon.WGeom.Y {
			c.Geom.Y = c.Mon.WGeom.Y
		}
	}
	c.FloatGeom = c.Geom

	c.Mon.Attach(c)
	c.Mon.AttachStack(c)
	w.clients[c.Win] = c

	_ = w.Disp.SetBorderWidth(c.Win, c.BorderW)
	_ = w.Disp.Listen(win, display.ClientEventMask)
	_ = w.Disp.SetWMDesktop(win, pertagIndexOrZero(c.Tags, len(w.Cfg.Tags)))
	if w.Binder != nil {
		w.Binder.GrabClient(win)
	}

	if t := w.TrySwallow(c); t != nil {
		// The terminal record adopted c's window; it is what the caller
		// should map and focus.
		return t
	}
	w.publishClientList()
	return c
}

func pertagIndexOrZero(mask uint32, n int) int {
	idx := pertagIndex(mask, n)
	if idx == 0 {
		return 0
	}
	return idx - 1
}

func applyDisplaySizeHints(c *Client, h display.SizeHints) {
	c.MinW, c.MinH = h.MinW, h.MinH
	c.MaxW, c.MaxH = h.MaxW, h.MaxH
	c.IncW, c.IncH = h.IncW, h.IncH
	c.BaseW, c.BaseH = h.BaseW, h.BaseH
	c.HasAspect = h.HasAspect
	c.MinAspect, c.MaxAspect = h.MinA, h.MaxA
	c.IsFixed = h.HasMax && h.HasMin && h.MaxW == h.MinW && h.MaxH == h.MinH && h.MaxW > 0
	if c.IsFixed {
		c.IsFloating = true
	}
}

func (w *World) onConfigureRequest(ev display.Event) {
	c := w.ClientOf(ev.Window)
	if c == nil {
		// Unmanaged window (override-redirect or not yet mapped): honor
		// the request verbatim.
		_ = w.Disp.Configure(ev.Window, ev.Geom, ev.BorderW)
		return
	}
	if c.IsFloating || c.Mon.Layout().Arrange == nil {
		r := c.Geom
		if ev.ConfigMask&0x01 != 0 {
			r.X = ev.Geom.X
		}
		if ev.ConfigMask&0x02 != 0 {
			r.Y = ev.Geom.Y
		}
		if ev.ConfigMask&0x04 != 0 {
			r.W = ev.Geom.W
		}
		if ev.ConfigMask&0x08 != 0 {
			r.H = ev.Geom.H
		}
		w.resizeClient(c, r, false)
	} else {
		_ = w.Disp.Configure(c.Win, c.Geom, c.BorderW)
	}
}

func (w *World) onUnmapNotify(ev display.Event) {
	c := w.ClientOf(ev.Window)
	if c == nil {
		return
	}
	if ev.Synthetic {
		// A withdraw request (or an unmap this process issued): the
		// client is stepping out of management, not dying.
		_ = w.Disp.SetWithdrawn(ev.Window)
		return
	}
	w.unmanage(c)
}

func (w *World) onDestroyNotify(ev display.Event) {
	if c := w.ClientOf(ev.Window); c != nil {
		w.unmanage(c)
		return
	}
	// The hidden original window of a swallowed terminal died: the
	// swallow can no longer be undone, so sever the link and let the
	// adopted window live out the terminal record's life.
	for _, t := range w.clients {
		if t.Swallows != nil && t.Swallows.Win == ev.Window {
			t.Swallows.SwallowedBy = nil
			t.Swallows = nil
			return
		}
	}
}

func (w *World) unmanage(c *Client) {
	// A record that swallowed another window isn't dying with it: it
	// takes its own window back instead of leaving the lists.
	if c.Swallows != nil {
		w.Unswallow(c)
		return
	}
	m := c.Mon
	m.Detach(c)
	m.DetachStack(c)
	delete(w.clients, c.Win)
	_ = w.Disp.UngrabAll(c.Win)

	if m.Sel == c {
		w.Focus(nil)
	}
	w.Arrange(m)
	w.publishClientList()
}

func (w *World) onEnterNotify(ev display.Event) {
	c := w.ClientOf(ev.Window)
	if c == nil || c == w.SelMon.Sel {
		return
	}
	if mon := w.MonitorAt(ev.RootX, ev.RootY); mon != nil {
		w.SelMon = mon
	}
	w.Focus(c)
}

func (w *World) onPropertyNotify(ev display.Event) {
	c := w.ClientOf(ev.Window)
	if c == nil || ev.Atom == 0 {
		return
	}
	atoms := w.Disp.Atoms()
	switch ev.Atom {
	case atoms.NetWMName, atoms.WMName:
		if name, err := w.Disp.WMName(ev.Window); err == nil {
			c.Name = name
		}
	case atoms.WMHintsProp:
		if wh, err := w.Disp.WMHints(ev.Window); err == nil {
			c.NeverFocus = wh.HasInput && !wh.Input
			if wh.Urgent && c != w.SelMon.Sel {
				w.SetUrgent(c, true)
			}
		}
	case atoms.WMNormalHints:
		if hints, err := w.Disp.SizeHints(ev.Window); err == nil {
			applyDisplaySizeHints(c, hints)
		}
	case atoms.WMTransientFor:
		if t, ok, _ := w.Disp.TransientFor(ev.Window); ok && !c.IsFloating {
			if w.ClientOf(t) != nil {
				c.IsFloating = true
				w.Arrange(c.Mon)
			}
		}
	}
}

func (w *World) onClientMessage(ev display.Event) {
	c := w.ClientOf(ev.Window)
	if c == nil {
		return
	}
	atoms := w.Disp.Atoms()
	switch ev.Atom {
	case atoms.NetWMState:
		// Data[0] is the requested action: 0 remove, 1 add, 2 toggle.
		for _, d := range ev.Data[1:3] {
			if d != atoms.NetWMStateFullscreen {
				continue
			}
			switch ev.Data[0] {
			case 0:
				w.SetFullscreen(c, false)
			case 1:
				w.SetFullscreen(c, true)
			case 2:
				w.ToggleFullscreen(c)
			}
		}
	case atoms.NetActiveWindow:
		// An activation request for a hidden client views its tags first.
		if !c.IsVisible() {
			w.View(c.Mon, lowestBit(c.Tags))
		}
		w.Focus(c)
	case atoms.NetCloseWindow:
		w.KillClient(c)
	}
}

// KillClient asks c to close, preferring WM_DELETE_WINDOW when supported,
// falling back to an X-level kill.
func (w *World) KillClient(c *Client) {
	atoms := w.Disp.Atoms()
	if ok, _ := w.Disp.SupportsProtocol(c.Win, atoms.WMDelete); ok {
		_ = w.Disp.SendDeleteWindow(c.Win)
		return
	}
	_ = w.Disp.KillClient(c.Win)
}

// lowestBit isolates the lowest set bit of mask.
func lowestBit(mask uint32) uint32 {
	return mask & -mask
}
