package wm

// maxSwallowDepth bounds the /proc ancestry walk isDescProcess performs:
// an unbounded walk against a process tree with a cycle (possible after
// PID reuse racing a reparent) would never terminate.
const maxSwallowDepth = 16

// isDescProcess reports whether pid is parent's descendant within
// maxSwallowDepth steps of the ancestry chain w.parentPID walks. The
// walk does not distinguish "no match within budget" from "definitely
// not a descendant": a process nested deeper than maxSwallowDepth under
// its terminal silently fails to swallow.
func (w *World) isDescProcess(pid, parent int) bool {
	for depth := 0; depth < maxSwallowDepth && pid > 1; depth++ {
		if pid == parent {
			return true
		}
		next, err := w.parentPID(pid)
		if err != nil || next == pid {
			return false
		}
		pid = next
	}
	return false
}

// TrySwallow looks for a terminal client on c's monitor whose process is
// an ancestor of c's, and if found, swaps window handles: the terminal
// record stays in the lists and adopts c's window, while c's record
// leaves the lists holding the terminal's now-hidden window. The
// detached record is unreachable through ClientOf, so the UnmapNotify
// from hiding the terminal's window cannot be mistaken for a dying
// client. Returns the swallowing terminal, or nil if nothing matched.
func (w *World) TrySwallow(c *Client) *Client {
	if c.PID == 0 {
		return nil
	}
	if c.NoSwallow || c.IsTerminal {
		return nil
	}
	if c.IsFloating && !w.allowsSwallowFloating(c) {
		return nil
	}
	for _, t := range c.Mon.Clients() {
		if t == c || !t.IsTerminal || t.Swallows != nil || t.SwallowedBy != nil {
			continue
		}
		if t.PID == 0 || !w.isDescProcess(c.PID, t.PID) {
			continue
		}
		c.Mon.Detach(c)
		c.Mon.DetachStack(c)
		delete(w.clients, c.Win)
		delete(w.clients, t.Win)

		_ = w.Disp.Unmap(t.Win)
		t.Win, c.Win = c.Win, t.Win
		w.clients[t.Win] = t

		t.Swallows = c
		c.SwallowedBy = t
		if name, err := w.Disp.WMName(t.Win); err == nil && name != "" {
			t.Name = name
		}
		w.resizeClient(t, t.Geom, false)
		w.Arrange(t.Mon)
		w.publishClientList()
		return t
	}
	return nil
}

// Unswallow restores a swallowed terminal when the window it adopted
// goes away: the terminal takes its own window back, remaps it, and
// retakes focus. The detached child record is dropped.
func (w *World) Unswallow(t *Client) {
	c := t.Swallows
	if c == nil {
		return
	}
	t.Swallows = nil
	c.SwallowedBy = nil

	delete(w.clients, t.Win)
	t.Win = c.Win
	w.clients[t.Win] = t

	if name, err := w.Disp.WMName(t.Win); err == nil && name != "" {
		t.Name = name
	}
	_ = w.Disp.Map(t.Win)
	w.resizeClient(t, t.Geom, false)
	w.Focus(t)
	w.Arrange(t.Mon)
	w.publishClientList()
}
