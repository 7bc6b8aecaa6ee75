package wm

import (
	"github.com/tagwm/tagwm/internal/config"
	"github.com/tagwm/tagwm/internal/layout"
)

// View switches m to the tag set in mask, saving the previous set for
// ViewPrev. A mask of 0 is a no-op so the view can never go blank. When
// mask is currently shown by a different monitor, the two monitors'
// tagsets are swapped instead, preserving the rule that a tag bit lives
// on at most one monitor.
func (w *World) View(m *Monitor, mask uint32) {
	if mask == 0 || mask == m.TagSet {
		return
	}
	prev := m.TagSet
	if other := w.monitorShowingAny(mask, m); other != nil {
		otherPrev := other.TagSet
		other.TagSet = prev
		m.TagSet = otherPrev
		w.attachClientsFor(other)
		w.attachClientsFor(m)
		w.Arrange(other)
	} else {
		m.TagSet = mask
	}
	m.PrevTagSet = prev
	w.loadPertag(m)
	w.clearDoubleFullscreen(m)
	w.Focus(nil)
	w.Arrange(m)
}

// monitorShowingAny returns a monitor other than exclude whose current
// tagset intersects mask, or nil if none does.
func (w *World) monitorShowingAny(mask uint32, exclude *Monitor) *Monitor {
	for _, mm := range w.monitorList() {
		if mm == exclude {
			continue
		}
		if mm.TagSet&mask != 0 {
			return mm
		}
	}
	return nil
}

// lowestUnoccupiedTag returns the lowest-numbered configured tag bit not
// currently shown by any monitor, used when a toggle empties a monitor's
// tagset by transferring its last bit away.
func (w *World) lowestUnoccupiedTag() uint32 {
	occupied := uint32(0)
	for _, mm := range w.monitorList() {
		occupied |= mm.TagSet
	}
	for i := 0; i < len(w.Cfg.Tags); i++ {
		bit := config.TagMask(i)
		if occupied&bit == 0 {
			return bit
		}
	}
	return config.TagMask(0)
}

// attachClientsFor re-homes clients after a tag-ownership change: every
// client visible on m (by tag overlap, tested against m's tagset before
// the client's monitor is touched — see DESIGN.md on this ordering) has
// any tag bits now owned by another monitor stripped, and its monitor
// reassigned to m.
func (w *World) attachClientsFor(m *Monitor) {
	touched := make(map[*Monitor]bool)
	for _, c := range w.clients {
		if c.Tags&m.TagSet == 0 {
			continue
		}
		foreign := c.Tags &^ m.TagSet
		if foreign == 0 && c.Mon == m {
			continue
		}
		c.Tags &^= foreign
		if c.Mon != m {
			old := c.Mon
			if old != nil {
				old.Detach(c)
				old.DetachStack(c)
				touched[old] = true
			}
			m.Attach(c)
			m.AttachStack(c)
			c.Mon = m
		}
	}
	for old := range touched {
		w.Arrange(old)
	}
}

// FocusOrView focuses the monitor already showing mask; if no monitor
// shows it, falls back to viewing it on the selected monitor.
func (w *World) FocusOrView(mask uint32) {
	if owner := w.monitorShowingAny(mask, nil); owner != nil {
		w.SelMon = owner
		w.Focus(nil)
		return
	}
	w.View(w.SelMon, mask)
}

// ViewPrev restores the tag set active before the last View call.
func (w *World) ViewPrev(m *Monitor) {
	if m.PrevTagSet == 0 {
		return
	}
	w.View(m, m.PrevTagSet)
}

// ToggleView XORs mask into m's visible tags, refusing to toggle the
// last remaining visible tag off. Bits newly added that another monitor
// currently owns are transferred away from that monitor; if doing so
// empties it, it picks up the lowest unoccupied tag instead of going
// dark.
func (w *World) ToggleView(m *Monitor, mask uint32) {
	newMask := m.TagSet ^ mask
	if newMask == 0 {
		return
	}
	added := mask &^ m.TagSet
	m.PrevTagSet = m.TagSet
	m.TagSet = newMask
	if added != 0 {
		for _, other := range w.monitorList() {
			if other == m || other.TagSet&added == 0 {
				continue
			}
			other.TagSet &^= added
			if other.TagSet == 0 {
				other.TagSet = w.lowestUnoccupiedTag()
			}
			w.attachClientsFor(other)
			w.Arrange(other)
		}
	}
	w.attachClientsFor(m)
	w.loadPertag(m)
	w.clearDoubleFullscreen(m)
	w.Focus(nil)
	w.Arrange(m)
}

// Tag moves c onto exactly the tags in mask. If mask is shown by a
// monitor other than c's own, c moves to that monitor instead of merely
// changing tags under a monitor that can't display them. Tagging onto
// every tag at once is refused outright when more than one monitor
// exists: it would put c on every monitor's view simultaneously,
// breaking the one-monitor-per-tag rule.
func (w *World) Tag(c *Client, mask uint32) {
	if mask == 0 {
		return
	}
	if mask == w.AllTags && len(w.monitorList()) > 1 {
		return
	}
	if owner := w.monitorShowingAny(mask, nil); owner != nil && owner != c.Mon {
		src := c.Mon
		c.Tags = mask
		src.Detach(c)
		src.DetachStack(c)
		owner.Attach(c)
		owner.AttachStack(c)
		c.Mon = owner
		w.Focus(nil)
		w.Arrange(src)
		w.Arrange(owner)
		return
	}
	c.Tags = mask
	w.Focus(nil)
	w.Arrange(c.Mon)
}

// ToggleTag XORs mask into c's tags, refusing to leave c on no tags at
// all.
func (w *World) ToggleTag(c *Client, mask uint32) {
	newMask := c.Tags ^ mask
	if newMask == 0 {
		return
	}
	c.Tags = newMask
	w.Focus(nil)
	w.Arrange(c.Mon)
}

func (w *World) loadPertag(m *Monitor) {
	idx := pertagIndex(m.TagSet, len(w.Cfg.Tags))
	p := m.Pertag
	if p == nil {
		return
	}
	m.SelLayout = p.SelLayouts[idx]
	m.MFact = p.MFacts[idx]
	m.NMaster = p.NMasters[idx]
	m.ShowBar = p.ShowBars[idx]
	m.RecomputeWArea(w.barHeight(m))
}

// pertagIndex maps a tag bitmask to a Pertag slot: a single-tag mask maps
// to that tag's 1-based index, anything else (multi-tag or "view all")
// falls back to slot 0.
func pertagIndex(mask uint32, nTags int) int {
	for i := 0; i < nTags; i++ {
		if mask == config.TagMask(i) {
			return i + 1
		}
	}
	return 0
}

// SetLayout changes m's current layout, persisting it per-tag and
// remembering the outgoing layout so a setlayout binding with an empty
// argument can flip back.
func (w *World) SetLayout(m *Monitor, idx int) {
	if idx < 0 || idx >= len(layout.Table) {
		return
	}
	prev := m.SelLayout
	m.SelLayout = idx
	if m.Pertag != nil {
		i := pertagIndex(m.TagSet, len(w.Cfg.Tags))
		m.Pertag.PrevLayouts[i] = prev
		m.Pertag.SelLayouts[i] = idx
	}
	w.Arrange(m)
}

// Zoom promotes the selected client to the master slot, or if it is
// already master, promotes the next tileable client instead.
func (w *World) Zoom(m *Monitor) {
	c := m.Sel
	if c == nil || c.IsFloating {
		return
	}
	clients := m.Clients()
	if len(clients) == 0 {
		return
	}
	if c == clients[0] {
		tileable := m.Tileable()
		if len(tileable) < 2 {
			return
		}
		c = tileable[1]
	}
	m.Detach(c)
	m.Attach(c)
	w.Focus(c)
	w.Arrange(m)
}

// FocusMon moves the selected monitor by dir (+1/-1), wrapping around,
// then warps the pointer to the newly selected client so click-to-focus
// and keyboard focus agree on which monitor is live.
func (w *World) FocusMon(dir int) {
	mons := w.monitorList()
	if len(mons) < 2 {
		return
	}
	idx := indexOfMonitor(mons, w.SelMon)
	n := len(mons)
	w.SelMon = mons[((idx+dir)%n+n)%n]
	w.Focus(nil)
	w.warpToSel()
}

// TagMon moves the selected client to the monitor dir (+1/-1) steps away.
func (w *World) TagMon(dir int) {
	c := w.SelMon.Sel
	if c == nil {
		return
	}
	mons := w.monitorList()
	if len(mons) < 2 {
		return
	}
	src := c.Mon
	idx := indexOfMonitor(mons, src)
	n := len(mons)
	dst := mons[((idx+dir)%n+n)%n]

	src.Detach(c)
	src.DetachStack(c)
	dst.Attach(c)
	dst.AttachStack(c)
	c.Mon = dst

	w.Focus(nil)
	w.Arrange(src)
	w.Arrange(dst)
}

func indexOfMonitor(mons []*Monitor, target *Monitor) int {
	for i, m := range mons {
		if m == target {
			return i
		}
	}
	return 0
}

// ToggleScratchpad shows or hides the clients pinned to scratchpad slot
// idx on the selected monitor. Each scratchpad occupies the tag bit
// immediately past the configured tags, so it rides the same visibility
// machinery as ToggleView without being reachable from the normal
// view/tag key bindings.
func (w *World) ToggleScratchpad(idx int) {
	if idx < 0 || idx >= len(w.Cfg.Scratchpads) {
		return
	}
	mask := config.TagMask(len(w.Cfg.Tags) + idx)
	w.ToggleView(w.SelMon, mask)
}

// SetMFact adjusts m's master fraction by delta; results outside
// [0.05, 0.95] are discarded.
func (w *World) SetMFact(m *Monitor, delta float64) {
	f := m.MFact + delta
	if f < 0.05 || f > 0.95 {
		return
	}
	m.MFact = f
	if m.Pertag != nil {
		m.Pertag.MFacts[pertagIndex(m.TagSet, len(w.Cfg.Tags))] = f
	}
	w.Arrange(m)
}

// IncNMaster adjusts m's master-area client count by delta, floored at 0.
func (w *World) IncNMaster(m *Monitor, delta int) {
	n := m.NMaster + delta
	if n < 0 {
		n = 0
	}
	m.NMaster = n
	if m.Pertag != nil {
		m.Pertag.NMasters[pertagIndex(m.TagSet, len(w.Cfg.Tags))] = n
	}
	w.Arrange(m)
}

// ToggleBar flips m's bar visibility, persists it per-tag, and
// recomputes the work area it affects.
func (w *World) ToggleBar(m *Monitor) {
	m.ShowBar = !m.ShowBar
	if m.Pertag != nil {
		m.Pertag.ShowBars[pertagIndex(m.TagSet, len(w.Cfg.Tags))] = m.ShowBar
	}
	m.RecomputeWArea(w.barHeight(m))
	w.Arrange(m)
}
