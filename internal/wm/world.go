package wm

import (
	"fmt"
	"log/slog"

	"github.com/tagwm/tagwm/internal/config"
	"github.com/tagwm/tagwm/internal/display"
	"github.com/tagwm/tagwm/internal/layout"
	"github.com/tagwm/tagwm/internal/quadtree"
)

// World is the whole window manager's mutable state: every monitor, every
// managed client, and the configuration driving rule/layout/focus
// decisions. It owns nothing X-specific directly — all protocol traffic
// goes through Disp.
type World struct {
	Disp display.Display
	Cfg  config.Config
	Log  *slog.Logger

	Mons   *Monitor
	SelMon *Monitor

	clients map[display.Window]*Client

	// monTree maps a screen point to a monitor index, rebuilt whenever
	// monitor geometry changes.
	monTree *quadtree.Node

	AllTags uint32 // bitmask with one bit per configured tag

	Running bool

	SelBorder colorPixels
	NormBorder colorPixels

	drag   *dragSession
	Binder *Binder

	// XrdbReload re-reads the X resource database and reapplies the color
	// overrides; cmd/tagwm wires it since only main owns the drawable
	// schemes the new colors feed.
	XrdbReload func()

	// parentPID walks one step up a process's ancestry chain for the
	// swallow engine. Defaults to /proc, overridden in tests since the
	// real process tree isn't controllable there.
	parentPID func(pid int) (int, error)
}

// New builds an empty World over disp using cfg. Call AttachMonitors
// before Run.
func New(disp display.Display, cfg config.Config, log *slog.Logger) *World {
	w := &World{
		Disp:      disp,
		Cfg:       cfg,
		Log:       log,
		clients:   make(map[display.Window]*Client),
		parentPID: display.ParentPID,
	}
	for i := range cfg.Tags {
		w.AllTags |= config.TagMask(i)
	}
	for i := range cfg.Scratchpads {
		w.AllTags |= config.TagMask(len(cfg.Tags) + i)
	}
	return w
}

// AttachMonitors (re)builds the monitor list from the display's current
// physical heads, applying config.MonitorRules to seed each monitor's
// layout/mfact/nmaster/bar state. Existing monitors keep their
// Num/clients if a head at the same position still exists; monitors
// beyond the new head count are torn down and their clients reassigned
// to monitor 0. Tag views stay disjoint across monitors: a new monitor
// whose seeded tags are already shown elsewhere takes the lowest
// unoccupied tag instead.
func (w *World) AttachMonitors() error {
	heads, err := w.Disp.PhysicalHeads()
	if err != nil {
		return fmt.Errorf("wm: attach monitors: %w", err)
	}
	if len(heads) == 0 {
		return fmt.Errorf("wm: no monitor heads reported")
	}

	existing := w.monitorList()
	var occupied uint32
	for i, m := range existing {
		if i < len(heads) {
			occupied |= m.TagSet
		}
	}
	var head *Monitor
	var tail *Monitor
	for i, geo := range heads {
		var m *Monitor
		if i < len(existing) {
			m = existing[i]
		} else {
			m = w.newMonitor(i)
			if m.TagSet&occupied != 0 {
				m.TagSet = w.lowestTagNotIn(occupied)
			}
			occupied |= m.TagSet
		}
		m.Num = i
		m.MGeom = geo
		m.RecomputeWArea(w.barHeight(m))
		if head == nil {
			head = m
		} else {
			tail.Next = m
		}
		tail = m
	}
	// Any leftover monitors (fewer heads than before) fold their clients
	// into the first monitor rather than leaking them unmanaged.
	for i := len(heads); i < len(existing); i++ {
		for _, c := range existing[i].Clients() {
			existing[i].Detach(c)
			existing[i].DetachStack(c)
			head.Attach(c)
			head.AttachStack(c)
			c.Mon = head
		}
	}

	w.Mons = head
	if w.SelMon == nil || !w.hasMonitor(w.SelMon) {
		w.SelMon = head
	}
	w.rebuildMonTree()
	return nil
}

func (w *World) hasMonitor(target *Monitor) bool {
	for m := w.Mons; m != nil; m = m.Next {
		if m == target {
			return true
		}
	}
	return false
}

func (w *World) monitorList() []*Monitor {
	var out []*Monitor
	for m := w.Mons; m != nil; m = m.Next {
		out = append(out, m)
	}
	return out
}

func (w *World) newMonitor(num int) *Monitor {
	rule := w.matchMonitorRule(num)
	tagset := uint32(1)
	if rule.Tag >= 0 && rule.Tag < len(w.Cfg.Tags) {
		tagset = config.TagMask(rule.Tag)
	}
	m := &Monitor{
		Num:       num,
		TagSet:    tagset,
		SelLayout: rule.Layout,
		MFact:     rule.MFact,
		NMaster:   rule.NMaster,
		ShowBar:   rule.ShowBar,
		TopBar:    rule.TopBar,
		Gaps:      layoutGapsFromConfig(w.Cfg.Gaps),
	}
	m.Pertag = NewPertag(len(w.Cfg.Tags), rule.Layout, rule.MFact, rule.NMaster, rule.ShowBar)
	m.LtSymbol = m.Layout().Symbol
	return m
}

func (w *World) matchMonitorRule(num int) config.MonitorRule {
	for _, r := range w.Cfg.MonitorRules {
		if r.Monitor == -1 || r.Monitor == num {
			return r
		}
	}
	return config.MonitorRule{Monitor: -1, Tag: -1, Layout: w.Cfg.Layout, MFact: w.Cfg.MFact, NMaster: w.Cfg.NMaster, ShowBar: w.Cfg.ShowBar, TopBar: w.Cfg.TopBar}
}

func (w *World) barHeight(m *Monitor) int {
	if !m.ShowBar {
		return 0
	}
	return barStripHeight
}

// barStripHeight is the bar's pixel height; cmd/tagwm sets it through
// SetBarHeight when it builds the bars.
var barStripHeight = 18

// SetBarHeight records the height cmd/tagwm builds its bars with, so
// monitor work areas can be recomputed accurately.
func (w *World) SetBarHeight(px int) {
	barStripHeight = px
	for m := w.Mons; m != nil; m = m.Next {
		m.RecomputeWArea(w.barHeight(m))
	}
}

func (w *World) rebuildMonTree() {
	maxSize := 0
	for m := w.Mons; m != nil; m = m.Next {
		if r := m.MGeom.Right(); r > maxSize {
			maxSize = r
		}
		if b := m.MGeom.Bottom(); b > maxSize {
			maxSize = b
		}
	}
	tree := quadtree.New(maxSize)
	for m := w.Mons; m != nil; m = m.Next {
		tree.Set(quadtree.Region{X: m.MGeom.X, Y: m.MGeom.Y, Width: m.MGeom.W, Height: m.MGeom.H}, m.Num)
	}
	w.monTree = tree
}

// MonitorAt returns the monitor owning the screen point (x, y).
func (w *World) MonitorAt(x, y int) *Monitor {
	if w.monTree == nil {
		return w.SelMon
	}
	idx := w.monTree.Get(x, y)
	for m := w.Mons; m != nil; m = m.Next {
		if m.Num == idx {
			return m
		}
	}
	return w.SelMon
}

func (w *World) ClientOf(win display.Window) *Client {
	return w.clients[win]
}

// MonitorByNum returns the monitor with the given Num, or nil. Exported
// so callers outside the package (the bar composer's monitor closures)
// can resolve a monitor by index without walking w.Mons themselves.
func (w *World) MonitorByNum(num int) *Monitor {
	return w.monitorByNum(num)
}

func layoutGapsFromConfig(g config.Gaps) layout.Gaps {
	return layout.Gaps{InnerH: g.InnerH, InnerV: g.InnerV, OuterH: g.OuterH, OuterV: g.OuterV}
}

// lowestTagNotIn returns the lowest configured tag bit outside occupied,
// falling back to the first tag when every bit is taken.
func (w *World) lowestTagNotIn(occupied uint32) uint32 {
	for i := 0; i < len(w.Cfg.Tags); i++ {
		bit := config.TagMask(i)
		if occupied&bit == 0 {
			return bit
		}
	}
	return config.TagMask(0)
}
