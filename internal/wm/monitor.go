package wm

import (
	"github.com/tagwm/tagwm/internal/geom"
	"github.com/tagwm/tagwm/internal/layout"
)

// Pertag remembers each tag's own layout/mfact/nmaster/bar-visibility so
// switching tags doesn't carry one tag's tuning onto another.
type Pertag struct {
	SelLayouts []int
	PrevLayouts []int
	MFacts     []float64
	NMasters   []int
	ShowBars   []bool
}

func NewPertag(nTags, defaultLayout int, mfact float64, nmaster int, showBar bool) *Pertag {
	n := nTags + 1 // index 0 is the "all tags" pseudo-tag
	p := &Pertag{
		SelLayouts:  make([]int, n),
		PrevLayouts: make([]int, n),
		MFacts:      make([]float64, n),
		NMasters:    make([]int, n),
		ShowBars:    make([]bool, n),
	}
	for i := range p.SelLayouts {
		p.SelLayouts[i] = defaultLayout
		p.MFacts[i] = mfact
		p.NMasters[i] = nmaster
		p.ShowBars[i] = showBar
	}
	return p
}

// Monitor is one physical output with its own tag view and client stack.
type Monitor struct {
	Num int

	MGeom geom.Rect // full monitor rectangle
	WGeom geom.Rect // work area: MGeom minus the bar's strip

	TagSet      uint32
	PrevTagSet  uint32
	SelLayout   int
	LtSymbol    string
	MFact       float64
	NMaster     int
	ShowBar     bool
	TopBar      bool
	Gaps        layout.Gaps

	Pertag *Pertag

	clients *Client // head of attach-order list
	stack   *Client // head of focus-order list
	Sel     *Client

	Next *Monitor
}

// WArea returns the work area clients are tiled/floated within: the
// monitor rectangle with the bar's strip removed when the bar is shown.
func (m *Monitor) WArea() geom.Rect {
	return m.WGeom
}

// RecomputeWArea derives WGeom from MGeom and the bar's presence. barH is
// 0 when the bar is hidden.
func (m *Monitor) RecomputeWArea(barH int) {
	m.WGeom = m.MGeom
	if barH <= 0 {
		return
	}
	if m.TopBar {
		m.WGeom = m.WGeom.Shrink(0, barH, 0, 0)
	} else {
		m.WGeom = m.WGeom.Shrink(0, 0, 0, barH)
	}
}

func (m *Monitor) Layout() layout.Entry {
	if m.SelLayout < 0 || m.SelLayout >= len(layout.Table) {
		return layout.Table[0]
	}
	return layout.Table[m.SelLayout]
}

// Clients returns every client attached to m, attach order.
func (m *Monitor) Clients() []*Client {
	var out []*Client
	for c := m.clients; c != nil; c = c.next {
		out = append(out, c)
	}
	return out
}

// Stack returns every client attached to m, focus (stacking) order.
func (m *Monitor) Stack() []*Client {
	var out []*Client
	for c := m.stack; c != nil; c = c.snext {
		out = append(out, c)
	}
	return out
}

// Tileable returns the tileable (non-floating, non-fullscreen) clients
// currently on m's selected tags, attach order — exactly what an
// Arrange function consumes.
func (m *Monitor) Tileable() []*Client {
	var out []*Client
	for _, c := range m.Clients() {
		if c.IsVisible() && !c.IsFloating && !c.IsFullscreen {
			out = append(out, c)
		}
	}
	return out
}

// Attach inserts c at the head of m's client list, most recently mapped
// client first.
func (m *Monitor) Attach(c *Client) {
	c.Mon = m
	c.next = m.clients
	m.clients = c
}

// Detach removes c from m's client list.
func (m *Monitor) Detach(c *Client) {
	pp := &m.clients
	for *pp != nil && *pp != c {
		pp = &(*pp).next
	}
	if *pp == c {
		*pp = c.next
	}
	c.next = nil
}

// AttachStack inserts c at the head of m's focus-order stack.
func (m *Monitor) AttachStack(c *Client) {
	c.snext = m.stack
	m.stack = c
}

// DetachStack removes c from m's focus-order stack, promoting the next
// visible client on the stack to m.Sel if c was selected.
func (m *Monitor) DetachStack(c *Client) {
	pp := &m.stack
	for *pp != nil && *pp != c {
		pp = &(*pp).snext
	}
	if *pp == c {
		*pp = c.snext
	}
	c.snext = nil

	if c == m.Sel {
		for s := m.stack; s != nil; s = s.snext {
			if s.IsVisible() {
				m.Sel = s
				return
			}
		}
		m.Sel = nil
	}
}

// rebuildClientList relinks m's attach-order list to match order, after
// a caller has reordered the slice in place.
func (m *Monitor) rebuildClientList(order []*Client) {
	m.clients = nil
	var tail *Client
	for _, c := range order {
		c.next = nil
		if tail == nil {
			m.clients = c
		} else {
			tail.next = c
		}
		tail = c
	}
}
