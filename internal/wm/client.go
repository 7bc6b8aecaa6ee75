// Package wm is the core state machine: the Client/Monitor data model,
// the tag/focus/rule/swallow logic that mutates it, and the event
// dispatcher that drives it from a display.Display.
package wm

import (
	"github.com/tagwm/tagwm/internal/display"
	"github.com/tagwm/tagwm/internal/geom"
)

// Client is one managed top-level window.
type Client struct {
	Win    display.Window
	Name   string
	Class  string
	Instance string

	// Geom is the client's current on-screen rectangle, border-exclusive.
	// FloatGeom is preserved across layout changes so toggling floating
	// off and back on restores the last floating placement. OldGeom is
	// the snapshot taken on entering fullscreen, restored on leaving.
	Geom      geom.Rect
	FloatGeom geom.Rect
	OldGeom   geom.Rect

	Tags uint32

	// WindowType is the bare suffix of the first recognized
	// _NET_WM_WINDOW_TYPE atom the window advertises ("DIALOG", "UTILITY",
	// "TOOLBAR", "SPLASH"), or "" if none was set or recognized.
	WindowType string

	IsFloating   bool
	IsFullscreen bool
	IsUrgent     bool
	IsFixed      bool // min==max size hints, per ICCCM never resized by a layout
	NeverFocus   bool
	OldState     bool // IsFloating value saved across a fullscreen toggle

	BorderW    int
	OldBorderW int

	Mon *Monitor

	// SwallowedBy / Swallows link a terminal that exec'd a GUI child to
	// the child that replaced it on-screen; the terminal is restored when
	// the child exits.
	SwallowedBy *Client
	Swallows    *Client
	PID         int
	IsTerminal  bool // rule-flagged as eligible to swallow its children
	NoSwallow   bool // rule-flagged as never swallowed, even if it would otherwise match

	MinW, MinH     int
	MaxW, MaxH     int
	IncW, IncH     int
	BaseW, BaseH   int
	MinAspect      float64
	MaxAspect      float64
	HasAspect      bool

	next    *Client // intrusive linked list, attach order, per monitor
	snext   *Client // intrusive linked list, stacking (focus) order, per monitor
}

// ApplySizeHints clamps a proposed geometry to the client's
// WM_NORMAL_HINTS. interact is true while the user is live dragging;
// the work-area clamp is skipped then so a drag can cross monitors.
func (c *Client) ApplySizeHints(r geom.Rect, interact bool, resizeHints bool) geom.Rect {
	baseW, baseH := c.BaseW, c.BaseH
	if baseW == 0 && baseH == 0 {
		baseW, baseH = c.MinW, c.MinH
	}

	if !interact {
		mon := c.Mon
		if mon != nil {
			r = r.Clamp(mon.WArea())
		}
	}

	if r.W < 1 {
		r.W = 1
	}
	if r.H < 1 {
		r.H = 1
	}

	applyAspectAndInc := resizeHints || c.IsFloating || mon_arrangeIsNil(c.Mon)
	if applyAspectAndInc {
		if c.HasAspect {
			w, h := float64(r.W), float64(r.H)
			if c.MinAspect > 0 && w/h < c.MinAspect {
				h = w / c.MinAspect
				r.H = int(h)
			} else if c.MaxAspect > 0 && w/h > c.MaxAspect {
				w = h * c.MaxAspect
				r.W = int(w)
			}
		}
		if c.IncW > 0 {
			r.W -= (r.W - baseW) % c.IncW
		}
		if c.IncH > 0 {
			r.H -= (r.H - baseH) % c.IncH
		}
	}

	if c.MinW > 0 && r.W < c.MinW {
		r.W = c.MinW
	}
	if c.MinH > 0 && r.H < c.MinH {
		r.H = c.MinH
	}
	if c.MaxW > 0 && r.W > c.MaxW {
		r.W = c.MaxW
	}
	if c.MaxH > 0 && r.H > c.MaxH {
		r.H = c.MaxH
	}
	return r
}

func mon_arrangeIsNil(m *Monitor) bool {
	return m == nil || m.Layout().Arrange == nil
}

// IsVisible reports whether c shares a tag with its monitor's current
// view.
func (c *Client) IsVisible() bool {
	return c.Mon != nil && c.Tags&c.Mon.TagSet != 0
}
