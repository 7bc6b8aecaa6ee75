package wm

import "github.com/tagwm/tagwm/internal/display"

// publishActiveWindow mirrors the currently focused client into
// _NET_ACTIVE_WINDOW.
func (w *World) publishActiveWindow() {
	if w.SelMon.Sel != nil {
		_ = w.Disp.SetActiveWindow(w.SelMon.Sel.Win)
	}
}

// publishStacking mirrors every monitor's focus-order stack into
// _NET_CLIENT_LIST_STACKING.
func (w *World) publishStacking() {
	var wins []display.Window
	for m := w.Mons; m != nil; m = m.Next {
		for _, c := range m.Stack() {
			wins = append(wins, c.Win)
		}
	}
	_ = w.Disp.SetClientListStacking(wins)
}

// publishClientList mirrors every managed client into _NET_CLIENT_LIST,
// called whenever a client is adopted or destroyed.
func (w *World) publishClientList() {
	var wins []display.Window
	for m := w.Mons; m != nil; m = m.Next {
		for _, c := range m.Clients() {
			wins = append(wins, c.Win)
		}
	}
	_ = w.Disp.SetClientList(wins)
}

// PublishStartup announces EWMH support and seeds every property a pager
// or taskbar reads before any client exists. check is a
// throwaway window the caller owns for the lifetime of the process,
// satisfying _NET_SUPPORTING_WM_CHECK's convention that the window
// itself also carries the property pointing back at itself.
func (w *World) PublishStartup(supported []uint32, check display.Window) {
	_ = w.Disp.SetSupported(supported)
	_ = w.Disp.SetSupportingCheck(check)
	w.publishDesktops()
	w.publishClientList()
	w.publishStacking()
}

// publishDesktops mirrors the tag model into the desktop-number EWMH
// properties a pager would read: one EWMH desktop per
// configured tag, current desktop derived from the selected monitor's
// single-tag view when it has one.
func (w *World) publishDesktops() {
	_ = w.Disp.SetNumberOfDesktops(len(w.Cfg.Tags))
	_ = w.Disp.SetDesktopNames(w.Cfg.Tags)
	_ = w.Disp.SetDesktopViewport()
	idx := pertagIndex(w.SelMon.TagSet, len(w.Cfg.Tags))
	if idx > 0 {
		_ = w.Disp.SetCurrentDesktop(idx - 1)
	}
}
