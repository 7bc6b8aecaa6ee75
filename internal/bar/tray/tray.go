// Package tray hosts the systray icons docked via the XEmbed protocol:
// it acquires the manager selection, broadcasts ownership, handles
// SYSTEM_TRAY_REQUEST_DOCK messages, and reparents each icon into an
// override-redirect container, sharing one X connection and one event
// loop with the rest of the window manager.
package tray

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xprop"

	"github.com/tagwm/tagwm/internal/display"
	"github.com/tagwm/tagwm/internal/geom"
)

// systemTrayRequestDock is the XEmbed systray protocol's opcode for
// "please dock this window" carried in a SYSTEM_TRAY_OPCODE
// ClientMessage's second data field.
const systemTrayRequestDock = 0

// Icon is one docked tray application.
type Icon struct {
	Win       display.Window
	Container display.Window
	Size      int
}

// Host owns the _NET_SYSTEM_TRAY_S0 selection and every icon docked into
// it. A single Host is shared by every bar; the systray module picks the
// one monitor whose bar shows it.
type Host struct {
	disp *display.XDisplay
	xu   *xgbutil.XUtil

	win   display.Window
	icons map[display.Window]*Icon
	order []display.Window

	// IconSize is the pixel width and height every docked icon is resized
	// to. It is a fixed value, not derived from the bar's font height, and
	// an icon's own aspect ratio is not preserved.
	IconSize int
}

// NewHost builds a Host over disp. Call Acquire before any icons can
// dock.
func NewHost(disp *display.XDisplay) *Host {
	return &Host{
		disp:     disp,
		xu:       disp.XU(),
		icons:    make(map[display.Window]*Icon),
		IconSize: 18,
	}
}

// Acquire claims the system tray selection, creating an override-redirect
// host window and announcing ownership via a MANAGER ClientMessage on the
// root window, the ICCCM manager-selection convention.
func (h *Host) Acquire() error {
	win, err := h.createWindow(geom.Rect{X: -1, Y: -1, W: 1, H: 1}, true)
	if err != nil {
		return fmt.Errorf("tray: create host window: %w", err)
	}
	h.win = win

	atoms := h.disp.Atoms()
	owned, err := h.disp.AcquireSelection(win, atoms.NetSystemTray)
	if err != nil {
		return fmt.Errorf("tray: acquire selection: %w", err)
	}
	if !owned {
		return fmt.Errorf("tray: system tray already owned by another window manager")
	}

	if err := h.disp.WatchWindow(win); err != nil {
		return err
	}

	// Horizontal orientation, so docking clients lay themselves out to
	// match the bar.
	const orientationHorz = 0
	if err := xprop.ChangeProp32(h.xu, xproto.Window(win),
		"_NET_SYSTEM_TRAY_ORIENTATION", "CARDINAL", orientationHorz); err != nil {
		return fmt.Errorf("tray: set orientation: %w", err)
	}

	root := h.disp.Root()
	return h.disp.SendClientMessage(root, root, atoms.Manager,
		[5]uint32{0, atoms.NetSystemTray, uint32(win), 0, 0})
}

// Window returns the host's own window id, so the event loop can route
// ClientMessages addressed to the tray host here.
func (h *Host) Window() display.Window { return h.win }

// Icons returns every currently docked icon, dock order.
func (h *Host) Icons() []*Icon {
	out := make([]*Icon, 0, len(h.order))
	for _, w := range h.order {
		if icon, ok := h.icons[w]; ok {
			out = append(out, icon)
		}
	}
	return out
}

// HandleClientMessage processes a ClientMessage addressed to the host
// window: a message whose second data field is SYSTEM_TRAY_REQUEST_DOCK
// embeds the window named in the third. Only that opcode field is
// checked; the message type atom is not compared against
// _NET_SYSTEM_TRAY_OPCODE. Any other opcode is ignored.
func (h *Host) HandleClientMessage(ev display.Event) {
	if ev.Window != h.win {
		return
	}
	if ev.Data[1] != systemTrayRequestDock {
		return
	}
	win := display.Window(ev.Data[2])
	if _, ok := h.icons[win]; ok {
		return
	}
	if err := h.embed(win); err != nil {
		return
	}
	h.order = append(h.order, win)
}

// HandleDestroy drops a docked icon whose window has gone away, e.g. the
// tray application exited without first undocking.
func (h *Host) HandleDestroy(win display.Window) {
	if _, ok := h.icons[win]; !ok {
		return
	}
	delete(h.icons, win)
	for i, w := range h.order {
		if w == win {
			h.order = append(h.order[:i], h.order[i+1:]...)
			break
		}
	}
}

func (h *Host) embed(win display.Window) error {
	size := h.IconSize
	if size < 1 {
		size = 18
	}
	container, err := h.createWindow(geom.Rect{X: -10000, Y: -10000, W: size, H: size}, true)
	if err != nil {
		return fmt.Errorf("tray: create icon container: %w", err)
	}
	if err := h.disp.Reparent(win, container, 0, 0); err != nil {
		return fmt.Errorf("tray: reparent icon: %w", err)
	}
	if err := h.disp.Configure(win, geom.Rect{X: 0, Y: 0, W: size, H: size}, 0); err != nil {
		return fmt.Errorf("tray: resize icon: %w", err)
	}
	if err := h.disp.Listen(win, uint32(xproto.EventMaskStructureNotify|xproto.EventMaskPropertyChange)); err != nil {
		return fmt.Errorf("tray: select icon events: %w", err)
	}
	if err := h.disp.WatchWindow(win); err != nil {
		return err
	}
	h.sendXEmbedNotify(win)
	h.icons[win] = &Icon{Win: win, Container: container, Size: size}
	return nil
}

// sendXEmbedNotify tells the docked application it has been embedded, per
// the XEmbed protocol's XEMBED_EMBEDDED_NOTIFY message.
func (h *Host) sendXEmbedNotify(win display.Window) {
	const xembedEmbeddedNotify = 0
	atoms := h.disp.Atoms()
	_ = h.disp.SendClientMessage(win, win, atoms.XEmbed,
		[5]uint32{0, xembedEmbeddedNotify, 0, uint32(h.win), 0})
}

// Place positions a docked icon's container at (x,y) within the bar, y
// centered vertically in a bar of the given height.
func (h *Host) Place(icon *Icon, x, barHeight int) error {
	y := (barHeight - icon.Size) / 2
	if y < 0 {
		y = 0
	}
	return h.disp.MoveResize(icon.Container, geom.Rect{X: x, Y: y, W: icon.Size, H: icon.Size})
}

func (h *Host) createWindow(r geom.Rect, overrideRedirect bool) (display.Window, error) {
	xu := h.xu
	win, err := xproto.NewWindowId(xu.Conn())
	if err != nil {
		return 0, err
	}
	screen := xu.Screen()
	// Value-list entries must appear in increasing bit order of their
	// CW* mask flag; CwOverrideRedirect (0x200) precedes CwEventMask
	// (0x800).
	var mask uint32
	var values []uint32
	if overrideRedirect {
		mask |= xproto.CwOverrideRedirect
		values = append(values, 1)
	}
	mask |= xproto.CwEventMask
	values = append(values, uint32(xproto.EventMaskStructureNotify|xproto.EventMaskPropertyChange))
	err = xproto.CreateWindowChecked(xu.Conn(), screen.RootDepth, win, xu.RootWin(),
		int16(r.X), int16(r.Y), uint16(r.W), uint16(r.H), 0,
		xproto.WindowClassInputOutput, screen.RootVisual, mask, values).Check()
	if err != nil {
		return 0, err
	}
	if err := xproto.ChangeSaveSetChecked(xu.Conn(), xproto.SetModeInsert, win).Check(); err != nil {
		return 0, err
	}
	return display.Window(win), nil
}
