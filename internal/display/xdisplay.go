package display

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/mousebind"
	"github.com/BurntSushi/xgbutil/xcursor"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xinerama"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/tagwm/tagwm/internal/geom"
)

// Event masks for the two windows the core listens on. The root mask
// includes SubstructureRedirect, so selecting it fails while another
// window manager is running.
const (
	RootEventMask uint32 = xproto.EventMaskSubstructureRedirect |
		xproto.EventMaskSubstructureNotify |
		xproto.EventMaskStructureNotify |
		xproto.EventMaskButtonPress |
		xproto.EventMaskPointerMotion |
		xproto.EventMaskEnterWindow |
		xproto.EventMaskLeaveWindow |
		xproto.EventMaskPropertyChange

	ClientEventMask uint32 = xproto.EventMaskEnterWindow |
		xproto.EventMaskFocusChange |
		xproto.EventMaskPropertyChange |
		xproto.EventMaskStructureNotify
)

// XDisplay is the xgbutil-backed Display.
type XDisplay struct {
	xu     *xgbutil.XUtil
	atoms  Atoms
	events chan Event
	root   Window

	lastMotion time.Time

	// selfUnmaps counts Unmap calls this process issued per window, so
	// the resulting UnmapNotify can be flagged Synthetic instead of
	// being read as the client withdrawing on its own. Guarded by mu:
	// Unmap runs on the caller's goroutine, the check on the pump's.
	mu         sync.Mutex
	selfUnmaps map[Window]int
}

// Open connects to the X server named by the DISPLAY environment
// variable, interns every atom in Names, and starts translating raw
// xgbutil events into the Event union on the returned channel. The
// xevent pump runs in its own goroutine; all window-manager state stays
// on the caller's side of the channel.
func Open() (*XDisplay, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("display: connect: %w", err)
	}
	keybind.Initialize(xu)
	mousebind.Initialize(xu)

	d := &XDisplay{
		xu:         xu,
		events:     make(chan Event, 256),
		root:       Window(xu.RootWin()),
		selfUnmaps: make(map[Window]int),
	}
	if err := d.internAtoms(); err != nil {
		return nil, err
	}
	d.attachRawHandlers()
	go xevent.Main(xu)
	return d, nil
}

// XU exposes the underlying connection for packages that need to build
// their own windows against it directly (internal/drawable's bar/tray
// windows) rather than through the Display interface's higher-level
// operations.
func (d *XDisplay) XU() *xgbutil.XUtil { return d.xu }

func clientMessageEvent(ev xevent.ClientMessageEvent) Event {
	e := Event{Kind: EventClientMessage, Window: Window(ev.Window), Atom: uint32(ev.Type)}
	for i := 0; i < 5 && i < len(ev.Data.Data32); i++ {
		e.Data[i] = ev.Data.Data32[i]
	}
	return e
}

// WatchWindow registers ClientMessage and DestroyNotify dispatch for a
// window outside the managed-client tree — xgbutil's event loop keys
// callbacks by window, so a window created by internal/bar/tray for the
// systray host needs its own registration to receive the
// SYSTEM_TRAY_REQUEST_DOCK messages X clients send directly to it.
func (d *XDisplay) WatchWindow(w Window) error {
	win := xproto.Window(w)
	xevent.ClientMessageFun(func(xu *xgbutil.XUtil, ev xevent.ClientMessageEvent) {
		d.events <- clientMessageEvent(ev)
	}).Connect(d.xu, win)
	xevent.DestroyNotifyFun(func(xu *xgbutil.XUtil, ev xevent.DestroyNotifyEvent) {
		d.events <- Event{Kind: EventDestroyNotify, Window: Window(ev.Window)}
	}).Connect(d.xu, win)
	return nil
}

// WatchBarWindow registers ButtonPress and Expose dispatch for a window
// the bar composer owns, the same per-window registration WatchWindow
// does for the tray host — a bar window never becomes a managed client,
// so it would otherwise never reach attachRawHandlers' root-keyed
// callbacks.
func (d *XDisplay) WatchBarWindow(w Window) error {
	win := xproto.Window(w)
	xevent.ButtonPressFun(func(xu *xgbutil.XUtil, ev xevent.ButtonPressEvent) {
		d.events <- Event{Kind: EventButtonPress, Window: Window(ev.Event), Mods: ev.State, Detail: ev.Detail, RootX: int(ev.RootX), RootY: int(ev.RootY)}
	}).Connect(d.xu, win)
	xevent.ExposeFun(func(xu *xgbutil.XUtil, ev xevent.ExposeEvent) {
		d.events <- Event{Kind: EventExpose, Window: Window(ev.Window)}
	}).Connect(d.xu, win)
	return nil
}

func (d *XDisplay) internAtoms() error {
	ids := make([]uint32, len(Names))
	for i, name := range Names {
		atom, err := xprop.Atom(d.xu, name, false)
		if err != nil {
			return fmt.Errorf("display: intern %s: %w", name, err)
		}
		ids[i] = uint32(atom)
	}
	fields := []*uint32{
		&d.atoms.WMProtocols, &d.atoms.WMDelete, &d.atoms.WMTakeFocus,
		&d.atoms.WMState, &d.atoms.WMChangeState, &d.atoms.WMClientLeader,
		&d.atoms.WMName, &d.atoms.WMHintsProp, &d.atoms.WMNormalHints,
		&d.atoms.WMTransientFor,
		&d.atoms.NetSupported, &d.atoms.NetWMName, &d.atoms.NetWMState,
		&d.atoms.NetWMStateFullscreen, &d.atoms.NetWMStateDemandsAtten,
		&d.atoms.NetWMWindowType, &d.atoms.NetWMWindowTypeDialog,
		&d.atoms.NetWMWindowTypeToolbar, &d.atoms.NetWMWindowTypeUtility,
		&d.atoms.NetWMWindowTypeSplash, &d.atoms.NetWMWindowTypeDock,
		&d.atoms.NetWMCheck, &d.atoms.NetWMPid, &d.atoms.NetWMDesktop,
		&d.atoms.NetActiveWindow, &d.atoms.NetClientList, &d.atoms.NetClientListStacking,
		&d.atoms.NetNumberOfDesktops, &d.atoms.NetCurrentDesktop,
		&d.atoms.NetDesktopNames, &d.atoms.NetDesktopViewport, &d.atoms.NetCloseWindow,
		&d.atoms.NetSystemTray, &d.atoms.NetSystemTrayOrient, &d.atoms.NetSystemTrayVisual,
		&d.atoms.Manager, &d.atoms.XEmbed, &d.atoms.XEmbedInfo,
		&d.atoms.MotifWMHints,
		&d.atoms.Utf8String,
	}
	for i, f := range fields {
		*f = ids[i]
	}
	return nil
}

// attachRawHandlers wires the xevent callbacks for every event type the
// dispatcher consumes; each pushes a translated Event onto d.events
// instead of acting directly.
func (d *XDisplay) attachRawHandlers() {
	root := xproto.Window(d.root)

	xevent.MapRequestFun(func(xu *xgbutil.XUtil, ev xevent.MapRequestEvent) {
		d.events <- Event{Kind: EventMapRequest, Window: Window(ev.Window)}
	}).Connect(d.xu, root)

	xevent.ConfigureRequestFun(func(xu *xgbutil.XUtil, ev xevent.ConfigureRequestEvent) {
		d.events <- Event{
			Kind:       EventConfigureRequest,
			Window:     Window(ev.Window),
			ConfigMask: ev.ValueMask,
			Geom:       geom.Rect{X: int(ev.X), Y: int(ev.Y), W: int(ev.Width), H: int(ev.Height)},
			BorderW:    int(ev.BorderWidth),
		}
	}).Connect(d.xu, root)

	xevent.UnmapNotifyFun(func(xu *xgbutil.XUtil, ev xevent.UnmapNotifyEvent) {
		d.events <- Event{Kind: EventUnmapNotify, Window: Window(ev.Window), Synthetic: d.consumeSelfUnmap(Window(ev.Window))}
	}).Connect(d.xu, root)

	xevent.DestroyNotifyFun(func(xu *xgbutil.XUtil, ev xevent.DestroyNotifyEvent) {
		d.events <- Event{Kind: EventDestroyNotify, Window: Window(ev.Window)}
	}).Connect(d.xu, root)

	xevent.EnterNotifyFun(func(xu *xgbutil.XUtil, ev xevent.EnterNotifyEvent) {
		d.events <- Event{Kind: EventEnterNotify, Window: Window(ev.Event), RootX: int(ev.RootX), RootY: int(ev.RootY)}
	}).Connect(d.xu, root)

	xevent.FocusInFun(func(xu *xgbutil.XUtil, ev xevent.FocusInEvent) {
		d.events <- Event{Kind: EventFocusIn, Window: Window(ev.Event)}
	}).Connect(d.xu, root)

	xevent.PropertyNotifyFun(func(xu *xgbutil.XUtil, ev xevent.PropertyNotifyEvent) {
		d.events <- Event{Kind: EventPropertyNotify, Window: Window(ev.Window), Atom: uint32(ev.Atom)}
	}).Connect(d.xu, root)

	xevent.ClientMessageFun(func(xu *xgbutil.XUtil, ev xevent.ClientMessageEvent) {
		d.events <- clientMessageEvent(ev)
	}).Connect(d.xu, root)

	xevent.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		d.events <- Event{Kind: EventKeyPress, Window: Window(ev.Event), Mods: ev.State, Detail: ev.Detail}
	}).Connect(d.xu, root)

	xevent.ButtonPressFun(func(xu *xgbutil.XUtil, ev xevent.ButtonPressEvent) {
		d.events <- Event{Kind: EventButtonPress, Window: Window(ev.Event), Mods: ev.State, Detail: ev.Detail, RootX: int(ev.RootX), RootY: int(ev.RootY)}
	}).Connect(d.xu, root)

	xevent.ButtonReleaseFun(func(xu *xgbutil.XUtil, ev xevent.ButtonReleaseEvent) {
		d.events <- Event{Kind: EventButtonRelease, Window: Window(ev.Event), Detail: ev.Detail, RootX: int(ev.RootX), RootY: int(ev.RootY)}
	}).Connect(d.xu, root)

	xevent.ConfigureNotifyFun(func(xu *xgbutil.XUtil, ev xevent.ConfigureNotifyEvent) {
		d.events <- Event{
			Kind:   EventConfigureNotify,
			Window: Window(ev.Window),
			Geom:   geom.Rect{X: int(ev.X), Y: int(ev.Y), W: int(ev.Width), H: int(ev.Height)},
		}
	}).Connect(d.xu, root)

	// MotionNotify is throttled to ~60Hz so a fast pointer doesn't flood
	// the drag loops with more updates than the screen can show.
	xevent.MotionNotifyFun(func(xu *xgbutil.XUtil, ev xevent.MotionNotifyEvent) {
		now := time.Now()
		if now.Sub(d.lastMotion) < 16*time.Millisecond {
			return
		}
		d.lastMotion = now
		d.events <- Event{Kind: EventMotionNotify, Window: Window(ev.Event), X: int(ev.RootX), Y: int(ev.RootY)}
	}).Connect(d.xu, root)
}

func (d *XDisplay) Atoms() Atoms { return d.atoms }
func (d *XDisplay) Root() Window { return d.root }

func (d *XDisplay) ScreenSize() (int, int) {
	screen := d.xu.Screen()
	return int(screen.WidthInPixels), int(screen.HeightInPixels)
}

// PhysicalHeads reports each physical monitor's rectangle, falling back
// to the whole root geometry when Xinerama is unavailable.
func (d *XDisplay) PhysicalHeads() ([]geom.Rect, error) {
	heads, err := xinerama.PhysicalHeads(d.xu)
	if err != nil || len(heads) == 0 {
		w, h := d.ScreenSize()
		return []geom.Rect{{X: 0, Y: 0, W: w, H: h}}, nil
	}
	out := make([]geom.Rect, len(heads))
	for i, r := range heads {
		out[i] = geom.Rect{X: r.X(), Y: r.Y(), W: r.Width(), H: r.Height()}
	}
	return out, nil
}

func (d *XDisplay) Events() <-chan Event { return d.events }

func (d *XDisplay) Listen(w Window, mask uint32) error {
	return xwindow.New(d.xu, xproto.Window(w)).Listen(int(mask))
}

func (d *XDisplay) QueryTree(w Window) ([]Window, error) {
	tree, err := xproto.QueryTree(d.xu.Conn(), xproto.Window(w)).Reply()
	if err != nil {
		return nil, err
	}
	out := make([]Window, len(tree.Children))
	for i, c := range tree.Children {
		out[i] = Window(c)
	}
	return out, nil
}

func (d *XDisplay) GetGeometry(w Window) (geom.Rect, error) {
	g, err := xproto.GetGeometry(d.xu.Conn(), xproto.Drawable(w)).Reply()
	if err != nil {
		return geom.Rect{}, err
	}
	return geom.Rect{X: int(g.X), Y: int(g.Y), W: int(g.Width), H: int(g.Height)}, nil
}

func (d *XDisplay) IsOverrideRedirect(w Window) (bool, error) {
	attr, err := xproto.GetWindowAttributes(d.xu.Conn(), xproto.Window(w)).Reply()
	if err != nil {
		return false, err
	}
	return attr.OverrideRedirect, nil
}

func (d *XDisplay) IsMapped(w Window) (bool, error) {
	attr, err := xproto.GetWindowAttributes(d.xu.Conn(), xproto.Window(w)).Reply()
	if err != nil {
		return false, err
	}
	return attr.MapState != xproto.MapStateUnmapped, nil
}

func (d *XDisplay) Configure(w Window, r geom.Rect, borderW int) error {
	mask := uint16(xproto.ConfigWindowX | xproto.ConfigWindowY | xproto.ConfigWindowWidth |
		xproto.ConfigWindowHeight | xproto.ConfigWindowBorderWidth)
	values := []uint32{uint32(int16(r.X)), uint32(int16(r.Y)), uint32(r.W), uint32(r.H), uint32(borderW)}
	return xproto.ConfigureWindowChecked(d.xu.Conn(), xproto.Window(w), mask, values).Check()
}

func (d *XDisplay) MoveResize(w Window, r geom.Rect) error {
	return xwindow.New(d.xu, xproto.Window(w)).MoveResize(r.X, r.Y, r.W, r.H)
}

func (d *XDisplay) SetBorderWidth(w Window, px int) error {
	mask := uint16(xproto.ConfigWindowBorderWidth)
	return xproto.ConfigureWindowChecked(d.xu.Conn(), xproto.Window(w), mask, []uint32{uint32(px)}).Check()
}

func (d *XDisplay) SetBorderPixel(w Window, pixel uint32) error {
	return xproto.ChangeWindowAttributesChecked(d.xu.Conn(), xproto.Window(w), xproto.CwBorderPixel, []uint32{pixel}).Check()
}

func (d *XDisplay) Map(w Window) error {
	return xproto.MapWindowChecked(d.xu.Conn(), xproto.Window(w)).Check()
}

func (d *XDisplay) Unmap(w Window) error {
	d.mu.Lock()
	d.selfUnmaps[w]++
	d.mu.Unlock()
	err := xproto.UnmapWindowChecked(d.xu.Conn(), xproto.Window(w)).Check()
	if err != nil {
		d.consumeSelfUnmap(w)
	}
	return err
}

// consumeSelfUnmap reports whether an arriving UnmapNotify for w matches
// an Unmap this process issued, clearing one pending entry if so.
func (d *XDisplay) consumeSelfUnmap(w Window) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.selfUnmaps[w] == 0 {
		return false
	}
	d.selfUnmaps[w]--
	if d.selfUnmaps[w] == 0 {
		delete(d.selfUnmaps, w)
	}
	return true
}

func (d *XDisplay) Destroy(w Window) error {
	return xproto.DestroyWindowChecked(d.xu.Conn(), xproto.Window(w)).Check()
}

func (d *XDisplay) Reparent(w, parent Window, x, y int) error {
	return xproto.ReparentWindowChecked(d.xu.Conn(), xproto.Window(w), xproto.Window(parent), int16(x), int16(y)).Check()
}

func (d *XDisplay) StackAbove(w, sibling Window) error {
	mask := uint16(xproto.ConfigWindowSibling | xproto.ConfigWindowStackMode)
	return xproto.ConfigureWindowChecked(d.xu.Conn(), xproto.Window(w), mask,
		[]uint32{uint32(sibling), uint32(xproto.StackModeAbove)}).Check()
}

func (d *XDisplay) StackBelow(w, sibling Window) error {
	mask := uint16(xproto.ConfigWindowSibling | xproto.ConfigWindowStackMode)
	return xproto.ConfigureWindowChecked(d.xu.Conn(), xproto.Window(w), mask,
		[]uint32{uint32(sibling), uint32(xproto.StackModeBelow)}).Check()
}

func (d *XDisplay) Raise(w Window) error {
	mask := uint16(xproto.ConfigWindowStackMode)
	return xproto.ConfigureWindowChecked(d.xu.Conn(), xproto.Window(w), mask, []uint32{uint32(xproto.StackModeAbove)}).Check()
}

func (d *XDisplay) SetInputFocus(w Window) error {
	return xproto.SetInputFocusChecked(d.xu.Conn(), xproto.InputFocusPointerRoot, xproto.Window(w), 0).Check()
}

func protocolName(d *XDisplay, atom uint32) string {
	name, err := xprop.AtomName(d.xu, xproto.Atom(atom))
	if err != nil {
		return ""
	}
	return name
}

func (d *XDisplay) SendTakeFocus(w Window) error {
	return d.sendClientMessage32(w, d.atoms.WMProtocols, [5]uint32{d.atoms.WMTakeFocus, xproto.TimeCurrentTime})
}

func (d *XDisplay) SendDeleteWindow(w Window) error {
	return d.sendClientMessage32(w, d.atoms.WMProtocols, [5]uint32{d.atoms.WMDelete, xproto.TimeCurrentTime})
}

func (d *XDisplay) sendClientMessage32(w Window, typ uint32, data [5]uint32) error {
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: xproto.Window(w),
		Type:   xproto.Atom(typ),
		Data:   xproto.ClientMessageDataUnionData32New(data[:]),
	}
	return xproto.SendEventChecked(d.xu.Conn(), false, xproto.Window(w), xproto.EventMaskNoEvent, string(ev.Bytes())).Check()
}

func (d *XDisplay) SendClientMessage(to, target Window, typ uint32, data [5]uint32) error {
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: xproto.Window(target),
		Type:   xproto.Atom(typ),
		Data:   xproto.ClientMessageDataUnionData32New(data[:]),
	}
	return xproto.SendEventChecked(d.xu.Conn(), false, xproto.Window(to), xproto.EventMaskNoEvent, string(ev.Bytes())).Check()
}

func (d *XDisplay) KillClient(w Window) error {
	return xproto.KillClientChecked(d.xu.Conn(), uint32(w)).Check()
}

func (d *XDisplay) WMClass(w Window) (string, string, error) {
	class, err := icccm.WmClassGet(d.xu, xproto.Window(w))
	if err != nil {
		return "", "", err
	}
	return class.Class, class.Instance, nil
}

func (d *XDisplay) WMName(w Window) (string, error) {
	name, err := ewmh.WmNameGet(d.xu, xproto.Window(w))
	if name != "" && err == nil {
		return name, nil
	}
	return icccm.WmNameGet(d.xu, xproto.Window(w))
}

func (d *XDisplay) WMHints(w Window) (WMHints, error) {
	hints, err := icccm.WmHintsGet(d.xu, xproto.Window(w))
	if err != nil {
		return WMHints{}, err
	}
	h := WMHints{
		HasInput:     hints.Flags&icccm.HintInput > 0,
		Input:        hints.Input == 1,
		Urgent:       hints.Flags&icccm.HintUrgency > 0,
		HasInitState: hints.Flags&icccm.HintState > 0,
		Iconic:       hints.InitialState == icccm.StateIconic,
	}
	return h, nil
}

func (d *XDisplay) SizeHints(w Window) (SizeHints, error) {
	hints, err := icccm.WmNormalHintsGet(d.xu, xproto.Window(w))
	if err != nil {
		return SizeHints{}, err
	}
	s := SizeHints{
		HasMin:    hints.Flags&icccm.SizeHintPMinSize > 0,
		HasMax:    hints.Flags&icccm.SizeHintPMaxSize > 0,
		HasInc:    hints.Flags&icccm.SizeHintPResizeInc > 0,
		HasAspect: hints.Flags&icccm.SizeHintPAspect > 0,
		HasBase:   hints.Flags&icccm.SizeHintPBaseSize > 0,
		MinW:      int(hints.MinWidth), MinH: int(hints.MinHeight),
		MaxW: int(hints.MaxWidth), MaxH: int(hints.MaxHeight),
		IncW: int(hints.WidthInc), IncH: int(hints.HeightInc),
		BaseW: int(hints.BaseWidth), BaseH: int(hints.BaseHeight),
	}
	if s.HasAspect && hints.MaxAspectDen != 0 && hints.MinAspectDen != 0 {
		s.MaxA = float64(hints.MaxAspectNum) / float64(hints.MaxAspectDen)
		s.MinA = float64(hints.MinAspectNum) / float64(hints.MinAspectDen)
	}
	return s, nil
}

func (d *XDisplay) TransientFor(w Window) (Window, bool, error) {
	t, err := icccm.WmTransientForGet(d.xu, xproto.Window(w))
	if err != nil || t == 0 {
		return 0, false, err
	}
	return Window(t), true, nil
}

func (d *XDisplay) SupportsProtocol(w Window, atom uint32) (bool, error) {
	protos, err := icccm.WmProtocolsGet(d.xu, xproto.Window(w))
	if err != nil {
		return false, err
	}
	name := protocolName(d, atom)
	for _, p := range protos {
		if p == name {
			return true, nil
		}
	}
	return false, nil
}

func (d *XDisplay) WindowTypeAtoms(w Window) ([]uint32, error) {
	reply, err := xprop.GetProperty(d.xu, xproto.Window(w), "_NET_WM_WINDOW_TYPE")
	if err != nil {
		return nil, err
	}
	vals, err := xprop.PropValAtoms(reply, err)
	if err != nil {
		return nil, err
	}
	out := make([]uint32, len(vals))
	for i, v := range vals {
		out[i] = uint32(v)
	}
	return out, nil
}

// MotifBorder reports whether the window wants its decorations kept,
// reading the decorations member of _MOTIF_WM_HINTS. Windows without the
// property keep their border.
func (d *XDisplay) MotifBorder(w Window) (bool, error) {
	const mwmHintsDecorations = 1 << 1
	reply, err := xprop.GetProperty(d.xu, xproto.Window(w), "_MOTIF_WM_HINTS")
	if err != nil || reply == nil {
		return true, nil
	}
	vals, err := xprop.PropValNums(reply, nil)
	if err != nil || len(vals) < 3 {
		return true, nil
	}
	if vals[0]&mwmHintsDecorations == 0 {
		return true, nil
	}
	return vals[2] != 0, nil
}

func (d *XDisplay) ProcessID(w Window) (int, bool, error) {
	pid, err := ewmh.WmPidGet(d.xu, xproto.Window(w))
	if err != nil {
		return 0, false, nil
	}
	return int(pid), true, nil
}

func (d *XDisplay) SetSupported(atoms []uint32) error {
	names := make([]string, len(atoms))
	for i, a := range atoms {
		names[i] = protocolName(d, a)
	}
	return ewmh.SupportedSet(d.xu, names)
}

// SetSupportingCheck publishes the supporting-WM-check window on both the
// root and the check window itself, which must also carry the property
// per the EWMH convention.
func (d *XDisplay) SetSupportingCheck(check Window) error {
	win := xproto.Window(check)
	if err := ewmh.SupportingWmCheckSet(d.xu, d.xu.RootWin(), win); err != nil {
		return err
	}
	if err := ewmh.SupportingWmCheckSet(d.xu, win, win); err != nil {
		return err
	}
	return ewmh.WmNameSet(d.xu, win, "tagwm")
}

func (d *XDisplay) SetNumberOfDesktops(n int) error { return ewmh.NumberOfDesktopsSet(d.xu, uint(n)) }
func (d *XDisplay) SetCurrentDesktop(n int) error   { return ewmh.CurrentDesktopSet(d.xu, uint(n)) }
func (d *XDisplay) SetDesktopNames(names []string) error {
	return ewmh.DesktopNamesSet(d.xu, names)
}
func (d *XDisplay) SetDesktopViewport() error { return ewmh.DesktopViewportSet(d.xu, nil) }

func (d *XDisplay) SetClientList(windows []Window) error {
	return ewmh.ClientListSet(d.xu, toXprotoWindows(windows))
}

func (d *XDisplay) SetClientListStacking(windows []Window) error {
	return ewmh.ClientListStackingSet(d.xu, toXprotoWindows(windows))
}

func toXprotoWindows(in []Window) []xproto.Window {
	out := make([]xproto.Window, len(in))
	for i, w := range in {
		out[i] = xproto.Window(w)
	}
	return out
}

func (d *XDisplay) SetActiveWindow(w Window) error {
	return ewmh.ActiveWindowSet(d.xu, xproto.Window(w))
}

func (d *XDisplay) SetWMState(w Window, atoms []uint32) error {
	names := make([]string, len(atoms))
	for i, a := range atoms {
		names[i] = protocolName(d, a)
	}
	return ewmh.WmStateSet(d.xu, xproto.Window(w), names)
}

func (d *XDisplay) GetWMState(w Window) ([]uint32, error) {
	names, err := ewmh.WmStateGet(d.xu, xproto.Window(w))
	if err != nil {
		return nil, err
	}
	out := make([]uint32, len(names))
	for i, n := range names {
		atom, err := xprop.Atom(d.xu, n, false)
		if err != nil {
			continue
		}
		out[i] = uint32(atom)
	}
	return out, nil
}

func (d *XDisplay) SetWMDesktop(w Window, n int) error {
	return ewmh.WmDesktopSet(d.xu, xproto.Window(w), uint(n))
}

// SetWithdrawn marks a window's ICCCM WM_STATE as withdrawn, the state a
// client lands in after asking to be unmapped without being destroyed.
func (d *XDisplay) SetWithdrawn(w Window) error {
	return icccm.WmStateSet(d.xu, xproto.Window(w), &icccm.WmState{State: icccm.StateWithdrawn})
}

// AcquireSelection claims ownership of a selection atom for owner, the
// manager-selection handshake the system tray host performs. Returns
// false without an error if another client already owns the selection.
func (d *XDisplay) AcquireSelection(owner Window, atom uint32) (bool, error) {
	current, err := xproto.GetSelectionOwner(d.xu.Conn(), xproto.Atom(atom)).Reply()
	if err != nil {
		return false, err
	}
	if current.Owner != xproto.WindowNone {
		return false, nil
	}
	if err := xproto.SetSelectionOwnerChecked(d.xu.Conn(), xproto.Window(owner), xproto.Atom(atom), xproto.TimeCurrentTime).Check(); err != nil {
		return false, err
	}
	return true, nil
}

func (d *XDisplay) QueryPointer() (int, int, Window, error) {
	ptr, err := xproto.QueryPointer(d.xu.Conn(), xproto.Window(d.root)).Reply()
	if err != nil {
		return 0, 0, 0, err
	}
	return int(ptr.RootX), int(ptr.RootY), Window(ptr.Child), nil
}

func (d *XDisplay) WarpPointer(w Window, x, y int) error {
	return xproto.WarpPointerChecked(d.xu.Conn(), xproto.WindowNone, xproto.Window(w), 0, 0, 0, 0, int16(x), int16(y)).Check()
}

func (d *XDisplay) CreateCursor(shape uint16) (uint32, error) {
	c, err := xcursor.CreateCursor(d.xu, shape)
	return uint32(c), err
}

func (d *XDisplay) SetCursor(w Window, cursor uint32) error {
	return xproto.ChangeWindowAttributesChecked(d.xu.Conn(), xproto.Window(w), xproto.CwCursor, []uint32{cursor}).Check()
}

func (d *XDisplay) GrabKey(w Window, mods uint16, key string) error {
	codes := keybind.StrToKeycodes(d.xu, key)
	if len(codes) == 0 {
		return fmt.Errorf("display: no keycode for %q", key)
	}
	return xproto.GrabKeyChecked(d.xu.Conn(), true, xproto.Window(w), mods, codes[0],
		xproto.GrabModeAsync, xproto.GrabModeAsync).Check()
}

func (d *XDisplay) GrabButton(w Window, mods uint16, button uint8) error {
	return xproto.GrabButtonChecked(d.xu.Conn(), false, xproto.Window(w),
		uint16(xproto.EventMaskButtonPress|xproto.EventMaskButtonRelease),
		xproto.GrabModeAsync, xproto.GrabModeAsync,
		xproto.WindowNone, xproto.CursorNone, xproto.Button(button), mods).Check()
}

func (d *XDisplay) UngrabAll(w Window) error {
	keybind.Detach(d.xu, xproto.Window(w))
	mousebind.Detach(d.xu, xproto.Window(w))
	return nil
}

// KeycodeOf resolves a keysym name (e.g. "Return", "j") to the keycode
// the input binder matches incoming KeyPress events against, since the
// wire event only carries the raw keycode, not the name it was grabbed
// under.
func (d *XDisplay) KeycodeOf(key string) (uint8, error) {
	codes := keybind.StrToKeycodes(d.xu, key)
	if len(codes) == 0 {
		return 0, fmt.Errorf("display: no keycode for %q", key)
	}
	return byte(codes[0]), nil
}

func (d *XDisplay) Sync() error {
	_, err := xproto.GetInputFocus(d.xu.Conn()).Reply()
	return err
}

func (d *XDisplay) Close() error {
	d.xu.Conn().Close()
	close(d.events)
	return nil
}

// PID helpers used by the swallow engine live here rather than in the wm
// package because they read /proc, not the X connection, and ProcessID
// above is their only caller's usual companion.
func readProcStatField(pid int, field int) (string, error) {
	data, err := os.ReadFile(fmt.Sprintf("/proc/%d/stat", pid))
	if err != nil {
		return "", err
	}
	fields := strings.Fields(string(data))
	if field >= len(fields) {
		return "", fmt.Errorf("display: /proc/%d/stat has only %d fields", pid, len(fields))
	}
	return fields[field], nil
}

// ParentPID returns pid's parent process ID by reading /proc/<pid>/stat
// field 3 (0-indexed).
func ParentPID(pid int) (int, error) {
	s, err := readProcStatField(pid, 3)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(s)
}
