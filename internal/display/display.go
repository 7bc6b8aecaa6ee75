// Package display is the seam between the window-management state machine
// in internal/wm and the X11 protocol. It exists so the event dispatcher,
// layout application, and rule engine can be described (and tested) in
// terms of window IDs and rectangles rather than xgbutil types directly.
package display

import "github.com/tagwm/tagwm/internal/geom"

// Window is an opaque X window ID.
type Window uint32

// EventKind distinguishes the event union delivered through Display's
// event channel; the dispatch table is keyed on this.
type EventKind int

const (
	EventMapRequest EventKind = iota
	EventConfigureRequest
	EventConfigureNotify
	EventUnmapNotify
	EventDestroyNotify
	EventEnterNotify
	EventFocusIn
	EventPropertyNotify
	EventClientMessage
	EventButtonPress
	EventButtonRelease
	EventKeyPress
	EventMotionNotify
	EventExpose
)

// Event is the union of every X event the window manager reacts to.
// Fields unrelated to Kind are zero.
type Event struct {
	Kind   EventKind
	Window Window

	// Synthetic marks an UnmapNotify that does not mean the client died:
	// an ICCCM withdraw request, or an unmap this process issued itself.
	// The transport does not surface the protocol's send_event flag, so
	// the display marks the unmaps it generated; both cases call for the
	// same handling.
	Synthetic bool

	// ConfigureRequest
	ConfigMask uint16
	Geom       geom.Rect
	BorderW    int

	// PropertyNotify / ClientMessage
	Atom uint32
	Data [5]uint32

	// ButtonPress / KeyPress
	Mods   uint16
	Detail uint8
	RootX  int
	RootY  int

	// MotionNotify
	X, Y int
}

// WMHints mirrors the ICCCM WM_HINTS fields the rule engine and focus
// manager consult.
type WMHints struct {
	HasInput     bool
	Input        bool
	Urgent       bool
	HasInitState bool
	Iconic       bool
}

// SizeHints mirrors WM_NORMAL_HINTS for the generic resize path.
type SizeHints struct {
	HasMin, HasMax, HasInc, HasAspect, HasBase bool
	MinW, MinH                                 int
	MaxW, MaxH                                 int
	IncW, IncH                                 int
	BaseW, BaseH                               int
	MinA, MaxA                                 float64 // aspect ratios, width/height
}

// Display is every X11 operation the window manager core needs. Tests for
// internal/wm use a fake implementation; cmd/tagwm wires the real one
// from xdisplay.go.
type Display interface {
	Atoms() Atoms
	Root() Window
	ScreenSize() (w, h int)
	PhysicalHeads() ([]geom.Rect, error)

	Events() <-chan Event
	Listen(w Window, mask uint32) error

	QueryTree(w Window) ([]Window, error)
	GetGeometry(w Window) (geom.Rect, error)
	IsOverrideRedirect(w Window) (bool, error)
	IsMapped(w Window) (bool, error)

	Configure(w Window, r geom.Rect, borderW int) error
	MoveResize(w Window, r geom.Rect) error
	SetBorderWidth(w Window, px int) error
	SetBorderPixel(w Window, pixel uint32) error
	Map(w Window) error
	Unmap(w Window) error
	Destroy(w Window) error
	Reparent(w, parent Window, x, y int) error
	StackAbove(w, sibling Window) error
	StackBelow(w, sibling Window) error
	Raise(w Window) error

	SetInputFocus(w Window) error
	SendTakeFocus(w Window) error
	SendDeleteWindow(w Window) error
	KillClient(w Window) error

	WMClass(w Window) (class, instance string, err error)
	WMName(w Window) (string, error)
	WMHints(w Window) (WMHints, error)
	SizeHints(w Window) (SizeHints, error)
	TransientFor(w Window) (Window, bool, error)
	SupportsProtocol(w Window, atom uint32) (bool, error)
	WindowTypeAtoms(w Window) ([]uint32, error)
	ProcessID(w Window) (int, bool, error)
	MotifBorder(w Window) (bool, error)

	SetSupported(atoms []uint32) error
	SetSupportingCheck(check Window) error
	SetNumberOfDesktops(n int) error
	SetCurrentDesktop(n int) error
	SetDesktopNames(names []string) error
	SetDesktopViewport() error
	SetClientList(windows []Window) error
	SetClientListStacking(windows []Window) error
	SetActiveWindow(w Window) error
	SetWMState(w Window, atoms []uint32) error
	GetWMState(w Window) ([]uint32, error)
	SetWMDesktop(w Window, n int) error
	SetWithdrawn(w Window) error

	AcquireSelection(owner Window, atom uint32) (bool, error)
	SendClientMessage(to, target Window, typ uint32, data [5]uint32) error

	QueryPointer() (x, y int, root Window, err error)
	WarpPointer(w Window, x, y int) error
	CreateCursor(shape uint16) (uint32, error)
	SetCursor(w Window, cursor uint32) error

	GrabKey(w Window, mods uint16, key string) error
	GrabButton(w Window, mods uint16, button uint8) error
	UngrabAll(w Window) error
	KeycodeOf(key string) (uint8, error)

	Sync() error
	Close() error
}
