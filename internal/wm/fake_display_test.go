package wm

import (
	"github.com/tagwm/tagwm/internal/display"
	"github.com/tagwm/tagwm/internal/geom"
)

// fakeDisplay is a minimal in-memory display.Display used to exercise
// the wm package's state machine without an X connection.
type fakeDisplay struct {
	events  chan display.Event
	geoms   map[display.Window]geom.Rect
	classes map[display.Window][2]string
	names   map[display.Window]string
	pids    map[display.Window]int
	state   map[display.Window][]uint32
	heads   []geom.Rect
}

func newFakeDisplay() *fakeDisplay {
	return &fakeDisplay{
		events:  make(chan display.Event, 64),
		geoms:   make(map[display.Window]geom.Rect),
		classes: make(map[display.Window][2]string),
		names:   make(map[display.Window]string),
		pids:    make(map[display.Window]int),
		state:   make(map[display.Window][]uint32),
		heads:   []geom.Rect{{X: 0, Y: 0, W: 1920, H: 1080}},
	}
}

func (f *fakeDisplay) Atoms() display.Atoms { return display.Atoms{NetWMStateFullscreen: 1} }
func (f *fakeDisplay) Root() display.Window { return 1 }
func (f *fakeDisplay) ScreenSize() (int, int) { return 1920, 1080 }
func (f *fakeDisplay) PhysicalHeads() ([]geom.Rect, error) { return f.heads, nil }

func (f *fakeDisplay) Events() <-chan display.Event { return f.events }
func (f *fakeDisplay) Listen(display.Window, uint32) error { return nil }

func (f *fakeDisplay) QueryTree(display.Window) ([]display.Window, error) { return nil, nil }
func (f *fakeDisplay) GetGeometry(w display.Window) (geom.Rect, error) { return f.geoms[w], nil }
func (f *fakeDisplay) IsOverrideRedirect(display.Window) (bool, error) { return false, nil }
func (f *fakeDisplay) IsMapped(display.Window) (bool, error) { return true, nil }

func (f *fakeDisplay) Configure(w display.Window, r geom.Rect, _ int) error {
	f.geoms[w] = r
	return nil
}
func (f *fakeDisplay) MoveResize(w display.Window, r geom.Rect) error {
	f.geoms[w] = r
	return nil
}
func (f *fakeDisplay) SetBorderWidth(display.Window, int) error { return nil }
func (f *fakeDisplay) SetBorderPixel(display.Window, uint32) error { return nil }
func (f *fakeDisplay) Map(display.Window) error { return nil }
func (f *fakeDisplay) Unmap(display.Window) error { return nil }
func (f *fakeDisplay) Destroy(display.Window) error { return nil }
func (f *fakeDisplay) Reparent(display.Window, display.Window, int, int) error { return nil }
func (f *fakeDisplay) StackAbove(display.Window, display.Window) error { return nil }
func (f *fakeDisplay) StackBelow(display.Window, display.Window) error { return nil }
func (f *fakeDisplay) Raise(display.Window) error { return nil }

func (f *fakeDisplay) SetInputFocus(display.Window) error { return nil }
func (f *fakeDisplay) SendTakeFocus(display.Window) error { return nil }
func (f *fakeDisplay) SendDeleteWindow(display.Window) error { return nil }
func (f *fakeDisplay) KillClient(display.Window) error { return nil }

func (f *fakeDisplay) WMClass(w display.Window) (string, string, error) {
	c := f.classes[w]
	return c[0], c[1], nil
}
func (f *fakeDisplay) WMName(w display.Window) (string, error) { return f.names[w], nil }
func (f *fakeDisplay) WMHints(display.Window) (display.WMHints, error) { return display.WMHints{}, nil }
func (f *fakeDisplay) SizeHints(display.Window) (display.SizeHints, error) {
	return display.SizeHints{}, nil
}
func (f *fakeDisplay) TransientFor(display.Window) (display.Window, bool, error) { return 0, false, nil }
func (f *fakeDisplay) SupportsProtocol(display.Window, uint32) (bool, error) { return false, nil }
func (f *fakeDisplay) WindowTypeAtoms(display.Window) ([]uint32, error) { return nil, nil }
func (f *fakeDisplay) ProcessID(w display.Window) (int, bool, error) {
	pid, ok := f.pids[w]
	return pid, ok, nil
}
func (f *fakeDisplay) MotifBorder(display.Window) (bool, error) { return true, nil }

func (f *fakeDisplay) SetSupported([]uint32) error { return nil }
func (f *fakeDisplay) SetSupportingCheck(display.Window) error { return nil }
func (f *fakeDisplay) SetNumberOfDesktops(int) error { return nil }
func (f *fakeDisplay) SetCurrentDesktop(int) error { return nil }
func (f *fakeDisplay) SetDesktopNames([]string) error { return nil }
func (f *fakeDisplay) SetDesktopViewport() error { return nil }
func (f *fakeDisplay) SetClientList([]display.Window) error { return nil }
func (f *fakeDisplay) SetClientListStacking([]display.Window) error { return nil }
func (f *fakeDisplay) SetActiveWindow(display.Window) error { return nil }
func (f *fakeDisplay) SetWMState(w display.Window, atoms []uint32) error {
	f.state[w] = atoms
	return nil
}
func (f *fakeDisplay) GetWMState(w display.Window) ([]uint32, error) { return f.state[w], nil }
func (f *fakeDisplay) SetWMDesktop(display.Window, int) error { return nil }
func (f *fakeDisplay) SetWithdrawn(display.Window) error      { return nil }

func (f *fakeDisplay) AcquireSelection(display.Window, uint32) (bool, error) { return true, nil }
func (f *fakeDisplay) SendClientMessage(display.Window, display.Window, uint32, [5]uint32) error {
	return nil
}

func (f *fakeDisplay) QueryPointer() (int, int, display.Window, error) { return 0, 0, f.Root(), nil }
func (f *fakeDisplay) WarpPointer(display.Window, int, int) error { return nil }
func (f *fakeDisplay) CreateCursor(uint16) (uint32, error) { return 0, nil }
func (f *fakeDisplay) SetCursor(display.Window, uint32) error { return nil }

func (f *fakeDisplay) GrabKey(display.Window, uint16, string) error { return nil }
func (f *fakeDisplay) GrabButton(display.Window, uint16, uint8) error { return nil }
func (f *fakeDisplay) UngrabAll(display.Window) error { return nil }
func (f *fakeDisplay) KeycodeOf(string) (uint8, error) { return 0, nil }

func (f *fakeDisplay) Sync() error { return nil }
func (f *fakeDisplay) Close() error { return nil }
