package wm

import (
	"io"
	"log/slog"
	"testing"

	"github.com/tagwm/tagwm/internal/config"
	"github.com/tagwm/tagwm/internal/display"
	"github.com/tagwm/tagwm/internal/geom"
)

func testWorld(t *testing.T) (*World, *fakeDisplay) {
	t.Helper()
	fd := newFakeDisplay()
	cfg := config.Default()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	w := New(fd, cfg, log)
	if err := w.AttachMonitors(); err != nil {
		t.Fatalf("AttachMonitors: %v", err)
	}
	return w, fd
}

func addClient(w *World, fd *fakeDisplay, win display.Window, class, instance string) *Client {
	fd.geoms[win] = w.SelMon.WArea()
	fd.classes[win] = [2]string{class, instance}
	c := w.manage(win)
	return c
}

func TestViewRefusesToBlankAllTags(t *testing.T) {
	w, _ := testWorld(t)
	m := w.SelMon
	before := m.TagSet
	w.View(m, 0)
	if m.TagSet != before {
		t.Fatalf("View(0) changed TagSet to %x, want unchanged %x", m.TagSet, before)
	}
}

func TestMonitorsStartOnDisjointTags(t *testing.T) {
	w, _ := testWorldTwoMonitors(t)
	mons := w.monitorList()
	if mons[0].TagSet&mons[1].TagSet != 0 {
		t.Fatalf("monitors share a tag at startup: %x & %x", mons[0].TagSet, mons[1].TagSet)
	}
}

func TestSetFullscreenRestoresGeometry(t *testing.T) {
	w, fd := testWorld(t)
	c := addClient(w, fd, 510, "mpv", "mpv")
	w.ToggleFloating(c)
	before := c.Geom

	w.SetFullscreen(c, true)
	if c.Geom != w.SelMon.MGeom {
		t.Fatalf("fullscreen geometry = %+v, want monitor rect %+v", c.Geom, w.SelMon.MGeom)
	}
	w.SetFullscreen(c, false)
	if c.Geom != before {
		t.Fatalf("fullscreen exit geometry = %+v, want pre-fullscreen %+v", c.Geom, before)
	}
}

// Switching to a view that would surface two fullscreen clients at once
// drops fullscreen on all of them; neither re-enters on the way back.
func TestViewClearsDoubleFullscreen(t *testing.T) {
	w, fd := testWorld(t)
	a := addClient(w, fd, 520, "a", "a")
	b := addClient(w, fd, 521, "b", "b")
	a.Tags = config.TagMask(0) | config.TagMask(1)
	b.Tags = config.TagMask(1)
	w.SetFullscreen(a, true)

	w.View(w.SelMon, config.TagMask(1))
	w.SetFullscreen(b, true)
	// Force both fullscreen on the same view to provoke the ambiguity.
	a.IsFullscreen = true
	w.View(w.SelMon, config.TagMask(0))
	w.View(w.SelMon, config.TagMask(1))

	if a.IsFullscreen || b.IsFullscreen {
		t.Fatalf("double fullscreen survived a view switch: a=%v b=%v", a.IsFullscreen, b.IsFullscreen)
	}
}

func TestToggleFloatingIsInvolution(t *testing.T) {
	w, fd := testWorld(t)
	c := addClient(w, fd, 530, "xterm", "xterm")
	before := c.IsFloating
	w.ToggleFloating(c)
	w.ToggleFloating(c)
	if c.IsFloating != before {
		t.Fatalf("double ToggleFloating changed state: %v -> %v", before, c.IsFloating)
	}
}

func TestToggleFloatingIgnoresFixedClients(t *testing.T) {
	w, fd := testWorld(t)
	c := addClient(w, fd, 531, "xterm", "xterm")
	c.IsFixed = true
	c.IsFloating = true
	w.ToggleFloating(c)
	if !c.IsFloating {
		t.Fatalf("ToggleFloating un-floated a fixed-size client")
	}
}

func TestFocusStackRelativeWraps(t *testing.T) {
	w, fd := testWorld(t)
	a := addClient(w, fd, 540, "a", "a")
	b := addClient(w, fd, 541, "b", "b")
	w.Focus(a)

	w.FocusStack(FocusRelative + 1)
	if w.SelMon.Sel != b {
		t.Fatalf("FocusStack(+1) selected %v, want b", w.SelMon.Sel)
	}
	w.FocusStack(FocusRelative + 1)
	if w.SelMon.Sel != a {
		t.Fatalf("FocusStack(+1) did not wrap back to a")
	}
}

func TestFocusStackPrevSelectsPreviousClient(t *testing.T) {
	w, fd := testWorld(t)
	a := addClient(w, fd, 542, "a", "a")
	b := addClient(w, fd, 543, "b", "b")
	w.Focus(a)
	w.Focus(b)

	w.FocusStack(FocusPrev)
	if w.SelMon.Sel != a {
		t.Fatalf("FocusStack(prev) selected %v, want the previously focused client", w.SelMon.Sel)
	}
}

func TestPushStackSwapsAttachOrder(t *testing.T) {
	w, fd := testWorld(t)
	a := addClient(w, fd, 550, "a", "a")
	b := addClient(w, fd, 551, "b", "b")
	// Attach order is most-recent-first: [b, a].
	w.Focus(b)

	w.PushStack(+1)

	clients := w.SelMon.Clients()
	if len(clients) != 2 || clients[0] != a || clients[1] != b {
		t.Fatalf("PushStack did not swap the attach order: got %v", clients)
	}
}

func TestSetMFactClampsOutOfRange(t *testing.T) {
	w, _ := testWorld(t)
	m := w.SelMon
	before := m.MFact
	w.SetMFact(m, 0.9)
	if m.MFact != before {
		t.Fatalf("out-of-range mfact applied: %v", m.MFact)
	}
	w.SetMFact(m, 0.05)
	if m.MFact != before+0.05 {
		t.Fatalf("in-range mfact delta not applied: %v", m.MFact)
	}
}

func TestIncNMasterFloorsAtZero(t *testing.T) {
	w, _ := testWorld(t)
	m := w.SelMon
	w.IncNMaster(m, -5)
	if m.NMaster != 0 {
		t.Fatalf("nmaster went below zero: %d", m.NMaster)
	}
}

func TestToggleViewNeverLeavesNoTagsVisible(t *testing.T) {
	w, _ := testWorld(t)
	m := w.SelMon
	m.TagSet = config.TagMask(0)
	w.ToggleView(m, config.TagMask(0))
	if m.TagSet != config.TagMask(0) {
		t.Fatalf("ToggleView emptied the visible set: got %x", m.TagSet)
	}
}

func TestToggleTagNeverLeavesClientTagless(t *testing.T) {
	w, fd := testWorld(t)
	c := addClient(w, fd, 100, "xterm", "xterm")
	before := c.Tags
	w.ToggleTag(c, before)
	if c.Tags != before {
		t.Fatalf("ToggleTag emptied a client's tags: got %x, want unchanged %x", c.Tags, before)
	}
}

func TestPertagPersistsLayoutAcrossViewSwitches(t *testing.T) {
	w, _ := testWorld(t)
	m := w.SelMon // starts on tag index 0

	w.View(m, config.TagMask(1))
	w.SetLayout(m, 2)
	if m.SelLayout != 2 {
		t.Fatalf("SetLayout on tag 2 did not apply: got %d", m.SelLayout)
	}

	w.View(m, config.TagMask(0))
	if m.SelLayout != w.Cfg.Layout {
		t.Fatalf("tag 1 inherited tag 2's layout override: got %d, want default %d", m.SelLayout, w.Cfg.Layout)
	}

	w.View(m, config.TagMask(1))
	if m.SelLayout != 2 {
		t.Fatalf("tag 2's layout override was not restored: got %d, want 2", m.SelLayout)
	}
}

func TestApplyRulesFloatsMatchingClass(t *testing.T) {
	w, fd := testWorld(t)
	c := addClient(w, fd, 200, "Gimp", "gimp")
	if !c.IsFloating {
		t.Fatalf("Gimp rule did not float the client")
	}
}

func TestApplyRulesAssignsConfiguredTag(t *testing.T) {
	w, fd := testWorld(t)
	c := addClient(w, fd, 201, "Firefox", "firefox")
	if c.Tags != config.TagMask(8) {
		t.Fatalf("Firefox rule tag = %x, want %x", c.Tags, config.TagMask(8))
	}
}

func TestUnmatchedClientInheritsMonitorTagSet(t *testing.T) {
	w, fd := testWorld(t)
	c := addClient(w, fd, 202, "xterm", "xterm")
	if c.Tags != w.SelMon.TagSet {
		t.Fatalf("unmatched client tags = %x, want monitor's current tagset %x", c.Tags, w.SelMon.TagSet)
	}
}

// A scratchpad client is floating, sized/positioned by its rule's
// FloatPos, on a scratchpad tag not visible until toggled.
func TestScratchpadRuleFloatsHiddenAndCentered(t *testing.T) {
	w, fd := testWorld(t)
	c := addClient(w, fd, 800, "kitty-sp", "kitty-sp")

	if !c.IsFloating {
		t.Fatalf("scratchpad client not floating")
	}
	if c.IsVisible() {
		t.Fatalf("scratchpad client visible before togglescratch")
	}
	work := w.SelMon.WArea()
	wantW, wantH := work.W*9/10, work.H*8/10
	if c.Geom.W != wantW || c.Geom.H != wantH {
		t.Fatalf("scratchpad size = %dx%d, want %dx%d", c.Geom.W, c.Geom.H, wantW, wantH)
	}

	w.ToggleScratchpad(0)
	if !c.IsVisible() {
		t.Fatalf("togglescratch(0) did not surface the scratchpad client")
	}
}

// Re-applying the rule table to an already-tagged client must leave the
// result unchanged.
func TestApplyRulesMatchOnceIdempotent(t *testing.T) {
	w, fd := testWorld(t)
	c := addClient(w, fd, 801, "Firefox", "firefox")
	first := c.Tags
	firstFloat := c.IsFloating

	w.ApplyRules(c)

	if c.Tags != first || c.IsFloating != firstFloat {
		t.Fatalf("re-applying rules changed state: tags %x->%x floating %v->%v", first, c.Tags, firstFloat, c.IsFloating)
	}
}

// Class predicates match as a substring of WM_CLASS, not an exact
// string.
func TestRuleClassMatchesBySubstring(t *testing.T) {
	w, fd := testWorld(t)
	c := addClient(w, fd, 802, "Gimp-2.10", "gimp")
	if !c.IsFloating {
		t.Fatalf("substring class match against %q did not float the client", c.Class)
	}
}

// A terminal whose descendant maps a window adopts that window: the
// terminal record stays in the lists showing the child's content, while
// the terminal's own window is hidden behind an unreachable record.
func TestSwallowTerminalAdoptsChildWindow(t *testing.T) {
	w, fd := testWorld(t)
	fd.pids[300] = 1000
	fd.pids[301] = 1001
	w.parentPID = fakeAncestry(map[int]int{1001: 1000})

	term := addClient(w, fd, 300, "st-256color", "st")
	got := addClient(w, fd, 301, "mpv", "mpv")

	if got != term {
		t.Fatalf("manage of the child should hand back the swallowing terminal record")
	}
	if term.Swallows == nil {
		t.Fatalf("terminal did not swallow its descendant")
	}
	if term.Win != 301 {
		t.Fatalf("terminal record should adopt the child's window, has %d", term.Win)
	}
	if w.ClientOf(300) != nil {
		t.Fatalf("the hidden terminal window must not resolve to a client while swallowed")
	}
	if w.ClientOf(301) != term {
		t.Fatalf("the child's window should resolve to the terminal record")
	}
	if !contains(w.SelMon.Clients(), term) {
		t.Fatalf("the swallowing terminal should stay in the monitor's client list")
	}
	if len(w.SelMon.Clients()) != 1 {
		t.Fatalf("client list should hold exactly one of the pair, has %d", len(w.SelMon.Clients()))
	}
}

func TestUnswallowRestoresTerminalOnChildExit(t *testing.T) {
	w, fd := testWorld(t)
	fd.pids[400] = 2000
	fd.pids[401] = 2001
	w.parentPID = fakeAncestry(map[int]int{2001: 2000})
	term := addClient(w, fd, 400, "st-256color", "st")
	if got := addClient(w, fd, 401, "mpv", "mpv"); got != term || term.Swallows == nil {
		t.Fatalf("setup: expected the terminal to swallow the child")
	}

	// The adopted window going away is delivered as an unmap of the
	// window the terminal record currently holds.
	w.unmanage(w.ClientOf(401))

	if term.Win != 400 {
		t.Fatalf("terminal did not take its own window back, has %d", term.Win)
	}
	if term.Swallows != nil {
		t.Fatalf("terminal still marked as swallowing after its child exited")
	}
	if w.ClientOf(400) != term {
		t.Fatalf("terminal's window does not resolve to the terminal record")
	}
	if w.ClientOf(401) != nil {
		t.Fatalf("the dead child window still resolves to a client")
	}
	if !contains(w.SelMon.Clients(), term) {
		t.Fatalf("terminal left the monitor's client list during unswallow")
	}
}

// A self-issued or synthetic unmap is a withdraw request, not a death
// notice: the client record must survive it.
func TestSyntheticUnmapDoesNotUnmanage(t *testing.T) {
	w, fd := testWorld(t)
	c := addClient(w, fd, 450, "xterm", "xterm")

	w.Dispatch(display.Event{Kind: display.EventUnmapNotify, Window: 450, Synthetic: true})

	if w.ClientOf(450) != c {
		t.Fatalf("synthetic unmap destroyed the client record")
	}
	if !contains(w.SelMon.Clients(), c) {
		t.Fatalf("synthetic unmap detached the client")
	}
}

// Hiding a tag's clients must not unmap their windows: the unmap would
// echo back as an UnmapNotify and tear down the model, so hidden clients
// stay mapped and are parked off-screen instead.
func TestTagSwitchKeepsHiddenClientsManaged(t *testing.T) {
	w, fd := testWorld(t)
	a := addClient(w, fd, 460, "a", "a")
	b := addClient(w, fd, 461, "b", "b")

	w.View(w.SelMon, config.TagMask(1))
	if w.ClientOf(460) != a || w.ClientOf(461) != b {
		t.Fatalf("tag switch dropped hidden clients from the model")
	}
	if fd.geoms[460].X >= 0 {
		t.Fatalf("hidden client was not parked off-screen: %+v", fd.geoms[460])
	}

	w.View(w.SelMon, config.TagMask(0))
	if !a.IsVisible() || !b.IsVisible() {
		t.Fatalf("clients lost after switching away and back")
	}
	if fd.geoms[460].X < 0 {
		t.Fatalf("client was not brought back on-screen: %+v", fd.geoms[460])
	}
}

func TestSetFullscreenSavesAndRestoresFloatingState(t *testing.T) {
	w, fd := testWorld(t)
	c := addClient(w, fd, 500, "mpv", "mpv")
	wasFloating := c.IsFloating

	w.SetFullscreen(c, true)
	if !c.IsFullscreen || c.BorderW != 0 {
		t.Fatalf("fullscreen entry did not set state: fullscreen=%v borderw=%d", c.IsFullscreen, c.BorderW)
	}

	w.SetFullscreen(c, false)
	if c.IsFullscreen {
		t.Fatalf("fullscreen exit left IsFullscreen set")
	}
	if c.IsFloating != wasFloating {
		t.Fatalf("fullscreen exit did not restore floating state: got %v, want %v", c.IsFloating, wasFloating)
	}
}

func TestLockFullscreenBlocksSecondClientEnteringFullscreen(t *testing.T) {
	w, fd := testWorld(t)
	w.Cfg.LockFullscreen = true
	a := addClient(w, fd, 600, "a", "a")
	b := addClient(w, fd, 601, "b", "b")
	w.Focus(a)
	w.ToggleFullscreen(a)
	if !a.IsFullscreen {
		t.Fatalf("setup: a did not enter fullscreen")
	}
	w.ToggleFullscreen(b)
	if b.IsFullscreen {
		t.Fatalf("LockFullscreen should have blocked b from entering fullscreen while a is fullscreen")
	}
}

func testWorldTwoMonitors(t *testing.T) (*World, *fakeDisplay) {
	t.Helper()
	fd := newFakeDisplay()
	fd.heads = []geom.Rect{{X: 0, Y: 0, W: 1920, H: 1080}, {X: 1920, Y: 0, W: 1920, H: 1080}}
	cfg := config.Default()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	w := New(fd, cfg, log)
	if err := w.AttachMonitors(); err != nil {
		t.Fatalf("AttachMonitors: %v", err)
	}
	return w, fd
}

// Viewing a tag already shown by another monitor swaps the two monitors'
// tagsets instead of duplicating the tag, so no tag is ever shown twice.
func TestViewSwapsTagsetsAcrossMonitors(t *testing.T) {
	w, _ := testWorldTwoMonitors(t)
	mons := w.monitorList()
	m0, m1 := mons[0], mons[1]
	m0.TagSet = config.TagMask(2)
	m1.TagSet = config.TagMask(5)

	w.View(m0, config.TagMask(5))

	if m0.TagSet != config.TagMask(5) {
		t.Fatalf("m0 tagset = %x, want tag 5", m0.TagSet)
	}
	if m1.TagSet != config.TagMask(2) {
		t.Fatalf("m1 tagset = %x, want tag 2", m1.TagSet)
	}
	if m0.TagSet&m1.TagSet != 0 {
		t.Fatalf("both monitors show a common tag: %x & %x != 0", m0.TagSet, m1.TagSet)
	}
}

// Adding a tag bit owned by another monitor takes it away from that
// monitor, handing it the lowest unoccupied tag if it would go empty.
func TestToggleViewTransfersTagFromOtherMonitor(t *testing.T) {
	w, _ := testWorldTwoMonitors(t)
	mons := w.monitorList()
	m0, m1 := mons[0], mons[1]
	m0.TagSet = config.TagMask(0)
	m1.TagSet = config.TagMask(1)

	w.ToggleView(m0, config.TagMask(1))

	if m0.TagSet != config.TagMask(0)|config.TagMask(1) {
		t.Fatalf("m0 tagset = %x, want tags 0 and 1", m0.TagSet)
	}
	if m1.TagSet == config.TagMask(1) {
		t.Fatalf("m1 kept tag 1 after it was toggled onto m0")
	}
	if m1.TagSet == 0 {
		t.Fatalf("m1 went empty instead of taking the lowest unoccupied tag")
	}
}

// Tagging a client onto a tag shown by a different monitor moves the
// client there.
func TestTagMovesClientToOwningMonitor(t *testing.T) {
	w, fd := testWorldTwoMonitors(t)
	mons := w.monitorList()
	m0, m1 := mons[0], mons[1]
	m0.TagSet = config.TagMask(0)
	m1.TagSet = config.TagMask(1)
	w.SelMon = m0

	c := addClient(w, fd, 700, "xterm", "xterm")
	if c.Mon != m0 {
		t.Fatalf("setup: client attached to %v, want m0", c.Mon)
	}

	w.Tag(c, config.TagMask(1))

	if c.Mon != m1 {
		t.Fatalf("Tag did not move client to the monitor owning tag 1")
	}
	if c.Tags != config.TagMask(1) {
		t.Fatalf("client tags = %x, want tag 1", c.Tags)
	}
}

// Tagging a client onto every tag at once is a no-op once more than one
// monitor exists.
func TestTagAllTagsRefusedWithMultipleMonitors(t *testing.T) {
	w, fd := testWorldTwoMonitors(t)
	c := addClient(w, fd, 701, "xterm", "xterm")
	before := c.Tags

	w.Tag(c, w.AllTags)

	if c.Tags != before {
		t.Fatalf("Tag(AllTags) changed tags to %x with >1 monitor, want unchanged %x", c.Tags, before)
	}
}

// fakeAncestry builds a parentPID func from a child->parent map, the way
// /proc's stat field 3 would resolve it for a real process tree.
func fakeAncestry(parents map[int]int) func(int) (int, error) {
	return func(pid int) (int, error) {
		if p, ok := parents[pid]; ok {
			return p, nil
		}
		return 1, nil
	}
}

func contains(list []*Client, target *Client) bool {
	for _, c := range list {
		if c == target {
			return true
		}
	}
	return false
}
