package bar

import (
	"testing"

	"github.com/tagwm/tagwm/internal/drawable"
	"github.com/tagwm/tagwm/internal/geom"
)

// fakeDrawable satisfies drawable.Drawable with fixed-width glyph metrics
// so Compose's layout math can be checked without a real X connection.
type fakeDrawable struct {
	geo geom.Rect
}

func (f *fakeDrawable) Window() uint32      { return 1 }
func (f *fakeDrawable) Geometry() geom.Rect { return f.geo }
func (f *fakeDrawable) LoadFont(name string) (drawable.Font, error) { return 1, nil }
func (f *fakeDrawable) TextExtents(font drawable.Font, text string) (int, int, error) {
	return len(text) * 6, 12, nil
}
func (f *fakeDrawable) AllocColor(hex string) (drawable.Pixel, error) { return 0, nil }
func (f *fakeDrawable) Fill(r geom.Rect, pixel drawable.Pixel)        {}
func (f *fakeDrawable) Rect(r geom.Rect, pixel, borderPixel drawable.Pixel, borderPx int) {}
func (f *fakeDrawable) Text(font drawable.Font, text string, fg, bg drawable.Pixel, x, y int) (int, error) {
	return len(text) * 6, nil
}
func (f *fakeDrawable) Resize(r geom.Rect) error { f.geo = r; return nil }
func (f *fakeDrawable) Map() error               { return nil }
func (f *fakeDrawable) Unmap() error             { return nil }
func (f *fakeDrawable) Destroy() error           { return nil }

func fixedWidth(n int) func(Context) int {
	return func(Context) int { return n }
}

func drawRecorder(calls *[]string, name string) func(Context, int, int) {
	return func(ctx Context, x, w int) {
		*calls = append(*calls, name)
	}
}

func TestComposeLeftModulesGrowFromLeftEdge(t *testing.T) {
	b := &Bar{Draw: &fakeDrawable{}, Geom: geom.Rect{W: 200, H: 18}}
	b.Modules = []Module{
		{Name: "a", Align: AlignLeft, Width: fixedWidth(20), DrawFn: func(Context, int, int) {}},
		{Name: "b", Align: AlignLeft, Width: fixedWidth(30), DrawFn: func(Context, int, int) {}},
	}
	placements := b.Compose(0)
	if len(placements) != 2 {
		t.Fatalf("got %d placements, want 2", len(placements))
	}
	if placements[0].x != 0 || placements[0].w != 20 {
		t.Fatalf("module a placed at (%d,%d), want (0,20)", placements[0].x, placements[0].w)
	}
	if placements[1].x != 20 || placements[1].w != 30 {
		t.Fatalf("module b placed at (%d,%d), want (20,30)", placements[1].x, placements[1].w)
	}
}

func TestComposeRightModulesGrowFromRightEdge(t *testing.T) {
	b := &Bar{Draw: &fakeDrawable{}, Geom: geom.Rect{W: 200, H: 18}}
	b.Modules = []Module{
		{Name: "a", Align: AlignRight, Width: fixedWidth(20), DrawFn: func(Context, int, int) {}},
		{Name: "b", Align: AlignRight, Width: fixedWidth(30), DrawFn: func(Context, int, int) {}},
	}
	placements := b.Compose(0)
	// rights are walked back-to-front (last-declared claims the outer
	// edge first), so "b" ends up touching the bar's right edge and "a"
	// sits just inside it.
	var a, bb placement
	for _, p := range placements {
		switch p.mod.Name {
		case "a":
			a = p
		case "b":
			bb = p
		}
	}
	if bb.x+bb.w != 200 {
		t.Fatalf("module b does not reach the right edge: x=%d w=%d", bb.x, bb.w)
	}
	if a.x+a.w != bb.x {
		t.Fatalf("module a does not abut module b's left edge: a=(%d,%d) b.x=%d", a.x, a.w, bb.x)
	}
}

func TestComposeCenterModuleSplitsRemainingGap(t *testing.T) {
	b := &Bar{Draw: &fakeDrawable{}, Geom: geom.Rect{W: 200, H: 18}}
	b.Modules = []Module{
		{Name: "left", Align: AlignLeft, Width: fixedWidth(20), DrawFn: func(Context, int, int) {}},
		{Name: "right", Align: AlignRight, Width: fixedWidth(20), DrawFn: func(Context, int, int) {}},
		{Name: "mid", Align: AlignCenter, Width: fixedWidth(40), DrawFn: func(Context, int, int) {}},
	}
	placements := b.Compose(0)
	for _, p := range placements {
		if p.mod.Name == "mid" {
			// available gap is [20,180), width 160; a 40-wide module
			// centers at 20 + (160-40)/2 = 80.
			if p.x != 80 {
				t.Fatalf("center module placed at x=%d, want 80", p.x)
			}
			return
		}
	}
	t.Fatalf("center module not placed")
}

func TestComposeMonFilterExcludesOtherMonitors(t *testing.T) {
	b := &Bar{Draw: &fakeDrawable{}, Geom: geom.Rect{W: 200, H: 18}}
	var drawn []string
	b.Modules = []Module{
		{Name: "only-mon-1", Align: AlignLeft, Width: fixedWidth(10),
			MonFilter: func(n int) bool { return n == 1 },
			DrawFn:    drawRecorder(&drawn, "only-mon-1")},
	}
	b.Compose(0)
	if len(drawn) != 0 {
		t.Fatalf("module restricted to monitor 1 drew on monitor 0")
	}
	b.Compose(1)
	if len(drawn) != 1 {
		t.Fatalf("module restricted to monitor 1 did not draw on monitor 1")
	}
}

func TestClickDispatchesToContainingModuleWithLocalX(t *testing.T) {
	b := &Bar{Draw: &fakeDrawable{}, Geom: geom.Rect{W: 200, H: 18}}
	var gotLocalX int
	var gotButton uint8
	b.Modules = []Module{
		{Name: "a", Align: AlignLeft, Width: fixedWidth(20), DrawFn: func(Context, int, int) {}},
		{Name: "b", Align: AlignLeft, Width: fixedWidth(30), DrawFn: func(Context, int, int) {},
			ClickFn: func(ctx Context, localX, w int, button uint8) {
				gotLocalX, gotButton = localX, button
			}},
	}
	placements := b.Compose(0)
	b.Click(placements, 0, 25, 3)
	if gotLocalX != 5 {
		t.Fatalf("localX = %d, want 5 (click at 25, module b starts at 20)", gotLocalX)
	}
	if gotButton != 3 {
		t.Fatalf("button = %d, want 3", gotButton)
	}
}

func TestParseStatus2DSplitsColorEscapesFromText(t *testing.T) {
	ops := ParseStatus2D("^fg(#ff0000)CPU: 10%^fg(#00ff00) OK")
	if len(ops) != 4 {
		t.Fatalf("got %d ops, want 4: %#v", len(ops), ops)
	}
	if ops[0].SetFg != "#ff0000" {
		t.Fatalf("ops[0].SetFg = %q, want #ff0000", ops[0].SetFg)
	}
	if ops[1].Text != "CPU: 10%" {
		t.Fatalf("ops[1].Text = %q", ops[1].Text)
	}
	if ops[2].SetFg != "#00ff00" {
		t.Fatalf("ops[2].SetFg = %q, want #00ff00", ops[2].SetFg)
	}
	if ops[3].Text != " OK" {
		t.Fatalf("ops[3].Text = %q", ops[3].Text)
	}
}

func TestParseStatus2DRectEscape(t *testing.T) {
	ops := ParseStatus2D("^r(4x8)")
	if len(ops) != 1 || !ops[0].Rect || ops[0].RectW != 4 || ops[0].RectH != 8 {
		t.Fatalf("got %#v", ops)
	}
}

func TestSplitBlocksAssignsSignalsToFollowingText(t *testing.T) {
	blocks := SplitBlocks("\x01cpu 10%\x02mem 2G")
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2: %#v", len(blocks), blocks)
	}
	if blocks[0].Sig != 1 || blocks[0].Text != "cpu 10%" {
		t.Fatalf("block 0 = %+v", blocks[0])
	}
	if blocks[1].Sig != 2 || blocks[1].Text != "mem 2G" {
		t.Fatalf("block 1 = %+v", blocks[1])
	}
}

func TestSplitBlocksUnmarkedPrefixHasSignalZero(t *testing.T) {
	blocks := SplitBlocks("plain")
	if len(blocks) != 1 || blocks[0].Sig != 0 || blocks[0].Text != "plain" {
		t.Fatalf("got %#v", blocks)
	}
}
