package layout

import (
	"testing"

	"github.com/tagwm/tagwm/internal/geom"
)

func testParams() Params {
	return Params{
		Work:    geom.Rect{X: 0, Y: 0, W: 1920, H: 1080},
		NMaster: 1,
		MFact:   0.55,
	}
}

func sumArea(frames []Frame) int {
	total := 0
	for _, f := range frames {
		total += f.W * f.H
	}
	return total
}

func TestTileMasterStackSplit(t *testing.T) {
	frames := Tile(2, testParams())
	if len(frames) != 2 {
		t.Fatalf("want 2 frames, got %d", len(frames))
	}
	want := geom.Rect{X: 0, Y: 0, W: 1056, H: 1080}
	if frames[0].Rect != want {
		t.Fatalf("master = %+v, want %+v", frames[0].Rect, want)
	}
	wantStack := geom.Rect{X: 1056, Y: 0, W: 864, H: 1080}
	if frames[1].Rect != wantStack {
		t.Fatalf("stack = %+v, want %+v", frames[1].Rect, wantStack)
	}
}

func TestTileSingleClientFillsWorkArea(t *testing.T) {
	p := testParams()
	frames := Tile(1, p)
	if frames[0].Rect != p.Work {
		t.Fatalf("solo client = %+v, want %+v", frames[0].Rect, p.Work)
	}
}

func TestMonocleEveryClientFillsWorkArea(t *testing.T) {
	p := testParams()
	frames := Monocle(3, p)
	for i, f := range frames {
		if f.Rect != p.Work {
			t.Fatalf("frame %d = %+v, want %+v", i, f.Rect, p.Work)
		}
	}
}

func TestMonocleSymbolFormatsCount(t *testing.T) {
	if got := MonocleSymbol(4); got != "[4]" {
		t.Fatalf("MonocleSymbol(4) = %q", got)
	}
}

func TestDeckStackSharesOneRect(t *testing.T) {
	frames := Deck(3, testParams())
	if frames[1].Rect != frames[2].Rect {
		t.Fatalf("deck stack frames differ: %+v vs %+v", frames[1].Rect, frames[2].Rect)
	}
	if frames[0].Rect == frames[1].Rect {
		t.Fatalf("deck master should not share the stack rect")
	}
}

func TestDeckSymbolFormatsCount(t *testing.T) {
	if got := DeckSymbol(2); got != "D[2]" {
		t.Fatalf("DeckSymbol(2) = %q", got)
	}
}

func TestSmartgapsMultiplierAppliesToSoleClient(t *testing.T) {
	p := testParams()
	p.Gaps = Gaps{InnerH: 4, InnerV: 4, OuterH: 10, OuterV: 10}
	p.Smartgaps = 3
	frames := Tile(1, p)
	want := p.Work.Shrink(30, 30, 30, 30)
	if frames[0].Rect != want {
		t.Fatalf("smartgaps client = %+v, want %+v", frames[0].Rect, want)
	}
}

func TestBstackMasterOnTop(t *testing.T) {
	frames := Bstack(2, testParams())
	if frames[0].X != 0 || frames[0].W != 1920 {
		t.Fatalf("bstack master should span full width, got %+v", frames[0].Rect)
	}
	if frames[1].Y <= frames[0].Y {
		t.Fatalf("bstack stack should sit below master")
	}
}

func TestGridCoversWorkAreaWithoutOverlap(t *testing.T) {
	p := testParams()
	frames := Grid(5, p)
	if len(frames) != 5 {
		t.Fatalf("want 5 frames, got %d", len(frames))
	}
	if got := sumArea(frames); got != p.Work.W*p.Work.H {
		t.Fatalf("grid frames cover %d px, want %d", got, p.Work.W*p.Work.H)
	}
}

func TestGaplessGridNeverLeavesShortColumnEmpty(t *testing.T) {
	frames := GaplessGrid(7, testParams())
	if len(frames) != 7 {
		t.Fatalf("want 7 frames, got %d", len(frames))
	}
	for i, f := range frames {
		if f.W <= 0 || f.H <= 0 {
			t.Fatalf("frame %d has non-positive dimension: %+v", i, f.Rect)
		}
	}
}

func TestNRowGridForcesSingleRowForTwoClients(t *testing.T) {
	p := testParams()
	p.Rows = 3
	frames := NRowGrid(2, p)
	if frames[0].Y != frames[1].Y {
		t.Fatalf("two clients should share one row, got %+v and %+v", frames[0].Rect, frames[1].Rect)
	}
	if frames[0].X == frames[1].X {
		t.Fatalf("two clients should split vertically (side by side)")
	}
}

func TestCenteredMasterSplitsStackAroundCenterColumn(t *testing.T) {
	frames := CenteredMaster(3, testParams())
	master := frames[0]
	left := frames[1]
	if left.X >= master.X {
		t.Fatalf("expected a stack client left of the master column, got left=%+v master=%+v", left.Rect, master.Rect)
	}
}

func TestSpiralAndDwindleCoverWorkArea(t *testing.T) {
	p := testParams()
	for _, arrange := range []Arrange{Spiral, Dwindle} {
		frames := arrange(4, p)
		if len(frames) != 4 {
			t.Fatalf("want 4 frames, got %d", len(frames))
		}
		if got := sumArea(frames); got != p.Work.W*p.Work.H {
			t.Fatalf("fibonacci frames cover %d px, want %d", got, p.Work.W*p.Work.H)
		}
	}
}

func TestTableDefaultEntryIsTile(t *testing.T) {
	if Table[0].Symbol != "[]=" {
		t.Fatalf("default layout symbol = %q, want []=", Table[0].Symbol)
	}
	if Table[1].Arrange != nil {
		t.Fatalf("floating entry (\"><>\") must have a nil Arrange")
	}
}
