package floatpos

import (
	"testing"

	"github.com/tagwm/tagwm/internal/geom"
)

func TestResolvePercentSpec(t *testing.T) {
	work := geom.Rect{X: 0, Y: 0, W: 1920, H: 1080}
	cur := geom.Rect{X: 100, Y: 100, W: 640, H: 480}

	got, ok := Resolve("50% 50% 90% 80%", work, cur, 0, DefaultGrid, 0, 0)
	if !ok {
		t.Fatal("expected spec to parse")
	}
	want := geom.Rect{X: 96, Y: 108, W: 1728, H: 864}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	cx, cy := got.Center()
	if cx != 960 || cy != 540 {
		t.Fatalf("center = (%d,%d), want (960,540)", cx, cy)
	}
}

func TestResolveScratchpadSpec(t *testing.T) {
	// The scratchpad placement: centered at (50%,50%) sized (90%,80%).
	work := geom.Rect{X: 0, Y: 0, W: 1280, H: 720}
	cur := geom.Rect{X: 0, Y: 0, W: 0, H: 0}
	got, ok := Resolve("50% 50% 90% 80%", work, cur, 1, DefaultGrid, 0, 0)
	if !ok {
		t.Fatal("expected spec to parse")
	}
	if got.W != 1280*90/100-2 || got.H != 720*80/100-2 {
		t.Fatalf("unexpected size with border: %+v", got)
	}
}

func TestResolveMalformedSpec(t *testing.T) {
	work := geom.Rect{W: 1920, H: 1080}
	cur := geom.Rect{W: 100, H: 100}
	if _, ok := Resolve("garbage", work, cur, 0, DefaultGrid, 0, 0); ok {
		t.Fatal("expected malformed spec to be rejected")
	}
}

func TestResolveWSizePairForm(t *testing.T) {
	// 4-token form "x W y H" means reinterpret as size pair anchored center.
	work := geom.Rect{X: 0, Y: 0, W: 1000, H: 1000}
	cur := geom.Rect{X: 400, Y: 400, W: 200, H: 200}
	got, ok := Resolve("300W 200H", work, cur, 0, DefaultGrid, 0, 0)
	if !ok {
		t.Fatal("expected spec to parse")
	}
	if got.W != 300 || got.H != 200 {
		t.Fatalf("got %+v", got)
	}
}

func TestResolvePointerForm(t *testing.T) {
	work := geom.Rect{X: 0, Y: 0, W: 1000, H: 1000}
	cur := geom.Rect{X: 0, Y: 0, W: 100, H: 100}
	got, ok := Resolve("0m 0m", work, cur, 0, DefaultGrid, 500, 500)
	if !ok {
		t.Fatal("expected spec to parse")
	}
	cx, cy := got.Center()
	if cx != 500 || cy != 500 {
		t.Fatalf("center = (%d,%d), want pointer (500,500)", cx, cy)
	}
}
