package drawable

import (
	"fmt"
	"unicode/utf16"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/tagwm/tagwm/internal/geom"
)

// gcSpec keys the GC cache; one graphics context is kept per distinct
// fg/bg/font combination so per-tag and per-scheme rectangles don't
// thrash a single GC.
type gcSpec struct {
	mask uint32
	fg   uint32
	bg   uint32
	font xproto.Font
}

// XDrawable is the xproto-backed Drawable, grounded on draw/draw.go's
// GC-caching Fill/Text functions, adapted to own a window and its cache
// rather than taking a caller-supplied one.
type XDrawable struct {
	xu  *xgbutil.XUtil
	win *xwindow.Window
	geo geom.Rect
	gcs map[gcSpec]xproto.Gcontext
}

// NewWindow creates an override-redirect top-level window suitable for a
// bar or tray container, at r, and wraps it as a Drawable.
func NewWindow(xu *xgbutil.XUtil, r geom.Rect) (*XDrawable, error) {
	win, err := xwindow.Generate(xu)
	if err != nil {
		return nil, err
	}
	screen := xu.Screen()
	err = win.CreateChecked(xu.RootWin(), r.X, r.Y, r.W, r.H,
		xproto.CwBackPixel|xproto.CwOverrideRedirect|xproto.CwEventMask,
		screen.WhitePixel, 1,
		uint32(xproto.EventMaskExposure|xproto.EventMaskButtonPress))
	if err != nil {
		return nil, err
	}
	return &XDrawable{xu: xu, win: win, geo: r, gcs: make(map[gcSpec]xproto.Gcontext)}, nil
}

func (d *XDrawable) Window() uint32     { return uint32(d.win.Id) }
func (d *XDrawable) Geometry() geom.Rect { return d.geo }

// AllocColor resolves a "#rrggbb" string to a colormap pixel, for colors
// that only become known at runtime (status2d escapes, xrdb reloads).
func (d *XDrawable) AllocColor(hex string) (Pixel, error) {
	return AllocHex(d.xu, hex)
}

func (d *XDrawable) LoadFont(name string) (Font, error) {
	fid, err := xproto.NewFontId(d.xu.Conn())
	if err != nil {
		return 0, err
	}
	if err := xproto.OpenFontChecked(d.xu.Conn(), fid, uint16(len(name)), name).Check(); err != nil {
		return 0, fmt.Errorf("drawable: open font %q: %w", name, err)
	}
	return Font(fid), nil
}

func (d *XDrawable) gc(spec gcSpec) xproto.Gcontext {
	if gc, ok := d.gcs[spec]; ok {
		return gc
	}
	gc, _ := xproto.NewGcontextId(d.xu.Conn())
	var values []uint32
	if spec.mask&uint32(xproto.GcForeground) > 0 {
		values = append(values, spec.fg)
	}
	if spec.mask&uint32(xproto.GcBackground) > 0 {
		values = append(values, spec.bg)
	}
	if spec.mask&uint32(xproto.GcFont) > 0 {
		values = append(values, uint32(spec.font))
	}
	xproto.CreateGC(d.xu.Conn(), gc, xproto.Drawable(d.win.Id), spec.mask, values)
	d.gcs[spec] = gc
	return gc
}

func (d *XDrawable) Fill(r geom.Rect, pixel Pixel) {
	gc := d.gc(gcSpec{mask: uint32(xproto.GcForeground), fg: uint32(pixel)})
	xproto.PolyFillRectangle(d.xu.Conn(), xproto.Drawable(d.win.Id), gc,
		[]xproto.Rectangle{{X: int16(r.X), Y: int16(r.Y), Width: uint16(r.W), Height: uint16(r.H)}})
}

func (d *XDrawable) Rect(r geom.Rect, pixel, borderPixel Pixel, borderPx int) {
	d.Fill(r, pixel)
	if borderPx <= 0 {
		return
	}
	gc := d.gc(gcSpec{mask: uint32(xproto.GcForeground), fg: uint32(borderPixel)})
	edges := []xproto.Rectangle{
		{X: int16(r.X), Y: int16(r.Y), Width: uint16(r.W), Height: uint16(borderPx)},
		{X: int16(r.X), Y: int16(r.Bottom() - borderPx), Width: uint16(r.W), Height: uint16(borderPx)},
		{X: int16(r.X), Y: int16(r.Y), Width: uint16(borderPx), Height: uint16(r.H)},
		{X: int16(r.Right() - borderPx), Y: int16(r.Y), Width: uint16(borderPx), Height: uint16(r.H)},
	}
	xproto.PolyFillRectangle(d.xu.Conn(), xproto.Drawable(d.win.Id), gc, edges)
}

func (d *XDrawable) TextExtents(font Font, text string) (int, int, error) {
	chars, n := toChar2b([]rune(text))
	ex, err := xproto.QueryTextExtents(d.xu.Conn(), xproto.Fontable(font), chars, byte(n)).Reply()
	if err != nil {
		return 0, 0, err
	}
	return int(ex.OverallRight), int(ex.FontAscent) + int(ex.FontDescent), nil
}

func (d *XDrawable) Text(font Font, text string, fg, bg Pixel, x, y int) (int, error) {
	spec := gcSpec{mask: uint32(xproto.GcForeground | xproto.GcBackground | xproto.GcFont), fg: uint32(fg), bg: uint32(bg), font: xproto.Font(font)}
	gc := d.gc(spec)

	chars, n := toChar2b([]rune(text))
	ex, err := xproto.QueryTextExtents(d.xu.Conn(), xproto.Fontable(font), chars, 0).Reply()
	if err != nil {
		return 0, err
	}
	baseline := int16(y) + ex.FontAscent
	if err := xproto.ImageText16Checked(d.xu.Conn(), byte(n), xproto.Drawable(d.win.Id), gc, int16(x), baseline, chars).Check(); err != nil {
		return 0, err
	}
	return int(ex.OverallRight), nil
}

func toChar2b(runes []rune) ([]xproto.Char2b, int) {
	ucs2 := utf16.Encode(runes)
	chars := make([]xproto.Char2b, len(ucs2))
	for i, r := range ucs2 {
		chars[i] = xproto.Char2b{Byte1: byte(r >> 8), Byte2: byte(r)}
	}
	return chars, len(runes)
}

func (d *XDrawable) Resize(r geom.Rect) error {
	d.geo = r
	return d.win.MoveResize(r.X, r.Y, r.W, r.H)
}

func (d *XDrawable) Map() error   { return xproto.MapWindowChecked(d.xu.Conn(), d.win.Id).Check() }
func (d *XDrawable) Unmap() error { return xproto.UnmapWindowChecked(d.xu.Conn(), d.win.Id).Check() }
func (d *XDrawable) Destroy() error {
	return xproto.DestroyWindowChecked(d.xu.Conn(), d.win.Id).Check()
}
