// Package drawable is the seam the bar composer draws through: drawing
// surfaces with font metrics, color allocation, and text/rectangle
// primitives, one per bar window, so the bar package never touches
// xproto directly. The primitives paint straight into the window; there
// is no offscreen pixmap and no separate blit step.
package drawable

import "github.com/tagwm/tagwm/internal/geom"

// Pixel is an allocated X colormap pixel value.
type Pixel uint32

// Scheme is one allocated color triple, the runtime counterpart of
// config.ColorScheme.
type Scheme struct {
	Fg     Pixel
	Bg     Pixel
	Border Pixel
}

// Font is an opaque handle to a loaded X core font.
type Font uint32

// Drawable is everything the bar composer needs to paint one window:
// solid fills, bordered rectangles, and baseline text with its measured
// extents.
type Drawable interface {
	Window() uint32
	Geometry() geom.Rect

	LoadFont(name string) (Font, error)
	TextExtents(font Font, text string) (w, h int, err error)
	AllocColor(hex string) (Pixel, error)

	Fill(r geom.Rect, pixel Pixel)
	Rect(r geom.Rect, pixel Pixel, borderPixel Pixel, borderPx int)
	Text(font Font, text string, fg, bg Pixel, x, y int) (w int, err error)

	Resize(r geom.Rect) error
	Map() error
	Unmap() error
	Destroy() error
}
