package drawable

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
)

// AllocHex parses a "#rrggbb" string and allocates it in the default
// colormap, returning the pixel value the GC cache keys on.
func AllocHex(xu *xgbutil.XUtil, hex string) (Pixel, error) {
	r, g, b, err := parseHex(hex)
	if err != nil {
		return 0, err
	}
	screen := xu.Screen()
	reply, err := xproto.AllocColor(xu.Conn(), screen.DefaultColormap,
		uint16(r)<<8|uint16(r), uint16(g)<<8|uint16(g), uint16(b)<<8|uint16(b)).Reply()
	if err != nil {
		return 0, fmt.Errorf("drawable: alloc color %s: %w", hex, err)
	}
	return Pixel(reply.Pixel), nil
}

func parseHex(hex string) (r, g, b uint8, err error) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0, fmt.Errorf("drawable: invalid color %q, want #rrggbb", hex)
	}
	var v uint32
	if _, err := fmt.Sscanf(hex[1:], "%06x", &v); err != nil {
		return 0, 0, 0, fmt.Errorf("drawable: invalid color %q: %w", hex, err)
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), nil
}
