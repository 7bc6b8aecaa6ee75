package bar

import (
	"github.com/tagwm/tagwm/internal/bar/tray"
	"github.com/tagwm/tagwm/internal/config"
	"github.com/tagwm/tagwm/internal/geom"
)

// iconGap is the horizontal space left between docked tray icons.
const iconGap = 2

// SystrayModule reserves space for, and places, every icon docked into
// host. There is a single tray
// instance; callers pick the monitor whose bar shows it with onMon, and
// the module claims no width anywhere else.
func SystrayModule(host *tray.Host, onMon int, norm config.ColorScheme) Module {
	return Module{
		Name:      "systray",
		Align:     AlignRight,
		MonFilter: func(mon int) bool { return mon == onMon },
		Width: func(ctx Context) int {
			icons := host.Icons()
			if len(icons) == 0 {
				return 0
			}
			total := 0
			for _, icon := range icons {
				total += icon.Size + iconGap
			}
			return total + padding
		},
		DrawFn: func(ctx Context, x, width int) {
			sch := allocScheme(ctx.Draw, norm)
			ctx.Draw.Fill(geom.Rect{X: x, Y: 0, W: width, H: ctx.Height}, sch.Bg)
			cursor := x + padding
			for _, icon := range host.Icons() {
				_ = host.Place(icon, cursor, ctx.Height)
				cursor += icon.Size + iconGap
			}
		},
	}
}
