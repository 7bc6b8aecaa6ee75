package bar

import (
	"github.com/tagwm/tagwm/internal/config"
	"github.com/tagwm/tagwm/internal/drawable"
	"github.com/tagwm/tagwm/internal/geom"
	"github.com/tagwm/tagwm/internal/layout"
	"github.com/tagwm/tagwm/internal/wm"
)

// allocScheme resolves a config.ColorScheme's hex strings into allocated
// pixels, cached per draw call since every module redraws every frame and
// color allocation is a colormap round trip the caller would otherwise
// repeat per glyph.
func allocScheme(d drawable.Drawable, cs config.ColorScheme) drawable.Scheme {
	fg, _ := d.AllocColor(cs.Fg)
	bg, _ := d.AllocColor(cs.Bg)
	border, _ := d.AllocColor(cs.Border)
	return drawable.Scheme{Fg: fg, Bg: bg, Border: border}
}

// padding is the horizontal inset either side of a module's text, fixed
// since the bar height itself is fixed at construction.
const padding = 4

const textBaselineFudge = 4

// TagsModule shows every configured tag: selected tags use the Sel
// scheme, tags with attached clients get a filled indicator bar along
// the bottom, urgent tags invert fg/bg.
func TagsModule(w *wm.World, mon func() *wm.Monitor) Module {
	return Module{
		Name:  "tags",
		Align: AlignLeft,
		Width: func(ctx Context) int {
			font, _ := ctx.Draw.LoadFont(firstFont(w))
			total := 0
			for _, name := range w.Cfg.Tags {
				tw, _, _ := ctx.Draw.TextExtents(font, name)
				total += tw + 2*padding
			}
			return total
		},
		DrawFn: func(ctx Context, x, width int) {
			m := mon()
			if m == nil {
				return
			}
			font, _ := ctx.Draw.LoadFont(firstFont(w))
			norm := allocScheme(ctx.Draw, w.Cfg.Colors.Norm)
			sel := allocScheme(ctx.Draw, w.Cfg.Colors.Sel)

			occupied, urgent := tagActivity(m)
			cursor := x
			for i, name := range w.Cfg.Tags {
				tw, _, _ := ctx.Draw.TextExtents(font, name)
				cw := tw + 2*padding
				sch := norm
				if m.TagSet&config.TagMask(i) != 0 {
					sch = sel
				}
				if urgent&config.TagMask(i) != 0 {
					sch = drawable.Scheme{Fg: sch.Bg, Bg: sch.Fg, Border: sch.Border}
				}
				ctx.Draw.Fill(geom.Rect{X: cursor, Y: 0, W: cw, H: ctx.Height}, sch.Bg)
				ctx.Draw.Text(font, name, sch.Fg, sch.Bg, cursor+padding, ctx.Height/2+textBaselineFudge)
				if occupied&config.TagMask(i) != 0 {
					ctx.Draw.Fill(geom.Rect{X: cursor + padding, Y: ctx.Height - 2, W: tw, H: 2}, sch.Fg)
				}
				cursor += cw
			}
		},
		ClickFn: func(ctx Context, localX, width int, button uint8) {
			m := mon()
			if m == nil {
				return
			}
			font, _ := ctx.Draw.LoadFont(firstFont(w))
			cursor := 0
			for i, name := range w.Cfg.Tags {
				tw, _, _ := ctx.Draw.TextExtents(font, name)
				cw := tw + 2*padding
				if localX >= cursor && localX < cursor+cw {
					mask := config.TagMask(i)
					switch button {
					case 1:
						w.View(m, mask)
					case 3:
						w.ToggleView(m, mask)
					}
					return
				}
				cursor += cw
			}
		},
	}
}

// tagActivity returns which tags currently have at least one client
// (occupied) and which have at least one urgent client.
func tagActivity(m *wm.Monitor) (occupied, urgent uint32) {
	for _, c := range m.Clients() {
		occupied |= c.Tags
		if c.IsUrgent {
			urgent |= c.Tags
		}
	}
	return occupied, urgent
}

// LtSymbolModule shows the current layout symbol of the monitor returned
// by mon, clickable to cycle to the next layout.
func LtSymbolModule(w *wm.World, mon func() *wm.Monitor) Module {
	return Module{
		Name:  "ltsymbol",
		Align: AlignLeft,
		Width: func(ctx Context) int {
			m := mon()
			if m == nil {
				return 0
			}
			font, _ := ctx.Draw.LoadFont(firstFont(w))
			tw, _, _ := ctx.Draw.TextExtents(font, m.LtSymbol)
			return tw + 2*padding
		},
		DrawFn: func(ctx Context, x, width int) {
			m := mon()
			if m == nil {
				return
			}
			font, _ := ctx.Draw.LoadFont(firstFont(w))
			sch := allocScheme(ctx.Draw, w.Cfg.Colors.Norm)
			ctx.Draw.Fill(geom.Rect{X: x, Y: 0, W: width, H: ctx.Height}, sch.Bg)
			ctx.Draw.Text(font, m.LtSymbol, sch.Fg, sch.Bg, x+padding, ctx.Height/2+textBaselineFudge)
		},
		ClickFn: func(ctx Context, x, width int, button uint8) {
			m := mon()
			if m == nil {
				return
			}
			w.SetLayout(m, (m.SelLayout+1)%len(layout.Table))
		},
	}
}

// WinTitleModule shows the selected client's name. It claims only the
// title's text width plus padding; it does not stretch to fill the
// remaining bar space.
func WinTitleModule(w *wm.World, mon func() *wm.Monitor) Module {
	return Module{
		Name:  "wintitle",
		Align: AlignLeft,
		Width: func(ctx Context) int {
			m := mon()
			if m == nil || m.Sel == nil {
				return 0
			}
			font, _ := ctx.Draw.LoadFont(firstFont(w))
			tw, _, _ := ctx.Draw.TextExtents(font, m.Sel.Name)
			return tw + 2*padding
		},
		DrawFn: func(ctx Context, x, width int) {
			m := mon()
			sch := allocScheme(ctx.Draw, w.Cfg.Colors.Norm)
			ctx.Draw.Fill(geom.Rect{X: x, Y: 0, W: width, H: ctx.Height}, sch.Bg)
			if m == nil || m.Sel == nil {
				return
			}
			font, _ := ctx.Draw.LoadFont(firstFont(w))
			ctx.Draw.Text(font, m.Sel.Name, sch.Fg, sch.Bg, x+padding, ctx.Height/2+textBaselineFudge)
		},
	}
}

// Status2DModule renders a status string through the ^fg()/^bg()/^r()
// escape language, sourced from whatever producer feeds text();
// internal/status's producer is the usual source. A click resolves which
// embedded block it landed on and forwards that block's signal number
// through sig, so the producer can refresh just that block.
func Status2DModule(w *wm.World, text func() string, sig func(n int)) Module {
	blockWidth := func(ctx Context, font drawable.Font, block string) int {
		total := 0
		for _, op := range ParseStatus2D(block) {
			if op.Text != "" {
				tw, _, _ := ctx.Draw.TextExtents(font, op.Text)
				total += tw
			}
			if op.Rect {
				total += op.RectW
			}
		}
		return total
	}
	return Module{
		Name:  "status",
		Align: AlignRight,
		Width: func(ctx Context) int {
			font, _ := ctx.Draw.LoadFont(firstFont(w))
			total := 0
			for _, block := range SplitBlocks(text()) {
				total += blockWidth(ctx, font, block.Text)
			}
			return total + 2*padding
		},
		DrawFn: func(ctx Context, x, width int) {
			font, _ := ctx.Draw.LoadFont(firstFont(w))
			sch := allocScheme(ctx.Draw, w.Cfg.Colors.Norm)
			ctx.Draw.Fill(geom.Rect{X: x, Y: 0, W: width, H: ctx.Height}, sch.Bg)
			fg, bg := sch.Fg, sch.Bg
			cursor := x + padding
			for _, block := range SplitBlocks(text()) {
				for _, op := range ParseStatus2D(block.Text) {
					if op.SetFg != "" {
						if p, err := ctx.Draw.AllocColor(op.SetFg); err == nil {
							fg = p
						}
					}
					if op.SetBg != "" {
						if p, err := ctx.Draw.AllocColor(op.SetBg); err == nil {
							bg = p
						}
					}
					if op.Rect {
						ctx.Draw.Fill(geom.Rect{X: cursor, Y: ctx.Height - op.RectH, W: op.RectW, H: op.RectH}, fg)
						cursor += op.RectW
						continue
					}
					if op.Text != "" {
						tw, _ := ctx.Draw.Text(font, op.Text, fg, bg, cursor, ctx.Height/2+textBaselineFudge)
						cursor += tw
					}
				}
			}
		},
		ClickFn: func(ctx Context, localX, width int, button uint8) {
			if sig == nil {
				return
			}
			font, _ := ctx.Draw.LoadFont(firstFont(w))
			cursor := padding
			for _, block := range SplitBlocks(text()) {
				bw := blockWidth(ctx, font, block.Text)
				if localX >= cursor && localX < cursor+bw {
					if block.Sig > 0 {
						sig(block.Sig)
					}
					return
				}
				cursor += bw
			}
		},
	}
}

func firstFont(w *wm.World) string {
	if len(w.Cfg.Fonts) == 0 {
		return "monospace:size=10"
	}
	return w.Cfg.Fonts[0]
}
