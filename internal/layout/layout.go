// Package layout implements the tiling arrangements: deterministic
// mappings from an ordered list of tileable clients and a monitor's work
// area to per-client rectangles. Every Arrange function is side-effect
// free so it can be unit tested without an X connection.
package layout

import "github.com/tagwm/tagwm/internal/geom"

// Gaps mirrors a Monitor's four gap settings.
type Gaps struct {
	InnerH, InnerV int
	OuterH, OuterV int
}

// Params bundles everything a layout needs besides the client count.
type Params struct {
	Work    geom.Rect // monitor work area
	NMaster int
	MFact   float64 // in [0.05, 0.95]
	Gaps    Gaps
	// Smartgaps multiplies every gap when there is exactly one tileable
	// client on the monitor.
	Smartgaps int
	// Rows overrides NRowGrid's row count; <=0 picks ⌈√n⌉ rows.
	Rows int
}

// Frame is the computed geometry for one tileable client, in attach-order
// position i.
type Frame struct {
	geom.Rect
}

// Arrange computes frames for n tileable clients in list order. Layouts
// that have no notion of "stack" (monocle, floating placeholder) still
// honor n and Params.Work.
type Arrange func(n int, p Params) []Frame

// Entry pairs a layout's short bar symbol
// with its Arrange function. A nil Arrange means floating behavior: no
// layout function applies and every visible client keeps its floating
// geometry.
type Entry struct {
	Symbol  string
	Arrange Arrange
}

// Table is the compiled-in layout list, in the
// order a user cycles through them. The first entry is the default.
var Table = []Entry{
	{"[]=", Tile},
	{"><>", nil},
	{"[M]", Monocle},
	{"D[]", Deck},
	{"[@]", Spiral},
	{"[\\]", Dwindle},
	{"TTT", Bstack},
	{"===", BstackHoriz},
	{"HHH", Grid},
	{"###", NRowGrid},
	{"---", HorizGrid},
	{":::", GaplessGrid},
	{"|M|", CenteredMaster},
	{">M>", CenteredFloatingMaster},
}

// gaps returns the effective outer/inner gaps after applying the
// single-tile smartgaps multiplier.
func (p Params) gaps(n int) Gaps {
	g := p.Gaps
	if n == 1 && p.Smartgaps > 0 {
		g.InnerH *= p.Smartgaps
		g.InnerV *= p.Smartgaps
		g.OuterH *= p.Smartgaps
		g.OuterV *= p.Smartgaps
	}
	return g
}

// workWithOuterGaps shrinks the work area by the outer gaps.
func (p Params) workWithOuterGaps(n int) geom.Rect {
	g := p.gaps(n)
	return p.Work.Shrink(g.OuterH, g.OuterV, g.OuterH, g.OuterV)
}

func clampDim(v int) int {
	if v < 1 {
		return 1
	}
	return v
}
