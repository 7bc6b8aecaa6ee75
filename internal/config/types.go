// Package config holds the compiled-in window-manager configuration and
// the small amount of runtime configuration (X resource database
// overrides) layered on top of it. There is no config file format: the
// defaults in default.go are meant to be edited and recompiled; xrdb.go
// exists only for the values that may be themed at runtime (colors)
// without a rebuild.
package config

// KeySpec names a key combination: a set of modifier letters followed by
// a key name.
type KeySpec struct {
	Mods string // any combination of C (Control), M (Mod1/Alt), S (Shift), 4 (Mod4/Super)
	Key  string // an X keysym name, e.g. "Return", "j", "F1"
}

// KeyBinding pairs a chord with the action it triggers and that action's
// argument (a tag index, a layout index, a shell command, ...).
type KeyBinding struct {
	Key    KeySpec
	Action string
	Arg    string
}

// ButtonBinding is KeyBinding's pointer-button counterpart.
type ButtonBinding struct {
	Mods   string
	Button uint8
	// Context restricts the binding to a bar region or client area:
	// "root", "bar-tags", "bar-ltsymbol", "bar-status", "bar-wintitle",
	// or "client".
	Context string
	Action  string
	Arg     string
}

// Rule matches a newly mapped client against WM_CLASS/WM_NAME and assigns
// it a starting tag mask, monitor, and floating/swallow behavior.
type Rule struct {
	Class           string
	Instance        string
	Title           string
	WindowType      string // bare EWMH _NET_WM_WINDOW_TYPE suffix, e.g. "DIALOG", "UTILITY"
	Tags            uint32
	IsFloating      bool
	IsTerminal      bool
	NoSwallow       bool
	Monitor         int // -1 = the monitor the client appeared on
	SwallowFloating bool
	FloatPos        string // optional getfloatpos/setfloatpos spec applied on adoption
	MatchOnce       bool   // stop scanning further rules once this one matches
}

// MonitorRule seeds a newly attached monitor's per-tag layout/mfact/
// nmaster state. Monitor == -1 is a wildcard matching any monitor index;
// rules apply in order, first match wins.
type MonitorRule struct {
	Monitor int
	Tag     int // 0-based index of the tag the monitor starts on; -1 or an out-of-range index starts it on the first tag
	Layout  int // index into the layout table
	MFact   float64
	NMaster int
	ShowBar bool
	TopBar  bool
}

// ColorScheme is one bar/border color triple.
type ColorScheme struct {
	Fg     string
	Bg     string
	Border string
}

// Colors groups the color schemes a bar or border can be painted with,
// plus the 16-slot palette the X resource database may override.
type Colors struct {
	Norm    ColorScheme
	Sel     ColorScheme
	Palette [16]string
}

// Gaps mirrors layout.Gaps so config can be built without importing the
// layout package's Params type directly.
type Gaps struct {
	InnerH, InnerV int
	OuterH, OuterV int
}

// Config is the full compiled-in configuration.
type Config struct {
	Tags        []string
	Scratchpads []string

	Keys    []KeyBinding
	Buttons []ButtonBinding

	Rules        []Rule
	MonitorRules []MonitorRule

	Colors Colors
	Fonts  []string

	Layout  int // index into layout.Table applied to new monitors
	MFact   float64
	NMaster int
	Gaps    Gaps

	ShowBar bool
	TopBar  bool

	BorderPx  int
	SnapPx    int
	Smartgaps int

	FloatGridX int
	FloatGridY int

	LockFullscreen  bool
	ResizeHints     bool
	SwallowFloating bool

	// StatusBarName, when non-empty, is the command line launched as the
	// status-text producer; empty disables it.
	StatusBarName string
}

// TagMask returns the bit for a 0-based tag index.
func TagMask(i int) uint32 {
	return 1 << uint32(i)
}
