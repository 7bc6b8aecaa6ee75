package config

// Default returns the compiled-in configuration. A real deployment is
// expected to fork this function rather than look for a config file.
func Default() Config {
	return Config{
		Tags:        []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"},
		Scratchpads: []string{"scratchpad"},

		Keys:    defaultKeys(),
		Buttons: defaultButtons(),

		Rules: []Rule{
			{Class: "St", IsTerminal: true, Monitor: -1},
			{Class: "st-256color", IsTerminal: true, Monitor: -1},
			{Class: "Gimp", IsFloating: true, Monitor: -1},
			{Class: "Firefox", Tags: TagMask(8), Monitor: -1},
			// Scratchpad terminal: floats centered over 90%x80% of the
			// work area, hidden on its own tag until togglescratch(0)
			// summons it.
			{Class: "kitty-sp", IsFloating: true, Tags: TagMask(9), FloatPos: "50% 50% 90% 80%", Monitor: -1},
		},
		MonitorRules: []MonitorRule{
			{Monitor: -1, Tag: -1, Layout: 0, MFact: 0.55, NMaster: 1, ShowBar: true, TopBar: true},
		},

		Colors: Colors{
			Norm: ColorScheme{Fg: "#bbbbbb", Bg: "#222222", Border: "#444444"},
			Sel:  ColorScheme{Fg: "#eeeeee", Bg: "#005577", Border: "#005577"},
			Palette: [16]string{
				"#000000", "#cc241d", "#98971a", "#d79921",
				"#458588", "#b16286", "#689d6a", "#a89984",
				"#928374", "#fb4934", "#b8bb26", "#fabd2f",
				"#83a598", "#d3869b", "#8ec07c", "#ebdbb2",
			},
		},
		Fonts: []string{"monospace:size=10"},

		Layout:  0,
		MFact:   0.55,
		NMaster: 1,
		Gaps:    Gaps{InnerH: 0, InnerV: 0, OuterH: 0, OuterV: 0},

		ShowBar: true,
		TopBar:  true,

		BorderPx:  1,
		SnapPx:    32,
		Smartgaps: 0,

		FloatGridX: 5,
		FloatGridY: 5,

		LockFullscreen:  true,
		ResizeHints:     false,
		SwallowFloating: false,

		StatusBarName: "",
	}
}

func defaultKeys() []KeyBinding {
	var keys []KeyBinding
	mod := "4"

	keys = append(keys,
		KeyBinding{KeySpec{mod, "p"}, "spawn", "dmenu_run"},
		KeyBinding{KeySpec{mod + "S", "Return"}, "spawn", "st"},
		KeyBinding{KeySpec{mod, "b"}, "togglebar", ""},
		KeyBinding{KeySpec{mod, "j"}, "focusstack", "+1"},
		KeyBinding{KeySpec{mod, "k"}, "focusstack", "-1"},
		KeyBinding{KeySpec{mod + "S", "j"}, "pushstack", "+1"},
		KeyBinding{KeySpec{mod + "S", "k"}, "pushstack", "-1"},
		KeyBinding{KeySpec{mod, "grave"}, "focusstack", "prev"},
		KeyBinding{KeySpec{mod, "i"}, "incnmaster", "+1"},
		KeyBinding{KeySpec{mod, "d"}, "incnmaster", "-1"},
		KeyBinding{KeySpec{mod, "h"}, "setmfact", "-0.05"},
		KeyBinding{KeySpec{mod, "l"}, "setmfact", "+0.05"},
		KeyBinding{KeySpec{mod, "Return"}, "zoom", ""},
		KeyBinding{KeySpec{mod, "Tab"}, "viewprevtag", ""},
		KeyBinding{KeySpec{mod + "S", "c"}, "killclient", ""},
		KeyBinding{KeySpec{mod, "t"}, "setlayout", "0"},
		KeyBinding{KeySpec{mod, "f"}, "setlayout", "1"},
		KeyBinding{KeySpec{mod, "m"}, "setlayout", "2"},
		KeyBinding{KeySpec{mod, "space"}, "setlayout", ""},
		KeyBinding{KeySpec{mod + "S", "space"}, "togglefloating", ""},
		KeyBinding{KeySpec{mod + "S", "f"}, "togglefullscreen", ""},
		KeyBinding{KeySpec{mod, "0"}, "view", "all"},
		KeyBinding{KeySpec{mod + "S", "0"}, "tag", "all"},
		KeyBinding{KeySpec{mod, "comma"}, "focusmon", "-1"},
		KeyBinding{KeySpec{mod, "period"}, "focusmon", "+1"},
		KeyBinding{KeySpec{mod + "S", "comma"}, "tagmon", "-1"},
		KeyBinding{KeySpec{mod + "S", "period"}, "tagmon", "+1"},
		KeyBinding{KeySpec{mod + "S", "s"}, "togglescratch", "0"},
		KeyBinding{KeySpec{mod, "F5"}, "xrdb", ""},
		KeyBinding{KeySpec{mod + "S", "q"}, "quit", ""},
	)
	for i := 0; i < 9; i++ {
		digit := string(rune('1' + i))
		keys = append(keys,
			KeyBinding{KeySpec{mod, digit}, "view", digit},
			KeyBinding{KeySpec{mod + "C", digit}, "toggleview", digit},
			KeyBinding{KeySpec{mod + "S", digit}, "tag", digit},
			KeyBinding{KeySpec{mod + "CS", digit}, "toggletag", digit},
		)
	}
	return keys
}

func defaultButtons() []ButtonBinding {
	return []ButtonBinding{
		{Mods: "", Button: 1, Context: "bar-tags", Action: "view", Arg: ""},
		{Mods: "", Button: 3, Context: "bar-tags", Action: "toggleview", Arg: ""},
		{Mods: "4", Button: 1, Context: "bar-tags", Action: "tag", Arg: ""},
		{Mods: "4", Button: 3, Context: "bar-tags", Action: "toggletag", Arg: ""},
		{Mods: "", Button: 1, Context: "bar-ltsymbol", Action: "setlayout", Arg: ""},
		{Mods: "", Button: 2, Context: "bar-status", Action: "spawn", Arg: ""},
		{Mods: "4", Button: 1, Context: "client", Action: "movemouse", Arg: ""},
		{Mods: "4", Button: 2, Context: "client", Action: "togglefloating", Arg: ""},
		{Mods: "4", Button: 3, Context: "client", Action: "resizemouse", Arg: ""},
	}
}
