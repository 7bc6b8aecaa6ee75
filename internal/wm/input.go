package wm

import (
	"strconv"
	"strings"

	"github.com/tagwm/tagwm/internal/config"
	"github.com/tagwm/tagwm/internal/display"
)

// chord identifies a grabbed key or button combination by its resolved
// modifier mask and keycode/button number — what a raw KeyPress/
// ButtonPress event actually carries, as opposed to the human-readable
// KeySpec strings in config.Config.
type chord struct {
	mods   uint16
	detail uint8
}

// Binder owns every grabbed key and button combination and runs the
// action it names. A single table-driven dispatcher keyed on resolved
// chords keeps the binding tables dense and introspectable.
type Binder struct {
	w       *World
	keys    map[chord]config.KeyBinding
	buttons map[chord]config.ButtonBinding
	spawn   func(cmd string)
}

// NewBinder builds a Binder over w. spawn launches a shell command for
// the "spawn" action; cmd/tagwm wires it to exec.Command.
func NewBinder(w *World, spawn func(cmd string)) *Binder {
	return &Binder{
		w:       w,
		keys:    make(map[chord]config.KeyBinding),
		buttons: make(map[chord]config.ButtonBinding),
		spawn:   spawn,
	}
}

// Grab grabs every configured key binding and every root-context button
// binding on the root window, building the lookup tables
// DispatchKey/DispatchButton consult. Client-context button bindings are
// only recorded here; GrabClient grabs them on each managed window.
// Bar-context button bindings are grabbed by the bar package against its
// own window instead.
func (b *Binder) Grab() {
	root := b.w.Disp.Root()
	for _, kb := range b.w.Cfg.Keys {
		mods := parseMods(kb.Key.Mods)
		code, err := b.w.Disp.KeycodeOf(kb.Key.Key)
		if err != nil {
			continue
		}
		if err := b.w.Disp.GrabKey(root, mods, kb.Key.Key); err != nil {
			continue
		}
		b.keys[chord{mods, code}] = kb
	}
	for _, bb := range b.w.Cfg.Buttons {
		if bb.Context != "client" && bb.Context != "root" {
			continue
		}
		mods := parseMods(bb.Mods)
		if bb.Context == "root" {
			if err := b.w.Disp.GrabButton(root, mods, bb.Button); err != nil {
				continue
			}
		}
		b.buttons[chord{mods, bb.Button}] = bb
	}
}

// GrabClient re-grabs every client-context button binding directly on a
// newly managed window, so modifier+click works no matter which client
// has input focus.
func (b *Binder) GrabClient(win display.Window) {
	for ch, bb := range b.buttons {
		if bb.Context != "client" {
			continue
		}
		_ = b.w.Disp.GrabButton(win, ch.mods, bb.Button)
	}
}

// parseMods turns a modifier spec ("4S" = Mod4+Shift) into an X11
// modifier mask.
func parseMods(spec string) uint16 {
	var m uint16
	for _, r := range spec {
		switch r {
		case 'S':
			m |= 1 << 0 // ShiftMask
		case 'C':
			m |= 1 << 2 // ControlMask
		case 'M':
			m |= 1 << 3 // Mod1Mask
		case '4':
			m |= 1 << 6 // Mod4Mask
		}
	}
	return m
}

// DispatchKey runs the action bound to a raw KeyPress, if any is bound.
func (b *Binder) DispatchKey(mods uint16, detail uint8) {
	kb, ok := b.keys[chord{mods, detail}]
	if !ok {
		return
	}
	b.run(kb.Action, kb.Arg)
}

// DispatchButton runs the action bound to a raw ButtonPress on a client
// window. Move/resize start a drag session directly instead of going
// through the generic action table, since they need the press location.
func (b *Binder) DispatchButton(mods uint16, detail uint8, c *Client, rootX, rootY int) {
	bb, ok := b.buttons[chord{mods, detail}]
	if !ok {
		return
	}
	switch bb.Action {
	case "movemouse":
		b.w.BeginMove(c, rootX, rootY)
	case "resizemouse":
		b.w.BeginResize(c, rootX, rootY)
	default:
		b.run(bb.Action, bb.Arg)
	}
}

func (b *Binder) run(action, arg string) {
	w := b.w
	m := w.SelMon
	switch action {
	case "spawn":
		if b.spawn != nil {
			b.spawn(arg)
		}
	case "togglebar":
		w.ToggleBar(m)
	case "focusstack":
		w.FocusStack(focusArg(arg))
	case "pushstack":
		w.PushStack(intArg(arg))
	case "incnmaster":
		w.IncNMaster(m, intArg(arg))
	case "setmfact":
		if f, err := strconv.ParseFloat(arg, 64); err == nil {
			w.SetMFact(m, f)
		}
	case "zoom":
		w.Zoom(m)
	case "viewprevtag":
		w.ViewPrev(m)
	case "killclient":
		if m.Sel != nil {
			w.KillClient(m.Sel)
		}
	case "setlayout":
		if arg == "" {
			if m.Pertag != nil {
				w.SetLayout(m, m.Pertag.PrevLayouts[pertagIndex(m.TagSet, len(w.Cfg.Tags))])
			}
			return
		}
		if idx, err := strconv.Atoi(arg); err == nil {
			w.SetLayout(m, idx)
		}
	case "togglefloating":
		w.ToggleFloating(m.Sel)
	case "togglefullscreen":
		w.ToggleFullscreen(m.Sel)
	case "view":
		w.View(m, tagMaskFromArg(w, arg))
	case "toggleview":
		w.ToggleView(m, tagMaskFromArg(w, arg))
	case "focusorview":
		w.FocusOrView(tagMaskFromArg(w, arg))
	case "tag":
		if m.Sel != nil {
			w.Tag(m.Sel, tagMaskFromArg(w, arg))
		}
	case "toggletag":
		if m.Sel != nil {
			w.ToggleTag(m.Sel, tagMaskFromArg(w, arg))
		}
	case "focusmon":
		w.FocusMon(intArg(arg))
	case "tagmon":
		w.TagMon(intArg(arg))
	case "togglescratch":
		w.ToggleScratchpad(intArg(arg))
	case "xrdb":
		if w.XrdbReload != nil {
			w.XrdbReload()
		}
	case "quit":
		w.Quit()
	}
}

// focusArg decodes a focusstack binding argument: "prev" jumps to the
// previously selected client, an explicitly signed number ("+1", "-2")
// steps relative to the selection, and a bare index addresses that
// position in the visible order.
func focusArg(arg string) int {
	if arg == "prev" {
		return FocusPrev
	}
	n, err := strconv.Atoi(arg)
	if err != nil {
		return FocusRelative
	}
	if strings.HasPrefix(arg, "+") || strings.HasPrefix(arg, "-") {
		return FocusRelative + n
	}
	return n
}

func intArg(arg string) int {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0
	}
	return n
}

func tagMaskFromArg(w *World, arg string) uint32 {
	if arg == "all" {
		return w.AllTags
	}
	if n, err := strconv.Atoi(arg); err == nil && n >= 1 && n <= len(w.Cfg.Tags) {
		return config.TagMask(n - 1)
	}
	return 0
}
