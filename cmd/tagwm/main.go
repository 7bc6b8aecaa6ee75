// Command tagwm is the window manager's entrypoint: it wires the display
// connection, the core World state machine, the per-monitor bars, and
// the systray host together and runs the event loop.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"syscall"

	console "github.com/phsym/console-slog"
	"github.com/spf13/cobra"

	"github.com/BurntSushi/xgbutil/xprop"

	"github.com/tagwm/tagwm/internal/bar"
	"github.com/tagwm/tagwm/internal/bar/tray"
	"github.com/tagwm/tagwm/internal/config"
	"github.com/tagwm/tagwm/internal/display"
	"github.com/tagwm/tagwm/internal/drawable"
	"github.com/tagwm/tagwm/internal/geom"
	"github.com/tagwm/tagwm/internal/status"
	"github.com/tagwm/tagwm/internal/wm"
)

// version is stamped by the build; the default marks a from-source build.
var version = "devel"

var logLevel string

func main() {
	root := &cobra.Command{
		Use:           "tagwm",
		Short:         "a tiling window manager",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}
	root.Flags().StringVar(&logLevel, "log-level", "info", "debug, info, warn, or error")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "tagwm:", err)
		os.Exit(1)
	}
}

func initLogger() *slog.Logger {
	level := slog.LevelInfo
	switch logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	log := slog.New(console.NewHandler(os.Stderr, &console.HandlerOptions{Level: level}))
	slog.SetDefault(log)
	return log
}

func run() error {
	log := initLogger()

	disp, err := display.Open()
	if err != nil {
		return fmt.Errorf("open display: %w", err)
	}
	defer disp.Close()

	// Selecting SubstructureRedirect on the root is exclusive; failure
	// means some other window manager already owns the display.
	if err := disp.Listen(disp.Root(), display.RootEventMask); err != nil {
		return fmt.Errorf("another window manager is already running: %w", err)
	}

	cfg := config.Default()
	if resources, err := readResourceManager(disp); err == nil {
		if err := config.ApplyXrdb(&cfg, resources); err != nil {
			log.Warn("xrdb apply failed", "err", err)
		}
	}

	w := wm.New(disp, cfg, log)
	if err := w.AttachMonitors(); err != nil {
		return fmt.Errorf("attach monitors: %w", err)
	}
	applyBorderColors(disp, w)
	w.XrdbReload = func() {
		resources, err := readResourceManager(disp)
		if err != nil {
			log.Warn("xrdb reload failed", "err", err)
			return
		}
		if err := config.ApplyXrdb(&w.Cfg, resources); err != nil {
			log.Warn("xrdb reload failed", "err", err)
			return
		}
		applyBorderColors(disp, w)
		w.Arrange(nil)
	}

	spawn := func(cmdline string) {
		c := exec.Command("/bin/sh", "-c", cmdline)
		c.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
		if err := c.Start(); err != nil {
			log.Warn("spawn failed", "cmd", cmdline, "err", err)
			return
		}
		// Reap the child when it exits so it never lingers as a zombie.
		go func() { _ = c.Wait() }()
	}
	binder := wm.NewBinder(w, spawn)
	w.Binder = binder
	binder.Grab()

	producer := status.NewProducer(disp, cfg.StatusBarName)
	if err := producer.Start(cfg.StatusBarName); err != nil {
		log.Warn("status producer failed to start", "err", err)
	}
	defer producer.Stop()

	trayHost := tray.NewHost(disp)
	if err := trayHost.Acquire(); err != nil {
		log.Warn("systray unavailable", "err", err)
		trayHost = nil
	}

	bars, err := buildBars(disp, w, producer, trayHost)
	if err != nil {
		return fmt.Errorf("build bars: %w", err)
	}

	if err := publishStartupState(disp, w); err != nil {
		log.Warn("ewmh startup publish incomplete", "err", err)
	}

	log.Info("tagwm started")
	eventLoop(w, bars, trayHost)
	return nil
}

// barSet pairs one monitor's bar with the window id it was built on, so
// eventLoop can route an event back to the bar that owns it.
type barSet struct {
	mon int
	win uint32
	bar *bar.Bar
}

func buildBars(disp *display.XDisplay, w *wm.World, producer *status.Producer, trayHost *tray.Host) ([]*barSet, error) {
	const barHeight = 20
	w.SetBarHeight(barHeight)

	var sets []*barSet
	for m := w.Mons; m != nil; m = m.Next {
		mon := m
		r := geom.Rect{X: mon.MGeom.X, Y: mon.MGeom.Y, W: mon.MGeom.W, H: barHeight}
		if !mon.TopBar {
			r.Y = mon.MGeom.Bottom() - barHeight
		}
		draw, err := drawable.NewWindow(disp.XU(), r)
		if err != nil {
			return nil, fmt.Errorf("monitor %d: create bar window: %w", mon.Num, err)
		}
		win := display.Window(draw.Window())
		if err := disp.WatchBarWindow(win); err != nil {
			return nil, err
		}
		if err := disp.Map(win); err != nil {
			return nil, err
		}

		monFn := func() *wm.Monitor { return w.MonitorByNum(mon.Num) }
		modules := []bar.Module{
			bar.LtSymbolModule(w, monFn),
			bar.TagsModule(w, monFn),
			bar.WinTitleModule(w, monFn),
			bar.Status2DModule(w, func() string {
				primary, _ := producer.Text()
				return primary
			}, producer.SignalBlock),
		}
		if trayHost != nil {
			modules = append(modules, bar.SystrayModule(trayHost, mon.Num, w.Cfg.Colors.Norm))
		}

		b := &bar.Bar{Draw: draw, Modules: modules, Geom: r}
		sets = append(sets, &barSet{mon: mon.Num, win: draw.Window(), bar: b})
	}
	return sets, nil
}

// eventLoop drains the display's event channel itself rather than
// calling World.Run, so it can intercept events addressed to bar and
// tray windows before handing everything else to World.Dispatch.
func eventLoop(w *wm.World, bars []*barSet, trayHost *tray.Host) {
	w.Running = true
	for w.Running {
		ev, ok := <-w.Disp.Events()
		if !ok {
			return
		}

		if trayHost != nil {
			switch ev.Kind {
			case display.EventClientMessage:
				if ev.Window == trayHost.Window() {
					trayHost.HandleClientMessage(ev)
					continue
				}
			case display.EventDestroyNotify:
				trayHost.HandleDestroy(ev.Window)
			}
		}

		if bs := barByWindow(bars, ev.Window); bs != nil {
			switch ev.Kind {
			case display.EventExpose:
				bs.bar.Compose(bs.mon)
			case display.EventButtonPress:
				placements := bs.bar.Compose(bs.mon)
				bs.bar.Click(placements, bs.mon, ev.RootX-bs.bar.Geom.X, ev.Detail)
			}
			continue
		}

		w.Dispatch(ev)

		// Each handler mutates model state the bar reflects (tags, focus,
		// layout symbol, urgency), so every bar repaints once per event.
		for _, bs := range bars {
			bs.bar.Compose(bs.mon)
		}
	}
}

// applyBorderColors resolves the configured border colors to pixels and
// hands them to the focus manager.
func applyBorderColors(disp *display.XDisplay, w *wm.World) {
	selPx, err := drawable.AllocHex(disp.XU(), w.Cfg.Colors.Sel.Border)
	if err != nil {
		return
	}
	normPx, err := drawable.AllocHex(disp.XU(), w.Cfg.Colors.Norm.Border)
	if err != nil {
		return
	}
	w.SetBorderColors(uint32(selPx), uint32(normPx))
}

func barByWindow(bars []*barSet, win display.Window) *barSet {
	for _, bs := range bars {
		if bs.win == uint32(win) {
			return bs
		}
	}
	return nil
}

// publishStartupState announces EWMH support, using a throwaway 1x1
// window as the _NET_SUPPORTING_WM_CHECK target.
func publishStartupState(disp *display.XDisplay, w *wm.World) error {
	check, err := drawable.NewWindow(disp.XU(), geom.Rect{X: -1, Y: -1, W: 1, H: 1})
	if err != nil {
		return err
	}
	atoms := disp.Atoms()
	supported := []uint32{
		atoms.NetSupported, atoms.NetWMName, atoms.NetWMState, atoms.NetWMStateFullscreen,
		atoms.NetWMStateDemandsAtten, atoms.NetWMWindowType, atoms.NetWMWindowTypeDialog,
		atoms.NetWMWindowTypeToolbar, atoms.NetWMWindowTypeUtility, atoms.NetWMWindowTypeSplash,
		atoms.NetWMWindowTypeDock, atoms.NetWMCheck, atoms.NetWMPid, atoms.NetWMDesktop,
		atoms.NetActiveWindow, atoms.NetClientList, atoms.NetClientListStacking,
		atoms.NetNumberOfDesktops, atoms.NetCurrentDesktop, atoms.NetDesktopNames,
		atoms.NetDesktopViewport, atoms.NetCloseWindow, atoms.NetSystemTray,
	}
	w.PublishStartup(supported, display.Window(check.Window()))
	return nil
}

func readResourceManager(disp *display.XDisplay) (map[string]string, error) {
	xu := disp.XU()
	val, err := xprop.PropValStr(xprop.GetProperty(xu, xu.RootWin(), "RESOURCE_MANAGER"))
	if err != nil {
		return nil, err
	}
	return config.ParseXrdb(strings.NewReader(val))
}
