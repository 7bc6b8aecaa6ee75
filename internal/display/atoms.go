package display

// Atoms caches every interned atom the window manager touches more than
// once, so hot paths (MapRequest, property changes) never round-trip to
// the server just to resolve a name.
type Atoms struct {
	WMProtocols    uint32
	WMDelete       uint32
	WMTakeFocus    uint32
	WMState        uint32
	WMChangeState  uint32
	WMClientLeader uint32
	WMName         uint32
	WMHintsProp    uint32
	WMNormalHints  uint32
	WMTransientFor uint32

	NetSupported           uint32
	NetWMName              uint32
	NetWMState             uint32
	NetWMStateFullscreen   uint32
	NetWMStateDemandsAtten uint32
	NetWMWindowType        uint32
	NetWMWindowTypeDialog  uint32
	NetWMWindowTypeToolbar uint32
	NetWMWindowTypeUtility uint32
	NetWMWindowTypeSplash  uint32
	NetWMWindowTypeDock    uint32
	NetWMCheck             uint32
	NetWMPid               uint32
	NetWMDesktop           uint32
	NetActiveWindow        uint32
	NetClientList          uint32
	NetClientListStacking  uint32
	NetNumberOfDesktops    uint32
	NetCurrentDesktop      uint32
	NetDesktopNames        uint32
	NetDesktopViewport     uint32
	NetCloseWindow         uint32
	NetSystemTray          uint32
	NetSystemTrayOrient    uint32
	NetSystemTrayVisual    uint32
	Manager                uint32
	XEmbed                 uint32
	XEmbedInfo             uint32

	MotifWMHints uint32

	Utf8String uint32
}

// Names lists every atom name this window manager needs interned, in the
// order the corresponding Atoms field appears above. Implementations of
// the Display interface intern each of these once during Open.
var Names = []string{
	"WM_PROTOCOLS",
	"WM_DELETE_WINDOW",
	"WM_TAKE_FOCUS",
	"WM_STATE",
	"WM_CHANGE_STATE",
	"WM_CLIENT_LEADER",
	"WM_NAME",
	"WM_HINTS",
	"WM_NORMAL_HINTS",
	"WM_TRANSIENT_FOR",

	"_NET_SUPPORTED",
	"_NET_WM_NAME",
	"_NET_WM_STATE",
	"_NET_WM_STATE_FULLSCREEN",
	"_NET_WM_STATE_DEMANDS_ATTENTION",
	"_NET_WM_WINDOW_TYPE",
	"_NET_WM_WINDOW_TYPE_DIALOG",
	"_NET_WM_WINDOW_TYPE_TOOLBAR",
	"_NET_WM_WINDOW_TYPE_UTILITY",
	"_NET_WM_WINDOW_TYPE_SPLASH",
	"_NET_WM_WINDOW_TYPE_DOCK",
	"_NET_SUPPORTING_WM_CHECK",
	"_NET_WM_PID",
	"_NET_WM_DESKTOP",
	"_NET_ACTIVE_WINDOW",
	"_NET_CLIENT_LIST",
	"_NET_CLIENT_LIST_STACKING",
	"_NET_NUMBER_OF_DESKTOPS",
	"_NET_CURRENT_DESKTOP",
	"_NET_DESKTOP_NAMES",
	"_NET_DESKTOP_VIEWPORT",
	"_NET_CLOSE_WINDOW",
	"_NET_SYSTEM_TRAY_S0",
	"_NET_SYSTEM_TRAY_ORIENTATION",
	"_NET_SYSTEM_TRAY_VISUAL",
	"MANAGER",
	"_XEMBED",
	"_XEMBED_INFO",

	"_MOTIF_WM_HINTS",

	"UTF8_STRING",
}
