package wm

import (
	"reflect"

	"github.com/jezek/xgb/randr"
	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil/icccm"

	"github.com/gowm/dwm/internal/common"
)

// handler processes one concrete xgb event value.
type handler func(ctx *Context, ev interface{})

// dispatchTable maps each event's concrete Go type to its handler, taking
// the place of the teacher's/original's array indexed by integer event code
// (spec.md Open Questions: xgb delivers events as typed interface values,
// not integers, so a reflect.Type keyed map is the natural Go substitute —
// built once, looked up on every iteration of Run).
var dispatchTable = map[reflect.Type]handler{
	reflect.TypeOf(xproto.ButtonPressEvent{}):      func(ctx *Context, ev interface{}) { onButtonPress(ctx, ev.(xproto.ButtonPressEvent)) },
	reflect.TypeOf(xproto.ButtonReleaseEvent{}):    func(ctx *Context, ev interface{}) { onButtonRelease(ctx, ev.(xproto.ButtonReleaseEvent)) },
	reflect.TypeOf(xproto.KeyPressEvent{}):         func(ctx *Context, ev interface{}) { DispatchKeyPress(ctx, ev.(xproto.KeyPressEvent)) },
	reflect.TypeOf(xproto.KeyReleaseEvent{}):       func(ctx *Context, ev interface{}) { onKeyRelease(ctx, ev.(xproto.KeyReleaseEvent)) },
	reflect.TypeOf(xproto.ClientMessageEvent{}):    func(ctx *Context, ev interface{}) { onClientMessage(ctx, ev.(xproto.ClientMessageEvent)) },
	reflect.TypeOf(xproto.ConfigureRequestEvent{}): func(ctx *Context, ev interface{}) { onConfigureRequest(ctx, ev.(xproto.ConfigureRequestEvent)) },
	reflect.TypeOf(xproto.ConfigureNotifyEvent{}):  func(ctx *Context, ev interface{}) { onConfigureNotify(ctx, ev.(xproto.ConfigureNotifyEvent)) },
	reflect.TypeOf(xproto.DestroyNotifyEvent{}):    func(ctx *Context, ev interface{}) { onDestroyNotify(ctx, ev.(xproto.DestroyNotifyEvent)) },
	reflect.TypeOf(xproto.UnmapNotifyEvent{}):      func(ctx *Context, ev interface{}) { onUnmapNotify(ctx, ev.(xproto.UnmapNotifyEvent)) },
	reflect.TypeOf(xproto.EnterNotifyEvent{}):      func(ctx *Context, ev interface{}) { onEnterNotify(ctx, ev.(xproto.EnterNotifyEvent)) },
	reflect.TypeOf(xproto.FocusInEvent{}):          func(ctx *Context, ev interface{}) { onFocusIn(ctx, ev.(xproto.FocusInEvent)) },
	reflect.TypeOf(xproto.MappingNotifyEvent{}):    func(ctx *Context, ev interface{}) { onMappingNotify(ctx, ev.(xproto.MappingNotifyEvent)) },
	reflect.TypeOf(xproto.MapRequestEvent{}):       func(ctx *Context, ev interface{}) { onMapRequest(ctx, ev.(xproto.MapRequestEvent)) },
	reflect.TypeOf(xproto.MotionNotifyEvent{}):     func(ctx *Context, ev interface{}) { onMotionNotify(ctx, ev.(xproto.MotionNotifyEvent)) },
	reflect.TypeOf(xproto.PropertyNotifyEvent{}):   func(ctx *Context, ev interface{}) { onPropertyNotify(ctx, ev.(xproto.PropertyNotifyEvent)) },
	reflect.TypeOf(randr.ScreenChangeNotifyEvent{}): func(ctx *Context, ev interface{}) { onScreenChangeNotify(ctx, ev.(randr.ScreenChangeNotifyEvent)) },
}

// Dispatch routes one event through the table; unrecognized event types are
// dropped silently, mirroring dwm's explicit "ignore the rest" default case.
func Dispatch(ctx *Context, ev interface{}) {
	if h, ok := dispatchTable[reflect.TypeOf(ev)]; ok {
		h(ctx, ev)
	}
}

// Run is the main cooperative event loop: block for the next event, route
// it, repeat, until Quit clears Running (spec §5: single-threaded, no
// internal locking required since only one goroutine ever touches Context).
func Run(ctx *Context) {
	for ctx.Running {
		ev, err := ctx.Conn.WaitForEvent()
		if err != nil {
			HandleXError(err)
			continue
		}
		if ev == nil {
			continue
		}
		Dispatch(ctx, ev)
	}
}

func onButtonPress(ctx *Context, ev xproto.ButtonPressEvent) {
	DispatchButtonPress(ctx, ev)
}

func onButtonRelease(ctx *Context, ev xproto.ButtonReleaseEvent) {
	ClearCombo(ctx)
}

func onKeyRelease(ctx *Context, ev xproto.KeyReleaseEvent) {
	ClearCombo(ctx)
}

// onClientMessage handles _NET_WM_STATE (fullscreen toggle/add/remove) and
// _NET_ACTIVE_WINDOW (external focus request), the two client messages the
// core honours per spec §4.1.
func onClientMessage(ctx *Context, ev xproto.ClientMessageEvent) {
	c := WinToClient(ctx, ev.Window)
	if c == nil {
		return
	}
	data := ev.Data.Data32

	switch ev.Type {
	case ctx.Atoms.NetWMState:
		if len(data) < 2 {
			return
		}
		if xproto.Atom(data[1]) == ctx.Atoms.NetWMFullscreen || (len(data) > 2 && xproto.Atom(data[2]) == ctx.Atoms.NetWMFullscreen) {
			switch data[0] {
			case 0: // _NET_WM_STATE_REMOVE
				SetFullscreen(ctx, c, false)
			case 1: // _NET_WM_STATE_ADD
				SetFullscreen(ctx, c, true)
			case 2: // _NET_WM_STATE_TOGGLE
				SetFullscreen(ctx, c, !c.IsFullscreen)
			}
		}
	case ctx.Atoms.NetActiveWindow:
		if c != ctx.SelMon.Selected && !c.IsUrgent {
			SetUrgent(ctx, c, true)
		}
	}
}

// onConfigureRequest forwards requests for unmanaged windows verbatim and
// honours the requested geometry for floating clients. Tiled clients keep
// their layout geometry and only receive a synthetic ConfigureNotify
// describing it. Every managed client is answered with a ConfigureNotify
// (spec §4.1 ConfigureRequest contract).
func onConfigureRequest(ctx *Context, ev xproto.ConfigureRequestEvent) {
	c := WinToClient(ctx, ev.Window)
	if c == nil {
		values := []uint32{}
		var mask uint16
		if ev.ValueMask&xproto.ConfigWindowX != 0 {
			values = append(values, uint32(ev.X))
			mask |= xproto.ConfigWindowX
		}
		if ev.ValueMask&xproto.ConfigWindowY != 0 {
			values = append(values, uint32(ev.Y))
			mask |= xproto.ConfigWindowY
		}
		if ev.ValueMask&xproto.ConfigWindowWidth != 0 {
			values = append(values, uint32(ev.Width))
			mask |= xproto.ConfigWindowWidth
		}
		if ev.ValueMask&xproto.ConfigWindowHeight != 0 {
			values = append(values, uint32(ev.Height))
			mask |= xproto.ConfigWindowHeight
		}
		if ev.ValueMask&xproto.ConfigWindowBorderWidth != 0 {
			values = append(values, uint32(ev.BorderWidth))
			mask |= xproto.ConfigWindowBorderWidth
		}
		if ev.ValueMask&xproto.ConfigWindowSibling != 0 {
			values = append(values, uint32(ev.Sibling))
			mask |= xproto.ConfigWindowSibling
		}
		if ev.ValueMask&xproto.ConfigWindowStackMode != 0 {
			values = append(values, uint32(ev.StackMode))
			mask |= xproto.ConfigWindowStackMode
		}
		_ = xproto.ConfigureWindowChecked(ctx.Conn, ev.Window, mask, values).Check()
		return
	}

	if c.IsFloating {
		if ev.ValueMask&xproto.ConfigWindowWidth != 0 {
			c.W = int(ev.Width)
		}
		if ev.ValueMask&xproto.ConfigWindowHeight != 0 {
			c.H = int(ev.Height)
		}
		if ev.ValueMask&xproto.ConfigWindowX != 0 {
			c.X = int(ev.X)
		}
		if ev.ValueMask&xproto.ConfigWindowY != 0 {
			c.Y = int(ev.Y)
		}
		// A requested position past the right or bottom edge of the
		// monitor's screen rectangle (common from apps restoring a saved
		// position on the wrong output) gets recentered on the client's own
		// monitor instead of honoured verbatim, the way dwm's
		// configurerequest clamps m->mx/my+mw/mh. Positions past the left or
		// top edge are kept as requested.
		if m := c.Mon; m != nil && (c.X > m.Screen.Right() || c.Y > m.Screen.Bottom()) {
			c.X = m.Screen.X + (m.Screen.Width-c.TotalWidth())/2
			c.Y = m.Screen.Y + (m.Screen.Height-c.TotalHeight())/2
		}
		if ev.ValueMask&(xproto.ConfigWindowWidth|xproto.ConfigWindowHeight) != 0 {
			ConfigureClient(ctx, c)
		} else {
			SendConfigureNotify(ctx, c)
		}
	} else {
		SendConfigureNotify(ctx, c)
	}
}

func onConfigureNotify(ctx *Context, ev xproto.ConfigureNotifyEvent) {
	if ev.Window != ctx.Root {
		return
	}
	if int(ev.Width) == ctx.ScreenWidth && int(ev.Height) == ctx.ScreenHeight {
		return
	}
	ctx.ScreenWidth, ctx.ScreenHeight = int(ev.Width), int(ev.Height)
	for _, m := range UpdateGeometry(ctx) {
		Arrange(ctx, m)
	}
}

// onScreenChangeNotify re-runs Xinerama discovery when RandR reports the
// screen resources changed (output hotplug/resize), the way the teacher
// watches RandR purely as a trigger for its own re-discovery pass
// (store/root.go monitorRandREvents) rather than consuming its geometry
// directly — this core still trusts Xinerama for the actual rectangles
// (spec §4.3, SPEC_FULL.md "Xinerama vs RandR").
func onScreenChangeNotify(ctx *Context, ev randr.ScreenChangeNotifyEvent) {
	ctx.ScreenWidth, ctx.ScreenHeight = int(ev.Width), int(ev.Height)
	for _, m := range UpdateGeometry(ctx) {
		Arrange(ctx, m)
	}
}

func onDestroyNotify(ctx *Context, ev xproto.DestroyNotifyEvent) {
	if c := WinToClient(ctx, ev.Window); c != nil {
		Unmanage(ctx, c, true)
	}
}

func onUnmapNotify(ctx *Context, ev xproto.UnmapNotifyEvent) {
	if c := WinToClient(ctx, ev.Window); c != nil {
		Unmanage(ctx, c, false)
	}
}

// onEnterNotify ignores all but normal/non-inferior crossings, then
// implements focus-follows-mouse by focusing the entered client (or the
// monitor under the pointer, if the root itself was entered) (spec §4.1).
func onEnterNotify(ctx *Context, ev xproto.EnterNotifyEvent) {
	if (ev.Mode != xproto.NotifyModeNormal || ev.Detail == xproto.NotifyDetailInferior) && ev.Event != ctx.Root {
		return
	}
	c := WinToClient(ctx, ev.Event)
	m := ctx.SelMon
	if c != nil {
		m = c.Mon
	} else {
		m = WinToMon(ctx, ev.Event)
	}
	if m != ctx.SelMon {
		unfocus(ctx, ctx.SelMon.Selected, true)
		ctx.SelMon = m
	}
	if c != nil && c != ctx.SelMon.Selected {
		Focus(ctx, c)
	}
}

func onFocusIn(ctx *Context, ev xproto.FocusInEvent) {
	// Re-assert focus on our own selection if something else stole it
	// without going through setFocus (spec §4.6 "focus stealing" hazard).
	if ctx.SelMon != nil && ctx.SelMon.Selected != nil && ev.Event != ctx.SelMon.Selected.Window {
		setFocus(ctx, ctx.SelMon.Selected)
	}
}

func onMappingNotify(ctx *Context, ev xproto.MappingNotifyEvent) {
	if ev.Request == xproto.MappingKeyboard || ev.Request == xproto.MappingModifier {
		UpdateNumLockMask(ctx)
		GrabKeys(ctx)
	}
}

func onMapRequest(ctx *Context, ev xproto.MapRequestEvent) {
	if WinToClient(ctx, ev.Window) != nil {
		return
	}
	wa, err := xproto.GetWindowAttributes(ctx.Conn, ev.Window).Reply()
	if err != nil || wa == nil || wa.OverrideRedirect {
		return
	}
	geom, err := xproto.GetGeometry(ctx.Conn, xproto.Drawable(ev.Window)).Reply()
	if err != nil {
		return
	}
	Manage(ctx, ev.Window, wa, geom)
}

func onMotionNotify(ctx *Context, ev xproto.MotionNotifyEvent) {
	if ev.Event != ctx.Root {
		return
	}
	g := common.CreateGeometry(int(ev.RootX), int(ev.RootY), 1, 1)
	if m := RectToMon(ctx, g); m != ctx.SelMon {
		unfocus(ctx, ctx.SelMon.Selected, true)
		ctx.SelMon = m
		Focus(ctx, nil)
	}
}

// onPropertyNotify mirrors the teacher's store/root.go StateUpdate atom
// dispatch, but scoped to per-client properties a managed window can change
// live (spec §4.1 PropertyNotify contract).
func onPropertyNotify(ctx *Context, ev xproto.PropertyNotifyEvent) {
	if ev.Window == ctx.Root {
		return
	}
	c := WinToClient(ctx, ev.Window)
	if c == nil {
		return
	}

	switch ev.Atom {
	case xproto.AtomWmHints:
		updateWMHints(ctx, c)
	case xproto.AtomWmNormalHints:
		c.UpdateSizeHints(ctx)
	case xproto.AtomWmName:
		refreshName(ctx, c)
	case ctx.Atoms.NetWMName:
		refreshName(ctx, c)
	case xproto.AtomWmTransientFor:
		if updateTransient(ctx, c) {
			Arrange(ctx, c.Mon)
		}
	case ctx.Atoms.NetWMWindowType:
		updateWindowType(ctx, c)
		Arrange(ctx, c.Mon)
	}
}

func refreshName(ctx *Context, c *Client) {
	if name, err := icccm.WmNameGet(ctx.XU, c.Window); err == nil {
		c.Name = common.TrimTitle(name)
	}
}
