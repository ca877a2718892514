package wm

import (
	"github.com/jezek/xgb/xproto"

	"github.com/jezek/xgbutil/ewmh"
	"github.com/jezek/xgbutil/icccm"
	"github.com/jezek/xgbutil/xprop"

	log "github.com/sirupsen/logrus"
)

// InitEWMH advertises _NET_SUPPORTED, creates the supporting-check window
// and seeds _NET_CLIENT_LIST/_NET_ACTIVE_WINDOW, the way the teacher reads
// these properties (store/root.go Connected/ActiveWindowGet) but here the
// core is the one writing them.
func InitEWMH(ctx *Context) {
	supported := []string{
		"_NET_SUPPORTED",
		"_NET_SUPPORTING_WM_CHECK",
		"_NET_ACTIVE_WINDOW",
		"_NET_CLIENT_LIST",
		"_NET_WM_NAME",
		"_NET_WM_STATE",
		"_NET_WM_STATE_FULLSCREEN",
		"_NET_WM_WINDOW_TYPE",
		"_NET_WM_WINDOW_TYPE_DIALOG",
	}
	if err := ewmh.SupportedSet(ctx.XU, supported); err != nil {
		log.WithError(err).Warn("could not set _NET_SUPPORTED")
	}

	win, err := xproto.NewWindowId(ctx.Conn)
	if err == nil {
		_ = xproto.CreateWindowChecked(ctx.Conn, xproto.WindowClassCopyFromParent, win, ctx.Root,
			-1, -1, 1, 1, 0, xproto.WindowClassInputOnly, 0, 0, nil).Check()
		_ = ewmh.SupportingWmCheckSet(ctx.XU, ctx.Root, win)
		_ = ewmh.SupportingWmCheckSet(ctx.XU, win, win)
		_ = ewmh.WmNameSet(ctx.XU, win, "dwm")
	}

	_ = ewmh.ClientListSet(ctx.XU, nil)
	UpdateClientList(ctx)
}

// UpdateClientList rewrites _NET_CLIENT_LIST from every managed client
// across every monitor, in arrangement order (spec §4.9 client lifecycle:
// "Each transition updates ... the EWMH client list on the root").
func UpdateClientList(ctx *Context) {
	var wins []xproto.Window
	for m := ctx.Mons; m != nil; m = m.Next {
		m.ForEachClient(func(c *Client) {
			wins = append(wins, c.Window)
		})
	}
	if err := ewmh.ClientListSet(ctx.XU, wins); err != nil {
		log.WithError(err).Warn("could not set _NET_CLIENT_LIST")
	}
}

// SetWMState writes WM_STATE (Normal/Withdrawn) per ICCCM.
func SetWMState(ctx *Context, w xproto.Window, state int) {
	_ = icccm.WmStateSet(ctx.XU, w, &icccm.WmState{State: uint(state)})
}

const (
	WMStateWithdrawn = icccm.StateWithdrawn
	WMStateNormal    = icccm.StateNormal
	WMStateIconic    = icccm.StateIconic
)

// SetActiveWindow updates _NET_ACTIVE_WINDOW on the root (spec §4.6 focus).
func SetActiveWindow(ctx *Context, w xproto.Window) {
	if err := ewmh.ActiveWindowSet(ctx.XU, w); err != nil {
		log.WithError(err).Warn("could not set _NET_ACTIVE_WINDOW")
	}
}

// SetRootName sets WM_NAME on the root window so an external status bar can
// display it (spec §6 "External status bar" / status text supplement).
func SetRootName(ctx *Context, name string) {
	_ = icccm.WmNameSet(ctx.XU, ctx.Root, name)
}

// SendProtocol sends a WM_PROTOCOLS client message (WM_DELETE_WINDOW or
// WM_TAKE_FOCUS) if the client advertises support for it.
func SendProtocol(ctx *Context, c *Client, proto xproto.Atom) bool {
	protocols, err := icccm.WmProtocolsGet(ctx.XU, c.Window)
	if err != nil {
		return false
	}
	name := atomName(ctx, proto)
	supported := false
	for _, p := range protocols {
		if p == name {
			supported = true
			break
		}
	}
	if !supported {
		return false
	}

	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: c.Window,
		Type:   ctx.Atoms.WMProtocols,
		Data: xproto.ClientMessageDataUnionData32New([]uint32{
			uint32(proto), uint32(xproto.TimeCurrentTime), 0, 0, 0,
		}),
	}
	_ = xproto.SendEventChecked(ctx.Conn, false, c.Window, xproto.EventMaskNoEvent, string(ev.Bytes())).Check()
	return true
}

// atomName resolves an atom back to its string name the same way the
// teacher decodes PropertyNotify events (store/root.go StateUpdate,
// xprop.AtomName).
func atomName(ctx *Context, a xproto.Atom) string {
	name, err := xprop.AtomName(ctx.XU, a)
	if err != nil {
		return ""
	}
	return name
}
