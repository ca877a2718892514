package wm

import (
	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil/icccm"

	log "github.com/sirupsen/logrus"
)

// Focus implements spec §4.6. If c is nil or invisible, it selects the
// topmost visible client from the monitor's focus stack instead. The
// previous selection (if different) is unfocused; the new selection is
// promoted to the head of its monitor's focus stack.
func Focus(ctx *Context, c *Client) {
	if c == nil || !c.Visible() {
		c = nil
		if ctx.SelMon != nil {
			t := ctx.SelMon.Stack
			for t != nil && !t.Visible() {
				t = t.SNext
			}
			c = t
		}
	}

	if ctx.SelMon != nil && ctx.SelMon.Selected != nil && ctx.SelMon.Selected != c {
		unfocus(ctx, ctx.SelMon.Selected, false)
	}

	if c != nil {
		if c.Mon != ctx.SelMon {
			ctx.SelMon = c.Mon
		}
		if c.IsUrgent {
			SetUrgent(ctx, c, false)
		}
		DetachStack(c)
		AttachStack(c)
		SetBorder(ctx, c, true)
		GrabButtons(ctx, c.Window, true)
		setFocus(ctx, c)
	} else {
		if ctx.SelMon != nil {
			ctx.SelMon.Selected = nil
		}
		SetActiveWindow(ctx, 0)
		return
	}

	if ctx.SelMon != nil {
		ctx.SelMon.Selected = c
	}
}

func unfocus(ctx *Context, c *Client, setfocus bool) {
	if c == nil {
		return
	}
	SetBorder(ctx, c, false)
	GrabButtons(ctx, c.Window, false)
	if setfocus {
		_ = xproto.SetInputFocusChecked(ctx.Conn, xproto.InputFocusPointerRoot, ctx.Root, xproto.TimeCurrentTime).Check()
		SetActiveWindow(ctx, 0)
	}
}

// setFocus asserts input focus via XSetInputFocus unless the client's
// never-focus hint is set, and additionally sends WM_TAKE_FOCUS when the
// client advertises it (spec §4.6).
func setFocus(ctx *Context, c *Client) {
	if !c.NeverFocus {
		_ = xproto.SetInputFocusChecked(ctx.Conn, xproto.InputFocusPointerRoot, c.Window, xproto.TimeCurrentTime).Check()
	}
	SendProtocol(ctx, c, ctx.Atoms.WMTakeFocus)
	SetActiveWindow(ctx, c.Window)
}

// SetUrgent toggles the WM_HINTS urgency bit and reflects it in c.IsUrgent.
func SetUrgent(ctx *Context, c *Client, urgent bool) {
	c.IsUrgent = urgent
	hints, err := icccm.WmHintsGet(ctx.XU, c.Window)
	if err != nil || hints == nil {
		return
	}
	if urgent {
		hints.Flags |= icccm.HintUrgency
	} else {
		hints.Flags &^= icccm.HintUrgency
	}
	_ = icccm.WmHintsSet(ctx.XU, c.Window, hints)
}

// Restack raises the selected client to the top of the stacking order if it
// is floating or fullscreen (spec §4.6). Tiled clients keep whatever
// relative order Tile's ConfigureWindow calls already gave them; raising
// every one of them here too would put the last-tiled window back above the
// floating selection this function just raised.
func Restack(ctx *Context, m *Monitor) {
	if m == nil || m.Selected == nil {
		return
	}
	if m.Selected.IsFloating || m.Selected.IsFullscreen {
		RaiseWindow(ctx, m.Selected.Window)
	}
}

func RaiseWindow(ctx *Context, w xproto.Window) {
	_ = xproto.ConfigureWindowChecked(ctx.Conn, w, xproto.ConfigWindowStackMode,
		[]uint32{xproto.StackModeAbove}).Check()
}

// FocusStack advances the selection to the next (dir>0) or previous (dir<0)
// visible client in arrangement order, wrapping around (spec §4.6).
func FocusStack(ctx *Context, dir int) {
	m := ctx.SelMon
	if m == nil || m.Selected == nil {
		return
	}
	next := nextInStack(m.VisibleClients(), m.Selected, dir)
	if next == nil {
		return
	}
	Focus(ctx, next)
	Restack(ctx, m)
}

// nextInStack is the pure selection-advance logic behind FocusStack: the
// next (dir>0) or previous (dir<0) entry in vis after cur, wrapping around.
// Returns nil if cur isn't found or vis is empty.
func nextInStack(vis []*Client, cur *Client, dir int) *Client {
	if len(vis) == 0 {
		return nil
	}
	idx := -1
	for i, c := range vis {
		if c == cur {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil
	}
	if dir > 0 {
		return vis[(idx+1)%len(vis)]
	}
	return vis[(idx-1+len(vis))%len(vis)]
}

// Zoom promotes the selected client to the head of the arrangement list,
// making it the master, unless it already is the first tiled client — in
// which case the second tiled client is promoted instead (spec §4.6).
func Zoom(ctx *Context, m *Monitor) {
	c := m.Selected
	if c == nil || c.IsFloating {
		return
	}

	first := firstTiled(m)
	if c == first {
		c = nextTiled(c)
		if c == nil {
			return
		}
	}

	Detach(c)
	c.Next = m.Clients
	m.Clients = c
	Focus(ctx, c)
	Arrange(ctx, m)

	log.WithField("window", c.Window).Debug("zoom")
}

func firstTiled(m *Monitor) *Client {
	for c := m.Clients; c != nil; c = c.Next {
		if c.Visible() && !c.IsFloating {
			return c
		}
	}
	return nil
}

func nextTiled(c *Client) *Client {
	for n := c.Next; n != nil; n = n.Next {
		if n.Visible() && !n.IsFloating {
			return n
		}
	}
	return nil
}
