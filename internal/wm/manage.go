package wm

import (
	"github.com/jezek/xgb/xproto"

	"github.com/jezek/xgbutil/ewmh"
	"github.com/jezek/xgbutil/icccm"
	"github.com/jezek/xgbutil/motif"
	"github.com/jezek/xgbutil/xwindow"

	"github.com/gowm/dwm/internal/common"

	log "github.com/sirupsen/logrus"
)

// Manage creates a Client for a newly mapped, non-override-redirect window,
// applies rules, attaches it to its monitor's lists, and arranges (spec
// §3 Client lifecycle, §4.2 invariant preservation rule). wa is the
// window's attributes as returned by the MapRequest-time GetWindowAttributes
// call and is not read here; geom seeds the initial geometry.
func Manage(ctx *Context, w xproto.Window, wa *xproto.GetWindowAttributesReply, geom *xproto.GetGeometryReply) *Client {
	if isAltBar(ctx, w) && geom != nil {
		m := RectToMon(ctx, common.CreateGeometry(int(geom.X), int(geom.Y), int(geom.Width), int(geom.Height)))
		m.SetBar(w, int(geom.Y), int(geom.Height))
		m.refineStrut(ctx)
		_ = xproto.ChangeWindowAttributesChecked(ctx.Conn, w, xproto.CwEventMask,
			[]uint32{uint32(xproto.EventMaskStructureNotify)}).Check()
		Arrange(ctx, m)
		log.WithFields(log.Fields{"window": w, "monitor": m.Num}).Info("bar window recognized")
		return nil
	}

	c := &Client{
		Window:      w,
		BorderWidth: common.Config.BorderWidth,
	}

	if geom != nil {
		c.X, c.Y, c.W, c.H = int(geom.X), int(geom.Y), int(geom.Width), int(geom.Height)
		c.OldBW = int(geom.BorderWidth)
	} else if r, err := xwindow.RawGeometry(ctx.XU, xproto.Drawable(w)); err == nil && r != nil {
		// MapRequest sometimes races GetGeometry; fall back to the same
		// raw-geometry helper the teacher uses for its own manage-time
		// geometry read (store/client.go GetInfo).
		c.X, c.Y, c.W, c.H = r.X(), r.Y(), r.Width(), r.Height()
	}
	c.SaveOld()

	c.Mon = ctx.SelMon
	c.Tags = c.Mon.ActiveTags()

	if name, err := icccm.WmNameGet(ctx.XU, w); err == nil {
		c.Name = common.TrimTitle(name)
	}

	// Transient-for promotes to floating and inherits the parent's monitor
	// and tags (spec §4.1 PropertyNotify WM_TRANSIENT_FOR contract, applied
	// here at manage time too since a dialog may already be transient on map).
	if trans, err := icccm.WmTransientForGet(ctx.XU, w); err == nil && trans != 0 {
		if pc := WinToClient(ctx, trans); pc != nil {
			c.Mon = pc.Mon
			c.Tags = pc.Tags
			c.IsFloating = true
		}
	}

	c.UpdateSizeHints(ctx)
	updateWMHints(ctx, c)
	ApplyRules(ctx, c)
	updateWindowType(ctx, c)

	c.X = common.ClampInt(c.X, c.Mon.Work.X, c.Mon.Work.Right()-c.TotalWidth())
	c.Y = common.ClampInt(c.Y, c.Mon.Work.Y, c.Mon.Work.Bottom()-c.TotalHeight())

	updateDecorations(ctx, c, c.IsFloating)

	_ = xproto.ConfigureWindowChecked(ctx.Conn, w, xproto.ConfigWindowBorderWidth,
		[]uint32{uint32(c.BorderWidth)}).Check()
	SetBorder(ctx, c, false)
	ConfigureClient(ctx, c)

	_ = xproto.ChangeWindowAttributesChecked(ctx.Conn, w, xproto.CwEventMask, []uint32{
		uint32(xproto.EventMaskEnterWindow | xproto.EventMaskFocusChange |
			xproto.EventMaskPropertyChange | xproto.EventMaskStructureNotify),
	}).Check()
	GrabButtons(ctx, w, false)

	Attach(c)
	AttachStack(c)

	_ = xproto.MapWindowChecked(ctx.Conn, w).Check()
	SetWMState(ctx, w, WMStateNormal)

	if c.IsFullscreen {
		// updatewindowtype may have already requested fullscreen during
		// manage; apply it only now that c is attached (source hazard noted
		// in spec §9: ordering must have the client in its lists first).
		SetFullscreen(ctx, c, true)
	}

	UpdateClientList(ctx)
	Arrange(ctx, c.Mon)
	Focus(ctx, c)

	log.WithFields(log.Fields{"window": w, "class": c.Name, "floating": c.IsFloating}).Info("managed client")

	return c
}

// Unmanage destroys the bookkeeping for c: detaches it from both lists,
// restores WM_STATE to Withdrawn (unless destroyed is true, in which case
// the window is already gone), re-derives focus and re-arranges.
func Unmanage(ctx *Context, c *Client, destroyed bool) {
	m := c.Mon

	Detach(c)
	DetachStack(c)

	if !destroyed {
		_ = xproto.UngrabServerChecked(ctx.Conn).Check()
		SetWMState(ctx, c.Window, WMStateWithdrawn)
	}

	UpdateClientList(ctx)
	Focus(ctx, nil)
	Arrange(ctx, m)

	log.WithFields(log.Fields{"window": c.Window, "class": c.Name}).Info("unmanaged client")
}

// updateDecorations toggles a client's own title bar/border via its Motif
// WM hints: floating clients keep their native decorations, tiled clients
// drop them since this core draws its own border (teacher: store/client.go
// restoreDecorations/removeDecorations via motif.WmHintsSet).
func updateDecorations(ctx *Context, c *Client, enabled bool) {
	hints, err := motif.WmHintsGet(ctx.XU, c.Window)
	if err != nil || hints == nil {
		hints = &motif.Hints{}
	}
	hints.Flags |= motif.HintDecorations
	if enabled {
		hints.Decoration = motif.DecorationAll
	} else {
		hints.Decoration = motif.DecorationNone
	}
	_ = motif.WmHintsSet(ctx.XU, c.Window, hints)
}

// isAltBar reports whether w's WM_CLASS matches common.Config.AltBarClass,
// the configured external status bar (spec §6 "External status bar"):
// recognized windows are excluded from tiling and carve out work area
// instead, the way dwm's own statusbar never enters the client list.
func isAltBar(ctx *Context, w xproto.Window) bool {
	if common.Config.AltBarClass == "" {
		return false
	}
	wc, err := icccm.WmClassGet(ctx.XU, w)
	return err == nil && wc != nil && wc.Class == common.Config.AltBarClass
}

func updateWMHints(ctx *Context, c *Client) {
	hints, err := icccm.WmHintsGet(ctx.XU, c.Window)
	if err != nil {
		return
	}
	if ctx.SelMon != nil && ctx.SelMon.Selected == c && hints.Flags&icccm.HintUrgency != 0 {
		hints.Flags &^= icccm.HintUrgency
		_ = icccm.WmHintsSet(ctx.XU, c.Window, hints)
	} else {
		c.IsUrgent = hints.Flags&icccm.HintUrgency != 0
	}
	if hints.Flags&icccm.HintInput != 0 {
		c.NeverFocus = hints.Input == 0
	}
}

// updateTransient re-reads WM_TRANSIENT_FOR on a live PropertyNotify and
// promotes c to floating if it now names a managed parent, mirroring the
// manage-time transient check above for windows that set the property after
// mapping (spec §4.1 PropertyNotify WM_TRANSIENT_FOR contract). Returns
// whether c's floating state changed.
func updateTransient(ctx *Context, c *Client) bool {
	trans, err := icccm.WmTransientForGet(ctx.XU, c.Window)
	if err != nil || trans == 0 {
		return false
	}
	if pc := WinToClient(ctx, trans); pc != nil && !c.IsFloating {
		c.IsFloating = true
		return true
	}
	return false
}

// updateWindowType reads _NET_WM_WINDOW_TYPE: dialogs float, and fullscreen
// types (or an existing _NET_WM_STATE_FULLSCREEN) enter fullscreen.
func updateWindowType(ctx *Context, c *Client) {
	state, _ := ewmh.WmStateGet(ctx.XU, c.Window)
	wtype, _ := ewmh.WmWindowTypeGet(ctx.XU, c.Window)

	for _, s := range state {
		if s == "_NET_WM_STATE_FULLSCREEN" {
			c.IsFullscreen = true
		}
	}
	for _, t := range wtype {
		if t == "_NET_WM_WINDOW_TYPE_DIALOG" {
			c.IsFloating = true
		}
	}
}

// SetFullscreen implements spec §4.8. Entering sets the EWMH state, saves
// floating/border state, zeros the border, floats, resizes to the
// monitor's screen rectangle (not work area) and raises. Leaving restores
// the saved state and geometry and re-arranges.
func SetFullscreen(ctx *Context, c *Client, fullscreen bool) {
	if fullscreen && !c.IsFullscreen {
		_ = ewmh.WmStateReq(ctx.XU, c.Window, ewmh.StateAdd, "_NET_WM_STATE_FULLSCREEN")
		c.IsFullscreen = true
		c.WasFloating = c.IsFloating
		c.SaveOld()
		c.BorderWidth = 0
		c.IsFloating = true
		resizeClient(ctx, c, c.Mon.Screen.X, c.Mon.Screen.Y, c.Mon.Screen.Width, c.Mon.Screen.Height, true)
		RaiseWindow(ctx, c.Window)
	} else if !fullscreen && c.IsFullscreen {
		_ = ewmh.WmStateReq(ctx.XU, c.Window, ewmh.StateRemove, "_NET_WM_STATE_FULLSCREEN")
		c.IsFullscreen = false
		c.IsFloating = c.WasFloating
		c.BorderWidth = c.OldBW
		resizeClient(ctx, c, c.OldX, c.OldY, c.OldW, c.OldH, false)
		Arrange(ctx, c.Mon)
	}
}

// ToggleFullscreen flips c's fullscreen state through SetFullscreen.
// common.Config.LockFullscreen is not consulted.
func ToggleFullscreen(ctx *Context, c *Client) {
	if c == nil {
		return
	}
	SetFullscreen(ctx, c, !c.IsFullscreen)
}

// ToggleFloating is a no-op on fullscreen clients (spec §4.8).
func ToggleFloating(ctx *Context, c *Client) {
	if c == nil || c.IsFullscreen {
		return
	}
	c.IsFloating = !c.IsFloating
	if c.IsFloating {
		c.X, c.Y, c.W, c.H = c.OldX, c.OldY, c.OldW, c.OldH
	} else {
		c.SaveOld()
	}
	updateDecorations(ctx, c, c.IsFloating)
	Arrange(ctx, c.Mon)
}

// Scan discovers already-mapped top-level windows at startup (spec §3
// Client lifecycle: "discovered at startup by scan").
func Scan(ctx *Context) {
	tree, err := xproto.QueryTree(ctx.Conn, ctx.Root).Reply()
	if err != nil || tree == nil {
		return
	}
	for _, w := range tree.Children {
		wa, err := xproto.GetWindowAttributes(ctx.Conn, w).Reply()
		if err != nil || wa == nil || wa.OverrideRedirect || wa.MapState != xproto.MapStateViewable {
			continue
		}
		geom, err := xproto.GetGeometry(ctx.Conn, xproto.Drawable(w)).Reply()
		if err != nil {
			continue
		}
		Manage(ctx, w, wa, geom)
	}
}
