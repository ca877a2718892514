package wm

import (
	"github.com/jezek/xgb/xproto"

	"github.com/gowm/dwm/internal/common"
)

// Region identifies which part of the screen a ButtonPress landed on, so
// click-to-focus and the interactive move/resize bindings can be scoped to
// the client area versus bar/root (spec §4.1 ButtonPress contract).
type Region int

const (
	RegionRoot Region = iota
	RegionBar
	RegionClient
)

// ButtonAction is invoked on a matching ButtonPress for the client (may be
// nil for root/bar regions) under the pointer.
type ButtonAction func(ctx *Context, c *Client, arg interface{})

// Button is one mouse binding: the region it applies in, a modifier mask, a
// button number, an action and its static argument.
type Button struct {
	Region Region
	Mod    uint16
	Button xproto.Button
	Fn     ButtonAction
	Arg    interface{}
}

// GrabButtons ungrabs everything on the client window w, grabs any button
// for click-to-focus while w is not focused, then grabs every client-region
// binding under each lock-mask variant. It is called from Manage and on
// focus changes (the core doesn't reparent into frames).
func GrabButtons(ctx *Context, w xproto.Window, focused bool) {
	_ = xproto.UngrabButtonChecked(ctx.Conn, xproto.ButtonIndexAny, w, xproto.ModMaskAny).Check()

	if !focused {
		_ = xproto.GrabButtonChecked(ctx.Conn, false, w,
			uint16(xproto.EventMaskButtonPress),
			xproto.GrabModeSync, xproto.GrabModeSync, 0, 0,
			xproto.ButtonIndexAny, xproto.ModMaskAny).Check()
	}

	for _, b := range Buttons {
		if b.Region != RegionClient {
			continue
		}
		for _, lock := range ctx.lockMasks() {
			_ = xproto.GrabButtonChecked(ctx.Conn, false, w,
				uint16(xproto.EventMaskButtonPress),
				xproto.GrabModeAsync, xproto.GrabModeAsync, 0, 0,
				b.Button, b.Mod|lock).Check()
		}
	}
}

// DispatchButtonPress resolves the region under ev (root, bar, or client)
// and invokes the first matching binding's action.
func DispatchButtonPress(ctx *Context, ev xproto.ButtonPressEvent) {
	var c *Client
	region := RegionRoot

	if ev.Event == ctx.Root {
		region = RegionRoot
	} else if barOwner(ctx, ev.Event) != nil {
		region = RegionBar
	} else if c = WinToClient(ctx, ev.Event); c != nil {
		region = RegionClient
		if ctx.SelMon.Selected != c {
			Focus(ctx, c)
			Restack(ctx, ctx.SelMon)
		}
	}

	state := common.CleanModMask(ev.State, ctx.NumLockMask, relevantMods)
	for _, b := range Buttons {
		if b.Region != region || b.Button != ev.Detail || b.Mod != state {
			continue
		}
		b.Fn(ctx, c, b.Arg)
		return
	}
	_ = xproto.AllowEventsChecked(ctx.Conn, xproto.AllowReplayPointer, xproto.TimeCurrentTime).Check()
}

func barOwner(ctx *Context, w xproto.Window) *Monitor {
	for m := ctx.Mons; m != nil; m = m.Next {
		if m.BarWindow == w {
			return m
		}
	}
	return nil
}
