package wm

import (
	"github.com/jezek/xgb/xproto"

	"github.com/gowm/dwm/internal/common"
)

// Action adapters give Keys/Buttons table entries a uniform KeyAction/
// ButtonAction signature over functions that take a tag mask, a direction,
// or nothing at all.

func tagMaskOf(i int) uint32 {
	if i < 0 || i >= len(common.Config.Tags) {
		return 0
	}
	return 1 << uint(i)
}

func viewTag(i int) KeyAction {
	return func(ctx *Context, _ interface{}) { View(ctx, ctx.SelMon, tagMaskOf(i)) }
}

func toggleViewTag(i int) KeyAction {
	return func(ctx *Context, _ interface{}) { ToggleView(ctx, ctx.SelMon, tagMaskOf(i)) }
}

func tagClient(i int) KeyAction {
	return func(ctx *Context, _ interface{}) { Tag(ctx, ctx.SelMon, tagMaskOf(i)) }
}

func toggleTagClient(i int) KeyAction {
	return func(ctx *Context, _ interface{}) { ToggleTag(ctx, ctx.SelMon, tagMaskOf(i)) }
}

// comboViewTag and comboTagClient reach ComboView/ComboTag's union semantics
// (spec §4.4 "Combo semantics", §4.9 combo state machine): holding Alt+Super
// down across consecutive tag-digit presses unions each tag into the
// view/selection instead of replacing it, ending on the next key/button
// release (ClearCombo, wired in events.go's onKeyRelease/onButtonRelease).
func comboViewTag(i int) KeyAction {
	return func(ctx *Context, _ interface{}) { ComboView(ctx, ctx.SelMon, tagMaskOf(i)) }
}

func comboTagClient(i int) KeyAction {
	return func(ctx *Context, _ interface{}) { ComboTag(ctx, ctx.SelMon, tagMaskOf(i)) }
}

func spawnAction(argv ...string) KeyAction {
	return func(ctx *Context, _ interface{}) {
		if len(argv) == 0 {
			return
		}
		Spawn(argv[0], argv[1:]...)
	}
}

func focusStack(dir int) KeyAction {
	return func(ctx *Context, _ interface{}) { FocusStack(ctx, dir) }
}

func killClient(ctx *Context, _ interface{}) {
	c := ctx.SelMon.Selected
	if c == nil {
		return
	}
	if !SendProtocol(ctx, c, ctx.Atoms.WMDelete) {
		_ = xproto.KillClientChecked(ctx.Conn, uint32(c.Window)).Check()
	}
}

func zoomAction(ctx *Context, _ interface{}) { Zoom(ctx, ctx.SelMon) }

func toggleFloatingAction(ctx *Context, _ interface{}) { ToggleFloating(ctx, ctx.SelMon.Selected) }

func toggleFullscreenAction(ctx *Context, _ interface{}) { ToggleFullscreen(ctx, ctx.SelMon.Selected) }

func quitAction(ctx *Context, _ interface{}) { Quit(ctx) }

func incMasterAction(delta int) KeyAction {
	return func(ctx *Context, _ interface{}) {
		m := ctx.SelMon
		m.NMaster = common.MaxInt(m.NMaster+delta, 0)
		Arrange(ctx, m)
	}
}

func incMfactAction(delta float64) KeyAction {
	return func(ctx *Context, _ interface{}) {
		m := ctx.SelMon
		m.Mfact = common.ClampFloat(m.Mfact+delta, common.Config.MfactMin, common.Config.MfactMax)
		Arrange(ctx, m)
	}
}

func focusMonitor(dir int) KeyAction {
	return func(ctx *Context, _ interface{}) {
		next := ctx.SelMon.Next
		if next == nil {
			next = ctx.Mons
		}
		if dir < 0 {
			prev := ctx.Mons
			if prev == ctx.SelMon {
				for prev.Next != nil {
					prev = prev.Next
				}
			} else {
				for prev.Next != ctx.SelMon {
					prev = prev.Next
				}
			}
			next = prev
		}
		unfocus(ctx, ctx.SelMon.Selected, true)
		ctx.SelMon = next
		Focus(ctx, nil)
	}
}

func tagToMonitor(dir int) KeyAction {
	return func(ctx *Context, _ interface{}) {
		c := ctx.SelMon.Selected
		if c == nil || ctx.SelMon.Next == nil {
			return
		}
		target := ctx.SelMon.Next
		if dir < 0 {
			target = ctx.Mons
		}
		if target == c.Mon {
			return
		}
		Detach(c)
		DetachStack(c)
		c.Mon = target
		c.Tags = target.ActiveTags()
		Attach(c)
		AttachStack(c)
		Focus(ctx, nil)
		Arrange(ctx, ctx.SelMon)
		Arrange(ctx, target)
	}
}

func moveMouseAction(ctx *Context, _ interface{}) { MoveMouse(ctx, ctx.SelMon.Selected) }

func resizeMouseAction(ctx *Context, _ interface{}) { ResizeMouse(ctx, ctx.SelMon.Selected) }

// modKey is the primary modifier every binding below is built from
// (Mod1Mask / Alt, the teacher-agnostic dwm default).
const modKey = xproto.ModMask1

// Keys is the compile-time keybinding table. Numeric-tag bindings (1..9,
// or fewer if common.Config.Tags is shorter) are generated for every
// configured tag.
var Keys = buildKeys()

// Buttons is the compile-time mouse-binding table.
var Buttons = []Button{
	{Region: RegionClient, Mod: modKey, Button: xproto.ButtonIndex1, Fn: func(ctx *Context, c *Client, _ interface{}) { MoveMouse(ctx, c) }},
	{Region: RegionClient, Mod: modKey, Button: xproto.ButtonIndex2, Fn: func(ctx *Context, c *Client, _ interface{}) { ToggleFloating(ctx, c) }},
	{Region: RegionClient, Mod: modKey, Button: xproto.ButtonIndex3, Fn: func(ctx *Context, c *Client, _ interface{}) { ResizeMouse(ctx, c) }},
}

func buildKeys() []Key {
	keys := []Key{
		{Mod: modKey, Sym: "Return", Fn: spawnAction("xterm")},
		{Mod: modKey, Sym: "p", Fn: spawnAction("dmenu_run")},
		{Mod: modKey, Sym: "j", Fn: focusStack(1)},
		{Mod: modKey, Sym: "k", Fn: focusStack(-1)},
		{Mod: modKey, Sym: "i", Fn: incMasterAction(1)},
		{Mod: modKey, Sym: "d", Fn: incMasterAction(-1)},
		{Mod: modKey, Sym: "h", Fn: incMfactAction(-0.05)},
		{Mod: modKey, Sym: "l", Fn: incMfactAction(0.05)},
		{Mod: modKey | xproto.ModMaskShift, Sym: "Return", Fn: zoomAction},
		{Mod: modKey | xproto.ModMaskShift, Sym: "c", Fn: killClient},
		{Mod: modKey | xproto.ModMaskShift, Sym: "space", Fn: toggleFloatingAction},
		{Mod: modKey, Sym: "f", Fn: toggleFullscreenAction},
		{Mod: modKey | xproto.ModMaskShift, Sym: "q", Fn: quitAction},
		{Mod: modKey, Sym: "comma", Fn: focusMonitor(-1)},
		{Mod: modKey, Sym: "period", Fn: focusMonitor(1)},
		{Mod: modKey | xproto.ModMaskShift, Sym: "comma", Fn: tagToMonitor(-1)},
		{Mod: modKey | xproto.ModMaskShift, Sym: "period", Fn: tagToMonitor(1)},
	}

	digits := []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}
	for i := range common.Config.Tags {
		if i >= len(digits) {
			break
		}
		keys = append(keys,
			Key{Mod: modKey, Sym: digits[i], Fn: viewTag(i)},
			Key{Mod: modKey | xproto.ModMaskControl, Sym: digits[i], Fn: toggleViewTag(i)},
			Key{Mod: modKey | xproto.ModMaskShift, Sym: digits[i], Fn: tagClient(i)},
			Key{Mod: modKey | xproto.ModMaskControl | xproto.ModMaskShift, Sym: digits[i], Fn: toggleTagClient(i)},
			Key{Mod: modKey | xproto.ModMask4, Sym: digits[i], Fn: comboViewTag(i)},
			Key{Mod: modKey | xproto.ModMask4 | xproto.ModMaskShift, Sym: digits[i], Fn: comboTagClient(i)},
		)
	}
	return keys
}
