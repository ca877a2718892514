package wm

import (
	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil/keybind"

	"github.com/gowm/dwm/internal/common"

	log "github.com/sirupsen/logrus"
)

const relevantMods = 0xff

// KeyAction is invoked on a matching KeyPress. arg carries the binding's
// static argument (a tag mask, a direction, a command line) cast by the
// action itself.
type KeyAction func(ctx *Context, arg interface{})

// Key is one keybinding: a modifier mask, a keysym name (resolved through
// xgbutil/keybind, grounded on the raw GetKeyboardMapping scan the teacher's
// sibling port performs by hand — other_examples/ad0f36b0_driusan-dewm),
// an action and its static argument.
type Key struct {
	Mod   uint16
	Sym   string
	Fn    KeyAction
	Arg   interface{}
}

// UpdateNumLockMask asks xgbutil/keybind which modifier bit the server has
// bound to Num_Lock, so grabs can be duplicated with that bit (and
// CapsLock) masked out (dwm's classic updatenumlockmask, via keybind's
// GetModifierMapping-backed helper instead of a hand-rolled scan).
func UpdateNumLockMask(ctx *Context) {
	ctx.NumLockMask = keybind.NumLockMask(ctx.XU)
}

// lockMasks enumerates the modifier-bit combinations that should be ignored
// when matching a binding: none, NumLock, CapsLock (LockMask), and both
// together (spec §4.1: "state is normalized by masking out NumLock/CapsLock
// before comparison").
func (ctx *Context) lockMasks() []uint16 {
	return []uint16{0, xproto.ModMaskLock, ctx.NumLockMask, ctx.NumLockMask | xproto.ModMaskLock}
}

// GrabKeys ungrabs everything on root then regrabs every configured binding
// under each lock-mask variant. Called at startup and again on MappingNotify
// (spec §4.1 MappingNotify contract).
func GrabKeys(ctx *Context) {
	_ = xproto.UngrabKeyChecked(ctx.Conn, xproto.GrabAny, ctx.Root, xproto.ModMaskAny).Check()

	for _, k := range Keys {
		keysym := keybind.StrToKeysym(k.Sym)
		if keysym == 0 {
			log.WithField("sym", k.Sym).Warn("unresolvable keysym in binding table")
			continue
		}
		code := keybind.KeysymToKeycode(ctx.XU, keysym)
		if code == 0 {
			continue
		}
		for _, lock := range ctx.lockMasks() {
			_ = xproto.GrabKeyChecked(ctx.Conn, true, ctx.Root, k.Mod|lock, code,
				xproto.GrabModeAsync, xproto.GrabModeAsync).Check()
		}
	}
}

// DispatchKeyPress resolves a KeyPress to a keysym and invokes the first
// matching binding's action, masking NumLock/CapsLock out of the event
// state before comparing (spec §4.1).
func DispatchKeyPress(ctx *Context, ev xproto.KeyPressEvent) {
	keysym := keybind.KeysymGet(ctx.XU, ev.Detail, 0)
	state := common.CleanModMask(ev.State, ctx.NumLockMask, relevantMods)

	for _, k := range Keys {
		if keybind.StrToKeysym(k.Sym) == keysym && k.Mod == state {
			k.Fn(ctx, k.Arg)
			return
		}
	}
}
