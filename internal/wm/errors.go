package wm

import (
	"github.com/jezek/xgb/xproto"

	log "github.com/sirupsen/logrus"
)

// classifyXError reports whether an asynchronous X error delivered through
// WaitForEvent is one of the races a redirecting WM expects constantly
// (BadWindow/BadMatch/BadDrawable against a client destroyed out from under
// a request) and should be swallowed rather than logged (spec §4.10).
func classifyXError(err error) bool {
	switch err.(type) {
	case xproto.WindowError, xproto.MatchError, xproto.DrawableError:
		return true
	default:
		return false
	}
}

// HandleXError silently swallows the routine races; anything else is an
// unrecoverable protocol-level failure (lost connection, server-side
// allocation failure) and the core has no way to keep its view of the X
// state consistent past it, so it is logged and the process terminates
// (spec §4.10, §7 kind 5).
func HandleXError(err error) {
	if classifyXError(err) {
		return
	}
	log.WithError(err).Fatal("fatal X error")
}
