package wm

import (
	"fmt"

	"github.com/jezek/xgb/xproto"

	"github.com/gowm/dwm/internal/common"

	log "github.com/sirupsen/logrus"
)

const motionMask = xproto.EventMaskPointerMotion | xproto.EventMaskButtonRelease | xproto.EventMaskButtonPress

// grabPointer grabs the pointer on root under cur (not confined to any
// window), for the duration of an interactive move/resize (spec §4.7).
func grabPointer(ctx *Context, cur xproto.Cursor) error {
	reply, err := xproto.GrabPointer(ctx.Conn, false, ctx.Root, motionMask,
		xproto.GrabModeAsync, xproto.GrabModeAsync, 0, cur, xproto.TimeCurrentTime).Reply()
	if err != nil {
		return err
	}
	if reply == nil {
		return fmt.Errorf("pointer grab: no reply")
	}
	if reply.Status != xproto.GrabStatusSuccess {
		return fmt.Errorf("pointer grab failed, status %v", reply.Status)
	}
	return nil
}

func ungrabPointer(ctx *Context) {
	_ = xproto.UngrabPointerChecked(ctx.Conn, xproto.TimeCurrentTime).Check()
}

// runMotionLoop pumps MotionNotify events to step until ButtonRelease,
// throttled to roughly 60Hz the way dwm's movemouse/resizemouse coalesce
// bursts of motion events (spec §4.7 "throttled to display refresh rate").
// Other event types seen during the grab (ConfigureRequest, etc.) are
// re-dispatched through the normal table so the rest of the WM keeps
// functioning while a drag is in progress.
func runMotionLoop(ctx *Context, step func(p common.Point) bool) {
	const frameInterval = 1000 / 60 // minimum milliseconds between handled motion events

	var lastTime xproto.Timestamp

	for {
		ev, err := ctx.Conn.WaitForEvent()
		if err != nil {
			HandleXError(err)
			continue
		}
		if ev == nil {
			continue
		}

		switch e := ev.(type) {
		case xproto.MotionNotifyEvent:
			if e.Time-lastTime < frameInterval {
				continue
			}
			lastTime = e.Time
			if !step(common.Point{X: int(e.RootX), Y: int(e.RootY)}) {
				return
			}
		case xproto.ButtonReleaseEvent:
			return
		default:
			Dispatch(ctx, ev)
		}
	}
}

// MoveMouse drives an interactive move of c: grabs the pointer under the
// move cursor, floats the client if it was tiled and displaced beyond the
// snap distance, tracks motion at a throttled rate, and reassigns c's
// monitor on release (spec §4.7).
func MoveMouse(ctx *Context, c *Client) {
	if c == nil || c.IsFullscreen {
		return
	}

	if err := grabPointer(ctx, ctx.Cursors.Move); err != nil {
		log.WithError(err).Warn("could not grab pointer for move")
		return
	}
	defer ungrabPointer(ctx)

	start := QueryPointer(ctx)
	ocx, ocy := c.X, c.Y
	wasFloating := c.IsFloating

	runMotionLoop(ctx, func(p common.Point) bool {
		dx, dy := p.X-start.X, p.Y-start.Y
		nx, ny := ocx+dx, ocy+dy

		if !c.IsFloating && (abs(dx) > common.Config.SnapPixels || abs(dy) > common.Config.SnapPixels) {
			c.IsFloating = true
		}

		if c.IsFloating {
			nx, ny = snapToEdges(c, nx, ny)
			c.X, c.Y = nx, ny
			ConfigureClient(ctx, c)
		}
		return true
	})

	finishInteraction(ctx, c, wasFloating)
}

// ResizeMouse drives an interactive resize of c: warps the pointer to the
// client's bottom-right corner, grabs under the resize cursor, tracks
// motion, floats a displaced tiled client, and reassigns monitor on release.
func ResizeMouse(ctx *Context, c *Client) {
	if c == nil || c.IsFullscreen {
		return
	}

	if err := grabPointer(ctx, ctx.Cursors.Resize); err != nil {
		log.WithError(err).Warn("could not grab pointer for resize")
		return
	}
	defer ungrabPointer(ctx)

	corner := common.Point{X: c.X + c.TotalWidth(), Y: c.Y + c.TotalHeight()}
	_ = xproto.WarpPointerChecked(ctx.Conn, 0, ctx.Root, 0, 0, 0, 0,
		int16(corner.X), int16(corner.Y)).Check()

	wasFloating := c.IsFloating

	runMotionLoop(ctx, func(p common.Point) bool {
		nw := common.MaxInt(p.X-c.X-2*c.BorderWidth, 1)
		nh := common.MaxInt(p.Y-c.Y-2*c.BorderWidth, 1)

		if !c.IsFloating && (nw != c.W || nh != c.H) {
			c.IsFloating = true
		}
		if c.IsFloating {
			ResizeClient(ctx, c, c.X, c.Y, nw, nh, true)
		}
		return true
	})

	// Size hints may have clamped the last requested size, so re-warp to
	// the client's actual final corner rather than wherever the pointer
	// drifted to mid-drag.
	corner = common.Point{X: c.X + c.TotalWidth(), Y: c.Y + c.TotalHeight()}
	_ = xproto.WarpPointerChecked(ctx.Conn, 0, ctx.Root, 0, 0, 0, 0,
		int16(corner.X), int16(corner.Y)).Check()

	finishInteraction(ctx, c, wasFloating)
}

func finishInteraction(ctx *Context, c *Client, wasFloating bool) {
	if mon := RectToMon(ctx, c.Geometry()); mon != c.Mon {
		Detach(c)
		DetachStack(c)
		c.Mon = mon
		c.Tags = mon.ActiveTags()
		Attach(c)
		AttachStack(c)
		ctx.SelMon = mon
	}
	if !wasFloating && c.IsFloating {
		Arrange(ctx, c.Mon)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// snapToEdges pulls a floating client's candidate position onto its
// monitor's work-area edges when within SnapPixels (spec §4.7 "snap to edge").
func snapToEdges(c *Client, x, y int) (int, int) {
	if c.Mon == nil {
		return x, y
	}
	snap := common.Config.SnapPixels
	wx, wy, ww, wh := c.Mon.Work.Pieces()

	if abs(x-wx) < snap {
		x = wx
	} else if abs(x+c.TotalWidth()-(wx+ww)) < snap {
		x = wx + ww - c.TotalWidth()
	}
	if abs(y-wy) < snap {
		y = wy
	} else if abs(y+c.TotalHeight()-(wy+wh)) < snap {
		y = wy + wh - c.TotalHeight()
	}
	return x, y
}
