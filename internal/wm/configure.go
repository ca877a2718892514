package wm

import (
	"github.com/jezek/xgb/xproto"

	"github.com/gowm/dwm/internal/common"
)

// ConfigureClient pushes c's current geometry to the X server and always
// follows up with a synthetic ConfigureNotify, since many clients only
// re-read extents/position on that event (ICCCM 4.1.5).
func ConfigureClient(ctx *Context, c *Client) {
	values := []uint32{
		uint32(c.X), uint32(c.Y), uint32(c.W), uint32(c.H), uint32(c.BorderWidth),
	}
	mask := uint16(xproto.ConfigWindowX | xproto.ConfigWindowY |
		xproto.ConfigWindowWidth | xproto.ConfigWindowHeight | xproto.ConfigWindowBorderWidth)
	_ = xproto.ConfigureWindowChecked(ctx.Conn, c.Window, mask, values).Check()
	SendConfigureNotify(ctx, c)
}

// SendConfigureNotify synthesizes a ConfigureNotify telling the client its
// final on-screen geometry, per spec §4.1 ConfigureRequest contract.
func SendConfigureNotify(ctx *Context, c *Client) {
	ev := xproto.ConfigureNotifyEvent{
		Event:            c.Window,
		Window:           c.Window,
		AboveSibling:     0,
		X:                int16(c.X),
		Y:                int16(c.Y),
		Width:            uint16(c.W),
		Height:           uint16(c.H),
		BorderWidth:      uint16(c.BorderWidth),
		OverrideRedirect: false,
	}
	_ = xproto.SendEventChecked(ctx.Conn, false, c.Window, xproto.EventMaskStructureNotify, string(ev.Bytes())).Check()
}

// SetBorder paints c's border with the selected or normal color.
func SetBorder(ctx *Context, c *Client, selected bool) {
	color := common.Config.BorderColorNormal
	if selected {
		color = common.Config.BorderColorSelected
	}
	_ = xproto.ChangeWindowAttributesChecked(ctx.Conn, c.Window, xproto.CwBorderPixel, []uint32{color}).Check()
}
