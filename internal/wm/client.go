package wm

import (
	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil/icccm"

	"github.com/gowm/dwm/internal/common"
)

// Hints mirrors the ICCCM WM_NORMAL_HINTS fields a client can request,
// normalized the way icccm.NormalHints arrives off the wire (teacher:
// store/client.go Hints/GetInfo, icccm.WmNormalHintsGet).
type Hints struct {
	BaseWidth, BaseHeight   int
	MinWidth, MinHeight     int
	MaxWidth, MaxHeight     int
	IncWidth, IncHeight     int
	MinAspect, MaxAspect    float64
	HasAspect               bool
	HasMinMax, HasInc       bool
	HasBase                 bool
}

// Client is one managed top-level window. Field layout follows spec.md §3.
type Client struct {
	Window xproto.Window
	Name   string

	X, Y, W, H             int
	OldX, OldY, OldW, OldH int
	BorderWidth, OldBW     int

	Hints Hints

	IsFixed      bool
	IsFloating   bool
	IsUrgent     bool
	NeverFocus   bool
	IsFullscreen bool
	WasFloating  bool // saved floating state, restored on un-fullscreen

	Tags uint32

	Mon *Monitor

	Next  *Client // next in arrangement list
	SNext *Client // next in focus stack
}

// Visible reports whether c intersects its monitor's active tagset (spec §4.4).
func (c *Client) Visible() bool {
	return c != nil && c.Mon != nil && c.Tags&c.Mon.ActiveTags() != 0
}

// Width/Height including the border, as issued to ConfigureWindow.
func (c *Client) TotalWidth() int  { return c.W + 2*c.BorderWidth }
func (c *Client) TotalHeight() int { return c.H + 2*c.BorderWidth }

func (c *Client) Geometry() common.Geometry {
	return common.CreateGeometry(c.X, c.Y, c.W, c.H)
}

// SaveOld snapshots the current geometry into the Old* fields, used before
// entering fullscreen so leaving it can restore exactly (spec §4.8).
func (c *Client) SaveOld() {
	c.OldX, c.OldY, c.OldW, c.OldH = c.X, c.Y, c.W, c.H
	c.OldBW = c.BorderWidth
}

// hintsFromICCCM converts an icccm.NormalHints reply into our Hints struct.
func hintsFromICCCM(nh *icccm.NormalHints) Hints {
	h := Hints{}
	if nh == nil {
		return h
	}
	if nh.Flags&icccm.SizeHintPBaseSize != 0 {
		h.BaseWidth, h.BaseHeight = int(nh.BaseWidth), int(nh.BaseHeight)
		h.HasBase = true
	} else if nh.Flags&icccm.SizeHintPMinSize != 0 {
		h.BaseWidth, h.BaseHeight = int(nh.MinWidth), int(nh.MinHeight)
		h.HasBase = true
	}
	if nh.Flags&icccm.SizeHintPResizeInc != 0 {
		h.IncWidth, h.IncHeight = int(nh.WidthInc), int(nh.HeightInc)
		h.HasInc = true
	}
	if nh.Flags&icccm.SizeHintPMaxSize != 0 {
		h.MaxWidth, h.MaxHeight = int(nh.MaxWidth), int(nh.MaxHeight)
	}
	if nh.Flags&icccm.SizeHintPMinSize != 0 {
		h.MinWidth, h.MinHeight = int(nh.MinWidth), int(nh.MinHeight)
	} else if nh.Flags&icccm.SizeHintPBaseSize != 0 {
		h.MinWidth, h.MinHeight = int(nh.BaseWidth), int(nh.BaseHeight)
	}
	if nh.Flags&icccm.SizeHintPAspect != 0 && nh.MinAspectNum > 0 && nh.MaxAspectDen > 0 {
		h.MinAspect = float64(nh.MinAspectDen) / float64(nh.MinAspectNum)
		h.MaxAspect = float64(nh.MaxAspectNum) / float64(nh.MaxAspectDen)
		h.HasAspect = true
	}
	h.HasMinMax = h.MaxWidth > 0 || h.MaxHeight > 0
	return h
}

// UpdateSizeHints re-reads WM_NORMAL_HINTS and updates the fixed flag the
// way the teacher's GetInfo reads icccm.WmNormalHintsGet on every refresh.
func (c *Client) UpdateSizeHints(ctx *Context) {
	nh, err := icccm.WmNormalHintsGet(ctx.XU, c.Window)
	if err != nil {
		nh = &icccm.NormalHints{}
	}
	c.Hints = hintsFromICCCM(nh)
	c.IsFixed = c.Hints.HasMinMax && c.Hints.MaxWidth > 0 && c.Hints.MaxWidth == c.Hints.MinWidth &&
		c.Hints.MaxHeight > 0 && c.Hints.MaxHeight == c.Hints.MinHeight
	if c.IsFixed {
		c.IsFloating = true
	}
}

// ApplySizeHints normalizes a candidate geometry per spec §4.5: minimum
// bounds (height floored at the monitor's bar height, so a client can never
// shrink under the bar band), work-area clamping, then (if resizeHints or
// floating) ICCCM aspect/increment/base-size correction. Returns true if the
// result differs from the client's current geometry.
func ApplySizeHints(c *Client, x, y, w, h int, interact bool) (nx, ny, nw, nh int, changed bool) {
	nx, ny, nw, nh = x, y, w, h

	minH := 1
	if c.Mon != nil && c.Mon.BarHeight > minH {
		minH = c.Mon.BarHeight
	}

	if nw < 1 {
		nw = 1
	}
	if nh < minH {
		nh = minH
	}

	if c.Mon != nil {
		bounds := c.Mon.Screen
		if !interact {
			bounds = c.Mon.Work
		}
		if nx > bounds.Right() {
			nx = bounds.Right() - common.MaxInt(nw, 1)
		}
		if ny > bounds.Bottom() {
			ny = bounds.Bottom() - common.MaxInt(nh, 1)
		}
		if nx+nw+2*c.BorderWidth < bounds.X {
			nx = bounds.X
		}
		if ny+nh+2*c.BorderWidth < bounds.Y {
			ny = bounds.Y
		}
	}

	if nh < minH {
		nh = minH
	}
	if nw < 1 {
		nw = 1
	}

	if common.Config.ResizeHints || c.IsFloating {
		hi := c.Hints

		baseW, baseH := 0, 0
		if hi.HasBase {
			baseW, baseH = hi.BaseWidth, hi.BaseHeight
		}

		if hi.HasAspect {
			fw, fh := float64(nw-baseW), float64(nh-baseH)
			if hi.MinAspect > 0 && fh*hi.MinAspect > fw {
				fw = fh * hi.MinAspect
				nw = int(fw) + baseW
			} else if hi.MaxAspect > 0 && fw/hi.MaxAspect > fh {
				// guard divide-by-zero: MaxAspect is only trusted when > 0
				fh = fw / hi.MaxAspect
				nh = int(fh) + baseH
			}
		}

		if hi.HasInc {
			nw -= baseW
			nh -= baseH
			if hi.IncWidth > 0 {
				nw -= nw % hi.IncWidth
			}
			if hi.IncHeight > 0 {
				nh -= nh % hi.IncHeight
			}
			nw += baseW
			nh += baseH
		}

		if hi.MinWidth > 0 {
			nw = common.MaxInt(nw, hi.MinWidth)
		}
		if hi.MinHeight > 0 {
			nh = common.MaxInt(nh, hi.MinHeight)
		}
		if hi.HasMinMax {
			if hi.MaxWidth > 0 {
				nw = common.MinInt(nw, hi.MaxWidth)
			}
			if hi.MaxHeight > 0 {
				nh = common.MinInt(nh, hi.MaxHeight)
			}
		}
	}

	if nw < 1 {
		nw = 1
	}
	if nh < minH {
		nh = minH
	}

	changed = nx != c.X || ny != c.Y || nw != c.W || nh != c.H
	return
}
