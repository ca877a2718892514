package wm

import "github.com/gowm/dwm/internal/common"

// Arrange lays out m: visible tiled clients go through the master-stack
// algorithm, then the selection is restacked. Floating clients are not
// resized here and keep their geometry. A monitor with no clients is a
// no-op (spec §8 boundary behavior).
func Arrange(ctx *Context, m *Monitor) {
	if m == nil {
		return
	}
	Tile(ctx, m)
	Restack(ctx, m)
}

// Tile implements the master-stack algorithm with gaps (spec §4.5): the
// geometry math lives in computeTileLayout so it can be tested without a
// live X connection; Tile applies the result through resizeClient.
func Tile(ctx *Context, m *Monitor) {
	var tiled []*Client
	m.ForEachClient(func(c *Client) {
		if c.Visible() && !c.IsFloating && !c.IsFullscreen {
			tiled = append(tiled, c)
		}
	})
	if len(tiled) == 0 {
		return
	}

	geoms := computeTileLayout(m, tiled)
	for i, c := range tiled {
		g := geoms[i]
		resizeClient(ctx, c, g.X, g.Y, g.Width-2*c.BorderWidth, g.Height-2*c.BorderWidth, false)
	}
}

// computeTileLayout returns the outer (border-included) geometry each
// client in tiled should occupy: the first min(n, nmaster) clients stack
// vertically in the master column, the rest stack vertically in the
// remaining width (spec §4.5, boundary cases in spec §8: n<=nmaster gives
// full-width masters, nmaster==0 gives a zero-width master column).
func computeTileLayout(m *Monitor, tiled []*Client) []common.Geometry {
	n := len(tiled)
	out := make([]common.Geometry, n)

	gap := m.Gap
	wx, wy, ww, wh := m.Work.Pieces()
	wx += gap
	wy += gap
	ww -= 2 * gap
	wh -= 2 * gap

	nmaster := common.MaxInt(0, m.NMaster)

	masterWidth := ww
	switch {
	case nmaster == 0:
		masterWidth = 0
	case n > nmaster:
		masterWidth = int(float64(ww) * m.Mfact)
	}

	my, ty := 0, 0
	for i := range tiled {
		if i < nmaster {
			h := (wh-my)/(common.MinInt(n, nmaster)-i) - gap
			w := masterWidth
			if n > nmaster {
				// Only steal a gap's width from the master column when a
				// stack column actually exists alongside it.
				w -= gap
			}
			out[i] = common.CreateGeometry(wx, wy+my, w, h)
			my += h + gap
		} else {
			h := (wh-ty)/(n-i) - gap
			x, w := wx, ww
			if nmaster > 0 {
				x = wx + masterWidth
				w = ww - masterWidth - gap
			}
			out[i] = common.CreateGeometry(x, wy+ty, w, h)
			ty += h + gap
		}
	}
	return out
}

// resizeClient normalizes through ApplySizeHints then, if geometry actually
// changes (or interact forces it), issues the X ConfigureWindow request.
func resizeClient(ctx *Context, c *Client, x, y, w, h int, interact bool) {
	nx, ny, nw, nh, changed := ApplySizeHints(c, x, y, w, h, interact)
	if !changed {
		return
	}
	c.X, c.Y, c.W, c.H = nx, ny, nw, nh
	ConfigureClient(ctx, c)
}

// ResizeClient is the exported entry point interactive loops and commands
// use to move/resize a single client without going through the tiler.
func ResizeClient(ctx *Context, c *Client, x, y, w, h int, interact bool) {
	resizeClient(ctx, c, x, y, w, h, interact)
}
