package wm

import (
	"fmt"
	"sort"

	"github.com/jezek/xgb/xinerama"
	"github.com/jezek/xgb/xproto"

	"github.com/jezek/xgbutil/ewmh"
	"github.com/jezek/xgbutil/xrect"

	"github.com/gowm/dwm/internal/common"

	log "github.com/sirupsen/logrus"
)

// Monitor is one unique screen rectangle, carrying its own tagsets, master
// fraction and client lists (spec.md §3).
type Monitor struct {
	Num int

	Screen common.Geometry // full screen rectangle
	Work   common.Geometry // screen minus bar band

	BarY, BarHeight int
	BarWindow       xproto.Window
	TrayWindow      xproto.Window

	Mfact   float64
	NMaster int
	Gap     int

	TagSet   [2]uint32
	SelTags  int // index into TagSet of the active slot

	Clients  *Client // arrangement list head
	Stack    *Client // focus stack head
	Selected *Client

	Next *Monitor
}

func NewMonitor(num int, screen common.Geometry) *Monitor {
	return &Monitor{
		Num:    num,
		Screen: screen,
		Work:   screen,
		Mfact:  common.Config.Mfact,
		NMaster: common.Config.NMaster,
		Gap:    common.Config.GapPixels,
		TagSet: [2]uint32{1, 1},
	}
}

func (m *Monitor) ActiveTags() uint32 {
	return m.TagSet[m.SelTags]
}

// recomputeWork subtracts the bar band from the screen rectangle (spec §3
// Monitor invariant: work area = screen minus bar).
func (m *Monitor) recomputeWork() {
	m.Work = m.Screen
	if m.BarHeight == 0 {
		return
	}
	if m.BarY <= m.Screen.Y {
		m.Work.Y = m.Screen.Y + m.BarHeight
		m.Work.Height = m.Screen.Height - m.BarHeight
	} else {
		m.Work.Height = m.Screen.Height - m.BarHeight
	}
}

// SetBar records the external bar's reserved band and re-derives Work.
func (m *Monitor) SetBar(win xproto.Window, y, height int) {
	m.BarWindow = win
	m.BarY = y
	m.BarHeight = height
	m.recomputeWork()
}

// refineStrut narrows m.Work using the bar window's published
// _NET_WM_STRUT_PARTIAL, the way the teacher derives desktop geometry from
// every panel window's strut (store/root.go, "Get margins of desktop
// panels"). Falls back silently to the plain bar-band subtraction already
// applied by recomputeWork when the bar hasn't published a strut.
func (m *Monitor) refineStrut(ctx *Context) {
	if m.BarWindow == 0 {
		return
	}
	strut, err := ewmh.WmStrutPartialGet(ctx.XU, m.BarWindow)
	if err != nil {
		return
	}
	rects := []xrect.Rect{xrect.New(m.Screen.X, m.Screen.Y, m.Screen.Width, m.Screen.Height)}
	xrect.ApplyStrut(rects, uint(m.Screen.Width), uint(m.Screen.Height),
		strut.Left, strut.Right, strut.Top, strut.Bottom,
		strut.LeftStartY, strut.LeftEndY, strut.RightStartY, strut.RightEndY,
		strut.TopStartX, strut.TopEndX, strut.BottomStartX, strut.BottomEndX,
	)
	r := rects[0]
	m.Work = common.CreateGeometry(r.X(), r.Y(), int(r.Width()), int(r.Height()))
}

func (m *Monitor) ClearBar() {
	m.BarWindow = 0
	m.BarHeight = 0
	m.recomputeWork()
}

// --- client registry: attach/detach primitives (spec.md §4.2) ---

// Attach inserts c at the head of m's arrangement list.
func Attach(c *Client) {
	c.Next = c.Mon.Clients
	c.Mon.Clients = c
}

// Detach splices c out of its monitor's arrangement list.
func Detach(c *Client) {
	pp := &c.Mon.Clients
	for *pp != nil && *pp != c {
		pp = &(*pp).Next
	}
	if *pp == c {
		*pp = c.Next
	}
	c.Next = nil
}

// AttachStack inserts c at the head of m's focus stack.
func AttachStack(c *Client) {
	c.SNext = c.Mon.Stack
	c.Mon.Stack = c
}

// DetachStack splices c out of its monitor's focus stack and, if c was the
// monitor's selection, promotes the topmost remaining visible client.
func DetachStack(c *Client) {
	pp := &c.Mon.Stack
	for *pp != nil && *pp != c {
		pp = &(*pp).SNext
	}
	if *pp == c {
		*pp = c.SNext
	}
	c.SNext = nil

	if c == c.Mon.Selected {
		t := c.Mon.Stack
		for t != nil && !t.Visible() {
			t = t.SNext
		}
		c.Mon.Selected = t
	}
}

// ForEachClient walks m's arrangement list.
func (m *Monitor) ForEachClient(fn func(*Client)) {
	for c := m.Clients; c != nil; c = c.Next {
		fn(c)
	}
}

// ForEachStack walks m's focus stack.
func (m *Monitor) ForEachStack(fn func(*Client)) {
	for c := m.Stack; c != nil; c = c.SNext {
		fn(c)
	}
}

// VisibleClients returns tiled-and-floating clients currently visible on m,
// in arrangement order.
func (m *Monitor) VisibleClients() []*Client {
	var out []*Client
	m.ForEachClient(func(c *Client) {
		if c.Visible() {
			out = append(out, c)
		}
	})
	return out
}

// --- monitor registry / geometry (spec.md §4.3) ---

// RectToMon maps a rectangle to the monitor maximizing intersection area,
// defaulting to sel on ties or zero overlap.
func RectToMon(ctx *Context, g common.Geometry) *Monitor {
	best := ctx.SelMon
	bestArea := 0
	for m := ctx.Mons; m != nil; m = m.Next {
		area := g.IntersectArea(m.Screen)
		if area > bestArea || (area > 0 && area == bestArea && m == ctx.SelMon) {
			bestArea = area
			best = m
		}
	}
	return best
}

// WinToMon maps a window to the monitor that owns it: a managed client's
// monitor, a bar/tray window's monitor, or (for the root / unmanaged
// windows) the monitor under the pointer.
func WinToMon(ctx *Context, w xproto.Window) *Monitor {
	if w == ctx.Root {
		p := QueryPointer(ctx)
		return RectToMon(ctx, common.CreateGeometry(p.X, p.Y, 1, 1))
	}
	for m := ctx.Mons; m != nil; m = m.Next {
		if m.BarWindow == w || m.TrayWindow == w {
			return m
		}
	}
	if c := WinToClient(ctx, w); c != nil {
		return c.Mon
	}
	return ctx.SelMon
}

func WinToClient(ctx *Context, w xproto.Window) *Client {
	if w == 0 {
		return nil
	}
	for m := ctx.Mons; m != nil; m = m.Next {
		for c := m.Clients; c != nil; c = c.Next {
			if c.Window == w {
				return c
			}
		}
	}
	return nil
}

// uniqueHeads deduplicates Xinerama screens by identical geometry.
func uniqueHeads(infos []xinerama.ScreenInfo) []common.Geometry {
	var out []common.Geometry
	for _, si := range infos {
		g := common.CreateGeometry(int(si.XOrg), int(si.YOrg), int(si.Width), int(si.Height))
		dup := false
		for _, u := range out {
			if u == g {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].X < out[j].X })
	return out
}

// UpdateGeometry re-runs Xinerama discovery, appends/removes monitors to
// match the unique screen count, migrates orphaned clients to the head
// monitor, and marks changed monitors dirty so the caller re-arranges them.
// Mirrors spec.md §4.3 and the end-to-end scenario in §8.6.
func UpdateGeometry(ctx *Context) (dirty []*Monitor) {
	heads := QueryXinerama(ctx)
	if len(heads) == 0 {
		heads = []common.Geometry{common.CreateGeometry(0, 0, ctx.ScreenWidth, ctx.ScreenHeight)}
	}

	existing := monitorCount(ctx)

	if len(heads) > existing {
		// Append new monitors for the extra unique screens.
		tail := lastMonitor(ctx)
		for i := existing; i < len(heads); i++ {
			m := NewMonitor(i, heads[i])
			if tail == nil {
				ctx.Mons = m
			} else {
				tail.Next = m
			}
			tail = m
			dirty = append(dirty, m)
		}
	} else if len(heads) < existing {
		// Remove surplus monitors from the tail; migrate their clients to
		// the head monitor, re-attaching to its arrangement/focus lists.
		for monitorCount(ctx) > common.MaxInt(len(heads), 1) {
			last := lastMonitor(ctx)
			if last == nil || last == ctx.Mons {
				break
			}
			migrateClients(ctx, last, ctx.Mons)
			removeMonitor(ctx, last)
			dirty = append(dirty, ctx.Mons)
		}
	}

	// Update geometry for whatever monitors remain; mark changed ones dirty.
	i := 0
	for m := ctx.Mons; m != nil && i < len(heads); m, i = m.Next, i+1 {
		if m.Screen != heads[i] {
			m.Screen = heads[i]
			m.recomputeWork()
			dirty = append(dirty, m)
		}
	}

	if ctx.SelMon == nil {
		ctx.SelMon = ctx.Mons
	}

	return dirty
}

func monitorCount(ctx *Context) int {
	n := 0
	for m := ctx.Mons; m != nil; m = m.Next {
		n++
	}
	return n
}

func lastMonitor(ctx *Context) *Monitor {
	m := ctx.Mons
	if m == nil {
		return nil
	}
	for m.Next != nil {
		m = m.Next
	}
	return m
}

func removeMonitor(ctx *Context, target *Monitor) {
	if ctx.Mons == target {
		ctx.Mons = target.Next
		return
	}
	for m := ctx.Mons; m != nil; m = m.Next {
		if m.Next == target {
			m.Next = target.Next
			return
		}
	}
}

// migrateClients moves every client of src to dst, preserving tag bitmasks,
// and makes dst the selected monitor if src was. It does not call Focus;
// dst keeps its previous selection.
func migrateClients(ctx *Context, src, dst *Monitor) {
	for c := src.Clients; c != nil; {
		next := c.Next
		Detach(c)
		DetachStack(c)
		c.Mon = dst
		Attach(c)
		AttachStack(c)
		c = next
	}
	if ctx.SelMon == src {
		ctx.SelMon = dst
	}
	log.WithFields(log.Fields{"from": src.Num, "to": dst.Num}).Info("monitor removed, clients migrated")
}

func (m *Monitor) String() string {
	return fmt.Sprintf("monitor(%d, %dx%d+%d+%d)", m.Num, m.Screen.Width, m.Screen.Height, m.Screen.X, m.Screen.Y)
}
