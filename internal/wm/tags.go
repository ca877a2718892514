package wm

import "github.com/gowm/dwm/internal/common"

// View toggles the active tagset slot and, if mask is nonzero, assigns mask
// to the newly active slot — giving a depth-1 "previous view" history
// (spec §4.4). Calling View with the currently active mask is defined as a
// no-op by the law in spec §8.
func View(ctx *Context, m *Monitor, mask uint32) {
	if !applyView(m, mask) {
		return
	}
	AfterTagChange(ctx, m)
}

// applyView is the pure tagset mutation behind View, split out so the
// bitmask transition can be exercised without a live X connection.
func applyView(m *Monitor, mask uint32) bool {
	if mask == m.ActiveTags() {
		return false
	}
	m.SelTags ^= 1
	if mask != 0 {
		m.TagSet[m.SelTags] = mask
	}
	return true
}

// ToggleView XORs mask into the active tagset slot, refusing to produce an
// empty mask (spec §4.4).
func ToggleView(ctx *Context, m *Monitor, mask uint32) {
	if !applyToggleView(m, mask) {
		return
	}
	AfterTagChange(ctx, m)
}

func applyToggleView(m *Monitor, mask uint32) bool {
	next := m.TagSet[m.SelTags] ^ mask
	if next == 0 {
		return false
	}
	m.TagSet[m.SelTags] = next
	return true
}

// Tag assigns mask to the monitor's selected client (spec §4.4).
func Tag(ctx *Context, m *Monitor, mask uint32) {
	if !applyTag(m, mask) {
		return
	}
	AfterTagChange(ctx, m)
}

func applyTag(m *Monitor, mask uint32) bool {
	if m.Selected == nil || mask&common.TagMask() == 0 {
		return false
	}
	m.Selected.Tags = mask & common.TagMask()
	return true
}

// ToggleTag XORs mask into the selected client's tag bitmask, refusing to
// leave it with zero tags set (spec §4.4, §3 client invariant).
func ToggleTag(ctx *Context, m *Monitor, mask uint32) {
	if !applyToggleTag(m, mask) {
		return
	}
	AfterTagChange(ctx, m)
}

func applyToggleTag(m *Monitor, mask uint32) bool {
	if m.Selected == nil {
		return false
	}
	next := m.Selected.Tags ^ (mask & common.TagMask())
	if next == 0 {
		return false
	}
	m.Selected.Tags = next
	return true
}

// ComboView unions mask into the active tagset while combo-mode is held,
// instead of replacing it the way View does (spec §4.4 "Combo semantics").
func ComboView(ctx *Context, m *Monitor, mask uint32) {
	if !ctx.Combo {
		View(ctx, m, mask)
		ctx.Combo = true
		return
	}
	m.TagSet[m.SelTags] |= mask
	AfterTagChange(ctx, m)
}

// ComboTag unions mask into the selected client's tags while combo-mode is
// held, instead of replacing them the way Tag does.
func ComboTag(ctx *Context, m *Monitor, mask uint32) {
	if m.Selected == nil {
		return
	}
	if !ctx.Combo {
		Tag(ctx, m, mask)
		ctx.Combo = true
		return
	}
	m.Selected.Tags |= mask & common.TagMask()
	AfterTagChange(ctx, m)
}

// ClearCombo ends combo-mode; called on any key or button release (spec
// §4.9 Combo state machine: composing -> idle).
func ClearCombo(ctx *Context) {
	ctx.Combo = false
}

// AfterTagChange re-derives focus and re-arranges, the invariant
// preservation rule of spec §4.2.
func AfterTagChange(ctx *Context, m *Monitor) {
	Focus(ctx, nil)
	Arrange(ctx, m)
}
