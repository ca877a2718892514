package wm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testContext(m *Monitor) *Context {
	return &Context{Mons: m, SelMon: m}
}

func TestApplyViewNoOpOnCurrentMask(t *testing.T) {
	m := testMonitor()
	m.TagSet = [2]uint32{1, 2}
	m.SelTags = 0

	changed := applyView(m, 1)
	assert.False(t, changed)
	assert.Equal(t, [2]uint32{1, 2}, m.TagSet)
	assert.Equal(t, 0, m.SelTags)
}

func TestApplyViewTogglesSlotAndAssigns(t *testing.T) {
	m := testMonitor()
	m.TagSet = [2]uint32{1, 2}
	m.SelTags = 0

	changed := applyView(m, 4)
	assert.True(t, changed)
	assert.Equal(t, 1, m.SelTags)
	assert.Equal(t, uint32(4), m.TagSet[1])
}

func TestApplyToggleViewRefusesEmptyResult(t *testing.T) {
	m := testMonitor()
	m.TagSet[m.SelTags] = 1

	changed := applyToggleView(m, 1)
	assert.False(t, changed)
	assert.Equal(t, uint32(1), m.TagSet[m.SelTags])
}

func TestApplyToggleViewUnionsBits(t *testing.T) {
	m := testMonitor()
	m.TagSet[m.SelTags] = 1

	changed := applyToggleView(m, 2)
	assert.True(t, changed)
	assert.Equal(t, uint32(3), m.TagSet[m.SelTags])
}

func TestApplyTagNoOpWithoutSelection(t *testing.T) {
	m := testMonitor()
	assert.False(t, applyTag(m, 4))
}

func TestApplyTagAssignsMaskedBits(t *testing.T) {
	m := testMonitor()
	c := &Client{Mon: m, Tags: 1}
	m.Selected = c

	assert.True(t, applyTag(m, 4))
	assert.Equal(t, uint32(4), c.Tags)
}

func TestApplyTagRefusesOutOfRangeMask(t *testing.T) {
	m := testMonitor()
	c := &Client{Mon: m, Tags: 1}
	m.Selected = c

	assert.False(t, applyTag(m, 1<<20))
	assert.Equal(t, uint32(1), c.Tags)
}

func TestApplyToggleTagRefusesEmptyResult(t *testing.T) {
	m := testMonitor()
	c := &Client{Mon: m, Tags: 1}
	m.Selected = c

	assert.False(t, applyToggleTag(m, 1))
	assert.Equal(t, uint32(1), c.Tags)
}

func TestApplyToggleTagXorsBits(t *testing.T) {
	m := testMonitor()
	c := &Client{Mon: m, Tags: 1}
	m.Selected = c

	assert.True(t, applyToggleTag(m, 3))
	assert.Equal(t, uint32(2), c.Tags)
}

func TestClearCombo(t *testing.T) {
	ctx := testContext(testMonitor())
	ctx.Combo = true
	ClearCombo(ctx)
	assert.False(t, ctx.Combo)
}
