package wm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gowm/dwm/internal/common"
)

func testMonitor() *Monitor {
	m := NewMonitor(0, common.CreateGeometry(0, 0, 1920, 1080))
	m.Work = m.Screen
	return m
}

func TestApplySizeHintsMinimumBounds(t *testing.T) {
	c := &Client{Mon: testMonitor(), BorderWidth: 1}
	_, _, w, h, changed := ApplySizeHints(c, 10, 10, 0, -5, false)
	assert.True(t, changed)
	assert.Equal(t, 1, w)
	assert.Equal(t, 1, h)
}

func TestApplySizeHintsClampsToWorkArea(t *testing.T) {
	c := &Client{Mon: testMonitor(), BorderWidth: 0}
	x, y, _, _, changed := ApplySizeHints(c, 5000, 5000, 200, 200, false)
	assert.True(t, changed)
	assert.LessOrEqual(t, x, c.Mon.Work.Right())
	assert.LessOrEqual(t, y, c.Mon.Work.Bottom())
}

func TestApplySizeHintsNoChangeIsFalse(t *testing.T) {
	c := &Client{Mon: testMonitor(), X: 10, Y: 10, W: 100, H: 100, BorderWidth: 1}
	_, _, _, _, changed := ApplySizeHints(c, 10, 10, 100, 100, false)
	assert.False(t, changed)
}

func TestApplySizeHintsIncrementOnlyWhenFloatingOrResizeHints(t *testing.T) {
	c := &Client{Mon: testMonitor(), BorderWidth: 0, IsFloating: true}
	c.Hints = Hints{HasInc: true, IncWidth: 10, IncHeight: 10, HasBase: true, BaseWidth: 0, BaseHeight: 0}

	_, _, w, h, _ := ApplySizeHints(c, 10, 10, 205, 207, false)
	assert.Equal(t, 0, w%10)
	assert.Equal(t, 0, h%10)
}

func TestApplySizeHintsMinMaxClamp(t *testing.T) {
	c := &Client{Mon: testMonitor(), BorderWidth: 0, IsFloating: true}
	c.Hints = Hints{MinWidth: 50, MinHeight: 50, MaxWidth: 100, MaxHeight: 100, HasMinMax: true}

	_, _, w, h, _ := ApplySizeHints(c, 10, 10, 10, 500, false)
	assert.Equal(t, 50, w)
	assert.Equal(t, 100, h)
}

func TestClientVisible(t *testing.T) {
	m := testMonitor()
	m.TagSet[m.SelTags] = 1
	c := &Client{Mon: m, Tags: 1}
	assert.True(t, c.Visible())

	c.Tags = 2
	assert.False(t, c.Visible())
}

func TestClientTotalDimensions(t *testing.T) {
	c := &Client{W: 100, H: 50, BorderWidth: 2}
	assert.Equal(t, 104, c.TotalWidth())
	assert.Equal(t, 54, c.TotalHeight())
}

func TestClientSaveOld(t *testing.T) {
	c := &Client{X: 1, Y: 2, W: 3, H: 4, BorderWidth: 5}
	c.SaveOld()
	assert.Equal(t, 1, c.OldX)
	assert.Equal(t, 2, c.OldY)
	assert.Equal(t, 3, c.OldW)
	assert.Equal(t, 4, c.OldH)
	assert.Equal(t, 5, c.OldBW)
}
