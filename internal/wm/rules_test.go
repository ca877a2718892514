package wm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gowm/dwm/internal/common"
)

func TestMatchRuleFirstMatchWins(t *testing.T) {
	rules := []common.WindowRule{
		{Class: "Firefox", Tags: 2},
		{Class: "Firefox", Tags: 4},
	}
	r := matchRule(rules, "Firefox", "", "")
	assert.NotNil(t, r)
	assert.EqualValues(t, 2, r.Tags)
}

func TestMatchRuleClassOnly(t *testing.T) {
	rules := []common.WindowRule{{Class: "Gimp", IsFloating: true}}
	assert.NotNil(t, matchRule(rules, "Gimp", "gimp", "image"))
	assert.Nil(t, matchRule(rules, "Firefox", "gimp", "image"))
}

func TestMatchRuleInstanceOnly(t *testing.T) {
	rules := []common.WindowRule{{Instance: "plugin-container"}}
	assert.NotNil(t, matchRule(rules, "Firefox", "plugin-container", ""))
	assert.Nil(t, matchRule(rules, "Firefox", "firefox", ""))
}

func TestMatchRuleTitleOnly(t *testing.T) {
	rules := []common.WindowRule{{Title: "Picture-in-Picture"}}
	assert.NotNil(t, matchRule(rules, "", "", "Picture-in-Picture"))
	assert.Nil(t, matchRule(rules, "", "", "Other"))
}

func TestMatchRuleAllFieldsMustMatch(t *testing.T) {
	rules := []common.WindowRule{{Class: "Firefox", Instance: "Navigator", Title: "Mozilla Firefox"}}
	assert.NotNil(t, matchRule(rules, "Firefox", "Navigator", "Mozilla Firefox"))
	assert.Nil(t, matchRule(rules, "Firefox", "Navigator", "Other Title"))
	assert.Nil(t, matchRule(rules, "Firefox", "WrongInstance", "Mozilla Firefox"))
}

func TestMatchRuleNoMatchReturnsNil(t *testing.T) {
	rules := []common.WindowRule{{Class: "Gimp"}}
	assert.Nil(t, matchRule(rules, "Firefox", "firefox", "title"))
}

func TestMatchRuleEmptyRuleListReturnsNil(t *testing.T) {
	assert.Nil(t, matchRule(nil, "Firefox", "firefox", "title"))
}

func TestApplyRulesFallsBackToMonitorActiveTags(t *testing.T) {
	m := testMonitor()
	m.TagSet[m.SelTags] = 4

	// ApplyRules reads WM_CLASS over a live connection, so this reproduces
	// its no-match fallback step on top of matchRule's result.
	c := &Client{Mon: m}
	if r := matchRule(common.Config.Rules, "", "", ""); r == nil {
		if c.Tags&common.TagMask() == 0 {
			c.Tags = c.Mon.ActiveTags()
		}
	}
	assert.Equal(t, uint32(4), c.Tags)
}

func TestApplyRulesMasksOutOfRangeTags(t *testing.T) {
	// Reproduces ApplyRules' final masking step, which needs no connection.
	c := &Client{Tags: 1<<20 | 1}
	c.Tags &= common.TagMask()
	assert.Equal(t, uint32(1), c.Tags)
}
