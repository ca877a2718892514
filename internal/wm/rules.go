package wm

import (
	"github.com/jezek/xgbutil/icccm"

	"github.com/gowm/dwm/internal/common"
)

// ApplyRules matches c's WM_CLASS/title against common.Config.Rules and
// applies the first match's tags/floating/monitor overrides (spec §4.9
// client-rule matching, grounded on the teacher's client-classification
// predicates in store/client.go IsSpecial/IsIgnored).
func ApplyRules(ctx *Context, c *Client) {
	class, instance := "", ""
	if wc, err := icccm.WmClassGet(ctx.XU, c.Window); err == nil && wc != nil {
		class, instance = wc.Class, wc.Instance
	}

	if r := matchRule(common.Config.Rules, class, instance, c.Name); r != nil {
		if r.IsFloating {
			c.IsFloating = true
		}
		if r.Tags != 0 {
			c.Tags = r.Tags
		}
		if r.Monitor >= 0 {
			for m := ctx.Mons; m != nil; m = m.Next {
				if m.Num == r.Monitor {
					c.Mon = m
					break
				}
			}
		}
	}

	if c.Tags&common.TagMask() == 0 {
		c.Tags = c.Mon.ActiveTags()
	} else {
		c.Tags &= common.TagMask()
	}
}

// matchRule returns the first rule whose non-empty fields all match,
// letting the matching logic be tested without a live X connection.
func matchRule(rules []common.WindowRule, class, instance, title string) *common.WindowRule {
	for i := range rules {
		r := &rules[i]
		if r.Class != "" && r.Class != class {
			continue
		}
		if r.Instance != "" && r.Instance != instance {
			continue
		}
		if r.Title != "" && r.Title != title {
			continue
		}
		return r
	}
	return nil
}
