package wm

import (
	"strings"

	"github.com/tagwm/tagwm/internal/config"
	"github.com/tagwm/tagwm/internal/floatpos"
)

// ApplyRules scans config.Rules in order, applying the effects of every
// rule whose non-empty predicates all match c cumulatively; a rule
// flagged MatchOnce stops the scan once it matches. If no rule
// contributed tags, c takes the target monitor's current tagset with any
// scratchpad bits stripped, or tag 1 if that leaves nothing. When a rule
// named a monitor and that monitor doesn't currently show c's tags, c
// retargets to the first monitor that does, or falls back to the selected
// monitor.
func (w *World) ApplyRules(c *Client) {
	c.Tags = 0
	var floatPos string
	ruleTargetedMonitor := false
	for _, r := range w.Cfg.Rules {
		if !ruleMatches(r, c) {
			continue
		}
		if r.IsFloating {
			c.IsFloating = true
		}
		if r.IsTerminal {
			c.IsTerminal = true
		}
		if r.NoSwallow {
			c.NoSwallow = true
		}
		c.Tags |= r.Tags
		if r.FloatPos != "" {
			floatPos = r.FloatPos
		}
		if r.Monitor != -1 {
			ruleTargetedMonitor = true
			if m := w.monitorByNum(r.Monitor); m != nil {
				c.Mon = m
			}
		}
		if r.MatchOnce {
			break
		}
	}

	if c.Tags == 0 {
		c.Tags = c.Mon.TagSet &^ w.scratchpadMask()
		if c.Tags == 0 {
			c.Tags = config.TagMask(0)
		}
	} else {
		c.Tags &= w.AllTags
		if c.Tags == 0 {
			c.Tags = c.Mon.TagSet &^ w.scratchpadMask()
		}
	}

	// A rule that targeted a monitor not currently showing
	// its tags retargets to the first monitor that does, or to selmon.
	if ruleTargetedMonitor && c.Mon.TagSet&c.Tags == 0 {
		if owner := w.monitorShowingAny(c.Tags, nil); owner != nil {
			c.Mon = owner
		} else {
			c.Mon = w.SelMon
		}
	}

	if floatPos != "" {
		r, ok := floatpos.Resolve(floatPos, c.Mon.WArea(), c.Geom, c.BorderW, floatpos.Grid{X: w.Cfg.FloatGridX, Y: w.Cfg.FloatGridY}, 0, 0)
		if ok {
			c.Geom = r
			c.FloatGeom = r
		}
	}
}

// scratchpadMask is the bitmask spanning every configured scratchpad
// tag: the bits immediately above the regular tags.
func (w *World) scratchpadMask() uint32 {
	var mask uint32
	for i := range w.Cfg.Scratchpads {
		mask |= config.TagMask(len(w.Cfg.Tags) + i)
	}
	return mask
}

func ruleMatches(r config.Rule, c *Client) bool {
	if r.Class == "" && r.Instance == "" && r.Title == "" && r.WindowType == "" {
		return false
	}
	if r.Class != "" && !strings.Contains(c.Class, r.Class) {
		return false
	}
	if r.Instance != "" && !strings.Contains(c.Instance, r.Instance) {
		return false
	}
	if r.Title != "" && !strings.Contains(c.Name, r.Title) {
		return false
	}
	if r.WindowType != "" && r.WindowType != c.WindowType {
		return false
	}
	return true
}

func (w *World) monitorByNum(num int) *Monitor {
	for m := w.Mons; m != nil; m = m.Next {
		if m.Num == num {
			return m
		}
	}
	return nil
}

// allowsSwallowFloating reports whether c may be swallowed while
// floating: by default a floating client never is, unless a matching
// rule or the global SwallowFloating option opts in.
func (w *World) allowsSwallowFloating(c *Client) bool {
	if w.Cfg.SwallowFloating {
		return true
	}
	for _, r := range w.Cfg.Rules {
		if ruleMatches(r, c) {
			return r.SwallowFloating
		}
	}
	return false
}
