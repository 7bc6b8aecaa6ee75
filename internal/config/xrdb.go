package config

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ParseXrdb reads an X resource database dump (the format `xrdb -query`
// prints, and what arrives in the RESOURCE_MANAGER property) into a flat
// key/value map. Lines starting with '!' are xrdb comments; blank lines
// are skipped. Keys keep their program/class prefix (e.g.
// "tagwm.color1") so callers can filter by it.
func ParseXrdb(r io.Reader) (map[string]string, error) {
	out := make(map[string]string)
	sc := bufio.NewScanner(r)
	lineno := 0
	for sc.Scan() {
		lineno++
		line := sc.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "!") {
			continue
		}
		idx := strings.Index(line, ":")
		if idx < 0 {
			return out, fmt.Errorf("xrdb: line %d: missing ':' in %q", lineno, line)
		}
		key := strings.TrimSpace(line[:idx])
		val := strings.TrimSpace(line[idx+1:])
		out[key] = val
	}
	if err := sc.Err(); err != nil {
		return out, err
	}
	return out, nil
}

// xrdbDecl is the table-driven apply step for one resource key.
type xrdbDecl struct {
	apply func(cfg *Config, val string)
}

var xrdbMap = map[string]xrdbDecl{
	"foreground": {func(cfg *Config, v string) { cfg.Colors.Norm.Fg = v }},
	"background": {func(cfg *Config, v string) { cfg.Colors.Norm.Bg = v }},
	"accent": {func(cfg *Config, v string) {
		cfg.Colors.Sel.Bg = v
		cfg.Colors.Sel.Border = v
	}},
	"secondary": {func(cfg *Config, v string) { cfg.Colors.Sel.Fg = v }},
	"border":    {func(cfg *Config, v string) { cfg.Colors.Norm.Border = v }},
}

// validHex reports whether v is a "#RRGGBB" literal; anything else is
// ignored so a typo in the resource database keeps the compiled-in
// default rather than feeding garbage to the color allocator.
func validHex(v string) bool {
	if len(v) != 7 || v[0] != '#' {
		return false
	}
	for _, r := range v[1:] {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

// baseKey strips the program/class prefix from a resource key:
// "tagwm.color1" and "*.color1" both resolve to "color1".
func baseKey(key string) string {
	if i := strings.LastIndexByte(key, '.'); i >= 0 {
		return key[i+1:]
	}
	return key
}

// ApplyXrdb overlays recognized resource keys from resources onto cfg.
// Recognized keys are foreground, background, accent, secondary, border,
// and color0 through color15; everything else is ignored, as is any
// value that isn't a #RRGGBB literal.
func ApplyXrdb(cfg *Config, resources map[string]string) error {
	for key, val := range resources {
		name := baseKey(key)
		if !validHex(val) {
			continue
		}
		if decl, ok := xrdbMap[name]; ok {
			decl.apply(cfg, val)
			continue
		}
		var idx int
		if n, err := fmt.Sscanf(name, "color%d", &idx); err == nil && n == 1 && idx >= 0 && idx < len(cfg.Colors.Palette) {
			cfg.Colors.Palette[idx] = val
		}
	}
	return nil
}
