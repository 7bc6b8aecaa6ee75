package config

import (
	"strings"
	"testing"
)

func TestParseXrdbSkipsCommentsAndBlankLines(t *testing.T) {
	input := "! this is a comment\n\ntagwm.accent:\t#222f3d\ntagwm.foreground: #bbbbbb\n"
	got, err := ParseXrdb(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseXrdb: %v", err)
	}
	if got["tagwm.accent"] != "#222f3d" {
		t.Fatalf("accent = %q", got["tagwm.accent"])
	}
	if got["tagwm.foreground"] != "#bbbbbb" {
		t.Fatalf("foreground = %q", got["tagwm.foreground"])
	}
}

func TestParseXrdbRejectsLineWithoutColon(t *testing.T) {
	_, err := ParseXrdb(strings.NewReader("not.a.valid.line"))
	if err == nil {
		t.Fatalf("expected an error for a line without ':'")
	}
}

func TestApplyXrdbOverlaysRecognizedKeysOnly(t *testing.T) {
	cfg := Default()
	resources := map[string]string{
		"tagwm.accent":      "#101010",
		"tagwm.unknown.key": "#202020",
	}
	if err := ApplyXrdb(&cfg, resources); err != nil {
		t.Fatalf("ApplyXrdb: %v", err)
	}
	if cfg.Colors.Sel.Bg != "#101010" || cfg.Colors.Sel.Border != "#101010" {
		t.Fatalf("accent did not apply: Bg=%q Border=%q", cfg.Colors.Sel.Bg, cfg.Colors.Sel.Border)
	}
	def := Default()
	if cfg.Colors.Norm != def.Colors.Norm || cfg.Colors.Sel.Fg != def.Colors.Sel.Fg || cfg.Colors.Palette != def.Colors.Palette {
		t.Fatalf("unrecognized key changed other colors: %+v", cfg.Colors)
	}
}

func TestApplyXrdbIgnoresInvalidColorLiterals(t *testing.T) {
	cfg := Default()
	want := cfg.Colors.Norm.Fg
	resources := map[string]string{
		"foreground": "notacolor",
		"background": "#12345",
	}
	if err := ApplyXrdb(&cfg, resources); err != nil {
		t.Fatalf("ApplyXrdb: %v", err)
	}
	if cfg.Colors.Norm.Fg != want {
		t.Fatalf("invalid literal overwrote foreground: %q", cfg.Colors.Norm.Fg)
	}
}

func TestApplyXrdbFillsPaletteSlots(t *testing.T) {
	cfg := Default()
	resources := map[string]string{
		"*.color0": "#111111",
		"color15":  "#eeeeee",
		"color99":  "#222222", // out of range, ignored
	}
	if err := ApplyXrdb(&cfg, resources); err != nil {
		t.Fatalf("ApplyXrdb: %v", err)
	}
	if cfg.Colors.Palette[0] != "#111111" {
		t.Fatalf("palette[0] = %q", cfg.Colors.Palette[0])
	}
	if cfg.Colors.Palette[15] != "#eeeeee" {
		t.Fatalf("palette[15] = %q", cfg.Colors.Palette[15])
	}
}
