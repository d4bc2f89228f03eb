package main

import (
	"errors"
	"testing"
)

func TestLegacyHighResConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Output = "can_waveform_2000dpi.png"
	cfg.DPI = 1600
	if err := cfg.Validate(); err != nil {
		t.Fatalf("1600 DPI config invalid: %v", err)
	}
	if w, h := cfg.PixelSize(); w != 22400 || h != 9600 {
		t.Fatalf("expected 22400x9600, got %dx%d", w, h)
	}
}

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.OutputFormat() != FormatPNG {
		t.Fatalf("expected png, got %s", cfg.OutputFormat())
	}
	if w, h := cfg.PixelSize(); w != 4200 || h != 1800 {
		t.Fatalf("expected 4200x1800, got %dx%d", w, h)
	}
}

func TestConfigOutputFormat(t *testing.T) {
	cases := []struct {
		out, format, want string
	}{
		{"a.png", "", FormatPNG},
		{"a.SVG", "", FormatSVG},
		{"a.pdf", "", FormatPDF},
		{"a.bin", "", FormatPNG},
		{"a.png", "SVG", FormatSVG},
	}
	for _, tc := range cases {
		cfg := Config{Output: tc.out, Format: tc.format}
		if got := cfg.OutputFormat(); got != tc.want {
			t.Fatalf("%s/%s: expected %s, got %s", tc.out, tc.format, tc.want, got)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	mod := func(f func(*Config)) Config {
		cfg := DefaultConfig()
		f(&cfg)
		return cfg
	}

	cases := []struct {
		name string
		cfg  Config
		want error
	}{
		{"empty output", mod(func(c *Config) { c.Output = " " }), nil},
		{"zero dpi", mod(func(c *Config) { c.DPI = 0 }), nil},
		{"negative width", mod(func(c *Config) { c.WidthIn = -1 }), nil},
		{"unknown backend", mod(func(c *Config) { c.Backend = "matplotlib" }), ErrUnknownBackend},
		{"unknown format", mod(func(c *Config) { c.Format = "gif" }), ErrUnknownFormat},
		{"chart svg", mod(func(c *Config) { c.Backend = BackendChart; c.Output = "a.svg" }), ErrUnknownFormat},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if err == nil {
				t.Fatalf("expected error")
			}
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestConfigValidateBackendFormats(t *testing.T) {
	for _, format := range []string{FormatPNG, FormatSVG, FormatPDF} {
		cfg := DefaultConfig()
		cfg.Format = format
		if err := cfg.Validate(); err != nil {
			t.Fatalf("gonum %s: %v", format, err)
		}
	}
	cfg := DefaultConfig()
	cfg.Backend = "CHART"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("chart png: %v", err)
	}
}
