package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

const (
	BackendGonum = "gonum"
	BackendChart = "chart"

	FormatPNG = "png"
	FormatSVG = "svg"
	FormatPDF = "pdf"
)

var (
	ErrUnknownFormat  = errors.New("unknown output format")
	ErrUnknownBackend = errors.New("unknown plot backend")
)

// Config collects the settings of one render
type Config struct {
	Output    string
	Format    string // empty means derive from Output's extension
	DPI       int
	WidthIn   float64
	HeightIn  float64
	Backend   string
	Lenient   bool
	Show      bool
	LayoutOut string
	Quiet     bool
}

// DefaultConfig returns a 14x6 inch transparent PNG at 300 DPI. Diagrams
// published before canwave were can_waveform_2000dpi.png at 1600 DPI
// (22400x9600 pixels); --out can_waveform_2000dpi.png --dpi 1600 reproduces
// them.
func DefaultConfig() Config {
	return Config{
		Output:   "can_waveform.png",
		DPI:      300,
		WidthIn:  14,
		HeightIn: 6,
		Backend:  BackendGonum,
	}
}

// OutputFormat returns the explicit format, or the one implied by the output
// file extension, falling back to PNG.
func (c Config) OutputFormat() string {
	if c.Format != "" {
		return strings.ToLower(c.Format)
	}
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(c.Output), ".")); ext {
	case FormatSVG, FormatPDF, FormatPNG:
		return ext
	}
	return FormatPNG
}

// Validate rejects settings no backend can honour.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Output) == "" {
		return errors.New("output path is empty")
	}
	if c.DPI <= 0 {
		return fmt.Errorf("dpi must be positive, got %d", c.DPI)
	}
	if c.WidthIn <= 0 || c.HeightIn <= 0 {
		return fmt.Errorf("figure size must be positive, got %gx%g in", c.WidthIn, c.HeightIn)
	}

	be, err := lookupBackend(c.Backend)
	if err != nil {
		return err
	}
	format := c.OutputFormat()
	for _, f := range be.Formats() {
		if f == format {
			return nil
		}
	}
	return fmt.Errorf("%w: %q (backend %s supports %s)",
		ErrUnknownFormat, format, be.Name(), strings.Join(be.Formats(), ", "))
}

// PixelSize returns the raster dimensions for the configured figure.
func (c Config) PixelSize() (int, int) {
	return int(c.WidthIn*float64(c.DPI) + 0.5), int(c.HeightIn*float64(c.DPI) + 0.5)
}
