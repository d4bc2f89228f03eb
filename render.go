package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
)

// plotBackend draws a diagram to w in one of its supported formats.
type plotBackend interface {
	Name() string
	Formats() []string
	Draw(w io.Writer, d diagram) error
}

var backends = map[string]plotBackend{
	BackendGonum: gonumBackend{},
	BackendChart: chartBackend{},
}

func lookupBackend(name string) (plotBackend, error) {
	be, ok := backends[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
	return be, nil
}

// diagram is everything a backend needs to draw one frame.
type diagram struct {
	Title  string
	XLabel string
	YLabel string
	Labels []string
	Traces Traces
	YTicks []VoltageTick

	WidthIn  float64
	HeightIn float64
	DPI      int
	Format   string
}

// RenderResult describes what a render produced
type RenderResult struct {
	Path       string
	Format     string
	Backend    string
	Bitstream  *Bitstream
	Traces     Traces
	Edges      EdgeSummary
	LayoutPath string
}

// FrameRenderer turns frame fields into a saved diagram.
type FrameRenderer struct {
	cfg     Config
	backend plotBackend
	log     *zap.Logger
	open    func(path string) error
}

// NewFrameRenderer validates cfg and prepares a renderer for it.
func NewFrameRenderer(cfg Config, logger *zap.Logger) (*FrameRenderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	be, err := lookupBackend(cfg.Backend)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FrameRenderer{
		cfg:     cfg,
		backend: be,
		log:     logger,
		open:    openInViewer,
	}, nil
}

// Render expands ff, draws it and writes the image (and the layout, when
// configured). A failure to show the image is logged, not returned.
func (r *FrameRenderer) Render(ff FrameFields) (*RenderResult, error) {
	checkDLC(r.log, ff)

	bs, err := BuildBitstream(ff, r.cfg.Lenient)
	if err != nil {
		return nil, err
	}
	if r.cfg.Lenient && bs.Len() != nominalFrameBits() {
		r.log.Warn("oversized field widened the frame",
			zap.Int("bits", bs.Len()),
			zap.Int("nominal", nominalFrameBits()))
	}
	traces := BuildTraces(bs)

	d := diagram{
		Title:    "CAN voltage levels",
		XLabel:   "Time (µs)",
		YLabel:   "Voltage (V)",
		Labels:   bs.Labels(),
		Traces:   traces,
		YTicks:   voltageTicks,
		WidthIn:  r.cfg.WidthIn,
		HeightIn: r.cfg.HeightIn,
		DPI:      r.cfg.DPI,
		Format:   r.cfg.OutputFormat(),
	}

	if err := r.writeImage(d); err != nil {
		return nil, err
	}
	r.log.Info("frame rendered",
		zap.String("path", r.cfg.Output),
		zap.String("format", d.Format),
		zap.String("backend", r.backend.Name()),
		zap.Int("bits", bs.Len()),
		zap.Int("dpi", d.DPI))

	res := &RenderResult{
		Path:      r.cfg.Output,
		Format:    d.Format,
		Backend:   r.backend.Name(),
		Bitstream: bs,
		Traces:    traces,
		Edges:     analyzeEdges(bs.Bits()),
	}

	if r.cfg.LayoutOut != "" {
		if err := WriteLayout(r.cfg.LayoutOut, NewLayout(bs, traces)); err != nil {
			return nil, err
		}
		res.LayoutPath = r.cfg.LayoutOut
		r.log.Debug("layout written", zap.String("path", r.cfg.LayoutOut))
	}

	if r.cfg.Show {
		if err := r.open(r.cfg.Output); err != nil {
			r.log.Warn("could not open viewer", zap.String("path", r.cfg.Output), zap.Error(err))
		}
	}
	return res, nil
}

// writeImage draws the whole image before touching the output path, so a
// failed draw leaves any existing file as it was.
func (r *FrameRenderer) writeImage(d diagram) error {
	var buf bytes.Buffer
	if err := r.backend.Draw(&buf, d); err != nil {
		return fmt.Errorf("draw %s: %w", r.cfg.Output, err)
	}
	if err := os.WriteFile(r.cfg.Output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", r.cfg.Output, err)
	}
	return nil
}

// checkDLC warns when the declared DLC disagrees with the single data byte
// the drawn frame carries.
func checkDLC(logger *zap.Logger, ff FrameFields) {
	const dataBytes = 1
	if ff.DLC != dataBytes {
		logger.Warn("DLC does not match the data bytes drawn",
			zap.Int("dlc", ff.DLC),
			zap.Int("data_bytes", dataBytes))
	}
}

func nominalFrameBits() int {
	total := 0
	for _, f := range frameOrder {
		total += f.Width()
	}
	return total
}
