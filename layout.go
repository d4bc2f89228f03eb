package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fxamacker/cbor/v2"
)

const layoutVersion = 1

// Layout is the CBOR sidecar written next to a rendered diagram.
type Layout struct {
	Version int           `cbor:"version"`
	Fields  []FieldLayout `cbor:"fields"`
	Bits    []byte        `cbor:"bits"`
	Labels  []string      `cbor:"labels"`
	Traces  []TraceLayout `cbor:"traces"`
}

// FieldLayout describes one field. Bits may be longer than Width for frames
// rendered in lenient mode.
type FieldLayout struct {
	Name  string `cbor:"name"`
	Value uint64 `cbor:"value"`
	Width int    `cbor:"width"`
	Start int    `cbor:"start"`
	Bits  []byte `cbor:"bits"`
}

// TraceLayout is one plotted series with its level pair.
type TraceLayout struct {
	Name      string    `cbor:"name"`
	Dominant  float64   `cbor:"dominant"`
	Recessive float64   `cbor:"recessive"`
	Values    []float64 `cbor:"values"`
}

// NewLayout captures the bitstream and traces of a render.
func NewLayout(bs *Bitstream, traces Traces) Layout {
	l := Layout{
		Version: layoutVersion,
		Bits:    bs.Bits(),
		Labels:  bs.Labels(),
	}
	for _, s := range bs.Spans() {
		l.Fields = append(l.Fields, FieldLayout{
			Name:  s.Field.String(),
			Value: uint64(s.Value),
			Width: s.Field.Width(),
			Start: s.Start,
			Bits:  s.Bits,
		})
	}
	for _, t := range traces.All() {
		l.Traces = append(l.Traces, TraceLayout{
			Name:      t.Name,
			Dominant:  t.Levels.Dominant,
			Recessive: t.Levels.Recessive,
			Values:    append([]float64(nil), t.Values...),
		})
	}
	return l
}

// FieldAt returns the name of the field owning bit i, or "" when i is out of
// range.
func (l Layout) FieldAt(i int) string {
	if i < 0 || i >= len(l.Labels) {
		return ""
	}
	return l.Labels[i]
}

// WriteLayout encodes l as CBOR to path.
func WriteLayout(path string, l Layout) error {
	data, err := cbor.Marshal(l)
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write layout %s: %w", path, err)
	}
	return nil
}

// ReadLayout decodes a layout file written by WriteLayout.
func ReadLayout(path string) (Layout, error) {
	var l Layout
	data, err := os.ReadFile(path)
	if err != nil {
		return l, fmt.Errorf("read layout %s: %w", path, err)
	}
	if err := cbor.Unmarshal(data, &l); err != nil {
		return l, fmt.Errorf("decode layout %s: %w", path, err)
	}
	if l.Version != layoutVersion {
		return l, fmt.Errorf("layout %s: unsupported version %d", path, l.Version)
	}
	if len(l.Bits) != len(l.Labels) {
		return l, fmt.Errorf("layout %s: %d bits but %d labels", path, len(l.Bits), len(l.Labels))
	}
	return l, nil
}

// InspectCBOR prints every CBOR item found in data and returns how many
// were decoded.
func InspectCBOR(w io.Writer, data []byte) (int, error) {
	items := 0
	rest := data
	for len(rest) > 0 {
		var item interface{}
		next, err := cbor.UnmarshalFirst(rest, &item)
		if err != nil {
			return items, fmt.Errorf("item %d at byte %d: %w", items+1, len(data)-len(rest), err)
		}
		size := len(rest) - len(next)
		rest = next
		items++
		fmt.Fprintln(w, "===================================================")
		fmt.Fprintf(w, "✅ CBOR ITEM %d (%d bytes)\n", items, size)
		fmt.Fprintln(w, "---------------------------------------------------")
		decodeAndPrint(w, item, 0)
	}
	return items, nil
}
