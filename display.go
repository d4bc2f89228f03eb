package main

import (
	"fmt"
	"io"
	"strings"
)

// printFrameTable prints every field with its value and bit expansion
func printFrameTable(w io.Writer, bs *Bitstream) {
	fmt.Fprintln(w, "📋 FRAME FIELDS")
	fmt.Fprintln(w, strings.Repeat("-", 60))
	for _, s := range bs.Spans() {
		width := s.Field.Width()
		note := ""
		if len(s.Bits) > width {
			note = fmt.Sprintf(" ⚠️ widened from %d", width)
		}
		fmt.Fprintf(w, "📍 %-4s bits[%2d:%2d] Value:0x%X Width:%d Bits:%s%s\n",
			s.Field, s.Start, s.End(), s.Value, len(s.Bits), bitString(s.Bits), note)
	}
	fmt.Fprintf(w, "   Frame: %s (%d bits)\n", bs, bs.Len())
}

// printRenderSummary prints the frame table and what was written
func printRenderSummary(w io.Writer, res *RenderResult) {
	fmt.Fprintln(w, "CAN Frame Waveform Renderer")
	fmt.Fprintln(w, "---------------------------------------------------")
	printFrameTable(w, res.Bitstream)

	fmt.Fprintln(w, "\n📈 Levels (bit 1 / bit 0):")
	for _, t := range res.Traces.All() {
		fmt.Fprintf(w, "   %-9s %.2f / %.2f\n", t.Name, t.Levels.Dominant, t.Levels.Recessive)
	}

	fmt.Fprintln(w, "\n===================================================")
	fmt.Fprintf(w, "📊 Render Summary\n")
	fmt.Fprintf(w, "   Image: %s (%s, %s backend)\n", res.Path, res.Format, res.Backend)
	if res.LayoutPath != "" {
		fmt.Fprintf(w, "   Layout: %s\n", res.LayoutPath)
	}
	fmt.Fprintf(w, "   Transitions: %d (%d rising, %d falling)\n",
		res.Edges.Transitions(), res.Edges.Rising, res.Edges.Falling)
	fmt.Fprintf(w, "   Longest run: %d dominant, %d recessive\n",
		res.Edges.LongestDominant, res.Edges.LongestRecessive)
	fmt.Fprintln(w, "===================================================")
}
