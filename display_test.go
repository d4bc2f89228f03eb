package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrintFrameTable(t *testing.T) {
	var buf bytes.Buffer
	printFrameTable(&buf, mustBitstream(t, DefaultFrameFields))
	out := buf.String()

	for _, want := range []string{
		"📍 SOF  bits[ 0: 1] Value:0x0 Width:1 Bits:0",
		"📍 ID   bits[ 1:12] Value:0x123 Width:11 Bits:00100100011",
		"📍 DLC  bits[12:16] Value:0x1 Width:4 Bits:0001",
		"📍 D    bits[16:24] Value:0x56 Width:8 Bits:01010110",
		"📍 EOF  bits[24:31] Value:0x7F Width:7 Bits:1111111",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("table missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "widened") {
		t.Fatalf("strict frame must not report widened fields")
	}
}

func TestPrintRenderSummary(t *testing.T) {
	bs := mustBitstream(t, DefaultFrameFields)
	res := &RenderResult{
		Path:      "can_waveform.png",
		Format:    FormatPNG,
		Backend:   BackendGonum,
		Bitstream: bs,
		Traces:    BuildTraces(bs),
		Edges:     analyzeEdges(bs.Bits()),
	}
	var buf bytes.Buffer
	printRenderSummary(&buf, res)
	out := buf.String()

	for _, want := range []string{
		"Image: can_waveform.png (png, gonum backend)",
		"CAN High  2.50 / 3.50",
		"Longest run: 7 dominant, 3 recessive",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Layout:") {
		t.Fatalf("no layout line expected without a layout path")
	}
}
