package main

import "testing"

func TestAnalyzeEdges(t *testing.T) {
	// 0 00100100011 0001 01010110 1111111
	sum := analyzeEdges(mustBitstream(t, DefaultFrameFields).Bits())

	if sum.Rising != 8 {
		t.Fatalf("expected 8 rising edges, got %d", sum.Rising)
	}
	if sum.Falling != 7 {
		t.Fatalf("expected 7 falling edges, got %d", sum.Falling)
	}
	if sum.LongestDominant != 7 {
		t.Fatalf("expected longest dominant run 7, got %d", sum.LongestDominant)
	}
	if sum.LongestRecessive != 3 {
		t.Fatalf("expected longest recessive run 3, got %d", sum.LongestRecessive)
	}
	if sum.Transitions() != 15 {
		t.Fatalf("expected 15 transitions, got %d", sum.Transitions())
	}
}

func TestAnalyzeEdgesEmpty(t *testing.T) {
	if sum := analyzeEdges(nil); sum != (EdgeSummary{}) {
		t.Fatalf("expected zero summary, got %+v", sum)
	}
}

func TestAnalyzeEdgesSingleLevel(t *testing.T) {
	sum := analyzeEdges([]uint8{1, 1, 1})
	if sum.Transitions() != 0 || sum.LongestDominant != 3 || sum.LongestRecessive != 0 {
		t.Fatalf("unexpected summary %+v", sum)
	}
}
