package main

// EdgeSummary counts level changes in a bitstream
type EdgeSummary struct {
	Rising           int // 0 -> 1
	Falling          int // 1 -> 0
	LongestDominant  int
	LongestRecessive int
}

// Transitions returns the total number of level changes.
func (e EdgeSummary) Transitions() int {
	return e.Rising + e.Falling
}

// analyzeEdges walks the bitstream once and records edges and the longest
// run of each level.
func analyzeEdges(seq []uint8) EdgeSummary {
	var sum EdgeSummary
	if len(seq) == 0 {
		return sum
	}

	run := 0
	for i, bit := range seq {
		if i > 0 && bit != seq[i-1] {
			if bit == 1 {
				sum.Rising++
			} else {
				sum.Falling++
			}
			run = 0
		}
		run++

		if bit == 1 {
			if run > sum.LongestDominant {
				sum.LongestDominant = run
			}
		} else if run > sum.LongestRecessive {
			sum.LongestRecessive = run
		}
	}
	return sum
}
