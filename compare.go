package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// BitDiff is one bit position where two layouts disagree
type BitDiff struct {
	Index int
	Field string
	A     uint8
	B     uint8
}

// LayoutDiff is the result of comparing two layouts bit by bit
type LayoutDiff struct {
	LenA    int
	LenB    int
	Bits    []BitDiff
	ByField map[string]int
}

// Equal reports whether both layouts carry the same bits.
func (d LayoutDiff) Equal() bool {
	return d.LenA == d.LenB && len(d.Bits) == 0
}

// CompareLayouts compares the bitstreams of a and b. Positions present in
// only one layout are not counted as differing bits; the length mismatch is
// reported instead.
func CompareLayouts(a, b Layout) LayoutDiff {
	diff := LayoutDiff{
		LenA:    len(a.Bits),
		LenB:    len(b.Bits),
		ByField: make(map[string]int),
	}

	n := len(a.Bits)
	if len(b.Bits) < n {
		n = len(b.Bits)
	}
	for i := 0; i < n; i++ {
		if a.Bits[i] == b.Bits[i] {
			continue
		}
		field := a.FieldAt(i)
		if fb := b.FieldAt(i); fb != field {
			field = field + "/" + fb
		}
		diff.Bits = append(diff.Bits, BitDiff{Index: i, Field: field, A: a.Bits[i], B: b.Bits[i]})
		diff.ByField[field]++
	}
	return diff
}

// printLayoutDiff displays a comparison in the same banner style as the
// render summary.
func printLayoutDiff(w io.Writer, nameA, nameB string, a, b Layout, diff LayoutDiff) {
	fmt.Fprintln(w, "\n===================================================")
	fmt.Fprintln(w, "📊 FRAME LAYOUT COMPARISON")
	fmt.Fprintln(w, "===================================================")
	fmt.Fprintf(w, "  [A] %s (%d bits)\n", nameA, diff.LenA)
	fmt.Fprintf(w, "  [B] %s (%d bits)\n", nameB, diff.LenB)

	fmt.Fprintln(w, "\n🔖 Fields:")
	fmt.Fprintln(w, strings.Repeat("-", 60))
	for i := 0; i < len(a.Fields) || i < len(b.Fields); i++ {
		var fa, fb FieldLayout
		if i < len(a.Fields) {
			fa = a.Fields[i]
		}
		if i < len(b.Fields) {
			fb = b.Fields[i]
		}
		marker := "  "
		if fa.Value != fb.Value || fa.Name != fb.Name {
			marker = "🔸"
		}
		name := fa.Name
		if name == "" {
			name = fb.Name
		}
		fmt.Fprintf(w, "%s %-4s A:0x%X (%s)  B:0x%X (%s)\n",
			marker, name, fa.Value, bitString(fa.Bits), fb.Value, bitString(fb.Bits))
	}

	if diff.LenA != diff.LenB {
		fmt.Fprintf(w, "\n⚠️ Length mismatch: A has %d bits, B has %d bits\n", diff.LenA, diff.LenB)
	}

	if len(diff.Bits) > 0 {
		fmt.Fprintf(w, "\n🔀 Differing bits (%d):\n", len(diff.Bits))
		fmt.Fprintln(w, strings.Repeat("-", 60))
		for _, d := range diff.Bits {
			fmt.Fprintf(w, "  bit %2d [%s] A:%d B:%d\n", d.Index, d.Field, d.A, d.B)
		}
	}

	var fields []string
	for f := range diff.ByField {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	fmt.Fprintln(w, "\n===================================================")
	fmt.Fprintf(w, "📈 Summary:\n")
	if diff.Equal() {
		fmt.Fprintln(w, "   Layouts are identical")
	}
	fmt.Fprintf(w, "   Differing bits: %d\n", len(diff.Bits))
	for _, f := range fields {
		fmt.Fprintf(w, "   %s: %d\n", f, diff.ByField[f])
	}
	fmt.Fprintln(w, "===================================================")
}
