package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// decodeAndPrint recursively prints CBOR structures with indentation
func decodeAndPrint(w io.Writer, item interface{}, indent int) {
	prefix := strings.Repeat("  ", indent)

	switch v := item.(type) {
	case []uint8:
		fmt.Fprintf(w, "%sType: Byte String (%d bytes)\n", prefix, len(v))
		fmt.Fprintf(w, "%sHex: %X\n", prefix, v)
		// Layouts store bit sequences as byte strings of 0/1
		if isBitSequence(v) {
			fmt.Fprintf(w, "%s💡 Bits: %s\n", prefix, bitString(v))
		}

	case string:
		fmt.Fprintf(w, "%sType: Text String (%d chars)\n", prefix, len(v))
		fmt.Fprintf(w, "%sValue: %q\n", prefix, v)

	case []interface{}:
		fmt.Fprintf(w, "%sType: Array (length %d)\n", prefix, len(v))
		if isFloatArray(v) {
			fmt.Fprintf(w, "%s  Values: %v\n", prefix, v)
			return
		}
		for i, elem := range v {
			fmt.Fprintf(w, "%s  [%d]:\n", prefix, i)
			decodeAndPrint(w, elem, indent+2)
		}

	case map[interface{}]interface{}:
		fmt.Fprintf(w, "%sType: Map (%d entries)\n", prefix, len(v))
		for _, k := range sortedKeys(v) {
			fmt.Fprintf(w, "%s  Key: %v\n", prefix, k)
			fmt.Fprintf(w, "%s  Value:\n", prefix)
			decodeAndPrint(w, v[k], indent+2)
		}

	case uint64:
		fmt.Fprintf(w, "%sType: Unsigned Int\n", prefix)
		fmt.Fprintf(w, "%sValue: %d (0x%X)\n", prefix, v, v)

	case int64:
		fmt.Fprintf(w, "%sType: Signed Int\n", prefix)
		fmt.Fprintf(w, "%sValue: %d\n", prefix, v)

	case float64:
		fmt.Fprintf(w, "%sType: Float\n", prefix)
		fmt.Fprintf(w, "%sValue: %g\n", prefix, v)

	case bool:
		fmt.Fprintf(w, "%sType: Boolean\n", prefix)
		fmt.Fprintf(w, "%sValue: %v\n", prefix, v)

	case nil:
		fmt.Fprintf(w, "%sType: Null\n", prefix)

	default:
		fmt.Fprintf(w, "%sType: %T\n", prefix, v)
		fmt.Fprintf(w, "%sValue: %v\n", prefix, v)
	}
}

func isBitSequence(v []uint8) bool {
	if len(v) == 0 {
		return false
	}
	for _, b := range v {
		if b > 1 {
			return false
		}
	}
	return true
}

// isFloatArray reports whether a trace value array can be printed on one line.
func isFloatArray(v []interface{}) bool {
	if len(v) == 0 {
		return false
	}
	for _, elem := range v {
		if _, ok := elem.(float64); !ok {
			return false
		}
	}
	return true
}

// sortedKeys orders map keys by their printed form so output is stable
func sortedKeys(m map[interface{}]interface{}) []interface{} {
	keys := make([]interface{}, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprint(keys[i]) < fmt.Sprint(keys[j])
	})
	return keys
}
