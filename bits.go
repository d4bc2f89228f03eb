package main

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

var (
	ErrFieldOverflow = errors.New("value does not fit field width")
	ErrNegativeField = errors.New("negative field value")
)

// ExpandField converts value to a zero-padded, MSB-first bit sequence of
// exactly width bits.
func ExpandField(value, width int) ([]uint8, error) {
	if value < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeField, value)
	}
	if n := bits.Len(uint(value)); n > width {
		return nil, fmt.Errorf("%w: 0x%X needs %d bits, field has %d", ErrFieldOverflow, value, n, width)
	}
	return toBits(value, width), nil
}

// expandLenient pads value to width but keeps every significant bit, so a
// value wider than its field produces a longer sequence.
func expandLenient(value, width int) []uint8 {
	if n := bits.Len(uint(value)); n > width {
		width = n
	}
	return toBits(value, width)
}

func toBits(value, width int) []uint8 {
	out := make([]uint8, width)
	for i := 0; i < width; i++ {
		out[width-1-i] = uint8((value >> i) & 1)
	}
	return out
}

// Bitstream is the concatenation of all field bit sequences in frame order.
// It is immutable once built; accessors return copies.
type Bitstream struct {
	bits   []uint8
	labels []string
	spans  []FieldSpan
}

// BuildBitstream expands every field of ff. In lenient mode oversized values
// widen their field instead of failing.
func BuildBitstream(ff FrameFields, lenient bool) (*Bitstream, error) {
	bs := &Bitstream{}
	for _, f := range frameOrder {
		v := ff.Value(f)
		var fieldBits []uint8
		if lenient && v >= 0 {
			fieldBits = expandLenient(v, f.Width())
		} else {
			var err error
			fieldBits, err = ExpandField(v, f.Width())
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", f, err)
			}
		}

		bs.spans = append(bs.spans, FieldSpan{
			Field: f,
			Value: v,
			Start: len(bs.bits),
			Bits:  fieldBits,
		})
		bs.bits = append(bs.bits, fieldBits...)
		for range fieldBits {
			bs.labels = append(bs.labels, f.String())
		}
	}
	return bs, nil
}

// Len returns the number of bits in the stream.
func (b *Bitstream) Len() int { return len(b.bits) }

// Bits returns a copy of the bit values.
func (b *Bitstream) Bits() []uint8 {
	return append([]uint8(nil), b.bits...)
}

// Labels returns one field name per bit position.
func (b *Bitstream) Labels() []string {
	return append([]string(nil), b.labels...)
}

// Spans returns the field layout of the stream.
func (b *Bitstream) Spans() []FieldSpan {
	out := make([]FieldSpan, len(b.spans))
	for i, s := range b.spans {
		s.Bits = append([]uint8(nil), s.Bits...)
		out[i] = s
	}
	return out
}

// String renders the stream as space separated per-field bit groups.
func (b *Bitstream) String() string {
	groups := make([]string, len(b.spans))
	for i, s := range b.spans {
		groups[i] = bitString(s.Bits)
	}
	return strings.Join(groups, " ")
}

func bitString(seq []uint8) string {
	var sb strings.Builder
	sb.Grow(len(seq))
	for _, bit := range seq {
		if bit == 1 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
