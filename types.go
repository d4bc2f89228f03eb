package main

// CANFrame represents a parsed CAN bus frame
type CANFrame struct {
	Timestamp  string
	ID         string
	IsExtended bool
	Direction  string
	Bus        int
	Length     int
	Data       []byte
}

// Field identifies one section of the drawn frame, in frame order.
type Field int

const (
	FieldSOF Field = iota
	FieldID
	FieldDLC
	FieldData
	FieldEOF
)

// frameOrder lists the fields in the order they appear on the wire.
var frameOrder = [...]Field{FieldSOF, FieldID, FieldDLC, FieldData, FieldEOF}

var fieldNames = [...]string{
	FieldSOF:  "SOF",
	FieldID:   "ID",
	FieldDLC:  "DLC",
	FieldData: "D",
	FieldEOF:  "EOF",
}

var fieldWidths = [...]int{
	FieldSOF:  1,
	FieldID:   11,
	FieldDLC:  4,
	FieldData: 8,
	FieldEOF:  7,
}

// String returns the axis label used for the field.
func (f Field) String() string {
	if f < FieldSOF || f > FieldEOF {
		return "?"
	}
	return fieldNames[f]
}

// Width returns the nominal number of bits the field occupies.
func (f Field) Width() int {
	if f < FieldSOF || f > FieldEOF {
		return 0
	}
	return fieldWidths[f]
}

// FrameFields holds the integer value of every field before expansion
type FrameFields struct {
	SOF  int
	ID   int
	DLC  int
	Data int
	EOF  int
}

// DefaultFrameFields is the frame drawn when nothing else is given.
var DefaultFrameFields = FrameFields{
	SOF:  0x0,
	ID:   0x123,
	DLC:  0x1,
	Data: 0x56,
	EOF:  0x7F,
}

// Value returns the integer stored for f.
func (ff FrameFields) Value(f Field) int {
	switch f {
	case FieldSOF:
		return ff.SOF
	case FieldID:
		return ff.ID
	case FieldDLC:
		return ff.DLC
	case FieldData:
		return ff.Data
	case FieldEOF:
		return ff.EOF
	}
	return 0
}

// FieldSpan records where a field landed in the bitstream
type FieldSpan struct {
	Field Field
	Value int
	Start int
	Bits  []uint8
}

// End returns the index one past the last bit of the span.
func (s FieldSpan) End() int {
	return s.Start + len(s.Bits)
}
