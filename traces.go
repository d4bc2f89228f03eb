package main

// LevelPair holds the plotted value for each bit state of one trace.
// Dominant is drawn for bit 1, Recessive for bit 0.
type LevelPair struct {
	Dominant  float64
	Recessive float64
}

// Level maps a bit to its plotted value
func (lp LevelPair) Level(bit uint8) float64 {
	if bit == 1 {
		return lp.Dominant
	}
	return lp.Recessive
}

var (
	BitstreamLevels = LevelPair{Dominant: 4.8, Recessive: 3.8}
	CANHighLevels   = LevelPair{Dominant: 2.5, Recessive: 3.5}
	CANLowLevels    = LevelPair{Dominant: 2.4, Recessive: 1.4}
)

// Trace is one plotted series derived from the bitstream
type Trace struct {
	Name   string
	Levels LevelPair
	Values []float64
}

// Traces groups the three series drawn for a frame.
type Traces struct {
	Bitstream Trace
	CANHigh   Trace
	CANLow    Trace
}

// All returns the traces in drawing order.
func (t Traces) All() []Trace {
	return []Trace{t.Bitstream, t.CANHigh, t.CANLow}
}

// BuildTraces maps every bit to its level on each trace.
func BuildTraces(bs *Bitstream) Traces {
	seq := bs.Bits()
	return Traces{
		Bitstream: buildTrace("Bitstream", BitstreamLevels, seq),
		CANHigh:   buildTrace("CAN High", CANHighLevels, seq),
		CANLow:    buildTrace("CAN Low", CANLowLevels, seq),
	}
}

func buildTrace(name string, levels LevelPair, seq []uint8) Trace {
	values := make([]float64, len(seq))
	for i, bit := range seq {
		values[i] = levels.Level(bit)
	}
	return Trace{Name: name, Levels: levels, Values: values}
}

// VoltageTick is a labelled position on the voltage axis.
type VoltageTick struct {
	Value float64
	Label string
}

// voltageTicks are placed at the trace levels, labelled with the nominal bus
// voltage they stand for.
var voltageTicks = []VoltageTick{
	{Value: 0.5, Label: "0 V"},
	{Value: 1.4, Label: "1.5 V"},
	{Value: 2.45, Label: "2.5 V"},
	{Value: 3.5, Label: "3.5 V"},
}
