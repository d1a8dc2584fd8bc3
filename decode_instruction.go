package ts2abc

import (
	"encoding/json"
	"math"
)

// instructionWire is the raw shape of one instruction entry inside a
// function's "i" array, per §4.4.
type instructionWire struct {
	Op    *int              `json:"o"`
	Regs  []int32           `json:"r"`
	Ids   []string          `json:"id"`
	Imms  []float64         `json:"im"`
	Label string            `json:"l"`
	Debug *instructionDebug `json:"d"`
}

type instructionDebug struct {
	BoundLeft    *uint64 `json:"bl"`
	BoundRight   *uint64 `json:"br"`
	WholeLine    *string `json:"w"`
	ColumnNumber *uint32 `json:"c"`
	LineNumber   *uint64 `json:"l"`
}

// decodeInstruction decodes one instruction entry. debugMode gates whether
// bound_left/bound_right/whole_line/column_number are read, matching the
// original's GetDebugModeEnabled() guard; line_number is always read
// regardless of debug mode.
func decodeInstruction(raw json.RawMessage, debugMode bool) (Instruction, error) {
	var wire instructionWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return Instruction{}, err
	}

	ins := Instruction{
		Op:    ResolveOpcode(derefInt(wire.Op), wire.Op != nil),
		Regs:  wire.Regs,
		Ids:   wire.Ids,
		Label: wire.Label,
	}

	for _, imm := range wire.Imms {
		ins.Imms = append(ins.Imms, decodeImm(imm))
	}

	if wire.Debug != nil {
		if debugMode {
			if wire.Debug.BoundLeft != nil {
				ins.BoundLeft = *wire.Debug.BoundLeft
			}
			if wire.Debug.BoundRight != nil {
				ins.BoundRight = *wire.Debug.BoundRight
			}
			if wire.Debug.WholeLine != nil {
				ins.WholeLine = NormalizeString(*wire.Debug.WholeLine)
			}
			if wire.Debug.ColumnNumber != nil {
				ins.ColumnNumber = *wire.Debug.ColumnNumber
			}
		}
		if wire.Debug.LineNumber != nil {
			ins.LineNumber = *wire.Debug.LineNumber
		}
	}

	return ins, nil
}

// decodeImm applies §4.4's numeric policy: store an exact int64 when the
// value is integral and fits an int32, otherwise keep the float64 exactly
// as received. This matches the original's
// `modf(v, &intpart) == 0.0 && IsValidInt32(v)` check precisely, including
// the edge case of a large integral value (e.g. 3e9) that is exact but
// exceeds int32 range: that value is kept as a double, not truncated.
func decodeImm(v float64) ImmValue {
	intPart, frac := math.Modf(v)
	if frac == 0.0 && intPart >= math.MinInt32 && intPart <= math.MaxInt32 {
		return ImmValue{IsInt: true, Int: int64(intPart)}
	}
	return ImmValue{Float: v}
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
