package ts2abc

import "encoding/json"

type recordWire struct {
	Name      string          `json:"name"`
	WholeLine string          `json:"whole_line"`
	BoundLeft *int64          `json:"bound_left"`
	BoundRight *int64         `json:"bound_right"`
	LineNumber *int64         `json:"line_number"`
	Metadata  *recordMetadata `json:"metadata"`
}

type recordMetadata struct {
	Attribute string `json:"attribute"`
}

// decodeSingleRecord decodes a RECORD message's "rb" object, per §4.8.
// bound_left/bound_right/line_number default to -1 when absent and are
// then reinterpreted as a (very large) unsigned value, matching the
// original's signed-default-then-cast-to-size_t quirk exactly.
func decodeSingleRecord(prog *Program, raw json.RawMessage) error {
	var wire recordWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return err
	}

	rec := NewRecord(wire.Name)
	rec.WholeLine = NormalizeString(wire.WholeLine)
	rec.BoundLeft = defaultedUint64(wire.BoundLeft)
	rec.BoundRight = defaultedUint64(wire.BoundRight)
	rec.LineNumber = defaultedUint64(wire.LineNumber)
	if wire.Metadata != nil && wire.Metadata.Attribute != "" {
		rec.Metadata.Attribute = wire.Metadata.Attribute
	}

	prog.AddRecordOnce(wire.Name, rec)
	return nil
}

func defaultedUint64(p *int64) uint64 {
	v := int64(-1)
	if p != nil {
		v = *p
	}
	return uint64(v)
}

type typeInfoWire struct {
	TypeFlag         bool   `json:"tf"`
	TypeSummaryIndex uint32 `json:"tsi"`
}

// typeInfoRecordName is the synthetic record the TYPEINFO message
// populates; it is created once (§4.10): repeated TYPEINFO messages after
// the first are silently ignored, matching the original's emplace-style
// record_table insert.
const typeInfoRecordName = "_ESTypeInfoRecord"

func decodeSingleTypeInfo(prog *Program, raw json.RawMessage) error {
	var wire typeInfoWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return err
	}

	rec := NewRecord(typeInfoRecordName)
	rec.Metadata.AccessFlags = AccPublic
	typeFlag := uint8(0)
	if wire.TypeFlag {
		typeFlag = 1
	}
	rec.Fields = []Field{
		{Name: "typeFlag", Value: FieldValue{TypeName: "u8", U32: uint32(typeFlag)}},
		{Name: "typeSummaryIndex", Value: FieldValue{TypeName: "u32", U32: wire.TypeSummaryIndex}},
	}
	prog.AddRecordOnce(typeInfoRecordName, rec)
	return nil
}
