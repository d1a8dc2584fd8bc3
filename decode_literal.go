package ts2abc

import "encoding/json"

// decodeLiteral reads one literal object {"t": tag, "v": value} and
// appends its TAG_VALUE / value pair to la, per §4.5. Unknown tags still
// get a TAG_VALUE entry paired with a zero-value Literal, preserving the
// invariant that la.Literals always has even length; this mirrors the
// original ParseLiteral, whose switch's default case falls through to an
// unconditional emplace of the (empty) value literal.
func decodeLiteral(la *LiteralArray, raw json.RawMessage) error {
	var obj struct {
		Tag   uint8           `json:"t"`
		Value json.RawMessage `json:"v"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return err
	}

	la.AppendTag(obj.Tag)

	switch LiteralTag(obj.Tag) {
	case TagBool:
		var v bool
		_ = json.Unmarshal(obj.Value, &v)
		la.Literals = append(la.Literals, Literal{Tag: TagBool, Bool: v})
	case TagInteger:
		var v uint32
		_ = json.Unmarshal(obj.Value, &v)
		la.Literals = append(la.Literals, Literal{Tag: TagInteger, Integer: v})
	case TagDouble:
		var v float64
		_ = json.Unmarshal(obj.Value, &v)
		la.Literals = append(la.Literals, Literal{Tag: TagDouble, Double: v})
	case TagString, TagMethod, TagGeneratorMethod:
		var v string
		_ = json.Unmarshal(obj.Value, &v)
		la.Literals = append(la.Literals, Literal{Tag: LiteralTag(obj.Tag), Str: NormalizeString(v)})
	case TagAccessor:
		la.Literals = append(la.Literals, Literal{Tag: TagAccessor, U8: 0})
	case TagMethodAffiliate:
		var v uint16
		_ = json.Unmarshal(obj.Value, &v)
		la.Literals = append(la.Literals, Literal{Tag: TagMethodAffiliate, U16: v})
	case TagNullValue:
		la.Literals = append(la.Literals, Literal{Tag: TagNullValue, U8: 0})
	default:
		// Unknown tag: the TAG_VALUE entry above is kept, the value entry
		// below stays zero-valued, matching the original's unconditional
		// emplace after an unmatched switch.
		la.Literals = append(la.Literals, Literal{})
	}
	return nil
}

// decodeSingleLiteralBuffer reads a LITERALBUFFER message's "lb" array into a
// fresh LiteralArray and stores it under the current literal-array index,
// per §4.5/§4.7.
func decodeSingleLiteralBuffer(bc *BuildContext, prog *Program, raw json.RawMessage) error {
	var obj struct {
		LB []json.RawMessage `json:"lb"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return err
	}
	la := NewLiteralArray()
	for _, entry := range obj.LB {
		if err := decodeLiteral(la, entry); err != nil {
			return err
		}
	}
	key := formatLiteralArrayKey(bc.NextLiteralArrayIndex())
	if _, exists := prog.LiteralArrays[key]; !exists {
		prog.LiteralArrays[key] = la
	}
	return nil
}

func formatLiteralArrayKey(idx uint32) string {
	return uint32Key(idx)
}
