package ts2abc

import "encoding/json"

type functionSignature struct {
	ReturnType *string `json:"rt"`
	ParamCount *uint32 `json:"p"`
}

type functionWire struct {
	Name      string            `json:"n"`
	Signature *functionSignature `json:"s"`
	RegsNum   uint32            `json:"r"`

	Instructions []json.RawMessage `json:"i"`
	Labels       []string          `json:"l"`
	CatchBlocks  []catchBlockWire  `json:"ca_tab"`

	Variables  []variableWire `json:"v"`
	SourceFile *string        `json:"sf"`
	SourceCode *string        `json:"sc"`

	CallType *uint32 `json:"ct"`
	TypeInfo []int32 `json:"ti"`

	ExportedTypes []symbolTypeWire `json:"es2t"`
	DeclaredTypes []symbolTypeWire `json:"ds2t"`
}

type catchBlockWire struct {
	TryBegin string `json:"tb_lab"`
	TryEnd   string `json:"te_lab"`
	Catch    string `json:"cb_lab"`
}

type variableWire struct {
	Name          string `json:"n"`
	Signature     string `json:"s"`
	SignatureType string `json:"st"`
	Reg           int32  `json:"r"`
	Start         uint32 `json:"start"`
	Length        uint32 `json:"len"`
}

type symbolTypeWire struct {
	Symbol string `json:"symbol"`
	Type   uint32 `json:"type"`
}

// decodeSingleFunction decodes a FUNCTION message's "fb" object and
// inserts the resulting Function into prog, following the original's
// exact sub-step order: definition, instructions, variable debug info,
// source-file debug info, labels, catch tables, call-type annotation,
// type-info annotation, exported-type annotation, declared-type
// annotation (§4.3).
func decodeSingleFunction(bc *BuildContext, prog *Program, raw json.RawMessage) error {
	var wire functionWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return err
	}

	fn := NewFunction(wire.Name)
	fn.RegsNum = wire.RegsNum

	// funcRetType only defaults to "any" when "s" is present but "rt" is
	// absent; if "s" itself is missing, the return type stays empty. This
	// matches the original's GetFunctionDefintion exactly.
	if wire.Signature != nil {
		if wire.Signature.ReturnType != nil {
			fn.ReturnType = *wire.Signature.ReturnType
		} else {
			fn.ReturnType = "any"
		}
		if wire.Signature.ParamCount != nil {
			fn.Params = make([]Type, *wire.Signature.ParamCount)
			for i := range fn.Params {
				fn.Params[i] = AnyType
			}
		}
	}

	for _, raw := range wire.Instructions {
		ins, err := decodeInstruction(raw, bc.DebugModeEnabled)
		if err != nil {
			return err
		}
		fn.Ins = append(fn.Ins, ins)
	}

	if bc.DebugModeEnabled {
		for _, v := range wire.Variables {
			fn.Variables = append(fn.Variables, LocalVariable{
				Name:          v.Name,
				Signature:     v.Signature,
				SignatureType: v.SignatureType,
				Reg:           v.Reg,
				Start:         v.Start,
				Length:        v.Length,
			})
		}
	}

	if wire.SourceFile != nil {
		fn.SourceFile = *wire.SourceFile
	}
	if bc.DebugModeEnabled && wire.SourceCode != nil {
		fn.SourceCode = *wire.SourceCode
	}

	for i, name := range wire.Labels {
		fn.Labels[name] = uint32(i)
	}

	for _, cb := range wire.CatchBlocks {
		// Both ends of the handler range collapse to the single "cb_lab"
		// value the front end emits; see DESIGN.md open question (a).
		fn.CatchBlocks = append(fn.CatchBlocks, CatchBlock{
			TryBegin:   cb.TryBegin,
			TryEnd:     cb.TryEnd,
			CatchBegin: cb.Catch,
			CatchEnd:   cb.Catch,
		})
	}

	decodeFunctionCallType(bc, fn, wire)
	decodeFunctionTypeInfo(fn, wire)
	decodeFunctionExportedType(fn, wire)
	decodeFunctionDeclaredType(fn, wire)

	prog.AddFunctionOnce(wire.Name, fn)
	return nil
}

// decodeFunctionCallType synthesizes an _ESCallTypeAnnotation unless debug
// mode is on or the function is func_main_0; "ct" defaults to 0 when
// absent, the annotation is still added (§4.3).
func decodeFunctionCallType(bc *BuildContext, fn *Function, wire functionWire) {
	if fn.Metadata == nil {
		return
	}
	if bc.DebugModeEnabled || isMainFunction(wire.Name) {
		return
	}
	callType := uint32(0)
	if wire.CallType != nil {
		callType = *wire.CallType
	}
	fn.Metadata.AddAnnotation(Annotation{
		Name: CallTypeAnnotationName,
		Elements: []AnnotationElement{{
			Name:      "callType",
			Type:      ValueU32,
			ScalarU32: callType,
		}},
	})
}

// decodeFunctionTypeInfo synthesizes the _ESTypeAnnotation element the
// type adapter later consumes (§4.9), from the flat "ti" array: position i
// pairs with typeInfo[i] as (vreg, type). Per DESIGN.md's resolution of
// the element-name question, this is emitted under TypeAnnotationElementName
// ("_TypeOfInstruction"), not the descriptive "typeOfVreg" name.
func decodeFunctionTypeInfo(fn *Function, wire functionWire) {
	if len(wire.TypeInfo) == 0 {
		return
	}
	elem := AnnotationElement{
		Name:     TypeAnnotationElementName,
		Type:     ValueU32,
		IsArray:  true,
		ArrayU32: make([]uint32, 0, len(wire.TypeInfo)*2),
	}
	for i, t := range wire.TypeInfo {
		elem.ArrayU32 = append(elem.ArrayU32, uint32(i), uint32(t))
	}
	fn.Metadata.AddAnnotation(Annotation{
		Name:     TypeAnnotationRecordName,
		Elements: []AnnotationElement{elem},
	})
}

// decodeFunctionExportedType/decodeFunctionDeclaredType only apply to
// func_main_0, per the original's ParseFunctionExportedType/
// ParseFunctionDeclaredType.
func decodeFunctionExportedType(fn *Function, wire functionWire) {
	if !isMainFunction(wire.Name) || len(wire.ExportedTypes) == 0 {
		return
	}
	symbols := make([]string, len(wire.ExportedTypes))
	types := make([]uint32, len(wire.ExportedTypes))
	for i, st := range wire.ExportedTypes {
		symbols[i] = NormalizeString(st.Symbol)
		types[i] = st.Type
	}
	fn.Metadata.AddAnnotation(Annotation{
		Name: TypeAnnotationRecordName,
		Elements: []AnnotationElement{
			{Name: "exportedSymbols", Type: ValueString, IsArray: true, ArrayStr: symbols},
			{Name: "exportedSymbolTypes", Type: ValueU32, IsArray: true, ArrayU32: types},
		},
	})
}

func decodeFunctionDeclaredType(fn *Function, wire functionWire) {
	if !isMainFunction(wire.Name) || len(wire.DeclaredTypes) == 0 {
		return
	}
	symbols := make([]string, len(wire.DeclaredTypes))
	types := make([]uint32, len(wire.DeclaredTypes))
	for i, st := range wire.DeclaredTypes {
		symbols[i] = NormalizeString(st.Symbol)
		types[i] = st.Type
	}
	fn.Metadata.AddAnnotation(Annotation{
		Name: TypeAnnotationRecordName,
		Elements: []AnnotationElement{
			{Name: "declaredSymbols", Type: ValueString, IsArray: true, ArrayStr: symbols},
			{Name: "declaredSymbolTypes", Type: ValueU32, IsArray: true, ArrayU32: types},
		},
	})
}

func isMainFunction(name string) bool {
	return name == "func_main_0"
}
