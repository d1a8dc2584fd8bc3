package ts2abc

// AdaptTypes runs the type adapter over every function in prog (§4.9). It
// rewrites each qualifying function's vreg-indexed type map into an
// instruction-order-indexed one, and must run exactly once, after every
// message has been consumed — the vreg register numbering it relies on is
// only meaningful once a function's "i"/"r" fields are fully decoded.
func AdaptTypes(prog *Program) {
	for _, fn := range prog.Functions {
		adaptFunction(fn)
	}
}

// adaptFunction locates the first _ESTypeAnnotation annotation and, within
// it, the first element named _TypeOfInstruction, reads its flat (vreg,
// type) pairs, and — if any were found — rewrites them into
// (instructionOrder, type) pairs via handleTypeForFunction. Later
// _ESTypeAnnotation annotations are not searched. Functions with no such
// annotation/element are left untouched.
func adaptFunction(fn *Function) {
	annoIdx := len(fn.Metadata.Annotations)
	eleIdx := 0
	vregType := make(map[int32]int32)

	for ai, ann := range fn.Metadata.Annotations {
		if ann.Name != TypeAnnotationRecordName {
			continue
		}
		found := false
		for ei, elem := range ann.Elements {
			if elem.Name != TypeAnnotationElementName {
				continue
			}
			for i := 0; i+1 < len(elem.ArrayU32); i += 2 {
				vregType[int32(elem.ArrayU32[i])] = int32(elem.ArrayU32[i+1])
			}
			annoIdx, eleIdx = ai, ei
			found = true
			break
		}
		if !found {
			annoIdx, eleIdx = ai, len(ann.Elements)
		}
		break
	}

	if len(vregType) == 0 {
		return
	}
	handleTypeForFunction(fn, annoIdx, eleIdx, vregType)
}

// maybeArg reports whether instruction idx could be an argument-binding
// MOV_DYN: idx must fall within the function's declared parameter count
// and the opcode at that position must be MOV_DYN. This checks position
// and opcode only, never the instruction's actual registers.
func maybeArg(fn *Function, idx int) bool {
	return idx < len(fn.Params) && fn.Ins[idx].Op == OpMovDyn
}

// handleTypeForFunction walks fn's instructions in order, building
// orderType from vregType by tracing MOV_DYN (parameter binding) and
// STA_DYN (local binding) instructions, then commits the result via
// updateTypeAnnotation (§4.9).
func handleTypeForFunction(fn *Function, annoIdx, eleIdx int, vregType map[int32]int32) {
	orderType := make(map[int32]int32)
	finished := make(map[int32]bool)
	order := 0

	for i, ins := range fn.Ins {
		if ins.Op == INVALID {
			continue
		}
		order++

		isArg := maybeArg(fn, i)
		if !isArg && ins.Op != OpStaDyn {
			continue
		}

		if isArg {
			if len(ins.Regs) < 2 {
				continue
			}
			destVreg := ins.Regs[0]
			srcVreg := ins.Regs[1]
			if int(destVreg) >= len(fn.Params) || uint32(srcVreg) < fn.RegsNum {
				continue
			}
			if finished[destVreg] {
				continue
			}
			if t, ok := vregType[destVreg]; ok {
				argOrder := int32(fn.RegsNum) - srcVreg - 1
				orderType[argOrder] = t
				finished[destVreg] = true
			}
			continue
		}

		// ins.Op == OpStaDyn
		if len(ins.Regs) == 0 {
			continue
		}
		vreg := ins.Regs[0]
		if finished[vreg] {
			continue
		}
		if t, ok := vregType[vreg]; ok {
			orderType[int32(order)-1] = t
			finished[vreg] = true
		}
	}

	updateTypeAnnotation(fn, annoIdx, eleIdx, orderType)
}

// updateTypeAnnotation writes orderType back into fn's metadata at
// (annoIdx, eleIdx) as a flat (order, type) I32 array named
// _TypeOfInstruction, creating a fresh _ESTypeAnnotation if none was found
// during the scan (annoIdx == len(Annotations)). Map iteration order is
// unspecified; callers must only depend on membership and value, never on
// the emitted element order (§4.9 Determinism).
func updateTypeAnnotation(fn *Function, annoIdx, eleIdx int, orderType map[int32]int32) {
	if annoIdx == len(fn.Metadata.Annotations) {
		fn.Metadata.AddAnnotation(Annotation{Name: TypeAnnotationRecordName})
		eleIdx = 0
	}

	elem := AnnotationElement{
		Name:    TypeAnnotationElementName,
		Type:    ValueI32,
		IsArray: true,
	}
	for order, t := range orderType {
		elem.ArrayI32 = append(elem.ArrayI32, order, t)
	}

	fn.Metadata.SetOrAddElementByIndex(annoIdx, eleIdx, elem)
}
