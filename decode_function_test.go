package ts2abc

import (
	"encoding/json"
	"testing"
)

func TestDecodeSingleFunctionBasic(t *testing.T) {
	raw := json.RawMessage(`{
		"n": "foo",
		"s": {"p": 2},
		"r": 4,
		"i": [
			{"o": 0},
			{"o": 3, "r": [0]}
		],
		"ca_tab": [
			{"tb_lab": "try_begin", "te_lab": "try_end", "cb_lab": "catch_0"}
		],
		"ct": 2
	}`)

	bc := NewBuildContext()
	prog := NewProgram()
	if err := decodeSingleFunction(bc, prog, raw); err != nil {
		t.Fatalf("decodeSingleFunction: %v", err)
	}

	fn, ok := prog.Functions["foo"]
	if !ok {
		t.Fatal("function \"foo\" not decoded")
	}
	if fn.ReturnType != "any" {
		t.Errorf("ReturnType = %q, want \"any\" (s present, rt absent)", fn.ReturnType)
	}
	if len(fn.Params) != 2 {
		t.Errorf("len(Params) = %d, want 2", len(fn.Params))
	}
	if len(fn.Ins) != 2 {
		t.Fatalf("len(Ins) = %d, want 2", len(fn.Ins))
	}

	if len(fn.CatchBlocks) != 1 {
		t.Fatalf("len(CatchBlocks) = %d, want 1", len(fn.CatchBlocks))
	}
	cb := fn.CatchBlocks[0]
	if cb.CatchBegin != "catch_0" || cb.CatchEnd != "catch_0" {
		t.Errorf("catch block begin/end = %q/%q, want both \"catch_0\"", cb.CatchBegin, cb.CatchEnd)
	}

	foundCallType := false
	for _, ann := range fn.Metadata.Annotations {
		if ann.Name == CallTypeAnnotationName {
			foundCallType = true
			if ann.Elements[0].ScalarU32 != 2 {
				t.Errorf("callType = %d, want 2", ann.Elements[0].ScalarU32)
			}
		}
	}
	if !foundCallType {
		t.Error("expected _ESCallTypeAnnotation to be synthesized for a non-main function")
	}
}

func TestDecodeSingleFunctionReturnTypeAbsentSignature(t *testing.T) {
	raw := json.RawMessage(`{"n": "bar", "r": 1, "i": []}`)
	bc := NewBuildContext()
	prog := NewProgram()
	if err := decodeSingleFunction(bc, prog, raw); err != nil {
		t.Fatalf("decodeSingleFunction: %v", err)
	}
	fn := prog.Functions["bar"]
	if fn.ReturnType != "" {
		t.Errorf("ReturnType = %q, want empty when \"s\" itself is absent", fn.ReturnType)
	}
}

func TestDecodeSingleFunctionMainSkipsCallType(t *testing.T) {
	raw := json.RawMessage(`{"n": "func_main_0", "r": 1, "i": []}`)
	bc := NewBuildContext()
	prog := NewProgram()
	if err := decodeSingleFunction(bc, prog, raw); err != nil {
		t.Fatalf("decodeSingleFunction: %v", err)
	}
	fn := prog.Functions["func_main_0"]
	for _, ann := range fn.Metadata.Annotations {
		if ann.Name == CallTypeAnnotationName {
			t.Error("func_main_0 should not receive a call-type annotation")
		}
	}
}

func TestDecodeSingleFunctionTypeInfoElementName(t *testing.T) {
	raw := json.RawMessage(`{"n": "foo", "r": 1, "i": [], "ti": [5, 7]}`)
	bc := NewBuildContext()
	prog := NewProgram()
	if err := decodeSingleFunction(bc, prog, raw); err != nil {
		t.Fatalf("decodeSingleFunction: %v", err)
	}
	fn := prog.Functions["foo"]

	var found *AnnotationElement
	for _, ann := range fn.Metadata.Annotations {
		if ann.Name != TypeAnnotationRecordName {
			continue
		}
		for i := range ann.Elements {
			if ann.Elements[i].Name == TypeAnnotationElementName {
				found = &ann.Elements[i]
			}
		}
	}
	if found == nil {
		t.Fatal("expected an element named _TypeOfInstruction synthesized from \"ti\"")
	}
	want := []uint32{0, 5, 1, 7}
	if len(found.ArrayU32) != len(want) {
		t.Fatalf("ArrayU32 = %v, want %v", found.ArrayU32, want)
	}
	for i := range want {
		if found.ArrayU32[i] != want[i] {
			t.Fatalf("ArrayU32 = %v, want %v", found.ArrayU32, want)
		}
	}
}

func TestDecodeSingleFunctionRepeatedNameIgnored(t *testing.T) {
	bc := NewBuildContext()
	prog := NewProgram()
	first := json.RawMessage(`{"n": "dup", "r": 1, "i": [], "ct": 1}`)
	second := json.RawMessage(`{"n": "dup", "r": 9, "i": [], "ct": 9}`)

	if err := decodeSingleFunction(bc, prog, first); err != nil {
		t.Fatalf("decodeSingleFunction (first): %v", err)
	}
	if err := decodeSingleFunction(bc, prog, second); err != nil {
		t.Fatalf("decodeSingleFunction (second): %v", err)
	}

	if got := prog.Functions["dup"].RegsNum; got != 1 {
		t.Errorf("RegsNum = %d, want 1 (second message should be ignored)", got)
	}
}
