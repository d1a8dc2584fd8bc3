package ts2abc

import (
	"encoding/json"
	"testing"
)

func TestDecodeOptionsGeneratesAnnotationRecordsUnconditionally(t *testing.T) {
	bc := NewBuildContext()
	prog := NewProgram()
	envelope := map[string]json.RawMessage{
		"t": json.RawMessage(`5`),
	}
	if err := decodeOptions(bc, prog, envelope); err != nil {
		t.Fatalf("decodeOptions: %v", err)
	}
	if _, ok := prog.Records[CallTypeAnnotationName]; !ok {
		t.Error("expected _ESCallTypeAnnotation record even with module_mode absent")
	}
	if _, ok := prog.Records[TypeAnnotationRecordName]; !ok {
		t.Error("expected _ESTypeAnnotation record even with module_mode absent")
	}
	if _, ok := prog.Records[moduleRecordName]; ok {
		t.Error("did not expect _ESModuleRecord without module_mode=true")
	}
}

func TestDecodeOptionsModuleModeCreatesModuleRecord(t *testing.T) {
	bc := NewBuildContext()
	prog := NewProgram()
	envelope := map[string]json.RawMessage{
		"module_mode": json.RawMessage(`true`),
	}
	if err := decodeOptions(bc, prog, envelope); err != nil {
		t.Fatalf("decodeOptions: %v", err)
	}
	if _, ok := prog.Records[moduleRecordName]; !ok {
		t.Error("expected _ESModuleRecord when module_mode=true")
	}
	if !bc.ModuleMode {
		t.Error("expected BuildContext.ModuleMode to be set")
	}
}

func TestDecodeOptionsDebugModeForcesOptLevelZero(t *testing.T) {
	bc := NewBuildContext()
	prog := NewProgram()
	envelope := map[string]json.RawMessage{
		"debug_mode": json.RawMessage(`true`),
		"opt_level":  json.RawMessage(`2`),
	}
	if err := decodeOptions(bc, prog, envelope); err != nil {
		t.Fatalf("decodeOptions: %v", err)
	}
	if !bc.DebugModeEnabled {
		t.Fatal("expected DebugModeEnabled to be set")
	}
	if bc.OptLevel != 0 {
		t.Errorf("OptLevel = %d, want 0 when debug mode is on", bc.OptLevel)
	}
}
