package ts2abc

import "encoding/json"

type optionsWire struct {
	ModuleMode *bool   `json:"module_mode"`
	LogEnabled *bool   `json:"log_enabled"`
	DebugMode  *bool   `json:"debug_mode"`
	OptLevel   *int    `json:"opt_level"`
	OptLogLevel *string `json:"opt_log_level"`
}

// decodeOptions handles an OPTIONS message (§4.10). It always generates
// the call-type and type-annotation synthetic records first, regardless of
// module_mode, then applies each setting in the original's exact order:
// module_mode, log_enabled, debug_mode, opt_level, opt_log_level.
func decodeOptions(bc *BuildContext, prog *Program, envelope map[string]json.RawMessage) error {
	generateCallTypeAnnotationRecord(prog)
	generateTypeAnnotationRecord(prog)

	var wire optionsWire
	raw, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return err
	}

	if wire.ModuleMode != nil && *wire.ModuleMode {
		bc.ModuleMode = true
		generateModuleRecord(prog)
	}
	if wire.LogEnabled != nil {
		bc.LogEnabled = *wire.LogEnabled
	}
	if wire.DebugMode != nil {
		bc.DebugModeEnabled = *wire.DebugMode
	}
	if wire.OptLevel != nil {
		bc.OptLevel = *wire.OptLevel
		// opt_level is forced to 0 when debug mode is on, matching the
		// original's ParseOptLevel.
		if bc.DebugModeEnabled {
			bc.OptLevel = 0
		}
	}
	if wire.OptLogLevel != nil {
		bc.OptLogLevel = *wire.OptLogLevel
	}
	return nil
}

func generateCallTypeAnnotationRecord(prog *Program) {
	rec := NewRecord(CallTypeAnnotationName)
	rec.Metadata.Attribute = "external"
	rec.Metadata.AccessFlags = AccAnnotation
	prog.AddRecordOnce(CallTypeAnnotationName, rec)
}

func generateTypeAnnotationRecord(prog *Program) {
	rec := NewRecord(TypeAnnotationRecordName)
	rec.Metadata.Attribute = "external"
	rec.Metadata.AccessFlags = AccAnnotation
	prog.AddRecordOnce(TypeAnnotationRecordName, rec)
}
