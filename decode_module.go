package ts2abc

import "encoding/json"

const moduleRecordName = "_ESModuleRecord"

type moduleWire struct {
	ModuleName string `json:"moduleName"`

	ModuleRequests        []string                  `json:"moduleRequests"`
	RegularImportEntries  []regularImportEntryWire  `json:"regularImportEntries"`
	NamespaceImportEntries []namespaceImportEntryWire `json:"namespaceImportEntries"`
	LocalExportEntries    []localExportEntryWire   `json:"localExportEntries"`
	IndirectExportEntries []indirectExportEntryWire `json:"indirectExportEntries"`
	StarExportEntries     []starExportEntryWire    `json:"starExportEntries"`
}

type regularImportEntryWire struct {
	LocalName      string `json:"localName"`
	ImportName     string `json:"importName"`
	ModuleRequest  uint16 `json:"moduleRequest"`
}

type namespaceImportEntryWire struct {
	LocalName     string `json:"localName"`
	ModuleRequest uint16 `json:"moduleRequest"`
}

type localExportEntryWire struct {
	LocalName  string `json:"localName"`
	ExportName string `json:"exportName"`
}

type indirectExportEntryWire struct {
	ExportName    string `json:"exportName"`
	ImportName    string `json:"importName"`
	ModuleRequest uint16 `json:"moduleRequest"`
}

type starExportEntryWire struct {
	ModuleRequest uint16 `json:"moduleRequest"`
}

// decodeSingleModule decodes a MODULE message's "mod" object into a single
// LiteralArray laid out as six fixed sections, in this exact order (§4.7):
// moduleRequests, regularImportEntries, namespaceImportEntries,
// localExportEntries, indirectExportEntries, starExportEntries. Each
// section is prefixed by an INTEGER literal giving its entry count.
func decodeSingleModule(bc *BuildContext, prog *Program, raw json.RawMessage) error {
	var wire moduleWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return err
	}

	la := NewLiteralArray()

	la.AppendInteger(uint32(len(wire.ModuleRequests)))
	for _, req := range wire.ModuleRequests {
		la.AppendString(NormalizeString(req))
	}

	la.AppendInteger(uint32(len(wire.RegularImportEntries)))
	for _, e := range wire.RegularImportEntries {
		la.AppendString(NormalizeString(e.LocalName))
		la.AppendString(NormalizeString(e.ImportName))
		la.AppendMethodAffiliate(e.ModuleRequest)
	}

	la.AppendInteger(uint32(len(wire.NamespaceImportEntries)))
	for _, e := range wire.NamespaceImportEntries {
		la.AppendString(NormalizeString(e.LocalName))
		la.AppendMethodAffiliate(e.ModuleRequest)
	}

	la.AppendInteger(uint32(len(wire.LocalExportEntries)))
	for _, e := range wire.LocalExportEntries {
		la.AppendString(NormalizeString(e.LocalName))
		la.AppendString(NormalizeString(e.ExportName))
	}

	la.AppendInteger(uint32(len(wire.IndirectExportEntries)))
	for _, e := range wire.IndirectExportEntries {
		la.AppendString(NormalizeString(e.ExportName))
		la.AppendString(NormalizeString(e.ImportName))
		la.AppendMethodAffiliate(e.ModuleRequest)
	}

	la.AppendInteger(uint32(len(wire.StarExportEntries)))
	for _, e := range wire.StarExportEntries {
		la.AppendMethodAffiliate(e.ModuleRequest)
	}

	// The counter's current value (before increment) is used both as the
	// module's field value and as the key the array is stored under — the
	// field value and the literal-array key it names are always equal, per
	// the original's AddModuleRecord/ParseSingleModule ordering.
	idx := bc.NextLiteralArrayIndex()
	addModuleRecordField(prog, NormalizeString(wire.ModuleName), idx)
	prog.LiteralArrays[uint32Key(idx)] = la
	return nil
}

// addModuleRecordField appends a u32 field named moduleName with value
// moduleIdx to the _ESModuleRecord, if one exists (i.e. module mode was
// enabled via the OPTIONS message). A no-op otherwise, matching the
// original AddModuleRecord's lookup-or-skip behavior.
func addModuleRecordField(prog *Program, moduleName string, moduleIdx uint32) {
	rec, ok := prog.Records[moduleRecordName]
	if !ok {
		return
	}
	rec.Fields = append(rec.Fields, Field{
		Name:  moduleName,
		Value: FieldValue{TypeName: "u32", U32: moduleIdx},
	})
}

// generateModuleRecord creates the _ESModuleRecord with ACC_PUBLIC, called
// from the OPTIONS decoder when "module_mode" is true.
func generateModuleRecord(prog *Program) {
	rec := NewRecord(moduleRecordName)
	rec.Metadata.AccessFlags = AccPublic
	prog.AddRecordOnce(moduleRecordName, rec)
}
