package ts2abc

import (
	"bytes"
	"testing"
)

// TestEndToEndFunctionWithTypeInfo exercises the full pipeline for a single
// function message carrying a "ti" array: decode -> type adapter -> emit,
// matching end-to-end scenario 1's shape (a function whose two parameters
// and one local each get a type, rewritten from vreg-indexed to
// instruction-order-indexed form).
func TestEndToEndFunctionWithTypeInfo(t *testing.T) {
	bc := NewBuildContext()
	prog := NewProgram()

	frame := `$` + `{` +
		`"t":0,` +
		`"fb":{` +
		`"n":"func_main_0",` +
		`"s":{"p":2},` +
		`"r":3,` +
		`"i":[` +
		`{"o":1,"r":[0,3]},` +
		`{"o":1,"r":[1,4]},` +
		`{"o":4,"r":[2]}` +
		`],` +
		`"ti":[1,1,1]` +
		`}` +
		`}` + `$`

	s := NewStream(bc, prog, nil)
	if err := s.Feed([]byte(frame)); err != nil {
		t.Fatalf("Feed: %v", err)
	}
	s.Close()

	fn, ok := prog.Functions["func_main_0"]
	if !ok {
		t.Fatal("function not decoded")
	}

	AdaptTypes(prog)

	var rewritten []int32
	for _, ann := range fn.Metadata.Annotations {
		if ann.Name != TypeAnnotationRecordName {
			continue
		}
		for _, elem := range ann.Elements {
			if elem.Name == TypeAnnotationElementName && elem.Type == ValueI32 {
				rewritten = elem.ArrayI32
			}
		}
	}
	if rewritten == nil {
		t.Fatal("expected the type adapter to rewrite a _TypeOfInstruction element")
	}

	var emitted bytes.Buffer
	if err := (&DefaultEmitter{}).Emit(&emitted, prog); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if emitted.Len() == 0 {
		t.Error("expected non-empty emitted output")
	}
	if !bytes.HasPrefix(emitted.Bytes(), emitMagic[:]) {
		t.Error("expected emitted output to start with the magic header")
	}
}

// TestEndToEndBuilderOptLevelTwoPassEmit exercises Builder.BuildFromReader
// end to end with opt_level > 0, verifying the two-pass emit contract
// still produces output.
func TestEndToEndBuilderOptLevelTwoPassEmit(t *testing.T) {
	input := `$` + `{"t":5,"opt_level":1}` + `$` +
		`$` + `{"t":2,"s":["hello"]}` + `$`

	b := NewBuilder()
	var out bytes.Buffer
	if err := b.BuildFromReader(bytes.NewBufferString(input), &out); err != nil {
		t.Fatalf("BuildFromReader: %v", err)
	}
	if b.BC.OptLevel != 1 {
		t.Fatalf("OptLevel = %d, want 1", b.BC.OptLevel)
	}
	if out.Len() == 0 {
		t.Error("expected non-empty output after two-pass emit")
	}
}

// TestEndToEndModulePipeline exercises a module_mode=true OPTIONS message
// followed by a MODULE message, verifying the _ESModuleRecord gets its
// field and the literal array is stored.
func TestEndToEndModulePipeline(t *testing.T) {
	input := `$` + `{"t":5,"module_mode":true}` + `$` +
		`$` + `{"t":4,"mod":{"moduleName":"./m","moduleRequests":["./dep"]}}` + `$`

	bc := NewBuildContext()
	prog := NewProgram()
	s := NewStream(bc, prog, nil)
	if err := s.Feed([]byte(input)); err != nil {
		t.Fatalf("Feed: %v", err)
	}
	s.Close()

	rec, ok := prog.Records[moduleRecordName]
	if !ok {
		t.Fatal("expected _ESModuleRecord to exist")
	}
	if len(rec.Fields) != 1 || rec.Fields[0].Name != "./m" {
		t.Fatalf("unexpected module record fields: %+v", rec.Fields)
	}
	if _, ok := prog.LiteralArrays["0"]; !ok {
		t.Error("expected the module's literal array to be stored under key \"0\"")
	}
}
