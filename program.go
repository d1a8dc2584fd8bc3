package ts2abc

// Instruction is one decoded bytecode instruction within a Function body.
// Fields not meaningful for a given Op are left at their zero value; this
// is a plain struct rather than a tagged union, following the same
// convention used by Literal and AnnotationElement elsewhere in this
// package.
type Instruction struct {
	Op Opcode

	Regs []int32
	Ids   []string
	Imms  []ImmValue

	Label string

	// Debug info. BoundLeft/BoundRight/WholeLine/ColumnNumber are only
	// populated in debug mode; LineNumber is populated in every mode
	// (§4.3/§4.4).
	BoundLeft    uint64
	BoundRight   uint64
	WholeLine    string
	ColumnNumber uint32
	LineNumber   uint64
}

// ImmValue holds one immediate operand. The decoder stores an exact int64
// whenever the source value is integral and fits an int32 (IsInt true);
// otherwise the original float64 is kept untouched, matching §4.4's
// numeric policy exactly (no rounding, no narrowing of out-of-range
// integral values).
type ImmValue struct {
	IsInt bool
	Int   int64
	Float float64
}

// Program is the root of the in-memory assembly IR assembled from the
// front end's JSON message stream. It accumulates functions, records, and
// literal arrays as messages are decoded; nothing is resolved or validated
// until an Emitter consumes it.
type Program struct {
	Lang string

	Functions     map[string]*Function
	Records       map[string]*Record
	Strings       map[string]struct{}
	LiteralArrays map[string]*LiteralArray
}

// NewProgram returns an empty Program ready to receive decoded messages.
func NewProgram() *Program {
	return &Program{
		Lang:          "ECMASCRIPT",
		Functions:     make(map[string]*Function),
		Records:       make(map[string]*Record),
		Strings:       make(map[string]struct{}),
		LiteralArrays: make(map[string]*LiteralArray),
	}
}

// AddFunctionOnce inserts fn under name unless the name is already taken,
// matching the original decoder's use of an emplace-style map insert: a
// repeated FUNCTION message for the same name is silently ignored.
func (p *Program) AddFunctionOnce(name string, fn *Function) {
	if _, exists := p.Functions[name]; exists {
		return
	}
	p.Functions[name] = fn
}

// AddRecordOnce inserts rec under name unless the name is already taken.
func (p *Program) AddRecordOnce(name string, rec *Record) {
	if _, exists := p.Records[name]; exists {
		return
	}
	p.Records[name] = rec
}

// Type is a parameter/field type annotation. Every decoded parameter
// defaults to the "any" type (§4.3); no static type inference is performed.
type Type struct {
	Name string
	Rank int
}

// AnyType is the default parameter type used whenever the front end gives
// no more specific information.
var AnyType = Type{Name: "any", Rank: 0}

// LocalVariable is one debug-info record describing a local variable's
// name, signature, storage kind, register, and live range. Only populated
// when debug mode is enabled (§4.3).
type LocalVariable struct {
	Name          string
	Signature     string
	SignatureType string
	Reg           int32
	Start         uint32
	Length        uint32
}

// CatchBlock is one exception-handler range within a function.
// CatchBegin/CatchEnd are both set from the single "cb_lab" field the
// front end emits: the original decoder collapses the handler to a single
// label rather than a begin/end pair (see DESIGN.md open question (a)).
type CatchBlock struct {
	TryBegin   string
	TryEnd     string
	CatchBegin string
	CatchEnd   string
}

// Function is one decoded function body plus its debug info and
// annotations.
type Function struct {
	Name       string
	ReturnType string
	Params     []Type
	RegsNum    uint32

	Ins         []Instruction
	Labels      map[string]uint32
	CatchBlocks []CatchBlock

	Variables  []LocalVariable
	SourceFile string
	SourceCode string

	Metadata *Metadata
}

// NewFunction returns a Function with its maps/metadata initialized.
func NewFunction(name string) *Function {
	return &Function{
		Name:     name,
		Labels:   make(map[string]uint32),
		Metadata: NewMetadata(),
	}
}

// FieldValue carries a single typed scalar for a Record Field (used by the
// module record's per-module-request fields, §4.7).
type FieldValue struct {
	TypeName string
	U32      uint32
}

// Field is one named member of a Record (distinct from AnnotationElement:
// fields belong to records directly, not to an annotation attached to
// one).
type Field struct {
	Name  string
	Value FieldValue
}

// Record is a decoded record (class/namespace-like container) or one of
// the synthetic records the options/module/typeinfo decoders generate
// (_ESCallTypeAnnotation, _ESTypeAnnotation, _ESModuleRecord,
// _ESTypeInfoRecord).
type Record struct {
	Name       string
	WholeLine  string
	BoundLeft  uint64
	BoundRight uint64
	LineNumber uint64

	Fields   []Field
	Metadata *Metadata
}

// NewRecord returns a Record with its metadata initialized.
func NewRecord(name string) *Record {
	return &Record{Name: name, Metadata: NewMetadata()}
}

// AccessFlags mirror the small closed set the decoders assign; only the
// flags actually produced by this package's decoders are named.
type AccessFlags uint32

const (
	AccNone       AccessFlags = 0
	AccPublic     AccessFlags = 1 << 0
	AccAnnotation AccessFlags = 1 << 1
)

// Metadata holds the access flags, attribute, and annotation list attached
// to a Function or Record.
type Metadata struct {
	Attribute   string
	AccessFlags AccessFlags
	Annotations []Annotation
}

// NewMetadata returns an empty Metadata.
func NewMetadata() *Metadata {
	return &Metadata{}
}

// AddAnnotation appends ann to m's annotation list. Multiple annotations
// with the same Name are permitted and disambiguated positionally (§4.3).
func (m *Metadata) AddAnnotation(ann Annotation) {
	m.Annotations = append(m.Annotations, ann)
}

// SetOrAddElementByIndex replaces the element at (annoIdx, eleIdx),
// growing the element list as needed, or appends a fresh annotation when
// annoIdx equals len(m.Annotations). This mirrors the original type
// adapter's SetOrAddAnnotationElementByIndex: it overwrites whatever was
// at that position, including its name, rather than merging into it.
func (m *Metadata) SetOrAddElementByIndex(annoIdx, eleIdx int, elem AnnotationElement) {
	if annoIdx == len(m.Annotations) {
		m.Annotations = append(m.Annotations, Annotation{Name: elem.Name})
	}
	ann := &m.Annotations[annoIdx]
	if eleIdx == len(ann.Elements) {
		ann.Elements = append(ann.Elements, elem)
		return
	}
	ann.Elements[eleIdx] = elem
}

// BuildContext holds the process-wide mutable state that the original
// driver kept as file-scope globals: debug flags, optimizer settings, and
// the literal-array allocation counter. A pointer to one BuildContext is
// threaded through every decoder instead (§5, §9).
type BuildContext struct {
	DebugModeEnabled bool
	LogEnabled       bool

	OptLevel    int
	OptLogLevel string

	literalArrayCount uint32

	ModuleMode bool
}

// NewBuildContext returns a BuildContext with the original driver's
// defaults: opt level 0, log level "error".
func NewBuildContext() *BuildContext {
	return &BuildContext{OptLogLevel: "error"}
}

// NextLiteralArrayIndex returns the current literal-array counter value
// and then increments it, matching the original's post-increment
// `std::to_string(g_literalArrayCount++)` usage.
func (bc *BuildContext) NextLiteralArrayIndex() uint32 {
	idx := bc.literalArrayCount
	bc.literalArrayCount++
	return idx
}

// Logd logs msg only when logging is enabled (LogEnabled), mirroring the
// original driver's log-flag-gated Logd helper.
func (bc *BuildContext) Logd(logger Logger, msg string) {
	if bc.LogEnabled && logger != nil {
		logger.Printf("%s", msg)
	}
}

// Logger is the minimal logging surface the builder depends on. The
// standard library's *log.Logger satisfies it; no logging dependency is
// pulled in (see DESIGN.md).
type Logger interface {
	Printf(format string, args ...any)
}
