package ts2abc

// ValueType identifies the scalar or array element type carried by an
// AnnotationElement. This is a small closed enum, mirroring the teacher's
// approach of one tagged-union-by-convention type per domain concept.
type ValueType uint8

const (
	ValueI32 ValueType = iota
	ValueU32
	ValueU8
	ValueU16
	ValueString
)

// AnnotationElement is one named member of an Annotation. Exactly one of
// Scalar or Array is meaningful, selected by IsArray; this mirrors the same
// "plain struct, doc comment names the active field" idiom used on
// Instruction and Literal elsewhere in this package.
type AnnotationElement struct {
	Name string
	Type ValueType

	IsArray bool

	ScalarI32 int32  // valid when !IsArray && Type == ValueI32
	ScalarU32 uint32 // valid when !IsArray && Type == ValueU32
	ScalarU8  uint8  // valid when !IsArray && Type == ValueU8
	ScalarStr string // valid when !IsArray && Type == ValueString

	ArrayI32 []int32  // valid when IsArray && Type == ValueI32
	ArrayU32 []uint32 // valid when IsArray && Type == ValueU32
	ArrayStr []string // valid when IsArray && Type == ValueString
}

// Annotation is a named, ordered list of AnnotationElements attached to a
// Function or Record's Metadata. §4.3/§4.9 rely on annotations being
// ordered lists rather than maps: a function can carry multiple
// annotations sharing the same Name, disambiguated only by their position
// in the slice.
type Annotation struct {
	Name     string
	Elements []AnnotationElement
}

// Names used for the type-adapter annotation; see §4.9 and DESIGN.md for
// the resolution of the element-name naming question.
const (
	TypeAnnotationRecordName  = "_ESTypeAnnotation"
	TypeAnnotationElementName = "_TypeOfInstruction"
	CallTypeAnnotationName    = "_ESCallTypeAnnotation"
)
