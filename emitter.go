package ts2abc

import (
	"encoding/binary"
	"fmt"
	"io"
)

// DefaultEmitter serializes a Program to a simple length-prefixed binary
// format: a magic/version header followed by the language tag, strings,
// literal arrays, records, and functions, each length-prefixed and written with
// little-endian fixed-width integers. It is a stand-in for the out-of-tree
// pandasm emitter (§1), generalized from the teacher's own binary.go wire
// format (magic+version header, length-prefixed strings, LittleEndian
// fixed ints) to this package's IR shapes.
type DefaultEmitter struct{}

var emitMagic = [4]byte{'T', 'S', '2', 'A'}

const emitVersion uint8 = 1

// Emit writes prog to w in the format described above.
func (e *DefaultEmitter) Emit(w io.Writer, prog *Program) error {
	if _, err := w.Write(emitMagic[:]); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, emitVersion); err != nil {
		return err
	}
	if err := writeString(w, prog.Lang); err != nil {
		return err
	}

	strs := make([]string, 0, len(prog.Strings))
	for s := range prog.Strings {
		strs = append(strs, s)
	}
	if err := writeUint32(w, uint32(len(strs))); err != nil {
		return err
	}
	for _, s := range strs {
		if err := writeString(w, s); err != nil {
			return err
		}
	}

	if err := writeUint32(w, uint32(len(prog.LiteralArrays))); err != nil {
		return err
	}
	for key, la := range prog.LiteralArrays {
		if err := writeString(w, key); err != nil {
			return err
		}
		if err := emitLiteralArray(w, la); err != nil {
			return err
		}
	}

	if err := writeUint32(w, uint32(len(prog.Records))); err != nil {
		return err
	}
	for _, rec := range prog.Records {
		if err := emitRecord(w, rec); err != nil {
			return err
		}
	}

	if err := writeUint32(w, uint32(len(prog.Functions))); err != nil {
		return err
	}
	for _, fn := range prog.Functions {
		if err := emitFunction(w, fn); err != nil {
			return err
		}
	}

	return nil
}

func emitLiteralArray(w io.Writer, la *LiteralArray) error {
	if err := writeUint32(w, uint32(len(la.Literals))); err != nil {
		return err
	}
	for _, lit := range la.Literals {
		if err := emitLiteral(w, lit); err != nil {
			return err
		}
	}
	return nil
}

func emitLiteral(w io.Writer, lit Literal) error {
	if err := binary.Write(w, binary.LittleEndian, uint8(lit.Tag)); err != nil {
		return err
	}
	switch lit.Tag {
	case TagBool:
		return binary.Write(w, binary.LittleEndian, lit.Bool)
	case TagInteger:
		return writeUint32(w, lit.Integer)
	case TagDouble:
		return binary.Write(w, binary.LittleEndian, lit.Double)
	case TagString, TagMethod, TagGeneratorMethod:
		return writeString(w, lit.Str)
	case TagAccessor, TagNullValue:
		return binary.Write(w, binary.LittleEndian, lit.U8)
	case TagMethodAffiliate:
		return binary.Write(w, binary.LittleEndian, lit.U16)
	case TagTagValue:
		return binary.Write(w, binary.LittleEndian, lit.TagByte)
	default:
		return nil
	}
}

func emitRecord(w io.Writer, rec *Record) error {
	if err := writeString(w, rec.Name); err != nil {
		return err
	}
	if err := writeString(w, rec.WholeLine); err != nil {
		return err
	}
	for _, v := range []uint64{rec.BoundLeft, rec.BoundRight, rec.LineNumber} {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return err
		}
	}
	if err := writeUint32(w, uint32(len(rec.Fields))); err != nil {
		return err
	}
	for _, f := range rec.Fields {
		if err := writeString(w, f.Name); err != nil {
			return err
		}
		if err := writeString(w, f.Value.TypeName); err != nil {
			return err
		}
		if err := writeUint32(w, f.Value.U32); err != nil {
			return err
		}
	}
	return emitMetadata(w, rec.Metadata)
}

func emitFunction(w io.Writer, fn *Function) error {
	if err := writeString(w, fn.Name); err != nil {
		return err
	}
	if err := writeString(w, fn.ReturnType); err != nil {
		return err
	}
	if err := writeUint32(w, fn.RegsNum); err != nil {
		return err
	}
	if err := writeUint32(w, uint32(len(fn.Ins))); err != nil {
		return err
	}
	for _, ins := range fn.Ins {
		if err := emitInstruction(w, ins); err != nil {
			return err
		}
	}
	return emitMetadata(w, fn.Metadata)
}

func emitInstruction(w io.Writer, ins Instruction) error {
	if err := binary.Write(w, binary.LittleEndian, int32(ins.Op)); err != nil {
		return err
	}
	if err := writeUint32(w, uint32(len(ins.Regs))); err != nil {
		return err
	}
	for _, r := range ins.Regs {
		if err := binary.Write(w, binary.LittleEndian, r); err != nil {
			return err
		}
	}
	if err := writeUint32(w, uint32(len(ins.Imms))); err != nil {
		return err
	}
	for _, imm := range ins.Imms {
		if err := binary.Write(w, binary.LittleEndian, imm.IsInt); err != nil {
			return err
		}
		if imm.IsInt {
			if err := binary.Write(w, binary.LittleEndian, imm.Int); err != nil {
				return err
			}
		} else if err := binary.Write(w, binary.LittleEndian, imm.Float); err != nil {
			return err
		}
	}
	return writeString(w, ins.Label)
}

func emitMetadata(w io.Writer, md *Metadata) error {
	if err := writeString(w, md.Attribute); err != nil {
		return err
	}
	if err := writeUint32(w, uint32(md.AccessFlags)); err != nil {
		return err
	}
	if err := writeUint32(w, uint32(len(md.Annotations))); err != nil {
		return err
	}
	for _, ann := range md.Annotations {
		if err := writeString(w, ann.Name); err != nil {
			return err
		}
		if err := writeUint32(w, uint32(len(ann.Elements))); err != nil {
			return err
		}
		for _, elem := range ann.Elements {
			if err := emitAnnotationElement(w, elem); err != nil {
				return err
			}
		}
	}
	return nil
}

func emitAnnotationElement(w io.Writer, elem AnnotationElement) error {
	if err := writeString(w, elem.Name); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, elem.IsArray); err != nil {
		return err
	}
	switch {
	case elem.IsArray && elem.Type == ValueI32:
		return writeInt32Slice(w, elem.ArrayI32)
	case elem.IsArray && elem.Type == ValueU32:
		return writeUint32Slice(w, elem.ArrayU32)
	case elem.IsArray && elem.Type == ValueString:
		if err := writeUint32(w, uint32(len(elem.ArrayStr))); err != nil {
			return err
		}
		for _, s := range elem.ArrayStr {
			if err := writeString(w, s); err != nil {
				return err
			}
		}
		return nil
	case elem.Type == ValueU32:
		return writeUint32(w, elem.ScalarU32)
	case elem.Type == ValueI32:
		return binary.Write(w, binary.LittleEndian, elem.ScalarI32)
	case elem.Type == ValueString:
		return writeString(w, elem.ScalarStr)
	default:
		return fmt.Errorf("ts2abc: unsupported annotation element type %d", elem.Type)
	}
}

func writeInt32Slice(w io.Writer, vs []int32) error {
	if err := writeUint32(w, uint32(len(vs))); err != nil {
		return err
	}
	for _, v := range vs {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return err
		}
	}
	return nil
}

func writeUint32Slice(w io.Writer, vs []uint32) error {
	if err := writeUint32(w, uint32(len(vs))); err != nil {
		return err
	}
	for _, v := range vs {
		if err := writeUint32(w, v); err != nil {
			return err
		}
	}
	return nil
}

func writeString(w io.Writer, s string) error {
	if err := writeUint32(w, uint32(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func writeUint32(w io.Writer, v uint32) error {
	return binary.Write(w, binary.LittleEndian, v)
}
