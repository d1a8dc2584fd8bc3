package ts2abc

import (
	"encoding/json"
	"fmt"

	"github.com/secureworks/errors"
)

// MessageType identifies the kind of payload a decoded frame carries, read
// from its "t" field. The declaration order matches the dispatch switch in
// the original driver.
type MessageType int

const (
	MsgFunction MessageType = iota
	MsgRecord
	MsgString
	MsgLiteralBuffer
	MsgModule
	MsgOptions
	MsgTypeInfo
	msgUnknown MessageType = -1
)

// DecodeError wraps a failure to decode one frame, carrying the frame's
// raw bytes for diagnostics. Built on secureworks/errors so callers can
// errors.As into it and, in debug builds, recover a stack trace via
// errors.WithStackTrace at the call site that produced it.
type DecodeError struct {
	Frame []byte
	cause error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("ts2abc: decode frame: %v", e.cause)
}

func (e *DecodeError) Unwrap() error { return e.cause }

func newDecodeError(frame []byte, cause error) error {
	return errors.WithStackTrace(&DecodeError{Frame: frame, cause: cause})
}

// DispatchFrame decodes one JSON frame and routes it to the matching
// decoder (§4.2). A frame that is not valid JSON, whose "t" value is
// missing or unknown, that lacks its payload key, or whose payload decoder
// fails yields a *DecodeError; Builder returns the first such error and
// emits nothing.
func DispatchFrame(bc *BuildContext, prog *Program, frame []byte) error {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(frame, &envelope); err != nil {
		return newDecodeError(frame, err)
	}

	msgType := msgUnknown
	if raw, ok := envelope["t"]; ok {
		var t int
		if err := json.Unmarshal(raw, &t); err == nil {
			msgType = MessageType(t)
		}
	}

	var err error
	switch msgType {
	case MsgFunction:
		raw, ok := envelope["fb"]
		if !ok {
			return newDecodeError(frame, errors.New("function message missing \"fb\""))
		}
		err = decodeSingleFunction(bc, prog, raw)
	case MsgRecord:
		raw, ok := envelope["rb"]
		if !ok {
			return newDecodeError(frame, errors.New("record message missing \"rb\""))
		}
		err = decodeSingleRecord(prog, raw)
	case MsgString:
		raw, ok := envelope["s"]
		if !ok {
			return newDecodeError(frame, errors.New("string message missing \"s\""))
		}
		err = decodeSingleString(prog, raw)
	case MsgLiteralBuffer:
		raw, ok := envelope["lit_arr"]
		if !ok {
			return newDecodeError(frame, errors.New("literal buffer message missing \"lit_arr\""))
		}
		err = decodeSingleLiteralBuffer(bc, prog, raw)
	case MsgModule:
		raw, ok := envelope["mod"]
		if !ok {
			return newDecodeError(frame, errors.New("module message missing \"mod\""))
		}
		err = decodeSingleModule(bc, prog, raw)
	case MsgOptions:
		err = decodeOptions(bc, prog, envelope)
	case MsgTypeInfo:
		raw, ok := envelope["ti"]
		if !ok {
			return newDecodeError(frame, errors.New("typeinfo message missing \"ti\""))
		}
		err = decodeSingleTypeInfo(prog, raw)
	default:
		return newDecodeError(frame, fmt.Errorf("unknown message type %d", msgType))
	}
	if err != nil {
		return newDecodeError(frame, err)
	}
	return nil
}

func decodeSingleString(prog *Program, raw json.RawMessage) error {
	var parts []string
	if err := json.Unmarshal(raw, &parts); err != nil {
		return fmt.Errorf("decode string list: %w", err)
	}
	for _, p := range parts {
		prog.Strings[NormalizeString(p)] = struct{}{}
	}
	return nil
}
