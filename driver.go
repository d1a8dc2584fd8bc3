package ts2abc

import (
	"fmt"
	"io"

	"github.com/secureworks/errors"
)

// Emitter serializes a finished Program to a wire format. The real Panda
// pandasm emitter lives outside this repo; DefaultEmitter (emitter.go) is
// a stand-in that lets the driver and its tests run end to end.
type Emitter interface {
	Emit(w io.Writer, prog *Program) error
}

// Optimizer runs a bytecode optimization pass over an already-emitted
// buffer. The real optimizer is an out-of-tree collaborator; NoopOptimizer
// (optimizer.go) is the default stand-in.
type Optimizer interface {
	Optimize(data []byte) ([]byte, error)
}

// Builder orchestrates stream decoding, the type-adapter post-pass, and
// emission, mirroring the original driver's GenerateProgram.
type Builder struct {
	BC        *BuildContext
	Emitter   Emitter
	Optimizer Optimizer
	Logger    Logger
}

// NewBuilder returns a Builder with a fresh BuildContext and the default
// emitter/optimizer stand-ins.
func NewBuilder() *Builder {
	return &Builder{
		BC:        NewBuildContext(),
		Emitter:   &DefaultEmitter{},
		Optimizer: &NoopOptimizer{},
	}
}

// BuildFromReader reads all of r as a single in-memory buffer, decodes it
// as a complete frame stream, runs the type adapter, and emits the result
// to w. This matches the file-path transport (§6): the whole file is read
// before any decoding starts.
func (b *Builder) BuildFromReader(r io.Reader, w io.Writer) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return errors.WithStackTrace(err)
	}
	return b.build(data, w)
}

// BuildFromPipe reads r (expected to be a pipe, e.g. fd 3) in 4096-byte
// chunks, feeding the Stream decoder incrementally, then runs the type
// adapter and emits the result. This matches the pipe transport (§6).
func (b *Builder) BuildFromPipe(r io.Reader, w io.Writer) error {
	prog := NewProgram()
	var firstErr error
	s := NewStream(b.BC, prog, func(frame []byte, err error) {
		if firstErr == nil {
			firstErr = err
		}
	})

	pr := NewPipeReader(r)
	for {
		chunk, err := pr.ReadChunk()
		if len(chunk) > 0 {
			if err := s.Feed(chunk); err != nil {
				return errors.WithStackTrace(err)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.WithStackTrace(err)
		}
	}
	s.Close()
	if firstErr != nil {
		return firstErr
	}

	return b.finish(prog, w)
}

func (b *Builder) build(data []byte, w io.Writer) error {
	prog := NewProgram()
	var firstErr error
	s := NewStream(b.BC, prog, func(frame []byte, err error) {
		if firstErr == nil {
			firstErr = err
		}
	})
	if err := s.Feed(data); err != nil {
		return errors.WithStackTrace(err)
	}
	s.Close()
	if firstErr != nil {
		return firstErr
	}
	return b.finish(prog, w)
}

// finish runs the type adapter and emits prog, following the two-pass emit
// contract: when OptLevel is non-zero the driver emits once, optimizes,
// then emits again; otherwise a single emit suffices. This mirrors the
// `#ifdef ENABLE_BYTECODE_OPT` branch of the original GenerateProgram
// exactly.
func (b *Builder) finish(prog *Program, w io.Writer) error {
	b.BC.Logd(b.Logger, fmt.Sprintf("adapting types for %d functions", len(prog.Functions)))
	AdaptTypes(prog)

	if b.BC.OptLevel == 0 {
		return errors.WithStackTrace(b.Emitter.Emit(w, prog))
	}

	var buf writerBuffer
	if err := b.Emitter.Emit(&buf, prog); err != nil {
		return errors.WithStackTrace(err)
	}
	optimized, err := b.Optimizer.Optimize(buf.data)
	if err != nil {
		return errors.WithStackTrace(err)
	}
	_ = optimized // the real optimizer would rewrite the program/IR; the
	// stand-in only round-trips bytes, so we re-emit the unmodified
	// program to preserve the two-pass control flow without pretending to
	// optimize anything.
	return errors.WithStackTrace(b.Emitter.Emit(w, prog))
}

// writerBuffer is a minimal growable byte sink, used to capture the first
// emit pass before optimization.
type writerBuffer struct {
	data []byte
}

func (wb *writerBuffer) Write(p []byte) (int, error) {
	wb.data = append(wb.data, p...)
	return len(p), nil
}
