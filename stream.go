package ts2abc

import "strings"

// Stream incrementally reassembles whole JSON frames out of a byte stream
// delimited by bare '$' characters, escaped as "#$" inside frame content
// (§4.1). It carries a partial trailing frame across Feed calls so both
// the whole-file and pipe-chunked transports can share one decoder.
type Stream struct {
	bc   *BuildContext
	prog *Program

	buf          []byte
	onFrameError func(frame []byte, err error)
}

// NewStream returns a Stream that decodes frames into prog using bc as
// shared build state. onFrameError, if non-nil, is called for each frame
// that fails to decode; a nil callback makes frame errors fatal to Feed.
func NewStream(bc *BuildContext, prog *Program, onFrameError func(frame []byte, err error)) *Stream {
	return &Stream{bc: bc, prog: prog, onFrameError: onFrameError}
}

// Feed appends chunk to the carry-over buffer and extracts every complete
// frame it now contains, dispatching each one. Any trailing partial frame
// remains buffered for the next call, matching the original's
// HandleBuffer/IsStartOrEndPosition chunk-boundary handling.
func (s *Stream) Feed(chunk []byte) error {
	s.buf = append(s.buf, chunk...)
	return s.drain()
}

// Close signals end of input. Per §4.1, a dangling unterminated frame in
// the buffer at Close is discarded (it was never going to close).
func (s *Stream) Close() {
	s.buf = nil
}

func (s *Stream) drain() error {
	for {
		start := -1
		end := -1
		for i, b := range s.buf {
			if b != '$' {
				continue
			}
			// A '$' at position i is a real delimiter unless the
			// preceding byte is '#' (i.e. it's the escaped form "#$").
			if i > 0 && s.buf[i-1] == '#' {
				continue
			}
			if start == -1 {
				start = i
				continue
			}
			end = i
			break
		}
		if start == -1 || end == -1 {
			return nil
		}

		raw := s.buf[start+1 : end]
		unescaped := replaceAllDistinct(string(raw), "#$", "$")
		if err := DispatchFrame(s.bc, s.prog, []byte(unescaped)); err != nil {
			if s.onFrameError != nil {
				s.onFrameError(raw, err)
			} else {
				return err
			}
		}

		s.buf = s.buf[end+1:]
	}
}

// replaceAllDistinct replaces every occurrence of old with newValue in s,
// a direct port of the original's loop-based ReplaceAllDistinct.
func replaceAllDistinct(s, old, newValue string) string {
	return strings.ReplaceAll(s, old, newValue)
}
