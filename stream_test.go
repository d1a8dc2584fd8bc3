package ts2abc

import "testing"

func TestStreamFeedDecodesCompleteFrame(t *testing.T) {
	bc := NewBuildContext()
	prog := NewProgram()
	s := NewStream(bc, prog, nil)

	frame := `$` + `{"t":2,"s":["abc"]}` + `$`
	if err := s.Feed([]byte(frame)); err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if _, ok := prog.Strings["abc"]; !ok {
		t.Error("expected \"abc\" to be decoded into the program's string table")
	}
}

func TestStreamFeedCarriesPartialFrameAcrossChunks(t *testing.T) {
	bc := NewBuildContext()
	prog := NewProgram()
	s := NewStream(bc, prog, nil)

	full := `$` + `{"t":2,"s":["xyz"]}` + `$`
	mid := len(full) / 2
	if err := s.Feed([]byte(full[:mid])); err != nil {
		t.Fatalf("Feed (chunk 1): %v", err)
	}
	if _, ok := prog.Strings["xyz"]; ok {
		t.Fatal("frame should not decode before it is complete")
	}
	if err := s.Feed([]byte(full[mid:])); err != nil {
		t.Fatalf("Feed (chunk 2): %v", err)
	}
	if _, ok := prog.Strings["xyz"]; !ok {
		t.Error("expected \"xyz\" to decode once the frame completes")
	}
}

func TestStreamFeedUnescapesHashDollar(t *testing.T) {
	bc := NewBuildContext()
	prog := NewProgram()
	s := NewStream(bc, prog, nil)

	// The frame body contains an escaped literal '$' as "#$"; it must be
	// unescaped to '$' before JSON decoding, and must NOT be treated as a
	// frame delimiter while scanning.
	frame := `$` + `{"t":2,"s":["a#$b"]}` + `$`
	if err := s.Feed([]byte(frame)); err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if _, ok := prog.Strings["a$b"]; !ok {
		t.Errorf("expected escaped dollar to unescape to \"a$b\", got strings=%v", prog.Strings)
	}
}

func TestStreamFeedMultipleFrames(t *testing.T) {
	bc := NewBuildContext()
	prog := NewProgram()
	s := NewStream(bc, prog, nil)

	frames := `$` + `{"t":2,"s":["one"]}` + `$` + `$` + `{"t":2,"s":["two"]}` + `$`
	if err := s.Feed([]byte(frames)); err != nil {
		t.Fatalf("Feed: %v", err)
	}
	for _, want := range []string{"one", "two"} {
		if _, ok := prog.Strings[want]; !ok {
			t.Errorf("expected %q to be decoded", want)
		}
	}
}
