package ts2abc

import (
	"encoding/json"
	"testing"
)

func TestDecodeLiteralPairsStayEven(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"bool", `{"t":0,"v":true}`},
		{"integer", `{"t":1,"v":42}`},
		{"double", `{"t":2,"v":3.5}`},
		{"string", `{"t":3,"v":"hello"}`},
		{"method affiliate", `{"t":7,"v":5}`},
		{"null value", `{"t":8}`},
		{"unknown tag", `{"t":200,"v":"whatever"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			la := NewLiteralArray()
			if err := decodeLiteral(la, json.RawMessage(tc.raw)); err != nil {
				t.Fatalf("decodeLiteral: %v", err)
			}
			if len(la.Literals)%2 != 0 {
				t.Fatalf("expected even literal count, got %d", len(la.Literals))
			}
			if la.Literals[0].Tag != TagTagValue {
				t.Fatalf("expected first literal to be TAG_VALUE, got %v", la.Literals[0].Tag)
			}
		})
	}
}

func TestDecodeLiteralValues(t *testing.T) {
	la := NewLiteralArray()
	if err := decodeLiteral(la, json.RawMessage(`{"t":1,"v":7}`)); err != nil {
		t.Fatalf("decodeLiteral: %v", err)
	}
	if got := la.Literals[1].Integer; got != 7 {
		t.Errorf("Integer = %d, want 7", got)
	}

	la2 := NewLiteralArray()
	if err := decodeLiteral(la2, json.RawMessage(`{"t":3,"v":"ABC"}`)); err != nil {
		t.Fatalf("decodeLiteral: %v", err)
	}
	if got := la2.Literals[1].Str; got != "ABC" {
		t.Errorf("Str = %q, want %q", got, "ABC")
	}
}
