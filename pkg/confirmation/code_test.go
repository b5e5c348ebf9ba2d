package confirmation

import (
	"bytes"
	"strings"
	"testing"
)

func TestGenerateShape(t *testing.T) {
	g := NewGenerator()
	code, err := g.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(code) != 11 {
		t.Fatalf("expected 11 characters, got %d (%q)", len(code), code)
	}
	if code != strings.ToUpper(code) {
		t.Fatalf("code not upper-cased: %q", code)
	}
	for _, r := range code {
		if !(r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-' || r == '_') {
			t.Fatalf("unexpected character %q in %q", r, code)
		}
	}
}

func TestGenerateDistinct(t *testing.T) {
	g := NewGenerator()
	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		code, err := g.Generate()
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if _, dup := seen[code]; dup {
			t.Fatalf("duplicate code %q after %d generations", code, i)
		}
		seen[code] = struct{}{}
	}
}

func TestGenerateDeterministicSource(t *testing.T) {
	g := NewGeneratorFromReader(bytes.NewReader(make([]byte, 16)))
	a, _ := g.Generate()
	b, _ := g.Generate()
	if a != b || a != "AAAAAAAAAAA" {
		t.Fatalf("expected identical zero codes, got %q and %q", a, b)
	}
}

func TestGenerateShortRead(t *testing.T) {
	g := NewGeneratorFromReader(bytes.NewReader([]byte{1, 2, 3}))
	if _, err := g.Generate(); err == nil {
		t.Fatal("expected error on short read")
	}
}
