package lexer

import (
	"testing"

	"github.com/biomejs/biome-sub019/internal/source"
	"github.com/biomejs/biome-sub019/internal/syntax"
)

// TestSequentialReading проверяет последовательное чтение: "a\nb" → a, \n, b, EOF
func TestSequentialReading(t *testing.T) {
	cursor := NewCursor("a\nb")

	for _, want := range []byte{'a', '\n', 'b'} {
		if cursor.EOF() {
			t.Fatalf("unexpected EOF before %q", want)
		}
		if got := cursor.Peek(); got != want {
			t.Errorf("Peek() = %q, want %q", got, want)
		}
		if got := cursor.Bump(); got != want {
			t.Errorf("Bump() = %q, want %q", got, want)
		}
	}
	if !cursor.EOF() {
		t.Error("expected EOF at end")
	}
	if cursor.Peek() != 0 || cursor.Bump() != 0 {
		t.Error("reading past the end must yield 0")
	}
}

func TestCursorMarkReset(t *testing.T) {
	cursor := NewCursor("hello world")
	cursor.Advance(6)
	m := cursor.Mark()
	if !cursor.EatString("world") {
		t.Fatal("EatString(world) = false")
	}
	if got := cursor.RangeFrom(m); got != source.NewRange(6, 11) {
		t.Errorf("RangeFrom = %v", got)
	}
	cursor.Reset(m)
	if cursor.Peek() != 'w' {
		t.Errorf("after Reset Peek() = %q", cursor.Peek())
	}
	if cursor.EatString("worlds") {
		t.Error("EatString must not read past the end")
	}
	cursor.Advance(100)
	if !cursor.EOF() {
		t.Error("Advance must clamp to the end")
	}
}

func TestCursorRunes(t *testing.T) {
	cursor := NewCursor("жa")
	r, size := cursor.PeekRune()
	if r != 'ж' || size != 2 {
		t.Fatalf("PeekRune = %q/%d", r, size)
	}
	cursor.BumpRune()
	if cursor.Peek() != 'a' {
		t.Errorf("BumpRune left cursor at %q", cursor.Peek())
	}
}

func TestBaseTrivia(t *testing.T) {
	b := NewBase("\uFEFF \t\r\n/* a\nb */x")
	if !b.ScanBOM() {
		t.Fatal("BOM not recognised at offset 0")
	}
	b.Begin()
	if k := b.Emit(b.ScanWhitespace()); k != syntax.Whitespace {
		t.Errorf("got %v, want whitespace", k)
	}
	b.Begin()
	if k := b.Emit(b.ScanWhitespace()); k != syntax.Newline {
		t.Errorf("got %v, want newline", k)
	}
	if got := b.CurrentRange(); got.Len() != 2 {
		t.Errorf("\\r\\n must be one newline, got %v", got)
	}
	b.Begin()
	if k := b.Emit(b.ScanBlockComment()); k != syntax.MultiLineComment {
		t.Errorf("got %v, want multi-line comment", k)
	}
	if !b.HasPrecedingLineBreak() {
		t.Error("comment after a newline must see the line break")
	}
	b.Begin()
	b.Bump()
	b.Emit(syntax.ErrorToken)
	if !b.HasPrecedingLineBreak() {
		t.Error("token after a multi-line comment must see the line break")
	}
}

func TestBaseRewindDropsDiagnostics(t *testing.T) {
	b := NewBase("/* open")
	cp := b.Checkpoint()
	b.Begin()
	b.Emit(b.ScanBlockComment())
	if len(b.diags) != 1 {
		t.Fatalf("expected one diagnostic, got %d", len(b.diags))
	}
	b.Rewind(cp)
	if len(b.diags) != 0 || b.Off != 0 {
		t.Errorf("rewind left %d diagnostics at %d", len(b.diags), b.Off)
	}
	if b.Current() != syntax.Tombstone {
		t.Errorf("rewind must restore the current kind")
	}
}
