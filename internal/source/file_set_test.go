package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSet_ResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("mem.css", []byte("a {\n  color: red;\n}\n"))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{3, LineCol{1, 4}},
		{4, LineCol{2, 1}},
		{6, LineCol{2, 3}},
		{18, LineCol{3, 1}},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(id, EmptyAt(tt.off))
		if start != tt.want {
			t.Errorf("offset %d: got %+v, want %+v", tt.off, start, tt.want)
		}
	}
}

func TestFile_GetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("mem.css", []byte("one\r\ntwo\nthree"))
	f := fs.Get(id)
	if f.Flags&FileHasCRLF == 0 {
		t.Fatalf("expected CRLF flag")
	}
	for i, want := range []string{"one", "two", "three", ""} {
		if got := f.GetLine(uint32(i + 1)); got != want {
			t.Errorf("line %d: got %q, want %q", i+1, got, want)
		}
	}
	if f.GetLine(0) != "" {
		t.Errorf("line 0 must be empty")
	}
}

func TestFileSet_LoadKeepsBOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bom.json")
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte("{}")...)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}
	fs := NewFileSetWithBase(dir)
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	f := fs.Get(id)
	if f.Flags&FileHadBOM == 0 {
		t.Fatalf("expected BOM flag")
	}
	if len(f.Content) != len(content) {
		t.Fatalf("content must be stored verbatim")
	}
	if got, ok := fs.GetLatest(path); !ok || got != id {
		t.Fatalf("GetLatest = %v, %v", got, ok)
	}
	if got := f.FormatPath("relative", dir); got != "bom.json" {
		t.Fatalf("relative path = %q", got)
	}
}

func TestFileSet_LoadMissing(t *testing.T) {
	fs := NewFileSet()
	if _, err := fs.Load(filepath.Join(t.TempDir(), "nope.css")); err == nil {
		t.Fatalf("expected error")
	}
}
