package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/biomejs/biome-sub019/internal/diag"
	"github.com/biomejs/biome-sub019/internal/source"
)

func span(file source.FileID, start, end uint32) source.Span {
	return source.SpanOf(file, source.NewRange(start, end))
}

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSetWithBase("/home/user/project")
	fileID := fs.AddVirtual("/home/user/project/src/test.json", []byte("{\"a\": \"unterminated\n}"))

	bag := diag.NewBag(10)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.LexUnterminatedString,
		Primary:  span(fileID, 6, 19),
		Message:  "Missing closing quote",
	})

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/project/src/test.json:1:7:"},
		{"Relative path", PathModeRelative, "src/test.json:1:7:"},
		{"Basename only", PathModeBasename, "test.json:1:7:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: tt.mode})
			output := buf.String()

			for _, want := range []string{tt.contains, "ERROR", "LEX1002", "Missing closing quote"} {
				if !strings.Contains(output, want) {
					t.Errorf("expected output to contain %q, got:\n%s", want, output)
				}
			}
		})
	}
}

func TestPrettySnippet(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("a.css", []byte("a {}\n\tb:unknown-pseudo {}\nc {}\n"))

	bag := diag.NewBag(2)
	bag.Add(diag.NewError(diag.SynCSSUnknownPseudoClass, source.NewRange(8, 22),
		"Unexpected unknown pseudo-class unknown-pseudo").WithFile(fileID))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: PathModeBasename})

	want := strings.Join([]string{
		"a.css:2:4: ERROR SYN2103: Unexpected unknown pseudo-class unknown-pseudo",
		"1 | a {}",
		"2 |     b:unknown-pseudo {}",
		"  |       ^" + strings.Repeat("~", 13),
		"3 | c {}",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyWidth(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("w.css", []byte("a{color:red;background:blue}"))
	bag := diag.NewBag(1)
	bag.Add(diag.NewWarning(diag.SynUnexpectedToken, source.NewRange(0, 1), "x").WithFile(fileID))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, Width: 10})
	if !strings.Contains(buf.String(), "a{color:r…\n") {
		t.Fatalf("expected truncated line, got:\n%s", buf.String())
	}
}

func TestPrettyNotesAndFixes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.json", []byte("[1, 2,]\n"))

	d := diag.NewError(diag.SynJSONTrailingComma, source.NewRange(5, 6), "Expected an array element but instead found `]`").
		WithNote(source.NewRange(6, 7), "the array ends here").
		WithFix("Remove the trailing comma", diag.DeleteEdit(source.NewRange(5, 6), ",")).
		WithFile(fileID)
	bag := diag.NewBag(4)
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{
		PathMode:    PathModeBasename,
		ShowNotes:   true,
		ShowFixes:   true,
		ShowPreview: true,
	})
	output := buf.String()

	for _, want := range []string{
		"note: test.json:1:7: the array ends here",
		"fix #1: Remove the trailing comma [safe]",
		`test.json:1:6-1:7 apply=""`,
		"preview:",
		"- [1, 2,]",
		"+ [1, 2]",
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected %q in output, got:\n%s", want, output)
		}
	}
}

func TestPrettyColor(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("c.css", []byte("a{}"))
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.SynUnexpectedToken, source.NewRange(0, 1), "x").WithFile(fileID))

	var plain, colored bytes.Buffer
	Pretty(&plain, bag, fs, PrettyOpts{})
	Pretty(&colored, bag, fs, PrettyOpts{Color: true})
	if strings.Contains(plain.String(), "\x1b[") {
		t.Fatalf("plain output has escapes:\n%q", plain.String())
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Fatalf("colored output has no escapes:\n%q", colored.String())
	}
}

func TestSummary(t *testing.T) {
	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.SynUnexpectedToken, source.NewRange(0, 1), "x"))
	bag.Add(diag.NewWarning(diag.SynUnexpectedToken, source.NewRange(0, 1), "y"))
	bag.Add(diag.NewWarning(diag.SynUnexpectedToken, source.NewRange(1, 2), "z"))

	var buf bytes.Buffer
	Summary(&buf, bag, 3, false)
	if got := buf.String(); got != "1 error, 2 warnings in 3 files\n" {
		t.Fatalf("Summary() = %q", got)
	}
}
