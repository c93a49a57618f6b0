package driver

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"github.com/biomejs/biome-sub019/internal/diag"
	"github.com/biomejs/biome-sub019/internal/fix"
	"github.com/biomejs/biome-sub019/internal/json"
	"github.com/biomejs/biome-sub019/internal/project"
	"github.com/biomejs/biome-sub019/internal/source"
	"github.com/biomejs/biome-sub019/internal/syntax"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func defaultOptions() Options {
	return Options{Config: project.Default()}
}

func TestDetectLanguage(t *testing.T) {
	cases := map[string]Language{
		"a.css":              LangCSS,
		"dir/A.CSS":          LangCSS,
		"package.json":       LangJSON,
		"settings.jsonc":     LangJSON,
		".eslintrc":          LangJSON,
		"README.md":          LangUnknown,
		"no_extension":       LangUnknown,
		".vscode/tasks.json": LangJSON,
	}
	for path, want := range cases {
		if got := DetectLanguage(path); got != want {
			t.Errorf("DetectLanguage(%q) = %s, want %s", path, got, want)
		}
	}
}

func TestParseLanguage(t *testing.T) {
	for in, want := range map[string]Language{"": LangUnknown, "auto": LangUnknown, "CSS": LangCSS, "jsonc": LangJSON} {
		got, err := ParseLanguage(in)
		if err != nil || got != want {
			t.Errorf("ParseLanguage(%q) = %s, %v; want %s", in, got, err, want)
		}
	}
	if _, err := ParseLanguage("scss"); err == nil {
		t.Error("expected an error for scss")
	}
}

func TestParseFile_CSS(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.css")
	src := "a, b { color: red; margin: 0 }\n@media print { c {} }\n"
	writeFile(t, path, src)

	fs, res, err := ParseFile(context.Background(), path, defaultOptions())
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if fs.Get(res.FileID) == nil {
		t.Fatal("result file is not in the FileSet")
	}
	if res.Lang != LangCSS || res.Root == nil || res.Cached {
		t.Fatalf("unexpected result: lang=%s root=%v cached=%v", res.Lang, res.Root != nil, res.Cached)
	}
	if got := res.Root.Text(); got != src {
		t.Fatalf("tree text = %q, want %q", got, src)
	}
	if res.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", res.Bag.Items())
	}
	// a, b {...}; @media; c {}
	if res.Facts.Rules != 3 || res.Facts.Declarations != 2 || res.Facts.Selectors != 3 {
		t.Errorf("facts = %+v", res.Facts)
	}
}

func TestParseFile_Missing(t *testing.T) {
	_, _, err := ParseFile(context.Background(), filepath.Join(t.TempDir(), "nope.css"), defaultOptions())
	if err == nil {
		t.Fatal("expected a load error")
	}
}

func TestParseSource_UnknownLanguage(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("notes.txt", []byte("hello"))
	res := ParseSource(context.Background(), fs, id, defaultOptions())
	if res.Root != nil {
		t.Fatal("unknown language must not be parsed")
	}
	items := res.Bag.Items()
	if len(items) != 1 || items[0].Code != diag.ProjUnknownLang || items[0].Primary.File != id {
		t.Fatalf("unexpected diagnostics: %+v", items)
	}

	// forcing the language parses anything
	opts := defaultOptions()
	opts.Lang = LangJSON
	res = ParseSource(context.Background(), fs, id, opts)
	if res.Root == nil || res.Lang != LangJSON {
		t.Fatalf("forced language ignored: %+v", res)
	}
}

func TestParseSource_JSONOptionsFromFileName(t *testing.T) {
	fs := source.NewFileSet()
	src := []byte("{\n  // comment\n  \"a\": [1, 2,],\n}\n")
	strict := ParseSource(context.Background(), fs, fs.AddVirtual("data.json", src), defaultOptions())
	if !strict.HasErrors() {
		t.Fatal("strict JSON should reject comments and trailing commas")
	}
	loose := ParseSource(context.Background(), fs, fs.AddVirtual("tsconfig.json", src), defaultOptions())
	if loose.HasErrors() {
		t.Fatalf("tsconfig.json accepts comments and trailing commas: %+v", loose.Bag.Items())
	}
	if loose.Facts.MaxDepth != 2 {
		t.Errorf("MaxDepth = %d, want 2", loose.Facts.MaxDepth)
	}
}

func TestParseSource_CacheHit(t *testing.T) {
	cache, err := OpenDiskCache(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}
	opts := defaultOptions()
	opts.Cache = cache
	src := []byte("{'a': 1}")

	fs1 := source.NewFileSet()
	first := ParseSource(context.Background(), fs1, fs1.AddVirtual("x.json", src), opts)
	if first.Cached || first.Root == nil {
		t.Fatal("first parse must miss the cache")
	}

	fs2 := source.NewFileSet()
	fs2.AddVirtual("other.json", []byte("[]"))
	id := fs2.AddVirtual("x.json", src)
	second := ParseSource(context.Background(), fs2, id, opts)
	if !second.Cached || second.Root != nil {
		t.Fatalf("second parse must hit the cache: cached=%v", second.Cached)
	}

	a, b := first.Bag.Items(), second.Bag.Items()
	if len(a) != len(b) || len(a) == 0 {
		t.Fatalf("diagnostic counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Code != b[i].Code || a[i].Message != b[i].Message || a[i].Range() != b[i].Range() {
			t.Errorf("diagnostic %d differs: %+v vs %+v", i, a[i], b[i])
		}
		if b[i].Primary.File != id {
			t.Errorf("cached diagnostic %d is in file %d, want %d", i, b[i].Primary.File, id)
		}
		if len(a[i].Fixes) != len(b[i].Fixes) {
			t.Fatalf("fix counts differ for %d", i)
		}
		for j, f := range b[i].Fixes {
			if f.Title != a[i].Fixes[j].Title || f.Edits[0].NewText != a[i].Fixes[j].Edits[0].NewText {
				t.Errorf("fix %d/%d differs", i, j)
			}
			if f.Edits[0].Span.File != id {
				t.Errorf("fix edit is in file %d, want %d", f.Edits[0].Span.File, id)
			}
		}
	}
	if first.Facts != second.Facts {
		t.Errorf("facts differ: %+v vs %+v", first.Facts, second.Facts)
	}

	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	third := ParseSource(context.Background(), fs2, id, opts)
	if third.Cached {
		t.Fatal("cache was dropped")
	}
}

func TestCacheKey_DependsOnOptions(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("x.json", []byte("{}")))

	opts := defaultOptions()
	opts.Config.JSON.AutoDetect = false
	base := cacheKey(file, LangJSON, opts)
	if again := cacheKey(file, LangJSON, opts); again != base {
		t.Fatal("cache key is not stable")
	}
	opts.Config.JSON.AllowComments = true
	if cacheKey(file, LangJSON, opts) == base {
		t.Error("options do not change the key")
	}
	if cacheKey(file, LangCSS, defaultOptions()) == base {
		t.Error("language does not change the key")
	}
}

func TestTokenize_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.json")
	writeFile(t, path, "[1]")
	res, err := Tokenize(context.Background(), path, defaultOptions())
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	var kinds []syntax.Kind
	for _, tok := range res.Tokens {
		kinds = append(kinds, tok.Kind)
	}
	want := []syntax.Kind{json.LBracket, json.NumberLiteral, json.RBracket, syntax.EOF}
	if !slices.Equal(kinds, want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
	if res.Bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", res.Bag.Items())
	}
}

func TestTokenize_UnknownLanguage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	writeFile(t, path, "x")
	if _, err := Tokenize(context.Background(), path, defaultOptions()); err == nil {
		t.Fatal("expected an error")
	}
}

func TestCheckDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.css"), "a { color: red }")
	writeFile(t, filepath.Join(dir, "nested", "b.json"), "{\"a\": }")
	writeFile(t, filepath.Join(dir, "node_modules", "lib.css"), "a {")
	writeFile(t, filepath.Join(dir, "README.md"), "# hi")

	var mu sync.Mutex
	events := map[string][]ProgressStatus{}
	opts := DirOptions{
		Options: defaultOptions(),
		Jobs:    2,
		Progress: func(ev ProgressEvent) {
			mu.Lock()
			defer mu.Unlock()
			events[ev.Path] = append(events[ev.Path], ev.Status)
		},
	}
	fs, results, err := CheckDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatalf("CheckDir: %v", err)
	}
	if fs == nil || len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if filepath.Base(results[0].Path) != "a.css" || filepath.Base(results[1].Path) != "b.json" {
		t.Fatalf("results out of order: %s, %s", results[0].Path, results[1].Path)
	}
	if results[0].HasErrors() {
		t.Errorf("a.css: unexpected diagnostics %+v", results[0].Bag.Items())
	}
	if !results[1].HasErrors() {
		t.Error("b.json: expected a syntax error")
	}

	want := map[string][]ProgressStatus{
		filepath.Join(dir, "a.css"):            {StatusQueued, StatusWorking, StatusDone},
		filepath.Join(dir, "nested", "b.json"): {StatusQueued, StatusWorking, StatusError},
	}
	for path, statuses := range want {
		if !slices.Equal(events[path], statuses) {
			t.Errorf("events for %s = %v, want %v", path, events[path], statuses)
		}
	}
}

func TestCheckDir_TooLarge(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "big.css"), "a { color: red }")
	opts := DirOptions{Options: defaultOptions()}
	opts.Config.Files.MaxSize = 4

	fs, results, err := CheckDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatalf("CheckDir: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	items := results[0].Bag.Items()
	if len(items) != 1 || items[0].Code != diag.IOFileTooLarge {
		t.Fatalf("unexpected diagnostics: %+v", items)
	}
	if f := fs.Get(items[0].Primary.File); f == nil || filepath.Base(f.Path) != "big.css" {
		t.Fatal("diagnostic does not point at the skipped file")
	}
}

func TestCheckDir_Empty(t *testing.T) {
	fs, results, err := CheckDir(context.Background(), t.TempDir(), DirOptions{Options: defaultOptions()})
	if err != nil || fs == nil || len(results) != 0 {
		t.Fatalf("got fs=%v results=%d err=%v", fs != nil, len(results), err)
	}
}

func TestFixSource_AllSafeFixes(t *testing.T) {
	opts := FixOptions{
		Options: defaultOptions(),
		Apply:   fix.ApplyOptions{Mode: fix.ApplyModeAll},
	}
	res, err := FixSource(context.Background(), "x.json", []byte("{'a': 1,}"), opts)
	if err != nil {
		t.Fatalf("FixSource: %v", err)
	}
	if got := string(res.Content); got != `{"a": 1}` {
		t.Fatalf("content = %q", got)
	}
	if !res.Changed() || res.Passes != 1 || len(res.Applied) != 2 {
		t.Fatalf("passes=%d applied=%d", res.Passes, len(res.Applied))
	}
	if res.Final.HasErrors() {
		t.Fatalf("fixed text still has errors: %+v", res.Final.Bag.Items())
	}
}

func TestFixSource_OnceAppliesOneFix(t *testing.T) {
	opts := FixOptions{
		Options: defaultOptions(),
		Apply:   fix.ApplyOptions{Mode: fix.ApplyModeOnce},
	}
	res, err := FixSource(context.Background(), "x.json", []byte("['a', 'b']"), opts)
	if err != nil {
		t.Fatalf("FixSource: %v", err)
	}
	if res.Passes != 1 || len(res.Applied) != 1 {
		t.Fatalf("passes=%d applied=%d", res.Passes, len(res.Applied))
	}
	if got := string(res.Content); got != `["a", 'b']` {
		t.Fatalf("content = %q", got)
	}
	if !res.Final.HasErrors() {
		t.Fatal("the second string is still single quoted")
	}
}

func TestFixSource_NothingToFix(t *testing.T) {
	opts := FixOptions{Options: defaultOptions(), Apply: fix.ApplyOptions{Mode: fix.ApplyModeAll}}
	res, err := FixSource(context.Background(), "x.json", []byte(`{"a": 1}`), opts)
	if err != nil {
		t.Fatalf("FixSource: %v", err)
	}
	if res.Changed() || res.Passes != 0 {
		t.Fatalf("unexpected change: %q", res.Content)
	}
}

func TestFixFile_WritesAndKeepsMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.json")
	if err := os.WriteFile(path, []byte("[1, 2,]"), 0o640); err != nil {
		t.Fatalf("write: %v", err)
	}
	opts := FixOptions{
		Options: defaultOptions(),
		Apply:   fix.ApplyOptions{Mode: fix.ApplyModeAll},
		Write:   true,
	}
	res, err := FixFile(context.Background(), path, opts)
	if err != nil {
		t.Fatalf("FixFile: %v", err)
	}
	if !res.Written {
		t.Fatal("expected the file to be written")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "[1, 2]" {
		t.Fatalf("file = %q", data)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o640 {
		t.Errorf("mode = %v, want 0640", info.Mode().Perm())
	}
}

func TestParseSource_Timings(t *testing.T) {
	opts := defaultOptions()
	opts.Timings = true
	fs := source.NewFileSet()
	res := ParseSource(context.Background(), fs, fs.AddVirtual("a.css", []byte("a{}")), opts)
	if res.Timing == nil || len(res.Timing.Phases) != 1 || res.Timing.Phases[0].Name != "parse" {
		t.Fatalf("timing = %+v", res.Timing)
	}
	items := res.Bag.Items()
	if len(items) != 1 || items[0].Code != diag.IOTimings || items[0].Severity != diag.SevInfo {
		t.Fatalf("expected one timings diagnostic, got %+v", items)
	}
}
