package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
	maxFuzzInput = 1 << 16  // 64 KiB
)

// addCorpusSeeds adds the repository testdata files with extension ext
// plus the inline seeds.
func addCorpusSeeds(f *testing.F, ext string, inline ...string) {
	addTestdataSeeds(f, ext)
	f.Add([]byte{})
	for _, s := range inline {
		f.Add([]byte(s))
	}
}

func addTestdataSeeds(f *testing.F, ext string) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все файлы с нужным расширением
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ext {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}

var cssSeeds = []string{
	"a{}",
	"a { color: red; }",
	"@media screen and (min-width: 1px) { a { b: c } }",
	"a:not(.b, .c) > d::before {}",
	"a { b: url(x.png) }",
	"a { b: url( \"x\" }",
	"a { & .b { c: d } }",
	"/* unterminated",
	"a { b: \"unterminated",
	"\uFEFFa{}",
	":global(.x) {}",
	"@value primary: red;",
	"a { color: #12 }",
	"}}}{{{",
	"@ {}",
}

var jsonSeeds = []string{
	"{}",
	"[1, 2, 3]",
	`{"a": {"b": [true, false, null]}}`,
	"{'a': 1}",
	"[1, 2,]",
	"// c\n{}",
	"/* open",
	`"unterminated`,
	"01",
	"-",
	"1e",
	"{} {}",
	"[[[[[[[[",
	`{"a" 1}`,
	"\uFEFF{}",
}
