package json

import (
	"path/filepath"
	"slices"
	"strings"
)

// Options toggles the JSONC extensions. The zero value is strict JSON.
type Options struct {
	AllowComments       bool `toml:"allow_comments"`
	AllowTrailingCommas bool `toml:"allow_trailing_commas"`
}

// Merge enables every extension that either side enables.
func (o Options) Merge(other Options) Options {
	return Options{
		AllowComments:       o.AllowComments || other.AllowComments,
		AllowTrailingCommas: o.AllowTrailingCommas || other.AllowTrailingCommas,
	}
}

// files whose tools accept comments
var commentFiles = []string{
	".babelrc",
	".babelrc.json",
	".ember-cli",
	".eslintrc",
	".eslintrc.json",
	".hintrc",
	".jscsrc",
	".jshintrc",
	".swcrc",
	"api-extractor.json",
	"devcontainer.json",
	"language-configuration.json",
	"tslint.json",
}

// files whose tools accept comments and trailing commas
var looseFiles = []string{
	"jsconfig.json",
	"tsconfig.json",
	"typedoc.json",
	"typescript.json",
}

// OptionsForFile returns the options a well known file is written for:
// .jsonc files and editor configs allow comments, tsconfig and friends
// also allow trailing commas.
func OptionsForFile(path string) Options {
	name := filepath.Base(path)
	switch {
	case slices.Contains(looseFiles, name),
		strings.HasPrefix(name, "tsconfig.") && strings.HasSuffix(name, ".json"):
		return Options{AllowComments: true, AllowTrailingCommas: true}
	case slices.Contains(commentFiles, name),
		strings.EqualFold(filepath.Ext(name), ".jsonc"),
		filepath.Base(filepath.Dir(path)) == ".vscode" && strings.HasSuffix(name, ".json"):
		return Options{AllowComments: true}
	}
	return Options{}
}
