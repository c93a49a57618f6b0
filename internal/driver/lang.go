package driver

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/biomejs/biome-sub019/internal/css"
	"github.com/biomejs/biome-sub019/internal/json"
	"github.com/biomejs/biome-sub019/internal/syntax"
)

// Language selects the grammar a file is parsed with.
type Language uint8

const (
	LangUnknown Language = iota
	LangCSS
	LangJSON
)

func (l Language) String() string {
	switch l {
	case LangCSS:
		return "css"
	case LangJSON:
		return "json"
	default:
		return "unknown"
	}
}

// Syntax returns the kind table of the language, nil for LangUnknown.
func (l Language) Syntax() *syntax.Language {
	switch l {
	case LangCSS:
		return css.Lang
	case LangJSON:
		return json.Lang
	default:
		return nil
	}
}

// ParseLanguage accepts the --lang flag values. "jsonc" is JSON; the
// comment extension comes from the options.
func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return LangUnknown, nil
	case "css":
		return LangCSS, nil
	case "json", "jsonc":
		return LangJSON, nil
	default:
		return LangUnknown, fmt.Errorf("unknown language %q (want css, json or auto)", s)
	}
}

// DetectLanguage picks a language from the file extension.
func DetectLanguage(path string) Language {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".css":
		return LangCSS
	case ".json", ".jsonc":
		return LangJSON
	}
	// .babelrc, .eslintrc and friends carry JSON without an extension
	if json.OptionsForFile(path).AllowComments {
		return LangJSON
	}
	return LangUnknown
}
