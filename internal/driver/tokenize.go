package driver

import (
	"context"
	"fmt"

	"github.com/biomejs/biome-sub019/internal/css"
	"github.com/biomejs/biome-sub019/internal/diag"
	"github.com/biomejs/biome-sub019/internal/json"
	"github.com/biomejs/biome-sub019/internal/lexer"
	"github.com/biomejs/biome-sub019/internal/source"
	"github.com/biomejs/biome-sub019/internal/trace"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Lang    Language
	Tokens  []lexer.Token
	Bag     *diag.Bag
}

// NewLexer returns the regular-context lexer of lang over src. path picks
// the JSON options when auto detection is on.
func NewLexer(lang Language, src, path string, opts Options) (lexer.Lexer, error) {
	switch lang {
	case LangCSS:
		return css.NewLexer(src, opts.Config.CSSOptions()), nil
	case LangJSON:
		return json.NewLexer(src, opts.Config.JSONOptions(path)), nil
	default:
		return nil, fmt.Errorf("no lexer for language %s", lang)
	}
}

// Tokenize dumps the raw token stream of path, trivia included. Tokens come
// from the regular context only, so CSS url bodies and similar contextual
// tokens show up split the way the lexer sees them without the parser.
func Tokenize(ctx context.Context, path string, opts Options) (*TokenizeResult, error) {
	_, span := trace.StartSpan(ctx, trace.ScopeFile, "tokenize")
	defer span.End("")

	// Создаём FileSet и загружаем файл
	fs := source.NewFileSetWithBase(opts.Config.Root())
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	lang := opts.Lang
	if lang == LangUnknown {
		lang = DetectLanguage(file.Path)
	}
	lx, err := NewLexer(lang, string(file.Content), file.Path, opts)
	if err != nil {
		return nil, err
	}

	tokens, diags := lexer.Tokenize(lx, lexer.Regular)
	bag := diag.NewBag(opts.Config.Files.MaxDiagnostics)
	for _, d := range diags {
		bag.Add(d.WithFile(fileID))
	}
	span.WithExtra("tokens", fmt.Sprint(len(tokens)))

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Lang:    lang,
		Tokens:  tokens,
		Bag:     bag,
	}, nil
}
