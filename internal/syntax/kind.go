package syntax

import (
	"fmt"
	"slices"
)

// Kind identifies a token or node production. Values below FirstGrammarKind
// are shared by every grammar; each grammar numbers its own kinds upwards.
type Kind uint16

const (
	// Tombstone marks an abandoned or not yet completed node start.
	Tombstone Kind = iota
	// EOF is returned by lexers at the end of input.
	EOF
	// Whitespace is a run of spaces and tabs. Trivia.
	Whitespace
	// Newline is a line terminator. Trivia.
	Newline
	// SingleLineComment is a comment ending before the newline. Trivia.
	SingleLineComment
	// MultiLineComment is a block comment that spans lines. Trivia.
	MultiLineComment
	// UnicodeBOM is the byte order mark at offset zero. Trivia.
	UnicodeBOM
	// ErrorToken is a token the lexer could not classify.
	ErrorToken
	// Bogus is the generic recovery node.
	Bogus

	// FirstGrammarKind is the first value available to grammars.
	FirstGrammarKind Kind = 16
)

// MaxTokenKind bounds the kinds that TokenSet can hold. Grammars keep their
// token kinds below it and number node kinds after it.
const MaxTokenKind Kind = 256

// IsTrivia reports whether k is one of the shared trivia kinds.
func (k Kind) IsTrivia() bool {
	return k >= Whitespace && k <= UnicodeBOM
}

// TriviaKind maps a trivia token kind to its trivia piece kind.
func (k Kind) TriviaKind() (TriviaKind, bool) {
	switch k {
	case Whitespace:
		return TriviaWhitespace, true
	case Newline:
		return TriviaNewline, true
	case SingleLineComment:
		return TriviaSingleLineComment, true
	case MultiLineComment:
		return TriviaMultiLineComment, true
	case UnicodeBOM:
		return TriviaBOM, true
	}
	return 0, false
}

// KindFlags classify a kind inside a Language table.
type KindFlags uint8

const (
	FlagToken KindFlags = 1 << iota
	FlagNode
	FlagList
	FlagBogus
	FlagRoot
)

// KindInfo describes a single kind. Text is the literal spelling of a
// punctuation or keyword token and is used in diagnostics. Bogus names the
// recovery kind that replaces this node when it turns out to be invalid;
// zero means the shared Bogus kind.
type KindInfo struct {
	Name  string
	Text  string
	Flags KindFlags
	Bogus Kind
}

// Language is the kind table of one grammar.
type Language struct {
	Name  string
	kinds map[Kind]KindInfo
}

var sharedKinds = map[Kind]KindInfo{
	Tombstone:         {Name: "TOMBSTONE"},
	EOF:               {Name: "EOF", Flags: FlagToken},
	Whitespace:        {Name: "WHITESPACE", Flags: FlagToken},
	Newline:           {Name: "NEWLINE", Flags: FlagToken},
	SingleLineComment: {Name: "COMMENT", Flags: FlagToken},
	MultiLineComment:  {Name: "MULTILINE_COMMENT", Flags: FlagToken},
	UnicodeBOM:        {Name: "UNICODE_BOM", Flags: FlagToken},
	ErrorToken:        {Name: "ERROR_TOKEN", Flags: FlagToken},
	Bogus:             {Name: "BOGUS", Flags: FlagNode | FlagBogus},
}

// NewLanguage builds a language from the grammar's own kinds. The shared
// kinds are always present. Token kinds must stay below MaxTokenKind.
func NewLanguage(name string, kinds map[Kind]KindInfo) *Language {
	all := make(map[Kind]KindInfo, len(kinds)+len(sharedKinds))
	for k, info := range sharedKinds {
		all[k] = info
	}
	for k, info := range kinds {
		if k < FirstGrammarKind {
			panic(fmt.Sprintf("%s: kind %d collides with a shared kind", name, k))
		}
		if info.Flags&FlagToken != 0 && k >= MaxTokenKind {
			panic(fmt.Sprintf("%s: token kind %s is out of TokenSet range", name, info.Name))
		}
		all[k] = info
	}
	return &Language{Name: name, kinds: all}
}

// KindName returns the upper-case name of k, or a numeric placeholder.
func (l *Language) KindName(k Kind) string {
	if l != nil {
		if info, ok := l.kinds[k]; ok {
			return info.Name
		}
	}
	return fmt.Sprintf("KIND_%d", k)
}

// Display is how k is spelled in a diagnostic: the token text when there is
// one, the kind name otherwise.
func (l *Language) Display(k Kind) string {
	if k == EOF {
		return "the end of the file"
	}
	if l != nil {
		if info, ok := l.kinds[k]; ok && info.Text != "" {
			return "`" + info.Text + "`"
		}
	}
	return l.KindName(k)
}

// ToBogus returns the recovery kind for k.
func (l *Language) ToBogus(k Kind) Kind {
	if l != nil {
		info, ok := l.kinds[k]
		if ok && info.Flags&FlagBogus != 0 {
			return k
		}
		if ok && info.Bogus != 0 {
			return info.Bogus
		}
	}
	return Bogus
}

func (l *Language) has(k Kind, f KindFlags) bool {
	if l == nil {
		return false
	}
	return l.kinds[k].Flags&f != 0
}

func (l *Language) IsBogus(k Kind) bool { return l.has(k, FlagBogus) }
func (l *Language) IsList(k Kind) bool  { return l.has(k, FlagList) }
func (l *Language) IsToken(k Kind) bool { return l.has(k, FlagToken) }
func (l *Language) IsRoot(k Kind) bool  { return l.has(k, FlagRoot) }

// Kinds returns every kind known to l, in ascending order.
func (l *Language) Kinds() []Kind {
	out := make([]Kind, 0, len(l.kinds))
	for k := range l.kinds {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
