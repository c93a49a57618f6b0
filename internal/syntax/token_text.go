package syntax

import (
	"hash/maphash"
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/biomejs/biome-sub019/internal/source"
)

// TokenText is a view into the text of a green token. It never copies:
// Text, Slice and the trim and split helpers all return sub-views.
// Equality, ordering and hashing use the viewed content.
type TokenText struct {
	token *GreenToken
	rng   TextRange
}

// NewTokenText views the full text of token.
func NewTokenText(token *GreenToken) TokenText {
	return TokenText{token: token, rng: source.RangeAt(0, token.TextLen())}
}

// Text returns the viewed substring.
func (t TokenText) Text() string {
	if t.token == nil {
		return ""
	}
	return t.rng.Slice(t.token.text)
}

func (t TokenText) String() string { return t.Text() }

func (t TokenText) Len() TextSize { return t.rng.Len() }

func (t TokenText) IsEmpty() bool { return t.rng.Empty() }

// Range is the viewed range relative to the token start.
func (t TokenText) Range() TextRange { return t.rng }

// Token is the green token behind the view.
func (t TokenText) Token() *GreenToken { return t.token }

// Slice narrows the view. r is relative to the current view.
func (t TokenText) Slice(r TextRange) TokenText {
	if r.End > t.rng.Len() {
		panic("TokenText.Slice out of bounds")
	}
	return TokenText{token: t.token, rng: r.Add(t.rng.Start)}
}

// TrimToken drops leading and trailing Unicode whitespace. A text made only
// of whitespace becomes an empty view.
func (t TokenText) TrimToken() TokenText {
	s := t.Text()
	start := 0
	for start < len(s) {
		r, size := utf8.DecodeRuneInString(s[start:])
		if !unicode.IsSpace(r) {
			break
		}
		start += size
	}
	end := len(s)
	for end > start {
		r, size := utf8.DecodeLastRuneInString(s[:end])
		if !unicode.IsSpace(r) {
			break
		}
		end -= size
	}
	if start == end {
		return t.Slice(source.EmptyAt(0))
	}
	return t.Slice(source.NewRange(source.SizeOf(start), source.SizeOf(end)))
}

// SplitPattern finds the first separator in s.
type SplitPattern interface {
	// find returns the separator position and length, or -1.
	find(s string) (int, int)
}

// RunePattern splits on a single rune.
type RunePattern rune

func (p RunePattern) find(s string) (int, int) {
	i := strings.IndexRune(s, rune(p))
	if i < 0 {
		return -1, 0
	}
	return i, utf8.RuneLen(rune(p))
}

// StringPattern splits on a literal string. The empty pattern never matches.
type StringPattern string

func (p StringPattern) find(s string) (int, int) {
	if p == "" {
		return -1, 0
	}
	i := strings.Index(s, string(p))
	return i, len(p)
}

// Split yields the pieces between separators, empty pieces included, so
// "a,,b," split on ',' yields "a", "", "b", "". A pattern that never matches
// yields the whole text once. The sequence can be iterated many times.
func (t TokenText) Split(pattern SplitPattern) iter.Seq[TokenText] {
	return func(yield func(TokenText) bool) {
		s := t.Text()
		pos := 0
		for {
			i, n := pattern.find(s[pos:])
			if i < 0 {
				yield(t.Slice(source.NewRange(source.SizeOf(pos), source.SizeOf(len(s)))))
				return
			}
			if !yield(t.Slice(source.RangeAt(source.SizeOf(pos), source.SizeOf(i)))) {
				return
			}
			pos += i + n
		}
	}
}

// HasPrefix reports whether the viewed text starts with prefix.
func (t TokenText) HasPrefix(prefix string) bool {
	return strings.HasPrefix(t.Text(), prefix)
}

// EqualFold compares ignoring ASCII case.
func (t TokenText) EqualFold(s string) bool {
	a := t.Text()
	if len(a) != len(s) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if toLowerASCII(a[i]) != toLowerASCII(s[i]) {
			return false
		}
	}
	return true
}

func toLowerASCII(b byte) byte {
	if 'A' <= b && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

// Equal compares the viewed content.
func (t TokenText) Equal(other TokenText) bool {
	return t.Text() == other.Text()
}

// Compare orders by content, like strings.Compare.
func (t TokenText) Compare(other TokenText) int {
	return strings.Compare(t.Text(), other.Text())
}

var tokenTextSeed = maphash.MakeSeed()

// Hash hashes the viewed content. Equal views hash equally within a process.
func (t TokenText) Hash() uint64 {
	return maphash.String(tokenTextSeed, t.Text())
}
