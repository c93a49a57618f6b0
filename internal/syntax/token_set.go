package syntax

import (
	"fmt"
	"strings"
)

// TokenSet is a bitset over token kinds below MaxTokenKind.
type TokenSet [MaxTokenKind / 64]uint64

// NewTokenSet returns a set holding kinds.
func NewTokenSet(kinds ...Kind) TokenSet {
	var s TokenSet
	for _, k := range kinds {
		s = s.With(k)
	}
	return s
}

func tokenSetIndex(k Kind) (int, uint64) {
	if k >= MaxTokenKind {
		panic(fmt.Sprintf("kind %d cannot be stored in a TokenSet", k))
	}
	return int(k / 64), 1 << (k % 64)
}

// With returns s plus k.
func (s TokenSet) With(k Kind) TokenSet {
	i, bit := tokenSetIndex(k)
	s[i] |= bit
	return s
}

// Without returns s minus k.
func (s TokenSet) Without(k Kind) TokenSet {
	i, bit := tokenSetIndex(k)
	s[i] &^= bit
	return s
}

// Union returns the kinds in either set.
func (s TokenSet) Union(other TokenSet) TokenSet {
	for i := range s {
		s[i] |= other[i]
	}
	return s
}

// Contains reports membership. Kinds outside the set's range are never members.
func (s TokenSet) Contains(k Kind) bool {
	if k >= MaxTokenKind {
		return false
	}
	return s[k/64]&(1<<(k%64)) != 0
}

func (s TokenSet) IsEmpty() bool {
	return s == TokenSet{}
}

// Kinds lists the members in ascending order.
func (s TokenSet) Kinds() []Kind {
	var out []Kind
	for k := Kind(0); k < MaxTokenKind; k++ {
		if s.Contains(k) {
			out = append(out, k)
		}
	}
	return out
}

// Format renders the set with kind names from lang.
func (s TokenSet) Format(lang *Language) string {
	kinds := s.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = lang.KindName(k)
	}
	return "{" + strings.Join(names, ", ") + "}"
}
