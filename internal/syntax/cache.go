package syntax

import "strings"

type tokenKey struct {
	kind     Kind
	text     string
	leading  string
	trailing string
}

// NodeCache interns green tokens so that equal tokens share one allocation.
// It is not safe for concurrent use; give each goroutine its own cache.
type NodeCache struct {
	tokens map[tokenKey]*GreenToken
	hits   int
}

func NewNodeCache() *NodeCache {
	return &NodeCache{tokens: make(map[tokenKey]*GreenToken)}
}

// Token returns the interned token for the given parts, creating it on first use.
func (c *NodeCache) Token(kind Kind, text string, leading, trailing []TriviaPiece) *GreenToken {
	if c == nil {
		return NewGreenToken(kind, text, leading, trailing)
	}
	key := tokenKey{kind: kind, text: text, leading: encodePieces(leading), trailing: encodePieces(trailing)}
	if t, ok := c.tokens[key]; ok {
		c.hits++
		return t
	}
	// own copy of the text so the cache does not pin the source buffer
	t := NewGreenToken(kind, strings.Clone(text), leading, trailing)
	c.tokens[key] = t
	return t
}

// Len is the number of distinct tokens.
func (c *NodeCache) Len() int {
	if c == nil {
		return 0
	}
	return len(c.tokens)
}

// Hits counts lookups served from the cache.
func (c *NodeCache) Hits() int {
	if c == nil {
		return 0
	}
	return c.hits
}

func encodePieces(pieces []TriviaPiece) string {
	if len(pieces) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, p := range pieces {
		sb.WriteByte(byte(p.Kind))
		sb.WriteByte(byte(p.Len))
		sb.WriteByte(byte(p.Len >> 8))
		sb.WriteByte(byte(p.Len >> 16))
		sb.WriteByte(byte(p.Len >> 24))
	}
	return sb.String()
}
