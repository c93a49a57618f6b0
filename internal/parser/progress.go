package parser

import (
	"fmt"

	"github.com/biomejs/biome-sub019/internal/source"
)

// Progress guards loops against grammars that stop consuming tokens.
type Progress struct {
	pos source.TextSize
	set bool
}

// HasProgressed reports whether the parser moved since the last assertion.
func (pr *Progress) HasProgressed(p *Parser) bool {
	return !pr.set || pr.pos < p.source.Position()
}

// AssertProgressing panics when the parser is still where it was at the
// previous call. That is a bug in the grammar, never in the input.
func (pr *Progress) AssertProgressing(p *Parser) {
	if !pr.HasProgressed(p) {
		panic(fmt.Sprintf("parser is no longer progressing: stuck at %q %s %s",
			p.CurText(), p.lang.KindName(p.Cur()), p.CurRange()))
	}
	pr.pos, pr.set = p.source.Position(), true
}
