package parser

import (
	"errors"

	"github.com/biomejs/biome-sub019/internal/syntax"
)

var (
	// ErrRecoveryDisabled is returned while parsing speculatively.
	ErrRecoveryDisabled = errors.New("recovery is disabled")
	// ErrAlreadyRecovered is returned by a soft recovery that finds its
	// boundary at the current token.
	ErrAlreadyRecovered = errors.New("parser is already at a recovery point")
	// ErrRecoveryEOF is returned at the end of input.
	ErrRecoveryEOF = errors.New("recovery reached the end of input")
)

// Recovery describes where error recovery may resume.
type Recovery interface {
	// IsAtRecovered reports whether the current token is a safe place to
	// resume normal parsing.
	IsAtRecovered(p *Parser) bool
	// RecoveredKind is the bogus kind that wraps the skipped tokens.
	RecoveredKind() syntax.Kind
	// ForceProgress tells Recover to consume one token even when the
	// boundary already holds at the current one.
	ForceProgress() bool
}

// TokenSetRecovery resumes at any token in Set and, with LineBreak, at the
// first token that starts a new line. A Soft recovery never consumes a
// boundary token and fails with ErrAlreadyRecovered instead.
type TokenSetRecovery struct {
	Kind      syntax.Kind
	Set       syntax.TokenSet
	LineBreak bool
	Soft      bool
}

func (r TokenSetRecovery) IsAtRecovered(p *Parser) bool {
	return p.AtTS(r.Set) || (r.LineBreak && p.HasPrecedingLineBreak())
}

func (r TokenSetRecovery) RecoveredKind() syntax.Kind { return r.Kind }
func (r TokenSetRecovery) ForceProgress() bool        { return !r.Soft }

// RecoveryFunc is a Recovery with a custom boundary test.
type RecoveryFunc struct {
	Kind syntax.Kind
	At   func(p *Parser) bool
	Soft bool
}

func (r RecoveryFunc) IsAtRecovered(p *Parser) bool { return r.At(p) }
func (r RecoveryFunc) RecoveredKind() syntax.Kind   { return r.Kind }
func (r RecoveryFunc) ForceProgress() bool          { return !r.Soft }

// Recover skips tokens until r's boundary and wraps them into one node of
// r's bogus kind. It never produces an empty node: when the boundary
// already holds, one token is consumed anyway unless r is soft.
func Recover(h Host, r Recovery) (CompletedMarker, error) {
	p := h.Base()
	if p.IsSpeculative() {
		return CompletedMarker{}, ErrRecoveryDisabled
	}
	if p.At(syntax.EOF) {
		return CompletedMarker{}, ErrRecoveryEOF
	}
	if r.IsAtRecovered(p) && !r.ForceProgress() {
		return CompletedMarker{}, ErrAlreadyRecovered
	}
	m := p.Start()
	p.BumpAny()
	for !p.At(syntax.EOF) && !r.IsAtRecovered(p) {
		p.BumpAny()
	}
	return m.Complete(p, r.RecoveredKind()), nil
}
