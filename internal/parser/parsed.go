package parser

import (
	"github.com/biomejs/biome-sub019/internal/diag"
	"github.com/biomejs/biome-sub019/internal/source"
	"github.com/biomejs/biome-sub019/internal/syntax"
)

// ParsedSyntax is the result of a production: either Present with the
// completed node, or Absent when the production did not apply at the
// current token and consumed nothing.
type ParsedSyntax struct {
	marker  CompletedMarker
	present bool
}

func Present(m CompletedMarker) ParsedSyntax { return ParsedSyntax{marker: m, present: true} }

// Absent is the zero ParsedSyntax.
func Absent() ParsedSyntax { return ParsedSyntax{} }

func (s ParsedSyntax) IsPresent() bool { return s.present }
func (s ParsedSyntax) IsAbsent() bool  { return !s.present }

// Marker returns the completed node when present.
func (s ParsedSyntax) Marker() (CompletedMarker, bool) {
	return s.marker, s.present
}

// Unwrap returns the completed node and panics when absent.
func (s ParsedSyntax) Unwrap() CompletedMarker {
	if !s.present {
		panic("Unwrap on an absent syntax")
	}
	return s.marker
}

// Kind returns the node kind, or Tombstone when absent.
func (s ParsedSyntax) Kind(h Host) syntax.Kind {
	if !s.present {
		return syntax.Tombstone
	}
	return s.marker.Kind(h)
}

// Range returns the node range when present.
func (s ParsedSyntax) Range(h Host) (source.TextRange, bool) {
	if !s.present {
		return source.TextRange{}, false
	}
	return s.marker.Range(h), true
}

// Map applies fn to a present node.
func (s ParsedSyntax) Map(fn func(CompletedMarker) CompletedMarker) ParsedSyntax {
	if !s.present {
		return s
	}
	return Present(fn(s.marker))
}

// Precede wraps a present node in a new one; for an absent syntax it simply
// starts a node at the current token.
func (s ParsedSyntax) Precede(h Host) Marker {
	if !s.present {
		return h.Base().Start()
	}
	return s.marker.Precede(h)
}

// DiagnosticFactory builds the diagnostic for a missing or recovered
// construct spanning r.
type DiagnosticFactory func(p *Parser, r source.TextRange) diag.Diagnostic

// OrAddDiagnostic reports an absent syntax at the current token without
// recovering.
func (s ParsedSyntax) OrAddDiagnostic(h Host, factory DiagnosticFactory) (CompletedMarker, bool) {
	if s.present {
		return s.marker, true
	}
	p := h.Base()
	p.Error(factory(p, p.CurRange()))
	return CompletedMarker{}, false
}

// OrRecover returns a present node as is. For an absent syntax it runs the
// recovery and reports factory's diagnostic over the recovered range, or
// over the current token when recovery failed.
func (s ParsedSyntax) OrRecover(h Host, r Recovery, factory DiagnosticFactory) (CompletedMarker, error) {
	if s.present {
		return s.marker, nil
	}
	p := h.Base()
	m, err := Recover(p, r)
	if err != nil {
		p.Error(factory(p, p.CurRange()))
		return CompletedMarker{}, err
	}
	p.Error(factory(p, m.Range(p)))
	return m, nil
}
