package parser

import "github.com/biomejs/biome-sub019/internal/diag"

// Feature is a piece of syntax that only some dialects accept.
type Feature[P Host] interface {
	IsSupported(p P) bool
}

// FeatureFunc adapts a predicate to Feature.
type FeatureFunc[P Host] func(p P) bool

func (f FeatureFunc[P]) IsSupported(p P) bool { return f(p) }

// ErrorBuilder builds the diagnostic for syntax used where it is not supported.
type ErrorBuilder[P Host] func(p P, m CompletedMarker) diag.Diagnostic

// ExclusiveSyntax keeps syntax when f is supported. Otherwise it reports the
// node and turns it into its bogus kind, so the text stays in the tree.
func ExclusiveSyntax[P Host](p P, f Feature[P], syntax ParsedSyntax, build ErrorBuilder[P]) ParsedSyntax {
	return syntax.Map(func(m CompletedMarker) CompletedMarker {
		if !f.IsSupported(p) {
			p.Base().Error(build(p, m))
			m.ChangeToBogus(p)
		}
		return m
	})
}

// ParseExclusiveSyntax parses with parse and, when f is unsupported, replaces
// any diagnostics the parse produced by the single unsupported-syntax one.
func ParseExclusiveSyntax[P Host](p P, f Feature[P], parse func(P) ParsedSyntax, build ErrorBuilder[P]) ParsedSyntax {
	if f.IsSupported(p) {
		return parse(p)
	}
	base := p.Base()
	diagsLen := len(base.diags)
	parsed := parse(p)
	base.diags = base.diags[:diagsLen]
	m, ok := parsed.Marker()
	if !ok {
		return Absent()
	}
	base.Error(build(p, m))
	m.ChangeToBogus(p)
	return Present(m)
}

// ExcludingSyntax is the inverse of ExclusiveSyntax: the node is rejected
// when f is supported.
func ExcludingSyntax[P Host](p P, f Feature[P], syntax ParsedSyntax, build ErrorBuilder[P]) ParsedSyntax {
	return syntax.Map(func(m CompletedMarker) CompletedMarker {
		if f.IsSupported(p) {
			p.Base().Error(build(p, m))
			m.ChangeToBogus(p)
		}
		return m
	})
}
