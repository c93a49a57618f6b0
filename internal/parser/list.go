package parser

import (
	"github.com/biomejs/biome-sub019/internal/diag"
	"github.com/biomejs/biome-sub019/internal/source"
	"github.com/biomejs/biome-sub019/internal/syntax"
)

// NodeList is the grammar side of an unseparated list. Implementations are
// small stateless structs; P is the grammar's parser type.
type NodeList[P Host] interface {
	ListKind() syntax.Kind
	ParseElement(p P) ParsedSyntax
	IsAtListEnd(p P) bool
	// Recover handles the element just parsed. An error ends the list.
	Recover(p P, parsed ParsedSyntax) (CompletedMarker, error)
}

// SeparatedList is a NodeList whose elements are separated by a token.
type SeparatedList[P Host] interface {
	NodeList[P]
	SeparatingElementKind() syntax.Kind
	AllowTrailingSeparator() bool
	AllowEmptyElements() bool
}

// ParseNodeList parses elements until the list end or the end of input and
// wraps them into a node of the list kind.
func ParseNodeList[P Host, L NodeList[P]](p P, list L) CompletedMarker {
	base := p.Base()
	m := base.Start()
	var progress Progress
	for !base.At(syntax.EOF) && !list.IsAtListEnd(p) {
		progress.AssertProgressing(base)
		parsed := list.ParseElement(p)
		if _, err := list.Recover(p, parsed); err != nil {
			break
		}
	}
	return m.Complete(base, list.ListKind())
}

// ParseSeparatedList is ParseNodeList with exactly one separator between
// elements. A missing separator is reported and parsing goes on; an empty
// element or a trailing separator is reported unless the list allows it.
func ParseSeparatedList[P Host, L SeparatedList[P]](p P, list L) CompletedMarker {
	base := p.Base()
	m := base.Start()
	sep := list.SeparatingElementKind()
	var progress Progress
	first := true
	for !base.At(syntax.EOF) && !list.IsAtListEnd(p) {
		if first {
			first = false
		} else {
			sepRange := base.CurRange()
			if !base.Eat(sep) {
				base.Error(diag.NewError(diag.SynMissingSeparator, source.EmptyAt(sepRange.Start),
					"expected "+base.lang.Display(sep)+" but instead found `"+base.CurText()+"`"))
			} else if base.At(syntax.EOF) || list.IsAtListEnd(p) {
				if !list.AllowTrailingSeparator() {
					base.Error(diag.NewError(diag.SynTrailingSeparator, sepRange,
						"trailing "+base.lang.Display(sep)+" is not allowed here").
						WithFix("remove the trailing separator", diag.DeleteEdit(sepRange, base.Text(sepRange))))
				}
				break
			}
		}
		progress.AssertProgressing(base)
		parsed := list.ParseElement(p)
		if parsed.IsAbsent() && base.At(sep) {
			if !list.AllowEmptyElements() {
				base.Error(diag.NewError(diag.SynEmptyElement, source.EmptyAt(base.CurRange().Start),
					"expected an element before "+base.lang.Display(sep)))
			}
			continue
		}
		if _, err := list.Recover(p, parsed); err != nil {
			break
		}
	}
	return m.Complete(base, list.ListKind())
}
