package parser

import (
	"fmt"

	"github.com/biomejs/biome-sub019/internal/source"
	"github.com/biomejs/biome-sub019/internal/syntax"
)

// Marker is a node that has been started but not completed. Every marker
// must be completed or abandoned before the production that opened it
// returns; Finish panics otherwise.
type Marker struct {
	pos      uint32
	start    source.TextSize
	oldStart uint32
}

// Complete closes the node with kind.
func (m Marker) Complete(h Host, kind syntax.Kind) CompletedMarker {
	p := h.Base()
	ev := &p.events[m.pos]
	m.checkOpen(ev)
	ev.Syntax = kind
	finish := len(p.events)
	p.events = append(p.events, Event{Kind: EventFinish})
	p.open--
	return CompletedMarker{
		startPos:  m.pos,
		finishPos: uint32(finish),
		start:     m.start,
		oldStart:  m.oldStart,
	}
}

// Abandon drops the node. Tokens and nodes recorded after the marker stay
// where they are and become children of the enclosing open node.
// The start event stays behind as a dead tombstone, so completing or
// abandoning the marker again panics.
func (m Marker) Abandon(h Host) {
	p := h.Base()
	ev := &p.events[m.pos]
	m.checkOpen(ev)
	ev.abandoned = true
	p.open--
}

func (m Marker) checkOpen(ev *Event) {
	switch {
	case ev.Kind != EventStart:
		panic(fmt.Sprintf("marker at event %d does not point at a start event", m.pos))
	case ev.abandoned:
		panic(fmt.Sprintf("marker at event %d was abandoned", m.pos))
	case ev.Syntax != syntax.Tombstone:
		panic(fmt.Sprintf("marker at event %d was already completed", m.pos))
	}
}

// Start is the offset of the first token the node may hold.
func (m Marker) Start() source.TextSize { return m.start }

// CompletedMarker is a finished node that can still be renamed, wrapped by a
// new parent with Precede, or reopened with Undo.
type CompletedMarker struct {
	startPos  uint32
	finishPos uint32
	start     source.TextSize
	oldStart  uint32
}

func (c CompletedMarker) Kind(h Host) syntax.Kind {
	return h.Base().events[c.startPos].Syntax
}

func (c CompletedMarker) ChangeKind(h Host, kind syntax.Kind) {
	h.Base().events[c.startPos].Syntax = kind
}

// ChangeToBogus turns the node into the recovery kind of its current kind.
func (c CompletedMarker) ChangeToBogus(h Host) {
	p := h.Base()
	c.ChangeKind(p, p.lang.ToBogus(c.Kind(p)))
}

// Range is the trimmed range of the node's tokens. A node without tokens has
// an empty range at the position where it started.
func (c CompletedMarker) Range(h Host) source.TextRange {
	p := h.Base()
	end := c.start
	for i := int(c.finishPos) - 1; i >= int(c.oldStart); i-- {
		if ev := p.events[i]; ev.Kind == EventToken {
			end = ev.End
			break
		}
	}
	return source.NewRange(c.start, end)
}

// Text is the source text covered by Range.
func (c CompletedMarker) Text(h Host) string {
	p := h.Base()
	return c.Range(p).Slice(p.source.Text())
}

// Precede opens a new node that will enclose c as its first child. This
// builds left-nested chains such as `a > b + c` one operand at a time.
func (c CompletedMarker) Precede(h Host) Marker {
	p := h.Base()
	ev := &p.events[c.startPos]
	if ev.ForwardParent != 0 {
		panic(fmt.Sprintf("node at event %d already has a forward parent", c.startPos))
	}
	m := p.Start()
	ev.ForwardParent = m.pos - c.startPos
	m.start = c.start
	m.oldStart = c.oldStart
	return m
}

// Undo reopens the node so it can be completed again with another kind.
func (c CompletedMarker) Undo(h Host) Marker {
	p := h.Base()
	start := &p.events[c.startPos]
	if start.ForwardParent != 0 {
		panic("cannot undo a node that has been preceded")
	}
	start.Syntax = syntax.Tombstone
	p.events[c.finishPos] = tombstone()
	p.open++
	return Marker{pos: c.startPos, start: c.start, oldStart: c.oldStart}
}
