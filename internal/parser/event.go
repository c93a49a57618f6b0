package parser

import (
	"fmt"
	"slices"

	"github.com/biomejs/biome-sub019/internal/source"
	"github.com/biomejs/biome-sub019/internal/syntax"
)

type EventKind uint8

const (
	EventStart EventKind = iota
	EventFinish
	EventToken
)

// Event is one step of tree construction. A start event with the Tombstone
// kind is either still open or was abandoned; folding skips it.
type Event struct {
	Kind EventKind
	// Syntax is the node kind of a start event or the token kind of a token event.
	Syntax syntax.Kind
	// ForwardParent is the distance to the start event of a node that was
	// created later with Precede and must enclose this one. Zero means none.
	ForwardParent uint32
	// End is the end of a token event's trimmed range.
	End source.TextSize

	abandoned bool
}

func tombstone() Event {
	return Event{Kind: EventStart, Syntax: syntax.Tombstone}
}

// fold replays events into sink. Start events are opened outermost first by
// following forward parent links. events is consumed.
func fold(events []Event, sink *treeSink) {
	var parents []syntax.Kind
	for i := range events {
		ev := events[i]
		events[i] = tombstone()
		switch ev.Kind {
		case EventStart:
			if ev.Syntax == syntax.Tombstone && ev.ForwardParent == 0 {
				continue
			}
			parents = append(parents[:0], ev.Syntax)
			idx, fwd := i, ev.ForwardParent
			for fwd != 0 {
				idx += int(fwd)
				next := events[idx]
				if next.Kind != EventStart {
					panic(fmt.Sprintf("forward parent of event %d is not a start event", i))
				}
				events[idx] = tombstone()
				parents = append(parents, next.Syntax)
				fwd = next.ForwardParent
			}
			for _, kind := range slices.Backward(parents) {
				if kind != syntax.Tombstone {
					sink.startNode(kind)
				}
			}
		case EventFinish:
			sink.finishNode()
		case EventToken:
			sink.token(ev.Syntax, ev.End)
		}
	}
}

// treeSink attaches trivia to tokens while the events are replayed. Trivia up
// to a token's start leads it; trivia marked trailing right after it trails
// it.
type treeSink struct {
	text    string
	trivia  []syntax.Trivia
	next    int
	pos     source.TextSize
	builder *syntax.TreeBuilder
}

func newTreeSink(text string, trivia []syntax.Trivia, builder *syntax.TreeBuilder) *treeSink {
	return &treeSink{text: text, trivia: trivia, builder: builder}
}

func (s *treeSink) startNode(kind syntax.Kind) { s.builder.StartNode(kind) }
func (s *treeSink) finishNode()                { s.builder.FinishNode() }

func (s *treeSink) token(kind syntax.Kind, end source.TextSize) {
	start := s.pos
	leading := s.eatTrivia(false)
	s.pos = end
	trailing := s.eatTrivia(true)
	s.builder.Token(kind, s.text[start:s.pos], leading, trailing)
}

func (s *treeSink) eatTrivia(trailing bool) []syntax.TriviaPiece {
	var pieces []syntax.TriviaPiece
	for s.next < len(s.trivia) {
		t := s.trivia[s.next]
		if t.Trailing != trailing || t.Range.Start != s.pos {
			break
		}
		pieces = append(pieces, syntax.TriviaPiece{Kind: t.Kind, Len: t.Range.Len()})
		s.pos = t.Range.End
		s.next++
	}
	return pieces
}

// finish checks that every byte went into the tree.
func (s *treeSink) finish() {
	if s.next != len(s.trivia) || int(s.pos) != len(s.text) {
		panic(fmt.Sprintf("tree covers %d of %d bytes, %d trivia pieces left", s.pos, len(s.text), len(s.trivia)-s.next))
	}
}
