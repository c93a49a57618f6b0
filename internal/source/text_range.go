package source

import (
	"fmt"

	"fortio.org/safecast"
)

// TextSize is a byte offset or length inside a single text.
type TextSize = uint32

// SizeOf converts a Go length into a TextSize.
// Texts over 4GiB are not supported.
func SizeOf(n int) TextSize {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("text size overflow: %w", err))
	}
	return v
}

// TextRange is a half-open byte range [Start, End).
type TextRange struct {
	Start TextSize
	End   TextSize
}

// NewRange builds a range and panics when start > end.
func NewRange(start, end TextSize) TextRange {
	if start > end {
		panic(fmt.Sprintf("invalid text range %d..%d", start, end))
	}
	return TextRange{Start: start, End: end}
}

// RangeAt builds a range from an offset and a length.
func RangeAt(offset, length TextSize) TextRange {
	return TextRange{Start: offset, End: offset + length}
}

// EmptyAt is the zero-length range at offset.
func EmptyAt(offset TextSize) TextRange {
	return TextRange{Start: offset, End: offset}
}

func (r TextRange) Empty() bool {
	return r.Start == r.End
}

func (r TextRange) Len() TextSize {
	return r.End - r.Start
}

func (r TextRange) String() string {
	return fmt.Sprintf("%d..%d", r.Start, r.End)
}

// Contains reports whether offset lies in [Start, End).
func (r TextRange) Contains(offset TextSize) bool {
	return r.Start <= offset && offset < r.End
}

// ContainsInclusive reports whether offset lies in [Start, End].
func (r TextRange) ContainsInclusive(offset TextSize) bool {
	return r.Start <= offset && offset <= r.End
}

// ContainsRange reports whether other lies entirely inside r.
func (r TextRange) ContainsRange(other TextRange) bool {
	return r.Start <= other.Start && other.End <= r.End
}

// Cover returns the smallest range containing both ranges.
func (r TextRange) Cover(other TextRange) TextRange {
	if other.Start < r.Start {
		r.Start = other.Start
	}
	if other.End > r.End {
		r.End = other.End
	}
	return r
}

// Intersect returns the common part of both ranges, if any.
func (r TextRange) Intersect(other TextRange) (TextRange, bool) {
	start := max(r.Start, other.Start)
	end := min(r.End, other.End)
	if start > end {
		return TextRange{}, false
	}
	return TextRange{Start: start, End: end}, true
}

// Add shifts the range right by n.
func (r TextRange) Add(n TextSize) TextRange {
	return TextRange{Start: r.Start + n, End: r.End + n}
}

// Sub shifts the range left by n. Shifting past zero returns r unchanged.
func (r TextRange) Sub(n TextSize) TextRange {
	if n > r.Start {
		return r
	}
	return TextRange{Start: r.Start - n, End: r.End - n}
}

// Slice returns the text covered by r.
func (r TextRange) Slice(text string) string {
	return text[r.Start:r.End]
}

// Span is a TextRange tied to a file of a FileSet.
type Span struct {
	File FileID
	TextRange
}

// SpanOf ties r to file.
func SpanOf(file FileID, r TextRange) Span {
	return Span{File: file, TextRange: r}
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}
