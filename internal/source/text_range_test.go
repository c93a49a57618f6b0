package source

import "testing"

func TestTextRange_Sub(t *testing.T) {
	tests := []struct {
		name     string
		r        TextRange
		shift    TextSize
		expected TextRange
	}{
		{"shift left by 5", TextRange{10, 20}, 5, TextRange{5, 15}},
		{"shift by 0", TextRange{10, 20}, 0, TextRange{10, 20}},
		{"shift equals start", TextRange{10, 20}, 10, TextRange{0, 10}},
		{"shift past start keeps range", TextRange{10, 20}, 15, TextRange{10, 20}},
		{"empty range", TextRange{10, 10}, 3, TextRange{7, 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Sub(tt.shift); got != tt.expected {
				t.Fatalf("Sub(%d) = %v, want %v", tt.shift, got, tt.expected)
			}
		})
	}
}

func TestTextRange_CoverAndIntersect(t *testing.T) {
	a := NewRange(2, 5)
	b := NewRange(4, 9)
	if got := a.Cover(b); got != NewRange(2, 9) {
		t.Fatalf("Cover = %v", got)
	}
	if got, ok := a.Intersect(b); !ok || got != NewRange(4, 5) {
		t.Fatalf("Intersect = %v, %v", got, ok)
	}
	if _, ok := NewRange(0, 1).Intersect(NewRange(3, 4)); ok {
		t.Fatalf("disjoint ranges must not intersect")
	}
	if got, ok := NewRange(0, 3).Intersect(NewRange(3, 4)); !ok || !got.Empty() {
		t.Fatalf("touching ranges intersect in an empty range, got %v %v", got, ok)
	}
}

func TestTextRange_Contains(t *testing.T) {
	r := NewRange(3, 6)
	if r.Contains(6) {
		t.Fatalf("end is exclusive")
	}
	if !r.ContainsInclusive(6) {
		t.Fatalf("end is inclusive for ContainsInclusive")
	}
	if !r.ContainsRange(NewRange(3, 3)) || r.ContainsRange(NewRange(2, 4)) {
		t.Fatalf("ContainsRange mismatch")
	}
	if got := r.Slice("abcdefgh"); got != "def" {
		t.Fatalf("Slice = %q", got)
	}
}

func TestNewRange_PanicsOnInverted(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	_ = NewRange(5, 4)
}
