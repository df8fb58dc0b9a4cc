package typeset

import "testing"

func TestParseKind(t *testing.T) {
	for _, name := range Kinds() {
		if _, err := ParseKind(name); err != nil {
			t.Errorf("ParseKind(%q): %v", name, err)
		}
	}
	if _, err := ParseKind("weight_wavy"); err == nil {
		t.Error("unknown kind accepted")
	}
}

func TestNewMarkupValidates(t *testing.T) {
	if _, err := NewMarkup([]string{"weight_bold", "nope"}, 0.5, 1); err == nil {
		t.Error("invalid kind list accepted")
	}
	if _, err := NewMarkup([]string{"weight_bold"}, 1.5, 1); err == nil {
		t.Error("probability above 1 accepted")
	}
	if _, err := NewMarkup([]string{"weight_bold"}, -0.1, 1); err == nil {
		t.Error("negative probability accepted")
	}
}

func TestMarkupSpansEveryWord(t *testing.T) {
	m, err := NewMarkup([]string{"weight_bold"}, 1.0, 42)
	if err != nil {
		t.Fatal(err)
	}
	spans := m.Spans("one two  three")
	if len(spans) != 3 {
		t.Fatalf("got %d spans, want 3", len(spans))
	}
	want := [][2]int{{0, 3}, {4, 7}, {9, 14}}
	for i, s := range spans {
		if s.Start != want[i][0] || s.End != want[i][1] {
			t.Errorf("span %d = [%d, %d), want %v", i, s.Start, s.End, want[i])
		}
		if s.Kind != WeightBold {
			t.Errorf("span %d kind = %q", i, s.Kind)
		}
	}
}

func TestMarkupDeterministicBySeed(t *testing.T) {
	text := "the quick brown fox jumps over the lazy dog"
	kinds := []string{"weight_bold", "style_italic", "foreground_random"}
	a, _ := NewMarkup(kinds, 0.5, 7)
	b, _ := NewMarkup(kinds, 0.5, 7)
	sa := a.Spans(text)
	sb := b.Spans(text)
	if len(sa) != len(sb) {
		t.Fatalf("span counts differ: %d vs %d", len(sa), len(sb))
	}
	for i := range sa {
		if sa[i] != sb[i] {
			t.Errorf("span %d differs: %+v vs %+v", i, sa[i], sb[i])
		}
	}
}

func TestMarkupZeroProbability(t *testing.T) {
	m, err := NewMarkup([]string{"weight_bold"}, 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	if spans := m.Spans("one two"); spans != nil {
		t.Errorf("got %d spans, want none", len(spans))
	}
}

func TestSpanShiftAndOverlap(t *testing.T) {
	s := Span{Start: 10, End: 14, Kind: WeightBold}
	shifted := s.Shift(-10)
	if shifted.Start != 0 || shifted.End != 4 {
		t.Errorf("Shift = %+v", shifted)
	}
	if _, ok := spanAt([]Span{s}, 12, 16); !ok {
		t.Error("overlapping span not found")
	}
	if _, ok := spanAt([]Span{s}, 14, 16); ok {
		t.Error("adjacent span reported as overlapping")
	}
}
