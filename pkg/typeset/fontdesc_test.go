package typeset

import "testing"

func TestParseFontDescriptor(t *testing.T) {
	cases := []struct {
		in     string
		family string
		styles []string
		size   float64
	}{
		{"Serif Normal 10", "Serif", []string{"normal"}, 10},
		{"Serif 10", "Serif", nil, 10},
		{"Serif", "Serif", nil, DefaultFontSize},
		{"Noto Sans Hebrew Bold Italic 12.5", "Noto Sans Hebrew", []string{"bold", "italic"}, 12.5},
		{"Go Regular 8", "Go", []string{"regular"}, 8},
	}
	for _, c := range cases {
		got, err := ParseFontDescriptor(c.in)
		if err != nil {
			t.Errorf("ParseFontDescriptor(%q): %v", c.in, err)
			continue
		}
		if got.Family != c.family || got.Size != c.size {
			t.Errorf("ParseFontDescriptor(%q) = %+v", c.in, got)
		}
		if len(got.Styles) != len(c.styles) {
			t.Errorf("ParseFontDescriptor(%q) styles = %v, want %v", c.in, got.Styles, c.styles)
			continue
		}
		for i := range c.styles {
			if got.Styles[i] != c.styles[i] {
				t.Errorf("ParseFontDescriptor(%q) styles = %v, want %v", c.in, got.Styles, c.styles)
			}
		}
	}
}

func TestParseFontDescriptorTrailingStylesOnly(t *testing.T) {
	// Style keywords are stripped from the tail only.
	got, err := ParseFontDescriptor("Archivo Black 11")
	if err != nil {
		t.Fatal(err)
	}
	if got.Family != "Archivo" || len(got.Styles) != 1 || got.Styles[0] != "black" {
		t.Errorf("got %+v", got)
	}
	// Non-keyword words stay part of the family name.
	got, err = ParseFontDescriptor("Bookman Old 9")
	if err != nil {
		t.Fatal(err)
	}
	if got.Family != "Bookman Old" || len(got.Styles) != 0 {
		t.Errorf("got %+v", got)
	}
}

func TestParseFontDescriptorErrors(t *testing.T) {
	for _, in := range []string{"", "10", "Serif 0"} {
		if _, err := ParseFontDescriptor(in); err == nil {
			t.Errorf("ParseFontDescriptor(%q) succeeded, want error", in)
		}
	}
}

func TestHasStyle(t *testing.T) {
	d := FontDescriptor{Family: "Serif", Styles: []string{"bold", "italic"}, Size: 10}
	if !d.HasStyle("bold") || d.HasStyle("oblique") {
		t.Errorf("HasStyle misbehaves for %+v", d)
	}
}
