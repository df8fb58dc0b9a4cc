package layout

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadTemplateJSON(t *testing.T) {
	path := writeTemp(t, "two-column.json", `{
		"frames": [
			{"x": 20, "y": 25, "width": 80, "height": 240},
			{"x": 110, "y": 25, "width": 80, "height": 240, "alignment": "left",
			 "language": "he", "base_dir": "R"}
		]
	}`)
	tmpl, err := LoadTemplate(path)
	if err != nil {
		t.Fatalf("LoadTemplate: %v", err)
	}
	if len(tmpl.Frames) != 2 {
		t.Fatalf("got %d frames, want 2", len(tmpl.Frames))
	}
	if tmpl.Frames[0].Alignment != AlignJustify {
		t.Errorf("default alignment = %q, want justify", tmpl.Frames[0].Alignment)
	}
	if tmpl.Frames[1].BaseDir != "R" || tmpl.Frames[1].Language != "he" {
		t.Errorf("frame overrides not preserved: %+v", tmpl.Frames[1])
	}
}

func TestLoadTemplateYAML(t *testing.T) {
	path := writeTemp(t, "single.yaml", "frames:\n  - x: 10\n    y: 10\n    width: 100\n    height: 200\n")
	tmpl, err := LoadTemplate(path)
	if err != nil {
		t.Fatalf("LoadTemplate: %v", err)
	}
	if len(tmpl.Frames) != 1 || tmpl.Frames[0].Width != 100 {
		t.Errorf("unexpected template: %+v", tmpl)
	}
}

func TestLoadTemplateMissingField(t *testing.T) {
	path := writeTemp(t, "bad.json", `{"frames": [{"x": 1, "y": 2, "width": 50}]}`)
	_, err := LoadTemplate(path)
	var missing *MissingFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("err = %v, want MissingFieldError", err)
	}
	if missing.Frame != 0 || missing.Field != "height" {
		t.Errorf("got frame=%d field=%q", missing.Frame, missing.Field)
	}
}

func TestLoadTemplateInvalidValue(t *testing.T) {
	cases := []string{
		`{"frames": [{"x": 1, "y": 2, "width": 0, "height": 10}]}`,
		`{"frames": [{"x": 1, "y": 2, "width": 10, "height": 10, "alignment": "wide"}]}`,
		`{"frames": [{"x": 1, "y": 2, "width": 10, "height": 10, "base_dir": "X"}]}`,
	}
	for i, content := range cases {
		path := writeTemp(t, "bad.json", content)
		_, err := LoadTemplate(path)
		var invalid *InvalidFieldError
		if !errors.As(err, &invalid) {
			t.Errorf("case %d: err = %v, want InvalidFieldError", i, err)
		}
	}
}

func TestLoadTemplateNotFound(t *testing.T) {
	_, err := LoadTemplate(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("err = %v, want fs.ErrNotExist", err)
	}
}

func TestEmptyTemplateRejected(t *testing.T) {
	if _, err := NewPageTemplate(nil); err == nil {
		t.Error("empty frame list accepted")
	}
	path := writeTemp(t, "empty.json", `{"frames": []}`)
	if _, err := LoadTemplate(path); err == nil {
		t.Error("empty template file accepted")
	}
}

func TestDefaultTemplate(t *testing.T) {
	tmpl, err := DefaultTemplate(210, 297, Margins{Top: 25, Bottom: 30, Left: 20, Right: 20})
	if err != nil {
		t.Fatal(err)
	}
	f := tmpl.Frames[0]
	if f.X != 20 || f.Y != 25 || f.Width != 170 || f.Height != 242 {
		t.Errorf("unexpected default frame: %+v", f)
	}
	if f.Alignment != AlignJustify {
		t.Errorf("alignment = %q, want justify", f.Alignment)
	}
}

func TestResolveOrderRTL(t *testing.T) {
	tmpl, err := NewPageTemplate([]Frame{
		{X: 20, Y: 20, Width: 80, Height: 200, Alignment: AlignJustify},
		{X: 110, Y: 20, Width: 80, Height: 200, Alignment: AlignJustify},
	})
	if err != nil {
		t.Fatal(err)
	}
	ltr := tmpl.ResolveOrder(false)
	if ltr[0].X != 20 || ltr[1].X != 110 {
		t.Errorf("LTR order changed: %+v", ltr)
	}
	rtl := tmpl.ResolveOrder(true)
	if rtl[0].X != 110 || rtl[1].X != 20 {
		t.Errorf("RTL order not reversed: %+v", rtl)
	}
	// A single frame is never reordered.
	single, _ := NewPageTemplate([]Frame{{X: 5, Y: 5, Width: 10, Height: 10, Alignment: AlignLeft}})
	if got := single.ResolveOrder(true); got[0].X != 5 {
		t.Errorf("single frame reordered: %+v", got)
	}
}

func TestResolveRTL(t *testing.T) {
	cases := []struct {
		baseDir, lang string
		want          bool
	}{
		{"R", "", true},
		{"L", "he", false},
		{"", "he", true},
		{"", "he-IL", true},
		{"", "ar", true},
		{"", "yi", true},
		{"", "en", false},
		{"", "", false},
	}
	for _, c := range cases {
		if got := ResolveRTL(c.baseDir, c.lang); got != c.want {
			t.Errorf("ResolveRTL(%q, %q) = %v, want %v", c.baseDir, c.lang, got, c.want)
		}
	}
}

func TestBaseDirLabel(t *testing.T) {
	if got := BaseDirLabel("R", ""); got != "rtl" {
		t.Errorf("got %q", got)
	}
	if got := BaseDirLabel("L", "ar"); got != "ltr" {
		t.Errorf("got %q", got)
	}
	if got := BaseDirLabel("", "ar"); got != "rtl" {
		t.Errorf("got %q", got)
	}
	if got := BaseDirLabel("", "en"); got != "" {
		t.Errorf("got %q", got)
	}
}
