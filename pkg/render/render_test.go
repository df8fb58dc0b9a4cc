package render

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tdewolff/canvas"

	"github.com/ebalder/altogen/pkg/typeset"
)

// stubEngine lays out one 10pt line per newline and draws nothing, so the
// orchestration can be tested without a shaping backend.
type stubEngine struct {
	missing int
	drawn   int
}

func (e *stubEngine) Lines(req typeset.Request) ([]typeset.Line, error) {
	var lines []typeset.Line
	start := 0
	for start < len(req.Text) {
		end := len(req.Text)
		if idx := strings.IndexByte(req.Text[start:], '\n'); idx >= 0 {
			end = start + idx + 1
		}
		text := req.Text[start:end]
		lines = append(lines, typeset.Line{
			Start:     start,
			Length:    end - start,
			Text:      text,
			InkWidth:  float64(len(strings.TrimSpace(text))),
			InkY:      -7,
			InkHeight: 9,
			Height:    10,
		})
		start = end
	}
	return lines, nil
}

func (e *stubEngine) DrawLine(ctx *canvas.Context, line typeset.Line, originX, baselineY float64, font typeset.FontDescriptor) error {
	e.drawn++
	return nil
}

func (e *stubEngine) MissingGlyphs(text string, font typeset.FontDescriptor) (int, error) {
	return e.missing, nil
}

func TestRenderTextWithInjectedEngine(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.LogWarnings = false
	engine := &stubEngine{}
	cfg.Engine = engine

	pages, err := RenderText("one\ntwo\nthree", filepath.Join(dir, "doc.txt"), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if pages != 1 {
		t.Fatalf("got %d pages, want 1", pages)
	}
	if engine.drawn != 3 {
		t.Errorf("drew %d lines, want 3", engine.drawn)
	}
	if _, err := os.Stat(filepath.Join(dir, "doc.0.svg")); err != nil {
		t.Errorf("page not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "doc.0.xml")); err != nil {
		t.Errorf("annotation not written: %v", err)
	}
}

func TestRenderTextStrictGlyphsFromEngine(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogWarnings = false
	cfg.StrictGlyphs = true
	cfg.Engine = &stubEngine{missing: 2}

	_, err := RenderText("hi", filepath.Join(t.TempDir(), "doc.txt"), cfg)
	var unrenderable *typeset.UnrenderableGlyphError
	if !errors.As(err, &unrenderable) {
		t.Fatalf("err = %v, want UnrenderableGlyphError", err)
	}
	if unrenderable.Count != 2 {
		t.Errorf("count = %d, want 2", unrenderable.Count)
	}
}

func TestRenderTextWritesPairedFiles(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Font = "Go 10"
	cfg.Language = "en"
	cfg.LogWarnings = false

	text := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 200)
	pages, err := RenderText(text, filepath.Join(dir, "doc.txt"), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if pages < 1 {
		t.Fatalf("got %d pages", pages)
	}
	for i := 0; i < pages; i++ {
		svgPath := filepath.Join(dir, fmt.Sprintf("doc.%d.svg", i))
		xmlPath := filepath.Join(dir, fmt.Sprintf("doc.%d.xml", i))
		if _, err := os.Stat(svgPath); err != nil {
			t.Errorf("page %d: %v", i, err)
		}
		data, err := os.ReadFile(xmlPath)
		if err != nil {
			t.Fatalf("page %d: %v", i, err)
		}
		if !strings.Contains(string(data), fmt.Sprintf("<fileName>doc.%d.svg</fileName>", i)) {
			t.Errorf("annotation %d does not reference its page file", i)
		}
		if !strings.Contains(string(data), "<MeasurementUnit>mm</MeasurementUnit>") {
			t.Errorf("annotation %d lacks measurement unit", i)
		}
	}
	// No trailing empty page artifacts.
	if _, err := os.Stat(filepath.Join(dir, fmt.Sprintf("doc.%d.xml", pages))); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("unexpected extra annotation beyond page count")
	}
}

func TestRenderTextStrictGlyphs(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Font = "Go 10"
	cfg.StrictGlyphs = true
	cfg.LogWarnings = false

	_, err := RenderText("漢字テスト", filepath.Join(dir, "doc.txt"), cfg)
	var unrenderable *typeset.UnrenderableGlyphError
	if !errors.As(err, &unrenderable) {
		t.Fatalf("err = %v, want UnrenderableGlyphError", err)
	}
	if unrenderable.Count == 0 {
		t.Error("error carries no glyph count")
	}
}

func TestRenderTextRejectsUnknownFormat(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Format = "tiff"
	if _, err := RenderText("hi", "doc", cfg); err == nil {
		t.Error("unknown format accepted")
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PaperWidth = 0
	if err := cfg.validate(); err == nil {
		t.Error("zero paper width accepted")
	}
}
