package typeset

import (
	"fmt"
	"image/color"
	"os"
	"strings"
	"sync"
	"unicode"

	"github.com/tdewolff/canvas"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"

	"github.com/ebalder/altogen/pkg/units"
)

// DefaultFamily is the engine's built-in font family, the Go fonts.
const DefaultFamily = "Go"

// CanvasEngine implements Engine on top of github.com/tdewolff/canvas font
// faces. One engine can be shared across workers; font family state is
// guarded by a mutex.
type CanvasEngine struct {
	mu       sync.Mutex
	families map[string]*fontEntry
}

type fontEntry struct {
	family *canvas.FontFamily
	styles map[canvas.FontStyle][]byte
}

// NewCanvasEngine builds an engine with the Go font family preloaded in
// regular, bold, italic and bold-italic.
func NewCanvasEngine() (*CanvasEngine, error) {
	e := &CanvasEngine{families: map[string]*fontEntry{}}
	for _, f := range []struct {
		style canvas.FontStyle
		data  []byte
	}{
		{canvas.FontRegular, goregular.TTF},
		{canvas.FontBold, gobold.TTF},
		{canvas.FontItalic, goitalic.TTF},
		{canvas.FontBold | canvas.FontItalic, gobolditalic.TTF},
	} {
		if err := e.LoadFont(DefaultFamily, f.data, f.style); err != nil {
			return nil, fmt.Errorf("loading built-in font: %w", err)
		}
	}
	return e, nil
}

// LoadFont registers font data under a family name and style. The first
// style loaded for a family must include the regular face, which serves as
// the fallback for unloaded styles.
func (e *CanvasEngine) LoadFont(familyName string, data []byte, style canvas.FontStyle) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	key := strings.ToLower(familyName)
	entry, ok := e.families[key]
	if !ok {
		entry = &fontEntry{
			family: canvas.NewFontFamily(familyName),
			styles: map[canvas.FontStyle][]byte{},
		}
		e.families[key] = entry
	}
	if err := entry.family.LoadFont(data, 0, style); err != nil {
		return fmt.Errorf("loading font for family %s: %w", familyName, err)
	}
	entry.styles[style] = data
	return nil
}

// LoadFontFile reads a TTF/OTF file and registers it under the family name.
func (e *CanvasEngine) LoadFontFile(familyName, path string, style canvas.FontStyle) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading font file %s: %w", path, err)
	}
	return e.LoadFont(familyName, data, style)
}

// entryFor resolves a descriptor family, falling back to the built-in
// family when the requested one was never loaded.
func (e *CanvasEngine) entryFor(family string) *fontEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	if entry, ok := e.families[strings.ToLower(family)]; ok {
		return entry
	}
	return e.families[strings.ToLower(DefaultFamily)]
}

// styleFor merges the descriptor's style keywords with a markup kind into a
// canvas font style.
func styleFor(font FontDescriptor, kind Kind) canvas.FontStyle {
	style := canvas.FontRegular
	for _, s := range font.Styles {
		switch s {
		case "bold":
			style |= canvas.FontBold
		case "semibold":
			style |= canvas.FontSemiBold
		case "ultrabold":
			style |= canvas.FontExtraBold
		case "heavy", "black":
			style |= canvas.FontBlack
		case "medium":
			style |= canvas.FontMedium
		case "light":
			style |= canvas.FontLight
		case "ultralight":
			style |= canvas.FontExtraLight
		case "italic", "oblique":
			style |= canvas.FontItalic
		}
	}
	switch kind {
	case StyleItalic, StyleOblique:
		style |= canvas.FontItalic
	case WeightBold:
		style |= canvas.FontBold
	case WeightUltrabold:
		style |= canvas.FontExtraBold
	case WeightHeavy:
		style |= canvas.FontBlack
	case WeightUltralight:
		style |= canvas.FontExtraLight
	}
	return style
}

// nearestLoaded reduces a requested style to one the family actually has.
// Weight collapses to bold or regular, the italic bit is kept when an italic
// face exists.
func (entry *fontEntry) nearestLoaded(want canvas.FontStyle) canvas.FontStyle {
	if _, ok := entry.styles[want]; ok {
		return want
	}
	italic := want & canvas.FontItalic
	weight := canvas.FontRegular
	if want&^canvas.FontItalic >= canvas.FontSemiBold {
		weight = canvas.FontBold
	}
	for _, candidate := range []canvas.FontStyle{
		weight | italic,
		weight,
		canvas.FontRegular | italic,
		canvas.FontRegular,
	} {
		if _, ok := entry.styles[candidate]; ok {
			return candidate
		}
	}
	return canvas.FontRegular
}

func typographicOptions(kind Kind) canvas.FontVariant {
	switch kind {
	case VariantSmallCaps:
		return canvas.FontSmallcaps
	case ShiftSubscript:
		return canvas.FontSubscript
	case ShiftSuperscript:
		return canvas.FontSuperscript
	}
	return canvas.FontNormal
}

// face builds a canvas font face for the descriptor under the given markup
// kind. Size is in points; canvas face measurements come back in
// millimeters.
func (e *CanvasEngine) face(font FontDescriptor, kind Kind, col color.Color) *canvas.FontFace {
	entry := e.entryFor(font.Family)
	style := entry.nearestLoaded(styleFor(font, kind))
	return entry.family.Face(font.Size, col, style, typographicOptions(kind))
}

// Lines implements Engine: greedy wrapping against the width constraint,
// then alignment, justification and direction resolution. All reported
// geometry is in points.
func (e *CanvasEngine) Lines(req Request) ([]Line, error) {
	if req.Font.Family == "" {
		return nil, fmt.Errorf("layout request without a font descriptor")
	}

	faces := map[Kind]*canvas.FontFace{}
	faceFor := func(kind Kind) *canvas.FontFace {
		if f, ok := faces[kind]; ok {
			return f
		}
		f := e.face(req.Font, kind, canvas.Black)
		faces[kind] = f
		return f
	}
	measure := func(text string, kind Kind) float64 {
		return units.MmToPt(faceFor(kind).TextWidth(text))
	}

	raw := wrapTokens(req.Text, req.Width, req.Spans, measure)

	fm := faceFor("").Metrics()
	metrics := lineMetrics{
		ascent:  units.MmToPt(fm.Ascent),
		descent: units.MmToPt(fm.Descent),
		height:  units.MmToPt(fm.LineHeight) + req.LineSpacing,
	}
	return assembleLines(raw, req, metrics), nil
}

// MissingGlyphs counts the characters of text the descriptor's regular face
// cannot render. Whitespace and control characters are skipped. A non-zero
// count is reported as *UnrenderableGlyphError by callers that opt into
// strict checking.
func (e *CanvasEngine) MissingGlyphs(text string, font FontDescriptor) (int, error) {
	entry := e.entryFor(font.Family)
	data, ok := entry.styles[entry.nearestLoaded(styleFor(font, ""))]
	if !ok {
		return 0, fmt.Errorf("no font data loaded for family %s", font.Family)
	}
	f, err := sfnt.Parse(data)
	if err != nil {
		return 0, fmt.Errorf("parsing font for glyph audit: %w", err)
	}
	var buf sfnt.Buffer
	missing := 0
	for _, r := range text {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			continue
		}
		idx, err := f.GlyphIndex(&buf, r)
		if err != nil || idx == 0 {
			missing++
		}
	}
	return missing, nil
}
