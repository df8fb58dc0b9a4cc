package typeset

import (
	"fmt"
	"image/color"
	"math/rand"
	"unicode"
)

// Kind is one inline markup effect. The set is closed: construction through
// ParseKind validates against it, so an unknown effect fails up front rather
// than at render time.
type Kind string

const (
	StyleItalic      Kind = "style_italic"
	StyleOblique     Kind = "style_oblique"
	WeightBold       Kind = "weight_bold"
	WeightUltrabold  Kind = "weight_ultrabold"
	WeightHeavy      Kind = "weight_heavy"
	WeightUltralight Kind = "weight_ultralight"
	VariantSmallCaps Kind = "variant_smallcaps"
	UnderlineSingle  Kind = "underline_single"
	UnderlineDouble  Kind = "underline_double"
	UnderlineLow     Kind = "underline_low"
	UnderlineError   Kind = "underline_error"
	OverlineSingle   Kind = "overline_single"
	ShiftSubscript   Kind = "shift_subscript"
	ShiftSuperscript Kind = "shift_superscript"
	Strikethrough    Kind = "strikethrough_true"
	ForegroundRandom Kind = "foreground_random"
)

var allKinds = map[Kind]bool{
	StyleItalic:      true,
	StyleOblique:     true,
	WeightBold:       true,
	WeightUltrabold:  true,
	WeightHeavy:      true,
	WeightUltralight: true,
	VariantSmallCaps: true,
	UnderlineSingle:  true,
	UnderlineDouble:  true,
	UnderlineLow:     true,
	UnderlineError:   true,
	OverlineSingle:   true,
	ShiftSubscript:   true,
	ShiftSuperscript: true,
	Strikethrough:    true,
	ForegroundRandom: true,
}

// ParseKind validates a markup kind name.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !allKinds[k] {
		return "", fmt.Errorf("unknown markup kind %q", s)
	}
	return k, nil
}

// Kinds lists every valid markup kind name, for CLI help output.
func Kinds() []string {
	names := make([]string, 0, len(allKinds))
	for k := range allKinds {
		names = append(names, string(k))
	}
	return names
}

// Span applies a markup kind to a byte range of a text.
type Span struct {
	Start int
	End   int
	Kind  Kind

	// Color is set for ForegroundRandom spans.
	Color color.RGBA
}

// Shift returns the span moved by delta bytes, for re-addressing spans from
// a full text into one of its suffixes.
func (s Span) Shift(delta int) Span {
	s.Start += delta
	s.End += delta
	return s
}

// Markup decorates random words of a text with a configured set of effects.
// The RNG is seeded explicitly so a document's decoration is reproducible.
type Markup struct {
	kinds       []Kind
	probability float64
	rng         *rand.Rand
}

// NewMarkup builds a markup decorator. Every kind name must be valid and the
// probability must lie in [0, 1].
func NewMarkup(kinds []string, probability float64, seed int64) (*Markup, error) {
	if probability < 0 || probability > 1 {
		return nil, fmt.Errorf("markup probability %g outside [0, 1]", probability)
	}
	parsed := make([]Kind, 0, len(kinds))
	for _, name := range kinds {
		k, err := ParseKind(name)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, k)
	}
	return &Markup{
		kinds:       parsed,
		probability: probability,
		rng:         rand.New(rand.NewSource(seed)),
	}, nil
}

// Spans walks the words of text and, with the configured probability, tags
// each with one randomly chosen kind. Offsets are bytes into text.
func (m *Markup) Spans(text string) []Span {
	if m == nil || len(m.kinds) == 0 || m.probability == 0 {
		return nil
	}
	var spans []Span
	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		wordStart := start
		start = -1
		if m.rng.Float64() >= m.probability {
			return
		}
		kind := m.kinds[m.rng.Intn(len(m.kinds))]
		span := Span{Start: wordStart, End: end, Kind: kind}
		if kind == ForegroundRandom {
			span.Color = m.randomColor()
		}
		spans = append(spans, span)
	}
	for i, r := range text {
		if unicode.IsSpace(r) {
			flush(i)
			continue
		}
		if start < 0 {
			start = i
		}
	}
	flush(len(text))
	return spans
}

// randomColor picks a dark color that stays legible on a light page.
func (m *Markup) randomColor() color.RGBA {
	return color.RGBA{
		R: uint8(m.rng.Intn(160)),
		G: uint8(m.rng.Intn(160)),
		B: uint8(m.rng.Intn(160)),
		A: 255,
	}
}

// spanAt returns the first span covering the byte range [start, end), or a
// zero span when none does.
func spanAt(spans []Span, start, end int) (Span, bool) {
	for _, s := range spans {
		if s.Start < end && start < s.End {
			return s, true
		}
	}
	return Span{}, false
}
