// Package typeset provides the text layout seam: an Engine interface that
// turns a text suffix plus frame constraints into ordered line geometry, and
// a canvas-backed implementation of it.
//
// The engine addresses text in bytes; callers that track character cursors
// convert with RunesIn/BytesIn. All geometry an Engine reports is in
// typographic points.
package typeset

import (
	"fmt"
	"image/color"

	"github.com/ebalder/altogen/pkg/layout"
)

// Direction is a line's resolved reading direction.
type Direction int

const (
	DirectionLTR Direction = iota
	DirectionRTL
)

func (d Direction) String() string {
	if d == DirectionRTL {
		return "rtl"
	}
	return "ltr"
}

// Segment is one drawable run of a line: a word (or word fragment) placed at
// a horizontal pen offset. Segments are listed in visual order.
type Segment struct {
	Text string

	// X is the pen offset from the line's ink origin, in points.
	X float64

	// Width is the advance width of the run, in points.
	Width float64

	// Kind is the markup applied to this run, empty for plain text.
	Kind  Kind
	Color color.RGBA
}

// Line is one laid-out line of text. It is ephemeral: produced by an Engine,
// consumed immediately by the pagination loop, never persisted.
//
// Start and Length address the request text in bytes and tile it exactly: a
// line's span includes its trailing whitespace and newline, so concatenating
// the spans of consecutive lines reconstructs the input.
type Line struct {
	Start  int
	Length int

	// Text is the raw span, unstripped.
	Text string

	// Ink extents. InkX is the offset of the ink from the line's anchor
	// edge: the left frame edge for LTR lines, the right frame edge for
	// RTL lines. InkY is relative to the baseline, negative above it.
	InkX      float64
	InkY      float64
	InkWidth  float64
	InkHeight float64

	// Height is the logical line height used for flow advancement,
	// including any extra line spacing.
	Height float64

	Direction Direction
	Segments  []Segment
}

// Request describes one layout invocation: the remaining text of a frame and
// the constraints it flows under. Width is in points.
type Request struct {
	Text      string
	Width     float64
	Alignment layout.Alignment
	Language  string
	RTL       bool
	Font      FontDescriptor

	// LineSpacing is extra vertical space per line, in points.
	LineSpacing float64

	// Spans carry inline markup, byte-addressed into Text.
	Spans []Span
}

// Engine lays out a text suffix under frame constraints. Implementations are
// stateless across calls: the pagination loop re-invokes Lines per page per
// frame on the remaining suffix.
type Engine interface {
	Lines(req Request) ([]Line, error)
}

// UnrenderableGlyphError reports characters the selected font cannot draw.
// Callers treat it as a warning unless strict glyph checking is enabled.
type UnrenderableGlyphError struct {
	Count int
}

func (e *UnrenderableGlyphError) Error() string {
	return fmt.Sprintf("%d unrenderable glyphs in input text", e.Count)
}
