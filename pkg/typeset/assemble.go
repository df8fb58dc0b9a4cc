package typeset

import (
	"strings"

	"golang.org/x/text/unicode/bidi"

	"github.com/ebalder/altogen/pkg/layout"
)

// lineMetrics are the font vertical metrics shared by every line of one
// layout request, in points.
type lineMetrics struct {
	ascent  float64
	descent float64
	height  float64
}

// resolveDirection runs the bidi algorithm over a line's text and returns
// its dominant direction. Mixed or neutral content falls back to the base
// direction.
func resolveDirection(text string, baseRTL bool) Direction {
	base := DirectionLTR
	if baseRTL {
		base = DirectionRTL
	}
	if text == "" {
		return base
	}
	def := bidi.LeftToRight
	if baseRTL {
		def = bidi.RightToLeft
	}
	var p bidi.Paragraph
	if _, err := p.SetString(text, bidi.DefaultDirection(def)); err != nil {
		return base
	}
	ordering, err := p.Order()
	if err != nil {
		return base
	}
	switch ordering.Direction() {
	case bidi.LeftToRight:
		return DirectionLTR
	case bidi.RightToLeft:
		return DirectionRTL
	}
	return base
}

// anchorOffset is the ink offset from a line's anchor edge. LTR lines anchor
// at the left frame edge, RTL lines at the right one, so "left" alignment of
// an RTL line pushes its ink a full residual width away from the anchor.
func anchorOffset(a layout.Alignment, dir Direction, width, ink float64) float64 {
	residual := width - ink
	if residual < 0 {
		residual = 0
	}
	switch a {
	case layout.AlignCenter:
		return residual / 2
	case layout.AlignLeft:
		if dir == DirectionRTL {
			return residual
		}
		return 0
	case layout.AlignRight:
		if dir == DirectionRTL {
			return 0
		}
		return residual
	}
	return 0
}

// assembleLines turns wrapped lines into the Engine's output geometry:
// justification stretching, alignment anchoring, direction resolution and
// visual-order segments.
func assembleLines(raw []rawLine, req Request, m lineMetrics) []Line {
	lines := make([]Line, 0, len(raw))
	for _, rl := range raw {
		text := req.Text[rl.start:rl.end]
		stripped := strings.TrimSpace(text)
		dir := resolveDirection(stripped, req.RTL)

		ink := rl.inkWidth
		extraGap := 0.0
		justified := req.Alignment == layout.AlignJustify && rl.broken && len(rl.words) > 1
		if justified && req.Width > ink {
			extraGap = (req.Width - ink) / float64(len(rl.words)-1)
			ink = req.Width
		}

		segments := make([]Segment, 0, len(rl.words))
		x := 0.0
		for i, w := range rl.words {
			x += w.gapBefore
			if i > 0 {
				x += extraGap
			}
			seg := Segment{Text: w.text, X: x, Width: w.width, Kind: w.kind, Color: w.color}
			if dir == DirectionRTL {
				seg.X = ink - x - w.width
			}
			segments = append(segments, seg)
			x += w.width
		}
		if dir == DirectionRTL {
			for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
				segments[i], segments[j] = segments[j], segments[i]
			}
		}

		lines = append(lines, Line{
			Start:     rl.start,
			Length:    rl.end - rl.start,
			Text:      text,
			InkX:      anchorOffset(req.Alignment, dir, req.Width, ink),
			InkY:      -m.ascent,
			InkWidth:  ink,
			InkHeight: m.ascent + m.descent,
			Height:    m.height,
			Direction: dir,
			Segments:  segments,
		})
	}
	return lines
}
