// Package pageflow implements the pagination state machine: it flows one
// text (or one text per frame) through a page template, deciding where each
// page ends and deriving the annotation geometry of every placed line.
//
// Cursors are character offsets; the layout engine addresses bytes. The
// allocator owns the cursors for the duration of one document and converts
// at the boundary with typeset.RunesIn/BytesIn.
package pageflow

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ebalder/altogen/pkg/alto"
	"github.com/ebalder/altogen/pkg/layout"
	"github.com/ebalder/altogen/pkg/typeset"
	"github.com/ebalder/altogen/pkg/units"
)

// baselineFactor places the baseline at 0.8 of the line height below the
// line's top edge.
const baselineFactor = 0.8

// LineTooLargeError reports a single line taller than its whole frame. Such
// a line can never be placed; failing explicitly keeps the pagination loop
// from cycling forever on it.
type LineTooLargeError struct {
	Frame       int
	LineHeight  float64
	FrameHeight float64
}

func (e *LineTooLargeError) Error() string {
	return fmt.Sprintf("line height %.2fpt exceeds frame %d height %.2fpt",
		e.LineHeight, e.Frame, e.FrameHeight)
}

// Options carries the document-scoped layout settings.
type Options struct {
	// Font is the default font descriptor; frames may override it.
	Font typeset.FontDescriptor

	Language string

	// BaseDir is the document base direction: "L", "R" or empty for
	// language-based detection.
	BaseDir string

	// LineSpacing is extra space between lines, in points.
	LineSpacing float64

	// BaselineShift moves baselines vertically, in millimeters. Positive
	// values raise them.
	BaselineShift float64

	Padding units.Padding

	// Markup decorates random words; nil disables it.
	Markup *typeset.Markup
}

// PlacedLine pairs a consumed line's drawing geometry with its emitted
// annotation record.
type PlacedLine struct {
	Line typeset.Line

	// OriginX and Baseline position the line's ink on the page, in
	// points, before padding.
	OriginX  float64
	Baseline float64

	Record *alto.Line
}

// BlockLayout is one frame's contribution to one page.
type BlockLayout struct {
	FrameIndex int
	Frame      layout.Frame
	Font       typeset.FontDescriptor
	Lines      []PlacedLine
	Block      *alto.TextBlock
}

// PageLayout is one finalized page: the drawable lines and annotation
// blocks of every frame that contributed.
type PageLayout struct {
	Blocks []BlockLayout
}

// flow is one text stream and its cursor. Sequential documents share a
// single flow across all frames; parallel documents give each frame its own.
type flow struct {
	text      string
	length    int // characters
	cursor    int // characters
	exhausted bool
	spans     []typeset.Span
}

func newFlow(text string, markup *typeset.Markup) *flow {
	return &flow{
		text:   text,
		length: utf8.RuneCountInString(text),
		spans:  markup.Spans(text),
	}
}

func (f *flow) done() bool {
	return f.exhausted || f.cursor >= f.length
}

// suffix returns the unconsumed remainder of the flow's text along with the
// markup spans re-addressed to it.
func (f *flow) suffix() (string, []typeset.Span) {
	start := typeset.BytesIn(f.text, f.cursor)
	if len(f.spans) == 0 {
		return f.text[start:], nil
	}
	shifted := make([]typeset.Span, len(f.spans))
	for i, s := range f.spans {
		shifted[i] = s.Shift(-start)
	}
	return f.text[start:], shifted
}

// slot binds a frame to its flow and resolved per-frame settings.
type slot struct {
	frame   layout.Frame
	flow    *flow
	font    typeset.FontDescriptor
	lang    string
	baseDir string
	rtl     bool
}

// Allocator paginates a document. It is single-use: construct one per
// document, call NextPage until it returns nil.
type Allocator struct {
	engine typeset.Engine
	opts   Options
	slots  []slot

	// pageBaseDir is the document-level direction label for the
	// annotation, "ltr", "rtl" or empty.
	pageBaseDir string
}

// NewAllocator prepares pagination of text through the template. When any
// frame carries its own text, or parallelTexts is non-empty, every frame
// flows independently; parallelTexts is keyed by the frame's index in
// resolved (direction-aware) order, frame-level text takes precedence over
// it, and a frame with neither gets its own cursor over the main text.
// Otherwise one shared flow feeds all frames in order.
func NewAllocator(tmpl *layout.PageTemplate, text string, parallelTexts map[int]string, engine typeset.Engine, opts Options) (*Allocator, error) {
	rtl := layout.ResolveRTL(opts.BaseDir, opts.Language)
	frames := tmpl.ResolveOrder(rtl)

	parallel := len(parallelTexts) > 0 || tmpl.Parallel()

	a := &Allocator{
		engine:      engine,
		opts:        opts,
		pageBaseDir: layout.BaseDirLabel(opts.BaseDir, opts.Language),
	}

	var shared *flow
	if !parallel {
		shared = newFlow(text, opts.Markup)
	}
	for i, frame := range frames {
		s := slot{frame: frame, font: opts.Font, lang: opts.Language, baseDir: opts.BaseDir}
		if frame.Language != "" {
			s.lang = frame.Language
		}
		if frame.BaseDir != "" {
			s.baseDir = frame.BaseDir
		}
		s.rtl = layout.ResolveRTL(s.baseDir, s.lang)
		if frame.Font != "" {
			font, err := typeset.ParseFontDescriptor(frame.Font)
			if err != nil {
				return nil, err
			}
			s.font = font
		}
		if parallel {
			// Frame-level text wins, then the parallel text for this
			// resolved index. A frame with neither flows the main text
			// under its own cursor.
			frameText := frame.Text
			if frameText == "" {
				if t, ok := parallelTexts[i]; ok {
					frameText = t
				} else {
					frameText = text
				}
			}
			s.flow = newFlow(frameText, opts.Markup)
		} else {
			s.flow = shared
		}
		a.slots = append(a.slots, s)
	}
	return a, nil
}

// NextPage paginates one page. It returns nil when the document is complete:
// either every flow is exhausted, or no frame could contribute a line, which
// guards against emitting a trailing empty page.
func (a *Allocator) NextPage() (*PageLayout, error) {
	if a.finished() {
		return nil, nil
	}

	page := &PageLayout{}
	for i := range a.slots {
		s := &a.slots[i]
		if s.flow.done() {
			continue
		}
		block, err := a.fillFrame(i, s)
		if err != nil {
			return nil, err
		}
		if block != nil {
			page.Blocks = append(page.Blocks, *block)
		}
	}
	if len(page.Blocks) == 0 {
		return nil, nil
	}
	return page, nil
}

// BaseDir is the document-level base direction label for annotations.
func (a *Allocator) BaseDir() string { return a.pageBaseDir }

func (a *Allocator) finished() bool {
	for i := range a.slots {
		if !a.slots[i].flow.done() {
			return false
		}
	}
	return true
}

// fillFrame flows one frame's remaining text into its rectangle for the
// current page, advancing the flow cursor. It returns nil when the frame
// contributed no line records.
func (a *Allocator) fillFrame(frameIndex int, s *slot) (*BlockLayout, error) {
	suffix, spans := s.flow.suffix()
	if strings.TrimSpace(suffix) == "" {
		// Nothing left but whitespace: the flow can never produce
		// another record, so mark it exhausted rather than looping.
		s.flow.exhausted = true
		return nil, nil
	}

	lines, err := a.engine.Lines(typeset.Request{
		Text:        suffix,
		Width:       units.MmToPt(s.frame.Width),
		Alignment:   s.frame.Alignment,
		Language:    s.lang,
		RTL:         s.rtl,
		Font:        s.font,
		LineSpacing: a.opts.LineSpacing,
		Spans:       spans,
	})
	if err != nil {
		return nil, err
	}

	frameX := units.MmToPt(s.frame.X)
	frameY := units.MmToPt(s.frame.Y)
	frameWidth := units.MmToPt(s.frame.Width)
	frameHeight := units.MmToPt(s.frame.Height)

	var placed []PlacedLine
	var records []*alto.Line
	used := 0.0
	consumed := 0

	for _, line := range lines {
		if used+line.Height > frameHeight {
			if line.Height > frameHeight {
				return nil, &LineTooLargeError{
					Frame:       frameIndex,
					LineHeight:  line.Height,
					FrameHeight: frameHeight,
				}
			}
			// The line moves to the next page: the cursor points at
			// its start, converted from the engine's byte offset.
			consumed = typeset.RunesIn(suffix, line.Start)
			break
		}

		stripped := strings.TrimSpace(line.Text)
		if stripped == "" {
			// Whitespace-only lines advance flow and height but
			// leave no record.
			used += line.Height
			consumed += utf8.RuneCountInString(line.Text)
			continue
		}

		baseline := frameY + used + baselineFactor*line.Height - units.MmToPt(a.opts.BaselineShift)
		top := baseline + line.InkY
		bottom := top + line.InkHeight

		var left, right float64
		if line.Direction == typeset.DirectionRTL {
			right = frameX + frameWidth - line.InkX
			left = right - line.InkWidth
		} else {
			left = frameX + line.InkX
			right = left + line.InkWidth
		}
		originX := left

		pLeft, pRight, pTop, pBottom := a.opts.Padding.Apply(left, right, top, bottom)
		blLeft, blRight := a.opts.Padding.ApplyBaseline(pLeft, pRight)

		records = append(records, &alto.Line{
			ID:            alto.NewID(),
			Text:          stripped,
			Baseline:      units.RoundMm(baseline),
			Top:           units.FloorMm(pTop),
			Bottom:        units.CeilMm(pBottom),
			Left:          units.FloorMm(pLeft),
			Right:         units.CeilMm(pRight),
			BaselineLeft:  units.FloorMm(blLeft),
			BaselineRight: units.CeilMm(blRight),
		})
		placed = append(placed, PlacedLine{
			Line:     line,
			OriginX:  originX,
			Baseline: baseline,
			Record:   records[len(records)-1],
		})

		used += line.Height
		consumed += utf8.RuneCountInString(line.Text)
	}

	s.flow.cursor += consumed
	if s.flow.cursor >= s.flow.length {
		s.flow.cursor = s.flow.length
		s.flow.exhausted = true
	}

	if len(records) == 0 {
		return nil, nil
	}
	block, err := alto.NewTextBlock(records, layout.BaseDirLabel(s.baseDir, s.lang))
	if err != nil {
		return nil, err
	}
	return &BlockLayout{
		FrameIndex: frameIndex,
		Frame:      s.frame,
		Font:       s.font,
		Lines:      placed,
		Block:      block,
	}, nil
}
