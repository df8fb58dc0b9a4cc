// Package layout defines page templates: named rectangular regions ("frames")
// that text flows through, loaded from JSON or YAML template files or
// synthesized from a page size and margins.
//
// All template coordinates are millimeters with the origin at the top-left
// corner of the page.
package layout

import "fmt"

// Alignment is the horizontal text alignment inside a frame.
type Alignment string

// The closed set of frame alignments.
const (
	AlignLeft    Alignment = "left"
	AlignCenter  Alignment = "center"
	AlignRight   Alignment = "right"
	AlignJustify Alignment = "justify"
)

// ParseAlignment validates an alignment string. The empty string defaults to
// justify.
func ParseAlignment(s string) (Alignment, error) {
	switch Alignment(s) {
	case "":
		return AlignJustify, nil
	case AlignLeft, AlignCenter, AlignRight, AlignJustify:
		return Alignment(s), nil
	}
	return "", fmt.Errorf("invalid alignment %q (must be left, center, right or justify)", s)
}

// Frame is a rectangular region on a page where text can flow.
type Frame struct {
	X      float64 // left edge, mm
	Y      float64 // top edge, mm
	Width  float64 // mm, > 0
	Height float64 // mm, > 0

	Alignment Alignment

	// Text carries frame-local content for parallel column rendering. A
	// template where any frame has text switches pagination into parallel
	// mode.
	Text string

	// Language, BaseDir and Font override the document-level settings for
	// this frame. BaseDir is "L", "R" or empty.
	Language string
	BaseDir  string
	Font     string
}

// Validate checks the frame invariants: positive extent and enumerated
// alignment/base direction values.
func (f Frame) Validate() error {
	if f.Width <= 0 {
		return fmt.Errorf("frame width must be positive, got %g", f.Width)
	}
	if f.Height <= 0 {
		return fmt.Errorf("frame height must be positive, got %g", f.Height)
	}
	if _, err := ParseAlignment(string(f.Alignment)); err != nil {
		return err
	}
	if f.BaseDir != "" && f.BaseDir != "L" && f.BaseDir != "R" {
		return fmt.Errorf("invalid base_dir %q (must be L, R or empty)", f.BaseDir)
	}
	return nil
}

// PageTemplate is a non-empty ordered sequence of frames. Once validated it
// is immutable and shared read-only across all pages of a document.
type PageTemplate struct {
	Frames []Frame
}

// NewPageTemplate validates the frame list and returns a template.
func NewPageTemplate(frames []Frame) (*PageTemplate, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("page template must contain at least one frame")
	}
	for i, f := range frames {
		if err := f.Validate(); err != nil {
			return nil, &InvalidFieldError{Frame: i, Detail: err.Error()}
		}
	}
	return &PageTemplate{Frames: frames}, nil
}

// Parallel reports whether any frame carries its own text, which selects the
// parallel pagination regime.
func (t *PageTemplate) Parallel() bool {
	for _, f := range t.Frames {
		if f.Text != "" {
			return true
		}
	}
	return false
}

// ResolveOrder returns the frames in processing order for the given document
// direction. For right-to-left documents with more than one frame the
// sequence is reversed exactly once, so the rightmost column fills first.
// The reorder is structural: it fixes the iteration order for the whole
// document, not per page.
func (t *PageTemplate) ResolveOrder(rtl bool) []Frame {
	if !rtl || len(t.Frames) < 2 {
		return t.Frames
	}
	out := make([]Frame, len(t.Frames))
	for i, f := range t.Frames {
		out[len(t.Frames)-1-i] = f
	}
	return out
}

// Margins are page margins in millimeters.
type Margins struct {
	Top    float64
	Bottom float64
	Left   float64
	Right  float64
}

// DefaultTemplate builds a single-column template spanning the page minus
// margins, with justified alignment.
func DefaultTemplate(pageWidth, pageHeight float64, m Margins) (*PageTemplate, error) {
	return NewPageTemplate([]Frame{{
		X:         m.Left,
		Y:         m.Top,
		Width:     pageWidth - m.Left - m.Right,
		Height:    pageHeight - m.Top - m.Bottom,
		Alignment: AlignJustify,
	}})
}
