// Package alto models the per-page ground-truth annotation and serializes
// it to ALTO XML. One annotation file describes one page and references its
// rendered sibling by filename.
package alto

import (
	"fmt"

	"github.com/google/uuid"
)

// NewID returns an XML-safe unique identifier. A leading underscore keeps
// IDs valid when the UUID starts with a digit.
func NewID() string {
	return "_" + uuid.NewString()
}

// Line is one emitted text line. All coordinates are integer millimeters
// from the page's top-left corner.
type Line struct {
	ID       string
	Text     string
	Baseline int
	Top      int
	Bottom   int
	Left     int
	Right    int

	// BaselineLeft and BaselineRight are the horizontal extent of the
	// baseline segment. They match Left/Right unless baseline padding
	// widened them.
	BaselineLeft  int
	BaselineRight int
}

// BaselinePoints renders the two-endpoint baseline segment spanning the
// line's horizontal extent at its baseline height.
func (l *Line) BaselinePoints() string {
	return fmt.Sprintf("%d,%d %d,%d", l.BaselineLeft, l.Baseline, l.BaselineRight, l.Baseline)
}

// PolygonPoints renders the four-point bounding polygon, clockwise from the
// top-left corner.
func (l *Line) PolygonPoints() string {
	return fmt.Sprintf("%d,%d %d,%d %d,%d %d,%d",
		l.Left, l.Top,
		l.Right, l.Top,
		l.Right, l.Bottom,
		l.Left, l.Bottom)
}

// Width of the line box in millimeters.
func (l *Line) Width() int { return l.Right - l.Left }

// Height of the line box in millimeters.
func (l *Line) Height() int { return l.Bottom - l.Top }

// TextBlock groups the lines one frame contributed to one page. Its box is
// the bounding union of its line boxes.
type TextBlock struct {
	ID     string
	X      int
	Y      int
	Width  int
	Height int

	// BaseDir is "ltr", "rtl" or empty when unresolved.
	BaseDir string

	Lines []*Line
}

// NewTextBlock builds a block around its lines, deriving the box from the
// union of the line boxes. It is an error to build a block with no lines.
func NewTextBlock(lines []*Line, baseDir string) (*TextBlock, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("text block requires at least one line")
	}
	minLeft, minTop := lines[0].Left, lines[0].Top
	maxRight, maxBottom := lines[0].Right, lines[0].Bottom
	for _, l := range lines[1:] {
		if l.Left < minLeft {
			minLeft = l.Left
		}
		if l.Top < minTop {
			minTop = l.Top
		}
		if l.Right > maxRight {
			maxRight = l.Right
		}
		if l.Bottom > maxBottom {
			maxBottom = l.Bottom
		}
	}
	return &TextBlock{
		ID:      NewID(),
		X:       minLeft,
		Y:       minTop,
		Width:   maxRight - minLeft,
		Height:  maxBottom - minTop,
		BaseDir: baseDir,
		Lines:   lines,
	}, nil
}

// Page is one page's annotation record.
type Page struct {
	// FileName references the rendered sibling page.
	FileName string

	// Width and Height are the page dimensions in millimeters.
	Width  float64
	Height float64

	Language string

	// BaseDir is "ltr", "rtl" or empty.
	BaseDir string

	Blocks []*TextBlock
}
