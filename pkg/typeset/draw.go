package typeset

import (
	"image/color"

	"github.com/tdewolff/canvas"

	"github.com/ebalder/altogen/pkg/units"
)

// DrawLine draws a laid-out line onto a canvas context as glyph outline
// paths, so the resulting vector page contains no text elements and stays
// rasterizable by path-only SVG renderers.
//
// originX is the x of the line's ink origin and baselineY the y of its
// baseline, both in millimeters in the context's Cartesian (y-up)
// coordinates.
func (e *CanvasEngine) DrawLine(ctx *canvas.Context, line Line, originX, baselineY float64, font FontDescriptor) error {
	for _, seg := range line.Segments {
		var col color.Color = canvas.Black
		if seg.Kind == ForegroundRandom {
			col = seg.Color
		}
		face := e.face(font, seg.Kind, col)

		path, _, err := face.ToPath(seg.Text)
		if err != nil {
			return err
		}
		x := originX + units.PtToMm(seg.X)
		ctx.SetFillColor(col)
		ctx.SetStrokeColor(canvas.Transparent)
		ctx.DrawPath(x, baselineY, path)

		if err := e.drawDecoration(ctx, seg, face, x, baselineY, col); err != nil {
			return err
		}
	}
	return nil
}

// drawDecoration strokes underline, overline and strikethrough rules for a
// segment. Positions derive from the face metrics at the segment's x span.
func (e *CanvasEngine) drawDecoration(ctx *canvas.Context, seg Segment, face *canvas.FontFace, x, baselineY float64, col color.Color) error {
	var ys []float64
	dashed := false
	fm := face.Metrics()
	thickness := fm.LineHeight * 0.04
	switch seg.Kind {
	case UnderlineSingle:
		ys = []float64{baselineY - 1.5*thickness}
	case UnderlineDouble:
		ys = []float64{baselineY - 1.5*thickness, baselineY - 3.5*thickness}
	case UnderlineLow:
		ys = []float64{baselineY - 3*thickness}
	case UnderlineError:
		ys = []float64{baselineY - 1.5*thickness}
		dashed = true
	case OverlineSingle:
		ys = []float64{baselineY + fm.Ascent + thickness}
	case Strikethrough:
		ys = []float64{baselineY + fm.XHeight/2}
	default:
		return nil
	}

	width := units.PtToMm(seg.Width)
	ctx.SetFillColor(canvas.Transparent)
	ctx.SetStrokeColor(col)
	ctx.SetStrokeWidth(thickness)
	if dashed {
		ctx.SetDashes(0, thickness, thickness)
	}
	for _, y := range ys {
		p := &canvas.Path{}
		p.MoveTo(0, 0)
		p.LineTo(width, 0)
		ctx.DrawPath(x, y, p)
	}
	if dashed {
		ctx.SetDashes(0)
	}
	return nil
}
