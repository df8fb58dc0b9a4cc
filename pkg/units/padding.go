package units

// Padding describes the extra space added around emitted line boxes and
// baselines. Values are millimeters. Scopes compose additively: a value given
// for All and another for Horizontal both contribute to the left and right
// sides. Baseline applies only to the two baseline endpoints, not to boxes.
type Padding struct {
	All        float64
	Horizontal float64
	Vertical   float64
	Left       float64
	Right      float64
	Top        float64
	Bottom     float64
	Baseline   float64
}

// Sides returns the composed per-side padding in millimeters.
func (p Padding) Sides() (left, right, top, bottom float64) {
	left = p.All + p.Horizontal + p.Left
	right = p.All + p.Horizontal + p.Right
	top = p.All + p.Vertical + p.Top
	bottom = p.All + p.Vertical + p.Bottom
	return left, right, top, bottom
}

// IsZero reports whether no padding is configured at all.
func (p Padding) IsZero() bool {
	return p == Padding{}
}

// Apply grows a box given in points by the composed padding. Left and top
// edges move outward (decrease), right and bottom edges move outward
// (increase).
func (p Padding) Apply(left, right, top, bottom float64) (l, r, t, b float64) {
	pl, pr, pt, pb := p.Sides()
	return left - MmToPt(pl), right + MmToPt(pr), top - MmToPt(pt), bottom + MmToPt(pb)
}

// ApplyBaseline extends both baseline endpoints (points) horizontally by the
// baseline-only padding.
func (p Padding) ApplyBaseline(left, right float64) (l, r float64) {
	bp := MmToPt(p.Baseline)
	return left - bp, right + bp
}
