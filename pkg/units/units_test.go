package units

import (
	"math"
	"testing"
)

func TestPtMmRoundTrip(t *testing.T) {
	samples := []float64{0, 0.001, 1, 10, 12, 72, 96, 210, 297, 1000}
	for _, mm := range samples {
		back := PtToMm(MmToPt(mm))
		if math.Abs(back-mm) > 1e-9 {
			t.Errorf("mm->pt->mm drift: in=%g back=%g", mm, back)
		}
	}
	for _, pt := range samples {
		back := MmToPt(PtToMm(pt))
		if math.Abs(back-pt) > 1e-9 {
			t.Errorf("pt->mm->pt drift: in=%g back=%g", pt, back)
		}
	}
}

func TestMmPxRoundTrip(t *testing.T) {
	for _, dpi := range []int{72, 150, 300, 600} {
		for _, mm := range []float64{0, 1, 25.4, 100, 297} {
			back := PxToMm(MmToPx(mm, dpi), dpi)
			if math.Abs(back-mm) > 1e-9 {
				t.Errorf("dpi=%d mm->px->mm drift: in=%g back=%g", dpi, mm, back)
			}
		}
	}
}

func TestPixelScaling300DPI(t *testing.T) {
	// A box at (10, 20) sized 5x3 mm rasterized at 300 dpi.
	cases := []struct {
		mm   float64
		want int
	}{
		{10, int(math.Round(10 * 300 / 25.4))},
		{20, int(math.Round(20 * 300 / 25.4))},
		{5, int(math.Round(5 * 300 / 25.4))},
		{3, int(math.Round(3 * 300 / 25.4))},
	}
	for _, c := range cases {
		if got := int(math.Round(MmToPx(c.mm, 300))); got != c.want {
			t.Errorf("MmToPx(%g, 300) rounds to %d, want %d", c.mm, got, c.want)
		}
	}
}

func TestIntegerMmRounding(t *testing.T) {
	// 10.2mm expressed in points.
	pt := MmToPt(10.2)
	if got := FloorMm(pt); got != 10 {
		t.Errorf("FloorMm = %d, want 10", got)
	}
	if got := CeilMm(pt); got != 11 {
		t.Errorf("CeilMm = %d, want 11", got)
	}
	if got := RoundMm(pt); got != 10 {
		t.Errorf("RoundMm = %d, want 10", got)
	}
	if got := RoundMm(MmToPt(10.6)); got != 11 {
		t.Errorf("RoundMm(10.6mm) = %d, want 11", got)
	}
}

func TestPaddingSidesCompose(t *testing.T) {
	p := Padding{All: 1, Horizontal: 2, Vertical: 3, Left: 4, Right: 5, Top: 6, Bottom: 7}
	l, r, top, b := p.Sides()
	if l != 7 || r != 8 || top != 10 || b != 11 {
		t.Errorf("Sides() = %g,%g,%g,%g, want 7,8,10,11", l, r, top, b)
	}
}

func TestPaddingMonotone(t *testing.T) {
	base := Padding{All: 1, Horizontal: 0.5, Top: 0.25}
	l0, r0, t0, b0 := base.Apply(100, 200, 50, 80)

	grow := []Padding{
		{All: 2, Horizontal: 0.5, Top: 0.25},
		{All: 1, Horizontal: 1.5, Top: 0.25},
		{All: 1, Horizontal: 0.5, Top: 0.25, Vertical: 3},
		{All: 1, Horizontal: 0.5, Top: 0.25, Left: 1, Right: 1, Bottom: 2},
	}
	for i, p := range grow {
		l, r, tt, b := p.Apply(100, 200, 50, 80)
		if l > l0 || r < r0 || tt > t0 || b < b0 {
			t.Errorf("case %d: increasing padding shrank the box: (%g,%g,%g,%g) vs (%g,%g,%g,%g)",
				i, l, r, tt, b, l0, r0, t0, b0)
		}
	}
}

func TestPaddingBaseline(t *testing.T) {
	p := Padding{Baseline: 2}
	l, r := p.ApplyBaseline(10, 20)
	if l >= 10 || r <= 20 {
		t.Errorf("baseline padding did not extend endpoints: %g, %g", l, r)
	}
	if math.Abs((10-l)-MmToPt(2)) > 1e-9 || math.Abs((r-20)-MmToPt(2)) > 1e-9 {
		t.Errorf("baseline padding off: %g, %g", l, r)
	}
}
