// Package units provides the unit conversions shared by the layout and
// rasterization pipeline.
//
// Three coupled coordinate systems are in play: millimeters (template files,
// emitted annotations), typographic points (text layout and page drawing) and
// pixels (rasterized output). All conversions between them live here so that
// every consumer applies the same constants and the same rounding rules.
package units

import "math"

// Conversion constants between the three coordinate systems.
const (
	// PtPerMm converts millimeters to points (72 pt per inch, 25.4 mm per inch).
	PtPerMm = 72.0 / 25.4
	// MmPerPt converts points to millimeters.
	MmPerPt = 25.4 / 72.0
)

// MmToPt converts millimeters to points.
func MmToPt(mm float64) float64 { return mm * PtPerMm }

// PtToMm converts points to millimeters.
func PtToMm(pt float64) float64 { return pt * MmPerPt }

// MmToPx converts millimeters to pixels at the given resolution.
func MmToPx(mm float64, dpi int) float64 { return mm * float64(dpi) / 25.4 }

// PxToMm converts pixels at the given resolution back to millimeters.
func PxToMm(px float64, dpi int) float64 { return px * 25.4 / float64(dpi) }

// PtToPx converts points to pixels at the given resolution.
func PtToPx(pt float64, dpi int) float64 { return pt * float64(dpi) / 72.0 }

// FloorMm converts a point value to integer millimeters, rounding down.
// Used for top and left box edges so the box never under-covers the ink.
func FloorMm(pt float64) int { return int(math.Floor(PtToMm(pt))) }

// CeilMm converts a point value to integer millimeters, rounding up.
// Used for bottom and right box edges.
func CeilMm(pt float64) int { return int(math.Ceil(PtToMm(pt))) }

// RoundMm converts a point value to integer millimeters, rounding to nearest.
// Used for baselines.
func RoundMm(pt float64) int { return int(math.Round(PtToMm(pt))) }
