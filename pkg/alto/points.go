package alto

import (
	"fmt"
	"regexp"
	"strconv"
)

// Point is one 2D coordinate of a PointsType list.
type Point struct {
	X float64
	Y float64
}

// PointsParseError reports a point list with an odd number of coordinate
// tokens, which cannot be paired.
type PointsParseError struct {
	Tokens int
}

func (e *PointsParseError) Error() string {
	return fmt.Sprintf("odd number of coordinates (%d) in points sequence", e.Tokens)
}

var numberRe = regexp.MustCompile(`[-+]?\d*\.?\d+(?:[eE][-+]?\d+)?`)

// ParsePoints parses an ALTO PointsType value. The type is underspecified,
// so several serializations occur in practice:
//
//	x0,y0 x1,y1 ...
//	x0 y0 x1 y1 ...
//	(x0,y0) (x1,y1) ...
//	(x0 y0) (x1 y1) ...
//
// Parsing is permissive: every numeric token is collected in order and the
// tokens are paired. An odd token count is a *PointsParseError.
func ParsePoints(s string) ([]Point, error) {
	tokens := numberRe.FindAllString(s, -1)
	if len(tokens)%2 != 0 {
		return nil, &PointsParseError{Tokens: len(tokens)}
	}
	points := make([]Point, 0, len(tokens)/2)
	for i := 0; i < len(tokens); i += 2 {
		x, err := strconv.ParseFloat(tokens[i], 64)
		if err != nil {
			return nil, fmt.Errorf("parsing coordinate %q: %w", tokens[i], err)
		}
		y, err := strconv.ParseFloat(tokens[i+1], 64)
		if err != nil {
			return nil, fmt.Errorf("parsing coordinate %q: %w", tokens[i+1], err)
		}
		points = append(points, Point{X: x, Y: y})
	}
	return points, nil
}
