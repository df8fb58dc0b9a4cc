package raster

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/ebalder/altogen/pkg/alto"
)

// rewriteTree converts an annotation tree to pixel coordinates in place: the
// measurement unit becomes "pixel", the page reference points at the bitmap
// and every line's position, baseline and polygon is rescaled. The polygon
// is always re-emitted as the clockwise rectangle of the scaled box; any
// original polygon shape is intentionally discarded.
func rewriteTree(doc *xmlquery.Node, scale float64, pngName string, pxW, pxH int) error {
	if err := setText(doc, "//MeasurementUnit", "pixel"); err != nil {
		return err
	}
	if err := setText(doc, "//fileName", pngName); err != nil {
		return err
	}

	for _, name := range []string{"//Page", "//PrintSpace"} {
		n := xmlquery.FindOne(doc, name)
		if n == nil {
			return fmt.Errorf("no %s element", strings.TrimPrefix(name, "//"))
		}
		n.SetAttr("WIDTH", strconv.Itoa(pxW))
		n.SetAttr("HEIGHT", strconv.Itoa(pxH))
	}

	for _, block := range xmlquery.Find(doc, "//TextBlock") {
		if err := scaleBox(block, scale); err != nil {
			return err
		}
	}

	for _, line := range xmlquery.Find(doc, "//TextLine") {
		if err := scaleBox(line, scale); err != nil {
			return err
		}
		hpos, _ := attrInt(line, "HPOS")
		vpos, _ := attrInt(line, "VPOS")
		width, _ := attrInt(line, "WIDTH")
		height, _ := attrInt(line, "HEIGHT")

		if bl := line.SelectAttr("BASELINE"); bl != "" {
			points, err := alto.ParsePoints(bl)
			if err != nil {
				return fmt.Errorf("line baseline: %w", err)
			}
			pairs := make([]string, len(points))
			for i, p := range points {
				pairs[i] = fmt.Sprintf("%d,%d", scalePx(p.X, scale), scalePx(p.Y, scale))
			}
			line.SetAttr("BASELINE", strings.Join(pairs, " "))
		}

		if pol := xmlquery.FindOne(line, ".//Polygon"); pol != nil {
			pol.SetAttr("POINTS", fmt.Sprintf("%d,%d %d,%d %d,%d %d,%d",
				hpos, vpos,
				hpos+width, vpos,
				hpos+width, vpos+height,
				hpos, vpos+height))
		}

		for _, str := range xmlquery.Find(line, "./String") {
			if err := scaleBox(str, scale); err != nil {
				return err
			}
		}
	}
	return nil
}

// scaleBox rescales the HPOS/VPOS/WIDTH/HEIGHT attributes of a node to
// integer pixels.
func scaleBox(n *xmlquery.Node, scale float64) error {
	for _, name := range []string{"HPOS", "VPOS", "WIDTH", "HEIGHT"} {
		v, err := attrFloat(n, name)
		if err != nil {
			return fmt.Errorf("%s element: %w", n.Data, err)
		}
		n.SetAttr(name, strconv.Itoa(scalePx(v, scale)))
	}
	return nil
}

// scalePx converts a stored coordinate to pixels, rounding to nearest.
func scalePx(v, scale float64) int {
	return int(math.Round(v * scale))
}

func setText(doc *xmlquery.Node, query, value string) error {
	n := xmlquery.FindOne(doc, query)
	if n == nil {
		return fmt.Errorf("no %s element", strings.TrimPrefix(query, "//"))
	}
	if n.FirstChild != nil && n.FirstChild.Type == xmlquery.TextNode {
		n.FirstChild.Data = value
		return nil
	}
	text := &xmlquery.Node{Type: xmlquery.TextNode, Data: value}
	xmlquery.AddChild(n, text)
	return nil
}

func attrFloat(n *xmlquery.Node, name string) (float64, error) {
	raw := n.SelectAttr(name)
	if raw == "" {
		return 0, fmt.Errorf("missing attribute %s", name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("attribute %s=%q: %w", name, raw, err)
	}
	return v, nil
}

func attrInt(n *xmlquery.Node, name string) (int, error) {
	v, err := attrFloat(n, name)
	return int(v), err
}
