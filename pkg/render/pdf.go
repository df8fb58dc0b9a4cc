package render

import (
	"fmt"

	"codeberg.org/go-pdf/fpdf"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/ebalder/altogen/pkg/pageflow"
	"github.com/ebalder/altogen/pkg/typeset"
	"github.com/ebalder/altogen/pkg/units"
)

const pdfFontFamily = "page"

// writePDFPage writes one page as PDF text drawn at the computed baselines.
// The PDF output embeds the built-in faces only; it exists as an alternate
// vector format and is not consumed by the rasterization step.
func writePDFPage(page *pageflow.PageLayout, path string, cfg Config) error {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: cfg.PaperWidth, Ht: cfg.PaperHeight},
	})
	pdf.AddUTF8FontFromBytes(pdfFontFamily, "", goregular.TTF)
	pdf.AddUTF8FontFromBytes(pdfFontFamily, "B", gobold.TTF)
	pdf.AddUTF8FontFromBytes(pdfFontFamily, "I", goitalic.TTF)
	pdf.AddUTF8FontFromBytes(pdfFontFamily, "BI", gobolditalic.TTF)
	pdf.AddPageFormat("P", fpdf.SizeType{Wd: cfg.PaperWidth, Ht: cfg.PaperHeight})

	for _, block := range page.Blocks {
		base := baseStyle(block.Font)
		for _, pl := range block.Lines {
			originX := units.PtToMm(pl.OriginX)
			baselineY := units.PtToMm(pl.Baseline)
			for _, seg := range pl.Line.Segments {
				pdf.SetFont(pdfFontFamily, segmentStyle(base, seg.Kind), block.Font.Size)
				if seg.Kind == typeset.ForegroundRandom {
					pdf.SetTextColor(int(seg.Color.R), int(seg.Color.G), int(seg.Color.B))
				} else {
					pdf.SetTextColor(0, 0, 0)
				}
				pdf.Text(originX+units.PtToMm(seg.X), baselineY, seg.Text)
			}
		}
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("writing PDF page %s: %w", path, err)
	}
	return nil
}

func baseStyle(font typeset.FontDescriptor) string {
	style := ""
	for _, s := range font.Styles {
		switch s {
		case "bold", "semibold", "ultrabold", "heavy", "black":
			style += "B"
		case "italic", "oblique":
			style += "I"
		}
	}
	return style
}

// segmentStyle folds a markup kind into fpdf's style string. Underline and
// strikethrough map onto fpdf's synthesized "U" and "S" styles.
func segmentStyle(base string, kind typeset.Kind) string {
	style := base
	switch kind {
	case typeset.WeightBold, typeset.WeightUltrabold, typeset.WeightHeavy:
		style += "B"
	case typeset.StyleItalic, typeset.StyleOblique:
		style += "I"
	case typeset.UnderlineSingle, typeset.UnderlineDouble,
		typeset.UnderlineLow, typeset.UnderlineError:
		style += "U"
	case typeset.Strikethrough:
		style += "S"
	}
	return dedupeStyle(style)
}

func dedupeStyle(style string) string {
	out := ""
	for _, r := range style {
		seen := false
		for _, o := range out {
			if o == r {
				seen = true
				break
			}
		}
		if !seen {
			out += string(r)
		}
	}
	return out
}
