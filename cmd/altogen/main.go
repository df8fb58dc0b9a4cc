// altogen is a command-line tool for synthesizing OCR training data from
// plain text.
//
// The render command paginates UTF-8 text files onto vector pages and writes
// an ALTO annotation next to each page with line positions in print
// coordinates. The rasterize command takes those annotations, renders the
// referenced pages to bitmaps at a chosen resolution and rewrites the
// coordinates to pixels, producing image/ground-truth pairs ready for model
// training.
//
// Usage:
//
//	altogen render -f "Serif Normal 10" -O out/ chapter1.txt chapter2.txt
//	altogen rasterize -d 300 -O train/ out/chapter1.0.xml
//
// Both commands process documents in parallel when --workers is set above 1.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/ebalder/altogen/pkg/batch"
	"github.com/ebalder/altogen/pkg/raster"
	"github.com/ebalder/altogen/pkg/render"
	"github.com/ebalder/altogen/pkg/typeset"
	"github.com/ebalder/altogen/pkg/units"
)

var cli struct {
	Workers int `short:"w" default:"1" help:"Number of documents to process in parallel."`

	Render    RenderCmd    `cmd:"" help:"Render text files into vector pages with parallel ALTO annotations."`
	Rasterize RasterizeCmd `cmd:"" help:"Rasterize annotated pages and rewrite their coordinates to pixels."`
}

// RenderCmd renders text documents into paged vector/annotation pairs.
type RenderCmd struct {
	PaperSize []float64 `short:"p" default:"210,297" help:"Paper size (width,height) in mm."`
	Margins   []float64 `short:"m" default:"25,30,20,20" help:"Page margins (top,bottom,left,right) in mm."`
	Font      string    `short:"f" default:"Serif Normal 10" help:"Font specification to render the text in."`
	Language  string    `short:"l" help:"Language tag for language-specific rendering and the annotation."`
	BaseDir   string    `short:"b" enum:"L,R," default:"" help:"Base direction for the Unicode BiDi algorithm."`
	Template  string    `short:"t" type:"existingfile" help:"Page template file (JSON or YAML) overriding paper size and margins."`
	Format    string    `enum:"svg,pdf" default:"svg" help:"Vector page format."`

	LineSpacing   float64 `default:"0" help:"Extra space between lines in points."`
	BaselineShift float64 `default:"0" help:"Baseline adjustment in mm, positive moves text up."`

	PadAll        float64 `help:"Padding applied to every side of emitted boxes in mm."`
	PadHorizontal float64 `help:"Padding applied to left and right of emitted boxes in mm."`
	PadVertical   float64 `help:"Padding applied to top and bottom of emitted boxes in mm."`
	PadLeft       float64 `help:"Padding applied to the left of emitted boxes in mm."`
	PadRight      float64 `help:"Padding applied to the right of emitted boxes in mm."`
	PadTop        float64 `help:"Padding applied to the top of emitted boxes in mm."`
	PadBottom     float64 `help:"Padding applied to the bottom of emitted boxes in mm."`
	PadBaseline   float64 `help:"Padding applied to baseline endpoints in mm."`

	Markup            []string `help:"Markup effects to apply to random words (e.g. weight_bold,underline_single)."`
	MarkupProbability float64  `default:"0.1" help:"Per-word probability of applying a markup effect."`
	MarkupSeed        int64    `default:"0" help:"Seed for reproducible markup placement."`

	Strict    bool   `help:"Fail when the font cannot render a glyph instead of warning."`
	OutputDir string `short:"O" default:"." help:"Directory to place page and annotation outputs into."`

	Docs []string `arg:"" type:"existingfile" help:"Text files to render."`
}

func (r *RenderCmd) Run() error {
	if len(r.PaperSize) != 2 {
		return fmt.Errorf("paper size needs width,height, got %v", r.PaperSize)
	}
	if len(r.Margins) != 4 {
		return fmt.Errorf("margins need top,bottom,left,right, got %v", r.Margins)
	}
	if err := os.MkdirAll(r.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	engine, err := typeset.NewCanvasEngine()
	if err != nil {
		return err
	}

	cfg := render.DefaultConfig()
	cfg.PaperWidth = r.PaperSize[0]
	cfg.PaperHeight = r.PaperSize[1]
	cfg.Margins.Top = r.Margins[0]
	cfg.Margins.Bottom = r.Margins[1]
	cfg.Margins.Left = r.Margins[2]
	cfg.Margins.Right = r.Margins[3]
	cfg.Font = r.Font
	cfg.Language = r.Language
	cfg.BaseDir = r.BaseDir
	cfg.TemplatePath = r.Template
	cfg.Format = r.Format
	cfg.LineSpacing = r.LineSpacing
	cfg.BaselineShift = r.BaselineShift
	cfg.Padding = units.Padding{
		All:        r.PadAll,
		Horizontal: r.PadHorizontal,
		Vertical:   r.PadVertical,
		Left:       r.PadLeft,
		Right:      r.PadRight,
		Top:        r.PadTop,
		Bottom:     r.PadBottom,
		Baseline:   r.PadBaseline,
	}
	cfg.MarkupKinds = r.Markup
	cfg.MarkupProbability = r.MarkupProbability
	cfg.MarkupSeed = r.MarkupSeed
	cfg.StrictGlyphs = r.Strict
	cfg.Engine = engine

	return batch.Run(context.Background(), cli.Workers, r.Docs,
		func(ctx context.Context, doc string) error {
			data, err := os.ReadFile(doc)
			if err != nil {
				return err
			}
			outBase := filepath.Join(r.OutputDir, filepath.Base(doc))
			pages, err := render.RenderText(string(data), outBase, cfg)
			if err != nil {
				return err
			}
			fmt.Printf("%s: %d pages\n", doc, pages)
			return nil
		},
		func(done, total int, item string, err error) {
			if err != nil {
				fmt.Fprintf(os.Stderr, "[%d/%d] %s failed: %v\n", done, total, item, err)
				return
			}
			fmt.Printf("[%d/%d] rendered %s\n", done, total, item)
		})
}

// RasterizeCmd converts annotated vector pages into pixel-space bitmaps.
type RasterizeCmd struct {
	DPI         int    `short:"d" default:"300" help:"Resolution for page rasterization."`
	Backgrounds string `type:"existingdir" help:"Directory of PNG backgrounds to blend into the pages."`
	OutputDir   string `short:"O" default:"." help:"Directory to place bitmap and rewritten annotation files into."`

	Docs []string `arg:"" type:"existingfile" help:"Annotation files produced by the render command."`
}

func (r *RasterizeCmd) Run() error {
	if err := os.MkdirAll(r.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	cfg := raster.DefaultConfig()
	cfg.DPI = r.DPI
	cfg.Backgrounds = r.Backgrounds

	return batch.Run(context.Background(), cli.Workers, r.Docs,
		func(ctx context.Context, doc string) error {
			return raster.Rasterize(doc, r.OutputDir, cfg)
		},
		func(done, total int, item string, err error) {
			if err != nil {
				fmt.Fprintf(os.Stderr, "[%d/%d] %s failed: %v\n", done, total, item, err)
				return
			}
			fmt.Printf("[%d/%d] rasterized %s\n", done, total, item)
		})
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("altogen"),
		kong.Description("Synthesize OCR training data: paginate text onto vector pages with ALTO ground truth, then rasterize the pairs."),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(ctx.Run())
}
