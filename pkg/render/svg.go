package render

import (
	"fmt"
	"os"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/svg"

	"github.com/ebalder/altogen/pkg/pageflow"
	"github.com/ebalder/altogen/pkg/units"
)

// writeSVGPage draws one page onto a canvas and serializes it as SVG. Glyphs
// are drawn as outline paths, so the output contains only path elements and
// stays rasterizable without font support.
func writeSVGPage(page *pageflow.PageLayout, path string, engine Engine, cfg Config) error {
	c := canvas.New(cfg.PaperWidth, cfg.PaperHeight)
	ctx := canvas.NewContext(c)
	if err := drawPage(ctx, page, engine, cfg); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating page file %s: %w", path, err)
	}
	writer := svg.New(f, cfg.PaperWidth, cfg.PaperHeight, nil)
	c.RenderTo(writer)
	if err := writer.Close(); err != nil {
		f.Close()
		return fmt.Errorf("writing SVG page %s: %w", path, err)
	}
	return f.Close()
}

// drawPage places every line of the page. The canvas uses Cartesian
// coordinates with the origin at the bottom-left, so baselines computed in
// top-down points are flipped against the page height.
func drawPage(ctx *canvas.Context, page *pageflow.PageLayout, engine Engine, cfg Config) error {
	for _, block := range page.Blocks {
		for _, pl := range block.Lines {
			x := units.PtToMm(pl.OriginX)
			y := cfg.PaperHeight - units.PtToMm(pl.Baseline)
			if err := engine.DrawLine(ctx, pl.Line, x, y, block.Font); err != nil {
				return err
			}
		}
	}
	return nil
}
