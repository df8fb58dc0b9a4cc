// Package raster re-projects an annotation onto a rasterized bitmap: it
// renders the referenced vector page at a target resolution, rewrites every
// stored coordinate to pixels and emits the bitmap/annotation pair.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	xdraw "golang.org/x/image/draw"
)

// Config holds user options for rasterizing an annotated page
type Config struct {
	DPI         int       // Target resolution
	Backgrounds string    // Directory of PNG backgrounds to blend in (optional)
	LogWarnings bool      // Whether to print warnings
	Logger      io.Writer // Custom logger for warnings (nil = stdout)
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() Config {
	return Config{
		DPI:         300,
		LogWarnings: true,
		Logger:      nil, // stdout
	}
}

func (c Config) logger() io.Writer {
	if c.Logger != nil {
		return c.Logger
	}
	return os.Stdout
}

func (c Config) warnf(format string, args ...any) {
	if !c.LogWarnings {
		return
	}
	fmt.Fprintf(c.logger(), "Warning: "+format+"\n", args...)
}

// Rasterize renders the vector page referenced by the annotation at docPath,
// writes the bitmap and the pixel-space annotation into outDir. The vector
// page is resolved relative to the annotation file and must be an SVG.
func Rasterize(docPath, outDir string, cfg Config) error {
	if cfg.DPI <= 0 {
		return fmt.Errorf("dpi must be positive, got %d", cfg.DPI)
	}

	f, err := os.Open(docPath)
	if err != nil {
		return fmt.Errorf("opening annotation %s: %w", docPath, err)
	}
	doc, err := xmlquery.Parse(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("parsing annotation %s: %w", docPath, err)
	}

	fileName := xmlquery.FindOne(doc, "//fileName")
	if fileName == nil {
		return fmt.Errorf("annotation %s references no page file", docPath)
	}
	srcName := strings.TrimSpace(fileName.InnerText())
	srcPath := filepath.Join(filepath.Dir(docPath), srcName)
	if _, err := os.Stat(srcPath); err != nil {
		return fmt.Errorf("vector page %s referenced by %s: %w", srcName, docPath, err)
	}
	if !strings.EqualFold(filepath.Ext(srcPath), ".svg") {
		return fmt.Errorf("vector page %s: only SVG pages can be rasterized", srcName)
	}

	scale, err := scaleBasis(doc, cfg)
	if err != nil {
		return err
	}

	pageW, pageH, err := pageSize(doc)
	if err != nil {
		return fmt.Errorf("annotation %s: %w", docPath, err)
	}
	pxW := int(pageW*scale + 0.5)
	pxH := int(pageH*scale + 0.5)

	img, err := renderSVG(srcPath, pxW, pxH)
	if err != nil {
		return err
	}
	if cfg.Backgrounds != "" {
		img, err = blendBackground(img, cfg.Backgrounds, cfg)
		if err != nil {
			return err
		}
	}

	pngName := strings.TrimSuffix(filepath.Base(docPath), filepath.Ext(docPath)) + ".png"
	if err := writePNG(img, filepath.Join(outDir, pngName)); err != nil {
		return err
	}

	if err := rewriteTree(doc, scale, pngName, pxW, pxH); err != nil {
		return fmt.Errorf("rewriting annotation %s: %w", docPath, err)
	}

	outXML := filepath.Join(outDir, filepath.Base(docPath))
	if err := os.WriteFile(outXML, []byte(doc.OutputXML(false)), 0o644); err != nil {
		return fmt.Errorf("writing annotation %s: %w", outXML, err)
	}
	return nil
}

// scaleBasis derives the coordinate scale factor from the annotation's
// measurement unit. Millimeter and the legacy point basis both occur in
// practice; an unknown unit is flagged and treated as millimeters.
func scaleBasis(doc *xmlquery.Node, cfg Config) (float64, error) {
	mu := xmlquery.FindOne(doc, "//MeasurementUnit")
	if mu == nil {
		return 0, fmt.Errorf("annotation has no MeasurementUnit")
	}
	unit := strings.TrimSpace(mu.InnerText())
	switch unit {
	case "mm":
		return float64(cfg.DPI) / 25.4, nil
	case "point", "pt":
		return float64(cfg.DPI) / 72.0, nil
	case "pixel":
		return 0, fmt.Errorf("annotation is already in pixel coordinates")
	}
	cfg.warnf("unknown measurement unit %q, assuming millimeters", unit)
	return float64(cfg.DPI) / 25.4, nil
}

func pageSize(doc *xmlquery.Node) (w, h float64, err error) {
	page := xmlquery.FindOne(doc, "//Page")
	if page == nil {
		return 0, 0, fmt.Errorf("no Page element")
	}
	w, err = attrFloat(page, "WIDTH")
	if err != nil {
		return 0, 0, err
	}
	h, err = attrFloat(page, "HEIGHT")
	if err != nil {
		return 0, 0, err
	}
	return w, h, nil
}

// renderSVG rasterizes the vector page onto a white canvas of the given
// pixel size.
func renderSVG(path string, w, h int) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening vector page %s: %w", path, err)
	}
	defer f.Close()

	icon, err := oksvg.ReadIconStream(f)
	if err != nil {
		return nil, fmt.Errorf("parsing vector page %s: %w", path, err)
	}
	icon.SetTarget(0, 0, float64(w), float64(h))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)
	return img, nil
}

// blendBackground multiplies a random background from the directory into the
// page image, scaled to the page's pixel size.
func blendBackground(img *image.RGBA, dir string, cfg Config) (*image.RGBA, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.png"))
	if err != nil {
		return nil, fmt.Errorf("listing backgrounds in %s: %w", dir, err)
	}
	if len(matches) == 0 {
		cfg.warnf("no PNG backgrounds found in %s", dir)
		return img, nil
	}
	bgPath := matches[rand.Intn(len(matches))]
	bf, err := os.Open(bgPath)
	if err != nil {
		return nil, fmt.Errorf("opening background %s: %w", bgPath, err)
	}
	bg, err := png.Decode(bf)
	bf.Close()
	if err != nil {
		return nil, fmt.Errorf("decoding background %s: %w", bgPath, err)
	}

	scaled := image.NewRGBA(img.Bounds())
	xdraw.BiLinear.Scale(scaled, scaled.Bounds(), bg, bg.Bounds(), xdraw.Src, nil)
	return multiply(img, scaled), nil
}

// multiply blends two images channel by channel, darkening the page the way
// scanned paper does.
func multiply(a, b *image.RGBA) *image.RGBA {
	out := image.NewRGBA(a.Bounds())
	for i := 0; i < len(a.Pix); i += 4 {
		out.Pix[i] = uint8(uint16(a.Pix[i]) * uint16(b.Pix[i]) / 255)
		out.Pix[i+1] = uint8(uint16(a.Pix[i+1]) * uint16(b.Pix[i+1]) / 255)
		out.Pix[i+2] = uint8(uint16(a.Pix[i+2]) * uint16(b.Pix[i+2]) / 255)
		out.Pix[i+3] = 255
	}
	return out
}

func writePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating image %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding image %s: %w", path, err)
	}
	return f.Close()
}
