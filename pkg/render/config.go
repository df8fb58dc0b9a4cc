package render

import (
	"fmt"
	"io"
	"os"

	"github.com/tdewolff/canvas"

	"github.com/ebalder/altogen/pkg/layout"
	"github.com/ebalder/altogen/pkg/typeset"
	"github.com/ebalder/altogen/pkg/units"
)

// Engine is the layout and drawing backend a document is rendered with.
// typeset.CanvasEngine implements it; tests may substitute their own.
type Engine interface {
	typeset.Engine
	DrawLine(ctx *canvas.Context, line typeset.Line, originX, baselineY float64, font typeset.FontDescriptor) error
	MissingGlyphs(text string, font typeset.FontDescriptor) (int, error)
}

// Output formats for the rendered vector pages.
const (
	FormatSVG = "svg"
	FormatPDF = "pdf"
)

// Config holds user options for rendering a document
type Config struct {
	PaperWidth  float64 // Page width in mm
	PaperHeight float64 // Page height in mm
	Margins     layout.Margins

	Font     string // Font description, e.g. "Serif Normal 10"
	Language string // BCP 47 language tag for the annotation
	BaseDir  string // Base direction override: "L", "R" or ""

	TemplatePath  string         // Optional page template file (JSON/YAML)
	ParallelTexts map[int]string // Per-frame texts, keyed by resolved frame index

	Format        string        // Vector page format: svg or pdf
	LineSpacing   float64       // Extra space between lines in points
	BaselineShift float64       // Baseline adjustment in mm, positive moves up
	Padding       units.Padding // Extra space around emitted boxes

	MarkupKinds       []string // Random markup effects to apply
	MarkupProbability float64  // Per-word probability of markup
	MarkupSeed        int64    // RNG seed for reproducible markup

	StrictGlyphs bool      // Fail on unrenderable glyphs instead of warning
	LogWarnings  bool      // Whether to print warnings
	Logger       io.Writer // Custom logger for warnings (nil = stdout)

	// Engine is the shared layout engine. Nil constructs a fresh
	// canvas-backed one, but batch callers should share a single engine
	// across documents.
	Engine Engine
}

// DefaultConfig returns a config with sensible defaults: A4 paper with the
// classic book margins and a 10pt serif face.
func DefaultConfig() Config {
	return Config{
		PaperWidth:  210,
		PaperHeight: 297,
		Margins:     layout.Margins{Top: 25, Bottom: 30, Left: 20, Right: 20},
		Font:        "Serif Normal 10",
		Format:      FormatSVG,
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

func (c Config) validate() error {
	if c.PaperWidth <= 0 || c.PaperHeight <= 0 {
		return fmt.Errorf("paper size must be positive, got %gx%g", c.PaperWidth, c.PaperHeight)
	}
	if c.Format != FormatSVG && c.Format != FormatPDF {
		return fmt.Errorf("unsupported output format %q (must be %s or %s)", c.Format, FormatSVG, FormatPDF)
	}
	return nil
}
