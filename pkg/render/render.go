// Package render orchestrates document synthesis: it paginates a text
// through a page template and writes, per page, a rendered vector file and
// its paired annotation, named <stem>.<page>.<ext> and <stem>.<page>.xml.
package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ebalder/altogen/pkg/alto"
	"github.com/ebalder/altogen/pkg/layout"
	"github.com/ebalder/altogen/pkg/pageflow"
	"github.com/ebalder/altogen/pkg/typeset"
)

// RenderText paginates text and writes one vector page plus one annotation
// file per page, using outBase (minus its extension) as the filename stem.
// It returns the number of pages produced.
func RenderText(text string, outBase string, cfg Config) (int, error) {
	if err := cfg.validate(); err != nil {
		return 0, err
	}

	font, err := typeset.ParseFontDescriptor(cfg.Font)
	if err != nil {
		return 0, err
	}

	engine := cfg.Engine
	if engine == nil {
		ce, err := typeset.NewCanvasEngine()
		if err != nil {
			return 0, err
		}
		engine = ce
	}

	if err := auditGlyphs(engine, text, cfg, font); err != nil {
		return 0, err
	}

	tmpl, err := resolveTemplate(cfg)
	if err != nil {
		return 0, err
	}

	var markup *typeset.Markup
	if len(cfg.MarkupKinds) > 0 && cfg.MarkupProbability > 0 {
		markup, err = typeset.NewMarkup(cfg.MarkupKinds, cfg.MarkupProbability, cfg.MarkupSeed)
		if err != nil {
			return 0, err
		}
	}

	alloc, err := pageflow.NewAllocator(tmpl, text, cfg.ParallelTexts, engine, pageflow.Options{
		Font:          font,
		Language:      cfg.Language,
		BaseDir:       cfg.BaseDir,
		LineSpacing:   cfg.LineSpacing,
		BaselineShift: cfg.BaselineShift,
		Padding:       cfg.Padding,
		Markup:        markup,
	})
	if err != nil {
		return 0, err
	}

	stem := strings.TrimSuffix(outBase, filepath.Ext(outBase))
	pages := 0
	for {
		page, err := alloc.NextPage()
		if err != nil {
			return pages, err
		}
		if page == nil {
			return pages, nil
		}

		vectorPath := fmt.Sprintf("%s.%d.%s", stem, pages, cfg.Format)
		if err := writeVectorPage(page, vectorPath, engine, cfg); err != nil {
			return pages, err
		}
		if err := writeAnnotation(page, vectorPath, stem, pages, alloc.BaseDir(), cfg); err != nil {
			return pages, err
		}
		pages++
	}
}

// auditGlyphs checks every text the document will lay out against the font's
// coverage. Missing glyphs warn by default and fail in strict mode.
func auditGlyphs(engine Engine, text string, cfg Config, font typeset.FontDescriptor) error {
	missing, err := engine.MissingGlyphs(text, font)
	if err != nil {
		return err
	}
	for _, t := range cfg.ParallelTexts {
		n, err := engine.MissingGlyphs(t, font)
		if err != nil {
			return err
		}
		missing += n
	}
	if missing == 0 {
		return nil
	}
	if cfg.StrictGlyphs {
		return &typeset.UnrenderableGlyphError{Count: missing}
	}
	cfg.warnf("%d unrenderable glyphs in input text", missing)
	return nil
}

func resolveTemplate(cfg Config) (*layout.PageTemplate, error) {
	if cfg.TemplatePath != "" {
		return layout.LoadTemplate(cfg.TemplatePath)
	}
	return layout.DefaultTemplate(cfg.PaperWidth, cfg.PaperHeight, cfg.Margins)
}

func writeVectorPage(page *pageflow.PageLayout, path string, engine Engine, cfg Config) error {
	switch cfg.Format {
	case FormatPDF:
		return writePDFPage(page, path, cfg)
	default:
		return writeSVGPage(page, path, engine, cfg)
	}
}

func writeAnnotation(page *pageflow.PageLayout, vectorPath, stem string, pageIndex int, baseDir string, cfg Config) error {
	blocks := make([]*alto.TextBlock, 0, len(page.Blocks))
	for _, b := range page.Blocks {
		blocks = append(blocks, b.Block)
	}
	doc, err := alto.Generate(&alto.Page{
		FileName: filepath.Base(vectorPath),
		Width:    cfg.PaperWidth,
		Height:   cfg.PaperHeight,
		Language: cfg.Language,
		BaseDir:  baseDir,
		Blocks:   blocks,
	})
	if err != nil {
		return err
	}
	xmlPath := fmt.Sprintf("%s.%d.xml", stem, pageIndex)
	if err := os.WriteFile(xmlPath, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("writing annotation %s: %w", xmlPath, err)
	}
	return nil
}
