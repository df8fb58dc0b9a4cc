package layout

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// frameSpec mirrors the template file schema. Geometry fields are pointers so
// a missing field can be told apart from an explicit zero.
type frameSpec struct {
	X         *float64 `json:"x" yaml:"x"`
	Y         *float64 `json:"y" yaml:"y"`
	Width     *float64 `json:"width" yaml:"width"`
	Height    *float64 `json:"height" yaml:"height"`
	Alignment string   `json:"alignment" yaml:"alignment"`
	Text      string   `json:"text" yaml:"text"`
	Language  string   `json:"language" yaml:"language"`
	BaseDir   string   `json:"base_dir" yaml:"base_dir"`
	Font      string   `json:"font" yaml:"font"`
}

type templateSpec struct {
	Frames []frameSpec `json:"frames" yaml:"frames"`
}

// LoadTemplate reads a page template from a JSON file (or YAML when the file
// has a .yaml/.yml extension).
//
// Every frame requires x, y, width and height; a missing field yields a
// *MissingFieldError, an invalid value a *InvalidFieldError. A missing file
// is reported with the underlying fs.ErrNotExist wrapped so callers can test
// for it with errors.Is.
func LoadTemplate(path string) (*PageTemplate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", path, err)
	}

	var spec templateSpec
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &spec); err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &spec); err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", path, err)
		}
	}

	if len(spec.Frames) == 0 {
		return nil, fmt.Errorf("template %s contains no frames", path)
	}
	return templateFromSpec(spec)
}

func templateFromSpec(spec templateSpec) (*PageTemplate, error) {
	frames := make([]Frame, 0, len(spec.Frames))
	for i, fs := range spec.Frames {
		for _, field := range []struct {
			name string
			val  *float64
		}{
			{"x", fs.X},
			{"y", fs.Y},
			{"width", fs.Width},
			{"height", fs.Height},
		} {
			if field.val == nil {
				return nil, &MissingFieldError{Frame: i, Field: field.name}
			}
		}
		align, err := ParseAlignment(fs.Alignment)
		if err != nil {
			return nil, &InvalidFieldError{Frame: i, Detail: err.Error()}
		}
		f := Frame{
			X:         *fs.X,
			Y:         *fs.Y,
			Width:     *fs.Width,
			Height:    *fs.Height,
			Alignment: align,
			Text:      fs.Text,
			Language:  fs.Language,
			BaseDir:   fs.BaseDir,
			Font:      fs.Font,
		}
		if err := f.Validate(); err != nil {
			return nil, &InvalidFieldError{Frame: i, Detail: err.Error()}
		}
		frames = append(frames, f)
	}
	return NewPageTemplate(frames)
}
