package typeset

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// FontDescriptor is a parsed font request: a family name, optional trailing
// style keywords and a size in points, e.g. "Serif Normal 10" or
// "Noto Sans Hebrew Bold Italic 12".
type FontDescriptor struct {
	Family string
	Styles []string
	Size   float64
}

func (d FontDescriptor) String() string {
	parts := append([]string{d.Family}, d.Styles...)
	return fmt.Sprintf("%s %g", strings.Join(parts, " "), d.Size)
}

// HasStyle reports whether the descriptor carries the given style keyword.
func (d FontDescriptor) HasStyle(style string) bool {
	for _, s := range d.Styles {
		if s == style {
			return true
		}
	}
	return false
}

// styleKeywords are the descriptor tokens recognized as styles rather than
// family-name words. Only a trailing run of these is stripped, so family
// names containing style-like words ("Bookman Old Style") stay intact.
var styleKeywords = map[string]bool{
	"normal":     true,
	"regular":    true,
	"roman":      true,
	"italic":     true,
	"oblique":    true,
	"bold":       true,
	"semibold":   true,
	"ultrabold":  true,
	"heavy":      true,
	"black":      true,
	"light":      true,
	"ultralight": true,
	"medium":     true,
	"book":       true,
	"condensed":  true,
}

var fontLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Number", Pattern: `\d+(?:\.\d+)?`},
	{Name: "Word", Pattern: `[\pL][\pL\pN-]*`},
	{Name: "whitespace", Pattern: `\s+`},
})

type fontExpr struct {
	Words []string `parser:"@Word+"`
	Size  *float64 `parser:"@Number?"`
}

var fontParser = participle.MustBuild[fontExpr](
	participle.Lexer(fontLexer),
)

// DefaultFontSize is used when a descriptor omits the size.
const DefaultFontSize = 10.0

// ParseFontDescriptor parses a font description string. The last
// whitespace-separated token may be a point size; a trailing run of style
// keywords is split off case-insensitively; everything before that is the
// family name.
func ParseFontDescriptor(s string) (FontDescriptor, error) {
	expr, err := fontParser.ParseString("", strings.TrimSpace(s))
	if err != nil {
		return FontDescriptor{}, fmt.Errorf("parsing font description %q: %w", s, err)
	}

	words := expr.Words
	var styles []string
	for len(words) > 1 {
		last := strings.ToLower(words[len(words)-1])
		if !styleKeywords[last] {
			break
		}
		styles = append([]string{last}, styles...)
		words = words[:len(words)-1]
	}

	size := DefaultFontSize
	if expr.Size != nil {
		size = *expr.Size
	}
	if size <= 0 {
		return FontDescriptor{}, fmt.Errorf("font description %q: size must be positive", s)
	}
	return FontDescriptor{
		Family: strings.Join(words, " "),
		Styles: styles,
		Size:   size,
	}, nil
}
