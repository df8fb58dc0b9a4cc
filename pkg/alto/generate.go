package alto

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed templates/alto.tmpl
var templateFS embed.FS

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// Generate serializes a page record to an ALTO XML document using the
// embedded template.
func Generate(page *Page) (string, error) {
	tmpl, err := template.New("alto.tmpl").Funcs(template.FuncMap{
		"escape": attrEscaper.Replace,
		"dim":    func(v float64) string { return fmt.Sprintf("%g", v) },
	}).ParseFS(templateFS, "templates/alto.tmpl")
	if err != nil {
		return "", fmt.Errorf("error parsing annotation template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, page); err != nil {
		return "", fmt.Errorf("error rendering annotation template: %w", err)
	}
	return buf.String(), nil
}
