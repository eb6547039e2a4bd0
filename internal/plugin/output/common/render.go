package common

import (
	"bytes"
	"fmt"
	"text/template"

	tmplloader "github.com/jmylchreest/swatch/internal/plugin/output/template"
	"github.com/jmylchreest/swatch/pkg/plugin"
)

// Render loads filename through loader and executes it against data.
func Render(loader *tmplloader.Loader, filename string, data plugin.PaletteData) ([]byte, error) {
	content, _, err := loader.Load(filename)
	if err != nil {
		return nil, err
	}

	tmpl, err := template.New(filename).Funcs(TemplateFuncs()).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", filename, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template %s: %w", filename, err)
	}
	return buf.Bytes(), nil
}
