package css

import (
	"strings"
	"testing"

	"github.com/jmylchreest/swatch/internal/plugin/output/common"
	plugintesting "github.com/jmylchreest/swatch/internal/plugin/output/testing"
)

func TestCSSPlugin(t *testing.T) {
	plugintesting.RunAllTests(t, New(), plugintesting.TestConfig{
		ExpectedName:  "css",
		ExpectedFiles: []string{"swatch.css"},
	})
}

func TestCSSGenerate(t *testing.T) {
	plugintesting.IsolateTemplates(t)
	palette := plugintesting.CreateTestPalette(t)

	tests := []struct {
		name   string
		setup  func(p *Plugin)
		want   []string
		reject []string
	}{
		{
			name: "lch values",
			want: []string{
				":root {",
				"  --primary-100: lch(77% 80.06 292.76 / 1);",
				"  --neutral-900: lch(5% 8 292.76 / 1);",
				"  --info-500: lch(46.06% 80.06 250 / 1);",
			},
		},
		{
			name: "hex values with prefix and selector",
			setup: func(p *Plugin) {
				p.SetFormat(common.FormatHex)
				p.prefix = "brand-"
				p.selector = ".theme"
			},
			want:   []string{".theme {", "  --brand-primary-500: #"},
			reject: []string{"lch("},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New()
			if tt.setup != nil {
				tt.setup(p)
			}
			files, err := p.Generate(palette)
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			content := string(files["swatch.css"])
			for _, w := range tt.want {
				if !strings.Contains(content, w) {
					t.Errorf("output missing %q:\n%s", w, content)
				}
			}
			for _, r := range tt.reject {
				if strings.Contains(content, r) {
					t.Errorf("output should not contain %q", r)
				}
			}
			if got := strings.Count(content, "--"); got != palette.Len() {
				t.Errorf("output has %d properties, want %d", got, palette.Len())
			}
		})
	}
}

func TestCSSValidate(t *testing.T) {
	p := New()
	p.selector = " "
	if err := p.Validate(); err == nil {
		t.Error("Validate() should reject an empty selector")
	}

	p = New()
	p.filename = "../escape.css"
	if err := p.Validate(); err == nil {
		t.Error("Validate() should reject a filename with a path")
	}
}
