package seed

import (
	"image"
	"image/color"
	"math"
	"reflect"
	"testing"

	"github.com/jmylchreest/swatch/internal/colour"
)

// stripes fills rows of img with cols in proportion to their weights.
func stripes(w, h int, cols []color.RGBA, rows []int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	y := 0
	for i, n := range rows {
		for range n {
			for x := range w {
				img.Set(x, y, cols[i])
			}
			y++
		}
	}
	return img
}

var (
	blue   = color.RGBA{R: 0x25, G: 0x63, B: 0xeb, A: 0xff}
	orange = color.RGBA{R: 0xf9, G: 0x73, B: 0x16, A: 0xff}
	grey   = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
)

func mustHex(t *testing.T, hex string) colour.LCH {
	t.Helper()
	c, err := colour.ParseHex(hex)
	if err != nil {
		t.Fatalf("ParseHex(%q) error = %v", hex, err)
	}
	return c
}

func TestExtractDistinctColours(t *testing.T) {
	// Grey dominates but has no hue, so blue is the primary.
	img := stripes(10, 10, []color.RGBA{grey, blue, orange}, []int{5, 3, 2})

	res, err := NewExtractor(DefaultOptions(), nil).Extract(img)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if len(res.Clusters) != 3 {
		t.Fatalf("Clusters = %d, want 3", len(res.Clusters))
	}
	wantWeights := []float64{0.5, 0.3, 0.2}
	for i, c := range res.Clusters {
		if math.Abs(c.Weight-wantWeights[i]) > 1e-9 {
			t.Errorf("cluster %d weight = %v, want %v", i, c.Weight, wantWeights[i])
		}
	}

	if want := mustHex(t, "#2563eb"); res.Primary != want {
		t.Errorf("Primary = %v, want %v", res.Primary, want)
	}
	if want := mustHex(t, "#f97316"); res.Accent != want {
		t.Errorf("Accent = %v, want %v", res.Accent, want)
	}
}

func TestExtractComplementFallback(t *testing.T) {
	img := stripes(4, 4, []color.RGBA{blue}, []int{4})

	res, err := NewExtractor(DefaultOptions(), nil).Extract(img)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	primary := mustHex(t, "#2563eb")
	if res.Primary != primary {
		t.Errorf("Primary = %v, want %v", res.Primary, primary)
	}
	if got := HueDistance(res.Accent.H, primary.H); math.Abs(got-180) > 1e-9 {
		t.Errorf("accent hue distance = %v, want 180", got)
	}
	if res.Accent.L != primary.L || res.Accent.C != primary.C {
		t.Errorf("Accent = %v, want primary lightness and chroma", res.Accent)
	}
}

func TestExtractAchromatic(t *testing.T) {
	img := stripes(4, 4, []color.RGBA{grey, {R: 0x20, G: 0x20, B: 0x20, A: 0xff}}, []int{3, 1})

	res, err := NewExtractor(DefaultOptions(), nil).Extract(img)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if want := mustHex(t, "#808080"); res.Primary != want {
		t.Errorf("Primary = %v, want heaviest cluster %v", res.Primary, want)
	}
}

// noisy spreads each base colour over a few nearby shades so k-means runs.
func noisy(bases []color.RGBA, rows []int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 16, 40))
	y := 0
	for i, n := range rows {
		for range n {
			for x := range 16 {
				c := bases[i]
				shift := uint8(x % 4 * 3)
				c.R = max(c.R, shift) - shift
				c.G = max(c.G, shift) - shift
				img.Set(x, y, c)
			}
			y++
		}
	}
	return img
}

func TestExtractKMeans(t *testing.T) {
	img := noisy([]color.RGBA{blue, orange}, []int{28, 12})
	opts := DefaultOptions()
	opts.Clusters = 2

	res, err := NewExtractor(opts, nil).Extract(img)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if len(res.Clusters) != 2 {
		t.Fatalf("Clusters = %d, want 2", len(res.Clusters))
	}
	if w := res.Clusters[0].Weight; math.Abs(w-0.7) > 1e-9 {
		t.Errorf("heaviest weight = %v, want 0.7", w)
	}

	blueHue := mustHex(t, "#2563eb").H
	orangeHue := mustHex(t, "#f97316").H
	if d := HueDistance(res.Primary.H, blueHue); d > 15 {
		t.Errorf("Primary hue = %v, want near %v", res.Primary.H, blueHue)
	}
	if d := HueDistance(res.Accent.H, orangeHue); d > 15 {
		t.Errorf("Accent hue = %v, want near %v", res.Accent.H, orangeHue)
	}
}

func TestExtractDeterministic(t *testing.T) {
	img := noisy([]color.RGBA{blue, orange, grey}, []int{20, 12, 8})
	opts := DefaultOptions()
	opts.Clusters = 3
	opts.Seed = 42

	first, err := NewExtractor(opts, nil).Extract(img)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	for range 3 {
		again, err := NewExtractor(opts, nil).Extract(img)
		if err != nil {
			t.Fatalf("Extract() error = %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("Extract() not deterministic: %+v vs %+v", first, again)
		}
	}
}

func TestExtractErrors(t *testing.T) {
	if _, err := NewExtractor(DefaultOptions(), nil).Extract(nil); err == nil {
		t.Error("Extract(nil) expected error")
	}

	opts := DefaultOptions()
	opts.Clusters = 0
	if _, err := NewExtractor(opts, nil).Extract(stripes(1, 1, []color.RGBA{blue}, []int{1})); err == nil {
		t.Error("expected error for zero clusters")
	}

	transparent := image.NewRGBA(image.Rect(0, 0, 2, 2))
	if _, err := NewExtractor(DefaultOptions(), nil).Extract(transparent); err == nil {
		t.Error("expected error for fully transparent image")
	}
}

func TestHueDistance(t *testing.T) {
	tests := []struct {
		a, b float64
		want float64
	}{
		{a: 10, b: 350, want: 20},
		{a: 350, b: 10, want: 20},
		{a: 0, b: 180, want: 180},
		{a: 90, b: 90, want: 0},
		{a: 300, b: 60, want: 120},
	}
	for _, tt := range tests {
		if got := HueDistance(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("HueDistance(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSamplePixelsGrid(t *testing.T) {
	img := stripes(100, 100, []color.RGBA{blue}, []int{100})
	got := samplePixels(img, 400)
	if len(got) != 400 {
		t.Errorf("samplePixels() returned %d pixels, want 400", len(got))
	}
}
