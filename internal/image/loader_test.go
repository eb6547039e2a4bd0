package image

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.RGBA{R: 0x25, G: 0x63, B: 0xeb, A: 0xff})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
}

func TestFileLoaderLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.png")
	writePNG(t, path, 4, 3)

	img, err := NewFileLoader().Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 3 {
		t.Errorf("bounds = %v, want 4x3", b)
	}

	notImage := filepath.Join(dir, "notes.png")
	if err := os.WriteFile(notImage, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{name: "empty path", path: "", wantErr: "cannot be empty"},
		{name: "missing", path: filepath.Join(dir, "missing.png"), wantErr: "not found"},
		{name: "directory", path: dir, wantErr: "directory"},
		{name: "undecodable", path: notImage, wantErr: "failed to decode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFileLoader().Load(tt.path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateImagePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.png")
	writePNG(t, path, 2, 2)
	bad := filepath.Join(dir, "bad.jpg")
	if err := os.WriteFile(bad, []byte("jpeg?"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := ValidateImagePath(path); err != nil {
		t.Errorf("ValidateImagePath(png) error = %v", err)
	}
	if err := ValidateImagePath(dir); err != nil {
		t.Errorf("ValidateImagePath(dir) error = %v", err)
	}
	if err := ValidateImagePath(bad); err == nil {
		t.Error("ValidateImagePath(bad) expected error")
	}
	if err := ValidateImagePath(""); err == nil {
		t.Error("ValidateImagePath(\"\") expected error")
	}
}

func TestScanDirectoryForImages(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.png", "a.JPG", "c.webp", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.png"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := ScanDirectoryForImages(dir)
	if err != nil {
		t.Fatalf("ScanDirectoryForImages() error = %v", err)
	}
	var names []string
	for _, p := range got {
		names = append(names, filepath.Base(p))
	}
	if want := []string{"a.JPG", "b.png", "c.webp"}; !slices.Equal(names, want) {
		t.Errorf("ScanDirectoryForImages() = %v, want %v", names, want)
	}

	if _, err := ScanDirectoryForImages(t.TempDir()); err == nil {
		t.Error("expected error for directory without images")
	}
}

func TestResolveImagePath(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"one.png", "two.png", "three.png"} {
		writePNG(t, filepath.Join(dir, name), 1, 1)
	}

	file := filepath.Join(dir, "one.png")
	if got, err := ResolveImagePath(file, 1); err != nil || got != file {
		t.Errorf("ResolveImagePath(file) = %q, %v, want %q", got, err, file)
	}

	first, err := ResolveImagePath(dir, 7)
	if err != nil {
		t.Fatalf("ResolveImagePath(dir) error = %v", err)
	}
	for range 5 {
		again, _ := ResolveImagePath(dir, 7)
		if again != first {
			t.Fatalf("ResolveImagePath(dir, 7) = %q then %q, want stable choice", first, again)
		}
	}

	if _, err := ResolveImagePath(filepath.Join(dir, "missing"), 1); err == nil {
		t.Error("expected error for missing path")
	}
}

func TestFileLoaderDownscale(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		limit        int
		wantW, wantH int
	}{
		{name: "wide", w: 100, h: 40, limit: 50, wantW: 50, wantH: 20},
		{name: "tall", w: 30, h: 90, limit: 45, wantW: 15, wantH: 45},
		{name: "within limit", w: 20, h: 10, limit: 50, wantW: 20, wantH: 10},
		{name: "no limit", w: 100, h: 40, limit: 0, wantW: 100, wantH: 40},
		{name: "thin strip keeps a row", w: 600, h: 1, limit: 50, wantW: 50, wantH: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "seed.png")
			writePNG(t, path, tt.w, tt.h)

			img, err := (&FileLoader{MaxDimension: tt.limit}).Load(path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if b := img.Bounds(); b.Dx() != tt.wantW || b.Dy() != tt.wantH {
				t.Errorf("bounds = %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.wantW, tt.wantH)
			}

			// A flat image stays flat after scaling.
			r, g, b, _ := img.At(img.Bounds().Min.X, img.Bounds().Min.Y).RGBA()
			if r>>8 != 0x25 || g>>8 != 0x63 || b>>8 != 0xeb {
				t.Errorf("pixel = %02x%02x%02x, want 2563eb", r>>8, g>>8, b>>8)
			}
		})
	}
}
