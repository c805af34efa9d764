package valentime

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"section-2", "section-2"},
		{"frame.01", "frame.01"},
		{"has spaces", "has_spaces"},
		{"path/to/thing", "path_to_thing"},
		{"back\\slash", "back_slash"},
		{"special!@#$%", "special_____"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
		{"MixedCase123", "MixedCase123"},
	}
	for _, tt := range tests {
		got := sanitizeLabel(tt.in)
		if got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScreenshotQueue(t *testing.T) {
	s := newScreenshotter("", nil)
	if s.dir != "screenshots" {
		t.Errorf("dir = %q, want %q", s.dir, "screenshots")
	}
	s.request("a")
	s.request("b")
	if s.pending() != 2 {
		t.Fatalf("pending = %d, want 2", s.pending())
	}
	if s.queue[0] != "a" || s.queue[1] != "b" {
		t.Errorf("queue = %v, want [a b]", s.queue)
	}
}

func TestUnpremultiply(t *testing.T) {
	pixels := []byte{
		64, 32, 0, 128, // half-transparent
		255, 0, 0, 255, // opaque
		0, 0, 0, 0, // clear
	}
	img := unpremultiply(pixels, 3, 1)

	got := img.Pix[0:4]
	want := []byte{127, 63, 0, 128}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("pixel 0 = %v, want %v", got, want)
		}
	}
	if img.Pix[4] != 255 || img.Pix[7] != 255 {
		t.Errorf("opaque pixel changed: %v", img.Pix[4:8])
	}
	if img.Pix[11] != 0 {
		t.Errorf("clear pixel alpha = %d, want 0", img.Pix[11])
	}
}

func TestWritePNG(t *testing.T) {
	img := unpremultiply(make([]byte, 4*2*2), 2, 2)
	path := filepath.Join(t.TempDir(), "out.png")
	if err := writePNG(path, img); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 2 || b.Dy() != 2 {
		t.Errorf("bounds = %v, want 2x2", b)
	}
}

func TestWritePNGBadPath(t *testing.T) {
	img := unpremultiply(nil, 1, 1)
	if err := writePNG(filepath.Join(t.TempDir(), "missing", "out.png"), img); err == nil {
		t.Error("expected error for missing directory")
	}
}
