package upload

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode png: %v", err)
	}
	return buf.Bytes()
}

func TestPutDecodesDimensions(t *testing.T) {
	s := NewStore(1<<20, 1<<22)

	u, err := s.Put("sunset.png", bytes.NewReader(pngBytes(t, 32, 18)))
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if u.Width != 32 || u.Height != 18 {
		t.Errorf("Expected 32x18, got %dx%d", u.Width, u.Height)
	}
	if u.ContentType != "image/png" {
		t.Errorf("Expected image/png, got %s", u.ContentType)
	}
	if u.URL() != "/uploads/"+u.Ref {
		t.Errorf("Unexpected URL %s", u.URL())
	}
	if !strings.HasPrefix(u.Preview(), "data:image/png;base64,") {
		t.Errorf("Unexpected preview prefix %.30s", u.Preview())
	}

	got, ok := s.Get(u.Ref)
	if !ok || got != u {
		t.Error("Expected upload to be retrievable by ref")
	}
}

func TestPutFallbackDimensions(t *testing.T) {
	s := NewStore(1<<20, 1<<22)
	// valid BMP signature, not decodable without a BMP decoder
	data := append([]byte("BM"), make([]byte, 64)...)

	u, err := s.Put("legacy.bmp", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if u.Width != 800 || u.Height != 600 {
		t.Errorf("Expected 800x600 fallback, got %dx%d", u.Width, u.Height)
	}
}

func TestPutRejects(t *testing.T) {
	s := NewStore(64, 1<<20)

	if _, err := s.Put("notes.txt", strings.NewReader("just some text")); !errors.Is(err, ErrNotImage) {
		t.Errorf("Expected ErrNotImage, got %v", err)
	}
	if _, err := s.Put("big.png", bytes.NewReader(pngBytes(t, 200, 200))); !errors.Is(err, ErrTooLarge) {
		t.Errorf("Expected ErrTooLarge, got %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Expected no stored uploads, got %d", s.Len())
	}
}

func TestDelete(t *testing.T) {
	s := NewStore(1<<20, 1<<22)
	u, _ := s.Put("a.png", bytes.NewReader(pngBytes(t, 1, 1)))
	if s.Held() != int64(len(u.Data)) {
		t.Errorf("Expected %d bytes held, got %d", len(u.Data), s.Held())
	}

	if !s.Delete(u.Ref) {
		t.Error("Expected Delete to report the upload")
	}
	if _, ok := s.Get(u.Ref); ok {
		t.Error("Expected upload to be deleted")
	}
	if s.Held() != 0 {
		t.Errorf("Expected nothing held, got %d", s.Held())
	}
	if s.Delete(u.Ref) {
		t.Error("Expected second Delete to report nothing")
	}
}

func TestPutTotalLimit(t *testing.T) {
	data := pngBytes(t, 4, 4)
	s := NewStore(1<<20, int64(2*len(data)))

	first, err := s.Put("a.png", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if _, err := s.Put("b.png", bytes.NewReader(data)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if _, err := s.Put("c.png", bytes.NewReader(data)); !errors.Is(err, ErrFull) {
		t.Fatalf("Expected ErrFull, got %v", err)
	}
	if s.Len() != 2 {
		t.Errorf("Expected 2 uploads, got %d", s.Len())
	}

	s.Delete(first.Ref)
	if _, err := s.Put("c.png", bytes.NewReader(data)); err != nil {
		t.Errorf("Expected room after Delete, got %v", err)
	}
}

func TestRefFromURL(t *testing.T) {
	testCases := []struct {
		src string
		ref string
		ok  bool
	}{
		{src: "/uploads/abc-123", ref: "abc-123", ok: true},
		{src: "/uploads/", ok: false},
		{src: "/uploads/a/b", ok: false},
		{src: "https://example.com/uploads/abc", ok: false},
		{src: "/static/img.png", ok: false},
	}
	for _, tc := range testCases {
		t.Run(tc.src, func(t *testing.T) {
			ref, ok := RefFromURL(tc.src)
			if ref != tc.ref || ok != tc.ok {
				t.Errorf("RefFromURL(%q) = %q, %v; want %q, %v", tc.src, ref, ok, tc.ref, tc.ok)
			}
		})
	}
}

func TestBaseName(t *testing.T) {
	testCases := map[string]string{
		"sunset.png":          "sunset",
		"archive.tar.gz":      "archive",
		"noext":               "noext",
		"dir/photo.jpeg":      "photo",
		`C:\Users\me\pic.png`: "pic",
	}
	for in, want := range testCases {
		t.Run(in, func(t *testing.T) {
			if got := BaseName(in); got != want {
				t.Errorf("BaseName(%q) = %q, want %q", in, got, want)
			}
		})
	}
}
