package helper

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDownscaleKeepsAspect(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 400, 200))
	out := DownscaleIfNeeded(src, 100, 100)
	if b := out.Bounds(); b.Dx() != 100 || b.Dy() != 50 {
		t.Fatalf("bounds: %v", b)
	}
	if DownscaleIfNeeded(src, 1000, 1000) != image.Image(src) {
		t.Fatal("small image should be returned as-is")
	}
}

func TestConvertToWebP(t *testing.T) {
	data, err := ConvertToWebP(pngBytes(t, 64, 32), "nir.png", WebPOptions{MaxW: 32, MaxH: 32, Quality: 70})
	if err != nil {
		t.Fatal(err)
	}
	img, err := DecodeImage(data, "x.webp")
	if err != nil {
		t.Fatalf("decode webp: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 16 {
		t.Fatalf("bounds: %v", b)
	}
}

func TestDecodeUnsupported(t *testing.T) {
	if _, err := DecodeImage([]byte("plain text here"), "doc.txt"); !errors.Is(err, ErrUnsupportedImage) {
		t.Fatalf("got %v", err)
	}
}
