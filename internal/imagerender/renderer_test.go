package imagerender

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func gradientImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 4), G: uint8(y * 4), B: uint8((x + y) * 2), A: 255})
		}
	}
	return img
}

func TestEncodePageLossless(t *testing.T) {
	enc, err := EncodePage(gradientImage(64, 64), true, 95)
	if err != nil {
		t.Fatalf("EncodePage: %v", err)
	}
	if enc.Format != FormatPNG {
		t.Fatalf("format = %q, want %q", enc.Format, FormatPNG)
	}
	if enc.Ext() != ".png" {
		t.Fatalf("ext = %q, want .png", enc.Ext())
	}
	if !bytes.HasPrefix(enc.Data, []byte("\x89PNG")) {
		t.Fatal("PNG magic bytes missing")
	}
}

func TestEncodePageLossy(t *testing.T) {
	enc, err := EncodePage(gradientImage(64, 64), false, 80)
	if err != nil {
		t.Fatalf("EncodePage: %v", err)
	}
	if enc.Format != FormatJPEG {
		t.Fatalf("format = %q, want %q", enc.Format, FormatJPEG)
	}
	if enc.Ext() != ".jpg" {
		t.Fatalf("ext = %q, want .jpg", enc.Ext())
	}
	if !bytes.HasPrefix(enc.Data, []byte{0xFF, 0xD8}) {
		t.Fatal("JPEG SOI marker missing")
	}
}

func TestEncodePageQualityAffectsSize(t *testing.T) {
	img := gradientImage(128, 128)

	low, err := EncodePage(img, false, 10)
	if err != nil {
		t.Fatalf("EncodePage q=10: %v", err)
	}
	high, err := EncodePage(img, false, 95)
	if err != nil {
		t.Fatalf("EncodePage q=95: %v", err)
	}
	if len(low.Data) >= len(high.Data) {
		t.Fatalf("q=10 produced %d bytes, q=95 produced %d; expected lower quality to be smaller", len(low.Data), len(high.Data))
	}
}

func TestEncodePageFlattensTransparency(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	// fully transparent; must come out opaque white
	enc, err := EncodePage(img, true, 95)
	if err != nil {
		t.Fatalf("EncodePage: %v", err)
	}

	decoded, err := png.Decode(bytes.NewReader(enc.Data))
	if err != nil {
		t.Fatalf("decode PNG: %v", err)
	}
	r, g, b, a := decoded.At(4, 4).RGBA()
	if a != 0xffff {
		t.Fatalf("alpha = %#x, want opaque", a)
	}
	if r != 0xffff || g != 0xffff || b != 0xffff {
		t.Fatalf("color = %#x %#x %#x, want white", r, g, b)
	}
}

func TestEncodePageErrorNamesFormat(t *testing.T) {
	// png.Encode rejects zero-size images.
	empty := image.NewRGBA(image.Rect(0, 0, 0, 0))
	enc, err := EncodePage(empty, true, 95)
	if err == nil {
		t.Fatal("expected PNG encode error for empty image")
	}
	if enc.Format != FormatPNG {
		t.Fatalf("format on PNG failure = %q, want %q", enc.Format, FormatPNG)
	}

	// jpeg.Encode rejects dimensions of 1<<16 or more.
	wide := image.NewRGBA(image.Rect(0, 0, 1<<16, 1))
	enc, err = EncodePage(wide, false, 80)
	if err == nil {
		t.Fatal("expected JPEG encode error for oversized image")
	}
	if enc.Format != FormatJPEG {
		t.Fatalf("format on JPEG failure = %q, want %q", enc.Format, FormatJPEG)
	}
}

func TestDimensions(t *testing.T) {
	enc, err := EncodePage(gradientImage(40, 30), false, 80)
	if err != nil {
		t.Fatalf("EncodePage: %v", err)
	}
	w, h, err := Dimensions(enc.Data)
	if err != nil {
		t.Fatalf("Dimensions: %v", err)
	}
	if w != 40 || h != 30 {
		t.Fatalf("dimensions = %dx%d, want 40x30", w, h)
	}
}

func TestDimensionsRejectsGarbage(t *testing.T) {
	if _, _, err := Dimensions([]byte("not an image")); err == nil {
		t.Fatal("expected error for undecodable bytes")
	}
}
