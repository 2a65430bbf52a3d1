package imagerender

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"

	"github.com/rs/zerolog/log"
)

// Encoded image formats
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
)

// Encoded is a compressed page image ready to be placed into the output
// document.
type Encoded struct {
	Data   []byte
	Format string
}

// Ext returns the conventional file extension for the encoded format.
func (e Encoded) Ext() string {
	if e.Format == FormatPNG {
		return ".png"
	}
	return ".jpg"
}

// EncodePage compresses a rendered page image. Lossless pages become PNG at
// best compression, everything else JPEG at the given quality. The raster is
// flattened onto a white background first so the output never carries
// transparency. The returned Format names the attempted encoding even when
// encoding fails.
func EncodePage(img image.Image, lossless bool, quality int) (Encoded, error) {
	flat := flatten(img)
	bounds := flat.Bounds()

	var buf bytes.Buffer
	if lossless {
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		if err := enc.Encode(&buf, flat); err != nil {
			return Encoded{Format: FormatPNG}, fmt.Errorf("failed to encode PNG: %w", err)
		}
		log.Debug().
			Int("width", bounds.Dx()).
			Int("height", bounds.Dy()).
			Int("png_size", buf.Len()).
			Msg("encoded page as PNG")
		return Encoded{Data: buf.Bytes(), Format: FormatPNG}, nil
	}

	opts := &jpeg.Options{Quality: quality}
	if err := jpeg.Encode(&buf, flat, opts); err != nil {
		return Encoded{Format: FormatJPEG}, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	log.Debug().
		Int("width", bounds.Dx()).
		Int("height", bounds.Dy()).
		Int("jpeg_size", buf.Len()).
		Int("quality", quality).
		Msg("encoded page as JPEG")
	return Encoded{Data: buf.Bytes(), Format: FormatJPEG}, nil
}

// flatten draws the raster over an opaque white background. Renderers hand
// back RGBA; the encoded page must be plain RGB.
func flatten(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Over)
	return dst
}

// Dimensions extracts pixel dimensions from encoded image bytes.
func Dimensions(data []byte) (width, height int, err error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to decode image: %w", err)
	}
	bounds := img.Bounds()
	return bounds.Dx(), bounds.Dy(), nil
}
