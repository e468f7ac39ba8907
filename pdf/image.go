package pdf

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	_ "image/png"
)

// flattenLogo decodes a logo image, composites it onto an opaque white
// background, and re-encodes it as JPEG. Transparent PNGs otherwise render
// as black boxes in some PDF viewers. Returns the JPEG bytes and the
// width/height aspect ratio.
func flattenLogo(raw []byte) ([]byte, float64, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, 0, fmt.Errorf("decode logo: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, 0, fmt.Errorf("logo has zero dimension")
	}

	flat := image.NewRGBA(bounds)
	draw.Draw(flat, bounds, image.White, image.Point{}, draw.Src)
	draw.Draw(flat, bounds, img, bounds.Min, draw.Over)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, flat, &jpeg.Options{Quality: 95}); err != nil {
		return nil, 0, fmt.Errorf("encode logo: %w", err)
	}
	ratio := float64(bounds.Dx()) / float64(bounds.Dy())
	return buf.Bytes(), ratio, nil
}
