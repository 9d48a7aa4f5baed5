package imageutil

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
)

// DefaultMaxDimension caps banner and logo images before they are inlined.
// The exported document embeds images as base64 text, so oversized uploads
// would otherwise dominate the document size.
const DefaultMaxDimension = 1200

// DefaultJPEGQuality is the re-encode quality for downscaled JPEGs.
const DefaultJPEGQuality = 85

// Downscale shrinks a PNG or JPEG so that neither dimension exceeds maxDim,
// preserving aspect ratio and the original format. Images already within
// bounds, and formats the decoder does not know, are returned unchanged.
func Downscale(imageData []byte, maxDim int) ([]byte, error) {
	if maxDim <= 0 {
		maxDim = DefaultMaxDimension
	}

	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		// Not a decodable raster image (gif, webp, svg, ...); inline as-is.
		return imageData, nil
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= maxDim && height <= maxDim {
		return imageData, nil
	}

	var newWidth, newHeight int
	if width > height {
		newWidth = maxDim
		newHeight = int(float64(height) * float64(maxDim) / float64(width))
	} else {
		newHeight = maxDim
		newWidth = int(float64(width) * float64(maxDim) / float64(height))
	}

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	switch format {
	case "jpeg":
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: DefaultJPEGQuality})
	default:
		err = png.Encode(&buf, dst)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode downscaled image: %w", err)
	}

	return buf.Bytes(), nil
}
