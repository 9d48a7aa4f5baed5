package imageutil

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	img.Set(0, 0, color.RGBA{G: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDownscaleWithinBoundsUnchanged(t *testing.T) {
	original := encodePNG(t, 100, 50)
	result, err := Downscale(original, 1200)
	require.NoError(t, err)
	assert.Equal(t, original, result)
}

func TestDownscaleShrinksOversizedImage(t *testing.T) {
	original := encodePNG(t, 400, 100)
	result, err := Downscale(original, 200)
	require.NoError(t, err)

	img, format, err := image.Decode(bytes.NewReader(result))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 50, img.Bounds().Dy())
}

func TestDownscalePreservesJPEGFormat(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 300))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))

	result, err := Downscale(buf.Bytes(), 150)
	require.NoError(t, err)

	decoded, format, err := image.Decode(bytes.NewReader(result))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 150, decoded.Bounds().Dy())
	assert.Equal(t, 50, decoded.Bounds().Dx())
}

func TestDownscalePassesThroughUndecodableData(t *testing.T) {
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`)
	result, err := Downscale(svg, 1200)
	require.NoError(t, err)
	assert.Equal(t, svg, result)
}
