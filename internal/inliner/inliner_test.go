package inliner

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nivgrinberg/receipt-export-service/internal/domain"
)

// tinyPNG encodes a 1x1 image so fetched bytes decode as a real PNG.
func tinyPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

type fakeFetcher struct {
	objects map[string][]byte
}

func (f *fakeFetcher) FetchObject(_ context.Context, key string) ([]byte, error) {
	data, ok := f.objects[key]
	if !ok {
		return nil, errors.New("object not found")
	}
	return data, nil
}

func TestInlineFetchesHTTPImages(t *testing.T) {
	imageData := tinyPNG(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(imageData)
	}))
	defer server.Close()

	inliner := New(nil, nil)
	settings := domain.DefaultDesignSettings()
	settings.Logo = server.URL + "/logo.png"

	inlined := inliner.Inline(context.Background(), settings)

	assert.True(t, strings.HasPrefix(inlined.Logo, "data:image/png;base64,"))
	assert.Empty(t, inlined.TopBanner)
	assert.Empty(t, inlined.BottomBanner)
	// Non-image settings pass through untouched.
	assert.Equal(t, settings.BackgroundColor, inlined.BackgroundColor)
	assert.Equal(t, settings.Font, inlined.Font)
}

func TestInlineIsIdempotent(t *testing.T) {
	inliner := New(nil, nil)
	settings := domain.DefaultDesignSettings()
	settings.Logo = "data:image/png;base64,AAAA"

	first := inliner.Inline(context.Background(), settings)
	second := inliner.Inline(context.Background(), first)

	assert.Equal(t, "data:image/png;base64,AAAA", first.Logo)
	assert.Equal(t, first, second)
}

func TestInlineEmptyFieldsStayEmpty(t *testing.T) {
	inliner := New(nil, nil)
	inlined := inliner.Inline(context.Background(), domain.DefaultDesignSettings())
	assert.Empty(t, inlined.TopBanner)
	assert.Empty(t, inlined.Logo)
	assert.Empty(t, inlined.BottomBanner)
}

func TestInlineIsolatesFieldFailures(t *testing.T) {
	imageData := tinyPNG(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(imageData)
	}))
	defer server.Close()

	inliner := New(nil, nil)
	settings := domain.DefaultDesignSettings()
	settings.TopBanner = server.URL + "/banner.png"
	settings.Logo = server.URL + "/missing.png"
	settings.BottomBanner = server.URL + "/footer.png"

	inlined := inliner.Inline(context.Background(), settings)

	assert.True(t, strings.HasPrefix(inlined.TopBanner, "data:image/png;base64,"))
	assert.Empty(t, inlined.Logo)
	assert.True(t, strings.HasPrefix(inlined.BottomBanner, "data:image/png;base64,"))
}

func TestInlineEnforcesSizeLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(bytes.Repeat([]byte{0xff}, 2048))
	}))
	defer server.Close()

	inliner := New(&Config{MaxBytes: 1024}, nil)
	settings := domain.DefaultDesignSettings()
	settings.Logo = server.URL + "/huge.bin"

	inlined := inliner.Inline(context.Background(), settings)
	assert.Empty(t, inlined.Logo)
}

func TestInlineResolvesObjectKeysViaStorage(t *testing.T) {
	fetcher := &fakeFetcher{objects: map[string][]byte{
		"banners/top.png": tinyPNG(t),
	}}

	inliner := New(nil, fetcher)
	settings := domain.DefaultDesignSettings()
	settings.TopBanner = "/banners/top.png"
	settings.Logo = "banners/unknown.png"

	inlined := inliner.Inline(context.Background(), settings)

	assert.True(t, strings.HasPrefix(inlined.TopBanner, "data:image/png;base64,"))
	assert.Empty(t, inlined.Logo)
}

func TestInlineObjectKeyWithoutStorage(t *testing.T) {
	inliner := New(nil, nil)
	settings := domain.DefaultDesignSettings()
	settings.Logo = "banners/logo.png"

	inlined := inliner.Inline(context.Background(), settings)
	assert.Empty(t, inlined.Logo)
}
