package inliner

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/nivgrinberg/receipt-export-service/internal/domain"
	"github.com/nivgrinberg/receipt-export-service/internal/imageutil"
)

// DefaultMaxBytes caps how much image data a single reference may pull in.
const DefaultMaxBytes = 5 * 1024 * 1024

// ResourceFetcher reads a design asset from hosted storage by object key.
// *storage.ObjectFetcher satisfies it; it is optional and nil-able when no
// bucket is configured.
type ResourceFetcher interface {
	FetchObject(ctx context.Context, key string) ([]byte, error)
}

// Inliner replaces remote image references in design settings with
// self-contained data URIs so the rendered document survives on its own.
type Inliner struct {
	httpClient   *http.Client
	storage      ResourceFetcher
	maxBytes     int64
	maxDimension int
}

// Config holds configuration for the inliner
type Config struct {
	FetchTimeout time.Duration
	MaxBytes     int64
	MaxDimension int
}

// New creates a new Inliner. storage may be nil; object-key references then
// resolve to empty like any other failed fetch.
func New(config *Config, storage ResourceFetcher) *Inliner {
	if config == nil {
		config = &Config{}
	}
	timeout := config.FetchTimeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	maxBytes := config.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	return &Inliner{
		httpClient:   &http.Client{Timeout: timeout},
		storage:      storage,
		maxBytes:     maxBytes,
		maxDimension: config.MaxDimension,
	}
}

// Inline returns a copy of settings with the three image fields inlined.
// The fields are fetched concurrently and independently: one failing fetch
// resolves that field to empty without disturbing the other two. Already
// inlined values pass through untouched, so Inline is idempotent per field.
func (i *Inliner) Inline(ctx context.Context, settings domain.DesignSettings) domain.DesignSettings {
	inlined := settings
	fields := []*string{&inlined.TopBanner, &inlined.Logo, &inlined.BottomBanner}

	var wg sync.WaitGroup
	for _, field := range fields {
		wg.Add(1)
		go func(field *string) {
			defer wg.Done()
			*field = i.inlineField(ctx, *field)
		}(field)
	}
	wg.Wait()

	return inlined
}

// inlineField resolves a single image reference to a data URI, or to empty
// when the resource cannot be fetched. A missing decorative image is
// visually self-evident in the output and is not worth failing over.
func (i *Inliner) inlineField(ctx context.Context, ref string) string {
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "data:") {
		return ref
	}

	data, err := i.fetch(ctx, ref)
	if err != nil {
		log.Printf("Failed to inline image %q: %v", ref, err)
		return ""
	}

	data, err = imageutil.Downscale(data, i.maxDimension)
	if err != nil {
		log.Printf("Failed to downscale image %q: %v", ref, err)
		return ""
	}

	mimeType := http.DetectContentType(data)
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// fetch reads the raw bytes behind a reference: http(s) URLs directly,
// anything else as an object key in the configured storage bucket.
func (i *Inliner) fetch(ctx context.Context, ref string) ([]byte, error) {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return i.fetchHTTP(ctx, ref)
	}

	if i.storage == nil {
		return nil, fmt.Errorf("no storage configured for object reference")
	}
	return i.storage.FetchObject(ctx, strings.TrimPrefix(ref, "/"))
}

func (i *Inliner) fetchHTTP(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := i.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image fetch returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, i.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image body: %w", err)
	}
	if int64(len(data)) > i.maxBytes {
		return nil, fmt.Errorf("image exceeds %d byte limit", i.maxBytes)
	}

	return data, nil
}
