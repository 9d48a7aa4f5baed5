package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nivgrinberg/receipt-export-service/internal/builder"
	"github.com/nivgrinberg/receipt-export-service/internal/domain"
	"github.com/nivgrinberg/receipt-export-service/internal/renderer"
)

// ErrInvalidJSON indicates the operator-supplied text could not be parsed
// at all; nothing downstream of the parse ever ran.
var ErrInvalidJSON = errors.New("payload is not valid JSON")

// BuildError is a fatal model-build failure: the payload parsed as JSON but
// is fundamentally not a receipt.
type BuildError struct {
	Message string
}

func (e *BuildError) Error() string {
	return e.Message
}

// ExportServiceError represents an error in the export service
type ExportServiceError struct {
	Op  string
	Err error
}

func (e *ExportServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op
}

func (e *ExportServiceError) Unwrap() error {
	return e.Err
}

// ImageInliner converts remote image references in design settings to
// inline data URIs.
type ImageInliner interface {
	Inline(ctx context.Context, settings domain.DesignSettings) domain.DesignSettings
}

// ExportResult is the outcome of a successful export run.
type ExportResult struct {
	HTML     string
	Model    *domain.ReceiptModel
	Warnings []string
}

// ExportService defines the receipt export pipeline: parse the pasted
// payload, normalize it into the canonical model, inline the settings
// images and render the standalone document.
type ExportService interface {
	// BuildModel runs the parse and normalize stages only, surfacing the
	// model and its diagnostics without rendering.
	BuildModel(ctx context.Context, payload string) (domain.BuildResult, error)

	// Export runs the full pipeline. settings may be nil for the default
	// styling.
	Export(ctx context.Context, payload string, settings *domain.DesignSettings) (*ExportResult, error)

	// Shutdown releases the worker pool.
	Shutdown()
}

// ExportServiceImpl implements the ExportService interface
type ExportServiceImpl struct {
	inliner    ImageInliner
	workerPool chan struct{}
}

// NewExportService creates a new ExportService bounded to maxWorkers
// concurrent export jobs.
func NewExportService(imageInliner ImageInliner, maxWorkers int) ExportService {
	if maxWorkers <= 0 {
		maxWorkers = 5
	}
	return &ExportServiceImpl{
		inliner:    imageInliner,
		workerPool: make(chan struct{}, maxWorkers),
	}
}

// BuildModel parses the payload text and builds the canonical model.
func (s *ExportServiceImpl) BuildModel(ctx context.Context, payload string) (domain.BuildResult, error) {
	raw, err := parsePayload(payload)
	if err != nil {
		return domain.BuildResult{}, err
	}
	return builder.Build(raw), nil
}

// Export runs parse, build, inline and render in sequence.
func (s *ExportServiceImpl) Export(ctx context.Context, payload string, settings *domain.DesignSettings) (*ExportResult, error) {
	// Acquire a worker from the pool
	select {
	case s.workerPool <- struct{}{}:
		defer func() {
			<-s.workerPool
		}()
	case <-ctx.Done():
		return nil, &ExportServiceError{
			Op:  "acquire_worker",
			Err: ctx.Err(),
		}
	}

	raw, err := parsePayload(payload)
	if err != nil {
		return nil, err
	}

	result := builder.Build(raw)
	if !result.OK() {
		return nil, &ExportServiceError{
			Op:  "build_model",
			Err: &BuildError{Message: result.Error},
		}
	}

	resolved := domain.DefaultDesignSettings()
	if settings != nil {
		resolved = *settings
	}
	if s.inliner != nil {
		resolved = s.inliner.Inline(ctx, resolved)
	}

	return &ExportResult{
		HTML:     renderer.Render(result.Model, resolved),
		Model:    result.Model,
		Warnings: result.Warnings,
	}, nil
}

// Shutdown implements the shutdown method from the ExportService interface
func (s *ExportServiceImpl) Shutdown() {
	close(s.workerPool)
}

// parsePayload decodes the pasted text into an untyped JSON value.
func parsePayload(payload string) (interface{}, error) {
	var raw interface{}
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, &ExportServiceError{
			Op:  "parse_payload",
			Err: fmt.Errorf("%w: %v", ErrInvalidJSON, err),
		}
	}
	return raw, nil
}
