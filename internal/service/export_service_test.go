package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nivgrinberg/receipt-export-service/internal/domain"
)

const validPayload = `{
	"Total": 13.9,
	"TransactionNumber": "1012103319",
	"Currency": "שקל",
	"Items": [{"Name": "מגש", "Quantity": 1, "Price": 13.9}],
	"Payments": [{"Name": "אשראי", "Amount": 13.9}]
}`

// stampInliner marks settings so tests can see the inliner ran.
type stampInliner struct {
	calls int
}

func (s *stampInliner) Inline(_ context.Context, settings domain.DesignSettings) domain.DesignSettings {
	s.calls++
	inlined := settings
	inlined.Logo = "data:image/png;base64,STAMPED"
	return inlined
}

func TestExportSuccess(t *testing.T) {
	svc := NewExportService(nil, 2)
	defer svc.Shutdown()

	result, err := svc.Export(context.Background(), validPayload, nil)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.True(t, strings.HasPrefix(result.HTML, "<!DOCTYPE html>"))
	assert.Contains(t, result.HTML, "₪13.90")
	assert.Equal(t, "1012103319", result.Model.ReceiptNumber)
	assert.Empty(t, result.Warnings)
}

func TestExportInvalidJSON(t *testing.T) {
	svc := NewExportService(nil, 2)
	defer svc.Shutdown()

	result, err := svc.Export(context.Background(), "{not json", nil)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, ErrInvalidJSON))

	var svcErr *ExportServiceError
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, "parse_payload", svcErr.Op)
}

func TestExportFatalBuildFailure(t *testing.T) {
	svc := NewExportService(nil, 2)
	defer svc.Shutdown()

	tests := []struct {
		name    string
		payload string
	}{
		{"not an object", `"just a string"`},
		{"no items", `{"Total": 5}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.Export(context.Background(), tt.payload, nil)
			require.Error(t, err)
			assert.Nil(t, result)

			var buildErr *BuildError
			assert.True(t, errors.As(err, &buildErr))
			assert.False(t, errors.Is(err, ErrInvalidJSON))
		})
	}
}

func TestExportPropagatesWarnings(t *testing.T) {
	svc := NewExportService(nil, 2)
	defer svc.Shutdown()

	result, err := svc.Export(context.Background(), `{"Items": []}`, nil)
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "Total")
	assert.Contains(t, result.HTML, "₪0.00")
}

func TestExportRunsInliner(t *testing.T) {
	inliner := &stampInliner{}
	svc := NewExportService(inliner, 2)
	defer svc.Shutdown()

	result, err := svc.Export(context.Background(), validPayload, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, inliner.calls)
	assert.Contains(t, result.HTML, "data:image/png;base64,STAMPED")
}

func TestExportUsesProvidedSettings(t *testing.T) {
	svc := NewExportService(nil, 2)
	defer svc.Shutdown()

	settings := domain.DefaultDesignSettings()
	settings.BackgroundColor = "#123456"

	result, err := svc.Export(context.Background(), validPayload, &settings)
	require.NoError(t, err)
	assert.Contains(t, result.HTML, "background-color: #123456;")
}

func TestExportCancelledContextWhilePoolFull(t *testing.T) {
	svc := NewExportService(nil, 1).(*ExportServiceImpl)
	defer svc.Shutdown()

	// Occupy the single worker slot.
	svc.workerPool <- struct{}{}
	defer func() { <-svc.workerPool }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := svc.Export(ctx, validPayload, nil)
	require.Error(t, err)
	assert.Nil(t, result)

	var svcErr *ExportServiceError
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, "acquire_worker", svcErr.Op)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestBuildModel(t *testing.T) {
	svc := NewExportService(nil, 2)
	defer svc.Shutdown()

	t.Run("valid payload", func(t *testing.T) {
		result, err := svc.BuildModel(context.Background(), validPayload)
		require.NoError(t, err)
		require.True(t, result.OK())
		assert.Equal(t, "1012103319", result.Model.ReceiptNumber)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		_, err := svc.BuildModel(context.Background(), "???")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidJSON))
	})

	t.Run("fatal build returns result not error", func(t *testing.T) {
		result, err := svc.BuildModel(context.Background(), `{"Total": 5}`)
		require.NoError(t, err)
		assert.False(t, result.OK())
		assert.NotEmpty(t, result.Error)
	})
}
