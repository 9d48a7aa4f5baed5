package model

import (
	"github.com/nivgrinberg/receipt-export-service/internal/domain"
)

// ExportRequest is the body of an export call: the raw POS payload exactly
// as the operator pasted it, plus the design settings to apply. Settings
// are optional; the default editor styling applies when omitted.
type ExportRequest struct {
	Payload  string                 `json:"payload" binding:"required"`
	Settings *domain.DesignSettings `json:"settings"`
}

// ExportResponse carries the generated document and any non-fatal
// normalization warnings the operator should see.
type ExportResponse struct {
	HTML     string   `json:"html"`
	Warnings []string `json:"warnings"`
}

// PreviewResponse carries the normalized model and warnings without
// rendering, so the operator can review diagnostics first.
type PreviewResponse struct {
	Model    *domain.ReceiptModel `json:"model"`
	Warnings []string             `json:"warnings"`
}

// ErrorDetail represents a single field-level error
type ErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse is the standard error envelope
type ErrorResponse struct {
	Status  string        `json:"status"`
	Message string        `json:"message"`
	Details []ErrorDetail `json:"details,omitempty"`
}
