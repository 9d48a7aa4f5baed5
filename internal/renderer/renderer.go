// Package renderer turns a canonical receipt model and design settings into
// a single self-contained HTML document: inline styles only, no scripts,
// images carried as whatever values the settings hold (data URIs when the
// inliner ran first). The layout is fixed; settings substitute colors, font
// and images into it.
package renderer

import (
	"fmt"
	"strings"

	"github.com/nivgrinberg/receipt-export-service/internal/domain"
)

// Render produces the exported document. It is a pure transform: the model
// is assumed fully normalized (the builder's success path is the only
// producer) and settings are read as-is.
func Render(model *domain.ReceiptModel, settings domain.DesignSettings) string {
	var body strings.Builder

	body.WriteString(bannerSection(settings.TopBanner))
	body.WriteString(identitySection(model, settings))
	body.WriteString(itemsTableSection(model, settings))
	body.WriteString(paymentsSection(model))
	body.WriteString(summarySection(model))
	body.WriteString(barcodeSection(model))
	body.WriteString(bannerSection(settings.BottomBanner))
	body.WriteString(socialSection(settings.SocialMedia))
	body.WriteString(attributionSection())

	return documentShell(model, settings, body.String())
}

// documentShell wraps the assembled sections in the RTL page scaffolding.
func documentShell(model *domain.ReceiptModel, settings domain.DesignSettings, body string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html dir="rtl" lang="he">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>חשבונית %s</title>
  <style>
    * {
      margin: 0;
      padding: 0;
      box-sizing: border-box;
    }
    body {
      font-family: %s, Arial, sans-serif;
      background-color: #f5f5f5;
      padding: 20px;
      direction: rtl;
    }
    .invoice-container {
      max-width: 390px;
      margin: 0 auto;
      background-color: %s;
      color: %s;
      box-shadow: 0 4px 20px rgba(0, 0, 0, 0.15);
      overflow: hidden;
    }
    table {
      width: 100%%;
      border-collapse: collapse;
    }
    th {
      text-align: right;
      padding: 8px 4px;
      border-bottom: 1px solid #e5e7eb;
      font-weight: 600;
    }
  </style>
</head>
<body>
  <div class="invoice-container">%s
  </div>
</body>
</html>`,
		escapeHTML(model.ReceiptNumber),
		escapeHTML(settings.Font),
		escapeHTML(settings.BackgroundColor),
		escapeHTML(settings.TextColor),
		body)
}
