package renderer

import (
	"fmt"
	"strings"
	"time"
)

// htmlEscaper rewrites the five markup-significant characters. Every piece
// of payload- or operator-sourced text goes through escapeHTML before it is
// interpolated into a fragment; no other escaping happens anywhere else.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

func escapeHTML(text string) string {
	return htmlEscaper.Replace(text)
}

// currencySymbols maps recognized currency labels to their presentation
// symbol. Unrecognized labels are emitted as-is.
var currencySymbols = map[string]string{
	"שקל": "₪",
}

// formatCurrency renders an amount with its currency symbol, fixed to two
// decimal places. Section builders interpolate the result directly, so an
// unrecognized label is escaped here; it is payload text like any other.
func formatCurrency(amount float64, currency string) string {
	symbol, ok := currencySymbols[currency]
	if !ok {
		symbol = escapeHTML(currency)
	}
	return fmt.Sprintf("%s%.2f", symbol, amount)
}

// timestampLayouts are the shapes POS exports encode timestamps in.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// formatTimestamp re-emits a parseable source timestamp as
// DD/MM/YYYY HH:mm. Unparseable input passes through unchanged; the
// renderer never fabricates a date.
func formatTimestamp(value string) string {
	if value == "" {
		return ""
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("02/01/2006 15:04")
		}
	}
	return value
}

// formatQuantity drops the decimals POS exports rarely use, keeping them
// when an item genuinely sells in fractional units.
func formatQuantity(quantity float64) string {
	formatted := strings.TrimRight(fmt.Sprintf("%.2f", quantity), "0")
	return strings.TrimRight(formatted, ".")
}

// formatPercent renders a VAT percent without trailing zeros.
func formatPercent(percent float64) string {
	formatted := strings.TrimRight(fmt.Sprintf("%.2f", percent), "0")
	return strings.TrimRight(formatted, ".")
}
