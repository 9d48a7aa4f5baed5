package builder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nivgrinberg/receipt-export-service/internal/domain"
)

// stringSpec declares one text field of the model: the source keys tried in
// order, the default when none yields a usable value, and where the resolved
// value lands. A value is usable when the key is present, non-nil and its
// string form is non-empty.
type stringSpec struct {
	keys     []string
	fallback string
	assign   func(m *domain.ReceiptModel, v string)
}

// numberSpec is the numeric counterpart; a value is usable when present,
// non-nil and parseable as a finite number.
type numberSpec struct {
	keys     []string
	fallback float64
	assign   func(m *domain.ReceiptModel, v float64)
}

var stringSpecs = []stringSpec{
	{keys: []string{"ID"}, assign: func(m *domain.ReceiptModel, v string) { m.InvoiceID = v }},
	{keys: []string{"TransactionNumber", "Barcode"}, assign: func(m *domain.ReceiptModel, v string) { m.ReceiptNumber = v }},
	{keys: []string{"CreatedDate", "UploadedDate"}, assign: func(m *domain.ReceiptModel, v string) { m.CreatedAt = v }},
	{keys: []string{"BusinessID"}, assign: func(m *domain.ReceiptModel, v string) { m.CompanyName = v }},
	{keys: []string{"BranchID"}, assign: func(m *domain.ReceiptModel, v string) { m.BranchName = v }},
	{keys: []string{"PosId"}, assign: func(m *domain.ReceiptModel, v string) { m.PosNumber = v }},
	{keys: []string{"CashierName"}, assign: func(m *domain.ReceiptModel, v string) { m.CashierName = v }},
	{keys: []string{"CashierID"}, assign: func(m *domain.ReceiptModel, v string) { m.CashierID = v }},
	{keys: []string{"LoyaltyID"}, assign: func(m *domain.ReceiptModel, v string) { m.CustomerID = v }},
	{keys: []string{"Target"}, assign: func(m *domain.ReceiptModel, v string) { m.CustomerPhone = v }},
	{keys: []string{"email", "send_to"}, assign: func(m *domain.ReceiptModel, v string) { m.CustomerEmail = v }},
	{keys: []string{"Reference"}, assign: func(m *domain.ReceiptModel, v string) { m.Reference = v }},
	{keys: []string{"Barcode"}, assign: func(m *domain.ReceiptModel, v string) { m.Barcode = v }},
	{keys: []string{"Currency"}, fallback: "שקל", assign: func(m *domain.ReceiptModel, v string) { m.Currency = v }},
	{keys: []string{"notes"}, assign: func(m *domain.ReceiptModel, v string) { m.Notes = v }},
}

var numberSpecs = []numberSpec{
	{keys: []string{"TotalNoVat", "vat_liable"}, assign: func(m *domain.ReceiptModel, v float64) { m.TotalNoVat = v }},
	{keys: []string{"Vat"}, assign: func(m *domain.ReceiptModel, v float64) { m.VatAmount = v }},
	{keys: []string{"VatTotal"}, assign: func(m *domain.ReceiptModel, v float64) { m.VatPercent = v }},
	{keys: []string{"Discount"}, assign: func(m *domain.ReceiptModel, v float64) { m.Discount = v }},
}

// applyStringSpecs resolves every declared text field on the model.
func applyStringSpecs(m *domain.ReceiptModel, obj map[string]interface{}) {
	for _, spec := range stringSpecs {
		resolved := spec.fallback
		for _, key := range spec.keys {
			if s, ok := usableString(obj[key]); ok {
				resolved = s
				break
			}
		}
		spec.assign(m, resolved)
	}
}

// applyNumberSpecs resolves every declared numeric field on the model.
func applyNumberSpecs(m *domain.ReceiptModel, obj map[string]interface{}) {
	for _, spec := range numberSpecs {
		resolved := spec.fallback
		for _, key := range spec.keys {
			if n, ok := usableNumber(obj[key]); ok {
				resolved = n
				break
			}
		}
		spec.assign(m, resolved)
	}
}

// usableString converts a raw value to its text form. Nil values and empty
// strings are not usable, so fallback chains keep advancing past them.
func usableString(value interface{}) (string, bool) {
	if value == nil {
		return "", false
	}
	s := stringify(value)
	if s == "" {
		return "", false
	}
	return s, true
}

// usableNumber parses a raw value as a finite number. Sources encode amounts
// both as JSON numbers and as numeric strings ("0.0000"), so both forms pass.
func usableNumber(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return n, true
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// stringify renders any raw JSON value as text.
func stringify(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// textOr returns the text form of value, or fallback when value is nil.
func textOr(value interface{}, fallback string) string {
	if value == nil {
		return fallback
	}
	return stringify(value)
}

// numberOr returns the numeric form of value, or fallback when value is nil
// or not parseable.
func numberOr(value interface{}, fallback float64) float64 {
	if n, ok := usableNumber(value); ok {
		return n
	}
	return fallback
}

// truthy mirrors the loose boolean coercion POS exports rely on: any
// non-zero, non-empty, non-nil value counts as true.
func truthy(value interface{}) bool {
	switch v := value.(type) {
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v != ""
	case nil:
		return false
	default:
		return true
	}
}
