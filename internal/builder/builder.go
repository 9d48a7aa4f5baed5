package builder

import (
	"fmt"
	"strings"

	"github.com/nivgrinberg/receipt-export-service/internal/domain"
)

// Fatal build errors. Anything else the builder can default its way past.
const (
	ErrNotAnObject  = "input is not a valid structured document"
	ErrItemsMissing = "items field missing or not a collection"
)

// Build normalizes a raw, loosely-structured POS payload into a canonical
// ReceiptModel. The payload must already be parsed (encoding/json into
// interface{}); Build itself performs no I/O and is fully deterministic.
//
// Only two conditions are fatal: the payload not being an object, and the
// Items field missing or not being an array. Every other malformed field is
// resolved to a default, with a warning where the operator should know.
func Build(raw interface{}) domain.BuildResult {
	obj, ok := raw.(map[string]interface{})
	if !ok || obj == nil {
		return domain.BuildResult{Warnings: []string{}, Error: ErrNotAnObject}
	}

	rawItems, ok := obj["Items"].([]interface{})
	if !ok {
		return domain.BuildResult{Warnings: []string{}, Error: ErrItemsMissing}
	}

	warnings := []string{}

	// Malformed totals are common in real exports; default rather than fail
	// so the operator can still review the document.
	total, ok := usableNumber(obj["Total"])
	if !ok {
		total = 0
		warnings = append(warnings, "Total invalid, defaulted to 0")
	}

	model := &domain.ReceiptModel{
		Total:          total,
		Items:          buildItems(rawItems),
		Payments:       buildPayments(obj["Payments"]),
		AdditionalData: buildAdditionalData(obj["AdditionalData"]),
	}

	applyStringSpecs(model, obj)
	applyNumberSpecs(model, obj)

	model.CustomerName = resolveCustomerName(obj)
	model.ItemsCount = resolveItemsCount(obj, model.Items, &warnings)

	model.Action = optionalNumber(obj["Action"])
	model.ReceiptType = optionalNumber(obj["ReceiptType"])
	model.PaymentType = optionalNumber(obj["PaymentType"])
	model.PaymentTypeStr = optionalString(obj["PaymentTypeStr"])

	return domain.BuildResult{Model: model, Warnings: warnings}
}

// buildItems normalizes each line item. Quantity defaults to 1, unit price
// to 0, and a missing line total to quantity x unit price, so downstream
// consumers never see an undefined amount. Item codes arrive padded from
// some registers and are trimmed here.
func buildItems(rawItems []interface{}) []domain.ReceiptItem {
	items := make([]domain.ReceiptItem, 0, len(rawItems))
	for _, rawItem := range rawItems {
		itemObj, _ := rawItem.(map[string]interface{})
		quantity := numberOr(itemObj["Quantity"], 1)
		unitPrice := numberOr(itemObj["Price"], 0)

		items = append(items, domain.ReceiptItem{
			Name:      textOr(itemObj["Name"], ""),
			Code:      strings.TrimSpace(textOr(itemObj["Code"], "")),
			Quantity:  quantity,
			UnitPrice: unitPrice,
			LineTotal: numberOr(itemObj["Total"], quantity*unitPrice),
			ItemInfo:  textOr(itemObj["ItemInfo"], ""),
			Promotion: truthy(itemObj["Promotion"]),
		})
	}
	return items
}

// buildPayments normalizes the payment legs. A missing or malformed
// Payments field is not an error; the receipt simply has none.
func buildPayments(raw interface{}) []domain.ReceiptPayment {
	rawPayments, ok := raw.([]interface{})
	if !ok {
		return []domain.ReceiptPayment{}
	}

	payments := make([]domain.ReceiptPayment, 0, len(rawPayments))
	for _, rawPayment := range rawPayments {
		paymentObj, _ := rawPayment.(map[string]interface{})
		payments = append(payments, domain.ReceiptPayment{
			MethodName:  textOr(paymentObj["Name"], ""),
			Amount:      numberOr(paymentObj["Amount"], 0),
			PaymentCode: textOr(paymentObj["PaymentCode"], ""),
			PaymentInfo: textOr(paymentObj["PaymentInfo"], ""),
			Comments:    textOr(paymentObj["Comments"], ""),
		})
	}
	return payments
}

func buildAdditionalData(raw interface{}) []interface{} {
	if data, ok := raw.([]interface{}); ok {
		return data
	}
	return []interface{}{}
}

// resolveCustomerName prefers the loyalty display name and falls back to
// joining the first and last name fields.
func resolveCustomerName(obj map[string]interface{}) string {
	if name, ok := usableString(obj["LoyalName"]); ok {
		return name
	}
	firstName := textOr(obj["first_name"], "")
	lastName := textOr(obj["last_name"], "")
	return strings.TrimSpace(firstName + " " + lastName)
}

// resolveItemsCount trusts an explicit non-zero count and otherwise falls
// back to the actual item list length, guarding against sources that report
// a stale or zero count alongside real items. An explicit count that
// disagrees with the list is kept as-is but flagged.
func resolveItemsCount(obj map[string]interface{}, items []domain.ReceiptItem, warnings *[]string) int {
	count := int(numberOr(obj["ItemsCount"], 0))
	if count == 0 {
		return len(items)
	}
	if count != len(items) {
		*warnings = append(*warnings, fmt.Sprintf("ItemsCount is %d but payload has %d items", count, len(items)))
	}
	return count
}

// optionalNumber keeps a passthrough numeric present only when the source
// carried it.
func optionalNumber(value interface{}) *float64 {
	if value == nil {
		return nil
	}
	n := numberOr(value, 0)
	return &n
}

func optionalString(value interface{}) *string {
	if value == nil {
		return nil
	}
	s := stringify(value)
	return &s
}
