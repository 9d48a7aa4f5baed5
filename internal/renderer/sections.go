package renderer

import (
	"fmt"
	"strings"

	"github.com/nivgrinberg/receipt-export-service/internal/domain"
)

// Each section builder returns one fully-escaped fragment of the fixed
// layout, or an empty string when the section has nothing to show. The
// exported document carries no placeholder boxes: an empty image reference
// simply omits its block.

// bannerSection renders a full-width banner image block.
func bannerSection(imageRef string) string {
	if imageRef == "" {
		return ""
	}
	return fmt.Sprintf(`
    <div style="width: 100%%; height: 180px; overflow: hidden;">
      <img src="%s" alt="Banner" style="width: 100%%; height: 100%%; object-fit: cover;" />
    </div>`, escapeHTML(imageRef))
}

// identitySection renders the logo, company and branch names and the
// headline total.
func identitySection(model *domain.ReceiptModel, settings domain.DesignSettings) string {
	var b strings.Builder
	b.WriteString(`
    <div style="padding: 24px; text-align: center;">`)

	if settings.Logo != "" {
		fmt.Fprintf(&b, `
      <div style="width: 140px; height: 140px; margin: 0 auto 16px; overflow: hidden; border-radius: 8px;">
        <img src="%s" alt="Logo" style="width: 100%%; height: 100%%; object-fit: contain;" />
      </div>`, escapeHTML(settings.Logo))
	}

	companyName := model.CompanyName
	if companyName == "" {
		companyName = "שם החברה"
	}
	fmt.Fprintf(&b, `
      <h2 style="font-size: 18px; font-weight: 700; margin-bottom: 4px;">%s</h2>`, escapeHTML(companyName))

	if model.BranchName != "" {
		fmt.Fprintf(&b, `
      <p style="font-size: 14px; margin-bottom: 16px;">סניף %s</p>`, escapeHTML(model.BranchName))
	} else {
		b.WriteString(`
      <p style="font-size: 14px; margin-bottom: 16px;">שם הסניף</p>`)
	}

	fmt.Fprintf(&b, `
      <div style="font-size: 28px; font-weight: 700;">%s</div>
    </div>`, formatCurrency(model.Total, model.Currency))

	return b.String()
}

// itemsTableSection renders the line-item table, with the discount row
// appended when a discount applies.
func itemsTableSection(model *domain.ReceiptModel, settings domain.DesignSettings) string {
	var rows strings.Builder
	for _, item := range model.Items {
		rows.WriteString(itemRow(item, model.Currency, settings.PromotionTextColor))
	}
	rows.WriteString(discountRow(model, settings.PromotionTextColor))

	return fmt.Sprintf(`
    <div style="padding: 0 24px 16px;">
      <table>
        <thead>
          <tr>
            <th style="text-align: right;">פריט</th>
            <th style="text-align: center;">כמות</th>
            <th style="text-align: center;">מחיר</th>
            <th style="text-align: left;">סה"כ</th>
          </tr>
        </thead>
        <tbody>%s
        </tbody>
      </table>
    </div>`, rows.String())
}

func itemRow(item domain.ReceiptItem, currency, promotionColor string) string {
	var rowStyle string
	if item.Promotion {
		rowStyle = fmt.Sprintf(` style="color: %s;"`, escapeHTML(promotionColor))
	}

	var details strings.Builder
	fmt.Fprintf(&details, `
              <div style="font-weight: 500;">%s</div>`, escapeHTML(item.Name))
	if item.Code != "" {
		fmt.Fprintf(&details, `
              <div style="font-size: 10px; opacity: 0.6;">%s</div>`, escapeHTML(item.Code))
	}
	if item.ItemInfo != "" {
		fmt.Fprintf(&details, `
              <div style="font-size: 10px; opacity: 0.7;">%s</div>`, escapeHTML(item.ItemInfo))
	}

	return fmt.Sprintf(`
          <tr%s>
            <td style="text-align: right; padding: 8px 4px; vertical-align: top;">%s
            </td>
            <td style="text-align: center; padding: 8px 4px;">%s</td>
            <td style="text-align: center; padding: 8px 4px;">%s</td>
            <td style="text-align: left; padding: 8px 4px;">%s</td>
          </tr>`,
		rowStyle,
		details.String(),
		formatQuantity(item.Quantity),
		formatCurrency(item.UnitPrice, currency),
		formatCurrency(item.LineTotal, currency))
}

func discountRow(model *domain.ReceiptModel, promotionColor string) string {
	if model.Discount <= 0 {
		return ""
	}
	return fmt.Sprintf(`
          <tr style="color: %s;">
            <td style="text-align: right; padding: 8px 4px; font-weight: 500;">הנחה</td>
            <td style="text-align: center; padding: 8px 4px;"></td>
            <td style="text-align: center; padding: 8px 4px;"></td>
            <td style="text-align: left; padding: 8px 4px;">%s-</td>
          </tr>`, escapeHTML(promotionColor), formatCurrency(model.Discount, model.Currency))
}

// paymentsSection renders one block per payment leg; receipts without
// payments get no block at all.
func paymentsSection(model *domain.ReceiptModel) string {
	if len(model.Payments) == 0 {
		return ""
	}

	var legs strings.Builder
	for _, payment := range model.Payments {
		details := strings.TrimSpace(payment.PaymentInfo + " " + payment.Comments)
		fmt.Fprintf(&legs, `
        <div style="padding: 12px 0; border-bottom: 1px solid #e5e7eb;">
          <div style="font-weight: 500; margin-bottom: 4px;">%s</div>
          <div style="display: flex; justify-content: space-between; align-items: center;">
            <span>%s</span>
            <span style="font-weight: 500;">%s</span>
          </div>
        </div>`,
			escapeHTML(payment.MethodName),
			escapeHTML(details),
			formatCurrency(payment.Amount, model.Currency))
	}

	return fmt.Sprintf(`
    <div style="padding: 0 24px 16px;">
      <div style="max-width: 340px; margin: 0 auto;">%s
      </div>
    </div>`, legs.String())
}

// summarySection renders the totals breakdown plus the optional meta rows.
// Each optional row appears only when its backing field is non-empty.
func summarySection(model *domain.ReceiptModel) string {
	var rows strings.Builder

	if model.TotalNoVat > 0 {
		rows.WriteString(summaryRow(`סכום ללא מע"מ`, formatCurrency(model.TotalNoVat, model.Currency), false))
	}
	if model.VatAmount > 0 {
		label := `מע"מ`
		if model.VatPercent > 0 {
			label = fmt.Sprintf(`מע"מ (%s%%)`, formatPercent(model.VatPercent))
		}
		rows.WriteString(summaryRow(label, formatCurrency(model.VatAmount, model.Currency), false))
	}

	rows.WriteString(summaryRow(`סה"כ לתשלום`, formatCurrency(model.Total, model.Currency), true))

	if model.ReceiptNumber != "" {
		rows.WriteString(summaryRow("מספר חשבונית", escapeHTML(model.ReceiptNumber), false))
	}
	if model.CreatedAt != "" {
		rows.WriteString(summaryRow("תאריך ושעה", escapeHTML(formatTimestamp(model.CreatedAt)), false))
	}
	if model.PosNumber != "" {
		rows.WriteString(summaryRow("מספר קופה", escapeHTML(model.PosNumber), false))
	}
	if model.CashierName != "" {
		rows.WriteString(summaryRow("קופאי/ת", escapeHTML(model.CashierName), false))
	}
	if model.CustomerName != "" {
		rows.WriteString(summaryRow("לקוח", escapeHTML(model.CustomerName), false))
	}

	return fmt.Sprintf(`
    <div style="padding: 0 24px 16px; font-size: 14px;">%s
    </div>`, rows.String())
}

// summaryRow expects value to be escaped (or renderer-formatted) already.
func summaryRow(label, value string, emphasized bool) string {
	weight := ""
	if emphasized {
		weight = " font-weight: 600;"
	}
	return fmt.Sprintf(`
      <div style="display: flex; justify-content: space-between; padding: 4px 0;%s">
        <span>%s</span>
        <span>%s</span>
      </div>`, weight, label, value)
}

// barcodeSection renders the receipt number in barcode typeface with a
// plain-text line under it.
func barcodeSection(model *domain.ReceiptModel) string {
	if model.ReceiptNumber == "" {
		return ""
	}
	number := escapeHTML(model.ReceiptNumber)
	return fmt.Sprintf(`
    <div style="padding: 16px 24px; text-align: center;">
      <div style="font-family: 'Libre Barcode 39', monospace; font-size: 48px; letter-spacing: 4px;">*%s*</div>
      <div style="font-size: 12px; margin-top: 4px;">%s</div>
    </div>`, number, number)
}

// socialSection renders one link per configured social URL; when all three
// are empty the block is omitted entirely.
func socialSection(social domain.SocialLinks) string {
	type link struct {
		label string
		url   string
	}
	links := []link{
		{"Facebook", social.Facebook},
		{"Instagram", social.Instagram},
		{"אתר", social.Other},
	}

	var anchors strings.Builder
	for _, l := range links {
		if l.url == "" {
			continue
		}
		fmt.Fprintf(&anchors, `
          <a href="%s" target="_blank" rel="noopener noreferrer" style="display: inline-block; padding: 6px 14px; border: 1px solid #e5e7eb; border-radius: 16px; font-size: 12px; text-decoration: none; color: inherit;">%s</a>`,
			escapeHTML(l.url), l.label)
	}
	if anchors.Len() == 0 {
		return ""
	}

	return fmt.Sprintf(`
    <div style="padding: 16px 24px; text-align: center;">
      <div style="display: flex; justify-content: center; gap: 16px;">%s
      </div>
    </div>`, anchors.String())
}

// attributionSection is the fixed footer.
func attributionSection() string {
	return `
    <div style="padding: 16px 24px; text-align: center; font-size: 12px; border-top: 1px solid #e5e7eb;">
      Powered By <span style="color: #3DB065; font-weight: 700;">COMAX</span>
    </div>`
}
