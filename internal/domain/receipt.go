package domain

// ReceiptItem represents one purchased line on a receipt
type ReceiptItem struct {
	Name      string  `json:"name"`
	Code      string  `json:"code"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	LineTotal float64 `json:"lineTotal"`
	ItemInfo  string  `json:"itemInfo"`
	Promotion bool    `json:"promotion"`
}

// ReceiptPayment represents one payment leg of a receipt
type ReceiptPayment struct {
	MethodName  string  `json:"methodName"`
	Amount      float64 `json:"amount"`
	PaymentCode string  `json:"paymentCode"`
	PaymentInfo string  `json:"paymentInfo"`
	Comments    string  `json:"comments"`
}

// ReceiptModel is the canonical, fully-normalized receipt. It is produced
// once by the builder and never mutated afterwards; every field holds a
// resolved value, so consumers never re-check defaults.
type ReceiptModel struct {
	// Header / meta
	InvoiceID     string `json:"invoiceId"`
	ReceiptNumber string `json:"receiptNumber"`
	CreatedAt     string `json:"createdAt"`
	CompanyName   string `json:"companyName"`
	BranchName    string `json:"branchName"`
	PosNumber     string `json:"posNumber"`
	CashierName   string `json:"cashierName"`
	CashierID     string `json:"cashierId"`
	CustomerName  string `json:"customerName"`
	CustomerID    string `json:"customerId"`
	CustomerPhone string `json:"customerPhone"`
	CustomerEmail string `json:"customerEmail"`
	Reference     string `json:"reference"`
	Barcode       string `json:"barcode"`

	// Totals / summary
	Currency   string  `json:"currency"`
	Total      float64 `json:"total"`
	TotalNoVat float64 `json:"totalNoVat"`
	VatAmount  float64 `json:"vatAmount"`
	VatPercent float64 `json:"vatPercent"`
	Discount   float64 `json:"discount"`
	ItemsCount int     `json:"itemsCount"`

	Items    []ReceiptItem    `json:"items"`
	Payments []ReceiptPayment `json:"payments"`

	// Extra / optional passthrough
	Action         *float64      `json:"action"`
	ReceiptType    *float64      `json:"receiptType"`
	PaymentType    *float64      `json:"paymentType"`
	PaymentTypeStr *string       `json:"paymentTypeStr"`
	AdditionalData []interface{} `json:"additionalData"`
	Notes          string        `json:"notes"`
}

// BuildResult wraps the outcome of building a ReceiptModel from a raw
// payload. On success Model is set and Warnings may carry non-fatal notes;
// on failure Error is set and Model is nil.
type BuildResult struct {
	Model    *ReceiptModel `json:"model,omitempty"`
	Warnings []string      `json:"warnings"`
	Error    string        `json:"error,omitempty"`
}

// OK reports whether a usable model was produced.
func (r BuildResult) OK() bool {
	return r.Error == "" && r.Model != nil
}
