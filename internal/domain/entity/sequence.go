package entity

// InvoiceSequence holds the invoice number counter for one billing period
// (calendar year). It is kept apart from the invoice table so the counter
// survives independently of invoice data and failed checkouts burn their
// reserved number instead of reissuing it.
type InvoiceSequence struct {
	Period  string `gorm:"primaryKey;size:10"`
	Counter int64  `gorm:"not null;default:0"`
}

// TableName returns the table name for the InvoiceSequence model
func (InvoiceSequence) TableName() string {
	return "invoice_sequences"
}
