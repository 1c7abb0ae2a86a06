package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is one open accounts-receivable invoice.
type Invoice struct {
	InvoiceID  string          `json:"invoice_id"`
	CustomerID string          `json:"customer_id"`
	DueDate    time.Time       `json:"due_date"`
	HasDueDate bool            `json:"has_due_date"`
	OpenAmount decimal.Decimal `json:"open_amount"`
}

// Customer is one row of the customer master list.
type Customer struct {
	CustomerID string `json:"customer_id"`
	Name       string `json:"name,omitempty"`
}

// ReceivableBucketRow is one customer's open amounts pivoted across the five
// aging buckets. Buckets is indexed by aging bucket position, oldest last.
type ReceivableBucketRow struct {
	CustomerID string             `json:"customer_id"`
	Name       string             `json:"name,omitempty"`
	Buckets    [5]decimal.Decimal `json:"buckets"`
	TotalOpen  decimal.Decimal    `json:"total_open"`
}

// ReceivablesSummary carries the scalar metrics for the AR aging pivot.
type ReceivablesSummary struct {
	TotalOpen     decimal.Decimal `json:"total_open"`
	Over120Open   decimal.Decimal `json:"over_120_open"`
	CustomerCount int             `json:"customer_count"`
}
