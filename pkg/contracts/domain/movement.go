package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementRecord is one normalized row of an auto-detected movement table.
// StockQty is either read from a direct stock-quantity column or derived as a
// per-item running total of QtyIn-QtyOut; StockDerived records which.
type MovementRecord struct {
	ItemID       string    `json:"item_id"`
	Description  string    `json:"description,omitempty"`
	Date         time.Time `json:"date"`
	HasDate      bool      `json:"has_date"`
	QtyIn        float64   `json:"qty_in"`
	QtyOut       float64   `json:"qty_out"`
	StockQty     float64   `json:"stock_qty"`
	StockDerived bool      `json:"stock_derived"`

	// RowIndex is the position in the source sheet, used as the stable
	// tie-breaker when several movements share a date.
	RowIndex int `json:"-"`
}

// SalesRecord is one normalized row of an auto-detected sales summary table.
type SalesRecord struct {
	ItemID      string          `json:"item_id"`
	Description string          `json:"description,omitempty"`
	SalesQty    float64         `json:"sales_qty"`
	SalesValue  decimal.Decimal `json:"sales_value"`
}
