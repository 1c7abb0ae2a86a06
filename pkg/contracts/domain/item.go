package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultLeadTimeDays is applied when an item carries no configured lead time.
const DefaultLeadTimeDays = 14

// Item represents one row of the item master list.
type Item struct {
	ItemID       string          `json:"item_id"`
	SKU          string          `json:"sku,omitempty"`
	Name         string          `json:"name,omitempty"`
	Category     string          `json:"category,omitempty"`
	StandardCost decimal.Decimal `json:"standard_cost"`
	LeadTimeDays float64         `json:"lead_time_days"`
	SupplierID   string          `json:"supplier_id,omitempty"`
}

// BalanceRow is a point-in-time stock balance for an item at a location.
type BalanceRow struct {
	ItemID      string          `json:"item_id"`
	Location    string          `json:"location,omitempty"`
	QtyOnHand   float64         `json:"qty_on_hand"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	HasUnitCost bool            `json:"has_unit_cost"`
	AsOfDate    time.Time       `json:"as_of_date"`
	HasAsOfDate bool            `json:"has_as_of_date"`
}

// MoveDirection identifies whether a stock move adds to or draws from stock.
type MoveDirection string

const (
	MoveIn  MoveDirection = "in"
	MoveOut MoveDirection = "out"
)

// StockMove is a single dated inventory movement.
type StockMove struct {
	ItemID    string        `json:"item_id"`
	Direction MoveDirection `json:"direction"`
	Qty       float64       `json:"qty"`
	MoveDate  time.Time     `json:"move_date"`
	HasDate   bool          `json:"has_date"`
}

// PurchaseOrderLine is one open purchase-order line for an item.
type PurchaseOrderLine struct {
	ItemID             string    `json:"item_id"`
	QtyOrdered         float64   `json:"qty_ordered"`
	QtyReceived        float64   `json:"qty_received"`
	ExpectedReceipt    time.Time `json:"expected_receipt_date"`
	HasExpectedReceipt bool      `json:"has_expected_receipt_date"`
}
