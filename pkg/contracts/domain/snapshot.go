package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AgingSentinelDays marks an item that has never had an inbound movement.
// It is large enough to always land in the oldest aging bucket and is
// distinguishable from a genuine elapsed-day count.
const AgingSentinelDays = 999999

// ItemSnapshot is the point-in-time reduction of an item's movement history.
type ItemSnapshot struct {
	ItemID           string    `json:"item_id"`
	Description      string    `json:"description,omitempty"`
	StockAsOf        float64   `json:"stock_as_of"`
	LastMoveDate     time.Time `json:"last_move_date"`
	HasLastMove      bool      `json:"has_last_move"`
	LastInboundDate  time.Time `json:"last_inbound_date"`
	HasInbound       bool      `json:"has_inbound"`
	DaysSinceInbound int       `json:"days_since_inbound"`
	AgingBucket      string    `json:"aging_bucket"`
}

// MergedSnapshotRow joins an item snapshot with its sales summary, when one
// exists. Produced only in auto-detect mode.
type MergedSnapshotRow struct {
	ItemSnapshot
	SalesQty   float64         `json:"sales_qty"`
	SalesValue decimal.Decimal `json:"sales_value"`
	HasSales   bool            `json:"has_sales"`
}

// InventoryAgingRow is one row of the combined-mode inventory aging view:
// a stock balance valued and bucketed by days since the item's last inbound
// movement.
type InventoryAgingRow struct {
	ItemID           string          `json:"item_id"`
	SKU              string          `json:"sku,omitempty"`
	Name             string          `json:"name,omitempty"`
	Category         string          `json:"category,omitempty"`
	Location         string          `json:"location,omitempty"`
	QtyOnHand        float64         `json:"qty_on_hand"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	Value            decimal.Decimal `json:"value"`
	DaysSinceInbound int             `json:"days_since_inbound"`
	AgingBucket      string          `json:"aging_bucket"`
}

// InventorySummary carries the scalar metrics displayed above the inventory
// aging table.
type InventorySummary struct {
	TotalQty     float64         `json:"total_qty"`
	TotalValue   decimal.Decimal `json:"total_value"`
	Over120Value decimal.Decimal `json:"over_120_value"`
	RowCount     int             `json:"row_count"`
}
