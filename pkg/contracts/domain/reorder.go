package domain

// ReorderRow is one item's reorder-point calculation. Every item in the
// master list appears, including items with no movement history.
type ReorderRow struct {
	ItemID       string  `json:"item_id"`
	SKU          string  `json:"sku,omitempty"`
	Name         string  `json:"name,omitempty"`
	SupplierID   string  `json:"supplier_id,omitempty"`
	DemandPerDay float64 `json:"demand_per_day"`
	DemandStd    float64 `json:"demand_std"`
	LeadTimeDays float64 `json:"lead_time_days"`
	SafetyStock  float64 `json:"safety_stock"`
	ReorderPoint float64 `json:"reorder_point"`
	OnHand       float64 `json:"on_hand"`
	OnOrder      float64 `json:"on_order"`
	SuggestedQty int64   `json:"suggested_qty"`
}

// ReorderSummary carries the scalar metrics for the reorder plan.
type ReorderSummary struct {
	ItemCount         int   `json:"item_count"`
	ItemsToOrder      int   `json:"items_to_order"`
	TotalSuggestedQty int64 `json:"total_suggested_qty"`
}
