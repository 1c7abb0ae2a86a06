package exporter

import (
	"fmt"
	"strconv"

	"invctl/internal/analytics"
	"invctl/pkg/contracts/domain"
)

// Table builders are shared between the CSV file exporter and the HTTP
// results API, so both surfaces emit identical delimited output.

// InventoryAgingTable renders the inventory aging view as headers plus
// records.
func InventoryAgingTable(rows []domain.InventoryAgingRow) ([]string, [][]string) {
	headers := []string{
		"item_id", "sku", "name", "category", "location",
		"qty_on_hand", "unit_cost", "value", "days_since_in", "aging_bucket",
	}
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, []string{
			row.ItemID,
			row.SKU,
			row.Name,
			row.Category,
			row.Location,
			formatFloat(row.QtyOnHand),
			formatMoney(row.UnitCost),
			formatMoney(row.Value),
			strconv.Itoa(row.DaysSinceInbound),
			row.AgingBucket,
		})
	}
	return headers, records
}

// ReorderPlanTable renders the reorder suggestion view.
func ReorderPlanTable(rows []domain.ReorderRow) ([]string, [][]string) {
	headers := []string{
		"item_id", "sku", "name", "supplier_id",
		"demand_per_day", "lead_time_days", "safety_stock", "reorder_point",
		"on_hand", "on_order", "suggested_qty",
	}
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, []string{
			row.ItemID,
			row.SKU,
			row.Name,
			row.SupplierID,
			formatFloat(row.DemandPerDay),
			formatFloat(row.LeadTimeDays),
			formatFloat(row.SafetyStock),
			formatFloat(row.ReorderPoint),
			formatFloat(row.OnHand),
			formatFloat(row.OnOrder),
			formatInt(row.SuggestedQty),
		})
	}
	return headers, records
}

// ReceivablesAgingTable renders the AR aging pivot.
func ReceivablesAgingTable(rows []domain.ReceivableBucketRow) ([]string, [][]string) {
	headers := []string{"customer_id", "name"}
	headers = append(headers, analytics.ReceivableBucketLabels[:]...)
	headers = append(headers, "total_open")

	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		record := []string{row.CustomerID, row.Name}
		for _, amount := range row.Buckets {
			record = append(record, formatMoney(amount))
		}
		record = append(record, formatMoney(row.TotalOpen))
		records = append(records, record)
	}
	return headers, records
}

// SnapshotTable renders the merged item snapshot produced in auto-detect
// mode.
func SnapshotTable(rows []domain.MergedSnapshotRow) ([]string, [][]string) {
	headers := []string{
		"item_id", "description", "stock_as_of",
		"last_move_date", "last_in_date", "days_since_in", "aging_bucket",
		"sales_qty", "sales_value",
	}
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		lastMove, lastIn := "", ""
		if row.HasLastMove {
			lastMove = row.LastMoveDate.Format("2006-01-02")
		}
		if row.HasInbound {
			lastIn = row.LastInboundDate.Format("2006-01-02")
		}
		records = append(records, []string{
			row.ItemID,
			row.Description,
			formatFloat(row.StockAsOf),
			lastMove,
			lastIn,
			strconv.Itoa(row.DaysSinceInbound),
			row.AgingBucket,
			formatFloat(row.SalesQty),
			formatMoney(row.SalesValue),
		})
	}
	return headers, records
}

// ResultExporter writes the analysis result tables as CSV reports.
type ResultExporter struct {
	csvWriter *CSVWriter
}

// NewResultExporter creates a result exporter rooted at outDir.
func NewResultExporter(outDir string) *ResultExporter {
	return &ResultExporter{csvWriter: NewCSVWriter(outDir)}
}

// ExportInventoryAging writes the inventory aging table.
func (e *ResultExporter) ExportInventoryAging(rows []domain.InventoryAgingRow, filePath string) error {
	headers, records := InventoryAgingTable(rows)
	if err := e.csvWriter.WriteSimpleCSV(filePath, headers, records); err != nil {
		return fmt.Errorf("failed to write inventory aging report: %w", err)
	}
	return nil
}

// ExportReorderPlan writes the reorder suggestion table.
func (e *ResultExporter) ExportReorderPlan(rows []domain.ReorderRow, filePath string) error {
	headers, records := ReorderPlanTable(rows)
	if err := e.csvWriter.WriteSimpleCSV(filePath, headers, records); err != nil {
		return fmt.Errorf("failed to write reorder report: %w", err)
	}
	return nil
}

// ExportReceivablesAging writes the AR aging pivot.
func (e *ResultExporter) ExportReceivablesAging(rows []domain.ReceivableBucketRow, filePath string) error {
	headers, records := ReceivablesAgingTable(rows)
	if err := e.csvWriter.WriteSimpleCSV(filePath, headers, records); err != nil {
		return fmt.Errorf("failed to write receivables aging report: %w", err)
	}
	return nil
}

// ExportSnapshot writes the merged item snapshot.
func (e *ResultExporter) ExportSnapshot(rows []domain.MergedSnapshotRow, filePath string) error {
	headers, records := SnapshotTable(rows)
	if err := e.csvWriter.WriteSimpleCSV(filePath, headers, records); err != nil {
		return fmt.Errorf("failed to write snapshot report: %w", err)
	}
	return nil
}
