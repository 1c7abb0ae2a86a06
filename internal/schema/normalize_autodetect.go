package schema

import (
	"sort"

	"invctl/internal/workbook"
	"invctl/pkg/contracts/domain"
)

// SelectMovementSheet finds the sheet serving the inventory-movements role.
func SelectMovementSheet(wb *workbook.Workbook) (*workbook.Table, error) {
	return SelectSheet(wb, "inventory movements", MovementColumnSets)
}

// SelectSalesSheet finds the sheet serving the sales-summary role.
func SelectSalesSheet(wb *workbook.Workbook) (*workbook.Table, error) {
	return SelectSheet(wb, "sales summary", SalesColumnSets)
}

// NormalizeMovements rewrites an auto-detected movement sheet into canonical
// movement records. When no direct stock-quantity column resolves, the
// per-row stock quantity is derived as the per-item running total of
// qty_in-qty_out in chronological order. When a direct column is present it
// wins without consistency validation against the in/out pair.
func NormalizeMovements(t *workbook.Table) ([]domain.MovementRecord, error) {
	cols, err := resolveFields(t, movementFieldSpecs)
	if err != nil {
		return nil, err
	}

	var records []domain.MovementRecord
	for i := range t.Rows {
		id := cellString(t, i, cols["item"])
		if id == "" {
			continue
		}
		rec := domain.MovementRecord{
			ItemID:      id,
			Description: cellString(t, i, cols["description"]),
			RowIndex:    i,
		}
		rec.Date, rec.HasDate = cellDate(t, i, cols["date"])
		rec.QtyIn, _ = cellNumber(t, i, cols["qty_in"])
		rec.QtyOut, _ = cellNumber(t, i, cols["qty_out"])
		if cols["stock_qty"] >= 0 {
			rec.StockQty, _ = cellNumber(t, i, cols["stock_qty"])
		} else {
			rec.StockDerived = true
		}
		records = append(records, rec)
	}

	if cols["stock_qty"] < 0 {
		deriveRunningStock(records)
	}
	return records, nil
}

// deriveRunningStock fills StockQty with the cumulative sum of QtyIn-QtyOut,
// grouped by item and ordered chronologically. Rows sharing a date keep
// their original order, so the result is independent of how the source rows
// were shuffled apart from chronological order within an item. Undated rows
// sort before dated ones.
func deriveRunningStock(records []domain.MovementRecord) {
	byItem := make(map[string][]int)
	for i, rec := range records {
		byItem[rec.ItemID] = append(byItem[rec.ItemID], i)
	}

	for _, idxs := range byItem {
		order := make([]int, len(idxs))
		copy(order, idxs)
		sort.SliceStable(order, func(a, b int) bool {
			ra, rb := records[order[a]], records[order[b]]
			if ra.HasDate != rb.HasDate {
				return !ra.HasDate
			}
			if ra.HasDate && !ra.Date.Equal(rb.Date) {
				return ra.Date.Before(rb.Date)
			}
			return ra.RowIndex < rb.RowIndex
		})

		running := 0.0
		for _, i := range order {
			running += records[i].QtyIn - records[i].QtyOut
			records[i].StockQty = running
		}
	}
}

// NormalizeSales rewrites an auto-detected sales summary sheet.
func NormalizeSales(t *workbook.Table) ([]domain.SalesRecord, error) {
	cols, err := resolveFields(t, salesFieldSpecs)
	if err != nil {
		return nil, err
	}

	var records []domain.SalesRecord
	for i := range t.Rows {
		id := cellString(t, i, cols["item"])
		if id == "" {
			continue
		}
		rec := domain.SalesRecord{
			ItemID:      id,
			Description: cellString(t, i, cols["description"]),
		}
		rec.SalesQty, _ = cellNumber(t, i, cols["sales_qty"])
		rec.SalesValue = cellMoney(t, i, cols["sales_value"])
		records = append(records, rec)
	}
	return records, nil
}
