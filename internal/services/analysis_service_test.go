package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "invctl/internal/errors"
)

func writeWorkbook(t *testing.T, name string, sheets []string, rows map[string][][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	for i, sheet := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", sheet))
		} else {
			_, err := f.NewSheet(sheet)
			require.NoError(t, err)
		}
		for j, row := range rows[sheet] {
			cell, err := excelize.CoordinatesToCellName(1, j+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(sheet, cell, &row))
		}
	}
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, f.SaveAs(path))
	return path
}

func combinedFixture(t *testing.T) string {
	return writeWorkbook(t, "combined.xlsx",
		[]string{"items", "inventory_balances", "stock_moves", "purchase_orders", "invoices_ar", "customers"},
		map[string][][]interface{}{
			"items": {
				{"item_id", "sku", "name", "category", "standard_cost", "lead_time_days", "supplier_id"},
				{"A1", "SKU-A1", "Widget", "widgets", "2.50", 10, "SUP1"},
				{"B2", "SKU-B2", "Gadget", "gadgets", "4.00", "", "SUP2"},
			},
			"inventory_balances": {
				{"item_id", "location", "qty_on_hand", "unit_cost", "as_of_date"},
				{"A1", "WH1", 5, "3.00", "2025-07-01"},
				{"B2", "WH1", 50, "", "2025-07-01"},
			},
			"stock_moves": {
				{"item_id", "direction", "qty", "move_date"},
				{"A1", "in", 20, "2025-06-01"},
				{"A1", "out", 5, "2025-06-10"},
				{"A1", "out", 5, "2025-06-20"},
			},
			"purchase_orders": {
				{"item_id", "qty_ordered", "qty_received", "expected_receipt_date"},
				{"A1", 10, 4, "2025-07-15"},
			},
			"invoices_ar": {
				{"invoice_id", "customer_id", "due_date", "open_amount"},
				{"INV-1", "C1", "2025-05-17", "200.00"},
				{"INV-2", "C1", "2025-06-28", "100.00"},
			},
			"customers": {
				{"customer_id", "name"},
				{"C1", "Acme"},
			},
		})
}

func params() RunParams {
	return RunParams{
		AsOf:             time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		HorizonDays:      7,
		ZScore:           1.65,
		DemandWindowDays: 60,
	}
}

func TestAnalyzeCombined(t *testing.T) {
	svc := NewAnalysisService(nil)
	path := combinedFixture(t)

	result, err := svc.AnalyzeCombined(context.Background(), path, params())
	require.NoError(t, err)

	assert.Equal(t, ModeCombined, result.Mode)
	assert.NotEmpty(t, result.RunID)

	require.Len(t, result.InventoryAging, 2)
	require.NotNil(t, result.InventorySummary)
	assert.Equal(t, 55.0, result.InventorySummary.TotalQty)

	require.Len(t, result.ReorderPlan, 2)
	a1 := result.ReorderPlan[0]
	assert.Equal(t, "A1", a1.ItemID)
	assert.InDelta(t, 10.0/60.0, a1.DemandPerDay, 1e-9)
	assert.Equal(t, 6.0, a1.OnOrder)

	require.Len(t, result.Receivables, 1)
	assert.True(t, result.Receivables[0].Buckets[1].GreaterThan(result.Receivables[0].Buckets[2]))

	// stored and retrievable
	got, err := svc.GetRun(result.RunID)
	require.NoError(t, err)
	assert.Equal(t, result.RunID, got.RunID)

	_, err = svc.GetRun("no-such-run")
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrTypeNotFound, appErr.Type)

	// autodetect sections stay empty in combined mode
	assert.Nil(t, result.Snapshot)
}

func TestAnalyzeCombinedMissingSheets(t *testing.T) {
	svc := NewAnalysisService(nil)
	path := writeWorkbook(t, "partial.xlsx", []string{"items"}, map[string][][]interface{}{
		"items": {{"item_id"}, {"A1"}},
	})

	_, err := svc.AnalyzeCombined(context.Background(), path, params())
	require.Error(t, err)
	assert.True(t, apperrors.IsConfigError(err))
}

func TestAnalyzeCombinedMissingFile(t *testing.T) {
	svc := NewAnalysisService(nil)
	_, err := svc.AnalyzeCombined(context.Background(), filepath.Join(t.TempDir(), "nope.xlsx"), params())
	require.Error(t, err)
	assert.False(t, apperrors.IsConfigError(err))
}

func TestAnalyzeAutoDetectSingleWorkbook(t *testing.T) {
	svc := NewAnalysisService(nil)
	path := writeWorkbook(t, "moves.xlsx", []string{"summary", "movements"}, map[string][][]interface{}{
		"summary": {
			{"note"},
			{"free text"},
		},
		"movements": {
			{"Item", "Date", "Qty In", "Qty Out"},
			{"A1", "2025-06-01", 10, 0},
			{"A1", "2025-06-10", 0, 4},
			{"B2", "2025-06-05", 7, 0},
		},
	})

	result, err := svc.AnalyzeAutoDetect(context.Background(), []string{path}, params())
	require.NoError(t, err)

	assert.Equal(t, ModeAutoDetect, result.Mode)
	require.Len(t, result.Snapshot, 2)
	assert.Equal(t, "A1", result.Snapshot[0].ItemID)
	assert.Equal(t, 6.0, result.Snapshot[0].StockAsOf)
	assert.False(t, result.Snapshot[0].HasSales)

	require.Len(t, result.ReorderPlan, 2)
	assert.Nil(t, result.InventoryAging)
	assert.Nil(t, result.Receivables)
}

func TestAnalyzeAutoDetectTwoWorkbooks(t *testing.T) {
	svc := NewAnalysisService(nil)
	moves := writeWorkbook(t, "moves.xlsx", []string{"movements"}, map[string][][]interface{}{
		"movements": {
			{"item", "date", "qty_in", "qty_out"},
			{"A1", "2025-06-01", 10, 0},
			{"A1", "2025-06-10", 0, 4},
		},
	})
	sales := writeWorkbook(t, "sales.xlsx", []string{"sales"}, map[string][][]interface{}{
		"sales": {
			{"item", "sales_qty", "sales_value"},
			{"A1", 120, "1500.00"},
		},
	})

	result, err := svc.AnalyzeAutoDetect(context.Background(), []string{moves, sales}, params())
	require.NoError(t, err)

	require.Len(t, result.Snapshot, 1)
	assert.True(t, result.Snapshot[0].HasSales)
	assert.Equal(t, 120.0, result.Snapshot[0].SalesQty)
}

func TestAnalyzeAutoDetectPathBounds(t *testing.T) {
	svc := NewAnalysisService(nil)

	_, err := svc.AnalyzeAutoDetect(context.Background(), nil, params())
	assert.Error(t, err)

	_, err = svc.AnalyzeAutoDetect(context.Background(), []string{"a", "b", "c"}, params())
	assert.Error(t, err)
}

func TestValidateParams(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*RunParams)
		wantErr bool
	}{
		{name: "valid", mutate: func(p *RunParams) {}, wantErr: false},
		{name: "zero as-of", mutate: func(p *RunParams) { p.AsOf = time.Time{} }, wantErr: true},
		{name: "horizon too small", mutate: func(p *RunParams) { p.HorizonDays = 0 }, wantErr: true},
		{name: "horizon too large", mutate: func(p *RunParams) { p.HorizonDays = 61 }, wantErr: true},
		{name: "negative z", mutate: func(p *RunParams) { p.ZScore = -1 }, wantErr: true},
		{name: "window too small", mutate: func(p *RunParams) { p.DemandWindowDays = 3 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := params()
			tt.mutate(&p)
			err := ValidateParams(p)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestListRunsNewestFirst(t *testing.T) {
	svc := NewAnalysisService(nil)
	path := combinedFixture(t)

	first, err := svc.AnalyzeCombined(context.Background(), path, params())
	require.NoError(t, err)
	second, err := svc.AnalyzeCombined(context.Background(), path, params())
	require.NoError(t, err)

	runs := svc.ListRuns()
	require.Len(t, runs, 2)
	ids := []string{runs[0].RunID, runs[1].RunID}
	assert.Contains(t, ids, first.RunID)
	assert.Contains(t, ids, second.RunID)
	assert.False(t, runs[0].CreatedAt.Before(runs[1].CreatedAt))
}
