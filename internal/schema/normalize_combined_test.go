package schema

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "invctl/internal/errors"
	"invctl/internal/workbook"
	"invctl/pkg/contracts/domain"
)

func table(name string, headers []string, rows ...[]string) *workbook.Table {
	return &workbook.Table{Name: name, Headers: headers, Rows: rows}
}

func TestNormalizeItems(t *testing.T) {
	t.Run("full rows", func(t *testing.T) {
		items, err := NormalizeItems(table("items",
			[]string{"item_id", "sku", "name", "category", "standard_cost", "lead_time_days", "supplier_id"},
			[]string{"A1", "SKU-A1", "Widget", "widgets", "2.50", "21", "SUP1"},
		))
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "A1", items[0].ItemID)
		assert.Equal(t, "Widget", items[0].Name)
		assert.True(t, items[0].StandardCost.Equal(decimal.RequireFromString("2.50")))
		assert.Equal(t, 21.0, items[0].LeadTimeDays)
		assert.Equal(t, "SUP1", items[0].SupplierID)
	})

	t.Run("lead time defaults only when absent", func(t *testing.T) {
		items, err := NormalizeItems(table("items",
			[]string{"item_id", "lead_time_days"},
			[]string{"A1", ""},
			[]string{"A2", "0"},
			[]string{"A3", "-5"},
			[]string{"A4", "not a number"},
		))
		require.NoError(t, err)
		require.Len(t, items, 4)
		assert.Equal(t, float64(domain.DefaultLeadTimeDays), items[0].LeadTimeDays)
		assert.Equal(t, 0.0, items[1].LeadTimeDays)
		assert.Equal(t, float64(domain.DefaultLeadTimeDays), items[2].LeadTimeDays)
		assert.Equal(t, float64(domain.DefaultLeadTimeDays), items[3].LeadTimeDays)
	})

	t.Run("rows without item id are dropped", func(t *testing.T) {
		items, err := NormalizeItems(table("items",
			[]string{"item_id", "name"},
			[]string{"", "orphan"},
			[]string{"A1", "kept"},
		))
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "A1", items[0].ItemID)
	})

	t.Run("missing required column fails", func(t *testing.T) {
		_, err := NormalizeItems(table("items", []string{"name", "category"}))
		require.Error(t, err)
		assert.True(t, apperrors.IsConfigError(err))
		assert.Contains(t, err.Error(), "item_id")
	})
}

func TestNormalizeBalances(t *testing.T) {
	balances, err := NormalizeBalances(table("inventory_balances",
		[]string{"item_id", "location", "qty_on_hand", "unit_cost", "as_of_date"},
		[]string{"A1", "WH1", "10", "3.25", "2025-06-30"},
		[]string{"A1", "WH2", "not-a-number", "", ""},
	))
	require.NoError(t, err)
	require.Len(t, balances, 2)

	assert.Equal(t, 10.0, balances[0].QtyOnHand)
	assert.True(t, balances[0].HasUnitCost)
	assert.True(t, balances[0].HasAsOfDate)
	assert.Equal(t, time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), balances[0].AsOfDate)

	// parse anomalies degrade to defaults instead of failing the run
	assert.Equal(t, 0.0, balances[1].QtyOnHand)
	assert.False(t, balances[1].HasUnitCost)
	assert.False(t, balances[1].HasAsOfDate)
}

func TestNormalizeStockMoves(t *testing.T) {
	moves, err := NormalizeStockMoves(table("stock_moves",
		[]string{"item_id", "direction", "qty", "move_date"},
		[]string{"A1", "IN", "5", "2025-06-01"},
		[]string{"A1", "out", "2", "2025-06-10"},
		[]string{"A1", "transfer", "1", "2025-06-11"},
	))
	require.NoError(t, err)
	require.Len(t, moves, 3)
	assert.Equal(t, domain.MoveIn, moves[0].Direction)
	assert.Equal(t, domain.MoveOut, moves[1].Direction)
	// unrecognized directions are kept verbatim for the engines to ignore
	assert.Equal(t, domain.MoveDirection("transfer"), moves[2].Direction)
}

func TestNormalizeInvoices(t *testing.T) {
	invoices, err := NormalizeInvoices(table("invoices_ar",
		[]string{"invoice_id", "customer_id", "due_date", "open_amount"},
		[]string{"INV-1", "C1", "2025-05-01", "100.00"},
		[]string{"INV-2", "C1", "??", "50.00"},
		[]string{"INV-3", "", "2025-05-01", "10.00"},
	))
	require.NoError(t, err)
	require.Len(t, invoices, 2)
	assert.True(t, invoices[0].HasDueDate)
	assert.False(t, invoices[1].HasDueDate)
	assert.True(t, invoices[1].OpenAmount.Equal(decimal.RequireFromString("50.00")))
}

func TestNormalizeCombined(t *testing.T) {
	t.Run("missing sheets reported together", func(t *testing.T) {
		wb := workbook.Merge(&workbook.Workbook{Sheets: []*workbook.Table{
			table("items", []string{"item_id"}),
			table("customers", []string{"customer_id"}),
		}})
		_, err := NormalizeCombined(wb)
		require.Error(t, err)
		assert.True(t, apperrors.IsConfigError(err))
		assert.Contains(t, err.Error(), "inventory_balances")
		assert.Contains(t, err.Error(), "stock_moves")
		assert.Contains(t, err.Error(), "purchase_orders")
		assert.Contains(t, err.Error(), "invoices_ar")
	})

	t.Run("sheet lookup is case insensitive", func(t *testing.T) {
		wb := workbook.Merge(&workbook.Workbook{Sheets: []*workbook.Table{
			table("Items", []string{"item_id"}, []string{"A1"}),
			table("Inventory_Balances", []string{"item_id"}, []string{"A1"}),
			table("STOCK_MOVES", []string{"item_id"}),
			table("purchase_orders", []string{"item_id"}),
			table("Invoices_AR", []string{"customer_id"}),
			table("customers", []string{"customer_id"}, []string{"C1"}),
		}})
		tables, err := NormalizeCombined(wb)
		require.NoError(t, err)
		assert.Len(t, tables.Items, 1)
		assert.Len(t, tables.Balances, 1)
		assert.Len(t, tables.Customers, 1)
	})
}
