package schema

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apperrors "invctl/internal/errors"
	"invctl/internal/workbook"
	"invctl/pkg/contracts/domain"
)

// Sheet names required in combined-workbook mode. Lookup is
// case-insensitive and whitespace-trimmed; a missing sheet is a terminal
// configuration error, never a silent default.
var combinedSheetNames = []string{
	"items",
	"inventory_balances",
	"stock_moves",
	"purchase_orders",
	"invoices_ar",
	"customers",
}

// CombinedTables holds every normalized table of a combined-mode workbook.
type CombinedTables struct {
	Items          []domain.Item
	Balances       []domain.BalanceRow
	Moves          []domain.StockMove
	PurchaseOrders []domain.PurchaseOrderLine
	Invoices       []domain.Invoice
	Customers      []domain.Customer
}

// NormalizeCombined rewrites a combined-mode workbook into canonical typed
// tables. Missing sheets and unresolvable required columns halt the run;
// cell-level parse anomalies degrade to defaults.
func NormalizeCombined(wb *workbook.Workbook) (*CombinedTables, error) {
	var missing []string
	tables := make(map[string]*workbook.Table, len(combinedSheetNames))
	for _, name := range combinedSheetNames {
		t, ok := wb.Sheet(name)
		if !ok {
			missing = append(missing, name)
			continue
		}
		tables[name] = t
	}
	if len(missing) > 0 {
		return nil, apperrors.NewMissingSheetsError(missing)
	}

	items, err := NormalizeItems(tables["items"])
	if err != nil {
		return nil, err
	}
	balances, err := NormalizeBalances(tables["inventory_balances"])
	if err != nil {
		return nil, err
	}
	moves, err := NormalizeStockMoves(tables["stock_moves"])
	if err != nil {
		return nil, err
	}
	pos, err := NormalizePurchaseOrders(tables["purchase_orders"])
	if err != nil {
		return nil, err
	}
	invoices, err := NormalizeInvoices(tables["invoices_ar"])
	if err != nil {
		return nil, err
	}
	customers, err := NormalizeCustomers(tables["customers"])
	if err != nil {
		return nil, err
	}

	return &CombinedTables{
		Items:          items,
		Balances:       balances,
		Moves:          moves,
		PurchaseOrders: pos,
		Invoices:       invoices,
		Customers:      customers,
	}, nil
}

// NormalizeItems rewrites the item master sheet into canonical rows. Rows
// without an item id are dropped. Lead time defaults to 14 days when the
// column is absent or the cell is unparseable.
func NormalizeItems(t *workbook.Table) ([]domain.Item, error) {
	cols, err := resolveFields(t, itemFieldSpecs)
	if err != nil {
		return nil, err
	}

	var items []domain.Item
	for i := range t.Rows {
		id := cellString(t, i, cols["item_id"])
		if id == "" {
			continue
		}
		item := domain.Item{
			ItemID:       id,
			SKU:          cellString(t, i, cols["sku"]),
			Name:         cellString(t, i, cols["name"]),
			Category:     cellString(t, i, cols["category"]),
			StandardCost: cellMoney(t, i, cols["standard_cost"]),
			LeadTimeDays: domain.DefaultLeadTimeDays,
			SupplierID:   cellString(t, i, cols["supplier_id"]),
		}
		if lead, ok := cellNumber(t, i, cols["lead_time_days"]); ok && lead >= 0 {
			item.LeadTimeDays = lead
		}
		items = append(items, item)
	}
	return items, nil
}

// NormalizeBalances rewrites the inventory_balances sheet.
func NormalizeBalances(t *workbook.Table) ([]domain.BalanceRow, error) {
	cols, err := resolveFields(t, balanceFieldSpecs)
	if err != nil {
		return nil, err
	}

	var balances []domain.BalanceRow
	for i := range t.Rows {
		id := cellString(t, i, cols["item_id"])
		if id == "" {
			continue
		}
		row := domain.BalanceRow{
			ItemID:   id,
			Location: cellString(t, i, cols["location"]),
		}
		row.QtyOnHand, _ = cellNumber(t, i, cols["qty_on_hand"])
		row.UnitCost, row.HasUnitCost = cellMoneyOK(t, i, cols["unit_cost"])
		row.AsOfDate, row.HasAsOfDate = cellDate(t, i, cols["as_of_date"])
		balances = append(balances, row)
	}
	return balances, nil
}

// NormalizeStockMoves rewrites the stock_moves sheet. Direction values other
// than "in"/"out" are kept verbatim; the engines ignore them.
func NormalizeStockMoves(t *workbook.Table) ([]domain.StockMove, error) {
	cols, err := resolveFields(t, stockMoveFieldSpecs)
	if err != nil {
		return nil, err
	}

	var moves []domain.StockMove
	for i := range t.Rows {
		id := cellString(t, i, cols["item_id"])
		if id == "" {
			continue
		}
		mv := domain.StockMove{
			ItemID:    id,
			Direction: domain.MoveDirection(strings.ToLower(cellString(t, i, cols["direction"]))),
		}
		mv.Qty, _ = cellNumber(t, i, cols["qty"])
		mv.MoveDate, mv.HasDate = cellDate(t, i, cols["move_date"])
		moves = append(moves, mv)
	}
	return moves, nil
}

// NormalizePurchaseOrders rewrites the purchase_orders sheet.
func NormalizePurchaseOrders(t *workbook.Table) ([]domain.PurchaseOrderLine, error) {
	cols, err := resolveFields(t, purchaseOrderFieldSpecs)
	if err != nil {
		return nil, err
	}

	var lines []domain.PurchaseOrderLine
	for i := range t.Rows {
		id := cellString(t, i, cols["item_id"])
		if id == "" {
			continue
		}
		line := domain.PurchaseOrderLine{ItemID: id}
		line.QtyOrdered, _ = cellNumber(t, i, cols["qty_ordered"])
		line.QtyReceived, _ = cellNumber(t, i, cols["qty_received"])
		line.ExpectedReceipt, line.HasExpectedReceipt = cellDate(t, i, cols["expected_receipt_date"])
		lines = append(lines, line)
	}
	return lines, nil
}

// NormalizeInvoices rewrites the invoices_ar sheet.
func NormalizeInvoices(t *workbook.Table) ([]domain.Invoice, error) {
	cols, err := resolveFields(t, invoiceFieldSpecs)
	if err != nil {
		return nil, err
	}

	var invoices []domain.Invoice
	for i := range t.Rows {
		id := cellString(t, i, cols["customer_id"])
		if id == "" {
			continue
		}
		inv := domain.Invoice{
			InvoiceID:  cellString(t, i, cols["invoice_id"]),
			CustomerID: id,
		}
		inv.DueDate, inv.HasDueDate = cellDate(t, i, cols["due_date"])
		inv.OpenAmount = cellMoney(t, i, cols["open_amount"])
		invoices = append(invoices, inv)
	}
	return invoices, nil
}

// NormalizeCustomers rewrites the customers sheet.
func NormalizeCustomers(t *workbook.Table) ([]domain.Customer, error) {
	cols, err := resolveFields(t, customerFieldSpecs)
	if err != nil {
		return nil, err
	}

	var customers []domain.Customer
	for i := range t.Rows {
		id := cellString(t, i, cols["customer_id"])
		if id == "" {
			continue
		}
		customers = append(customers, domain.Customer{
			CustomerID: id,
			Name:       cellString(t, i, cols["name"]),
		})
	}
	return customers, nil
}

// Cell accessors tolerate col == -1 (unresolved optional column) so callers
// materialize defaults without branching.

func cellString(t *workbook.Table, row, col int) string {
	if col < 0 {
		return ""
	}
	return strings.TrimSpace(t.Cell(row, col))
}

func cellNumber(t *workbook.Table, row, col int) (float64, bool) {
	if col < 0 {
		return 0, false
	}
	return parseNumber(t.Cell(row, col))
}

func cellDate(t *workbook.Table, row, col int) (time.Time, bool) {
	if col < 0 {
		return time.Time{}, false
	}
	return parseDate(t.Cell(row, col))
}

func cellMoney(t *workbook.Table, row, col int) decimal.Decimal {
	d, _ := cellMoneyOK(t, row, col)
	return d
}

func cellMoneyOK(t *workbook.Table, row, col int) (decimal.Decimal, bool) {
	if col < 0 {
		return decimal.Zero, false
	}
	return parseMoney(t.Cell(row, col))
}
