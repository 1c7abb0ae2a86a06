package schema

import (
	apperrors "invctl/internal/errors"
	"invctl/internal/workbook"
)

// fieldSpec binds a canonical field to the ordered header aliases accepted
// for it. Alias order expresses preference, not exhaustive search. Required
// fields have no permitted default: failing to resolve one is a hard
// configuration failure for the table.
type fieldSpec struct {
	name     string
	aliases  []string
	required bool
}

// resolveFields maps every spec onto a header index via ResolveColumn.
// Unresolved optional fields map to -1 and are materialized with their
// default downstream. Unresolved required fields fail together, named.
func resolveFields(t *workbook.Table, specs []fieldSpec) (map[string]int, error) {
	cols := make(map[string]int, len(specs))
	var missing []string
	for _, spec := range specs {
		idx := ResolveColumn(t.Headers, spec.aliases)
		if idx == -1 && spec.required {
			missing = append(missing, spec.name)
			continue
		}
		cols[spec.name] = idx
	}
	if len(missing) > 0 {
		return nil, apperrors.NewMissingColumnsError(t.Name, missing)
	}
	return cols, nil
}

// Alias tables for the combined-workbook sheets. The canonical name itself
// is always the preferred candidate; the rest cover the header spellings
// differently authored workbooks actually use.
var (
	itemFieldSpecs = []fieldSpec{
		{name: "item_id", aliases: []string{"item_id", "item id", "itemid", "item", "sku"}, required: true},
		{name: "sku", aliases: []string{"sku", "sku code", "article", "article no"}},
		{name: "name", aliases: []string{"name", "item name", "description", "desc"}},
		{name: "category", aliases: []string{"category", "item category", "group", "item group"}},
		{name: "standard_cost", aliases: []string{"standard_cost", "standard cost", "std cost", "cost"}},
		{name: "lead_time_days", aliases: []string{"lead_time_days", "lead time days", "lead time", "leadtime"}},
		{name: "supplier_id", aliases: []string{"supplier_id", "supplier id", "supplier", "vendor", "vendor id"}},
	}

	balanceFieldSpecs = []fieldSpec{
		{name: "item_id", aliases: []string{"item_id", "item id", "itemid", "item", "sku"}, required: true},
		{name: "location", aliases: []string{"location", "warehouse", "site", "loc"}},
		{name: "qty_on_hand", aliases: []string{"qty_on_hand", "qty on hand", "on hand", "quantity on hand", "qty", "stock"}},
		{name: "unit_cost", aliases: []string{"unit_cost", "unit cost", "cost", "unit price"}},
		{name: "as_of_date", aliases: []string{"as_of_date", "as of date", "as of", "balance date", "date"}},
	}

	stockMoveFieldSpecs = []fieldSpec{
		{name: "item_id", aliases: []string{"item_id", "item id", "itemid", "item", "sku"}, required: true},
		{name: "direction", aliases: []string{"direction", "type", "move type", "movement type"}},
		{name: "qty", aliases: []string{"qty", "quantity", "amount", "units"}},
		{name: "move_date", aliases: []string{"move_date", "move date", "date", "movement date", "posting date"}},
	}

	purchaseOrderFieldSpecs = []fieldSpec{
		{name: "item_id", aliases: []string{"item_id", "item id", "itemid", "item", "sku"}, required: true},
		{name: "qty_ordered", aliases: []string{"qty_ordered", "qty ordered", "ordered", "order qty", "quantity ordered"}},
		{name: "qty_received", aliases: []string{"qty_received", "qty received", "received", "received qty", "quantity received"}},
		{name: "expected_receipt_date", aliases: []string{"expected_receipt_date", "expected receipt date", "expected receipt", "eta", "due date"}},
	}

	invoiceFieldSpecs = []fieldSpec{
		{name: "invoice_id", aliases: []string{"invoice_id", "invoice id", "invoice", "invoice no", "document"}},
		{name: "customer_id", aliases: []string{"customer_id", "customer id", "customer", "cust id", "account"}, required: true},
		{name: "due_date", aliases: []string{"due_date", "due date", "due", "maturity date"}},
		{name: "open_amount", aliases: []string{"open_amount", "open amount", "amount open", "outstanding", "balance", "amount"}},
	}

	customerFieldSpecs = []fieldSpec{
		{name: "customer_id", aliases: []string{"customer_id", "customer id", "customer", "cust id", "account"}, required: true},
		{name: "name", aliases: []string{"name", "customer name", "company", "company name"}},
	}
)

// Alias tables for the two auto-detected roles.
var (
	movementFieldSpecs = []fieldSpec{
		{name: "item", aliases: []string{"item", "item_id", "item id", "sku", "item code", "code", "material"}, required: true},
		{name: "date", aliases: []string{"date", "move_date", "move date", "movement date", "posting date", "doc date"}, required: true},
		{name: "qty_in", aliases: []string{"qty_in", "qty in", "quantity in", "in", "inbound", "receipt", "increase", "received"}},
		{name: "qty_out", aliases: []string{"qty_out", "qty out", "quantity out", "out", "outbound", "issue", "decrease", "issued"}},
		{name: "stock_qty", aliases: []string{"stock_qty", "stock qty", "stock quantity", "stock", "qty_on_hand", "qty on hand", "on hand", "balance"}},
		{name: "description", aliases: []string{"description", "item name", "name", "desc", "text"}},
	}

	salesFieldSpecs = []fieldSpec{
		{name: "item", aliases: []string{"item", "item_id", "item id", "sku", "item code", "code", "material"}, required: true},
		{name: "sales_qty", aliases: []string{"sales_qty", "sales qty", "qty sold", "sold qty", "quantity sold", "sales quantity", "qty"}, required: true},
		{name: "sales_value", aliases: []string{"sales_value", "sales value", "sales amount", "revenue", "turnover", "value"}, required: true},
		{name: "description", aliases: []string{"description", "item name", "name", "desc", "text"}},
	}
)

// Required-column alternatives for auto-detecting the two roles. Members are
// matched directly against the normalized header set; variants that only
// differ by whitespace are covered by the whitespace-insensitive comparator.
var (
	MovementColumnSets = []RequiredColumnSet{
		{"item", "date", "qty_in", "qty_out"},
		{"item", "date", "qty in", "qty out"},
		{"item", "date", "quantity in", "quantity out"},
		{"item", "date", "in", "out"},
		{"item_id", "move_date", "qty_in", "qty_out"},
		{"item", "date", "stock_qty"},
		{"item", "date", "stock quantity"},
		{"item", "date", "qty_on_hand"},
		{"item_id", "date", "stock"},
	}

	SalesColumnSets = []RequiredColumnSet{
		{"item", "sales_qty", "sales_value"},
		{"item", "qty sold", "sales value"},
		{"item_id", "sales_qty", "sales_value"},
		{"item", "sales quantity", "sales amount"},
		{"sku", "qty sold", "revenue"},
	}
)
