package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"invctl/pkg/contracts/domain"
)

// BuildReceivablesAging buckets every open invoice by days past due and
// pivots open amounts by customer. The pivot is driven by invoice presence:
// customers without invoices do not appear. Every invoice lands in exactly
// one bucket, so the pivot total conserves the source open amounts; an
// invoice with an unparseable due date counts as not yet past due rather
// than dropping its money. Rows are sorted by customer id.
func BuildReceivablesAging(
	invoices []domain.Invoice,
	customers []domain.Customer,
	asOf time.Time,
) ([]domain.ReceivableBucketRow, domain.ReceivablesSummary) {
	names := make(map[string]string, len(customers))
	for _, c := range customers {
		names[c.CustomerID] = c.Name
	}

	byCustomer := make(map[string]*domain.ReceivableBucketRow)
	var order []string
	for _, inv := range invoices {
		row, ok := byCustomer[inv.CustomerID]
		if !ok {
			row = &domain.ReceivableBucketRow{
				CustomerID: inv.CustomerID,
				Name:       names[inv.CustomerID],
				TotalOpen:  decimal.Zero,
			}
			for i := range row.Buckets {
				row.Buckets[i] = decimal.Zero
			}
			byCustomer[inv.CustomerID] = row
			order = append(order, inv.CustomerID)
		}

		bucket := BucketIndex(DaysPastDue(inv, asOf))
		row.Buckets[bucket] = row.Buckets[bucket].Add(inv.OpenAmount)
		row.TotalOpen = row.TotalOpen.Add(inv.OpenAmount)
	}
	sort.Strings(order)

	rows := make([]domain.ReceivableBucketRow, 0, len(order))
	summary := domain.ReceivablesSummary{
		TotalOpen:   decimal.Zero,
		Over120Open: decimal.Zero,
	}
	for _, id := range order {
		row := byCustomer[id]
		rows = append(rows, *row)
		summary.TotalOpen = summary.TotalOpen.Add(row.TotalOpen)
		summary.Over120Open = summary.Over120Open.Add(row.Buckets[4])
	}
	summary.CustomerCount = len(rows)
	return rows, summary
}

// DaysPastDue is whole days between due date and as-of date, clamped at 0
// for due dates in the future or missing.
func DaysPastDue(inv domain.Invoice, asOf time.Time) int {
	if !inv.HasDueDate {
		return 0
	}
	days := int(asOf.Sub(inv.DueDate).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
