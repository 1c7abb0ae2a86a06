package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"invctl/pkg/contracts/domain"
)

// BuildInventoryAging values and buckets every stock balance effective at
// the as-of date. Unit cost falls back from the balance row to the item's
// standard cost to zero. The bucket is driven by days since the item's last
// inbound stock move; items never received land in the oldest bucket via the
// sentinel. Rows are sorted by item id then location.
func BuildInventoryAging(
	balances []domain.BalanceRow,
	items []domain.Item,
	moves []domain.StockMove,
	asOf time.Time,
) ([]domain.InventoryAgingRow, domain.InventorySummary) {
	itemsByID := make(map[string]domain.Item, len(items))
	for _, it := range items {
		itemsByID[it.ItemID] = it
	}

	lastInbound := lastInboundDates(moves)

	var rows []domain.InventoryAgingRow
	for _, bal := range balances {
		// Only balance rows dated exactly at the run's as-of date describe
		// the stock being valued; undated rows never match.
		if !bal.HasAsOfDate || !bal.AsOfDate.Equal(asOf) {
			continue
		}

		item := itemsByID[bal.ItemID]

		unitCost := decimal.Zero
		switch {
		case bal.HasUnitCost:
			unitCost = bal.UnitCost
		case !item.StandardCost.IsZero():
			unitCost = item.StandardCost
		}

		inDate, hasIn := lastInbound[bal.ItemID]
		days := DaysSinceInbound(inDate, hasIn, asOf)

		rows = append(rows, domain.InventoryAgingRow{
			ItemID:           bal.ItemID,
			SKU:              item.SKU,
			Name:             item.Name,
			Category:         item.Category,
			Location:         bal.Location,
			QtyOnHand:        bal.QtyOnHand,
			UnitCost:         unitCost,
			Value:            decimal.NewFromFloat(bal.QtyOnHand).Mul(unitCost),
			DaysSinceInbound: days,
			AgingBucket:      InventoryBucket(days),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].ItemID != rows[j].ItemID {
			return rows[i].ItemID < rows[j].ItemID
		}
		return rows[i].Location < rows[j].Location
	})

	summary := domain.InventorySummary{
		TotalValue:   decimal.Zero,
		Over120Value: decimal.Zero,
		RowCount:     len(rows),
	}
	for _, row := range rows {
		summary.TotalQty += row.QtyOnHand
		summary.TotalValue = summary.TotalValue.Add(row.Value)
		if row.AgingBucket == InventoryBucketLabels[4] {
			summary.Over120Value = summary.Over120Value.Add(row.Value)
		}
	}
	return rows, summary
}

// lastInboundDates finds, per item, the maximum move date among inbound
// moves.
func lastInboundDates(moves []domain.StockMove) map[string]time.Time {
	latest := make(map[string]time.Time)
	for _, mv := range moves {
		if mv.Direction != domain.MoveIn || !mv.HasDate {
			continue
		}
		if cur, ok := latest[mv.ItemID]; !ok || mv.MoveDate.After(cur) {
			latest[mv.ItemID] = mv.MoveDate
		}
	}
	return latest
}
