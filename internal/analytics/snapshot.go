package analytics

import (
	"sort"
	"time"

	"invctl/pkg/contracts/domain"
)

// BuildItemSnapshots reduces normalized movement records into one row per
// item: the stock attached to the chronologically latest movement, the last
// movement and last inbound dates, and the aging bucket for days since
// inbound. Items with no inbound row ever get the unbounded sentinel, which
// always lands in the oldest bucket. Output is sorted by item id.
func BuildItemSnapshots(records []domain.MovementRecord, asOf time.Time) []domain.ItemSnapshot {
	byItem := make(map[string][]domain.MovementRecord)
	var order []string
	for _, rec := range records {
		if _, seen := byItem[rec.ItemID]; !seen {
			order = append(order, rec.ItemID)
		}
		byItem[rec.ItemID] = append(byItem[rec.ItemID], rec)
	}
	sort.Strings(order)

	snapshots := make([]domain.ItemSnapshot, 0, len(order))
	for _, id := range order {
		snapshots = append(snapshots, buildSnapshot(id, byItem[id], asOf))
	}
	return snapshots
}

func buildSnapshot(itemID string, recs []domain.MovementRecord, asOf time.Time) domain.ItemSnapshot {
	// Stable date-then-original-order sort; the last element is the
	// chronologically latest movement, with ties resolved to the last-seen
	// source row.
	sorted := make([]domain.MovementRecord, len(recs))
	copy(sorted, recs)
	sort.SliceStable(sorted, func(a, b int) bool {
		ra, rb := sorted[a], sorted[b]
		if ra.HasDate != rb.HasDate {
			return !ra.HasDate
		}
		if ra.HasDate && !ra.Date.Equal(rb.Date) {
			return ra.Date.Before(rb.Date)
		}
		return ra.RowIndex < rb.RowIndex
	})
	last := sorted[len(sorted)-1]

	snap := domain.ItemSnapshot{
		ItemID:       itemID,
		StockAsOf:    last.StockQty,
		LastMoveDate: last.Date,
		HasLastMove:  last.HasDate,
	}

	for _, rec := range sorted {
		if snap.Description == "" && rec.Description != "" {
			snap.Description = rec.Description
		}
		if rec.QtyIn > 0 && rec.HasDate {
			if !snap.HasInbound || rec.Date.After(snap.LastInboundDate) {
				snap.LastInboundDate = rec.Date
				snap.HasInbound = true
			}
		}
	}

	snap.DaysSinceInbound = DaysSinceInbound(snap.LastInboundDate, snap.HasInbound, asOf)
	snap.AgingBucket = InventoryBucket(snap.DaysSinceInbound)
	return snap
}

// DaysSinceInbound computes whole days between the last inbound date and the
// as-of date, clamped at 0. Absence of an inbound date is "never received"
// and maps to the sentinel, never to zero or a null-like epoch.
func DaysSinceInbound(lastInbound time.Time, hasInbound bool, asOf time.Time) int {
	if !hasInbound {
		return domain.AgingSentinelDays
	}
	days := int(asOf.Sub(lastInbound).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// MergeSnapshots left-joins item snapshots with the sales summary. Sales
// rows for unknown items are ignored; snapshot rows without sales keep
// zero-valued sales fields.
func MergeSnapshots(snapshots []domain.ItemSnapshot, sales []domain.SalesRecord) []domain.MergedSnapshotRow {
	salesByItem := make(map[string]domain.SalesRecord, len(sales))
	for _, s := range sales {
		salesByItem[s.ItemID] = s
	}

	merged := make([]domain.MergedSnapshotRow, 0, len(snapshots))
	for _, snap := range snapshots {
		row := domain.MergedSnapshotRow{ItemSnapshot: snap}
		if s, ok := salesByItem[snap.ItemID]; ok {
			row.SalesQty = s.SalesQty
			row.SalesValue = s.SalesValue
			row.HasSales = true
			if row.Description == "" {
				row.Description = s.Description
			}
		}
		merged = append(merged, row)
	}
	return merged
}
