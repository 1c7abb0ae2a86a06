package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invctl/pkg/contracts/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildItemSnapshots(t *testing.T) {
	asOf := day(2025, 7, 1)

	records := []domain.MovementRecord{
		{ItemID: "B2", Date: day(2025, 6, 20), HasDate: true, QtyIn: 3, StockQty: 3, RowIndex: 0},
		{ItemID: "A1", Description: "Widget", Date: day(2025, 6, 1), HasDate: true, QtyIn: 10, StockQty: 10, RowIndex: 1},
		{ItemID: "A1", Date: day(2025, 6, 10), HasDate: true, QtyOut: 4, StockQty: 6, RowIndex: 2},
	}

	snaps := BuildItemSnapshots(records, asOf)
	require.Len(t, snaps, 2)

	// sorted by item id
	assert.Equal(t, "A1", snaps[0].ItemID)
	assert.Equal(t, "B2", snaps[1].ItemID)

	a1 := snaps[0]
	assert.Equal(t, 6.0, a1.StockAsOf)
	assert.Equal(t, "Widget", a1.Description)
	assert.Equal(t, day(2025, 6, 10), a1.LastMoveDate)
	require.True(t, a1.HasInbound)
	assert.Equal(t, day(2025, 6, 1), a1.LastInboundDate)
	assert.Equal(t, 30, a1.DaysSinceInbound)
	assert.Equal(t, "0-30", a1.AgingBucket)
}

func TestBuildItemSnapshotsNoInbound(t *testing.T) {
	records := []domain.MovementRecord{
		{ItemID: "A1", Date: day(2025, 6, 10), HasDate: true, QtyOut: 2, StockQty: -2},
	}
	snaps := BuildItemSnapshots(records, day(2025, 7, 1))
	require.Len(t, snaps, 1)
	assert.False(t, snaps[0].HasInbound)
	assert.Equal(t, domain.AgingSentinelDays, snaps[0].DaysSinceInbound)
	assert.Equal(t, ">120", snaps[0].AgingBucket)
}

func TestBuildItemSnapshotsDateTieUsesLastRow(t *testing.T) {
	d := day(2025, 6, 15)
	records := []domain.MovementRecord{
		{ItemID: "A1", Date: d, HasDate: true, StockQty: 5, RowIndex: 0},
		{ItemID: "A1", Date: d, HasDate: true, StockQty: 9, RowIndex: 1},
	}
	snaps := BuildItemSnapshots(records, day(2025, 7, 1))
	require.Len(t, snaps, 1)
	assert.Equal(t, 9.0, snaps[0].StockAsOf)
}

func TestDaysSinceInbound(t *testing.T) {
	asOf := day(2025, 7, 1)

	assert.Equal(t, 0, DaysSinceInbound(asOf, true, asOf))
	assert.Equal(t, 31, DaysSinceInbound(day(2025, 5, 31), true, asOf))
	// future inbound clamps to 0
	assert.Equal(t, 0, DaysSinceInbound(day(2025, 7, 15), true, asOf))
	assert.Equal(t, domain.AgingSentinelDays, DaysSinceInbound(time.Time{}, false, asOf))
}

func TestMergeSnapshots(t *testing.T) {
	snaps := []domain.ItemSnapshot{
		{ItemID: "A1", StockAsOf: 6},
		{ItemID: "B2", StockAsOf: 3, Description: "Gadget"},
	}
	sales := []domain.SalesRecord{
		{ItemID: "A1", Description: "Widget", SalesQty: 120, SalesValue: decimal.RequireFromString("1500")},
		{ItemID: "ZZ", SalesQty: 1, SalesValue: decimal.RequireFromString("5")},
	}

	merged := MergeSnapshots(snaps, sales)
	require.Len(t, merged, 2)

	assert.True(t, merged[0].HasSales)
	assert.Equal(t, 120.0, merged[0].SalesQty)
	// description falls back to the sales sheet when the snapshot has none
	assert.Equal(t, "Widget", merged[0].Description)

	assert.False(t, merged[1].HasSales)
	assert.Equal(t, 0.0, merged[1].SalesQty)
	assert.Equal(t, "Gadget", merged[1].Description)
}
