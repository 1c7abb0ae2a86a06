package analytics

import (
	"math"
	"sort"
	"time"

	"invctl/pkg/contracts/domain"
)

// ReorderParams configures the reorder engine. All values travel explicitly;
// there is no ambient configuration state.
type ReorderParams struct {
	AsOf             time.Time
	DemandWindowDays int
	HorizonDays      int
	ZScore           float64
}

// OutboundObservation is one outbound movement considered for the demand
// model.
type OutboundObservation struct {
	ItemID string
	Date   time.Time
	Qty    float64
}

// BuildReorderPlan computes one ReorderRow per item in the master list.
// Items without movement history still appear, zero-filled on the demand
// side, with the suggested quantity driven by on-hand and on-order alone.
// Rows are sorted by item id.
func BuildReorderPlan(
	items []domain.Item,
	outbound []OutboundObservation,
	onHand map[string]float64,
	onOrder map[string]float64,
	p ReorderParams,
) ([]domain.ReorderRow, domain.ReorderSummary) {
	window := filterWindow(outbound, p.AsOf, p.DemandWindowDays)

	sums := make(map[string]float64)
	obs := make(map[string][]float64)
	for _, o := range window {
		sums[o.ItemID] += o.Qty
		obs[o.ItemID] = append(obs[o.ItemID], o.Qty)
	}

	rows := make([]domain.ReorderRow, 0, len(items))
	for _, item := range items {
		lead := item.LeadTimeDays
		if lead <= 0 {
			lead = domain.DefaultLeadTimeDays
		}

		demand := DemandPerDay(sums[item.ItemID], p.DemandWindowDays)
		std := SampleStdDev(obs[item.ItemID])
		safety := SafetyStock(p.ZScore, std, lead)
		rop := ReorderPoint(demand, lead, safety)

		oo := onOrder[item.ItemID]
		if oo < 0 {
			// received exceeds ordered in aggregate: nothing additional is
			// on order
			oo = 0
		}

		rows = append(rows, domain.ReorderRow{
			ItemID:       item.ItemID,
			SKU:          item.SKU,
			Name:         item.Name,
			SupplierID:   item.SupplierID,
			DemandPerDay: demand,
			DemandStd:    std,
			LeadTimeDays: lead,
			SafetyStock:  safety,
			ReorderPoint: rop,
			OnHand:       onHand[item.ItemID],
			OnOrder:      oo,
			SuggestedQty: SuggestedQty(demand, lead, float64(p.HorizonDays), safety, onHand[item.ItemID], oo),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].ItemID < rows[j].ItemID })

	summary := domain.ReorderSummary{ItemCount: len(rows)}
	for _, row := range rows {
		if row.SuggestedQty > 0 {
			summary.ItemsToOrder++
			summary.TotalSuggestedQty += row.SuggestedQty
		}
	}
	return rows, summary
}

// filterWindow keeps observations inside the trailing demand window ending
// at the as-of date. Undated observations never qualify.
func filterWindow(outbound []OutboundObservation, asOf time.Time, windowDays int) []OutboundObservation {
	cutoff := asOf.AddDate(0, 0, -windowDays)
	var kept []OutboundObservation
	for _, o := range outbound {
		if o.Date.IsZero() {
			continue
		}
		if !o.Date.Before(cutoff) && !o.Date.After(asOf) {
			kept = append(kept, o)
		}
	}
	return kept
}

// DemandPerDay is total outbound quantity over the window divided by the
// window length, floored at zero.
func DemandPerDay(windowSum float64, windowDays int) float64 {
	if windowDays < 1 {
		windowDays = 1
	}
	d := windowSum / float64(windowDays)
	if d < 0 {
		return 0
	}
	return d
}

// SampleStdDev is the n-1 standard deviation of per-movement outbound
// quantities, 0 with fewer than 2 observations.
func SampleStdDev(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(n)
	var ss float64
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(n-1))
}

// SafetyStock covers demand variability over the lead time at the given
// service-level multiplier.
func SafetyStock(z, demandStd, leadTimeDays float64) float64 {
	s := z * demandStd * math.Sqrt(leadTimeDays)
	if s < 0 {
		return 0
	}
	return s
}

// ReorderPoint is lead-time demand plus safety stock.
func ReorderPoint(demandPerDay, leadTimeDays, safetyStock float64) float64 {
	rop := demandPerDay*leadTimeDays + safetyStock
	if rop < 0 {
		return 0
	}
	return rop
}

// SuggestedQty is demand over lead time plus the fulfillment horizon, plus
// safety stock, net of stock on hand and on order, rounded and floored at
// zero. Never negative for any input.
func SuggestedQty(demandPerDay, leadTimeDays, horizonDays, safetyStock, onHand, onOrder float64) int64 {
	q := math.Round(demandPerDay*(leadTimeDays+horizonDays) + safetyStock - onHand - onOrder)
	if q < 0 {
		return 0
	}
	return int64(q)
}

// OutboundFromMoves extracts the outbound observations of combined-mode
// stock moves.
func OutboundFromMoves(moves []domain.StockMove) []OutboundObservation {
	var out []OutboundObservation
	for _, mv := range moves {
		if mv.Direction != domain.MoveOut || !mv.HasDate {
			continue
		}
		out = append(out, OutboundObservation{ItemID: mv.ItemID, Date: mv.MoveDate, Qty: mv.Qty})
	}
	return out
}

// OutboundFromMovements extracts the outbound observations of auto-detected
// movement records.
func OutboundFromMovements(records []domain.MovementRecord) []OutboundObservation {
	var out []OutboundObservation
	for _, rec := range records {
		if rec.QtyOut <= 0 || !rec.HasDate {
			continue
		}
		out = append(out, OutboundObservation{ItemID: rec.ItemID, Date: rec.Date, Qty: rec.QtyOut})
	}
	return out
}

// OnHandFromBalances sums current stock across locations per item.
func OnHandFromBalances(balances []domain.BalanceRow) map[string]float64 {
	onHand := make(map[string]float64)
	for _, bal := range balances {
		onHand[bal.ItemID] += bal.QtyOnHand
	}
	return onHand
}

// OnOrderFromPurchaseOrders sums ordered-minus-received per item. Individual
// lines may go negative; the aggregate is clamped later, at the item level.
func OnOrderFromPurchaseOrders(lines []domain.PurchaseOrderLine) map[string]float64 {
	onOrder := make(map[string]float64)
	for _, line := range lines {
		onOrder[line.ItemID] += line.QtyOrdered - line.QtyReceived
	}
	return onOrder
}

// ItemsFromSnapshots synthesizes a master item list for auto-detect mode,
// where no explicit item sheet exists: every item seen in the movement
// table, with the default lead time.
func ItemsFromSnapshots(snapshots []domain.ItemSnapshot) []domain.Item {
	items := make([]domain.Item, 0, len(snapshots))
	for _, snap := range snapshots {
		items = append(items, domain.Item{
			ItemID:       snap.ItemID,
			Name:         snap.Description,
			LeadTimeDays: domain.DefaultLeadTimeDays,
		})
	}
	return items
}

// OnHandFromSnapshots maps snapshot stock to the reorder engine's on-hand
// input.
func OnHandFromSnapshots(snapshots []domain.ItemSnapshot) map[string]float64 {
	onHand := make(map[string]float64, len(snapshots))
	for _, snap := range snapshots {
		onHand[snap.ItemID] = snap.StockAsOf
	}
	return onHand
}
