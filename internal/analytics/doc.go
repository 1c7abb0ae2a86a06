// Package analytics implements the reconciliation and analytics engines:
// inventory snapshots, aging classification, reorder-point calculation, and
// the accounts-receivable aging pivot.
//
// Every engine is a pure, single-pass transformation: normalized input
// tables plus an explicit parameter record in, sorted result rows plus
// scalar summary metrics out. Nothing is mutated in place and no state
// survives a run, so repeated runs over the same inputs are byte-identical.
//
// Quantities are float64; money stays in shopspring decimal end to end so
// pivot totals conserve the source amounts exactly.
package analytics
