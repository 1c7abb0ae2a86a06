// Package exporter renders analysis result tables as CSV.
//
// This package contains two main components:
//
// CSVWriter: Core CSV writing functionality with support for headers and a
// UTF-8 BOM for Excel compatibility.
//
// ResultExporter: Writes the analysis result tables (inventory aging,
// reorder plan, receivables aging, item snapshot) as CSV reports rooted at
// an output directory. The table builders behind it are exported so the
// HTTP results API can stream identical output.
//
// Example usage:
//
//	exp := exporter.NewResultExporter("reports")
//	err := exp.ExportReorderPlan(result.ReorderPlan, "reorder_plan.csv")
package exporter
