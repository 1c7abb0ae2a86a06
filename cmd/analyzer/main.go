package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"invctl/internal/config"
	"invctl/internal/exporter"
	"invctl/internal/infrastructure"
	"invctl/internal/services"
)

func main() {
	mode := flag.String("mode", "combined", "analysis mode: combined or autodetect")
	workbookPath := flag.String("workbook", "", "path to the workbook (combined: the six-sheet file; autodetect: the movement file)")
	salesPath := flag.String("sales", "", "optional second workbook holding sales data (autodetect mode only)")
	asOfArg := flag.String("as-of", time.Now().Format("2006-01-02"), "as-of date (YYYY-MM-DD)")
	horizon := flag.Int("horizon", 0, "reorder horizon in days (default from config)")
	zScore := flag.Float64("z", 0, "service-level Z score for safety stock (default from config)")
	window := flag.Int("window", 0, "demand window in days (default from config)")
	outDir := flag.String("out", "", "output directory for CSV reports (default from config)")
	flag.Parse()

	// Optional .env for local development; missing file is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}

	if *workbookPath == "" {
		logger.Error("Missing required -workbook flag")
		flag.Usage()
		os.Exit(2)
	}

	asOf, err := time.Parse("2006-01-02", *asOfArg)
	if err != nil {
		logger.Error("Invalid -as-of date, expected YYYY-MM-DD", "value", *asOfArg)
		os.Exit(2)
	}

	params := services.RunParams{
		AsOf:             asOf,
		HorizonDays:      cfg.Analysis.HorizonDays,
		ZScore:           cfg.Analysis.ZScore,
		DemandWindowDays: cfg.Analysis.DemandWindowDays,
	}
	if *horizon > 0 {
		params.HorizonDays = *horizon
	}
	if *zScore > 0 {
		params.ZScore = *zScore
	}
	if *window > 0 {
		params.DemandWindowDays = *window
	}

	reportDir := cfg.Output.Dir
	if *outDir != "" {
		reportDir = *outDir
	}
	if err := os.MkdirAll(reportDir, 0o755); err != nil {
		logger.Error("Failed to create output directory", "dir", reportDir, "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	service := services.NewAnalysisService(logger)

	var result *services.Result
	switch *mode {
	case string(services.ModeCombined):
		result, err = service.AnalyzeCombined(ctx, *workbookPath, params)
	case string(services.ModeAutoDetect):
		paths := []string{*workbookPath}
		if *salesPath != "" {
			paths = append(paths, *salesPath)
		}
		result, err = service.AnalyzeAutoDetect(ctx, paths, params)
	default:
		logger.Error("Unknown mode, expected combined or autodetect", "mode", *mode)
		os.Exit(2)
	}
	if err != nil {
		logger.Error("Analysis failed", "error", err)
		os.Exit(1)
	}

	if err := writeReports(result, reportDir); err != nil {
		logger.Error("Failed to write reports", "error", err)
		os.Exit(1)
	}

	logSummaries(logger, result, reportDir)
}

func writeReports(result *services.Result, dir string) error {
	exp := exporter.NewResultExporter(dir)

	if result.InventoryAging != nil {
		if err := exp.ExportInventoryAging(result.InventoryAging, "inventory_aging.csv"); err != nil {
			return err
		}
	}
	if result.Receivables != nil {
		if err := exp.ExportReceivablesAging(result.Receivables, "receivables_aging.csv"); err != nil {
			return err
		}
	}
	if result.Snapshot != nil {
		if err := exp.ExportSnapshot(result.Snapshot, "item_snapshot.csv"); err != nil {
			return err
		}
	}
	if result.ReorderPlan != nil {
		if err := exp.ExportReorderPlan(result.ReorderPlan, "reorder_plan.csv"); err != nil {
			return err
		}
	}
	return nil
}

func logSummaries(logger *slog.Logger, result *services.Result, dir string) {
	logger.Info("Analysis complete",
		slog.String("run_id", result.RunID),
		slog.String("mode", string(result.Mode)),
		slog.String("as_of", result.Params.AsOf.Format("2006-01-02")),
		slog.String("reports_dir", absOrRaw(dir)))

	if s := result.InventorySummary; s != nil {
		logger.Info("Inventory summary",
			slog.Int("rows", s.RowCount),
			slog.String("total_qty", fmt.Sprintf("%.2f", s.TotalQty)),
			slog.String("total_value", s.TotalValue.StringFixed(2)),
			slog.String("over_120_value", s.Over120Value.StringFixed(2)))
	}
	if s := result.ReorderSummary; s != nil {
		logger.Info("Reorder summary",
			slog.Int("items", s.ItemCount),
			slog.Int("items_to_order", s.ItemsToOrder),
			slog.Int64("total_suggested_qty", s.TotalSuggestedQty))
	}
	if s := result.ReceivablesSummary; s != nil {
		logger.Info("Receivables summary",
			slog.Int("customers", s.CustomerCount),
			slog.String("total_open", s.TotalOpen.StringFixed(2)),
			slog.String("over_120_open", s.Over120Open.StringFixed(2)))
	}
	if result.Snapshot != nil {
		logger.Info("Snapshot summary", slog.Int("items", len(result.Snapshot)))
	}
}

func absOrRaw(dir string) string {
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}
