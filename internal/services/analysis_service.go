package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"invctl/internal/analytics"
	apperrors "invctl/internal/errors"
	"invctl/internal/schema"
	"invctl/internal/workbook"
	"invctl/pkg/contracts/domain"
)

// Mode identifies which ingestion path produced a result.
type Mode string

const (
	ModeCombined   Mode = "combined"
	ModeAutoDetect Mode = "autodetect"
)

// RunParams are the explicit per-run analysis parameters. They travel
// through every computation entry point; there is no ambient configuration
// state.
type RunParams struct {
	AsOf             time.Time `json:"as_of"`
	HorizonDays      int       `json:"horizon_days" validate:"min=1,max=60"`
	ZScore           float64   `json:"z_score" validate:"min=0,max=5"`
	DemandWindowDays int       `json:"demand_window_days" validate:"min=7,max=365"`
}

// Result is one completed analysis run. Recomputed in full on every run; a
// run either completes with every section populated for its mode, or fails
// with no partial output.
type Result struct {
	RunID     string    `json:"run_id"`
	Mode      Mode      `json:"mode"`
	Params    RunParams `json:"params"`
	CreatedAt time.Time `json:"created_at"`

	// Combined mode
	InventoryAging     []domain.InventoryAgingRow   `json:"inventory_aging,omitempty"`
	InventorySummary   *domain.InventorySummary     `json:"inventory_summary,omitempty"`
	Receivables        []domain.ReceivableBucketRow `json:"receivables,omitempty"`
	ReceivablesSummary *domain.ReceivablesSummary   `json:"receivables_summary,omitempty"`

	// Auto-detect mode
	Snapshot []domain.MergedSnapshotRow `json:"snapshot,omitempty"`

	// Both modes
	ReorderPlan    []domain.ReorderRow    `json:"reorder_plan,omitempty"`
	ReorderSummary *domain.ReorderSummary `json:"reorder_summary,omitempty"`
}

var validate = validator.New()

// AnalysisService orchestrates the load-normalize-compute pipeline and keeps
// completed runs in memory for the result API. Runs are independent: no
// state is shared across invocations beyond the append-only run store.
type AnalysisService struct {
	logger *slog.Logger

	mu   sync.RWMutex
	runs map[string]*Result
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(logger *slog.Logger) *AnalysisService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalysisService{
		logger: logger.With(slog.String("component", "analysis_service")),
		runs:   make(map[string]*Result),
	}
}

// ValidateParams checks run parameters against their permitted bounds.
func ValidateParams(p RunParams) error {
	if p.AsOf.IsZero() {
		return apperrors.NewValidationError("as-of date is required")
	}
	if err := validate.Struct(p); err != nil {
		return apperrors.NewValidationError(fmt.Sprintf("invalid analysis parameters: %v", err))
	}
	return nil
}

// AnalyzeCombined runs the pipeline over a combined-mode workbook holding
// the six canonical sheets.
func (s *AnalysisService) AnalyzeCombined(ctx context.Context, path string, p RunParams) (*Result, error) {
	if err := ValidateParams(p); err != nil {
		return nil, err
	}

	start := time.Now()
	s.logger.InfoContext(ctx, "starting combined analysis",
		slog.String("workbook", path),
		slog.Time("as_of", p.AsOf))

	wb, err := workbook.Load(path)
	if err != nil {
		return nil, err
	}

	tables, err := schema.NormalizeCombined(wb)
	if err != nil {
		return nil, err
	}

	agingRows, agingSummary := analytics.BuildInventoryAging(tables.Balances, tables.Items, tables.Moves, p.AsOf)

	reorderRows, reorderSummary := analytics.BuildReorderPlan(
		tables.Items,
		analytics.OutboundFromMoves(tables.Moves),
		analytics.OnHandFromBalances(tables.Balances),
		analytics.OnOrderFromPurchaseOrders(tables.PurchaseOrders),
		analytics.ReorderParams{
			AsOf:             p.AsOf,
			DemandWindowDays: p.DemandWindowDays,
			HorizonDays:      p.HorizonDays,
			ZScore:           p.ZScore,
		},
	)

	arRows, arSummary := analytics.BuildReceivablesAging(tables.Invoices, tables.Customers, p.AsOf)

	result := &Result{
		RunID:              uuid.NewString(),
		Mode:               ModeCombined,
		Params:             p,
		CreatedAt:          time.Now().UTC(),
		InventoryAging:     agingRows,
		InventorySummary:   &agingSummary,
		ReorderPlan:        reorderRows,
		ReorderSummary:     &reorderSummary,
		Receivables:        arRows,
		ReceivablesSummary: &arSummary,
	}
	s.store(result)

	s.logger.InfoContext(ctx, "combined analysis complete",
		slog.String("run_id", result.RunID),
		slog.Int("aging_rows", len(agingRows)),
		slog.Int("reorder_rows", len(reorderRows)),
		slog.Int("receivable_rows", len(arRows)),
		slog.Duration("elapsed", time.Since(start)))

	return result, nil
}

// AnalyzeAutoDetect runs the pipeline over one or two arbitrarily-authored
// workbooks, locating the movement and sales-summary sheets heuristically.
func (s *AnalysisService) AnalyzeAutoDetect(ctx context.Context, paths []string, p RunParams) (*Result, error) {
	if err := ValidateParams(p); err != nil {
		return nil, err
	}
	if len(paths) == 0 || len(paths) > 2 {
		return nil, apperrors.NewValidationError("auto-detect mode takes one or two workbooks")
	}

	start := time.Now()
	s.logger.InfoContext(ctx, "starting auto-detect analysis",
		slog.Any("workbooks", paths),
		slog.Time("as_of", p.AsOf))

	// Workbook loads are independent; results land in fixed slots so the
	// merge order stays deterministic.
	wbs := make([]*workbook.Workbook, len(paths))
	g, _ := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			wb, err := workbook.Load(path)
			if err != nil {
				return err
			}
			wbs[i] = wb
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := workbook.Merge(wbs...)

	moveSheet, err := schema.SelectMovementSheet(merged)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "movement sheet selected",
		slog.String("sheet", moveSheet.Name),
		slog.Int("rows", moveSheet.RowCount()))

	movements, err := schema.NormalizeMovements(moveSheet)
	if err != nil {
		return nil, err
	}

	snapshots := analytics.BuildItemSnapshots(movements, p.AsOf)

	// The sales summary is optional input: without a qualifying sheet the
	// snapshot simply carries no sales columns.
	var sales []domain.SalesRecord
	if salesSheet, err := schema.SelectSalesSheet(merged); err == nil && salesSheet != moveSheet {
		sales, err = schema.NormalizeSales(salesSheet)
		if err != nil {
			return nil, err
		}
		s.logger.InfoContext(ctx, "sales sheet selected",
			slog.String("sheet", salesSheet.Name),
			slog.Int("rows", salesSheet.RowCount()))
	}

	reorderRows, reorderSummary := analytics.BuildReorderPlan(
		analytics.ItemsFromSnapshots(snapshots),
		analytics.OutboundFromMovements(movements),
		analytics.OnHandFromSnapshots(snapshots),
		nil,
		analytics.ReorderParams{
			AsOf:             p.AsOf,
			DemandWindowDays: p.DemandWindowDays,
			HorizonDays:      p.HorizonDays,
			ZScore:           p.ZScore,
		},
	)

	result := &Result{
		RunID:          uuid.NewString(),
		Mode:           ModeAutoDetect,
		Params:         p,
		CreatedAt:      time.Now().UTC(),
		Snapshot:       analytics.MergeSnapshots(snapshots, sales),
		ReorderPlan:    reorderRows,
		ReorderSummary: &reorderSummary,
	}
	s.store(result)

	s.logger.InfoContext(ctx, "auto-detect analysis complete",
		slog.String("run_id", result.RunID),
		slog.Int("snapshot_rows", len(result.Snapshot)),
		slog.Int("reorder_rows", len(reorderRows)),
		slog.Duration("elapsed", time.Since(start)))

	return result, nil
}

// GetRun returns a stored run by id.
func (s *AnalysisService) GetRun(id string) (*Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.runs[id]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("analysis run %s", id))
	}
	return r, nil
}

// RunInfo summarizes a stored run for listing.
type RunInfo struct {
	RunID     string    `json:"run_id"`
	Mode      Mode      `json:"mode"`
	AsOf      time.Time `json:"as_of"`
	CreatedAt time.Time `json:"created_at"`
}

// ListRuns returns stored runs, newest first.
func (s *AnalysisService) ListRuns() []RunInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	infos := make([]RunInfo, 0, len(s.runs))
	for _, r := range s.runs {
		infos = append(infos, RunInfo{
			RunID:     r.RunID,
			Mode:      r.Mode,
			AsOf:      r.Params.AsOf,
			CreatedAt: r.CreatedAt,
		})
	}
	sort.Slice(infos, func(i, j int) bool {
		if !infos[i].CreatedAt.Equal(infos[j].CreatedAt) {
			return infos[i].CreatedAt.After(infos[j].CreatedAt)
		}
		return infos[i].RunID < infos[j].RunID
	})
	return infos
}

func (s *AnalysisService) store(r *Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[r.RunID] = r
}
