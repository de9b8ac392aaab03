package simulation

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"ccf-analysis/internal/storage"
)

// SimulationStorage is what the engine needs from the store.
type SimulationStorage interface {
	DailyVolumes(ctx context.Context) ([]*storage.DailyVolume, error)
	ClearLaborStatistics(ctx context.Context) (int64, error)
	InsertLaborStatistic(ctx context.Context, stat storage.LaborStatistic) error
	ReplaceLaborSummary(ctx context.Context, summaries []storage.LaborSummary) error
}

type Engine struct {
	log     *slog.Logger
	storage SimulationStorage
}

func NewEngine(log *slog.Logger, storage SimulationStorage) *Engine {
	return &Engine{log: log, storage: storage}
}

// Result reports what a run produced. ProcessedDays can be below the number
// of input days: a day whose write fails is logged and skipped, not fatal.
type Result struct {
	ProcessedDays int   `json:"processedDays"`
	TotalRecords  int64 `json:"totalRecords"`
}

// Run replaces the labor statistics table with a fresh simulation over the
// current daily aggregates, then regenerates the cohort summary. Days are
// processed in ascending date order; the stored result does not depend on
// that order, the logs do.
func (e *Engine) Run(ctx context.Context, vars storage.Variables) (Result, error) {
	const op = "service.simulation.Run"

	volumes, err := e.storage.DailyVolumes(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := e.storage.ClearLaborStatistics(ctx); err != nil {
		return Result{}, fmt.Errorf("%s: %w", op, err)
	}

	e.log.Info("simulation started",
		slog.Int("days", len(volumes)),
		slog.Float64("target_productivity", vars.TargetStaffProductivityPerHour),
		slog.Float64("labor_hours_per_day", vars.LaborHoursPerDay),
	)

	var result Result
	stats := make([]storage.LaborStatistic, 0, len(volumes))

	for _, vol := range volumes {
		stat := SimulateDay(*vol, vars)

		if err := e.storage.InsertLaborStatistic(ctx, stat); err != nil {
			e.log.Error("skipping day, write failed",
				slog.String("date", vol.Date),
				slog.String("error", err.Error()),
			)
			continue
		}

		stats = append(stats, stat)
		result.ProcessedDays++
		result.TotalRecords += vol.TransactionLines
	}

	if err := e.storage.ReplaceLaborSummary(ctx, Summarize(stats)); err != nil {
		return result, fmt.Errorf("%s: %w", op, err)
	}

	e.log.Info("simulation completed",
		slog.Int("processed_days", result.ProcessedDays),
		slog.Int("input_days", len(volumes)),
		slog.Int64("total_records", result.TotalRecords),
	)

	return result, nil
}

// SimulateDay applies the labor model to one daily aggregate.
//
// Points per transaction for every category are targetProductivity divided by
// that category's hourly rate. The day's line count splits into bulk and LUM
// shares by the bulk ratio; replenishment, receiving and put-away ratios are
// independent multipliers against the same total line count, not a partition.
// Weekends model no receiving, put-away or RFID capture, and run a fixed
// leadership presence of one.
func SimulateDay(vol storage.DailyVolume, vars storage.Variables) storage.LaborStatistic {
	day, parsed := storage.ParseDay(vol.Date)

	// Unparseable dates classify as weekdays; the stored date text is kept
	// untouched either way.
	weekday := time.Monday
	if parsed {
		weekday = day.Weekday()
	}
	dayType := storage.DayType(weekday)
	weekend := dayType == storage.DayTypeWeekend

	lines := float64(vol.TransactionLines)

	bulkPointsPerTxn := safeDiv(vars.TargetStaffProductivityPerHour, vars.BulkPicksPerHour)
	lumPointsPerTxn := safeDiv(vars.TargetStaffProductivityPerHour, vars.LumPicksPerHour)
	replenPointsPerTxn := safeDiv(vars.TargetStaffProductivityPerHour, vars.LetDownLinesPerHour)
	receivePointsPerTxn := safeDiv(vars.TargetStaffProductivityPerHour, vars.ReceiptLinesProcessedPerHour)
	putPointsPerTxn := safeDiv(vars.TargetStaffProductivityPerHour, vars.PutAwayLinesPerHour)

	bulkLines := lines * vars.RatioOfBulkPicksToLumPicks / 100
	lumLines := lines * (100 - vars.RatioOfBulkPicksToLumPicks) / 100
	replenLines := lines * vars.RatioOfReplenishLinesToPicks / 100
	receiveLines := lines * vars.RatioOfReceiptLinesToPicks / 100
	putLines := lines * vars.RatioOfPutLinesToPicks / 100

	bulkPoints := bulkLines * bulkPointsPerTxn
	lumPoints := lumLines * lumPointsPerTxn
	replenPoints := replenLines * replenPointsPerTxn
	receivePoints := receiveLines * receivePointsPerTxn
	putPoints := putLines * putPointsPerTxn

	if weekend {
		receivePoints = 0
		putPoints = 0
	}

	// Shared by every per-category FTE. Zero or invalid means every
	// dependent FTE is zero, never an error or an infinity.
	denominator := vars.TargetStaffProductivityPerHour * vars.LaborHoursPerDay * vars.UtilizationPercentage / 100

	bulkFTE := safeDiv(bulkPoints, denominator)
	lumFTE := safeDiv(lumPoints, denominator)
	receiveFTE := safeDiv(receivePoints, denominator)
	inventoryFTE := safeDiv(replenPoints+putPoints, denominator)
	supportFTE := safeDiv(lines, vars.LinesPerSupportResource)

	rfidFTE := 0.0
	if !weekend {
		rfidPointsPerTxn := safeDiv(vars.TargetStaffProductivityPerHour, vars.RfidLinesPerHour)
		rfidFTE = safeDiv(vars.RfidLinesPerDay*rfidPointsPerTxn, denominator)
	}

	totalStaffFTE := bulkFTE + lumFTE + receiveFTE + inventoryFTE + supportFTE + rfidFTE
	supervisorFTE := safeDiv(totalStaffFTE, vars.StaffToSupervisorRatio)

	leaderFTE := vars.LeadershipAndAdministrationStaff
	if weekend {
		leaderFTE = 1
	}

	return storage.LaborStatistic{
		Date:             vol.Date,
		DayOfWeek:        weekday.String(),
		DayType:          dayType,
		TransactionLines: vol.TransactionLines,
		QuantityPicked:   vol.QuantityPicked,

		BulkPoints:    clamp2(bulkPoints),
		LumPoints:     clamp2(lumPoints),
		ReplenPoints:  clamp2(replenPoints),
		ReceivePoints: clamp2(receivePoints),
		PutPoints:     clamp2(putPoints),

		BulkFTE:       clamp2(bulkFTE),
		LumFTE:        clamp2(lumFTE),
		ReceiveFTE:    clamp2(receiveFTE),
		InventoryFTE:  clamp2(inventoryFTE),
		SupportFTE:    clamp2(supportFTE),
		RfidFTE:       clamp2(rfidFTE),
		SupervisorFTE: clamp2(supervisorFTE),
		LeaderFTE:     clamp2(leaderFTE),
	}
}

// safeDiv divides, mapping a zero or invalid denominator to zero.
func safeDiv(a, b float64) float64 {
	if b == 0 || math.IsNaN(b) || math.IsInf(b, 0) {
		return 0
	}
	return a / b
}

// clamp2 forces non-finite and negative values to zero and rounds to two
// decimal places, the precision everything in labor_statistics is stored at.
// Points and FTEs are staffing quantities; a degenerate parameter set (negative
// utilization, a pick ratio over 100) must never store a negative one.
func clamp2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return math.Round(v*100) / 100
}
