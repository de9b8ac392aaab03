package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"ccf-analysis/internal/storage"
)

// DailyVolumes collapses the order table into one record per distinct date.
// Date equality is value equality on the stored text, never a parsed date.
// Quantities are coerced in Go so the zero-fallback on non-numeric values is
// observable per volume instead of disappearing inside a SQL CAST.
func (s *Storage) DailyVolumes(ctx context.Context) ([]*storage.DailyVolume, error) {
	const op = "storage.sqlite.DailyVolumes"

	rows, err := s.db.QueryContext(ctx, `
		SELECT PO_Date, PO_Quantity_Ordered
		FROM purchase_orders
		WHERE PO_Date IS NOT NULL AND PO_Date != ''
	`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	byDate := make(map[string]*storage.DailyVolume)
	for rows.Next() {
		var date string
		var qty sql.NullString

		if err := rows.Scan(&date, &qty); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}

		v := byDate[date]
		if v == nil {
			v = &storage.DailyVolume{Date: date}
			byDate[date] = v
		}

		v.TransactionLines++

		n, defaulted := storage.CoerceCount(qty.String)
		if !qty.Valid {
			n, defaulted = 0, true
		}
		v.QuantityPicked += n
		if defaulted {
			v.CoercedQuantityRows++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	volumes := make([]*storage.DailyVolume, 0, len(byDate))
	for _, v := range byDate {
		volumes = append(volumes, v)
	}
	// Ascending date order, for reproducible processing logs.
	sort.Slice(volumes, func(i, j int) bool { return volumes[i].Date < volumes[j].Date })

	return volumes, nil
}

// ClearLaborStatistics empties the simulation output table and its sequence.
func (s *Storage) ClearLaborStatistics(ctx context.Context) (int64, error) {
	const op = "storage.sqlite.ClearLaborStatistics"

	res, err := s.db.ExecContext(ctx, `DELETE FROM labor_statistics`)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sqlite_sequence WHERE name = 'labor_statistics'`); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return deleted, nil
}

func (s *Storage) InsertLaborStatistic(ctx context.Context, stat storage.LaborStatistic) error {
	const op = "storage.sqlite.InsertLaborStatistic"

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO labor_statistics
			(date, day_of_week, day_type, transaction_lines, quantity_picked,
			 bulk_points, lum_points, replen_points, receive_points, put_points,
			 bulkFTE, lumFTE, receiveFTE, inventoryFTE, supportFTE, rfidFTE, supervisorFTE, leaderFTE)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		stat.Date, stat.DayOfWeek, stat.DayType, stat.TransactionLines, stat.QuantityPicked,
		stat.BulkPoints, stat.LumPoints, stat.ReplenPoints, stat.ReceivePoints, stat.PutPoints,
		stat.BulkFTE, stat.LumFTE, stat.ReceiveFTE, stat.InventoryFTE, stat.SupportFTE,
		stat.RfidFTE, stat.SupervisorFTE, stat.LeaderFTE,
	)
	if err != nil {
		return fmt.Errorf("%s: date %s: %w", op, stat.Date, err)
	}

	return nil
}

func (s *Storage) LaborStatistics(ctx context.Context) ([]*storage.LaborStatistic, error) {
	const op = "storage.sqlite.LaborStatistics"

	rows, err := s.db.QueryContext(ctx, `
		SELECT date, day_of_week, day_type, transaction_lines, quantity_picked,
		       bulk_points, lum_points, replen_points, receive_points, put_points,
		       bulkFTE, lumFTE, receiveFTE, inventoryFTE, supportFTE, rfidFTE, supervisorFTE, leaderFTE
		FROM labor_statistics
		ORDER BY date
	`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var stats []*storage.LaborStatistic
	for rows.Next() {
		var st storage.LaborStatistic

		err := rows.Scan(&st.Date, &st.DayOfWeek, &st.DayType, &st.TransactionLines, &st.QuantityPicked,
			&st.BulkPoints, &st.LumPoints, &st.ReplenPoints, &st.ReceivePoints, &st.PutPoints,
			&st.BulkFTE, &st.LumFTE, &st.ReceiveFTE, &st.InventoryFTE, &st.SupportFTE,
			&st.RfidFTE, &st.SupervisorFTE, &st.LeaderFTE)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}

		stats = append(stats, &st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return stats, nil
}

// ReplaceLaborSummary atomically swaps the cohort summary: clear, then insert
// one row per cohort that has at least one day.
func (s *Storage) ReplaceLaborSummary(ctx context.Context, summaries []storage.LaborSummary) error {
	const op = "storage.sqlite.ReplaceLaborSummary"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM labor_analysis_summary`); err != nil {
		return fmt.Errorf("%s: clear: %w", op, err)
	}

	for _, sum := range summaries {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO labor_analysis_summary
				(day_type, days, avg_bulkFTE, avg_lumFTE, avg_receiveFTE, avg_inventoryFTE,
				 avg_supportFTE, avg_rfidFTE, avg_supervisorFTE, avg_leaderFTE, avg_totalFTE, stdev_totalFTE)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			sum.DayType, sum.Days, sum.AvgBulkFTE, sum.AvgLumFTE, sum.AvgReceiveFTE, sum.AvgInventoryFTE,
			sum.AvgSupportFTE, sum.AvgRfidFTE, sum.AvgSupervisorFTE, sum.AvgLeaderFTE,
			sum.AvgTotalFTE, sum.StdevTotalFTE,
		)
		if err != nil {
			return fmt.Errorf("%s: insert %s: %w", op, sum.DayType, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", op, err)
	}

	return nil
}

func (s *Storage) LaborSummaries(ctx context.Context) ([]*storage.LaborSummary, error) {
	const op = "storage.sqlite.LaborSummaries"

	rows, err := s.db.QueryContext(ctx, `
		SELECT day_type, days, avg_bulkFTE, avg_lumFTE, avg_receiveFTE, avg_inventoryFTE,
		       avg_supportFTE, avg_rfidFTE, avg_supervisorFTE, avg_leaderFTE, avg_totalFTE, stdev_totalFTE
		FROM labor_analysis_summary
		ORDER BY day_type DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var summaries []*storage.LaborSummary
	for rows.Next() {
		var sum storage.LaborSummary

		err := rows.Scan(&sum.DayType, &sum.Days, &sum.AvgBulkFTE, &sum.AvgLumFTE, &sum.AvgReceiveFTE,
			&sum.AvgInventoryFTE, &sum.AvgSupportFTE, &sum.AvgRfidFTE, &sum.AvgSupervisorFTE,
			&sum.AvgLeaderFTE, &sum.AvgTotalFTE, &sum.StdevTotalFTE)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}

		summaries = append(summaries, &sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return summaries, nil
}

// VolumeSummary aggregates labor statistics for the transaction volumes view.
func (s *Storage) VolumeSummary(ctx context.Context) (*storage.VolumeSummary, error) {
	const op = "storage.sqlite.VolumeSummary"

	sum := &storage.VolumeSummary{DayOfWeekAverages: map[string]float64{}}

	var start, end sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(transaction_lines), 0), COALESCE(SUM(quantity_picked), 0),
		       MIN(date), MAX(date)
		FROM labor_statistics
	`).Scan(&sum.TotalDays, &sum.TotalTransactionLines, &sum.TotalQuantityPicked, &start, &end)
	if err != nil {
		return nil, fmt.Errorf("%s: totals: %w", op, err)
	}
	sum.StartDate = start.String
	sum.EndDate = end.String

	if sum.TotalDays > 0 {
		sum.AverageLinesPerDay = round2(float64(sum.TotalTransactionLines) / float64(sum.TotalDays))
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT day_type, AVG(transaction_lines)
		FROM labor_statistics
		GROUP BY day_type
	`)
	if err != nil {
		return nil, fmt.Errorf("%s: day type averages: %w", op, err)
	}
	defer rows.Close()

	for rows.Next() {
		var dayType string
		var avg float64
		if err := rows.Scan(&dayType, &avg); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}

		switch dayType {
		case storage.DayTypeWeekday:
			sum.AverageLinesPerWeekday = round2(avg)
		case storage.DayTypeWeekend:
			sum.AverageLinesPerWeekend = round2(avg)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	dowRows, err := s.db.QueryContext(ctx, `
		SELECT day_of_week, AVG(transaction_lines)
		FROM labor_statistics
		GROUP BY day_of_week
	`)
	if err != nil {
		return nil, fmt.Errorf("%s: day of week averages: %w", op, err)
	}
	defer dowRows.Close()

	for dowRows.Next() {
		var day string
		var avg float64
		if err := dowRows.Scan(&day, &avg); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		sum.DayOfWeekAverages[day] = round2(avg)
	}
	if err := dowRows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return sum, nil
}
