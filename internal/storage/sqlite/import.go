package sqlite

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"ccf-analysis/internal/storage"
)

const (
	standardBatchSize = 1000
	largeBatchSize    = 5000
	largeRowThreshold = 100_000

	// How many short-row diagnostics get logged individually before the
	// loader falls back to a single summary count.
	shortRowLogLimit = 5
)

// ImportTable loads one decoded table (CSV blob, header row first) into its
// destination. The whole call is one transaction: Replace clears the table and
// resets its id sequence first, Append inserts on top of what is there, and
// any store-level insert error rolls back everything, leaving the table
// exactly as it was.
//
// Rows shorter than the mapped header list are still attempted with the
// values they have (trailing short rows are routine in spreadsheet exports);
// only errors raised by the store itself abort the call. Returns the number
// of rows actually inserted.
func (s *Storage) ImportTable(ctx context.Context, table storage.Table, csvContent string, mode storage.ImportMode) (int64, error) {
	const op = "storage.sqlite.ImportTable"

	headers, rows, err := parseCSV(csvContent)
	if err != nil {
		return 0, fmt.Errorf("%s: parse csv for %s: %w", op, table.Name(), err)
	}
	if len(rows) == 0 {
		return 0, fmt.Errorf("%s: no usable rows for table %s", op, table.Name())
	}

	// Re-derive the column intersection here rather than trusting the
	// validator: validation is advisory, the loader is the gate.
	validHeaders, err := storage.MapColumns(table, headers)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	// Position of each mapped column in the decoded row.
	colIdx := make([]int, 0, len(validHeaders))
	for _, h := range validHeaders {
		for i, raw := range headers {
			if storage.NormalizeHeader(raw) == h {
				colIdx = append(colIdx, i)
				break
			}
		}
	}

	batchSize := standardBatchSize
	if len(rows) > largeRowThreshold {
		batchSize = largeBatchSize
	}

	s.log.Info("starting import",
		slog.String("table", table.Name()),
		slog.String("mode", mode.String()),
		slog.Int("rows", len(rows)),
		slog.Int("columns", len(validHeaders)),
		slog.Int("batch_size", batchSize),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	if mode == storage.ModeReplace {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table.Name()); err != nil {
			return 0, fmt.Errorf("%s: clear table %s: %w", op, table.Name(), err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM sqlite_sequence WHERE name = ?`, table.Name()); err != nil {
			return 0, fmt.Errorf("%s: reset sequence for %s: %w", op, table.Name(), err)
		}
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(validHeaders)), ",")
	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table.Name(), strings.Join(validHeaders, ","), placeholders)

	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return 0, fmt.Errorf("%s: prepare insert: %w", op, err)
	}
	defer stmt.Close()

	var inserted int64
	var shortRows int

	values := make([]any, len(colIdx))
	for start := 0; start < len(rows); start += batchSize {
		end := start + batchSize
		if end > len(rows) {
			end = len(rows)
		}

		for rowNum, row := range rows[start:end] {
			short := false
			for i, idx := range colIdx {
				if idx < len(row) {
					values[i] = storage.SanitizeValue(row[idx])
				} else {
					values[i] = nil
					short = true
				}
			}

			if short {
				shortRows++
				if shortRows <= shortRowLogLimit {
					s.log.Warn("short row, inserting present values",
						slog.String("table", table.Name()),
						slog.Int("row", start+rowNum+1),
						slog.Int("fields", len(row)),
						slog.Int("expected", len(colIdx)),
					)
				}
			}

			if _, err := stmt.ExecContext(ctx, values...); err != nil {
				return 0, fmt.Errorf("%s: insert row %d of %d into %s: %w",
					op, start+rowNum+1, len(rows), table.Name(), err)
			}
			inserted++
		}

		s.log.Debug("import progress",
			slog.String("table", table.Name()),
			slog.Int64("inserted", inserted),
			slog.Int("total", len(rows)),
		)
	}

	if shortRows > shortRowLogLimit {
		s.log.Warn("short rows during import",
			slog.String("table", table.Name()),
			slog.Int("count", shortRows),
		)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: commit: %w", op, err)
	}

	s.log.Info("import committed",
		slog.String("table", table.Name()),
		slog.Int64("inserted", inserted),
		slog.Int("short_rows", shortRows),
	)

	return inserted, nil
}

// parseCSV splits a decoded blob into its raw header row and data rows.
// Ragged rows are kept as-is; the loader decides what to do with them.
func parseCSV(content string) ([]string, [][]string, error) {
	r := csv.NewReader(strings.NewReader(content))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	headers, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil, fmt.Errorf("empty content")
		}
		return nil, nil, err
	}

	var rows [][]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}

		if isEmptyRow(record) {
			continue
		}
		rows = append(rows, record)
	}

	return headers, rows, nil
}

func isEmptyRow(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// RecordCount reports the current row count of a destination table.
func (s *Storage) RecordCount(ctx context.Context, table storage.Table) (int64, error) {
	const op = "storage.sqlite.RecordCount"

	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table.Name()).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}

// ClearTable removes all rows from a destination table and resets its id
// sequence, outside of any import.
func (s *Storage) ClearTable(ctx context.Context, table storage.Table) error {
	const op = "storage.sqlite.ClearTable"

	if _, err := s.db.ExecContext(ctx, `DELETE FROM `+table.Name()); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sqlite_sequence WHERE name = ?`, table.Name()); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
