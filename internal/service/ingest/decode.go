package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"ccf-analysis/internal/storage"
)

// largeFileBytes is where CSV decoding switches to the coarse path. Both
// paths hand the loader the exact same logical content; only the bookkeeping
// differs, so very large files avoid a full line split.
const largeFileBytes = 150 * 1024 * 1024

// DecodeError marks content that could not be decoded at all. It is not
// transient: retrying the same bytes fails the same way, so callers should
// surface it, not retry.
type DecodeError struct {
	File string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.File, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// DecodeFile converts an uploaded file into one CSV blob per destination
// table, header row first. The filename extension selects the strategy:
// delimited text passes through untouched, spreadsheets get every sheet
// converted.
func DecodeFile(log *slog.Logger, name string, data []byte) (map[storage.Table]string, error) {
	const op = "service.ingest.DecodeFile"

	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return decodeCSV(log, name, data), nil
	case ".xlsx", ".xlsb":
		return decodeSpreadsheet(log, name, data)
	default:
		return nil, &DecodeError{File: name, Err: fmt.Errorf("%s: unsupported file extension", op)}
	}
}

// decodeCSV is pass-through: the loader owns parsing, so the blob is handed
// over byte-for-byte. Small files get an exact line count for the log; large
// files only count newlines to avoid materializing every line.
func decodeCSV(log *slog.Logger, name string, data []byte) map[storage.Table]string {
	content := string(data)

	if len(data) > largeFileBytes {
		lines := bytes.Count(data, []byte{'\n'}) + 1
		log.Info("decoded large csv", slog.String("file", name), slog.Int("approx_lines", lines))
	} else {
		lines := 0
		for _, line := range strings.Split(content, "\n") {
			if strings.TrimSpace(line) != "" {
				lines++
			}
		}
		log.Info("decoded csv", slog.String("file", name), slog.Int("lines", lines))
	}

	return map[storage.Table]string{storage.TablePurchaseOrders: content}
}

// decodeSpreadsheet converts every sheet of a workbook to the same CSV shape.
// Cells are read raw (no date/number format materialization), blank and
// hidden rows are dropped, and each sheet maps to a destination table by
// scoring its own name. If two sheets map to the same table the later one
// wins, matching single-table workbooks with a junk cover sheet.
func decodeSpreadsheet(log *slog.Logger, name string, data []byte) (map[storage.Table]string, error) {
	const op = "service.ingest.decodeSpreadsheet"

	raw := excelize.Options{RawCellValue: true}

	f, err := excelize.OpenReader(bytes.NewReader(data), raw)
	if err != nil {
		return nil, &DecodeError{File: name, Err: fmt.Errorf("%s: %w", op, err)}
	}
	defer f.Close()

	result := make(map[storage.Table]string)

	for _, sheet := range f.GetSheetList() {
		rows, err := f.Rows(sheet)
		if err != nil {
			return nil, &DecodeError{File: name, Err: fmt.Errorf("%s: sheet %s: %w", op, sheet, err)}
		}

		var sb strings.Builder
		w := csv.NewWriter(&sb)

		rowNum := 0
		written := 0
		for rows.Next() {
			rowNum++

			cells, err := rows.Columns(raw)
			if err != nil {
				rows.Close()
				return nil, &DecodeError{File: name, Err: fmt.Errorf("%s: sheet %s row %d: %w", op, sheet, rowNum, err)}
			}

			if blankRow(cells) {
				continue
			}
			if visible, err := f.GetRowVisible(sheet, rowNum); err == nil && !visible {
				continue
			}

			if err := w.Write(cells); err != nil {
				rows.Close()
				return nil, &DecodeError{File: name, Err: fmt.Errorf("%s: sheet %s row %d: %w", op, sheet, rowNum, err)}
			}
			written++
		}
		if err := rows.Close(); err != nil {
			return nil, &DecodeError{File: name, Err: fmt.Errorf("%s: sheet %s: %w", op, sheet, err)}
		}

		w.Flush()
		if err := w.Error(); err != nil {
			return nil, &DecodeError{File: name, Err: fmt.Errorf("%s: sheet %s: %w", op, sheet, err)}
		}

		table := mapSheetToTable(sheet)
		log.Info("decoded sheet",
			slog.String("file", name),
			slog.String("sheet", sheet),
			slog.String("table", table.Name()),
			slog.Int("rows", written),
		)
		result[table] = sb.String()
	}

	if len(result) == 0 {
		return nil, &DecodeError{File: name, Err: fmt.Errorf("%s: workbook has no sheets", op)}
	}

	return result, nil
}

func blankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// tableKeywords score a sheet name against each destination table.
var tableKeywords = map[storage.Table][]string{
	storage.TablePurchaseOrders: {"purchase", "order", "po", "data", "ccf", "analysis", "history"},
}

// mapSheetToTable picks the destination table whose keywords best match the
// sheet's own name. Ties and zero scores fall back to the order table, the
// only destination there is today.
func mapSheetToTable(sheetName string) storage.Table {
	normalized := strings.ToLower(sheetName)
	normalized = strings.NewReplacer("_", " ", "-", " ").Replace(normalized)

	best := storage.TablePurchaseOrders
	bestScore := 0

	for table, keywords := range tableKeywords {
		score := 0
		for _, kw := range keywords {
			if strings.Contains(normalized, kw) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			best = table
		}
	}

	return best
}
