package ingest

import (
	"bufio"
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"ccf-analysis/internal/storage"
)

const (
	// Sampled data lines for the CSV quality check. Keeps validation
	// sub-second no matter how big the file is.
	validateSampleLines = 1000

	// Fewer headers than this and the file cannot plausibly be an order
	// export; it is rejected rather than warned about.
	rejectHeaderCount = 10

	// Below the expected 37 columns but above the reject floor is a warning.
	warnHeaderCount = 30

	largeFileMB     = 100
	veryLargeFileMB = 200
)

// ValidationResult is the advisory pre-import verdict. Passing it is
// necessary but not sufficient: the loader re-derives the column
// intersection itself.
type ValidationResult struct {
	Valid        bool              `json:"isValid"`
	Errors       []string          `json:"errors"`
	Warnings     []string          `json:"warnings"`
	SheetNames   []string          `json:"sheetNames"`
	TableMapping map[string]string `json:"tableMapping"`
}

// ValidateFile answers accept/reject quickly without fully decoding the file.
// CSV gets a header and sampled-row check; spreadsheet structural validation
// is deferred to load time, and the warnings say so rather than claiming a
// validation that never ran.
func ValidateFile(name string, size int64, data []byte) ValidationResult {
	res := ValidationResult{
		Errors:       []string{},
		Warnings:     []string{},
		SheetNames:   []string{},
		TableMapping: map[string]string{},
	}

	sizeMB := float64(size) / (1024 * 1024)

	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		if sizeMB > veryLargeFileMB {
			res.Warnings = append(res.Warnings, fmt.Sprintf("Very large file detected (%.1fMB). Processing may take longer.", sizeMB))
		} else if sizeMB > largeFileMB {
			res.Warnings = append(res.Warnings, fmt.Sprintf("Large file detected (%.1fMB). Processing may take longer.", sizeMB))
		}

		validateCSV(data, &res)

		// A CSV has no sheets; the whole file is one table.
		if res.Valid {
			res.TableMapping[name] = storage.TablePurchaseOrders.Name()
		}

	case ".xlsx", ".xlsb":
		if sizeMB > largeFileMB {
			res.Warnings = append(res.Warnings, fmt.Sprintf("Large file detected (%.1fMB). Processing may take longer.", sizeMB))
		}

		// Opening a large workbook is nowhere near sub-second, so the
		// structural check happens at load time instead. Sheet names and
		// their table mapping are only known once the decoder runs.
		res.Warnings = append(res.Warnings, "Spreadsheet structural validation deferred to import time")

	default:
		res.Errors = append(res.Errors, "File must be a CSV or Excel (.xlsx/.xlsb) file")
	}

	res.Valid = len(res.Errors) == 0
	return res
}

func validateCSV(data []byte, res *ValidationResult) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)

	if !scanner.Scan() {
		res.Errors = append(res.Errors, "File is empty")
		return
	}

	// The naive comma split is deliberate: this is a field count estimate,
	// not a parse. The loader does the real CSV parsing.
	headers := strings.Split(scanner.Text(), ",")
	headerCount := len(headers)

	if headerCount < rejectHeaderCount {
		res.Errors = append(res.Errors, fmt.Sprintf(
			"CSV has only %d columns, far below the %d the order table expects",
			headerCount, len(storage.TablePurchaseOrders.Columns())))
		return
	}
	if headerCount < warnHeaderCount {
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"CSV has %d columns, expected around %d. Some data may be missing.",
			headerCount, len(storage.TablePurchaseOrders.Columns())))
	}

	sampled := 0
	short := 0
	for sampled < validateSampleLines && scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		sampled++
		if len(strings.Split(line, ",")) < headerCount {
			short++
		}
	}

	if short > 0 {
		pct := float64(short) / float64(sampled) * 100
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"Data quality check: %d of %d sampled records (%.1f%%) have incomplete data (fewer than %d fields).",
			short, sampled, pct, headerCount))
	}

	res.Warnings = append(res.Warnings, "CSV validation completed - ready for import")
}
