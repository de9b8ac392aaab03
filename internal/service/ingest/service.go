package ingest

import (
	"context"
	"log/slog"
	"time"

	"ccf-analysis/internal/storage"
)

// ImportStorage is what the import service needs from the store.
type ImportStorage interface {
	ImportTable(ctx context.Context, table storage.Table, csvContent string, mode storage.ImportMode) (int64, error)
	RecordCount(ctx context.Context, table storage.Table) (int64, error)
	ClearTable(ctx context.Context, table storage.Table) error
}

// File is one uploaded file of a batch, already read into memory by the
// transport layer.
type File struct {
	Name string
	Size int64
	Data []byte
}

// FileResult is the per-file outcome of a batch import. RecordsImported is
// the table count after the file landed; it, not the input row count, is
// ground truth.
type FileResult struct {
	Success         bool     `json:"success"`
	FileName        string   `json:"fileName"`
	TableName       string   `json:"tableName"`
	RecordsImported int64    `json:"recordsImported"`
	Errors          []string `json:"errors"`
	DurationMs      int64    `json:"duration"`
}

type Service struct {
	log     *slog.Logger
	storage ImportStorage
}

func NewService(log *slog.Logger, storage ImportStorage) *Service {
	return &Service{log: log, storage: storage}
}

// Validate runs the fast advisory check on one file.
func (s *Service) Validate(file File) ValidationResult {
	return ValidateFile(file.Name, file.Size, file.Data)
}

// ImportFiles loads an ordered batch: the first file replaces the table
// contents, every later file appends. Overlapping content across files is
// double-counted on purpose; dedup is the caller's responsibility and is not
// performed here. One file failing does not stop the rest of the batch, but
// each individual file's load is all-or-nothing.
func (s *Service) ImportFiles(ctx context.Context, files []File) []FileResult {
	results := make([]FileResult, 0, len(files))

	for i, file := range files {
		start := time.Now()

		mode := storage.ModeAppend
		if i == 0 {
			mode = storage.ModeReplace
		}

		s.log.Info("processing file",
			slog.String("file", file.Name),
			slog.Int("index", i+1),
			slog.Int("of", len(files)),
			slog.String("mode", mode.String()),
		)

		tables, err := DecodeFile(s.log, file.Name, file.Data)
		if err != nil {
			s.log.Error("decode failed", slog.String("file", file.Name), slog.String("error", err.Error()))
			results = append(results, FileResult{
				FileName:   file.Name,
				TableName:  file.Name,
				Errors:     []string{err.Error()},
				DurationMs: time.Since(start).Milliseconds(),
			})
			continue
		}

		for table, csvContent := range tables {
			if _, err := s.storage.ImportTable(ctx, table, csvContent, mode); err != nil {
				s.log.Error("import failed",
					slog.String("file", file.Name),
					slog.String("table", table.Name()),
					slog.String("error", err.Error()),
				)
				results = append(results, FileResult{
					FileName:   file.Name,
					TableName:  table.Name(),
					Errors:     []string{err.Error()},
					DurationMs: time.Since(start).Milliseconds(),
				})
				continue
			}

			count, err := s.storage.RecordCount(ctx, table)
			if err != nil {
				count = 0
			}

			results = append(results, FileResult{
				Success:         true,
				FileName:        file.Name,
				TableName:       table.Name(),
				RecordsImported: count,
				Errors:          []string{},
				DurationMs:      time.Since(start).Milliseconds(),
			})
		}
	}

	return results
}

// ClearAll empties every destination table.
func (s *Service) ClearAll(ctx context.Context) error {
	return s.storage.ClearTable(ctx, storage.TablePurchaseOrders)
}
