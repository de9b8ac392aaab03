package analysis

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"ccf-analysis/internal/storage"
)

// AnalysisStorage is what the report service needs from the store. All of it
// is read-only; WAL mode makes the fan-out safe against a concurrent writer.
type AnalysisStorage interface {
	UniqueCounts(ctx context.Context) (*storage.UniqueCounts, error)
	SupplierAnalysis(ctx context.Context) ([]*storage.SupplierRollup, error)
	ShipToAnalysis(ctx context.Context) ([]*storage.ShipToRollup, error)
	ItemAnalysis(ctx context.Context) ([]*storage.ItemRollup, error)
	DataQuality(ctx context.Context) (*storage.DataQuality, error)
}

type Service struct {
	storage AnalysisStorage
}

func NewService(storage AnalysisStorage) *Service {
	return &Service{storage: storage}
}

// Report gathers the four reporting rollups concurrently.
func (s *Service) Report(ctx context.Context) (*storage.AnalysisReport, error) {
	const op = "service.analysis.Report"

	var (
		counts    *storage.UniqueCounts
		suppliers []*storage.SupplierRollup
		shipTos   []*storage.ShipToRollup
		items     []*storage.ItemRollup
		quality   *storage.DataQuality
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		counts, err = s.storage.UniqueCounts(gCtx)
		if err != nil {
			return fmt.Errorf("unique counts: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		suppliers, err = s.storage.SupplierAnalysis(gCtx)
		if err != nil {
			return fmt.Errorf("suppliers: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		shipTos, err = s.storage.ShipToAnalysis(gCtx)
		if err != nil {
			return fmt.Errorf("ship tos: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		items, err = s.storage.ItemAnalysis(gCtx)
		if err != nil {
			return fmt.Errorf("items: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		quality, err = s.storage.DataQuality(gCtx)
		if err != nil {
			return fmt.Errorf("data quality: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	report := &storage.AnalysisReport{
		UniqueCounts: *counts,
		DataQuality:  *quality,
	}
	for _, r := range suppliers {
		report.Suppliers = append(report.Suppliers, *r)
	}
	for _, r := range shipTos {
		report.ShipTos = append(report.ShipTos, *r)
	}
	for _, r := range items {
		report.Items = append(report.Items, *r)
	}

	return report, nil
}
