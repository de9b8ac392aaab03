package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"ccf-analysis/internal/storage"
)

type Analyzer interface {
	Report(ctx context.Context) (*storage.AnalysisReport, error)
}

func GetAnalysis(log *slog.Logger, analyzer Analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.analysis.GetAnalysis"

		// Rollups scan the whole table.
		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
		defer cancel()

		report, err := analyzer.Report(ctx)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("failed to build analysis report")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, report)
	}
}
