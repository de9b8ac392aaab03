package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"ccf-analysis/internal/storage"
)

type LaborStatistics interface {
	LaborStatistics(ctx context.Context) ([]*storage.LaborStatistic, error)
	LaborSummaries(ctx context.Context) ([]*storage.LaborSummary, error)
}

func GetLaborStatistics(log *slog.Logger, stats LaborStatistics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.simulation.GetLaborStatistics"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		daily, err := stats.LaborStatistics(ctx)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("failed to load labor statistics")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		summaries, err := stats.LaborSummaries(ctx)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("failed to load labor summaries")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, map[string]interface{}{
			"statistics": daily,
			"summary":    summaries,
		})
	}
}
