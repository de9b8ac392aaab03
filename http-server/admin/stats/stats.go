package stats

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"ccf-analysis/internal/storage"
)

type StatsProvider interface {
	Stats(ctx context.Context) (*storage.DatabaseStats, error)
}

func GetDatabaseStats(log *slog.Logger, store StatsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.GetDatabaseStats"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		dbStats, err := store.Stats(ctx)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("failed to collect database stats")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, dbStats)
	}
}
