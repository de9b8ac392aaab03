package clear

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
)

type LaborCleaner interface {
	ClearLaborStatistics(ctx context.Context) (int64, error)
}

func ClearLaborStatistics(log *slog.Logger, cleaner LaborCleaner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.simulation.ClearLaborStatistics"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		deleted, err := cleaner.ClearLaborStatistics(ctx)
		if err != nil {
			log.Error("failed to clear labor statistics", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		log.Info("labor statistics cleared", slog.Int64("deleted", deleted))

		render.JSON(w, r, map[string]interface{}{
			"success": true,
			"deleted": deleted,
		})
	}
}
