package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"ccf-analysis/internal/storage"
)

type Volumes interface {
	VolumeSummary(ctx context.Context) (*storage.VolumeSummary, error)
}

func GetTransactionVolumes(log *slog.Logger, volumes Volumes) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.volumes.GetTransactionVolumes"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		summary, err := volumes.VolumeSummary(ctx)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("failed to load volume summary")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, summary)
	}
}
