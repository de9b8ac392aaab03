package recreate

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
)

type Recreator interface {
	Recreate(ctx context.Context) error
}

// RecreateDatabase drops the purchase order table, clears the derived labor
// tables and rebuilds the schema. Destructive, so it lives behind basic auth.
func RecreateDatabase(log *slog.Logger, store Recreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.RecreateDatabase"

		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
		defer cancel()

		if err := store.Recreate(ctx); err != nil {
			log.Error("recreate failed", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		log.Info("database recreated")

		render.JSON(w, r, map[string]interface{}{
			"success": true,
			"message": "Database recreated",
		})
	}
}
