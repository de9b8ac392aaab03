package truncate

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
)

type RetentionTruncator interface {
	TruncateRetention(ctx context.Context, supplierPrefix string) (deleted, remaining int64, err error)
}

// TruncateRetention deletes purchase orders whose supplier does not match the
// configured retention prefix. The prefix comes from config, not the request.
func TruncateRetention(log *slog.Logger, store RetentionTruncator, supplierPrefix string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.TruncateRetention"

		ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
		defer cancel()

		deleted, remaining, err := store.TruncateRetention(ctx, supplierPrefix)
		if err != nil {
			log.Error("retention truncate failed", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		log.Info("retention truncate finished",
			slog.String("prefix", supplierPrefix),
			slog.Int64("deleted", deleted),
			slog.Int64("remaining", remaining),
		)

		render.JSON(w, r, map[string]interface{}{
			"success":   true,
			"prefix":    supplierPrefix,
			"deleted":   deleted,
			"remaining": remaining,
		})
	}
}
