package ship_to

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"ccf-analysis/internal/storage"
)

type ShipToDetails interface {
	ShipToDetails(ctx context.Context, shipTo string) ([]*storage.ShipToDetail, error)
}

func GetShipToDetails(log *slog.Logger, details ShipToDetails) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.analysis.GetShipToDetails"

		shipTo := r.URL.Query().Get("shipTo")
		if shipTo == "" {
			http.Error(w, "shipTo query parameter is required", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		rows, err := details.ShipToDetails(ctx, shipTo)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("failed to load ship-to details")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, map[string]interface{}{
			"shipTo":    shipTo,
			"locations": rows,
		})
	}
}
