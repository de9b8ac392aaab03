package save

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"ccf-analysis/internal/storage"
)

type VariablesSaver interface {
	SaveVariables(ctx context.Context, overrides storage.VariableOverrides) error
	Variables(ctx context.Context) (storage.Variables, error)
}

func SaveVariables(log *slog.Logger, saver VariablesSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.variables.SaveVariables"

		var overrides storage.VariableOverrides
		if err := json.NewDecoder(r.Body).Decode(&overrides); err != nil {
			log.Error("invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := saver.SaveVariables(ctx, overrides); err != nil {
			log.Error("failed to save variables", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		effective, err := saver.Variables(ctx)
		if err != nil {
			log.Error("failed to reload variables", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		log.Info("variables saved")

		render.JSON(w, r, map[string]interface{}{
			"success":   true,
			"variables": effective,
		})
	}
}
