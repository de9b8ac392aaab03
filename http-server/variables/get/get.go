package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"ccf-analysis/internal/storage"
)

type Variables interface {
	Variables(ctx context.Context) (storage.Variables, error)
}

// GetVariables returns the effective simulation variables: the defaults with
// any saved overrides applied.
func GetVariables(log *slog.Logger, vars Variables) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.variables.GetVariables"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		v, err := vars.Variables(ctx)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("failed to load variables")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, v)
	}
}
