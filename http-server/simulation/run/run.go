package run

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"ccf-analysis/internal/service/simulation"
	"ccf-analysis/internal/storage"
)

type Runner interface {
	Run(ctx context.Context, vars storage.Variables) (simulation.Result, error)
}

type VariablesStorage interface {
	Variables(ctx context.Context) (storage.Variables, error)
}

// RunSimulation recomputes labor statistics for every distinct order date.
// The request body may carry variable overrides for this run only; persisted
// overrides are applied first.
func RunSimulation(log *slog.Logger, runner Runner, vars VariablesStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.simulation.RunSimulation"

		var overrides storage.VariableOverrides
		if err := json.NewDecoder(r.Body).Decode(&overrides); err != nil && !errors.Is(err, io.EOF) {
			log.Error("invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Minute)
		defer cancel()

		base, err := vars.Variables(ctx)
		if err != nil {
			log.Error("failed to load variables", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		result, err := runner.Run(ctx, overrides.Apply(base))
		if err != nil {
			log.Error("simulation failed", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		log.Info("simulation finished",
			slog.Int("processed_days", result.ProcessedDays),
			slog.Int64("total_records", result.TotalRecords),
		)

		render.JSON(w, r, map[string]interface{}{
			"success":       true,
			"processedDays": result.ProcessedDays,
			"totalRecords":  result.TotalRecords,
		})
	}
}
