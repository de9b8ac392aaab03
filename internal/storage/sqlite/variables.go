package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"ccf-analysis/internal/storage"
)

// SaveVariables persists the user's productivity variable overrides as a
// single-row preference.
func (s *Storage) SaveVariables(ctx context.Context, overrides storage.VariableOverrides) error {
	const op = "storage.sqlite.SaveVariables"

	payload, err := json.Marshal(overrides)
	if err != nil {
		return fmt.Errorf("%s: marshal: %w", op, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO analysis_variables (id, payload, updated_at)
		VALUES (1, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET payload = excluded.payload, updated_at = CURRENT_TIMESTAMP
	`, string(payload))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Variables returns the saved overrides applied onto the documented defaults.
// No saved preference means plain defaults.
func (s *Storage) Variables(ctx context.Context) (storage.Variables, error) {
	const op = "storage.sqlite.Variables"

	base := storage.DefaultVariables()

	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM analysis_variables WHERE id = 1`).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return base, nil
	}
	if err != nil {
		return base, fmt.Errorf("%s: %w", op, err)
	}

	var overrides storage.VariableOverrides
	if err := json.Unmarshal([]byte(payload), &overrides); err != nil {
		return base, fmt.Errorf("%s: unmarshal: %w", op, err)
	}

	return overrides.Apply(base), nil
}
