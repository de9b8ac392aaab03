package sqlite

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := New(filepath.Join(t.TempDir(), "test.db"), log)
	require.NoError(t, err)

	t.Cleanup(func() { st.Close() })

	return st
}
