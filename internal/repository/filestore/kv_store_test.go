package filestore

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"deptevents/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestKVStore_RoundTripAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "data.json")

	s, err := NewKVStore(path, testLogger)
	require.NoError(t, err)

	_, err = s.Get(ctx, "departments_data")
	require.ErrorIs(t, err, domain.ErrKeyNotFound)

	require.NoError(t, s.Set(ctx, "departments_data", []byte(`{"CS":[]}`)))
	require.NoError(t, s.Set(ctx, "current_session", []byte(`{"department":"CS"}`)))

	reopened, err := NewKVStore(path, testLogger)
	require.NoError(t, err)
	got, err := reopened.Get(ctx, "departments_data")
	require.NoError(t, err)
	assert.Equal(t, `{"CS":[]}`, string(got))

	require.NoError(t, reopened.Delete(ctx, "current_session"))
	_, err = s.Get(ctx, "current_session")
	require.ErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestKVStore_CorruptFileReadsAsEmpty(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s, err := NewKVStore(path, testLogger)
	require.NoError(t, err)
	_, err = s.Get(ctx, "departments_data")
	require.ErrorIs(t, err, domain.ErrKeyNotFound)

	backup, err := os.ReadFile(path + CorruptSuffix)
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(backup))

	require.NoError(t, s.Set(ctx, "current_session", []byte(`{"department":"CS"}`)))
	got, err := s.Get(ctx, "current_session")
	require.NoError(t, err)
	assert.Equal(t, `{"department":"CS"}`, string(got))
	require.NoError(t, s.Delete(ctx, "current_session"))
}

func TestNewKVStore_EmptyPath(t *testing.T) {
	_, err := NewKVStore("", testLogger)
	require.Error(t, err)
}
