package redisstore

import (
	"context"
	"os"
	"testing"

	"deptevents/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs only against a live server: REDIS_URL=redis://localhost:6379/15 go test ./...
func TestKVStore_Live(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	ctx := context.Background()
	s, err := Open(ctx, url, "deptevents-test:")
	require.NoError(t, err)
	defer s.Close()
	defer s.Delete(ctx, "current_session")

	require.NoError(t, s.Set(ctx, "current_session", []byte(`{"department":"ME"}`)))
	got, err := s.Get(ctx, "current_session")
	require.NoError(t, err)
	assert.Equal(t, `{"department":"ME"}`, string(got))

	require.NoError(t, s.Delete(ctx, "current_session"))
	_, err = s.Get(ctx, "current_session")
	require.ErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestOpen_Errors(t *testing.T) {
	_, err := Open(context.Background(), "", "")
	require.Error(t, err)

	_, err = Open(context.Background(), "not-a-url://", "")
	require.Error(t, err)
}
