package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"deptevents/internal/domain"
	"deptevents/internal/repository/memory"
	"deptevents/internal/utils"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

var fixedNow = time.Date(2025, 11, 12, 9, 30, 0, 0, time.UTC)

// flakyKV wraps a memory store. failGet and failSet fail every call;
// failGetOnce fails only the next Get.
type flakyKV struct {
	*memory.KVStore
	failSet     error
	failGet     error
	failGetOnce error
}

func newFlakyKV() *flakyKV {
	return &flakyKV{KVStore: memory.NewKVStore()}
}

func (f *flakyKV) Get(ctx context.Context, key string) ([]byte, error) {
	if err := f.failGetOnce; err != nil {
		f.failGetOnce = nil
		return nil, err
	}
	if f.failGet != nil {
		return nil, f.failGet
	}
	return f.KVStore.Get(ctx, key)
}

func (f *flakyKV) Set(ctx context.Context, key string, value []byte) error {
	if f.failSet != nil {
		return f.failSet
	}
	return f.KVStore.Set(ctx, key, value)
}

func newTestStorage(kv domain.KVStore) *storageManager {
	s := NewStorageManager(kv, testLogger).(*storageManager)
	s.now = func() time.Time { return fixedNow }
	return s
}

// fakeEncoder encodes without touching image data.
type fakeEncoder struct {
	err   error
	calls int
}

func (f *fakeEncoder) EncodeImage(ctx context.Context, file domain.MediaFile) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return utils.FileToBase64(ctx, file)
}

func (f *fakeEncoder) EncodeVideo(ctx context.Context, file domain.MediaFile) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return utils.FileToBase64(ctx, file)
}

type fakeNotifier struct {
	mu       sync.Mutex
	created  []domain.Event
	tomorrow map[string][]domain.Event
	err      error
}

func (f *fakeNotifier) EventCreated(ctx context.Context, department string, event domain.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, event)
	return f.err
}

func (f *fakeNotifier) EventsTomorrow(ctx context.Context, department string, events []domain.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.tomorrow == nil {
		f.tomorrow = make(map[string][]domain.Event)
	}
	f.tomorrow[department] = events
	return f.err
}

var errBackend = errors.New("backend unavailable")

func sessionCtx(dept string) context.Context {
	return domain.WithSession(context.Background(), domain.NewSession(dept, fixedNow))
}
