package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"deptevents/internal/domain"
)

// Record keys in the KVStore.
const (
	DepartmentsKey = "departments_data"
	SessionKey     = "current_session"
)

type departmentEvents map[string][]domain.Event

type storageManager struct {
	kv     domain.KVStore
	logger *slog.Logger
	now    func() time.Time
	mu     sync.Mutex
}

// NewStorageManager returns a StorageManager persisting its two records in kv.
func NewStorageManager(kv domain.KVStore, logger *slog.Logger) domain.StorageManager {
	return &storageManager{kv: kv, logger: logger, now: time.Now}
}

func (s *storageManager) InitializeDepartments(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.kv.Get(ctx, DepartmentsKey)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrKeyNotFound) {
		return fmt.Errorf("read departments: %w", err)
	}
	if err := s.writeDepartments(ctx, seedEvents(s.now())); err != nil {
		return fmt.Errorf("seed departments: %w", err)
	}
	s.logger.Info("seeded department events")
	return nil
}

func (s *storageManager) GetDepartmentEvents(ctx context.Context, department string) []domain.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.readDepartments(ctx)
	if err != nil {
		s.logger.Warn("read departments failed", "error", err)
	}
	events := data[department]
	if events == nil {
		return []domain.Event{}
	}
	return events
}

func (s *storageManager) SaveEvent(ctx context.Context, department string, event *domain.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.readDepartments(ctx)
	if err != nil {
		return fmt.Errorf("save event: %w", err)
	}
	data[department] = append(data[department], *event)
	if err := s.writeDepartments(ctx, data); err != nil {
		return fmt.Errorf("save event: %w", err)
	}
	return nil
}

func (s *storageManager) UpdateEvent(ctx context.Context, department string, id int, patch domain.EventPatch) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.readDepartments(ctx)
	if err != nil {
		return false, fmt.Errorf("update event: %w", err)
	}
	events, ok := data[department]
	if !ok {
		return false, nil
	}
	for i := range events {
		if events[i].ID != id {
			continue
		}
		events[i].Apply(patch)
		if err := s.writeDepartments(ctx, data); err != nil {
			return false, fmt.Errorf("update event: %w", err)
		}
		return true, nil
	}
	return false, nil
}

// DeleteEvent reports whether the department list existed, not whether an event was removed.
func (s *storageManager) DeleteEvent(ctx context.Context, department string, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.readDepartments(ctx)
	if err != nil {
		return false, fmt.Errorf("delete event: %w", err)
	}
	events, ok := data[department]
	if !ok {
		return false, nil
	}
	kept := make([]domain.Event, 0, len(events))
	for _, e := range events {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	data[department] = kept
	if err := s.writeDepartments(ctx, data); err != nil {
		return false, fmt.Errorf("delete event: %w", err)
	}
	return true, nil
}

func (s *storageManager) SetSession(ctx context.Context, department string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := domain.NewSession(department, s.now())
	raw, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	if err := s.kv.Set(ctx, SessionKey, raw); err != nil {
		return nil, fmt.Errorf("write session: %w", err)
	}
	return session, nil
}

func (s *storageManager) GetSession(ctx context.Context) *domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.kv.Get(ctx, SessionKey)
	if err != nil {
		if !errors.Is(err, domain.ErrKeyNotFound) {
			s.logger.Warn("read session failed", "error", err)
		}
		return nil
	}
	var session domain.Session
	if err := json.Unmarshal(raw, &session); err != nil || session.Department == "" {
		s.logger.Warn("stored session is corrupt, ignoring", "error", err)
		return nil
	}
	return &session
}

func (s *storageManager) ClearSession(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Delete(ctx, SessionKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// readDepartments treats a missing or corrupt record as empty. Backend failures
// are returned so callers never write a partial view back.
func (s *storageManager) readDepartments(ctx context.Context) (departmentEvents, error) {
	raw, err := s.kv.Get(ctx, DepartmentsKey)
	if errors.Is(err, domain.ErrKeyNotFound) {
		return departmentEvents{}, nil
	}
	if err != nil {
		return departmentEvents{}, fmt.Errorf("read departments: %w", err)
	}
	var data departmentEvents
	if err := json.Unmarshal(raw, &data); err != nil {
		s.logger.Warn("stored departments are corrupt, treating as empty", "error", err)
		return departmentEvents{}, nil
	}
	if data == nil {
		data = departmentEvents{}
	}
	return data, nil
}

func (s *storageManager) writeDepartments(ctx context.Context, data departmentEvents) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode departments: %w", err)
	}
	return s.kv.Set(ctx, DepartmentsKey, raw)
}
