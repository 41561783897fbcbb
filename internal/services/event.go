package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"deptevents/internal/domain"
	"deptevents/internal/utils"
)

type eventService struct {
	storage        domain.StorageManager
	encoder        domain.MediaEncoder
	notifier       domain.EventNotifier
	validate       *validator.Validate
	logger         *slog.Logger
	now            func() time.Time
	contextTimeout time.Duration
	// createMu makes id assignment and append one step.
	createMu sync.Mutex
}

// EventServiceOption customizes NewEventService.
type EventServiceOption func(*eventService)

// WithClock sets the wall clock used for tab classification and createdAt.
func WithClock(now func() time.Time) EventServiceOption {
	return func(s *eventService) { s.now = now }
}

// WithNotifier sets who is told about new events. By default nobody is.
func WithNotifier(n domain.EventNotifier) EventServiceOption {
	return func(s *eventService) { s.notifier = n }
}

func NewEventService(storage domain.StorageManager, encoder domain.MediaEncoder, logger *slog.Logger, timeout time.Duration, opts ...EventServiceOption) domain.EventService {
	s := &eventService{
		storage:        storage,
		encoder:        encoder,
		validate:       newEventValidator(),
		logger:         logger,
		now:            time.Now,
		contextTimeout: timeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func departmentFromContext(ctx context.Context) (string, error) {
	session, ok := domain.SessionFromContext(ctx)
	if !ok {
		return "", domain.ErrNoSession
	}
	return session.Department, nil
}

func (s *eventService) ListEvents(ctx context.Context, tab domain.Tab) ([]domain.Event, error) {
	dept, err := departmentFromContext(ctx)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	upcoming, past := utils.PartitionEvents(s.storage.GetDepartmentEvents(ctx, dept), s.now())
	if tab == domain.TabPast {
		return past, nil
	}
	return upcoming, nil
}

func (s *eventService) GetEvent(ctx context.Context, id int) (*domain.Event, error) {
	dept, err := departmentFromContext(ctx)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.find(ctx, dept, id)
}

func (s *eventService) find(ctx context.Context, dept string, id int) (*domain.Event, error) {
	for _, e := range s.storage.GetDepartmentEvents(ctx, dept) {
		if e.ID == id {
			event := e
			return &event, nil
		}
	}
	return nil, domain.ErrNotFound
}

// GenerateID returns the id the next event of the session's department gets.
// CreateEvent calls it while holding createMu.
func (s *eventService) GenerateID(ctx context.Context) (int, error) {
	dept, err := departmentFromContext(ctx)
	if err != nil {
		return 0, err
	}
	return utils.NextID(s.storage.GetDepartmentEvents(ctx, dept)), nil
}

func (s *eventService) CreateEvent(ctx context.Context, input domain.EventInput) (*domain.Event, error) {
	dept, err := departmentFromContext(ctx)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	input = normalizeInput(input)
	if err := validateEventInput(s.validate, input); err != nil {
		return nil, err
	}
	image, video, err := s.encodeMedia(ctx, input)
	if err != nil {
		return nil, err
	}

	s.createMu.Lock()
	id, err := s.GenerateID(ctx)
	if err != nil {
		s.createMu.Unlock()
		return nil, err
	}
	event := domain.NewEvent(id, input.Title, input.Description, input.Date, input.Time, input.Venue, s.now())
	event.Image = image
	event.Video = video
	err = s.storage.SaveEvent(ctx, dept, event)
	s.createMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	if s.notifier != nil {
		if err := s.notifier.EventCreated(ctx, dept, *event); err != nil {
			s.logger.Warn("event announcement failed", "department", dept, "event_id", event.ID, "error", err)
		}
	}
	return event, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, id int, input domain.EventInput) (*domain.Event, error) {
	dept, err := departmentFromContext(ctx)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.find(ctx, dept, id); err != nil {
		return nil, err
	}
	input = normalizeInput(input)
	if err := validateEventInput(s.validate, input); err != nil {
		return nil, err
	}
	image, video, err := s.encodeMedia(ctx, input)
	if err != nil {
		return nil, err
	}

	patch := domain.EventPatch{
		Title:       &input.Title,
		Description: &input.Description,
		Date:        &input.Date,
		Time:        &input.Time,
		Venue:       &input.Venue,
		Image:       image,
		Video:       video,
	}
	updated, err := s.storage.UpdateEvent(ctx, dept, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	if !updated {
		return nil, domain.ErrNotFound
	}
	return s.find(ctx, dept, id)
}

func (s *eventService) DeleteEvent(ctx context.Context, id int) error {
	dept, err := departmentFromContext(ctx)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.find(ctx, dept, id); err != nil {
		return err
	}
	if _, err := s.storage.DeleteEvent(ctx, dept, id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

// encodeMedia returns nil for a file that was not supplied.
func (s *eventService) encodeMedia(ctx context.Context, input domain.EventInput) (image, video *string, err error) {
	if input.Image != nil {
		uri, err := s.encoder.EncodeImage(ctx, *input.Image)
		if err != nil {
			return nil, nil, fmt.Errorf("encode image: %w", err)
		}
		image = &uri
	}
	if input.Video != nil {
		uri, err := s.encoder.EncodeVideo(ctx, *input.Video)
		if err != nil {
			return nil, nil, fmt.Errorf("encode video: %w", err)
		}
		video = &uri
	}
	return image, video, nil
}
