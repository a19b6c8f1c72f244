package services

import (
	"context"
	"fmt"
	"time"

	"gemstone/internal/logger"
	"gemstone/internal/models"
	"gemstone/internal/repositories"
	"gemstone/pkg/rabbitmq"
)

const (
	EventGemCreated = "gem.created"
	EventGemUpdated = "gem.updated"
	EventGemDeleted = "gem.deleted"
	EventGemsSeeded = "gem.seeded"
)

// EventPublisher sends catalog change events. *rabbitmq.Client implements
// it.
type EventPublisher interface {
	PublishEvent(ev rabbitmq.Event) error
}

// GemService handles business logic related to gems. It is written once
// against GemRepository; whether a live database or the sample data sits
// behind it is decided at startup.
type GemService struct {
	repo   repositories.GemRepository
	events EventPublisher
	log    *logger.Logger
	now    func() time.Time
}

// GemServiceOption configures a GemService.
type GemServiceOption func(*GemService)

// WithEventPublisher publishes change events after successful writes.
func WithEventPublisher(p EventPublisher) GemServiceOption {
	return func(s *GemService) { s.events = p }
}

// WithLogger sets the service logger.
func WithLogger(l *logger.Logger) GemServiceOption {
	return func(s *GemService) { s.log = l }
}

// WithClock replaces the time source used for timestamps.
func WithClock(now func() time.Time) GemServiceOption {
	return func(s *GemService) { s.now = now }
}

// NewGemService creates a new GemService.
func NewGemService(repo repositories.GemRepository, opts ...GemServiceOption) *GemService {
	s := &GemService{
		repo: repo,
		log:  logger.Nop(),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DatabaseAvailable reports whether a live store backs the service.
func (s *GemService) DatabaseAvailable() bool {
	return s.repo.Available()
}

// timestamp is cut to milliseconds, the coarsest precision of the stores,
// so a record reads back with the same times it was returned with.
func (s *GemService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

// ListGems returns one page of gems and the number of gems matching the
// filters. The page and the total are two separate store round trips and
// are not consistent with each other under concurrent writes.
func (s *GemService) ListGems(ctx context.Context, q models.GemQuery) (*models.GemPage, error) {
	items, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list gems: %w", err)
	}
	total, err := s.repo.Count(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("count gems: %w", err)
	}
	if items == nil {
		items = []models.Gem{}
	}
	return &models.GemPage{Items: items, Total: total}, nil
}

// GetGem retrieves a single gem by its ID.
func (s *GemService) GetGem(ctx context.Context, id string) (*models.Gem, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateGem stores a validated payload as a new gem. Both timestamps get
// the same instant.
func (s *GemService) CreateGem(ctx context.Context, in *models.GemInput) (*models.Gem, error) {
	if !s.repo.Available() {
		return nil, repositories.ErrUnavailable
	}

	var gem models.Gem
	in.ApplyTo(&gem)
	now := s.timestamp()
	gem.CreatedAt = now
	gem.UpdatedAt = now

	if err := s.repo.Create(ctx, &gem); err != nil {
		return nil, fmt.Errorf("create gem: %w", err)
	}
	s.publish(rabbitmq.Event{Event: EventGemCreated, GemID: gem.ID, Name: gem.Name, OccurredAt: now})
	return &gem, nil
}

// UpdateGem replaces every mutable field of an existing gem and refreshes
// UpdatedAt. The stored record is re-read and returned.
func (s *GemService) UpdateGem(ctx context.Context, id string, in *models.GemInput) (*models.Gem, error) {
	if !s.repo.Available() {
		return nil, repositories.ErrUnavailable
	}

	gem := models.Gem{ID: id}
	in.ApplyTo(&gem)
	now := s.timestamp()
	gem.UpdatedAt = now

	if err := s.repo.Update(ctx, &gem); err != nil {
		return nil, fmt.Errorf("update gem: %w", err)
	}
	stored, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload gem: %w", err)
	}
	s.publish(rabbitmq.Event{Event: EventGemUpdated, GemID: stored.ID, Name: stored.Name, OccurredAt: now})
	return stored, nil
}

// DeleteGem permanently removes a gem.
func (s *GemService) DeleteGem(ctx context.Context, id string) error {
	if !s.repo.Available() {
		return repositories.ErrUnavailable
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete gem: %w", err)
	}
	s.publish(rabbitmq.Event{Event: EventGemDeleted, GemID: id, OccurredAt: s.timestamp()})
	return nil
}

// Seed loads the sample gems into an empty store. It is a no-op when the
// store already holds gems, and reports rather than fails when there is no
// database.
func (s *GemService) Seed(ctx context.Context) (*models.SeedResult, error) {
	if !s.repo.Available() {
		return &models.SeedResult{Seeded: false, Reason: "Database not available"}, nil
	}

	existing, err := s.repo.Count(ctx, models.GemQuery{})
	if err != nil {
		return nil, fmt.Errorf("count gems: %w", err)
	}
	if existing > 0 {
		return &models.SeedResult{Seeded: true, Existing: true}, nil
	}

	gems := models.SampleGems()
	now := s.timestamp()
	for i := range gems {
		gems[i].ID = "" // the store assigns fresh identifiers
		gems[i].CreatedAt = now
		gems[i].UpdatedAt = now
	}
	if err := s.repo.CreateMany(ctx, gems); err != nil {
		return nil, fmt.Errorf("seed gems: %w", err)
	}

	s.log.Info("seeded sample gems", "count", len(gems))
	s.publish(rabbitmq.Event{Event: EventGemsSeeded, Count: len(gems), OccurredAt: now})
	return &models.SeedResult{Seeded: true, Inserted: len(gems)}, nil
}

// StoreInfo describes the backing store for the connectivity check.
func (s *GemService) StoreInfo(ctx context.Context) (*models.StoreInfo, error) {
	return s.repo.Info(ctx)
}

// publish never fails the caller: a lost event is logged and dropped.
func (s *GemService) publish(ev rabbitmq.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishEvent(ev); err != nil {
		s.log.Warn("failed to publish gem event", "event", ev.Event, "gem_id", ev.GemID, "error", err)
	}
}
