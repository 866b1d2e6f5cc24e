package api

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jacentio/items/item"
)

// Store is the persistence capability the service consumes.
type Store interface {
	// Put writes it under id. With ifNotExists it fails with item.ErrConflict
	// when id is already present.
	Put(ctx context.Context, id string, it item.Item, ifNotExists bool) error

	// Get returns the item for id or a *item.NotFoundError.
	Get(ctx context.Context, id string) (item.Item, error)

	// Replace overwrites an existing item or fails with *item.NotFoundError.
	Replace(ctx context.Context, id string, it item.Item) error

	// Delete removes an existing item or fails with *item.NotFoundError.
	Delete(ctx context.Context, id string) error

	// ScanAll yields every stored item once, in no particular order.
	ScanAll(ctx context.Context) iter.Seq2[item.Item, error]
}

// createAttempts bounds the id-collision retry on create.
const createAttempts = 2

// Service implements the item operations on top of a Store.
type Service struct {
	store  Store
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides the id generator used on create.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// NewService creates a Service backed by store.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store: store,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Create validates payload and stores a new item under a generated id.
// A collision on the generated id is retried once with a fresh id.
func (s *Service) Create(ctx context.Context, payload map[string]any) (item.Item, error) {
	in, err := item.Validate(payload, item.OpCreate)
	if err != nil {
		return item.Item{}, err
	}

	for attempt := 1; attempt <= createAttempts; attempt++ {
		it := item.New(s.newID(), in, s.now())
		err = s.store.Put(ctx, it.ID, it, true)
		if err == nil {
			return it, nil
		}
		if !errors.Is(err, item.ErrConflict) {
			return item.Item{}, err
		}
		s.logger.Warn("generated item id already exists",
			"id", it.ID,
			"attempt", attempt,
		)
	}
	return item.Item{}, fmt.Errorf("create item after %d attempts: %w", createAttempts, err)
}

// Get returns the item stored under id.
func (s *Service) Get(ctx context.Context, id string) (item.Item, error) {
	return s.store.Get(ctx, id)
}

// List returns every stored item. The result is never nil.
func (s *Service) List(ctx context.Context) ([]item.Item, error) {
	items := []item.Item{}
	for it, err := range s.store.ScanAll(ctx) {
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

// Update validates payload and replaces the name and description of the
// item stored under id, keeping its id and creation time. Concurrent
// updates are last-writer-wins.
func (s *Service) Update(ctx context.Context, id string, payload map[string]any) (item.Item, error) {
	in, err := item.Validate(payload, item.OpUpdate)
	if err != nil {
		return item.Item{}, err
	}

	current, err := s.store.Get(ctx, id)
	if err != nil {
		return item.Item{}, err
	}

	updated := current.Apply(in, s.now())
	if err := s.store.Replace(ctx, id, updated); err != nil {
		return item.Item{}, err
	}
	return updated, nil
}

// Delete removes the item stored under id.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}
