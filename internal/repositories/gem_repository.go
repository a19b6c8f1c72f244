package repositories

import (
	"context"
	"errors"
	"time"

	"gemstone/internal/models"
)

var (
	// ErrNotFound is returned when no gem matches the identifier.
	ErrNotFound = errors.New("gem not found")
	// ErrInvalidID is returned when an identifier cannot be parsed into the
	// store's native key.
	ErrInvalidID = errors.New("invalid gem id")
	// ErrUnavailable is returned by write operations when no database is
	// connected.
	ErrUnavailable = errors.New("database not available")
)

// queryTimeout bounds a single round trip to a live store.
const queryTimeout = 5 * time.Second

// GemRepository defines the interface for gem data access. One
// implementation is chosen at startup: a live store, or the read-only
// sample store when no database is reachable.
type GemRepository interface {
	// Available reports whether writes can be served.
	Available() bool
	// List returns one page of gems matching q, sorted as q requests.
	List(ctx context.Context, q models.GemQuery) ([]models.Gem, error)
	// Count returns how many gems match q's filters, ignoring pagination.
	Count(ctx context.Context, q models.GemQuery) (int64, error)
	GetByID(ctx context.Context, id string) (*models.Gem, error)
	// Create stores gem and sets its ID.
	Create(ctx context.Context, gem *models.Gem) error
	// CreateMany stores gems in one round trip and sets their IDs.
	CreateMany(ctx context.Context, gems []models.Gem) error
	// Update overwrites the mutable fields and UpdatedAt of the gem with
	// gem.ID. CreatedAt is never written.
	Update(ctx context.Context, gem *models.Gem) error
	Delete(ctx context.Context, id string) error
	// Info describes the store for diagnostics.
	Info(ctx context.Context) (*models.StoreInfo, error)
	Close(ctx context.Context) error
}
