package repositories

import (
	"context"
	"fmt"

	"gemstone/internal/models"
)

// SampleGemRepository is an in-memory, read-only implementation of
// GemRepository over the offline sample dataset.
type SampleGemRepository struct {
	gems []models.Gem
}

// NewSampleGemRepository creates a repository serving the built-in sample
// gems.
func NewSampleGemRepository() *SampleGemRepository {
	return NewSampleGemRepositoryWith(models.SampleGems())
}

// NewSampleGemRepositoryWith creates a repository serving the given gems in
// the given order.
func NewSampleGemRepositoryWith(gems []models.Gem) *SampleGemRepository {
	return &SampleGemRepository{gems: gems}
}

// Available always reports false: the sample data cannot be written.
func (r *SampleGemRepository) Available() bool { return false }

// List filters, sorts and slices the sample gems in memory.
func (r *SampleGemRepository) List(_ context.Context, q models.GemQuery) ([]models.Gem, error) {
	items, _ := q.Apply(r.gems)
	out := make([]models.Gem, len(items))
	for i, g := range items {
		out[i] = g.Clone()
	}
	return out, nil
}

// Count returns the number of sample gems matching q.
func (r *SampleGemRepository) Count(_ context.Context, q models.GemQuery) (int64, error) {
	var n int64
	for _, g := range r.gems {
		if q.Matches(g) {
			n++
		}
	}
	return n, nil
}

// GetByID scans the sample gems for the fixed string identifier.
func (r *SampleGemRepository) GetByID(_ context.Context, id string) (*models.Gem, error) {
	for _, g := range r.gems {
		if g.ID == id {
			c := g.Clone()
			return &c, nil
		}
	}
	return nil, fmt.Errorf("gem with ID %s: %w", id, ErrNotFound)
}

func (r *SampleGemRepository) Create(context.Context, *models.Gem) error {
	return ErrUnavailable
}

func (r *SampleGemRepository) CreateMany(context.Context, []models.Gem) error {
	return ErrUnavailable
}

func (r *SampleGemRepository) Update(context.Context, *models.Gem) error {
	return ErrUnavailable
}

func (r *SampleGemRepository) Delete(context.Context, string) error {
	return ErrUnavailable
}

func (r *SampleGemRepository) Info(context.Context) (*models.StoreInfo, error) {
	return &models.StoreInfo{Backend: "sample"}, nil
}

func (r *SampleGemRepository) Close(context.Context) error { return nil }
