package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gemstone/internal/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// gemRecord is the relational row for a gem. It does not embed gorm.Model:
// deletes are hard deletes and timestamps are set by the service. TypeKey
// and NameKey hold the Unicode-lowered type and name that filters compare
// against; SQL LOWER() only folds ASCII on SQLite.
type gemRecord struct {
	ID            string                      `gorm:"primaryKey;type:varchar(36)"`
	Name          string                      `gorm:"size:255;not null;index"`
	Type          string                      `gorm:"size:100;not null;index"`
	Weight        float64                     `gorm:"not null"`
	Price         float64                     `gorm:"not null"`
	Description   string                      `gorm:"type:text;not null"`
	Certification *string                     `gorm:"size:255"`
	Image         *string                     `gorm:"type:text"`
	Gallery       datatypes.JSONSlice[string] `gorm:"not null"`
	TypeKey       string                      `gorm:"size:100;not null;default:'';index"`
	NameKey       string                      `gorm:"size:255;not null;default:''"`
	CreatedAt     time.Time                   `gorm:"autoCreateTime:false;not null"`
	UpdatedAt     time.Time                   `gorm:"autoUpdateTime:false;not null"`
}

func (gemRecord) TableName() string { return "gems" }

// columns rewritten by Update; created_at is deliberately absent.
var gemUpdateColumns = []string{
	"name", "type", "weight", "price", "description",
	"certification", "image", "gallery", "type_key", "name_key", "updated_at",
}

func newGemRecord(g *models.Gem) gemRecord {
	gallery := g.Gallery
	if gallery == nil {
		gallery = []string{}
	}
	return gemRecord{
		ID:            g.ID,
		Name:          g.Name,
		Type:          g.Type,
		Weight:        g.Weight,
		Price:         g.Price,
		Description:   g.Description,
		Certification: g.Certification,
		Image:         g.Image,
		Gallery:       datatypes.JSONSlice[string](gallery),
		TypeKey:       strings.ToLower(g.Type),
		NameKey:       strings.ToLower(g.Name),
		CreatedAt:     g.CreatedAt.UTC(),
		UpdatedAt:     g.UpdatedAt.UTC(),
	}
}

func (rec gemRecord) toModel() models.Gem {
	gallery := []string(rec.Gallery)
	if gallery == nil {
		gallery = []string{}
	}
	return models.Gem{
		ID:            rec.ID,
		Name:          rec.Name,
		Type:          rec.Type,
		Weight:        rec.Weight,
		Price:         rec.Price,
		Description:   rec.Description,
		Certification: rec.Certification,
		Image:         rec.Image,
		Gallery:       gallery,
		CreatedAt:     rec.CreatedAt.UTC(),
		UpdatedAt:     rec.UpdatedAt.UTC(),
	}
}

// GORMGemRepository is a GORM implementation of GemRepository. Native
// identifiers are UUIDs.
type GORMGemRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewGORMGemRepository creates a new instance of GORMGemRepository. A
// non-positive timeout selects the default per-query timeout.
func NewGORMGemRepository(db *gorm.DB, timeout time.Duration) *GORMGemRepository {
	if timeout <= 0 {
		timeout = queryTimeout
	}
	return &GORMGemRepository{db: db, timeout: timeout}
}

// AutoMigrate creates or updates the gems table and fills filter keys of
// rows written before those columns existed.
func (r *GORMGemRepository) AutoMigrate() error {
	if err := r.db.AutoMigrate(&gemRecord{}); err != nil {
		return fmt.Errorf("failed to migrate gems table: %w", err)
	}
	err := r.db.Model(&gemRecord{}).
		Where("type_key = '' OR name_key = ''").
		Updates(map[string]any{
			"type_key": gorm.Expr("LOWER(type)"),
			"name_key": gorm.Expr("LOWER(name)"),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to backfill gem filter keys: %w", err)
	}
	return nil
}

func (r *GORMGemRepository) Available() bool { return true }

// parseGemUUID validates id as the store's native key.
func parseGemUUID(id string) (string, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("%q: %w", id, ErrInvalidID)
	}
	return u.String(), nil
}

// escapeLike escapes LIKE wildcards so user input matches literally. '!' is
// the escape character on every supported dialect.
func escapeLike(s string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(s)
}

// filtered applies the listing filter to a gems query.
func (r *GORMGemRepository) filtered(ctx context.Context, q models.GemQuery) *gorm.DB {
	tx := r.db.WithContext(ctx).Model(&gemRecord{})
	if q.Type != "" {
		tx = tx.Where("type_key = ?", strings.ToLower(q.Type))
	}
	if q.Search != "" {
		tx = tx.Where("name_key LIKE ? ESCAPE '!'", "%"+escapeLike(strings.ToLower(q.Search))+"%")
	}
	return tx
}

// List retrieves one page of gems; filtering, ordering and paging run in the
// database.
func (r *GORMGemRepository) List(ctx context.Context, q models.GemQuery) ([]models.Gem, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var records []gemRecord
	err := r.filtered(ctx, q).
		Order(clause.OrderByColumn{Column: clause.Column{Name: q.SortField()}, Desc: q.Descending()}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "created_at"}}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}}).
		Offset(q.Offset()).
		Limit(q.Limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list gems: %w", err)
	}

	gems := make([]models.Gem, len(records))
	for i, rec := range records {
		gems[i] = rec.toModel()
	}
	return gems, nil
}

// Count runs a count-only query over the listing filter.
func (r *GORMGemRepository) Count(ctx context.Context, q models.GemQuery) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var total int64
	if err := r.filtered(ctx, q).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count gems: %w", err)
	}
	return total, nil
}

// GetByID retrieves a single gem by its ID from the database.
func (r *GORMGemRepository) GetByID(ctx context.Context, id string) (*models.Gem, error) {
	key, err := parseGemUUID(id)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var rec gemRecord
	res := r.db.WithContext(ctx).Where("id = ?", key).Limit(1).Find(&rec)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to get gem by ID %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("gem with ID %s: %w", id, ErrNotFound)
	}
	gem := rec.toModel()
	return &gem, nil
}

// Create creates a new gem in the database.
func (r *GORMGemRepository) Create(ctx context.Context, gem *models.Gem) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rec := newGemRecord(gem)
	rec.ID = uuid.NewString()
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("failed to create gem: %w", err)
	}
	gem.ID = rec.ID
	return nil
}

// CreateMany inserts all gems with one statement.
func (r *GORMGemRepository) CreateMany(ctx context.Context, gems []models.Gem) error {
	if len(gems) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	records := make([]gemRecord, len(gems))
	for i := range gems {
		records[i] = newGemRecord(&gems[i])
		records[i].ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(&records).Error; err != nil {
		return fmt.Errorf("failed to create gems: %w", err)
	}
	for i := range gems {
		gems[i].ID = records[i].ID
	}
	return nil
}

// Update overwrites every mutable column of an existing gem.
func (r *GORMGemRepository) Update(ctx context.Context, gem *models.Gem) error {
	key, err := parseGemUUID(gem.ID)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rec := newGemRecord(gem)
	rec.ID = key
	// Select forces zero values (weight 0, nil image) to be written too.
	res := r.db.WithContext(ctx).Model(&gemRecord{}).
		Where("id = ?", key).
		Select(gemUpdateColumns).
		Updates(&rec)
	if res.Error != nil {
		return fmt.Errorf("failed to update gem: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("gem with ID %s: %w", gem.ID, ErrNotFound)
	}
	return nil
}

// Delete permanently removes a gem by its ID.
func (r *GORMGemRepository) Delete(ctx context.Context, id string) error {
	key, err := parseGemUUID(id)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res := r.db.WithContext(ctx).Where("id = ?", key).Delete(&gemRecord{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete gem: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("gem with ID %s: %w", id, ErrNotFound)
	}
	return nil
}

// Info reports the dialect, database name and tables.
func (r *GORMGemRepository) Info(ctx context.Context) (*models.StoreInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	migrator := r.db.WithContext(ctx).Migrator()
	info := &models.StoreInfo{
		Backend: r.db.Dialector.Name(),
		Name:    migrator.CurrentDatabase(),
	}
	tables, err := migrator.GetTables()
	if err != nil {
		return info, fmt.Errorf("failed to list tables: %w", err)
	}
	info.Collections = tables
	return info, nil
}

// Close releases the underlying connection pool.
func (r *GORMGemRepository) Close(context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
