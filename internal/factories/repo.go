package factories

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kosherspect/kosherspect-backend/pkg/db/models"
)

// Repository handles factory persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to factory operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new factory row.
func (r *Repository) Create(ctx context.Context, factory *models.Factory) error {
	if factory == nil {
		return fmt.Errorf("factory is required")
	}
	return r.db.WithContext(ctx).Create(factory).Error
}

// FindByID loads a factory by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Factory, error) {
	var factory models.Factory
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&factory).Error; err != nil {
		return nil, err
	}
	return &factory, nil
}

// List returns all factories ascending by name.
func (r *Repository) List(ctx context.Context) ([]models.Factory, error) {
	var factories []models.Factory
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&factories).Error; err != nil {
		return nil, err
	}
	return factories, nil
}

// Search returns factories whose name or address contains the query,
// case-insensitively. LOWER/LIKE keeps the predicate portable between
// postgres and the sqlite test database.
func (r *Repository) Search(ctx context.Context, query string) ([]models.Factory, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	var factories []models.Factory
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ? OR LOWER(address) LIKE ?", pattern, pattern).
		Order("name ASC").
		Find(&factories).Error; err != nil {
		return nil, err
	}
	return factories, nil
}

// Update saves the provided factory.
func (r *Repository) Update(ctx context.Context, factory *models.Factory) error {
	if factory == nil {
		return fmt.Errorf("factory is required")
	}
	return r.db.WithContext(ctx).Save(factory).Error
}

// Delete removes a factory row. gorm.ErrRecordNotFound is returned when no
// row matched.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Factory{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
