package inspections

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kosherspect/kosherspect-backend/pkg/db/models"
	"github.com/kosherspect/kosherspect-backend/pkg/enums"
)

// Repository handles inspection persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to inspection operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new inspection row.
func (r *Repository) Create(ctx context.Context, inspection *models.Inspection) error {
	if inspection == nil {
		return fmt.Errorf("inspection is required")
	}
	return r.db.WithContext(ctx).Create(inspection).Error
}

// FindByID loads an inspection by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Inspection, error) {
	var inspection models.Inspection
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&inspection).Error; err != nil {
		return nil, err
	}
	return &inspection, nil
}

// List returns all inspections, newest first.
func (r *Repository) List(ctx context.Context) ([]models.Inspection, error) {
	var inspections []models.Inspection
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&inspections).Error; err != nil {
		return nil, err
	}
	return inspections, nil
}

// Search returns inspections whose factory name, inspector or address
// contains the query, case-insensitively.
func (r *Repository) Search(ctx context.Context, query string) ([]models.Inspection, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	var inspections []models.Inspection
	if err := r.db.WithContext(ctx).
		Where("LOWER(factory_name) LIKE ? OR LOWER(inspector) LIKE ? OR LOWER(factory_address) LIKE ?",
			pattern, pattern, pattern).
		Order("created_at DESC").
		Find(&inspections).Error; err != nil {
		return nil, err
	}
	return inspections, nil
}

// FilterParams narrows a listing; absent fields leave that dimension
// unbounded. Date bounds are inclusive and compare the inspection's
// gregorian_date (ISO strings order lexicographically).
type FilterParams struct {
	Status    *enums.InspectionStatus
	DateFrom  *string
	DateTo    *string
	Inspector *string
}

// Filter returns inspections matching every provided dimension, newest
// first.
func (r *Repository) Filter(ctx context.Context, params FilterParams) ([]models.Inspection, error) {
	query := r.db.WithContext(ctx).Model(&models.Inspection{})
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.DateFrom != nil {
		query = query.Where("gregorian_date >= ?", *params.DateFrom)
	}
	if params.DateTo != nil {
		query = query.Where("gregorian_date <= ?", *params.DateTo)
	}
	if params.Inspector != nil {
		query = query.Where("LOWER(inspector) LIKE ?", "%"+strings.ToLower(*params.Inspector)+"%")
	}

	var inspections []models.Inspection
	if err := query.Order("created_at DESC").Find(&inspections).Error; err != nil {
		return nil, err
	}
	return inspections, nil
}

// UpdateColumns applies a partial update and bumps updated_at. Only the
// provided columns change.
func (r *Repository) UpdateColumns(ctx context.Context, id uuid.UUID, columns map[string]any) error {
	if len(columns) == 0 {
		return nil
	}
	columns["updated_at"] = time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&models.Inspection{}).
		Where("id = ?", id).
		Updates(columns)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes an inspection row. gorm.ErrRecordNotFound is returned when
// no row matched.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Inspection{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Count returns the total number of inspections.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Inspection{}).Count(&count).Error
	return count, err
}

// CountCreatedSince returns how many inspections were created at or after
// the given instant.
func (r *Repository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Inspection{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	return count, err
}

// CountByStatus returns how many inspections carry the given status.
func (r *Repository) CountByStatus(ctx context.Context, status enums.InspectionStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Inspection{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}
