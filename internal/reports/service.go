package reports

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kosherspect/kosherspect-backend/pkg/db/models"
	pkgerrors "github.com/kosherspect/kosherspect-backend/pkg/errors"
	"github.com/kosherspect/kosherspect-backend/pkg/logger"
)

type inspectionReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Inspection, error)
}

// Service turns inspections into report PDFs. Generate always renders
// fresh bytes; Preview serves a cached render while the record is
// unchanged.
type Service interface {
	Generate(ctx context.Context, inspectionID uuid.UUID) ([]byte, error)
	Preview(ctx context.Context, inspectionID uuid.UUID) ([]byte, error)
}

type service struct {
	inspections inspectionReader
	cache       PreviewCache
	tpl         Template
	logg        *logger.Logger
}

// NewService assembles the report generator.
func NewService(inspections inspectionReader, cache PreviewCache, tpl Template, logg *logger.Logger) (Service, error) {
	if inspections == nil {
		return nil, fmt.Errorf("inspection service required")
	}
	if cache == nil {
		return nil, fmt.Errorf("preview cache required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{inspections: inspections, cache: cache, tpl: tpl, logg: logg}, nil
}

func (s *service) Generate(ctx context.Context, inspectionID uuid.UUID) ([]byte, error) {
	inspection, err := s.inspections.GetByID(ctx, inspectionID)
	if err != nil {
		return nil, err
	}
	return s.render(ctx, inspection)
}

func (s *service) Preview(ctx context.Context, inspectionID uuid.UUID) ([]byte, error) {
	inspection, err := s.inspections.GetByID(ctx, inspectionID)
	if err != nil {
		return nil, err
	}
	ctx = s.logg.WithInspectionID(ctx, inspectionID.String())

	// A cache failure never blocks the report; fall through to a fresh
	// render.
	cached, hit, err := s.cache.Get(ctx, inspection.ID, inspection.UpdatedAt, s.tpl.Version)
	if err != nil {
		s.logg.Warn(ctx, "preview cache read failed")
	}
	if hit {
		return cached, nil
	}

	pdf, err := s.render(ctx, inspection)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Put(ctx, inspection.ID, inspection.UpdatedAt, s.tpl.Version, pdf); err != nil {
		s.logg.Warn(ctx, "preview cache write failed")
	}
	return pdf, nil
}

func (s *service) render(ctx context.Context, inspection *models.Inspection) ([]byte, error) {
	pdf, err := Render(Build(inspection, s.tpl))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render inspection report")
	}
	return pdf, nil
}
