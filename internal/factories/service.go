package factories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kosherspect/kosherspect-backend/pkg/db/models"
	pkgerrors "github.com/kosherspect/kosherspect-backend/pkg/errors"
)

type factoryRepository interface {
	Create(ctx context.Context, factory *models.Factory) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Factory, error)
	List(ctx context.Context) ([]models.Factory, error)
	Search(ctx context.Context, query string) ([]models.Factory, error)
	Update(ctx context.Context, factory *models.Factory) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service exposes factory registry operations.
type Service interface {
	Create(ctx context.Context, input FactoryInput) (*models.Factory, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Factory, error)
	List(ctx context.Context) ([]models.Factory, error)
	Search(ctx context.Context, query string) ([]models.Factory, error)
	Update(ctx context.Context, id uuid.UUID, input FactoryInput) (*models.Factory, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo factoryRepository
}

// NewService builds a factory service with the provided repository.
func NewService(repo factoryRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("factory repository required")
	}
	return &service{repo: repo}, nil
}

// FactoryInput carries the full writable field set; create and update (PUT
// semantics) share it.
type FactoryInput struct {
	Name            string
	Address         string
	MapLink         *string
	ContactName     *string
	ContactPosition *string
	ContactEmail    *string
	ContactPhone    *string
	CurrentProducts *string
	EmployeeCount   *int
	ShiftsPerDay    *int
	WorkingDays     *int
	Kashrut         *string
}

func (in FactoryInput) validate() error {
	details := map[string]string{}
	if strings.TrimSpace(in.Name) == "" {
		details["name"] = "is required"
	}
	if strings.TrimSpace(in.Address) == "" {
		details["address"] = "is required"
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return nil
}

func (in FactoryInput) apply(factory *models.Factory) {
	factory.Name = in.Name
	factory.Address = in.Address
	factory.MapLink = in.MapLink
	factory.ContactName = in.ContactName
	factory.ContactPosition = in.ContactPosition
	factory.ContactEmail = in.ContactEmail
	factory.ContactPhone = in.ContactPhone
	factory.CurrentProducts = in.CurrentProducts
	factory.EmployeeCount = in.EmployeeCount
	factory.ShiftsPerDay = in.ShiftsPerDay
	factory.WorkingDays = in.WorkingDays
	factory.Kashrut = in.Kashrut
}

func (s *service) Create(ctx context.Context, input FactoryInput) (*models.Factory, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	var factory models.Factory
	input.apply(&factory)
	if err := s.repo.Create(ctx, &factory); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create factory")
	}
	return &factory, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*models.Factory, error) {
	factory, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "factory not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load factory")
	}
	return factory, nil
}

func (s *service) List(ctx context.Context) ([]models.Factory, error) {
	factories, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list factories")
	}
	return factories, nil
}

func (s *service) Search(ctx context.Context, query string) ([]models.Factory, error) {
	if strings.TrimSpace(query) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "search query is required")
	}
	factories, err := s.repo.Search(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search factories")
	}
	return factories, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input FactoryInput) (*models.Factory, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	factory, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "factory not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load factory")
	}
	input.apply(factory)
	if err := s.repo.Update(ctx, factory); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update factory")
	}
	return factory, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "factory not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete factory")
	}
	return nil
}
