package inspections

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kosherspect/kosherspect-backend/pkg/db/models"
	"github.com/kosherspect/kosherspect-backend/pkg/enums"
	pkgerrors "github.com/kosherspect/kosherspect-backend/pkg/errors"
	"github.com/kosherspect/kosherspect-backend/pkg/types"
)

type inspectionRepository interface {
	Create(ctx context.Context, inspection *models.Inspection) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Inspection, error)
	List(ctx context.Context) ([]models.Inspection, error)
	Search(ctx context.Context, query string) ([]models.Inspection, error)
	Filter(ctx context.Context, params FilterParams) ([]models.Inspection, error)
	UpdateColumns(ctx context.Context, id uuid.UUID, columns map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
	CountByStatus(ctx context.Context, status enums.InspectionStatus) (int64, error)
}

// Service exposes inspection record operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Inspection, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Inspection, error)
	List(ctx context.Context) ([]models.Inspection, error)
	Search(ctx context.Context, query string) ([]models.Inspection, error)
	Filter(ctx context.Context, params FilterParams) ([]models.Inspection, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Inspection, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*StatsDTO, error)
}

type service struct {
	repo inspectionRepository
	now  func() time.Time
}

// NewService builds an inspection service with the provided repository.
func NewService(repo inspectionRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inspection repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

// CreateInput carries the full inspection schema for creation.
type CreateInput struct {
	FactoryName    string
	Inspector      string
	FactoryAddress string
	GregorianDate  string

	MapLink    *string
	HebrewDate *string

	ContactName     *string
	ContactPosition *string
	ContactEmail    *string
	ContactPhone    *string

	CurrentProducts *string
	EmployeeCount   *int
	ShiftsPerDay    *int
	WorkingDays     *int
	Kashrut         *string

	Documents     *types.DocumentChecklist
	DocumentFiles types.DocumentFiles

	Category *enums.FactoryCategory

	Ingredients       *string
	BoilerDetails     *string
	CleaningProtocols *string

	BishulYisrael   bool
	AfiyatYisrael   bool
	ChalavYisrael   bool
	LinatLaila      bool
	Kavush          bool
	Chadash         bool
	HafrashatChalla bool
	KashrutPesach   bool

	Photos      types.StringList
	Attachments types.StringList

	Summary          *string
	Recommendations  *string
	InspectorOpinion *string

	Status enums.InspectionStatus
}

func (in CreateInput) validate() error {
	details := map[string]string{}
	if strings.TrimSpace(in.FactoryName) == "" {
		details["factoryName"] = "is required"
	}
	if strings.TrimSpace(in.Inspector) == "" {
		details["inspector"] = "is required"
	}
	if strings.TrimSpace(in.FactoryAddress) == "" {
		details["factoryAddress"] = "is required"
	}
	if strings.TrimSpace(in.GregorianDate) == "" {
		details["gregorianDate"] = "is required"
	}
	if in.Status != "" && !in.Status.IsValid() {
		details["status"] = "is invalid"
	}
	if in.Category != nil && !in.Category.IsValid() {
		details["category"] = "is invalid"
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid inspection data").WithDetails(details)
	}
	return nil
}

func (in CreateInput) toModel() *models.Inspection {
	status := in.Status
	if status == "" {
		status = enums.InspectionStatusDraft
	}
	documentFiles := in.DocumentFiles
	if documentFiles == nil {
		documentFiles = types.DocumentFiles{}
	}
	photos := in.Photos
	if photos == nil {
		photos = types.StringList{}
	}
	attachments := in.Attachments
	if attachments == nil {
		attachments = types.StringList{}
	}
	return &models.Inspection{
		FactoryName:       in.FactoryName,
		Inspector:         in.Inspector,
		FactoryAddress:    in.FactoryAddress,
		GregorianDate:     in.GregorianDate,
		MapLink:           in.MapLink,
		HebrewDate:        in.HebrewDate,
		ContactName:       in.ContactName,
		ContactPosition:   in.ContactPosition,
		ContactEmail:      in.ContactEmail,
		ContactPhone:      in.ContactPhone,
		CurrentProducts:   in.CurrentProducts,
		EmployeeCount:     in.EmployeeCount,
		ShiftsPerDay:      in.ShiftsPerDay,
		WorkingDays:       in.WorkingDays,
		Kashrut:           in.Kashrut,
		Documents:         in.Documents,
		DocumentFiles:     documentFiles,
		Category:          in.Category,
		Ingredients:       in.Ingredients,
		BoilerDetails:     in.BoilerDetails,
		CleaningProtocols: in.CleaningProtocols,
		BishulYisrael:     in.BishulYisrael,
		AfiyatYisrael:     in.AfiyatYisrael,
		ChalavYisrael:     in.ChalavYisrael,
		LinatLaila:        in.LinatLaila,
		Kavush:            in.Kavush,
		Chadash:           in.Chadash,
		HafrashatChalla:   in.HafrashatChalla,
		KashrutPesach:     in.KashrutPesach,
		Photos:            photos,
		Attachments:       attachments,
		Summary:           in.Summary,
		Recommendations:   in.Recommendations,
		InspectorOpinion:  in.InspectorOpinion,
		Status:            status,
	}
}

// UpdateInput is a partial update: nil fields leave the stored value
// untouched. Numeric optionals use NullableInt so an explicit null clears
// the column.
type UpdateInput struct {
	FactoryName    *string
	Inspector      *string
	FactoryAddress *string
	GregorianDate  *string

	MapLink    *string
	HebrewDate *string

	ContactName     *string
	ContactPosition *string
	ContactEmail    *string
	ContactPhone    *string

	CurrentProducts *string
	EmployeeCount   types.NullableInt
	ShiftsPerDay    types.NullableInt
	WorkingDays     types.NullableInt
	Kashrut         *string

	Documents     *types.DocumentChecklist
	DocumentFiles *types.DocumentFiles

	Category *enums.FactoryCategory

	Ingredients       *string
	BoilerDetails     *string
	CleaningProtocols *string

	BishulYisrael   *bool
	AfiyatYisrael   *bool
	ChalavYisrael   *bool
	LinatLaila      *bool
	Kavush          *bool
	Chadash         *bool
	HafrashatChalla *bool
	KashrutPesach   *bool

	Photos      *types.StringList
	Attachments *types.StringList

	Summary          *string
	Recommendations  *string
	InspectorOpinion *string

	Status *enums.InspectionStatus
}

func (in UpdateInput) validate() error {
	details := map[string]string{}
	if in.FactoryName != nil && strings.TrimSpace(*in.FactoryName) == "" {
		details["factoryName"] = "must not be empty"
	}
	if in.Inspector != nil && strings.TrimSpace(*in.Inspector) == "" {
		details["inspector"] = "must not be empty"
	}
	if in.FactoryAddress != nil && strings.TrimSpace(*in.FactoryAddress) == "" {
		details["factoryAddress"] = "must not be empty"
	}
	if in.GregorianDate != nil && strings.TrimSpace(*in.GregorianDate) == "" {
		details["gregorianDate"] = "must not be empty"
	}
	if in.Status != nil && !in.Status.IsValid() {
		details["status"] = "is invalid"
	}
	if in.Category != nil && !in.Category.IsValid() {
		details["category"] = "is invalid"
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid inspection data").WithDetails(details)
	}
	return nil
}

func (in UpdateInput) columns() map[string]any {
	columns := map[string]any{}
	setString := func(column string, value *string) {
		if value != nil {
			columns[column] = *value
		}
	}
	setBool := func(column string, value *bool) {
		if value != nil {
			columns[column] = *value
		}
	}
	setNullableInt := func(column string, value types.NullableInt) {
		if value.Valid {
			if value.Value == nil {
				columns[column] = nil
			} else {
				columns[column] = *value.Value
			}
		}
	}

	setString("factory_name", in.FactoryName)
	setString("inspector", in.Inspector)
	setString("factory_address", in.FactoryAddress)
	setString("gregorian_date", in.GregorianDate)
	setString("map_link", in.MapLink)
	setString("hebrew_date", in.HebrewDate)
	setString("contact_name", in.ContactName)
	setString("contact_position", in.ContactPosition)
	setString("contact_email", in.ContactEmail)
	setString("contact_phone", in.ContactPhone)
	setString("current_products", in.CurrentProducts)
	setNullableInt("employee_count", in.EmployeeCount)
	setNullableInt("shifts_per_day", in.ShiftsPerDay)
	setNullableInt("working_days", in.WorkingDays)
	setString("kashrut", in.Kashrut)
	if in.Documents != nil {
		columns["documents"] = *in.Documents
	}
	if in.DocumentFiles != nil {
		columns["document_files"] = *in.DocumentFiles
	}
	if in.Category != nil {
		columns["category"] = *in.Category
	}
	setString("ingredients", in.Ingredients)
	setString("boiler_details", in.BoilerDetails)
	setString("cleaning_protocols", in.CleaningProtocols)
	setBool("bishul_yisrael", in.BishulYisrael)
	setBool("afiyat_yisrael", in.AfiyatYisrael)
	setBool("chalav_yisrael", in.ChalavYisrael)
	setBool("linat_laila", in.LinatLaila)
	setBool("kavush", in.Kavush)
	setBool("chadash", in.Chadash)
	setBool("hafrashat_challa", in.HafrashatChalla)
	setBool("kashrut_pesach", in.KashrutPesach)
	if in.Photos != nil {
		columns["photos"] = *in.Photos
	}
	if in.Attachments != nil {
		columns["attachments"] = *in.Attachments
	}
	setString("summary", in.Summary)
	setString("recommendations", in.Recommendations)
	setString("inspector_opinion", in.InspectorOpinion)
	if in.Status != nil {
		columns["status"] = *in.Status
	}
	return columns
}

// StatsDTO aggregates the dashboard counters, computed at query time.
type StatsDTO struct {
	TotalInspections int64 `json:"totalInspections"`
	ThisMonth        int64 `json:"thisMonth"`
	Pending          int64 `json:"pending"`
	Completed        int64 `json:"completed"`
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Inspection, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	inspection := input.toModel()
	if err := s.repo.Create(ctx, inspection); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create inspection")
	}
	return inspection, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*models.Inspection, error) {
	inspection, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inspection not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inspection")
	}
	return inspection, nil
}

func (s *service) List(ctx context.Context) ([]models.Inspection, error) {
	inspections, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list inspections")
	}
	return inspections, nil
}

func (s *service) Search(ctx context.Context, query string) ([]models.Inspection, error) {
	if strings.TrimSpace(query) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "search query is required")
	}
	inspections, err := s.repo.Search(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search inspections")
	}
	return inspections, nil
}

func (s *service) Filter(ctx context.Context, params FilterParams) ([]models.Inspection, error) {
	if params.Status != nil && !params.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter")
	}
	inspections, err := s.repo.Filter(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "filter inspections")
	}
	return inspections, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Inspection, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	columns := input.columns()
	if len(columns) > 0 {
		if err := s.repo.UpdateColumns(ctx, id, columns); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inspection not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update inspection")
		}
	}
	return s.GetByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "inspection not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete inspection")
	}
	return nil
}

func (s *service) Stats(ctx context.Context) (*StatsDTO, error) {
	// Rows carry UTC timestamps, so the month boundary is computed in UTC
	// regardless of the server's zone.
	now := s.now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count inspections")
	}
	thisMonth, err := s.repo.CountCreatedSince(ctx, monthStart)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count this month")
	}
	pending, err := s.repo.CountByStatus(ctx, enums.InspectionStatusPending)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count pending")
	}
	completed, err := s.repo.CountByStatus(ctx, enums.InspectionStatusCompleted)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count completed")
	}

	return &StatsDTO{
		TotalInspections: total,
		ThisMonth:        thisMonth,
		Pending:          pending,
		Completed:        completed,
	}, nil
}
