package inspections

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kosherspect/kosherspect-backend/pkg/db/models"
	"github.com/kosherspect/kosherspect-backend/pkg/enums"
	pkgerrors "github.com/kosherspect/kosherspect-backend/pkg/errors"
	"github.com/kosherspect/kosherspect-backend/pkg/types"
)

func TestNewServiceRequiresRepo(t *testing.T) {
	_, err := NewService(nil)
	if err == nil {
		t.Fatal("expected error creating service without repo")
	}
}

func TestServiceCreateRequiresCoreFields(t *testing.T) {
	svc := mustService(t, &stubInspectionRepo{})

	_, gotErr := svc.Create(context.Background(), CreateInput{})
	typed := pkgerrors.As(gotErr)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", gotErr)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected details map, got %v", typed.Details())
	}
	for _, field := range []string{"factoryName", "inspector", "factoryAddress", "gregorianDate"} {
		if details[field] == "" {
			t.Fatalf("expected detail for %s, got %v", field, details)
		}
	}
}

func TestServiceCreateDefaultsStatusAndCollections(t *testing.T) {
	repo := &stubInspectionRepo{}
	svc := mustService(t, repo)

	inspection, err := svc.Create(context.Background(), baseCreateInput())
	if err != nil {
		t.Fatalf("create inspection: %v", err)
	}
	if inspection.Status != enums.InspectionStatusDraft {
		t.Fatalf("expected draft status, got %s", inspection.Status)
	}
	if inspection.Photos == nil || inspection.Attachments == nil || inspection.DocumentFiles == nil {
		t.Fatalf("expected empty collections, got %+v", inspection)
	}
	if repo.created == nil {
		t.Fatal("expected repo create to be called")
	}
}

func TestServiceCreateRejectsBadEnums(t *testing.T) {
	svc := mustService(t, &stubInspectionRepo{})

	input := baseCreateInput()
	input.Status = enums.InspectionStatus("archived")
	_, gotErr := svc.Create(context.Background(), input)
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", gotErr)
	}

	input = baseCreateInput()
	bad := enums.FactoryCategory("parve")
	input.Category = &bad
	_, gotErr = svc.Create(context.Background(), input)
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", gotErr)
	}
}

func TestServiceUpdateBuildsColumnsFromProvidedFields(t *testing.T) {
	existing := &models.Inspection{
		ID:             uuid.New(),
		FactoryName:    "Galil Dairy",
		Inspector:      "R. Cohen",
		FactoryAddress: "Kibbutz Sde Eliyahu",
		GregorianDate:  "2026-03-15",
		Status:         enums.InspectionStatusDraft,
	}
	repo := &stubInspectionRepo{inspection: existing}
	svc := mustService(t, repo)

	summary := "all clear"
	completed := enums.InspectionStatusCompleted
	flag := true
	count := 42
	_, err := svc.Update(context.Background(), existing.ID, UpdateInput{
		Summary:       &summary,
		Status:        &completed,
		BishulYisrael: &flag,
		EmployeeCount: types.NullableInt{Valid: true, Value: &count},
	})
	if err != nil {
		t.Fatalf("update inspection: %v", err)
	}

	columns := repo.updatedColumns
	if columns["summary"] != "all clear" {
		t.Fatalf("expected summary column, got %v", columns)
	}
	if columns["status"] != completed {
		t.Fatalf("expected status column, got %v", columns)
	}
	if columns["bishul_yisrael"] != true {
		t.Fatalf("expected bishul_yisrael column, got %v", columns)
	}
	if columns["employee_count"] != 42 {
		t.Fatalf("expected employee_count column, got %v", columns)
	}
	if _, present := columns["factory_name"]; present {
		t.Fatalf("expected absent fields to stay untouched, got %v", columns)
	}
}

func TestServiceUpdateNullClearsNumericColumn(t *testing.T) {
	existing := &models.Inspection{ID: uuid.New()}
	repo := &stubInspectionRepo{inspection: existing}
	svc := mustService(t, repo)

	_, err := svc.Update(context.Background(), existing.ID, UpdateInput{
		EmployeeCount: types.NullableInt{Valid: true},
	})
	if err != nil {
		t.Fatalf("update inspection: %v", err)
	}
	value, present := repo.updatedColumns["employee_count"]
	if !present || value != nil {
		t.Fatalf("expected employee_count set to nil, got %v (present=%v)", value, present)
	}
}

func TestServiceUpdateEmptyInputSkipsWrite(t *testing.T) {
	existing := &models.Inspection{ID: uuid.New()}
	repo := &stubInspectionRepo{inspection: existing}
	svc := mustService(t, repo)

	_, err := svc.Update(context.Background(), existing.ID, UpdateInput{})
	if err != nil {
		t.Fatalf("update inspection: %v", err)
	}
	if repo.updateCalls != 0 {
		t.Fatalf("expected no column write, got %d calls", repo.updateCalls)
	}
}

func TestServiceUpdateRejectsEmptyRequiredField(t *testing.T) {
	svc := mustService(t, &stubInspectionRepo{})

	blank := "  "
	_, gotErr := svc.Update(context.Background(), uuid.New(), UpdateInput{FactoryName: &blank})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", gotErr)
	}
}

func TestServiceUpdateNotFound(t *testing.T) {
	repo := &stubInspectionRepo{updateErr: gorm.ErrRecordNotFound}
	svc := mustService(t, repo)

	summary := "x"
	_, gotErr := svc.Update(context.Background(), uuid.New(), UpdateInput{Summary: &summary})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", gotErr)
	}
}

func TestServiceSearchRequiresQuery(t *testing.T) {
	svc := mustService(t, &stubInspectionRepo{})

	_, gotErr := svc.Search(context.Background(), "")
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", gotErr)
	}
}

func TestServiceFilterRejectsBadStatus(t *testing.T) {
	svc := mustService(t, &stubInspectionRepo{})

	bad := enums.InspectionStatus("archived")
	_, gotErr := svc.Filter(context.Background(), FilterParams{Status: &bad})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", gotErr)
	}
}

func TestServiceStatsUsesCalendarMonthStart(t *testing.T) {
	repo := &stubInspectionRepo{
		total:     7,
		thisMonth: 3,
		byStatus: map[enums.InspectionStatus]int64{
			enums.InspectionStatusPending:   2,
			enums.InspectionStatusCompleted: 4,
		},
	}
	svc := mustService(t, repo)
	svc.(*service).now = func() time.Time {
		return time.Date(2026, time.March, 15, 13, 45, 0, 0, time.UTC)
	}

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalInspections != 7 || stats.ThisMonth != 3 || stats.Pending != 2 || stats.Completed != 4 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	want := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	if !repo.sinceArg.Equal(want) {
		t.Fatalf("expected month start %v, got %v", want, repo.sinceArg)
	}
}

func TestServiceStatsMonthStartIgnoresServerZone(t *testing.T) {
	repo := &stubInspectionRepo{}
	svc := mustService(t, repo)
	// 2026-04-01 01:30 in UTC+3 is still 2026-03-31 in UTC; the boundary
	// must land on March 1, not April 1.
	eastOfGreenwich := time.FixedZone("UTC+3", 3*60*60)
	svc.(*service).now = func() time.Time {
		return time.Date(2026, time.April, 1, 1, 30, 0, 0, eastOfGreenwich)
	}

	if _, err := svc.Stats(context.Background()); err != nil {
		t.Fatalf("stats: %v", err)
	}
	want := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	if !repo.sinceArg.Equal(want) {
		t.Fatalf("expected month start %v, got %v", want, repo.sinceArg)
	}
}

func TestServiceDeleteNotFound(t *testing.T) {
	svc := mustService(t, &stubInspectionRepo{deleteErr: gorm.ErrRecordNotFound})

	gotErr := svc.Delete(context.Background(), uuid.New())
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", gotErr)
	}
}

func mustService(t *testing.T, repo inspectionRepository) Service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func baseCreateInput() CreateInput {
	return CreateInput{
		FactoryName:    "Galil Dairy",
		Inspector:      "R. Cohen",
		FactoryAddress: "Kibbutz Sde Eliyahu",
		GregorianDate:  "2026-03-15",
	}
}

type stubInspectionRepo struct {
	inspection *models.Inspection
	err        error
	updateErr  error
	deleteErr  error

	created        *models.Inspection
	updatedColumns map[string]any
	updateCalls    int

	total     int64
	thisMonth int64
	byStatus  map[enums.InspectionStatus]int64
	sinceArg  time.Time
}

func (s *stubInspectionRepo) Create(ctx context.Context, inspection *models.Inspection) error {
	if s.err != nil {
		return s.err
	}
	s.created = inspection
	return nil
}

func (s *stubInspectionRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Inspection, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.inspection == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.inspection, nil
}

func (s *stubInspectionRepo) List(ctx context.Context) ([]models.Inspection, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.inspection == nil {
		return nil, nil
	}
	return []models.Inspection{*s.inspection}, nil
}

func (s *stubInspectionRepo) Search(ctx context.Context, query string) ([]models.Inspection, error) {
	return s.List(ctx)
}

func (s *stubInspectionRepo) Filter(ctx context.Context, params FilterParams) ([]models.Inspection, error) {
	return s.List(ctx)
}

func (s *stubInspectionRepo) UpdateColumns(ctx context.Context, id uuid.UUID, columns map[string]any) error {
	s.updateCalls++
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updatedColumns = columns
	return nil
}

func (s *stubInspectionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return s.deleteErr
}

func (s *stubInspectionRepo) Count(ctx context.Context) (int64, error) {
	return s.total, s.err
}

func (s *stubInspectionRepo) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	s.sinceArg = since
	return s.thisMonth, s.err
}

func (s *stubInspectionRepo) CountByStatus(ctx context.Context, status enums.InspectionStatus) (int64, error) {
	return s.byStatus[status], s.err
}
