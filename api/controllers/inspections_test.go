package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/kosherspect/kosherspect-backend/internal/inspections"
	"github.com/kosherspect/kosherspect-backend/pkg/db/models"
	"github.com/kosherspect/kosherspect-backend/pkg/enums"
	pkgerrors "github.com/kosherspect/kosherspect-backend/pkg/errors"
)

type stubInspectionService struct {
	inspection *models.Inspection
	list       []models.Inspection
	stats      *inspections.StatsDTO
	err        error

	lastCreate inspections.CreateInput
	lastUpdate inspections.UpdateInput
	lastFilter inspections.FilterParams
}

func (s *stubInspectionService) Create(ctx context.Context, input inspections.CreateInput) (*models.Inspection, error) {
	s.lastCreate = input
	return s.inspection, s.err
}

func (s *stubInspectionService) GetByID(ctx context.Context, id uuid.UUID) (*models.Inspection, error) {
	return s.inspection, s.err
}

func (s *stubInspectionService) List(ctx context.Context) ([]models.Inspection, error) {
	return s.list, s.err
}

func (s *stubInspectionService) Search(ctx context.Context, query string) ([]models.Inspection, error) {
	return s.list, s.err
}

func (s *stubInspectionService) Filter(ctx context.Context, params inspections.FilterParams) ([]models.Inspection, error) {
	s.lastFilter = params
	return s.list, s.err
}

func (s *stubInspectionService) Update(ctx context.Context, id uuid.UUID, input inspections.UpdateInput) (*models.Inspection, error) {
	s.lastUpdate = input
	return s.inspection, s.err
}

func (s *stubInspectionService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.err
}

func (s *stubInspectionService) Stats(ctx context.Context) (*inspections.StatsDTO, error) {
	return s.stats, s.err
}

func TestInspectionCreateReturns201(t *testing.T) {
	svc := &stubInspectionService{inspection: &models.Inspection{
		ID:             uuid.New(),
		FactoryName:    "Golan Dairy",
		Inspector:      "R. Cohen",
		FactoryAddress: "Katzrin",
		GregorianDate:  "2026-03-15",
		Status:         enums.InspectionStatusDraft,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}}
	handler := InspectionCreate(svc, nil)

	body := `{
		"factoryName": "Golan Dairy",
		"inspector": "R. Cohen",
		"factoryAddress": "Katzrin",
		"gregorianDate": "2026-03-15",
		"category": "kosher",
		"bishulYisrael": true
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/inspections", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.lastCreate.Category == nil || *svc.lastCreate.Category != enums.FactoryCategoryKosher {
		t.Fatalf("expected category to reach service, got %v", svc.lastCreate.Category)
	}
	if !svc.lastCreate.BishulYisrael {
		t.Fatal("expected bishul yisrael flag to reach service")
	}

	var envelope struct {
		Data models.Inspection `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.FactoryName != "Golan Dairy" {
		t.Fatalf("unexpected factory name %q", envelope.Data.FactoryName)
	}
}

func TestInspectionCreateUnknownFieldRejected(t *testing.T) {
	handler := InspectionCreate(&stubInspectionService{}, nil)

	body := `{"factoryName":"A","inspector":"B","factoryAddress":"C","gregorianDate":"2026-03-15","bogus":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/inspections", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestInspectionUpdateNullClearsEmployeeCount(t *testing.T) {
	svc := &stubInspectionService{inspection: &models.Inspection{ID: uuid.New()}}
	handler := InspectionUpdate(svc, nil)

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodPatch, "/api/inspections/"+id, strings.NewReader(`{"employeeCount":null}`))
	req = withURLParam(req, "id", id)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if !svc.lastUpdate.EmployeeCount.Valid || svc.lastUpdate.EmployeeCount.Value != nil {
		t.Fatalf("expected explicit null, got %+v", svc.lastUpdate.EmployeeCount)
	}
	if svc.lastUpdate.ShiftsPerDay.Valid {
		t.Fatal("absent field must not be marked valid")
	}
}

func TestInspectionFilterPassesParams(t *testing.T) {
	svc := &stubInspectionService{list: []models.Inspection{}}
	handler := InspectionFilter(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/inspections/filter?status=pending&dateFrom=2026-01-01&inspector=Cohen", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastFilter.Status == nil || *svc.lastFilter.Status != enums.InspectionStatusPending {
		t.Fatalf("expected status filter, got %v", svc.lastFilter.Status)
	}
	if svc.lastFilter.DateFrom == nil || *svc.lastFilter.DateFrom != "2026-01-01" {
		t.Fatalf("expected dateFrom filter, got %v", svc.lastFilter.DateFrom)
	}
	if svc.lastFilter.DateTo != nil {
		t.Fatal("absent dateTo must stay nil")
	}
	if svc.lastFilter.Inspector == nil || *svc.lastFilter.Inspector != "Cohen" {
		t.Fatalf("expected inspector filter, got %v", svc.lastFilter.Inspector)
	}
}

func TestInspectionStats(t *testing.T) {
	svc := &stubInspectionService{stats: &inspections.StatsDTO{
		TotalInspections: 12,
		ThisMonth:        3,
		Pending:          2,
		Completed:        7,
	}}
	handler := InspectionStats(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/inspections/stats", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data inspections.StatsDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.TotalInspections != 12 || envelope.Data.Completed != 7 {
		t.Fatalf("unexpected stats payload: %+v", envelope.Data)
	}
}

func TestInspectionDeleteNotFound(t *testing.T) {
	svc := &stubInspectionService{err: pkgerrors.New(pkgerrors.CodeNotFound, "inspection not found")}
	handler := InspectionDelete(svc, nil)

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodDelete, "/api/inspections/"+id, nil)
	req = withURLParam(req, "id", id)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}
