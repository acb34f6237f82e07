package wizard

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/kosherspect/kosherspect-backend/internal/inspections"
	"github.com/kosherspect/kosherspect-backend/pkg/db/models"
	"github.com/kosherspect/kosherspect-backend/pkg/enums"
	pkgerrors "github.com/kosherspect/kosherspect-backend/pkg/errors"
	"github.com/kosherspect/kosherspect-backend/pkg/logger"
	"github.com/kosherspect/kosherspect-backend/pkg/types"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "wizard-test", Output: io.Discard})
}

func newTestService(t *testing.T, store SessionStore, factories factoryReader, writer inspectionWriter) Service {
	t.Helper()
	if store == nil {
		store = newMemoryStore()
	}
	if factories == nil {
		factories = &stubFactories{}
	}
	if writer == nil {
		writer = &stubInspections{}
	}
	svc, err := NewService(store, factories, writer, testLogger())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestStartEmptySessionBeginsAtFactorySelection(t *testing.T) {
	svc := newTestService(t, nil, nil, nil)

	session, err := svc.Start(context.Background(), StartInput{})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if session.Step != enums.WizardStepFactorySelection {
		t.Fatalf("expected factory_selection, got %s", session.Step)
	}
	if session.InspectionID != nil || session.FactoryMerged {
		t.Fatalf("expected pristine session, got %+v", session)
	}
}

func TestStartWithFactoryConsumesHandoffAndMerges(t *testing.T) {
	store := newMemoryStore()
	factory := baseFactory()
	svc := newTestService(t, store, &stubFactories{factory: factory}, nil)

	session, err := svc.Start(context.Background(), StartInput{FactoryID: &factory.ID})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if session.Step != enums.WizardStepBasicInfo {
		t.Fatalf("expected basic_info entry, got %s", session.Step)
	}
	if session.Record.FactoryName != factory.Name {
		t.Fatalf("expected factory merged, got %q", session.Record.FactoryName)
	}
	if !session.FactoryMerged {
		t.Fatal("expected merge flag set")
	}
	if len(store.handoffs) != 0 {
		t.Fatalf("expected handoff consumed, got %v", store.handoffs)
	}
}

func TestStartFromInspectionSeedsRecord(t *testing.T) {
	existing := &models.Inspection{
		ID:             uuid.New(),
		FactoryName:    "Galil Dairy",
		Inspector:      "R. Cohen",
		FactoryAddress: "Kibbutz Sde Eliyahu",
		GregorianDate:  "2026-03-15",
		Status:         enums.InspectionStatusDraft,
	}
	svc := newTestService(t, nil, nil, &stubInspections{existing: existing})

	session, err := svc.Start(context.Background(), StartInput{InspectionID: &existing.ID})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if session.Step != enums.WizardStepBasicInfo {
		t.Fatalf("expected basic_info entry, got %s", session.Step)
	}
	if session.InspectionID == nil || *session.InspectionID != existing.ID {
		t.Fatalf("expected inspection bound, got %v", session.InspectionID)
	}
	if session.Record.FactoryName != "Galil Dairy" {
		t.Fatalf("expected record seeded, got %+v", session.Record)
	}
}

func TestSelectFactoryMergesOnce(t *testing.T) {
	factory := baseFactory()
	svc := newTestService(t, nil, &stubFactories{factory: factory}, nil)

	session, err := svc.Start(context.Background(), StartInput{})
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	merged, err := svc.SelectFactory(context.Background(), session.ID, &factory.ID)
	if err != nil {
		t.Fatalf("select factory: %v", err)
	}
	if merged.Record.FactoryName != factory.Name {
		t.Fatalf("expected merge, got %q", merged.Record.FactoryName)
	}
	if merged.Step != enums.WizardStepBasicInfo {
		t.Fatalf("expected advance to basic_info, got %s", merged.Step)
	}

	// Operator edits, then re-selects: the edit must survive.
	edited := "Operator Renamed Plant"
	if _, err := svc.ApplyBasicInfo(context.Background(), session.ID, BasicInfoPatch{FactoryName: &edited}); err != nil {
		t.Fatalf("apply basic info: %v", err)
	}
	again, err := svc.SelectFactory(context.Background(), session.ID, &factory.ID)
	if err != nil {
		t.Fatalf("second select: %v", err)
	}
	if again.Record.FactoryName != edited {
		t.Fatalf("expected operator edit preserved, got %q", again.Record.FactoryName)
	}
}

func TestSelectFactoryDoesNotOverwriteOperatorFields(t *testing.T) {
	factory := baseFactory()
	svc := newTestService(t, nil, &stubFactories{factory: factory}, nil)

	session, err := svc.Start(context.Background(), StartInput{})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	contact := "Operator Contact"
	if _, err := svc.ApplyBasicInfo(context.Background(), session.ID, BasicInfoPatch{ContactName: &contact}); err != nil {
		t.Fatalf("apply basic info: %v", err)
	}
	if _, err := svc.Navigate(context.Background(), session.ID, NavigateInput{Step: stepPtr(enums.WizardStepFactorySelection)}); err != nil {
		t.Fatalf("navigate: %v", err)
	}

	merged, err := svc.SelectFactory(context.Background(), session.ID, &factory.ID)
	if err != nil {
		t.Fatalf("select factory: %v", err)
	}
	if merged.Record.ContactName == nil || *merged.Record.ContactName != contact {
		t.Fatalf("expected operator contact preserved, got %v", merged.Record.ContactName)
	}
	if merged.Record.FactoryAddress != factory.Address {
		t.Fatalf("expected empty slot filled from factory, got %q", merged.Record.FactoryAddress)
	}
}

func TestSelectNoFactoryAdvancesWithoutMerge(t *testing.T) {
	svc := newTestService(t, nil, nil, nil)

	session, err := svc.Start(context.Background(), StartInput{})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	advanced, err := svc.SelectFactory(context.Background(), session.ID, nil)
	if err != nil {
		t.Fatalf("select factory: %v", err)
	}
	if advanced.Step != enums.WizardStepBasicInfo {
		t.Fatalf("expected basic_info, got %s", advanced.Step)
	}
	if advanced.Record.FactoryName != "" || advanced.FactoryMerged {
		t.Fatalf("expected no merge, got %+v", advanced)
	}
}

func TestNavigateClampsAtEdges(t *testing.T) {
	svc := newTestService(t, nil, nil, nil)
	session, err := svc.Start(context.Background(), StartInput{})
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	prev := "previous"
	clamped, err := svc.Navigate(context.Background(), session.ID, NavigateInput{Direction: &prev})
	if err != nil {
		t.Fatalf("navigate: %v", err)
	}
	if clamped.Step != enums.WizardStepFactorySelection {
		t.Fatalf("expected clamp at first step, got %s", clamped.Step)
	}

	last := enums.WizardStepPhotos
	if _, err := svc.Navigate(context.Background(), session.ID, NavigateInput{Step: &last}); err != nil {
		t.Fatalf("navigate: %v", err)
	}
	next := "next"
	clamped, err = svc.Navigate(context.Background(), session.ID, NavigateInput{Direction: &next})
	if err != nil {
		t.Fatalf("navigate: %v", err)
	}
	if clamped.Step != enums.WizardStepPhotos {
		t.Fatalf("expected clamp at last step, got %s", clamped.Step)
	}
}

func TestNavigateRejectsBadInput(t *testing.T) {
	svc := newTestService(t, nil, nil, nil)
	session, err := svc.Start(context.Background(), StartInput{})
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	sideways := "sideways"
	_, gotErr := svc.Navigate(context.Background(), session.ID, NavigateInput{Direction: &sideways})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", gotErr)
	}

	_, gotErr = svc.Navigate(context.Background(), session.ID, NavigateInput{})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", gotErr)
	}
}

func TestApplyBasicInfoRecomputesHebrewDate(t *testing.T) {
	svc := newTestService(t, nil, nil, nil)
	session, err := svc.Start(context.Background(), StartInput{})
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	date := "2026-03-15"
	updated, err := svc.ApplyBasicInfo(context.Background(), session.ID, BasicInfoPatch{GregorianDate: &date})
	if err != nil {
		t.Fatalf("apply basic info: %v", err)
	}
	if updated.Record.HebrewDate == nil || *updated.Record.HebrewDate == "" {
		t.Fatal("expected hebrew date derived")
	}
	derived := *updated.Record.HebrewDate

	// Garbage input keeps the previous Hebrew date.
	garbage := "not-a-date"
	updated, err = svc.ApplyBasicInfo(context.Background(), session.ID, BasicInfoPatch{GregorianDate: &garbage})
	if err != nil {
		t.Fatalf("apply basic info: %v", err)
	}
	if updated.Record.HebrewDate == nil || *updated.Record.HebrewDate != derived {
		t.Fatalf("expected hebrew date unchanged, got %v", updated.Record.HebrewDate)
	}
}

func TestApplyStepAdvancesCursor(t *testing.T) {
	svc := newTestService(t, nil, nil, nil)
	session, err := svc.Start(context.Background(), StartInput{})
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	docs := types.DocumentChecklist{Blueprint: true}
	updated, err := svc.ApplyDocuments(context.Background(), session.ID, DocumentsPatch{Documents: &docs})
	if err != nil {
		t.Fatalf("apply documents: %v", err)
	}
	if updated.Step != enums.WizardStepCategory {
		t.Fatalf("expected advance to category, got %s", updated.Step)
	}
	if updated.Record.Documents == nil || !updated.Record.Documents.Blueprint {
		t.Fatalf("expected documents merged, got %+v", updated.Record.Documents)
	}
}

func TestSaveDraftAppliesPlaceholdersAndBindsID(t *testing.T) {
	writer := &stubInspections{}
	svc := newTestService(t, nil, nil, writer)
	svc.(*service).now = func() time.Time {
		return time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)
	}

	session, err := svc.Start(context.Background(), StartInput{})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	result, err := svc.SaveDraft(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("save draft: %v", err)
	}

	created := writer.createInput
	if created.FactoryName != "Draft Factory" || created.Inspector != "Inspector" || created.FactoryAddress != "Address" {
		t.Fatalf("expected placeholder defaults, got %+v", created)
	}
	if created.GregorianDate != "2026-03-15" {
		t.Fatalf("expected today's date, got %q", created.GregorianDate)
	}
	if created.Status != enums.InspectionStatusDraft {
		t.Fatalf("expected draft status, got %s", created.Status)
	}
	if result.Session.InspectionID == nil {
		t.Fatal("expected inspection id bound into session")
	}
	if result.Session.Step != session.Step {
		t.Fatalf("expected wizard position to survive save, got %s", result.Session.Step)
	}
}

func TestSaveDraftKeepsFormFieldsEmpty(t *testing.T) {
	writer := &stubInspections{}
	store := newMemoryStore()
	svc := newTestService(t, store, nil, writer)

	session, err := svc.Start(context.Background(), StartInput{})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	inspector := "R. Cohen"
	if _, err := svc.ApplyBasicInfo(context.Background(), session.ID, BasicInfoPatch{Inspector: &inspector}); err != nil {
		t.Fatalf("apply basic info: %v", err)
	}

	result, err := svc.SaveDraft(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("save draft: %v", err)
	}

	// Placeholders fill the saved inspection, never the live form state.
	if writer.createInput.FactoryName != "Draft Factory" {
		t.Fatalf("expected placeholder on the wire, got %q", writer.createInput.FactoryName)
	}
	if result.Session.Record.FactoryName != "" {
		t.Fatalf("expected empty form field after save, got %q", result.Session.Record.FactoryName)
	}
	if result.Session.Record.Inspector != inspector {
		t.Fatalf("expected operator input preserved, got %q", result.Session.Record.Inspector)
	}

	reloaded, err := svc.Get(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if reloaded.Record.FactoryName != "" || reloaded.Record.FactoryAddress != "" {
		t.Fatalf("expected stored record free of placeholders, got %+v", reloaded.Record)
	}
	if reloaded.InspectionID == nil {
		t.Fatal("expected inspection id bound into session")
	}
}

func TestSecondSaveUpdatesInsteadOfCreating(t *testing.T) {
	writer := &stubInspections{}
	svc := newTestService(t, nil, nil, writer)

	session, err := svc.Start(context.Background(), StartInput{})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	first, err := svc.SaveDraft(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("first save: %v", err)
	}
	if _, err := svc.Complete(context.Background(), session.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	if writer.createCalls != 1 {
		t.Fatalf("expected single create, got %d", writer.createCalls)
	}
	if writer.updateCalls != 1 {
		t.Fatalf("expected single update, got %d", writer.updateCalls)
	}
	if writer.updatedID != *first.Session.InspectionID {
		t.Fatalf("expected update against bound id, got %s", writer.updatedID)
	}
	if writer.updateInput.Status == nil || *writer.updateInput.Status != enums.InspectionStatusCompleted {
		t.Fatalf("expected completed status, got %v", writer.updateInput.Status)
	}
}

func TestFailedSaveKeepsSessionIntact(t *testing.T) {
	writer := &stubInspections{createErr: pkgerrors.New(pkgerrors.CodeDependency, "store down")}
	store := newMemoryStore()
	svc := newTestService(t, store, nil, writer)

	session, err := svc.Start(context.Background(), StartInput{})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	name := "Half Filled"
	if _, err := svc.ApplyBasicInfo(context.Background(), session.ID, BasicInfoPatch{FactoryName: &name}); err != nil {
		t.Fatalf("apply basic info: %v", err)
	}

	if _, err := svc.SaveDraft(context.Background(), session.ID); err == nil {
		t.Fatal("expected save failure")
	}

	reloaded, err := svc.Get(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if reloaded.InspectionID != nil {
		t.Fatal("expected no inspection bound after failed save")
	}
	if reloaded.Record.FactoryName != name {
		t.Fatalf("expected record preserved, got %q", reloaded.Record.FactoryName)
	}
}

func TestGetUnknownSessionIsNotFound(t *testing.T) {
	svc := newTestService(t, nil, nil, nil)

	_, gotErr := svc.Get(context.Background(), uuid.New())
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", gotErr)
	}
}

func baseFactory() *models.Factory {
	kashrut := "OU"
	products := "cheese"
	return &models.Factory{
		ID:              uuid.New(),
		Name:            "Galil Dairy",
		Address:         "Kibbutz Sde Eliyahu",
		Kashrut:         &kashrut,
		CurrentProducts: &products,
	}
}

func stepPtr(step enums.WizardStep) *enums.WizardStep { return &step }

// memoryStore is an in-process SessionStore for tests.
type memoryStore struct {
	sessions map[uuid.UUID]Session
	handoffs map[uuid.UUID]uuid.UUID
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		sessions: map[uuid.UUID]Session{},
		handoffs: map[uuid.UUID]uuid.UUID{},
	}
}

func (m *memoryStore) Save(ctx context.Context, session *Session) error {
	m.sessions[session.ID] = *session
	return nil
}

func (m *memoryStore) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	session, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	clone := session
	return &clone, nil
}

func (m *memoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.sessions, id)
	return nil
}

func (m *memoryStore) PutHandoff(ctx context.Context, owner uuid.UUID, factoryID uuid.UUID) error {
	m.handoffs[owner] = factoryID
	return nil
}

func (m *memoryStore) ConsumeHandoff(ctx context.Context, owner uuid.UUID) (uuid.UUID, bool, error) {
	factoryID, ok := m.handoffs[owner]
	if !ok {
		return uuid.Nil, false, nil
	}
	delete(m.handoffs, owner)
	return factoryID, true, nil
}

type stubFactories struct {
	factory *models.Factory
	err     error
}

func (s *stubFactories) GetByID(ctx context.Context, id uuid.UUID) (*models.Factory, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.factory == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "factory not found")
	}
	return s.factory, nil
}

type stubInspections struct {
	existing  *models.Inspection
	createErr error
	updateErr error

	createCalls int
	updateCalls int
	createInput inspections.CreateInput
	updateInput inspections.UpdateInput
	updatedID   uuid.UUID
}

func (s *stubInspections) GetByID(ctx context.Context, id uuid.UUID) (*models.Inspection, error) {
	if s.existing == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inspection not found")
	}
	return s.existing, nil
}

func (s *stubInspections) Create(ctx context.Context, input inspections.CreateInput) (*models.Inspection, error) {
	s.createCalls++
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.createInput = input
	inspection := &models.Inspection{ID: uuid.New(), FactoryName: input.FactoryName, Status: input.Status}
	s.existing = inspection
	return inspection, nil
}

func (s *stubInspections) Update(ctx context.Context, id uuid.UUID, input inspections.UpdateInput) (*models.Inspection, error) {
	s.updateCalls++
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	s.updatedID = id
	s.updateInput = input
	return s.existing, nil
}
