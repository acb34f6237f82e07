package wizard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kosherspect/kosherspect-backend/internal/inspections"
	"github.com/kosherspect/kosherspect-backend/pkg/db/models"
	"github.com/kosherspect/kosherspect-backend/pkg/enums"
	pkgerrors "github.com/kosherspect/kosherspect-backend/pkg/errors"
	"github.com/kosherspect/kosherspect-backend/pkg/hebdate"
	"github.com/kosherspect/kosherspect-backend/pkg/logger"
	"github.com/kosherspect/kosherspect-backend/pkg/types"
)

// Placeholder values written into required fields when a draft is saved
// before the operator filled them in.
const (
	draftFactoryName = "Draft Factory"
	draftInspector   = "Inspector"
	draftAddress     = "Address"
)

type factoryReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Factory, error)
}

type inspectionWriter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Inspection, error)
	Create(ctx context.Context, input inspections.CreateInput) (*models.Inspection, error)
	Update(ctx context.Context, id uuid.UUID, input inspections.UpdateInput) (*models.Inspection, error)
}

// Service drives wizard sessions: navigation, step merges, factory
// snapshots and the draft/complete upserts.
type Service interface {
	Start(ctx context.Context, input StartInput) (*Session, error)
	Get(ctx context.Context, id uuid.UUID) (*Session, error)
	SelectFactory(ctx context.Context, sessionID uuid.UUID, factoryID *uuid.UUID) (*Session, error)
	Navigate(ctx context.Context, sessionID uuid.UUID, input NavigateInput) (*Session, error)
	ApplyBasicInfo(ctx context.Context, sessionID uuid.UUID, patch BasicInfoPatch) (*Session, error)
	ApplyDocuments(ctx context.Context, sessionID uuid.UUID, patch DocumentsPatch) (*Session, error)
	ApplyCategory(ctx context.Context, sessionID uuid.UUID, patch CategoryPatch) (*Session, error)
	ApplyPhotos(ctx context.Context, sessionID uuid.UUID, patch PhotosPatch) (*Session, error)
	SaveDraft(ctx context.Context, sessionID uuid.UUID) (*SaveResult, error)
	Complete(ctx context.Context, sessionID uuid.UUID) (*SaveResult, error)
}

type service struct {
	store       SessionStore
	factories   factoryReader
	inspections inspectionWriter
	logg        *logger.Logger
	now         func() time.Time
}

// NewService assembles the wizard engine.
func NewService(store SessionStore, factories factoryReader, inspectionsSvc inspectionWriter, logg *logger.Logger) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("session store required")
	}
	if factories == nil {
		return nil, fmt.Errorf("factory service required")
	}
	if inspectionsSvc == nil {
		return nil, fmt.Errorf("inspection service required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		store:       store,
		factories:   factories,
		inspections: inspectionsSvc,
		logg:        logg,
		now:         time.Now,
	}, nil
}

// StartInput opens a session. InspectionID seeds the record from an existing
// inspection; FactoryID queues a handoff that is consumed immediately.
type StartInput struct {
	InspectionID *uuid.UUID
	FactoryID    *uuid.UUID
}

// NavigateInput moves the cursor: Direction is "next" or "previous", Step is
// a random-access target. Exactly one must be set.
type NavigateInput struct {
	Direction *string
	Step      *enums.WizardStep
}

// SaveResult pairs the surviving session with the written inspection.
type SaveResult struct {
	Session    *Session
	Inspection *models.Inspection
}

func (s *service) Start(ctx context.Context, input StartInput) (*Session, error) {
	now := s.now().UTC()
	session := &Session{
		ID:        uuid.New(),
		Step:      enums.WizardStepFactorySelection,
		CreatedAt: now,
		UpdatedAt: now,
	}
	ctx = s.logg.WithSessionID(ctx, session.ID.String())

	if input.InspectionID != nil {
		inspection, err := s.inspections.GetByID(ctx, *input.InspectionID)
		if err != nil {
			return nil, err
		}
		session.InspectionID = input.InspectionID
		session.Record = recordFromInspection(inspection)
		session.FactoryMerged = true
		session.Step = enums.WizardStepBasicInfo
	} else if input.FactoryID != nil {
		// Route the selection through the handoff channel so the consume
		// happens with GETDEL semantics even for the synchronous path.
		if err := s.store.PutHandoff(ctx, session.ID, *input.FactoryID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "queue factory handoff")
		}
		if err := s.consumeHandoff(ctx, session); err != nil {
			return nil, err
		}
	}

	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	s.logg.Info(ctx, "wizard session started")
	return session, nil
}

func (s *service) consumeHandoff(ctx context.Context, session *Session) error {
	factoryID, ok, err := s.store.ConsumeHandoff(ctx, session.ID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "consume factory handoff")
	}
	if !ok {
		return nil
	}
	return s.mergeFactoryIntoSession(ctx, session, factoryID)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	return s.loadSession(ctx, id)
}

func (s *service) SelectFactory(ctx context.Context, sessionID uuid.UUID, factoryID *uuid.UUID) (*Session, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	ctx = s.logg.WithSessionID(ctx, session.ID.String())

	if factoryID != nil {
		if err := s.mergeFactoryIntoSession(ctx, session, *factoryID); err != nil {
			return nil, err
		}
	} else if session.Step == enums.WizardStepFactorySelection {
		session.Step = enums.WizardStepBasicInfo
	}

	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// mergeFactoryIntoSession snapshots factory fields at most once and advances
// past the selection step. A second selection is a no-op on the record.
func (s *service) mergeFactoryIntoSession(ctx context.Context, session *Session, factoryID uuid.UUID) error {
	if !session.FactoryMerged && session.Record.FactoryName == "" {
		factory, err := s.factories.GetByID(ctx, factoryID)
		if err != nil {
			return err
		}
		session.Record.mergeFactory(factory)
		s.logg.Info(s.logg.WithFactoryID(ctx, factoryID.String()), "factory merged into wizard session")
	}
	session.FactoryMerged = true
	if session.Step == enums.WizardStepFactorySelection {
		session.Step = enums.WizardStepBasicInfo
	}
	return nil
}

func (s *service) Navigate(ctx context.Context, sessionID uuid.UUID, input NavigateInput) (*Session, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	switch {
	case input.Step != nil:
		if !input.Step.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid wizard step")
		}
		session.Step = *input.Step
	case input.Direction != nil:
		ordinal := session.Step.Ordinal()
		switch *input.Direction {
		case "next":
			session.Step = enums.WizardStepAt(ordinal + 1)
		case "previous":
			session.Step = enums.WizardStepAt(ordinal - 1)
		default:
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "direction must be next or previous")
		}
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "direction or step required")
	}

	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// BasicInfoPatch covers the basic-info step. Absent keys leave the record
// untouched; a changed Gregorian date recomputes the Hebrew date.
type BasicInfoPatch struct {
	FactoryName     *string
	Inspector       *string
	FactoryAddress  *string
	GregorianDate   *string
	MapLink         *string
	ContactName     *string
	ContactPosition *string
	ContactEmail    *string
	ContactPhone    *string
	CurrentProducts *string
	EmployeeCount   types.NullableInt
	ShiftsPerDay    types.NullableInt
	WorkingDays     types.NullableInt
	Kashrut         *string
}

// DocumentsPatch covers the documents checklist step.
type DocumentsPatch struct {
	Documents     *types.DocumentChecklist
	DocumentFiles *types.DocumentFiles
}

// CategoryPatch covers the category and special-requirements step.
type CategoryPatch struct {
	Category          *enums.FactoryCategory
	Ingredients       *string
	BoilerDetails     *string
	CleaningProtocols *string
	BishulYisrael     *bool
	AfiyatYisrael     *bool
	ChalavYisrael     *bool
	LinatLaila        *bool
	Kavush            *bool
	Chadash           *bool
	HafrashatChalla   *bool
	KashrutPesach     *bool
}

// PhotosPatch covers the final media-and-summary step.
type PhotosPatch struct {
	Photos           *types.StringList
	Attachments      *types.StringList
	Summary          *string
	Recommendations  *string
	InspectorOpinion *string
}

func (s *service) ApplyBasicInfo(ctx context.Context, sessionID uuid.UUID, patch BasicInfoPatch) (*Session, error) {
	return s.applyStep(ctx, sessionID, enums.WizardStepBasicInfo, func(session *Session) {
		record := &session.Record
		if patch.FactoryName != nil {
			record.FactoryName = *patch.FactoryName
		}
		if patch.Inspector != nil {
			record.Inspector = *patch.Inspector
		}
		if patch.FactoryAddress != nil {
			record.FactoryAddress = *patch.FactoryAddress
		}
		if patch.GregorianDate != nil && *patch.GregorianDate != record.GregorianDate {
			record.GregorianDate = *patch.GregorianDate
			s.recomputeHebrewDate(ctx, record)
		}
		if patch.MapLink != nil {
			record.MapLink = patch.MapLink
		}
		if patch.ContactName != nil {
			record.ContactName = patch.ContactName
		}
		if patch.ContactPosition != nil {
			record.ContactPosition = patch.ContactPosition
		}
		if patch.ContactEmail != nil {
			record.ContactEmail = patch.ContactEmail
		}
		if patch.ContactPhone != nil {
			record.ContactPhone = patch.ContactPhone
		}
		if patch.CurrentProducts != nil {
			record.CurrentProducts = patch.CurrentProducts
		}
		if patch.EmployeeCount.Valid {
			record.EmployeeCount = patch.EmployeeCount.Value
		}
		if patch.ShiftsPerDay.Valid {
			record.ShiftsPerDay = patch.ShiftsPerDay.Value
		}
		if patch.WorkingDays.Valid {
			record.WorkingDays = patch.WorkingDays.Value
		}
		if patch.Kashrut != nil {
			record.Kashrut = patch.Kashrut
		}
	})
}

func (s *service) ApplyDocuments(ctx context.Context, sessionID uuid.UUID, patch DocumentsPatch) (*Session, error) {
	return s.applyStep(ctx, sessionID, enums.WizardStepDocuments, func(session *Session) {
		if patch.Documents != nil {
			session.Record.Documents = patch.Documents
		}
		if patch.DocumentFiles != nil {
			session.Record.DocumentFiles = *patch.DocumentFiles
		}
	})
}

func (s *service) ApplyCategory(ctx context.Context, sessionID uuid.UUID, patch CategoryPatch) (*Session, error) {
	if patch.Category != nil && !patch.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid category")
	}
	return s.applyStep(ctx, sessionID, enums.WizardStepCategory, func(session *Session) {
		record := &session.Record
		if patch.Category != nil {
			record.Category = patch.Category
		}
		if patch.Ingredients != nil {
			record.Ingredients = patch.Ingredients
		}
		if patch.BoilerDetails != nil {
			record.BoilerDetails = patch.BoilerDetails
		}
		if patch.CleaningProtocols != nil {
			record.CleaningProtocols = patch.CleaningProtocols
		}
		setFlag := func(dst *bool, src *bool) {
			if src != nil {
				*dst = *src
			}
		}
		setFlag(&record.BishulYisrael, patch.BishulYisrael)
		setFlag(&record.AfiyatYisrael, patch.AfiyatYisrael)
		setFlag(&record.ChalavYisrael, patch.ChalavYisrael)
		setFlag(&record.LinatLaila, patch.LinatLaila)
		setFlag(&record.Kavush, patch.Kavush)
		setFlag(&record.Chadash, patch.Chadash)
		setFlag(&record.HafrashatChalla, patch.HafrashatChalla)
		setFlag(&record.KashrutPesach, patch.KashrutPesach)
	})
}

func (s *service) ApplyPhotos(ctx context.Context, sessionID uuid.UUID, patch PhotosPatch) (*Session, error) {
	return s.applyStep(ctx, sessionID, enums.WizardStepPhotos, func(session *Session) {
		record := &session.Record
		if patch.Photos != nil {
			record.Photos = *patch.Photos
		}
		if patch.Attachments != nil {
			record.Attachments = *patch.Attachments
		}
		if patch.Summary != nil {
			record.Summary = patch.Summary
		}
		if patch.Recommendations != nil {
			record.Recommendations = patch.Recommendations
		}
		if patch.InspectorOpinion != nil {
			record.InspectorOpinion = patch.InspectorOpinion
		}
	})
}

// applyStep merges one step's patch, positions the cursor one step past it
// and persists the session.
func (s *service) applyStep(ctx context.Context, sessionID uuid.UUID, step enums.WizardStep, merge func(*Session)) (*Session, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	ctx = s.logg.WithSessionID(ctx, session.ID.String())

	merge(session)
	session.Step = enums.WizardStepAt(step.Ordinal() + 1)

	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// recomputeHebrewDate derives the Hebrew date from the record's Gregorian
// date. Conversion failure keeps the previous value.
func (s *service) recomputeHebrewDate(ctx context.Context, record *Record) {
	converted, err := hebdate.FromGregorian(record.GregorianDate)
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "gregorian_date", record.GregorianDate), "hebrew date conversion failed")
		return
	}
	record.HebrewDate = &converted
}

func (s *service) SaveDraft(ctx context.Context, sessionID uuid.UUID) (*SaveResult, error) {
	return s.upsert(ctx, sessionID, enums.InspectionStatusDraft)
}

func (s *service) Complete(ctx context.Context, sessionID uuid.UUID) (*SaveResult, error) {
	return s.upsert(ctx, sessionID, enums.InspectionStatusCompleted)
}

// upsert writes the accumulated record out as an inspection. The first save
// creates and binds the new id into the session; later saves update in
// place. Placeholders go on the wire only: the session record keeps the
// operator's actual (possibly empty) fields, so the form never shows values
// they must overtype. Session state survives a failed write untouched.
func (s *service) upsert(ctx context.Context, sessionID uuid.UUID, status enums.InspectionStatus) (*SaveResult, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	ctx = s.logg.WithSessionID(ctx, session.ID.String())

	record := session.Record
	s.applyPlaceholders(ctx, &record)

	var inspection *models.Inspection
	if session.InspectionID == nil {
		inspection, err = s.inspections.Create(ctx, record.toCreateInput(status))
		if err != nil {
			return nil, err
		}
		session.InspectionID = &inspection.ID
	} else {
		inspection, err = s.inspections.Update(ctx, *session.InspectionID, record.toUpdateInput(status))
		if err != nil {
			return nil, err
		}
	}

	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	s.logg.Info(s.logg.WithInspectionID(ctx, inspection.ID.String()), "wizard record saved")
	return &SaveResult{Session: session, Inspection: inspection}, nil
}

// applyPlaceholders substitutes fixed defaults for required fields the
// operator left empty, so a half-filled wizard can still be parked as a
// draft.
func (s *service) applyPlaceholders(ctx context.Context, record *Record) {
	if record.FactoryName == "" {
		record.FactoryName = draftFactoryName
	}
	if record.Inspector == "" {
		record.Inspector = draftInspector
	}
	if record.FactoryAddress == "" {
		record.FactoryAddress = draftAddress
	}
	if record.GregorianDate == "" {
		record.GregorianDate = s.now().Format(hebdate.ISODate)
	}
	if record.HebrewDate == nil && record.GregorianDate != "" {
		s.recomputeHebrewDate(ctx, record)
	}
}

func (r Record) toCreateInput(status enums.InspectionStatus) inspections.CreateInput {
	return inspections.CreateInput{
		FactoryName:       r.FactoryName,
		Inspector:         r.Inspector,
		FactoryAddress:    r.FactoryAddress,
		GregorianDate:     r.GregorianDate,
		MapLink:           r.MapLink,
		HebrewDate:        r.HebrewDate,
		ContactName:       r.ContactName,
		ContactPosition:   r.ContactPosition,
		ContactEmail:      r.ContactEmail,
		ContactPhone:      r.ContactPhone,
		CurrentProducts:   r.CurrentProducts,
		EmployeeCount:     r.EmployeeCount,
		ShiftsPerDay:      r.ShiftsPerDay,
		WorkingDays:       r.WorkingDays,
		Kashrut:           r.Kashrut,
		Documents:         r.Documents,
		DocumentFiles:     r.DocumentFiles,
		Category:          r.Category,
		Ingredients:       r.Ingredients,
		BoilerDetails:     r.BoilerDetails,
		CleaningProtocols: r.CleaningProtocols,
		BishulYisrael:     r.BishulYisrael,
		AfiyatYisrael:     r.AfiyatYisrael,
		ChalavYisrael:     r.ChalavYisrael,
		LinatLaila:        r.LinatLaila,
		Kavush:            r.Kavush,
		Chadash:           r.Chadash,
		HafrashatChalla:   r.HafrashatChalla,
		KashrutPesach:     r.KashrutPesach,
		Photos:            r.Photos,
		Attachments:       r.Attachments,
		Summary:           r.Summary,
		Recommendations:   r.Recommendations,
		InspectorOpinion:  r.InspectorOpinion,
		Status:            status,
	}
}

func (r Record) toUpdateInput(status enums.InspectionStatus) inspections.UpdateInput {
	documentFiles := r.DocumentFiles
	if documentFiles == nil {
		documentFiles = types.DocumentFiles{}
	}
	photos := r.Photos
	if photos == nil {
		photos = types.StringList{}
	}
	attachments := r.Attachments
	if attachments == nil {
		attachments = types.StringList{}
	}
	return inspections.UpdateInput{
		FactoryName:       &r.FactoryName,
		Inspector:         &r.Inspector,
		FactoryAddress:    &r.FactoryAddress,
		GregorianDate:     &r.GregorianDate,
		MapLink:           r.MapLink,
		HebrewDate:        r.HebrewDate,
		ContactName:       r.ContactName,
		ContactPosition:   r.ContactPosition,
		ContactEmail:      r.ContactEmail,
		ContactPhone:      r.ContactPhone,
		CurrentProducts:   r.CurrentProducts,
		EmployeeCount:     types.NullableInt{Valid: true, Value: r.EmployeeCount},
		ShiftsPerDay:      types.NullableInt{Valid: true, Value: r.ShiftsPerDay},
		WorkingDays:       types.NullableInt{Valid: true, Value: r.WorkingDays},
		Kashrut:           r.Kashrut,
		Documents:         r.Documents,
		DocumentFiles:     &documentFiles,
		Category:          r.Category,
		Ingredients:       r.Ingredients,
		BoilerDetails:     r.BoilerDetails,
		CleaningProtocols: r.CleaningProtocols,
		BishulYisrael:     &r.BishulYisrael,
		AfiyatYisrael:     &r.AfiyatYisrael,
		ChalavYisrael:     &r.ChalavYisrael,
		LinatLaila:        &r.LinatLaila,
		Kavush:            &r.Kavush,
		Chadash:           &r.Chadash,
		HafrashatChalla:   &r.HafrashatChalla,
		KashrutPesach:     &r.KashrutPesach,
		Photos:            &photos,
		Attachments:       &attachments,
		Summary:           r.Summary,
		Recommendations:   r.Recommendations,
		InspectorOpinion:  r.InspectorOpinion,
		Status:            &status,
	}
}

func (s *service) loadSession(ctx context.Context, id uuid.UUID) (*Session, error) {
	session, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "wizard session not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load wizard session")
	}
	return session, nil
}

func (s *service) saveSession(ctx context.Context, session *Session) error {
	session.UpdatedAt = s.now().UTC()
	if err := s.store.Save(ctx, session); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save wizard session")
	}
	return nil
}
