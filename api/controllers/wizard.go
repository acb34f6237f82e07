package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kosherspect/kosherspect-backend/api/responses"
	"github.com/kosherspect/kosherspect-backend/api/validators"
	"github.com/kosherspect/kosherspect-backend/internal/wizard"
	"github.com/kosherspect/kosherspect-backend/pkg/db/models"
	"github.com/kosherspect/kosherspect-backend/pkg/enums"
	pkgerrors "github.com/kosherspect/kosherspect-backend/pkg/errors"
	"github.com/kosherspect/kosherspect-backend/pkg/logger"
	"github.com/kosherspect/kosherspect-backend/pkg/types"
)

type wizardStartRequest struct {
	InspectionID *uuid.UUID `json:"inspectionId,omitempty"`
	FactoryID    *uuid.UUID `json:"factoryId,omitempty"`
}

type wizardSelectFactoryRequest struct {
	FactoryID *uuid.UUID `json:"factoryId"`
}

type wizardNavigateRequest struct {
	Direction *string           `json:"direction,omitempty" validate:"omitempty,oneof=next previous"`
	Step      *enums.WizardStep `json:"step,omitempty"`
}

type wizardBasicInfoRequest struct {
	FactoryName     *string           `json:"factoryName,omitempty"`
	Inspector       *string           `json:"inspector,omitempty"`
	FactoryAddress  *string           `json:"factoryAddress,omitempty"`
	GregorianDate   *string           `json:"gregorianDate,omitempty"`
	MapLink         *string           `json:"mapLink,omitempty"`
	ContactName     *string           `json:"contactName,omitempty"`
	ContactPosition *string           `json:"contactPosition,omitempty"`
	ContactEmail    *string           `json:"contactEmail,omitempty" validate:"omitempty,email"`
	ContactPhone    *string           `json:"contactPhone,omitempty"`
	CurrentProducts *string           `json:"currentProducts,omitempty"`
	EmployeeCount   types.NullableInt `json:"employeeCount,omitempty"`
	ShiftsPerDay    types.NullableInt `json:"shiftsPerDay,omitempty"`
	WorkingDays     types.NullableInt `json:"workingDays,omitempty"`
	Kashrut         *string           `json:"kashrut,omitempty"`
}

func (r wizardBasicInfoRequest) toPatch() wizard.BasicInfoPatch {
	return wizard.BasicInfoPatch{
		FactoryName:     r.FactoryName,
		Inspector:       r.Inspector,
		FactoryAddress:  r.FactoryAddress,
		GregorianDate:   r.GregorianDate,
		MapLink:         r.MapLink,
		ContactName:     r.ContactName,
		ContactPosition: r.ContactPosition,
		ContactEmail:    r.ContactEmail,
		ContactPhone:    r.ContactPhone,
		CurrentProducts: r.CurrentProducts,
		EmployeeCount:   r.EmployeeCount,
		ShiftsPerDay:    r.ShiftsPerDay,
		WorkingDays:     r.WorkingDays,
		Kashrut:         r.Kashrut,
	}
}

type wizardDocumentsRequest struct {
	Documents     *types.DocumentChecklist `json:"documents,omitempty"`
	DocumentFiles *types.DocumentFiles     `json:"documentFiles,omitempty"`
}

func (r wizardDocumentsRequest) toPatch() wizard.DocumentsPatch {
	return wizard.DocumentsPatch{
		Documents:     r.Documents,
		DocumentFiles: r.DocumentFiles,
	}
}

type wizardCategoryRequest struct {
	Category          *enums.FactoryCategory `json:"category,omitempty"`
	Ingredients       *string                `json:"ingredients,omitempty"`
	BoilerDetails     *string                `json:"boilerDetails,omitempty"`
	CleaningProtocols *string                `json:"cleaningProtocols,omitempty"`
	BishulYisrael     *bool                  `json:"bishulYisrael,omitempty"`
	AfiyatYisrael     *bool                  `json:"afiyatYisrael,omitempty"`
	ChalavYisrael     *bool                  `json:"chalavYisrael,omitempty"`
	LinatLaila        *bool                  `json:"linatLaila,omitempty"`
	Kavush            *bool                  `json:"kavush,omitempty"`
	Chadash           *bool                  `json:"chadash,omitempty"`
	HafrashatChalla   *bool                  `json:"hafrashatChalla,omitempty"`
	KashrutPesach     *bool                  `json:"kashrutPesach,omitempty"`
}

func (r wizardCategoryRequest) toPatch() wizard.CategoryPatch {
	return wizard.CategoryPatch{
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
	}
}

type wizardPhotosRequest struct {
	Photos           *types.StringList `json:"photos,omitempty"`
	Attachments      *types.StringList `json:"attachments,omitempty"`
	Summary          *string           `json:"summary,omitempty"`
	Recommendations  *string           `json:"recommendations,omitempty"`
	InspectorOpinion *string           `json:"inspectorOpinion,omitempty"`
}

func (r wizardPhotosRequest) toPatch() wizard.PhotosPatch {
	return wizard.PhotosPatch{
		Photos:           r.Photos,
		Attachments:      r.Attachments,
		Summary:          r.Summary,
		Recommendations:  r.Recommendations,
		InspectorOpinion: r.InspectorOpinion,
	}
}

type wizardSaveResponse struct {
	Session    *wizard.Session    `json:"session"`
	Inspection *models.Inspection `json:"inspection"`
}

func WizardStart(svc wizard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wizard service unavailable"))
			return
		}

		var payload wizardStartRequest
		if r.ContentLength > 0 {
			if err := validators.DecodeJSONBody(r, &payload); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		session, err := svc.Start(r.Context(), wizard.StartInput{
			InspectionID: payload.InspectionID,
			FactoryID:    payload.FactoryID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, session)
	}
}

func WizardGet(svc wizard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wizard service unavailable"))
			return
		}

		id, err := validators.PathUUID(chi.URLParam(r, "id"), "session id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, session)
	}
}

// WizardSelectFactory handles the factory-selection step: a null factoryId
// skips the snapshot and just advances.
func WizardSelectFactory(svc wizard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wizard service unavailable"))
			return
		}

		id, err := validators.PathUUID(chi.URLParam(r, "id"), "session id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload wizardSelectFactoryRequest
		if r.ContentLength > 0 {
			if err := validators.DecodeJSONBody(r, &payload); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		session, err := svc.SelectFactory(r.Context(), id, payload.FactoryID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, session)
	}
}

// WizardApplyStep dispatches the typed payload for one wizard step, merges it
// into the session record and advances the cursor.
func WizardApplyStep(svc wizard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wizard service unavailable"))
			return
		}

		id, err := validators.PathUUID(chi.URLParam(r, "id"), "session id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		step, err := enums.ParseWizardStep(chi.URLParam(r, "step"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid wizard step"))
			return
		}

		var session *wizard.Session
		switch step {
		case enums.WizardStepBasicInfo:
			var payload wizardBasicInfoRequest
			if err := validators.DecodeJSONBody(r, &payload); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			session, err = svc.ApplyBasicInfo(r.Context(), id, payload.toPatch())
		case enums.WizardStepDocuments:
			var payload wizardDocumentsRequest
			if err := validators.DecodeJSONBody(r, &payload); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			session, err = svc.ApplyDocuments(r.Context(), id, payload.toPatch())
		case enums.WizardStepCategory:
			var payload wizardCategoryRequest
			if err := validators.DecodeJSONBody(r, &payload); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			session, err = svc.ApplyCategory(r.Context(), id, payload.toPatch())
		case enums.WizardStepPhotos:
			var payload wizardPhotosRequest
			if err := validators.DecodeJSONBody(r, &payload); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			session, err = svc.ApplyPhotos(r.Context(), id, payload.toPatch())
		default:
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "factory selection uses the select-factory endpoint"))
			return
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, session)
	}
}

func WizardNavigate(svc wizard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wizard service unavailable"))
			return
		}

		id, err := validators.PathUUID(chi.URLParam(r, "id"), "session id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload wizardNavigateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.Navigate(r.Context(), id, wizard.NavigateInput{
			Direction: payload.Direction,
			Step:      payload.Step,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, session)
	}
}

func WizardSaveDraft(svc wizard.Service, logg *logger.Logger) http.HandlerFunc {
	return wizardSaveHandler(svc, logg, func(svc wizard.Service, r *http.Request, id uuid.UUID) (*wizard.SaveResult, error) {
		return svc.SaveDraft(r.Context(), id)
	})
}

func WizardComplete(svc wizard.Service, logg *logger.Logger) http.HandlerFunc {
	return wizardSaveHandler(svc, logg, func(svc wizard.Service, r *http.Request, id uuid.UUID) (*wizard.SaveResult, error) {
		return svc.Complete(r.Context(), id)
	})
}

func wizardSaveHandler(svc wizard.Service, logg *logger.Logger, save func(wizard.Service, *http.Request, uuid.UUID) (*wizard.SaveResult, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wizard service unavailable"))
			return
		}

		id, err := validators.PathUUID(chi.URLParam(r, "id"), "session id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := save(svc, r, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, wizardSaveResponse{
			Session:    result.Session,
			Inspection: result.Inspection,
		})
	}
}
