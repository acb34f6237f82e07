package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kosherspect/kosherspect-backend/api/responses"
	"github.com/kosherspect/kosherspect-backend/api/validators"
	"github.com/kosherspect/kosherspect-backend/internal/inspections"
	"github.com/kosherspect/kosherspect-backend/pkg/enums"
	pkgerrors "github.com/kosherspect/kosherspect-backend/pkg/errors"
	"github.com/kosherspect/kosherspect-backend/pkg/logger"
	"github.com/kosherspect/kosherspect-backend/pkg/types"
)

// inspectionCreateRequest mirrors the full inspection schema. Only the four
// identity fields are mandatory; everything else may arrive later through the
// wizard or a patch.
type inspectionCreateRequest struct {
	FactoryName    string `json:"factoryName" validate:"required"`
	Inspector      string `json:"inspector" validate:"required"`
	FactoryAddress string `json:"factoryAddress" validate:"required"`
	GregorianDate  string `json:"gregorianDate" validate:"required"`

	MapLink    *string `json:"mapLink,omitempty"`
	HebrewDate *string `json:"hebrewDate,omitempty"`

	ContactName     *string `json:"contactName,omitempty"`
	ContactPosition *string `json:"contactPosition,omitempty"`
	ContactEmail    *string `json:"contactEmail,omitempty" validate:"omitempty,email"`
	ContactPhone    *string `json:"contactPhone,omitempty"`

	CurrentProducts *string           `json:"currentProducts,omitempty"`
	EmployeeCount   types.NullableInt `json:"employeeCount,omitempty"`
	ShiftsPerDay    types.NullableInt `json:"shiftsPerDay,omitempty"`
	WorkingDays     types.NullableInt `json:"workingDays,omitempty"`
	Kashrut         *string           `json:"kashrut,omitempty"`

	Documents     *types.DocumentChecklist `json:"documents,omitempty"`
	DocumentFiles types.DocumentFiles      `json:"documentFiles,omitempty"`

	Category *enums.FactoryCategory `json:"category,omitempty"`

	Ingredients       *string `json:"ingredients,omitempty"`
	BoilerDetails     *string `json:"boilerDetails,omitempty"`
	CleaningProtocols *string `json:"cleaningProtocols,omitempty"`

	BishulYisrael   bool `json:"bishulYisrael,omitempty"`
	AfiyatYisrael   bool `json:"afiyatYisrael,omitempty"`
	ChalavYisrael   bool `json:"chalavYisrael,omitempty"`
	LinatLaila      bool `json:"linatLaila,omitempty"`
	Kavush          bool `json:"kavush,omitempty"`
	Chadash         bool `json:"chadash,omitempty"`
	HafrashatChalla bool `json:"hafrashatChalla,omitempty"`
	KashrutPesach   bool `json:"kashrutPesach,omitempty"`

	Photos      types.StringList `json:"photos,omitempty"`
	Attachments types.StringList `json:"attachments,omitempty"`

	Summary          *string `json:"summary,omitempty"`
	Recommendations  *string `json:"recommendations,omitempty"`
	InspectorOpinion *string `json:"inspectorOpinion,omitempty"`

	Status enums.InspectionStatus `json:"status,omitempty"`
}

func (r inspectionCreateRequest) toInput() inspections.CreateInput {
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
		EmployeeCount:     r.EmployeeCount.Ptr(),
		ShiftsPerDay:      r.ShiftsPerDay.Ptr(),
		WorkingDays:       r.WorkingDays.Ptr(),
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
		Status:            r.Status,
	}
}

// inspectionUpdateRequest is the PATCH payload: absent keys leave fields
// untouched, explicit nulls clear the nullable numeric columns.
type inspectionUpdateRequest struct {
	FactoryName    *string `json:"factoryName,omitempty"`
	Inspector      *string `json:"inspector,omitempty"`
	FactoryAddress *string `json:"factoryAddress,omitempty"`
	GregorianDate  *string `json:"gregorianDate,omitempty"`

	MapLink    *string `json:"mapLink,omitempty"`
	HebrewDate *string `json:"hebrewDate,omitempty"`

	ContactName     *string `json:"contactName,omitempty"`
	ContactPosition *string `json:"contactPosition,omitempty"`
	ContactEmail    *string `json:"contactEmail,omitempty" validate:"omitempty,email"`
	ContactPhone    *string `json:"contactPhone,omitempty"`

	CurrentProducts *string           `json:"currentProducts,omitempty"`
	EmployeeCount   types.NullableInt `json:"employeeCount,omitempty"`
	ShiftsPerDay    types.NullableInt `json:"shiftsPerDay,omitempty"`
	WorkingDays     types.NullableInt `json:"workingDays,omitempty"`
	Kashrut         *string           `json:"kashrut,omitempty"`

	Documents     *types.DocumentChecklist `json:"documents,omitempty"`
	DocumentFiles *types.DocumentFiles     `json:"documentFiles,omitempty"`

	Category *enums.FactoryCategory `json:"category,omitempty"`

	Ingredients       *string `json:"ingredients,omitempty"`
	BoilerDetails     *string `json:"boilerDetails,omitempty"`
	CleaningProtocols *string `json:"cleaningProtocols,omitempty"`

	BishulYisrael   *bool `json:"bishulYisrael,omitempty"`
	AfiyatYisrael   *bool `json:"afiyatYisrael,omitempty"`
	ChalavYisrael   *bool `json:"chalavYisrael,omitempty"`
	LinatLaila      *bool `json:"linatLaila,omitempty"`
	Kavush          *bool `json:"kavush,omitempty"`
	Chadash         *bool `json:"chadash,omitempty"`
	HafrashatChalla *bool `json:"hafrashatChalla,omitempty"`
	KashrutPesach   *bool `json:"kashrutPesach,omitempty"`

	Photos      *types.StringList `json:"photos,omitempty"`
	Attachments *types.StringList `json:"attachments,omitempty"`

	Summary          *string `json:"summary,omitempty"`
	Recommendations  *string `json:"recommendations,omitempty"`
	InspectorOpinion *string `json:"inspectorOpinion,omitempty"`

	Status *enums.InspectionStatus `json:"status,omitempty"`
}

func (r inspectionUpdateRequest) toInput() inspections.UpdateInput {
	return inspections.UpdateInput{
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
		Status:            r.Status,
	}
}

func InspectionList(svc inspections.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inspection service unavailable"))
			return
		}

		result, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func InspectionStats(svc inspections.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inspection service unavailable"))
			return
		}

		stats, err := svc.Stats(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, stats)
	}
}

func InspectionSearch(svc inspections.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inspection service unavailable"))
			return
		}

		query, err := validators.RequiredQuery(r, "q")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Search(r.Context(), query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func InspectionFilter(svc inspections.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inspection service unavailable"))
			return
		}

		params := inspections.FilterParams{
			DateFrom:  validators.QueryStringPtr(r, "dateFrom"),
			DateTo:    validators.QueryStringPtr(r, "dateTo"),
			Inspector: validators.QueryStringPtr(r, "inspector"),
		}
		if raw := validators.QueryString(r, "status"); raw != "" {
			status := enums.InspectionStatus(raw)
			params.Status = &status
		}

		result, err := svc.Filter(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func InspectionGet(svc inspections.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inspection service unavailable"))
			return
		}

		id, err := validators.PathUUID(chi.URLParam(r, "id"), "inspection id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		inspection, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, inspection)
	}
}

func InspectionCreate(svc inspections.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inspection service unavailable"))
			return
		}

		var payload inspectionCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		inspection, err := svc.Create(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, inspection)
	}
}

func InspectionUpdate(svc inspections.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inspection service unavailable"))
			return
		}

		id, err := validators.PathUUID(chi.URLParam(r, "id"), "inspection id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload inspectionUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		inspection, err := svc.Update(r.Context(), id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, inspection)
	}
}

func InspectionDelete(svc inspections.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inspection service unavailable"))
			return
		}

		id, err := validators.PathUUID(chi.URLParam(r, "id"), "inspection id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, nil)
	}
}
