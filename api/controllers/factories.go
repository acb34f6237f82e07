package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kosherspect/kosherspect-backend/api/responses"
	"github.com/kosherspect/kosherspect-backend/api/validators"
	"github.com/kosherspect/kosherspect-backend/internal/factories"
	pkgerrors "github.com/kosherspect/kosherspect-backend/pkg/errors"
	"github.com/kosherspect/kosherspect-backend/pkg/logger"
	"github.com/kosherspect/kosherspect-backend/pkg/types"
)

// factoryRequest carries the full writable factory schema; POST and PUT share
// it.
type factoryRequest struct {
	Name            string            `json:"name" validate:"required"`
	Address         string            `json:"address" validate:"required"`
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

func (r factoryRequest) toInput() factories.FactoryInput {
	return factories.FactoryInput{
		Name:            r.Name,
		Address:         r.Address,
		MapLink:         r.MapLink,
		ContactName:     r.ContactName,
		ContactPosition: r.ContactPosition,
		ContactEmail:    r.ContactEmail,
		ContactPhone:    r.ContactPhone,
		CurrentProducts: r.CurrentProducts,
		EmployeeCount:   r.EmployeeCount.Ptr(),
		ShiftsPerDay:    r.ShiftsPerDay.Ptr(),
		WorkingDays:     r.WorkingDays.Ptr(),
		Kashrut:         r.Kashrut,
	}
}

func FactoryList(svc factories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "factory service unavailable"))
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

func FactorySearch(svc factories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "factory service unavailable"))
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

func FactoryGet(svc factories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "factory service unavailable"))
			return
		}

		id, err := validators.PathUUID(chi.URLParam(r, "id"), "factory id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		factory, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, factory)
	}
}

func FactoryCreate(svc factories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "factory service unavailable"))
			return
		}

		var payload factoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		factory, err := svc.Create(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, factory)
	}
}

// FactoryUpdate replaces the full record (PUT semantics): omitted optional
// fields clear the stored values.
func FactoryUpdate(svc factories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "factory service unavailable"))
			return
		}

		id, err := validators.PathUUID(chi.URLParam(r, "id"), "factory id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload factoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		factory, err := svc.Update(r.Context(), id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, factory)
	}
}

func FactoryDelete(svc factories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "factory service unavailable"))
			return
		}

		id, err := validators.PathUUID(chi.URLParam(r, "id"), "factory id")
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
