package controllers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kosherspect/kosherspect-backend/api/responses"
	"github.com/kosherspect/kosherspect-backend/api/validators"
	"github.com/kosherspect/kosherspect-backend/internal/reports"
	pkgerrors "github.com/kosherspect/kosherspect-backend/pkg/errors"
	"github.com/kosherspect/kosherspect-backend/pkg/logger"
)

// ReportDownload renders the inspection report fresh and serves it as an
// attachment.
func ReportDownload(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "report service unavailable"))
			return
		}

		id, err := validators.PathUUID(chi.URLParam(r, "id"), "inspection id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		pdf, err := svc.Generate(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		disposition := fmt.Sprintf(`attachment; filename="inspection-report-%s.pdf"`, id)
		responses.WritePDF(w, pdf, disposition)
	}
}

// ReportPreview serves the report inline, from the preview cache when the
// inspection has not changed since the last render.
func ReportPreview(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "report service unavailable"))
			return
		}

		id, err := validators.PathUUID(chi.URLParam(r, "id"), "inspection id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		pdf, err := svc.Preview(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WritePDF(w, pdf, "inline")
	}
}
