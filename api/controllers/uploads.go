package controllers

import (
	"net/http"

	"github.com/kosherspect/kosherspect-backend/api/responses"
	"github.com/kosherspect/kosherspect-backend/internal/uploads"
	pkgerrors "github.com/kosherspect/kosherspect-backend/pkg/errors"
	"github.com/kosherspect/kosherspect-backend/pkg/logger"
)

// multipart bodies are parsed with this in-memory ceiling; larger parts spill
// to temp files.
const multipartMemoryLimit = 32 << 20

// UploadPhotos accepts a multipart batch under the "photos" field.
func UploadPhotos(svc uploads.Service, logg *logger.Logger) http.HandlerFunc {
	return uploadHandler(svc, logg, uploads.KindPhotos, "photos")
}

// UploadDocuments accepts a multipart batch under the "documents" field.
func UploadDocuments(svc uploads.Service, logg *logger.Logger) http.HandlerFunc {
	return uploadHandler(svc, logg, uploads.KindDocuments, "documents")
}

func uploadHandler(svc uploads.Service, logg *logger.Logger, kind uploads.Kind, field string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "upload service unavailable"))
			return
		}

		if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUpload, err, "invalid multipart body"))
			return
		}
		defer r.MultipartForm.RemoveAll()

		files := r.MultipartForm.File[field]
		paths, err := svc.Save(r.Context(), kind, files)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string][]string{"filePaths": paths})
	}
}
