package controllers

import (
	"io"
	"net/http"

	"github.com/shoplane/shoplane-backend/api/responses"
	"github.com/shoplane/shoplane-backend/api/validators"
	"github.com/shoplane/shoplane-backend/internal/media"
	pkgerrors "github.com/shoplane/shoplane-backend/pkg/errors"
	"github.com/shoplane/shoplane-backend/pkg/logger"
)

// MediaUpload accepts a multipart file and stores it under the folder
// named in the form. The enforced size limit lives in the service; the
// request body gets a generous hard cap so a runaway upload fails fast.
func MediaUpload(svc media.Service, logg *logger.Logger) http.HandlerFunc {
	const multipartMemory = 10 << 20

	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "parse multipart form"))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "file field required"))
			return
		}
		defer file.Close()

		payload, err := io.ReadAll(file)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "read upload"))
			return
		}

		result, err := svc.Upload(r.Context(), media.UploadInput{
			Folder:      media.Folder(r.FormValue("folder")),
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        payload,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

type mediaDeleteRequest struct {
	ObjectName string `json:"object_name" validate:"required"`
}

// MediaDelete removes a stored object.
func MediaDelete(svc media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req mediaDeleteRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), req.ObjectName); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
