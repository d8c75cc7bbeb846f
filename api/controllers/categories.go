package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/shoplane/shoplane-backend/api/responses"
	"github.com/shoplane/shoplane-backend/api/validators"
	"github.com/shoplane/shoplane-backend/internal/categories"
	"github.com/shoplane/shoplane-backend/pkg/logger"
)

// CategoryList returns the catalog tree with derived parent names.
func CategoryList(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// CategoryGet fetches one category.
func CategoryGet(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "categoryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, category)
	}
}

type categoryCreateRequest struct {
	Name        string     `json:"name" validate:"required,min=1"`
	Description *string    `json:"description,omitempty"`
	Logo        string     `json:"logo"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
}

// AdminCategoryCreate adds a category, optionally under a main category.
func AdminCategoryCreate(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req categoryCreateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := svc.Create(r.Context(), categories.CreateCategoryDTO{
			ParentID:    req.ParentID,
			Name:        req.Name,
			Description: req.Description,
			Logo:        req.Logo,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, category)
	}
}

// categoryUpdateRequest keeps a raw parent_id so "clear the parent"
// (explicit null) can be told apart from "leave unchanged" (absent key).
type categoryUpdateRequest struct {
	Name        *string         `json:"name,omitempty" validate:"omitempty,min=1"`
	Description *string         `json:"description,omitempty"`
	Logo        *string         `json:"logo,omitempty"`
	ParentID    json.RawMessage `json:"parent_id,omitempty"`
}

// AdminCategoryUpdate edits a category.
func AdminCategoryUpdate(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "categoryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req categoryUpdateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto := categories.UpdateCategoryDTO{
			Name:        req.Name,
			Description: req.Description,
			Logo:        req.Logo,
		}
		if len(req.ParentID) > 0 {
			dto.SetParent = true
			if string(req.ParentID) != "null" {
				var parentID uuid.UUID
				if err := json.Unmarshal(req.ParentID, &parentID); err != nil {
					responses.WriteError(r.Context(), logg, w, err)
					return
				}
				dto.ParentID = &parentID
			}
		}

		category, err := svc.Update(r.Context(), id, dto)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, category)
	}
}

// AdminCategoryDelete removes a leaf category.
func AdminCategoryDelete(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "categoryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
