package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/shoplane/shoplane-backend/api/middleware"
	"github.com/shoplane/shoplane-backend/api/validators"
	"github.com/shoplane/shoplane-backend/internal/scoping"
	"github.com/shoplane/shoplane-backend/pkg/enums"
	pkgerrors "github.com/shoplane/shoplane-backend/pkg/errors"
	"github.com/shoplane/shoplane-backend/pkg/pagination"
)

// requestActor pulls the authenticated caller out of the request context.
func requestActor(r *http.Request) (uuid.UUID, enums.Role, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, enums.RoleUnknown, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, enums.RoleUnknown, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}
	return userID, enums.Role(middleware.RoleFromContext(r.Context())), nil
}

// requestScope resolves the caller's data scope for the given resource.
func requestScope(r *http.Request, scopes *scoping.Resolver, resource scoping.Resource) (scoping.Scope, error) {
	userID, role, err := requestActor(r)
	if err != nil {
		return scoping.NotAvailable(resource), err
	}
	return scopes.ForRole(r.Context(), role, userID, resource)
}

func pathUUID(r *http.Request, param string) (uuid.UUID, error) {
	raw := chi.URLParam(r, param)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+param)
	}
	return id, nil
}

func pageParams(r *http.Request) (pagination.Params, error) {
	limit, err := validators.ParseQueryInt(r, "limit", 0, 0, pagination.MaxLimit)
	if err != nil {
		return pagination.Params{}, err
	}
	cursor := validators.SanitizeString(r.URL.Query().Get("cursor"), 512)
	return pagination.Params{Limit: limit, Cursor: cursor}, nil
}
