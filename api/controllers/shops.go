package controllers

import (
	"net/http"
	"time"

	"github.com/shoplane/shoplane-backend/api/responses"
	"github.com/shoplane/shoplane-backend/api/validators"
	"github.com/shoplane/shoplane-backend/internal/shops"
	"github.com/shoplane/shoplane-backend/pkg/logger"
	"github.com/shoplane/shoplane-backend/pkg/types"
)

type shopCreateRequest struct {
	Name        string         `json:"name" validate:"required,min=1"`
	Description *string        `json:"description,omitempty"`
	Email       *string        `json:"email,omitempty" validate:"omitempty,email"`
	Phone       *string        `json:"phone,omitempty"`
	Address     *types.Address `json:"address,omitempty"`
	Timezone    string         `json:"timezone"`
}

// ShopCreate opens a new shop owned by the caller.
func ShopCreate(svc shops.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _, err := requestActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req shopCreateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		shop, err := svc.Create(r.Context(), shops.CreateShopDTO{
			OwnerID:     userID,
			Name:        req.Name,
			Description: req.Description,
			Email:       req.Email,
			Phone:       req.Phone,
			Address:     req.Address,
			Timezone:    req.Timezone,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, shop)
	}
}

// ShopListMine lists the caller's shops.
func ShopListMine(svc shops.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _, err := requestActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListMine(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// ShopListActive lists active storefronts for browsing.
func ShopListActive(svc shops.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.ListActive(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// ShopGet fetches a single shop.
func ShopGet(svc shops.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "shopId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		shop, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, shop)
	}
}

type shopUpdateRequest struct {
	Name        *string        `json:"name,omitempty" validate:"omitempty,min=1"`
	Description *string        `json:"description,omitempty"`
	Email       *string        `json:"email,omitempty" validate:"omitempty,email"`
	Phone       *string        `json:"phone,omitempty"`
	Address     *types.Address `json:"address,omitempty"`
	Timezone    *string        `json:"timezone,omitempty"`
	LogoURL     *string        `json:"logo_url,omitempty"`
	BannerURL   *string        `json:"banner_url,omitempty"`
}

// ShopUpdate adjusts mutable shop fields, owner or admin only.
func ShopUpdate(svc shops.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, role, err := requestActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := pathUUID(r, "shopId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req shopUpdateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		shop, err := svc.Update(r.Context(), shops.Actor{UserID: userID, Role: role}, id, shops.UpdateShopDTO{
			Name:               req.Name,
			Description:        req.Description,
			Email:              req.Email,
			Phone:              req.Phone,
			Address:            req.Address,
			Timezone:           req.Timezone,
			LogoURL:            req.LogoURL,
			BackgroundImageURL: req.BannerURL,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, shop)
	}
}

type shopActiveRequest struct {
	Active bool `json:"active"`
}

// ShopSetActive toggles a shop's visibility.
func ShopSetActive(svc shops.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, role, err := requestActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := pathUUID(r, "shopId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req shopActiveRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SetActive(r.Context(), shops.Actor{UserID: userID, Role: role}, id, req.Active); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "updated"})
	}
}

// ShopEditSchedule applies one working-hours editor operation.
func ShopEditSchedule(svc shops.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, role, err := requestActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := pathUUID(r, "shopId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var edit shops.ScheduleEdit
		if err := validators.DecodeJSONBody(r, &edit); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		week, err := svc.EditSchedule(r.Context(), shops.Actor{UserID: userID, Role: role}, id, edit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"working_hours": week})
	}
}

// ShopOpenStatus reports whether the shop is open right now in its own
// timezone.
func ShopOpenStatus(svc shops.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "shopId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		open, err := svc.OpenStatus(r.Context(), id, time.Now())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"open": open})
	}
}
