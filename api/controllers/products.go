package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shoplane/shoplane-backend/api/responses"
	"github.com/shoplane/shoplane-backend/api/validators"
	product "github.com/shoplane/shoplane-backend/internal/products"
	"github.com/shoplane/shoplane-backend/internal/scoping"
	"github.com/shoplane/shoplane-backend/pkg/logger"
	"github.com/shoplane/shoplane-backend/pkg/types"
)

func productFilters(r *http.Request) product.ListFilters {
	q := r.URL.Query()
	filters := product.ListFilters{
		Query:      q.Get("q"),
		ActiveOnly: q.Get("active") == "true",
		LowStock:   q.Get("low_stock") == "true",
	}
	if raw := q.Get("category_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			filters.CategoryID = &id
		}
	}
	if raw := q.Get("price_min"); raw != "" {
		if value, err := decimal.NewFromString(raw); err == nil {
			filters.PriceMin = &value
		}
	}
	if raw := q.Get("price_max"); raw != "" {
		if value, err := decimal.NewFromString(raw); err == nil {
			filters.PriceMax = &value
		}
	}
	return filters
}

// ProductList returns a scoped, cursor-paginated product page.
func ProductList(svc product.Service, scopes *scoping.Resolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope, err := requestScope(r, scopes, scoping.ResourceProducts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), scope, productFilters(r), page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// ProductGet fetches one product within the caller's scope.
func ProductGet(svc product.Service, scopes *scoping.Resolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope, err := requestScope(r, scopes, scoping.ResourceProducts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := pathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Get(r.Context(), scope, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

type productCreateRequest struct {
	ShopID         uuid.UUID               `json:"shop_id" validate:"required"`
	CategoryID     uuid.UUID               `json:"category_id" validate:"required"`
	Name           string                  `json:"name" validate:"required,min=1"`
	Description    *string                 `json:"description,omitempty"`
	Price          decimal.Decimal         `json:"price"`
	DiscountPrice  *decimal.Decimal        `json:"discount_price,omitempty"`
	StockQuantity  int                     `json:"stock_quantity"`
	ImageURL       *string                 `json:"image_url,omitempty"`
	Images         []string                `json:"images,omitempty"`
	Specifications types.SpecificationList `json:"specifications,omitempty"`
	Properties     types.PropertyList      `json:"properties,omitempty"`
}

// ProductCreate adds a product to a shop the caller controls.
func ProductCreate(svc product.Service, scopes *scoping.Resolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope, err := requestScope(r, scopes, scoping.ResourceProducts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req productCreateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Create(r.Context(), scope, product.CreateProductDTO{
			ShopID:         req.ShopID,
			CategoryID:     req.CategoryID,
			Name:           req.Name,
			Description:    req.Description,
			Price:          req.Price,
			DiscountPrice:  req.DiscountPrice,
			StockQuantity:  req.StockQuantity,
			ImageURL:       req.ImageURL,
			Images:         req.Images,
			Specifications: req.Specifications,
			Properties:     req.Properties,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

type productUpdateRequest struct {
	CategoryID     *uuid.UUID              `json:"category_id,omitempty"`
	Name           *string                 `json:"name,omitempty" validate:"omitempty,min=1"`
	Description    *string                 `json:"description,omitempty"`
	Price          *decimal.Decimal        `json:"price,omitempty"`
	DiscountPrice  *decimal.Decimal        `json:"discount_price,omitempty"`
	StockQuantity  *int                    `json:"stock_quantity,omitempty"`
	ImageURL       *string                 `json:"image_url,omitempty"`
	Images         []string                `json:"images,omitempty"`
	Specifications types.SpecificationList `json:"specifications,omitempty"`
	Properties     types.PropertyList      `json:"properties,omitempty"`
}

// ProductUpdate edits a product within the caller's scope.
func ProductUpdate(svc product.Service, scopes *scoping.Resolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope, err := requestScope(r, scopes, scoping.ResourceProducts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := pathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req productUpdateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Update(r.Context(), scope, id, product.UpdateProductDTO{
			CategoryID:     req.CategoryID,
			Name:           req.Name,
			Description:    req.Description,
			Price:          req.Price,
			DiscountPrice:  req.DiscountPrice,
			StockQuantity:  req.StockQuantity,
			ImageURL:       req.ImageURL,
			Images:         req.Images,
			Specifications: req.Specifications,
			Properties:     req.Properties,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// ProductDelete removes a product within the caller's scope.
func ProductDelete(svc product.Service, scopes *scoping.Resolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope, err := requestScope(r, scopes, scoping.ResourceProducts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := pathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), scope, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

type productStockRequest struct {
	Quantity int `json:"quantity" validate:"min=0"`
}

// ProductSetStock overwrites a product's stock quantity.
func ProductSetStock(svc product.Service, scopes *scoping.Resolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope, err := requestScope(r, scopes, scoping.ResourceProducts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := pathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req productStockRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SetStock(r.Context(), scope, id, req.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "updated"})
	}
}

type productActiveRequest struct {
	Active bool `json:"active"`
}

// ProductSetActive toggles product visibility.
func ProductSetActive(svc product.Service, scopes *scoping.Resolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope, err := requestScope(r, scopes, scoping.ResourceProducts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := pathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req productActiveRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SetActive(r.Context(), scope, id, req.Active); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "updated"})
	}
}
