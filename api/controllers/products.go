package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/stitchfold/admin-gateway/api/responses"
	"github.com/stitchfold/admin-gateway/internal/storefront"
	pkgerrors "github.com/stitchfold/admin-gateway/pkg/errors"
	"github.com/stitchfold/admin-gateway/pkg/logger"
)

// ListProducts serves the storefront sections. The query selects one view:
// a gender section, the flash sale rail, new arrivals, or the full table.
func ListProducts(svc *storefront.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		limit := 0
		if raw := query.Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeValidation, "limit must be a non-negative integer"))
				return
			}
			limit = parsed
		}

		var err error
		var products any
		switch {
		case query.Get("gender") != "":
			products, err = svc.ProductsByGender(r.Context(), query.Get("gender"))
		case query.Get("flashSale") == "true":
			products, err = svc.FlashSaleProducts(r.Context())
		case query.Get("newArrivals") == "true":
			products, err = svc.NewArrivals(r.Context(), limit)
		default:
			products, err = svc.AllProducts(r.Context())
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, products)
	}
}

func GetProduct(svc *storefront.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithProductSlug(ctx, slug)
		}

		product, err := svc.ProductBySlug(ctx, slug)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// DeleteProduct removes a product. The confirm=true query parameter is the
// explicit confirmation gate; without it nothing reaches the catalog.
func DeleteProduct(svc *storefront.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID := chi.URLParam(r, "productID")
		confirmed := r.URL.Query().Get("confirm") == "true"

		if err := svc.Delete(r.Context(), productID, confirmed); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
