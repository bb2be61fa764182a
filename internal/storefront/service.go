// Package storefront exposes the read-side product operations plus the
// guarded delete used by the admin table.
package storefront

import (
	"context"
	"strings"

	"github.com/stitchfold/admin-gateway/pkg/catalog"
	pkgerrors "github.com/stitchfold/admin-gateway/pkg/errors"
	"github.com/stitchfold/admin-gateway/pkg/logger"
)

const defaultNewArrivalsLimit = 20

// CatalogAPI is the slice of the catalog client the storefront needs.
type CatalogAPI interface {
	List(ctx context.Context, query catalog.ListQuery) ([]catalog.Product, error)
	GetBySlug(ctx context.Context, slug string) (*catalog.Product, error)
	Delete(ctx context.Context, productID string) error
}

// Service answers the storefront and admin-table product queries.
type Service struct {
	catalog CatalogAPI
	log     *logger.Logger
}

// NewService wires the storefront service.
func NewService(api CatalogAPI, log *logger.Logger) *Service {
	return &Service{catalog: api, log: log}
}

// ProductsByGender lists the products for one storefront section.
func (s *Service) ProductsByGender(ctx context.Context, gender string) ([]catalog.Product, error) {
	if strings.TrimSpace(gender) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "gender is required")
	}
	return s.catalog.List(ctx, catalog.ListQuery{Gender: gender})
}

// FlashSaleProducts lists the products currently on flash sale.
func (s *Service) FlashSaleProducts(ctx context.Context) ([]catalog.Product, error) {
	return s.catalog.List(ctx, catalog.ListQuery{FlashSaleOnly: true})
}

// NewArrivals lists the most recently created products, newest first.
func (s *Service) NewArrivals(ctx context.Context, limit int) ([]catalog.Product, error) {
	if limit <= 0 {
		limit = defaultNewArrivalsLimit
	}
	return s.catalog.List(ctx, catalog.ListQuery{Sort: "createdAt:desc", Limit: limit})
}

// AllProducts lists every product, for the admin table.
func (s *Service) AllProducts(ctx context.Context) ([]catalog.Product, error) {
	return s.catalog.List(ctx, catalog.ListQuery{})
}

// ProductBySlug fetches one product detail.
func (s *Service) ProductBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	return s.catalog.GetBySlug(ctx, slug)
}

// Delete removes a product. The caller must confirm explicitly; an
// unconfirmed request never reaches the catalog.
func (s *Service) Delete(ctx context.Context, productID string, confirmed bool) error {
	if strings.TrimSpace(productID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if !confirmed {
		return pkgerrors.New(pkgerrors.CodeValidation, "deletion requires explicit confirmation")
	}
	if err := s.catalog.Delete(ctx, productID); err != nil {
		return err
	}
	s.log.Info(s.log.WithField(ctx, "product_id", productID), "product deleted")
	return nil
}
