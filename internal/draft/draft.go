// Package draft holds the in-progress product form state. A draft is never
// persisted to the catalog until submission; the only mutation path is
// whole-field replacement through Apply, plus the paired image helpers.
package draft

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stitchfold/admin-gateway/pkg/catalog"
	pkgerrors "github.com/stitchfold/admin-gateway/pkg/errors"
	"github.com/stitchfold/admin-gateway/pkg/slug"
)

// ProductDraft mirrors the multi-section product form.
type ProductDraft struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	SlugEdited  bool   `json:"slugEdited"`
	Gender      Gender `json:"gender"`
	Category    string `json:"category"`
	SubCategory string `json:"subCategory"`

	Tags   []string `json:"tags"`
	Brand  string   `json:"brand"`
	Fabric string   `json:"fabric"`

	Description string `json:"description"`

	Price          *decimal.Decimal `json:"price"`
	CompareAtPrice *decimal.Decimal `json:"compareAtPrice"`
	CostPrice      *decimal.Decimal `json:"costPrice"`

	TrackInventory bool          `json:"trackInventory"`
	Status         ProductStatus `json:"status"`
	IsFeatured     bool          `json:"isFeatured"`
	IsFlashSale    bool          `json:"isFlashSale"`
	IsCombo        bool          `json:"isCombo"`

	// Images holds ids of pending uploads; ImagePreviews mixes remote URIs
	// (edit mode) with preview paths for pending uploads. Pending uploads
	// always occupy the tail of ImagePreviews. Index 0 is the main image.
	Images        []uuid.UUID `json:"images"`
	ImagePreviews []string    `json:"imagePreviews"`

	Variants []catalog.Variant `json:"variants"`
	SEO      catalog.SEO       `json:"seo"`
}

// NewDraft returns the empty create-mode draft.
func NewDraft() *ProductDraft {
	return &ProductDraft{
		Gender:         GenderMen,
		Status:         StatusDraft,
		TrackInventory: true,
		Tags:           []string{},
		Images:         []uuid.UUID{},
		ImagePreviews:  []string{},
		Variants: []catalog.Variant{
			{
				Color: "",
				Sizes: []catalog.Size{{IsAvailable: true}},
			},
		},
		SEO: catalog.SEO{Keywords: []string{}},
	}
}

// Hydrate builds an edit-mode draft from a persisted product. Persisted
// image URIs become previews; the pending upload list starts empty.
func Hydrate(product *catalog.Product) *ProductDraft {
	d := &ProductDraft{
		Name:           product.Name,
		Slug:           product.Slug,
		Category:       product.Category,
		SubCategory:    product.SubCategory,
		Tags:           append([]string{}, product.Tags...),
		Brand:          product.Brand,
		Fabric:         product.Fabric,
		Description:    product.Description,
		CompareAtPrice: product.CompareAtPrice,
		CostPrice:      product.CostPrice,
		TrackInventory: product.TrackInventory,
		IsFeatured:     product.IsFeatured,
		IsFlashSale:    product.IsFlashSale,
		IsCombo:        product.IsCombo,
		Images:         []uuid.UUID{},
		ImagePreviews:  append([]string{}, product.Images...),
		Variants:       append([]catalog.Variant{}, product.Variants...),
	}

	price := product.Price
	d.Price = &price

	if gender, err := ParseGender(product.Gender); err == nil {
		d.Gender = gender
	} else {
		d.Gender = GenderMen
	}
	if status, err := ParseProductStatus(product.Status); err == nil {
		d.Status = status
	} else {
		d.Status = StatusDraft
	}
	if product.SEO != nil {
		d.SEO = *product.SEO
	} else {
		d.SEO = catalog.SEO{Keywords: []string{}}
	}

	// A persisted slug that no longer matches its derived form was diverged
	// by hand at some point; keep honoring that divergence.
	d.SlugEdited = d.Slug != slug.Derive(d.Name)

	return d
}

// MainImage returns the canonical main image preview, if any image exists.
func (d *ProductDraft) MainImage() string {
	if len(d.ImagePreviews) == 0 {
		return ""
	}
	return d.ImagePreviews[0]
}

// HasImages reports whether any image, pending or remote, is present.
func (d *ProductDraft) HasImages() bool {
	return len(d.Images) > 0 || len(d.ImagePreviews) > 0
}

// AddImage appends one pending upload and its preview URI. Both slices are
// rebuilt rather than mutated in place.
func (d *ProductDraft) AddImage(attachmentID uuid.UUID, previewURI string) {
	images := make([]uuid.UUID, 0, len(d.Images)+1)
	images = append(images, d.Images...)
	d.Images = append(images, attachmentID)

	previews := make([]string, 0, len(d.ImagePreviews)+1)
	previews = append(previews, d.ImagePreviews...)
	d.ImagePreviews = append(previews, previewURI)
}

// RemoveImage drops the preview at index. When the index addresses a
// pending upload it returns that attachment's id so the caller can release
// the stored bytes; remote previews return uuid.Nil.
func (d *ProductDraft) RemoveImage(index int) (uuid.UUID, error) {
	if index < 0 || index >= len(d.ImagePreviews) {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "image index out of range")
	}

	released := uuid.Nil
	remoteCount := len(d.ImagePreviews) - len(d.Images)
	if index >= remoteCount {
		pendingIdx := index - remoteCount
		released = d.Images[pendingIdx]
		images := make([]uuid.UUID, 0, len(d.Images)-1)
		images = append(images, d.Images[:pendingIdx]...)
		d.Images = append(images, d.Images[pendingIdx+1:]...)
	}

	previews := make([]string, 0, len(d.ImagePreviews)-1)
	previews = append(previews, d.ImagePreviews[:index]...)
	d.ImagePreviews = append(previews, d.ImagePreviews[index+1:]...)

	return released, nil
}
