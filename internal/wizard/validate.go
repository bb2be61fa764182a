package wizard

import (
	"strings"

	"github.com/stitchfold/admin-gateway/internal/draft"
)

// Validate checks the named step against the draft and returns the first
// violated rule's message, or "" when the step passes. It is a pure
// function: no side effects, same inputs always give the same output.
// Description and settings carry no required fields.
func Validate(step Step, d *draft.ProductDraft) string {
	switch step {
	case StepBasic:
		if strings.TrimSpace(d.Name) == "" {
			return "Product name is required"
		}
		if strings.TrimSpace(d.Slug) == "" {
			return "Product slug is required"
		}
		if strings.TrimSpace(d.Category) == "" {
			return "Category is required"
		}

	case StepPricing:
		if d.Price == nil || !d.Price.IsPositive() {
			return "Valid selling price is required"
		}
		if d.CompareAtPrice != nil && !d.CompareAtPrice.IsZero() && d.CompareAtPrice.LessThan(*d.Price) {
			return "Compare price must be greater than selling price"
		}

	case StepVariants:
		if len(d.Variants) == 0 {
			return "At least one color variant is required"
		}
		for _, variant := range d.Variants {
			if strings.TrimSpace(variant.Color) == "" {
				return "Color name is required for all variants"
			}
			if len(variant.Sizes) == 0 {
				return "At least one size is required for each color"
			}
			for _, size := range variant.Sizes {
				if strings.TrimSpace(size.Size) == "" {
					return "Size is required for all size options"
				}
				if strings.TrimSpace(size.SKU) == "" {
					return "SKU is required for all sizes"
				}
				if size.Stock < 0 {
					return "Stock cannot be negative"
				}
			}
		}

	case StepMedia:
		// Media stays optional for drafts.
		if d.Status == draft.StatusPublished && !d.HasImages() {
			return "At least one image is required for published products"
		}
	}

	return ""
}
