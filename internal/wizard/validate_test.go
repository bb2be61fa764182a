package wizard

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/stitchfold/admin-gateway/internal/draft"
	"github.com/stitchfold/admin-gateway/pkg/catalog"
)

func dec(value string) *decimal.Decimal {
	d := decimal.RequireFromString(value)
	return &d
}

func validDraft() *draft.ProductDraft {
	d := draft.NewDraft()
	d.Name = "Test Shirt"
	d.Slug = "test-shirt"
	d.Category = "Clothing"
	d.Price = dec("25")
	d.Variants = []catalog.Variant{
		{
			Color: "Black",
			Sizes: []catalog.Size{
				{Size: "M", SKU: "test-shirt-black-m", Stock: 10, IsAvailable: true},
			},
		},
	}
	return d
}

func TestValidateBasic(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*draft.ProductDraft)
		want   string
	}{
		{name: "valid", mutate: func(*draft.ProductDraft) {}, want: ""},
		{name: "missing name", mutate: func(d *draft.ProductDraft) { d.Name = "   " }, want: "Product name is required"},
		{name: "missing slug", mutate: func(d *draft.ProductDraft) { d.Slug = "" }, want: "Product slug is required"},
		{name: "missing category", mutate: func(d *draft.ProductDraft) { d.Category = "" }, want: "Category is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(d)
			if got := Validate(StepBasic, d); got != tt.want {
				t.Fatalf("Validate(basic) = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidatePricing(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*draft.ProductDraft)
		want   string
	}{
		{name: "valid", mutate: func(*draft.ProductDraft) {}, want: ""},
		{name: "missing price", mutate: func(d *draft.ProductDraft) { d.Price = nil }, want: "Valid selling price is required"},
		{name: "zero price", mutate: func(d *draft.ProductDraft) { d.Price = dec("0") }, want: "Valid selling price is required"},
		{name: "negative price", mutate: func(d *draft.ProductDraft) { d.Price = dec("-5") }, want: "Valid selling price is required"},
		{name: "compare below price", mutate: func(d *draft.ProductDraft) { d.CompareAtPrice = dec("20") }, want: "Compare price must be greater than selling price"},
		{name: "compare equal to price passes", mutate: func(d *draft.ProductDraft) { d.CompareAtPrice = dec("25") }, want: ""},
		{name: "compare above price passes", mutate: func(d *draft.ProductDraft) { d.CompareAtPrice = dec("30") }, want: ""},
		{name: "zero compare is ignored", mutate: func(d *draft.ProductDraft) { d.CompareAtPrice = dec("0") }, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(d)
			if got := Validate(StepPricing, d); got != tt.want {
				t.Fatalf("Validate(pricing) = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateVariants(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*draft.ProductDraft)
		want   string
	}{
		{name: "valid", mutate: func(*draft.ProductDraft) {}, want: ""},
		{name: "no variants", mutate: func(d *draft.ProductDraft) { d.Variants = nil }, want: "At least one color variant is required"},
		{name: "blank color", mutate: func(d *draft.ProductDraft) { d.Variants[0].Color = " " }, want: "Color name is required for all variants"},
		{name: "no sizes", mutate: func(d *draft.ProductDraft) { d.Variants[0].Sizes = nil }, want: "At least one size is required for each color"},
		{name: "blank size", mutate: func(d *draft.ProductDraft) { d.Variants[0].Sizes[0].Size = "" }, want: "Size is required for all size options"},
		{name: "blank sku", mutate: func(d *draft.ProductDraft) { d.Variants[0].Sizes[0].SKU = "" }, want: "SKU is required for all sizes"},
		{name: "negative stock", mutate: func(d *draft.ProductDraft) { d.Variants[0].Sizes[0].Stock = -1 }, want: "Stock cannot be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(d)
			if got := Validate(StepVariants, d); got != tt.want {
				t.Fatalf("Validate(variants) = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateMedia(t *testing.T) {
	d := validDraft()
	if got := Validate(StepMedia, d); got != "" {
		t.Fatalf("draft products need no media, got %q", got)
	}

	d.Status = draft.StatusPublished
	if got := Validate(StepMedia, d); got != "At least one image is required for published products" {
		t.Fatalf("published without images must fail, got %q", got)
	}

	d.ImagePreviews = []string{"https://cdn.example/a.jpg"}
	if got := Validate(StepMedia, d); got != "" {
		t.Fatalf("published with a preview should pass, got %q", got)
	}
}

func TestValidateOptionalStepsAlwaysPass(t *testing.T) {
	empty := draft.NewDraft()
	if got := Validate(StepDescription, empty); got != "" {
		t.Fatalf("description must not validate, got %q", got)
	}
	if got := Validate(StepSettings, empty); got != "" {
		t.Fatalf("settings must not validate, got %q", got)
	}
}
