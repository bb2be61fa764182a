package catalog

import "github.com/shopspring/decimal"

// Product is the wire shape the catalog service returns inside its data envelope.
type Product struct {
	ID                 string           `json:"_id"`
	Name               string           `json:"name"`
	Slug               string           `json:"slug"`
	Gender             string           `json:"gender"`
	Category           string           `json:"category"`
	SubCategory        string           `json:"subCategory"`
	Tags               []string         `json:"tags"`
	Brand              string           `json:"brand,omitempty"`
	Fabric             string           `json:"fabric,omitempty"`
	Description        string           `json:"description"`
	Price              decimal.Decimal  `json:"price"`
	CompareAtPrice     *decimal.Decimal `json:"compareAtPrice,omitempty"`
	CostPrice          *decimal.Decimal `json:"costPrice,omitempty"`
	Images             []string         `json:"images"`
	Variants           []Variant        `json:"variants"`
	TrackInventory     bool             `json:"trackInventory"`
	Status             string           `json:"status"`
	IsFeatured         bool             `json:"isFeatured"`
	IsFlashSale        bool             `json:"isFlashSale"`
	IsCombo            bool             `json:"isCombo"`
	Rating             *float64         `json:"rating,omitempty"`
	TotalReviews       int              `json:"totalReviews"`
	SEO                *SEO             `json:"seo,omitempty"`
	CreatedAt          string           `json:"createdAt,omitempty"`
	UpdatedAt          string           `json:"updatedAt,omitempty"`
	DiscountPercentage *float64         `json:"discountPercentage,omitempty"`
	TotalStock         *int             `json:"totalStock,omitempty"`
}

// Variant is one colorway of a product.
type Variant struct {
	Color string `json:"color"`
	Image string `json:"image,omitempty"`
	SKU   string `json:"sku,omitempty"`
	Sizes []Size `json:"sizes"`
}

// Size is one size option inside a variant.
type Size struct {
	Size          string           `json:"size"`
	SKU           string           `json:"sku"`
	Stock         int              `json:"stock"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	DiscountPrice *decimal.Decimal `json:"discountPrice,omitempty"`
	IsAvailable   bool             `json:"isAvailable"`
}

// SEO carries the optional search metadata block.
type SEO struct {
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
}

// ListQuery selects products on the catalog list endpoint.
type ListQuery struct {
	Gender        string
	FlashSaleOnly bool
	Sort          string
	Limit         int
}
