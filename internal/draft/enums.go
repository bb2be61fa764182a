package draft

import "fmt"

// Gender is the storefront audience a product belongs to.
type Gender string

const (
	GenderMen    Gender = "men"
	GenderWomen  Gender = "women"
	GenderKids   Gender = "kids"
	GenderUnisex Gender = "unisex"
)

var validGenders = []Gender{GenderMen, GenderWomen, GenderKids, GenderUnisex}

// String implements fmt.Stringer.
func (g Gender) String() string {
	return string(g)
}

// IsValid reports whether the value is a known Gender.
func (g Gender) IsValid() bool {
	for _, candidate := range validGenders {
		if candidate == g {
			return true
		}
	}
	return false
}

// ParseGender converts raw input into a Gender.
func ParseGender(value string) (Gender, error) {
	for _, candidate := range validGenders {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid gender %q", value)
}

// ProductStatus is the publication state of a product.
type ProductStatus string

const (
	StatusDraft      ProductStatus = "draft"
	StatusPublished  ProductStatus = "published"
	StatusOutOfStock ProductStatus = "out_of_stock"
	StatusArchived   ProductStatus = "archived"
)

var validStatuses = []ProductStatus{StatusDraft, StatusPublished, StatusOutOfStock, StatusArchived}

// String implements fmt.Stringer.
func (s ProductStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ProductStatus.
func (s ProductStatus) IsValid() bool {
	for _, candidate := range validStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseProductStatus converts raw input into a ProductStatus.
func ParseProductStatus(value string) (ProductStatus, error) {
	for _, candidate := range validStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product status %q", value)
}
