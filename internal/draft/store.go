package draft

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/stitchfold/admin-gateway/pkg/catalog"
	pkgerrors "github.com/stitchfold/admin-gateway/pkg/errors"
	"github.com/stitchfold/admin-gateway/pkg/slug"
)

// Apply replaces the named top-level field with value. Nested structures
// (variants, seo) are replaced wholesale; callers rebuild the enclosing
// collection before applying. No validation happens here beyond decoding.
func (d *ProductDraft) Apply(field string, value json.RawMessage) error {
	switch field {
	case "name":
		name, err := decodeString(field, value)
		if err != nil {
			return err
		}
		d.Name = name
		if !d.SlugEdited {
			d.Slug = slug.Derive(name)
		}
	case "slug":
		s, err := decodeString(field, value)
		if err != nil {
			return err
		}
		d.Slug = s
		d.SlugEdited = true
	case "gender":
		raw, err := decodeString(field, value)
		if err != nil {
			return err
		}
		gender, err := ParseGender(raw)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid gender")
		}
		d.Gender = gender
	case "category":
		return assignString(&d.Category, field, value)
	case "subCategory":
		return assignString(&d.SubCategory, field, value)
	case "brand":
		return assignString(&d.Brand, field, value)
	case "fabric":
		return assignString(&d.Fabric, field, value)
	case "description":
		return assignString(&d.Description, field, value)
	case "tags":
		var tags []string
		if err := json.Unmarshal(value, &tags); err != nil {
			return decodeErr(field, err)
		}
		d.Tags = dedupeTags(tags)
	case "price":
		return assignDecimal(&d.Price, field, value)
	case "compareAtPrice":
		return assignDecimal(&d.CompareAtPrice, field, value)
	case "costPrice":
		return assignDecimal(&d.CostPrice, field, value)
	case "trackInventory":
		return assignBool(&d.TrackInventory, field, value)
	case "isFeatured":
		return assignBool(&d.IsFeatured, field, value)
	case "isFlashSale":
		return assignBool(&d.IsFlashSale, field, value)
	case "isCombo":
		return assignBool(&d.IsCombo, field, value)
	case "status":
		raw, err := decodeString(field, value)
		if err != nil {
			return err
		}
		status, err := ParseProductStatus(raw)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status")
		}
		d.Status = status
	case "variants":
		var variants []catalog.Variant
		if err := json.Unmarshal(value, &variants); err != nil {
			return decodeErr(field, err)
		}
		d.Variants = variants
	case "seo":
		var seo catalog.SEO
		if err := json.Unmarshal(value, &seo); err != nil {
			return decodeErr(field, err)
		}
		d.SEO = seo
	case "images", "imagePreviews":
		return pkgerrors.New(pkgerrors.CodeValidation, "images are managed through the image endpoints")
	default:
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown field %q", field))
	}
	return nil
}

func decodeString(field string, value json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		return "", decodeErr(field, err)
	}
	return s, nil
}

func assignString(dest *string, field string, value json.RawMessage) error {
	s, err := decodeString(field, value)
	if err != nil {
		return err
	}
	*dest = s
	return nil
}

func assignBool(dest *bool, field string, value json.RawMessage) error {
	var b bool
	if err := json.Unmarshal(value, &b); err != nil {
		return decodeErr(field, err)
	}
	*dest = b
	return nil
}

// assignDecimal accepts a number, a numeric string, an empty string, or
// null. Empty and null both clear the field, matching a cleared form input.
func assignDecimal(dest **decimal.Decimal, field string, value json.RawMessage) error {
	trimmed := bytes.TrimSpace(value)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte(`""`)) {
		*dest = nil
		return nil
	}
	var dec decimal.Decimal
	if err := json.Unmarshal(trimmed, &dec); err != nil {
		return decodeErr(field, err)
	}
	*dest = &dec
	return nil
}

func decodeErr(field string, err error) error {
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, fmt.Sprintf("invalid value for field %q", field))
}

func dedupeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	result := make([]string, 0, len(tags))
	for _, tag := range tags {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		result = append(result, tag)
	}
	return result
}
