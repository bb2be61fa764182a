package forms

import (
	"encoding/json"
	"strconv"

	"github.com/stitchfold/admin-gateway/internal/draft"
	"github.com/stitchfold/admin-gateway/pkg/catalog"
	pkgerrors "github.com/stitchfold/admin-gateway/pkg/errors"
)

// BuildPayload turns a draft into its multipart form. Empty scalars are
// skipped, tags repeat one part each, variants and seo travel as single
// JSON fields and pending uploads become binary image parts. Previews are
// never transmitted.
func BuildPayload(d *draft.ProductDraft, attachments []*Attachment) (*catalog.MultipartPayload, error) {
	payload := &catalog.MultipartPayload{}

	payload.AppendField("name", d.Name)
	payload.AppendField("slug", d.Slug)
	payload.AppendField("gender", d.Gender.String())
	payload.AppendField("category", d.Category)
	payload.AppendField("subCategory", d.SubCategory)
	payload.AppendField("brand", d.Brand)
	payload.AppendField("fabric", d.Fabric)
	payload.AppendField("description", d.Description)
	if d.Price != nil {
		payload.AppendField("price", d.Price.String())
	}
	if d.CompareAtPrice != nil {
		payload.AppendField("compareAtPrice", d.CompareAtPrice.String())
	}
	if d.CostPrice != nil {
		payload.AppendField("costPrice", d.CostPrice.String())
	}
	payload.AppendField("trackInventory", strconv.FormatBool(d.TrackInventory))
	payload.AppendField("status", d.Status.String())
	payload.AppendField("isFeatured", strconv.FormatBool(d.IsFeatured))
	payload.AppendField("isFlashSale", strconv.FormatBool(d.IsFlashSale))
	payload.AppendField("isCombo", strconv.FormatBool(d.IsCombo))

	payload.Tags = append(payload.Tags, d.Tags...)

	variantsJSON, err := json.Marshal(d.Variants)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding variants")
	}
	payload.VariantsJSON = string(variantsJSON)

	seoJSON, err := json.Marshal(d.SEO)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding seo")
	}
	payload.SEOJSON = string(seoJSON)

	for _, attachment := range attachments {
		payload.Files = append(payload.Files, catalog.FilePart{
			Filename:    attachment.Filename,
			ContentType: attachment.ContentType,
			Data:        attachment.Data,
		})
	}

	return payload, nil
}
