package draft

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func apply(t *testing.T, d *ProductDraft, field, rawJSON string) {
	t.Helper()
	if err := d.Apply(field, json.RawMessage(rawJSON)); err != nil {
		t.Fatalf("Apply(%s, %s) failed: %v", field, rawJSON, err)
	}
}

func TestApplyNameRegeneratesSlugUntilEdited(t *testing.T) {
	d := NewDraft()

	apply(t, d, "name", `"Men's T-Shirt!!"`)
	if d.Slug != "mens-t-shirt" {
		t.Fatalf("expected derived slug, got %q", d.Slug)
	}

	apply(t, d, "name", `"Linen Shirt"`)
	if d.Slug != "linen-shirt" {
		t.Fatalf("slug should follow the name before a manual edit, got %q", d.Slug)
	}

	apply(t, d, "slug", `"custom-slug"`)
	if !d.SlugEdited {
		t.Fatal("manual slug write should flip SlugEdited")
	}

	apply(t, d, "name", `"Another Name"`)
	if d.Slug != "custom-slug" {
		t.Fatalf("edited slug must not be regenerated, got %q", d.Slug)
	}
}

func TestApplyDecimalFields(t *testing.T) {
	d := NewDraft()

	apply(t, d, "price", `25`)
	if d.Price == nil || !d.Price.Equal(decimal.NewFromInt(25)) {
		t.Fatalf("unexpected price %v", d.Price)
	}

	apply(t, d, "compareAtPrice", `"39.99"`)
	if d.CompareAtPrice == nil || !d.CompareAtPrice.Equal(decimal.RequireFromString("39.99")) {
		t.Fatalf("unexpected compareAtPrice %v", d.CompareAtPrice)
	}

	apply(t, d, "price", `""`)
	if d.Price != nil {
		t.Fatal("empty string should clear the price")
	}

	apply(t, d, "compareAtPrice", `null`)
	if d.CompareAtPrice != nil {
		t.Fatal("null should clear compareAtPrice")
	}

	if err := d.Apply("price", json.RawMessage(`"not a number"`)); err == nil {
		t.Fatal("expected decode error for junk price")
	}
}

func TestApplyTagsDedupesPreservingOrder(t *testing.T) {
	d := NewDraft()
	apply(t, d, "tags", `["summer","linen","summer","sale"]`)

	want := []string{"summer", "linen", "sale"}
	if len(d.Tags) != len(want) {
		t.Fatalf("unexpected tags %v", d.Tags)
	}
	for i, tag := range want {
		if d.Tags[i] != tag {
			t.Fatalf("tag order broken: %v", d.Tags)
		}
	}
}

func TestApplyVariantsReplacesWholeList(t *testing.T) {
	d := NewDraft()
	apply(t, d, "variants", `[{"color":"Black","sizes":[{"size":"M","sku":"tee-black-m","stock":5,"isAvailable":true}]}]`)

	if len(d.Variants) != 1 || d.Variants[0].Color != "Black" {
		t.Fatalf("unexpected variants %+v", d.Variants)
	}
	if d.Variants[0].Sizes[0].Stock != 5 {
		t.Fatalf("unexpected stock %d", d.Variants[0].Sizes[0].Stock)
	}
}

func TestApplySEOReplacesObject(t *testing.T) {
	d := NewDraft()
	apply(t, d, "seo", `{"title":"Tee","keywords":["tee","cotton"]}`)
	if d.SEO.Title != "Tee" || len(d.SEO.Keywords) != 2 {
		t.Fatalf("unexpected seo %+v", d.SEO)
	}
}

func TestApplyEnumAndUnknownFieldValidation(t *testing.T) {
	d := NewDraft()

	if err := d.Apply("gender", json.RawMessage(`"aliens"`)); err == nil {
		t.Fatal("expected invalid gender error")
	}
	if err := d.Apply("status", json.RawMessage(`"gone"`)); err == nil {
		t.Fatal("expected invalid status error")
	}
	if err := d.Apply("nope", json.RawMessage(`1`)); err == nil {
		t.Fatal("expected unknown field error")
	}
	if err := d.Apply("images", json.RawMessage(`[]`)); err == nil {
		t.Fatal("images must not be writable through Apply")
	}
}

func TestApplyBooleansAndStatus(t *testing.T) {
	d := NewDraft()
	apply(t, d, "isFlashSale", `true`)
	apply(t, d, "trackInventory", `false`)
	apply(t, d, "status", `"published"`)

	if !d.IsFlashSale || d.TrackInventory {
		t.Fatalf("boolean updates not applied: %+v", d)
	}
	if d.Status != StatusPublished {
		t.Fatalf("unexpected status %s", d.Status)
	}
}
