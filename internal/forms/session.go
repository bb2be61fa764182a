// Package forms owns the server-side product form sessions: the draft, the
// wizard position, pending uploads and the submission flow that turns a
// finished draft into exactly one catalog write.
package forms

import (
	"time"

	"github.com/google/uuid"

	"github.com/stitchfold/admin-gateway/internal/draft"
	"github.com/stitchfold/admin-gateway/internal/wizard"
)

// Mode distinguishes a brand new product from an edit of a persisted one.
type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// Session is one open product form. It is the unit of persistence; the
// draft never leaves the session until submission.
type Session struct {
	ID        uuid.UUID           `json:"id"`
	Mode      Mode                `json:"mode"`
	ProductID string              `json:"productId,omitempty"`
	Step      wizard.Step         `json:"step"`
	Draft     *draft.ProductDraft `json:"draft"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

// Attachment is one pending image upload, stored until the session submits
// or closes.
type Attachment struct {
	ID          uuid.UUID `json:"id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"contentType"`
	Data        []byte    `json:"data"`
}

// FileUpload is the inbound shape of an image before the service assigns it
// an attachment id.
type FileUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}
