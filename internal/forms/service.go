package forms

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stitchfold/admin-gateway/internal/draft"
	"github.com/stitchfold/admin-gateway/internal/wizard"
	"github.com/stitchfold/admin-gateway/pkg/catalog"
	"github.com/stitchfold/admin-gateway/pkg/config"
	pkgerrors "github.com/stitchfold/admin-gateway/pkg/errors"
	"github.com/stitchfold/admin-gateway/pkg/logger"
	"github.com/stitchfold/admin-gateway/pkg/metrics"
)

// submitSteps are re-validated before any catalog write. Description,
// media and settings carry no blocking rules for drafts.
var submitSteps = []wizard.Step{wizard.StepBasic, wizard.StepPricing, wizard.StepVariants}

// CatalogAPI is the slice of the catalog client the service needs.
type CatalogAPI interface {
	GetBySlug(ctx context.Context, slug string) (*catalog.Product, error)
	Create(ctx context.Context, payload *catalog.MultipartPayload) (*catalog.Product, error)
	Update(ctx context.Context, productID string, payload *catalog.MultipartPayload) (*catalog.Product, error)
}

// Service drives the product form sessions end to end.
type Service struct {
	store   SessionStore
	catalog CatalogAPI
	cfg     config.FormConfig
	log     *logger.Logger
	metrics *metrics.FormMetrics
}

// NewService wires the form session service.
func NewService(store SessionStore, api CatalogAPI, cfg config.FormConfig, log *logger.Logger, m *metrics.FormMetrics) *Service {
	return &Service{
		store:   store,
		catalog: api,
		cfg:     cfg,
		log:     log,
		metrics: m,
	}
}

// CreateSession opens a new form session. With an empty slug the session
// starts in create mode on a fresh draft; with a slug the product is
// fetched from the catalog and the draft is hydrated in edit mode.
func (s *Service) CreateSession(ctx context.Context, productSlug string) (*Session, error) {
	session := &Session{
		ID:        uuid.New(),
		Mode:      ModeCreate,
		Step:      wizard.StepBasic,
		Draft:     draft.NewDraft(),
		CreatedAt: time.Now().UTC(),
	}
	session.UpdatedAt = session.CreatedAt

	if strings.TrimSpace(productSlug) != "" {
		product, err := s.catalog.GetBySlug(ctx, productSlug)
		if err != nil {
			return nil, err
		}
		session.Mode = ModeEdit
		session.ProductID = product.ID
		session.Draft = draft.Hydrate(product)
	}

	if err := s.store.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	s.metrics.SessionOpened()
	s.log.Info(s.log.WithSessionID(ctx, session.ID.String()), "form session opened")
	return session, nil
}

// GetSession loads one session.
func (s *Service) GetSession(ctx context.Context, sessionID uuid.UUID) (*Session, error) {
	return s.store.GetSession(ctx, sessionID)
}

// UpdateField replaces one draft field and persists the session.
func (s *Service) UpdateField(ctx context.Context, sessionID uuid.UUID, field string, value []byte) (*Session, error) {
	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.Draft.Apply(field, value); err != nil {
		return nil, err
	}
	session.UpdatedAt = time.Now().UTC()
	if err := s.store.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// AddImages stores pending uploads and appends their previews to the draft.
func (s *Service) AddImages(ctx context.Context, sessionID uuid.UUID, files []FileUpload) (*Session, error) {
	if len(files) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one image file is required")
	}

	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(session.Draft.ImagePreviews)+len(files) > s.cfg.MaxImages {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("A product can have at most %d images", s.cfg.MaxImages))
	}
	for _, file := range files {
		if int64(len(file.Data)) > s.cfg.MaxUploadBytes() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("Image %s exceeds the %dMB limit", file.Filename, s.cfg.MaxUploadMB))
		}
	}

	for _, file := range files {
		attachment := &Attachment{
			ID:          uuid.New(),
			Filename:    file.Filename,
			ContentType: file.ContentType,
			Data:        file.Data,
		}
		if err := s.store.SaveAttachment(ctx, sessionID, attachment); err != nil {
			return nil, err
		}
		session.Draft.AddImage(attachment.ID, previewURI(sessionID, attachment.ID))
	}

	session.UpdatedAt = time.Now().UTC()
	if err := s.store.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Attachment serves one pending upload's bytes, for preview rendering.
func (s *Service) Attachment(ctx context.Context, sessionID, attachmentID uuid.UUID) (*Attachment, error) {
	return s.store.GetAttachment(ctx, sessionID, attachmentID)
}

// RemoveImage drops the preview at index and releases the stored bytes when
// the index addresses a pending upload.
func (s *Service) RemoveImage(ctx context.Context, sessionID uuid.UUID, index int) (*Session, error) {
	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	released, err := session.Draft.RemoveImage(index)
	if err != nil {
		return nil, err
	}
	if released != uuid.Nil {
		if err := s.store.DeleteAttachment(ctx, sessionID, released); err != nil {
			return nil, err
		}
	}
	session.UpdatedAt = time.Now().UTC()
	if err := s.store.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Next advances the wizard when the current step validates.
func (s *Service) Next(ctx context.Context, sessionID uuid.UUID) (*Session, error) {
	return s.transition(ctx, sessionID, func(c *wizard.Controller, d *draft.ProductDraft) error {
		return c.Next(d)
	})
}

// Previous steps back unconditionally.
func (s *Service) Previous(ctx context.Context, sessionID uuid.UUID) (*Session, error) {
	return s.transition(ctx, sessionID, func(c *wizard.Controller, _ *draft.ProductDraft) error {
		c.Previous()
		return nil
	})
}

// Jump moves directly to target, validating intervening steps on forward
// jumps.
func (s *Service) Jump(ctx context.Context, sessionID uuid.UUID, target wizard.Step) (*Session, error) {
	return s.transition(ctx, sessionID, func(c *wizard.Controller, d *draft.ProductDraft) error {
		return c.JumpTo(target, d)
	})
}

func (s *Service) transition(ctx context.Context, sessionID uuid.UUID, move func(*wizard.Controller, *draft.ProductDraft) error) (*Session, error) {
	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	controller, err := wizard.NewControllerAt(session.Step)
	if err != nil {
		return nil, err
	}
	if err := move(controller, session.Draft); err != nil {
		return nil, err
	}
	session.Step = controller.Current()
	session.UpdatedAt = time.Now().UTC()
	if err := s.store.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Submit re-validates the blocking sections and performs exactly one
// catalog write. On success the session and its attachments are released;
// on failure the draft is kept so the user can retry.
func (s *Service) Submit(ctx context.Context, sessionID uuid.UUID) (*catalog.Product, error) {
	ctx = s.log.WithSessionID(ctx, sessionID.String())

	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	acquired, err := s.store.AcquireSubmitLock(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "A submission for this form is already in progress")
	}
	defer func() {
		if err := s.store.ReleaseSubmitLock(ctx, sessionID); err != nil {
			s.log.Warn(s.log.WithField(ctx, "release_error", err.Error()), "submit lock release failed")
		}
	}()

	for _, step := range submitSteps {
		if msg := wizard.Validate(step, session.Draft); msg != "" {
			s.metrics.IncSubmission(string(session.Mode), "validation_failed")
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("Please fix errors in %s section: %s", step.Label(), msg)).
				WithDetails(map[string]any{"step": step.String()})
		}
	}
	d := session.Draft
	if strings.TrimSpace(d.Name) == "" || strings.TrimSpace(d.Slug) == "" ||
		d.Price == nil || !d.Price.IsPositive() || len(d.Variants) == 0 {
		s.metrics.IncSubmission(string(session.Mode), "validation_failed")
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Please fill all required fields")
	}

	attachments := make([]*Attachment, 0, len(d.Images))
	for _, attachmentID := range d.Images {
		attachment, err := s.store.GetAttachment(ctx, sessionID, attachmentID)
		if err != nil {
			return nil, err
		}
		attachments = append(attachments, attachment)
	}
	payload, err := BuildPayload(d, attachments)
	if err != nil {
		return nil, err
	}

	var product *catalog.Product
	if session.Mode == ModeEdit {
		product, err = s.catalog.Update(ctx, session.ProductID, payload)
	} else {
		product, err = s.catalog.Create(ctx, payload)
	}
	if err != nil {
		s.metrics.IncSubmission(string(session.Mode), "upstream_failed")
		s.log.Error(ctx, "product submission failed", err)
		return nil, err
	}

	s.releaseSession(ctx, session)
	s.metrics.IncSubmission(string(session.Mode), "success")
	s.log.Info(s.log.WithProductSlug(ctx, product.Slug), "product submitted")
	return product, nil
}

// Cancel closes a session and releases every pending upload.
func (s *Service) Cancel(ctx context.Context, sessionID uuid.UUID) error {
	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}
	s.releaseSession(ctx, session)
	return nil
}

// releaseSession deletes the session document and its attachments. Cleanup
// errors are logged, not surfaced; the TTL sweeps any leftovers.
func (s *Service) releaseSession(ctx context.Context, session *Session) {
	for _, attachmentID := range session.Draft.Images {
		if err := s.store.DeleteAttachment(ctx, session.ID, attachmentID); err != nil {
			s.log.Warn(s.log.WithField(ctx, "attachment_id", attachmentID.String()), "attachment cleanup failed")
		}
	}
	if err := s.store.DeleteSession(ctx, session.ID); err != nil {
		s.log.Warn(s.log.WithSessionID(ctx, session.ID.String()), "session cleanup failed")
	} else {
		s.metrics.SessionClosed()
	}
}

func previewURI(sessionID, attachmentID uuid.UUID) string {
	return fmt.Sprintf("/api/v1/form-sessions/%s/images/%s", sessionID, attachmentID)
}
